package trip

import (
	"strings"

	"bigtrip/internal/catalog"
	"bigtrip/internal/domain/models"
	"bigtrip/internal/utils"
)

const (
	destinationsToShow = 3
	ellipsesSymbol     = "..."
	separatorSymbol    = " — "
)

// Summary is the trip header: the route line, the overall date span and the
// total cost (base prices plus checked offers).
type Summary struct {
	Route    string
	Duration string
	Cost     int
}

// Summarize computes the summary over the collection. Points are taken in day
// order; an empty collection yields a zero summary.
func Summarize(points []models.Point, destinations *catalog.Destinations, offers *catalog.Offers) Summary {
	if len(points) == 0 {
		return Summary{}
	}
	ordered := SortPoints(points, SortDay)

	names := make([]string, 0, len(ordered))
	for _, point := range ordered {
		if destination, err := destinations.ByID(point.Destination); err == nil {
			names = append(names, destination.Name)
		}
	}

	route := names
	if len(names) > destinationsToShow {
		route = []string{names[0], ellipsesSymbol, names[len(names)-1]}
	}

	last := ordered[0]
	for _, point := range ordered[1:] {
		if point.DateTo.After(last.DateTo) {
			last = point
		}
	}

	cost := 0
	for _, point := range ordered {
		cost += point.BasePrice + catalog.Cost(offers.Checked(point))
	}

	return Summary{
		Route:    strings.Join(route, separatorSymbol),
		Duration: utils.FormatTripDate(ordered[0].DateFrom) + separatorSymbol + utils.FormatTripDate(last.DateTo),
		Cost:     cost,
	}
}
