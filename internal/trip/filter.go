package trip

import (
	"time"

	"bigtrip/internal/domain/models"
)

// Filter selects points relative to the current moment.
type Filter string

const (
	FilterEverything Filter = "everything"
	FilterFuture     Filter = "future"
	FilterPresent    Filter = "present"
	FilterPast       Filter = "past"
)

// Filters lists the modes in display order.
var Filters = []Filter{FilterEverything, FilterFuture, FilterPresent, FilterPast}

// FilterPoints returns the points matching the filter at the given moment.
func FilterPoints(points []models.Point, mode Filter, now time.Time) []models.Point {
	var out []models.Point
	for _, point := range points {
		if matches(point, mode, now) {
			out = append(out, point.Clone())
		}
	}
	return out
}

func matches(point models.Point, mode Filter, now time.Time) bool {
	switch mode {
	case FilterFuture:
		return point.DateFrom.After(now)
	case FilterPresent:
		return !point.DateFrom.After(now) && !point.DateTo.Before(now)
	case FilterPast:
		return point.DateTo.Before(now)
	default:
		return true
	}
}
