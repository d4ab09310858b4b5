// Package trip carries the display-side itinerary helpers: sort modes,
// filters and the trip summary line.
package trip

import (
	"sort"

	"bigtrip/internal/domain/models"
)

// Sort is a point list ordering mode. EVENT and OFFER exist for the sort bar
// but are disabled there and leave the order untouched.
type Sort string

const (
	SortDay   Sort = "day"
	SortEvent Sort = "event"
	SortTime  Sort = "time"
	SortPrice Sort = "price"
	SortOffer Sort = "offer"
)

// Sorts lists the modes in display order.
var Sorts = []Sort{SortDay, SortEvent, SortTime, SortPrice, SortOffer}

// Disabled reports whether a mode is selectable in the sort bar.
func (s Sort) Disabled() bool {
	return s == SortEvent || s == SortOffer
}

// SortPoints returns a sorted copy: day ascending by start date, time by
// duration descending, price descending.
func SortPoints(points []models.Point, mode Sort) []models.Point {
	out := make([]models.Point, len(points))
	for i, point := range points {
		out[i] = point.Clone()
	}
	switch mode {
	case SortDay:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].DateFrom.Before(out[j].DateFrom)
		})
	case SortTime:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].DateTo.Sub(out[i].DateFrom) > out[j].DateTo.Sub(out[j].DateFrom)
		})
	case SortPrice:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].BasePrice > out[j].BasePrice
		})
	}
	return out
}
