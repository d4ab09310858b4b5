package models

import (
	"strings"
	"time"

	"bigtrip/internal/domain"
)

// PointType enumerates the kinds of trip events a point can represent.
type PointType string

const (
	TypeFlight      PointType = "flight"
	TypeTaxi        PointType = "taxi"
	TypeBus         PointType = "bus"
	TypeTrain       PointType = "train"
	TypeShip        PointType = "ship"
	TypeDrive       PointType = "drive"
	TypeCheckIn     PointType = "check-in"
	TypeSightseeing PointType = "sightseeing"
	TypeRestaurant  PointType = "restaurant"
)

// PointTypes lists all types in display order.
var PointTypes = []PointType{
	TypeFlight,
	TypeTaxi,
	TypeBus,
	TypeTrain,
	TypeShip,
	TypeDrive,
	TypeCheckIn,
	TypeSightseeing,
	TypeRestaurant,
}

// ParsePointType validates a raw type value.
func ParsePointType(raw string) (PointType, error) {
	t := PointType(strings.ToLower(strings.TrimSpace(raw)))
	for _, known := range PointTypes {
		if t == known {
			return t, nil
		}
	}
	return "", domain.ValidationError{Field: "type", Msg: "unknown point type " + raw}
}

// Point is one itinerary item: a dated trip event with a destination, a base
// price and an optional set of extra offers.
type Point struct {
	ID          string
	Type        PointType
	Destination string
	DateFrom    time.Time
	DateTo      time.Time
	BasePrice   int
	Offers      []string
	IsFavorite  bool
}

// TempIDPrefix marks locally assigned ids of points whose remote create has
// not been confirmed yet.
const TempIDPrefix = "local-"

// IsTemp reports whether the point only exists optimistically.
func (p Point) IsTemp() bool {
	return strings.HasPrefix(p.ID, TempIDPrefix)
}

// Validate checks the point's internal invariants. Catalog-level checks
// (destination existence, offers matching the type partition) belong to the
// callers that hold the catalogs.
func (p Point) Validate() error {
	if _, err := ParsePointType(string(p.Type)); err != nil {
		return err
	}
	if strings.TrimSpace(p.Destination) == "" {
		return domain.ValidationError{Field: "destination", Msg: "destination is required"}
	}
	if p.DateFrom.IsZero() || p.DateTo.IsZero() {
		return domain.ValidationError{Field: "dates", Msg: "both dates are required"}
	}
	if p.DateTo.Before(p.DateFrom) {
		return domain.ValidationError{Field: "dateTo", Msg: "end date precedes start date"}
	}
	if p.BasePrice < 0 {
		return domain.ValidationError{Field: "basePrice", Msg: "price must not be negative"}
	}
	return nil
}

// HasOffer reports whether the offer id is selected on the point.
func (p Point) HasOffer(id string) bool {
	for _, offerID := range p.Offers {
		if offerID == id {
			return true
		}
	}
	return false
}

// Clone returns a deep copy; the offers slice is never shared.
func (p Point) Clone() Point {
	out := p
	out.Offers = append([]string(nil), p.Offers...)
	return out
}
