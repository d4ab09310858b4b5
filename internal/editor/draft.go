package editor

import (
	"time"

	"bigtrip/internal/catalog"
	"bigtrip/internal/domain"
	"bigtrip/internal/domain/models"
)

// OfferChoice is one catalog offer with its checked flag inside a draft.
type OfferChoice struct {
	ID        string
	Title     string
	Price     int
	IsChecked bool
}

// Draft is the working copy of a single point while it is being edited, plus
// the transient flags the form renders from. It is owned by exactly one
// controller and never persisted.
type Draft struct {
	ID           string
	Type         models.PointType
	SelectedType models.PointType
	Destination  *models.Destination
	DateFrom     time.Time
	DateTo       time.Time
	BasePrice    int
	IsFavorite   bool
	Offers       []OfferChoice

	IsSaving      bool
	IsDeleting    bool
	IsDisabled    bool
	ValidationErr error
}

// newDraft is the default template for a point being created: flight, price
// zero, no dates, no destination, the flight offer partition unchecked.
func newDraft(offers *catalog.Offers) Draft {
	return Draft{
		Type:         models.TypeFlight,
		SelectedType: models.TypeFlight,
		Offers:       choicesForType(offers, models.TypeFlight, nil),
	}
}

// draftFromPoint builds the working copy of an existing point. The offer list
// is the full partition for the point's type with the point's selections
// checked.
func draftFromPoint(point models.Point, destinations *catalog.Destinations, offers *catalog.Offers) Draft {
	draft := Draft{
		ID:           point.ID,
		Type:         point.Type,
		SelectedType: point.Type,
		DateFrom:     point.DateFrom,
		DateTo:       point.DateTo,
		BasePrice:    point.BasePrice,
		IsFavorite:   point.IsFavorite,
		Offers:       choicesForType(offers, point.Type, point.Offers),
	}
	if destination, err := destinations.ByID(point.Destination); err == nil {
		draft.Destination = &destination
	}
	return draft
}

// toPoint builds the canonical point from the draft, dropping the ephemeral
// fields. Unresolved destination or missing dates fail validation before any
// network call.
func (d Draft) toPoint() (models.Point, error) {
	if d.Destination == nil {
		return models.Point{}, domain.ValidationError{Field: "destination", Msg: "destination is not resolved"}
	}
	if d.DateFrom.IsZero() || d.DateTo.IsZero() {
		return models.Point{}, domain.ValidationError{Field: "dates", Msg: "both dates are required"}
	}

	var checked []string
	for _, choice := range d.Offers {
		if choice.IsChecked {
			checked = append(checked, choice.ID)
		}
	}

	point := models.Point{
		ID:          d.ID,
		Type:        d.Type,
		Destination: d.Destination.ID,
		DateFrom:    d.DateFrom,
		DateTo:      d.DateTo,
		BasePrice:   d.BasePrice,
		Offers:      checked,
		IsFavorite:  d.IsFavorite,
	}
	if err := point.Validate(); err != nil {
		return models.Point{}, err
	}
	return point, nil
}

// clone copies the draft so accessors never leak internal state.
func (d Draft) clone() Draft {
	out := d
	out.Offers = append([]OfferChoice(nil), d.Offers...)
	if d.Destination != nil {
		destination := *d.Destination
		out.Destination = &destination
	}
	return out
}

func choicesForType(offers *catalog.Offers, pointType models.PointType, checked []string) []OfferChoice {
	checkedSet := make(map[string]bool, len(checked))
	for _, id := range checked {
		checkedSet[id] = true
	}
	partition := offers.ByType(pointType)
	choices := make([]OfferChoice, 0, len(partition))
	for _, offer := range partition {
		choices = append(choices, OfferChoice{
			ID:        offer.ID,
			Title:     offer.Title,
			Price:     offer.Price,
			IsChecked: checkedSet[offer.ID],
		})
	}
	return choices
}
