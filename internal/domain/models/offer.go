package models

// Offer is an extra paid service available for one point type.
type Offer struct {
	ID    string
	Title string
	Price int
}

// OfferGroup is the catalog partition for a single point type.
type OfferGroup struct {
	Type   PointType
	Offers []Offer
}
