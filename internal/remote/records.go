// Package remote talks to the big-trip point store over HTTP. It deals in raw
// wire records only; converting them to entities is the adapter's job.
package remote

// PointRecord is the server-side shape of a point.
type PointRecord struct {
	ID          string   `json:"id"`
	Type        string   `json:"type"`
	Destination string   `json:"destination"`
	BasePrice   int      `json:"base_price"`
	DateFrom    string   `json:"date_from"`
	DateTo      string   `json:"date_to"`
	IsFavorite  bool     `json:"is_favorite"`
	Offers      []string `json:"offers"`
}

// PictureRecord is one destination photo on the wire.
type PictureRecord struct {
	Src         string `json:"src"`
	Description string `json:"description"`
}

// DestinationRecord is the server-side shape of a destination.
type DestinationRecord struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Pictures    []PictureRecord `json:"pictures"`
}

// OfferRecord is one catalog offer on the wire.
type OfferRecord struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Price int    `json:"price"`
}

// OfferGroupRecord is the per-type offer partition as served by the store.
type OfferGroupRecord struct {
	Type   string        `json:"type"`
	Offers []OfferRecord `json:"offers"`
}
