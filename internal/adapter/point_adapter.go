// Package adapter translates between the remote store's record shapes and
// the in-memory entities. It is stateless and side-effect free; ToClient and
// ToServer are inverses up to representation (dates by instant, offers as
// sets).
package adapter

import (
	"sort"
	"strings"

	"bigtrip/internal/domain"
	"bigtrip/internal/domain/models"
	"bigtrip/internal/remote"
	"bigtrip/internal/utils"
)

// ToClient converts a server point record to an entity. A missing required
// field or an unparsable date yields a MalformedRecordError.
func ToClient(record remote.PointRecord) (models.Point, error) {
	if strings.TrimSpace(record.ID) == "" {
		return models.Point{}, domain.MalformedRecordError{Field: "id"}
	}
	pointType, err := models.ParsePointType(record.Type)
	if err != nil {
		return models.Point{}, domain.MalformedRecordError{Field: "type", Err: err}
	}
	if strings.TrimSpace(record.Destination) == "" {
		return models.Point{}, domain.MalformedRecordError{Field: "destination"}
	}
	if record.BasePrice < 0 {
		return models.Point{}, domain.MalformedRecordError{Field: "base_price"}
	}
	dateFrom, err := utils.ParseISO(record.DateFrom)
	if err != nil {
		return models.Point{}, domain.MalformedRecordError{Field: "date_from", Err: err}
	}
	dateTo, err := utils.ParseISO(record.DateTo)
	if err != nil {
		return models.Point{}, domain.MalformedRecordError{Field: "date_to", Err: err}
	}

	return models.Point{
		ID:          record.ID,
		Type:        pointType,
		Destination: record.Destination,
		DateFrom:    dateFrom,
		DateTo:      dateTo,
		BasePrice:   record.BasePrice,
		Offers:      normalizeOfferIDs(record.Offers),
		IsFavorite:  record.IsFavorite,
	}, nil
}

// ToServer converts an entity to the wire shape.
func ToServer(point models.Point) remote.PointRecord {
	return remote.PointRecord{
		ID:          point.ID,
		Type:        string(point.Type),
		Destination: point.Destination,
		BasePrice:   point.BasePrice,
		DateFrom:    utils.FormatISO(point.DateFrom),
		DateTo:      utils.FormatISO(point.DateTo),
		IsFavorite:  point.IsFavorite,
		Offers:      normalizeOfferIDs(point.Offers),
	}
}

// DestinationToClient converts a destination record; name must be non-empty.
func DestinationToClient(record remote.DestinationRecord) (models.Destination, error) {
	if strings.TrimSpace(record.ID) == "" {
		return models.Destination{}, domain.MalformedRecordError{Field: "id"}
	}
	if strings.TrimSpace(record.Name) == "" {
		return models.Destination{}, domain.MalformedRecordError{Field: "name"}
	}
	pictures := make([]models.Picture, 0, len(record.Pictures))
	for _, pic := range record.Pictures {
		pictures = append(pictures, models.Picture{Src: pic.Src, Description: pic.Description})
	}
	return models.Destination{
		ID:          record.ID,
		Name:        record.Name,
		Description: record.Description,
		Pictures:    pictures,
	}, nil
}

// OfferGroupToClient converts one catalog partition.
func OfferGroupToClient(record remote.OfferGroupRecord) (models.OfferGroup, error) {
	groupType, err := models.ParsePointType(record.Type)
	if err != nil {
		return models.OfferGroup{}, domain.MalformedRecordError{Field: "type", Err: err}
	}
	offers := make([]models.Offer, 0, len(record.Offers))
	for _, offer := range record.Offers {
		if strings.TrimSpace(offer.ID) == "" {
			return models.OfferGroup{}, domain.MalformedRecordError{Field: "offers.id"}
		}
		if offer.Price < 0 {
			return models.OfferGroup{}, domain.MalformedRecordError{Field: "offers.price"}
		}
		offers = append(offers, models.Offer{ID: offer.ID, Title: offer.Title, Price: offer.Price})
	}
	return models.OfferGroup{Type: groupType, Offers: offers}, nil
}

// normalizeOfferIDs copies, dedupes and sorts so set semantics survive the
// round trip regardless of input order.
func normalizeOfferIDs(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
