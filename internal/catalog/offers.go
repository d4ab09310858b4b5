package catalog

import (
	"context"
	"fmt"

	"bigtrip/internal/adapter"
	"bigtrip/internal/domain/models"
	"bigtrip/internal/remote"
)

// OfferLister is the slice of the remote client the catalog needs.
type OfferLister interface {
	ListOffers(ctx context.Context) ([]remote.OfferGroupRecord, error)
}

// Offers is the offer catalog partitioned by point type.
type Offers struct {
	byType map[models.PointType][]models.Offer
}

// LoadOffers fetches and indexes the catalog.
func LoadOffers(ctx context.Context, lister OfferLister) (*Offers, error) {
	records, err := lister.ListOffers(ctx)
	if err != nil {
		return nil, fmt.Errorf("load offers: %w", err)
	}
	groups := make([]models.OfferGroup, 0, len(records))
	for _, record := range records {
		group, err := adapter.OfferGroupToClient(record)
		if err != nil {
			return nil, err
		}
		groups = append(groups, group)
	}
	return NewOffers(groups), nil
}

// NewOffers builds a catalog from entities directly (tests, fixtures).
func NewOffers(groups []models.OfferGroup) *Offers {
	catalog := &Offers{byType: make(map[models.PointType][]models.Offer, len(groups))}
	for _, group := range groups {
		catalog.byType[group.Type] = append(catalog.byType[group.Type], group.Offers...)
	}
	return catalog
}

// ByType returns the partition for one point type, possibly empty.
func (c *Offers) ByType(pointType models.PointType) []models.Offer {
	offers := c.byType[pointType]
	return append([]models.Offer(nil), offers...)
}

// Has reports whether the offer id belongs to the type's partition.
func (c *Offers) Has(pointType models.PointType, offerID string) bool {
	for _, offer := range c.byType[pointType] {
		if offer.ID == offerID {
			return true
		}
	}
	return false
}

// Checked returns the catalog offers selected on the point, in partition
// order.
func (c *Offers) Checked(point models.Point) []models.Offer {
	var out []models.Offer
	for _, offer := range c.byType[point.Type] {
		if point.HasOffer(offer.ID) {
			out = append(out, offer)
		}
	}
	return out
}

// Cost sums the prices of the given offers.
func Cost(offers []models.Offer) int {
	total := 0
	for _, offer := range offers {
		total += offer.Price
	}
	return total
}
