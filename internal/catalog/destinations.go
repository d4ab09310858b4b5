// Package catalog holds the per-session destination and offer catalogs.
// Both are loaded once and immutable afterwards.
package catalog

import (
	"context"
	"fmt"

	"bigtrip/internal/adapter"
	"bigtrip/internal/domain"
	"bigtrip/internal/domain/models"
	"bigtrip/internal/remote"
)

// DestinationLister is the slice of the remote client the catalog needs.
type DestinationLister interface {
	ListDestinations(ctx context.Context) ([]remote.DestinationRecord, error)
}

// Destinations resolves destinations by id and by exact name.
type Destinations struct {
	ordered []models.Destination
	byID    map[string]models.Destination
	byName  map[string]models.Destination
}

// LoadDestinations fetches and indexes the catalog.
func LoadDestinations(ctx context.Context, lister DestinationLister) (*Destinations, error) {
	records, err := lister.ListDestinations(ctx)
	if err != nil {
		return nil, fmt.Errorf("load destinations: %w", err)
	}
	catalog := &Destinations{
		byID:   make(map[string]models.Destination, len(records)),
		byName: make(map[string]models.Destination, len(records)),
	}
	for _, record := range records {
		destination, err := adapter.DestinationToClient(record)
		if err != nil {
			return nil, err
		}
		catalog.ordered = append(catalog.ordered, destination)
		catalog.byID[destination.ID] = destination
		catalog.byName[destination.Name] = destination
	}
	return catalog, nil
}

// NewDestinations builds a catalog from entities directly (tests, fixtures).
func NewDestinations(destinations []models.Destination) *Destinations {
	catalog := &Destinations{
		byID:   make(map[string]models.Destination, len(destinations)),
		byName: make(map[string]models.Destination, len(destinations)),
	}
	for _, destination := range destinations {
		catalog.ordered = append(catalog.ordered, destination)
		catalog.byID[destination.ID] = destination
		catalog.byName[destination.Name] = destination
	}
	return catalog
}

// ByID looks a destination up by id.
func (c *Destinations) ByID(id string) (models.Destination, error) {
	destination, ok := c.byID[id]
	if !ok {
		return models.Destination{}, domain.NotFoundError{Resource: "destination", ID: id}
	}
	return destination, nil
}

// ByName looks a destination up by exact, case-sensitive name.
func (c *Destinations) ByName(name string) (models.Destination, bool) {
	destination, ok := c.byName[name]
	return destination, ok
}

// Names returns every destination name in catalog order.
func (c *Destinations) Names() []string {
	names := make([]string, 0, len(c.ordered))
	for _, destination := range c.ordered {
		names = append(names, destination.Name)
	}
	return names
}
