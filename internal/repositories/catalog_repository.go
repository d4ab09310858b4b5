package repositories

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"bigtrip/internal/remote"
)

// DestinationRepository reads the destination catalog.
type DestinationRepository struct {
	DB *sqlx.DB
}

type destinationRow struct {
	ID          string `db:"id"`
	Name        string `db:"name"`
	Description string `db:"description"`
}

type pictureRow struct {
	DestinationID string `db:"destination_id"`
	Src           string `db:"src"`
	Description   string `db:"description"`
}

// List returns every destination with its pictures in stored order.
func (r DestinationRepository) List(ctx context.Context) ([]remote.DestinationRecord, error) {
	rows := []destinationRow{}
	err := r.DB.SelectContext(ctx, &rows,
		`SELECT id, name, description FROM destinations ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list destinations: %w", err)
	}

	pictures := []pictureRow{}
	err = r.DB.SelectContext(ctx, &pictures,
		`SELECT destination_id, src, description FROM destination_pictures ORDER BY destination_id, position`)
	if err != nil {
		return nil, fmt.Errorf("list destination pictures: %w", err)
	}

	byDestination := make(map[string][]remote.PictureRecord)
	for _, picture := range pictures {
		byDestination[picture.DestinationID] = append(byDestination[picture.DestinationID], remote.PictureRecord{
			Src:         picture.Src,
			Description: picture.Description,
		})
	}

	records := make([]remote.DestinationRecord, 0, len(rows))
	for _, row := range rows {
		pics := byDestination[row.ID]
		if pics == nil {
			pics = []remote.PictureRecord{}
		}
		records = append(records, remote.DestinationRecord{
			ID:          row.ID,
			Name:        row.Name,
			Description: row.Description,
			Pictures:    pics,
		})
	}
	return records, nil
}

// OfferRepository reads the offer catalog.
type OfferRepository struct {
	DB *sqlx.DB
}

type offerRow struct {
	ID    string `db:"id"`
	Type  string `db:"type"`
	Title string `db:"title"`
	Price int    `db:"price"`
}

// List returns the catalog grouped by point type.
func (r OfferRepository) List(ctx context.Context) ([]remote.OfferGroupRecord, error) {
	rows := []offerRow{}
	err := r.DB.SelectContext(ctx, &rows,
		`SELECT id, type, title, price FROM offers ORDER BY type, title`)
	if err != nil {
		return nil, fmt.Errorf("list offers: %w", err)
	}

	var groups []remote.OfferGroupRecord
	index := make(map[string]int)
	for _, row := range rows {
		i, ok := index[row.Type]
		if !ok {
			groups = append(groups, remote.OfferGroupRecord{Type: row.Type, Offers: []remote.OfferRecord{}})
			i = len(groups) - 1
			index[row.Type] = i
		}
		groups[i].Offers = append(groups[i].Offers, remote.OfferRecord{
			ID:    row.ID,
			Title: row.Title,
			Price: row.Price,
		})
	}
	return groups, nil
}
