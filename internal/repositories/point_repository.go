// Package repositories is the reference point server's data access layer.
package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"bigtrip/internal/domain"
	"bigtrip/internal/remote"
	"bigtrip/internal/utils"
)

// PointRepository stores point records. Offer ids live in a single CSV
// column; the catalog is small and the list is only ever read whole.
type PointRepository struct {
	DB *sqlx.DB
}

type pointRow struct {
	ID            string    `db:"id"`
	Type          string    `db:"type"`
	DestinationID string    `db:"destination_id"`
	BasePrice     int       `db:"base_price"`
	DateFrom      time.Time `db:"date_from"`
	DateTo        time.Time `db:"date_to"`
	IsFavorite    bool      `db:"is_favorite"`
	OfferIDs      string    `db:"offer_ids"`
}

// List returns every stored point.
func (r PointRepository) List(ctx context.Context) ([]remote.PointRecord, error) {
	rows := []pointRow{}
	err := r.DB.SelectContext(ctx, &rows,
		`SELECT id, type, destination_id, base_price, date_from, date_to, is_favorite, offer_ids
		 FROM points`)
	if err != nil {
		return nil, fmt.Errorf("list points: %w", err)
	}
	records := make([]remote.PointRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, row.toRecord())
	}
	return records, nil
}

// GetByID returns one stored point.
func (r PointRepository) GetByID(ctx context.Context, id string) (remote.PointRecord, error) {
	var row pointRow
	err := r.DB.GetContext(ctx, &row,
		`SELECT id, type, destination_id, base_price, date_from, date_to, is_favorite, offer_ids
		 FROM points WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return remote.PointRecord{}, domain.NotFoundError{Resource: "point", ID: id}
	}
	if err != nil {
		return remote.PointRecord{}, fmt.Errorf("get point %s: %w", id, err)
	}
	return row.toRecord(), nil
}

// Create inserts a new point record.
func (r PointRepository) Create(ctx context.Context, record remote.PointRecord) error {
	row, err := rowFromRecord(record)
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx,
		`INSERT INTO points (id, type, destination_id, base_price, date_from, date_to, is_favorite, offer_ids)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		row.ID, row.Type, row.DestinationID, row.BasePrice, row.DateFrom, row.DateTo, row.IsFavorite, row.OfferIDs)
	if err != nil {
		return fmt.Errorf("create point: %w", err)
	}
	return nil
}

// Update replaces a stored point; a missing id is NotFound.
func (r PointRepository) Update(ctx context.Context, record remote.PointRecord) error {
	row, err := rowFromRecord(record)
	if err != nil {
		return err
	}
	result, err := r.DB.ExecContext(ctx,
		`UPDATE points
		 SET type = ?, destination_id = ?, base_price = ?, date_from = ?, date_to = ?, is_favorite = ?, offer_ids = ?
		 WHERE id = ?`,
		row.Type, row.DestinationID, row.BasePrice, row.DateFrom, row.DateTo, row.IsFavorite, row.OfferIDs, row.ID)
	if err != nil {
		return fmt.Errorf("update point %s: %w", record.ID, err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		if _, getErr := r.GetByID(ctx, record.ID); domain.IsNotFound(getErr) {
			return getErr
		}
	}
	return nil
}

// Delete removes a stored point; a missing id is NotFound.
func (r PointRepository) Delete(ctx context.Context, id string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM points WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete point %s: %w", id, err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return domain.NotFoundError{Resource: "point", ID: id}
	}
	return nil
}

func (row pointRow) toRecord() remote.PointRecord {
	return remote.PointRecord{
		ID:          row.ID,
		Type:        row.Type,
		Destination: row.DestinationID,
		BasePrice:   row.BasePrice,
		DateFrom:    utils.FormatISO(row.DateFrom),
		DateTo:      utils.FormatISO(row.DateTo),
		IsFavorite:  row.IsFavorite,
		Offers:      splitOfferIDs(row.OfferIDs),
	}
}

func rowFromRecord(record remote.PointRecord) (pointRow, error) {
	dateFrom, err := utils.ParseISO(record.DateFrom)
	if err != nil {
		return pointRow{}, domain.ValidationError{Field: "date_from", Msg: "unparsable date", Err: err}
	}
	dateTo, err := utils.ParseISO(record.DateTo)
	if err != nil {
		return pointRow{}, domain.ValidationError{Field: "date_to", Msg: "unparsable date", Err: err}
	}
	return pointRow{
		ID:            record.ID,
		Type:          record.Type,
		DestinationID: record.Destination,
		BasePrice:     record.BasePrice,
		DateFrom:      dateFrom.UTC(),
		DateTo:        dateTo.UTC(),
		IsFavorite:    record.IsFavorite,
		OfferIDs:      strings.Join(record.Offers, ","),
	}, nil
}

func splitOfferIDs(csv string) []string {
	if strings.TrimSpace(csv) == "" {
		return []string{}
	}
	parts := strings.Split(csv, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
