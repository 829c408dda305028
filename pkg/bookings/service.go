// Package bookings implements booking creation, deletion and listing
// against the relational store.
package bookings

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound indicates no booking matched the given identifiers.
var ErrNotFound = errors.New("booking not found")

// CreateParams are the inputs for creating a booking. StartDate and
// EndDate are optional; when either is missing the insert omits the date
// columns and the database defaults apply.
type CreateParams struct {
	ListingID  int64  `json:"listing_id"`
	CustomerID int64  `json:"customer_id"`
	StartDate  string `json:"start_date,omitempty"`
	EndDate    string `json:"end_date,omitempty"`
}

// Service performs booking mutations and lookups. Each mutation is a
// single statement committed immediately; no transaction spans calls.
type Service struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// NewService creates a booking service.
func NewService(pool *pgxpool.Pool, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{pool: pool, logger: logger}
}

// Create inserts a booking and returns the inserted row.
func (s *Service) Create(ctx context.Context, p CreateParams) (map[string]any, error) {
	var (
		sql  string
		args []any
	)
	if p.StartDate != "" && p.EndDate != "" {
		sql = `INSERT INTO bookings (listing_id, customer_id, start_date, end_date) VALUES ($1, $2, $3, $4) RETURNING *`
		args = []any{p.ListingID, p.CustomerID, p.StartDate, p.EndDate}
	} else {
		sql = `INSERT INTO bookings (listing_id, customer_id) VALUES ($1, $2) RETURNING *`
		args = []any{p.ListingID, p.CustomerID}
	}

	rows, err := s.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("creating booking: %w", err)
	}
	defer rows.Close()

	row, err := pgx.CollectOneRow(rows, rowToMap)
	if err != nil {
		return nil, fmt.Errorf("reading created booking: %w", err)
	}

	s.logger.Info("booking created",
		slog.Int64("listing_id", p.ListingID),
		slog.Int64("customer_id", p.CustomerID),
	)
	return row, nil
}

// Delete removes a booking scoped to a customer. A booking_id that does
// not belong to the customer deletes nothing and returns ErrNotFound.
func (s *Service) Delete(ctx context.Context, bookingID, customerID int64) (int64, error) {
	var deletedID int64
	err := s.pool.QueryRow(ctx,
		`DELETE FROM bookings WHERE booking_id = $1 AND customer_id = $2 RETURNING booking_id`,
		bookingID, customerID,
	).Scan(&deletedID)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("deleting booking: %w", err)
	}

	s.logger.Info("booking deleted", slog.Int64("booking_id", deletedID))
	return deletedID, nil
}

// ListByCustomer returns a customer's bookings joined with listing
// details, including booking dates.
func (s *Service) ListByCustomer(ctx context.Context, customerID int64) ([]map[string]any, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT booking_id, customer_id, start_date, end_date,
			airbnb_listings.name AS listing_name,
			airbnb_listings.price AS listing_price,
			airbnb_listings.neighbourhood AS listing_neighborhood
		FROM bookings
		JOIN airbnb_listings ON bookings.listing_id = airbnb_listings.listing_id
		WHERE customer_id = $1
	`, customerID)
	if err != nil {
		return nil, fmt.Errorf("querying bookings: %w", err)
	}
	defer rows.Close()

	results, err := pgx.CollectRows(rows, rowToMap)
	if err != nil {
		return nil, fmt.Errorf("reading booking rows: %w", err)
	}
	return results, nil
}

// rowToMap renders a row as column name to transport-friendly value.
func rowToMap(row pgx.CollectableRow) (map[string]any, error) {
	values, err := row.Values()
	if err != nil {
		return nil, err
	}
	fields := row.FieldDescriptions()
	m := make(map[string]any, len(fields))
	for i, fd := range fields {
		v := values[i]
		if t, ok := v.(time.Time); ok {
			v = t.Format("2006-01-02")
		}
		m[fd.Name] = v
	}
	return m, nil
}
