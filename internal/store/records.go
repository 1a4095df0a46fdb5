package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/mwiater/capdash/internal/tabular"
)

// DefaultLimit caps Query results when the filter sets no limit.
const DefaultLimit = 100

// RecordFilter narrows Query. Empty fields match everything; Country and
// City compare case-insensitively.
type RecordFilter struct {
	Country string
	City    string
	Limit   int
}

// Records is the restaurants table.
type Records struct {
	store *Store
}

// Load replaces the table contents with t in a single transaction.
func (r *Records) Load(ctx context.Context, t tabular.Table) (err error) {
	tx, err := r.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin load: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM restaurants`); err != nil {
		return fmt.Errorf("clear restaurants: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO restaurants (name, country, city, cuisine) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, rec := range t {
		if _, err = stmt.ExecContext(ctx, rec.Name, rec.Country, rec.City, rec.Cuisine); err != nil {
			return fmt.Errorf("insert row %d: %w", i, err)
		}
	}
	return tx.Commit()
}

// Count returns the number of stored rows.
func (r *Records) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.store.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM restaurants`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count restaurants: %w", err)
	}
	return n, nil
}

// Query lists rows in load order.
func (r *Records) Query(ctx context.Context, f RecordFilter) (tabular.Table, error) {
	var (
		where []string
		args  []any
	)
	if f.Country != "" {
		where = append(where, "country = ? COLLATE NOCASE")
		args = append(args, f.Country)
	}
	if f.City != "" {
		where = append(where, "city = ? COLLATE NOCASE")
		args = append(args, f.City)
	}
	limit := f.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}

	query := `SELECT name, country, city, cuisine FROM restaurants`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY id LIMIT ?"
	args = append(args, limit)

	rows, err := r.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query restaurants: %w", err)
	}
	defer rows.Close()

	out := tabular.Table{}
	for rows.Next() {
		var rec tabular.Record
		if err := rows.Scan(&rec.Name, &rec.Country, &rec.City, &rec.Cuisine); err != nil {
			return nil, fmt.Errorf("scan restaurant: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
