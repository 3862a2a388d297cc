package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/erazemk/foodshare/internal/model"
)

// queryer is satisfied by both *sql.DB and *sql.Tx.
type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// CreateProvider creates a new provider.
func CreateProvider(ctx context.Context, db *sql.DB, p model.Provider) (*model.Provider, error) {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return nil, &ValidationError{Field: "name", Reason: "required"}
	}

	result, err := db.ExecContext(ctx,
		`INSERT INTO providers (name, type, address, city, contact) VALUES (?, ?, ?, ?, ?)`,
		p.Name, p.Type, p.Address, p.City, p.Contact,
	)
	if err != nil {
		return nil, fmt.Errorf("creating provider: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting provider id: %w", err)
	}

	return GetProvider(ctx, db, id)
}

// GetProvider returns a provider by ID.
func GetProvider(ctx context.Context, db *sql.DB, id int64) (*model.Provider, error) {
	return getProvider(ctx, db, id)
}

func getProvider(ctx context.Context, q queryer, id int64) (*model.Provider, error) {
	p := &model.Provider{}
	err := q.QueryRowContext(ctx,
		`SELECT id, name, type, address, city, contact FROM providers WHERE id = ?`, id,
	).Scan(&p.ID, &p.Name, &p.Type, &p.Address, &p.City, &p.Contact)
	if err == sql.ErrNoRows {
		return nil, &NotFoundError{Entity: "provider", ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("getting provider: %w", err)
	}
	return p, nil
}

// ListProviders returns all providers, optionally filtered by city.
func ListProviders(ctx context.Context, db *sql.DB, city string) ([]model.Provider, error) {
	query := `SELECT id, name, type, address, city, contact FROM providers`
	var args []any
	if city != "" {
		query += ` WHERE city = ?`
		args = append(args, city)
	}
	query += ` ORDER BY name, id`

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing providers: %w", err)
	}
	defer rows.Close()

	providers := []model.Provider{}
	for rows.Next() {
		var p model.Provider
		if err := rows.Scan(&p.ID, &p.Name, &p.Type, &p.Address, &p.City, &p.Contact); err != nil {
			return nil, fmt.Errorf("scanning provider: %w", err)
		}
		providers = append(providers, p)
	}
	return providers, rows.Err()
}

// ProviderContacts returns the name and contact of every provider in a city.
func ProviderContacts(ctx context.Context, db *sql.DB, city string) ([]model.ProviderContact, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT name, contact FROM providers WHERE city = ? ORDER BY name`, city,
	)
	if err != nil {
		return nil, fmt.Errorf("listing provider contacts: %w", err)
	}
	defer rows.Close()

	contacts := []model.ProviderContact{}
	for rows.Next() {
		var c model.ProviderContact
		if err := rows.Scan(&c.Name, &c.Contact); err != nil {
			return nil, fmt.Errorf("scanning provider contact: %w", err)
		}
		contacts = append(contacts, c)
	}
	return contacts, rows.Err()
}
