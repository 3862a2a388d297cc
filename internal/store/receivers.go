package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/erazemk/foodshare/internal/model"
)

// CreateReceiver creates a new receiver.
func CreateReceiver(ctx context.Context, db *sql.DB, r model.Receiver) (*model.Receiver, error) {
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		return nil, &ValidationError{Field: "name", Reason: "required"}
	}

	result, err := db.ExecContext(ctx,
		`INSERT INTO receivers (name, type, city, contact) VALUES (?, ?, ?, ?)`,
		r.Name, r.Type, r.City, r.Contact,
	)
	if err != nil {
		return nil, fmt.Errorf("creating receiver: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting receiver id: %w", err)
	}

	return GetReceiver(ctx, db, id)
}

// GetReceiver returns a receiver by ID.
func GetReceiver(ctx context.Context, db *sql.DB, id int64) (*model.Receiver, error) {
	return getReceiver(ctx, db, id)
}

func getReceiver(ctx context.Context, q queryer, id int64) (*model.Receiver, error) {
	r := &model.Receiver{}
	err := q.QueryRowContext(ctx,
		`SELECT id, name, type, city, contact FROM receivers WHERE id = ?`, id,
	).Scan(&r.ID, &r.Name, &r.Type, &r.City, &r.Contact)
	if err == sql.ErrNoRows {
		return nil, &NotFoundError{Entity: "receiver", ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("getting receiver: %w", err)
	}
	return r, nil
}

// ListReceivers returns all receivers, optionally filtered by city.
func ListReceivers(ctx context.Context, db *sql.DB, city string) ([]model.Receiver, error) {
	query := `SELECT id, name, type, city, contact FROM receivers`
	var args []any
	if city != "" {
		query += ` WHERE city = ?`
		args = append(args, city)
	}
	query += ` ORDER BY name, id`

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing receivers: %w", err)
	}
	defer rows.Close()

	receivers := []model.Receiver{}
	for rows.Next() {
		var r model.Receiver
		if err := rows.Scan(&r.ID, &r.Name, &r.Type, &r.City, &r.Contact); err != nil {
			return nil, fmt.Errorf("scanning receiver: %w", err)
		}
		receivers = append(receivers, r)
	}
	return receivers, rows.Err()
}
