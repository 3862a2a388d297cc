package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/erazemk/foodshare/internal/model"
)

const claimSelect = `SELECT c.id, c.listing_id, c.receiver_id, c.status,
        strftime('%Y-%m-%d %H:%M:%S', c.timestamp),
        f.food_name, r.name
   FROM claims c
   JOIN food_listings f ON f.id = c.listing_id
   JOIN receivers r ON r.id = c.receiver_id`

// CreateClaim records a Pending claim by a receiver against a listing.
// Both must exist; nothing is inserted otherwise.
func CreateClaim(ctx context.Context, db *sql.DB, listingID, receiverID int64) (*model.Claim, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if err := ensureExists(ctx, tx, "food_listings", "listing", listingID); err != nil {
		return nil, err
	}
	if _, err := getReceiver(ctx, tx, receiverID); err != nil {
		return nil, err
	}

	result, err := tx.ExecContext(ctx,
		`INSERT INTO claims (listing_id, receiver_id, status, timestamp) VALUES (?, ?, ?, ?)`,
		listingID, receiverID, model.ClaimPending, time.Now().UTC().Format(model.TimestampLayout),
	)
	if err != nil {
		return nil, fmt.Errorf("creating claim: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting claim id: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing claim: %w", err)
	}

	return GetClaim(ctx, db, id)
}

// UpdateClaimStatus moves a Pending claim to Completed or Cancelled.
// Terminal claims are left untouched and yield an InvalidTransitionError
// whatever the target; a Pending claim with any other target yields a
// ValidationError.
func UpdateClaimStatus(ctx context.Context, db *sql.DB, claimID int64, status model.ClaimStatus) (*model.Claim, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var current model.ClaimStatus
	err = tx.QueryRowContext(ctx, `SELECT status FROM claims WHERE id = ?`, claimID).Scan(&current)
	if err == sql.ErrNoRows {
		return nil, &NotFoundError{Entity: "claim", ID: claimID}
	}
	if err != nil {
		return nil, fmt.Errorf("checking claim status: %w", err)
	}

	// A terminal claim rejects every target, valid or not.
	if current.Terminal() {
		return nil, &InvalidTransitionError{ClaimID: claimID, From: current, To: status}
	}
	if !model.CanTransition(current, status) {
		return nil, &ValidationError{Field: "status", Reason: fmt.Sprintf("must be %s or %s", model.ClaimCompleted, model.ClaimCancelled)}
	}

	// The status guard keeps a concurrent update from overwriting a terminal state.
	result, err := tx.ExecContext(ctx,
		`UPDATE claims SET status = ? WHERE id = ? AND status = ?`,
		status, claimID, model.ClaimPending,
	)
	if err != nil {
		return nil, fmt.Errorf("updating claim status: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("updating claim status: %w", err)
	}
	if n == 0 {
		return nil, &InvalidTransitionError{ClaimID: claimID, From: current, To: status}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing claim status: %w", err)
	}

	return GetClaim(ctx, db, claimID)
}

// GetClaim returns a claim by ID.
func GetClaim(ctx context.Context, db *sql.DB, id int64) (*model.Claim, error) {
	rows, err := db.QueryContext(ctx, claimSelect+` WHERE c.id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("getting claim: %w", err)
	}
	defer rows.Close()

	claims, err := scanClaims(rows)
	if err != nil {
		return nil, err
	}
	if len(claims) == 0 {
		return nil, &NotFoundError{Entity: "claim", ID: id}
	}
	return &claims[0], nil
}

// ListClaims returns claims, newest first, optionally filtered by status.
func ListClaims(ctx context.Context, db *sql.DB, status model.ClaimStatus) ([]model.Claim, error) {
	query := claimSelect
	var args []any
	if status != "" {
		query += ` WHERE c.status = ?`
		args = append(args, status)
	}
	query += ` ORDER BY c.timestamp DESC, c.id DESC`

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing claims: %w", err)
	}
	defer rows.Close()

	return scanClaims(rows)
}

func ensureExists(ctx context.Context, q queryer, table, entity string, id int64) error {
	var found int
	err := q.QueryRowContext(ctx, `SELECT 1 FROM `+table+` WHERE id = ?`, id).Scan(&found)
	if err == sql.ErrNoRows {
		return &NotFoundError{Entity: entity, ID: id}
	}
	if err != nil {
		return fmt.Errorf("checking %s: %w", entity, err)
	}
	return nil
}

func scanClaims(rows *sql.Rows) ([]model.Claim, error) {
	claims := []model.Claim{}
	for rows.Next() {
		var c model.Claim
		var ts string
		if err := rows.Scan(&c.ID, &c.ListingID, &c.ReceiverID, &c.Status, &ts, &c.FoodName, &c.ReceiverName); err != nil {
			return nil, fmt.Errorf("scanning claim: %w", err)
		}
		t, err := time.Parse(model.TimestampLayout, ts)
		if err != nil {
			return nil, fmt.Errorf("parsing timestamp of claim %d: %w", c.ID, err)
		}
		c.Timestamp = t
		claims = append(claims, c)
	}
	return claims, rows.Err()
}
