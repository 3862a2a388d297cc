package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/erazemk/foodshare/internal/model"
)

// MaxExpiringDays bounds the expiring listings window; cutoffs past year
// 9999 would not compare as dates.
const MaxExpiringDays = 36500

const listingColumns = `id, food_name, quantity, date(expiry_date), provider_id, provider_type,
        location, food_type, meal_type, image_mime`

// CreateListing validates and inserts a food listing. The provider must
// exist; an empty provider type is taken from the provider.
func CreateListing(ctx context.Context, db *sql.DB, l model.Listing) (*model.Listing, error) {
	l.FoodName = strings.TrimSpace(l.FoodName)
	if l.FoodName == "" {
		return nil, &ValidationError{Field: "food_name", Reason: "required"}
	}
	if l.Quantity < 0 {
		return nil, &ValidationError{Field: "quantity", Reason: "must not be negative"}
	}
	if l.ExpiryDate.IsZero() {
		return nil, &ValidationError{Field: "expiry_date", Reason: "required"}
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	provider, err := getProvider(ctx, tx, l.ProviderID)
	if err != nil {
		return nil, err
	}
	if l.ProviderType == "" {
		l.ProviderType = provider.Type
	}

	result, err := tx.ExecContext(ctx,
		`INSERT INTO food_listings (food_name, quantity, expiry_date, provider_id, provider_type, location, food_type, meal_type)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		l.FoodName, l.Quantity, l.ExpiryDate.Format(model.DateLayout), l.ProviderID,
		l.ProviderType, l.Location, l.FoodType, l.MealType,
	)
	if err != nil {
		return nil, fmt.Errorf("creating listing: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting listing id: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing listing: %w", err)
	}

	return GetListing(ctx, db, id)
}

// GetListing returns a listing by ID.
func GetListing(ctx context.Context, db *sql.DB, id int64) (*model.Listing, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT `+listingColumns+` FROM food_listings WHERE id = ?`, id,
	)
	if err != nil {
		return nil, fmt.Errorf("getting listing: %w", err)
	}
	defer rows.Close()

	listings, err := scanListings(rows)
	if err != nil {
		return nil, err
	}
	if len(listings) == 0 {
		return nil, &NotFoundError{Entity: "listing", ID: id}
	}
	return &listings[0], nil
}

// ListFood returns the listings matching every set field of the filter,
// ordered by ID. It returns an empty slice when nothing matches.
func ListFood(ctx context.Context, db *sql.DB, filter model.ListingFilter) ([]model.Listing, error) {
	query := `SELECT ` + listingColumns + ` FROM food_listings WHERE 1=1`
	var args []any

	if filter.City != "" {
		query += ` AND location = ?`
		args = append(args, filter.City)
	}
	if filter.MealType != "" {
		query += ` AND meal_type = ?`
		args = append(args, filter.MealType)
	}
	if filter.FoodType != "" {
		query += ` AND food_type = ?`
		args = append(args, filter.FoodType)
	}
	if filter.ProviderID != 0 {
		query += ` AND provider_id = ?`
		args = append(args, filter.ProviderID)
	}
	if filter.MinQuantity > 0 {
		query += ` AND quantity >= ?`
		args = append(args, filter.MinQuantity)
	}

	query += ` ORDER BY id`

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing food: %w", err)
	}
	defer rows.Close()

	return scanListings(rows)
}

// ExpiringListings returns listings whose expiry date falls on or before the
// calendar day days after now, soonest first. Already expired listings are
// included.
func ExpiringListings(ctx context.Context, db *sql.DB, now time.Time, days int) ([]model.Listing, error) {
	if days < 0 || days > MaxExpiringDays {
		return nil, &ValidationError{Field: "days", Reason: fmt.Sprintf("must be between 0 and %d", MaxExpiringDays)}
	}
	cutoff := now.AddDate(0, 0, days).Format(model.DateLayout)
	rows, err := db.QueryContext(ctx,
		`SELECT `+listingColumns+` FROM food_listings
		 WHERE date(expiry_date) <= ?
		 ORDER BY date(expiry_date), id`, cutoff,
	)
	if err != nil {
		return nil, fmt.Errorf("listing expiring food: %w", err)
	}
	defer rows.Close()

	return scanListings(rows)
}

// SetListingImage sets a listing's photo.
func SetListingImage(ctx context.Context, db *sql.DB, id int64, image []byte, mime string) error {
	result, err := db.ExecContext(ctx,
		`UPDATE food_listings SET image = ?, image_mime = ? WHERE id = ?`,
		image, mime, id,
	)
	if err != nil {
		return fmt.Errorf("setting listing image: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("setting listing image: %w", err)
	}
	if n == 0 {
		return &NotFoundError{Entity: "listing", ID: id}
	}
	return nil
}

// GetListingImage returns a listing's photo and MIME type. A listing
// without a photo yields nil data and no error.
func GetListingImage(ctx context.Context, db *sql.DB, id int64) ([]byte, string, error) {
	var image []byte
	var mime sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT image, image_mime FROM food_listings WHERE id = ?`, id,
	).Scan(&image, &mime)
	if err == sql.ErrNoRows {
		return nil, "", &NotFoundError{Entity: "listing", ID: id}
	}
	if err != nil {
		return nil, "", fmt.Errorf("getting listing image: %w", err)
	}
	return image, mime.String, nil
}

// GetFilterOptions returns the distinct cities, food types and meal types
// present in the listings.
func GetFilterOptions(ctx context.Context, db *sql.DB) (*model.FilterOptions, error) {
	opts := &model.FilterOptions{}
	targets := []struct {
		column string
		dest   *[]string
	}{
		{"location", &opts.Cities},
		{"food_type", &opts.FoodTypes},
		{"meal_type", &opts.MealTypes},
	}

	for _, t := range targets {
		values, err := distinctValues(ctx, db, t.column)
		if err != nil {
			return nil, err
		}
		*t.dest = values
	}
	return opts, nil
}

func distinctValues(ctx context.Context, db *sql.DB, column string) ([]string, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT DISTINCT `+column+` FROM food_listings WHERE `+column+` <> '' ORDER BY `+column,
	)
	if err != nil {
		return nil, fmt.Errorf("listing distinct %s: %w", column, err)
	}
	defer rows.Close()

	values := []string{}
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("scanning %s: %w", column, err)
		}
		values = append(values, v)
	}
	return values, rows.Err()
}

func scanListings(rows *sql.Rows) ([]model.Listing, error) {
	listings := []model.Listing{}
	for rows.Next() {
		var l model.Listing
		var expiry string
		var mime sql.NullString
		if err := rows.Scan(&l.ID, &l.FoodName, &l.Quantity, &expiry, &l.ProviderID, &l.ProviderType,
			&l.Location, &l.FoodType, &l.MealType, &mime); err != nil {
			return nil, fmt.Errorf("scanning listing: %w", err)
		}
		expiryDate, err := time.Parse(model.DateLayout, expiry)
		if err != nil {
			return nil, fmt.Errorf("parsing expiry date of listing %d: %w", l.ID, err)
		}
		l.ExpiryDate = expiryDate
		l.ImageMime = mime.String
		listings = append(listings, l)
	}
	return listings, rows.Err()
}
