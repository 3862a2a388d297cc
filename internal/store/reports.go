package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/erazemk/foodshare/internal/model"
)

// ReportKind names an aggregate report.
type ReportKind string

// Aggregate report kinds.
const (
	ReportTotalQuantity              ReportKind = "total_quantity"
	ReportProvidersPerCity           ReportKind = "providers_per_city"
	ReportReceiversPerCity           ReportKind = "receivers_per_city"
	ReportProviderTypesByListings    ReportKind = "provider_types_by_listings"
	ReportTopProvidersByListings     ReportKind = "top_providers_by_listings"
	ReportReceiversByClaims          ReportKind = "receivers_by_claims"
	ReportListingsPerCity            ReportKind = "listings_per_city"
	ReportFoodTypes                  ReportKind = "food_types"
	ReportClaimsPerCity              ReportKind = "claims_per_city"
	ReportMostClaimedFoods           ReportKind = "most_claimed_foods"
	ReportProvidersByCompletedClaims ReportKind = "providers_by_completed_claims"
	ReportClaimStatusPercentage      ReportKind = "claim_status_percentage"
	ReportAvgQuantityPerReceiver     ReportKind = "avg_quantity_per_receiver"
	ReportClaimedMealTypes           ReportKind = "claimed_meal_types"
	ReportQuantityByProvider         ReportKind = "quantity_by_provider"
	ReportTopFoodsByQuantity         ReportKind = "top_foods_by_quantity"
)

// ReportInfo describes an aggregate report.
type ReportInfo struct {
	Kind        ReportKind `json:"kind"`
	Description string     `json:"description"`
}

// report selects label and metric columns; Aggregate applies the ordering.
type report struct {
	ReportInfo
	query string
	limit int
}

var reports = []report{
	{
		ReportInfo: ReportInfo{ReportTotalQuantity, "Total quantity of food across all listings"},
		query:      `SELECT 'Total' AS label, COALESCE(SUM(quantity), 0) AS metric FROM food_listings`,
	},
	{
		ReportInfo: ReportInfo{ReportProvidersPerCity, "Number of providers in each city"},
		query:      `SELECT city AS label, COUNT(*) AS metric FROM providers GROUP BY city`,
	},
	{
		ReportInfo: ReportInfo{ReportReceiversPerCity, "Number of receivers in each city"},
		query:      `SELECT city AS label, COUNT(*) AS metric FROM receivers GROUP BY city`,
	},
	{
		ReportInfo: ReportInfo{ReportProviderTypesByListings, "Listings contributed by each provider type"},
		query:      `SELECT provider_type AS label, COUNT(*) AS metric FROM food_listings GROUP BY provider_type`,
	},
	{
		ReportInfo: ReportInfo{ReportTopProvidersByListings, "Providers with the most listings"},
		query: `SELECT p.name AS label, COUNT(*) AS metric
		          FROM food_listings f JOIN providers p ON p.id = f.provider_id
		         GROUP BY p.name`,
		limit: 10,
	},
	{
		ReportInfo: ReportInfo{ReportReceiversByClaims, "Receivers with the most claims"},
		query: `SELECT r.name AS label, COUNT(*) AS metric
		          FROM claims c JOIN receivers r ON r.id = c.receiver_id
		         GROUP BY r.name`,
	},
	{
		ReportInfo: ReportInfo{ReportListingsPerCity, "Number of listings in each city"},
		query:      `SELECT location AS label, COUNT(*) AS metric FROM food_listings GROUP BY location`,
	},
	{
		ReportInfo: ReportInfo{ReportFoodTypes, "Most common food types"},
		query:      `SELECT food_type AS label, COUNT(*) AS metric FROM food_listings GROUP BY food_type`,
	},
	{
		ReportInfo: ReportInfo{ReportClaimsPerCity, "Claims against listings in each city"},
		query: `SELECT f.location AS label, COUNT(*) AS metric
		          FROM claims c JOIN food_listings f ON f.id = c.listing_id
		         GROUP BY f.location`,
	},
	{
		ReportInfo: ReportInfo{ReportMostClaimedFoods, "Food names by number of claims"},
		query: `SELECT f.food_name AS label, COUNT(*) AS metric
		          FROM claims c JOIN food_listings f ON f.id = c.listing_id
		         GROUP BY f.food_name`,
	},
	{
		ReportInfo: ReportInfo{ReportProvidersByCompletedClaims, "Providers with the most completed claims"},
		query: `SELECT p.name AS label, COUNT(*) AS metric
		          FROM claims c
		          JOIN food_listings f ON f.id = c.listing_id
		          JOIN providers p ON p.id = f.provider_id
		         WHERE c.status = 'Completed'
		         GROUP BY p.name`,
	},
	{
		ReportInfo: ReportInfo{ReportClaimStatusPercentage, "Share of claims in each status, in percent"},
		query: `SELECT status AS label,
		               ROUND(100.0 * COUNT(*) / (SELECT COUNT(*) FROM claims), 2) AS metric
		          FROM claims GROUP BY status`,
	},
	{
		ReportInfo: ReportInfo{ReportAvgQuantityPerReceiver, "Average listing quantity claimed by each receiver"},
		query: `SELECT r.name AS label, ROUND(AVG(f.quantity), 2) AS metric
		          FROM claims c
		          JOIN receivers r ON r.id = c.receiver_id
		          JOIN food_listings f ON f.id = c.listing_id
		         GROUP BY r.name`,
	},
	{
		ReportInfo: ReportInfo{ReportClaimedMealTypes, "Meal types by number of claims"},
		query: `SELECT f.meal_type AS label, COUNT(*) AS metric
		          FROM claims c JOIN food_listings f ON f.id = c.listing_id
		         GROUP BY f.meal_type`,
	},
	{
		ReportInfo: ReportInfo{ReportQuantityByProvider, "Total quantity donated by each provider"},
		query: `SELECT p.name AS label, SUM(f.quantity) AS metric
		          FROM food_listings f JOIN providers p ON p.id = f.provider_id
		         GROUP BY p.name`,
	},
	{
		ReportInfo: ReportInfo{ReportTopFoodsByQuantity, "Top food items by total quantity"},
		query:      `SELECT food_name AS label, SUM(quantity) AS metric FROM food_listings GROUP BY food_name`,
		limit:      10,
	},
}

// AggregateKinds lists the available aggregate reports.
func AggregateKinds() []ReportInfo {
	infos := make([]ReportInfo, len(reports))
	for i, r := range reports {
		infos[i] = r.ReportInfo
	}
	return infos
}

// Aggregate runs the named report. Rows are ordered by metric descending,
// ties broken by label ascending.
func Aggregate(ctx context.Context, db *sql.DB, kind ReportKind) ([]model.Pair, error) {
	var rep *report
	for i := range reports {
		if reports[i].Kind == kind {
			rep = &reports[i]
			break
		}
	}
	if rep == nil {
		return nil, &ValidationError{Field: "report", Reason: fmt.Sprintf("unknown kind %q", kind)}
	}

	query := `SELECT label, metric FROM (` + rep.query + `) ORDER BY metric DESC, label ASC`
	if rep.limit > 0 {
		query += fmt.Sprintf(` LIMIT %d`, rep.limit)
	}

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("running report %s: %w", kind, err)
	}
	defer rows.Close()

	pairs := []model.Pair{}
	for rows.Next() {
		var label sql.NullString
		var metric sql.NullFloat64
		if err := rows.Scan(&label, &metric); err != nil {
			return nil, fmt.Errorf("scanning report %s: %w", kind, err)
		}
		pairs = append(pairs, model.Pair{Label: label.String, Metric: metric.Float64})
	}
	return pairs, rows.Err()
}

// GetSummary returns the headline counts shown on the dashboard.
func GetSummary(ctx context.Context, db *sql.DB) (*model.Summary, error) {
	s := &model.Summary{}
	err := db.QueryRowContext(ctx,
		`SELECT (SELECT COALESCE(SUM(quantity), 0) FROM food_listings),
		        (SELECT COUNT(*) FROM providers),
		        (SELECT COUNT(*) FROM receivers),
		        (SELECT COUNT(*) FROM food_listings),
		        (SELECT COUNT(*) FROM claims)`,
	).Scan(&s.TotalQuantity, &s.Providers, &s.Receivers, &s.Listings, &s.Claims)
	if err != nil {
		return nil, fmt.Errorf("getting summary: %w", err)
	}
	return s, nil
}
