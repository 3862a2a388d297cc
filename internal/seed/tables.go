package seed

import (
	"strconv"
	"strings"

	"github.com/erazemk/foodshare/internal/model"
	"github.com/erazemk/foodshare/internal/store"
)

// tableSpec describes how one seed file maps onto a table. convert receives
// the row's values in columns order and returns the insert arguments.
type tableSpec struct {
	name    string
	match   string
	columns []string
	insert  string
	convert func(values []string) ([]any, error)
}

var (
	providersTable = tableSpec{
		name:    "providers",
		match:   "provider",
		columns: []string{"Provider_ID", "Name", "Type", "Address", "City", "Contact"},
		insert:  `INSERT INTO providers (id, name, type, address, city, contact) VALUES (?, ?, ?, ?, ?, ?)`,
		convert: func(v []string) ([]any, error) {
			id, err := parseID("Provider_ID", v[0])
			if err != nil {
				return nil, err
			}
			name, err := required("Name", v[1])
			if err != nil {
				return nil, err
			}
			return []any{id, name, v[2], v[3], v[4], v[5]}, nil
		},
	}

	receiversTable = tableSpec{
		name:    "receivers",
		match:   "receiver",
		columns: []string{"Receiver_ID", "Name", "Type", "City", "Contact"},
		insert:  `INSERT INTO receivers (id, name, type, city, contact) VALUES (?, ?, ?, ?, ?)`,
		convert: func(v []string) ([]any, error) {
			id, err := parseID("Receiver_ID", v[0])
			if err != nil {
				return nil, err
			}
			name, err := required("Name", v[1])
			if err != nil {
				return nil, err
			}
			return []any{id, name, v[2], v[3], v[4]}, nil
		},
	}

	listingsTable = tableSpec{
		name:  "food_listings",
		match: "food_listing",
		columns: []string{"Food_ID", "Food_Name", "Quantity", "Expiry_Date", "Provider_ID",
			"Provider_Type", "Location", "Food_Type", "Meal_Type"},
		insert: `INSERT INTO food_listings (id, food_name, quantity, expiry_date, provider_id, provider_type, location, food_type, meal_type)
		         VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		convert: func(v []string) ([]any, error) {
			id, err := parseID("Food_ID", v[0])
			if err != nil {
				return nil, err
			}
			name, err := required("Food_Name", v[1])
			if err != nil {
				return nil, err
			}
			qty, err := strconv.Atoi(v[2])
			if err != nil {
				return nil, &store.ValidationError{Field: "Quantity", Reason: "not an integer: " + strconv.Quote(v[2])}
			}
			if qty < 0 {
				return nil, &store.ValidationError{Field: "Quantity", Reason: "must not be negative"}
			}
			expiry, err := model.ParseDate(v[3])
			if err != nil {
				return nil, &store.ValidationError{Field: "Expiry_Date", Reason: err.Error()}
			}
			providerID, err := parseID("Provider_ID", v[4])
			if err != nil {
				return nil, err
			}
			return []any{id, name, qty, expiry.Format(model.DateLayout), providerID, v[5], v[6], v[7], v[8]}, nil
		},
	}

	claimsTable = tableSpec{
		name:    "claims",
		match:   "claim",
		columns: []string{"Claim_ID", "Food_ID", "Receiver_ID", "Status", "Timestamp"},
		insert:  `INSERT INTO claims (id, listing_id, receiver_id, status, timestamp) VALUES (?, ?, ?, ?, ?)`,
		convert: func(v []string) ([]any, error) {
			id, err := parseID("Claim_ID", v[0])
			if err != nil {
				return nil, err
			}
			listingID, err := parseID("Food_ID", v[1])
			if err != nil {
				return nil, err
			}
			receiverID, err := parseID("Receiver_ID", v[2])
			if err != nil {
				return nil, err
			}
			status := model.ClaimStatus(v[3])
			if !status.Valid() {
				return nil, &store.ValidationError{Field: "Status", Reason: "unknown status " + strconv.Quote(v[3])}
			}
			ts, err := model.ParseTimestamp(v[4])
			if err != nil {
				return nil, &store.ValidationError{Field: "Timestamp", Reason: err.Error()}
			}
			return []any{id, listingID, receiverID, string(status), ts.Format(model.TimestampLayout)}, nil
		},
	}
)

// tables is in foreign-key order.
var tables = []tableSpec{providersTable, receiversTable, listingsTable, claimsTable}

// matchOrder checks the listing fragment first so a name such as
// food_listings_by_provider.csv maps to listings.
var matchOrder = []tableSpec{listingsTable, claimsTable, receiversTable, providersTable}

func parseID(field, s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, &store.ValidationError{Field: field, Reason: "not an integer: " + strconv.Quote(s)}
	}
	if id <= 0 {
		return 0, &store.ValidationError{Field: field, Reason: "must be positive"}
	}
	return id, nil
}

func required(field, s string) (string, error) {
	if strings.TrimSpace(s) == "" {
		return "", &store.ValidationError{Field: field, Reason: "required"}
	}
	return s, nil
}
