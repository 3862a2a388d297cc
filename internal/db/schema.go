package db

import (
	"database/sql"
	"fmt"
)

// schema is the full database schema.
const schema = `
CREATE TABLE IF NOT EXISTS providers (
    id      INTEGER PRIMARY KEY,
    name    TEXT NOT NULL,
    type    TEXT NOT NULL DEFAULT '',
    address TEXT NOT NULL DEFAULT '',
    city    TEXT NOT NULL DEFAULT '',
    contact TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS receivers (
    id      INTEGER PRIMARY KEY,
    name    TEXT NOT NULL,
    type    TEXT NOT NULL DEFAULT '',
    city    TEXT NOT NULL DEFAULT '',
    contact TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS food_listings (
    id            INTEGER PRIMARY KEY,
    food_name     TEXT NOT NULL,
    quantity      INTEGER NOT NULL CHECK (quantity >= 0),
    expiry_date   DATE NOT NULL,
    provider_id   INTEGER NOT NULL REFERENCES providers(id),
    provider_type TEXT NOT NULL DEFAULT '',
    location      TEXT NOT NULL DEFAULT '',
    food_type     TEXT NOT NULL DEFAULT '',
    meal_type     TEXT NOT NULL DEFAULT '',
    image         BLOB,
    image_mime    TEXT
);

CREATE INDEX IF NOT EXISTS idx_food_listings_provider ON food_listings(provider_id);
CREATE INDEX IF NOT EXISTS idx_food_listings_location ON food_listings(location);

CREATE TABLE IF NOT EXISTS claims (
    id          INTEGER PRIMARY KEY,
    listing_id  INTEGER NOT NULL REFERENCES food_listings(id),
    receiver_id INTEGER NOT NULL REFERENCES receivers(id),
    status      TEXT NOT NULL DEFAULT 'Pending' CHECK (status IN ('Pending', 'Completed', 'Cancelled')),
    timestamp   DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_claims_listing ON claims(listing_id);
CREATE INDEX IF NOT EXISTS idx_claims_receiver ON claims(receiver_id);

CREATE TABLE IF NOT EXISTS settings (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
);
`

// Tables lists the data tables in foreign-key order.
var Tables = []string{"providers", "receivers", "food_listings", "claims"}

// EnsureSchema creates all tables and indexes if they don't already exist.
func EnsureSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}
