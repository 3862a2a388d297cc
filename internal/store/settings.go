package store

import (
	"context"
	"database/sql"
	"fmt"
)

// Setting keys.
const (
	SettingSeededAt = "seeded_at"
	SettingSeedDir  = "seed_dir"
)

// GetSetting returns a stored setting. A missing key yields "" and false.
func GetSetting(ctx context.Context, db *sql.DB, key string) (string, bool, error) {
	var value string
	err := db.QueryRowContext(ctx,
		`SELECT value FROM settings WHERE key = ?`, key,
	).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("querying setting %s: %w", key, err)
	}
	return value, true, nil
}

// SetSettingTx stores a setting inside an open transaction.
func SetSettingTx(ctx context.Context, tx *sql.Tx, key, value string) error {
	return setSetting(ctx, tx, key, value)
}

func setSetting(ctx context.Context, q queryer, key, value string) error {
	_, err := q.ExecContext(ctx,
		`INSERT INTO settings (key, value) VALUES (?, ?)
		 ON CONFLICT (key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("storing setting %s: %w", key, err)
	}
	return nil
}
