// Package seed bootstraps an empty store from CSV seed files.
package seed

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/erazemk/foodshare/internal/db"
	"github.com/erazemk/foodshare/internal/store"
)

// LoadError reports a seed file that is missing or malformed. Line is 0
// when the problem is not tied to a particular row.
type LoadError struct {
	File string
	Line int
	Err  error
}

func (e *LoadError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("seed file %s line %d: %v", e.File, e.Line, e.Err)
	}
	return fmt.Sprintf("seed file %s: %v", e.File, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Result describes what Bootstrap did.
type Result struct {
	// Seeded is false when the store already held data.
	Seeded bool
	// Files maps table name to the seed file loaded into it.
	Files map[string]string
	// Rows maps table name to the number of rows loaded.
	Rows map[string]int
}

// Bootstrap ensures the schema exists and, if the store holds no data yet,
// loads the four seed files found in dir in a single transaction. Running it
// against a populated store is a no-op.
func Bootstrap(ctx context.Context, database *sql.DB, dir string) (*Result, error) {
	if err := db.EnsureSchema(database); err != nil {
		return nil, err
	}

	populated, err := HasData(ctx, database)
	if err != nil {
		return nil, err
	}
	if populated {
		slog.Info("store already populated, skipping seed load")
		return &Result{}, nil
	}

	files, err := Locate(dir)
	if err != nil {
		return nil, err
	}

	tx, err := database.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	res := &Result{Seeded: true, Files: files, Rows: make(map[string]int)}
	for _, t := range tables {
		n, err := loadFile(ctx, tx, t, files[t.name])
		if err != nil {
			return nil, err
		}
		res.Rows[t.name] = n
		slog.Info("seed table loaded", "table", t.name, "file", files[t.name], "rows", n)
	}

	if err := store.SetSettingTx(ctx, tx, store.SettingSeededAt, time.Now().UTC().Format(time.RFC3339)); err != nil {
		return nil, err
	}
	if err := store.SetSettingTx(ctx, tx, store.SettingSeedDir, dir); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing seed data: %w", err)
	}
	return res, nil
}

// HasData reports whether any of the data tables holds a row.
func HasData(ctx context.Context, database *sql.DB) (bool, error) {
	for _, table := range db.Tables {
		var exists bool
		err := database.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM `+table+`)`).Scan(&exists)
		if err != nil {
			return false, fmt.Errorf("checking %s: %w", table, err)
		}
		if exists {
			return true, nil
		}
	}
	return false, nil
}

// Locate finds the seed file for each table among the CSV files in dir.
// A file belongs to the first table whose name fragment appears in its
// lower-cased file name.
func Locate(dir string) (map[string]string, error) {
	if dir == "" {
		return nil, &LoadError{File: "(none)", Err: fmt.Errorf("no seed directory configured")}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &LoadError{File: dir, Err: err}
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.EqualFold(filepath.Ext(e.Name()), ".csv") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	files := make(map[string]string)
	for _, name := range names {
		lower := strings.ToLower(name)
		for _, t := range matchOrder {
			if !strings.Contains(lower, t.match) {
				continue
			}
			path := filepath.Join(dir, name)
			if prev, ok := files[t.name]; ok {
				return nil, &LoadError{File: path, Err: fmt.Errorf("ambiguous seed file for %s, already using %s", t.name, prev)}
			}
			files[t.name] = path
			break
		}
	}

	for _, t := range tables {
		if _, ok := files[t.name]; !ok {
			return nil, &LoadError{
				File: filepath.Join(dir, "*"+t.match+"*.csv"),
				Err:  fmt.Errorf("seed file for %s not found: %w", t.name, os.ErrNotExist),
			}
		}
	}
	return files, nil
}
