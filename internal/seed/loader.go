package seed

import (
	"context"
	"database/sql"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/erazemk/foodshare/internal/store"
)

// loadFile parses one seed file and inserts its rows inside tx.
func loadFile(ctx context.Context, tx *sql.Tx, t tableSpec, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, &LoadError{File: path, Err: err}
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err == io.EOF {
		return 0, &LoadError{File: path, Err: errors.New("empty file, header row expected")}
	}
	if err != nil {
		return 0, csvError(path, err)
	}

	index, err := columnIndex(header, t.columns)
	if err != nil {
		return 0, &LoadError{File: path, Line: 1, Err: err}
	}

	stmt, err := tx.PrepareContext(ctx, t.insert)
	if err != nil {
		return 0, fmt.Errorf("preparing insert into %s: %w", t.name, err)
	}
	defer stmt.Close()

	values := make([]string, len(t.columns))
	rows := 0
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return rows, csvError(path, err)
		}
		line, _ := r.FieldPos(0)

		for i, col := range index {
			values[i] = strings.TrimSpace(record[col])
		}
		args, err := t.convert(values)
		if err != nil {
			return rows, &LoadError{File: path, Line: line, Err: err}
		}

		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			if store.IsForeignKeyViolation(err) {
				return rows, &LoadError{File: path, Line: line, Err: fmt.Errorf("references a missing record: %w", err)}
			}
			return rows, &LoadError{File: path, Line: line, Err: err}
		}
		rows++
	}
	return rows, nil
}

// columnIndex maps each expected column to its position in the header,
// matching names case-insensitively.
func columnIndex(header, columns []string) ([]int, error) {
	pos := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimPrefix(h, "\ufeff")
		pos[strings.ToLower(strings.TrimSpace(h))] = i
	}

	index := make([]int, len(columns))
	var missing []string
	for i, col := range columns {
		p, ok := pos[strings.ToLower(col)]
		if !ok {
			missing = append(missing, col)
			continue
		}
		index[i] = p
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing columns %s", strings.Join(missing, ", "))
	}
	return index, nil
}

func csvError(path string, err error) error {
	var perr *csv.ParseError
	if errors.As(err, &perr) {
		return &LoadError{File: path, Line: perr.Line, Err: perr.Err}
	}
	return &LoadError{File: path, Err: err}
}
