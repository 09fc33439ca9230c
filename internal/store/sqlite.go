// internal/store/sqlite.go
package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/geoquiz/backend/internal/domain/dataset"
)

const schema = `
CREATE TABLE IF NOT EXISTS entries (
    position INTEGER PRIMARY KEY,
    country TEXT NOT NULL,
    capital TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS country_capitals (
    country TEXT PRIMARY KEY,
    capital TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS capital_countries (
    capital TEXT PRIMARY KEY,
    country TEXT NOT NULL
);
`

// SQLiteStore keeps the dataset cache in a single SQLite file.
type SQLiteStore struct {
	db *sql.DB
}

var _ DatasetStore = (*SQLiteStore)(nil)

func NewSQLite(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// ============================================================================
// Dataset
// ============================================================================

// SaveDataset replaces the cached dataset with d in a single transaction.
func (s *SQLiteStore) SaveDataset(ctx context.Context, d *dataset.Dataset) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, table := range []string{"entries", "country_capitals", "capital_countries"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	entryStmt, err := tx.PrepareContext(ctx, "INSERT INTO entries (position, country, capital) VALUES (?, ?, ?)")
	if err != nil {
		return err
	}
	defer entryStmt.Close()

	for i := range d.Countries {
		if _, err := entryStmt.ExecContext(ctx, i, d.Countries[i], d.Capitals[i]); err != nil {
			return fmt.Errorf("insert entry %d: %w", i, err)
		}
	}

	// Lookups are stored on their own: duplicate names make them diverge
	// from the entry list.
	for country, capital := range d.CountryToCapital {
		if _, err := tx.ExecContext(ctx, "INSERT INTO country_capitals (country, capital) VALUES (?, ?)", country, capital); err != nil {
			return fmt.Errorf("insert country %q: %w", country, err)
		}
	}
	for capital, country := range d.CapitalToCountry {
		if _, err := tx.ExecContext(ctx, "INSERT INTO capital_countries (capital, country) VALUES (?, ?)", capital, country); err != nil {
			return fmt.Errorf("insert capital %q: %w", capital, err)
		}
	}

	return tx.Commit()
}

// LoadDataset reads the cached dataset as it was saved, without validation.
func (s *SQLiteStore) LoadDataset(ctx context.Context) (*dataset.Dataset, error) {
	d := &dataset.Dataset{
		Countries:        []string{},
		Capitals:         []string{},
		CountryToCapital: make(map[string]string),
		CapitalToCountry: make(map[string]string),
	}

	rows, err := s.db.QueryContext(ctx, "SELECT country, capital FROM entries ORDER BY position")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var country, capital string
		if err := rows.Scan(&country, &capital); err != nil {
			return nil, err
		}
		d.Countries = append(d.Countries, country)
		d.Capitals = append(d.Capitals, capital)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(d.Countries) == 0 {
		return nil, ErrEmpty
	}

	if err := s.loadLookup(ctx, "SELECT country, capital FROM country_capitals", d.CountryToCapital); err != nil {
		return nil, err
	}
	if err := s.loadLookup(ctx, "SELECT capital, country FROM capital_countries", d.CapitalToCountry); err != nil {
		return nil, err
	}

	return d, nil
}

func (s *SQLiteStore) loadLookup(ctx context.Context, query string, into map[string]string) error {
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return err
		}
		into[key] = value
	}
	return rows.Err()
}
