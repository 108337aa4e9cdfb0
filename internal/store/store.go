// Package store persists named scenarios (an input record and its computed
// summary) in a local SQLite database.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/rshade/lcaopt/internal/lca"
)

// ErrNotFound is returned when no scenario matches an ID or name.
var ErrNotFound = errors.New("scenario not found")

// ErrEmptyName is returned when saving a scenario without a name.
var ErrEmptyName = errors.New("scenario name must not be empty")

// Scenario is a saved input record with its summary.
type Scenario struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	Notes     string            `json:"notes,omitempty"`
	CreatedAt time.Time         `json:"createdAt"`
	Input     lca.ImpactInput   `json:"input"`
	Summary   lca.ImpactSummary `json:"summary"`
}

// DB is a scenario store.
type DB struct {
	sql *sql.DB
	now func() time.Time
}

// Open opens (creating if needed) the database at path and migrates it.
func Open(path string) (*DB, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("creating store directory: %w", err)
		}
	}

	dsn := "file:" + path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := autoMigrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &DB{sql: db, now: time.Now}, nil
}

// Close closes the database.
func (d *DB) Close() error {
	return d.sql.Close()
}

// Save stores a new scenario and returns it with its generated ID.
func (d *DB) Save(ctx context.Context, name, notes string, in lca.ImpactInput, summary lca.ImpactSummary) (Scenario, error) {
	if name == "" {
		return Scenario{}, ErrEmptyName
	}

	inputJSON, err := json.Marshal(in)
	if err != nil {
		return Scenario{}, fmt.Errorf("encoding input: %w", err)
	}
	summaryJSON, err := json.Marshal(summary)
	if err != nil {
		return Scenario{}, fmt.Errorf("encoding summary: %w", err)
	}

	sc := Scenario{
		ID:        ulid.Make().String(),
		Name:      name,
		Notes:     notes,
		CreatedAt: d.now().UTC().Truncate(time.Millisecond),
		Input:     in,
		Summary:   summary,
	}
	_, err = d.sql.ExecContext(ctx,
		`INSERT INTO scenarios (id, name, notes, created_at, input_json, summary_json, total_co2)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		sc.ID, sc.Name, sc.Notes, sc.CreatedAt.Format(time.RFC3339Nano),
		string(inputJSON), string(summaryJSON), summary.TotalCO2Emissions)
	if err != nil {
		return Scenario{}, fmt.Errorf("inserting scenario: %w", err)
	}
	return sc, nil
}

// Get returns the scenario with the given ID, or the most recent scenario
// with that name.
func (d *DB) Get(ctx context.Context, ref string) (Scenario, error) {
	row := d.sql.QueryRowContext(ctx,
		`SELECT id, name, notes, created_at, input_json, summary_json FROM scenarios
		 WHERE id = ? OR name = ? ORDER BY (id = ?) DESC, id DESC LIMIT 1`, ref, ref, ref)
	sc, err := scanScenario(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Scenario{}, fmt.Errorf("%w: %s", ErrNotFound, ref)
	}
	return sc, err
}

// List returns every scenario, oldest first.
func (d *DB) List(ctx context.Context) ([]Scenario, error) {
	rows, err := d.sql.QueryContext(ctx,
		`SELECT id, name, notes, created_at, input_json, summary_json FROM scenarios ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("listing scenarios: %w", err)
	}
	defer rows.Close()

	var out []Scenario
	for rows.Next() {
		sc, scanErr := scanScenario(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, sc)
	}
	return out, rows.Err()
}

// Delete removes the scenario with the given ID.
func (d *DB) Delete(ctx context.Context, id string) error {
	res, err := d.sql.ExecContext(ctx, `DELETE FROM scenarios WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting scenario: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting scenario: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanScenario(s scanner) (Scenario, error) {
	var (
		sc                     Scenario
		created                string
		inputJSON, summaryJSON string
	)
	if err := s.Scan(&sc.ID, &sc.Name, &sc.Notes, &created, &inputJSON, &summaryJSON); err != nil {
		return Scenario{}, err
	}

	t, err := time.Parse(time.RFC3339Nano, created)
	if err != nil {
		return Scenario{}, fmt.Errorf("parsing created_at of %s: %w", sc.ID, err)
	}
	sc.CreatedAt = t
	if err := json.Unmarshal([]byte(inputJSON), &sc.Input); err != nil {
		return Scenario{}, fmt.Errorf("decoding input of %s: %w", sc.ID, err)
	}
	if err := json.Unmarshal([]byte(summaryJSON), &sc.Summary); err != nil {
		return Scenario{}, fmt.Errorf("decoding summary of %s: %w", sc.ID, err)
	}
	return sc, nil
}
