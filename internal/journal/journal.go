/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package journal persists committed cage gestures in a local SQLite database.
package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"cagekit/internal/cage"
	"cagekit/internal/gesture"
	applog "cagekit/internal/log"
	"cagekit/internal/vector"
	"cagekit/internal/version"

	// Pure-Go SQLite driver (CGO-free)
	_ "modernc.org/sqlite"
)

// schemaVersion tracks the journal schema; bump it together with runMigrations.
const schemaVersion = 3

// atLayout is fixed width so the text column sorts chronologically.
const atLayout = "2006-01-02T15:04:05.000000000Z07:00"

// ErrClosed is returned by operations on a closed journal.
var ErrClosed = errors.New("journal: closed")

// Entry is one committed gesture.
type Entry struct {
	ID        uuid.UUID
	Selection string
	Kind      string
	Edges     cage.Edges
	Modifiers gesture.Modifiers
	From      vector.Bounds
	To        vector.Bounds
	At        time.Time
}

// FromEvent converts a controller event into an entry stamped now.
func FromEvent(ev gesture.Event) Entry {
	return Entry{
		Selection: ev.Selection,
		Kind:      ev.Kind.String(),
		Edges:     ev.Edges,
		Modifiers: ev.Modifiers,
		From:      ev.From,
		To:        ev.To,
	}
}

// Journal is safe for concurrent use.
type Journal struct {
	mu     sync.Mutex
	db     *sql.DB
	closed bool
	log    *slog.Logger
}

// Open creates or opens the journal at path, enables WAL and migrates the schema.
func Open(ctx context.Context, path string) (*Journal, error) {
	l := applog.WithOperation(applog.WithComponent("journal"), "open").With(slog.String("path", path))
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("journal path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create journal dir: %w", err)
	}
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)", filepath.ToSlash(path))
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		l.Error("sqlite open failed", slog.Any("err", err))
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL;"); err != nil {
		_ = db.Close()
		l.Error("enable WAL failed", slog.Any("err", err))
		return nil, fmt.Errorf("enable WAL: %w", err)
	}
	if err := ensureVersion(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := runMigrations(ctx, db); err != nil {
		_ = db.Close()
		l.Error("run migrations failed", slog.Any("err", err))
		return nil, err
	}
	l.Debug("journal ready")
	return &Journal{db: db, log: applog.WithComponent("journal")}, nil
}

func ensureVersion(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS version (
		id         INTEGER PRIMARY KEY CHECK(id=1),
		schema     INTEGER NOT NULL,
		app        TEXT,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);`); err != nil {
		return fmt.Errorf("create version table: %w", err)
	}
	now := time.Now().UTC().Format(time.RFC3339)
	var cur int
	err := db.QueryRowContext(ctx, `SELECT schema FROM version WHERE id=1`).Scan(&cur)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		if _, err := db.ExecContext(ctx, `INSERT INTO version (id, schema, app, created_at, updated_at) VALUES(1, 0, ?, ?, ?)`, version.String(), now, now); err != nil {
			return fmt.Errorf("insert version: %w", err)
		}
	case err != nil:
		return fmt.Errorf("read version: %w", err)
	default:
		if _, err := db.ExecContext(ctx, `UPDATE version SET app=?, updated_at=? WHERE id=1`, version.String(), now); err != nil {
			return fmt.Errorf("update version: %w", err)
		}
	}
	return nil
}

// migrations[i] brings the schema from version i to i+1.
var migrations = [][]string{
	{
		`CREATE TABLE IF NOT EXISTS gestures (
			id        TEXT PRIMARY KEY,
			selection TEXT NOT NULL,
			kind      TEXT NOT NULL,
			edges     TEXT NOT NULL DEFAULT '',
			modifiers TEXT NOT NULL DEFAULT '',
			from_x0 REAL, from_y0 REAL, from_x1 REAL, from_y1 REAL,
			to_x0   REAL, to_y0   REAL, to_x1   REAL, to_y1   REAL,
			at        TEXT NOT NULL
		);`,
	},
	{
		`CREATE INDEX IF NOT EXISTS idx_gestures_selection_at ON gestures(selection, at);`,
	},
	{
		// Pad RFC3339Nano stamps written before atLayout to nine fraction digits.
		`UPDATE gestures SET at = substr(at, 1, 19) || '.' ||
			substr(CASE WHEN instr(at, '.') > 0 THEN substr(at, 21, length(at) - 21) ELSE '' END || '000000000', 1, 9) || 'Z'
			WHERE at LIKE '%Z' AND length(at) <> 30;`,
	},
}

func runMigrations(ctx context.Context, db *sql.DB) error {
	var cur int
	if err := db.QueryRowContext(ctx, `SELECT schema FROM version WHERE id=1`).Scan(&cur); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	for ; cur < schemaVersion; cur++ {
		next := cur + 1
		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin migration %d: %w", next, err)
		}
		for _, q := range migrations[cur] {
			if _, err := tx.ExecContext(ctx, q); err != nil {
				_ = tx.Rollback()
				return fmt.Errorf("migration %d stmt failed: %w", next, err)
			}
		}
		if _, err := tx.ExecContext(ctx, `UPDATE version SET schema=?, updated_at=? WHERE id=1`, next, time.Now().UTC().Format(time.RFC3339)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d update version: %w", next, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("migration %d commit: %w", next, err)
		}
	}
	return nil
}

// SchemaVersion reports the schema version stored in the database.
func (j *Journal) SchemaVersion(ctx context.Context) (int, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.closed {
		return 0, ErrClosed
	}
	var v int
	if err := j.db.QueryRowContext(ctx, `SELECT schema FROM version WHERE id=1`).Scan(&v); err != nil {
		return 0, fmt.Errorf("read schema version: %w", err)
	}
	return v, nil
}

// Record stores e, assigning an ID and timestamp when they are unset.
func (j *Journal) Record(ctx context.Context, e Entry) (uuid.UUID, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.closed {
		return uuid.Nil, ErrClosed
	}
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.At.IsZero() {
		e.At = time.Now()
	}
	_, err := j.db.ExecContext(ctx, `INSERT INTO gestures
		(id, selection, kind, edges, modifiers, from_x0, from_y0, from_x1, from_y1, to_x0, to_y0, to_x1, to_y1, at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID.String(), e.Selection, e.Kind, formatEdges(e.Edges), formatModifiers(e.Modifiers),
		e.From[0].X, e.From[0].Y, e.From[1].X, e.From[1].Y,
		e.To[0].X, e.To[0].Y, e.To[1].X, e.To[1].Y,
		e.At.UTC().Format(atLayout))
	if err != nil {
		return uuid.Nil, fmt.Errorf("insert gesture: %w", err)
	}
	j.log.Debug("gesture recorded", slog.String("id", e.ID.String()), slog.String("kind", e.Kind))
	return e.ID, nil
}

// List returns up to limit entries, newest first. limit <= 0 returns all.
func (j *Journal) List(ctx context.Context, limit int) ([]Entry, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.closed {
		return nil, ErrClosed
	}
	if limit <= 0 {
		limit = -1
	}
	rows, err := j.db.QueryContext(ctx, `SELECT id, selection, kind, edges, modifiers,
		from_x0, from_y0, from_x1, from_y1, to_x0, to_y0, to_x1, to_y1, at
		FROM gestures ORDER BY at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query gestures: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var (
			e               Entry
			id, edges, mods string
			at              string
		)
		if err := rows.Scan(&id, &e.Selection, &e.Kind, &edges, &mods,
			&e.From[0].X, &e.From[0].Y, &e.From[1].X, &e.From[1].Y,
			&e.To[0].X, &e.To[0].Y, &e.To[1].X, &e.To[1].Y, &at); err != nil {
			return nil, fmt.Errorf("scan gesture: %w", err)
		}
		if e.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("parse gesture id %q: %w", id, err)
		}
		if e.At, err = time.Parse(time.RFC3339Nano, at); err != nil {
			return nil, fmt.Errorf("parse gesture time %q: %w", at, err)
		}
		e.Edges = parseEdges(edges)
		e.Modifiers = parseModifiers(mods)
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate gestures: %w", err)
	}
	return out, nil
}

// Close releases the database. Further calls return ErrClosed.
func (j *Journal) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.closed {
		return ErrClosed
	}
	j.closed = true
	if err := j.db.Close(); err != nil {
		return fmt.Errorf("close journal: %w", err)
	}
	return nil
}

func formatEdges(e cage.Edges) string {
	return joinFlags([]string{"top", "bottom", "left", "right"}, []bool{e.Top, e.Bottom, e.Left, e.Right})
}

func parseEdges(s string) cage.Edges {
	f := splitFlags(s)
	return cage.Edges{Top: f["top"], Bottom: f["bottom"], Left: f["left"], Right: f["right"]}
}

func formatModifiers(m gesture.Modifiers) string {
	return joinFlags([]string{"center", "constrain", "axis-align"}, []bool{m.Center, m.Constrain, m.AxisAlign})
}

func parseModifiers(s string) gesture.Modifiers {
	f := splitFlags(s)
	return gesture.Modifiers{Center: f["center"], Constrain: f["constrain"], AxisAlign: f["axis-align"]}
}

func joinFlags(names []string, set []bool) string {
	var on []string
	for i, n := range names {
		if set[i] {
			on = append(on, n)
		}
	}
	return strings.Join(on, ",")
}

func splitFlags(s string) map[string]bool {
	out := map[string]bool{}
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out[p] = true
		}
	}
	return out
}
