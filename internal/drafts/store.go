// Package drafts persists in-progress learner code per scenario slot, so a
// session can be closed and resumed without losing work. Persistence is
// best effort: a broken drafts database must never block running code.
package drafts

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"algoviz/internal/logging"
	"algoviz/internal/step"
)

// Draft is one saved editor state, keyed by structure kind and difficulty.
type Draft struct {
	Kind       step.Target
	Difficulty string
	Source     string
	HintsUsed  int
	UpdatedAt  time.Time
}

// Store manages the drafts database.
type Store struct {
	db     *sql.DB
	dbPath string
	log    *zap.Logger
}

// Open creates or opens the drafts store under dir.
func Open(dir string) (*Store, error) {
	dbPath := filepath.Join(dir, "drafts.db")

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create drafts directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open drafts database: %w", err)
	}

	store := &Store{
		db:     db,
		dbPath: dbPath,
		log:    logging.Get(logging.CategoryDrafts),
	}

	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize drafts schema: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.dbPath
}

func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS drafts (
		kind TEXT NOT NULL,
		difficulty TEXT NOT NULL,
		source TEXT NOT NULL,
		hints_used INTEGER NOT NULL DEFAULT 0,
		updated_at DATETIME NOT NULL,
		PRIMARY KEY (kind, difficulty)
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Save upserts the draft for one scenario slot. Failures are logged and
// swallowed: losing a draft is annoying, losing a run is not acceptable.
func (s *Store) Save(kind step.Target, difficulty, source string) {
	_, err := s.db.Exec(`
		INSERT INTO drafts (kind, difficulty, source, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(kind, difficulty) DO UPDATE SET
			source = excluded.source,
			updated_at = excluded.updated_at`,
		string(kind), difficulty, source, time.Now().UTC())
	if err != nil {
		s.log.Warn("failed to save draft",
			zap.String("kind", string(kind)),
			zap.String("difficulty", difficulty),
			zap.Error(err))
	}
}

// Load returns the draft for one slot, or ok=false when none exists.
func (s *Store) Load(kind step.Target, difficulty string) (Draft, bool) {
	d := Draft{Kind: kind, Difficulty: difficulty}
	err := s.db.QueryRow(`
		SELECT source, hints_used, updated_at FROM drafts
		WHERE kind = ? AND difficulty = ?`,
		string(kind), difficulty).Scan(&d.Source, &d.HintsUsed, &d.UpdatedAt)
	if err == sql.ErrNoRows {
		return Draft{}, false
	}
	if err != nil {
		s.log.Warn("failed to load draft",
			zap.String("kind", string(kind)),
			zap.String("difficulty", difficulty),
			zap.Error(err))
		return Draft{}, false
	}
	return d, true
}

// SetHintsUsed records how many hints the learner has revealed for a slot,
// creating an empty draft row if none exists yet.
func (s *Store) SetHintsUsed(kind step.Target, difficulty string, count int) {
	_, err := s.db.Exec(`
		INSERT INTO drafts (kind, difficulty, source, hints_used, updated_at)
		VALUES (?, ?, '', ?, ?)
		ON CONFLICT(kind, difficulty) DO UPDATE SET
			hints_used = excluded.hints_used,
			updated_at = excluded.updated_at`,
		string(kind), difficulty, count, time.Now().UTC())
	if err != nil {
		s.log.Warn("failed to record hint usage",
			zap.String("kind", string(kind)),
			zap.String("difficulty", difficulty),
			zap.Error(err))
	}
}

// HintsUsed returns the recorded hint count for a slot, zero when unknown.
func (s *Store) HintsUsed(kind step.Target, difficulty string) int {
	var count int
	err := s.db.QueryRow(`
		SELECT hints_used FROM drafts WHERE kind = ? AND difficulty = ?`,
		string(kind), difficulty).Scan(&count)
	if err != nil {
		return 0
	}
	return count
}

// Delete removes the draft for one slot.
func (s *Store) Delete(kind step.Target, difficulty string) {
	_, err := s.db.Exec(`DELETE FROM drafts WHERE kind = ? AND difficulty = ?`,
		string(kind), difficulty)
	if err != nil {
		s.log.Warn("failed to delete draft",
			zap.String("kind", string(kind)),
			zap.String("difficulty", difficulty),
			zap.Error(err))
	}
}

// All returns every saved draft, newest first.
func (s *Store) All() []Draft {
	rows, err := s.db.Query(`
		SELECT kind, difficulty, source, hints_used, updated_at
		FROM drafts ORDER BY updated_at DESC`)
	if err != nil {
		s.log.Warn("failed to list drafts", zap.Error(err))
		return nil
	}
	defer rows.Close()

	var out []Draft
	for rows.Next() {
		var d Draft
		var kind string
		if err := rows.Scan(&kind, &d.Difficulty, &d.Source, &d.HintsUsed, &d.UpdatedAt); err != nil {
			s.log.Warn("failed to scan draft row", zap.Error(err))
			continue
		}
		d.Kind = step.Target(kind)
		out = append(out, d)
	}
	return out
}
