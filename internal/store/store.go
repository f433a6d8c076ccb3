// Package store handles SQLite persistence of the stats record.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/verte-zerg/nihongo/internal/logger"
	"github.com/verte-zerg/nihongo/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// StatsKey is the fixed key of the single stats record.
const StatsKey = "japanese-learning-stats"

// Store keeps exactly one stats record and announces every rewrite.
type Store struct {
	db      *sql.DB
	logger  *zap.Logger
	changes *Broker
	now     func() time.Time
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string, log *zap.Logger) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// One connection keeps the busy_timeout pragma in effect for every query.
	db.SetMaxOpenConns(1)
	store := &Store{
		db:      db,
		logger:  logger.OrNop(log),
		changes: NewBroker(),
		now:     time.Now,
	}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Changes returns the broker that receives an event after every write.
func (s *Store) Changes() *Broker {
	return s.changes
}

func (s *Store) migrate() error {
	stmts := []string{
		`PRAGMA busy_timeout = 5000;`,
		`CREATE TABLE IF NOT EXISTS kv (
			key TEXT PRIMARY KEY,
			payload TEXT NOT NULL,
			updated_at TEXT NOT NULL
		);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// Load returns the persisted record. A missing, unreadable or corrupt record
// yields a fresh default so that first runs and damaged files both mean
// "no history yet".
func (s *Store) Load(ctx context.Context) model.StatsRecord {
	payload, err := s.readPayload(ctx)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			s.logger.Warn("failed to read stats; using defaults", zap.Error(err))
		}
		return model.NewStatsRecord()
	}
	rec, err := DecodeRecord([]byte(payload))
	if err != nil {
		s.logger.Warn("failed to decode stats; using defaults", zap.Error(err))
		return model.NewStatsRecord()
	}
	return rec
}

// Save replaces the stored record and publishes a change. Failures are logged
// and swallowed: losing one statistics update must not end a quiz.
func (s *Store) Save(ctx context.Context, rec model.StatsRecord) {
	if err := s.write(ctx, rec); err != nil {
		s.logger.Error("failed to save stats", zap.Error(err))
		return
	}
	s.changes.Publish(Change{At: s.now()})
}

func (s *Store) write(ctx context.Context, rec model.StatsRecord) error {
	payload, err := EncodeRecord(rec)
	if err != nil {
		return fmt.Errorf("failed to encode stats: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO kv (key, payload, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
		StatsKey,
		string(payload),
		s.now().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("failed to write stats: %w", err)
	}
	return nil
}

func (s *Store) readPayload(ctx context.Context) (string, error) {
	var payload string
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM kv WHERE key = ?`, StatsKey).Scan(&payload)
	return payload, err
}

// Export writes the current record as indented JSON.
func (s *Store) Export(ctx context.Context, w io.Writer) error {
	rec := s.Load(ctx)
	rec.SchemaVersion = model.SchemaVersion
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rec); err != nil {
		return fmt.Errorf("failed to export stats: %w", err)
	}
	return nil
}

// Import replaces the stored record with a payload of any known version.
// Unlike Load, a bad payload is reported since the user asked for it.
func (s *Store) Import(ctx context.Context, r io.Reader) (model.StatsRecord, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return model.StatsRecord{}, fmt.Errorf("failed to read import: %w", err)
	}
	rec, err := DecodeRecord(data)
	if err != nil {
		return model.StatsRecord{}, err
	}
	if err := s.write(ctx, rec); err != nil {
		return model.StatsRecord{}, err
	}
	s.changes.Publish(Change{At: s.now()})
	return rec, nil
}

// Reset deletes the stored record.
func (s *Store) Reset(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, StatsKey); err != nil {
		return fmt.Errorf("failed to reset stats: %w", err)
	}
	s.changes.Publish(Change{At: s.now()})
	return nil
}
