package predcache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"surgecast/internal/model"
)

// Store is a bounded prediction cache on a SQLite table. SQLite serializes
// writers, which is the only mutual exclusion the cache needs; capacity and
// TTL keep it from growing without bound. Opened at ":memory:" it lives and
// dies with the process.
type Store struct {
	sql      *sql.DB
	capacity int
	ttl      time.Duration
}

// Open opens (or creates) the cache at path. capacity 0 disables the size
// bound, ttl 0 disables expiry.
func Open(path string, capacity int, ttl time.Duration) (*Store, error) {
	if path == "" {
		return nil, errors.New("empty path")
	}
	d, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// Each pooled connection to :memory: would get its own database.
	if strings.Contains(path, ":memory:") {
		d.SetMaxOpenConns(1)
	}
	if _, err := d.Exec(`PRAGMA journal_mode=WAL; PRAGMA synchronous=NORMAL;`); err != nil {
		return nil, err
	}
	s := &Store{sql: d, capacity: capacity, ttl: ttl}
	if err := s.migrate(); err != nil {
		_ = d.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() error { return s.sql.Close() }

func (s *Store) migrate() error {
	_, err := s.sql.Exec(`
	CREATE TABLE IF NOT EXISTS predictions (
	  key TEXT PRIMARY KEY,
	  value TEXT NOT NULL,
	  created INTEGER NOT NULL,
	  last_access INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_pred_access ON predictions(last_access);
	`)
	return err
}

// Get returns the cached prediction for key, expiring it if past TTL.
func (s *Store) Get(ctx context.Context, key string) (model.EngagementPrediction, bool, error) {
	var pred model.EngagementPrediction
	var value string
	var created int64
	err := s.sql.QueryRowContext(ctx,
		`SELECT value, created FROM predictions WHERE key=?`, key).Scan(&value, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return pred, false, nil
	}
	if err != nil {
		return pred, false, err
	}
	now := time.Now()
	if s.ttl > 0 && now.Sub(time.Unix(0, created)) > s.ttl {
		_, _ = s.sql.ExecContext(ctx, `DELETE FROM predictions WHERE key=?`, key)
		return pred, false, nil
	}
	if err := json.Unmarshal([]byte(value), &pred); err != nil {
		return pred, false, err
	}
	_, _ = s.sql.ExecContext(ctx, `UPDATE predictions SET last_access=? WHERE key=?`, now.UnixNano(), key)
	return pred, true, nil
}

// Put stores a prediction under key and trims least-recently-accessed
// entries past capacity.
func (s *Store) Put(ctx context.Context, key string, pred model.EngagementPrediction) error {
	b, err := json.Marshal(pred)
	if err != nil {
		return err
	}
	now := time.Now().UnixNano()
	if _, err := s.sql.ExecContext(ctx,
		`INSERT INTO predictions(key, value, created, last_access) VALUES(?,?,?,?)
		 ON CONFLICT(key) DO UPDATE SET value=excluded.value, created=excluded.created, last_access=excluded.last_access`,
		key, string(b), now, now); err != nil {
		return err
	}
	if s.capacity > 0 {
		_, err = s.sql.ExecContext(ctx,
			`DELETE FROM predictions WHERE key IN (
			   SELECT key FROM predictions ORDER BY last_access DESC, key LIMIT -1 OFFSET ?
			 )`, s.capacity)
	}
	return err
}

// Len reports the number of cached entries.
func (s *Store) Len(ctx context.Context) (int, error) {
	var n int
	err := s.sql.QueryRowContext(ctx, `SELECT COUNT(*) FROM predictions`).Scan(&n)
	return n, err
}
