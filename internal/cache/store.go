package cache

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pcosta/flashdeck/internal/logger"
)

// Cache keys. One serialized snapshot per collection, mirroring the layout a
// rebuild after a pull expects.
const (
	keyDecks          = "cache_decks"
	keyFlashcards     = "cache_flashcards"
	keyProgress       = "cache_progress"
	keyTags           = "cache_tags"
	keyLastSync       = "cache_last_sync"
	keyPendingUpdates = "cache_pending_updates"
)

var cacheKeys = []string{keyDecks, keyFlashcards, keyProgress, keyTags, keyLastSync, keyPendingUpdates}

// Store is the local, durable key-value cache for a single user profile. It is
// a disposable projection of the remote store plus unconfirmed local deltas.
//
// All operations are synchronous and never surface storage errors to the
// caller: a missing or corrupt entry reads as the empty/default value, and a
// failed write is logged and dropped. Callers must serialize mutations to the
// same collection through this store; every write is a full-collection
// replace.
type Store struct {
	db  *sql.DB
	log *logger.Logger
}

// Open opens (or creates) the cache database at path.
func Open(path string) (*Store, error) {
	log := logger.Default().WithPrefix("cache")

	dsn := fmt.Sprintf("%s?_busy_timeout=5000&_journal_mode=WAL&_synchronous=NORMAL", path)
	log.Info("opening cache: %s", path)

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		log.Error("failed to open cache: %v", err)
		return nil, err
	}
	db.SetMaxOpenConns(1) // sqlite allows a single writer

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS kv (key TEXT PRIMARY KEY, value TEXT NOT NULL)`); err != nil {
		log.Error("failed to initialize cache schema: %v", err)
		db.Close()
		return nil, err
	}

	log.Debug("cache ready")
	return &Store{db: db, log: log}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// read unmarshals the value stored under key into v. Returns false when the
// entry is absent or unreadable, leaving v untouched.
func (s *Store) read(key string, v any) bool {
	var raw string
	err := s.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&raw)
	if err == sql.ErrNoRows {
		return false
	}
	if err != nil {
		s.log.Warn("cache read failed for %s: %v", key, err)
		return false
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		s.log.Warn("cache entry %s is corrupt, treating as absent: %v", key, err)
		return false
	}
	return true
}

func (s *Store) write(key string, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		s.log.Error("cache marshal failed for %s: %v", key, err)
		return
	}
	_, err = s.db.Exec(`INSERT INTO kv (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, string(raw))
	if err != nil {
		s.log.Error("cache write failed for %s: %v", key, err)
	}
}

// ClearAll wipes every collection and the pending queue. Used on logout.
func (s *Store) ClearAll() {
	for _, key := range cacheKeys {
		if _, err := s.db.Exec(`DELETE FROM kv WHERE key = ?`, key); err != nil {
			s.log.Error("cache clear failed for %s: %v", key, err)
		}
	}
	s.log.Debug("cache cleared")
}

// SetLastSync stamps the last successful pull time. The marker doubles as the
// readiness gate: a cache without it has never been populated.
func (s *Store) SetLastSync(t time.Time) {
	s.write(keyLastSync, t)
}

// LastSync returns the last successful pull time, if any.
func (s *Store) LastSync() (time.Time, bool) {
	var t time.Time
	ok := s.read(keyLastSync, &t)
	return t, ok
}

// Ready reports whether the cache has been populated by a pull.
func (s *Store) Ready() bool {
	_, ok := s.LastSync()
	return ok
}
