// Package store persists user state: the annotation map, the observation
// log, and the challenge state. Each store keeps its working copy in memory
// and flushes the whole record to a sqlite-backed key-value blob after every
// mutation; reads happen once at startup with an empty default when the
// stored blob is missing or corrupt.
//
// All stores assume the single event loop of the TUI: at most one mutation
// is in flight at a time, so the stores themselves take no locks. The KV
// layer keeps its own mutex so ad hoc callers (the stats subcommand, tests)
// stay safe.
package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "github.com/mattn/go-sqlite3"

	"fieldbook/internal/logging"
)

// ErrNotFound is returned by Get when the key has never been written.
var ErrNotFound = errors.New("key not found")

// Well-known keys. One blob per store.
const (
	KeyProgress  = "progress"
	KeyLogs      = "logs"
	KeyChallenge = "challenge"
)

// KV is a durable string-key to JSON-value mapping backed by sqlite.
type KV struct {
	db   *sql.DB
	mu   sync.RWMutex
	path string
}

// OpenKV initializes the sqlite database at the given path, creating the
// parent directory and schema as needed.
func OpenKV(path string) (*KV, error) {
	log := logging.Get(logging.CategoryStore)
	log.Info("opening kv store at %s", path)

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		log.Debug("failed to set busy_timeout: %v", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		log.Debug("failed to set journal_mode=WAL: %v", err)
	}
	if _, err := db.Exec("PRAGMA synchronous = NORMAL"); err != nil {
		log.Debug("failed to set synchronous=NORMAL: %v", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS kv (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &KV{db: db, path: path}, nil
}

// Get unmarshals the stored value for key into out. Returns ErrNotFound for
// a never-written key; callers substitute their empty default.
func (k *KV) Get(key string, out interface{}) error {
	k.mu.RLock()
	defer k.mu.RUnlock()

	var raw string
	err := k.db.QueryRow("SELECT value FROM kv WHERE key = ?", key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to read key %q: %w", key, err)
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return fmt.Errorf("corrupt value for key %q: %w", key, err)
	}
	return nil
}

// Set stores v under key as JSON, replacing any previous value.
func (k *KV) Set(key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal value for key %q: %w", key, err)
	}

	k.mu.Lock()
	defer k.mu.Unlock()

	_, err = k.db.Exec(`
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, string(data))
	if err != nil {
		return fmt.Errorf("failed to write key %q: %w", key, err)
	}
	return nil
}

// Close closes the database connection.
func (k *KV) Close() error {
	logging.Get(logging.CategoryStore).Info("closing kv store")
	return k.db.Close()
}
