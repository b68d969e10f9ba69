package store

import (
	"errors"
	"strings"

	"github.com/google/uuid"

	"fieldbook/internal/logging"
	"fieldbook/internal/types"
)

// LogStore owns the append-only observation log, newest first. Entries are
// never updated or deleted.
type LogStore struct {
	kv      *KV
	entries []types.LogEntry
	log     *logging.Logger
}

// NewLogStore loads the log from the KV store, falling back to an empty log.
func NewLogStore(kv *KV) *LogStore {
	s := &LogStore{kv: kv, log: logging.Get(logging.CategoryStore)}

	var stored []types.LogEntry
	err := kv.Get(KeyLogs, &stored)
	switch {
	case err == nil:
		s.entries = stored
		s.log.Info("loaded %d log entries", len(s.entries))
	case errors.Is(err, ErrNotFound):
		s.log.Info("no stored log entries, starting empty")
	default:
		s.log.Warn("failed to load log entries, starting empty: %v", err)
	}
	return s
}

// Entries returns a copy of the log, newest first.
func (s *LogStore) Entries() []types.LogEntry {
	out := make([]types.LogEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Len returns the number of entries.
func (s *LogStore) Len() int {
	return len(s.entries)
}

// Append validates and prepends a new entry, assigning it a fresh ID.
// Entries with a blank species name or location are rejected as a silent
// no-op so the form can retain its values for correction. Reports whether
// the entry was accepted.
func (s *LogStore) Append(entry types.LogEntry) bool {
	if strings.TrimSpace(entry.SpeciesName) == "" || strings.TrimSpace(entry.Location) == "" {
		s.log.Debug("rejecting log entry with blank species or location")
		return false
	}
	if !entry.Category.Valid() {
		entry.Category = types.CategoryGeneral
	}
	entry.ID = uuid.NewString()

	s.entries = append([]types.LogEntry{entry}, s.entries...)
	if err := s.kv.Set(KeyLogs, s.entries); err != nil {
		s.log.Warn("failed to persist log entries: %v", err)
	}
	s.log.Info("logged observation of %q at %q", entry.SpeciesName, entry.Location)
	return true
}
