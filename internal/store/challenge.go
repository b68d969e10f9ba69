package store

import (
	"errors"
	"time"

	"fieldbook/internal/logging"
	"fieldbook/internal/types"
)

// ChallengeStore owns the 100-species challenge state and syncs it to the
// KV store on every change. The ratchet/cap/duplicate rules live on
// types.ChallengeState; this store adds persistence and the seen-transition
// entry point.
type ChallengeStore struct {
	kv    *KV
	state types.ChallengeState
	log   *logging.Logger
}

// NewChallengeStore loads the challenge state, falling back to
// inactive/empty.
func NewChallengeStore(kv *KV) *ChallengeStore {
	s := &ChallengeStore{kv: kv, log: logging.Get(logging.CategoryChallenge)}

	var stored types.ChallengeState
	err := kv.Get(KeyChallenge, &stored)
	switch {
	case err == nil:
		s.state = stored
		s.log.Info("loaded challenge state: active=%v count=%d", stored.Active, stored.Count())
	case errors.Is(err, ErrNotFound):
		s.log.Info("no stored challenge state, starting inactive")
	default:
		s.log.Warn("failed to load challenge state, starting inactive: %v", err)
	}
	return s
}

// State returns a copy of the current state.
func (s *ChallengeStore) State() types.ChallengeState {
	st := s.state
	st.Completed = append([]string(nil), s.state.Completed...)
	return st
}

// Start activates the challenge with fresh progress.
func (s *ChallengeStore) Start() {
	s.state.Start(time.Now())
	s.log.Info("challenge started")
	s.flush()
}

// Reset returns the challenge to inactive/empty.
func (s *ChallengeStore) Reset() {
	s.state.Reset()
	s.log.Info("challenge reset")
	s.flush()
}

// RecordSeen applies the auto-count contract for a species that just
// transitioned to seen. Inactive challenge, duplicates, and the cap are all
// silent no-ops. Reports whether the species was counted.
func (s *ChallengeStore) RecordSeen(id string) bool {
	if !s.state.AddCompleted(id) {
		return false
	}
	s.log.Info("auto-counted %s (%d/%d)", id, s.state.Count(), types.ChallengeCap)
	s.flush()
	return true
}

// Count manually adds a species to the completion set, under the same rules
// as RecordSeen.
func (s *ChallengeStore) Count(id string) bool {
	if !s.state.AddCompleted(id) {
		return false
	}
	s.log.Info("counted %s (%d/%d)", id, s.state.Count(), types.ChallengeCap)
	s.flush()
	return true
}

func (s *ChallengeStore) flush() {
	if err := s.kv.Set(KeyChallenge, s.state); err != nil {
		s.log.Warn("failed to persist challenge state: %v", err)
	}
}
