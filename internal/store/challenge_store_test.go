package store

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fieldbook/internal/types"
)

func TestChallengeRatchetAcrossToggles(t *testing.T) {
	kv := newTestKV(t)
	progress := NewProgressStore(kv)
	challenge := NewChallengeStore(kv)
	progress.OnSeen(func(id string) { challenge.RecordSeen(id) })

	challenge.Start()
	progress.ToggleSeen("snail-kite")
	require.True(t, challenge.State().Has("snail-kite"))

	// No sequence of seen/unseen toggles removes a counted species.
	for i := 0; i < 5; i++ {
		progress.ToggleSeen("snail-kite")
	}
	assert.True(t, challenge.State().Has("snail-kite"))
	assert.Equal(t, 1, challenge.State().Count())
}

func TestChallengeInactiveIgnoresSeen(t *testing.T) {
	kv := newTestKV(t)
	progress := NewProgressStore(kv)
	challenge := NewChallengeStore(kv)
	progress.OnSeen(func(id string) { challenge.RecordSeen(id) })

	progress.ToggleSeen("snail-kite")
	assert.Equal(t, 0, challenge.State().Count())
}

func TestChallengeManualCount(t *testing.T) {
	kv := newTestKV(t)
	challenge := NewChallengeStore(kv)

	// Inactive: no-op.
	assert.False(t, challenge.Count("snail-kite"))

	challenge.Start()
	assert.True(t, challenge.Count("snail-kite"))
	assert.False(t, challenge.Count("snail-kite")) // duplicate
	assert.Equal(t, 1, challenge.State().Count())
}

func TestChallengeCapEnforced(t *testing.T) {
	kv := newTestKV(t)
	challenge := NewChallengeStore(kv)
	challenge.Start()

	for i := 0; i < types.ChallengeCap+50; i++ {
		challenge.Count(fmt.Sprintf("species-%d", i))
	}
	assert.Equal(t, types.ChallengeCap, challenge.State().Count())
}

func TestChallengeStartResetPersist(t *testing.T) {
	kv := newTestKV(t)

	challenge := NewChallengeStore(kv)
	challenge.Start()
	challenge.Count("snail-kite")

	reloaded := NewChallengeStore(kv)
	st := reloaded.State()
	assert.True(t, st.Active)
	require.NotNil(t, st.StartedAt)
	assert.Equal(t, []string{"snail-kite"}, st.Completed)

	reloaded.Reset()
	again := NewChallengeStore(kv)
	assert.False(t, again.State().Active)
	assert.Nil(t, again.State().StartedAt)
	assert.Empty(t, again.State().Completed)
}

func TestChallengeStateReturnsCopy(t *testing.T) {
	kv := newTestKV(t)
	challenge := NewChallengeStore(kv)
	challenge.Start()
	challenge.Count("snail-kite")

	st := challenge.State()
	st.Completed[0] = "mutated"
	assert.Equal(t, []string{"snail-kite"}, challenge.State().Completed)
}
