package types

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChallengeStartReset(t *testing.T) {
	var c ChallengeState
	now := time.Now()

	c.Start(now)
	assert.True(t, c.Active)
	require.NotNil(t, c.StartedAt)
	assert.Equal(t, now, *c.StartedAt)
	assert.Empty(t, c.Completed)

	c.AddCompleted("snail-kite")
	require.Equal(t, 1, c.Count())

	// Start again resets progress and refreshes the timestamp.
	later := now.Add(time.Hour)
	c.Start(later)
	assert.Empty(t, c.Completed)
	assert.Equal(t, later, *c.StartedAt)

	c.Reset()
	assert.False(t, c.Active)
	assert.Nil(t, c.StartedAt)
	assert.Empty(t, c.Completed)
}

func TestChallengeAddCompleted(t *testing.T) {
	var c ChallengeState

	// Inactive challenge never counts.
	assert.False(t, c.AddCompleted("snail-kite"))
	assert.Equal(t, 0, c.Count())

	c.Start(time.Now())
	assert.True(t, c.AddCompleted("snail-kite"))
	assert.True(t, c.Has("snail-kite"))

	// Duplicates are silent no-ops.
	assert.False(t, c.AddCompleted("snail-kite"))
	assert.Equal(t, 1, c.Count())

	// Blank IDs are ignored.
	assert.False(t, c.AddCompleted("  "))
}

func TestChallengeCap(t *testing.T) {
	var c ChallengeState
	c.Start(time.Now())

	for i := 0; i < ChallengeCap*3; i++ {
		c.AddCompleted(fmt.Sprintf("species-%d", i))
	}
	assert.Equal(t, ChallengeCap, c.Count())
	assert.False(t, c.AddCompleted("one-more"))
	assert.Equal(t, ChallengeCap, c.Count())
}

func TestChallengeCompletionOrderPreserved(t *testing.T) {
	var c ChallengeState
	c.Start(time.Now())
	ids := []string{"c-bird", "a-bird", "b-bird"}
	for _, id := range ids {
		c.AddCompleted(id)
	}
	assert.Equal(t, ids, c.Completed)
}

func TestLogCategoryValid(t *testing.T) {
	for _, c := range LogCategories {
		assert.True(t, c.Valid(), "category %q", c)
	}
	assert.False(t, LogCategory("waterfowl").Valid())
	assert.False(t, LogCategory("").Valid())
}
