package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// newTestKV opens a KV store in a per-test temp directory.
func newTestKV(t *testing.T) *KV {
	t.Helper()
	kv, err := OpenKV(filepath.Join(t.TempDir(), "fieldbook.db"))
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, kv.Close()) })
	return kv
}

func TestKVRoundTrip(t *testing.T) {
	kv := newTestKV(t)

	type payload struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	require.NoError(t, kv.Set("probe", payload{Name: "snail kite", Count: 3}))

	var got payload
	require.NoError(t, kv.Get("probe", &got))
	require.Equal(t, payload{Name: "snail kite", Count: 3}, got)

	// Overwrite replaces the value.
	require.NoError(t, kv.Set("probe", payload{Name: "scrub jay"}))
	require.NoError(t, kv.Get("probe", &got))
	require.Equal(t, "scrub jay", got.Name)
}

func TestKVMissingKey(t *testing.T) {
	kv := newTestKV(t)

	var out map[string]string
	err := kv.Get("never-written", &out)
	require.ErrorIs(t, err, ErrNotFound)
}
