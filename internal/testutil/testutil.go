package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pcosta/flashdeck/internal/cache"
)

// NewTestStore creates an in-memory cache store that lives for one test.
func NewTestStore(t *testing.T) *cache.Store {
	t.Helper()

	store, err := cache.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, store.Close())
	})
	return store
}

// MustClose closes a resource and fails the test on error.
func MustClose(t *testing.T, closer interface{ Close() error }) {
	require.NoError(t, closer.Close())
}
