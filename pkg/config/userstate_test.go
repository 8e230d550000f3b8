package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "user.json")
	store := NewFileStore(path)

	state, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, &UserState{}, state)

	state.UserID = 42
	state.UserName = "alice"
	state.LastSyncPCID = 7
	require.NoError(t, store.Save(state))

	reloaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, state, reloaded)
}
