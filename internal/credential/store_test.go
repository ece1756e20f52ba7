package credential

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "credentials.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestStore_SetGet(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.Set(Key, "sk-first"))

	got, err := store.Get(Key)
	require.NoError(t, err)
	assert.Equal(t, "sk-first", got)

	// overwrite replaces the previous value
	require.NoError(t, store.Set(Key, "sk-second"))
	got, err = store.Get(Key)
	require.NoError(t, err)
	assert.Equal(t, "sk-second", got)
}

func TestStore_GetMissingKey(t *testing.T) {
	store := openTestStore(t)

	got, err := store.Get(Key)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestStore_Delete(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.Set(Key, "sk-test"))
	require.NoError(t, store.Delete(Key))

	got, err := store.Get(Key)
	require.NoError(t, err)
	assert.Empty(t, got)

	// deleting an absent key is not an error
	require.NoError(t, store.Delete(Key))
}

func TestStore_Credential(t *testing.T) {
	store := openTestStore(t)

	// unset yields empty, not an error, so sources can be chained
	got, err := store.Credential()
	require.NoError(t, err)
	assert.Empty(t, got)

	require.NoError(t, store.Set(Key, "sk-from-store"))
	got, err = store.Credential()
	require.NoError(t, err)
	assert.Equal(t, "sk-from-store", got)
}

func TestStore_PersistsAcrossOpens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.db")

	store, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, store.Set(Key, "sk-durable"))
	require.NoError(t, store.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.Get(Key)
	require.NoError(t, err)
	assert.Equal(t, "sk-durable", got)
}

func TestOpen_CreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "credentials.db")

	store, err := Open(path)
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Set(Key, "sk-test"))
}
