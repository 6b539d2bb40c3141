// Copyright (c) 2025 The Solvault developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package kv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetPutDelete(t *testing.T) {
	store, err := OpenMem()
	require.NoError(t, err)
	defer store.Close()

	_, err = store.Get([]byte("missing"))
	assert.True(t, store.IsNotFound(err))

	require.NoError(t, store.Put([]byte("key"), []byte("value")))

	has, err := store.Has([]byte("key"))
	require.NoError(t, err)
	assert.True(t, has)

	val, err := store.Get([]byte("key"))
	require.NoError(t, err)
	assert.Equal(t, []byte("value"), val)

	require.NoError(t, store.Delete([]byte("key")))
	_, err = store.Get([]byte("key"))
	assert.True(t, store.IsNotFound(err))
}

func TestBatchIsAtomic(t *testing.T) {
	store, err := OpenMem()
	require.NoError(t, err)
	defer store.Close()

	batch := store.NewBatch()
	require.NoError(t, batch.Put([]byte("a"), []byte("1")))
	require.NoError(t, batch.Put([]byte("b"), []byte("2")))
	assert.Equal(t, 2, batch.Len())

	// nothing visible before Write
	has, err := store.Has([]byte("a"))
	require.NoError(t, err)
	assert.False(t, has)

	require.NoError(t, batch.Write())

	for _, key := range []string{"a", "b"} {
		has, err := store.Has([]byte(key))
		require.NoError(t, err)
		assert.True(t, has, "key %s", key)
	}
}

func TestPersistentReopen(t *testing.T) {
	dir := t.TempDir()

	store, err := Open(dir)
	require.NoError(t, err)
	require.NoError(t, store.Put([]byte("key"), []byte("value")))
	require.NoError(t, store.Close())

	store, err = Open(dir)
	require.NoError(t, err)
	defer store.Close()

	val, err := store.Get([]byte("key"))
	require.NoError(t, err)
	assert.Equal(t, []byte("value"), val)
}
