// Copyright (c) 2025 The Solvault developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solvault/solvault/kv"
)

func newTestState(t *testing.T) (*State, kv.Store) {
	store, err := kv.OpenMem()
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return New(store), store
}

func randAddr(t *testing.T) solana.PublicKey {
	key, err := solana.NewRandomPrivateKey()
	require.NoError(t, err)
	return key.PublicKey()
}

func TestGetSetDelete(t *testing.T) {
	st, _ := newTestState(t)
	addr := randAddr(t)

	data, err := st.Get(addr)
	require.NoError(t, err)
	assert.Nil(t, data)

	st.Set(addr, []byte("record"))
	data, err = st.Get(addr)
	require.NoError(t, err)
	assert.Equal(t, []byte("record"), data)

	st.Delete(addr)
	exists, err := st.Exists(addr)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestRevertDropsWrites(t *testing.T) {
	st, _ := newTestState(t)
	a, b := randAddr(t), randAddr(t)

	st.Set(a, []byte("v1"))
	require.NoError(t, st.Commit())

	cp := st.NewCheckpoint()
	st.Set(a, []byte("v2"))
	st.Set(b, []byte("new"))
	st.Delete(a)
	st.RevertTo(cp)

	data, err := st.Get(a)
	require.NoError(t, err)
	assert.Equal(t, []byte("v1"), data)

	exists, err := st.Exists(b)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestRevertedWritesNeverPersist(t *testing.T) {
	st, store := newTestState(t)
	addr := randAddr(t)

	cp := st.NewCheckpoint()
	st.Set(addr, []byte("doomed"))
	st.RevertTo(cp)
	require.NoError(t, st.Commit())

	has, err := store.Has(addr.Bytes())
	require.NoError(t, err)
	assert.False(t, has)
}

func TestCommitFlushesAtomically(t *testing.T) {
	st, store := newTestState(t)
	a, b := randAddr(t), randAddr(t)

	st.Set(a, []byte("1"))
	st.Set(b, []byte("2"))

	// not visible in the store before commit
	has, err := store.Has(a.Bytes())
	require.NoError(t, err)
	assert.False(t, has)

	require.NoError(t, st.Commit())

	for _, addr := range []solana.PublicKey{a, b} {
		has, err := store.Has(addr.Bytes())
		require.NoError(t, err)
		assert.True(t, has)
	}

	// a fresh view over the same store sees the committed records
	fresh := New(store)
	data, err := fresh.Get(a)
	require.NoError(t, err)
	assert.Equal(t, []byte("1"), data)
}

func TestNestedCheckpoints(t *testing.T) {
	st, _ := newTestState(t)
	addr := randAddr(t)

	st.Set(addr, []byte("v1"))
	outer := st.NewCheckpoint()
	st.Set(addr, []byte("v2"))
	inner := st.NewCheckpoint()
	st.Set(addr, []byte("v3"))

	st.RevertTo(inner)
	data, err := st.Get(addr)
	require.NoError(t, err)
	assert.Equal(t, []byte("v2"), data)

	st.RevertTo(outer)
	data, err = st.Get(addr)
	require.NoError(t, err)
	assert.Equal(t, []byte("v1"), data)
}
