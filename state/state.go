// Copyright (c) 2025 The Solvault developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package state provides the mutable account view an instruction executes
// against. Reads are cached, writes are journaled, and a checkpoint can
// roll the view back so a failed instruction leaves no trace. Commit
// flushes all dirty accounts to the kv store in one atomic batch.
package state

import (
	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"

	"github.com/solvault/solvault/kv"
)

type cachedAccount struct {
	data   []byte
	exists bool
	dirty  bool
}

type journalEntry struct {
	addr solana.PublicKey
	// prev is the cache entry before the write; nil means the address
	// was not cached and a revert simply evicts it.
	prev *cachedAccount
}

// State is the account view. It is not safe for concurrent use; the
// engine serializes instructions on top of it.
type State struct {
	store   kv.Store
	cache   map[solana.PublicKey]*cachedAccount
	journal []journalEntry
}

// New creates a state view over the given store.
func New(store kv.Store) *State {
	return &State{
		store: store,
		cache: make(map[solana.PublicKey]*cachedAccount),
	}
}

func (s *State) load(addr solana.PublicKey) (*cachedAccount, error) {
	if acc, ok := s.cache[addr]; ok {
		return acc, nil
	}
	data, err := s.store.Get(addr.Bytes())
	if err != nil {
		if s.store.IsNotFound(err) {
			acc := &cachedAccount{exists: false}
			s.cache[addr] = acc
			return acc, nil
		}
		return nil, errors.Wrap(err, "load account")
	}
	acc := &cachedAccount{data: data, exists: true}
	s.cache[addr] = acc
	return acc, nil
}

// Get returns the raw record at addr, or nil if the account does not exist.
func (s *State) Get(addr solana.PublicKey) ([]byte, error) {
	acc, err := s.load(addr)
	if err != nil {
		return nil, err
	}
	if !acc.exists {
		return nil, nil
	}
	return acc.data, nil
}

// Exists reports whether an account record is present at addr.
func (s *State) Exists(addr solana.PublicKey) (bool, error) {
	acc, err := s.load(addr)
	if err != nil {
		return false, err
	}
	return acc.exists, nil
}

func (s *State) record(addr solana.PublicKey) {
	if acc, ok := s.cache[addr]; ok {
		prev := *acc
		s.journal = append(s.journal, journalEntry{addr: addr, prev: &prev})
	} else {
		s.journal = append(s.journal, journalEntry{addr: addr})
	}
}

// Set writes the raw record at addr.
func (s *State) Set(addr solana.PublicKey, data []byte) {
	s.record(addr)
	s.cache[addr] = &cachedAccount{data: data, exists: true, dirty: true}
}

// Delete removes the account record at addr.
func (s *State) Delete(addr solana.PublicKey) {
	s.record(addr)
	s.cache[addr] = &cachedAccount{exists: false, dirty: true}
}

// NewCheckpoint marks the current journal position. RevertTo with the
// returned revision undoes everything written after it.
func (s *State) NewCheckpoint() int {
	return len(s.journal)
}

// RevertTo rolls the view back to a previously taken checkpoint.
func (s *State) RevertTo(revision int) {
	for i := len(s.journal) - 1; i >= revision; i-- {
		entry := s.journal[i]
		if entry.prev == nil {
			delete(s.cache, entry.addr)
		} else {
			prev := *entry.prev
			s.cache[entry.addr] = &prev
		}
	}
	s.journal = s.journal[:revision]
}

// Commit flushes all dirty accounts to the store in one atomic batch
// and resets the journal. After a successful commit the cached view
// matches the persisted one.
func (s *State) Commit() error {
	batch := s.store.NewBatch()
	for addr, acc := range s.cache {
		if !acc.dirty {
			continue
		}
		if acc.exists {
			if err := batch.Put(addr.Bytes(), acc.data); err != nil {
				return errors.Wrap(err, "batch put")
			}
		} else {
			if err := batch.Delete(addr.Bytes()); err != nil {
				return errors.Wrap(err, "batch delete")
			}
		}
	}
	if batch.Len() > 0 {
		if err := batch.Write(); err != nil {
			return errors.Wrap(err, "commit batch")
		}
	}
	for _, acc := range s.cache {
		acc.dirty = false
	}
	s.journal = s.journal[:0]
	return nil
}
