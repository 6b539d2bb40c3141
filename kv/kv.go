// Copyright (c) 2025 The Solvault developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package kv abstracts the durable key-value substrate that account
// records are persisted into. The program core only ever sees these
// interfaces; the backing store supplies atomic batch writes.
package kv

// Getter wraps methods for reading values.
type Getter interface {
	// Get returns the value for the given key.
	// An error is returned if the key is not found. It can be checked via IsNotFound.
	Get(key []byte) (value []byte, err error)
	Has(key []byte) (bool, error)
	IsNotFound(err error) bool
}

// Putter wraps methods for writing values.
type Putter interface {
	Put(key, val []byte) error
	Delete(key []byte) error
}

// Batch is an atomic group of writes. Nothing is visible until Write.
type Batch interface {
	Putter

	Len() int
	Write() error
}

// Store is the full functional kv store.
type Store interface {
	Getter
	Putter

	NewBatch() Batch
	Close() error
}
