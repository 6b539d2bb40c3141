// Copyright (c) 2025 The Solvault developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package kv

import (
	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/filter"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/storage"
)

var (
	writeOpt = &opt.WriteOptions{}
	readOpt  = &opt.ReadOptions{}
)

// levelDB implements Store backed by goleveldb.
type levelDB struct {
	db *leveldb.DB
}

// Open opens (or creates) a persistent store at the given path.
func Open(path string) (Store, error) {
	stg, err := storage.OpenFile(path, false)
	if err != nil {
		return nil, errors.Wrap(err, "open leveldb storage")
	}
	return openLevelDB(stg)
}

// OpenMem creates an in-memory store, used by tests and the dev CLI.
func OpenMem() (Store, error) {
	return openLevelDB(storage.NewMemStorage())
}

func openLevelDB(stg storage.Storage) (Store, error) {
	db, err := leveldb.Open(stg, &opt.Options{
		OpenFilesCacheCapacity: 64,
		BlockCacheCapacity:     16 * opt.MiB,
		WriteBuffer:            8 * opt.MiB,
		Filter:                 filter.NewBloomFilter(10),
	})
	if err != nil {
		return nil, errors.Wrap(err, "open leveldb")
	}
	return &levelDB{db: db}, nil
}

func (l *levelDB) Get(key []byte) ([]byte, error) {
	return l.db.Get(key, readOpt)
}

func (l *levelDB) Has(key []byte) (bool, error) {
	return l.db.Has(key, readOpt)
}

func (l *levelDB) IsNotFound(err error) bool {
	return errors.Is(err, leveldb.ErrNotFound)
}

func (l *levelDB) Put(key, val []byte) error {
	return l.db.Put(key, val, writeOpt)
}

func (l *levelDB) Delete(key []byte) error {
	return l.db.Delete(key, writeOpt)
}

func (l *levelDB) Close() error {
	return l.db.Close()
}

func (l *levelDB) NewBatch() Batch {
	return &levelDBBatch{
		db:    l.db,
		batch: &leveldb.Batch{},
	}
}

// levelDBBatch implements the Batch interface.
type levelDBBatch struct {
	db    *leveldb.DB
	batch *leveldb.Batch
}

func (b *levelDBBatch) Put(key, val []byte) error {
	b.batch.Put(key, val)
	return nil
}

func (b *levelDBBatch) Delete(key []byte) error {
	b.batch.Delete(key)
	return nil
}

func (b *levelDBBatch) Len() int {
	return b.batch.Len()
}

func (b *levelDBBatch) Write() error {
	return b.db.Write(b.batch, writeOpt)
}
