// Copyright (c) 2025 The Solvault developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package auditdb persists the program's emitted events as an
// append-only audit log in sqlite, and answers filtered queries over it.
package auditdb

import (
	"context"
	"database/sql"
	"strings"

	"github.com/gagliardetto/solana-go"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
)

// Record is one audit row. Subject carries the event-specific identity
// (NFT mint for stake/unstake, empty otherwise); Amount is non-zero only
// for claim events.
type Record struct {
	Sequence  int64
	Name      string
	User      solana.PublicKey
	Subject   solana.PublicKey
	Amount    uint64
	Timestamp int64
}

// Filter narrows a query. Zero-valued fields are ignored.
type Filter struct {
	Names []string
	User  *solana.PublicKey
	From  *int64 // inclusive
	To    *int64 // inclusive
	Limit int
}

// AuditDB is the sqlite-backed event store.
type AuditDB struct {
	db *sql.DB
}

const schemaDDL = `
CREATE TABLE IF NOT EXISTS event (
	seq INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	user TEXT NOT NULL,
	subject TEXT NOT NULL,
	amount INTEGER NOT NULL,
	ts INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS event_name ON event(name);
CREATE INDEX IF NOT EXISTS event_user ON event(user);
CREATE INDEX IF NOT EXISTS event_ts ON event(ts);`

// New opens (or creates) the audit database at the given path.
func New(path string) (*AuditDB, error) {
	return open("file:" + path + "?_journal=wal")
}

// NewMem creates an in-memory audit database, used by tests and the dev
// CLI.
func NewMem() (*AuditDB, error) {
	return open("file::memory:?mode=memory&cache=shared")
}

func open(dsn string) (*AuditDB, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "open audit db")
	}
	// a single writer keeps appends ordered
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schemaDDL); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "create audit schema")
	}
	return &AuditDB{db: db}, nil
}

func (a *AuditDB) Close() error {
	return a.db.Close()
}

// Append writes the records of one instruction in a single transaction.
func (a *AuditDB) Append(recs []Record) error {
	if len(recs) == 0 {
		return nil
	}
	tx, err := a.db.Begin()
	if err != nil {
		return errors.Wrap(err, "begin append")
	}
	stmt, err := tx.Prepare("INSERT INTO event(name, user, subject, amount, ts) VALUES(?, ?, ?, ?, ?)")
	if err != nil {
		tx.Rollback()
		return errors.Wrap(err, "prepare append")
	}
	defer stmt.Close()
	for _, r := range recs {
		if _, err := stmt.Exec(r.Name, r.User.String(), r.Subject.String(), int64(r.Amount), r.Timestamp); err != nil {
			tx.Rollback()
			return errors.Wrap(err, "append event")
		}
	}
	return errors.Wrap(tx.Commit(), "commit append")
}

// Query returns matching records in sequence order.
func (a *AuditDB) Query(ctx context.Context, filter *Filter) ([]Record, error) {
	stmt := "SELECT seq, name, user, subject, amount, ts FROM event"
	var (
		conds []string
		args  []any
	)
	if filter != nil {
		if len(filter.Names) > 0 {
			conds = append(conds, "name IN (?"+strings.Repeat(",?", len(filter.Names)-1)+")")
			for _, n := range filter.Names {
				args = append(args, n)
			}
		}
		if filter.User != nil {
			conds = append(conds, "user = ?")
			args = append(args, filter.User.String())
		}
		if filter.From != nil {
			conds = append(conds, "ts >= ?")
			args = append(args, *filter.From)
		}
		if filter.To != nil {
			conds = append(conds, "ts <= ?")
			args = append(args, *filter.To)
		}
	}
	if len(conds) > 0 {
		stmt += " WHERE " + strings.Join(conds, " AND ")
	}
	stmt += " ORDER BY seq"
	if filter != nil && filter.Limit > 0 {
		stmt += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := a.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, errors.Wrap(err, "query events")
	}
	defer rows.Close()

	var recs []Record
	for rows.Next() {
		var (
			r             Record
			user, subject string
			amount        int64
		)
		if err := rows.Scan(&r.Sequence, &r.Name, &user, &subject, &amount, &r.Timestamp); err != nil {
			return nil, errors.Wrap(err, "scan event")
		}
		if r.User, err = solana.PublicKeyFromBase58(user); err != nil {
			return nil, errors.Wrap(err, "parse event user")
		}
		if r.Subject, err = solana.PublicKeyFromBase58(subject); err != nil {
			return nil, errors.Wrap(err, "parse event subject")
		}
		r.Amount = uint64(amount)
		recs = append(recs, r)
	}
	return recs, rows.Err()
}
