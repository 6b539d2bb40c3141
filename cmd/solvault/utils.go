// Copyright (c) 2025 The Solvault developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/solvault/solvault/auditdb"
	"github.com/solvault/solvault/kv"
	"github.com/solvault/solvault/log"
	"github.com/solvault/solvault/program"
)

func defaultDataDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".solvault")
	}
	return ".solvault"
}

func initLogger(ctx *cli.Context) {
	var level slog.Level
	switch ctx.GlobalInt(verbosityFlag.Name) {
	case 0:
		level = slog.LevelError
	case 1:
		level = slog.LevelWarn
	case 2, 3:
		level = slog.LevelInfo
	default:
		level = slog.LevelDebug
	}
	log.Init(os.Stderr, level, true)
}

type instance struct {
	engine *program.Engine
	store  kv.Store
	audit  *auditdb.AuditDB
}

func openInstance(ctx *cli.Context) (*instance, error) {
	dataDir := ctx.GlobalString(dataDirFlag.Name)
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, errors.Wrap(err, "create data dir")
	}
	store, err := kv.Open(filepath.Join(dataDir, "accounts"))
	if err != nil {
		return nil, errors.Wrap(err, "open account store")
	}
	audit, err := auditdb.New(filepath.Join(dataDir, "events.db"))
	if err != nil {
		store.Close()
		return nil, errors.Wrap(err, "open audit database")
	}
	engine, err := program.New(program.Config{Store: store, Audit: audit})
	if err != nil {
		audit.Close()
		store.Close()
		return nil, err
	}
	return &instance{engine: engine, store: store, audit: audit}, nil
}

func (i *instance) close() {
	i.audit.Close()
	i.store.Close()
}

func pubkeyArg(ctx *cli.Context, flag cli.StringFlag) (solana.PublicKey, error) {
	raw := ctx.String(flag.Name)
	if raw == "" {
		return solana.PublicKey{}, errors.Errorf("--%s is required", flag.Name)
	}
	key, err := solana.PublicKeyFromBase58(raw)
	if err != nil {
		return solana.PublicKey{}, errors.Wrapf(err, "invalid --%s", flag.Name)
	}
	return key, nil
}
