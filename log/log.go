// Copyright (c) 2025 The Solvault developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package log provides structured logging for the program. It is a thin
// layer over log/slog with a colorized terminal handler; packages obtain
// a scoped logger via WithContext.
package log

import (
	"io"
	"log/slog"
	"math"
	"time"

	"github.com/lmittmann/tint"
)

// Logger is the structured logger used across the module.
type Logger = *slog.Logger

var root = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.Level(math.MaxInt)}))

// Init installs the root logger writing to w at the given level.
// Call once at process start; library consumers may skip it to keep
// logging off.
func Init(w io.Writer, level slog.Level, useColor bool) {
	root = slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.RFC3339,
		NoColor:    !useColor,
	}))
}

// SetLogger replaces the root logger, mainly for tests.
func SetLogger(l Logger) {
	root = l
}

// WithContext returns a logger carrying the given key/value context.
func WithContext(args ...any) Logger {
	return root.With(args...)
}
