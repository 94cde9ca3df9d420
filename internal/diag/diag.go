// Copyright (c) 2025 Niema Moshiri and The Zaparoo Project.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of go-bink.
//
// go-bink is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// go-bink is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with go-bink.  If not, see <https://www.gnu.org/licenses/>.

// Package diag carries per-decoder diagnostic state.
package diag

import (
	"context"
	"io"
	"log/slog"
)

// Once logs each distinct message key at most once. The zero value discards
// everything; it is not safe for concurrent use.
type Once struct {
	log  *slog.Logger
	seen map[string]struct{}
}

// New returns a Once writing to logger. A nil logger discards output.
func New(logger *slog.Logger) *Once {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Once{log: logger, seen: make(map[string]struct{})}
}

// Logger returns the underlying logger.
func (o *Once) Logger() *slog.Logger {
	if o == nil || o.log == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return o.log
}

// Warn logs msg at warning level the first time key is seen.
func (o *Once) Warn(key, msg string, args ...any) {
	o.emit(slog.LevelWarn, key, msg, args...)
}

// Debug logs msg at debug level the first time key is seen.
func (o *Once) Debug(key, msg string, args ...any) {
	o.emit(slog.LevelDebug, key, msg, args...)
}

func (o *Once) emit(level slog.Level, key, msg string, args ...any) {
	if o == nil || o.log == nil {
		return
	}
	if _, ok := o.seen[key]; ok {
		return
	}
	o.seen[key] = struct{}{}
	o.log.Log(context.Background(), level, msg, args...)
}

// Reset forgets every key seen so far.
func (o *Once) Reset() {
	if o == nil {
		return
	}
	clear(o.seen)
}
