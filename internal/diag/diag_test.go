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

package diag

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestOnceLogsEachKeyOnce(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	o := New(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	o.Warn("a", "first warning", "frame", 1)
	o.Warn("a", "first warning", "frame", 2)
	o.Debug("b", "debug note")

	out := buf.String()
	if n := strings.Count(out, "first warning"); n != 1 {
		t.Errorf("warning logged %d times, want 1:\n%s", n, out)
	}
	if !strings.Contains(out, "frame=1") {
		t.Errorf("missing attributes of first call:\n%s", out)
	}
	if !strings.Contains(out, "level=DEBUG") {
		t.Errorf("missing debug line:\n%s", out)
	}

	o.Reset()
	o.Warn("a", "first warning")
	if n := strings.Count(buf.String(), "first warning"); n != 2 {
		t.Errorf("after Reset warning logged %d times, want 2", n)
	}
}

func TestOnceNilSafe(t *testing.T) {
	t.Parallel()

	var o *Once
	o.Warn("k", "ignored")
	o.Reset()
	if o.Logger() == nil {
		t.Error("Logger() on nil Once returned nil")
	}

	New(nil).Warn("k", "discarded")
}
