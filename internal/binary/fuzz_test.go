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

package binary

import (
	"bytes"
	"encoding/binary"
	"testing"
)

// FuzzReader fuzzes sequential little-endian reads against encoding/binary.
func FuzzReader(f *testing.F) {
	f.Add([]byte("BIKi\x10\x00\x00\x00"), uint8(3))
	f.Add([]byte{}, uint8(0))
	f.Add([]byte{0x01, 0x02, 0x03}, uint8(1))

	f.Fuzz(func(t *testing.T, data []byte, skip uint8) {
		if len(data) > 1<<16 {
			return
		}

		r, err := NewReader(bytes.NewReader(data))
		if err != nil {
			t.Fatalf("NewReader() error = %v", err)
		}

		// Should never panic, and values must match the direct decoding.
		_ = r.Skip(int64(skip % 8))
		off := r.Offset()
		v, err := r.Uint32LE()
		if off+4 <= int64(len(data)) {
			if err != nil {
				t.Fatalf("Uint32LE() at %d of %d error = %v", off, len(data), err)
			}
			if want := binary.LittleEndian.Uint32(data[off:]); v != want {
				t.Fatalf("Uint32LE() = 0x%08X, want 0x%08X", v, want)
			}
		} else if err == nil {
			t.Fatalf("Uint32LE() at %d of %d should fail", off, len(data))
		}
	})
}
