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

package bitstream

import (
	"errors"
	"testing"
)

// FuzzBitsRoundTrip checks that concatenating Bits results at their bit offsets
// rebuilds the bits of the source buffer.
func FuzzBitsRoundTrip(f *testing.F) {
	f.Add([]byte{0x00}, []byte{1})
	f.Add([]byte{0xFF, 0x01, 0x80}, []byte{3, 5, 7})
	f.Add([]byte("bink video"), []byte{31, 1, 17, 4})

	f.Fuzz(func(t *testing.T, data, widths []byte) {
		r := NewReader(data)
		w := NewWriter()

		for _, b := range widths {
			n := int(b%31) + 1
			v, err := r.Bits(n)
			if err != nil {
				if !errors.Is(err, ErrOutOfBounds) {
					t.Fatalf("unexpected error: %v", err)
				}
				if r.Pos()+n < r.Len() {
					t.Fatalf("Bits(%d) failed at %d of %d", n, r.Pos(), r.Len())
				}
				break
			}
			w.WriteBits(v, n)
		}

		got := w.Bytes()
		for i := range w.Len() {
			want := data[i>>3] >> (i & 7) & 1
			if got[i>>3]>>(i&7)&1 != want {
				t.Fatalf("bit %d differs", i)
			}
		}
	})
}
