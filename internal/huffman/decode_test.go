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

package huffman

import (
	"errors"
	"testing"

	"github.com/ZaparooProject/go-bink/internal/bitstream"
)

func TestCodeTablesArePrefixFree(t *testing.T) {
	t.Parallel()

	for v := range NumTables {
		var kraft int
		for a := range NumSymbols {
			la := codeLengths[v][a]
			kraft += 1 << (MaxCodeLength - la)
			for b := range NumSymbols {
				lb := codeLengths[v][b]
				if a == b || la > lb {
					continue
				}
				if codeBits[v][b]&(1<<la-1) == codeBits[v][a] {
					t.Errorf("table %d: code of leaf %d is a prefix of leaf %d", v, a, b)
				}
			}
		}
		if kraft != 1<<MaxCodeLength {
			t.Errorf("table %d: code is not complete", v)
		}
	}
}

// TestDecodeKnownCodewords pins one codeword per table. Each input byte is
// the codeword itself, first stream bit in bit 0.
func TestDecodeKnownCodewords(t *testing.T) {
	t.Parallel()

	tests := []struct {
		variant uint8
		data    byte
		want    uint8
		bits    int
	}{
		{0, 0x01, 1, 4},
		{0, 0x0E, 14, 4},
		{1, 0x03, 2, 5},
		{1, 0x01, 1, 4},
		{2, 0x09, 3, 4},
		{3, 0x1D, 7, 5},
		{4, 0x01, 4, 4},
		{5, 0x0A, 3, 4},
		{6, 0x01, 5, 4},
		{7, 0x3B, 7, 6},
		{8, 0x2B, 5, 6},
		{9, 0x0D, 3, 4},
		{10, 0x0D, 4, 4},
		{11, 0x09, 2, 4},
		{12, 0x01, 2, 2},
		{13, 0x4F, 9, 7},
		{14, 0x77, 7, 7},
		{15, 0x01, 2, 3},
	}

	for _, tt := range tests {
		tree := Identity()
		tree.Variant = tt.variant
		r := bitstream.NewReader([]byte{tt.data, 0x00})
		got, err := Decode(r, &tree)
		if err != nil {
			t.Fatalf("table %d: Decode() error = %v", tt.variant, err)
		}
		if got != tt.want || r.Pos() != tt.bits {
			t.Errorf("table %d: Decode(0x%02x) = %d after %d bits, want %d after %d",
				tt.variant, tt.data, got, r.Pos(), tt.want, tt.bits)
		}
	}
}

func TestIdentityReadsRawNibbles(t *testing.T) {
	t.Parallel()

	// Variant 0 then nibbles 1 and 0xC, packed low bits first.
	w := bitstream.NewWriter()
	w.WriteBits(0, 4)
	w.WriteBits(1, 4)
	w.WriteBits(0xC, 4)
	w.WriteBits(0, 8)
	if got := w.Bytes(); got[0] != 0x10 || got[1] != 0x0C {
		t.Fatalf("stream = % x, want 10 0c", got)
	}

	r := bitstream.NewReader(w.Bytes())
	tree, err := ReadTree(r)
	if err != nil {
		t.Fatalf("ReadTree() error = %v", err)
	}
	for _, want := range []uint8{1, 0xC} {
		got, err := Decode(r, &tree)
		if err != nil || got != want {
			t.Errorf("Decode() = %d, %v; want %d", got, err, want)
		}
	}
}

func TestEncodeDecodeAllTables(t *testing.T) {
	t.Parallel()

	tree := Tree{Symbols: [NumSymbols]uint8{3, 9, 0, 12, 5, 1, 14, 7, 2, 11, 8, 15, 4, 10, 6, 13}}
	for v := range uint8(NumTables) {
		tree.Variant = v

		w := bitstream.NewWriter()
		for s := range uint8(NumSymbols) {
			if err := Encode(w, &tree, s); err != nil {
				t.Fatalf("table %d: Encode(%d) error = %v", v, s, err)
			}
		}
		total := w.Len()
		r := bitstream.NewReader(padded(w))
		for s := range uint8(NumSymbols) {
			got, err := Decode(r, &tree)
			if err != nil {
				t.Fatalf("table %d: Decode() error = %v", v, err)
			}
			if got != s {
				t.Errorf("table %d: Decode() = %d, want %d", v, got, s)
			}
		}
		if r.Pos() != total {
			t.Errorf("table %d: decoded %d bits, encoded %d", v, r.Pos(), total)
		}
	}
}

func TestDecodeShortestCode(t *testing.T) {
	t.Parallel()

	// Table 1 gives leaf 0 the one-bit code 0.
	tree := Identity()
	tree.Variant = 1
	r := bitstream.NewReader([]byte{0x00, 0x00})
	got, err := Decode(r, &tree)
	if err != nil || got != 0 || r.Pos() != 1 {
		t.Errorf("Decode() = %d, %v after %d bits; want 0, nil after 1", got, err, r.Pos())
	}
}

func TestEncodeUnknownSymbol(t *testing.T) {
	t.Parallel()

	tree := Tree{Variant: 3} // all leaves map to 0
	if err := Encode(bitstream.NewWriter(), &tree, 7); !errors.Is(err, ErrInvalidCode) {
		t.Errorf("Encode() error = %v, want ErrInvalidCode", err)
	}
}

func TestDecodeTruncated(t *testing.T) {
	t.Parallel()

	tree := Identity()
	if _, err := Decode(bitstream.NewReader(nil), &tree); !errors.Is(err, bitstream.ErrOutOfBounds) {
		t.Errorf("Decode() error = %v, want ErrOutOfBounds", err)
	}
}
