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

package video

import (
	"math"
	"testing"

	"github.com/ZaparooProject/go-bink/internal/bitstream"
)

func writeBits(w *bitstream.Writer, bits ...uint32) {
	for _, b := range bits {
		w.WriteBit(b)
	}
}

func TestScanIsPermutation(t *testing.T) {
	t.Parallel()

	var seen [64]bool
	for i, p := range scan {
		if p >= 64 || seen[p] {
			t.Fatalf("scan[%d] = %d repeats or is out of range", i, p)
		}
		seen[p] = true
	}
}

func TestQuantTables(t *testing.T) {
	t.Parallel()

	if intraQuant[0][0] != 65536 {
		t.Errorf("intra DC step = %d, want 65536", intraQuant[0][0])
	}
	if interQuant[0][0] != 65536 {
		t.Errorf("inter DC step = %d, want 65536", interQuant[0][0])
	}
	for q := range NumQuantizers {
		want := uint32(math.Round(65536 * float64(quantNum[q]) / float64(quantDen[q])))
		if intraQuant[q][0] != want {
			t.Errorf("intra DC step %d = %d, want %d", q, intraQuant[q][0], want)
		}
	}
}

func TestQuantTableEntries(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		table *[NumQuantizers][64]uint32
		q     int
		index int
		want  uint32
	}{
		{"intra dc", &intraQuant, 0, 0, 0x010000},
		{"intra 1", &intraQuant, 0, 1, 0x016315},
		{"intra 2", &intraQuant, 0, 2, 0x01E83D},
		{"intra 3", &intraQuant, 0, 3, 0x02A535},
		{"intra 4", &intraQuant, 0, 4, 0x014E7B},
		{"intra 7", &intraQuant, 0, 7, 0x02724C},
		{"intra 13", &intraQuant, 0, 13, 0x00611E},
		{"intra 28", &intraQuant, 0, 28, 0x01D000},
		{"intra 48", &intraQuant, 0, 48, 0x025000},
		{"intra last", &intraQuant, 0, 63, 0x006517},
		{"intra doubled", &intraQuant, 3, 1, 0x02C62A},
		{"intra four thirds", &intraQuant, 1, 0, 0x015555},
		{"inter dc", &interQuant, 0, 0, 0x010000},
		{"inter 1", &interQuant, 0, 1, 0x017946},
		{"inter 2", &interQuant, 0, 2, 0x01A5A9},
		{"inter 3", &interQuant, 0, 3, 0x0248DC},
		{"inter 4", &interQuant, 0, 4, 0x016363},
		{"inter 7", &interQuant, 0, 7, 0x0209EA},
		{"inter four thirds", &interQuant, 1, 1, 0x01F708},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.table[tt.q][tt.index]; got != tt.want {
				t.Errorf("quant[%d][%d] = %#x, want %#x", tt.q, tt.index, got, tt.want)
			}
		})
	}
}

func TestReadDCTCoeffsModeThree(t *testing.T) {
	t.Parallel()

	w := bitstream.NewWriter()
	w.WriteBits(1, 4)     // one bit plane
	writeBits(w, 0, 0, 0) // (4,0) (24,0) (44,0) idle
	writeBits(w, 1, 0)    // (1,3): +1
	writeBits(w, 0)       // (2,3) idle
	writeBits(w, 1, 1)    // (3,3): -1
	w.WriteBits(5, 4)     // quantizer

	var l coefLists
	var block [64]int32
	idx, q, err := readDCTCoeffs(readerFor(w), &l, &block, nil)
	if err != nil {
		t.Fatalf("readDCTCoeffs() error = %v", err)
	}
	if q != 5 {
		t.Errorf("quantizer = %d, want 5", q)
	}
	if !equalInts(idx, []int{1, 3}) {
		t.Errorf("coefficients = %v, want [1 3]", idx)
	}
	if block[scan[1]] != 1 || block[scan[3]] != -1 {
		t.Errorf("block[1] = %d, block[9] = %d; want 1, -1", block[1], block[9])
	}
}

func TestReadDCTCoeffsModeZero(t *testing.T) {
	t.Parallel()

	w := bitstream.NewWriter()
	w.WriteBits(1, 4)
	writeBits(w, 1)       // (4,0) expands
	writeBits(w, 0, 0)    // coef 4: +1
	writeBits(w, 1)       // coef 5 deferred
	writeBits(w, 0, 1)    // coef 6: -1
	writeBits(w, 0, 0)    // coef 7: +1
	writeBits(w, 0)       // revisited (8,1) idle
	writeBits(w, 0, 0, 0) // (24,0) (44,0) (1,3)
	writeBits(w, 0, 0)    // (2,3) (3,3)
	w.WriteBits(0, 4)

	var l coefLists
	var block [64]int32
	idx, q, err := readDCTCoeffs(readerFor(w), &l, &block, nil)
	if err != nil {
		t.Fatalf("readDCTCoeffs() error = %v", err)
	}
	if q != 0 {
		t.Errorf("quantizer = %d, want 0", q)
	}
	if !equalInts(idx, []int{4, 6, 7}) {
		t.Errorf("coefficients = %v, want [4 6 7]", idx)
	}
	if block[scan[4]] != 1 || block[scan[6]] != -1 || block[scan[7]] != 1 {
		t.Errorf("block = %v", block)
	}
	if l.coef[l.start] != 5 || l.mode[l.start] != 3 {
		t.Errorf("deferred entry = (%d,%d), want (5,3)", l.coef[l.start], l.mode[l.start])
	}
}

func TestReadDCTCoeffsWideValue(t *testing.T) {
	t.Parallel()

	w := bitstream.NewWriter()
	w.WriteBits(3, 4) // planes 2, 1, 0
	// plane 2: (1,3) takes 2 extra bits: 0b01 | 1<<2 = 5, negative
	writeBits(w, 0, 0, 0, 1)
	w.WriteBits(1, 2)
	writeBits(w, 1)
	writeBits(w, 0, 0)
	// planes 1 and 0: everything idle; (1,3) is cleared
	writeBits(w, 0, 0, 0, 0, 0)
	writeBits(w, 0, 0, 0, 0, 0)
	w.WriteBits(2, 4)

	var l coefLists
	var block [64]int32
	idx, q, err := readDCTCoeffs(readerFor(w), &l, &block, nil)
	if err != nil {
		t.Fatalf("readDCTCoeffs() error = %v", err)
	}
	if q != 2 || !equalInts(idx, []int{1}) || block[scan[1]] != -5 {
		t.Errorf("got q=%d idx=%v block[1]=%d; want 2 [1] -5", q, idx, block[scan[1]])
	}
}

func TestUnquantize(t *testing.T) {
	t.Parallel()

	var block [64]int32
	block[0] = 1600
	block[scan[2]] = -3
	unquantize(&block, &intraQuant[0], []int{2})

	if block[0] != 51200 {
		t.Errorf("DC = %d, want 51200", block[0])
	}
	want := int32(int64(-3) * int64(intraQuant[0][2]) >> 11)
	if block[scan[2]] != want {
		t.Errorf("AC = %d, want %d", block[scan[2]], want)
	}
}

func TestReadResidueSingleCoefficient(t *testing.T) {
	t.Parallel()

	w := bitstream.NewWriter()
	w.WriteBits(0, 3)     // mask 1
	writeBits(w, 0, 0, 0) // (4,0) (24,0) (44,0)
	writeBits(w, 1)       // (0,2)
	writeBits(w, 0, 0)    // coef 0 positive

	var l coefLists
	var block [64]int32
	if err := readResidue(readerFor(w), &l, &block, 0); err != nil {
		t.Fatalf("readResidue() error = %v", err)
	}
	for i, v := range block {
		want := int32(0)
		if i == 0 {
			want = 1
		}
		if v != want {
			t.Errorf("block[%d] = %d, want %d", i, v, want)
		}
	}
}

func TestReadResidueRefinesExisting(t *testing.T) {
	t.Parallel()

	w := bitstream.NewWriter()
	w.WriteBits(1, 3)     // mask 2, then 1
	writeBits(w, 0, 0, 0) // mask 2 list
	writeBits(w, 1)       // (0,2)
	writeBits(w, 0, 1)    // coef 0 = -2
	writeBits(w, 0, 0)    // coef 1 = +2
	writeBits(w, 1)       // coef 2 deferred
	writeBits(w, 1)       // coef 3 deferred
	writeBits(w, 1)       // mask 1: refine coef 0 to -3
	writeBits(w, 0)       // coef 1 unchanged

	var l coefLists
	var block [64]int32
	if err := readResidue(readerFor(w), &l, &block, 2); err != nil {
		t.Fatalf("readResidue() error = %v", err)
	}
	if block[scan[0]] != -3 || block[scan[1]] != 2 {
		t.Errorf("block[0] = %d, block[1] = %d; want -3, 2", block[scan[0]], block[scan[1]])
	}
}

func TestIDCTFlatBlock(t *testing.T) {
	t.Parallel()

	var block [64]int32
	block[0] = 51200
	p := newPlane(8, 8, 1, 1)
	p.idctPut(0, &block)
	for y := range 8 {
		for x := range 8 {
			if got := p.At(x, y); got != 200 {
				t.Fatalf("At(%d,%d) = %d, want 200", x, y, got)
			}
		}
	}
}

func TestIDCTClamps(t *testing.T) {
	t.Parallel()

	var block [64]int32
	block[0] = 1 << 20
	p := newPlane(8, 8, 1, 1)
	p.idctPut(0, &block)
	if p.At(3, 3) != 255 {
		t.Errorf("large DC = %d, want 255", p.At(3, 3))
	}

	block = [64]int32{}
	block[0] = -(1 << 20)
	p.idctAdd(0, &block)
	if p.At(3, 3) != 0 {
		t.Errorf("large negative residual = %d, want 0", p.At(3, 3))
	}
}

func TestIDCTACProducesGradient(t *testing.T) {
	t.Parallel()

	var block [64]int32
	block[0] = 51200
	block[1] = 20000
	idct(&block)
	if block[0] <= block[7] {
		t.Errorf("first horizontal AC should tilt the row: %v", block[:8])
	}
	for row := 1; row < 8; row++ {
		if block[row*8] != block[0] {
			t.Errorf("row %d differs from row 0 with no vertical AC", row)
		}
	}
}
