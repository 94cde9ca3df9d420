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

func TestBitsLSBFirst(t *testing.T) {
	t.Parallel()

	r := NewReader([]byte{0b1011_0100, 0xFF, 0x00, 0x12})

	tests := []struct {
		n    int
		want uint32
	}{
		{2, 0b00},
		{3, 0b101},
		{3, 0b101},
		{4, 0xF},
		{8, 0x0F},
		{4, 0x0},
	}

	for i, tt := range tests {
		got, err := r.Bits(tt.n)
		if err != nil {
			t.Fatalf("read %d: Bits(%d) error = %v", i, tt.n, err)
		}
		if got != tt.want {
			t.Errorf("read %d: Bits(%d) = %#b, want %#b", i, tt.n, got, tt.want)
		}
	}
	if r.Pos() != 24 {
		t.Errorf("Pos() = %d, want 24", r.Pos())
	}
}

func TestBitsSpansFiveBytes(t *testing.T) {
	t.Parallel()

	r := NewReader([]byte{0xF0, 0xDE, 0xBC, 0x9A, 0x78, 0x56, 0x00})
	if err := r.Skip(4); err != nil {
		t.Fatalf("Skip() error = %v", err)
	}
	got, err := r.Bits(31)
	if err != nil {
		t.Fatalf("Bits(31) error = %v", err)
	}
	// bits 4..34 of 0x5678_9ABC_DEF0
	want := uint32((0x56789ABCDEF0 >> 4) & (1<<31 - 1))
	if got != want {
		t.Errorf("Bits(31) = 0x%08x, want 0x%08x", got, want)
	}
}

func TestBitsRejectsReadEndingOnLastBit(t *testing.T) {
	t.Parallel()

	r := NewReader([]byte{0xAB})
	if _, err := r.Bits(8); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("Bits(8) on 8-bit buffer error = %v, want ErrOutOfBounds", err)
	}
	if r.Pos() != 0 {
		t.Errorf("failed read advanced position to %d", r.Pos())
	}

	got, err := r.Bits(7)
	if err != nil {
		t.Fatalf("Bits(7) error = %v", err)
	}
	if got != 0x2B {
		t.Errorf("Bits(7) = 0x%x, want 0x2b", got)
	}

	// Bit() may still take the final bit.
	bit, err := r.Bit()
	if err != nil {
		t.Fatalf("Bit() error = %v", err)
	}
	if bit != 1 {
		t.Errorf("Bit() = %d, want 1", bit)
	}
	if _, err := r.Bit(); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("Bit() at end error = %v, want ErrOutOfBounds", err)
	}
}

func TestSkipBounds(t *testing.T) {
	t.Parallel()

	r := NewReader(make([]byte, 2))
	if err := r.Skip(16); err != nil {
		t.Fatalf("Skip(16) error = %v", err)
	}
	if r.BitsLeft() != 0 {
		t.Errorf("BitsLeft() = %d, want 0", r.BitsLeft())
	}
	if err := r.Skip(1); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("Skip(1) at end error = %v, want ErrOutOfBounds", err)
	}
	if err := r.Skip(-1); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("Skip(-1) error = %v, want ErrOutOfBounds", err)
	}
}

func TestBitsInvalidWidth(t *testing.T) {
	t.Parallel()

	r := NewReader(make([]byte, 16))
	for _, n := range []int{-1, 32, 40} {
		if _, err := r.Bits(n); !errors.Is(err, ErrOutOfBounds) {
			t.Errorf("Bits(%d) error = %v, want ErrOutOfBounds", n, err)
		}
	}
	if v, err := r.Bits(0); err != nil || v != 0 {
		t.Errorf("Bits(0) = %d, %v; want 0, nil", v, err)
	}
}

func TestAlignTo32(t *testing.T) {
	t.Parallel()

	r := NewReader(make([]byte, 6))
	r.AlignTo32()
	if r.Pos() != 0 {
		t.Errorf("aligned reader moved to %d", r.Pos())
	}
	_ = r.Skip(3)
	r.AlignTo32()
	if r.Pos() != 32 {
		t.Errorf("Pos() = %d, want 32", r.Pos())
	}
	_ = r.Skip(1)
	r.AlignTo32()
	if r.Pos() != 48 {
		t.Errorf("Pos() = %d, want clamp to 48", r.Pos())
	}
}

func TestWriterRoundTrip(t *testing.T) {
	t.Parallel()

	fields := []struct {
		v uint32
		n int
	}{
		{1, 1}, {0x5, 3}, {0xBB, 8}, {0x1234, 13}, {0, 2}, {0x7FFFFFFF, 31}, {0xA, 4},
	}

	w := NewWriter()
	for _, f := range fields {
		w.WriteBits(f.v, f.n)
	}
	w.WriteBits(0, 8) // keep the last field off the final bit

	r := NewReader(w.Bytes())
	for i, f := range fields {
		got, err := r.Bits(f.n)
		if err != nil {
			t.Fatalf("field %d: Bits(%d) error = %v", i, f.n, err)
		}
		if got != f.v {
			t.Errorf("field %d: got 0x%x, want 0x%x", i, got, f.v)
		}
	}
}

func TestWriterAlign(t *testing.T) {
	t.Parallel()

	w := NewWriter()
	w.WriteBool(true)
	w.AlignTo32()
	if w.Len() != 32 || len(w.Bytes()) != 4 {
		t.Errorf("Len() = %d, bytes = %d; want 32, 4", w.Len(), len(w.Bytes()))
	}
	if w.Bytes()[0] != 1 {
		t.Errorf("first byte = %#x, want 0x1", w.Bytes()[0])
	}
}
