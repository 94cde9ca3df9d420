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

// Writer packs bits LSB-first, the inverse of Reader. It is used to author
// packets for tests and tooling.
type Writer struct {
	buf   []byte
	nbits int
}

// NewWriter creates an empty writer.
func NewWriter() *Writer {
	return &Writer{}
}

// WriteBit appends the low bit of v.
func (w *Writer) WriteBit(v uint32) {
	if w.nbits&7 == 0 {
		w.buf = append(w.buf, 0)
	}
	if v&1 != 0 {
		w.buf[w.nbits>>3] |= 1 << (w.nbits & 7)
	}
	w.nbits++
}

// WriteBits appends the low n bits of v, least significant first.
func (w *Writer) WriteBits(v uint32, n int) {
	for i := range n {
		w.WriteBit(v >> i)
	}
}

// WriteBool appends 1 for true and 0 for false.
func (w *Writer) WriteBool(b bool) {
	if b {
		w.WriteBit(1)
	} else {
		w.WriteBit(0)
	}
}

// AlignTo32 pads with zero bits to the next 32-bit boundary.
func (w *Writer) AlignTo32() {
	for w.nbits&31 != 0 {
		w.WriteBit(0)
	}
}

// Len returns the number of bits written.
func (w *Writer) Len() int { return w.nbits }

// Bytes returns the packed bytes. The final byte is zero-padded.
func (w *Writer) Bytes() []byte {
	return w.buf
}
