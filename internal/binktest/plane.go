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

// Package binktest authors synthetic Bink streams for tests.
//
// It mirrors the decoder's refill rules: every bundle emits all of its
// values for a plane as one batch on the first row, and a zero count on the
// first row that starts with the batch consumed.
package binktest

import (
	"errors"
	"fmt"
	"math/bits"

	"github.com/ZaparooProject/go-bink/format"
	"github.com/ZaparooProject/go-bink/internal/bitstream"
	"github.com/ZaparooProject/go-bink/internal/huffman"
)

// Bundle indices in stream order.
const (
	BlockTypes = iota
	SubBlockTypes
	Colors
	Pattern
	XOffset
	YOffset
	IntraDC
	InterDC
	Run

	NumBundles
)

// Block type codes.
const (
	Skip = iota
	Scaled
	Motion
	RunBlock
	Residue
	Intra
	Fill
	Inter
	PatternBlock
	Raw
)

// ErrUnencodable is returned when a value cannot be expressed in the stream.
var ErrUnencodable = errors.New("binktest: value cannot be encoded")

// Row lists the values the blocks of one block row consume and the bits
// they read directly from the stream.
type Row struct {
	Inline func(w *bitstream.Writer)
	Values [NumBundles][]int
}

// Plane describes one coded plane.
type Plane struct {
	// Flat selects the whole-plane fill of revision 'k' streams.
	Flat *uint8

	// Trees overrides the identity tree per bundle. Entries for the DC
	// bundles are ignored.
	Trees map[int]huffman.Tree

	Rows []Row
}

// FlatPlane returns a plane filled with v.
func FlatPlane(v uint8) Plane {
	return Plane{Flat: &v}
}

// Geometry returns the block grid and bundle count widths the decoder uses
// for a plane. lumaWidth and lumaHeight are the frame dimensions.
func Geometry(lumaWidth, lumaHeight int, chroma bool) (bw, bh int, lens [NumBundles]int) {
	width := lumaWidth
	bw, bh = (lumaWidth+7)>>3, (lumaHeight+7)>>3
	if chroma {
		width >>= 1
		bw, bh = (lumaWidth+15)>>4, (lumaHeight+15)>>4
	}
	w := (max(width, 8) + 7) &^ 7
	blen := func(x int) int { return bits.Len(uint(x)) }

	lens[BlockTypes] = blen((w >> 3) + 511)
	lens[SubBlockTypes] = blen((w >> 4) + 511)
	lens[Colors] = blen(bw*64 + 511)
	lens[Pattern] = blen(bw*8 + 511)
	lens[XOffset] = blen((w >> 3) + 511)
	lens[YOffset] = blen((w >> 3) + 511)
	lens[IntraDC] = blen((w >> 3) + 511)
	lens[InterDC] = blen((w >> 3) + 511)
	lens[Run] = blen(bw*48 + 511)
	return bw, bh, lens
}

type planeWriter struct {
	w       *bitstream.Writer
	trees   [NumBundles]huffman.Tree
	colHigh [16]huffman.Tree
	lens    [NumBundles]int
	rev     format.Revision
	colLast uint8
}

// WritePlane appends plane p to w. lumaWidth and lumaHeight are the frame
// dimensions; chroma selects half-resolution geometry.
func WritePlane(w *bitstream.Writer, rev format.Revision, lumaWidth, lumaHeight int, chroma bool, p Plane) error {
	defer w.AlignTo32()

	if rev.HasFlatPlanes() {
		if p.Flat != nil {
			w.WriteBit(1)
			w.WriteBits(uint32(*p.Flat), 8)
			return nil
		}
		w.WriteBit(0)
	} else if p.Flat != nil {
		return fmt.Errorf("%w: flat planes need revision k", ErrUnencodable)
	}

	_, bh, lens := Geometry(lumaWidth, lumaHeight, chroma)
	if len(p.Rows) != bh {
		return fmt.Errorf("%w: plane has %d block rows, got %d", ErrUnencodable, bh, len(p.Rows))
	}

	pw := &planeWriter{w: w, rev: rev, lens: lens}
	for i := range pw.colHigh {
		pw.colHigh[i] = huffman.Identity()
	}
	for b := range NumBundles {
		pw.trees[b] = huffman.Identity()
		if t, ok := p.Trees[b]; ok {
			pw.trees[b] = t
		}
	}

	for b := range NumBundles {
		if b == Colors {
			for _, t := range pw.colHigh {
				if err := huffman.WriteTree(w, t); err != nil {
					return err
				}
			}
		}
		if b == IntraDC || b == InterDC {
			continue
		}
		if err := huffman.WriteTree(w, pw.trees[b]); err != nil {
			return err
		}
	}

	// Concatenate each bundle's values and note the row after which the
	// batch is used up.
	var batch [NumBundles][]int
	var lastRow [NumBundles]int
	for b := range NumBundles {
		lastRow[b] = -1
		for r, row := range p.Rows {
			if len(row.Values[b]) > 0 {
				batch[b] = append(batch[b], row.Values[b]...)
				lastRow[b] = r
			}
		}
	}

	var live [NumBundles]bool
	for b := range live {
		live[b] = true
	}
	for r, row := range p.Rows {
		for b := range NumBundles {
			if !live[b] {
				continue
			}
			switch {
			case r == 0 && len(batch[b]) > 0:
				if err := pw.writeBatch(b, batch[b]); err != nil {
					return fmt.Errorf("bundle %d: %w", b, err)
				}
			case r > lastRow[b]:
				w.WriteBits(0, lens[b])
				live[b] = false
			}
		}
		if row.Inline != nil {
			row.Inline(w)
		}
	}
	return nil
}

func allEqual(v []int) bool {
	for _, x := range v {
		if x != v[0] {
			return false
		}
	}
	return true
}

func (pw *planeWriter) writeCount(b, n int) error {
	if b == BlockTypes || b == SubBlockTypes {
		if pw.rev.HasFlatPlanes() {
			if n == 0xBB {
				return fmt.Errorf("%w: batch of 0xBB block types", ErrUnencodable)
			}
			n ^= 0xBB
		}
	}
	if n <= 0 || n >= 1<<pw.lens[b] {
		return fmt.Errorf("%w: batch of %d in %d bits", ErrUnencodable, n, pw.lens[b])
	}
	pw.w.WriteBits(uint32(n), pw.lens[b])
	return nil
}

func (pw *planeWriter) writeBatch(b int, vals []int) error {
	if err := pw.writeCount(b, len(vals)); err != nil {
		return err
	}
	w := pw.w
	tree := &pw.trees[b]

	switch b {
	case BlockTypes, SubBlockTypes, Run:
		if allEqual(vals) {
			w.WriteBit(1)
			return pw.nibble(vals[0], nil)
		}
		w.WriteBit(0)
		for _, v := range vals {
			if b != Run && v >= 12 {
				return fmt.Errorf("%w: block type %d", ErrUnencodable, v)
			}
			if err := pw.nibble(v, tree); err != nil {
				return err
			}
		}
	case Colors:
		if allEqual(vals) {
			w.WriteBit(1)
			return pw.color(vals[0])
		}
		w.WriteBit(0)
		for _, v := range vals {
			if err := pw.color(v); err != nil {
				return err
			}
		}
	case Pattern:
		for _, v := range vals {
			if v < 0 || v > 255 {
				return fmt.Errorf("%w: pattern byte %d", ErrUnencodable, v)
			}
			if err := pw.nibble(v&15, tree); err != nil {
				return err
			}
			if err := pw.nibble(v>>4, tree); err != nil {
				return err
			}
		}
	case XOffset, YOffset:
		if allEqual(vals) {
			w.WriteBit(1)
			return pw.signedNibble(vals[0], nil)
		}
		w.WriteBit(0)
		for _, v := range vals {
			if err := pw.signedNibble(v, tree); err != nil {
				return err
			}
		}
	case IntraDC, InterDC:
		return pw.dcs(vals, b == InterDC)
	}
	return nil
}

// nibble writes a 4-bit value raw when tree is nil and Huffman coded
// otherwise.
func (pw *planeWriter) nibble(v int, tree *huffman.Tree) error {
	if v < 0 || v > 15 {
		return fmt.Errorf("%w: nibble %d", ErrUnencodable, v)
	}
	if tree == nil {
		pw.w.WriteBits(uint32(v), 4)
		return nil
	}
	return huffman.Encode(pw.w, tree, uint8(v))
}

func (pw *planeWriter) sign(v int) {
	if v < 0 {
		pw.w.WriteBit(1)
	} else {
		pw.w.WriteBit(0)
	}
}

func (pw *planeWriter) signedNibble(v int, tree *huffman.Tree) error {
	m := v
	if m < 0 {
		m = -m
	}
	if err := pw.nibble(m, tree); err != nil {
		return err
	}
	if m != 0 {
		pw.sign(v)
	}
	return nil
}

// color writes one color byte as a high nibble coded with the tree picked
// by the previous high nibble and a low nibble coded with the color tree.
func (pw *planeWriter) color(v int) error {
	if v < 0 || v > 255 {
		return fmt.Errorf("%w: color %d", ErrUnencodable, v)
	}
	if pw.rev.SignFoldedColors() {
		switch {
		case v == 0:
			return fmt.Errorf("%w: color 0 in a sign-folded stream", ErrUnencodable)
		case v >= 128:
			v -= 128
		default:
			v = 0x80 | (128 - v)
		}
	}
	hi, lo := v>>4, v&15
	if err := huffman.Encode(pw.w, &pw.colHigh[pw.colLast], uint8(hi)); err != nil {
		return err
	}
	pw.colLast = uint8(hi)
	return huffman.Encode(pw.w, &pw.trees[Colors], uint8(lo))
}

func (pw *planeWriter) dcs(vals []int, signed bool) error {
	w := pw.w
	first := vals[0]
	startBits := 11
	if signed {
		startBits = 10
	}
	m := first
	if m < 0 {
		if !signed {
			return fmt.Errorf("%w: negative intra DC %d", ErrUnencodable, first)
		}
		m = -m
	}
	if m >= 1<<startBits {
		return fmt.Errorf("%w: DC %d", ErrUnencodable, first)
	}
	w.WriteBits(uint32(m), startBits)
	if signed && m != 0 {
		pw.sign(first)
	}

	for start := 1; start < len(vals); start += 8 {
		group := vals[start:min(start+8, len(vals))]

		width, p := 0, vals[start-1]
		for _, v := range group {
			width = max(width, bits.Len(uint(abs(v-p))))
			p = v
		}
		if width > 15 {
			return fmt.Errorf("%w: DC delta needs %d bits", ErrUnencodable, width)
		}
		w.WriteBits(uint32(width), 4)
		if width == 0 {
			continue
		}
		p = vals[start-1]
		for _, v := range group {
			d := v - p
			w.WriteBits(uint32(abs(d)), width)
			if d != 0 {
				pw.sign(d)
			}
			p = v
		}
	}
	return nil
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
