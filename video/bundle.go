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
	"fmt"
	"math/bits"

	"github.com/ZaparooProject/go-bink/format"
	"github.com/ZaparooProject/go-bink/internal/bitstream"
	"github.com/ZaparooProject/go-bink/internal/huffman"
)

// Source identifies one of the value bundles interleaved in a plane.
type Source int

// Bundles in stream order.
const (
	SourceBlockTypes Source = iota
	SourceSubBlockTypes
	SourceColors
	SourcePattern
	SourceXOffset
	SourceYOffset
	SourceIntraDC
	SourceInterDC
	SourceRun

	NumSources
)

var sourceNames = [NumSources]string{
	"block types", "sub-block types", "colors", "pattern",
	"x offset", "y offset", "intra DC", "inter DC", "run",
}

func (s Source) String() string {
	if s < 0 || s >= NumSources {
		return fmt.Sprintf("source(%d)", int(s))
	}
	return sourceNames[s]
}

// dcStartBits is the width of the first DC value in a batch.
const dcStartBits = 11

// blockTypeRuns are the repeat counts of block type symbols 12..15.
var blockTypeRuns = [4]int{4, 8, 12, 32}

// bundle is a queue of decoded values for one source.
type bundle struct {
	tree huffman.Tree
	data []int16
	len  int  // bits in a batch count
	dec  int  // values decoded
	ptr  int  // values consumed
	live bool // false once a zero count ends the source for this plane
}

// bundles holds the per-plane state of all sources.
type bundles struct {
	src     [NumSources]bundle
	colHigh [16]huffman.Tree
	colLast uint8
	rev     format.Revision
}

// initLengths sets the batch count widths for a plane of the given width
// (already clamped to at least 8) and block columns.
func (bs *bundles) initLengths(width, bw int) {
	width = (width + 7) &^ 7

	bs.setLen(SourceBlockTypes, bits.Len(uint((width>>3)+511)))
	bs.setLen(SourceSubBlockTypes, bits.Len(uint((width>>4)+511)))
	bs.setLen(SourceColors, bits.Len(uint(bw*64+511)))
	bs.setLen(SourceIntraDC, bits.Len(uint((width>>3)+511)))
	bs.setLen(SourceInterDC, bits.Len(uint((width>>3)+511)))
	bs.setLen(SourceXOffset, bits.Len(uint((width>>3)+511)))
	bs.setLen(SourceYOffset, bits.Len(uint((width>>3)+511)))
	bs.setLen(SourcePattern, bits.Len(uint(bw*8+511)))
	bs.setLen(SourceRun, bits.Len(uint(bw*48+511)))
}

func (bs *bundles) setLen(s Source, n int) {
	b := &bs.src[s]
	b.len = n
	// A batch count never exceeds 2^n-1 values, and a batch is only read
	// once the previous one is fully consumed.
	if need := 1 << n; cap(b.data) < need {
		b.data = make([]int16, need)
	}
	b.data = b.data[:cap(b.data)]
}

// readBundle reads the tree header of s and rewinds its queue.
func (bs *bundles) readBundle(r *bitstream.Reader, s Source) error {
	if s == SourceColors {
		for i := range bs.colHigh {
			t, err := huffman.ReadTree(r)
			if err != nil {
				return err
			}
			bs.colHigh[i] = t
		}
		bs.colLast = 0
	}
	b := &bs.src[s]
	if s != SourceIntraDC && s != SourceInterDC {
		t, err := huffman.ReadTree(r)
		if err != nil {
			return err
		}
		b.tree = t
	}
	b.dec, b.ptr, b.live = 0, 0, true
	return nil
}

// batch reads the value count of the next batch for b. It returns 0 when
// the source has pending values or has ended.
func (b *bundle) batch(r *bitstream.Reader) (int, error) {
	if !b.live || b.dec > b.ptr {
		return 0, nil
	}
	t, err := r.Bits(b.len)
	if err != nil {
		return 0, err
	}
	if t == 0 {
		b.live = false
		return 0, nil
	}
	b.dec, b.ptr = 0, 0
	return int(t), nil
}

// refill reads one batch for every source that needs one, in stream order.
func (bs *bundles) refill(r *bitstream.Reader) error {
	for s := range NumSources {
		var err error
		switch s {
		case SourceBlockTypes, SourceSubBlockTypes:
			err = bs.readBlockTypes(r, s)
		case SourceColors:
			err = bs.readColors(r)
		case SourcePattern:
			err = bs.readPatterns(r)
		case SourceXOffset, SourceYOffset:
			err = bs.readMotion(r, s)
		case SourceIntraDC:
			err = bs.readDCs(r, s, false)
		case SourceInterDC:
			err = bs.readDCs(r, s, true)
		case SourceRun:
			err = bs.readRuns(r)
		}
		if err != nil {
			return fmt.Errorf("%s: %w", s, err)
		}
	}
	return nil
}

func (b *bundle) reserve(t int) error {
	if t > len(b.data) {
		return fmt.Errorf("%w: batch of %d exceeds %d", ErrCorruptBitstream, t, len(b.data))
	}
	return nil
}

func (b *bundle) broadcast(v int16, t int) {
	for i := range t {
		b.data[i] = v
	}
	b.dec = t
}

func (bs *bundles) readBlockTypes(r *bitstream.Reader, s Source) error {
	b := &bs.src[s]
	t, err := b.batch(r)
	if err != nil || t == 0 {
		return err
	}
	if bs.rev.HasFlatPlanes() {
		t ^= 0xBB
		if t == 0 {
			b.live = false
			return nil
		}
	}
	if err := b.reserve(t); err != nil {
		return err
	}

	flat, err := r.Bit()
	if err != nil {
		return err
	}
	if flat == 1 {
		v, err := r.Bits(4)
		if err != nil {
			return err
		}
		b.broadcast(int16(v), t)
		return nil
	}

	last := int16(0)
	for b.dec < t {
		v, err := huffman.Decode(r, &b.tree)
		if err != nil {
			return err
		}
		if v < 12 {
			last = int16(v)
			b.data[b.dec] = last
			b.dec++
			continue
		}
		run := blockTypeRuns[v-12]
		if t-b.dec < run {
			return fmt.Errorf("%w: block type run of %d overflows batch", ErrCorruptBitstream, run)
		}
		for range run {
			b.data[b.dec] = last
			b.dec++
		}
	}
	return nil
}

func (bs *bundles) readColor(r *bitstream.Reader) (int16, error) {
	hi, err := huffman.Decode(r, &bs.colHigh[bs.colLast])
	if err != nil {
		return 0, err
	}
	bs.colLast = hi
	lo, err := huffman.Decode(r, &bs.src[SourceColors].tree)
	if err != nil {
		return 0, err
	}
	v := int(hi)<<4 | int(lo)
	if bs.rev.SignFoldedColors() {
		sign := int(int8(uint8(v))) >> 7
		v = ((v & 0x7F) ^ sign) - sign + 0x80
	}
	return int16(uint8(v)), nil
}

func (bs *bundles) readColors(r *bitstream.Reader) error {
	b := &bs.src[SourceColors]
	t, err := b.batch(r)
	if err != nil || t == 0 {
		return err
	}
	if err := b.reserve(t); err != nil {
		return err
	}

	flat, err := r.Bit()
	if err != nil {
		return err
	}
	if flat == 1 {
		v, err := bs.readColor(r)
		if err != nil {
			return err
		}
		b.broadcast(v, t)
		return nil
	}
	for b.dec < t {
		v, err := bs.readColor(r)
		if err != nil {
			return err
		}
		b.data[b.dec] = v
		b.dec++
	}
	return nil
}

func (bs *bundles) readPatterns(r *bitstream.Reader) error {
	b := &bs.src[SourcePattern]
	t, err := b.batch(r)
	if err != nil || t == 0 {
		return err
	}
	if err := b.reserve(t); err != nil {
		return err
	}
	for b.dec < t {
		lo, err := huffman.Decode(r, &b.tree)
		if err != nil {
			return err
		}
		hi, err := huffman.Decode(r, &b.tree)
		if err != nil {
			return err
		}
		b.data[b.dec] = int16(hi)<<4 | int16(lo)
		b.dec++
	}
	return nil
}

// readSigned applies a following sign bit to a non-zero magnitude.
func readSigned(r *bitstream.Reader, v int) (int, error) {
	if v == 0 {
		return 0, nil
	}
	s, err := r.Bit()
	if err != nil {
		return 0, err
	}
	sign := -int(s)
	return (v ^ sign) - sign, nil
}

func (bs *bundles) readMotion(r *bitstream.Reader, s Source) error {
	b := &bs.src[s]
	t, err := b.batch(r)
	if err != nil || t == 0 {
		return err
	}
	if err := b.reserve(t); err != nil {
		return err
	}

	flat, err := r.Bit()
	if err != nil {
		return err
	}
	if flat == 1 {
		m, err := r.Bits(4)
		if err != nil {
			return err
		}
		v, err := readSigned(r, int(m))
		if err != nil {
			return err
		}
		b.broadcast(int16(v), t)
		return nil
	}
	for b.dec < t {
		m, err := huffman.Decode(r, &b.tree)
		if err != nil {
			return err
		}
		v, err := readSigned(r, int(m))
		if err != nil {
			return err
		}
		b.data[b.dec] = int16(v)
		b.dec++
	}
	return nil
}

func (bs *bundles) readDCs(r *bitstream.Reader, s Source, signed bool) error {
	b := &bs.src[s]
	t, err := b.batch(r)
	if err != nil || t == 0 {
		return err
	}
	if err := b.reserve(t); err != nil {
		return err
	}

	startBits := dcStartBits
	if signed {
		startBits--
	}
	first, err := r.Bits(startBits)
	if err != nil {
		return err
	}
	v := int(first)
	if signed {
		if v, err = readSigned(r, v); err != nil {
			return err
		}
	}
	b.data[0] = int16(v)
	b.dec = 1

	for left := t - 1; left > 0; {
		n := min(left, 8)
		left -= n
		width, err := r.Bits(4)
		if err != nil {
			return err
		}
		for range n {
			if width != 0 {
				d, err := r.Bits(int(width))
				if err != nil {
					return err
				}
				delta, err := readSigned(r, int(d))
				if err != nil {
					return err
				}
				v += delta
				if v < -32768 || v > 32767 {
					return fmt.Errorf("%w: DC value %d out of range", ErrCorruptBitstream, v)
				}
			}
			b.data[b.dec] = int16(v)
			b.dec++
		}
	}
	return nil
}

func (bs *bundles) readRuns(r *bitstream.Reader) error {
	b := &bs.src[SourceRun]
	t, err := b.batch(r)
	if err != nil || t == 0 {
		return err
	}
	if err := b.reserve(t); err != nil {
		return err
	}

	flat, err := r.Bit()
	if err != nil {
		return err
	}
	if flat == 1 {
		v, err := r.Bits(4)
		if err != nil {
			return err
		}
		b.broadcast(int16(v), t)
		return nil
	}
	for b.dec < t {
		v, err := huffman.Decode(r, &b.tree)
		if err != nil {
			return err
		}
		b.data[b.dec] = int16(v)
		b.dec++
	}
	return nil
}

// value pops the next decoded value of s.
func (bs *bundles) value(s Source) (int, error) {
	b := &bs.src[s]
	if b.ptr >= b.dec {
		return 0, fmt.Errorf("%w: %s bundle exhausted", ErrCorruptBitstream, s)
	}
	v := b.data[b.ptr]
	b.ptr++
	return int(v), nil
}

// color pops the next color value.
func (bs *bundles) color() (uint8, error) {
	v, err := bs.value(SourceColors)
	return uint8(v), err
}
