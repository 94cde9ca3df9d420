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

// Package huffman implements the small prefix-code layer of the Bink video
// bitstream: sixteen fixed code-length tables, each paired per use with a
// transmitted symbol permutation.
package huffman

import (
	"errors"
	"fmt"

	"github.com/ZaparooProject/go-bink/internal/bitstream"
)

// NumSymbols is the alphabet size of every table.
const NumSymbols = 16

// ErrInvalidCode is returned when no codeword matches the bits read.
var ErrInvalidCode = errors.New("huffman: invalid code")

// Tree pairs a code table with the symbol each leaf maps to.
type Tree struct {
	Variant uint8
	Symbols [NumSymbols]uint8
}

// Identity returns the tree that maps leaf i to symbol i under variant 0.
func Identity() Tree {
	var t Tree
	for i := range t.Symbols {
		t.Symbols[i] = uint8(i)
	}
	return t
}

// ReadTree reads a tree description.
//
// A zero variant carries no symbol data. Otherwise a selector bit chooses an
// explicit symbol list (1) or a merge network (0).
func ReadTree(r *bitstream.Reader) (Tree, error) {
	v, err := r.Bits(4)
	if err != nil {
		return Tree{}, err
	}
	if v == 0 {
		return Identity(), nil
	}

	t := Tree{Variant: uint8(v)}
	sel, err := r.Bit()
	if err != nil {
		return Tree{}, err
	}
	if sel == 1 {
		err = readList(r, &t)
	} else {
		err = readMerge(r, &t)
	}
	if err != nil {
		return Tree{}, err
	}
	return t, nil
}

// readList reads up to eight explicit symbols and fills the remaining slots
// with the unused symbols in ascending order.
func readList(r *bitstream.Reader, t *Tree) error {
	n, err := r.Bits(3)
	if err != nil {
		return err
	}
	length := int(n)

	var used [NumSymbols]bool
	for i := 0; i <= length; i++ {
		s, err := r.Bits(4)
		if err != nil {
			return err
		}
		t.Symbols[i] = uint8(s)
		used[s] = true
	}
	for i := 0; i < NumSymbols && length < NumSymbols-1; i++ {
		if !used[i] {
			length++
			t.Symbols[length] = uint8(i)
		}
	}
	return nil
}

// readMerge permutes 0..15 with up to four passes of bit-driven merges over
// blocks of doubling size.
func readMerge(r *bitstream.Reader, t *Tree) error {
	n, err := r.Bits(2)
	if err != nil {
		return err
	}

	var a, b [NumSymbols]uint8
	in, out := &a, &b
	for i := range in {
		in[i] = uint8(i)
	}
	for pass := 0; pass <= int(n); pass++ {
		size := 1 << pass
		for start := 0; start < NumSymbols; start += size << 1 {
			if err := merge(r, out[start:start+2*size], in[start:start+2*size], size); err != nil {
				return err
			}
		}
		in, out = out, in
	}
	t.Symbols = *in
	return nil
}

func merge(r *bitstream.Reader, dst, src []uint8, size int) error {
	left, right := src[:size], src[size:]
	i, j, k := 0, 0, 0
	for i < size && j < size {
		bit, err := r.Bit()
		if err != nil {
			return err
		}
		if bit == 0 {
			dst[k] = left[i]
			i++
		} else {
			dst[k] = right[j]
			j++
		}
		k++
	}
	k += copy(dst[k:], left[i:])
	copy(dst[k:], right[j:])
	return nil
}

// WriteTree writes t so that ReadTree returns the same symbols.
//
// Variant 0 is always written as the identity. Other variants use the
// merge network with four passes, which can express any permutation; the
// merge decisions are those of a merge sort keyed by target position.
func WriteTree(w *bitstream.Writer, t Tree) error {
	w.WriteBits(uint32(t.Variant), 4)
	if t.Variant == 0 {
		return nil
	}
	if t.Variant >= NumTables {
		return fmt.Errorf("%w: variant %d", ErrInvalidCode, t.Variant)
	}

	var rank [NumSymbols]int
	var seen [NumSymbols]bool
	for pos, s := range t.Symbols {
		if s >= NumSymbols || seen[s] {
			return fmt.Errorf("%w: symbols are not a permutation", ErrInvalidCode)
		}
		seen[s] = true
		rank[s] = pos
	}

	w.WriteBit(0)
	w.WriteBits(3, 2)

	var a, b [NumSymbols]uint8
	in, out := &a, &b
	for i := range in {
		in[i] = uint8(i)
	}
	for pass := range 4 {
		size := 1 << pass
		for start := 0; start < NumSymbols; start += size << 1 {
			left := in[start : start+size]
			right := in[start+size : start+2*size]
			dst := out[start : start+2*size]
			i, j, k := 0, 0, 0
			for i < size && j < size {
				if rank[left[i]] < rank[right[j]] {
					w.WriteBit(0)
					dst[k] = left[i]
					i++
				} else {
					w.WriteBit(1)
					dst[k] = right[j]
					j++
				}
				k++
			}
			k += copy(dst[k:], left[i:])
			copy(dst[k:], right[j:])
		}
		in, out = out, in
	}
	return nil
}

// WriteTreeList writes t in the explicit-list form using its first n+1
// symbols, 0 <= n <= 7. The caller must order the remaining symbols the way
// the list completion does.
func WriteTreeList(w *bitstream.Writer, t Tree, n int) error {
	if t.Variant == 0 || t.Variant >= NumTables || n < 0 || n > 7 {
		return fmt.Errorf("%w: cannot list variant %d with %d symbols", ErrInvalidCode, t.Variant, n+1)
	}
	w.WriteBits(uint32(t.Variant), 4)
	w.WriteBit(1)
	w.WriteBits(uint32(n), 3)
	for i := 0; i <= n; i++ {
		w.WriteBits(uint32(t.Symbols[i]), 4)
	}
	return nil
}
