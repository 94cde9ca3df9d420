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
	"fmt"

	"github.com/ZaparooProject/go-bink/internal/bitstream"
)

// Decode reads one codeword of t's table and returns the mapped symbol.
// Each stream bit becomes the next higher bit of the codeword.
func Decode(r *bitstream.Reader, t *Tree) (uint8, error) {
	tab := &tables[t.Variant&(NumTables-1)]

	code := 0
	for l := 1; l <= MaxCodeLength; l++ {
		bit, err := r.Bit()
		if err != nil {
			return 0, err
		}
		code |= int(bit) << (l - 1)
		if leaf := tab[l][code]; leaf >= 0 {
			return t.Symbols[leaf], nil
		}
	}
	return 0, fmt.Errorf("%w: table %d", ErrInvalidCode, t.Variant)
}

// Encode writes the codeword that Decode maps to sym.
func Encode(w *bitstream.Writer, t *Tree, sym uint8) error {
	for leaf, s := range t.Symbols {
		if s != sym {
			continue
		}
		v := t.Variant & (NumTables - 1)
		w.WriteBits(uint32(codeBits[v][leaf]), int(codeLengths[v][leaf]))
		return nil
	}
	return fmt.Errorf("%w: symbol %d not in tree", ErrInvalidCode, sym)
}
