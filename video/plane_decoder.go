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

	"github.com/ZaparooProject/go-bink/internal/bitstream"
)

// planeDecoder holds the state of one plane reconstruction. It is reused
// for every plane of every frame.
type planeDecoder struct {
	r       *bitstream.Reader
	dst     *Plane
	ref     *Plane
	coefIdx []int
	b       bundles
	lists   coefLists
	block   [64]int32
	ublock  [64]uint8
	refEnd  int
}

// decodePlane reconstructs plane id of dst. ref is the same plane of the
// previous frame, or dst itself when there is none. lumaWidth and
// lumaHeight are the frame dimensions.
func (pd *planeDecoder) decodePlane(id PlaneID, dst, ref *Plane, lumaWidth, lumaHeight int) error {
	chroma := id == PlaneU || id == PlaneV

	width := lumaWidth
	bw, bh := (lumaWidth+7)>>3, (lumaHeight+7)>>3
	if chroma {
		width >>= 1
		bw, bh = (lumaWidth+15)>>4, (lumaHeight+15)>>4
	}

	pd.dst, pd.ref = dst, ref
	pd.refEnd = (bw-1)*8 + ref.Stride*(bh-1)*8

	defer pd.r.AlignTo32()

	if pd.b.rev.HasFlatPlanes() {
		flat, err := pd.r.Bit()
		if err != nil {
			return corrupt(err)
		}
		if flat == 1 {
			v, err := pd.r.Bits(8)
			if err != nil {
				return corrupt(err)
			}
			dst.fill(uint8(v))
			return nil
		}
	}

	pd.b.initLengths(max(width, 8), bw)
	for s := range NumSources {
		if err := pd.b.readBundle(pd.r, s); err != nil {
			return corrupt(fmt.Errorf("%s tree: %w", s, err))
		}
	}

	for by := range bh {
		if err := pd.b.refill(pd.r); err != nil {
			return corrupt(fmt.Errorf("%s plane row %d: %w", id, by, err))
		}
		rowOff := by * 8 * dst.Stride
		for bx := 0; bx < bw; bx++ {
			v, err := pd.b.value(SourceBlockTypes)
			if err != nil {
				return &BlockError{Err: err, Plane: id, X: bx, Y: by, Type: -1}
			}
			t := BlockType(v)
			// The lower half of a scaled block was written with its top row.
			if by&1 == 1 && t == BlockScaled {
				bx++
				continue
			}
			if t < 0 || t >= NumBlockTypes {
				return &BlockError{Err: fmt.Errorf("%w: invalid block type", ErrCorruptBitstream), Plane: id, X: bx, Y: by, Type: t}
			}
			if err := blockHandlers[t](pd, rowOff+bx*8); err != nil {
				return &BlockError{Err: corrupt(err), Plane: id, X: bx, Y: by, Type: t}
			}
			bx += t.Span() - 1
		}
	}
	return nil
}
