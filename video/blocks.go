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
)

// BlockType is the coding mode of one 8x8 block.
type BlockType int

// Block types as coded in the block type bundles.
const (
	BlockSkip BlockType = iota
	BlockScaled
	BlockMotion
	BlockRun
	BlockResidue
	BlockIntra
	BlockFill
	BlockInter
	BlockPattern
	BlockRaw

	NumBlockTypes
)

var blockTypeNames = [NumBlockTypes]string{
	"skip", "scaled", "motion", "run", "residue",
	"intra", "fill", "inter", "pattern", "raw",
}

func (t BlockType) String() string {
	if t < 0 || t >= NumBlockTypes {
		return fmt.Sprintf("block(%d)", int(t))
	}
	return blockTypeNames[t]
}

// Span returns the number of block columns a block of this type covers.
func (t BlockType) Span() int {
	if t == BlockScaled {
		return 2
	}
	return 1
}

// blockHandler reconstructs one block whose top-left sample is at off in
// both the destination and the reference plane.
type blockHandler func(pd *planeDecoder, off int) error

var blockHandlers = [NumBlockTypes]blockHandler{
	BlockSkip:    (*planeDecoder).skipBlock,
	BlockScaled:  (*planeDecoder).scaledBlock,
	BlockMotion:  (*planeDecoder).motionBlock,
	BlockRun:     (*planeDecoder).runBlock,
	BlockResidue: (*planeDecoder).residueBlock,
	BlockIntra:   (*planeDecoder).intraBlock,
	BlockFill:    (*planeDecoder).fillBlock,
	BlockInter:   (*planeDecoder).interBlock,
	BlockPattern: (*planeDecoder).patternBlock,
	BlockRaw:     (*planeDecoder).rawBlock,
}

func (pd *planeDecoder) skipBlock(off int) error {
	pd.dst.copyBlock8x8(off, pd.ref, off)
	return nil
}

// motionRef reads a motion vector and returns the reference offset.
func (pd *planeDecoder) motionRef(off int) (int, error) {
	dx, err := pd.b.value(SourceXOffset)
	if err != nil {
		return 0, err
	}
	dy, err := pd.b.value(SourceYOffset)
	if err != nil {
		return 0, err
	}
	ref := off + dx + dy*pd.ref.Stride
	if ref < 0 || ref > pd.refEnd {
		return 0, fmt.Errorf("%w: motion vector (%d,%d) leaves the reference plane", ErrCorruptBitstream, dx, dy)
	}
	return ref, nil
}

func (pd *planeDecoder) motionBlock(off int) error {
	ref, err := pd.motionRef(off)
	if err != nil {
		return err
	}
	pd.dst.copyBlock8x8(off, pd.ref, ref)
	return nil
}

func (pd *planeDecoder) runBlock(off int) error {
	if err := pd.decodeRun(&pd.ublock); err != nil {
		return err
	}
	pd.dst.putBlock8x8(off, &pd.ublock)
	return nil
}

func (pd *planeDecoder) residueBlock(off int) error {
	if err := pd.motionBlock(off); err != nil {
		return err
	}
	pd.block = [64]int32{}
	masks, err := pd.r.Bits(7)
	if err != nil {
		return err
	}
	if err := readResidue(pd.r, &pd.lists, &pd.block, int(masks)); err != nil {
		return err
	}
	pd.dst.addBlock(off, &pd.block)
	return nil
}

func (pd *planeDecoder) intraBlock(off int) error {
	if err := pd.decodeDCT(SourceIntraDC, &intraQuant); err != nil {
		return err
	}
	pd.dst.idctPut(off, &pd.block)
	return nil
}

func (pd *planeDecoder) fillBlock(off int) error {
	v, err := pd.b.color()
	if err != nil {
		return err
	}
	pd.dst.fillBlock(off, 8, v)
	return nil
}

func (pd *planeDecoder) interBlock(off int) error {
	if err := pd.motionBlock(off); err != nil {
		return err
	}
	if err := pd.decodeDCT(SourceInterDC, &interQuant); err != nil {
		return err
	}
	pd.dst.idctAdd(off, &pd.block)
	return nil
}

func (pd *planeDecoder) patternBlock(off int) error {
	if err := pd.decodePattern(&pd.ublock); err != nil {
		return err
	}
	pd.dst.putBlock8x8(off, &pd.ublock)
	return nil
}

func (pd *planeDecoder) rawBlock(off int) error {
	if err := pd.decodeRaw(&pd.ublock); err != nil {
		return err
	}
	pd.dst.putBlock8x8(off, &pd.ublock)
	return nil
}

// scaledBlock decodes an 8x8 block of a sub-block type and writes it
// doubled in both directions.
func (pd *planeDecoder) scaledBlock(off int) error {
	v, err := pd.b.value(SourceSubBlockTypes)
	if err != nil {
		return err
	}
	switch sub := BlockType(v); sub {
	case BlockRun:
		err = pd.decodeRun(&pd.ublock)
	case BlockIntra:
		if err = pd.decodeDCT(SourceIntraDC, &intraQuant); err == nil {
			idctPutBlock(&pd.ublock, &pd.block)
		}
	case BlockFill:
		c, err := pd.b.color()
		if err != nil {
			return err
		}
		pd.dst.fillBlock(off, 16, c)
		return nil
	case BlockPattern:
		err = pd.decodePattern(&pd.ublock)
	case BlockRaw:
		err = pd.decodeRaw(&pd.ublock)
	default:
		return fmt.Errorf("%w: invalid scaled sub-block type %s", ErrCorruptBitstream, sub)
	}
	if err != nil {
		return err
	}
	pd.dst.putScaledBlock(off, &pd.ublock)
	return nil
}

// decodeRun fills u along one of the run scan patterns.
func (pd *planeDecoder) decodeRun(u *[64]uint8) error {
	p, err := pd.r.Bits(4)
	if err != nil {
		return err
	}
	order := &runPatterns[p]

	i := 0
	for i < 63 {
		n, err := pd.b.value(SourceRun)
		if err != nil {
			return err
		}
		run := n + 1
		if i+run > 64 {
			return fmt.Errorf("%w: run of %d overflows block at %d", ErrCorruptBitstream, run, i)
		}
		single, err := pd.r.Bit()
		if err != nil {
			return err
		}
		if single == 1 {
			c, err := pd.b.color()
			if err != nil {
				return err
			}
			for _, pos := range order[i : i+run] {
				u[pos] = c
			}
		} else {
			for _, pos := range order[i : i+run] {
				c, err := pd.b.color()
				if err != nil {
					return err
				}
				u[pos] = c
			}
		}
		i += run
	}
	if i == 63 {
		c, err := pd.b.color()
		if err != nil {
			return err
		}
		u[order[63]] = c
	}
	return nil
}

// decodePattern reads two colors and eight rows of selector bits. The low
// bit of each row selects the leftmost sample.
func (pd *planeDecoder) decodePattern(u *[64]uint8) error {
	var col [2]uint8
	for i := range col {
		c, err := pd.b.color()
		if err != nil {
			return err
		}
		col[i] = c
	}
	for row := range 8 {
		v, err := pd.b.value(SourcePattern)
		if err != nil {
			return err
		}
		for x := range 8 {
			u[row*8+x] = col[v&1]
			v >>= 1
		}
	}
	return nil
}

func (pd *planeDecoder) decodeRaw(u *[64]uint8) error {
	for i := range u {
		c, err := pd.b.color()
		if err != nil {
			return err
		}
		u[i] = c
	}
	return nil
}

// decodeDCT reads a DC value from dc followed by AC coefficients, and leaves
// the dequantized block in pd.block.
func (pd *planeDecoder) decodeDCT(dc Source, quant *[NumQuantizers][64]uint32) error {
	pd.block = [64]int32{}
	v, err := pd.b.value(dc)
	if err != nil {
		return err
	}
	pd.block[0] = int32(v)

	idx, q, err := readDCTCoeffs(pd.r, &pd.lists, &pd.block, pd.coefIdx[:0])
	if err != nil {
		return err
	}
	pd.coefIdx = idx
	unquantize(&pd.block, &quant[q], idx)
	return nil
}
