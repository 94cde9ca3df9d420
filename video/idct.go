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

// Butterfly constants with 11 fractional bits.
const (
	idctA1 = 2896
	idctA2 = 2217
	idctA3 = 3784
	idctA4 = -5352
)

// mul multiplies in 32-bit wrapping arithmetic and drops the fraction.
func mul(x, y int32) int32 {
	return int32(uint32(x)*uint32(y)) >> 11
}

// idct1D transforms eight values read from src at the given stride and
// returns them in natural order.
func idct1D(src []int32, stride int) [8]int32 {
	s0, s1, s2, s3 := src[0], src[stride], src[2*stride], src[3*stride]
	s4, s5, s6, s7 := src[4*stride], src[5*stride], src[6*stride], src[7*stride]

	a0 := s0 + s4
	a1 := s0 - s4
	a2 := s2 + s6
	a3 := mul(idctA1, s2-s6)
	a4 := s5 + s3
	a5 := s5 - s3
	a6 := s1 + s7
	a7 := s1 - s7
	b0 := a4 + a6
	b1 := mul(idctA3, a5+a7)
	b2 := mul(idctA4, a5) - b0 + b1
	b3 := mul(idctA1, a6-a4) - b2
	b4 := mul(idctA2, a7) + b3 - b1

	return [8]int32{
		a0 + a2 + b0,
		a1 + a3 - a2 + b2,
		a1 - a3 + a2 + b3,
		a0 - a2 - b4,
		a0 - a2 + b4,
		a1 - a3 + a2 - b3,
		a1 + a3 - a2 - b2,
		a0 + a2 - b0,
	}
}

// idct transforms block in place. Output samples carry no level shift.
func idct(block *[64]int32) {
	var tmp [64]int32
	for col := range 8 {
		if block[8+col]|block[16+col]|block[24+col]|block[32+col]|
			block[40+col]|block[48+col]|block[56+col] == 0 {
			for row := range 8 {
				tmp[row*8+col] = block[col]
			}
			continue
		}
		out := idct1D(block[col:], 8)
		for row, v := range out {
			tmp[row*8+col] = v
		}
	}
	for row := range 8 {
		out := idct1D(tmp[row*8:], 1)
		for col, v := range out {
			block[row*8+col] = (v + 0x7F) >> 8
		}
	}
}

func clampByte(v int32) uint8 {
	switch {
	case v < 0:
		return 0
	case v > 255:
		return 255
	default:
		return uint8(v)
	}
}

// idctPut writes the transformed block to p at off.
func (p *Plane) idctPut(off int, block *[64]int32) {
	idct(block)
	for row := range 8 {
		line := p.Pix[off+row*p.Stride : off+row*p.Stride+8]
		for col := range line {
			line[col] = clampByte(block[row*8+col])
		}
	}
}

// idctAdd adds the transformed block to the samples of p at off.
func (p *Plane) idctAdd(off int, block *[64]int32) {
	idct(block)
	p.addBlock(off, block)
}

// addBlock adds residuals to the samples of p at off with saturation.
func (p *Plane) addBlock(off int, block *[64]int32) {
	for row := range 8 {
		line := p.Pix[off+row*p.Stride : off+row*p.Stride+8]
		for col := range line {
			line[col] = clampByte(int32(line[col]) + block[row*8+col])
		}
	}
}

// idctPutBlock writes the transformed block into an 8x8 buffer.
func idctPutBlock(dst *[64]uint8, block *[64]int32) {
	idct(block)
	for i, v := range block {
		dst[i] = clampByte(v)
	}
}
