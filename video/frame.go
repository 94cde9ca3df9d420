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

// PlaneID selects one plane of a frame.
type PlaneID int

// Plane identifiers in storage order.
const (
	PlaneY PlaneID = iota
	PlaneU
	PlaneV
	PlaneAlpha
)

// NumPlanes is the maximum number of planes per frame.
const NumPlanes = 4

func (id PlaneID) String() string {
	switch id {
	case PlaneY:
		return "Y"
	case PlaneU:
		return "U"
	case PlaneV:
		return "V"
	case PlaneAlpha:
		return "alpha"
	default:
		return "plane?"
	}
}

// Plane is one 8-bit image channel. Pix is padded to whole 16x16 areas so
// that scaled blocks on the right and bottom edges stay in bounds; Width and
// Height give the visible size.
type Plane struct {
	Pix    []byte
	Width  int
	Height int
	Stride int
}

func newPlane(width, height, blocksWide, blocksHigh int) *Plane {
	stride := ((blocksWide + 1) &^ 1) * 8
	rows := ((blocksHigh + 1) &^ 1) * 8
	return &Plane{
		Pix:    make([]byte, stride*rows),
		Width:  width,
		Height: height,
		Stride: stride,
	}
}

// At returns the sample at (x, y).
func (p *Plane) At(x, y int) uint8 {
	return p.Pix[y*p.Stride+x]
}

// Pixels8x8 returns the 8x8 area whose top-left sample is (x, y).
func (p *Plane) Pixels8x8(x, y int) [64]uint8 {
	var out [64]uint8
	for row := range 8 {
		copy(out[row*8:row*8+8], p.Pix[(y+row)*p.Stride+x:])
	}
	return out
}

// Block8x8 returns block (bx, by) of the 8x8 block grid.
func (p *Plane) Block8x8(bx, by int) [64]uint8 {
	return p.Pixels8x8(bx*8, by*8)
}

func (p *Plane) putBlock8x8(off int, src *[64]uint8) {
	for row := range 8 {
		copy(p.Pix[off+row*p.Stride:off+row*p.Stride+8], src[row*8:row*8+8])
	}
}

// putScaledBlock writes an 8x8 source as a 16x16 area, repeating every
// sample in both directions.
func (p *Plane) putScaledBlock(off int, src *[64]uint8) {
	for row := range 8 {
		d0 := p.Pix[off+2*row*p.Stride:]
		d1 := p.Pix[off+(2*row+1)*p.Stride:]
		for col := range 8 {
			v := src[row*8+col]
			d0[2*col], d0[2*col+1] = v, v
			d1[2*col], d1[2*col+1] = v, v
		}
	}
}

func (p *Plane) fillBlock(off, size int, v uint8) {
	for row := range size {
		line := p.Pix[off+row*p.Stride : off+row*p.Stride+size]
		for i := range line {
			line[i] = v
		}
	}
}

// copyBlock8x8 copies an 8x8 area from src at srcOff to p at dstOff. The two
// planes may be the same.
func (p *Plane) copyBlock8x8(dstOff int, src *Plane, srcOff int) {
	for row := range 8 {
		copy(p.Pix[dstOff+row*p.Stride:dstOff+row*p.Stride+8], src.Pix[srcOff+row*src.Stride:])
	}
}

func (p *Plane) fill(v uint8) {
	for i := range p.Pix {
		p.Pix[i] = v
	}
}

// Frame is a decoded picture. Y is full resolution, U and V are half
// resolution on both axes, and the optional alpha plane matches Y.
type Frame struct {
	planes [NumPlanes]*Plane
}

func newFrame(width, height int, alpha bool) *Frame {
	f := &Frame{}
	lbw, lbh := (width+7)>>3, (height+7)>>3
	cbw, cbh := (width+15)>>4, (height+15)>>4
	f.planes[PlaneY] = newPlane(width, height, lbw, lbh)
	f.planes[PlaneU] = newPlane((width+1)>>1, (height+1)>>1, cbw, cbh)
	f.planes[PlaneV] = newPlane((width+1)>>1, (height+1)>>1, cbw, cbh)
	if alpha {
		f.planes[PlaneAlpha] = newPlane(width, height, lbw, lbh)
	}
	return f
}

// Plane returns the requested plane, or nil when the frame has no such plane.
func (f *Frame) Plane(id PlaneID) *Plane {
	if id < 0 || id >= NumPlanes {
		return nil
	}
	return f.planes[id]
}

// HasAlpha reports whether the frame carries an alpha plane.
func (f *Frame) HasAlpha() bool {
	return f.planes[PlaneAlpha] != nil
}
