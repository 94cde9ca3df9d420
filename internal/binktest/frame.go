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

package binktest

import (
	"github.com/ZaparooProject/go-bink/format"
	"github.com/ZaparooProject/go-bink/internal/bitstream"
)

// Frame holds the planes of one coded frame. Alpha is written only when
// non-nil.
type Frame struct {
	Alpha *Plane
	Y     Plane
	U     Plane
	V     Plane
}

// EncodeFrame returns the video payload of f. A zero word is appended so
// that the last field never ends on the final bit of the packet.
func EncodeFrame(rev format.Revision, width, height int, f Frame) ([]byte, error) {
	w := bitstream.NewWriter()

	if f.Alpha != nil {
		if rev.HasPlaneOffsets() {
			w.WriteBits(0, 32)
		}
		if err := WritePlane(w, rev, width, height, false, *f.Alpha); err != nil {
			return nil, err
		}
	}
	if rev.HasPlaneOffsets() {
		w.WriteBits(0, 32)
	}

	chroma := [2]Plane{f.U, f.V}
	if rev.SwapsChroma() {
		chroma[0], chroma[1] = f.V, f.U
	}
	if err := WritePlane(w, rev, width, height, false, f.Y); err != nil {
		return nil, err
	}
	for _, p := range chroma {
		if err := WritePlane(w, rev, width, height, true, p); err != nil {
			return nil, err
		}
	}

	w.WriteBits(0, 32)
	return w.Bytes(), nil
}

// FillFrame returns a revision 'k' frame whose planes are flat fills.
func FillFrame(y, u, v uint8) Frame {
	return Frame{Y: FlatPlane(y), U: FlatPlane(u), V: FlatPlane(v)}
}
