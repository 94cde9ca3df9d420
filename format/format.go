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

// Package format holds the wire-level vocabulary shared by the Bink container
// parser and the video decoder: the codec tag, the file revision and the
// header flag bits.
package format

import "fmt"

// Signatures stored in the low three bytes of the codec tag.
const (
	SignatureBink  uint32 = 'B' | 'I'<<8 | 'K'<<16
	SignatureBink2 uint32 = 'K' | 'B'<<8 | '2'<<16
)

// Video header flags.
const (
	// FlagAlpha selects a fourth, full-resolution alpha plane.
	FlagAlpha uint32 = 0x00100000

	// FlagGray marks monochrome content.
	FlagGray uint32 = 0x00020000
)

// Audio track flags (16-bit field in the track table).
const (
	AudioFlag16Bit  uint16 = 0x4000
	AudioFlagStereo uint16 = 0x2000
	AudioFlagDCT    uint16 = 0x1000
)

// Revision is the single ASCII letter that versions a Bink file ('b'..'k').
// It is derived once from the codec tag and passed by value to everything
// that branches on it.
type Revision byte

// Revisions with behavior changes.
const (
	RevisionB Revision = 'b'
	RevisionD Revision = 'd'
	RevisionF Revision = 'f'
	RevisionG Revision = 'g'
	RevisionH Revision = 'h'
	RevisionI Revision = 'i'
	RevisionJ Revision = 'j'
	RevisionK Revision = 'k'
)

// RevisionFromTag extracts the revision letter from a codec tag.
func RevisionFromTag(tag uint32) Revision {
	return Revision((tag >> 24) % 0xFF)
}

// Signature returns the three-byte signature part of a codec tag.
func Signature(tag uint32) uint32 {
	return tag & 0xFFFFFF
}

// Tag builds a codec tag from a signature and revision.
func Tag(signature uint32, rev Revision) uint32 {
	return signature&0xFFFFFF | uint32(rev)<<24
}

// TagString renders a codec tag as its four ASCII characters.
func TagString(tag uint32) string {
	b := []byte{byte(tag), byte(tag >> 8), byte(tag >> 16), byte(tag >> 24)}
	for i, c := range b {
		if c < 0x20 || c > 0x7E {
			b[i] = '.'
		}
	}
	return string(b)
}

// Valid reports whether the revision letter is in the known range.
func (r Revision) Valid() bool {
	return r >= RevisionB && r <= RevisionK
}

// String returns the revision letter.
func (r Revision) String() string {
	if r >= 0x20 && r <= 0x7E {
		return string(rune(r))
	}
	return fmt.Sprintf("0x%02x", byte(r))
}

// HasExtraHeaderField reports whether a 4-byte field follows the audio track
// count for the given signature.
func (r Revision) HasExtraHeaderField(signature uint32) bool {
	switch signature & 0xFFFFFF {
	case SignatureBink:
		return r == RevisionK
	case SignatureBink2:
		return r == RevisionI || r == RevisionJ || r == RevisionK
	default:
		return false
	}
}

// SwapsChroma reports whether the V plane is coded before U.
func (r Revision) SwapsChroma() bool {
	return r >= RevisionH
}

// HasPlaneOffsets reports whether 32-bit plane offset words precede the planes.
func (r Revision) HasPlaneOffsets() bool {
	return r >= RevisionI
}

// HasFlatPlanes reports whether each plane starts with a flat-fill escape bit.
// The same revision also scrambles block type counts.
func (r Revision) HasFlatPlanes() bool {
	return r == RevisionK
}

// SignFoldedColors reports whether color bytes are stored sign-folded around 0x80.
func (r Revision) SignFoldedColors() bool {
	return r < RevisionI
}

// LegacyCoder reports whether planes use the revision 'b' coder.
func (r Revision) LegacyCoder() bool {
	return r <= RevisionB
}
