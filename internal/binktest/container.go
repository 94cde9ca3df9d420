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
	"encoding/binary"

	"github.com/ZaparooProject/go-bink/format"
)

// Track describes one audio track of a container.
type Track struct {
	ID         uint32
	SampleRate uint16
	Flags      uint16
}

// Packet is the content of one frame: an audio sub-packet per track followed
// by the video payload.
type Packet struct {
	Audio    [][]byte
	Video    []byte
	Keyframe bool
}

// Container describes a complete file.
type Container struct {
	Tracks    []Track
	Packets   []Packet
	Signature uint32 // format.SignatureBink when zero
	Width     uint32
	Height    uint32
	FPSNum    uint32
	FPSDen    uint32
	Flags     uint32
	Revision  format.Revision
	// Largest overrides the largest frame size field when non-zero.
	Largest uint32
	// Tag overrides the codec tag when non-zero.
	Tag uint32
}

// Bytes serializes c.
func (c Container) Bytes() []byte {
	sig := c.Signature
	if sig == 0 {
		sig = format.SignatureBink
	}
	tag := format.Tag(sig, c.Revision)
	if c.Tag != 0 {
		tag = c.Tag
	}

	var packets [][]byte
	largest := uint32(0)
	for _, p := range c.Packets {
		var b []byte
		for i := range c.Tracks {
			var a []byte
			if i < len(p.Audio) {
				a = p.Audio[i]
			}
			b = binary.LittleEndian.AppendUint32(b, uint32(len(a)))
			b = append(b, a...)
		}
		b = append(b, p.Video...)
		// Offsets stay even so that bit 0 can carry the keyframe flag.
		if len(b)%2 == 1 {
			b = append(b, 0)
		}
		packets = append(packets, b)
		largest = max(largest, uint32(len(b)))
	}
	if c.Largest != 0 {
		largest = c.Largest
	}

	headerLen := 11 * 4
	if c.Revision.HasExtraHeaderField(sig) {
		headerLen += 4
	}
	headerLen += len(c.Tracks) * 12
	// The index always holds at least one word.
	headerLen += max(len(c.Packets), 1) * 4
	if len(c.Packets) == 0 {
		headerLen += 4
	}

	fileSize := headerLen
	for _, p := range packets {
		fileSize += len(p)
	}

	var out []byte
	le := binary.LittleEndian
	for _, v := range []uint32{
		tag, uint32(fileSize - 8), uint32(len(c.Packets)), largest, uint32(len(c.Packets)),
		c.Width, c.Height, c.FPSNum, c.FPSDen, c.Flags, uint32(len(c.Tracks)),
	} {
		out = le.AppendUint32(out, v)
	}
	if c.Revision.HasExtraHeaderField(sig) {
		out = le.AppendUint32(out, 0)
	}
	for range c.Tracks {
		out = le.AppendUint32(out, 0)
	}
	for _, t := range c.Tracks {
		out = le.AppendUint16(out, t.SampleRate)
		out = le.AppendUint16(out, t.Flags)
	}
	for _, t := range c.Tracks {
		out = le.AppendUint32(out, t.ID)
	}

	pos := uint32(headerLen)
	for i, p := range c.Packets {
		word := pos
		if p.Keyframe {
			word |= 1
		}
		out = le.AppendUint32(out, word)
		pos += uint32(len(packets[i]))
	}
	if len(c.Packets) == 0 {
		out = le.AppendUint32(out, 0)
		out = le.AppendUint32(out, 0)
	}
	for _, p := range packets {
		out = append(out, p...)
	}
	return out
}
