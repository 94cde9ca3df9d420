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

package container

import (
	"fmt"
	"math"

	"github.com/ZaparooProject/go-bink/format"
	"github.com/ZaparooProject/go-bink/internal/binary"
)

// smushTag opens a SMUSH wrapper whose 0x200-byte chunks precede the Bink data.
const smushTag uint32 = 'S' | 'M'<<8 | 'U'<<16 | 'S'<<24

const smushChunk = 0x200

// Header is the fixed part of a Bink file.
//
// Layout (little-endian, 4 bytes each):
//
//	Offset 0x00: Codec tag ("BIK" or "KB2" plus revision letter)
//	Offset 0x04: File size minus 8
//	Offset 0x08: Frame count
//	Offset 0x0C: Largest frame size
//	Offset 0x10: Frame count (repeated, ignored)
//	Offset 0x14: Width
//	Offset 0x18: Height
//	Offset 0x1C: Frame rate numerator
//	Offset 0x20: Frame rate denominator
//	Offset 0x24: Video flags
//	Offset 0x28: Audio track count
//
// An extra word follows for some tag and revision pairs, then the audio
// track table and the frame index.
type Header struct {
	Tag              uint32
	Revision         format.Revision
	FileSize         int64 // declared size + 8
	FrameCount       uint32
	LargestFrameSize uint32
	Width            uint32
	Height           uint32
	FPSNum           uint32
	FPSDen           uint32
	Flags            uint32
	AudioTrackCount  uint32
}

// Signature returns the three-byte codec signature.
func (h *Header) Signature() uint32 {
	return format.Signature(h.Tag)
}

// HasAlpha reports whether frames carry an alpha plane.
func (h *Header) HasAlpha() bool {
	return h.Flags&format.FlagAlpha != 0
}

// IsGray reports whether the stream is flagged as monochrome.
func (h *Header) IsGray() bool {
	return h.Flags&format.FlagGray != 0
}

// FrameRate returns the frame rate in frames per second.
func (h *Header) FrameRate() float64 {
	return float64(h.FPSNum) / float64(h.FPSDen)
}

// validTag reports whether tag names a known codec revision.
func validTag(tag uint32) bool {
	rev := format.RevisionFromTag(tag)
	switch format.Signature(tag) {
	case format.SignatureBink:
		return rev.Valid()
	case format.SignatureBink2:
		return rev >= 'a' && rev <= 'n'
	default:
		return false
	}
}

// readTag reads the codec tag, stepping over a SMUSH wrapper when present.
// It returns the tag and the number of wrapper bytes skipped.
func readTag(br *binary.Reader) (tag uint32, smush int64, err error) {
	tag, err = br.Uint32LE()
	if err != nil {
		return 0, 0, ioErr("read tag", err)
	}
	if tag != smushTag {
		return tag, 0, nil
	}
	for range MaxSmushChunks {
		smush += smushChunk
		if err := br.Skip(smushChunk - 4); err != nil {
			return 0, 0, ioErr("skip SMUSH chunk", err)
		}
		tag, err = br.Uint32LE()
		if err != nil {
			return 0, 0, ioErr("read tag", err)
		}
		if sig := format.Signature(tag); sig == format.SignatureBink || sig == format.SignatureBink2 {
			return tag, smush, nil
		}
	}
	return 0, 0, fmt.Errorf("%w: no Bink tag within %d SMUSH chunks", ErrInvalidHeader, MaxSmushChunks)
}

// parseHeader reads the header fields after tag and the audio track table.
func parseHeader(br *binary.Reader, tag uint32) (*Header, []AudioTrack, error) {
	if !validTag(tag) {
		return nil, nil, fmt.Errorf("%w: bad magic %q", ErrInvalidHeader, format.TagString(tag))
	}

	var w [10]uint32
	for i := range w {
		v, err := br.Uint32LE()
		if err != nil {
			return nil, nil, ioErr("read header", err)
		}
		w[i] = v
	}

	h := &Header{
		Tag:              tag,
		Revision:         format.RevisionFromTag(tag),
		FileSize:         int64(w[0]) + 8,
		FrameCount:       w[1],
		LargestFrameSize: w[2],
		Width:            w[4],
		Height:           w[5],
		FPSNum:           w[6],
		FPSDen:           w[7],
		Flags:            w[8],
		AudioTrackCount:  w[9],
	}
	if err := h.validate(); err != nil {
		return nil, nil, err
	}

	if h.Revision.HasExtraHeaderField(h.Signature()) {
		if err := br.Skip(4); err != nil {
			return nil, nil, ioErr("skip extra header field", err)
		}
	}

	tracks, err := readTracks(br, int(h.AudioTrackCount))
	if err != nil {
		return nil, nil, err
	}
	return h, tracks, nil
}

func (h *Header) validate() error {
	if h.FrameCount > MaxFrames {
		return fmt.Errorf("%w: more than %d frames (%d)", ErrInvalidHeader, MaxFrames, h.FrameCount)
	}
	if int64(h.LargestFrameSize) > h.FileSize {
		return fmt.Errorf("%w: largest frame size %d exceeds file size %d",
			ErrInvalidHeader, h.LargestFrameSize, h.FileSize)
	}
	if h.Width > MaxDimension || h.Height > MaxDimension {
		return fmt.Errorf("%w: dimensions %dx%d exceed %d", ErrInvalidHeader, h.Width, h.Height, MaxDimension)
	}
	if h.FPSNum == 0 || h.FPSDen == 0 {
		return fmt.Errorf("%w: invalid fps (%d/%d)", ErrInvalidHeader, h.FPSNum, h.FPSDen)
	}
	if h.AudioTrackCount > MaxAudioTracks {
		return fmt.Errorf("%w: %d audio tracks exceed %d", ErrInvalidHeader, h.AudioTrackCount, MaxAudioTracks)
	}
	return nil
}

// readTracks reads the three per-track arrays: maximum decoded sizes
// (ignored), rate and flag pairs, then track ids.
func readTracks(br *binary.Reader, n int) ([]AudioTrack, error) {
	if n == 0 {
		return nil, nil
	}
	if err := br.Skip(int64(n) * 4); err != nil {
		return nil, ioErr("skip audio sizes", err)
	}

	rates := make([]uint16, n)
	flags := make([]uint16, n)
	for i := range n {
		r, err := br.Uint16LE()
		if err != nil {
			return nil, ioErr("read audio rate", err)
		}
		f, err := br.Uint16LE()
		if err != nil {
			return nil, ioErr("read audio flags", err)
		}
		rates[i], flags[i] = r, f
	}

	tracks := make([]AudioTrack, n)
	for i := range n {
		id, err := br.Uint32LE()
		if err != nil {
			return nil, ioErr("read audio track id", err)
		}
		tracks[i] = newAudioTrack(id, rates[i], flags[i])
	}
	return tracks, nil
}

// readIndex reads the frame index words and builds the index. A file with
// no frames still stores one index word.
func readIndex(br *binary.Reader, h *Header) ([]IndexEntry, error) {
	n := int(h.FrameCount)
	words := make([]uint32, max(n, 1), n+1)
	for i := range words {
		v, err := br.Uint32LE()
		if err != nil {
			return nil, ioErr("read frame index", err)
		}
		words[i] = v
	}
	if n == 0 {
		return nil, nil
	}
	words = append(words, uint32(min(h.FileSize, math.MaxUint32)))
	return BuildIndex(words)
}

func ioErr(what string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrIO, what, err)
}
