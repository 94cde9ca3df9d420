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

// Package container parses the Bink file container: the header, the audio
// track table and the frame index, and splits each frame packet into its
// audio sub-packets and video payload.
package container

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/ZaparooProject/go-bink/internal/binary"
	"github.com/ZaparooProject/go-bink/internal/diag"
)

// Options configures a Container. The zero value is usable.
type Options struct {
	// Logger receives diagnostics. Nil discards them.
	Logger *slog.Logger

	// AudioSink receives audio sub-packets. Nil discards them.
	AudioSink AudioSink
}

// Packet is the demultiplexed content of one frame.
type Packet struct {
	// Video is the video payload. It is reused by the next ReadPacket call.
	Video    []byte
	Frame    int
	Keyframe bool
}

// Container reads frame packets from a Bink file. It is not safe for
// concurrent use.
type Container struct {
	br     *binary.Reader
	header *Header
	sink   AudioSink
	diag   *diag.Once
	tracks []AudioTrack
	index  []IndexEntry
	video  []byte
	audio  []byte
	pkt    Packet
	base   int64 // absolute offset the index offsets are relative to
	next   int
}

// Open parses the header, audio tracks and frame index of the Bink data
// starting at the current position of r, and positions r at the first frame.
func Open(r io.ReadSeeker, opts *Options) (*Container, error) {
	if opts == nil {
		opts = &Options{}
	}
	br, err := binary.NewReader(r)
	if err != nil {
		return nil, ioErr("open", err)
	}

	c := &Container{
		br:   br,
		sink: opts.AudioSink,
		diag: diag.New(opts.Logger),
	}
	if err := c.init(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Container) init() error {
	start := c.br.Offset()

	tag, smush, err := readTag(c.br)
	if err != nil {
		return err
	}
	if smush > 0 {
		c.diag.Debug("smush", "skipped SMUSH wrapper", "bytes", smush)
	}

	header, tracks, err := parseHeader(c.br, tag)
	if err != nil {
		return err
	}
	c.header, c.tracks = header, tracks
	if header.IsGray() {
		c.diag.Debug("gray", "stream is flagged monochrome; chroma planes are still decoded")
	}

	index, err := readIndex(c.br, header)
	if err != nil {
		return err
	}
	c.index = index
	c.base = start + smush

	if len(index) == 0 {
		if err := c.br.Skip(4); err != nil {
			return ioErr("skip empty index", err)
		}
		return nil
	}
	if err := c.br.Seek(c.base + index[0].Offset); err != nil {
		return ioErr("seek to first frame", err)
	}
	return nil
}

// Header returns the parsed header.
func (c *Container) Header() *Header {
	return c.header
}

// Tracks returns the audio tracks in file order.
func (c *Container) Tracks() []AudioTrack {
	return c.tracks
}

// Index returns the frame index.
func (c *Container) Index() []IndexEntry {
	return c.index
}

// FrameCount returns the number of frames in the index.
func (c *Container) FrameCount() int {
	return len(c.index)
}

// CurrentFrame returns the index of the frame the next ReadPacket returns.
func (c *Container) CurrentFrame() int {
	return c.next
}

// Seek makes frame the next frame to read. Seeking to FrameCount() is
// allowed and makes the next ReadPacket return io.EOF.
func (c *Container) Seek(frame int) error {
	if frame < 0 || frame > len(c.index) {
		return fmt.Errorf("%w: frame %d out of range [0,%d]", ErrInvalidFrameIndex, frame, len(c.index))
	}
	c.next = frame
	return nil
}

// KeyframeBefore returns the last keyframe at or before frame, or 0 when
// there is none.
func (c *Container) KeyframeBefore(frame int) int {
	for i := min(frame, len(c.index)-1); i > 0; i-- {
		if c.index[i].Keyframe {
			return i
		}
	}
	return 0
}

// ReadPacket reads the next frame packet. Audio sub-packets go to the audio
// sink and the returned packet holds the video payload. It returns io.EOF
// after the last frame. On error the frame counter is left unchanged.
func (c *Container) ReadPacket() (*Packet, error) {
	if c.next >= len(c.index) {
		return nil, io.EOF
	}
	e := c.index[c.next]
	if e.Size > MaxPacketSize {
		return nil, fmt.Errorf("%w: frame %d size %d exceeds %d", ErrInvalidPacket, c.next, e.Size, MaxPacketSize)
	}
	if err := c.br.Seek(c.base + e.Offset); err != nil {
		return nil, ioErr(fmt.Sprintf("seek to frame %d", c.next), err)
	}

	remaining := e.Size
	for i, t := range c.tracks {
		size, err := c.br.Uint32LE()
		if err != nil {
			return nil, ioErr(fmt.Sprintf("frame %d audio size", c.next), err)
		}
		if int64(size)+4 > remaining {
			return nil, fmt.Errorf("%w: frame %d track %d: audio size in header (%d) > size of packet left (%d)",
				ErrInvalidPacket, c.next, i, size, remaining)
		}
		if err := c.readAudio(i, t, int64(size)); err != nil {
			return nil, err
		}
		remaining -= 4 + int64(size)
	}

	c.video = grow(c.video, int(remaining))
	if err := c.br.ReadFull(c.video); err != nil {
		return nil, ioErr(fmt.Sprintf("frame %d video payload", c.next), err)
	}

	c.pkt = Packet{Video: c.video, Frame: c.next, Keyframe: e.Keyframe}
	c.next++
	return &c.pkt, nil
}

// readAudio delivers one audio sub-packet of size bytes, or skips it.
func (c *Container) readAudio(track int, t AudioTrack, size int64) error {
	if size < 4 || c.sink == nil {
		if size >= 4 {
			c.diag.Warn("audio-discarded", "discarding audio; no audio sink configured", "tracks", len(c.tracks))
		}
		if err := c.br.Skip(size); err != nil {
			return ioErr(fmt.Sprintf("frame %d skip audio", c.next), err)
		}
		return nil
	}

	c.audio = grow(c.audio, int(size))
	if err := c.br.ReadFull(c.audio); err != nil {
		return ioErr(fmt.Sprintf("frame %d audio payload", c.next), err)
	}
	if err := c.sink.WriteAudio(track, t, c.audio); err != nil {
		return fmt.Errorf("frame %d audio sink: %w", c.next, err)
	}
	return nil
}

func grow(buf []byte, n int) []byte {
	if cap(buf) < n {
		return make([]byte, n)
	}
	return buf[:n]
}
