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

// Package bink decodes Bink video files.
//
// A Decoder pulls one frame at a time: it reads the frame packet from the
// container, routes audio sub-packets to an optional sink and reconstructs
// the Y, U, V and optional alpha planes. Decoders are not safe for
// concurrent use; a multi-goroutine caller must serialize all calls.
package bink

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/ZaparooProject/go-bink/archive"
	"github.com/ZaparooProject/go-bink/container"
	"github.com/ZaparooProject/go-bink/format"
	"github.com/ZaparooProject/go-bink/video"
)

// Frame is an alias for video.Frame for convenience.
type Frame = video.Frame

// AudioTrack is an alias for container.AudioTrack for convenience.
type AudioTrack = container.AudioTrack

// AudioSink is an alias for container.AudioSink for convenience.
type AudioSink = container.AudioSink

// Re-export plane identifiers for convenience.
const (
	PlaneY     = video.PlaneY
	PlaneU     = video.PlaneU
	PlaneV     = video.PlaneV
	PlaneAlpha = video.PlaneAlpha
)

// Re-export errors for convenience.
var (
	ErrInvalidHeader     = container.ErrInvalidHeader
	ErrInvalidFrameIndex = container.ErrInvalidFrameIndex
	ErrIO                = container.ErrIO
	ErrInvalidPacket     = container.ErrInvalidPacket
	ErrCorruptBitstream  = video.ErrCorruptBitstream
	ErrUnsupported       = video.ErrUnsupported
)

// Options configures a Decoder. A nil *Options is valid.
type Options struct {
	// Logger receives diagnostics. Nil discards them.
	Logger *slog.Logger

	// AudioSink receives audio sub-packets. Nil discards them.
	AudioSink AudioSink
}

// Info describes an opened stream.
type Info struct {
	Tag         string
	Revision    format.Revision
	Width       int
	Height      int
	FrameCount  int
	FPSNum      uint32
	FPSDen      uint32
	HasAlpha    bool
	IsGray      bool
	AudioTracks []AudioTrack
}

// Decoder decodes the frames of one Bink stream.
type Decoder struct {
	c      *container.Container
	v      *video.Decoder
	closer io.Closer
	info   Info

	// unsupported is set when the container parsed but its video cannot be
	// decoded; Info still works.
	unsupported error
	err         error
	frame       int
}

// NewDecoder parses the container read from r. A stream whose video codec
// is not supported still opens so that Info is available; NextFrame then
// returns ErrUnsupported.
func NewDecoder(r io.ReadSeeker, opts *Options) (*Decoder, error) {
	if opts == nil {
		opts = &Options{}
	}
	c, err := container.Open(r, &container.Options{Logger: opts.Logger, AudioSink: opts.AudioSink})
	if err != nil {
		return nil, fmt.Errorf("open container: %w", err)
	}

	h := c.Header()
	d := &Decoder{
		c: c,
		info: Info{
			Tag:         format.TagString(h.Tag),
			Revision:    h.Revision,
			Width:       int(h.Width),
			Height:      int(h.Height),
			FrameCount:  c.FrameCount(),
			FPSNum:      h.FPSNum,
			FPSDen:      h.FPSDen,
			HasAlpha:    h.HasAlpha(),
			IsGray:      h.IsGray(),
			AudioTracks: c.Tracks(),
		},
	}

	v, err := video.NewDecoder(video.Config{
		Logger:    opts.Logger,
		Width:     int(h.Width),
		Height:    int(h.Height),
		Signature: h.Signature(),
		Revision:  h.Revision,
		HasAlpha:  h.HasAlpha(),
	})
	switch {
	case errors.Is(err, video.ErrUnsupported):
		d.unsupported = err
	case err != nil:
		return nil, fmt.Errorf("create video decoder: %w", err)
	}
	d.v = v
	return d, nil
}

// Open opens a Bink file. path may also point inside a ZIP, 7z or RAR
// archive, as in "movies.zip/intro.bik"; a bare archive path selects its
// first video.
func Open(path string, opts *Options) (*Decoder, error) {
	p, err := archive.ParsePath(path)
	if err != nil {
		return nil, fmt.Errorf("parse archive path: %w", err)
	}
	if p != nil {
		rs, _, err := archive.OpenVideo(p)
		if err != nil {
			return nil, fmt.Errorf("open video in archive: %w", err)
		}
		return NewDecoder(rs, opts)
	}

	file, err := os.Open(path) //nolint:gosec // Path from user input is expected
	if err != nil {
		return nil, fmt.Errorf("open video file: %w", err)
	}
	d, err := NewDecoder(file, opts)
	if err != nil {
		_ = file.Close()
		return nil, err
	}
	d.closer = file
	return d, nil
}

// Info returns the stream description.
func (d *Decoder) Info() Info {
	return d.info
}

// NextFrame decodes the next frame. The frame is owned by the decoder and
// is overwritten by a later call. It returns io.EOF after the last frame.
// Any other error is sticky: later calls return it again until Rewind.
func (d *Decoder) NextFrame() (*Frame, error) {
	if d.unsupported != nil {
		return nil, d.unsupported
	}
	if d.err != nil {
		return nil, d.err
	}

	pkt, err := d.c.ReadPacket()
	if errors.Is(err, io.EOF) {
		return nil, io.EOF
	}
	if err != nil {
		d.err = fmt.Errorf("read frame %d: %w", d.frame, err)
		return nil, d.err
	}

	f, err := d.v.DecodeFrame(pkt.Video)
	if err != nil {
		d.err = fmt.Errorf("decode frame %d: %w", pkt.Frame, err)
		return nil, d.err
	}
	d.frame = pkt.Frame + 1
	return f, nil
}

// CurrentFrameIndex returns the number of frames decoded since the start
// or the last Rewind, which is the index of the next frame.
func (d *Decoder) CurrentFrameIndex() int {
	return d.frame
}

// Rewind restarts decoding at the first frame and clears a sticky error.
func (d *Decoder) Rewind() error {
	if err := d.c.Seek(0); err != nil {
		return fmt.Errorf("rewind: %w", err)
	}
	if d.v != nil {
		d.v.Reset()
	}
	d.frame = 0
	d.err = nil
	return nil
}

// SeekFrame positions the decoder so that the next NextFrame returns frame.
// Decoding restarts at the last keyframe at or before frame and the frames
// in between are decoded and dropped; their audio still reaches the sink.
// SeekFrame clears a sticky error.
func (d *Decoder) SeekFrame(frame int) error {
	if d.unsupported != nil {
		return d.unsupported
	}
	if n := d.c.FrameCount(); frame < 0 || frame > n {
		return fmt.Errorf("seek: %w: frame %d out of range [0,%d]", ErrInvalidFrameIndex, frame, n)
	}
	key := d.c.KeyframeBefore(frame)
	if err := d.c.Seek(key); err != nil {
		return fmt.Errorf("seek: %w", err)
	}
	d.v.Reset()
	d.frame = key
	d.err = nil
	for d.frame < frame {
		if _, err := d.NextFrame(); err != nil {
			return fmt.Errorf("seek to frame %d: %w", frame, err)
		}
	}
	return nil
}

// Close releases the file opened by Open. It is a no-op for decoders
// created with NewDecoder.
func (d *Decoder) Close() error {
	if d.closer == nil {
		return nil
	}
	err := d.closer.Close()
	d.closer = nil
	if err != nil {
		return fmt.Errorf("close video file: %w", err)
	}
	return nil
}
