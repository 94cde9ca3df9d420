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

// Package video reconstructs Bink video frames from packet payloads.
//
// A Decoder keeps two frame buffers: the one being decoded and the previous
// frame that skip and motion blocks copy from. Frames are allocated once
// and overwritten in place.
package video

import (
	"fmt"
	"log/slog"

	"github.com/ZaparooProject/go-bink/format"
	"github.com/ZaparooProject/go-bink/internal/bitstream"
	"github.com/ZaparooProject/go-bink/internal/diag"
)

// Config describes the video stream.
type Config struct {
	// Logger receives diagnostics. Nil discards them.
	Logger    *slog.Logger
	Width     int
	Height    int
	Signature uint32 // format.SignatureBink when zero
	Revision  format.Revision
	HasAlpha  bool
}

// Decoder decodes consecutive frames of one stream. It is not safe for
// concurrent use.
type Decoder struct {
	frames  [2]*Frame
	diag    *diag.Once
	pd      planeDecoder
	r       bitstream.Reader
	cfg     Config
	next    int
	hasPrev bool
}

// NewDecoder validates cfg and allocates the frame buffers.
func NewDecoder(cfg Config) (*Decoder, error) {
	if cfg.Signature == 0 {
		cfg.Signature = format.SignatureBink
	}
	if format.Signature(cfg.Signature) != format.SignatureBink {
		return nil, fmt.Errorf("%w: %s video", ErrUnsupported, format.TagString(cfg.Signature&0xFFFFFF))
	}
	if !cfg.Revision.Valid() {
		return nil, fmt.Errorf("%w: revision %s", ErrUnsupported, cfg.Revision)
	}
	if cfg.Revision.LegacyCoder() {
		return nil, fmt.Errorf("%w: revision %s plane coder", ErrUnsupported, cfg.Revision)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || cfg.Width > MaxDimension || cfg.Height > MaxDimension {
		return nil, fmt.Errorf("%w: dimensions %dx%d", ErrInvalidConfig, cfg.Width, cfg.Height)
	}

	d := &Decoder{
		cfg:  cfg,
		diag: diag.New(cfg.Logger),
	}
	d.frames[0] = newFrame(cfg.Width, cfg.Height, cfg.HasAlpha)
	d.frames[1] = newFrame(cfg.Width, cfg.Height, cfg.HasAlpha)
	d.pd.r = &d.r
	d.pd.b.rev = cfg.Revision
	d.pd.coefIdx = make([]int, 0, 64)
	return d, nil
}

// Config returns the stream description the decoder was built with.
func (d *Decoder) Config() Config {
	return d.cfg
}

// Reset forgets the previous frame, as before the first packet.
func (d *Decoder) Reset() {
	d.next = 0
	d.hasPrev = false
}

// DecodeFrame decodes one video payload. The returned frame is owned by the
// decoder and stays valid until the next call.
func (d *Decoder) DecodeFrame(packet []byte) (*Frame, error) {
	cur := d.frames[d.next]
	prev := cur
	if d.hasPrev {
		prev = d.frames[1-d.next]
	} else {
		d.diag.Debug("no-reference", "decoding without a previous frame; references use the frame itself")
	}

	d.r.Reset(packet)
	rev := d.cfg.Revision

	if d.cfg.HasAlpha {
		if rev.HasPlaneOffsets() {
			if err := d.r.Skip(32); err != nil {
				return nil, corrupt(err)
			}
		}
		if err := d.decodePlane(PlaneAlpha, cur, prev); err != nil {
			return nil, err
		}
	}
	if rev.HasPlaneOffsets() {
		if err := d.r.Skip(32); err != nil {
			return nil, corrupt(err)
		}
	}

	order := [3]PlaneID{PlaneY, PlaneU, PlaneV}
	if rev.SwapsChroma() {
		order[1], order[2] = PlaneV, PlaneU
	}
	for plane, id := range order {
		if err := d.decodePlane(id, cur, prev); err != nil {
			return nil, err
		}
		if d.r.Pos() >= d.r.Len() {
			if plane < 2 {
				d.diag.Debug("short-frame", "frame ended before all planes were coded", "planes", plane+1)
			}
			// Uncoded planes keep the previous frame's samples.
			for _, rest := range order[plane+1:] {
				copy(cur.planes[rest].Pix, prev.planes[rest].Pix)
			}
			break
		}
	}

	d.hasPrev = true
	d.next = 1 - d.next
	return cur, nil
}

func (d *Decoder) decodePlane(id PlaneID, cur, prev *Frame) error {
	if err := d.pd.decodePlane(id, cur.planes[id], prev.planes[id], d.cfg.Width, d.cfg.Height); err != nil {
		return fmt.Errorf("%s plane: %w", id, err)
	}
	return nil
}
