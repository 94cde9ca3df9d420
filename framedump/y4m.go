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

// Package framedump writes decoded frames as YUV4MPEG2 streams, optionally
// compressed according to the output file extension.
package framedump

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ZaparooProject/go-bink/video"
)

// ErrFrameSize is returned when a frame does not match the stream size.
var ErrFrameSize = errors.New("frame size does not match stream")

// StreamInfo describes the output stream.
type StreamInfo struct {
	Width  int
	Height int
	FPSNum uint32
	FPSDen uint32
}

// Writer emits frames as 4:2:0 YUV4MPEG2. Alpha planes are dropped.
type Writer struct {
	w       io.Writer
	info    StreamInfo
	started bool
}

// NewWriter returns a Writer emitting to w. The stream header is written
// with the first frame.
func NewWriter(w io.Writer, info StreamInfo) *Writer {
	return &Writer{w: w, info: info}
}

// WriteFrame appends f.
func (y *Writer) WriteFrame(f *video.Frame) error {
	luma := f.Plane(video.PlaneY)
	if luma.Width != y.info.Width || luma.Height != y.info.Height {
		return fmt.Errorf("%w: %dx%d, stream is %dx%d",
			ErrFrameSize, luma.Width, luma.Height, y.info.Width, y.info.Height)
	}

	if !y.started {
		if _, err := fmt.Fprintf(y.w, "YUV4MPEG2 W%d H%d F%d:%d Ip A1:1 C420jpeg\n",
			y.info.Width, y.info.Height, y.info.FPSNum, y.info.FPSDen); err != nil {
			return fmt.Errorf("write stream header: %w", err)
		}
		y.started = true
	}
	if _, err := io.WriteString(y.w, "FRAME\n"); err != nil {
		return fmt.Errorf("write frame header: %w", err)
	}
	for _, id := range []video.PlaneID{video.PlaneY, video.PlaneU, video.PlaneV} {
		if err := writePlane(y.w, f.Plane(id)); err != nil {
			return fmt.Errorf("write %s plane: %w", id, err)
		}
	}
	return nil
}

// writePlane writes the visible samples of p row by row.
func writePlane(w io.Writer, p *video.Plane) error {
	for row := range p.Height {
		off := row * p.Stride
		if _, err := w.Write(p.Pix[off : off+p.Width]); err != nil {
			return err //nolint:wrapcheck // Wrapped by caller with plane context
		}
	}
	return nil
}

// File is a Writer backed by a file on disk.
type File struct {
	*Writer
	file *os.File
	buf  *bufio.Writer
	comp io.WriteCloser
}

// Create opens path for writing. Extensions registered with
// RegisterCompressor select compression; ".y4m" is written plain.
func Create(path string, info StreamInfo) (*File, error) {
	compress, err := compressorForPath(path)
	if err != nil {
		return nil, err
	}

	file, err := os.Create(path) //nolint:gosec // Path from user input is expected
	if err != nil {
		return nil, fmt.Errorf("create dump file: %w", err)
	}
	f := &File{file: file, buf: bufio.NewWriterSize(file, 1<<16)}

	var w io.Writer = f.buf
	if compress != nil {
		f.comp, err = compress(f.buf)
		if err != nil {
			_ = file.Close()
			return nil, err
		}
		w = f.comp
	}
	f.Writer = NewWriter(w, info)
	return f, nil
}

// Close flushes the compressor and buffer and closes the file.
func (f *File) Close() error {
	var errs []error
	if f.comp != nil {
		if err := f.comp.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close compressor: %w", err))
		}
	}
	if err := f.buf.Flush(); err != nil {
		errs = append(errs, fmt.Errorf("flush dump file: %w", err))
	}
	if err := f.file.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close dump file: %w", err))
	}
	return errors.Join(errs...)
}
