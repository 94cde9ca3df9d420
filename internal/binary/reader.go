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

// Package binary provides little-endian reads over seekable byte sources.
package binary

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// ErrShortRead is returned when the source ends before a value is complete.
var ErrShortRead = errors.New("short read")

// ReadAt reads len(buf) bytes from r at offset.
func ReadAt(r io.ReaderAt, offset int64, buf []byte) error {
	n, err := r.ReadAt(buf, offset)
	if n == len(buf) {
		return nil
	}
	if err == nil || errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: got %d of %d bytes at offset %d", ErrShortRead, n, len(buf), offset)
	}
	return err
}

// ReadUint32LEAt reads a little-endian uint32 from r at offset.
func ReadUint32LEAt(r io.ReaderAt, offset int64) (uint32, error) {
	buf := make([]byte, 4)
	if err := ReadAt(r, offset, buf); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(buf), nil
}

// Reader reads little-endian values sequentially from an io.ReadSeeker and
// tracks the absolute offset.
type Reader struct {
	r      io.ReadSeeker
	offset int64
	buf    [4]byte
}

// NewReader wraps r. The current position of r becomes the starting offset.
func NewReader(r io.ReadSeeker) (*Reader, error) {
	off, err := r.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, fmt.Errorf("query position: %w", err)
	}
	return &Reader{r: r, offset: off}, nil
}

// Offset returns the absolute offset of the next byte.
func (r *Reader) Offset() int64 { return r.offset }

// ReadFull fills buf.
func (r *Reader) ReadFull(buf []byte) error {
	n, err := io.ReadFull(r.r, buf)
	r.offset += int64(n)
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return fmt.Errorf("%w: got %d of %d bytes at offset %d", ErrShortRead, n, len(buf), r.offset-int64(n))
		}
		return err
	}
	return nil
}

// Uint32LE reads a little-endian uint32.
func (r *Reader) Uint32LE() (uint32, error) {
	if err := r.ReadFull(r.buf[:4]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(r.buf[:4]), nil
}

// Uint16LE reads a little-endian uint16.
func (r *Reader) Uint16LE() (uint16, error) {
	if err := r.ReadFull(r.buf[:2]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(r.buf[:2]), nil
}

// Skip advances n bytes without reading them.
func (r *Reader) Skip(n int64) error {
	if n < 0 {
		return fmt.Errorf("negative skip %d", n)
	}
	return r.Seek(r.offset + n)
}

// Seek moves to an absolute offset.
func (r *Reader) Seek(offset int64) error {
	off, err := r.r.Seek(offset, io.SeekStart)
	if err != nil {
		return fmt.Errorf("seek to %d: %w", offset, err)
	}
	r.offset = off
	return nil
}
