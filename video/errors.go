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

import (
	"errors"
	"fmt"
)

// MaxDimension bounds the frame width and height accepted by NewDecoder.
const MaxDimension = 8192

// Common errors for frame decoding.
var (
	// ErrCorruptBitstream indicates the packet does not decode as a valid frame.
	ErrCorruptBitstream = errors.New("corrupt bitstream")

	// ErrUnsupported indicates a stream the decoder cannot reconstruct.
	ErrUnsupported = errors.New("unsupported video stream")

	// ErrInvalidConfig indicates invalid decoder parameters.
	ErrInvalidConfig = errors.New("invalid decoder configuration")
)

// BlockError reports a failure while reconstructing a single block.
type BlockError struct {
	Err   error
	Plane PlaneID
	X     int // block column
	Y     int // block row
	Type  BlockType
}

func (e *BlockError) Error() string {
	return fmt.Sprintf("%s plane block (%d,%d) %s: %v", e.Plane, e.X, e.Y, e.Type, e.Err)
}

func (e *BlockError) Unwrap() error {
	return e.Err
}

// corrupt wraps a lower-level failure so that it matches ErrCorruptBitstream
// while keeping the original error in the chain.
func corrupt(err error) error {
	if err == nil || errors.Is(err, ErrCorruptBitstream) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrCorruptBitstream, err)
}
