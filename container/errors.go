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

import "errors"

// Allocation limits against hostile headers.
const (
	// MaxFrames is the maximum frame count accepted in a header.
	MaxFrames = 1_000_000

	// MaxAudioTracks is the maximum number of audio tracks.
	MaxAudioTracks = 256

	// MaxDimension is the maximum frame width or height.
	MaxDimension = 8192

	// MaxPacketSize is the largest packet read into memory (64MB).
	MaxPacketSize = 64 * 1024 * 1024

	// MaxSmushChunks bounds the scan for a Bink tag inside a SMUSH wrapper.
	MaxSmushChunks = 4096
)

// Common errors for Bink container parsing.
var (
	// ErrInvalidHeader indicates a bad magic tag or an inconsistent header field.
	ErrInvalidHeader = errors.New("invalid Bink header")

	// ErrInvalidFrameIndex indicates non-increasing frame offsets.
	ErrInvalidFrameIndex = errors.New("invalid frame index")

	// ErrIO indicates a short read or failed seek on the byte source.
	ErrIO = errors.New("bink I/O error")

	// ErrInvalidPacket indicates an audio sub-packet that overruns its packet.
	ErrInvalidPacket = errors.New("invalid packet")
)
