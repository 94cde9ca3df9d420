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

import "fmt"

// IndexEntry locates one frame packet. Offset is relative to the start of
// the Bink data.
type IndexEntry struct {
	Offset   int64
	Size     int64
	Keyframe bool
}

// BuildIndex turns frame boundaries into index entries. words holds one
// offset word per frame followed by the end of the last frame; bit 0 of a
// frame word is its keyframe flag and is ignored as part of the offset.
func BuildIndex(words []uint32) ([]IndexEntry, error) {
	if len(words) < 2 {
		return nil, nil
	}
	entries := make([]IndexEntry, len(words)-1)
	for i := range entries {
		pos := int64(words[i] &^ 1)
		next := int64(words[i+1] &^ 1)
		if next <= pos {
			return nil, fmt.Errorf("%w: frame %d ends at %d, not after its start %d",
				ErrInvalidFrameIndex, i, next, pos)
		}
		entries[i] = IndexEntry{
			Offset:   pos,
			Size:     next - pos,
			Keyframe: words[i]&1 != 0,
		}
	}
	return entries, nil
}
