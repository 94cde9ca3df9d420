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

package archive

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/nwaples/rardecode/v2"
)

// RARArchive provides access to files in a RAR archive. RAR headers can only
// be walked sequentially, so every lookup rescans from the start.
type RARArchive struct {
	file *os.File
	path string
}

// OpenRAR opens a RAR archive for reading.
func OpenRAR(path string) (*RARArchive, error) {
	file, err := os.Open(path) //nolint:gosec // User-provided path is expected
	if err != nil {
		return nil, fmt.Errorf("open RAR archive: %w", err)
	}
	return &RARArchive{file: file, path: path}, nil
}

// walk calls fn for every file header until fn returns true or the archive
// ends. The reader passed to fn is positioned at the file's data.
func (ra *RARArchive) walk(fn func(h *rardecode.FileHeader, r *rardecode.Reader) bool) error {
	if _, err := ra.file.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("seek RAR archive: %w", err)
	}
	reader, err := rardecode.NewReader(ra.file)
	if err != nil {
		return fmt.Errorf("create RAR reader: %w", err)
	}
	for {
		header, err := reader.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read RAR header: %w", err)
		}
		if header.IsDir {
			continue
		}
		if fn(header, reader) {
			return nil
		}
	}
}

// List returns all files in the RAR archive.
func (ra *RARArchive) List() ([]FileInfo, error) {
	var files []FileInfo
	err := ra.walk(func(h *rardecode.FileHeader, _ *rardecode.Reader) bool {
		files = append(files, FileInfo{Name: h.Name, Size: h.UnPackedSize})
		return false
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// Open opens a file within the RAR archive. The reader is invalidated by the
// next call on the archive.
func (ra *RARArchive) Open(internalPath string) (io.ReadCloser, int64, error) {
	var (
		found io.ReadCloser
		size  int64
	)
	err := ra.walk(func(h *rardecode.FileHeader, r *rardecode.Reader) bool {
		if findEntry(1, func(int) string { return h.Name }, internalPath) < 0 {
			return false
		}
		found, size = io.NopCloser(r), h.UnPackedSize
		return true
	})
	if err != nil {
		return nil, 0, err
	}
	if found == nil {
		return nil, 0, FileNotFoundError{Archive: ra.path, InternalPath: internalPath}
	}
	return found, size, nil
}

// OpenReadSeeker buffers a file of the RAR archive in memory.
func (ra *RARArchive) OpenReadSeeker(internalPath string) (io.ReadSeeker, int64, error) {
	return bufferEntry(ra, internalPath)
}

// Close closes the RAR archive.
func (ra *RARArchive) Close() error {
	return ra.file.Close() //nolint:wrapcheck // Close error passthrough is intentional
}
