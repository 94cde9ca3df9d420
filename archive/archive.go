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

// Package archive reads Bink videos packed inside game data archives.
// It supports ZIP, 7z and RAR formats.
package archive

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// MaxEntrySize is the largest archive entry buffered into memory (1GB).
const MaxEntrySize = 1 << 30

// FileInfo describes one file in an archive.
type FileInfo struct {
	Name string // Full path within archive
	Size int64  // Uncompressed size
}

// Archive provides read access to the files of an archive.
type Archive interface {
	// List returns all files in the archive, skipping directories.
	List() ([]FileInfo, error)

	// Open opens a file for sequential reading and returns its
	// uncompressed size.
	Open(internalPath string) (io.ReadCloser, int64, error)

	// OpenReadSeeker buffers a file in memory so that it can be seeked,
	// which the Bink frame index requires.
	OpenReadSeeker(internalPath string) (io.ReadSeeker, int64, error)

	// Close closes the archive.
	Close() error
}

// Open opens an archive, choosing the format from the extension.
func Open(path string) (Archive, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".zip":
		return OpenZIP(path)
	case ".7z":
		return OpenSevenZip(path)
	case ".rar":
		return OpenRAR(path)
	default:
		return nil, FormatError{Format: ext}
	}
}

// IsArchiveExtension reports whether ext names a supported archive format.
func IsArchiveExtension(ext string) bool {
	switch strings.ToLower(ext) {
	case ".zip", ".7z", ".rar":
		return true
	default:
		return false
	}
}

// OpenVideo buffers the video that p points at. When p has no internal path
// the first video in the archive is used. The archive is closed before
// returning; the returned name is the path of the video inside it.
func OpenVideo(p *Path) (rs io.ReadSeeker, name string, err error) {
	arc, err := Open(p.ArchivePath)
	if err != nil {
		return nil, "", err
	}
	defer func() { _ = arc.Close() }()

	name = p.InternalPath
	if name == "" {
		if name, err = DetectVideoFile(arc); err != nil {
			return nil, "", err
		}
	}
	rs, _, err = arc.OpenReadSeeker(name)
	if err != nil {
		return nil, "", err
	}
	return rs, name, nil
}

// bufferEntry reads a whole entry into memory.
func bufferEntry(arc Archive, internalPath string) (io.ReadSeeker, int64, error) {
	reader, size, err := arc.Open(internalPath)
	if err != nil {
		return nil, 0, err
	}
	defer func() { _ = reader.Close() }()

	if size < 0 || size > MaxEntrySize {
		return nil, 0, EntryTooLargeError{InternalPath: internalPath, Size: size}
	}
	data := make([]byte, size)
	if _, err := io.ReadFull(reader, data); err != nil {
		return nil, 0, fmt.Errorf("read %s from archive: %w", internalPath, err)
	}
	return bytes.NewReader(data), size, nil
}

// findEntry returns the index of the entry named internalPath, comparing
// case-insensitively with forward slashes, or -1.
func findEntry(n int, name func(i int) string, internalPath string) int {
	internalPath = filepath.ToSlash(internalPath)
	for i := range n {
		if strings.EqualFold(name(i), internalPath) {
			return i
		}
	}
	return -1
}
