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
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/ZaparooProject/go-bink/format"
	"github.com/ZaparooProject/go-bink/internal/binary"
)

// videoExtensions are the file extensions Bink videos are shipped with.
var videoExtensions = map[string]bool{
	".bik": true,
	".bk2": true,
	".bnk": true,
}

// IsVideoFile reports whether filename has a Bink video extension.
func IsVideoFile(filename string) bool {
	return videoExtensions[strings.ToLower(filepath.Ext(filename))]
}

// IsVideoData reports whether r starts with a Bink or SMUSH-wrapped tag.
func IsVideoData(r io.ReaderAt) bool {
	tag, err := binary.ReadUint32LEAt(r, 0)
	if err != nil {
		return false
	}
	switch format.Signature(tag) {
	case format.SignatureBink, format.SignatureBink2:
		return true
	}
	return tag == 'S'|'M'<<8|'U'<<16|'S'<<24
}

// DetectVideoFile finds the first video in an archive. Files with a video
// extension win; otherwise the first file whose content starts with a Bink
// tag is returned.
func DetectVideoFile(arc Archive) (string, error) {
	files, err := arc.List()
	if err != nil {
		return "", fmt.Errorf("list archive files: %w", err)
	}

	for _, file := range files {
		if IsVideoFile(file.Name) {
			return file.Name, nil
		}
	}
	for _, file := range files {
		ok, err := sniff(arc, file.Name)
		if err != nil {
			return "", err
		}
		if ok {
			return file.Name, nil
		}
	}
	return "", NoVideoFilesError{Archive: "archive"}
}

func sniff(arc Archive, name string) (bool, error) {
	reader, _, err := arc.Open(name)
	if err != nil {
		return false, err
	}
	defer func() { _ = reader.Close() }()

	head := make([]byte, 4)
	if _, err := io.ReadFull(reader, head); err != nil {
		return false, nil //nolint:nilerr // Files shorter than a tag are not videos
	}
	return IsVideoData(bytes.NewReader(head)), nil
}
