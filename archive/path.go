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
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Path is a parsed reference to a file inside an archive.
type Path struct {
	ArchivePath  string // Path to the archive file
	InternalPath string // Path inside the archive (empty means auto-detect)
}

// archiveExtensions are the supported archive extensions.
var archiveExtensions = []string{".zip", ".7z", ".rar"}

// ParsePath parses a path that may reference a file inside an archive, such
// as "/games/movies.zip/intro/logo.bik". A path naming an archive itself
// yields an empty InternalPath.
//
// It returns (nil, nil) when the path does not reference an existing archive.
//
//nolint:nilnil // nil,nil is documented API behavior
func ParsePath(path string) (*Path, error) {
	lower := strings.ToLower(filepath.ToSlash(path))

	for _, ext := range archiveExtensions {
		idx := strings.Index(lower, ext+"/")
		if idx < 0 {
			continue
		}
		archivePath := path[:idx+len(ext)]
		ok, err := exists(archivePath)
		if err != nil {
			return nil, err
		}
		if ok {
			return &Path{ArchivePath: archivePath, InternalPath: path[idx+len(ext)+1:]}, nil
		}
	}

	if !IsArchiveExtension(filepath.Ext(path)) {
		return nil, nil
	}
	ok, err := exists(path)
	if err != nil || !ok {
		return nil, err
	}
	return &Path{ArchivePath: path}, nil
}

func exists(path string) (bool, error) {
	_, err := os.Stat(path)
	switch {
	case err == nil:
		return true, nil
	case os.IsNotExist(err):
		return false, nil
	default:
		return false, fmt.Errorf("stat archive %s: %w", path, err)
	}
}

// IsArchivePath reports whether path references an archive, without
// touching the filesystem.
func IsArchivePath(path string) bool {
	lower := strings.ToLower(filepath.ToSlash(path))
	for _, ext := range archiveExtensions {
		if strings.Contains(lower, ext+"/") {
			return true
		}
	}
	return IsArchiveExtension(filepath.Ext(path))
}
