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

package framedump

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"strings"
	"sync"
)

// ErrUnsupportedCompression is returned for an extension no compressor is
// registered for.
var ErrUnsupportedCompression = errors.New("unsupported dump compression")

// Compressor wraps w in a compressing writer. Closing the returned writer
// flushes the compressed stream but does not close w.
type Compressor func(w io.Writer) (io.WriteCloser, error)

// compressorRegistry maps a lower-case file extension to its compressor.
var (
	compressorRegistry   = make(map[string]Compressor)
	compressorRegistryMu sync.RWMutex
)

// RegisterCompressor registers c for files ending in ext (".zst").
func RegisterCompressor(ext string, c Compressor) {
	compressorRegistryMu.Lock()
	defer compressorRegistryMu.Unlock()
	compressorRegistry[strings.ToLower(ext)] = c
}

// GetCompressor returns the compressor registered for ext.
func GetCompressor(ext string) (Compressor, error) {
	compressorRegistryMu.RLock()
	c, ok := compressorRegistry[strings.ToLower(ext)]
	compressorRegistryMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedCompression, ext)
	}
	return c, nil
}

// CompressorExtensions returns the registered extensions in sorted order.
func CompressorExtensions() []string {
	compressorRegistryMu.RLock()
	defer compressorRegistryMu.RUnlock()

	exts := make([]string, 0, len(compressorRegistry))
	for ext := range compressorRegistry {
		exts = append(exts, ext)
	}
	slices.Sort(exts)
	return exts
}

// compressorForPath picks the compressor for path. Plain ".y4m" output
// returns nil.
func compressorForPath(path string) (Compressor, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".y4m" {
		return nil, nil
	}
	return GetCompressor(ext)
}
