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
	"fmt"
	"io"

	"github.com/ulikunitz/xz"
	"github.com/ulikunitz/xz/lzma"
)

func init() {
	RegisterCompressor(".xz", newXZWriter)
	RegisterCompressor(".lzma", newLZMAWriter)
}

func newXZWriter(w io.Writer) (io.WriteCloser, error) {
	xw, err := xz.NewWriter(w)
	if err != nil {
		return nil, fmt.Errorf("xz init: %w", err)
	}
	return xw, nil
}

// newLZMAWriter writes the classic .lzma format with a 13-byte header.
func newLZMAWriter(w io.Writer) (io.WriteCloser, error) {
	lw, err := lzma.WriterConfig{DictCap: 1 << 22}.NewWriter(w)
	if err != nil {
		return nil, fmt.Errorf("lzma init: %w", err)
	}
	return lw, nil
}
