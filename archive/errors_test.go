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

package archive_test

import (
	"strings"
	"testing"

	"github.com/ZaparooProject/go-bink/archive"
)

func TestErrorMessages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want []string
	}{
		{"format with reason", archive.FormatError{Format: ".tar", Reason: "not supported"}, []string{".tar", "not supported"}},
		{"format", archive.FormatError{Format: ".tar"}, []string{".tar"}},
		{"not found", archive.FileNotFoundError{Archive: "/data/movies.zip", InternalPath: "intro/logo.bik"}, []string{"movies.zip", "intro/logo.bik"}},
		{"no video", archive.NoVideoFilesError{Archive: "/data/movies.zip"}, []string{"movies.zip", "Bink"}},
		{"too large", archive.EntryTooLargeError{InternalPath: "huge.bik", Size: 5 << 30}, []string{"huge.bik", "5368709120"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			msg := tt.err.Error()
			for _, w := range tt.want {
				if !strings.Contains(msg, w) {
					t.Errorf("error message %q should contain %q", msg, w)
				}
			}
		})
	}
}
