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

package format

import "testing"

func TestRevisionFromTag(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		tag  uint32
		want Revision
	}{
		{"BIKi", Tag(SignatureBink, RevisionI), RevisionI},
		{"BIKk", Tag(SignatureBink, RevisionK), RevisionK},
		{"KB2j", Tag(SignatureBink2, RevisionJ), RevisionJ},
		{"0xFF wraps to zero", 0xFF<<24 | SignatureBink, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := RevisionFromTag(tt.tag); got != tt.want {
				t.Errorf("RevisionFromTag(0x%08x) = %v, want %v", tt.tag, got, tt.want)
			}
		})
	}
}

func TestTagString(t *testing.T) {
	t.Parallel()

	if got := TagString(Tag(SignatureBink, RevisionI)); got != "BIKi" {
		t.Errorf("TagString() = %q, want %q", got, "BIKi")
	}
	if got := TagString(0x00414141); got != "AAA." {
		t.Errorf("TagString() = %q, want %q", got, "AAA.")
	}
}

func TestRevisionPredicates(t *testing.T) {
	t.Parallel()

	tests := []struct {
		rev        Revision
		swaps      bool
		offsets    bool
		flat       bool
		signFolded bool
	}{
		{RevisionD, false, false, false, true},
		{RevisionG, false, false, false, true},
		{RevisionH, true, false, false, true},
		{RevisionI, true, true, false, false},
		{RevisionK, true, true, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.rev.String(), func(t *testing.T) {
			t.Parallel()

			if got := tt.rev.SwapsChroma(); got != tt.swaps {
				t.Errorf("SwapsChroma() = %v, want %v", got, tt.swaps)
			}
			if got := tt.rev.HasPlaneOffsets(); got != tt.offsets {
				t.Errorf("HasPlaneOffsets() = %v, want %v", got, tt.offsets)
			}
			if got := tt.rev.HasFlatPlanes(); got != tt.flat {
				t.Errorf("HasFlatPlanes() = %v, want %v", got, tt.flat)
			}
			if got := tt.rev.SignFoldedColors(); got != tt.signFolded {
				t.Errorf("SignFoldedColors() = %v, want %v", got, tt.signFolded)
			}
		})
	}
}

func TestHasExtraHeaderField(t *testing.T) {
	t.Parallel()

	tests := []struct {
		sig  uint32
		rev  Revision
		want bool
	}{
		{SignatureBink, RevisionI, false},
		{SignatureBink, RevisionK, true},
		{SignatureBink2, RevisionI, true},
		{SignatureBink2, RevisionJ, true},
		{SignatureBink2, RevisionH, false},
		{0x00414141, RevisionK, false},
	}

	for _, tt := range tests {
		if got := tt.rev.HasExtraHeaderField(tt.sig); got != tt.want {
			t.Errorf("HasExtraHeaderField(%s, %v) = %v, want %v", TagString(tt.sig), tt.rev, got, tt.want)
		}
	}
}

func TestRevisionValid(t *testing.T) {
	t.Parallel()

	for _, r := range []Revision{'a', 'l', 0} {
		if r.Valid() {
			t.Errorf("Revision %v should be invalid", r)
		}
	}
	for r := RevisionB; r <= RevisionK; r++ {
		if !r.Valid() {
			t.Errorf("Revision %v should be valid", r)
		}
	}
}
