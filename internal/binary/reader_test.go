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

package binary

import (
	"bytes"
	"errors"
	"testing"
)

func TestReadUint32LEAt(t *testing.T) {
	t.Parallel()

	r := bytes.NewReader([]byte{0x42, 0x49, 0x4B, 0x69, 0x78, 0x56, 0x34, 0x12})

	tests := []struct {
		name    string
		offset  int64
		want    uint32
		wantErr bool
	}{
		{"tag", 0, 0x694B4942, false},
		{"second word", 4, 0x12345678, false},
		{"straddles end", 6, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ReadUint32LEAt(r, tt.offset)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ReadUint32LEAt() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, ErrShortRead) {
					t.Errorf("error = %v, want ErrShortRead", err)
				}
				return
			}
			if got != tt.want {
				t.Errorf("ReadUint32LEAt() = 0x%08X, want 0x%08X", got, tt.want)
			}
		})
	}
}

func TestReaderSequential(t *testing.T) {
	t.Parallel()

	data := []byte{
		0xAA, 0xBB, // skipped prefix
		0x78, 0x56, 0x34, 0x12,
		0x22, 0xAC,
		0x01, 0x02, 0x03,
	}
	src := bytes.NewReader(data)
	if _, err := src.Seek(2, 0); err != nil {
		t.Fatal(err)
	}

	r, err := NewReader(src)
	if err != nil {
		t.Fatalf("NewReader() error = %v", err)
	}
	if r.Offset() != 2 {
		t.Errorf("Offset() = %d, want 2", r.Offset())
	}

	v32, err := r.Uint32LE()
	if err != nil || v32 != 0x12345678 {
		t.Errorf("Uint32LE() = 0x%08X, %v", v32, err)
	}
	v16, err := r.Uint16LE()
	if err != nil || v16 != 0xAC22 {
		t.Errorf("Uint16LE() = 0x%04X, %v", v16, err)
	}
	if err := r.Skip(1); err != nil {
		t.Fatalf("Skip() error = %v", err)
	}
	buf := make([]byte, 2)
	if err := r.ReadFull(buf); err != nil || !bytes.Equal(buf, []byte{0x02, 0x03}) {
		t.Errorf("ReadFull() = %v, %v", buf, err)
	}
	if r.Offset() != int64(len(data)) {
		t.Errorf("Offset() = %d, want %d", r.Offset(), len(data))
	}
	if _, err := r.Uint16LE(); !errors.Is(err, ErrShortRead) {
		t.Errorf("Uint16LE() at end error = %v, want ErrShortRead", err)
	}
}

func TestReaderSeek(t *testing.T) {
	t.Parallel()

	r, err := NewReader(bytes.NewReader([]byte{0, 0, 0, 0, 0x10, 0x00, 0x00, 0x00}))
	if err != nil {
		t.Fatal(err)
	}
	if err := r.Seek(4); err != nil {
		t.Fatalf("Seek() error = %v", err)
	}
	v, err := r.Uint32LE()
	if err != nil || v != 0x10 {
		t.Errorf("Uint32LE() after seek = %d, %v", v, err)
	}
	if err := r.Skip(-1); err == nil {
		t.Error("Skip(-1) should fail")
	}
}
