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
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"
	"github.com/ulikunitz/xz/lzma"

	"github.com/ZaparooProject/go-bink/format"
	"github.com/ZaparooProject/go-bink/internal/binktest"
	"github.com/ZaparooProject/go-bink/video"
)

// flatFrame decodes a frame whose planes are filled with y, u and v.
func flatFrame(t *testing.T, width, height int, y, u, v uint8) *video.Frame {
	t.Helper()

	d, err := video.NewDecoder(video.Config{Width: width, Height: height, Revision: format.RevisionK})
	if err != nil {
		t.Fatalf("NewDecoder() error = %v", err)
	}
	pkt, err := binktest.EncodeFrame(format.RevisionK, width, height, binktest.FillFrame(y, u, v))
	if err != nil {
		t.Fatalf("EncodeFrame() error = %v", err)
	}
	f, err := d.DecodeFrame(pkt)
	if err != nil {
		t.Fatalf("DecodeFrame() error = %v", err)
	}
	return f
}

func expectedStream(frames int) []byte {
	want := []byte("YUV4MPEG2 W10 H6 F25:1 Ip A1:1 C420jpeg\n")
	for range frames {
		want = append(want, "FRAME\n"...)
		want = append(want, bytes.Repeat([]byte{16}, 10*6)...)
		want = append(want, bytes.Repeat([]byte{128}, 5*3)...)
		want = append(want, bytes.Repeat([]byte{240}, 5*3)...)
	}
	return want
}

var testInfo = StreamInfo{Width: 10, Height: 6, FPSNum: 25, FPSDen: 1}

func TestWriterFrames(t *testing.T) {
	t.Parallel()

	f := flatFrame(t, 10, 6, 16, 128, 240)

	var buf bytes.Buffer
	w := NewWriter(&buf, testInfo)
	for range 2 {
		if err := w.WriteFrame(f); err != nil {
			t.Fatalf("WriteFrame() error = %v", err)
		}
	}
	if !bytes.Equal(buf.Bytes(), expectedStream(2)) {
		t.Errorf("stream = %q\nwant %q", buf.Bytes(), expectedStream(2))
	}
}

func TestWriterSizeMismatch(t *testing.T) {
	t.Parallel()

	f := flatFrame(t, 16, 16, 1, 2, 3)
	var buf bytes.Buffer
	if err := NewWriter(&buf, testInfo).WriteFrame(f); !errors.Is(err, ErrFrameSize) {
		t.Errorf("WriteFrame() error = %v, want ErrFrameSize", err)
	}
	if buf.Len() != 0 {
		t.Errorf("wrote %d bytes before failing", buf.Len())
	}
}

func TestCreateCompressed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		decompress func(r io.Reader) (io.Reader, error)
		ext        string
	}{
		{ext: ".y4m", decompress: func(r io.Reader) (io.Reader, error) { return r, nil }},
		{ext: ".zst", decompress: func(r io.Reader) (io.Reader, error) { return zstd.NewReader(r) }},
		{ext: ".gz", decompress: func(r io.Reader) (io.Reader, error) { return gzip.NewReader(r) }},
		{ext: ".xz", decompress: func(r io.Reader) (io.Reader, error) { return xz.NewReader(r) }},
		{ext: ".lzma", decompress: func(r io.Reader) (io.Reader, error) { return lzma.NewReader(r) }},
	}

	for _, tt := range tests {
		t.Run(tt.ext, func(t *testing.T) {
			t.Parallel()

			frame := flatFrame(t, 10, 6, 16, 128, 240)
			path := filepath.Join(t.TempDir(), "dump"+tt.ext)

			out, err := Create(path, testInfo)
			if err != nil {
				t.Fatalf("Create() error = %v", err)
			}
			for range 3 {
				if err := out.WriteFrame(frame); err != nil {
					t.Fatalf("WriteFrame() error = %v", err)
				}
			}
			if err := out.Close(); err != nil {
				t.Fatalf("Close() error = %v", err)
			}

			raw, err := os.ReadFile(path) //nolint:gosec // Test file in temp directory
			if err != nil {
				t.Fatal(err)
			}
			r, err := tt.decompress(bytes.NewReader(raw))
			if err != nil {
				t.Fatalf("decompress init error = %v", err)
			}
			got, err := io.ReadAll(r)
			if err != nil {
				t.Fatalf("decompress error = %v", err)
			}
			if !bytes.Equal(got, expectedStream(3)) {
				t.Errorf("decompressed %d bytes, want %d", len(got), len(expectedStream(3)))
			}
		})
	}
}

func TestCreateUnknownExtension(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "dump.bz2")
	if _, err := Create(path, testInfo); !errors.Is(err, ErrUnsupportedCompression) {
		t.Errorf("Create() error = %v, want ErrUnsupportedCompression", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("Create() left a file behind: %v", err)
	}
}

func TestCompressorExtensions(t *testing.T) {
	t.Parallel()

	exts := CompressorExtensions()
	for _, want := range []string{".gz", ".lzma", ".xz", ".zst"} {
		if !slices.Contains(exts, want) {
			t.Errorf("CompressorExtensions() = %v, missing %s", exts, want)
		}
	}
	if _, err := GetCompressor(".ZST"); err != nil {
		t.Errorf("GetCompressor(.ZST) error = %v", err)
	}
}
