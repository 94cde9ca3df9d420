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

// Command binkinfo prints information about Bink video files and optionally
// decodes or dumps their frames.
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/ZaparooProject/go-bink"
	"github.com/ZaparooProject/go-bink/framedump"
)

const appVersion = "0.1.0"

type options struct {
	input      string
	dumpPath   string
	frames     int
	jsonOutput bool
	verbose    bool
	version    bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	opts := &options{}
	fs := flag.NewFlagSet("binkinfo", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.input, "i", "", "input file path, may point inside a zip, 7z or rar archive (required)")
	fs.BoolVar(&opts.jsonOutput, "json", false, "output as JSON")
	fs.IntVar(&opts.frames, "frames", 0, "decode this many frames, -1 for all")
	fs.StringVar(&opts.dumpPath, "dump", "", "write decoded frames as YUV4MPEG2 ("+
		strings.Join(append([]string{".y4m"}, framedump.CompressorExtensions()...), ", ")+")")
	fs.BoolVar(&opts.verbose, "v", false, "log decoder diagnostics")
	fs.BoolVar(&opts.version, "version", false, "print version and exit")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: binkinfo -i <file> [options]\n\n")
		fmt.Fprintf(stderr, "Prints information about Bink video files.\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  binkinfo -i intro.bik\n")
		fmt.Fprintf(stderr, "  binkinfo -i movies.7z/intro.bik -json\n")
		fmt.Fprintf(stderr, "  binkinfo -i intro.bik -frames -1 -dump intro.y4m.zst\n")
	}

	if err := fs.Parse(args); err != nil {
		return nil, err //nolint:wrapcheck // flag already reported the error
	}
	return opts, nil
}

func run(args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		return 2
	}

	if opts.version {
		fmt.Fprintf(stdout, "binkinfo version %s\n", appVersion)
		return 0
	}
	if opts.input == "" {
		fmt.Fprintf(stderr, "Error: input file required (-i)\n")
		return 1
	}

	level := slog.LevelWarn
	if opts.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	dec, err := bink.Open(opts.input, &bink.Options{Logger: logger})
	if err != nil {
		fmt.Fprintf(stderr, "Error opening video: %v\n", err)
		return 1
	}
	defer func() { _ = dec.Close() }()

	info := dec.Info()
	decoded, err := decodeFrames(dec, opts)
	rep := newReport(info, decoded, err)

	if opts.jsonOutput {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if encErr := enc.Encode(rep); encErr != nil {
			fmt.Fprintf(stderr, "Error encoding JSON: %v\n", encErr)
			return 1
		}
	} else {
		outputText(stdout, rep)
	}

	if err != nil {
		fmt.Fprintf(stderr, "Error decoding: %v\n", err)
		return 1
	}
	return 0
}

// decodeFrames decodes up to opts.frames frames, writing them to the dump
// file when one is requested.
func decodeFrames(dec *bink.Decoder, opts *options) (n int, err error) {
	limit := opts.frames
	if limit < 0 {
		limit = dec.Info().FrameCount
	}
	if limit == 0 && opts.dumpPath == "" {
		return 0, nil
	}
	if limit == 0 {
		limit = dec.Info().FrameCount
	}

	var dump *framedump.File
	if opts.dumpPath != "" {
		info := dec.Info()
		dump, err = framedump.Create(opts.dumpPath, framedump.StreamInfo{
			Width: info.Width, Height: info.Height, FPSNum: info.FPSNum, FPSDen: info.FPSDen,
		})
		if err != nil {
			return 0, fmt.Errorf("create dump: %w", err)
		}
		defer func() {
			if cerr := dump.Close(); cerr != nil && err == nil {
				err = cerr
			}
		}()
	}

	for n < limit {
		f, err := dec.NextFrame()
		if errors.Is(err, io.EOF) {
			return n, nil
		}
		if err != nil {
			return n, err //nolint:wrapcheck // Decoder errors carry the frame index
		}
		if dump != nil {
			if err := dump.WriteFrame(f); err != nil {
				return n, fmt.Errorf("dump frame %d: %w", n, err)
			}
		}
		n++
	}
	return n, nil
}

type trackReport struct {
	ID         uint32 `json:"id"`
	SampleRate uint16 `json:"sample_rate"`
	Channels   int    `json:"channels"`
	Bits       int    `json:"bits"`
	Codec      string `json:"codec"`
}

type report struct {
	Error       string        `json:"error,omitempty"`
	Tag         string        `json:"tag"`
	Tracks      []trackReport `json:"audio_tracks,omitempty"`
	Width       int           `json:"width"`
	Height      int           `json:"height"`
	FrameCount  int           `json:"frame_count"`
	Decoded     int           `json:"decoded_frames"`
	FPSNum      uint32        `json:"fps_num"`
	FPSDen      uint32        `json:"fps_den"`
	Revision    string        `json:"revision"`
	HasAlpha    bool          `json:"alpha"`
	IsGray      bool          `json:"gray"`
}

func newReport(info bink.Info, decoded int, err error) report {
	rep := report{
		Tag:        info.Tag,
		Revision:   info.Revision.String(),
		Width:      info.Width,
		Height:     info.Height,
		FrameCount: info.FrameCount,
		Decoded:    decoded,
		FPSNum:     info.FPSNum,
		FPSDen:     info.FPSDen,
		HasAlpha:   info.HasAlpha,
		IsGray:     info.IsGray,
	}
	for _, t := range info.AudioTracks {
		tr := trackReport{ID: t.ID, SampleRate: t.SampleRate, Channels: t.Channels, Bits: 8, Codec: "rdft"}
		if t.Is16Bit() {
			tr.Bits = 16
		}
		if t.UsesDCT() {
			tr.Codec = "dct"
		}
		rep.Tracks = append(rep.Tracks, tr)
	}
	if err != nil {
		rep.Error = err.Error()
	}
	return rep
}

func outputText(w io.Writer, rep report) {
	fmt.Fprintf(w, "Tag: %s\n", rep.Tag)
	fmt.Fprintf(w, "Size: %dx%d\n", rep.Width, rep.Height)
	fmt.Fprintf(w, "Frames: %d\n", rep.FrameCount)
	fmt.Fprintf(w, "Frame rate: %d/%d\n", rep.FPSNum, rep.FPSDen)
	if rep.HasAlpha {
		fmt.Fprintf(w, "Alpha: yes\n")
	}
	if rep.IsGray {
		fmt.Fprintf(w, "Gray: yes\n")
	}

	if len(rep.Tracks) > 0 {
		fmt.Fprintln(w, "\nAudio tracks:")
		for _, t := range rep.Tracks {
			fmt.Fprintf(w, "  #%d: %d Hz, %d ch, %d-bit, %s\n", t.ID, t.SampleRate, t.Channels, t.Bits, t.Codec)
		}
	}
	if rep.Decoded > 0 {
		fmt.Fprintf(w, "\nDecoded frames: %d\n", rep.Decoded)
	}
}
