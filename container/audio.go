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

package container

import "github.com/ZaparooProject/go-bink/format"

// AudioTrack describes one audio track. Audio is never decoded here; the
// fields only describe what an AudioSink will receive.
type AudioTrack struct {
	ID         uint32
	SampleRate uint16
	Flags      uint16
	Channels   int
}

func newAudioTrack(id uint32, rate, flags uint16) AudioTrack {
	ch := 1
	if flags&format.AudioFlagStereo != 0 {
		ch = 2
	}
	return AudioTrack{ID: id, SampleRate: rate, Flags: flags, Channels: ch}
}

// UsesDCT reports whether the track uses the DCT audio codec instead of RDFT.
func (t AudioTrack) UsesDCT() bool {
	return t.Flags&format.AudioFlagDCT != 0
}

// Is16Bit reports whether the track carries 16-bit samples.
func (t AudioTrack) Is16Bit() bool {
	return t.Flags&format.AudioFlag16Bit != 0
}

// AudioSink receives the audio sub-packets of every frame. payload is only
// valid for the duration of the call.
type AudioSink interface {
	WriteAudio(track int, info AudioTrack, payload []byte) error
}

// AudioSinkFunc adapts a function to AudioSink.
type AudioSinkFunc func(track int, info AudioTrack, payload []byte) error

// WriteAudio calls f.
func (f AudioSinkFunc) WriteAudio(track int, info AudioTrack, payload []byte) error {
	return f(track, info, payload)
}
