// Copyright (c) 2026 Kevin Zang (kevinzang). All rights reserved.
// Use of this source code is governed by the MIT License.
//
// AudioValidator - 音频提交文件校验工具

package probe

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/ZSC714725/audiovalidator/internal/testutil"
)

func TestFileReadsHeader(t *testing.T) {
	dir := t.TempDir()

	cases := []struct {
		name       string
		channels   int
		sampleRate int
		bitDepth   int
		frames     int
	}{
		{name: "mono 16k 16bit", channels: 1, sampleRate: 16000, bitDepth: 16, frames: 16000},
		{name: "stereo 44k1 16bit", channels: 2, sampleRate: 44100, bitDepth: 16, frames: 4410},
		{name: "mono 8k 8bit", channels: 1, sampleRate: 8000, bitDepth: 8, frames: 8000},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(dir, "probe.wav")
			testutil.WriteWAV(t, path, tc.channels, tc.sampleRate, tc.bitDepth, tc.frames)

			props, err := File(path)
			if err != nil {
				t.Fatalf("probe: %v", err)
			}
			if props.FileType != "wav" {
				t.Errorf("file type: got %q, want %q", props.FileType, "wav")
			}
			if props.SampleRate != tc.sampleRate {
				t.Errorf("sample rate: got %d, want %d", props.SampleRate, tc.sampleRate)
			}
			if props.BitDepth != tc.bitDepth {
				t.Errorf("bit depth: got %d, want %d", props.BitDepth, tc.bitDepth)
			}
			if props.Channels != tc.channels {
				t.Errorf("channels: got %d, want %d", props.Channels, tc.channels)
			}
			if props.Duration <= 0 {
				t.Errorf("duration: got %v, want > 0", props.Duration)
			}
			if props.SizeBytes <= 44 {
				t.Errorf("size: got %d, want > header size", props.SizeBytes)
			}
		})
	}
}

func TestFileRejectsGarbage(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.wav")
	testutil.WriteGarbage(t, path)

	if _, err := File(path); !errors.Is(err, ErrInvalidWAV) {
		t.Errorf("got %v, want ErrInvalidWAV", err)
	}
}

func TestFileMissing(t *testing.T) {
	if _, err := File(filepath.Join(t.TempDir(), "absent.wav")); err == nil {
		t.Errorf("want error for missing file")
	}
}

func TestBasic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "clip.MP3")
	testutil.WriteGarbage(t, path)

	props, err := Basic(path)
	if err != nil {
		t.Fatalf("basic: %v", err)
	}
	if props.FileType != "mp3" {
		t.Errorf("file type: got %q, want %q", props.FileType, "mp3")
	}
	if props.SizeBytes == 0 {
		t.Errorf("size: got 0, want > 0")
	}
	if props.SampleRate != 0 || props.BitDepth != 0 || props.Channels != 0 || props.Duration != 0 {
		t.Errorf("unmeasured fields must stay zero: %+v", props)
	}
}
