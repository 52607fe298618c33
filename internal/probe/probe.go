// Copyright (c) 2026 Kevin Zang (kevinzang). All rights reserved.
// Use of this source code is governed by the MIT License.
//
// AudioValidator - 音频提交文件校验工具

package probe

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-audio/wav"

	"github.com/ZSC714725/audiovalidator/internal/criteria"
)

// ErrInvalidWAV indicates the file is not a decodable RIFF/WAVE container.
var ErrInvalidWAV = errors.New("invalid or unsupported wav header")

// File reads the WAV header of the file at path and returns its measured
// properties. The audio payload itself is never decoded.
func File(path string) (*criteria.Properties, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat: %w", err)
	}

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, ErrInvalidWAV
	}
	dec.ReadInfo()

	props := &criteria.Properties{
		FileType:   extType(path),
		SampleRate: int(dec.SampleRate),
		BitDepth:   int(dec.BitDepth),
		Channels:   int(dec.NumChans),
		SizeBytes:  info.Size(),
	}

	// RIFF 时长是近似值（按平均码率折算）
	if d, err := dec.Duration(); err == nil {
		props.Duration = d.Seconds()
	}

	return props, nil
}

// Basic returns the properties knowable without header parsing: file type
// from the extension and size from stat. Used for non-WAV submissions so
// they still flow through the criteria checks.
func Basic(path string) (*criteria.Properties, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat: %w", err)
	}
	return &criteria.Properties{
		FileType:  extType(path),
		SizeBytes: info.Size(),
	}, nil
}

func extType(path string) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
}
