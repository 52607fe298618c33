// Copyright (c) 2026 Kevin Zang (kevinzang). All rights reserved.
// Use of this source code is governed by the MIT License.
//
// AudioValidator - 音频提交文件校验工具

package testutil

import (
	"bytes"
	"encoding/binary"
	"os"
	"testing"
)

// WriteWAV writes a minimal PCM WAV file with the given format and frames
// silent sample frames. The bytes are assembled by hand so the fixtures do
// not depend on the decoder they exercise.
func WriteWAV(t *testing.T, path string, channels, sampleRate, bitDepth, frames int) {
	t.Helper()

	blockAlign := channels * bitDepth / 8
	byteRate := sampleRate * blockAlign
	dataLen := frames * blockAlign

	var buf bytes.Buffer
	buf.WriteString("RIFF")
	binary.Write(&buf, binary.LittleEndian, uint32(36+dataLen))
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	binary.Write(&buf, binary.LittleEndian, uint32(16))
	binary.Write(&buf, binary.LittleEndian, uint16(1)) // PCM
	binary.Write(&buf, binary.LittleEndian, uint16(channels))
	binary.Write(&buf, binary.LittleEndian, uint32(sampleRate))
	binary.Write(&buf, binary.LittleEndian, uint32(byteRate))
	binary.Write(&buf, binary.LittleEndian, uint16(blockAlign))
	binary.Write(&buf, binary.LittleEndian, uint16(bitDepth))

	buf.WriteString("data")
	binary.Write(&buf, binary.LittleEndian, uint32(dataLen))
	buf.Write(make([]byte, dataLen))

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write wav fixture %s: %v", path, err)
	}
}

// WriteGarbage writes a file that is not a valid WAV container.
func WriteGarbage(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, []byte("definitely not audio"), 0o644); err != nil {
		t.Fatalf("write fixture %s: %v", path, err)
	}
}
