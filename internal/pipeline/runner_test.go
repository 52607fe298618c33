// Copyright (c) 2026 Kevin Zang (kevinzang). All rights reserved.
// Use of this source code is governed by the MIT License.
//
// AudioValidator - 音频提交文件校验工具

package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/ZSC714725/audiovalidator/internal/config"
	"github.com/ZSC714725/audiovalidator/internal/criteria"
	"github.com/ZSC714725/audiovalidator/internal/logger"
	"github.com/ZSC714725/audiovalidator/internal/project"
	"github.com/ZSC714725/audiovalidator/internal/testutil"
)

func TestDiscover(t *testing.T) {
	dir := t.TempDir()

	testutil.WriteGarbage(t, filepath.Join(dir, "b.wav"))
	testutil.WriteGarbage(t, filepath.Join(dir, "a.mp3"))
	testutil.WriteGarbage(t, filepath.Join(dir, "notes.txt"))
	testutil.WriteGarbage(t, filepath.Join(dir, ".hidden.wav"))

	sub := filepath.Join(dir, "take2")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	testutil.WriteGarbage(t, filepath.Join(sub, "c.flac"))

	hiddenDir := filepath.Join(dir, ".git")
	if err := os.Mkdir(hiddenDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	testutil.WriteGarbage(t, filepath.Join(hiddenDir, "d.wav"))

	got, err := Discover(dir)
	if err != nil {
		t.Fatalf("discover: %v", err)
	}

	want := []string{
		filepath.Join(dir, "a.mp3"),
		filepath.Join(dir, "b.wav"),
		filepath.Join(sub, "c.flac"),
	}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("index %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

func testProject(t *testing.T) *project.Project {
	t.Helper()

	dataset := filepath.Join(t.TempDir(), "dataset.json")
	doc := `{
		"languageCodes": ["en"],
		"conversationsByLanguage": {"en": ["conv1"]},
		"contributorPairs": [["u1", "a1"]]
	}`
	if err := os.WriteFile(dataset, []byte(doc), 0o644); err != nil {
		t.Fatalf("write dataset: %v", err)
	}

	p, err := project.New(config.ProjectConfig{
		Name: "fieldwork",
		Criteria: criteria.Criteria{
			FileTypes:   []string{"wav"},
			SampleRates: []int{16000},
			BitDepths:   []int{16},
			Channels:    []int{1},
			MinDuration: 0.5,
		},
		Filename: config.FilenameConfig{Mode: config.ModeConversational, Dataset: dataset},
	})
	if err != nil {
		t.Fatalf("project: %v", err)
	}
	return p
}

func TestRun(t *testing.T) {
	proj := testProject(t)
	dir := t.TempDir()

	testutil.WriteWAV(t, filepath.Join(dir, "conv1-en-user-u1-agent-a1.wav"), 1, 16000, 16, 16000)
	testutil.WriteWAV(t, filepath.Join(dir, "conv9-en-user-u1-agent-a1.wav"), 1, 16000, 16, 16000)
	testutil.WriteGarbage(t, filepath.Join(dir, "broken.wav"))
	testutil.WriteGarbage(t, filepath.Join(dir, "clip.mp3"))
	testutil.WriteGarbage(t, filepath.Join(dir, "notes.txt"))

	var lastDone, lastTotal int
	results, stats, err := Run(context.Background(), proj, dir, 3, logger.NewQuiet("test "), func(done, total int) {
		lastDone, lastTotal = done, total
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	wantOrder := []string{"broken.wav", "clip.mp3", "conv1-en-user-u1-agent-a1.wav", "conv9-en-user-u1-agent-a1.wav"}
	if len(results) != len(wantOrder) {
		t.Fatalf("results: got %d, want %d", len(results), len(wantOrder))
	}
	for i, want := range wantOrder {
		if results[i].Filename != want {
			t.Errorf("order %d: got %q, want %q", i, results[i].Filename, want)
		}
	}

	if lastDone != 4 || lastTotal != 4 {
		t.Errorf("progress: got (%d, %d), want (4, 4)", lastDone, lastTotal)
	}

	// broken.wav: unreadable header fails the file outright.
	if results[0].ProbeError == "" || results[0].Overall != criteria.StatusFail {
		t.Errorf("broken.wav: %+v", results[0])
	}

	// clip.mp3: wrong file type fails, unmeasured properties only warn.
	if results[1].Overall != criteria.StatusFail {
		t.Errorf("clip.mp3 overall: got %q", results[1].Overall)
	}
	if results[1].Criteria.FileType.Status != criteria.StatusFail {
		t.Errorf("clip.mp3 file type: got %+v", results[1].Criteria.FileType)
	}
	if results[1].Criteria.SampleRate.Status != criteria.StatusWarning {
		t.Errorf("clip.mp3 sample rate: got %+v", results[1].Criteria.SampleRate)
	}

	// conv1: everything checks out.
	if results[2].Overall != criteria.StatusPass {
		t.Errorf("conv1 overall: got %q (%+v)", results[2].Overall, results[2])
	}
	if results[2].Verdict == nil || len(results[2].Verdict.Issues) != 0 {
		t.Errorf("conv1 verdict: %+v", results[2].Verdict)
	}
	if results[2].Properties == nil || results[2].Properties.SampleRate != 16000 {
		t.Errorf("conv1 properties: %+v", results[2].Properties)
	}

	// conv9: valid audio, invalid conversation ID.
	if results[3].Overall != criteria.StatusFail {
		t.Errorf("conv9 overall: got %q", results[3].Overall)
	}
	if results[3].Criteria.Overall != criteria.StatusPass {
		t.Errorf("conv9 criteria should pass: %+v", results[3].Criteria)
	}
	if results[3].Verdict == nil || results[3].Verdict.Status != "fail" {
		t.Errorf("conv9 verdict: %+v", results[3].Verdict)
	}

	if stats.Total != 4 || stats.Passed != 1 || stats.Warnings != 0 || stats.Failed != 3 {
		t.Errorf("stats: %+v", stats)
	}
	if stats.TotalBytes == 0 {
		t.Errorf("total bytes not accumulated")
	}
}

// The progress callback must be serialized across workers so callers can
// write plain variables from it, as the CLI does.
func TestRunProgressSerialized(t *testing.T) {
	proj := testProject(t)
	dir := t.TempDir()

	const files = 8
	for i := 0; i < files; i++ {
		testutil.WriteWAV(t, filepath.Join(dir, fmt.Sprintf("clip%d.wav", i)), 1, 16000, 16, 1600)
	}

	var seen []int
	_, _, err := Run(context.Background(), proj, dir, 4, logger.NewQuiet(""), func(done, total int) {
		if total != files {
			t.Errorf("total: got %d, want %d", total, files)
		}
		seen = append(seen, done)
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if len(seen) != files {
		t.Fatalf("callbacks: got %d, want %d", len(seen), files)
	}
	for i, done := range seen {
		if done != i+1 {
			t.Errorf("callback %d: got done=%d, want %d", i, done, i+1)
		}
	}
}

func TestRunEmptyDir(t *testing.T) {
	proj := testProject(t)

	results, stats, err := Run(context.Background(), proj, t.TempDir(), 4, logger.NewQuiet(""), nil)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(results) != 0 || stats.Total != 0 {
		t.Errorf("got %d results, stats %+v", len(results), stats)
	}
}

func TestRunMissingDir(t *testing.T) {
	proj := testProject(t)

	if _, _, err := Run(context.Background(), proj, filepath.Join(t.TempDir(), "absent"), 1, logger.NewQuiet(""), nil); err == nil {
		t.Errorf("want error for missing directory")
	}
}

func TestRunCancel(t *testing.T) {
	proj := testProject(t)
	dir := t.TempDir()

	for _, name := range []string{"a.wav", "b.wav", "c.wav", "d.wav", "e.wav", "f.wav"} {
		testutil.WriteWAV(t, filepath.Join(dir, name), 1, 16000, 16, 1600)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	results, stats, err := Run(ctx, proj, dir, 1, logger.NewQuiet(""), func(done, total int) {
		if done == 1 {
			cancel()
		}
	})
	if err != context.Canceled {
		t.Fatalf("err: got %v, want context.Canceled", err)
	}
	if len(results) == 0 || len(results) >= 6 {
		t.Errorf("partial results: got %d, want between 1 and 5", len(results))
	}
	if stats.Total != len(results) {
		t.Errorf("stats total %d != results %d", stats.Total, len(results))
	}
}
