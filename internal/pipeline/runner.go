// Copyright (c) 2026 Kevin Zang (kevinzang). All rights reserved.
// Use of this source code is governed by the MIT License.
//
// AudioValidator - 音频提交文件校验工具
//
// Package pipeline orchestrates file discovery, per-file validation, and
// batch summary reporting.

package pipeline

import (
	"context"
	"path/filepath"
	"strings"
	"sync"

	"github.com/ZSC714725/audiovalidator/internal/criteria"
	"github.com/ZSC714725/audiovalidator/internal/logger"
	"github.com/ZSC714725/audiovalidator/internal/naming"
	"github.com/ZSC714725/audiovalidator/internal/probe"
	"github.com/ZSC714725/audiovalidator/internal/project"
)

// FileResult is the validation outcome for one discovered file.
type FileResult struct {
	Path       string               `json:"path"`
	Filename   string               `json:"filename"`
	SizeBytes  int64                `json:"size_bytes"`
	Properties *criteria.Properties `json:"properties,omitempty"`
	ProbeError string               `json:"probe_error,omitempty"`
	Criteria   *criteria.Result     `json:"criteria,omitempty"`
	Verdict    *naming.Verdict      `json:"filename_verdict,omitempty"`
	Overall    criteria.Status      `json:"overall"`
}

// RunStats summarises one validation run.
type RunStats struct {
	Total      int   `json:"total"`
	Passed     int   `json:"passed"`
	Warnings   int   `json:"warnings"`
	Failed     int   `json:"failed"`
	TotalBytes int64 `json:"total_bytes"`
}

// Run discovers the audio files under dir and validates them against the
// project's rules with a fixed-size worker pool. Each file is independent,
// so work is distributed freely while results keep discovery order. On
// cancellation the files already handed out are finished and the processed
// prefix is returned together with ctx.Err(). onProgress is serialized:
// calls never overlap, so callbacks may write plain variables.
func Run(ctx context.Context, proj *project.Project, dir string, workers int, log logger.Logger, onProgress func(done, total int)) ([]FileResult, RunStats, error) {
	files, err := Discover(dir)
	if err != nil {
		return nil, RunStats{}, err
	}

	if workers <= 0 {
		workers = 1
	}
	if workers > len(files) && len(files) > 0 {
		workers = len(files)
	}

	log.Debug("validating %d files with %d workers", len(files), workers)

	results := make([]FileResult, len(files))

	type item struct {
		index int
		path  string
	}
	jobs := make(chan item)

	var wg sync.WaitGroup
	var progressLock sync.Mutex
	completed := 0

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for it := range jobs {
				results[it.index] = processFile(proj, it.path, log)

				progressLock.Lock()
				completed++
				if onProgress != nil {
					onProgress(completed, len(files))
				}
				progressLock.Unlock()
			}
		}()
	}

	sent := 0
feed:
	for i, path := range files {
		if ctx.Err() != nil {
			break
		}
		select {
		case <-ctx.Done():
			break feed
		case jobs <- item{index: i, path: path}:
			sent = i + 1
		}
	}
	close(jobs)
	wg.Wait()

	if sent < len(files) {
		results = results[:sent]
		return results, collectStats(results), ctx.Err()
	}
	return results, collectStats(results), nil
}

func collectStats(results []FileResult) RunStats {
	stats := RunStats{Total: len(results)}
	for i := range results {
		stats.TotalBytes += results[i].SizeBytes
		switch results[i].Overall {
		case criteria.StatusPass:
			stats.Passed++
		case criteria.StatusWarning:
			stats.Warnings++
		default:
			stats.Failed++
		}
	}
	return stats
}

// processFile handles one audio file: probe → criteria → filename → combine.
func processFile(proj *project.Project, path string, log logger.Logger) FileResult {
	res := FileResult{Path: path, Filename: filepath.Base(path)}

	var props *criteria.Properties
	var probeErr error
	if strings.EqualFold(filepath.Ext(path), ".wav") {
		props, probeErr = probe.File(path)
	} else {
		props, probeErr = probe.Basic(path)
	}
	if probeErr != nil {
		res.ProbeError = probeErr.Error()
		log.Error("probe %s: %v", path, probeErr)
	}
	if props != nil {
		res.Properties = props
		res.SizeBytes = props.SizeBytes
	}

	crit := criteria.Validate(props, proj.Criteria())
	res.Criteria = &crit

	statuses := []criteria.Status{crit.Overall}
	if v := proj.ValidateFilename(res.Filename); v != nil {
		res.Verdict = v
		if v.Status == naming.StatusFail {
			statuses = append(statuses, criteria.StatusFail)
		}
	}
	// An unreadable file can never be accepted, whatever else checks out.
	if probeErr != nil {
		statuses = append(statuses, criteria.StatusFail)
	}
	res.Overall = criteria.Combine(statuses...)

	log.Debug("%s: %s", res.Filename, res.Overall)
	return res
}
