// Copyright (c) 2026 Kevin Zang (kevinzang). All rights reserved.
// Use of this source code is governed by the MIT License.
//
// AudioValidator - 音频提交文件校验工具

package job

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/ZSC714725/audiovalidator/internal/pipeline"
)

// State of a validation job
type State string

const (
	StateRunning  State = "running"
	StateDone     State = "done"
	StateFailed   State = "failed"
	StateCanceled State = "canceled"
)

// Job is one asynchronous validation run over a directory
type Job struct {
	ID        string
	Project   string
	Dir       string
	CreatedAt int64

	mu        sync.RWMutex
	updatedAt int64
	state     State
	done      int
	total     int
	results   []pipeline.FileResult
	stats     pipeline.RunStats
	errMsg    string

	cancel   context.CancelFunc
	finished chan struct{}
}

// State returns the current run state
func (j *Job) State() State {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.state
}

// Progress returns processed and total file counts
func (j *Job) Progress() (done, total int) {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.done, j.total
}

// Stats returns the run summary, zero until the job finished
func (j *Job) Stats() pipeline.RunStats {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.stats
}

// Results returns per-file results, nil until the job finished
func (j *Job) Results() []pipeline.FileResult {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.results
}

// ErrMessage returns the failure reason for StateFailed jobs
func (j *Job) ErrMessage() string {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.errMsg
}

// UpdatedAt returns the unix time of the last state or progress change
func (j *Job) UpdatedAt() int64 {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.updatedAt
}

// IsRunning returns whether the job is still processing files
func (j *Job) IsRunning() bool {
	return j.State() == StateRunning
}

// Done returns a channel closed when the job leaves StateRunning
func (j *Job) Done() <-chan struct{} {
	return j.finished
}

func (j *Job) setProgress(done, total int) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.done = done
	j.total = total
	j.updatedAt = time.Now().Unix()
}

func (j *Job) finish(results []pipeline.FileResult, stats pipeline.RunStats, err error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.results = results
	j.stats = stats
	j.updatedAt = time.Now().Unix()
	switch {
	case errors.Is(err, context.Canceled):
		j.state = StateCanceled
	case err != nil:
		j.state = StateFailed
		j.errMsg = err.Error()
	default:
		j.state = StateDone
	}
	close(j.finished)
}
