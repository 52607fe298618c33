// Copyright (c) 2026 Kevin Zang (kevinzang). All rights reserved.
// Use of this source code is governed by the MIT License.
//
// AudioValidator - 音频提交文件校验工具

package job

import (
	"context"
	"os"
	"sync"
	"time"

	"github.com/ZSC714725/audiovalidator/internal/logger"
	"github.com/ZSC714725/audiovalidator/internal/pipeline"
	"github.com/ZSC714725/audiovalidator/internal/project"
	"github.com/ZSC714725/audiovalidator/internal/sysload"

	"github.com/lithammer/shortuuid/v4"
)

// Store manages validation jobs in memory
type Store interface {
	Add(projectName, dir string) (*Job, error)
	Get(id string) (*Job, error)
	List(ids []string, projectName string) []*Job
	Cancel(id string) error
	Delete(id string) error
	Usage() (cpu float64, memory uint64)
}

type store struct {
	registry *project.Registry
	logger   logger.Logger
	sampler  sysload.Sampler
	workers  int
	jobs     map[string]*Job
	running  int
	mu       sync.RWMutex
}

// NewStore creates a job store. The sampler watches this process while
// jobs run; a sampler that cannot attach only disables usage reporting.
func NewStore(reg *project.Registry, workers int, sampler sysload.Sampler, log logger.Logger) Store {
	// Probe once so a broken sampler is swapped out up front.
	if err := sampler.Start(os.Getpid()); err != nil {
		log.Debug("load sampler unavailable: %v", err)
		sampler = sysload.NewNullSampler()
	} else {
		sampler.Stop()
	}
	return &store{
		registry: reg,
		logger:   log,
		sampler:  sampler,
		workers:  workers,
		jobs:     make(map[string]*Job),
	}
}

func (s *store) Add(projectName, dir string) (*Job, error) {
	proj, err := s.registry.Get(projectName)
	if err != nil {
		return nil, ErrUnknownProject
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil, ErrInvalidDir
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().Unix()
	ctx, cancel := context.WithCancel(context.Background())
	j := &Job{
		ID:        shortuuid.New(),
		Project:   projectName,
		Dir:       dir,
		CreatedAt: now,
		updatedAt: now,
		state:     StateRunning,
		cancel:    cancel,
		finished:  make(chan struct{}),
	}
	s.jobs[j.ID] = j

	s.running++
	if s.running == 1 {
		if err := s.sampler.Start(os.Getpid()); err != nil {
			s.logger.Debug("load sampler: %v", err)
		}
	}

	s.logger.Info("job %s started: project %s, dir %s", j.ID, projectName, dir)
	go s.run(ctx, j, proj)

	return j, nil
}

func (s *store) run(ctx context.Context, j *Job, proj *project.Project) {
	results, stats, err := pipeline.Run(ctx, proj, j.Dir, s.workers, s.logger, j.setProgress)
	// Release the sampler before the job is observable as finished.
	s.release()
	j.finish(results, stats, err)
	if err != nil {
		s.logger.Error("job %s %s: %v", j.ID, j.State(), err)
		return
	}
	s.logger.Info("job %s done: %d files, %d passed, %d warnings, %d failed",
		j.ID, stats.Total, stats.Passed, stats.Warnings, stats.Failed)
}

func (s *store) Get(id string) (*Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	j, ok := s.jobs[id]
	if !ok {
		return nil, ErrNotFound
	}
	return j, nil
}

func (s *store) List(ids []string, projectName string) []*Job {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*Job
	for _, j := range s.jobs {
		if len(projectName) > 0 && j.Project != projectName {
			continue
		}
		if len(ids) > 0 {
			found := false
			for _, id := range ids {
				if j.ID == id {
					found = true
					break
				}
			}
			if !found {
				continue
			}
		}
		out = append(out, j)
	}
	return out
}

func (s *store) Cancel(id string) error {
	j, err := s.Get(id)
	if err != nil {
		return err
	}
	if !j.IsRunning() {
		return ErrNotRunning
	}
	j.cancel()
	return nil
}

func (s *store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	j, ok := s.jobs[id]
	if !ok {
		return ErrNotFound
	}

	j.cancel()
	delete(s.jobs, id)
	return nil
}

func (s *store) release() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.running--
	if s.running == 0 {
		s.sampler.Stop()
	}
}

func (s *store) Usage() (cpu float64, memory uint64) {
	return s.sampler.Current()
}
