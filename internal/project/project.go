// Copyright (c) 2026 Kevin Zang (kevinzang). All rights reserved.
// Use of this source code is governed by the MIT License.
//
// AudioValidator - 音频提交文件校验工具

package project

import (
	"fmt"
	"sync"

	"github.com/ZSC714725/audiovalidator/internal/config"
	"github.com/ZSC714725/audiovalidator/internal/criteria"
	"github.com/ZSC714725/audiovalidator/internal/naming"
	"github.com/ZSC714725/audiovalidator/internal/refdata"
	"github.com/ZSC714725/audiovalidator/internal/scripts"
)

// Project binds one project's acceptance rules to its loaded reference data.
// Reference data is swapped atomically on reload; validations always see a
// consistent snapshot.
type Project struct {
	name      string
	criteria  criteria.Criteria
	mode      config.FilenameMode
	dataset   string
	scriptDir string
	speakerID string

	refLock sync.RWMutex
	ds      *refdata.Dataset
	scripts []string
}

// New creates a project and loads its reference data.
func New(cfg config.ProjectConfig) (*Project, error) {
	p := &Project{
		name:      cfg.Name,
		criteria:  cfg.Criteria,
		mode:      cfg.Filename.Mode,
		dataset:   cfg.Filename.Dataset,
		scriptDir: cfg.Filename.ScriptDir,
		speakerID: cfg.Filename.SpeakerID,
	}
	if err := p.Reload(); err != nil {
		return nil, err
	}
	return p, nil
}

// Reload re-reads the reference data from disk and swaps the snapshot.
func (p *Project) Reload() error {
	switch p.mode {
	case config.ModeConversational:
		ds, err := refdata.Load(p.dataset)
		if err != nil {
			return fmt.Errorf("project %s: %w", p.name, err)
		}
		p.refLock.Lock()
		p.ds = ds
		p.refLock.Unlock()
	case config.ModeScript:
		names, err := scripts.ListBaseNames(p.scriptDir)
		if err != nil {
			return fmt.Errorf("project %s: %w", p.name, err)
		}
		p.refLock.Lock()
		p.scripts = names
		p.refLock.Unlock()
	}
	return nil
}

// ValidateFilename runs the project's naming grammar on one filename.
// Returns nil when the project has filename checks disabled.
func (p *Project) ValidateFilename(filename string) *naming.Verdict {
	p.refLock.RLock()
	ds := p.ds
	scriptNames := p.scripts
	p.refLock.RUnlock()

	switch p.mode {
	case config.ModeConversational:
		v := naming.ValidateConversational(filename, ds)
		return &v
	case config.ModeScript:
		v := naming.ValidateScriptMatch(filename, scriptNames, p.speakerID)
		return &v
	}
	return nil
}

// Name returns the project name.
func (p *Project) Name() string { return p.name }

// Mode returns the configured filename mode.
func (p *Project) Mode() config.FilenameMode { return p.mode }

// Criteria returns the project's technical acceptance rules.
func (p *Project) Criteria() criteria.Criteria { return p.criteria }

// SpeakerID returns the expected speaker for script mode.
func (p *Project) SpeakerID() string { return p.speakerID }

// Dataset returns the current dataset snapshot, nil outside conversational
// mode.
func (p *Project) Dataset() *refdata.Dataset {
	p.refLock.RLock()
	defer p.refLock.RUnlock()
	return p.ds
}

// Scripts returns the current script base names, nil outside script mode.
// Callers must not modify the returned slice.
func (p *Project) Scripts() []string {
	p.refLock.RLock()
	defer p.refLock.RUnlock()
	return p.scripts
}
