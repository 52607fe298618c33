// Copyright (c) 2026 Kevin Zang (kevinzang). All rights reserved.
// Use of this source code is governed by the MIT License.
//
// AudioValidator - 音频提交文件校验工具

package project

import (
	"errors"

	"github.com/ZSC714725/audiovalidator/internal/config"
)

var ErrNotFound = errors.New("project not found")

// Registry holds the configured projects. The set of projects is fixed at
// startup; only their reference data changes on reload.
type Registry struct {
	projects map[string]*Project
	order    []string
}

// NewRegistry creates every configured project, loading its reference data.
func NewRegistry(cfgs []config.ProjectConfig) (*Registry, error) {
	r := &Registry{projects: make(map[string]*Project, len(cfgs))}
	for _, cfg := range cfgs {
		p, err := New(cfg)
		if err != nil {
			return nil, err
		}
		r.projects[p.Name()] = p
		r.order = append(r.order, p.Name())
	}
	return r, nil
}

// Get looks up a project by name.
func (r *Registry) Get(name string) (*Project, error) {
	p, ok := r.projects[name]
	if !ok {
		return nil, ErrNotFound
	}
	return p, nil
}

// List returns the projects in configuration order.
func (r *Registry) List() []*Project {
	out := make([]*Project, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.projects[name])
	}
	return out
}

// Reload refreshes the reference data of every project. The first failure
// aborts the reload so a broken dataset does not go unnoticed.
func (r *Registry) Reload() error {
	for _, name := range r.order {
		if err := r.projects[name].Reload(); err != nil {
			return err
		}
	}
	return nil
}
