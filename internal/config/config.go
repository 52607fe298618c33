// Copyright (c) 2026 Kevin Zang (kevinzang). All rights reserved.
// Use of this source code is governed by the MIT License.
//
// AudioValidator - 音频提交文件校验工具

package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ZSC714725/audiovalidator/internal/criteria"
)

// FilenameMode selects which naming grammar a project enforces.
type FilenameMode string

const (
	// ModeNone disables filename checks; only criteria apply.
	ModeNone FilenameMode = "none"
	// ModeScript checks <script_base_name>_<speaker_id>.wav names.
	ModeScript FilenameMode = "script"
	// ModeConversational checks conversational-pair names against a dataset.
	ModeConversational FilenameMode = "conversational"
)

// Config 应用配置
type Config struct {
	Server   ServerConfig    `yaml:"server"`
	Jobs     JobsConfig      `yaml:"jobs"`
	Projects []ProjectConfig `yaml:"projects"`
}

// ServerConfig 服务配置
type ServerConfig struct {
	Bind string `yaml:"bind"`
}

// JobsConfig 批量任务配置
type JobsConfig struct {
	Workers int `yaml:"workers"`
}

// ProjectConfig holds one project's acceptance rules.
type ProjectConfig struct {
	Name     string            `yaml:"name"`
	Criteria criteria.Criteria `yaml:"criteria"`
	Filename FilenameConfig    `yaml:"filename"`
}

// FilenameConfig selects and parameterises the filename grammar.
type FilenameConfig struct {
	Mode      FilenameMode `yaml:"mode"`
	Dataset   string       `yaml:"dataset"`    // JSON reference dataset, conversational mode
	ScriptDir string       `yaml:"script_dir"` // script directory, script mode
	SpeakerID string       `yaml:"speaker_id"` // expected speaker, script mode
}

// Default 返回默认配置
func Default() *Config {
	return &Config{
		Server: ServerConfig{Bind: ":8080"},
		Jobs:   JobsConfig{Workers: 4},
	}
}

// Load 从 YAML 文件加载配置
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	// 填充空值
	if cfg.Server.Bind == "" {
		cfg.Server.Bind = ":8080"
	}
	if cfg.Jobs.Workers <= 0 {
		cfg.Jobs.Workers = 4
	}
	for i := range cfg.Projects {
		if cfg.Projects[i].Filename.Mode == "" {
			cfg.Projects[i].Filename.Mode = ModeNone
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks project entries for consistency.
func (c *Config) Validate() error {
	seen := make(map[string]struct{}, len(c.Projects))
	for i, p := range c.Projects {
		if p.Name == "" {
			return fmt.Errorf("project %d: name required", i)
		}
		if _, ok := seen[p.Name]; ok {
			return fmt.Errorf("project %s: duplicate name", p.Name)
		}
		seen[p.Name] = struct{}{}

		switch p.Filename.Mode {
		case ModeNone:
		case ModeScript:
			if p.Filename.ScriptDir == "" {
				return fmt.Errorf("project %s: script mode requires script_dir", p.Name)
			}
			if p.Filename.SpeakerID == "" {
				return fmt.Errorf("project %s: script mode requires speaker_id", p.Name)
			}
		case ModeConversational:
			if p.Filename.Dataset == "" {
				return fmt.Errorf("project %s: conversational mode requires dataset", p.Name)
			}
		default:
			return fmt.Errorf("project %s: unknown filename mode %q", p.Name, p.Filename.Mode)
		}
	}
	return nil
}
