// Copyright (c) 2026 Kevin Zang (kevinzang). All rights reserved.
// Use of this source code is governed by the MIT License.
//
// AudioValidator - 音频提交文件校验工具

package api

import (
	"github.com/ZSC714725/audiovalidator/internal/criteria"
	"github.com/ZSC714725/audiovalidator/internal/naming"
	"github.com/ZSC714725/audiovalidator/internal/pipeline"
)

// ProjectInfo describes one configured project
type ProjectInfo struct {
	Name         string            `json:"name"`
	FilenameMode string            `json:"filename_mode"`
	Criteria     criteria.Criteria `json:"criteria"`
}

// DatasetInfo summarizes a project's loaded reference data
type DatasetInfo struct {
	Languages         []string `json:"languages,omitempty"`
	LanguageCount     int      `json:"language_count,omitempty"`
	ConversationCount int      `json:"conversation_count,omitempty"`
	PairCount         int      `json:"pair_count,omitempty"`
	ScriptCount       int      `json:"script_count,omitempty"`
	SpeakerID         string   `json:"speaker_id,omitempty"`
}

// ValidateRequest checks a single filename, optionally with measured
// audio properties
type ValidateRequest struct {
	Filename   string               `json:"filename" binding:"required"`
	Properties *criteria.Properties `json:"properties"`
}

// ValidateResponse for single-filename checks
type ValidateResponse struct {
	Filename string           `json:"filename"`
	Verdict  *naming.Verdict  `json:"filename_verdict,omitempty"`
	Criteria *criteria.Result `json:"criteria,omitempty"`
	Overall  criteria.Status  `json:"overall"`
}

// JobRequest starts a validation run over a directory
type JobRequest struct {
	Project string `json:"project" binding:"required"`
	Dir     string `json:"dir" binding:"required"`
}

// JobInfo represents a job in API responses
type JobInfo struct {
	ID        string     `json:"id"`
	Project   string     `json:"project"`
	Dir       string     `json:"dir"`
	CreatedAt int64      `json:"created_at"`
	UpdatedAt int64      `json:"updated_at"`
	State     *JobState  `json:"state,omitempty"`
	Report    *JobReport `json:"report,omitempty"`
}

// JobState for API
type JobState struct {
	State  string  `json:"state"`
	Done   int     `json:"done"`
	Total  int     `json:"total"`
	Memory uint64  `json:"memory_bytes"`
	CPU    float64 `json:"cpu_usage"`
	Error  string  `json:"error,omitempty"`
}

// JobReport carries the per-file results of a finished job
type JobReport struct {
	Stats   pipeline.RunStats     `json:"stats"`
	Results []pipeline.FileResult `json:"results"`
}

// CommandRequest for cancel
type CommandRequest struct {
	Command string `json:"command" binding:"required"`
}

// ErrorResponse for API errors
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}
