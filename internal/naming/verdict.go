// Copyright (c) 2026 Kevin Zang (kevinzang). All rights reserved.
// Use of this source code is governed by the MIT License.
//
// AudioValidator - 音频提交文件校验工具
//
// Package naming validates submission filenames against the project naming
// grammars and reports every problem found, not just the first.

package naming

// Status is the outcome of a filename check.
type Status string

const (
	StatusPass Status = "pass"
	StatusFail Status = "fail"
)

// ExpectedFormatUnavailable is reported when no concrete expected filename
// can be derived from the input.
const ExpectedFormatUnavailable = "N/A"

const (
	regularTemplate     = "<conversation_id>-<language_code>-user-<user_id>-agent-<agent_id>.wav"
	spontaneousTemplate = "SPONTANEOUS_<number>-<language_code>-user-<user_id>-agent-<agent_id>.wav"
)

// Verdict 文件名校验结果
// Verdict is the result of validating one filename. Issues holds every
// distinct problem found; it is empty exactly when Status is pass.
// IsSpontaneous is set only by the conversational validator.
type Verdict struct {
	Status         Status   `json:"status"`
	ExpectedFormat string   `json:"expected_format"`
	Issues         []string `json:"issues"`
	IsSpontaneous  *bool    `json:"is_spontaneous,omitempty"`
}
