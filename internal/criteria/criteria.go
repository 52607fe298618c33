// Copyright (c) 2026 Kevin Zang (kevinzang). All rights reserved.
// Use of this source code is governed by the MIT License.
//
// AudioValidator - 音频提交文件校验工具

package criteria

import (
	"fmt"
	"strconv"
	"strings"
)

// Status is the outcome of a criterion check.
type Status string

const (
	StatusPass    Status = "pass"
	StatusWarning Status = "warning"
	StatusFail    Status = "fail"
)

// Combine returns the worst of the given statuses, with precedence
// fail > warning > pass. No statuses combine to pass.
func Combine(statuses ...Status) Status {
	out := StatusPass
	for _, s := range statuses {
		switch s {
		case StatusFail:
			return StatusFail
		case StatusWarning:
			out = StatusWarning
		}
	}
	return out
}

// Criteria 项目验收规则，空字段不检查
// Criteria holds a project's technical acceptance rules. An empty list or a
// zero minimum means that property is not checked.
type Criteria struct {
	FileTypes   []string `yaml:"file_types" json:"file_types,omitempty"`
	SampleRates []int    `yaml:"sample_rates" json:"sample_rates,omitempty"`
	BitDepths   []int    `yaml:"bit_depths" json:"bit_depths,omitempty"`
	Channels    []int    `yaml:"channels" json:"channels,omitempty"`
	MinDuration float64  `yaml:"min_duration_seconds" json:"min_duration_seconds,omitempty"`
}

// Properties are the measured audio properties of one file. Zero values mean
// the property could not be determined.
type Properties struct {
	FileType   string  `json:"file_type"`
	SampleRate int     `json:"sample_rate"`
	BitDepth   int     `json:"bit_depth"`
	Channels   int     `json:"channels"`
	Duration   float64 `json:"duration_seconds"`
	SizeBytes  int64   `json:"size_bytes"`
}

// Check is the outcome of a single criterion.
type Check struct {
	Status  Status `json:"status"`
	Message string `json:"message,omitempty"`
}

// Result holds the per-criterion checks for one file.
type Result struct {
	FileType   Check  `json:"file_type"`
	SampleRate Check  `json:"sample_rate"`
	BitDepth   Check  `json:"bit_depth"`
	Channels   Check  `json:"channels"`
	Duration   Check  `json:"duration"`
	Overall    Status `json:"overall"`
}

// Validate checks the measured properties against the criteria. Unchecked
// criteria pass; a configured criterion whose property could not be measured
// is a warning; a mismatch is a failure. A nil props means nothing could be
// measured at all.
func Validate(props *Properties, c Criteria) Result {
	var r Result

	r.FileType = checkString("File type", propFileType(props), c.FileTypes)
	r.SampleRate = checkInt("Sample rate", propInt(props, func(p *Properties) int { return p.SampleRate }), c.SampleRates)
	r.BitDepth = checkInt("Bit depth", propInt(props, func(p *Properties) int { return p.BitDepth }), c.BitDepths)
	r.Channels = checkInt("Channel count", propInt(props, func(p *Properties) int { return p.Channels }), c.Channels)
	r.Duration = checkDuration(props, c.MinDuration)

	r.Overall = Combine(r.FileType.Status, r.SampleRate.Status, r.BitDepth.Status, r.Channels.Status, r.Duration.Status)
	return r
}

func propFileType(p *Properties) string {
	if p == nil {
		return ""
	}
	return p.FileType
}

func propInt(p *Properties, get func(*Properties) int) int {
	if p == nil {
		return 0
	}
	return get(p)
}

func checkString(label, got string, want []string) Check {
	if len(want) == 0 {
		return Check{Status: StatusPass}
	}
	if got == "" {
		return Check{Status: StatusWarning, Message: label + " could not be determined"}
	}
	for _, w := range want {
		if strings.EqualFold(got, w) {
			return Check{Status: StatusPass}
		}
	}
	return Check{
		Status:  StatusFail,
		Message: fmt.Sprintf("%s '%s' not accepted (want %s)", label, got, strings.Join(want, ", ")),
	}
}

func checkInt(label string, got int, want []int) Check {
	if len(want) == 0 {
		return Check{Status: StatusPass}
	}
	if got == 0 {
		return Check{Status: StatusWarning, Message: label + " could not be determined"}
	}
	for _, w := range want {
		if got == w {
			return Check{Status: StatusPass}
		}
	}
	return Check{
		Status:  StatusFail,
		Message: fmt.Sprintf("%s %d not accepted (want %s)", label, got, joinInts(want)),
	}
}

func checkDuration(p *Properties, min float64) Check {
	if min <= 0 {
		return Check{Status: StatusPass}
	}
	if p == nil || p.Duration <= 0 {
		return Check{Status: StatusWarning, Message: "Duration could not be determined"}
	}
	if p.Duration < min {
		return Check{
			Status:  StatusFail,
			Message: fmt.Sprintf("Duration %.2fs below minimum %.2fs", p.Duration, min),
		}
	}
	return Check{Status: StatusPass}
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ", ")
}
