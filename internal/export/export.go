// Copyright (c) 2026 Kevin Zang (kevinzang). All rights reserved.
// Use of this source code is governed by the MIT License.
//
// AudioValidator - 音频提交文件校验工具

// Package export renders validation results as CSV or JSON reports.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/ZSC714725/audiovalidator/internal/pipeline"
)

// Report formats accepted by the export endpoints.
const (
	FormatCSV  = "csv"
	FormatJSON = "json"
)

var csvHeader = []string{
	"filename",
	"overall",
	"file_type",
	"sample_rate",
	"bit_depth",
	"channels",
	"duration_seconds",
	"size_bytes",
	"filename_status",
	"expected_format",
	"issues",
	"probe_error",
}

// WriteCSV writes one row per file. Undetermined audio properties are
// left as empty cells rather than zeroes.
func WriteCSV(w io.Writer, results []pipeline.FileResult) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, r := range results {
		if err := cw.Write(csvRow(r)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func csvRow(r pipeline.FileResult) []string {
	row := []string{
		r.Filename,
		string(r.Overall),
		"", "", "", "", "", // 音频属性占位
		strconv.FormatInt(r.SizeBytes, 10),
		"", "",
		"",
		r.ProbeError,
	}
	if p := r.Properties; p != nil {
		row[2] = p.FileType
		if p.SampleRate > 0 {
			row[3] = strconv.Itoa(p.SampleRate)
		}
		if p.BitDepth > 0 {
			row[4] = strconv.Itoa(p.BitDepth)
		}
		if p.Channels > 0 {
			row[5] = strconv.Itoa(p.Channels)
		}
		if p.Duration > 0 {
			row[6] = strconv.FormatFloat(p.Duration, 'f', 2, 64)
		}
	}
	if v := r.Verdict; v != nil {
		row[8] = string(v.Status)
		row[9] = v.ExpectedFormat
		row[10] = strings.Join(v.Issues, "; ")
	}
	return row
}

// Report is the JSON export document.
type Report struct {
	GeneratedAt string                `json:"generated_at"`
	Project     string                `json:"project"`
	Stats       pipeline.RunStats     `json:"stats"`
	Results     []pipeline.FileResult `json:"results"`
}

// WriteJSON writes an indented report document.
func WriteJSON(w io.Writer, project string, results []pipeline.FileResult, stats pipeline.RunStats) error {
	report := Report{
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Project:     project,
		Stats:       stats,
		Results:     results,
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

// Write dispatches on format.
func Write(w io.Writer, format, project string, results []pipeline.FileResult, stats pipeline.RunStats) error {
	switch format {
	case FormatCSV:
		return WriteCSV(w, results)
	case FormatJSON:
		return WriteJSON(w, project, results, stats)
	default:
		return fmt.Errorf("unknown export format %q", format)
	}
}
