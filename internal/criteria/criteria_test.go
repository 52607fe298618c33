// Copyright (c) 2026 Kevin Zang (kevinzang). All rights reserved.
// Use of this source code is governed by the MIT License.
//
// AudioValidator - 音频提交文件校验工具

package criteria

import (
	"strings"
	"testing"
)

func TestCombine(t *testing.T) {
	cases := []struct {
		name     string
		statuses []Status
		want     Status
	}{
		{"empty", nil, StatusPass},
		{"all pass", []Status{StatusPass, StatusPass}, StatusPass},
		{"warning wins over pass", []Status{StatusPass, StatusWarning, StatusPass}, StatusWarning},
		{"fail wins over warning", []Status{StatusWarning, StatusFail, StatusPass}, StatusFail},
		{"single fail", []Status{StatusFail}, StatusFail},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Combine(tc.statuses...); got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	full := Criteria{
		FileTypes:   []string{"wav"},
		SampleRates: []int{8000, 16000},
		BitDepths:   []int{16},
		Channels:    []int{1},
		MinDuration: 2,
	}

	good := &Properties{
		FileType: "wav", SampleRate: 16000, BitDepth: 16, Channels: 1, Duration: 5,
	}

	cases := []struct {
		name     string
		props    *Properties
		criteria Criteria

		wantOverall   Status
		wantFragments []string // each must appear in some check message
	}{
		{
			name: "all pass", props: good, criteria: full,
			wantOverall: StatusPass,
		},
		{
			name: "empty criteria pass anything", props: &Properties{FileType: "mp3"}, criteria: Criteria{},
			wantOverall: StatusPass,
		},
		{
			name: "file type case insensitive", props: &Properties{FileType: "WAV", SampleRate: 8000, BitDepth: 16, Channels: 1, Duration: 3},
			criteria: full, wantOverall: StatusPass,
		},
		{
			name: "wrong sample rate", criteria: full,
			props:         &Properties{FileType: "wav", SampleRate: 44100, BitDepth: 16, Channels: 1, Duration: 5},
			wantOverall:   StatusFail,
			wantFragments: []string{"Sample rate 44100 not accepted (want 8000, 16000)"},
		},
		{
			name: "wrong file type", criteria: full,
			props:         &Properties{FileType: "mp3", SampleRate: 16000, BitDepth: 16, Channels: 1, Duration: 5},
			wantOverall:   StatusFail,
			wantFragments: []string{"File type 'mp3' not accepted (want wav)"},
		},
		{
			name: "too short", criteria: full,
			props:         &Properties{FileType: "wav", SampleRate: 16000, BitDepth: 16, Channels: 1, Duration: 1.5},
			wantOverall:   StatusFail,
			wantFragments: []string{"Duration 1.50s below minimum 2.00s"},
		},
		{
			name: "unknown values warn", criteria: full,
			props:       &Properties{FileType: "wav"},
			wantOverall: StatusWarning,
			wantFragments: []string{
				"Sample rate could not be determined",
				"Bit depth could not be determined",
				"Channel count could not be determined",
				"Duration could not be determined",
			},
		},
		{
			name: "nil properties warn on every configured check", criteria: full,
			props:         nil,
			wantOverall:   StatusWarning,
			wantFragments: []string{"File type could not be determined"},
		},
		{
			name: "nil properties with empty criteria pass", criteria: Criteria{},
			props:       nil,
			wantOverall: StatusPass,
		},
		{
			name: "fail beats warning", criteria: full,
			props:       &Properties{FileType: "mp3"},
			wantOverall: StatusFail,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Validate(tc.props, tc.criteria)

			if got.Overall != tc.wantOverall {
				t.Errorf("overall: got %q, want %q (%+v)", got.Overall, tc.wantOverall, got)
			}
			for _, frag := range tc.wantFragments {
				if !resultContains(got, frag) {
					t.Errorf("missing message %q in %+v", frag, got)
				}
			}
		})
	}
}

func resultContains(r Result, fragment string) bool {
	for _, check := range []Check{r.FileType, r.SampleRate, r.BitDepth, r.Channels, r.Duration} {
		if strings.Contains(check.Message, fragment) {
			return true
		}
	}
	return false
}

func TestValidatePassChecksHaveNoMessage(t *testing.T) {
	r := Validate(&Properties{FileType: "wav", SampleRate: 16000, BitDepth: 16, Channels: 1, Duration: 10}, Criteria{
		FileTypes: []string{"wav"}, SampleRates: []int{16000}, BitDepths: []int{16}, Channels: []int{1}, MinDuration: 1,
	})
	for _, check := range []Check{r.FileType, r.SampleRate, r.BitDepth, r.Channels, r.Duration} {
		if check.Status != StatusPass {
			t.Errorf("status: got %q, want pass", check.Status)
		}
		if check.Message != "" {
			t.Errorf("pass check carries message %q", check.Message)
		}
	}
}
