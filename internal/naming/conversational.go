// Copyright (c) 2026 Kevin Zang (kevinzang). All rights reserved.
// Use of this source code is governed by the MIT License.
//
// AudioValidator - 音频提交文件校验工具

package naming

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ZSC714725/audiovalidator/internal/refdata"
)

// Grammar identifies which conversational naming grammar applies to a
// filename.
type Grammar string

const (
	GrammarRegular     Grammar = "regular"
	GrammarSpontaneous Grammar = "spontaneous"
)

const spontaneousPrefix = "SPONTANEOUS_"

var (
	whitespaceRe = regexp.MustCompile(`\s`)
	wavExtRe     = regexp.MustCompile(`(?i)\.wav$`)
	extraExtRe   = regexp.MustCompile(`\.\w+$`)
	anyExtRe     = regexp.MustCompile(`\.[^.]+$`)

	// Conversation IDs may contain dashes, so the conversation group is
	// greedy and the language code is the last token before the fixed
	// -user-...-agent-... tail.
	regularRe = regexp.MustCompile(`^(.+)-([^-]+)-user-([^-]+)-agent-([^-]+)$`)

	// Case-insensitive so a miscased prefix still yields field checks; the
	// exact-case check reports the miscasing separately.
	spontaneousRe = regexp.MustCompile(`(?i)^SPONTANEOUS_([0-9]+)-(.+)$`)
)

// DetectGrammar picks the grammar for a base name. Any name that starts with
// SPONTANEOUS_ in any casing belongs to the spontaneous grammar.
func DetectGrammar(baseName string) Grammar {
	if len(baseName) >= len(spontaneousPrefix) &&
		strings.EqualFold(baseName[:len(spontaneousPrefix)], spontaneousPrefix) {
		return GrammarSpontaneous
	}
	return GrammarRegular
}

// ValidateConversational checks a filename against the conversational naming
// grammars using the reference dataset. The input is not auto-trimmed: stray
// whitespace is reported as an issue, and the remaining checks run on the
// trimmed copy so one stray space does not cascade into bogus field issues.
func ValidateConversational(filename string, ds *refdata.Dataset) Verdict {
	var issues []string
	add := func(format string, args ...interface{}) {
		issues = append(issues, fmt.Sprintf(format, args...))
	}

	trimmed := strings.TrimSpace(filename)
	if filename != trimmed {
		add("Leading or trailing whitespace present")
	}
	if whitespaceRe.MatchString(filename) {
		add("Filename contains whitespace characters")
	}

	if !wavExtRe.MatchString(trimmed) {
		add("Filename must end with .wav extension")
	} else if extraExtRe.MatchString(wavExtRe.ReplaceAllString(trimmed, "")) {
		add("Filename has multiple extensions")
	}

	// 去掉一层扩展名再分发语法
	base := anyExtRe.ReplaceAllString(trimmed, "")

	if DetectGrammar(base) == GrammarSpontaneous {
		return validateSpontaneous(base, ds, issues)
	}
	return validateRegular(base, ds, issues)
}

func validateRegular(base string, ds *refdata.Dataset, issues []string) Verdict {
	spontaneous := false
	add := func(format string, args ...interface{}) {
		issues = append(issues, fmt.Sprintf(format, args...))
	}

	if base != strings.ToLower(base) {
		add("Filename must be all lowercase")
	}
	// Field checks continue on the lowered copy so casing alone does not
	// block them.
	lowered := strings.ToLower(base)

	m := regularRe.FindStringSubmatch(lowered)
	if m == nil {
		add("Invalid format: expected %s", regularTemplate)
		return Verdict{Status: StatusFail, ExpectedFormat: regularTemplate, Issues: issues, IsSpontaneous: &spontaneous}
	}

	conversation, lang, userID, agentID := m[1], m[2], m[3], m[4]

	if !ds.HasLanguage(lang) {
		add("Invalid language code: '%s'", lang)
	} else if !ds.HasConversation(lang, conversation) {
		// An invalid language has no conversation set, so the lookup is
		// skipped rather than reported as a second failure.
		add("Invalid conversation ID '%s' for language '%s'", conversation, lang)
	}

	if !ds.HasContributorPair(userID, agentID) {
		add("Invalid contributor pair: user '%s', agent '%s'", userID, agentID)
	}

	if len(issues) > 0 {
		return Verdict{Status: StatusFail, ExpectedFormat: regularTemplate, Issues: issues, IsSpontaneous: &spontaneous}
	}

	canonical := conversation + "-" + lang + "-user-" + userID + "-agent-" + agentID + ".wav"
	return Verdict{Status: StatusPass, ExpectedFormat: canonical, Issues: []string{}, IsSpontaneous: &spontaneous}
}

func validateSpontaneous(base string, ds *refdata.Dataset, issues []string) Verdict {
	spontaneous := true
	add := func(format string, args ...interface{}) {
		issues = append(issues, fmt.Sprintf(format, args...))
	}

	if !strings.HasPrefix(base, spontaneousPrefix) {
		add("Filename must start with SPONTANEOUS_ (all caps)")
	}

	m := spontaneousRe.FindStringSubmatch(base)
	if m == nil {
		add("Invalid format: expected %s", spontaneousTemplate)
		return Verdict{Status: StatusFail, ExpectedFormat: spontaneousTemplate, Issues: issues, IsSpontaneous: &spontaneous}
	}

	number, tail := m[1], m[2]

	if tail != strings.ToLower(tail) {
		add("Text after SPONTANEOUS_<number>- must be lowercase")
	}

	fields := strings.Split(strings.ToLower(tail), "-")
	if len(fields) != 5 {
		add("Expected 5 fields after SPONTANEOUS_<number>-, found %d", len(fields))
		return Verdict{Status: StatusFail, ExpectedFormat: spontaneousTemplate, Issues: issues, IsSpontaneous: &spontaneous}
	}

	lang, userLabel, userID, agentLabel, agentID := fields[0], fields[1], fields[2], fields[3], fields[4]

	if userLabel != "user" {
		add("Expected 'user' label, found '%s'", userLabel)
	}
	if agentLabel != "agent" {
		add("Expected 'agent' label, found '%s'", agentLabel)
	}

	if !ds.HasLanguage(lang) {
		add("Invalid language code: '%s'", lang)
	}

	if !ds.HasContributorPair(userID, agentID) {
		add("Invalid contributor pair: user '%s', agent '%s'", userID, agentID)
	}

	if len(issues) > 0 {
		return Verdict{Status: StatusFail, ExpectedFormat: spontaneousTemplate, Issues: issues, IsSpontaneous: &spontaneous}
	}

	canonical := spontaneousPrefix + number + "-" + lang + "-user-" + userID + "-agent-" + agentID + ".wav"
	return Verdict{Status: StatusPass, ExpectedFormat: canonical, Issues: []string{}, IsSpontaneous: &spontaneous}
}
