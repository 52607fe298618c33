// Copyright (c) 2026 Kevin Zang (kevinzang). All rights reserved.
// Use of this source code is governed by the MIT License.
//
// AudioValidator - 音频提交文件校验工具

package refdata

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

// Dataset 参考数据集：语言、会话 ID、贡献者配对
// Dataset holds the reference data conversational filenames are checked
// against. It is immutable after construction and safe for concurrent reads.
type Dataset struct {
	languages     map[string]struct{}
	conversations map[string]map[string]struct{}
	pairs         map[pairKey]struct{}
}

// pairKey is an order-independent contributor pair.
type pairKey [2]string

func newPairKey(a, b string) pairKey {
	if b < a {
		a, b = b, a
	}
	return pairKey{a, b}
}

// fileFormat is the on-disk JSON shape.
type fileFormat struct {
	LanguageCodes           []string            `json:"languageCodes"`
	ConversationsByLanguage map[string][]string `json:"conversationsByLanguage"`
	ContributorPairs        [][]string          `json:"contributorPairs"`
}

// New builds a dataset from raw collections. Every contributor pair must
// contain exactly two non-empty IDs.
func New(languages []string, conversations map[string][]string, pairs [][]string) (*Dataset, error) {
	d := &Dataset{
		languages:     make(map[string]struct{}, len(languages)),
		conversations: make(map[string]map[string]struct{}, len(conversations)),
		pairs:         make(map[pairKey]struct{}, len(pairs)),
	}

	for _, code := range languages {
		d.languages[code] = struct{}{}
	}

	for lang, ids := range conversations {
		set := make(map[string]struct{}, len(ids))
		for _, id := range ids {
			set[id] = struct{}{}
		}
		d.conversations[lang] = set
	}

	for i, p := range pairs {
		if len(p) != 2 || p[0] == "" || p[1] == "" {
			return nil, fmt.Errorf("contributor pair %d: expected two non-empty IDs, got %v", i, p)
		}
		d.pairs[newPairKey(p[0], p[1])] = struct{}{}
	}

	return d, nil
}

// Load 从 JSON 文件加载数据集
func Load(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}

	var f fileFormat
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse dataset: %w", err)
	}

	d, err := New(f.LanguageCodes, f.ConversationsByLanguage, f.ContributorPairs)
	if err != nil {
		return nil, fmt.Errorf("dataset %s: %w", path, err)
	}
	return d, nil
}

// HasLanguage reports whether code is a known language code. Case sensitive.
func (d *Dataset) HasLanguage(code string) bool {
	_, ok := d.languages[code]
	return ok
}

// HasConversation reports whether id is a known conversation ID for the
// given language. An unknown language has an empty conversation set.
func (d *Dataset) HasConversation(lang, id string) bool {
	set, ok := d.conversations[lang]
	if !ok {
		return false
	}
	_, ok = set[id]
	return ok
}

// HasContributorPair reports whether the two contributor IDs form an approved
// pairing, in either order.
func (d *Dataset) HasContributorPair(a, b string) bool {
	_, ok := d.pairs[newPairKey(a, b)]
	return ok
}

// Languages returns the known language codes, sorted.
func (d *Dataset) Languages() []string {
	out := make([]string, 0, len(d.languages))
	for code := range d.languages {
		out = append(out, code)
	}
	sort.Strings(out)
	return out
}

// Counts returns the number of languages, conversation IDs (across all
// languages) and contributor pairs.
func (d *Dataset) Counts() (languages, conversations, pairs int) {
	languages = len(d.languages)
	for _, set := range d.conversations {
		conversations += len(set)
	}
	pairs = len(d.pairs)
	return
}
