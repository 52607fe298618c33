// Copyright (c) 2026 Kevin Zang (kevinzang). All rights reserved.
// Use of this source code is governed by the MIT License.
//
// AudioValidator - 音频提交文件校验工具

package scripts

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ListBaseNames returns the extension-stripped names of the regular files in
// a script directory, deduplicated and sorted. Subdirectories and dotfiles
// are skipped.
func ListBaseNames(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read script dir: %w", err)
	}

	seen := make(map[string]struct{}, len(entries))
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		base := strings.TrimSuffix(name, filepath.Ext(name))
		if base == "" {
			continue
		}
		if _, ok := seen[base]; ok {
			continue
		}
		seen[base] = struct{}{}
		names = append(names, base)
	}

	sort.Strings(names)
	return names, nil
}
