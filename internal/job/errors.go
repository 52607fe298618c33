// Copyright (c) 2026 Kevin Zang (kevinzang). All rights reserved.
// Use of this source code is governed by the MIT License.
//
// AudioValidator - 音频提交文件校验工具

package job

import "errors"

var (
	ErrNotFound       = errors.New("job not found")
	ErrUnknownProject = errors.New("unknown project")
	ErrInvalidDir     = errors.New("invalid directory: not found or not a directory")
	ErrNotRunning     = errors.New("job is not running")
)
