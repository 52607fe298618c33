// Copyright (c) 2026 Kevin Zang (kevinzang). All rights reserved.
// Use of this source code is governed by the MIT License.
//
// AudioValidator - 音频提交文件校验工具

package sysload

import (
	"sync"

	gopsutilprocess "github.com/shirou/gopsutil/v3/process"
)

// procSampler 使用 gopsutil 采集进程 CPU 和内存
type procSampler struct {
	mu   sync.RWMutex
	pid  int32
	proc *gopsutilprocess.Process
}

// NewProcSampler 创建基于系统调用的采样器
func NewProcSampler() Sampler {
	return &procSampler{}
}

func (s *procSampler) Start(pid int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	proc, err := gopsutilprocess.NewProcess(int32(pid))
	if err != nil {
		return err
	}
	s.pid = int32(pid)
	s.proc = proc
	return nil
}

func (s *procSampler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pid = 0
	s.proc = nil
}

func (s *procSampler) Current() (cpu float64, memory uint64) {
	s.mu.RLock()
	proc := s.proc
	s.mu.RUnlock()
	if proc == nil {
		return 0, 0
	}
	if cpuPct, err := proc.CPUPercent(); err == nil {
		cpu = cpuPct
	}
	if memInfo, err := proc.MemoryInfo(); err == nil && memInfo != nil {
		memory = memInfo.RSS
	}
	return cpu, memory
}
