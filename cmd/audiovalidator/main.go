// Copyright (c) 2026 Kevin Zang (kevinzang). All rights reserved.
// Use of this source code is governed by the MIT License.
//
// AudioValidator - 音频提交文件校验工具

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/ZSC714725/audiovalidator/internal/config"
	"github.com/ZSC714725/audiovalidator/internal/criteria"
	"github.com/ZSC714725/audiovalidator/internal/export"
	"github.com/ZSC714725/audiovalidator/internal/logger"
	"github.com/ZSC714725/audiovalidator/internal/pipeline"
	"github.com/ZSC714725/audiovalidator/internal/project"
)

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: audiovalidator [flags] <directory>\n\n")
	flag.PrintDefaults()
}

func main() {
	configPath := flag.String("config", "", "Path to YAML config file")
	projectName := flag.String("project", "", "Project to validate against (default: first configured)")
	workers := flag.Int("workers", 0, "Validation workers (overrides config)")
	csvPath := flag.String("csv", "", "Write a CSV report to this file")
	jsonPath := flag.String("json", "", "Write a JSON report to this file")
	verbose := flag.Bool("v", false, "Verbose logging")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() != 1 {
		usage()
		os.Exit(2)
	}
	dir := flag.Arg(0)

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "audiovalidator: load config: %v\n", err)
			os.Exit(2)
		}
	}
	if len(cfg.Projects) == 0 {
		// 没有配置时只做音频探测
		cfg.Projects = []config.ProjectConfig{{Name: "default"}}
	}

	jobWorkers := cfg.Jobs.Workers
	if *workers > 0 {
		jobWorkers = *workers
	}

	log := logger.NewQuiet("audiovalidator ")
	if *verbose {
		log = logger.New("audiovalidator ")
	}

	registry, err := project.NewRegistry(cfg.Projects)
	if err != nil {
		fmt.Fprintf(os.Stderr, "audiovalidator: %v\n", err)
		os.Exit(2)
	}

	name := *projectName
	if name == "" {
		name = cfg.Projects[0].Name
	}
	proj, err := registry.Get(name)
	if err != nil {
		fmt.Fprintf(os.Stderr, "audiovalidator: unknown project %q\n", name)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var discovered int
	results, stats, runErr := pipeline.Run(ctx, proj, dir, jobWorkers, log, func(done, total int) {
		discovered = total
	})
	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		fmt.Fprintf(os.Stderr, "audiovalidator: %v\n", runErr)
		os.Exit(2)
	}

	for _, r := range results {
		printResult(r)
	}

	fmt.Printf("\n%d files: %d passed, %d warnings, %d failed (%.1f MB)\n",
		stats.Total, stats.Passed, stats.Warnings, stats.Failed,
		float64(stats.TotalBytes)/(1024*1024))

	if *csvPath != "" {
		if err := writeReport(*csvPath, export.FormatCSV, proj.Name(), results, stats); err != nil {
			fmt.Fprintf(os.Stderr, "audiovalidator: write CSV: %v\n", err)
			os.Exit(2)
		}
		fmt.Printf("CSV report written to %s\n", *csvPath)
	}
	if *jsonPath != "" {
		if err := writeReport(*jsonPath, export.FormatJSON, proj.Name(), results, stats); err != nil {
			fmt.Fprintf(os.Stderr, "audiovalidator: write JSON: %v\n", err)
			os.Exit(2)
		}
		fmt.Printf("JSON report written to %s\n", *jsonPath)
	}

	if errors.Is(runErr, context.Canceled) {
		fmt.Fprintf(os.Stderr, "interrupted after %d of %d files\n", stats.Total, discovered)
		os.Exit(1)
	}
	if stats.Failed > 0 {
		os.Exit(1)
	}
}

func printResult(r pipeline.FileResult) {
	fmt.Printf("%-7s %s\n", strings.ToUpper(string(r.Overall)), r.Filename)
	if r.ProbeError != "" {
		fmt.Printf("        %s\n", r.ProbeError)
	}
	if r.Verdict != nil {
		for _, issue := range r.Verdict.Issues {
			fmt.Printf("        %s\n", issue)
		}
		if r.Verdict.Status == "fail" && r.Verdict.ExpectedFormat != "" {
			fmt.Printf("        expected: %s\n", r.Verdict.ExpectedFormat)
		}
	}
	if c := r.Criteria; c != nil {
		for _, check := range []criteria.Check{c.FileType, c.SampleRate, c.BitDepth, c.Channels, c.Duration} {
			if check.Message != "" {
				fmt.Printf("        %s\n", check.Message)
			}
		}
	}
}

func writeReport(path, format, projectName string, results []pipeline.FileResult, stats pipeline.RunStats) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return export.Write(f, format, projectName, results, stats)
}
