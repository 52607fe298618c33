// Copyright (c) 2026 Kevin Zang (kevinzang). All rights reserved.
// Use of this source code is governed by the MIT License.
//
// AudioValidator - 音频提交文件校验工具

package main

import (
	"flag"
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/ZSC714725/audiovalidator/internal/api"
	"github.com/ZSC714725/audiovalidator/internal/config"
	"github.com/ZSC714725/audiovalidator/internal/job"
	"github.com/ZSC714725/audiovalidator/internal/logger"
	"github.com/ZSC714725/audiovalidator/internal/project"
	"github.com/ZSC714725/audiovalidator/internal/sysload"
)

func main() {
	configPath := flag.String("config", "", "Path to YAML config file")
	bind := flag.String("bind", "", "Bind address (overrides config)")
	workers := flag.Int("workers", 0, "Validation workers per job (overrides config)")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			log.Fatalf("Load config: %v", err)
		}
	}

	bindAddr := cfg.Server.Bind
	if *bind != "" {
		bindAddr = *bind
	}
	jobWorkers := cfg.Jobs.Workers
	if *workers > 0 {
		jobWorkers = *workers
	}

	logger := logger.New("audiovalidator ")

	registry, err := project.NewRegistry(cfg.Projects)
	if err != nil {
		log.Fatalf("Load projects: %v", err)
	}

	store := job.NewStore(registry, jobWorkers, sysload.NewProcSampler(), logger)
	handler := api.NewHandler(registry, store)

	r := gin.Default()
	r.Use(gin.Recovery(), cors.Default())

	v1 := r.Group("/api/v1")
	{
		v1.GET("/projects", handler.ListProjects)
		v1.POST("/projects/reload", handler.ReloadProjects)
		v1.GET("/projects/:name/dataset", handler.GetDataset)
		v1.POST("/projects/:name/validate", handler.ValidateFilename)

		v1.GET("/jobs", handler.ListJobs)
		v1.POST("/jobs", handler.AddJob)
		v1.GET("/jobs/:id", handler.GetJob)
		v1.PUT("/jobs/:id/command", handler.JobCommand)
		v1.DELETE("/jobs/:id", handler.DeleteJob)
		v1.GET("/jobs/:id/results", handler.GetResults)
		v1.GET("/jobs/:id/export", handler.ExportJob)
	}

	log.Printf("AudioValidator listening on %s (%d projects)", bindAddr, len(cfg.Projects))
	if err := r.Run(bindAddr); err != nil {
		log.Fatalf("Server: %v", err)
	}
}
