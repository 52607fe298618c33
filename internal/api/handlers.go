// Copyright (c) 2026 Kevin Zang (kevinzang). All rights reserved.
// Use of this source code is governed by the MIT License.
//
// AudioValidator - 音频提交文件校验工具

package api

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ZSC714725/audiovalidator/internal/config"
	"github.com/ZSC714725/audiovalidator/internal/criteria"
	"github.com/ZSC714725/audiovalidator/internal/export"
	"github.com/ZSC714725/audiovalidator/internal/job"
	"github.com/ZSC714725/audiovalidator/internal/naming"
	"github.com/ZSC714725/audiovalidator/internal/project"
)

// Handler holds dependencies
type Handler struct {
	registry *project.Registry
	store    job.Store
}

// NewHandler creates API handler
func NewHandler(reg *project.Registry, store job.Store) *Handler {
	return &Handler{registry: reg, store: store}
}

func errResp(c *gin.Context, code int, msg, detail string) {
	c.JSON(code, ErrorResponse{Code: code, Message: msg, Detail: detail})
}

// ListProjects GET /api/v1/projects
func (h *Handler) ListProjects(c *gin.Context) {
	c.JSON(http.StatusOK, h.projectInfos())
}

// ReloadProjects POST /api/v1/projects/reload
func (h *Handler) ReloadProjects(c *gin.Context) {
	if err := h.registry.Reload(); err != nil {
		errResp(c, http.StatusInternalServerError, "Reload failed", err.Error())
		return
	}
	c.JSON(http.StatusOK, h.projectInfos())
}

// GetDataset GET /api/v1/projects/:name/dataset
func (h *Handler) GetDataset(c *gin.Context) {
	p, err := h.registry.Get(c.Param("name"))
	if err != nil {
		errResp(c, http.StatusNotFound, "Unknown project", err.Error())
		return
	}

	switch p.Mode() {
	case config.ModeConversational:
		ds := p.Dataset()
		languages, conversations, pairs := ds.Counts()
		c.JSON(http.StatusOK, DatasetInfo{
			Languages:         ds.Languages(),
			LanguageCount:     languages,
			ConversationCount: conversations,
			PairCount:         pairs,
		})
	case config.ModeScript:
		c.JSON(http.StatusOK, DatasetInfo{
			ScriptCount: len(p.Scripts()),
			SpeakerID:   p.SpeakerID(),
		})
	default:
		errResp(c, http.StatusNotFound, "No reference data", "project has filename checks disabled")
	}
}

// ValidateFilename POST /api/v1/projects/:name/validate
func (h *Handler) ValidateFilename(c *gin.Context) {
	p, err := h.registry.Get(c.Param("name"))
	if err != nil {
		errResp(c, http.StatusNotFound, "Unknown project", err.Error())
		return
	}

	var req ValidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errResp(c, http.StatusBadRequest, "Invalid JSON", err.Error())
		return
	}

	resp := ValidateResponse{
		Filename: req.Filename,
		Verdict:  p.ValidateFilename(req.Filename),
		Overall:  criteria.StatusPass,
	}
	if req.Properties != nil {
		res := criteria.Validate(req.Properties, p.Criteria())
		resp.Criteria = &res
		resp.Overall = res.Overall
	}
	if resp.Verdict != nil && resp.Verdict.Status == naming.StatusFail {
		resp.Overall = criteria.Combine(resp.Overall, criteria.StatusFail)
	}

	c.JSON(http.StatusOK, resp)
}

// AddJob POST /api/v1/jobs
func (h *Handler) AddJob(c *gin.Context) {
	var req JobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errResp(c, http.StatusBadRequest, "Invalid JSON", err.Error())
		return
	}

	j, err := h.store.Add(req.Project, req.Dir)
	if err != nil {
		if err == job.ErrUnknownProject {
			errResp(c, http.StatusBadRequest, "Unknown project", err.Error())
			return
		}
		if err == job.ErrInvalidDir {
			errResp(c, http.StatusBadRequest, "Invalid directory", err.Error())
			return
		}
		errResp(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	c.JSON(http.StatusOK, h.jobToInfo(j, "state"))
}

// ListJobs GET /api/v1/jobs
func (h *Handler) ListJobs(c *gin.Context) {
	filter := c.DefaultQuery("filter", "")
	projectName := c.DefaultQuery("project", "")
	idStr := c.DefaultQuery("id", "")

	var ids []string
	if idStr != "" {
		ids = strings.FieldsFunc(idStr, func(r rune) bool { return r == ',' })
		for i := range ids {
			ids[i] = strings.TrimSpace(ids[i])
		}
	}

	jobs := h.store.List(ids, projectName)
	infos := make([]JobInfo, 0, len(jobs))
	for _, j := range jobs {
		infos = append(infos, h.jobToInfo(j, filter))
	}

	c.JSON(http.StatusOK, infos)
}

// GetJob GET /api/v1/jobs/:id
func (h *Handler) GetJob(c *gin.Context) {
	j, err := h.store.Get(c.Param("id"))
	if err != nil {
		errResp(c, http.StatusNotFound, "Unknown job ID", err.Error())
		return
	}

	c.JSON(http.StatusOK, h.jobToInfo(j, c.DefaultQuery("filter", "")))
}

// JobCommand PUT /api/v1/jobs/:id/command
func (h *Handler) JobCommand(c *gin.Context) {
	id := c.Param("id")

	var req CommandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errResp(c, http.StatusBadRequest, "Invalid JSON", err.Error())
		return
	}

	switch req.Command {
	case "cancel":
		if err := h.store.Cancel(id); err != nil {
			if err == job.ErrNotFound {
				errResp(c, http.StatusNotFound, "Unknown job ID", err.Error())
				return
			}
			errResp(c, http.StatusBadRequest, "Command failed", err.Error())
			return
		}
	default:
		errResp(c, http.StatusBadRequest, "Unknown command", "Known: cancel")
		return
	}

	c.JSON(http.StatusOK, "OK")
}

// DeleteJob DELETE /api/v1/jobs/:id
func (h *Handler) DeleteJob(c *gin.Context) {
	if err := h.store.Delete(c.Param("id")); err != nil {
		errResp(c, http.StatusNotFound, "Unknown job ID", err.Error())
		return
	}

	c.JSON(http.StatusOK, "OK")
}

// GetResults GET /api/v1/jobs/:id/results
func (h *Handler) GetResults(c *gin.Context) {
	j, err := h.store.Get(c.Param("id"))
	if err != nil {
		errResp(c, http.StatusNotFound, "Unknown job ID", err.Error())
		return
	}

	c.JSON(http.StatusOK, JobReport{Stats: j.Stats(), Results: j.Results()})
}

// ExportJob GET /api/v1/jobs/:id/export
func (h *Handler) ExportJob(c *gin.Context) {
	j, err := h.store.Get(c.Param("id"))
	if err != nil {
		errResp(c, http.StatusNotFound, "Unknown job ID", err.Error())
		return
	}

	format := c.DefaultQuery("format", export.FormatCSV)

	var buf bytes.Buffer
	if err := export.Write(&buf, format, j.Project, j.Results(), j.Stats()); err != nil {
		errResp(c, http.StatusBadRequest, "Unknown format", err.Error())
		return
	}

	contentType := "text/csv"
	if format == export.FormatJSON {
		contentType = "application/json"
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="job-%s.%s"`, j.ID, format))
	c.Data(http.StatusOK, contentType, buf.Bytes())
}

func (h *Handler) projectInfos() []ProjectInfo {
	projects := h.registry.List()
	infos := make([]ProjectInfo, 0, len(projects))
	for _, p := range projects {
		infos = append(infos, ProjectInfo{
			Name:         p.Name(),
			FilenameMode: string(p.Mode()),
			Criteria:     p.Criteria(),
		})
	}
	return infos
}

func (h *Handler) jobToInfo(j *job.Job, filter string) JobInfo {
	info := JobInfo{
		ID:        j.ID,
		Project:   j.Project,
		Dir:       j.Dir,
		CreatedAt: j.CreatedAt,
		UpdatedAt: j.UpdatedAt(),
	}

	includeAll := filter == ""
	includeState := includeAll || strings.Contains(filter, "state")
	includeReport := includeAll || strings.Contains(filter, "report")

	if includeState {
		done, total := j.Progress()
		state := &JobState{
			State: string(j.State()),
			Done:  done,
			Total: total,
			Error: j.ErrMessage(),
		}
		if j.IsRunning() {
			state.CPU, state.Memory = h.store.Usage()
		}
		info.State = state
	}

	if includeReport {
		info.Report = &JobReport{Stats: j.Stats(), Results: j.Results()}
	}

	return info
}
