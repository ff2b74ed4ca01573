package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/recruit-scheduler/internal/httperr"
	"github.com/BruksfildServices01/recruit-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/recruit-scheduler/internal/jobstate"
	"github.com/BruksfildServices01/recruit-scheduler/internal/middleware"
	"github.com/BruksfildServices01/recruit-scheduler/internal/validation"
)

// ======================================================
// HANDLER
// ======================================================

type JobStateHandler struct {
	store    jobstate.Store
	searches *jobstate.SearchRecorder
}

func NewJobStateHandler(store jobstate.Store, searches *jobstate.SearchRecorder) *JobStateHandler {
	return &JobStateHandler{store: store, searches: searches}
}

type InitSavedJobsRequest struct {
	JobIDs []string `json:"job_ids"`
}

type RecordSearchRequest struct {
	Query string `json:"query" binding:"required"`
}

// ======================================================
// SAVED JOBS
// ======================================================

func (h *JobStateHandler) ListSavedJobs(c *gin.Context) {
	ids, err := h.store.SavedJobs(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	httpresp.List(c, ids)
}

func (h *JobStateHandler) InitSavedJobs(c *gin.Context) {
	var req InitSavedJobsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := h.store.InitSavedJobs(c.Request.Context(), middleware.UserID(c), req.JobIDs); err != nil {
		writeError(c, err)
		return
	}
	h.ListSavedJobs(c)
}

func (h *JobStateHandler) SaveJob(c *gin.Context) {
	if err := h.store.SaveJob(c.Request.Context(), middleware.UserID(c), c.Param("jobID")); err != nil {
		writeError(c, err)
		return
	}
	httpresp.NoContent(c)
}

func (h *JobStateHandler) UnsaveJob(c *gin.Context) {
	if err := h.store.UnsaveJob(c.Request.Context(), middleware.UserID(c), c.Param("jobID")); err != nil {
		writeError(c, err)
		return
	}
	httpresp.NoContent(c)
}

func (h *JobStateHandler) ResetSavedJobs(c *gin.Context) {
	if err := h.store.ResetSavedJobs(c.Request.Context(), middleware.UserID(c)); err != nil {
		writeError(c, err)
		return
	}
	httpresp.NoContent(c)
}

// ======================================================
// RECENT SEARCHES
// ======================================================

func (h *JobStateHandler) ListSearches(c *gin.Context) {
	list, err := h.store.RecentSearches(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	httpresp.List(c, list)
}

// RecordSearch is fed from the search box on every keystroke; only the
// last query of a burst is kept.
func (h *JobStateHandler) RecordSearch(c *gin.Context) {
	var req RecordSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	h.searches.Record(middleware.UserID(c), req.Query)
	httpresp.Accepted(c)
}

func (h *JobStateHandler) ClearSearches(c *gin.Context) {
	if err := h.store.ClearSearches(c.Request.Context(), middleware.UserID(c)); err != nil {
		writeError(c, err)
		return
	}
	httpresp.NoContent(c)
}

// ======================================================
// TAB COUNTS
// ======================================================

func (h *JobStateHandler) GetTabCounts(c *gin.Context) {
	counts, err := h.store.TabCounts(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	httpresp.OK(c, counts)
}

func (h *JobStateHandler) SetTabCounts(c *gin.Context) {
	var req jobstate.TabCounts
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if fe := validation.Struct(req); len(fe) > 0 {
		httperr.Validation(c, fe)
		return
	}
	if err := h.store.SetTabCounts(c.Request.Context(), middleware.UserID(c), req); err != nil {
		writeError(c, err)
		return
	}
	httpresp.OK(c, req)
}

func (h *JobStateHandler) ResetTabCounts(c *gin.Context) {
	if err := h.store.ResetTabCounts(c.Request.Context(), middleware.UserID(c)); err != nil {
		writeError(c, err)
		return
	}
	httpresp.NoContent(c)
}
