package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/recruit-scheduler/internal/domain/interview"
	"github.com/BruksfildServices01/recruit-scheduler/internal/dto"
	"github.com/BruksfildServices01/recruit-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/recruit-scheduler/internal/middleware"
	ucInterview "github.com/BruksfildServices01/recruit-scheduler/internal/usecase/interview"
)

// ======================================================
// HANDLER
// ======================================================

type InterviewHandler struct {
	plan   *ucInterview.PlanInterview
	get    *ucInterview.GetProposal
	list   *ucInterview.ListProposals
	drafts *ucInterview.Drafts
}

func NewInterviewHandler(
	plan *ucInterview.PlanInterview,
	get *ucInterview.GetProposal,
	list *ucInterview.ListProposals,
	drafts *ucInterview.Drafts,
) *InterviewHandler {
	return &InterviewHandler{
		plan:   plan,
		get:    get,
		list:   list,
		drafts: drafts,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateDraftRequest struct {
	CandidateID uint `json:"candidate_id" binding:"required"`
}

type SwitchTabRequest struct {
	Tab domain.Tab `json:"tab" binding:"required"`
}

// ======================================================
// PROPOSALS
// ======================================================

func (h *InterviewHandler) Create(c *gin.Context) {
	var req domain.Submission
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	out, err := h.plan.Execute(c.Request.Context(), ucInterview.PlanInterviewInput{
		RecruiterID: middleware.UserID(c),
		Submission:  req,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	httpresp.Created(c, out)
}

func (h *InterviewHandler) List(c *gin.Context) {
	recs, err := h.list.Execute(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	httpresp.List(c, dto.NewProposalList(recs))
}

func (h *InterviewHandler) Get(c *gin.Context) {
	rec, err := h.get.Execute(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	httpresp.OK(c, rec)
}

// ======================================================
// DRAFTS
// ======================================================

func (h *InterviewHandler) CreateDraft(c *gin.Context) {
	var req CreateDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	d, err := h.drafts.Create(c.Request.Context(), middleware.UserID(c), req.CandidateID)
	if err != nil {
		writeError(c, err)
		return
	}
	httpresp.Created(c, d)
}

func (h *InterviewHandler) GetDraft(c *gin.Context) {
	d, err := h.drafts.Get(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	httpresp.OK(c, d)
}

func (h *InterviewHandler) UpdateDraft(c *gin.Context) {
	var req domain.DraftPatch
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	h.respondDraft(c)(h.drafts.Update(c.Request.Context(), middleware.UserID(c), c.Param("id"), req))
}

func (h *InterviewHandler) SwitchTab(c *gin.Context) {
	var req SwitchTabRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	h.respondDraft(c)(h.drafts.SwitchTab(c.Request.Context(), middleware.UserID(c), c.Param("id"), req.Tab))
}

func (h *InterviewHandler) AddAlternateSlot(c *gin.Context) {
	h.respondDraft(c)(h.drafts.AddAlternateSlot(c.Request.Context(), middleware.UserID(c), c.Param("id")))
}

func (h *InterviewHandler) RemoveAlternateSlot(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		badRequest(c, err)
		return
	}
	h.respondDraft(c)(h.drafts.RemoveAlternateSlot(c.Request.Context(), middleware.UserID(c), c.Param("id"), index))
}

func (h *InterviewHandler) Reprogram(c *gin.Context) {
	var req domain.ReprogramResult
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	h.respondDraft(c)(h.drafts.ApplyReprogram(c.Request.Context(), middleware.UserID(c), c.Param("id"), req))
}

func (h *InterviewHandler) SubmitDraft(c *gin.Context) {
	out, err := h.drafts.Submit(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	httpresp.Created(c, out)
}

func (h *InterviewHandler) respondDraft(c *gin.Context) func(domain.Draft, error) {
	return func(d domain.Draft, err error) {
		if err != nil {
			writeError(c, err)
			return
		}
		httpresp.OK(c, d)
	}
}
