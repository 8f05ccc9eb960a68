package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/vinimqsz/projeto-eng-software/internal/dto"
	"github.com/vinimqsz/projeto-eng-software/internal/service"
	pkgerrors "github.com/vinimqsz/projeto-eng-software/pkg/errors"
	"github.com/vinimqsz/projeto-eng-software/pkg/response"
)

// TermHandler academic term endpoints
type TermHandler struct {
	termSvc service.TermService
}

// NewTermHandler creates a TermHandler.
func NewTermHandler(termSvc service.TermService) *TermHandler {
	return &TermHandler{termSvc: termSvc}
}

// ListTerms lists every term, newest first
// GET /api/v1/terms
func (h *TermHandler) ListTerms(c *gin.Context) {
	terms, err := h.termSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": terms})
}

// GetTerm term detail
// GET /api/v1/terms/:id
func (h *TermHandler) GetTerm(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	term, err := h.termSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleTermError(c, err)
		return
	}

	response.OK(c, term)
}

// GetCurrentTerm the active term
// GET /api/v1/terms/current
func (h *TermHandler) GetCurrentTerm(c *gin.Context) {
	term, err := h.termSvc.GetCurrent(c.Request.Context())
	if err != nil {
		h.handleTermError(c, err)
		return
	}

	response.OK(c, term)
}

// CreateTerm new inactive term
// POST /api/v1/terms
func (h *TermHandler) CreateTerm(c *gin.Context) {
	var req dto.CreateTermRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	term, err := h.termSvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleTermError(c, err)
		return
	}

	response.Created(c, term)
}

// UpdateTerm edits year, period or dates
// PUT /api/v1/terms/:id
func (h *TermHandler) UpdateTerm(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateTermRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	term, err := h.termSvc.Update(c.Request.Context(), id, &req, callerID)
	if err != nil {
		h.handleTermError(c, err)
		return
	}

	response.OK(c, term)
}

// ActivateTerm makes the term the only active one
// PUT /api/v1/terms/:id/activate
func (h *TermHandler) ActivateTerm(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	term, err := h.termSvc.Activate(c.Request.Context(), id, callerID)
	if err != nil {
		h.handleTermError(c, err)
		return
	}

	response.OK(c, term)
}

// DeleteTerm removes the term and its bookings
// DELETE /api/v1/terms/:id
func (h *TermHandler) DeleteTerm(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.termSvc.Delete(c.Request.Context(), id); err != nil {
		h.handleTermError(c, err)
		return
	}

	response.OK(c, nil)
}

func (h *TermHandler) handleTermError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrTermNotFound):
		response.NotFound(c, 14001, "term not found")
	case errors.Is(err, service.ErrTermDateInvalid):
		response.BadRequest(c, 14002, "term end date must be after start date")
	case errors.Is(err, service.ErrTermDuplicate):
		response.Conflict(c, 14003, "a term with this year and period already exists")
	case errors.Is(err, service.ErrNoActiveTerm):
		response.NotFound(c, 14004, "no active term")
	case errors.Is(err, pkgerrors.ErrOptimisticLock):
		response.Conflict(c, codeStaleVersion, "term was modified concurrently, reload and retry")
	default:
		response.InternalError(c)
	}
}
