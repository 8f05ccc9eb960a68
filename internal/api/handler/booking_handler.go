package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vinimqsz/projeto-eng-software/internal/dto"
	"github.com/vinimqsz/projeto-eng-software/internal/scheduling"
	"github.com/vinimqsz/projeto-eng-software/internal/service"
	pkgerrors "github.com/vinimqsz/projeto-eng-software/pkg/errors"
	"github.com/vinimqsz/projeto-eng-software/pkg/response"
)

// Booking business codes.
const (
	codeInvalidInterval = 16001
	codeConflict        = 16002
)

// BookingHandler booking endpoints
type BookingHandler struct {
	bookingSvc service.BookingService
}

// NewBookingHandler creates a BookingHandler.
func NewBookingHandler(bookingSvc service.BookingService) *BookingHandler {
	return &BookingHandler{bookingSvc: bookingSvc}
}

// ListBookings GET /api/v1/bookings
func (h *BookingHandler) ListBookings(c *gin.Context) {
	var req dto.BookingListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		badRequest(c, err)
		return
	}

	list, total, err := h.bookingSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OKPage(c, list, total, req.GetPage(), req.GetPageSize())
}

// GetBooking GET /api/v1/bookings/:id
func (h *BookingHandler) GetBooking(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	b, err := h.bookingSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleBookingError(c, err)
		return
	}
	response.OK(c, b)
}

// CreateBooking POST /api/v1/bookings
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req dto.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	b, err := h.bookingSvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleBookingError(c, err)
		return
	}
	response.Created(c, b)
}

// UpdateBooking PUT /api/v1/bookings/:id
func (h *BookingHandler) UpdateBooking(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	b, err := h.bookingSvc.Update(c.Request.Context(), id, &req, callerID)
	if err != nil {
		h.handleBookingError(c, err)
		return
	}
	response.OK(c, b)
}

// DeleteBooking DELETE /api/v1/bookings/:id
func (h *BookingHandler) DeleteBooking(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.bookingSvc.Delete(c.Request.Context(), id); err != nil {
		h.handleBookingError(c, err)
		return
	}
	response.OK(c, nil)
}

// CheckBooking dry-run conflict check; 200 with conflict=true when it collides
// POST /api/v1/bookings/check
func (h *BookingHandler) CheckBooking(c *gin.Context) {
	var req dto.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	result, err := h.bookingSvc.Check(c.Request.Context(), &req)
	if err != nil {
		h.handleBookingError(c, err)
		return
	}
	response.OK(c, result)
}

func (h *BookingHandler) handleBookingError(c *gin.Context, err error) {
	var conflict *service.BookingConflictError
	switch {
	case errors.As(err, &conflict):
		response.ErrorWithData(c, http.StatusConflict, codeConflict, conflict.Error(),
			gin.H{"conflicts": conflict.Conflicts})
	case errors.Is(err, scheduling.ErrInvalidInterval):
		response.BadRequest(c, codeInvalidInterval, "start time must be before end time")
	case errors.Is(err, service.ErrBookingNotFound):
		response.NotFound(c, 16003, "booking not found")
	case errors.Is(err, service.ErrBookingTimeInvalid),
		errors.Is(err, service.ErrBookingDayInvalid),
		errors.Is(err, service.ErrBookingDateInvalid):
		response.BadRequest(c, 16004, err.Error())
	case errors.Is(err, service.ErrBookingDuplicate):
		response.Conflict(c, 16005, "another booking already starts at this time in this room")
	case errors.Is(err, service.ErrBookingReference):
		response.BadRequest(c, 16006, "booking references a missing term, room, discipline or professor")
	case errors.Is(err, pkgerrors.ErrOptimisticLock):
		response.Conflict(c, codeStaleVersion, "booking was modified concurrently, reload and retry")
	case errors.Is(err, service.ErrTermNotFound):
		response.NotFound(c, 14001, "term not found")
	default:
		handleCatalogOrInternal(c, err)
	}
}
