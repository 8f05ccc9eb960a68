package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/vinimqsz/projeto-eng-software/internal/service"
	"github.com/vinimqsz/projeto-eng-software/pkg/response"
)

const (
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypeICS  = "text/calendar; charset=utf-8"
)

// ExportHandler file export endpoints
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler creates an ExportHandler.
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportTimetable term timetable workbook, one sheet per room
// GET /api/v1/export/terms/:id/timetable.xlsx
func (h *ExportHandler) ExportTimetable(c *gin.Context) {
	termID, ok := pathID(c, "id")
	if !ok {
		return
	}

	buf, filename, err := h.exportSvc.ExportTimetable(c.Request.Context(), termID)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	attachment(c, filename)
	c.Data(http.StatusOK, contentTypeXLSX, buf.Bytes())
}

// ExportRoomCalendar weekly iCalendar feed of a room
// GET /api/v1/export/terms/:id/rooms/:room_id/calendar.ics
func (h *ExportHandler) ExportRoomCalendar(c *gin.Context) {
	termID, ok := pathID(c, "id")
	if !ok {
		return
	}
	roomID, ok := pathID(c, "room_id")
	if !ok {
		return
	}

	data, filename, err := h.exportSvc.ExportRoomCalendar(c.Request.Context(), termID, roomID)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	attachment(c, filename)
	c.Data(http.StatusOK, contentTypeICS, data)
}

func attachment(c *gin.Context, filename string) {
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+url.PathEscape(filename))
}

func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrTermNotFound):
		response.NotFound(c, 14001, "term not found")
	case errors.Is(err, service.ErrRoomNotFound):
		response.NotFound(c, 13001, "room not found")
	case errors.Is(err, service.ErrExportNoBookings):
		response.NotFound(c, 16101, "term has no active bookings")
	default:
		response.InternalError(c)
	}
}
