package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/vinimqsz/projeto-eng-software/internal/dto"
	"github.com/vinimqsz/projeto-eng-software/internal/service"
	"github.com/vinimqsz/projeto-eng-software/pkg/response"
)

// handleCatalogError maps room, discipline and professor errors (13xxx).
// It reports whether err was recognised.
func handleCatalogError(c *gin.Context, err error) bool {
	switch {
	case errors.Is(err, service.ErrRoomNotFound):
		response.NotFound(c, 13001, "room not found")
	case errors.Is(err, service.ErrRoomNameTaken):
		response.Conflict(c, 13002, "room name already in use")
	case errors.Is(err, service.ErrRoomInactive):
		response.BadRequest(c, 13003, "room is inactive")
	case errors.Is(err, service.ErrDisciplineNotFound):
		response.NotFound(c, 13011, "discipline not found")
	case errors.Is(err, service.ErrDisciplineCodeTaken):
		response.Conflict(c, 13012, "discipline code already in use")
	case errors.Is(err, service.ErrDisciplineInactive):
		response.BadRequest(c, 13013, "discipline is inactive")
	case errors.Is(err, service.ErrProfessorNotFound):
		response.NotFound(c, 13021, "professor not found")
	case errors.Is(err, service.ErrProfessorRegistrationTaken):
		response.Conflict(c, 13022, "professor registration already in use")
	default:
		return false
	}
	return true
}

func handleCatalogOrInternal(c *gin.Context, err error) {
	if !handleCatalogError(c, err) {
		response.InternalError(c)
	}
}

// ═══════════════════════════════════════════════════════════
// Rooms
// ═══════════════════════════════════════════════════════════

// RoomHandler room endpoints
type RoomHandler struct {
	roomSvc service.RoomService
}

// NewRoomHandler creates a RoomHandler.
func NewRoomHandler(roomSvc service.RoomService) *RoomHandler {
	return &RoomHandler{roomSvc: roomSvc}
}

// ListRooms GET /api/v1/rooms
func (h *RoomHandler) ListRooms(c *gin.Context) {
	var req dto.RoomListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		badRequest(c, err)
		return
	}

	list, total, err := h.roomSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OKPage(c, list, total, req.GetPage(), req.GetPageSize())
}

// GetRoom GET /api/v1/rooms/:id
func (h *RoomHandler) GetRoom(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	room, err := h.roomSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		handleCatalogOrInternal(c, err)
		return
	}
	response.OK(c, room)
}

// CreateRoom POST /api/v1/rooms
func (h *RoomHandler) CreateRoom(c *gin.Context) {
	var req dto.CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	room, err := h.roomSvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		handleCatalogOrInternal(c, err)
		return
	}
	response.Created(c, room)
}

// UpdateRoom PUT /api/v1/rooms/:id
func (h *RoomHandler) UpdateRoom(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	room, err := h.roomSvc.Update(c.Request.Context(), id, &req, callerID)
	if err != nil {
		handleCatalogOrInternal(c, err)
		return
	}
	response.OK(c, room)
}

// DeleteRoom DELETE /api/v1/rooms/:id
func (h *RoomHandler) DeleteRoom(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.roomSvc.Delete(c.Request.Context(), id); err != nil {
		handleCatalogOrInternal(c, err)
		return
	}
	response.OK(c, nil)
}

// ═══════════════════════════════════════════════════════════
// Disciplines
// ═══════════════════════════════════════════════════════════

// DisciplineHandler discipline endpoints
type DisciplineHandler struct {
	disciplineSvc service.DisciplineService
}

// NewDisciplineHandler creates a DisciplineHandler.
func NewDisciplineHandler(disciplineSvc service.DisciplineService) *DisciplineHandler {
	return &DisciplineHandler{disciplineSvc: disciplineSvc}
}

// ListDisciplines GET /api/v1/disciplines
func (h *DisciplineHandler) ListDisciplines(c *gin.Context) {
	var req dto.DisciplineListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		badRequest(c, err)
		return
	}

	list, total, err := h.disciplineSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OKPage(c, list, total, req.GetPage(), req.GetPageSize())
}

// GetDiscipline GET /api/v1/disciplines/:id
func (h *DisciplineHandler) GetDiscipline(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	d, err := h.disciplineSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		handleCatalogOrInternal(c, err)
		return
	}
	response.OK(c, d)
}

// CreateDiscipline POST /api/v1/disciplines
func (h *DisciplineHandler) CreateDiscipline(c *gin.Context) {
	var req dto.CreateDisciplineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	d, err := h.disciplineSvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		handleCatalogOrInternal(c, err)
		return
	}
	response.Created(c, d)
}

// UpdateDiscipline PUT /api/v1/disciplines/:id
func (h *DisciplineHandler) UpdateDiscipline(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateDisciplineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	d, err := h.disciplineSvc.Update(c.Request.Context(), id, &req, callerID)
	if err != nil {
		handleCatalogOrInternal(c, err)
		return
	}
	response.OK(c, d)
}

// DeleteDiscipline DELETE /api/v1/disciplines/:id
func (h *DisciplineHandler) DeleteDiscipline(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.disciplineSvc.Delete(c.Request.Context(), id); err != nil {
		handleCatalogOrInternal(c, err)
		return
	}
	response.OK(c, nil)
}

// ═══════════════════════════════════════════════════════════
// Professors
// ═══════════════════════════════════════════════════════════

// ProfessorHandler professor endpoints
type ProfessorHandler struct {
	professorSvc service.ProfessorService
}

// NewProfessorHandler creates a ProfessorHandler.
func NewProfessorHandler(professorSvc service.ProfessorService) *ProfessorHandler {
	return &ProfessorHandler{professorSvc: professorSvc}
}

// ListProfessors GET /api/v1/professors
func (h *ProfessorHandler) ListProfessors(c *gin.Context) {
	var req dto.ProfessorListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		badRequest(c, err)
		return
	}

	list, total, err := h.professorSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OKPage(c, list, total, req.GetPage(), req.GetPageSize())
}

// GetProfessor GET /api/v1/professors/:id
func (h *ProfessorHandler) GetProfessor(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	p, err := h.professorSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		handleCatalogOrInternal(c, err)
		return
	}
	response.OK(c, p)
}

// CreateProfessor POST /api/v1/professors
func (h *ProfessorHandler) CreateProfessor(c *gin.Context) {
	var req dto.CreateProfessorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	p, err := h.professorSvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		handleCatalogOrInternal(c, err)
		return
	}
	response.Created(c, p)
}

// UpdateProfessor PUT /api/v1/professors/:id
func (h *ProfessorHandler) UpdateProfessor(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateProfessorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	p, err := h.professorSvc.Update(c.Request.Context(), id, &req, callerID)
	if err != nil {
		handleCatalogOrInternal(c, err)
		return
	}
	response.OK(c, p)
}

// DeleteProfessor DELETE /api/v1/professors/:id
func (h *ProfessorHandler) DeleteProfessor(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.professorSvc.Delete(c.Request.Context(), id); err != nil {
		handleCatalogOrInternal(c, err)
		return
	}
	response.OK(c, nil)
}
