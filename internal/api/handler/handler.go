package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/vinimqsz/projeto-eng-software/internal/service"
	"github.com/vinimqsz/projeto-eng-software/pkg/response"
	"github.com/vinimqsz/projeto-eng-software/pkg/validation"
)

// Handler aggregates every HTTP handler.
type Handler struct {
	Auth       *AuthHandler
	Term       *TermHandler
	Room       *RoomHandler
	Discipline *DisciplineHandler
	Professor  *ProfessorHandler
	Booking    *BookingHandler
	Export     *ExportHandler
	Health     *HealthHandler
}

// NewHandler builds the handlers on top of the services. health may be nil.
func NewHandler(svc *service.Service, health *HealthHandler) *Handler {
	if health == nil {
		health = NewHealthHandler(nil, nil)
	}
	return &Handler{
		Auth:       NewAuthHandler(svc.Auth),
		Term:       NewTermHandler(svc.Term),
		Room:       NewRoomHandler(svc.Room),
		Discipline: NewDisciplineHandler(svc.Discipline),
		Professor:  NewProfessorHandler(svc.Professor),
		Booking:    NewBookingHandler(svc.Booking),
		Export:     NewExportHandler(svc.Export),
		Health:     health,
	}
}

// Generic business codes.
const (
	codeInvalidParams  = 10001
	codeStaleVersion   = 10006
	codeMissingParamID = 10007
)

// badRequest reports a binding/validation failure with per-field details.
func badRequest(c *gin.Context, err error) {
	response.ErrorWithDetails(c, 400, codeInvalidParams, "invalid parameters", validation.Translate(err))
}

// pathID reads :name; an empty value answers 400 and returns false.
func pathID(c *gin.Context, name string) (string, bool) {
	id := c.Param(name)
	if id == "" {
		response.BadRequest(c, codeMissingParamID, name+" is required")
		return "", false
	}
	return id, true
}
