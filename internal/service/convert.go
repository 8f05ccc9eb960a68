package service

import (
	"time"

	"gorm.io/datatypes"

	"github.com/vinimqsz/projeto-eng-software/internal/dto"
	"github.com/vinimqsz/projeto-eng-software/internal/model"
	"github.com/vinimqsz/projeto-eng-software/internal/scheduling"
)

// ── model → dto ──

func toTermResponse(t *model.Term) *dto.TermResponse {
	return &dto.TermResponse{
		ID:        t.TermID,
		Label:     t.Label(),
		Year:      t.Year,
		Period:    t.Period,
		StartDate: formatDate(t.StartDate),
		EndDate:   formatDate(t.EndDate),
		IsActive:  t.IsActive,
		StartedAt: formatDatePtr(t.StartedAt),
		EndedAt:   formatDatePtr(t.EndedAt),
		Version:   t.Version,
		CreatedAt: t.CreatedAt.Format(time.RFC3339),
		UpdatedAt: t.UpdatedAt.Format(time.RFC3339),
	}
}

func toRoomResponse(r *model.Room) *dto.RoomResponse {
	return &dto.RoomResponse{
		ID:       r.RoomID,
		Name:     r.Name,
		Kind:     r.Kind,
		Capacity: r.Capacity,
		Floor:    r.Floor,
		Location: r.Location,
		IsActive: r.IsActive,
	}
}

func toDisciplineResponse(d *model.Discipline) *dto.DisciplineResponse {
	return &dto.DisciplineResponse{
		ID:            d.DisciplineID,
		Code:          d.Code,
		Name:          d.Name,
		WorkloadHours: d.WorkloadHours,
		IsActive:      d.IsActive,
	}
}

func toProfessorResponse(p *model.Professor) *dto.ProfessorResponse {
	return &dto.ProfessorResponse{
		ID:           p.ProfessorID,
		Registration: p.Registration,
		Name:         p.Name,
		Email:        p.Email,
		Department:   p.Department,
		Phone:        p.Phone,
	}
}

func toBookingResponse(b *model.Booking) *dto.BookingResponse {
	resp := &dto.BookingResponse{
		ID:                  b.BookingID,
		TermID:              b.TermID,
		RoomID:              b.RoomID,
		DisciplineID:        b.DisciplineID,
		ProfessorID:         b.ProfessorID,
		DayOfWeek:           b.DayOfWeek,
		DayName:             scheduling.Weekday(b.DayOfWeek).String(),
		StartTime:           model.ToTimeOfDay(b.StartTime).String(),
		EndTime:             model.ToTimeOfDay(b.EndTime).String(),
		StudentCount:        b.StudentCount,
		IsActive:            b.IsActive,
		ExceptionalShutdown: formatDatePtr(b.ExceptionalShutdown),
		Version:             b.Version,
	}
	if b.Room != nil {
		resp.Room = toRoomResponse(b.Room)
	}
	if b.Discipline != nil {
		resp.Discipline = toDisciplineResponse(b.Discipline)
	}
	if b.Professor != nil {
		resp.Professor = toProfessorResponse(b.Professor)
	}
	return resp
}

// ── dates ──

func parseDate(s string) (datatypes.Date, error) {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return datatypes.Date{}, err
	}
	return datatypes.Date(t), nil
}

func formatDate(d datatypes.Date) string {
	return time.Time(d).Format(time.DateOnly)
}

func formatDatePtr(d *datatypes.Date) *string {
	if d == nil {
		return nil
	}
	s := formatDate(*d)
	return &s
}

func strPtr(s string) *string { return &s }
