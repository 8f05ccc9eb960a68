package dto

// ── Bookings ──

// BookingRequest create body, also the body of POST /bookings/check
type BookingRequest struct {
	TermID              string  `json:"term_id"              binding:"required,uuid"`
	RoomID              string  `json:"room_id"              binding:"required,uuid"`
	DisciplineID        string  `json:"discipline_id"        binding:"required,uuid"`
	ProfessorID         string  `json:"professor_id"         binding:"required,uuid"`
	DayOfWeek           *int    `json:"day_of_week"          binding:"required,weekday"`
	StartTime           string  `json:"start_time"           binding:"required,hhmm"`
	EndTime             string  `json:"end_time"             binding:"required,hhmm"`
	StudentCount        int     `json:"student_count"        binding:"omitempty,min=0"`
	IsActive            *bool   `json:"is_active"`
	ExceptionalShutdown *string `json:"exceptional_shutdown" binding:"omitempty,datetime=2006-01-02"`
	// BookingID is set by Check when validating an edit.
	BookingID string `json:"booking_id" binding:"omitempty,uuid"`
}

// UpdateBookingRequest partial booking update
type UpdateBookingRequest struct {
	TermID              *string `json:"term_id"              binding:"omitempty,uuid"`
	RoomID              *string `json:"room_id"              binding:"omitempty,uuid"`
	DisciplineID        *string `json:"discipline_id"        binding:"omitempty,uuid"`
	ProfessorID         *string `json:"professor_id"         binding:"omitempty,uuid"`
	DayOfWeek           *int    `json:"day_of_week"          binding:"omitempty,weekday"`
	StartTime           *string `json:"start_time"           binding:"omitempty,hhmm"`
	EndTime             *string `json:"end_time"             binding:"omitempty,hhmm"`
	StudentCount        *int    `json:"student_count"        binding:"omitempty,min=0"`
	IsActive            *bool   `json:"is_active"`
	ExceptionalShutdown *string `json:"exceptional_shutdown" binding:"omitempty,datetime=2006-01-02"`
	// Version enables optimistic locking when sent.
	Version *int `json:"version"`
}

// BookingListRequest booking list query
type BookingListRequest struct {
	PaginationRequest
	TermID       string `form:"term_id"       binding:"omitempty,uuid"`
	RoomID       string `form:"room_id"       binding:"omitempty,uuid"`
	DisciplineID string `form:"discipline_id" binding:"omitempty,uuid"`
	ProfessorID  string `form:"professor_id"  binding:"omitempty,uuid"`
	DayOfWeek    *int   `form:"day_of_week"   binding:"omitempty,weekday"`
	ActiveOnly   bool   `form:"active"`
}

// BookingResponse booking view
type BookingResponse struct {
	ID                  string              `json:"id"`
	TermID              string              `json:"term_id"`
	Room                *RoomResponse       `json:"room,omitempty"`
	RoomID              string              `json:"room_id"`
	Discipline          *DisciplineResponse `json:"discipline,omitempty"`
	DisciplineID        string              `json:"discipline_id"`
	Professor           *ProfessorResponse  `json:"professor,omitempty"`
	ProfessorID         string              `json:"professor_id"`
	DayOfWeek           int                 `json:"day_of_week"`
	DayName             string              `json:"day_name"`
	StartTime           string              `json:"start_time"`
	EndTime             string              `json:"end_time"`
	StudentCount        int                 `json:"student_count"`
	IsActive            bool                `json:"is_active"`
	ExceptionalShutdown *string             `json:"exceptional_shutdown,omitempty"`
	Version             int                 `json:"version"`
}

// ConflictItem one booking that collides with the proposal
type ConflictItem struct {
	BookingID      string `json:"booking_id"`
	DisciplineCode string `json:"discipline_code,omitempty"`
	RoomName       string `json:"room_name,omitempty"`
	DayOfWeek      int    `json:"day_of_week"`
	StartTime      string `json:"start_time"`
	EndTime        string `json:"end_time"`
}

// CheckResponse outcome of a dry-run conflict check
type CheckResponse struct {
	Conflict  bool           `json:"conflict"`
	Conflicts []ConflictItem `json:"conflicts"`
}
