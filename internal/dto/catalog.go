package dto

// ── Rooms ──

// CreateRoomRequest create room body
type CreateRoomRequest struct {
	Name     string `json:"name"     binding:"required,min=1,max=100"`
	Kind     string `json:"kind"     binding:"required,oneof=LAB SAL AUD OUT"`
	Capacity int    `json:"capacity" binding:"required,min=1"`
	Floor    int    `json:"floor"`
	Location string `json:"location" binding:"omitempty,max=200"`
	IsActive *bool  `json:"is_active"`
}

// UpdateRoomRequest partial room update
type UpdateRoomRequest struct {
	Name     *string `json:"name"     binding:"omitempty,min=1,max=100"`
	Kind     *string `json:"kind"     binding:"omitempty,oneof=LAB SAL AUD OUT"`
	Capacity *int    `json:"capacity" binding:"omitempty,min=1"`
	Floor    *int    `json:"floor"`
	Location *string `json:"location" binding:"omitempty,max=200"`
	IsActive *bool   `json:"is_active"`
}

// RoomListRequest room list query
type RoomListRequest struct {
	PaginationRequest
	Kind            string `form:"kind"             binding:"omitempty,oneof=LAB SAL AUD OUT"`
	MinCapacity     int    `form:"min_capacity"     binding:"omitempty,min=1"`
	Keyword         string `form:"keyword"          binding:"omitempty,max=100"`
	IncludeInactive bool   `form:"include_inactive"`
}

// RoomResponse room view
type RoomResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Kind     string `json:"kind"`
	Capacity int    `json:"capacity"`
	Floor    int    `json:"floor"`
	Location string `json:"location,omitempty"`
	IsActive bool   `json:"is_active"`
}

// ── Disciplines ──

// CreateDisciplineRequest create discipline body
type CreateDisciplineRequest struct {
	Code          string `json:"code"           binding:"required,min=1,max=20"`
	Name          string `json:"name"           binding:"required,min=1,max=200"`
	WorkloadHours int    `json:"workload_hours" binding:"required,min=1"`
	IsActive      *bool  `json:"is_active"`
}

// UpdateDisciplineRequest partial discipline update
type UpdateDisciplineRequest struct {
	Code          *string `json:"code"           binding:"omitempty,min=1,max=20"`
	Name          *string `json:"name"           binding:"omitempty,min=1,max=200"`
	WorkloadHours *int    `json:"workload_hours" binding:"omitempty,min=1"`
	IsActive      *bool   `json:"is_active"`
}

// DisciplineListRequest discipline list query
type DisciplineListRequest struct {
	PaginationRequest
	Keyword         string `form:"keyword"          binding:"omitempty,max=100"`
	IncludeInactive bool   `form:"include_inactive"`
}

// DisciplineResponse discipline view
type DisciplineResponse struct {
	ID            string `json:"id"`
	Code          string `json:"code"`
	Name          string `json:"name"`
	WorkloadHours int    `json:"workload_hours"`
	IsActive      bool   `json:"is_active"`
}

// ── Professors ──

// CreateProfessorRequest create professor body
type CreateProfessorRequest struct {
	Registration string `json:"registration" binding:"required,min=1,max=20"`
	Name         string `json:"name"         binding:"required,min=2,max=150"`
	Email        string `json:"email"        binding:"omitempty,email,max=255"`
	Department   string `json:"department"   binding:"required,max=100"`
	Phone        string `json:"phone"        binding:"omitempty,max=15"`
}

// UpdateProfessorRequest partial professor update
type UpdateProfessorRequest struct {
	Registration *string `json:"registration" binding:"omitempty,min=1,max=20"`
	Name         *string `json:"name"         binding:"omitempty,min=2,max=150"`
	Email        *string `json:"email"        binding:"omitempty,email,max=255"`
	Department   *string `json:"department"   binding:"omitempty,max=100"`
	Phone        *string `json:"phone"        binding:"omitempty,max=15"`
}

// ProfessorListRequest professor list query
type ProfessorListRequest struct {
	PaginationRequest
	Keyword    string `form:"keyword"    binding:"omitempty,max=100"`
	Department string `form:"department" binding:"omitempty,max=100"`
}

// ProfessorResponse professor view
type ProfessorResponse struct {
	ID           string `json:"id"`
	Registration string `json:"registration"`
	Name         string `json:"name"`
	Email        string `json:"email,omitempty"`
	Department   string `json:"department"`
	Phone        string `json:"phone,omitempty"`
}
