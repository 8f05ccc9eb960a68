package dto

// ── Terms ──

// CreateTermRequest create term body
type CreateTermRequest struct {
	Year      int    `json:"year"       binding:"required,min=2000,max=2100"`
	Period    int    `json:"period"     binding:"required,oneof=1 2"`
	StartDate string `json:"start_date" binding:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date"   binding:"required,datetime=2006-01-02"`
}

// UpdateTermRequest partial term update; is_active is changed only by activation
type UpdateTermRequest struct {
	Year      *int    `json:"year"       binding:"omitempty,min=2000,max=2100"`
	Period    *int    `json:"period"     binding:"omitempty,oneof=1 2"`
	StartDate *string `json:"start_date" binding:"omitempty,datetime=2006-01-02"`
	EndDate   *string `json:"end_date"   binding:"omitempty,datetime=2006-01-02"`
}

// TermResponse term view
type TermResponse struct {
	ID        string  `json:"id"`
	Label     string  `json:"label"` // "2025.1"
	Year      int     `json:"year"`
	Period    int     `json:"period"`
	StartDate string  `json:"start_date"`
	EndDate   string  `json:"end_date"`
	IsActive  bool    `json:"is_active"`
	StartedAt *string `json:"started_at,omitempty"`
	EndedAt   *string `json:"ended_at,omitempty"`
	Version   int     `json:"version"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
}
