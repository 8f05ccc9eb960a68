package model

// Staff roles
const (
	RoleAdmin       = "admin"
	RoleCoordinator = "coordinator"
	RoleSecretary   = "secretary"
)

// User administrative staff account table users
type User struct {
	UserID       string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"user_id"`
	Username     string `gorm:"type:varchar(50);not null;uniqueIndex"          json:"username"`
	Name         string `gorm:"type:varchar(150);not null"                     json:"name"`
	Email        string `gorm:"type:varchar(255);not null"                     json:"email"`
	PasswordHash string `gorm:"type:varchar(255);not null"                     json:"-"`
	Role         string `gorm:"type:varchar(20);not null;default:'secretary'"  json:"role"`
	IsActive     bool   `gorm:"not null"                                       json:"is_active"`
	BaseModel
}

// TableName table name
func (User) TableName() string { return "users" }
