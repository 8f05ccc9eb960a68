package model

// Room kinds
const (
	RoomKindLab        = "LAB"
	RoomKindClassroom  = "SAL"
	RoomKindAuditorium = "AUD"
	RoomKindOther      = "OUT"
)

// Room table rooms
type Room struct {
	RoomID   string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"room_id"`
	Name     string `gorm:"type:varchar(100);not null;uniqueIndex"         json:"name"`
	Kind     string `gorm:"type:varchar(3);not null"                       json:"kind"`
	Capacity int    `gorm:"not null"                                       json:"capacity"`
	Floor    int    `gorm:"not null;default:0"                             json:"floor"`
	Location string `gorm:"type:varchar(200)"                              json:"location,omitempty"`
	IsActive bool   `gorm:"not null"                                       json:"is_active"`
	BaseModel
}

// TableName table name
func (Room) TableName() string { return "rooms" }

// Discipline table disciplines
type Discipline struct {
	DisciplineID  string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"discipline_id"`
	Code          string `gorm:"type:varchar(20);not null;uniqueIndex"          json:"code"`
	Name          string `gorm:"type:varchar(200);not null"                     json:"name"`
	WorkloadHours int    `gorm:"not null"                                       json:"workload_hours"`
	IsActive      bool   `gorm:"not null"                                       json:"is_active"`
	BaseModel
}

// TableName table name
func (Discipline) TableName() string { return "disciplines" }

// Professor table professors
type Professor struct {
	ProfessorID  string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"professor_id"`
	Registration string `gorm:"type:varchar(20);not null;uniqueIndex"          json:"registration"`
	Name         string `gorm:"type:varchar(150);not null"                     json:"name"`
	Email        string `gorm:"type:varchar(255)"                              json:"email,omitempty"`
	Department   string `gorm:"type:varchar(100);not null"                     json:"department"`
	Phone        string `gorm:"type:varchar(15)"                               json:"phone,omitempty"`
	BaseModel
}

// TableName table name
func (Professor) TableName() string { return "professors" }
