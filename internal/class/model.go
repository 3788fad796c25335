package class

import (
	"time"

	"github.com/uptrace/bun"
)

// Class is a school class (CP to CM2) owned by exactly one teacher.
type Class struct {
	bun.BaseModel `bun:"table:classes,alias:c"`

	ID         int       `bun:"id,pk,autoincrement" json:"id"`
	Name       string    `bun:"name,notnull" json:"name"`
	SchoolYear string    `bun:"school_year,notnull" json:"schoolYear"`
	TeacherID  int       `bun:"teacher_id,notnull" json:"teacherId"`
	PhotoPath  string    `bun:"photo_path" json:"photoPath,omitempty"`
	CreatedAt  time.Time `bun:"created_at,notnull,default:current_timestamp" json:"createdAt"`
}

// CreateClassRequest is the request body for class creation
type CreateClassRequest struct {
	Name       string `json:"name" validate:"required"`
	SchoolYear string `json:"schoolYear" validate:"required,len=9"` // e.g. "2024-2025"
}
