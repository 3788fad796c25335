package student

import (
	"time"

	"lsu-service/internal/class"

	"github.com/uptrace/bun"
)

// Student is a pupil enrolled in exactly one class.
type Student struct {
	bun.BaseModel `bun:"table:students,alias:s"`

	ID           int          `bun:"id,pk,autoincrement" json:"id"`
	LastName     string       `bun:"last_name,notnull" json:"lastName"`
	FirstName    string       `bun:"first_name,notnull" json:"firstName"`
	BirthDate    time.Time    `bun:"birth_date,notnull" json:"birthDate"`
	ClassID      int          `bun:"class_id,notnull" json:"classId"`
	PhotoPath    string       `bun:"photo_path" json:"photoPath,omitempty"`
	Observations string       `bun:"observations" json:"observations,omitempty"`
	CreatedAt    time.Time    `bun:"created_at,notnull,default:current_timestamp" json:"createdAt"`
	Class        *class.Class `bun:"rel:belongs-to,join:class_id=id" json:"class,omitempty"`
}

// FullName renders the pupil name the way report cards do.
func (s *Student) FullName() string {
	return s.FirstName + " " + s.LastName
}

// CreateStudentRequest is the request body for pupil creation
type CreateStudentRequest struct {
	LastName     string `json:"lastName" validate:"required"`
	FirstName    string `json:"firstName" validate:"required"`
	BirthDate    string `json:"birthDate" validate:"required,datetime=2006-01-02"`
	ClassID      int    `json:"classId" validate:"required,gt=0"`
	Observations string `json:"observations"`
}

// UpdateStudentRequest is the request body for pupil updates
type UpdateStudentRequest struct {
	LastName     string `json:"lastName" validate:"required"`
	FirstName    string `json:"firstName" validate:"required"`
	Observations string `json:"observations"`
}
