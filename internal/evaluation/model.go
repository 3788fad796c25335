package evaluation

import (
	"fmt"
	"time"

	"lsu-service/internal/subject"

	"github.com/uptrace/bun"
)

// Level is the four-point qualitative scale used on the Livret Scolaire Unique.
type Level string

const (
	LevelInsufficient Level = "Insuffisant"
	LevelFragile      Level = "Fragile"
	LevelSatisfactory Level = "Satisfaisant"
	LevelVeryGood     Level = "Très bien"
)

// Levels returns the scale in ascending order.
func Levels() []Level {
	return []Level{LevelInsufficient, LevelFragile, LevelSatisfactory, LevelVeryGood}
}

// Rank returns the position of the level on the ascending scale, -1 if unknown.
func (l Level) Rank() int {
	for i, level := range Levels() {
		if l == level {
			return i
		}
	}
	return -1
}

func (l Level) Valid() bool {
	return l.Rank() >= 0
}

// ParseLevel validates a raw level value at the store boundary.
func ParseLevel(raw string) (Level, error) {
	l := Level(raw)
	if !l.Valid() {
		return "", fmt.Errorf("unknown level %q", raw)
	}
	return l, nil
}

// Competencies maps a competency name to its rating. It replaces the free-form
// JSON blob the paper forms used: every rating is validated before storage.
type Competencies map[string]Level

func (c Competencies) Validate() error {
	for name, level := range c {
		if name == "" {
			return fmt.Errorf("empty competency name")
		}
		if !level.Valid() {
			return fmt.Errorf("competency %q: unknown level %q", name, level)
		}
	}
	return nil
}

// Periods are the four school terms of a year.
var Periods = []string{"P1", "P2", "P3", "P4"}

func ValidPeriod(period string) bool {
	for _, p := range Periods {
		if p == period {
			return true
		}
	}
	return false
}

// Evaluation is one subject evaluation of a pupil for a period. Records are
// immutable once written: the comment generator only ever reads them.
type Evaluation struct {
	bun.BaseModel `bun:"table:evaluations,alias:e"`

	ID           int              `bun:"id,pk,autoincrement" json:"id"`
	StudentID    int              `bun:"student_id,notnull" json:"studentId"`
	SubjectID    int              `bun:"subject_id,notnull" json:"subjectId"`
	ClassID      int              `bun:"class_id,notnull" json:"classId"`
	Period       string           `bun:"period,notnull" json:"period"`
	SchoolYear   string           `bun:"school_year,notnull" json:"schoolYear"`
	Level        Level            `bun:"level,notnull" json:"level"`
	Comment      string           `bun:"comment" json:"comment,omitempty"`
	Competencies Competencies     `bun:"competencies,type:jsonb" json:"competencies,omitempty"`
	EvaluatedAt  time.Time        `bun:"evaluated_at,notnull,default:current_timestamp" json:"evaluatedAt"`
	Subject      *subject.Subject `bun:"rel:belongs-to,join:subject_id=id" json:"subject,omitempty"`
}

// CreateEvaluationRequest is the request body for recording an evaluation
type CreateEvaluationRequest struct {
	StudentID    int               `json:"studentId" validate:"required,gt=0"`
	SubjectID    int               `json:"subjectId" validate:"required,gt=0"`
	Period       string            `json:"period" validate:"required"`
	Level        string            `json:"level" validate:"required"`
	Comment      string            `json:"comment"`
	Competencies map[string]string `json:"competencies"`
}
