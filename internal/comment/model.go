package comment

import (
	"time"

	"github.com/uptrace/bun"
)

// Kind is the category of generated narrative text.
type Kind string

const (
	KindBulletin    Kind = "bulletin"
	KindLivret      Kind = "livret"
	KindObservation Kind = "observation"
)

func (k Kind) Valid() bool {
	switch k {
	case KindBulletin, KindLivret, KindObservation:
		return true
	}
	return false
}

// Comment is one generation event. Rows are append-only: the prompt, the
// generated text and the model version form a permanent audit record and are
// never rewritten. Only the content may be retouched by the teacher, which
// flips the Edited flag.
type Comment struct {
	bun.BaseModel `bun:"table:comments,alias:cm"`

	ID           int       `bun:"id,pk,autoincrement" json:"id"`
	StudentID    int       `bun:"student_id,notnull" json:"studentId"`
	AuthorID     int       `bun:"author_id,notnull" json:"authorId"`
	Kind         Kind      `bun:"kind,notnull" json:"kind"`
	Period       string    `bun:"period,notnull" json:"period"`
	SchoolYear   string    `bun:"school_year,notnull" json:"schoolYear"`
	Content      string    `bun:"content,notnull" json:"content"`
	ModelVersion string    `bun:"model_version" json:"modelVersion"`
	PromptUsed   string    `bun:"prompt_used" json:"promptUsed,omitempty"`
	Edited       bool      `bun:"edited,notnull,default:false" json:"edited"`
	CreatedAt    time.Time `bun:"created_at,notnull,default:current_timestamp" json:"createdAt"`
}

// GenerateRequest is the request body for comment generation
type GenerateRequest struct {
	StudentID    int    `json:"studentId" validate:"required,gt=0"`
	Kind         string `json:"kind" validate:"required,oneof=bulletin livret observation"`
	Period       string `json:"period" validate:"required,oneof=P1 P2 P3 P4"`
	Observations string `json:"observations"`
}

// UpdateRequest is the request body for a manual content edit
type UpdateRequest struct {
	Content string `json:"content" validate:"required"`
}

// GeneratedEvent is published after a comment is durably stored.
type GeneratedEvent struct {
	CommentID int    `json:"commentId"`
	StudentID int    `json:"studentId"`
	AuthorID  int    `json:"authorId"`
	Kind      Kind   `json:"kind"`
	Period    string `json:"period"`
	Model     string `json:"model"`
}

// PartitionKey keeps all events of one pupil on the same Kafka partition.
func (e GeneratedEvent) PartitionKey() int { return e.StudentID }
