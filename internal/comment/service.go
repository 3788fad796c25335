package comment

import (
	"context"
	"log/slog"

	"lsu-service/internal/evaluation"
	"lsu-service/internal/generation"
	"lsu-service/internal/metrics"
	"lsu-service/internal/student"
)

// StudentStore is the slice of the student repository this service needs.
type StudentStore interface {
	GetByID(ctx context.Context, id int) (*student.Student, error)
}

// EvaluationStore yields the evaluation records of one pupil and period,
// in ascending subject-name order.
type EvaluationStore interface {
	ListByStudentPeriod(ctx context.Context, studentID int, period string) ([]evaluation.Evaluation, error)
}

// Producer publishes events after successful persistence (NATS/Kafka)
type Producer interface {
	SendMessage(ctx context.Context, value interface{}) error
}

type Service interface {
	Generate(ctx context.Context, authorID int, req GenerateRequest) (*Comment, error)
	ListByStudent(ctx context.Context, teacherID, studentID int) ([]Comment, error)
	UpdateContent(ctx context.Context, teacherID, commentID int, content string) (*Comment, error)
}

type service struct {
	students    StudentStore
	evaluations EvaluationStore
	comments    Repository
	generator   generation.Client
	producer    Producer
	metrics     *metrics.Metrics
	logger      *slog.Logger
}

func NewService(
	students StudentStore,
	evaluations EvaluationStore,
	comments Repository,
	generator generation.Client,
	producer Producer,
	m *metrics.Metrics,
	logger *slog.Logger,
) Service {
	return &service{
		students:    students,
		evaluations: evaluations,
		comments:    comments,
		generator:   generator,
		producer:    producer,
		metrics:     m,
		logger:      logger,
	}
}

// Generate runs the full pipeline: resolve the pupil, check ownership, fetch
// the period's evaluations, build the prompt, call the provider and store the
// result. The ownership check runs before anything that costs money, and no
// row is ever written for a failed generation. No transaction is held across
// the provider call.
func (s *service) Generate(ctx context.Context, authorID int, req GenerateRequest) (*Comment, error) {
	pupil, err := s.students.GetByID(ctx, req.StudentID)
	if err != nil {
		return nil, err
	}
	if pupil.Class == nil || pupil.Class.TeacherID != authorID {
		return nil, ErrNotClassOwner
	}

	evaluations, err := s.evaluations.ListByStudentPeriod(ctx, req.StudentID, req.Period)
	if err != nil {
		return nil, err
	}

	prompt := BuildPrompt(pupil, evaluations, Kind(req.Kind), req.Observations, req.Period)

	generated, err := s.generator.Generate(ctx, SystemPrompt, prompt)
	if err != nil {
		s.metrics.RecordGenerationFailure(ctx, "provider")
		return nil, &GenerationError{Err: err}
	}

	stored, err := s.comments.Insert(ctx, &Comment{
		StudentID:    req.StudentID,
		AuthorID:     authorID,
		Kind:         Kind(req.Kind),
		Period:       req.Period,
		SchoolYear:   pupil.Class.SchoolYear,
		Content:      generated,
		ModelVersion: s.generator.Name(),
		PromptUsed:   prompt,
	})
	if err != nil {
		// The generation succeeded and cost money; keep the text in the
		// logs so it is not silently lost.
		s.metrics.RecordGenerationFailure(ctx, "storage")
		s.logger.ErrorContext(ctx, "failed to store generated comment",
			"error", err,
			"student_id", req.StudentID,
			"kind", req.Kind,
			"period", req.Period,
			"model", s.generator.Name(),
			"generated_text", generated,
		)
		return nil, &StorageError{Err: err}
	}

	s.metrics.RecordCommentGenerated(ctx, req.Kind, stored.ModelVersion)

	if s.producer != nil {
		event := GeneratedEvent{
			CommentID: stored.ID,
			StudentID: stored.StudentID,
			AuthorID:  stored.AuthorID,
			Kind:      stored.Kind,
			Period:    stored.Period,
			Model:     stored.ModelVersion,
		}
		if err := s.producer.SendMessage(ctx, event); err != nil {
			// Best effort: the comment is stored either way.
			s.logger.WarnContext(ctx, "failed to publish comment event", "error", err)
		}
	}

	s.logger.InfoContext(ctx, "comment generated",
		"comment_id", stored.ID,
		"student_id", stored.StudentID,
		"kind", stored.Kind,
		"model", stored.ModelVersion,
	)

	return stored, nil
}

func (s *service) ListByStudent(ctx context.Context, teacherID, studentID int) ([]Comment, error) {
	pupil, err := s.students.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if pupil.Class == nil || pupil.Class.TeacherID != teacherID {
		return nil, ErrNotClassOwner
	}

	return s.comments.ListByStudent(ctx, studentID)
}

// UpdateContent lets the owning teacher retouch the text by hand. The edited
// flag flips to true; prompt and model version stay untouched.
func (s *service) UpdateContent(ctx context.Context, teacherID, commentID int, content string) (*Comment, error) {
	existing, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}

	pupil, err := s.students.GetByID(ctx, existing.StudentID)
	if err != nil {
		return nil, err
	}
	if pupil.Class == nil || pupil.Class.TeacherID != teacherID {
		return nil, ErrNotClassOwner
	}

	return s.comments.UpdateContent(ctx, commentID, content)
}
