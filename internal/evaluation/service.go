package evaluation

import (
	"context"
	"errors"
	"fmt"

	"lsu-service/internal/student"
)

var ErrInvalidInput = errors.New("invalid input")

type Service interface {
	RecordEvaluation(ctx context.Context, teacherID int, req CreateEvaluationRequest) (*Evaluation, error)
	ListForStudent(ctx context.Context, teacherID, studentID int) ([]Evaluation, error)
}

type service struct {
	repo     Repository
	students student.Repository
}

func NewService(repo Repository, students student.Repository) Service {
	return &service{
		repo:     repo,
		students: students,
	}
}

func (s *service) RecordEvaluation(ctx context.Context, teacherID int, req CreateEvaluationRequest) (*Evaluation, error) {
	if !ValidPeriod(req.Period) {
		return nil, fmt.Errorf("%w: period must be one of P1-P4", ErrInvalidInput)
	}

	level, err := ParseLevel(req.Level)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	competencies := make(Competencies, len(req.Competencies))
	for name, raw := range req.Competencies {
		competencies[name] = Level(raw)
	}
	if err := competencies.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	pupil, err := s.students.GetByID(ctx, req.StudentID)
	if err != nil {
		return nil, err
	}
	if pupil.Class == nil || pupil.Class.TeacherID != teacherID {
		return nil, student.ErrNotClassOwner
	}

	evaluation := &Evaluation{
		StudentID:    req.StudentID,
		SubjectID:    req.SubjectID,
		ClassID:      pupil.ClassID,
		Period:       req.Period,
		SchoolYear:   pupil.Class.SchoolYear,
		Level:        level,
		Comment:      req.Comment,
		Competencies: competencies,
	}
	return s.repo.Create(ctx, evaluation)
}

func (s *service) ListForStudent(ctx context.Context, teacherID, studentID int) ([]Evaluation, error) {
	pupil, err := s.students.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if pupil.Class == nil || pupil.Class.TeacherID != teacherID {
		return nil, student.ErrNotClassOwner
	}

	return s.repo.ListByStudent(ctx, studentID)
}
