package student

import (
	"context"
	"errors"
	"time"

	"lsu-service/internal/class"
)

var (
	ErrStudentNotFound = errors.New("student not found")
	ErrNotClassOwner   = errors.New("class does not belong to this teacher")
	ErrInvalidInput    = errors.New("invalid input")
)

type Service interface {
	CreateStudent(ctx context.Context, teacherID int, req CreateStudentRequest) (*Student, error)
	GetStudent(ctx context.Context, teacherID, id int) (*Student, error)
	ListStudents(ctx context.Context, teacherID int) ([]Student, error)
	UpdateStudent(ctx context.Context, teacherID, id int, req UpdateStudentRequest) (*Student, error)
}

type service struct {
	repo    Repository
	classes class.Repository
}

func NewService(repo Repository, classes class.Repository) Service {
	return &service{
		repo:    repo,
		classes: classes,
	}
}

func (s *service) CreateStudent(ctx context.Context, teacherID int, req CreateStudentRequest) (*Student, error) {
	cls, err := s.classes.GetByID(ctx, req.ClassID)
	if err != nil {
		return nil, err
	}
	if cls.TeacherID != teacherID {
		return nil, ErrNotClassOwner
	}

	birthDate, err := time.Parse("2006-01-02", req.BirthDate)
	if err != nil {
		return nil, ErrInvalidInput
	}

	student := &Student{
		LastName:     req.LastName,
		FirstName:    req.FirstName,
		BirthDate:    birthDate,
		ClassID:      req.ClassID,
		Observations: req.Observations,
	}
	return s.repo.Create(ctx, student)
}

func (s *service) GetStudent(ctx context.Context, teacherID, id int) (*Student, error) {
	if id <= 0 {
		return nil, ErrInvalidInput
	}
	student, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if student.Class == nil || student.Class.TeacherID != teacherID {
		return nil, ErrNotClassOwner
	}
	return student, nil
}

func (s *service) ListStudents(ctx context.Context, teacherID int) ([]Student, error) {
	return s.repo.ListByTeacher(ctx, teacherID)
}

func (s *service) UpdateStudent(ctx context.Context, teacherID, id int, req UpdateStudentRequest) (*Student, error) {
	student, err := s.GetStudent(ctx, teacherID, id)
	if err != nil {
		return nil, err
	}

	student.LastName = req.LastName
	student.FirstName = req.FirstName
	student.Observations = req.Observations

	if err := s.repo.Update(ctx, student); err != nil {
		return nil, err
	}
	return student, nil
}
