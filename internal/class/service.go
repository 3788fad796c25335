package class

import (
	"context"
	"errors"
)

var (
	ErrClassNotFound = errors.New("class not found")
	ErrClassExists   = errors.New("class already exists for this school year")
	ErrNotOwner      = errors.New("class does not belong to this teacher")
	ErrInvalidInput  = errors.New("invalid input")
)

type Service interface {
	CreateClass(ctx context.Context, teacherID int, req CreateClassRequest) (*Class, error)
	GetClass(ctx context.Context, teacherID, id int) (*Class, error)
	ListClasses(ctx context.Context, teacherID int) ([]Class, error)
	AttachPhoto(ctx context.Context, teacherID, id int, path string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{
		repo: repo,
	}
}

func (s *service) CreateClass(ctx context.Context, teacherID int, req CreateClassRequest) (*Class, error) {
	exists, err := s.repo.Exists(ctx, teacherID, req.Name, req.SchoolYear)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrClassExists
	}

	class := &Class{
		Name:       req.Name,
		SchoolYear: req.SchoolYear,
		TeacherID:  teacherID,
	}
	return s.repo.Create(ctx, class)
}

func (s *service) GetClass(ctx context.Context, teacherID, id int) (*Class, error) {
	if id <= 0 {
		return nil, ErrInvalidInput
	}
	class, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if class.TeacherID != teacherID {
		return nil, ErrNotOwner
	}
	return class, nil
}

func (s *service) ListClasses(ctx context.Context, teacherID int) ([]Class, error) {
	return s.repo.ListByTeacher(ctx, teacherID)
}

func (s *service) AttachPhoto(ctx context.Context, teacherID, id int, path string) error {
	if _, err := s.GetClass(ctx, teacherID, id); err != nil {
		return err
	}
	return s.repo.SetPhotoPath(ctx, id, path)
}
