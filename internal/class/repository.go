package class

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"lsu-service/internal/metrics"

	"github.com/uptrace/bun"
)

type Repository interface {
	Create(ctx context.Context, class *Class) (*Class, error)
	GetByID(ctx context.Context, id int) (*Class, error)
	ListByTeacher(ctx context.Context, teacherID int) ([]Class, error)
	Exists(ctx context.Context, teacherID int, name, schoolYear string) (bool, error)
	SetPhotoPath(ctx context.Context, id int, path string) error
}

type repository struct {
	db      *bun.DB
	metrics *metrics.Metrics
}

func NewRepository(db *bun.DB, m *metrics.Metrics) Repository {
	return &repository{
		db:      db,
		metrics: m,
	}
}

func (r *repository) Create(ctx context.Context, class *Class) (*Class, error) {
	start := time.Now()
	_, err := r.db.NewInsert().Model(class).Returning("*").Exec(ctx)

	r.metrics.RecordQuery(ctx, "insert", "classes", time.Since(start), err)

	if err != nil {
		return nil, err
	}
	return class, nil
}

func (r *repository) GetByID(ctx context.Context, id int) (*Class, error) {
	start := time.Now()
	class := new(Class)
	err := r.db.NewSelect().Model(class).Where("c.id = ?", id).Scan(ctx)

	r.metrics.RecordQuery(ctx, "select", "classes", time.Since(start), err)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrClassNotFound
		}
		return nil, err
	}
	return class, nil
}

func (r *repository) ListByTeacher(ctx context.Context, teacherID int) ([]Class, error) {
	start := time.Now()
	var classes []Class
	err := r.db.NewSelect().
		Model(&classes).
		Where("teacher_id = ?", teacherID).
		Order("name ASC").
		Scan(ctx)

	r.metrics.RecordQuery(ctx, "select", "classes", time.Since(start), err)

	return classes, err
}

func (r *repository) Exists(ctx context.Context, teacherID int, name, schoolYear string) (bool, error) {
	start := time.Now()
	exists, err := r.db.NewSelect().
		Model((*Class)(nil)).
		Where("teacher_id = ?", teacherID).
		Where("name = ?", name).
		Where("school_year = ?", schoolYear).
		Exists(ctx)

	r.metrics.RecordQuery(ctx, "select", "classes", time.Since(start), err)

	return exists, err
}

func (r *repository) SetPhotoPath(ctx context.Context, id int, path string) error {
	start := time.Now()
	result, err := r.db.NewUpdate().
		Model((*Class)(nil)).
		Set("photo_path = ?", path).
		Where("id = ?", id).
		Exec(ctx)

	r.metrics.RecordQuery(ctx, "update", "classes", time.Since(start), err)

	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrClassNotFound
	}
	return nil
}
