package comment

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"lsu-service/internal/metrics"

	"github.com/uptrace/bun"
)

type Repository interface {
	// Insert always creates a new row; one generation call, one record.
	Insert(ctx context.Context, comment *Comment) (*Comment, error)
	GetByID(ctx context.Context, id int) (*Comment, error)
	ListByStudent(ctx context.Context, studentID int) ([]Comment, error)
	// UpdateContent replaces the content and marks the row as manually
	// edited. Prompt, model version and the original generation text's
	// provenance columns are never touched.
	UpdateContent(ctx context.Context, id int, content string) (*Comment, error)
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

func (r *repository) Insert(ctx context.Context, comment *Comment) (*Comment, error) {
	start := time.Now()
	_, err := r.db.NewInsert().Model(comment).Returning("*").Exec(ctx)

	r.metrics.RecordQuery(ctx, "insert", "comments", time.Since(start), err)

	if err != nil {
		return nil, err
	}
	return comment, nil
}

func (r *repository) GetByID(ctx context.Context, id int) (*Comment, error) {
	start := time.Now()
	comment := new(Comment)
	err := r.db.NewSelect().Model(comment).Where("cm.id = ?", id).Scan(ctx)

	r.metrics.RecordQuery(ctx, "select", "comments", time.Since(start), err)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	return comment, nil
}

func (r *repository) ListByStudent(ctx context.Context, studentID int) ([]Comment, error) {
	start := time.Now()
	var comments []Comment
	err := r.db.NewSelect().
		Model(&comments).
		Where("student_id = ?", studentID).
		Order("created_at DESC").
		Scan(ctx)

	r.metrics.RecordQuery(ctx, "select", "comments", time.Since(start), err)

	return comments, err
}

func (r *repository) UpdateContent(ctx context.Context, id int, content string) (*Comment, error) {
	start := time.Now()
	comment := new(Comment)
	err := r.db.NewUpdate().
		Model(comment).
		Set("content = ?", content).
		Set("edited = TRUE").
		Where("id = ?", id).
		Returning("*").
		Scan(ctx)

	r.metrics.RecordQuery(ctx, "update", "comments", time.Since(start), err)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	return comment, nil
}
