package evaluation

import (
	"context"
	"time"

	"lsu-service/internal/metrics"

	"github.com/uptrace/bun"
)

type Repository interface {
	Create(ctx context.Context, evaluation *Evaluation) (*Evaluation, error)
	ListByStudent(ctx context.Context, studentID int) ([]Evaluation, error)
	ListByStudentPeriod(ctx context.Context, studentID int, period string) ([]Evaluation, error)
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

func (r *repository) Create(ctx context.Context, evaluation *Evaluation) (*Evaluation, error) {
	start := time.Now()
	_, err := r.db.NewInsert().Model(evaluation).Returning("*").Exec(ctx)

	r.metrics.RecordQuery(ctx, "insert", "evaluations", time.Since(start), err)

	if err != nil {
		return nil, err
	}
	return evaluation, nil
}

func (r *repository) ListByStudent(ctx context.Context, studentID int) ([]Evaluation, error) {
	start := time.Now()
	var evaluations []Evaluation
	err := r.db.NewSelect().
		Model(&evaluations).
		Relation("Subject").
		Where("e.student_id = ?", studentID).
		Order("e.period ASC").
		OrderExpr("subject.name ASC").
		Scan(ctx)

	r.metrics.RecordQuery(ctx, "select", "evaluations", time.Since(start), err)

	return evaluations, err
}

// ListByStudentPeriod returns the evaluations of one period in ascending
// subject-name order, which keeps generated prompts reproducible.
func (r *repository) ListByStudentPeriod(ctx context.Context, studentID int, period string) ([]Evaluation, error) {
	start := time.Now()
	var evaluations []Evaluation
	err := r.db.NewSelect().
		Model(&evaluations).
		Relation("Subject").
		Where("e.student_id = ?", studentID).
		Where("e.period = ?", period).
		OrderExpr("subject.name ASC").
		Scan(ctx)

	r.metrics.RecordQuery(ctx, "select", "evaluations", time.Since(start), err)

	return evaluations, err
}
