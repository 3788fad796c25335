package subject

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"lsu-service/internal/metrics"

	"github.com/uptrace/bun"
)

var ErrSubjectNotFound = errors.New("subject not found")

type Repository interface {
	List(ctx context.Context) ([]Subject, error)
	GetByID(ctx context.Context, id int) (*Subject, error)
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

func (r *repository) List(ctx context.Context) ([]Subject, error) {
	start := time.Now()
	var subjects []Subject
	err := r.db.NewSelect().
		Model(&subjects).
		Where("active = TRUE").
		Order("name ASC").
		Scan(ctx)

	r.metrics.RecordQuery(ctx, "select", "subjects", time.Since(start), err)

	return subjects, err
}

func (r *repository) GetByID(ctx context.Context, id int) (*Subject, error) {
	start := time.Now()
	subject := new(Subject)
	err := r.db.NewSelect().Model(subject).Where("sub.id = ?", id).Scan(ctx)

	r.metrics.RecordQuery(ctx, "select", "subjects", time.Since(start), err)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSubjectNotFound
		}
		return nil, err
	}
	return subject, nil
}

// Seed inserts the default subject catalogue, skipping codes that already exist.
func Seed(ctx context.Context, db *bun.DB) error {
	subjects := Defaults()
	_, err := db.NewInsert().
		Model(&subjects).
		On("CONFLICT (code) DO NOTHING").
		Exec(ctx)
	return err
}
