package settings

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"lsu-service/internal/metrics"

	"github.com/uptrace/bun"
)

var ErrParameterNotFound = errors.New("parameter not found")

type Repository interface {
	List(ctx context.Context) ([]Parameter, error)
	GetByKey(ctx context.Context, key string) (*Parameter, error)
	UpdateValue(ctx context.Context, key, value string) (*Parameter, error)
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

func (r *repository) List(ctx context.Context) ([]Parameter, error) {
	start := time.Now()
	var params []Parameter
	err := r.db.NewSelect().
		Model(&params).
		Order("key ASC").
		Scan(ctx)

	r.metrics.RecordQuery(ctx, "select", "parameters", time.Since(start), err)

	return params, err
}

func (r *repository) GetByKey(ctx context.Context, key string) (*Parameter, error) {
	start := time.Now()
	param := new(Parameter)
	err := r.db.NewSelect().Model(param).Where("prm.key = ?", key).Scan(ctx)

	r.metrics.RecordQuery(ctx, "select", "parameters", time.Since(start), err)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrParameterNotFound
		}
		return nil, err
	}
	return param, nil
}

func (r *repository) UpdateValue(ctx context.Context, key, value string) (*Parameter, error) {
	start := time.Now()
	param := new(Parameter)
	err := r.db.NewUpdate().
		Model(param).
		Set("value = ?", value).
		Set("updated_at = CURRENT_TIMESTAMP").
		Where("key = ?", key).
		Returning("*").
		Scan(ctx)

	r.metrics.RecordQuery(ctx, "update", "parameters", time.Since(start), err)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrParameterNotFound
		}
		return nil, err
	}
	return param, nil
}

// Seed inserts the default parameters, skipping keys that already exist.
func Seed(ctx context.Context, db *bun.DB) error {
	params := Defaults()
	_, err := db.NewInsert().
		Model(&params).
		On("CONFLICT (key) DO NOTHING").
		Exec(ctx)
	return err
}
