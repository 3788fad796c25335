package metrics

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

type Metrics struct {
	commentsGenerated   metric.Int64Counter
	generationFailures  metric.Int64Counter
	pupilsCreated       metric.Int64Counter
	classesCreated      metric.Int64Counter
	evaluationsRecorded metric.Int64Counter

	Database *DatabaseMetrics
}

func New(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{}

	var err error

	m.commentsGenerated, err = meter.Int64Counter(
		"lsu_service.comments.generated",
		metric.WithDescription("Total number of AI comments generated and stored"),
		metric.WithUnit("{comment}"),
	)
	if err != nil {
		return nil, err
	}

	m.generationFailures, err = meter.Int64Counter(
		"lsu_service.generation.failures",
		metric.WithDescription("Total number of failed generation calls"),
		metric.WithUnit("{failure}"),
	)
	if err != nil {
		return nil, err
	}

	m.pupilsCreated, err = meter.Int64Counter(
		"lsu_service.pupils.created",
		metric.WithDescription("Total number of pupils created"),
		metric.WithUnit("{pupil}"),
	)
	if err != nil {
		return nil, err
	}

	m.classesCreated, err = meter.Int64Counter(
		"lsu_service.classes.created",
		metric.WithDescription("Total number of classes created"),
		metric.WithUnit("{class}"),
	)
	if err != nil {
		return nil, err
	}

	m.evaluationsRecorded, err = meter.Int64Counter(
		"lsu_service.evaluations.recorded",
		metric.WithDescription("Total number of subject evaluations recorded"),
		metric.WithUnit("{evaluation}"),
	)
	if err != nil {
		return nil, err
	}

	m.Database, err = NewDatabaseMetrics(meter)
	if err != nil {
		return nil, err
	}

	return m, nil
}

func (m *Metrics) RecordCommentGenerated(ctx context.Context, kind string, model string) {
	if m == nil || m.commentsGenerated == nil {
		return
	}
	m.commentsGenerated.Add(ctx, 1, metric.WithAttributes(
		attribute.String("kind", kind),
		attribute.String("model", model),
	))
}

func (m *Metrics) RecordGenerationFailure(ctx context.Context, reason string) {
	if m == nil || m.generationFailures == nil {
		return
	}
	m.generationFailures.Add(ctx, 1, metric.WithAttributes(
		attribute.String("reason", reason),
	))
}

func (m *Metrics) RecordPupilCreated(ctx context.Context) {
	if m == nil || m.pupilsCreated == nil {
		return
	}
	m.pupilsCreated.Add(ctx, 1)
}

func (m *Metrics) RecordClassCreated(ctx context.Context) {
	if m == nil || m.classesCreated == nil {
		return
	}
	m.classesCreated.Add(ctx, 1)
}

func (m *Metrics) RecordEvaluationRecorded(ctx context.Context) {
	if m == nil || m.evaluationsRecorded == nil {
		return
	}
	m.evaluationsRecorded.Add(ctx, 1)
}
