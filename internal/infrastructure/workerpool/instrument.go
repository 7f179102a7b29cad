package workerpool

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/janhq/jan-summarizer/workerpool"

// instrumenter exports pool jobs through the OTLP pipeline.
type instrumenter struct {
	tracer      trace.Tracer
	jobsActive  metric.Int64UpDownCounter
	jobDuration metric.Float64Histogram
	jobsTotal   metric.Int64Counter
}

func newInstrumenter(tracer trace.Tracer, meter metric.Meter) (*instrumenter, error) {
	jobsActive, err := meter.Int64UpDownCounter(
		"jan_summarizer_generations_active",
		metric.WithDescription("Generations currently holding a pool slot"),
	)
	if err != nil {
		return nil, err
	}

	jobDuration, err := meter.Float64Histogram(
		"jan_summarizer_generation_job_duration_seconds",
		metric.WithDescription("Time a generation spent running on the pool"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	jobsTotal, err := meter.Int64Counter(
		"jan_summarizer_generation_jobs_total",
		metric.WithDescription("Generations processed by the pool"),
	)
	if err != nil {
		return nil, err
	}

	return &instrumenter{
		tracer:      tracer,
		jobsActive:  jobsActive,
		jobDuration: jobDuration,
		jobsTotal:   jobsTotal,
	}, nil
}

func newGlobalInstrumenter() (*instrumenter, error) {
	return newInstrumenter(otel.Tracer(instrumentationName), otel.Meter(instrumentationName))
}

func (i *instrumenter) run(ctx context.Context, fn func(context.Context) error) error {
	i.jobsActive.Add(ctx, 1)
	defer i.jobsActive.Add(ctx, -1)

	ctx, span := i.tracer.Start(ctx, "workerpool.generation")
	defer span.End()

	start := time.Now()
	err := fn(ctx)

	status := "success"
	if err != nil {
		status = "error"
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	attrs := metric.WithAttributes(attribute.String("status", status))
	i.jobDuration.Record(ctx, time.Since(start).Seconds(), attrs)
	i.jobsTotal.Add(ctx, 1, attrs)
	return err
}
