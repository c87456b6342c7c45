// Package application composes the aggregation and chart-building core
// into an instrumented pipeline and connects it to the rendering and
// export collaborators.
package application

import (
	"context"
	"fmt"
	"time"

	"github.com/hedibmustapha/msni19/internal/chart"
	"github.com/hedibmustapha/msni19/internal/domain"
	"github.com/hedibmustapha/msni19/internal/ports"
)

// Request carries one severity-chart computation: the microdata table,
// the caller-chosen column keys, the chart configuration, and the
// optional weighting collaborator.
type Request struct {
	// Table is the survey microdata.
	Table domain.Table

	// GroupColumn is the column key of the group dimension.
	GroupColumn string

	// IndexColumn is the column key of the severity index measure.
	IndexColumn string

	// Config controls scale, labeling, ordering, and geometry.
	Config chart.Config

	// WeightFn optionally supplies per-record sampling weights. Nil
	// means unit weights.
	WeightFn domain.WeightFunc
}

// Pipeline runs aggregate then build, optionally reporting latency and
// volume metrics and delegating export. The zero collaborators are
// no-ops: a Pipeline without metrics or exporter is a plain composition
// of the two pure core functions.
type Pipeline struct {
	metrics  ports.MetricsCollector
	exporter ports.Exporter
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithMetrics attaches a metrics collector to the pipeline.
func WithMetrics(m ports.MetricsCollector) Option {
	return func(p *Pipeline) { p.metrics = m }
}

// WithExporter attaches an export collaborator to the pipeline.
func WithExporter(e ports.Exporter) Option {
	return func(p *Pipeline) { p.exporter = e }
}

// NewPipeline creates a pipeline with the given options.
func NewPipeline(opts ...Option) *Pipeline {
	p := &Pipeline{}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run aggregates the request's table into band shares and builds the
// chart description. The core functions stay pure; instrumentation
// wraps them from the outside.
func (p *Pipeline) Run(req Request) (*chart.Description, error) {
	start := time.Now()
	shares, err := domain.AggregateBands(
		req.Table, req.GroupColumn, req.IndexColumn, req.Config.Scale, req.WeightFn)
	if err != nil {
		p.count("aggregations_total", "error")
		return nil, fmt.Errorf("aggregation failed: %w", err)
	}
	p.observe("aggregate", time.Since(start))
	p.histogram("aggregation_records", float64(req.Table.Len()))
	p.count("aggregations_total", "success")

	start = time.Now()
	desc, err := chart.Build(shares, req.Config)
	if err != nil {
		p.count("chart_builds_total", "error")
		return nil, fmt.Errorf("chart build failed: %w", err)
	}
	p.observe("build", time.Since(start))
	p.count("chart_builds_total", "success")
	if len(desc.Warnings) > 0 {
		p.count("chart_build_warnings_total", "warning")
	}

	return desc, nil
}

// Export delegates the side-effecting tail step to the configured
// export collaborator. It is only ever invoked explicitly; Run never
// exports.
func (p *Pipeline) Export(ctx context.Context, desc *chart.Description, filename, dir string) error {
	if p.exporter == nil {
		return fmt.Errorf("no exporter configured")
	}
	start := time.Now()
	if err := p.exporter.Export(ctx, desc, filename, dir); err != nil {
		p.count("chart_exports_total", "error")
		return err
	}
	p.observe("export", time.Since(start))
	p.count("chart_exports_total", "success")
	return nil
}

func (p *Pipeline) observe(operation string, d time.Duration) {
	if p.metrics != nil {
		p.metrics.RecordLatency(operation, d, nil)
	}
}

func (p *Pipeline) count(metric, status string) {
	if p.metrics != nil {
		p.metrics.RecordCounter(metric, 1, map[string]string{"status": status})
	}
}

func (p *Pipeline) histogram(metric string, v float64) {
	if p.metrics != nil {
		p.metrics.RecordHistogram(metric, v, nil)
	}
}
