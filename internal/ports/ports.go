// Package ports defines the interfaces that connect the pure
// aggregation and chart-building core to its collaborators: rendering,
// export, and metrics. These interfaces enable dependency inversion and
// make the pipeline testable without a graphics backend.
package ports

import (
	"context"
	"io"
	"time"

	"github.com/hedibmustapha/msni19/internal/chart"
)

// Renderer turns a renderer-agnostic chart description into a drawable
// chart. Implementations own all pixel-level concerns: layout, color
// interpolation, fonts.
type Renderer interface {
	// Render draws the description into w in the renderer's native
	// raster format. The description is read-only to the renderer.
	Render(desc *chart.Description, w io.Writer) error
}

// Exporter persists a rendered chart to a file. Export is an explicitly
// invoked, side-effecting tail step; no other operation in the system
// touches the filesystem.
type Exporter interface {
	// Export renders desc and writes it to filename inside dir. The
	// output height scales with the number of distinct groups in the
	// description. The file handle is closed on all exit paths.
	Export(ctx context.Context, desc *chart.Description, filename, dir string) error
}

// MetricsCollector defines the interface for collecting operational
// metrics from the pipeline. Implementations should integrate with
// observability platforms like Prometheus.
type MetricsCollector interface {
	// RecordLatency records the execution time of an operation.
	// The labels map provides additional context for the metric.
	RecordLatency(operation string, duration time.Duration, labels map[string]string)

	// RecordCounter increments a counter metric, for tracking events
	// like aggregations performed or warnings emitted.
	RecordCounter(metric string, value float64, labels map[string]string)

	// RecordHistogram records a value in a histogram, for tracking
	// distributions like records-per-aggregation.
	RecordHistogram(metric string, value float64, labels map[string]string)
}
