package render

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/hedibmustapha/msni19/internal/chart"
	"github.com/hedibmustapha/msni19/internal/ports"
)

// PNGExporter writes rendered charts to PNG files. Export is the only
// side-effecting step in the system and runs only when explicitly
// invoked.
type PNGExporter struct {
	renderer ports.Renderer
}

var _ ports.Exporter = (*PNGExporter)(nil)

// NewPNGExporter creates an exporter backed by the given renderer.
func NewPNGExporter(renderer ports.Renderer) *PNGExporter {
	return &PNGExporter{renderer: renderer}
}

// Export renders desc and writes it to filename inside dir. The file
// handle is closed on all exit paths; a failed render removes the
// partial file.
func (e *PNGExporter) Export(ctx context.Context, desc *chart.Description, filename, dir string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path := filepath.Join(dir, filename)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create chart file: %w", err)
	}

	if err := e.renderer.Render(desc, f); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("failed to render chart to %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close chart file %s: %w", path, err)
	}
	return nil
}

// ExportAll exports several descriptions concurrently. Filenames are
// keyed by description index in names, which must align positionally.
// The first error cancels the remaining exports.
func (e *PNGExporter) ExportAll(ctx context.Context, descs []*chart.Description, names []string, dir string) error {
	if len(descs) != len(names) {
		return fmt.Errorf("descriptions (%d) and names (%d) length mismatch", len(descs), len(names))
	}

	g, ctx := errgroup.WithContext(ctx)
	for i := range descs {
		desc, name := descs[i], names[i]
		g.Go(func() error {
			return e.Export(ctx, desc, name, dir)
		})
	}
	return g.Wait()
}
