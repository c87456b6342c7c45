// Package render adapts chart descriptions to the go-chart drawing
// library and implements the file export collaborator.
package render

import (
	"fmt"
	"io"
	"math"
	"strings"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/hedibmustapha/msni19/internal/chart"
	"github.com/hedibmustapha/msni19/internal/ports"
)

// Pixel geometry of rendered charts. Height grows with the number of
// groups so dense charts stay readable.
const (
	defaultWidth   = 900
	baseHeight     = 180
	heightPerGroup = 56
)

// GoChartRenderer renders chart descriptions as PNG images using
// go-chart. Bar geometry becomes a horizontal stacked bar chart; line
// geometry becomes a multi-series line chart.
//
// NaN values (zero-weight groups) are drawn as zero-height segments;
// the description keeps the NaN so other consumers can apply their own
// display policy.
type GoChartRenderer struct {
	width int
}

var _ ports.Renderer = (*GoChartRenderer)(nil)

// NewGoChartRenderer creates a renderer with the default width.
func NewGoChartRenderer() *GoChartRenderer {
	return &GoChartRenderer{width: defaultWidth}
}

// Render draws the description into w as a PNG image.
func (r *GoChartRenderer) Render(desc *chart.Description, w io.Writer) error {
	if desc == nil {
		return fmt.Errorf("chart description cannot be nil")
	}
	switch desc.Geometry {
	case chart.GeometryBar:
		return r.renderBar(desc, w)
	case chart.GeometryLine:
		return r.renderLine(desc, w)
	}
	return fmt.Errorf("unsupported geometry %q", desc.Geometry)
}

// Height returns the pixel height used for a description, scaling with
// the number of distinct groups.
func (r *GoChartRenderer) Height(desc *chart.Description) int {
	return baseHeight + heightPerGroup*len(desc.Groups)
}

// renderBar draws one horizontal stacked bar per group. Series arrive
// in stack order, so each bar's segments are appended as given.
func (r *GoChartRenderer) renderBar(desc *chart.Description, w io.Writer) error {
	bars := make([]gochart.StackedBar, 0, len(desc.Groups))
	for j := range desc.Groups {
		values := make([]gochart.Value, 0, len(desc.Series))
		for _, series := range desc.Series {
			values = append(values, gochart.Value{
				Label: series.Name,
				Value: safeValue(series.Points[j].Value),
				Style: gochart.Style{
					FillColor:   colorFromHex(series.Color),
					StrokeColor: colorFromHex(series.Color),
				},
			})
		}
		bars = append(bars, gochart.StackedBar{
			Name:   desc.GroupLabels[j],
			Values: values,
		})
	}

	sbc := gochart.StackedBarChart{
		Title:        desc.Title,
		Width:        r.width,
		Height:       r.Height(desc),
		BarSpacing:   12,
		IsHorizontal: desc.Horizontal,
		Bars:         bars,
		// The bar names are drawn per bar; a visible value axis makes
		// go-chart reject the canvas box for all but the shortest names.
		YAxis: gochart.Style{Hidden: true},
	}
	return sbc.Render(gochart.PNG, w)
}

// renderLine draws one line per group with band positions on the x
// axis. The tick labels come from AxisBandLabels, which the builder
// reverses relative to the data on purpose.
func (r *GoChartRenderer) renderLine(desc *chart.Description, w io.Writer) error {
	series := make([]gochart.Series, 0, len(desc.Series))
	for _, s := range desc.Series {
		xs := make([]float64, len(s.Points))
		ys := make([]float64, len(s.Points))
		for i, p := range s.Points {
			xs[i] = float64(i)
			ys[i] = safeValue(p.Value)
		}
		series = append(series, gochart.ContinuousSeries{
			Name:    s.Name,
			XValues: xs,
			YValues: ys,
			Style: gochart.Style{
				StrokeWidth: 2,
				StrokeColor: colorFromHex(s.Color),
			},
		})
	}

	ticks := make([]gochart.Tick, len(desc.AxisBandLabels))
	for i, label := range desc.AxisBandLabels {
		ticks[i] = gochart.Tick{Value: float64(i), Label: label}
	}

	ch := gochart.Chart{
		Title:  desc.Title,
		Width:  r.width,
		Height: r.Height(desc),
		XAxis: gochart.XAxis{
			Ticks: ticks,
		},
		YAxis: gochart.YAxis{
			ValueFormatter: percentFormatter,
		},
		Series: series,
	}
	ch.Elements = []gochart.Renderable{gochart.Legend(&ch)}
	return ch.Render(gochart.PNG, w)
}

// percentFormatter formats value-axis ticks as whole percentages.
func percentFormatter(v any) string {
	if f, ok := v.(float64); ok {
		return fmt.Sprintf("%.0f%%", f)
	}
	return ""
}

// safeValue maps NaN to zero for drawing; go-chart cannot plot NaN.
func safeValue(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return v
}

func colorFromHex(hex string) drawing.Color {
	return drawing.ColorFromHex(strings.TrimPrefix(hex, "#"))
}
