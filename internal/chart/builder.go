package chart

import (
	"fmt"
	"sort"

	"github.com/hedibmustapha/msni19/internal/domain"
)

// Description is a fully-specified, renderer-agnostic chart: series
// data, category ordering, labels, colors, and axis formatting. It is a
// transient output, consumed immediately by a rendering collaborator or
// the caller.
type Description struct {
	// Geometry is the chart shape the description was built for.
	Geometry Geometry

	// Title is the chart title; may be empty.
	Title string

	// Groups holds the resolved group categories in axis order.
	Groups []string

	// GroupLabels holds the display labels for Groups, aligned by
	// position.
	GroupLabels []string

	// Bands holds the emitted bands in ascending order.
	Bands []domain.Band

	// BandLabels holds the display labels for Bands, aligned by
	// position. This is the legend order.
	BandLabels []string

	// AxisBandLabels holds the band-axis tick labels for line geometry.
	// They are the reverse of BandLabels: the axis reads high to low
	// while line color distinguishes groups. The reversal is
	// intentional; do not align it with the data order.
	AxisBandLabels []string

	// Horizontal reports whether the category axis is vertical and the
	// value axis horizontal (bar geometry).
	Horizontal bool

	// PercentAxis reports that the value axis is percentage-formatted.
	PercentAxis bool

	// GroupAxisTitle is the display title of the group axis; may be
	// empty.
	GroupAxisTitle string

	// Series holds the chart series. Bar geometry emits one series per
	// band in stack order (highest band first); line geometry emits one
	// series per group.
	Series []Series

	// Colors holds the series colors, aligned with Series.
	Colors []string

	// Warnings collects non-fatal diagnostics, such as a group label
	// count that does not match the resolved groups.
	Warnings []string
}

// Series is one drawable data series.
type Series struct {
	// Name is the legend entry for the series.
	Name string

	// Color is the series color as a hex string.
	Color string

	// Points holds the series values in axis order.
	Points []Point
}

// Point is a single labeled value.
type Point struct {
	// Label is the category label of the point.
	Label string

	// Value is the weighted percentage. May be NaN for zero-weight
	// groups; renderers decide display policy.
	Value float64
}

// Build turns aggregated band shares into a chart description according
// to the configuration. It validates the configuration, resolves group
// ordering and labels, and branches on geometry; it never mutates the
// input rows or configuration.
func Build(rows []domain.BandShare, cfg Config) (*Description, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	bands, err := domain.BandsForScale(cfg.Scale)
	if err != nil {
		return nil, err
	}
	labels := bandLabelsFor(cfg.IndexType, cfg.Scale)

	groups := resolveGroups(rows, cfg.GroupOrder)
	displays, warnings := resolveGroupLabels(groups, cfg.GroupLabels)

	// Index the shares for positional lookup. Groups excluded by an
	// explicit order simply never get read.
	values := make(map[string]map[domain.Band]float64, len(groups))
	for _, row := range rows {
		byBand, ok := values[row.Group]
		if !ok {
			byBand = make(map[domain.Band]float64, cfg.Scale)
			values[row.Group] = byBand
		}
		byBand[row.Band] = row.Percent
	}

	desc := &Description{
		Geometry:       cfg.Geometry,
		Title:          cfg.Title,
		Groups:         groups,
		GroupLabels:    displays,
		Bands:          bands,
		BandLabels:     labels,
		PercentAxis:    true,
		GroupAxisTitle: axisTitle(cfg.GroupColumn),
		Warnings:       warnings,
	}

	switch cfg.Geometry {
	case GeometryBar:
		buildBarSeries(desc, values)
	case GeometryLine:
		buildLineSeries(desc, values)
	default:
		return nil, fmt.Errorf("unsupported geometry %q", cfg.Geometry)
	}

	return desc, nil
}

// resolveGroups fixes the category order of the group axis. An explicit
// order is authoritative: data groups absent from it are excluded and
// listed groups without data remain as empty categories. Without one,
// distinct groups are ordered alphabetically.
func resolveGroups(rows []domain.BandShare, order []string) []string {
	if len(order) > 0 {
		groups := make([]string, len(order))
		copy(groups, order)
		return groups
	}

	seen := make(map[string]bool)
	var groups []string
	for _, row := range rows {
		if !seen[row.Group] {
			seen[row.Group] = true
			groups = append(groups, row.Group)
		}
	}
	sort.Strings(groups)
	return groups
}

// resolveGroupLabels applies the positional relabeling of the group
// axis. When the label count matches the resolved groups the behavior
// is exactly positional; a mismatch is applied as far as it goes and
// reported as a warning rather than an error.
func resolveGroupLabels(groups, labels []string) ([]string, []string) {
	displays := make([]string, len(groups))
	copy(displays, groups)
	if len(labels) == 0 {
		return displays, nil
	}

	var warnings []string
	if len(labels) != len(groups) {
		warnings = append(warnings, fmt.Sprintf(
			"group label count (%d) does not match resolved group count (%d); labels applied positionally",
			len(labels), len(groups)))
	}
	for i := 0; i < len(labels) && i < len(displays); i++ {
		displays[i] = labels[i]
	}
	return displays, warnings
}

// buildBarSeries emits one stacked series per band in reverse band
// order, so the visual stack reads low severity nearest the axis origin
// and high severity outward. The legend keeps ascending order via
// BandLabels.
func buildBarSeries(desc *Description, values map[string]map[domain.Band]float64) {
	desc.Horizontal = true
	desc.Colors = stackColors(len(desc.Bands))

	desc.Series = make([]Series, 0, len(desc.Bands))
	for i := len(desc.Bands) - 1; i >= 0; i-- {
		band := desc.Bands[i]
		points := make([]Point, len(desc.Groups))
		for j, group := range desc.Groups {
			points[j] = Point{Label: desc.GroupLabels[j], Value: values[group][band]}
		}
		desc.Series = append(desc.Series, Series{
			Name:   desc.BandLabels[i],
			Color:  desc.Colors[len(desc.Series)],
			Points: points,
		})
	}
}

// buildLineSeries emits one series per group across the band axis,
// colored from the categorical palette. The band-axis tick labels are
// the reverse of the resolved band labels while the data keeps band
// order.
func buildLineSeries(desc *Description, values map[string]map[domain.Band]float64) {
	desc.AxisBandLabels = make([]string, len(desc.BandLabels))
	for i, label := range desc.BandLabels {
		desc.AxisBandLabels[len(desc.BandLabels)-1-i] = label
	}

	desc.Series = make([]Series, 0, len(desc.Groups))
	desc.Colors = make([]string, 0, len(desc.Groups))
	for i, group := range desc.Groups {
		points := make([]Point, len(desc.Bands))
		for j, band := range desc.Bands {
			points[j] = Point{Label: desc.BandLabels[j], Value: values[group][band]}
		}
		color := groupColor(i)
		desc.Colors = append(desc.Colors, color)
		desc.Series = append(desc.Series, Series{
			Name:   desc.GroupLabels[i],
			Color:  color,
			Points: points,
		})
	}
}
