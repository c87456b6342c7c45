package chart

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Presentation constants. These are process-wide immutable lookup
// tables; nothing in the package mutates them after init.

// severityRamp holds the fill colors for bands 1 through 4, lowest
// severity first.
var severityRamp = [4]string{"#FEE5D9", "#FCAE91", "#FB6A4A", "#A50F15"}

// catastrophicColor is the extra ramp color prepended on the five-band
// scale. Colors are listed in stack order (highest band first), so the
// prepended color maps to the "4+" segment.
const catastrophicColor = "#67000D"

// groupPalette is the fixed 9-color categorical palette used to
// distinguish group lines in line geometry. It is independent of the
// severity ramp.
var groupPalette = [9]string{
	"#E41A1C", "#377EB8", "#4DAF4A", "#984EA3", "#FF7F00",
	"#FFFF33", "#A65628", "#F781BF", "#999999",
}

// msniBandLabels are the band display labels for the MSNI index,
// ascending band order.
var msniBandLabels = [5]string{
	"Minimal (1)", "Stress (2)", "Severe (3)", "Extreme (4)", "Extreme+ (4+)",
}

// genericBandLabels are the band display labels for every other index
// type, ascending band order.
var genericBandLabels = [5]string{
	"Minimal", "Stress", "Severe", "Extreme", "Catastrophic",
}

// bandLabelsFor resolves the display labels for the given index type
// and scale, ascending band order. Unrecognized index types take the
// generic branch; this permissive fallback is intentional.
func bandLabelsFor(indexType IndexType, scale int) []string {
	var table [5]string
	switch indexType {
	case IndexMSNI:
		table = msniBandLabels
	case IndexLSG:
		table = genericBandLabels
	default:
		table = genericBandLabels
	}
	return table[:scale:scale]
}

// stackColors returns the segment fill colors in stack order, highest
// band first. The five-band scale prepends the catastrophic color.
func stackColors(scale int) []string {
	colors := make([]string, 0, scale)
	if scale == 5 {
		colors = append(colors, catastrophicColor)
	}
	for i := len(severityRamp) - 1; i >= 0; i-- {
		colors = append(colors, severityRamp[i])
	}
	return colors
}

// groupColor returns the categorical palette color for the group at
// position i, cycling when there are more groups than colors.
func groupColor(i int) string {
	return groupPalette[i%len(groupPalette)]
}

// axisTitle derives a display title from a caller-supplied column name.
// The caser is built per call: cases.Title returns a stateful
// transformer that is not safe for concurrent use.
func axisTitle(column string) string {
	if column == "" {
		return ""
	}
	return cases.Title(language.English).String(column)
}
