// Package domain contains the core types and pure computations for
// severity-distribution analysis: ordinal severity bands, tabular record
// access, and the weighted band aggregation that turns per-respondent
// records into per-group percentage shares.
package domain

// Band identifies one ordinal severity category of the index being
// analyzed. Bands are ordered; BandOverflow collects index values
// above the top regular band.
type Band string

// Severity bands of the index, in ascending order.
const (
	// Band1 is the lowest severity band (index value 1).
	Band1 Band = "1"

	// Band2 is the second severity band (index value 2).
	Band2 Band = "2"

	// Band3 is the third severity band (index value 3).
	Band3 Band = "3"

	// Band4 is the highest regular severity band (index value 4).
	Band4 Band = "4"

	// BandOverflow collects index values strictly greater than 4.
	// It is only emitted on the five-band scale.
	BandOverflow Band = "4+"
)

// String returns the string representation of the band.
func (b Band) String() string { return string(b) }

// Position returns the zero-based ordinal position of the band.
// It is used as the x coordinate when bands form a continuous axis.
func (b Band) Position() int {
	switch b {
	case Band1:
		return 0
	case Band2:
		return 1
	case Band3:
		return 2
	case Band4:
		return 3
	case BandOverflow:
		return 4
	}
	return -1
}

// Supported index scales. ScaleFourBand emits bands 1-4 only;
// ScaleFiveBand additionally emits the "4+" overflow band.
const (
	ScaleFourBand = 4
	ScaleFiveBand = 5
)

// BandsForScale returns the ordered bands emitted for the given scale.
// Only scales 4 and 5 are supported; anything else is a configuration
// error reported as ErrInvalidScale.
func BandsForScale(scale int) ([]Band, error) {
	switch scale {
	case ScaleFourBand:
		return []Band{Band1, Band2, Band3, Band4}, nil
	case ScaleFiveBand:
		return []Band{Band1, Band2, Band3, Band4, BandOverflow}, nil
	}
	return nil, ErrInvalidScale
}

// BandShare is one aggregated output row: the weighted share of one
// group's respondents falling into one severity band.
//
// For a group with nonzero total weight, Percent for bands 1-4 sums to
// 100 on the four-band scale only when no index value exceeds 4; mass
// above 4 stays in the denominator but is never emitted. On the
// five-band scale the overflow share is a weighted fraction that is not
// scaled by 100, so it is small relative to the other bands. See
// AggregateBands for why the asymmetry is kept.
type BandShare struct {
	// Group is the group label the share belongs to.
	Group string

	// Band is the severity band the share belongs to.
	Band Band

	// Percent is the weighted share. NaN when the group's total weight
	// is zero.
	Percent float64
}
