package domain

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// row builds a test record; a negative index value marks it missing.
func row(group string, index float64, weight float64) Row {
	r := Row{
		Dimensions: map[string]string{"district": group},
		Measures:   map[string]float64{"weight": weight},
	}
	if index >= 0 {
		r.Measures["msni"] = index
	}
	return r
}

// table wraps rows in a SliceTable keyed by the test column names.
func table(rows ...Row) Table { return NewSliceTable(rows) }

// shareMap indexes shares by (group, band) for assertion convenience.
func shareMap(shares []BandShare) map[string]map[Band]float64 {
	m := make(map[string]map[Band]float64)
	for _, s := range shares {
		if m[s.Group] == nil {
			m[s.Group] = make(map[Band]float64)
		}
		m[s.Group][s.Band] = s.Percent
	}
	return m
}

func TestAggregateBandsUnweighted(t *testing.T) {
	t.Run("missing values excluded from denominator", func(t *testing.T) {
		// Three scored records plus one missing; the denominator is 3.
		tbl := table(
			row("A", 1, 1),
			row("A", 1, 1),
			row("A", 2, 1),
			row("A", -1, 1),
		)

		shares, err := AggregateBands(tbl, "district", "msni", ScaleFourBand, nil)
		require.NoError(t, err)
		require.Len(t, shares, 4)

		got := shareMap(shares)["A"]
		assert.InDelta(t, 66.67, got[Band1], 0.01)
		assert.InDelta(t, 33.33, got[Band2], 0.01)
		assert.Zero(t, got[Band3])
		assert.Zero(t, got[Band4])
	})

	t.Run("equals raw counts over non-missing records", func(t *testing.T) {
		tbl := table(
			row("B", 1, 1), row("B", 2, 1), row("B", 2, 1),
			row("B", 3, 1), row("B", -1, 1),
		)

		shares, err := AggregateBands(tbl, "district", "msni", ScaleFourBand, nil)
		require.NoError(t, err)

		got := shareMap(shares)["B"]
		assert.InDelta(t, 100.0*1/4, got[Band1], 1e-9)
		assert.InDelta(t, 100.0*2/4, got[Band2], 1e-9)
		assert.InDelta(t, 100.0*1/4, got[Band3], 1e-9)
		assert.Zero(t, got[Band4])
	})
}

func TestAggregateBandsFourBandScale(t *testing.T) {
	t.Run("values above four drain the total below 100", func(t *testing.T) {
		tbl := table(
			row("A", 1, 1), row("A", 1, 1), row("A", 2, 1),
			row("A", -1, 1), row("A", 5, 1),
		)

		shares, err := AggregateBands(tbl, "district", "msni", ScaleFourBand, nil)
		require.NoError(t, err)
		require.Len(t, shares, 4)

		var sum float64
		for _, s := range shares {
			assert.NotEqual(t, BandOverflow, s.Band, "the 4+ band must never be emitted on the four-band scale")
			sum += s.Percent
		}
		// The v=5 record keeps its weight in the denominator of 4 but
		// appears in no emitted band.
		assert.InDelta(t, 75.0, sum, 1e-9)
	})

	t.Run("sums to exactly 100 without overflow values", func(t *testing.T) {
		tbl := table(row("A", 1, 1), row("A", 2, 1), row("A", 3, 1), row("A", 4, 1))

		shares, err := AggregateBands(tbl, "district", "msni", ScaleFourBand, nil)
		require.NoError(t, err)

		var sum float64
		for _, s := range shares {
			sum += s.Percent
		}
		assert.InDelta(t, 100.0, sum, 1e-9)
	})
}

// TestAggregateBandsOverflowScaleAsymmetry pins the formula asymmetry:
// bands 1-4 are scaled by 100 while the "4+" share is a raw weighted
// fraction. The five emitted values therefore sum to 100 only because
// the overflow term enters unscaled.
func TestAggregateBandsOverflowScaleAsymmetry(t *testing.T) {
	tbl := table(
		row("A", 1, 1), row("A", 2, 1), row("A", 3, 1),
		row("A", 4, 1), row("A", 5, 1),
	)

	shares, err := AggregateBands(tbl, "district", "msni", ScaleFiveBand, nil)
	require.NoError(t, err)
	require.Len(t, shares, 5)

	got := shareMap(shares)["A"]
	assert.InDelta(t, 20.0, got[Band1], 1e-9)
	assert.InDelta(t, 20.0, got[Band4], 1e-9)
	// One of five records exceeds 4, but the share is 0.2, not 20.
	assert.InDelta(t, 0.2, got[BandOverflow], 1e-9)

	sum := got[Band1] + got[Band2] + got[Band3] + got[Band4] + got[BandOverflow]
	assert.InDelta(t, 80.2, sum, 1e-9)

	t.Run("sums to 100 only when nothing exceeds four", func(t *testing.T) {
		tbl := table(row("B", 1, 2), row("B", 2, 1), row("B", 4, 1))

		shares, err := AggregateBands(tbl, "district", "msni", ScaleFiveBand, nil)
		require.NoError(t, err)

		var sum float64
		for _, s := range shares {
			sum += s.Percent
		}
		assert.InDelta(t, 100.0, sum, 1e-9)
		assert.Zero(t, shareMap(shares)["B"][BandOverflow])
	})
}

func TestAggregateBandsWeighted(t *testing.T) {
	weightFromColumn := func(tbl Table) ([]float64, error) {
		ws := make([]float64, tbl.Len())
		for i := range ws {
			ws[i], _ = tbl.Measure(i, "weight")
		}
		return ws, nil
	}

	t.Run("weights shift shares", func(t *testing.T) {
		tbl := table(row("A", 1, 3), row("A", 2, 1))

		shares, err := AggregateBands(tbl, "district", "msni", ScaleFourBand, weightFromColumn)
		require.NoError(t, err)

		got := shareMap(shares)["A"]
		assert.InDelta(t, 75.0, got[Band1], 1e-9)
		assert.InDelta(t, 25.0, got[Band2], 1e-9)
	})

	t.Run("excluded missing rows do not dilute the denominator", func(t *testing.T) {
		// The missing record carries a large weight that must not count.
		tbl := table(row("A", 1, 1), row("A", -1, 100))

		shares, err := AggregateBands(tbl, "district", "msni", ScaleFourBand, weightFromColumn)
		require.NoError(t, err)

		assert.InDelta(t, 100.0, shareMap(shares)["A"][Band1], 1e-9)
	})

	t.Run("length mismatch fails", func(t *testing.T) {
		tbl := table(row("A", 1, 1), row("A", 2, 1))
		short := func(Table) ([]float64, error) { return []float64{1}, nil }

		_, err := AggregateBands(tbl, "district", "msni", ScaleFourBand, short)
		assert.ErrorIs(t, err, ErrWeightMismatch)
	})

	t.Run("collaborator error surfaces with counts", func(t *testing.T) {
		tbl := table(row("A", 1, 1))
		boom := errors.New("no weight column")
		failing := func(Table) ([]float64, error) { return nil, boom }

		_, err := AggregateBands(tbl, "district", "msni", ScaleFourBand, failing)
		require.Error(t, err)
		assert.ErrorIs(t, err, boom)

		var werr *WeightError
		require.ErrorAs(t, err, &werr)
		assert.Equal(t, 1, werr.Records)
		assert.Zero(t, werr.Weights)
	})
}

func TestAggregateBandsZeroWeightGroup(t *testing.T) {
	zero := func(tbl Table) ([]float64, error) {
		return make([]float64, tbl.Len()), nil
	}
	tbl := table(row("A", 1, 0), row("A", 2, 0))

	shares, err := AggregateBands(tbl, "district", "msni", ScaleFiveBand, zero)
	require.NoError(t, err, "a zero-weight group degrades, it does not fail")
	require.Len(t, shares, 5)
	for _, s := range shares {
		assert.True(t, math.IsNaN(s.Percent), "band %s should be NaN", s.Band)
	}
}

func TestAggregateBandsConfigErrors(t *testing.T) {
	tbl := table(row("A", 1, 1))

	tests := []struct {
		name     string
		scale    int
		wantErr  error
		groupKey string
		indexKey string
	}{
		{name: "scale three", scale: 3, wantErr: ErrInvalidScale, groupKey: "district", indexKey: "msni"},
		{name: "scale six", scale: 6, wantErr: ErrInvalidScale, groupKey: "district", indexKey: "msni"},
		{name: "empty group key", scale: 4, wantErr: ErrEmptyColumn, groupKey: "", indexKey: "msni"},
		{name: "empty index key", scale: 4, wantErr: ErrEmptyColumn, groupKey: "district", indexKey: ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := AggregateBands(tbl, tc.groupKey, tc.indexKey, tc.scale, nil)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}

	t.Run("nil table", func(t *testing.T) {
		_, err := AggregateBands(nil, "district", "msni", 4, nil)
		assert.ErrorIs(t, err, ErrNilTable)
	})
}

func TestAggregateBandsOrdering(t *testing.T) {
	tbl := table(
		row("C", 1, 1), row("A", 2, 1), row("C", 3, 1), row("B", 1, 1),
	)

	shares, err := AggregateBands(tbl, "district", "msni", ScaleFourBand, nil)
	require.NoError(t, err)
	require.Len(t, shares, 12)

	// Groups appear in first-seen order, bands ascending within a group.
	assert.Equal(t, "C", shares[0].Group)
	assert.Equal(t, Band1, shares[0].Band)
	assert.Equal(t, Band4, shares[3].Band)
	assert.Equal(t, "A", shares[4].Group)
	assert.Equal(t, "B", shares[8].Group)
}

func TestAggregateBandsIdempotent(t *testing.T) {
	tbl := table(
		row("A", 1, 1), row("A", 2, 1), row("B", 5, 1), row("B", -1, 1),
	)

	first, err := AggregateBands(tbl, "district", "msni", ScaleFiveBand, nil)
	require.NoError(t, err)
	second, err := AggregateBands(tbl, "district", "msni", ScaleFiveBand, nil)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
