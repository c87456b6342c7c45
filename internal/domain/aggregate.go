package domain

import "fmt"

// WeightFunc supplies per-record sampling weights for a table. It is
// invoked exactly once per aggregation and must return one weight per
// record, aligned by position. There is no contract beyond positional
// alignment; computing the weights themselves is the collaborator's
// concern.
type WeightFunc func(t Table) ([]float64, error)

// regularBands are the non-overflow bands in ascending order, indexed by
// band value minus one.
var regularBands = [4]Band{Band1, Band2, Band3, Band4}

// AggregateBands computes the weighted share of each severity band per
// group.
//
// Records are partitioned by the groupKey dimension. Within a group,
// records whose indexKey measure is missing are dropped before the
// weight denominator is computed, so a group with many missing values is
// not diluted by the excluded rows' weights. For bands 1 through 4 the
// share is 100 * sum(weights where index == band) / totalWeight. On the
// five-band scale the "4+" band is sum(weights where index > 4) /
// totalWeight with no factor of 100; downstream consumers depend on the
// asymmetry, so it is preserved rather than normalized. On the
// four-band scale, mass above 4 stays in the denominator but is never
// emitted, so the four shares can sum to less than 100.
//
// A group whose surviving records have zero total weight yields NaN
// shares rather than an error.
//
// If weightFn is nil every record weighs 1. A weightFn result of the
// wrong length fails with ErrWeightMismatch. A scale outside {4, 5}
// fails with ErrInvalidScale.
//
// The function is pure: it never mutates the table and has no side
// effects. Output rows are ordered by first appearance of the group,
// then by ascending band.
func AggregateBands(t Table, groupKey, indexKey string, scale int, weightFn WeightFunc) ([]BandShare, error) {
	if t == nil {
		return nil, ErrNilTable
	}
	if groupKey == "" || indexKey == "" {
		return nil, ErrEmptyColumn
	}
	if _, err := BandsForScale(scale); err != nil {
		return nil, err
	}

	weights, err := resolveWeights(t, weightFn)
	if err != nil {
		return nil, err
	}

	n := t.Len()
	grouped := make(map[string][]int)
	order := make([]string, 0)
	for i := 0; i < n; i++ {
		key := t.Dimension(i, groupKey)
		if _, exists := grouped[key]; !exists {
			order = append(order, key)
		}
		grouped[key] = append(grouped[key], i)
	}

	shares := make([]BandShare, 0, len(order)*scale)
	for _, group := range order {
		var total, overflow float64
		var sums [4]float64

		for _, i := range grouped[group] {
			v, ok := t.Measure(i, indexKey)
			if !ok {
				continue
			}
			w := weights[i]
			total += w
			switch {
			case v == 1:
				sums[0] += w
			case v == 2:
				sums[1] += w
			case v == 3:
				sums[2] += w
			case v == 4:
				sums[3] += w
			case v > 4:
				overflow += w
			}
		}

		for b, sum := range sums {
			shares = append(shares, BandShare{
				Group:   group,
				Band:    regularBands[b],
				Percent: 100 * sum / total,
			})
		}
		if scale == ScaleFiveBand {
			// The overflow share stays an unscaled fraction. See the
			// doc comment above before changing this.
			shares = append(shares, BandShare{
				Group:   group,
				Band:    BandOverflow,
				Percent: overflow / total,
			})
		}
	}

	return shares, nil
}

// resolveWeights invokes the weighting collaborator once, or falls back
// to unit weights when none is supplied.
func resolveWeights(t Table, weightFn WeightFunc) ([]float64, error) {
	n := t.Len()
	if weightFn == nil {
		weights := make([]float64, n)
		for i := range weights {
			weights[i] = 1
		}
		return weights, nil
	}

	weights, err := weightFn(t)
	if err != nil {
		return nil, &WeightError{Records: n, Weights: len(weights), Err: err}
	}
	if len(weights) != n {
		return nil, fmt.Errorf("%w: records=%d, weights=%d", ErrWeightMismatch, n, len(weights))
	}
	return weights, nil
}
