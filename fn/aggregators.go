package fn

import (
	"github.com/ferrumdb/ferrum/core"
)

// Aggregators ignore NULL inputs. Over an empty or all-NULL column every
// aggregator except COUNT returns NULL.

// countAggregator counts rows. A nil values slice means COUNT(*): every
// row counts, NULL or not. A column argument counts only non-null cells.
type countAggregator struct{}

func (countAggregator) Name() string { return "COUNT" }

func (countAggregator) Aggregate(values []core.Cell, rowCount int) (core.Cell, error) {
	if values == nil {
		return core.NewInt(int64(rowCount)), nil
	}

	count := int64(0)
	for _, value := range values {
		if !value.IsNull() {
			count++
		}
	}
	return core.NewInt(count), nil
}

type minAggregator struct{}

func (minAggregator) Name() string { return "MIN" }

func (minAggregator) Aggregate(values []core.Cell, rowCount int) (core.Cell, error) {
	return extreme(values, -1)
}

type maxAggregator struct{}

func (maxAggregator) Name() string { return "MAX" }

func (maxAggregator) Aggregate(values []core.Cell, rowCount int) (core.Cell, error) {
	return extreme(values, 1)
}

// extreme returns the value whose comparison against the running best
// matches direction (-1 for MIN, 1 for MAX).
func extreme(values []core.Cell, direction int) (core.Cell, error) {
	best := core.Null()
	for _, value := range values {
		if value.IsNull() {
			continue
		}
		if best.IsNull() {
			best = value
			continue
		}

		order, err := value.Compare(best)
		if err != nil {
			return core.Cell{}, err
		}
		if direction < 0 && order < 0 || direction > 0 && order > 0 {
			best = value
		}
	}
	return best, nil
}

type sumAggregator struct{}

func (sumAggregator) Name() string { return "SUM" }

func (sumAggregator) Aggregate(values []core.Cell, rowCount int) (core.Cell, error) {
	var intSum int64
	var floatSum float64
	allInts := true
	seen := false

	for _, value := range values {
		if value.IsNull() {
			continue
		}
		seen = true

		switch value.Type {
		case core.IntType:
			intSum += value.Int
			floatSum += float64(value.Int)
		case core.FloatType:
			allInts = false
			floatSum += value.Float
		default:
			return core.Cell{}, core.NewTypeMismatch("SUM needs numeric values, got %s", value.Type)
		}
	}

	if !seen {
		return core.Null(), nil
	}
	if allInts {
		return core.NewInt(intSum), nil
	}
	return core.NewFloat(floatSum), nil
}

type avgAggregator struct{}

func (avgAggregator) Name() string { return "AVG" }

func (avgAggregator) Aggregate(values []core.Cell, rowCount int) (core.Cell, error) {
	var sum float64
	count := 0

	for _, value := range values {
		if value.IsNull() {
			continue
		}

		numeric, ok := value.Numeric()
		if !ok {
			return core.Cell{}, core.NewTypeMismatch("AVG needs numeric values, got %s", value.Type)
		}
		sum += numeric
		count++
	}

	if count == 0 {
		return core.Null(), nil
	}
	return core.NewFloat(sum / float64(count)), nil
}
