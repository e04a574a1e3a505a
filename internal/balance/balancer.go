// Package balance synthesizes a class-balanced training set from an
// imbalanced one by smoothed resampling.
package balance

import (
	"fmt"
	"math"
	"math/rand"

	"depscreen/internal/dataset"
)

// BalanceError reports a training set that cannot be balanced.
type BalanceError struct {
	Reason string
}

func (e *BalanceError) Error() string {
	return fmt.Sprintf("balance: %s", e.Reason)
}

// Balance builds a synthetic training table whose label distribution is an
// exact 50/50 allocation over the output rows. Each output row is drawn from
// a source row of the chosen class; continuous columns get Gaussian jitter
// scaled by a per-class Silverman bandwidth, every other column is copied
// verbatim so ordinal ranges and indicator exclusivity survive. The output
// size equals the input size. Deterministic under a fixed seed.
func Balance(t *dataset.Table, label string, seed int64) (*dataset.Table, error) {
	labelIdx, ok := t.ColumnIndex(label)
	if !ok {
		return nil, &BalanceError{Reason: fmt.Sprintf("label column %q not found", label)}
	}

	var posRows, negRows []int
	for i := 0; i < t.NumRows(); i++ {
		if t.Value(i, labelIdx) > 0.5 {
			posRows = append(posRows, i)
		} else {
			negRows = append(negRows, i)
		}
	}
	if len(posRows) == 0 || len(negRows) == 0 {
		return nil, &BalanceError{Reason: "label has fewer than 2 observed classes"}
	}

	cols := t.Columns()
	posBW := bandwidths(t, cols, posRows)
	negBW := bandwidths(t, cols, negRows)

	rng := rand.New(rand.NewSource(seed))
	n := t.NumRows()
	nPos := (n + 1) / 2

	rows := make([][]float64, 0, n)
	for i := 0; i < n; i++ {
		var source []int
		var bw []float64
		if i < nPos {
			source, bw = posRows, posBW
		} else {
			source, bw = negRows, negBW
		}
		src := t.Row(source[rng.Intn(len(source))])

		row := make([]float64, len(src))
		copy(row, src)
		for j, col := range cols {
			if col.Kind == dataset.KindContinuous && bw[j] > 0 {
				row[j] += rng.NormFloat64() * bw[j]
			}
		}
		rows = append(rows, row)
	}

	return dataset.NewTable(cols, rows)
}

// bandwidths computes a Silverman-style smoothing bandwidth per column over
// the given class rows: 0.9 * sd * n^(-1/5). Non-continuous columns get 0.
func bandwidths(t *dataset.Table, cols []dataset.Column, rows []int) []float64 {
	bw := make([]float64, len(cols))
	if len(rows) < 2 {
		return bw
	}
	for j, col := range cols {
		if col.Kind != dataset.KindContinuous {
			continue
		}
		var sum, sumSq float64
		for _, i := range rows {
			v := t.Value(i, j)
			sum += v
			sumSq += v * v
		}
		n := float64(len(rows))
		variance := (sumSq - sum*sum/n) / (n - 1)
		if variance <= 0 {
			continue
		}
		bw[j] = 0.9 * math.Sqrt(variance) * math.Pow(n, -0.2)
	}
	return bw
}
