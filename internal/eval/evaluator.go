// Package eval scores a trained classifier against a held-out test set.
package eval

import (
	"fmt"
	"sort"

	"depscreen/internal/dataset"
	"depscreen/internal/models"
)

// DefaultThreshold is the probability cutoff used when none is supplied.
const DefaultThreshold = 0.5

// Scorer is the model surface the evaluator needs: a feature order and a
// positive-class probability per row.
type Scorer interface {
	Features() []string
	Score(row []float64) float64
}

// EvalError reports a test set the model cannot be evaluated on.
type EvalError struct {
	Reason string
}

func (e *EvalError) Error() string {
	return fmt.Sprintf("eval: %s", e.Reason)
}

// Evaluate scores every test row and derives the confusion matrix at the
// given threshold, the three rate metrics, the AUC and the ROC curve.
//
// Metric naming keeps the source study's convention: Sensitivity is the true
// rate for the "No" class (TN/(TN+FP)) and Specificity the true rate for the
// "Yes" class (TP/(TP+FN)). The ROC curve itself is conventional, plotting
// the "Yes" class true-positive rate against its false-positive rate.
func Evaluate(m Scorer, t *dataset.Table, label string, threshold float64) (*models.EvaluationReport, error) {
	if t.NumRows() == 0 {
		return nil, &EvalError{Reason: "test set is empty"}
	}
	if threshold <= 0 {
		threshold = DefaultThreshold
	}

	labelIdx, ok := t.ColumnIndex(label)
	if !ok {
		return nil, &EvalError{Reason: fmt.Sprintf("label column %q not found", label)}
	}

	features := m.Features()
	featureIdx := make([]int, len(features))
	for k, name := range features {
		j, ok := t.ColumnIndex(name)
		if !ok {
			return nil, &EvalError{Reason: fmt.Sprintf("feature column %q not found in test set", name)}
		}
		featureIdx[k] = j
	}

	n := t.NumRows()
	scores := make([]float64, n)
	labels := make([]bool, n)
	row := make([]float64, len(featureIdx))
	for i := 0; i < n; i++ {
		v := t.Value(i, labelIdx)
		if v != 0 && v != 1 {
			return nil, &EvalError{Reason: fmt.Sprintf("unseen label class %v in test set", v)}
		}
		labels[i] = v == 1

		for k, j := range featureIdx {
			row[k] = t.Value(i, j)
		}
		scores[i] = m.Score(row)
	}

	report := &models.EvaluationReport{Threshold: threshold}
	for i := 0; i < n; i++ {
		predicted := scores[i] >= threshold
		switch {
		case predicted && labels[i]:
			report.TP++
		case predicted && !labels[i]:
			report.FP++
		case !predicted && !labels[i]:
			report.TN++
		default:
			report.FN++
		}
	}

	report.Accuracy = float64(report.TP+report.TN) / float64(n)
	report.Sensitivity = rate(report.TN, report.FP)
	report.Specificity = rate(report.TP, report.FN)
	report.AUC = auc(scores, labels)
	report.ROC = rocCurve(scores, labels)

	return report, nil
}

func rate(hits, misses int) float64 {
	if hits+misses == 0 {
		return 0
	}
	return float64(hits) / float64(hits+misses)
}

// auc computes the rank-based probability that a random positive scores above
// a random negative, with score ties contributing 0.5. Implemented as the
// Mann-Whitney statistic over average ranks, so it is exact under ties and
// invariant to any strictly monotonic transform of the scores.
func auc(scores []float64, labels []bool) float64 {
	n := len(scores)
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool { return scores[order[a]] < scores[order[b]] })

	ranks := make([]float64, n)
	for i := 0; i < n; {
		j := i
		for j < n && scores[order[j]] == scores[order[i]] {
			j++
		}
		// average rank across the tie group, 1-based
		avg := float64(i+j+1) / 2
		for k := i; k < j; k++ {
			ranks[order[k]] = avg
		}
		i = j
	}

	var nPos, nNeg int
	var rankSum float64
	for i, positive := range labels {
		if positive {
			nPos++
			rankSum += ranks[i]
		} else {
			nNeg++
		}
	}
	if nPos == 0 || nNeg == 0 {
		return 0.5
	}
	u := rankSum - float64(nPos)*float64(nPos+1)/2
	return u / (float64(nPos) * float64(nNeg))
}

// rocCurve sweeps the distinct scores from high to low, emitting one
// (FPR, TPR) point per threshold plus the (0,0) and (1,1) endpoints.
func rocCurve(scores []float64, labels []bool) []models.ROCPoint {
	var nPos, nNeg int
	for _, positive := range labels {
		if positive {
			nPos++
		} else {
			nNeg++
		}
	}

	order := make([]int, len(scores))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool { return scores[order[a]] > scores[order[b]] })

	points := []models.ROCPoint{{FPR: 0, TPR: 0}}
	tp, fp := 0, 0
	for i := 0; i < len(order); {
		j := i
		for j < len(order) && scores[order[j]] == scores[order[i]] {
			if labels[order[j]] {
				tp++
			} else {
				fp++
			}
			j++
		}
		points = append(points, models.ROCPoint{
			FPR: safeDiv(fp, nNeg),
			TPR: safeDiv(tp, nPos),
		})
		i = j
	}
	return points
}

func safeDiv(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return float64(num) / float64(den)
}
