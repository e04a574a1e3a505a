// Package forest implements a random-forest classifier over recoded survey
// tables: bagged CART trees with random feature subsets at each split.
package forest

import (
	"fmt"
	"math"
	"math/rand"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"depscreen/internal/dataset"
	"depscreen/internal/models"
)

// DefaultTrees is the ensemble size when the config leaves it unset.
const DefaultTrees = 500

// FitError reports a training set the forest cannot be fitted on.
type FitError struct {
	Reason string
}

func (e *FitError) Error() string {
	return fmt.Sprintf("fit: %s", e.Reason)
}

// Config controls forest training. Zero values fall back to the defaults:
// 500 trees, unlimited depth, 1-row leaves, ceil(sqrt(p)) features per split.
type Config struct {
	Trees            int
	Seed             int64
	MaxDepth         int
	MinLeaf          int
	FeaturesPerSplit int
}

// Forest is a trained ensemble. It is transient — rebuilt every run — but its
// parameters serialize to JSON through Params for the persistence boundary.
type Forest struct {
	trees      []*Node
	features   []string
	importance []float64
}

// Params is the serializable form of a fitted ensemble.
type Params struct {
	Features []string `json:"features"`
	Trees    []*Node  `json:"trees"`
}

// Fit trains the ensemble on the given table. Each tree consumes a bootstrap
// resample drawn from its own RNG seeded cfg.Seed+i, so the result is
// deterministic regardless of how tree fitting is scheduled. Tree fitting
// runs in parallel, bounded by the CPU count.
func Fit(t *dataset.Table, label string, cfg Config) (*Forest, error) {
	if t.NumRows() == 0 {
		return nil, &FitError{Reason: "training set is empty"}
	}
	labelIdx, ok := t.ColumnIndex(label)
	if !ok {
		return nil, &FitError{Reason: fmt.Sprintf("label column %q not found", label)}
	}

	var features []string
	var featureIdx []int
	for j, col := range t.Columns() {
		if j == labelIdx {
			continue
		}
		features = append(features, col.Name)
		featureIdx = append(featureIdx, j)
	}

	n := t.NumRows()
	x := make([][]float64, n)
	y := make([]float64, n)
	for i := 0; i < n; i++ {
		row := make([]float64, len(featureIdx))
		for k, j := range featureIdx {
			row[k] = t.Value(i, j)
		}
		x[i] = row
		y[i] = t.Value(i, labelIdx)
	}

	pos := 0
	for _, v := range y {
		if v > 0.5 {
			pos++
		}
	}
	if pos == 0 || pos == n {
		return nil, &FitError{Reason: "label has a single class"}
	}

	trees := cfg.Trees
	if trees <= 0 {
		trees = DefaultTrees
	}
	minLeaf := cfg.MinLeaf
	if minLeaf <= 0 {
		minLeaf = 1
	}
	mtry := cfg.FeaturesPerSplit
	if mtry <= 0 {
		mtry = int(math.Ceil(math.Sqrt(float64(len(features)))))
	}
	if mtry > len(features) {
		mtry = len(features)
	}

	fitted := make([]*Node, trees)
	perTreeImp := make([][]float64, trees)

	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())
	for i := 0; i < trees; i++ {
		i := i
		g.Go(func() error {
			fitter := &treeFitter{
				x:          x,
				y:          y,
				rng:        rand.New(rand.NewSource(cfg.Seed + int64(i))),
				maxDepth:   cfg.MaxDepth,
				minLeaf:    minLeaf,
				mtry:       mtry,
				importance: make([]float64, len(features)),
			}
			fitted[i] = fitter.fit()
			perTreeImp[i] = fitter.importance
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("tree fitting failed: %w", err)
	}

	importance := make([]float64, len(features))
	var total float64
	for _, imp := range perTreeImp {
		for j, v := range imp {
			importance[j] += v
			total += v
		}
	}
	if total > 0 {
		for j := range importance {
			importance[j] /= total
		}
	}

	return &Forest{trees: fitted, features: features, importance: importance}, nil
}

// Features returns the feature names in the row order Score expects.
func (f *Forest) Features() []string {
	out := make([]string, len(f.features))
	copy(out, f.features)
	return out
}

// Score returns the positive-class probability estimate for a feature row:
// the fraction of trees voting for the positive class.
func (f *Forest) Score(row []float64) float64 {
	votes := 0
	for _, tree := range f.trees {
		if tree.predict(row) >= 0.5 {
			votes++
		}
	}
	return float64(votes) / float64(len(f.trees))
}

// Predict returns the majority-vote class (0 or 1) at the 0.5 threshold.
func (f *Forest) Predict(row []float64) float64 {
	if f.Score(row) >= 0.5 {
		return 1
	}
	return 0
}

// Importance returns the normalized mean-decrease-in-Gini ranking, most
// important feature first.
func (f *Forest) Importance() []models.ImportanceEntry {
	out := make([]models.ImportanceEntry, len(f.features))
	for j, name := range f.features {
		out[j] = models.ImportanceEntry{Feature: name, Importance: f.importance[j]}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Importance > out[b].Importance })
	return out
}

// Params exports the fitted ensemble for serialization.
func (f *Forest) Params() Params {
	return Params{Features: f.Features(), Trees: f.trees}
}
