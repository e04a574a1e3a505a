// Package split partitions a dataset into train and test views.
package split

import (
	"fmt"
	"math"
	"math/rand"

	"depscreen/internal/dataset"
)

// Split partitions the table into disjoint train and test views. The train
// set holds round(n*fraction) rows, the test set the remainder. The partition
// is a seeded permutation: the same seed always yields the same split, and
// every source row lands in exactly one side.
func Split(t *dataset.Table, fraction float64, seed int64) (train, test *dataset.Table, err error) {
	if fraction <= 0 || fraction >= 1 {
		return nil, nil, fmt.Errorf("split fraction %v out of range (0,1)", fraction)
	}

	n := t.NumRows()
	rng := rand.New(rand.NewSource(seed))
	perm := rng.Perm(n)

	k := int(math.Round(float64(n) * fraction))
	return t.Select(perm[:k]), t.Select(perm[k:]), nil
}
