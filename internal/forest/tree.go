package forest

import (
	"math/rand"
	"sort"
)

// Node is one decision-tree node. Exported fields keep the fitted ensemble
// serializable as plain tree parameters.
type Node struct {
	Leaf      bool    `json:"leaf,omitempty"`
	Prob      float64 `json:"prob,omitempty"` // positive fraction at a leaf
	Feature   int     `json:"feature,omitempty"`
	Threshold float64 `json:"threshold,omitempty"`
	Left      *Node   `json:"left,omitempty"`
	Right     *Node   `json:"right,omitempty"`
}

// predict walks the tree down to a leaf probability.
func (n *Node) predict(row []float64) float64 {
	for !n.Leaf {
		if row[n.Feature] <= n.Threshold {
			n = n.Left
		} else {
			n = n.Right
		}
	}
	return n.Prob
}

// treeFitter grows a single CART tree on a bootstrap sample, accumulating
// Gini importance per feature as it splits.
type treeFitter struct {
	x          [][]float64
	y          []float64
	rng        *rand.Rand
	maxDepth   int
	minLeaf    int
	mtry       int
	importance []float64
}

func (f *treeFitter) fit() *Node {
	n := len(f.y)
	samples := make([]int, n)
	for i := range samples {
		samples[i] = f.rng.Intn(n)
	}
	return f.grow(samples, 0)
}

func (f *treeFitter) grow(samples []int, depth int) *Node {
	pos := 0
	for _, i := range samples {
		if f.y[i] > 0.5 {
			pos++
		}
	}
	prob := float64(pos) / float64(len(samples))

	if pos == 0 || pos == len(samples) ||
		len(samples) < 2*f.minLeaf ||
		(f.maxDepth > 0 && depth >= f.maxDepth) {
		return &Node{Leaf: true, Prob: prob}
	}

	feature, threshold, gain, ok := f.bestSplit(samples, prob)
	if !ok {
		return &Node{Leaf: true, Prob: prob}
	}
	f.importance[feature] += gain * float64(len(samples))

	var left, right []int
	for _, i := range samples {
		if f.x[i][feature] <= threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}

	return &Node{
		Feature:   feature,
		Threshold: threshold,
		Left:      f.grow(left, depth+1),
		Right:     f.grow(right, depth+1),
	}
}

// bestSplit scans a random subset of mtry candidate features for the midpoint
// threshold with the largest Gini gain.
func (f *treeFitter) bestSplit(samples []int, parentProb float64) (feature int, threshold, gain float64, ok bool) {
	parent := giniImpurity(parentProb)
	p := len(f.x[0])

	candidates := f.rng.Perm(p)[:f.mtry]

	type pair struct {
		value float64
		pos   bool
	}
	pairs := make([]pair, len(samples))

	bestGain := 0.0
	for _, feat := range candidates {
		for i, s := range samples {
			pairs[i] = pair{value: f.x[s][feat], pos: f.y[s] > 0.5}
		}
		sort.Slice(pairs, func(a, b int) bool { return pairs[a].value < pairs[b].value })

		total := len(pairs)
		totalPos := 0
		for _, pr := range pairs {
			if pr.pos {
				totalPos++
			}
		}

		leftPos := 0
		for i := 0; i < total-1; i++ {
			if pairs[i].pos {
				leftPos++
			}
			if pairs[i].value == pairs[i+1].value {
				continue
			}
			nLeft, nRight := i+1, total-i-1
			if nLeft < f.minLeaf || nRight < f.minLeaf {
				continue
			}

			pLeft := float64(leftPos) / float64(nLeft)
			pRight := float64(totalPos-leftPos) / float64(nRight)
			weighted := (float64(nLeft)*giniImpurity(pLeft) + float64(nRight)*giniImpurity(pRight)) / float64(total)

			if g := parent - weighted; g > bestGain {
				bestGain = g
				feature = feat
				threshold = (pairs[i].value + pairs[i+1].value) / 2
				ok = true
			}
		}
	}
	return feature, threshold, bestGain, ok
}

func giniImpurity(p float64) float64 {
	return 2 * p * (1 - p)
}
