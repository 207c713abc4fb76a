package learning

import (
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Tree is a binary CART classification tree grown on gini impurity. Features
// are compared with x <= threshold going left.
type Tree struct {
	root     *node
	features int
}

type node struct {
	leaf      bool
	label     int
	feature   int
	threshold float64
	left      *node
	right     *node
}

// split is a candidate partition of the rows at a node.
type split struct {
	feature   int
	threshold float64
	impurity  float64
}

type treeBuilder struct {
	X        *mat.Dense
	y        []int
	classes  map[int]int
	maxDepth int
	minSplit int
}

// FitTree grows a tree on the rows of X listed in idx. Rows may be repeated.
func FitTree(X *mat.Dense, y []int, idx []int, maxDepth, minSplit int) *Tree {
	_, features := X.Dims()
	b := treeBuilder{
		X:        X,
		y:        y,
		classes:  make(map[int]int),
		maxDepth: maxDepth,
		minSplit: minSplit,
	}
	labels := make([]int, 0, 2)
	for _, i := range idx {
		if _, ok := b.classes[y[i]]; !ok {
			b.classes[y[i]] = 0
			labels = append(labels, y[i])
		}
	}
	sort.Ints(labels)
	for i, l := range labels {
		b.classes[l] = i
	}
	return &Tree{root: b.build(idx, 0), features: features}
}

// Predict classifies a single row.
func (t *Tree) Predict(x []float64) int {
	n := t.root
	for !n.leaf {
		if x[n.feature] <= n.threshold {
			n = n.left
		} else {
			n = n.right
		}
	}
	return n.label
}

// Depth is the length of the longest path from the root to a leaf.
func (t *Tree) Depth() int {
	return depth(t.root)
}

func depth(n *node) int {
	if n == nil || n.leaf {
		return 0
	}
	l, r := depth(n.left), depth(n.right)
	if l > r {
		return l + 1
	}
	return r + 1
}

func (b treeBuilder) build(idx []int, d int) *node {
	labels := make([]int, len(idx))
	for i, j := range idx {
		labels[i] = b.y[j]
	}
	leaf := &node{leaf: true, label: Vote(labels)}
	if d >= b.maxDepth || len(idx) < b.minSplit {
		return leaf
	}
	parent := b.gini(b.counts(idx))
	if parent == 0 {
		// Pure.
		return leaf
	}

	best, ok := split{}, false
	_, features := b.X.Dims()
	for f := 0; f < features; f++ {
		if s, found := b.bestSplit(idx, f); found && (!ok || s.impurity < best.impurity) {
			best, ok = s, true
		}
	}
	if !ok || best.impurity >= parent {
		return leaf
	}

	var left, right []int
	for _, i := range idx {
		if b.X.At(i, best.feature) <= best.threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}
	if len(left) == 0 || len(right) == 0 {
		return leaf
	}
	return &node{
		feature:   best.feature,
		threshold: best.threshold,
		left:      b.build(left, d+1),
		right:     b.build(right, d+1),
	}
}

// bestSplit scans the midpoints between consecutive distinct values of
// feature f and returns the one with the lowest weighted gini impurity.
func (b treeBuilder) bestSplit(idx []int, f int) (split, bool) {
	rows := make([]int, len(idx))
	copy(rows, idx)
	sort.SliceStable(rows, func(i, j int) bool {
		return b.X.At(rows[i], f) < b.X.At(rows[j], f)
	})

	left := make([]float64, len(b.classes))
	right := b.counts(rows)
	n := float64(len(rows))

	best, ok := split{feature: f}, false
	for s := 1; s < len(rows); s++ {
		c := b.classes[b.y[rows[s-1]]]
		left[c]++
		right[c]--

		prev, next := b.X.At(rows[s-1], f), b.X.At(rows[s], f)
		if prev == next {
			continue
		}
		nl := float64(s)
		impurity := nl/n*b.gini(left) + (n-nl)/n*b.gini(right)
		if !ok || impurity < best.impurity {
			best.threshold = midpoint(prev, next)
			best.impurity = impurity
			ok = true
		}
	}
	return best, ok
}

// midpoint lies between prev and next and is strictly less than next, so
// rows at next always go right.
func midpoint(prev, next float64) float64 {
	m := prev + (next-prev)/2
	if m < next {
		return m
	}
	return prev
}

func (b treeBuilder) counts(idx []int) []float64 {
	c := make([]float64, len(b.classes))
	for _, i := range idx {
		c[b.classes[b.y[i]]]++
	}
	return c
}

// gini is 1 - sum(p^2) over the class proportions in counts.
func (b treeBuilder) gini(counts []float64) float64 {
	total := floats.Sum(counts)
	if total == 0 {
		return 0
	}
	return 1 - floats.Dot(counts, counts)/(total*total)
}
