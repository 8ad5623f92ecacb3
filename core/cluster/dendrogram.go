package cluster

import (
	"math"

	"ligysis-core/errs"
)

// Merge is one agglomeration step. A and B use scipy node numbering: leaves
// are 0..N-1 and merge k creates node N+k. A < B always.
type Merge struct {
	A, B   int
	Height float64
	Size   int
}

// Dendrogram is the binary merge tree over N leaves.
type Dendrogram struct {
	N      int
	Merges []Merge
}

// Build runs agglomerative clustering over a full square distance matrix.
//
// Ties: when several pairs share the minimum distance, the pair with the
// lexicographically lowest (slot i, slot j) merges first. A cluster's slot is
// the smallest fingerprint index among its members, so the rule depends only
// on the caller's fingerprint order.
func Build(dist [][]float64, l Linkage) (*Dendrogram, error) {
	n := len(dist)
	if n == 0 {
		return nil, errs.Inputf("empty distance matrix")
	}
	if l < Single || l > Ward {
		return nil, errs.Inputf("unknown linkage %d", int(l))
	}
	d := make([]float64, n*n)
	for i, row := range dist {
		if len(row) != n {
			return nil, errs.Inputf("distance matrix row %d has %d columns, want %d", i, len(row), n)
		}
		for j, v := range row {
			if i != j && (math.IsNaN(v) || v < 0) {
				return nil, errs.Inputf("invalid distance %v at (%d,%d)", v, i, j)
			}
			d[i*n+j] = v
		}
	}

	active := make([]bool, n)
	size := make([]int, n)
	node := make([]int, n)
	nnIdx := make([]int, n)
	nnVal := make([]float64, n)
	for i := range active {
		active[i] = true
		size[i] = 1
		node[i] = i
	}

	// nearest active neighbour to the right of slot i; lowest index wins ties
	rowMin := func(i int) {
		best, bv := -1, math.Inf(1)
		for j := i + 1; j < n; j++ {
			if active[j] && d[i*n+j] < bv {
				best, bv = j, d[i*n+j]
			}
		}
		nnIdx[i], nnVal[i] = best, bv
	}
	for i := 0; i < n; i++ {
		rowMin(i)
	}

	dg := &Dendrogram{N: n, Merges: make([]Merge, 0, n-1)}
	for step := 0; step < n-1; step++ {
		x := -1
		for i := 0; i < n; i++ {
			if !active[i] || nnIdx[i] < 0 {
				continue
			}
			if x < 0 || nnVal[i] < nnVal[x] {
				x = i
			}
		}
		if x < 0 {
			return nil, errs.Inputf("distance matrix has no finite pair left at step %d", step)
		}
		y := nnIdx[x]
		h := nnVal[x]

		a, b := node[x], node[y]
		if a > b {
			a, b = b, a
		}
		dg.Merges = append(dg.Merges, Merge{A: a, B: b, Height: h, Size: size[x] + size[y]})

		for k := 0; k < n; k++ {
			if !active[k] || k == x || k == y {
				continue
			}
			nd := l.update(d[k*n+x], d[k*n+y], h, size[x], size[y], size[k])
			d[k*n+x], d[x*n+k] = nd, nd
		}
		size[x] += size[y]
		active[y] = false
		node[x] = n + step

		rowMin(x)
		for k := 0; k < n; k++ {
			if !active[k] || k == x {
				continue
			}
			switch {
			case nnIdx[k] == x || nnIdx[k] == y:
				rowMin(k)
			case k < x:
				v := d[k*n+x]
				if v < nnVal[k] || (v == nnVal[k] && x < nnIdx[k]) {
					nnIdx[k], nnVal[k] = x, v
				}
			}
		}
	}
	return dg, nil
}

// Heights returns merge heights in merge order.
func (dg *Dendrogram) Heights() []float64 {
	out := make([]float64, len(dg.Merges))
	for i, m := range dg.Merges {
		out[i] = m.Height
	}
	return out
}

// CutHeight flattens the tree at height h. Merges are applied in order while
// their height is strictly below h, matching a scipy cut_tree(height=h) cut.
// Cluster ids are dense from 0 and numbered by each cluster's smallest leaf.
func (dg *Dendrogram) CutHeight(h float64) []int {
	parent := make([]int, dg.N)
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(i int) int {
		for parent[i] != i {
			parent[i] = parent[parent[i]]
			i = parent[i]
		}
		return i
	}
	leafOf := make([]int, dg.N+len(dg.Merges))
	for i := 0; i < dg.N; i++ {
		leafOf[i] = i
	}
	for k, m := range dg.Merges {
		leafOf[dg.N+k] = leafOf[m.A]
	}
	for _, m := range dg.Merges {
		if !(m.Height < h) {
			break
		}
		ra, rb := find(leafOf[m.A]), find(leafOf[m.B])
		if ra == rb {
			continue
		}
		if ra < rb {
			parent[rb] = ra
		} else {
			parent[ra] = rb
		}
	}
	return denseLabels(dg.N, find)
}

func denseLabels(n int, root func(int) int) []int {
	labels := make([]int, n)
	ids := make(map[int]int, n)
	for i := 0; i < n; i++ {
		r := root(i)
		id, ok := ids[r]
		if !ok {
			id = len(ids)
			ids[r] = id
		}
		labels[i] = id
	}
	return labels
}
