// Package cluster groups ligand fingerprints into binding sites by
// agglomerative hierarchical clustering cut at a fixed height.
//
// The cut is by absolute distance, never by a target cluster count; the two
// give different site granularity.
package cluster

import (
	"math"

	"ligysis-core/errs"
	"ligysis-core/similarity"
)

// Config is the clustering configuration. There is no package default; the
// caller always supplies one.
type Config struct {
	Linkage   Linkage
	CutHeight float64 // distance (1 - similarity), in [0,1]
}

// Validate checks the cut height range.
func (c Config) Validate() error {
	if math.IsNaN(c.CutHeight) || c.CutHeight < 0 || c.CutHeight > 1 {
		return errs.Inputf("cut height %v outside [0,1]", c.CutHeight)
	}
	if c.Linkage < Single || c.Linkage > Ward {
		return errs.Inputf("unknown linkage %d", int(c.Linkage))
	}
	return nil
}

// Assignment maps each fingerprint (by position) to a dense cluster id.
type Assignment struct {
	IDs      []string
	Clusters []int
	Tree     *Dendrogram // nil when a single fingerprint bypassed clustering
}

// Map returns fingerprint id -> cluster id.
func (a Assignment) Map() map[string]int {
	m := make(map[string]int, len(a.IDs))
	for i, id := range a.IDs {
		m[id] = a.Clusters[i]
	}
	return m
}

// NumClusters is the number of distinct cluster ids.
func (a Assignment) NumClusters() int {
	n := 0
	for _, c := range a.Clusters {
		if c+1 > n {
			n = c + 1
		}
	}
	return n
}

// Assign clusters the fingerprints behind sim (ids in the same order).
// A single fingerprint is assigned cluster 0 without building a tree.
func Assign(ids []string, sim *similarity.Matrix, cfg Config) (Assignment, error) {
	if err := cfg.Validate(); err != nil {
		return Assignment{}, err
	}
	if sim == nil || sim.N() == 0 {
		return Assignment{}, errs.Inputf("no fingerprints to cluster")
	}
	if len(ids) != sim.N() {
		return Assignment{}, errs.Inputf("%d ids for a %dx%d similarity matrix", len(ids), sim.N(), sim.N())
	}
	out := Assignment{IDs: append([]string(nil), ids...)}
	if sim.N() == 1 {
		out.Clusters = []int{0}
		return out, nil
	}
	dg, err := Build(sim.Distance(), cfg.Linkage)
	if err != nil {
		return Assignment{}, err
	}
	out.Tree = dg
	out.Clusters = dg.CutHeight(cfg.CutHeight)
	return out, nil
}
