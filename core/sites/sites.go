// Package sites derives binding sites and residue memberships from a flat
// cluster assignment and the fingerprints behind it.
package sites

import (
	"sort"

	"ligysis-core/cluster"
	"ligysis-core/errs"
	"ligysis-core/fingerprint"
	"ligysis-core/similarity"
)

// BindingSite is one cluster of ligand observations.
type BindingSite struct {
	ID       int
	Ligands  []string // fingerprint order
	Residues []int    // sorted union of member fingerprints
}

// Result is the full site clustering output for one segment.
type Result struct {
	Assignment cluster.Assignment
	Sites      []BindingSite // sorted by ID
	Membership map[int][]int // residue -> sorted site ids
}

// Members inverts an assignment: cluster id -> ligand ids in fingerprint order.
func Members(a cluster.Assignment) map[int][]string {
	out := make(map[int][]string, a.NumClusters())
	for i, id := range a.IDs {
		c := a.Clusters[i]
		out[c] = append(out[c], id)
	}
	return out
}

// Residues unions member fingerprints per cluster.
func Residues(members map[int][]string, fps []fingerprint.Fingerprint) (map[int][]int, error) {
	byID := make(map[string]fingerprint.Fingerprint, len(fps))
	for _, f := range fps {
		byID[f.ID] = f
	}
	out := make(map[int][]int, len(members))
	for c, ligs := range members {
		set := make(map[int]struct{})
		for _, l := range ligs {
			f, ok := byID[l]
			if !ok {
				return nil, errs.Inputf("cluster %d member %q has no fingerprint", c, l)
			}
			for _, r := range f.Residues {
				set[r] = struct{}{}
			}
		}
		out[c] = sortedKeys(set)
	}
	return out, nil
}

// ResidueMembership records, for every residue in any site, all sites it is
// part of. Residues shared by overlapping sites list every one of them.
func ResidueMembership(residues map[int][]int) map[int][]int {
	out := make(map[int][]int)
	ids := make([]int, 0, len(residues))
	for c := range residues {
		ids = append(ids, c)
	}
	sort.Ints(ids)
	for _, c := range ids {
		for _, r := range residues[c] {
			out[r] = append(out[r], c)
		}
	}
	return out
}

// Index builds the Result for an assignment. Pure: no I/O, inputs untouched.
func Index(a cluster.Assignment, fps []fingerprint.Fingerprint) (Result, error) {
	members := Members(a)
	res, err := Residues(members, fps)
	if err != nil {
		return Result{}, err
	}
	out := Result{
		Assignment: a,
		Sites:      make([]BindingSite, 0, len(members)),
		Membership: ResidueMembership(res),
	}
	for c, ligs := range members {
		out.Sites = append(out.Sites, BindingSite{ID: c, Ligands: ligs, Residues: res[c]})
	}
	sort.Slice(out.Sites, func(i, j int) bool { return out.Sites[i].ID < out.Sites[j].ID })
	return out, nil
}

// Cluster runs similarity, clustering and indexing over fps in order.
func Cluster(fps []fingerprint.Fingerprint, cfg cluster.Config) (Result, error) {
	if err := fingerprint.Validate(fps); err != nil {
		return Result{}, err
	}
	sim, err := similarity.Build(fps)
	if err != nil {
		return Result{}, err
	}
	a, err := cluster.Assign(fingerprint.IDs(fps), sim, cfg)
	if err != nil {
		return Result{}, err
	}
	return Index(a, fps)
}

// SortedResidues returns the residues of a membership map in ascending order.
func SortedResidues(m map[int][]int) []int {
	out := make([]int, 0, len(m))
	for r := range m {
		out = append(out, r)
	}
	sort.Ints(out)
	return out
}

func sortedKeys(set map[int]struct{}) []int {
	out := make([]int, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Ints(out)
	return out
}
