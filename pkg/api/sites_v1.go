// Package api is the stable v1 wire schema of ligysis JSON and JSONL output
// and of the HTTP service.
package api

// BindingSiteV1 is one ligand cluster.
// Keep fields, names, and types stable. Add new fields only with ",omitempty".
type BindingSiteV1 struct {
	Segment  string   `json:"segment,omitempty"`
	SiteID   int      `json:"site_id"`
	Ligands  []string `json:"ligands"`
	Residues []int    `json:"residues"`
}

// ResidueMembershipV1 lists the binding sites one residue belongs to.
type ResidueMembershipV1 struct {
	Segment string `json:"segment,omitempty"`
	Residue int    `json:"residue"`
	Sites   []int  `json:"sites"`
}

// LigandAssignmentV1 is the flat cluster label of one ligand observation.
type LigandAssignmentV1 struct {
	Ligand string `json:"ligand"`
	SiteID int    `json:"site_id"`
}

// MergeV1 is one dendrogram step in scipy linkage-matrix form.
type MergeV1 struct {
	A      int     `json:"a"`
	B      int     `json:"b"`
	Height float64 `json:"height"`
	Size   int     `json:"size"`
}

// SitesV1 is the full clustering output of a segment.
type SitesV1 struct {
	Segment     string                `json:"segment,omitempty"`
	Linkage     string                `json:"linkage"`
	CutHeight   float64               `json:"cut_height"`
	Assignments []LigandAssignmentV1  `json:"assignments"`
	Sites       []BindingSiteV1       `json:"sites"`
	Membership  []ResidueMembershipV1 `json:"membership"`
	Merges      []MergeV1             `json:"merges,omitempty"`
	Warnings    []string              `json:"warnings,omitempty"`
}
