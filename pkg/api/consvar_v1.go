package api

// Undefined statistics (NaN, ±Inf) encode as null.

// ConservationV1 is the conservation summary of one alignment column.
type ConservationV1 struct {
	Column      int            `json:"column"`
	Shenkin     *float64       `json:"shenkin"`
	RelNorm     *float64       `json:"rel_norm_shenkin"`
	AbsNorm     *float64       `json:"abs_norm_shenkin"`
	Occ         int            `json:"occ"`
	Gaps        int            `json:"gaps"`
	OccPct      *float64       `json:"occ_pct"`
	GapsPct     *float64       `json:"gaps_pct"`
	NonStandard map[string]int `json:"non_standard,omitempty"`
}

// ColumnStatV1 is the missense-enrichment statistic of one column.
type ColumnStatV1 struct {
	Column    int      `json:"column"`
	Variants  int      `json:"variants"`
	Occ       int      `json:"human_occ"`
	OddsRatio *float64 `json:"oddsratio"`
	PValue    *float64 `json:"pvalue"`
	SE        *float64 `json:"se"`
	Corrected bool     `json:"corrected,omitempty"`
	Class     string   `json:"miss_class"`
	Color     string   `json:"miss_color"`
}

// ResidueRowV1 is the merged per-residue record of a segment.
type ResidueRowV1 struct {
	Segment      string          `json:"segment,omitempty"`
	Column       int             `json:"column"`
	Residue      int             `json:"residue"`
	Conservation ConservationV1  `json:"conservation"`
	Human        *ConservationV1 `json:"human,omitempty"`
	Enrichment   *ColumnStatV1   `json:"enrichment,omitempty"`
	Sites        []int           `json:"binding_sites"`
}

// SegmentV1 is one segment of a run.
type SegmentV1 struct {
	RunID    string         `json:"run_id,omitempty"`
	Segment  string         `json:"segment"`
	Status   string         `json:"status"`
	Error    string         `json:"error,omitempty"`
	Sites    *SitesV1       `json:"sites,omitempty"`
	Residues []ResidueRowV1 `json:"residues,omitempty"`
	Warnings []string       `json:"warnings,omitempty"`
}

// ConsVarV1 is the standalone conservation/enrichment output of one alignment.
type ConsVarV1 struct {
	Reference string         `json:"reference"`
	Columns   []ResidueRowV1 `json:"columns"`
	Warnings  []string       `json:"warnings,omitempty"`
}

// ErrorV1 is the body of every non-2xx service response.
type ErrorV1 struct {
	Error string `json:"error"`
}
