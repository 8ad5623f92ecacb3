package api

// FingerprintV1 is one ligand observation in a request.
type FingerprintV1 struct {
	ID       string `json:"id"`
	Residues []int  `json:"residues"`
}

// VariantV1 is one variant mapped onto an alignment column.
type VariantV1 struct {
	SourceID    string `json:"source_id"`
	Column      int    `json:"alignment_column"`
	Consequence string `json:"consequence"`
}

// SettingsV1 overrides the service defaults for one request. Omitted fields
// keep the defaults.
type SettingsV1 struct {
	Linkage   *string  `json:"linkage,omitempty"`
	CutHeight *float64 `json:"cut_height,omitempty"`
	ConsLow   *float64 `json:"cons_low,omitempty"`
	ConsHigh  *float64 `json:"cons_high,omitempty"`
	MES       *float64 `json:"mes,omitempty"`
}

// SitesRequestV1 is the body of POST /v1/sites.
type SitesRequestV1 struct {
	Fingerprints []FingerprintV1 `json:"fingerprints"`
	Settings     SettingsV1      `json:"settings"`
}

// ConsVarRequestV1 is the body of POST /v1/conservation. Alignment is FASTA text.
type ConsVarRequestV1 struct {
	Alignment string      `json:"alignment"`
	Reference string      `json:"reference"`
	RefStart  int         `json:"ref_start,omitempty"`
	Variants  []VariantV1 `json:"variants,omitempty"`
	Settings  SettingsV1  `json:"settings"`
}

// SegmentRequestV1 is the body of POST /v1/segments.
type SegmentRequestV1 struct {
	Segment      string          `json:"segment"`
	Fingerprints []FingerprintV1 `json:"fingerprints"`
	Alignment    string          `json:"alignment"`
	Reference    string          `json:"reference"`
	RefStart     int             `json:"ref_start,omitempty"`
	Variants     []VariantV1     `json:"variants,omitempty"`
	Settings     SettingsV1      `json:"settings"`
}
