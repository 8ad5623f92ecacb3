package output

// Output formats.
const (
	FormatText  = "text"
	FormatJSON  = "json"
	FormatJSONL = "jsonl"
)

// TSV headers for text outputs. Keep these as the single source of truth;
// all writers should use them.
const (
	TSVHeaderSites      = "segment\tsite_id\tn_ligands\tligands\tresidues"
	TSVHeaderMembership = "segment\tresidue\tbinding_sites"
	TSVHeaderResidues   = "segment\tcolumn\tresidue\tbinding_sites\tshenkin\trel_norm_shenkin\tabs_norm_shenkin\tocc\tgaps\tocc_pct\tgaps_pct\thuman_shenkin\thuman_occ\tvariants\toddsratio\tpvalue\tse\tmiss_class\tmiss_color"
)
