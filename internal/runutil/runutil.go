// internal/runutil/runutil.go
package runutil

import (
	"fmt"
	"runtime"

	"ligysis/internal/config"
)

// EffectiveThreads resolves --threads: 0 means all CPUs, and there is no
// point in more workers than segments.
func EffectiveThreads(threads, segments int) int {
	if threads <= 0 {
		threads = runtime.NumCPU()
	}
	if segments > 0 && threads > segments {
		threads = segments
	}
	if threads < 1 {
		threads = 1
	}
	return threads
}

// ThresholdWarnings flags legal but degenerate settings. Rules:
//   - cut height 0 never merges: every ligand is its own site
//   - cut height 1 merges any two ligands that share a residue
//   - equal conservation thresholds leave no mid-range band
//   - odds ratios are never negative, so MES <= 0 leaves no depleted class
func ThresholdWarnings(c config.Config) []string {
	var warns []string
	if c.CutHeight == 0 {
		warns = append(warns, "warning: --cut-height 0 puts every ligand in its own site")
	}
	if c.CutHeight == 1 {
		warns = append(warns, fmt.Sprintf("warning: --cut-height 1 merges any ligands sharing a residue (%s linkage)", c.Linkage))
	}
	if c.ConsLow == c.ConsHigh {
		warns = append(warns, "warning: --cons-low equals --cons-high; no column is left unclassified by conservation")
	}
	if c.MES <= 0 {
		warns = append(warns, "warning: --mes <= 0 leaves no missense-depleted class")
	}
	return warns
}
