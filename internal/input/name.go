package input

import (
	"path/filepath"
	"strings"
)

// SegmentName derives a segment name from a file path: the base name without
// a trailing ".gz" and the last extension after that. Stdin is "stdin".
func SegmentName(path string) string {
	if path == "-" || path == "" {
		return "stdin"
	}
	base := strings.TrimSuffix(filepath.Base(path), ".gz")
	if ext := filepath.Ext(base); ext != "" && ext != base {
		base = strings.TrimSuffix(base, ext)
	}
	return base
}
