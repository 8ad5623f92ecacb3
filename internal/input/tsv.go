// Package input loads the tabular inputs of a run: ligand fingerprints,
// variant tables and segment manifests.
package input

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"ligysis-core/errs"
	"ligysis/internal/fasta"
)

// eachLine calls fn with the fields of every non-blank, non-comment line.
// Tab-separated lines split on tabs; anything else splits on whitespace.
func eachLine(path string, fn func(ln int, f []string) error) error {
	rc, err := fasta.Open(path)
	if err != nil {
		return err
	}
	defer rc.Close()
	return scanLines(rc, path, fn)
}

func scanLines(r io.Reader, path string, fn func(ln int, f []string) error) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64<<10), 16<<20)
	ln := 0
	for sc.Scan() {
		ln++
		line := strings.TrimRight(sc.Text(), "\r")
		if t := strings.TrimSpace(line); t == "" || t[0] == '#' {
			continue
		}
		var f []string
		if strings.Contains(line, "\t") {
			f = strings.Split(line, "\t")
			for i := range f {
				f[i] = strings.TrimSpace(f[i])
			}
		} else {
			f = strings.Fields(line)
		}
		if err := fn(ln, f); err != nil {
			return err
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

func lineErr(path string, ln int, format string, a ...any) error {
	return errs.Inputf("%s:%d %s", path, ln, fmt.Sprintf(format, a...))
}
