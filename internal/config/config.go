// Package config holds the run thresholds and reads them from the INI file
// format shared with the LIGYSIS pipeline config (ligysis_config.txt).
package config

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"ligysis-core/cluster"
	"ligysis-core/enrichment"
	"ligysis-core/errs"
)

// Config is the full set of tunables of one run.
type Config struct {
	Linkage   cluster.Linkage
	CutHeight float64
	ConsLow   float64
	ConsHigh  float64
	MES       float64
}

// Default returns the stock thresholds.
func Default() Config {
	return Config{
		Linkage:   cluster.Average,
		CutHeight: 0.5,
		ConsLow:   25,
		ConsHigh:  75,
		MES:       1.0,
	}
}

// Sites is the clustering configuration.
func (c Config) Sites() cluster.Config {
	return cluster.Config{Linkage: c.Linkage, CutHeight: c.CutHeight}
}

// Thresholds is the classification configuration.
func (c Config) Thresholds() enrichment.Thresholds {
	return enrichment.Thresholds{ConsLow: c.ConsLow, ConsHigh: c.ConsHigh, MES: c.MES}
}

// Validate checks both halves.
func (c Config) Validate() error {
	if err := c.Sites().Validate(); err != nil {
		return err
	}
	return c.Thresholds().Validate()
}

// Load reads path on top of Default().
func Load(path string) (Config, error) {
	fh, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer fh.Close()
	return Parse(fh, path, Default())
}

// keys maps "section.key" to the field it sets.
var keys = map[string]func(*Config, string) error{
	"thresholds.cons_t_l":       floatKey(func(c *Config) *float64 { return &c.ConsLow }),
	"thresholds.cons_t_h":       floatKey(func(c *Config) *float64 { return &c.ConsHigh }),
	"thresholds.mes_t":          floatKey(func(c *Config) *float64 { return &c.MES }),
	"thresholds.lig_clust_dist": floatKey(func(c *Config) *float64 { return &c.CutHeight }),
	"other.lig_clust_method": func(c *Config, v string) error {
		l, err := cluster.ParseLinkage(v)
		if err != nil {
			return err
		}
		c.Linkage = l
		return nil
	},
}

func floatKey(field func(*Config) *float64) func(*Config, string) error {
	return func(c *Config, v string) error {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return errs.Inputf("bad number %q", v)
		}
		*field(c) = f
		return nil
	}
}

// Parse applies the INI text in r to base. Keys are case-insensitive, "="
// and ":" both separate key from value, "#" and ";" start comments. Sections
// and keys this tool does not use are ignored.
func Parse(r io.Reader, name string, base Config) (Config, error) {
	c := base
	sc := bufio.NewScanner(r)
	section := ""
	ln := 0
	for sc.Scan() {
		ln++
		line := strings.TrimSpace(sc.Text())
		if line == "" || line[0] == '#' || line[0] == ';' {
			continue
		}
		if line[0] == '[' {
			if !strings.HasSuffix(line, "]") {
				return Config{}, errs.Inputf("%s:%d unterminated section header", name, ln)
			}
			section = strings.ToLower(strings.TrimSpace(line[1 : len(line)-1]))
			continue
		}
		i := strings.IndexAny(line, "=:")
		if i < 0 {
			return Config{}, errs.Inputf("%s:%d expected key = value", name, ln)
		}
		key := strings.ToLower(strings.TrimSpace(line[:i]))
		val := strings.TrimSpace(line[i+1:])
		set, ok := keys[section+"."+key]
		if !ok {
			continue
		}
		if err := set(&c, val); err != nil {
			return Config{}, fmt.Errorf("%s:%d %s: %w", name, ln, key, err)
		}
	}
	if err := sc.Err(); err != nil {
		return Config{}, err
	}
	return c, nil
}
