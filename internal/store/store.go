// Package store persists segment results in PostgreSQL.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"ligysis/internal/config"
	"ligysis/internal/segment"
)

// Store is a Postgres-backed result store.
type Store struct {
	db *sql.DB
}

// Open connects to dsn (a lib/pq connection string or URL) and pings it.
func Open(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the connection pool.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

const schema = `
CREATE TABLE IF NOT EXISTS ligysis_runs (
	run_id      UUID PRIMARY KEY,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
	linkage     TEXT NOT NULL,
	cut_height  DOUBLE PRECISION NOT NULL,
	cons_low    DOUBLE PRECISION NOT NULL,
	cons_high   DOUBLE PRECISION NOT NULL,
	mes         DOUBLE PRECISION NOT NULL
);
CREATE TABLE IF NOT EXISTS binding_sites (
	run_id    UUID NOT NULL REFERENCES ligysis_runs(run_id) ON DELETE CASCADE,
	segment   TEXT NOT NULL,
	site_id   INTEGER NOT NULL,
	ligands   TEXT[] NOT NULL,
	residues  INTEGER[] NOT NULL,
	PRIMARY KEY (run_id, segment, site_id)
);
CREATE TABLE IF NOT EXISTS residue_membership (
	run_id    UUID NOT NULL REFERENCES ligysis_runs(run_id) ON DELETE CASCADE,
	segment   TEXT NOT NULL,
	residue   INTEGER NOT NULL,
	sites     INTEGER[] NOT NULL,
	PRIMARY KEY (run_id, segment, residue)
);
CREATE TABLE IF NOT EXISTS consvar_residues (
	run_id           UUID NOT NULL REFERENCES ligysis_runs(run_id) ON DELETE CASCADE,
	segment          TEXT NOT NULL,
	aln_column       INTEGER NOT NULL,
	residue          INTEGER NOT NULL,
	shenkin          DOUBLE PRECISION,
	rel_norm_shenkin DOUBLE PRECISION,
	abs_norm_shenkin DOUBLE PRECISION,
	occ              INTEGER NOT NULL,
	gaps             INTEGER NOT NULL,
	human_occ        INTEGER,
	variants         INTEGER,
	oddsratio        DOUBLE PRECISION,
	pvalue           DOUBLE PRECISION,
	se               DOUBLE PRECISION,
	miss_class       TEXT,
	PRIMARY KEY (run_id, segment, aln_column)
);`

// Migrate creates the tables when missing.
func (s *Store) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, schema)
	return err
}

// Run identifies one analysis run and the settings it used.
type Run struct {
	ID        uuid.UUID
	Linkage   string
	CutHeight float64
	ConsLow   float64
	ConsHigh  float64
	MES       float64
}

// RunFor describes a run with the settings of cfg.
func RunFor(cfg config.Config) Run {
	return Run{
		Linkage:   cfg.Linkage.String(),
		CutHeight: cfg.CutHeight,
		ConsLow:   cfg.ConsLow,
		ConsHigh:  cfg.ConsHigh,
		MES:       cfg.MES,
	}
}

// NewRun registers a run and returns it with a fresh id.
func (s *Store) NewRun(ctx context.Context, r Run) (Run, error) {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO ligysis_runs (run_id, linkage, cut_height, cons_low, cons_high, mes) VALUES ($1, $2, $3, $4, $5, $6)`,
		r.ID, r.Linkage, r.CutHeight, r.ConsLow, r.ConsHigh, r.MES)
	if err != nil {
		return Run{}, err
	}
	return r, nil
}

// SaveSegment writes one segment's sites, memberships and residue rows in a
// single transaction. Re-saving a segment replaces it.
func (s *Store) SaveSegment(ctx context.Context, runID uuid.UUID, r segment.Result) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, tbl := range []string{"binding_sites", "residue_membership", "consvar_residues"} {
		if _, err = tx.ExecContext(ctx, `DELETE FROM `+tbl+` WHERE run_id = $1 AND segment = $2`, runID, r.ID); err != nil {
			return fmt.Errorf("%s: %w", tbl, err)
		}
	}

	for _, site := range r.Sites.Sites {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO binding_sites (run_id, segment, site_id, ligands, residues) VALUES ($1, $2, $3, $4, $5)`,
			runID, r.ID, site.ID, pq.Array(site.Ligands), pq.Array(ints64(site.Residues))); err != nil {
			return fmt.Errorf("binding_sites: %w", err)
		}
	}

	for res, ids := range r.Sites.Membership {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO residue_membership (run_id, segment, residue, sites) VALUES ($1, $2, $3, $4)`,
			runID, r.ID, res, pq.Array(ints64(ids))); err != nil {
			return fmt.Errorf("residue_membership: %w", err)
		}
	}

	stmt, err := tx.PrepareContext(ctx, pq.CopyIn("consvar_residues",
		"run_id", "segment", "aln_column", "residue", "shenkin", "rel_norm_shenkin", "abs_norm_shenkin",
		"occ", "gaps", "human_occ", "variants", "oddsratio", "pvalue", "se", "miss_class"))
	if err != nil {
		return fmt.Errorf("consvar_residues: %w", err)
	}
	for _, row := range r.Rows {
		c := row.Conservation
		var humanOcc, variants, class any
		var or, p, se sql.NullFloat64
		if row.Human != nil {
			humanOcc = row.Human.Occ
		}
		if e := row.Enrichment; e != nil {
			variants = e.Variants
			or, p, se = nullable(e.OddsRatio), nullable(e.PValue), nullable(e.SE)
			class = string(e.Class)
		}
		if _, err = stmt.ExecContext(ctx, runID.String(), r.ID, row.Column, row.Residue,
			nullable(c.Shenkin), nullable(c.RelNorm), nullable(c.AbsNorm),
			c.Occ, c.Gaps, humanOcc, variants, or, p, se, class); err != nil {
			_ = stmt.Close()
			return fmt.Errorf("consvar_residues: %w", err)
		}
	}
	if _, err = stmt.ExecContext(ctx); err != nil {
		_ = stmt.Close()
		return fmt.Errorf("consvar_residues: %w", err)
	}
	if err = stmt.Close(); err != nil {
		return err
	}
	return tx.Commit()
}

// SiteCount returns the number of stored binding sites of a segment.
func (s *Store) SiteCount(ctx context.Context, runID uuid.UUID, seg string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT count(*) FROM binding_sites WHERE run_id = $1 AND segment = $2`, runID, seg).Scan(&n)
	return n, err
}

// nullable maps NaN and ±Inf to SQL NULL.
func nullable(v float64) sql.NullFloat64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: v, Valid: true}
}

func ints64(a []int) []int64 {
	out := make([]int64, len(a))
	for i, v := range a {
		out[i] = int64(v)
	}
	return out
}
