package server

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"ligysis-core/cluster"
	"ligysis-core/enrichment"
	"ligysis-core/errs"
	"ligysis-core/fingerprint"
	"ligysis-core/sites"
	"ligysis/internal/config"
	"ligysis/internal/fasta"
	"ligysis/internal/jsonutil"
	"ligysis/internal/output"
	"ligysis/internal/segment"
	"ligysis/internal/store"
	"ligysis/pkg/api"
)

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("OK"))
}

func (s *Server) sites(w http.ResponseWriter, r *http.Request) {
	var req api.SitesRequestV1
	if !s.decode(w, r, &req) {
		return
	}
	cfg, err := s.settings(req.Settings)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	fps, dropped := fingerprint.Filter(toFingerprints(req.Fingerprints))
	var warns []string
	for _, id := range dropped {
		warns = append(warns, "ligand "+id+" has no contact residues; dropped")
	}
	var res sites.Result
	if len(fps) > 0 {
		if res, err = sites.Cluster(fps, cfg.Sites()); err != nil {
			writeError(w, statusOf(err), err)
			return
		}
	}
	writeJSON(w, http.StatusOK, output.ToAPISites("", res, cfg.Sites(), warns))
}

func (s *Server) conservation(w http.ResponseWriter, r *http.Request) {
	var req api.ConsVarRequestV1
	if !s.decode(w, r, &req) {
		return
	}
	res, err := s.run(segment.Input{Reference: req.Reference, RefStart: req.RefStart}, req.Alignment, req.Variants, req.Settings)
	if err != nil {
		writeError(w, statusOf(err), err)
		return
	}
	writeJSON(w, http.StatusOK, api.ConsVarV1{
		Reference: req.Reference,
		Columns:   output.ToAPIRows("", res.Rows),
		Warnings:  res.Warnings,
	})
}

func (s *Server) segments(w http.ResponseWriter, r *http.Request) {
	var req api.SegmentRequestV1
	if !s.decode(w, r, &req) {
		return
	}
	if req.Segment == "" {
		req.Segment = "segment"
	}
	in := segment.Input{
		ID:           req.Segment,
		Fingerprints: toFingerprints(req.Fingerprints),
		Reference:    req.Reference,
		RefStart:     req.RefStart,
	}
	res, err := s.run(in, req.Alignment, req.Variants, req.Settings)
	if err != nil {
		writeError(w, statusOf(err), err)
		return
	}
	cfg, _ := s.settings(req.Settings)
	v := output.ToAPISegment(res, cfg.Sites(), nil)
	if s.store != nil {
		run, err := s.persist(r.Context(), cfg, res)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		v.RunID = run
		w.Header().Set("X-Analysis-Id", run)
	}
	writeJSON(w, http.StatusOK, v)
}

// run parses the alignment text and runs one segment with the request
// settings.
func (s *Server) run(in segment.Input, alnText string, vs []api.VariantV1, set api.SettingsV1) (segment.Result, error) {
	cfg, err := s.settings(set)
	if err != nil {
		return segment.Result{}, err
	}
	if strings.TrimSpace(alnText) == "" {
		return segment.Result{}, errs.Inputf("alignment is empty")
	}
	if in.Alignment, err = fasta.Parse(strings.NewReader(alnText), "alignment"); err != nil {
		return segment.Result{}, err
	}
	for _, v := range vs {
		if v.Column < 1 {
			return segment.Result{}, errs.Inputf("variant on %s has column %d", v.SourceID, v.Column)
		}
		in.Variants = append(in.Variants, enrichment.Variant{SequenceID: v.SourceID, Column: v.Column, Consequence: v.Consequence})
	}
	return segment.Run(in, segment.Options{Config: cfg, Workers: s.opt.Workers, Strict: s.opt.Strict})
}

func (s *Server) persist(ctx context.Context, cfg config.Config, res segment.Result) (string, error) {
	run, err := s.store.NewRun(ctx, store.RunFor(cfg))
	if err != nil {
		return "", err
	}
	if err := s.store.SaveSegment(ctx, run.ID, res); err != nil {
		return "", err
	}
	return run.ID.String(), nil
}

// settings layers request overrides on the service configuration.
func (s *Server) settings(set api.SettingsV1) (config.Config, error) {
	cfg := s.cfg
	if set.Linkage != nil {
		l, err := cluster.ParseLinkage(*set.Linkage)
		if err != nil {
			return config.Config{}, err
		}
		cfg.Linkage = l
	}
	if set.CutHeight != nil {
		cfg.CutHeight = *set.CutHeight
	}
	if set.ConsLow != nil {
		cfg.ConsLow = *set.ConsLow
	}
	if set.ConsHigh != nil {
		cfg.ConsHigh = *set.ConsHigh
	}
	if set.MES != nil {
		cfg.MES = *set.MES
	}
	return cfg, cfg.Validate()
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	body := r.Body
	if s.opt.MaxBody > 0 {
		body = http.MaxBytesReader(w, r.Body, s.opt.MaxBody)
	}
	if err := jsonutil.DecodeStrict(body, v); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			writeError(w, http.StatusRequestEntityTooLarge, err)
			return false
		}
		writeError(w, http.StatusBadRequest, errors.New("invalid JSON: "+err.Error()))
		return false
	}
	return true
}

func toFingerprints(in []api.FingerprintV1) []fingerprint.Fingerprint {
	out := make([]fingerprint.Fingerprint, len(in))
	for i, f := range in {
		out[i] = fingerprint.New(f.ID, f.Residues)
	}
	return out
}

func statusOf(err error) int {
	if errors.Is(err, errs.ErrInput) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = jsonutil.EncodePretty(w, v)
}

func writeError(w http.ResponseWriter, code int, err error) {
	writeJSON(w, code, api.ErrorV1{Error: err.Error()})
}
