package appcore

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"

	"ligysis/internal/cmdutil"
	"ligysis/internal/config"
	"ligysis/internal/input"
	"ligysis/internal/output"
	"ligysis/internal/pipeline"
	"ligysis/internal/runutil"
	"ligysis/internal/segment"
	"ligysis/pkg/api"
)

// Options configures one batch run over manifest entries.
type Options struct {
	Config  config.Config
	Threads int
	Strict  bool

	Quiet            bool
	NoResultExitCode int

	// Store, when set, receives every successful segment under RunID.
	Store Store
	RunID uuid.UUID

	// Run replaces segment.LoadAndRun; tests use it.
	Run pipeline.RunFunc
}

// Store persists finished segments.
type Store interface {
	SaveSegment(ctx context.Context, runID uuid.UUID, r segment.Result) error
}

// WriterFactory starts the output goroutine for converted segments.
type WriterFactory interface {
	Start(out io.Writer, bufSize int) (chan<- api.SegmentV1, <-chan error)
}

// Run analyses every entry, streams the segments to the writer in manifest
// order and returns the process exit code. A failed segment is reported and
// skipped; the exit code then reflects the first failure.
func Run(
	parent context.Context,
	stdout, stderr io.Writer,
	o Options,
	entries []input.Entry,
	wf WriterFactory,
) int {
	outw := bufio.NewWriter(stdout)

	cmdutil.Warnings(stderr, o.Quiet, "", runutil.ThresholdWarnings(o.Config))
	thr := runutil.EffectiveThreads(o.Threads, len(entries))

	inCh, writeErr := wf.Start(outw, thr*4)

	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	var (
		rows     int
		firstErr error
	)
	perr := pipeline.ForEachSegment(ctx,
		pipeline.Config{
			Threads: thr,
			Options: segment.Options{Config: o.Config, Strict: o.Strict},
		},
		entries,
		o.Run,
		func(out pipeline.Outcome) error {
			id := out.Entry.Segment
			res := out.Result
			res.ID = id
			if out.Err != nil {
				if firstErr == nil {
					firstErr = out.Err
				}
				cmdutil.Statusf(stderr, false, id, string(segment.StatusError), "%v", out.Err)
			} else {
				cmdutil.Statusf(stderr, o.Quiet, id, string(res.Status), "%d sites, %d residues", len(res.Sites.Sites), len(res.Rows))
				cmdutil.Warnings(stderr, o.Quiet, id, res.Warnings)
				rows += len(res.Rows)
				if o.Store != nil {
					if err := o.Store.SaveSegment(ctx, o.RunID, res); err != nil {
						return fmt.Errorf("store %s: %w", id, err)
					}
				}
			}
			select {
			case inCh <- output.ToAPISegment(res, o.Config.Sites(), out.Err):
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		},
	)

	close(inCh)

	if werr := <-writeErr; werr != nil {
		return cmdutil.Flush(outw, stderr, cmdutil.Fail(stderr, werr))
	}
	if code := cmdutil.Flush(outw, stderr, cmdutil.ExitOK); code != cmdutil.ExitOK {
		return code
	}
	if perr != nil {
		return cmdutil.Fail(stderr, perr)
	}
	if firstErr != nil {
		return cmdutil.ExitCode(firstErr)
	}
	if rows == 0 {
		return o.NoResultExitCode
	}
	return cmdutil.ExitOK
}
