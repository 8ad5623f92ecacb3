package writers

import (
	"encoding/json"
	"fmt"
	"io"

	"ligysis/internal/jsonlutil"
	"ligysis/internal/output"
	"ligysis/pkg/api"
)

// StartSegmentWriter spins up a writer goroutine for whole segments.
//   - text streams one residue line per row unless sorting is requested
//   - json collects every segment into one array
//   - jsonl streams one segment per line
func StartSegmentWriter(out io.Writer, format string, sort, header bool, bufSize int) (chan<- api.SegmentV1, <-chan error) {
	if format == output.FormatJSONL && !sort {
		return jsonlutil.Start[api.SegmentV1](out, bufSize,
			func(enc *json.Encoder, s api.SegmentV1) error { return enc.Encode(s) },
			IsBrokenPipe,
		)
	}
	if bufSize <= 0 {
		bufSize = 64
	}
	in := make(chan api.SegmentV1, bufSize)
	errCh := make(chan error, 1)

	go func() {
		var err error
		switch format {
		case output.FormatJSON, output.FormatJSONL:
			var buf []api.SegmentV1
			for s := range in {
				buf = append(buf, s)
			}
			if sort {
				output.SortSegments(buf)
			}
			if format == output.FormatJSON {
				err = output.WriteJSON(out, buf)
			} else {
				err = encodeLines(out, buf)
			}

		case output.FormatText:
			if sort {
				var rows []api.ResidueRowV1
				for s := range in {
					rows = append(rows, s.Residues...)
				}
				output.SortRows(rows)
				err = output.WriteResidueText(out, rows, header)
			} else {
				rowCh := make(chan api.ResidueRowV1, bufSize)
				go func() {
					defer close(rowCh)
					for s := range in {
						for _, r := range s.Residues {
							rowCh <- r
						}
					}
				}()
				err = output.StreamResidueText(out, rowCh, header)
				for range rowCh {
				}
			}

		default:
			for range in {
			}
			err = fmt.Errorf("unsupported output %q", format)
		}
		if IsBrokenPipe(err) {
			err = nil
		}
		errCh <- err
	}()

	return in, errCh
}
