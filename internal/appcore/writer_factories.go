package appcore

import (
	"io"

	"ligysis/internal/writers"
	"ligysis/pkg/api"
)

// SegmentWriterFactory starts the whole-segment writer for one output format.
type SegmentWriterFactory struct {
	Format string
	Sort   bool
	Header bool
}

func NewSegmentWriterFactory(format string, sort, header bool) SegmentWriterFactory {
	return SegmentWriterFactory{Format: format, Sort: sort, Header: header}
}

func (w SegmentWriterFactory) Start(out io.Writer, bufSize int) (chan<- api.SegmentV1, <-chan error) {
	return writers.StartSegmentWriter(out, w.Format, w.Sort, w.Header, bufSize)
}
