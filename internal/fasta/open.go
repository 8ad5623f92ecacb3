package fasta

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"
)

var gzipMagic = []byte{0x1f, 0x8b}

// readCloser pairs a decoding reader with the close of its source.
type readCloser struct {
	io.Reader
	close func() error
}

func (r *readCloser) Close() error { return r.close() }

// Open returns a reader for path. "-" is stdin. Gzip input is detected from
// its magic bytes, so compressed stdin works too; a .gz name that is not
// gzip is an error.
func Open(path string) (io.ReadCloser, error) {
	var src io.ReadCloser = io.NopCloser(os.Stdin)
	if path != "-" {
		fh, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		src = fh
	}
	br := bufio.NewReaderSize(src, 64<<10)
	sig, _ := br.Peek(len(gzipMagic))
	if !bytes.Equal(sig, gzipMagic) && !strings.HasSuffix(path, ".gz") {
		return &readCloser{Reader: br, close: src.Close}, nil
	}
	gr, err := gzip.NewReader(br)
	if err != nil {
		_ = src.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &readCloser{Reader: gr, close: func() error {
		gerr := gr.Close()
		if err := src.Close(); err != nil {
			return err
		}
		return gerr
	}}, nil
}
