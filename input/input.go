package input

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"golang.org/x/term"
)

var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
)

// Format identifies how an input stream is encoded.
type Format int

const (
	Plain Format = iota
	Gzip
	Zstd
)

func (f Format) String() string {
	switch f {
	case Gzip:
		return "gzip"
	case Zstd:
		return "zstd"
	}
	return "plain"
}

// Open opens path for reading, decompressing it if needed.
// An empty path or "-" reads standard input.
func Open(path string) (io.ReadCloser, Format, error) {
	if path == "" || path == "-" {
		return Decode(os.Stdin)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, Plain, fmt.Errorf("opening input: %w", err)
	}

	rc, format, err := Decode(f)
	if err != nil {
		f.Close()
		return nil, Plain, err
	}
	return &stackedCloser{ReadCloser: rc, under: f}, format, nil
}

// Decode sniffs r and returns a reader over the decoded stream.
// Closing the returned reader does not close r.
func Decode(r io.Reader) (io.ReadCloser, Format, error) {
	br := bufio.NewReader(r)
	// Peek returns what it has along with io.EOF for short streams.
	head, err := br.Peek(len(zstdMagic))
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, Plain, fmt.Errorf("reading input: %w", err)
	}

	switch {
	case bytes.HasPrefix(head, zstdMagic):
		dec, err := zstd.NewReader(br)
		if err != nil {
			return nil, Zstd, fmt.Errorf("opening zstd input: %w", err)
		}
		return dec.IOReadCloser(), Zstd, nil
	case bytes.HasPrefix(head, gzipMagic):
		gz, err := gzip.NewReader(br)
		if err != nil {
			return nil, Gzip, fmt.Errorf("opening gzip input: %w", err)
		}
		return gz, Gzip, nil
	}
	return io.NopCloser(br), Plain, nil
}

// IsTerminal reports whether f is connected to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// stackedCloser closes a decoder and then the file beneath it.
type stackedCloser struct {
	io.ReadCloser
	under io.Closer
}

func (s *stackedCloser) Close() error {
	return errors.Join(s.ReadCloser.Close(), s.under.Close())
}
