package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
)

type compression string

const (
	compressionNone compression = "none"
	compressionGzip compression = "gzip"
	compressionZlib compression = "zlib"
)

func parseCompression(raw string) (compression, error) {
	switch c := compression(strings.ToLower(strings.TrimSpace(raw))); c {
	case "", compressionNone:
		return compressionNone, nil
	case compressionGzip, compressionZlib:
		return c, nil
	default:
		return "", fmt.Errorf("unknown compression %q", raw)
	}
}

// openInput returns the decompressed input stream and a close func.
func openInput(path string, c compression, stdin io.Reader) (io.Reader, func() error, error) {
	var src io.Reader = stdin
	closeSrc := func() error { return nil }
	if path != "" && path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, nil, err
		}
		src = f
		closeSrc = f.Close
	}

	switch c {
	case compressionGzip:
		zr, err := gzip.NewReader(src)
		if err != nil {
			closeSrc()
			return nil, nil, fmt.Errorf("open gzip stream: %w", err)
		}
		return zr, func() error { zr.Close(); return closeSrc() }, nil
	case compressionZlib:
		zr, err := zlib.NewReader(src)
		if err != nil {
			closeSrc()
			return nil, nil, fmt.Errorf("open zlib stream: %w", err)
		}
		return zr, func() error { zr.Close(); return closeSrc() }, nil
	default:
		return src, closeSrc, nil
	}
}

// wrapOutput returns a writer that compresses into w; the returned func
// flushes the compressor and must be called before w is closed.
func wrapOutput(w io.Writer, c compression) (io.Writer, func() error) {
	switch c {
	case compressionGzip:
		zw := gzip.NewWriter(w)
		return zw, zw.Close
	case compressionZlib:
		zw := zlib.NewWriter(w)
		return zw, zw.Close
	default:
		return w, func() error { return nil }
	}
}
