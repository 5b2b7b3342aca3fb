package main

import (
	"bytes"
	"encoding/hex"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/danmuck/nbtarray/internal/protocol"
	"github.com/danmuck/nbtarray/internal/protocol/stream"
	"gopkg.in/yaml.v3"
)

// document is the YAML shape printed by decode and accepted by encode.
type document struct {
	Kind     string  `yaml:"kind"`
	Length   int     `yaml:"length"`
	Elements []int64 `yaml:"elements,flow"`
}

func runDecode(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("decode", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var common commonFlags
	common.register(fs)
	format := fs.String("format", "yaml", "output format: yaml|hex")
	offset := fs.Int64("offset", 0, "bytes to skip before the payload")
	if err := fs.Parse(args); err != nil {
		return err
	}

	e, err := newEnv(common, stderr)
	if err != nil {
		return err
	}
	defer e.flushMetrics()
	kind, err := e.kind(common.kind)
	if err != nil {
		return err
	}
	r, closeIn, err := e.openReader(common, *offset, stdin)
	if err != nil {
		return err
	}
	defer closeIn()

	v, err := e.codec.Decode(r, kind)
	if err != nil {
		return err
	}
	e.log.Debug().Stringer("kind", kind).Int("length", v.Len()).Int64("consumed", r.Consumed()).Msg("decoded array")

	switch strings.ToLower(*format) {
	case "yaml":
		enc := yaml.NewEncoder(stdout)
		if err := enc.Encode(document{Kind: kind.String(), Length: v.Len(), Elements: v.Int64s()}); err != nil {
			return err
		}
		return enc.Close()
	case "hex":
		payload, err := e.codec.Marshal(v)
		if err != nil {
			return err
		}
		_, err = io.WriteString(stdout, hex.Dump(payload))
		return err
	default:
		return fmt.Errorf("unknown format %q", *format)
	}
}

func runEncode(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("encode", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var common commonFlags
	common.register(fs)
	out := fs.String("out", "-", "output path, - for stdout")
	if err := fs.Parse(args); err != nil {
		return err
	}

	e, err := newEnv(common, stderr)
	if err != nil {
		return err
	}
	defer e.flushMetrics()
	comp, err := parseCompression(common.compression)
	if err != nil {
		return err
	}

	src, closeIn, err := openInput(common.in, compressionNone, stdin)
	if err != nil {
		return err
	}
	raw, err := io.ReadAll(src)
	closeIn()
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	doc, err := parseDocument(raw)
	if err != nil {
		return err
	}
	kindName := common.kind
	if kindName == "" {
		kindName = doc.Kind
	}
	kind, err := e.kind(kindName)
	if err != nil {
		return err
	}
	v, err := protocol.FromInt64s(kind, doc.Elements)
	if err != nil {
		return err
	}

	var dst io.Writer = stdout
	var closeOut func() error
	if *out != "" && *out != "-" {
		f, err := os.Create(*out)
		if err != nil {
			return err
		}
		dst, closeOut = f, f.Close
	}
	zw, flush := wrapOutput(dst, comp)
	err = e.codec.Encode(stream.NewWriter(zw), v)
	if ferr := flush(); err == nil {
		err = ferr
	}
	if closeOut != nil {
		if cerr := closeOut(); err == nil {
			err = cerr
		}
	}
	if err != nil {
		return err
	}
	e.log.Debug().Stringer("kind", kind).Int("length", v.Len()).Str("out", *out).Msg("encoded array")
	return nil
}

func runInspect(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("inspect", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var common commonFlags
	common.register(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	e, err := newEnv(common, stderr)
	if err != nil {
		return err
	}
	defer e.flushMetrics()
	kind, err := e.kind(common.kind)
	if err != nil {
		return err
	}
	r, closeIn, err := e.openReader(common, 0, stdin)
	if err != nil {
		return err
	}
	defer closeIn()

	n, err := e.codec.Skip(r, kind)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(stdout, "kind=%s length=%d payload_bytes=%d consumed=%d\n",
		kind, n, int64(n)*int64(kind.Width()), r.Consumed())
	return err
}

// openReader skips offset bytes and wraps the rest of the input in a
// stream.Reader. Uncompressed regular files are buffered when they fit in
// max_bytes plus the length prefix, so the codec can check declared lengths
// against the bytes actually present. Larger files are streamed.
func (e *env) openReader(common commonFlags, offset int64, stdin io.Reader) (*stream.Reader, func() error, error) {
	comp, err := parseCompression(common.compression)
	if err != nil {
		return nil, nil, err
	}
	src, closeIn, err := openInput(common.in, comp, stdin)
	if err != nil {
		return nil, nil, err
	}
	if offset > 0 {
		if _, err := io.CopyN(io.Discard, src, offset); err != nil {
			closeIn()
			if errors.Is(err, io.EOF) {
				err = stream.ErrShortRead
			}
			return nil, nil, fmt.Errorf("skip %d bytes: %w", offset, err)
		}
	}
	if comp != compressionNone || common.in == "" || common.in == "-" {
		return stream.NewReader(src), closeIn, nil
	}

	limit := e.cfg.Limits.MaxBytes + 4
	data, err := io.ReadAll(io.LimitReader(src, limit+1))
	if err != nil {
		closeIn()
		return nil, nil, fmt.Errorf("read input: %w", err)
	}
	if int64(len(data)) > limit {
		e.log.Debug().Int64("limit", limit).Msg("input larger than limit, streaming without size check")
		return stream.NewReader(io.MultiReader(bytes.NewReader(data), src)), closeIn, nil
	}
	closeIn()
	return stream.NewReader(bytes.NewReader(data)), func() error { return nil }, nil
}

// parseDocument accepts a bare YAML list of integers or the mapping
// written by decode.
func parseDocument(raw []byte) (document, error) {
	var list []int64
	if err := yaml.Unmarshal(raw, &list); err == nil {
		return document{Elements: list, Length: len(list)}, nil
	}
	var doc document
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return document{}, fmt.Errorf("parse elements: %w", err)
	}
	if doc.Length != 0 && doc.Length != len(doc.Elements) {
		return document{}, errors.New("parse elements: length does not match element count")
	}
	return doc, nil
}
