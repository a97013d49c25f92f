package hcl1

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-hclog"
)

// ParseResult holds the outcome of a successful parse.
type ParseResult struct {
	// Root is the parsed document's root Object.
	Root Value
}

type config struct {
	log        hclog.Logger
	bufferHint int
}

// Option configures Parse and ParseFile.
type Option func(*config)

// WithLogger routes lexer and parser trace output through log. The
// default is a no-op logger, so tracing is opt-in.
func WithLogger(log hclog.Logger) Option {
	return func(c *config) { c.log = log }
}

// WithLexerBufferSize hints the initial capacity used when buffering an
// io.Reader source in ParseReader (and, transitively, ParseFile),
// avoiding reallocation growth for large documents. It has no effect on
// Parse, which already takes a []byte.
func WithLexerBufferSize(n int) Option {
	return func(c *config) { c.bufferHint = n }
}

func newConfig(opts []Option) *config {
	cfg := &config{log: hclog.NewNullLogger()}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Parse parses src as an HCL1 document.
func Parse(src []byte, opts ...Option) (*ParseResult, error) {
	cfg := newConfig(opts)
	lexer := NewLexer(src, cfg.log)
	parser := NewParser(lexer, cfg.log)
	root, err := parser.Parse()
	if err != nil {
		return nil, err
	}
	return &ParseResult{Root: root}, nil
}

// ParseReader reads r to completion and parses it as an HCL1 document.
func ParseReader(r io.Reader, opts ...Option) (*ParseResult, error) {
	cfg := newConfig(opts)
	buf := bytes.NewBuffer(make([]byte, 0, cfg.bufferHint))
	if _, err := buf.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("%w: reading source: %v", ErrIO, err)
	}
	return Parse(buf.Bytes(), opts...)
}

// ParseFile opens path and parses its contents as an HCL1 document.
func ParseFile(path string, opts ...Option) (*ParseResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: could not open file: %s", ErrIO, path)
	}
	defer f.Close()
	return ParseReader(f, opts...)
}
