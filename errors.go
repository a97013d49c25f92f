package hcl1

import "errors"

// Sentinel errors identifying which branch of the error taxonomy (spec
// §7) produced a given error. Wrapped with fmt.Errorf's %w so callers can
// use errors.Is against them.
var (
	// ErrType marks accessor type mismatches ("this value is X but Y was
	// requested") and Object key-shape violations (empty keys, non-object
	// path traversal).
	ErrType = errors.New("type error")

	// ErrSyntax marks lexer/parser diagnostics: illegal bytes, unterminated
	// literals, and grammar violations, which carry a "line N: " prefix
	// from the point they were raised. It also marks an unterminated
	// quoted segment in a dotted path given to Set or Erase; that error
	// has no line prefix.
	ErrSyntax = errors.New("syntax error")

	// ErrIO marks failures opening or reading an input source.
	ErrIO = errors.New("i/o error")
)
