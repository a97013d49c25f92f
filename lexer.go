package hcl1

import (
	"bytes"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/hashicorp/go-hclog"
)

var (
	reInt   = regexp.MustCompile(`^[+-]?[0-9]+(_[0-9]+)*$`)
	reFloat = regexp.MustCompile(`^[+-]?([0-9]+(_[0-9]+)*)?(\.[0-9]+(_[0-9]+)*)?([eE][+-]?[0-9]+(_[0-9]+)*)?$`)
	reDigit = regexp.MustCompile(`[0-9]`)

	bomBytes = []byte{0xEF, 0xBB, 0xBF}
)

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
func isAlpha(c byte) bool { return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') }
func isAlphaNum(c byte) bool {
	return isAlpha(c) || isDigit(c)
}
func isHex(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
func isIdentStart(c byte) bool { return isAlpha(c) || c == '_' }
func isIdentCont(c byte) bool {
	return isAlphaNum(c) || c == '_' || c == '-' || c == '.'
}

// braceState tracks the `${ ... }` interpolation bracket depth inside a
// double-quoted string, per the spec's requirement that this be an
// explicit state (not a pair of loosely-coordinated locals) to avoid
// timing bugs around when a bare '$' should be treated as the start of an
// interpolation.
type braceState struct {
	depth int
}

func (b *braceState) inInterp() bool { return b.depth > 0 }

// Lexer turns an HCL1 byte stream into a Token stream, one token per call
// to Next. It tracks 1-based line and 0-based column position, normalizes
// CRLF to LF up front (so the rest of the scanner only ever sees '\n'),
// and strips a leading UTF-8 BOM if present.
type Lexer struct {
	src []byte
	pos int
	line int
	col  int

	log hclog.Logger

	err        error
	illegalTok *Token
	buffered   *Token

	pendingIllegalMsg string
}

// NewLexer constructs a Lexer over src. A nil logger disables trace
// logging (the default); see Option/WithLogger for how Parse wires one in.
func NewLexer(src []byte, log hclog.Logger) *Lexer {
	if log == nil {
		log = hclog.NewNullLogger()
	}
	l := &Lexer{
		src:  bytes.ReplaceAll(src, []byte("\r\n"), []byte("\n")),
		line: 1,
		log:  log,
	}
	switch {
	case bytes.HasPrefix(l.src, bomBytes):
		l.pos = 3
	case len(l.src) > 0 && len(l.src) < 3 && bytes.HasPrefix(bomBytes, l.src):
		l.pendingIllegalMsg = "truncated UTF-8 byte order mark"
	}
	return l
}

// Next returns and consumes the next token.
func (l *Lexer) Next() (Token, error) {
	if l.buffered != nil {
		t := *l.buffered
		l.buffered = nil
		l.trace(t)
		return t, l.tokErr(t)
	}
	t, err := l.scan()
	l.trace(t)
	return t, err
}

// Peek returns the next token without consuming it.
func (l *Lexer) Peek() (Token, error) {
	if l.buffered != nil {
		return *l.buffered, l.tokErr(*l.buffered)
	}
	t, err := l.scan()
	l.buffered = &t
	return t, err
}

func (l *Lexer) tokErr(t Token) error {
	if t.Type != ILLEGAL {
		return nil
	}
	return l.err
}

func (l *Lexer) trace(t Token) {
	l.log.Trace("token", "type", t.Type.String(), "line", t.Line, "col", t.Column)
}

func (l *Lexer) advance() byte {
	c := l.src[l.pos]
	l.pos++
	if c == '\n' {
		l.line++
		l.col = 0
	} else {
		l.col++
	}
	return c
}

func (l *Lexer) peekAt(offset int) (byte, bool) {
	i := l.pos + offset
	if i < 0 || i >= len(l.src) {
		return 0, false
	}
	return l.src[i], true
}

func (l *Lexer) illegal(line, col int, format string, args ...any) (Token, error) {
	msg := fmt.Sprintf(format, args...)
	err := fmt.Errorf("%w: line %d: %s", ErrSyntax, line, msg)
	tok := Token{Type: ILLEGAL, Str: fmt.Sprintf("line %d: %s", line, msg), Line: line, Column: col}
	l.err = err
	l.illegalTok = &tok
	return tok, err
}

func (l *Lexer) scan() (Token, error) {
	if l.illegalTok != nil {
		return *l.illegalTok, l.err
	}
	if l.pendingIllegalMsg != "" {
		msg := l.pendingIllegalMsg
		l.pendingIllegalMsg = ""
		return l.illegal(l.line, l.col, "%s", msg)
	}

	if err := l.skipWhitespaceAndComments(); err != nil {
		return *l.illegalTok, err
	}

	if l.pos >= len(l.src) {
		return Token{Type: EOF, Line: l.line, Column: l.col}, nil
	}

	line, col := l.line, l.col
	c := l.src[l.pos]
	c1, hasC1 := l.peekAt(1)

	switch {
	case c == '"':
		return l.scanDoubleQuoted(line, col)
	case c == '\'':
		return l.scanSingleQuoted(line, col)
	case c == '<' && hasC1 && c1 == '<':
		return l.scanHeredoc(line, col)
	case isDigit(c):
		return l.scanNumber(line, col)
	case c == '.' && hasC1 && isDigit(c1):
		return l.scanNumber(line, col)
	case c == '+':
		// Unlike '-', '+' never folds into a following digit — it is
		// always its own ADD token, regardless of what comes next.
		l.advance()
		return Token{Type: ADD, Line: line, Column: col}, nil
	case c == '-':
		if hasC1 && isDigit(c1) {
			return l.scanNumber(line, col)
		}
		l.advance()
		return Token{Type: SUB, Line: line, Column: col}, nil
	case isIdentStart(c):
		return l.scanIdent(line, col)
	case c == '[':
		l.advance()
		return Token{Type: LBRACK, Line: line, Column: col}, nil
	case c == ']':
		l.advance()
		return Token{Type: RBRACK, Line: line, Column: col}, nil
	case c == '{':
		l.advance()
		return Token{Type: LBRACE, Line: line, Column: col}, nil
	case c == '}':
		l.advance()
		return Token{Type: RBRACE, Line: line, Column: col}, nil
	case c == ',':
		l.advance()
		return Token{Type: COMMA, Line: line, Column: col}, nil
	case c == '.':
		l.advance()
		return Token{Type: PERIOD, Line: line, Column: col}, nil
	case c == '=':
		l.advance()
		return Token{Type: ASSIGN, Line: line, Column: col}, nil
	default:
		l.advance()
		return l.illegal(line, col, "unexpected character %q", c)
	}
}

func (l *Lexer) skipWhitespaceAndComments() error {
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			l.advance()
		case c == '#':
			for l.pos < len(l.src) && l.src[l.pos] != '\n' {
				l.advance()
			}
		case c == '/':
			c1, ok := l.peekAt(1)
			if ok && c1 == '/' {
				for l.pos < len(l.src) && l.src[l.pos] != '\n' {
					l.advance()
				}
				continue
			}
			line, col := l.line, l.col
			l.advance()
			_, err := l.illegal(line, col, "unterminated comment")
			return err
		default:
			return nil
		}
	}
	return nil
}

func (l *Lexer) scanIdent(line, col int) (Token, error) {
	start := l.pos
	l.advance()
	for l.pos < len(l.src) && isIdentCont(l.src[l.pos]) {
		l.advance()
	}
	lexeme := string(l.src[start:l.pos])
	switch lexeme {
	case "true":
		return Token{Type: BOOL, Bool: true, Str: lexeme, Line: line, Column: col}, nil
	case "false":
		return Token{Type: BOOL, Bool: false, Str: lexeme, Line: line, Column: col}, nil
	default:
		return Token{Type: IDENT, Str: lexeme, Line: line, Column: col}, nil
	}
}

func (l *Lexer) scanNumber(line, col int) (Token, error) {
	start := l.pos
	if l.pos < len(l.src) && (l.src[l.pos] == '+' || l.src[l.pos] == '-') {
		l.advance()
	}

	if c0, ok := l.peekAt(0); ok && c0 == '0' {
		if c1, ok1 := l.peekAt(1); ok1 && (c1 == 'x' || c1 == 'X') {
			return l.scanHexNumber(start, line, col)
		}
	}

	for l.pos < len(l.src) {
		c := l.src[l.pos]
		if isDigit(c) || c == '.' || c == '_' || c == 'e' || c == 'E' ||
			c == 'T' || c == 'Z' || c == ':' || c == '+' || c == '-' {
			l.advance()
			continue
		}
		break
	}

	raw := string(l.src[start:l.pos])
	if !reDigit.MatchString(raw) {
		return l.illegal(line, col, "invalid token %q", raw)
	}

	if reInt.MatchString(raw) {
		digits := strings.ReplaceAll(raw, "_", "")
		v, err := strconv.ParseInt(digits, 10, 64)
		if err != nil {
			return l.illegal(line, col, "invalid token %q", raw)
		}
		return Token{Type: NUMBER, Int: v, Str: raw, Line: line, Column: col}, nil
	}

	if reFloat.MatchString(raw) && strings.ContainsAny(raw, ".eE") {
		digits := strings.ReplaceAll(raw, "_", "")
		v, err := strconv.ParseFloat(digits, 64)
		if err != nil {
			return l.illegal(line, col, "invalid token %q", raw)
		}
		return Token{Type: FLOAT, Float64: v, Str: raw, Line: line, Column: col}, nil
	}

	return l.illegal(line, col, "invalid token %q", raw)
}

func (l *Lexer) scanHexNumber(start, line, col int) (Token, error) {
	neg := l.src[start] == '-'
	l.advance() // '0'
	l.advance() // 'x'/'X'
	digitsStart := l.pos
	for l.pos < len(l.src) && (isHex(l.src[l.pos]) || l.src[l.pos] == '_') {
		l.advance()
	}
	if l.pos == digitsStart {
		return l.illegal(line, col, "invalid token %q: hex literal requires digits after prefix", string(l.src[start:l.pos]))
	}
	digits := strings.ReplaceAll(string(l.src[digitsStart:l.pos]), "_", "")
	v, err := strconv.ParseInt(digits, 16, 64)
	if err != nil {
		return l.illegal(line, col, "invalid token %q", string(l.src[start:l.pos]))
	}
	if neg {
		v = -v
	}
	return Token{Type: NUMBER, Int: v, Str: string(l.src[start:l.pos]), Line: line, Column: col}, nil
}

func (l *Lexer) scanSingleQuoted(line, col int) (Token, error) {
	l.advance() // opening quote
	start := l.pos
	for {
		if l.pos >= len(l.src) {
			return l.illegal(line, col, "unterminated single-quoted string")
		}
		c := l.src[l.pos]
		if c == '\'' {
			s := string(l.src[start:l.pos])
			l.advance()
			return Token{Type: STRING, Str: s, Line: line, Column: col}, nil
		}
		if c == '\n' {
			return l.illegal(line, col, "literal not terminated")
		}
		l.advance()
	}
}

func (l *Lexer) readHex(n int) (uint32, bool) {
	if l.pos+n > len(l.src) {
		return 0, false
	}
	var v uint32
	for i := 0; i < n; i++ {
		c := l.src[l.pos]
		if !isHex(c) {
			return 0, false
		}
		var d uint32
		switch {
		case c >= '0' && c <= '9':
			d = uint32(c - '0')
		case c >= 'a' && c <= 'f':
			d = uint32(c-'a') + 10
		default:
			d = uint32(c-'A') + 10
		}
		v = v<<4 | d
		l.advance()
	}
	return v, true
}

func (l *Lexer) scanDoubleQuoted(line, col int) (Token, error) {
	l.advance() // opening quote
	var buf []byte
	var bs braceState

	for {
		if l.pos >= len(l.src) {
			return l.illegal(line, col, "unterminated string literal")
		}
		c := l.src[l.pos]

		switch {
		case !bs.inInterp() && c == '"':
			l.advance()
			return Token{Type: STRING, Str: string(buf), Line: line, Column: col}, nil

		case !bs.inInterp() && c == '\\':
			l.advance()
			if l.pos >= len(l.src) {
				return l.illegal(line, col, "incomplete escape sequence")
			}
			esc := l.src[l.pos]
			switch esc {
			case '\n':
				return l.illegal(line, col, "literal not terminated")
			case 't':
				buf = append(buf, '\t')
				l.advance()
			case 'n':
				buf = append(buf, '\n')
				l.advance()
			case 'r':
				buf = append(buf, '\r')
				l.advance()
			case '"':
				buf = append(buf, '"')
				l.advance()
			case '\'':
				buf = append(buf, '\'')
				l.advance()
			case '\\':
				buf = append(buf, '\\')
				l.advance()
			case 'x':
				l.advance()
				v, ok := l.readHex(2)
				if !ok {
					return l.illegal(line, col, `invalid \x escape`)
				}
				buf = utf8.AppendRune(buf, rune(v))
			case 'u':
				l.advance()
				v, ok := l.readHex(4)
				if !ok {
					return l.illegal(line, col, `invalid \u escape`)
				}
				buf = utf8.AppendRune(buf, rune(v))
			case 'U':
				l.advance()
				v, ok := l.readHex(8)
				if !ok {
					return l.illegal(line, col, `invalid \U escape`)
				}
				buf = utf8.AppendRune(buf, rune(v))
			default:
				return l.illegal(line, col, "unknown escape character %q", esc)
			}

		case !bs.inInterp() && c == '\n':
			return l.illegal(line, col, "literal not terminated")

		case !bs.inInterp() && c == '$':
			l.advance()
			buf = append(buf, '$')
			if c1, ok := l.peekAt(0); ok && c1 == '{' {
				l.advance()
				buf = append(buf, '{')
				bs.depth = 1
			}

		case !bs.inInterp():
			buf = append(buf, c)
			l.advance()

		case bs.inInterp() && c == '{':
			bs.depth++
			buf = append(buf, c)
			l.advance()

		case bs.inInterp() && c == '}':
			bs.depth--
			buf = append(buf, c)
			l.advance()

		case bs.inInterp() && c == '\\':
			if c1, ok := l.peekAt(1); ok && c1 == '\n' {
				l.advance() // backslash
				l.advance() // newline
				for l.pos < len(l.src) && (l.src[l.pos] == ' ' || l.src[l.pos] == '\t') {
					l.advance()
				}
			} else {
				buf = append(buf, c)
				l.advance()
			}

		default: // inside interpolation, verbatim copy including newlines
			buf = append(buf, c)
			l.advance()
		}
	}
}

// scanHeredoc handles `<<ANCHOR` and `<<-ANCHOR` forms. The produced
// token's content keeps the '\n' that ends every content line, the last
// one included; an empty body yields "" (see DESIGN.md Open Question 1).
func (l *Lexer) scanHeredoc(line, col int) (Token, error) {
	l.advance() // '<'
	l.advance() // '<'
	indentMode := false
	if c, ok := l.peekAt(0); ok && c == '-' {
		indentMode = true
		l.advance()
	}

	anchorStart := l.pos
	for l.pos < len(l.src) && isAlphaNum(l.src[l.pos]) {
		l.advance()
	}
	anchor := string(l.src[anchorStart:l.pos])
	if anchor == "" {
		return l.illegal(line, col, "empty heredoc anchor")
	}

	if l.pos < len(l.src) && l.src[l.pos] != '\n' {
		return l.illegal(line, col, "unterminated heredoc: unexpected content after anchor")
	}
	if l.pos >= len(l.src) {
		return l.illegal(line, col, "unterminated heredoc")
	}
	l.advance() // newline after anchor

	indentWidth := col
	var buf []byte
	for {
		if l.pos >= len(l.src) {
			return l.illegal(line, col, "unterminated heredoc")
		}
		lineStart := l.pos
		for l.pos < len(l.src) && l.src[l.pos] != '\n' {
			l.pos++
			l.col++
		}
		lineBytes := l.src[lineStart:l.pos]
		var isAnchor bool
		if indentMode {
			isAnchor = string(bytes.TrimLeft(lineBytes, " ")) == anchor
		} else {
			isAnchor = string(lineBytes) == anchor
		}

		hadNL := l.pos < len(l.src)
		if hadNL {
			l.pos++
			l.line++
			l.col = 0
		}

		if isAnchor {
			break
		}
		if !hadNL {
			return l.illegal(line, col, "unterminated heredoc")
		}

		content := lineBytes
		if indentMode {
			n := 0
			for n < len(lineBytes) && n < indentWidth && lineBytes[n] == ' ' {
				n++
			}
			if n >= indentWidth {
				content = lineBytes[indentWidth:]
			}
		}
		buf = append(buf, content...)
		buf = append(buf, '\n')
	}

	return Token{Type: HEREDOC, Str: string(buf), Line: line, Column: col}, nil
}
