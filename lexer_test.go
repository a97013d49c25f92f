package hcl1

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scanAll(t *testing.T, src string) ([]Token, error) {
	t.Helper()
	l := NewLexer([]byte(src), nil)
	var toks []Token
	for {
		tok, err := l.Next()
		if err != nil {
			return toks, err
		}
		toks = append(toks, tok)
		if tok.Type == EOF {
			return toks, nil
		}
	}
}

func TestLexerIdentAndKeywords(t *testing.T) {
	toks, err := scanAll(t, `foo bar-baz true false`)
	require.NoError(t, err)
	require.Len(t, toks, 5)
	assert.Equal(t, IDENT, toks[0].Type)
	assert.Equal(t, "foo", toks[0].Str)
	assert.Equal(t, IDENT, toks[1].Type)
	assert.Equal(t, "bar-baz", toks[1].Str)
	assert.Equal(t, BOOL, toks[2].Type)
	assert.True(t, toks[2].Bool)
	assert.Equal(t, BOOL, toks[3].Type)
	assert.False(t, toks[3].Bool)
}

func TestLexerDottedIdentIsSingleToken(t *testing.T) {
	toks, err := scanAll(t, `foo.bar`)
	require.NoError(t, err)
	require.Len(t, toks, 2)
	assert.Equal(t, IDENT, toks[0].Type)
	assert.Equal(t, "foo.bar", toks[0].Str)
}

func TestLexerNumbers(t *testing.T) {
	toks, err := scanAll(t, `5 -5 5.0 5e10 0xFF 1_000`)
	require.NoError(t, err)
	require.Len(t, toks, 7)
	assert.Equal(t, NUMBER, toks[0].Type)
	assert.Equal(t, int64(5), toks[0].Int)
	assert.Equal(t, NUMBER, toks[1].Type)
	assert.Equal(t, int64(-5), toks[1].Int)
	assert.Equal(t, FLOAT, toks[2].Type)
	assert.Equal(t, 5.0, toks[2].Float64)
	assert.Equal(t, FLOAT, toks[3].Type)
	assert.Equal(t, NUMBER, toks[4].Type)
	assert.Equal(t, int64(255), toks[4].Int)
	assert.Equal(t, NUMBER, toks[5].Type)
	assert.Equal(t, int64(1000), toks[5].Int)
}

// TestLexerAddNeverFoldsIntoNumber matches the original implementation's
// asymmetry between '+' and '-': only '-' immediately preceding a digit
// folds into a signed NUMBER/FLOAT token, '+' is always its own ADD.
func TestLexerAddNeverFoldsIntoNumber(t *testing.T) {
	toks, err := scanAll(t, `+5`)
	require.NoError(t, err)
	require.Len(t, toks, 3)
	assert.Equal(t, ADD, toks[0].Type)
	assert.Equal(t, NUMBER, toks[1].Type)
	assert.Equal(t, int64(5), toks[1].Int)
}

func TestLexerSingleQuotedStringNoEscapes(t *testing.T) {
	toks, err := scanAll(t, `'no \n escapes here'`)
	require.NoError(t, err)
	require.Len(t, toks, 2)
	assert.Equal(t, STRING, toks[0].Type)
	assert.Equal(t, `no \n escapes here`, toks[0].Str)
}

func TestLexerDoubleQuotedEscapes(t *testing.T) {
	toks, err := scanAll(t, `"a\tb\né"`)
	require.NoError(t, err)
	require.Len(t, toks, 2)
	assert.Equal(t, STRING, toks[0].Type)
	assert.Equal(t, "a\tb\né", toks[0].Str)
}

// TestLexerInterpolationVerbatim exercises the scenario where an escaped
// quote nested inside ${...} must be preserved byte-for-byte, including
// its backslash, rather than being unescaped like ordinary string content.
func TestLexerInterpolationVerbatim(t *testing.T) {
	toks, err := scanAll(t, `"${file(\"x\")}"`)
	require.NoError(t, err)
	require.Len(t, toks, 2)
	assert.Equal(t, STRING, toks[0].Type)
	assert.Equal(t, `${file(\"x\")}`, toks[0].Str)
}

func TestLexerHeredocIndentStripping(t *testing.T) {
	src := "h = <<-EOF\n    Hello\n      World\n    EOF\n"
	toks, err := scanAll(t, src)
	require.NoError(t, err)
	// IDENT, ASSIGN, HEREDOC, EOF
	require.Len(t, toks, 4)
	assert.Equal(t, HEREDOC, toks[2].Type)
	assert.Equal(t, "Hello\n  World\n", toks[2].Str)
}

func TestLexerHeredocNoIndentMode(t *testing.T) {
	src := "h = <<EOF\nHello\nEOF\n"
	toks, err := scanAll(t, src)
	require.NoError(t, err)
	require.Len(t, toks, 4)
	assert.Equal(t, "Hello\n", toks[2].Str)
}

// TestLexerHeredocNoIndentModeRequiresExactAnchor matches the original
// implementation: without '-' mode, the closing line is compared to the
// anchor byte-for-byte, so a line with leading whitespace before the
// anchor never terminates the heredoc.
func TestLexerHeredocNoIndentModeRequiresExactAnchor(t *testing.T) {
	toks, err := scanAll(t, "h = <<EOF\nHello\n   EOF\nEOF\n")
	require.NoError(t, err)
	require.Len(t, toks, 4)
	assert.Equal(t, HEREDOC, toks[2].Type)
	assert.Equal(t, "Hello\n   EOF\n", toks[2].Str)
}

func TestLexerCommentStyles(t *testing.T) {
	toks, err := scanAll(t, "a = 1 # trailing\nb = 2 // also trailing\n")
	require.NoError(t, err)
	require.Len(t, toks, 7) // IDENT ASSIGN NUMBER IDENT ASSIGN NUMBER EOF
	assert.Equal(t, IDENT, toks[3].Type)
	assert.Equal(t, "b", toks[3].Str)
}

func TestLexerIllegalUnterminatedString(t *testing.T) {
	_, err := scanAll(t, `"unterminated`)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSyntax))
}

func TestLexerIllegalUnterminatedComment(t *testing.T) {
	_, err := scanAll(t, `/x`)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSyntax))
}

func TestLexerIllegalBadEscape(t *testing.T) {
	_, err := scanAll(t, `"\q"`)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSyntax))
}

func TestLexerPeekDoesNotConsume(t *testing.T) {
	l := NewLexer([]byte(`foo`), nil)
	p1, err := l.Peek()
	require.NoError(t, err)
	p2, err := l.Peek()
	require.NoError(t, err)
	assert.Equal(t, p1, p2)

	n, err := l.Next()
	require.NoError(t, err)
	assert.Equal(t, p1, n)
}
