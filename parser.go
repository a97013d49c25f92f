package hcl1

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-hclog"
)

// Parser is a recursive-descent parser over a Lexer's token stream,
// holding a single token of lookahead at any point (via Lexer.Peek).
// It implements HCL1's grammar: an ObjectList is a sequence of
// ObjectItems, each either a `key = value` assignment or a
// `key ["label" ...] { ObjectList }` block. Multiple keys/labels on one
// item desugar into nested single-key Objects; a `foo.bar = 1`
// dotted-identifier key desugars the same way. The parser aborts on the
// first error encountered (no error accumulation).
type Parser struct {
	lexer *Lexer
	log   hclog.Logger
}

// NewParser constructs a Parser reading from lexer. A nil logger
// disables trace logging.
func NewParser(lexer *Lexer, log hclog.Logger) *Parser {
	if log == nil {
		log = hclog.NewNullLogger()
	}
	return &Parser{lexer: lexer, log: log}
}

// Parse consumes the entire token stream and returns the root Object.
func (p *Parser) Parse() (Value, error) {
	return p.parseObjectList(EOF)
}

func (p *Parser) errorf(tok Token, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	return fmt.Errorf("%w: line %d: %s", ErrSyntax, tok.Line, msg)
}

// parseObjectList reads ObjectItems until it sees closing (RBRACE for a
// nested block or inline object literal, EOF for the document root),
// fusing each item into the accumulating root Object.
func (p *Parser) parseObjectList(closing TokenType) (Value, error) {
	root := Object()
	for {
		tok, err := p.lexer.Peek()
		if err != nil {
			return Value{}, err
		}
		if tok.Type == closing {
			if closing != EOF {
				p.lexer.Next()
			}
			return root, nil
		}
		if tok.Type == EOF {
			return Value{}, p.errorf(tok, "unexpected end of input, expected %s", closing)
		}

		keys, val, err := p.parseObjectItem()
		if err != nil {
			return Value{}, err
		}
		if err := fuseItem(root, keys, val); err != nil {
			return Value{}, err
		}
	}
}

// parseObjectItem reads one item's key chain and its value or block body.
func (p *Parser) parseObjectItem() ([]string, Value, error) {
	// rawCount counts the key/label tokens actually consumed, as opposed
	// to len(keys), which is inflated by dot-splitting a single
	// `a.b.c`-shaped IDENT into multiple segments. The key-path
	// disambiguation rule below cares about the former: `foo.bar = 1` is
	// one key (an assignment), while `foo bar = 1` is two (an error).
	var keys []string
	rawCount := 0
	for {
		tok, err := p.lexer.Peek()
		if err != nil {
			return nil, Value{}, err
		}
		if tok.Type != IDENT && tok.Type != STRING {
			break
		}
		p.lexer.Next()
		rawCount++
		if tok.Type == IDENT && strings.Contains(tok.Str, ".") {
			keys = append(keys, strings.Split(tok.Str, ".")...)
		} else {
			keys = append(keys, tok.Str)
		}
	}

	p.log.Trace("object item", "keys", keys)

	tok, err := p.lexer.Peek()
	if err != nil {
		return nil, Value{}, err
	}
	switch tok.Type {
	case ASSIGN:
		if rawCount == 0 {
			return nil, Value{}, p.errorf(tok, "expected at least one object key")
		}
		if rawCount > 1 {
			return nil, Value{}, p.errorf(tok, "nested object expected: LBRACE")
		}
		p.lexer.Next()
		val, err := p.parseItem()
		if err != nil {
			return nil, Value{}, err
		}
		return keys, val, nil
	case LBRACE:
		if rawCount == 0 {
			return nil, Value{}, p.errorf(tok, "expected IDENT | STRING")
		}
		p.lexer.Next()
		val, err := p.parseObjectList(RBRACE)
		if err != nil {
			return nil, Value{}, err
		}
		return keys, val, nil
	default:
		return nil, Value{}, p.errorf(tok, "expected '=' or '{' after key, got %s", tok.Type)
	}
}

// parseItem parses a single scalar, list, or inline object literal value.
func (p *Parser) parseItem() (Value, error) {
	tok, err := p.lexer.Next()
	if err != nil {
		return Value{}, err
	}
	switch tok.Type {
	case STRING, HEREDOC:
		return String(tok.Str), nil
	case NUMBER:
		return Int(tok.Int), nil
	case FLOAT:
		return Float(tok.Float64), nil
	case BOOL:
		return Bool(tok.Bool), nil
	case LBRACK:
		return p.parseList()
	case LBRACE:
		return p.parseObjectList(RBRACE)
	default:
		return Value{}, p.errorf(tok, "unexpected %s, expected a value", tok.Type)
	}
}

// parseList reads `[` Item {',' Item} [','] `]`. A comma or the closing
// `]` is required immediately after every item; needComma tracks which
// of those is expected next, matching Parser::parseListType's needComma
// flag in the original implementation.
func (p *Parser) parseList() (Value, error) {
	lst := List()
	needComma := false
	for {
		tok, err := p.lexer.Peek()
		if err != nil {
			return Value{}, err
		}
		switch tok.Type {
		case RBRACK:
			p.lexer.Next()
			return lst, nil
		case COMMA:
			if !needComma {
				return Value{}, p.errorf(tok, "unexpected ','")
			}
			p.lexer.Next()
			needComma = false
			continue
		case EOF:
			return Value{}, p.errorf(tok, "unterminated list")
		default:
			if needComma {
				return Value{}, p.errorf(tok, "expected ',' or ']', got %s", tok.Type)
			}
		}
		item, err := p.parseItem()
		if err != nil {
			return Value{}, err
		}
		if err := lst.Push(item); err != nil {
			return Value{}, err
		}
		needComma = true
	}
}

// fuseItem walks keys into root, creating intermediate Objects as needed,
// and assigns val at the final key via promote. This is distinct from
// Value.Merge: Merge recursively unions two whole Object trees key by
// key, while fuseItem descends into intermediate keys that already hold
// Objects and promotes only at the final key, when that key already
// holds a value, matching HCL1's block fusion rather than a general deep
// merge.
func fuseItem(root Value, keys []string, val Value) error {
	cur := root
	for i, k := range keys {
		if i == len(keys)-1 {
			return promote(cur, k, val)
		}
		existing, ok := cur.FindChild(k)
		if !ok {
			child := Object()
			if err := cur.SetChild(k, child); err != nil {
				return err
			}
			cur = child
			continue
		}
		if !existing.IsObject() {
			return fmt.Errorf("%w: key %q already holds a %s value, cannot nest under it", ErrType, k, existing.Kind())
		}
		cur = existing
	}
	return nil
}

// promote assigns val at key on obj, promoting a colliding prior value
// into a List (or appending to an existing List) rather than overwriting
// it. This implements HCL1's "duplicate keys accumulate" rule: two
// `foo = 1` assignments, or two `resource "x" "y" { ... }` blocks with
// identical key chains, become a List of their values in encounter order.
func promote(obj Value, key string, val Value) error {
	existing, ok := obj.FindChild(key)
	if !ok {
		return obj.SetChild(key, val)
	}
	if existing.IsList() {
		return existing.Push(val)
	}
	return obj.SetChild(key, List(existing, val))
}
