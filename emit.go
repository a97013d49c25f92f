package hcl1

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

var bareKeyRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_-]*$`)

// EmitOptions controls canonical HCL1 text emission.
type EmitOptions struct {
	// SortKeys emits Object keys in lexicographic order instead of the
	// order they were first inserted (parsed or built via SetChild).
	SortKeys bool
}

// Emit renders v, which must be an Object, as canonical HCL1 text using
// default options (insertion-ordered keys, no color).
func Emit(v Value) (string, error) {
	return EmitWithOptions(v, EmitOptions{})
}

// EmitWithOptions renders v as canonical HCL1 text.
//
// Emission is a two-pass process per Object, section by section: pass 1
// writes `key = value` for every child that isn't itself an Object or a
// List of Objects; pass 2 writes a `[prefix.key]` header followed by
// that child's own two passes for each Object-valued key, and a
// `[[prefix.key]]` header per element for a List-of-Objects-valued key
// (the shape produced by parsing several same-keyed blocks). prefix is
// the dotted chain of section keys leading to the current Object,
// empty at the document root. Because both a literal list-of-objects
// and a fused block group share the same List-of-Object representation,
// Emit always uses `[[...]]` array-of-tables syntax for that shape,
// including for a value parsed from a `key = [{...}]` list literal.
// Parse does not accept `[...]` or `[[...]]` section headers, so output
// that contains a section header does not parse back with Parse.
func EmitWithOptions(v Value, opts EmitOptions) (string, error) {
	if !v.IsObject() {
		return "", fmt.Errorf("%w: Emit requires an Object value, got %s", ErrType, v.Kind())
	}
	var sb strings.Builder
	if err := emitSection(&sb, v, "", opts, newPainter(false)); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// EmitPretty writes v to w as HCL1 text, the same as EmitWithOptions,
// with ANSI syntax coloring enabled when w is a terminal (via
// mattn/go-isatty). Non-terminal writers (files, pipes, buffers) get
// identical output to EmitWithOptions.
func EmitPretty(w io.Writer, v Value, opts EmitOptions) error {
	if !v.IsObject() {
		return fmt.Errorf("%w: EmitPretty requires an Object value, got %s", ErrType, v.Kind())
	}
	enabled := false
	if f, ok := w.(*os.File); ok {
		enabled = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	var sb strings.Builder
	if err := emitSection(&sb, v, "", opts, newPainter(enabled)); err != nil {
		return err
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

type painter struct {
	key, str, num, kw func(format string, a ...any) string
}

func newPainter(enabled bool) *painter {
	if !enabled {
		id := func(f string, a ...any) string { return fmt.Sprintf(f, a...) }
		return &painter{key: id, str: id, num: id, kw: id}
	}
	return &painter{
		key: color.New(color.FgCyan).SprintfFunc(),
		str: color.New(color.FgGreen).SprintfFunc(),
		num: color.New(color.FgYellow).SprintfFunc(),
		kw:  color.New(color.FgMagenta).SprintfFunc(),
	}
}

type itemShape int

const (
	shapeAssign itemShape = iota
	shapeBlock
	shapeBlockGroup
)

func classify(v Value) itemShape {
	switch v.Kind() {
	case KindObject:
		return shapeBlock
	case KindList:
		items, _ := v.AsList()
		if len(items) == 0 {
			return shapeAssign
		}
		for _, it := range items {
			if !it.IsObject() {
				return shapeAssign
			}
		}
		return shapeBlockGroup
	default:
		return shapeAssign
	}
}

func emitSection(sb *strings.Builder, obj Value, prefix string, opts EmitOptions, p *painter) error {
	keys := obj.Keys()
	if opts.SortKeys {
		keys = obj.sortedKeys()
	}

	// Pass 1: assignments (scalars, plain lists, and mixed lists).
	for _, key := range keys {
		child, _ := obj.FindChild(key)
		if classify(child) != shapeAssign {
			continue
		}
		sb.WriteString(emitKey(key, p))
		sb.WriteString(" = ")
		s, err := emitInlineValue(child, p)
		if err != nil {
			return err
		}
		sb.WriteString(s)
		sb.WriteString("\n")
	}

	// Pass 2: nested sections ([prefix.key]) and array-of-tables groups
	// ([[prefix.key]] once per element).
	for _, key := range keys {
		child, _ := obj.FindChild(key)
		full := key
		if prefix != "" {
			full = prefix + "." + key
		}
		switch classify(child) {
		case shapeBlock:
			sb.WriteString("[")
			sb.WriteString(p.key("%s", full))
			sb.WriteString("]\n")
			if err := emitSection(sb, child, full, opts, p); err != nil {
				return err
			}
		case shapeBlockGroup:
			items, _ := child.AsList()
			for _, item := range items {
				sb.WriteString("[[")
				sb.WriteString(p.key("%s", full))
				sb.WriteString("]]\n")
				if err := emitSection(sb, item, full, opts, p); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func emitKey(key string, p *painter) string {
	if bareKeyRegex.MatchString(key) {
		return p.key("%s", key)
	}
	return p.key("%s", quoteHCLString(key))
}

func emitInlineValue(v Value, p *painter) (string, error) {
	switch v.Kind() {
	case KindNull, KindBool, KindInt, KindFloat, KindString:
		return emitScalar(v, p)
	case KindList:
		items, _ := v.AsList()
		parts := make([]string, len(items))
		for i, it := range items {
			s, err := emitInlineValue(it, p)
			if err != nil {
				return "", err
			}
			parts[i] = s
		}
		return "[" + strings.Join(parts, ", ") + "]", nil
	case KindObject:
		keys := v.Keys()
		parts := make([]string, len(keys))
		for i, k := range keys {
			child, _ := v.FindChild(k)
			s, err := emitInlineValue(child, p)
			if err != nil {
				return "", err
			}
			parts[i] = emitKey(k, p) + " = " + s
		}
		return "{ " + strings.Join(parts, ", ") + " }", nil
	default:
		return "", fmt.Errorf("%w: cannot emit value of kind %s", ErrType, v.Kind())
	}
}

func emitScalar(v Value, p *painter) (string, error) {
	switch v.Kind() {
	case KindNull:
		return p.kw("null"), nil
	case KindBool:
		b, _ := v.AsBool()
		return p.kw(strconv.FormatBool(b)), nil
	case KindInt:
		i, _ := v.AsInt()
		return p.num(strconv.FormatInt(i, 10)), nil
	case KindFloat:
		f, _ := v.AsFloat()
		return p.num(strconv.FormatFloat(f, 'g', -1, 64)), nil
	case KindString:
		s, _ := v.AsString()
		return p.str(quoteHCLString(s)), nil
	default:
		return "", fmt.Errorf("%w: %s is not a scalar", ErrType, v.Kind())
	}
}

// quoteHCLString renders s as a double-quoted HCL1 string literal. Bytes
// inside a `${...}` interpolation span are copied verbatim, mirroring
// the Lexer's own brace-depth tracking in reverse, so a value produced by
// parsing `"${file(\"x\")}"` re-emits identically instead of having its
// preserved interior escaping doubled up.
func quoteHCLString(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	rs := []rune(s)
	depth := 0
	for i := 0; i < len(rs); i++ {
		r := rs[i]
		if depth == 0 && r == '$' && i+1 < len(rs) && rs[i+1] == '{' {
			b.WriteString("${")
			i++
			depth = 1
			continue
		}
		if depth > 0 {
			b.WriteRune(r)
			switch r {
			case '{':
				depth++
			case '}':
				depth--
			}
			continue
		}
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}
