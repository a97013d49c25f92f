package hcl1

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// Decode projects v into plain Go values (map[string]any, []any, and
// scalars) and then decodes that projection into target via
// mapstructure, with weakly-typed input enabled so that, for instance,
// an HCL Integer decodes cleanly into a Go float64 field. Struct field
// tags use the "hcl" key; untagged fields match by lower-cased name.
func (v Value) Decode(target any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		WeaklyTypedInput: true,
		TagName:          "hcl",
	})
	if err != nil {
		return fmt.Errorf("%w: building decoder: %v", ErrType, err)
	}
	if err := dec.Decode(v.toInterface()); err != nil {
		return fmt.Errorf("%w: %v", ErrType, err)
	}
	return nil
}

// toInterface projects v into the plain Go representation mapstructure,
// encoding/json, and goccy/go-yaml all expect: map[string]any, []any,
// and the scalar Go types.
func (v Value) toInterface() any {
	switch v.kind {
	case KindNull:
		return nil
	case KindBool:
		return v.b
	case KindInt:
		return v.i
	case KindFloat:
		return v.f
	case KindString:
		return v.s
	case KindList:
		out := make([]any, len(v.l.items))
		for i, e := range v.l.items {
			out[i] = e.toInterface()
		}
		return out
	case KindObject:
		out := make(map[string]any, len(v.obj.keys))
		for _, k := range v.obj.keys {
			out[k] = v.obj.m[k].toInterface()
		}
		return out
	default:
		return nil
	}
}
