package hcl1

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	jsonpatch "github.com/evanphx/json-patch"
)

// ToJSON renders v as JSON. Object key order is not preserved:
// encoding/json always emits map keys sorted lexicographically.
func (v Value) ToJSON() ([]byte, error) {
	b, err := json.Marshal(v.toInterface())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrType, err)
	}
	return b, nil
}

// FromJSON parses JSON data into a Value tree. Numbers are decoded via
// json.Number so an integral literal like `5` becomes an Integer while
// `5.0` or `5e1` becomes a Float, matching HCL1's own literal-shape rule.
func FromJSON(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return Value{}, fmt.Errorf("%w: %v", ErrIO, err)
	}
	return fromJSONInterface(raw)
}

func fromJSONInterface(raw any) (Value, error) {
	switch t := raw.(type) {
	case nil:
		return Null(), nil
	case bool:
		return Bool(t), nil
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return Int(i), nil
		}
		f, err := t.Float64()
		if err != nil {
			return Value{}, fmt.Errorf("%w: invalid JSON number %q", ErrType, t.String())
		}
		return Float(f), nil
	case string:
		return String(t), nil
	case []any:
		items := make([]Value, len(t))
		for i, e := range t {
			cv, err := fromJSONInterface(e)
			if err != nil {
				return Value{}, err
			}
			items[i] = cv
		}
		return List(items...), nil
	case map[string]any:
		obj := Object()
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			cv, err := fromJSONInterface(t[k])
			if err != nil {
				return Value{}, err
			}
			if err := obj.SetChild(k, cv); err != nil {
				return Value{}, err
			}
		}
		return obj, nil
	default:
		return Value{}, fmt.Errorf("%w: unsupported JSON value %T", ErrType, raw)
	}
}

// ApplyMergePatch applies an RFC 7386 JSON Merge Patch document to v's
// JSON projection and returns the patched Value. This is a distinct,
// explicit merge strategy from Merge and the parser's block fusion: a
// merge patch can delete keys via JSON null and always operates on the
// JSON projection rather than v's own Object/List structure directly.
func (v Value) ApplyMergePatch(patch []byte) (Value, error) {
	orig, err := v.ToJSON()
	if err != nil {
		return Value{}, err
	}
	merged, err := jsonpatch.MergePatch(orig, patch)
	if err != nil {
		return Value{}, fmt.Errorf("%w: applying merge patch: %v", ErrType, err)
	}
	return FromJSON(merged)
}
