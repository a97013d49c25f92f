package hcl1

import (
	"fmt"
	"sort"

	"github.com/goccy/go-yaml"
)

// ToYAML renders v as YAML via the same plain-Go projection used by
// ToJSON and Decode.
func (v Value) ToYAML() ([]byte, error) {
	b, err := yaml.Marshal(v.toInterface())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrType, err)
	}
	return b, nil
}

// FromYAML parses YAML data into a Value tree.
func FromYAML(data []byte) (Value, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Value{}, fmt.Errorf("%w: %v", ErrIO, err)
	}
	return fromYAMLInterface(raw)
}

func fromYAMLInterface(raw any) (Value, error) {
	switch t := raw.(type) {
	case nil:
		return Null(), nil
	case bool:
		return Bool(t), nil
	case int:
		return Int(int64(t)), nil
	case int64:
		return Int(t), nil
	case uint64:
		return Int(int64(t)), nil
	case float64:
		return Float(t), nil
	case string:
		return String(t), nil
	case []any:
		items := make([]Value, len(t))
		for i, e := range t {
			cv, err := fromYAMLInterface(e)
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
			cv, err := fromYAMLInterface(t[k])
			if err != nil {
				return Value{}, err
			}
			if err := obj.SetChild(k, cv); err != nil {
				return Value{}, err
			}
		}
		return obj, nil
	case map[any]any:
		obj := Object()
		for k, vv := range t {
			ks, ok := k.(string)
			if !ok {
				return Value{}, fmt.Errorf("%w: non-string YAML map key %v", ErrType, k)
			}
			cv, err := fromYAMLInterface(vv)
			if err != nil {
				return Value{}, err
			}
			if err := obj.SetChild(ks, cv); err != nil {
				return Value{}, err
			}
		}
		return obj, nil
	default:
		return Value{}, fmt.Errorf("%w: unsupported YAML value %T", ErrType, raw)
	}
}
