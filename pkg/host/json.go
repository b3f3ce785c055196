package host

import (
	"encoding/json"
	"fmt"
	"sort"

	"evalkit/pkg/value"
)

// NewJSON builds the JSON host Record: stringify/parse round-trip through
// Go's encoding/json, converting to/from evalkit's own Record/Array/Value
// model rather than native Go maps, so cyclic structures and host
// functions fail the same way a JSON encoder should (SPEC_FULL.md §4.7).
func NewJSON() *Record {
	j := NewRecord()
	j.Set("stringify", value.Host(NewFunc("stringify", jsonStringify)))
	j.Set("parse", value.Host(NewFunc("parse", jsonParse)))
	return j
}

func jsonStringify(this value.Value, args []value.Value) (value.Value, error) {
	if len(args) == 0 {
		return value.Undefined(), nil
	}
	indent := ""
	if len(args) > 2 && args[2].IsNumber() {
		n := int(args[2].AsNumber())
		for i := 0; i < n; i++ {
			indent += " "
		}
	}
	goVal, err := toGoValue(args[0])
	if err != nil {
		return value.Undefined(), err
	}
	var out []byte
	if indent != "" {
		out, err = json.MarshalIndent(goVal, "", indent)
	} else {
		out, err = json.Marshal(goVal)
	}
	if err != nil {
		return value.Undefined(), err
	}
	return value.String(string(out)), nil
}

func jsonParse(this value.Value, args []value.Value) (value.Value, error) {
	if len(args) == 0 {
		return value.Undefined(), fmt.Errorf("JSON.parse requires a string argument")
	}
	var decoded any
	if err := json.Unmarshal([]byte(args[0].AsString()), &decoded); err != nil {
		return value.Undefined(), err
	}
	return fromGoValue(decoded), nil
}

func toGoValue(v value.Value) (any, error) {
	switch v.Tag() {
	case value.TagUndefined:
		return nil, nil
	case value.TagNull:
		return nil, nil
	case value.TagBool:
		return v.AsBool(), nil
	case value.TagNumber:
		return v.AsNumber(), nil
	case value.TagString:
		return v.AsString(), nil
	case value.TagHost:
		switch h := v.AsHost().(type) {
		case *Record:
			out := make(map[string]any, len(h.keys))
			for _, k := range h.Keys() {
				el, _ := h.Get(k)
				gv, err := toGoValue(el)
				if err != nil {
					return nil, err
				}
				out[k] = gv
			}
			return out, nil
		case *Array:
			out := make([]any, h.Len())
			for i, el := range h.Elements {
				gv, err := toGoValue(el)
				if err != nil {
					return nil, err
				}
				out[i] = gv
			}
			return out, nil
		default:
			return nil, fmt.Errorf("cannot serialize %s to JSON", h.TypeName())
		}
	default:
		return nil, fmt.Errorf("cannot serialize %s to JSON", v.Tag())
	}
}

func fromGoValue(v any) value.Value {
	switch x := v.(type) {
	case nil:
		return value.Null()
	case bool:
		return value.Bool(x)
	case float64:
		return value.Number(x)
	case string:
		return value.String(x)
	case []any:
		elements := make([]value.Value, len(x))
		for i, el := range x {
			elements[i] = fromGoValue(el)
		}
		return value.Host(NewArray(elements...))
	case map[string]any:
		r := NewRecord()
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			r.Set(k, fromGoValue(x[k]))
		}
		return value.Host(r)
	default:
		return value.Undefined()
	}
}
