package host

import (
	"fmt"
	"unicode/utf8"

	"evalkit/pkg/value"
)

// PropertyError is returned by GetProperty/SetProperty when the host
// cannot satisfy the access at all (property access on null/undefined) —
// distinct from "property not found", which yields Undefined per the
// host's normal property-miss behavior.
type PropertyError struct {
	Msg string
}

func (e *PropertyError) Error() string { return e.Msg }

// GetProperty implements the host side of MemberExpression (spec.md §4.2):
// "evaluate object, then key... and read... on the host object. Numeric,
// string, and symbolic keys all map to host property access."
func GetProperty(obj value.Value, key string) (value.Value, error) {
	switch obj.Tag() {
	case value.TagNull, value.TagUndefined:
		return value.Undefined(), &PropertyError{Msg: fmt.Sprintf("cannot read property '%s' of %s", key, obj.Tag())}
	case value.TagString:
		return getStringProperty(obj.AsString(), key), nil
	case value.TagHost:
		return getHostProperty(obj.AsHost(), key)
	default:
		return value.Undefined(), nil
	}
}

// SetProperty implements the host side of AssignmentExpression targeting a
// MemberExpression (spec.md §4.2).
func SetProperty(obj value.Value, key string, v value.Value) error {
	if obj.Tag() != value.TagHost {
		return &PropertyError{Msg: fmt.Sprintf("cannot set property '%s' of %s", key, obj.Tag())}
	}
	switch h := obj.AsHost().(type) {
	case *Record:
		h.Set(key, v)
		return nil
	case *Array:
		if idx, ok := ParseIndex(key); ok {
			h.SetAt(idx, v)
			return nil
		}
		if key == "length" && v.IsNumber() {
			n := int(v.AsNumber())
			if n < len(h.Elements) {
				h.Elements = h.Elements[:n]
			} else {
				for len(h.Elements) < n {
					h.Elements = append(h.Elements, value.Undefined())
				}
			}
			return nil
		}
		return nil
	default:
		return nil
	}
}

func getStringProperty(s string, key string) value.Value {
	if key == "length" {
		return value.Number(float64(utf8.RuneCountInString(s)))
	}
	if idx, ok := ParseIndex(key); ok {
		runes := []rune(s)
		if idx < len(runes) {
			return value.String(string(runes[idx]))
		}
		return value.Undefined()
	}
	if fn, ok := stringMethods[key]; ok {
		return value.Host(fn)
	}
	return value.Undefined()
}

func getHostProperty(h value.HostObject, key string) (value.Value, error) {
	switch obj := h.(type) {
	case *Record:
		if v, ok := obj.Get(key); ok {
			return v, nil
		}
		return value.Undefined(), nil
	case *Array:
		if key == "length" {
			return value.Number(float64(obj.Len())), nil
		}
		if idx, ok := ParseIndex(key); ok {
			v, _ := obj.At(idx)
			return v, nil
		}
		if fn, ok := arrayMethods[key]; ok {
			return value.Host(fn), nil
		}
		return value.Undefined(), nil
	case *Func:
		if key == "name" {
			return value.String(obj.Name), nil
		}
		return value.Undefined(), nil
	case *RegExp:
		if fn, ok := regexpMethods[key]; ok {
			return value.Host(fn), nil
		}
		if key == "source" {
			return value.String(obj.Source), nil
		}
		return value.Undefined(), nil
	default:
		return value.Undefined(), nil
	}
}

// EnumerateKeys implements ForInStatement's key-enumeration protocol
// (spec.md §4.2).
func EnumerateKeys(obj value.Value) ([]string, error) {
	if obj.Tag() != value.TagHost {
		return nil, nil
	}
	switch h := obj.AsHost().(type) {
	case *Record:
		return h.Keys(), nil
	case *Array:
		keys := make([]string, h.Len())
		for i := range keys {
			keys[i] = fmt.Sprintf("%d", i)
		}
		return keys, nil
	default:
		return nil, nil
	}
}

// Iterate implements ForOfStatement's iterator protocol (spec.md §4.2) for
// the two iterable host kinds evalkit ships: Array and String.
func Iterate(obj value.Value) (next func() (value.Value, bool), err error) {
	switch obj.Tag() {
	case value.TagString:
		runes := []rune(obj.AsString())
		i := 0
		return func() (value.Value, bool) {
			if i >= len(runes) {
				return value.Undefined(), false
			}
			v := value.String(string(runes[i]))
			i++
			return v, true
		}, nil
	case value.TagHost:
		if arr, ok := obj.AsHost().(*Array); ok {
			i := 0
			return func() (value.Value, bool) {
				if i >= arr.Len() {
					return value.Undefined(), false
				}
				v, _ := arr.At(i)
				i++
				return v, true
			}, nil
		}
	}
	return nil, &PropertyError{Msg: fmt.Sprintf("%s is not iterable", obj.Tag())}
}

// Call dispatches a CallExpression/NewExpression callee that resolved to a
// host Callable (spec.md §4.2: "fn.apply(thisObj, args) at host level").
// MetaFunction callees are handled by pkg/eval directly, via C5, not here.
func Call(fn value.Value, this value.Value, args []value.Value) (value.Value, error) {
	if fn.Tag() != value.TagHost {
		return value.Undefined(), &PropertyError{Msg: fmt.Sprintf("%s is not a function", fn.Tag())}
	}
	callable, ok := fn.AsHost().(value.Callable)
	if !ok {
		return value.Undefined(), &PropertyError{Msg: fmt.Sprintf("%s is not a function", fn.AsHost().TypeName())}
	}
	return callable.Call(this, args)
}
