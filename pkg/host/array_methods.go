package host

import (
	"strings"

	"evalkit/pkg/value"
)

// arrayMethods intentionally excludes callback-taking methods
// (map/filter/forEach): host cannot invoke a value.MetaFunction itself —
// that requires pkg/eval's meta-function bridge (C5), which depends on
// this package, not the other way around. A higher-order Array method
// would need to live in pkg/eval instead; none of spec.md's end-to-end
// scenarios need one, so evalkit does not add it.
var arrayMethods = map[string]*Func{
	"push":    NewFunc("push", arrayPush),
	"pop":     NewFunc("pop", arrayPop),
	"join":    NewFunc("join", arrayJoin),
	"slice":   NewFunc("slice", arraySlice),
	"indexOf": NewFunc("indexOf", arrayIndexOf),
	"concat":  NewFunc("concat", arrayConcat),
	"reverse": NewFunc("reverse", arrayReverse),
}

func asArray(v value.Value) *Array {
	return v.AsHost().(*Array)
}

func arrayPush(this value.Value, args []value.Value) (value.Value, error) {
	arr := asArray(this)
	arr.Elements = append(arr.Elements, args...)
	return value.Number(float64(arr.Len())), nil
}

func arrayPop(this value.Value, args []value.Value) (value.Value, error) {
	arr := asArray(this)
	if arr.Len() == 0 {
		return value.Undefined(), nil
	}
	last := arr.Elements[arr.Len()-1]
	arr.Elements = arr.Elements[:arr.Len()-1]
	return last, nil
}

func arrayJoin(this value.Value, args []value.Value) (value.Value, error) {
	arr := asArray(this)
	sep := ","
	if len(args) > 0 {
		sep = args[0].AsString()
	}
	parts := make([]string, arr.Len())
	for i, el := range arr.Elements {
		if el.IsNullOrUndefined() {
			parts[i] = ""
		} else {
			parts[i] = el.String()
		}
	}
	return value.String(strings.Join(parts, sep)), nil
}

func arraySlice(this value.Value, args []value.Value) (value.Value, error) {
	arr := asArray(this)
	start, end := 0, arr.Len()
	if len(args) > 0 {
		start = clampIndex(int(args[0].AsNumber()), arr.Len())
	}
	if len(args) > 1 {
		end = clampIndex(int(args[1].AsNumber()), arr.Len())
	}
	if end < start {
		end = start
	}
	return value.Host(NewArray(arr.Elements[start:end]...)), nil
}

func arrayIndexOf(this value.Value, args []value.Value) (value.Value, error) {
	arr := asArray(this)
	if len(args) == 0 {
		return value.Number(-1), nil
	}
	target := args[0]
	for i, el := range arr.Elements {
		if StrictEquals(el, target) {
			return value.Number(float64(i)), nil
		}
	}
	return value.Number(-1), nil
}

func arrayConcat(this value.Value, args []value.Value) (value.Value, error) {
	arr := asArray(this)
	out := append([]value.Value(nil), arr.Elements...)
	for _, a := range args {
		if a.Tag() == value.TagHost {
			if other, ok := a.AsHost().(*Array); ok {
				out = append(out, other.Elements...)
				continue
			}
		}
		out = append(out, a)
	}
	return value.Host(NewArray(out...)), nil
}

func arrayReverse(this value.Value, args []value.Value) (value.Value, error) {
	arr := asArray(this)
	for i, j := 0, len(arr.Elements)-1; i < j; i, j = i+1, j-1 {
		arr.Elements[i], arr.Elements[j] = arr.Elements[j], arr.Elements[i]
	}
	return this, nil
}
