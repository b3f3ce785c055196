package host

import (
	"fmt"
	"strconv"
	"strings"

	"evalkit/pkg/value"
)

// Array is the host container ArrayExpression builds and ForOfStatement
// iterates. RestElement binding (spec.md §4.3) also produces one.
type Array struct {
	Elements []value.Value
}

func NewArray(elements ...value.Value) *Array {
	return &Array{Elements: append([]value.Value(nil), elements...)}
}

func (a *Array) TypeName() string { return "Array" }

func (a *Array) String() string {
	parts := make([]string, len(a.Elements))
	for i, el := range a.Elements {
		parts[i] = el.String()
	}
	return strings.Join(parts, ",")
}

func (a *Array) Len() int { return len(a.Elements) }

func (a *Array) At(i int) (value.Value, bool) {
	if i < 0 || i >= len(a.Elements) {
		return value.Undefined(), false
	}
	return a.Elements[i], true
}

func (a *Array) SetAt(i int, v value.Value) {
	if i < 0 {
		return
	}
	for i >= len(a.Elements) {
		a.Elements = append(a.Elements, value.Undefined())
	}
	a.Elements[i] = v
}

func (a *Array) Push(v value.Value) {
	a.Elements = append(a.Elements, v)
}

// ParseIndex reports whether key is a valid non-negative array index
// (spec.md §4.2: "Numeric, string... keys all map to host property
// access" — a numeric-looking string key is an index, same as a number).
func ParseIndex(key string) (int, bool) {
	n, err := strconv.Atoi(key)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

func (a *Array) GoString() string {
	return fmt.Sprintf("Array(%d)", len(a.Elements))
}
