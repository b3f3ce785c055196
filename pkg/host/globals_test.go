package host

import (
	"math"
	"testing"

	"evalkit/pkg/value"
)

type fakeScope struct {
	bindings map[string]value.Value
}

func newFakeScope() *fakeScope { return &fakeScope{bindings: make(map[string]value.Value)} }

func (s *fakeScope) Get(name string) (value.Value, bool) { v, ok := s.bindings[name]; return v, ok }
func (s *fakeScope) Set(name string, v value.Value)      { s.bindings[name] = v }
func (s *fakeScope) Define(name string, v value.Value)   { s.bindings[name] = v }
func (s *fakeScope) Child() value.Scope                  { return newFakeScope() }

func TestPopulateGlobalsBindsEverything(t *testing.T) {
	scope := newFakeScope()
	PopulateGlobals(scope)

	for _, name := range []string{"console", "Math", "JSON", "RegExp", "parseInt", "parseFloat", "isNaN"} {
		if _, ok := scope.Get(name); !ok {
			t.Errorf("PopulateGlobals should bind %q", name)
		}
	}
}

func callFunc(t *testing.T, fn value.Value, args ...value.Value) value.Value {
	t.Helper()
	result, err := fn.AsHost().(*Func).Call(value.Undefined(), args)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return result
}

func TestParseIntFn(t *testing.T) {
	scope := newFakeScope()
	PopulateGlobals(scope)
	parseInt, _ := scope.Get("parseInt")

	tests := []struct {
		args []value.Value
		want float64
	}{
		{[]value.Value{value.String("42")}, 42},
		{[]value.Value{value.String("  -7")}, -7},
		{[]value.Value{value.String("0xFF"), value.Number(16)}, 255},
		{[]value.Value{value.String("101"), value.Number(2)}, 5},
		{[]value.Value{value.String("12abc")}, 12},
	}
	for _, tt := range tests {
		got := callFunc(t, parseInt, tt.args...)
		if got.AsNumber() != tt.want {
			t.Errorf("parseInt(%v) = %v, want %v", tt.args, got.AsNumber(), tt.want)
		}
	}

	if got := callFunc(t, parseInt, value.String("abc")); !math.IsNaN(got.AsNumber()) {
		t.Errorf("parseInt(abc) = %v, want NaN", got.AsNumber())
	}
}

func TestParseFloatFn(t *testing.T) {
	scope := newFakeScope()
	PopulateGlobals(scope)
	parseFloat, _ := scope.Get("parseFloat")

	tests := []struct {
		in   string
		want float64
	}{
		{"3.14", 3.14},
		{"-2.5e2abc", -250},
		{"  1", 1},
	}
	for _, tt := range tests {
		got := callFunc(t, parseFloat, value.String(tt.in))
		if got.AsNumber() != tt.want {
			t.Errorf("parseFloat(%q) = %v, want %v", tt.in, got.AsNumber(), tt.want)
		}
	}

	if got := callFunc(t, parseFloat, value.String("nope")); !math.IsNaN(got.AsNumber()) {
		t.Errorf("parseFloat(nope) = %v, want NaN", got.AsNumber())
	}
}

func TestIsNaNFn(t *testing.T) {
	scope := newFakeScope()
	PopulateGlobals(scope)
	isNaN, _ := scope.Get("isNaN")

	if !callFunc(t, isNaN, value.String("not a number")).AsBool() {
		t.Error("isNaN(\"not a number\") should be true")
	}
	if callFunc(t, isNaN, value.Number(42)).AsBool() {
		t.Error("isNaN(42) should be false")
	}
}
