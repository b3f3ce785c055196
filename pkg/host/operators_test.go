package host

import (
	"math"
	"testing"

	"evalkit/pkg/value"
)

func TestBinaryArithmetic(t *testing.T) {
	tests := []struct {
		op          string
		left, right value.Value
		want        float64
	}{
		{"+", value.Number(1), value.Number(2), 3},
		{"-", value.Number(5), value.Number(2), 3},
		{"*", value.Number(3), value.Number(4), 12},
		{"/", value.Number(10), value.Number(4), 2.5},
		{"%", value.Number(10), value.Number(3), 1},
	}
	for _, tt := range tests {
		got, err := Binary(tt.op, tt.left, tt.right)
		if err != nil {
			t.Fatalf("Binary(%q): unexpected error %v", tt.op, err)
		}
		if got.AsNumber() != tt.want {
			t.Errorf("Binary(%q) = %v, want %v", tt.op, got.AsNumber(), tt.want)
		}
	}
}

func TestBinaryPlusConcatenatesWhenEitherSideIsString(t *testing.T) {
	got, err := Binary("+", value.String("a"), value.Number(1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.AsString() != "a1" {
		t.Errorf("got %q, want %q", got.AsString(), "a1")
	}
}

func TestBinaryUnsupportedOperator(t *testing.T) {
	if _, err := Binary("@@", value.Number(1), value.Number(1)); err == nil {
		t.Fatal("expected an error for an unsupported operator")
	}
}

func TestStrictEqualsRequiresSameTag(t *testing.T) {
	if StrictEquals(value.Number(1), value.String("1")) {
		t.Error("1 === \"1\" should be false")
	}
	if !StrictEquals(value.Number(1), value.Number(1)) {
		t.Error("1 === 1 should be true")
	}
	if !StrictEquals(value.Null(), value.Null()) {
		t.Error("null === null should be true")
	}
}

func TestLooseEqualsCoercesAcrossTypes(t *testing.T) {
	got, err := Binary("==", value.Number(1), value.String("1"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.AsBool() {
		t.Error("1 == \"1\" should be true")
	}

	got, err = Binary("==", value.Null(), value.Undefined())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.AsBool() {
		t.Error("null == undefined should be true")
	}
}

func TestBitwiseOperatorsCoerceThroughInt32(t *testing.T) {
	got, err := Binary("&", value.Number(6), value.Number(3))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.AsNumber() != 2 {
		t.Errorf("6 & 3 = %v, want 2", got.AsNumber())
	}
}

func TestUnaryOperators(t *testing.T) {
	v, _ := Unary("!", value.Bool(true))
	if v.AsBool() {
		t.Error("!true should be false")
	}
	v, _ = Unary("-", value.Number(5))
	if v.AsNumber() != -5 {
		t.Errorf("-5 got %v", v.AsNumber())
	}
	v, _ = Unary("typeof", value.Undefined())
	if v.AsString() != "undefined" {
		t.Errorf("typeof undefined got %q", v.AsString())
	}
}

func TestTypeOfHostCallableIsFunction(t *testing.T) {
	fn := NewFunc("f", func(this value.Value, args []value.Value) (value.Value, error) {
		return value.Undefined(), nil
	})
	if TypeOf(value.Host(fn)) != "function" {
		t.Errorf("typeof a Func host object should be \"function\"")
	}
	if TypeOf(value.Host(NewRecord())) != "object" {
		t.Errorf("typeof a Record host object should be \"object\"")
	}
}

func TestToNumberCoercions(t *testing.T) {
	tests := []struct {
		v    value.Value
		want float64
	}{
		{value.Bool(true), 1},
		{value.Bool(false), 0},
		{value.Null(), 0},
		{value.String("3.5"), 3.5},
		{value.String(""), 0},
	}
	for _, tt := range tests {
		if got := ToNumber(tt.v); got != tt.want {
			t.Errorf("ToNumber(%v) = %v, want %v", tt.v, got, tt.want)
		}
	}
	if !math.IsNaN(ToNumber(value.Undefined())) {
		t.Error("ToNumber(undefined) should be NaN")
	}
	if !math.IsNaN(ToNumber(value.String("not a number"))) {
		t.Error("ToNumber of an unparsable string should be NaN")
	}
}
