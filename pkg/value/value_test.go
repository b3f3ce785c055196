package value

import (
	"math"
	"testing"
)

func TestTruthy(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want bool
	}{
		{"undefined", Undefined(), false},
		{"null", Null(), false},
		{"false", Bool(false), false},
		{"true", Bool(true), true},
		{"zero", Number(0), false},
		{"nan", Number(math.NaN()), false},
		{"nonzero", Number(1), true},
		{"empty string", String(""), false},
		{"nonempty string", String("a"), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.Truthy(); got != tt.want {
				t.Errorf("Truthy() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValueStringFormatsNumbers(t *testing.T) {
	tests := []struct {
		n    float64
		want string
	}{
		{0, "0"},
		{1.5, "1.5"},
		{math.NaN(), "NaN"},
		{math.Inf(1), "Infinity"},
		{math.Inf(-1), "-Infinity"},
	}
	for _, tt := range tests {
		if got := Number(tt.n).String(); got != tt.want {
			t.Errorf("Number(%v).String() = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestAsAccessorsPanicOnWrongTag(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic reading AsNumber on a string Value")
		}
	}()
	String("x").AsNumber()
}

func TestTagPredicates(t *testing.T) {
	v := String("hi")
	if !v.IsString() || v.IsNumber() || v.IsBool() || v.IsHost() {
		t.Fatalf("tag predicates inconsistent for string value: %+v", v)
	}
}

func TestEvaluationConfigWithDefaults(t *testing.T) {
	c := EvaluationConfig{}.WithDefaults()
	if c.Interceptor == nil || c.OnError == nil {
		t.Fatal("WithDefaults should fill in Interceptor and OnError")
	}
	// Must not panic.
	c.Interceptor(Evaluation{})
	c.OnError(nil)
}

func TestEvaluationConfigMergeOverridesOnlyNonZero(t *testing.T) {
	base := EvaluationConfig{ScriptID: "base"}.WithDefaults()
	override := EvaluationConfig{ScriptID: "override"}

	merged := base.Merge(override)
	if merged.ScriptID != "override" {
		t.Errorf("ScriptID = %q, want override", merged.ScriptID)
	}
	if merged.Interceptor == nil {
		t.Fatal("Merge should keep base's Interceptor when override doesn't set one")
	}
}

func TestNewMetaFunctionWrapsAsValue(t *testing.T) {
	v := NewMetaFunction(nil, nil, EvaluationConfig{})
	if !v.IsMetaFunction() {
		t.Fatalf("expected a MetaFunction-tagged value, got %v", v.Tag())
	}
	if v.AsMetaFunction() == nil {
		t.Fatal("AsMetaFunction returned nil")
	}
}
