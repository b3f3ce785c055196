package host

import (
	"reflect"
	"testing"

	"evalkit/pkg/value"
)

func TestRecordPreservesInsertionOrder(t *testing.T) {
	r := NewRecord()
	r.Set("b", value.Number(2))
	r.Set("a", value.Number(1))
	r.Set("b", value.Number(20)) // re-setting an existing key must not move it

	if got := r.Keys(); !reflect.DeepEqual(got, []string{"b", "a"}) {
		t.Fatalf("Keys() = %v, want [b a]", got)
	}
	v, ok := r.Get("b")
	if !ok || v.AsNumber() != 20 {
		t.Fatalf("Get(b) = %v, %v; want 20, true", v, ok)
	}
}

func TestRecordDelete(t *testing.T) {
	r := NewRecord()
	r.Set("a", value.Number(1))
	r.Set("b", value.Number(2))
	r.Delete("a")

	if _, ok := r.Get("a"); ok {
		t.Fatal("deleted key should no longer be present")
	}
	if got := r.Keys(); !reflect.DeepEqual(got, []string{"b"}) {
		t.Fatalf("Keys() after delete = %v, want [b]", got)
	}
}

func TestArraySetAtGrowsWithUndefinedHoles(t *testing.T) {
	a := NewArray(value.Number(1))
	a.SetAt(3, value.Number(4))

	if a.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", a.Len())
	}
	hole, _ := a.At(1)
	if !hole.IsUndefined() {
		t.Errorf("hole at index 1 should be undefined, got %v", hole)
	}
	last, _ := a.At(3)
	if last.AsNumber() != 4 {
		t.Errorf("At(3) = %v, want 4", last.AsNumber())
	}
}

func TestArrayAtOutOfBounds(t *testing.T) {
	a := NewArray(value.Number(1))
	if _, ok := a.At(5); ok {
		t.Fatal("out-of-bounds At should report ok=false")
	}
	if _, ok := a.At(-1); ok {
		t.Fatal("negative index At should report ok=false")
	}
}

func TestParseIndex(t *testing.T) {
	if idx, ok := ParseIndex("3"); !ok || idx != 3 {
		t.Fatalf("ParseIndex(3) = %d, %v", idx, ok)
	}
	if _, ok := ParseIndex("-1"); ok {
		t.Fatal("ParseIndex should reject negative numbers")
	}
	if _, ok := ParseIndex("abc"); ok {
		t.Fatal("ParseIndex should reject non-numeric keys")
	}
}

func TestGetPropertyOnNullIsAnError(t *testing.T) {
	if _, err := GetProperty(value.Null(), "x"); err == nil {
		t.Fatal("reading a property off null should error")
	}
}

func TestGetPropertyStringLengthAndIndex(t *testing.T) {
	v, err := GetProperty(value.String("hey"), "length")
	if err != nil || v.AsNumber() != 3 {
		t.Fatalf("length = %v, %v; want 3, nil", v, err)
	}
	v, err = GetProperty(value.String("hey"), "1")
	if err != nil || v.AsString() != "e" {
		t.Fatalf("index 1 = %v, %v; want \"e\", nil", v, err)
	}
}

func TestSetPropertyOnArrayByIndex(t *testing.T) {
	a := NewArray()
	if err := SetProperty(value.Host(a), "0", value.String("x")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	el, _ := a.At(0)
	if el.AsString() != "x" {
		t.Errorf("At(0) = %v, want \"x\"", el)
	}
}

func TestEnumerateKeysRecordAndArray(t *testing.T) {
	r := NewRecord()
	r.Set("x", value.Number(1))
	r.Set("y", value.Number(2))
	keys, err := EnumerateKeys(value.Host(r))
	if err != nil || !reflect.DeepEqual(keys, []string{"x", "y"}) {
		t.Fatalf("record keys = %v, %v", keys, err)
	}

	a := NewArray(value.Number(10), value.Number(20))
	keys, err = EnumerateKeys(value.Host(a))
	if err != nil || !reflect.DeepEqual(keys, []string{"0", "1"}) {
		t.Fatalf("array keys = %v, %v", keys, err)
	}
}

func TestIterateStringYieldsRunes(t *testing.T) {
	next, err := Iterate(value.String("ab"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var got []string
	for {
		v, ok := next()
		if !ok {
			break
		}
		got = append(got, v.AsString())
	}
	if !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Fatalf("got %v, want [a b]", got)
	}
}

func TestIterateNonIterableErrors(t *testing.T) {
	if _, err := Iterate(value.Number(1)); err == nil {
		t.Fatal("a number should not be iterable")
	}
}

func TestCallInvokesHostCallable(t *testing.T) {
	fn := NewFunc("add1", func(this value.Value, args []value.Value) (value.Value, error) {
		return value.Number(args[0].AsNumber() + 1), nil
	})
	result, err := Call(value.Host(fn), value.Undefined(), []value.Value{value.Number(4)})
	if err != nil || result.AsNumber() != 5 {
		t.Fatalf("Call = %v, %v; want 5, nil", result, err)
	}
}

func TestCallOnNonFunctionErrors(t *testing.T) {
	if _, err := Call(value.Number(1), value.Undefined(), nil); err == nil {
		t.Fatal("calling a non-function value should error")
	}
}
