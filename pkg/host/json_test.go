package host

import (
	"testing"

	"evalkit/pkg/value"
)

func callJSON(t *testing.T, method string, args ...value.Value) value.Value {
	t.Helper()
	j := NewJSON()
	fnVal, ok := j.Get(method)
	if !ok {
		t.Fatalf("JSON.%s is not defined", method)
	}
	fn := fnVal.AsHost().(*Func)
	result, err := fn.Call(value.Undefined(), args)
	if err != nil {
		t.Fatalf("JSON.%s: unexpected error %v", method, err)
	}
	return result
}

func TestJSONStringifyRoundTripsRecord(t *testing.T) {
	r := NewRecord()
	r.Set("a", value.Number(1))
	r.Set("b", value.String("x"))

	out := callJSON(t, "stringify", value.Host(r))
	if out.AsString() != `{"a":1,"b":"x"}` {
		t.Fatalf("stringify = %q", out.AsString())
	}
}

func TestJSONStringifyArray(t *testing.T) {
	a := NewArray(value.Number(1), value.Number(2))
	out := callJSON(t, "stringify", value.Host(a))
	if out.AsString() != "[1,2]" {
		t.Fatalf("stringify = %q", out.AsString())
	}
}

func TestJSONParseBuildsRecordAndArray(t *testing.T) {
	out := callJSON(t, "parse", value.String(`{"a":1,"b":[true,null]}`))
	r, ok := out.AsHost().(*Record)
	if !ok {
		t.Fatalf("parse should yield a Record, got %T", out.AsHost())
	}
	a, ok := r.Get("a")
	if !ok || a.AsNumber() != 1 {
		t.Fatalf("parsed a = %v, %v", a, ok)
	}
	bVal, ok := r.Get("b")
	if !ok {
		t.Fatal("parsed record missing key b")
	}
	arr, ok := bVal.AsHost().(*Array)
	if !ok || arr.Len() != 2 {
		t.Fatalf("parsed b should be a 2-element array, got %v", bVal)
	}
	if !arr.Elements[0].AsBool() {
		t.Error("b[0] should be true")
	}
	if !arr.Elements[1].IsNull() {
		t.Error("b[1] should be null")
	}
}

func TestJSONParseInvalidInputErrors(t *testing.T) {
	j := NewJSON()
	fnVal, _ := j.Get("parse")
	fn := fnVal.AsHost().(*Func)
	if _, err := fn.Call(value.Undefined(), []value.Value{value.String("not json")}); err == nil {
		t.Fatal("expected a parse error for invalid JSON")
	}
}
