package env

import (
	"testing"

	"evalkit/pkg/value"
)

func TestDefineAndGet(t *testing.T) {
	f := NewRoot()
	f.Define("x", value.Number(1))

	v, ok := f.Get("x")
	if !ok || v.AsNumber() != 1 {
		t.Fatalf("Get(x) = %v, %v; want 1, true", v, ok)
	}

	if _, ok := f.Get("missing"); ok {
		t.Fatal("Get(missing) should report ok=false")
	}
}

func TestChildSeesParentBindings(t *testing.T) {
	root := NewRoot()
	root.Define("x", value.Number(1))

	child := NewChild(root)
	v, ok := child.Get("x")
	if !ok || v.AsNumber() != 1 {
		t.Fatalf("child should see parent's binding, got %v, %v", v, ok)
	}
}

func TestDefineShadowsOuterBinding(t *testing.T) {
	root := NewRoot()
	root.Define("x", value.Number(1))

	child := NewChild(root)
	child.Define("x", value.Number(2))

	childVal, _ := child.Get("x")
	rootVal, _ := root.Get("x")
	if childVal.AsNumber() != 2 {
		t.Fatalf("child's own binding should shadow, got %v", childVal)
	}
	if rootVal.AsNumber() != 1 {
		t.Fatalf("shadowing in child must not mutate parent, got %v", rootVal)
	}
}

func TestSetAssignsNearestBindingFrame(t *testing.T) {
	root := NewRoot()
	root.Define("x", value.Number(1))
	child := NewChild(root)

	child.Set("x", value.Number(99))

	rootVal, _ := root.Get("x")
	if rootVal.AsNumber() != 99 {
		t.Fatalf("Set should walk up to the frame that binds x, got %v", rootVal)
	}
}

func TestSetCreatesAtRootWhenUnbound(t *testing.T) {
	root := NewRoot()
	child := NewChild(root)
	grandchild := NewChild(child)

	grandchild.Set("y", value.String("sloppy"))

	if _, ok := child.values["y"]; ok {
		t.Fatal("unbound Set must not land in an intermediate frame")
	}
	rootVal, ok := root.Get("y")
	if !ok || rootVal.AsString() != "sloppy" {
		t.Fatalf("unbound Set should create the binding at the root frame, got %v, %v", rootVal, ok)
	}
}

func TestScopeInterfaceChild(t *testing.T) {
	var s value.Scope = NewRoot()
	s.Define("a", value.Bool(true))

	c := s.Child()
	v, ok := c.Get("a")
	if !ok || !v.AsBool() {
		t.Fatalf("value.Scope.Child() should chain to the parent, got %v, %v", v, ok)
	}
}
