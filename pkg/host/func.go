package host

import "evalkit/pkg/value"

// Func is the shape every native operator, built-in method, and
// createMetaFunctionWrapper output conforms to (spec.md §4.3, §6):
// a host-callable taking `this` and an argument list.
//
// Source, when non-empty, holds the evalkit source text the function was
// defined from — set only by NewReflectableFunc. This is what lets such a
// value satisfy spec.md §2's third Source variant ("a host function value
// to be reflected"): C7's Context.resolve recognizes it and re-parses
// Source rather than rejecting the value outright. A Func built with
// NewFunc (every operator and built-in in this package) has no source text
// of its own — it's a Go closure — so Source stays empty and such values
// remain callable but not reflectable.
type Func struct {
	Name   string
	Fn     func(this value.Value, args []value.Value) (value.Value, error)
	Source string
}

func NewFunc(name string, fn func(this value.Value, args []value.Value) (value.Value, error)) *Func {
	return &Func{Name: name, Fn: fn}
}

// NewReflectableFunc wraps an evalkit-authored function so it can be
// handed back to Context.Evaluate as a Source: calling it runs fn directly,
// while resolving it as a Source re-parses text. Used by host code that
// hands interpreted callbacks around as plain values (e.g. a registered
// event handler) but still wants the evaluator able to re-enter the
// original definition.
func NewReflectableFunc(name, text string, fn func(this value.Value, args []value.Value) (value.Value, error)) *Func {
	return &Func{Name: name, Fn: fn, Source: text}
}

func (f *Func) TypeName() string { return "Function" }

func (f *Func) String() string {
	if f.Name == "" {
		return "function () { [native code] }"
	}
	return "function " + f.Name + "() { [native code] }"
}

func (f *Func) Call(this value.Value, args []value.Value) (value.Value, error) {
	return f.Fn(this, args)
}

var _ value.Callable = (*Func)(nil)
