package value

// Scope is the capability an Environment (C2, pkg/env) provides to the
// rest of the interpreter. value.MetaFunction pins a Scope rather than a
// concrete *env.Frame so this package never needs to import pkg/env —
// pkg/env imports pkg/value instead, keeping the dependency graph a DAG
// rooted here.
type Scope interface {
	// Get walks the frame chain for name, returning ok=false if unbound
	// anywhere in the chain (spec.md §4.4 getValue).
	Get(name string) (Value, bool)
	// Set assigns to the nearest frame that already binds name, creating
	// the binding at the root frame if no frame binds it (spec.md §4.4
	// setValue, the "sloppy" fallback — see DESIGN.md Open Question).
	Set(name string, v Value)
	// Define binds name in the current (innermost) frame, shadowing any
	// outer binding of the same name (spec.md §4.4 defineValue).
	Define(name string, v Value)
	// Child returns a new frame whose parent is this one (spec.md §4.4
	// mergeValues, generalized to take no initial bindings — callers
	// Define into the child afterward).
	Child() Scope
}
