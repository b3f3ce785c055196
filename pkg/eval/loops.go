package eval

import (
	"evalkit/pkg/ast"
	"evalkit/pkg/host"
	"evalkit/pkg/value"
)

// runSync drives a single Evaluate call to its one synchronous outcome.
// Every node evaluator in this package completes synchronously (spec.md
// §5: no host value here introduces its own suspension), so capturing the
// outcome this way lets the loop evaluators below drive iteration with a
// plain Go `for`, trampolining the hot path rather than recursing once
// per iteration (spec.md §9's suggested strategy for bounding stack
// growth).
func runSync(node ast.Node, env value.Scope, config value.EvaluationConfig) (value.Value, *value.Packet) {
	var v value.Value
	var p *value.Packet
	Evaluate(node, env, config, func(rv value.Value) { v = rv }, func(rp value.Packet) { p = &rp })
	return v, p
}

// runLoopIteration evaluates one loop body. It reports keepGoing=true when
// the trampoline should proceed to the next iteration (including after
// swallowing a matching continue); otherwise it has already delivered the
// loop's final outcome to c or cerr (spec.md §4.2: "break raises an
// ExceptionPacket... caught by the loop"; labels matched by `label`,
// unmatched labels re-raise).
func runLoopIteration(body ast.Node, env value.Scope, config value.EvaluationConfig, label string, c value.Cont, cerr value.ErrCont) bool {
	_, perr := runSync(body, env, config)
	if perr == nil {
		return true
	}
	switch perr.Type {
	case value.PacketBreak:
		if perr.Label == "" || perr.Label == label {
			c(value.Undefined())
			return false
		}
		cerr(*perr)
		return false
	case value.PacketContinue:
		if perr.Label == "" || perr.Label == label {
			return true
		}
		cerr(*perr)
		return false
	default:
		cerr(*perr)
		return false
	}
}

// evalWhileStatement implements spec.md §4.2's WhileStatement rule.
func evalWhileStatement(n *ast.WhileStatement, env value.Scope, config value.EvaluationConfig, c value.Cont, cerr value.ErrCont) {
	for {
		t, perr := runSync(n.Test, env, config)
		if perr != nil {
			cerr(*perr)
			return
		}
		if !t.Truthy() {
			c(value.Undefined())
			return
		}
		if !runLoopIteration(n.Body, env, config, n.Label, c, cerr) {
			return
		}
	}
}

// evalDoWhileStatement implements spec.md §4.2's DoWhileStatement rule.
func evalDoWhileStatement(n *ast.DoWhileStatement, env value.Scope, config value.EvaluationConfig, c value.Cont, cerr value.ErrCont) {
	for {
		if !runLoopIteration(n.Body, env, config, n.Label, c, cerr) {
			return
		}
		t, perr := runSync(n.Test, env, config)
		if perr != nil {
			cerr(*perr)
			return
		}
		if !t.Truthy() {
			c(value.Undefined())
			return
		}
	}
}

// evalForStatement implements spec.md §4.2's ForStatement rule. Init runs
// once, in a frame shared across iterations (spec.md is silent on
// per-iteration `let` rebinding for the classic three-clause form, unlike
// ForOfStatement/ForInStatement, which it explicitly calls out).
func evalForStatement(n *ast.ForStatement, env value.Scope, config value.EvaluationConfig, c value.Cont, cerr value.ErrCont) {
	loopEnv := env.Child()

	if n.Init != nil {
		if _, perr := runSync(n.Init, loopEnv, config); perr != nil {
			cerr(*perr)
			return
		}
	}

	for {
		if n.Test != nil {
			t, perr := runSync(n.Test, loopEnv, config)
			if perr != nil {
				cerr(*perr)
				return
			}
			if !t.Truthy() {
				c(value.Undefined())
				return
			}
		}

		if !runLoopIteration(n.Body, loopEnv, config, n.Label, c, cerr) {
			return
		}

		if n.Update != nil {
			if _, perr := runSync(n.Update, loopEnv, config); perr != nil {
				cerr(*perr)
				return
			}
		}
	}
}

// evalForOfStatement implements spec.md §4.2's ForOfStatement rule: obtain
// an iterator from the iterable (iterator protocol), advance it via the
// trampoline, binding the loop variable in a fresh per-iteration frame.
func evalForOfStatement(n *ast.ForOfStatement, env value.Scope, config value.EvaluationConfig, c value.Cont, cerr value.ErrCont) {
	rightVal, perr := runSync(n.Right, env, config)
	if perr != nil {
		cerr(*perr)
		return
	}
	next, err := host.Iterate(rightVal)
	if err != nil {
		cerr(value.Packet{Type: value.PacketError, Err: runtimeErr(n, err.Error())})
		return
	}
	for {
		el, ok := next()
		if !ok {
			c(value.Undefined())
			return
		}
		iterEnv := env.Child()
		iterEnv.Define(n.Binding.Name, el)
		if !runLoopIteration(n.Body, iterEnv, config, n.Label, c, cerr) {
			return
		}
	}
}

// evalForInStatement implements spec.md §4.2's ForInStatement rule:
// enumerate the object's keys, binding each (as a string) in a fresh
// per-iteration frame.
func evalForInStatement(n *ast.ForInStatement, env value.Scope, config value.EvaluationConfig, c value.Cont, cerr value.ErrCont) {
	rightVal, perr := runSync(n.Right, env, config)
	if perr != nil {
		cerr(*perr)
		return
	}
	keys, err := host.EnumerateKeys(rightVal)
	if err != nil {
		cerr(value.Packet{Type: value.PacketError, Err: runtimeErr(n, err.Error())})
		return
	}
	for _, key := range keys {
		iterEnv := env.Child()
		iterEnv.Define(n.Binding.Name, value.String(key))
		if !runLoopIteration(n.Body, iterEnv, config, n.Label, c, cerr) {
			return
		}
	}
	c(value.Undefined())
}
