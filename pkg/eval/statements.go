package eval

import (
	"evalkit/pkg/ast"
	"evalkit/pkg/value"
)

// evalStatementList evaluates stmts sequentially in env, threading the
// last evaluated value through to onDone; an empty list yields Undefined.
// An exception from any statement short-circuits the rest (spec.md §4.2
// BlockStatement: "An exception in any statement short-circuits the rest
// and propagates to the block's cerr").
func evalStatementList(stmts []ast.Node, env value.Scope, config value.EvaluationConfig, c value.Cont, cerr value.ErrCont) {
	var step func(i int, last value.Value)
	step = func(i int, last value.Value) {
		if i >= len(stmts) {
			c(last)
			return
		}
		Evaluate(stmts[i], env, config, func(v value.Value) {
			step(i+1, v)
		}, cerr)
	}
	step(0, value.Undefined())
}

// evalProgram evaluates the root statement list directly in the given
// environment (the root frame), so top-level declarations land there
// rather than in a throwaway child frame.
func evalProgram(n *ast.Program, env value.Scope, config value.EvaluationConfig, c value.Cont, cerr value.ErrCont) {
	evalStatementList(n.Body, env, config, c, cerr)
}

// evalBlockStatement implements spec.md §4.2's BlockStatement rule:
// create a child frame linked to the current env, evaluate statements
// sequentially.
func evalBlockStatement(n *ast.BlockStatement, env value.Scope, config value.EvaluationConfig, c value.Cont, cerr value.ErrCont) {
	evalStatementList(n.Body, env.Child(), config, c, cerr)
}

// evalVariableDeclaration implements spec.md §4.2's VariableDeclaration
// rule: for each declarator, evaluate the initializer (absent ⇒
// Undefined) then bind into the current frame.
func evalVariableDeclaration(n *ast.VariableDeclaration, env value.Scope, config value.EvaluationConfig, c value.Cont, cerr value.ErrCont) {
	var step func(i int)
	step = func(i int) {
		if i >= len(n.Declarations) {
			c(value.Undefined())
			return
		}
		decl := n.Declarations[i]
		if decl.Init == nil {
			env.Define(decl.Name.Name, value.Undefined())
			step(i + 1)
			return
		}
		Evaluate(decl.Init, env, config, func(v value.Value) {
			env.Define(decl.Name.Name, v)
			step(i + 1)
		}, cerr)
	}
	step(0)
}

// evalIfStatement implements spec.md §4.2's IfStatement rule: evaluate
// test, dispatch to consequent or alternate by truthiness.
func evalIfStatement(n *ast.IfStatement, env value.Scope, config value.EvaluationConfig, c value.Cont, cerr value.ErrCont) {
	Evaluate(n.Test, env, config, func(t value.Value) {
		if t.Truthy() {
			Evaluate(n.Consequent, env, config, c, cerr)
			return
		}
		if n.Alternate != nil {
			Evaluate(n.Alternate, env, config, c, cerr)
			return
		}
		c(value.Undefined())
	}, cerr)
}

// evalConditionalExpression implements spec.md §4.2's ConditionalExpression
// rule, the same test-truthiness dispatch as IfStatement for `?:`.
func evalConditionalExpression(n *ast.ConditionalExpression, env value.Scope, config value.EvaluationConfig, c value.Cont, cerr value.ErrCont) {
	Evaluate(n.Test, env, config, func(t value.Value) {
		if t.Truthy() {
			Evaluate(n.Consequent, env, config, c, cerr)
			return
		}
		Evaluate(n.Alternate, env, config, c, cerr)
	}, cerr)
}

// evalReturnStatement implements spec.md §4.2's ReturnStatement rule:
// evaluate argument, then cerr with {type: "ReturnStatement", value}. It
// is not an error; the nearest meta-function bridge catches it.
func evalReturnStatement(n *ast.ReturnStatement, env value.Scope, config value.EvaluationConfig, c value.Cont, cerr value.ErrCont) {
	if n.Argument == nil {
		cerr(value.Packet{Type: value.PacketReturn, Value: value.Undefined()})
		return
	}
	Evaluate(n.Argument, env, config, func(v value.Value) {
		cerr(value.Packet{Type: value.PacketReturn, Value: v})
	}, cerr)
}

// evalThrowStatement implements spec.md §4.2's ThrowStatement rule.
func evalThrowStatement(n *ast.ThrowStatement, env value.Scope, config value.EvaluationConfig, c value.Cont, cerr value.ErrCont) {
	Evaluate(n.Argument, env, config, func(v value.Value) {
		cerr(value.Packet{Type: value.PacketThrow, Value: v})
	}, cerr)
}

// evalTryStatement implements spec.md §4.2's TryStatement rule: run the
// try block; on a user throw, run the catch clause in a fresh frame with
// its parameter bound (Return/Break/Continue pass through unchanged);
// finally runs on every exit path, and an exception raised by finally
// itself supersedes whatever outcome preceded it.
func evalTryStatement(n *ast.TryStatement, env value.Scope, config value.EvaluationConfig, c value.Cont, cerr value.ErrCont) {
	// finish runs the optional finally block, then delivers deliver's
	// outcome — unless finally raises its own packet, which supersedes.
	finish := func(deliver func(value.Cont, value.ErrCont)) {
		if n.Finalizer == nil {
			deliver(c, cerr)
			return
		}
		Evaluate(n.Finalizer, env, config, func(value.Value) {
			deliver(c, cerr)
		}, func(p value.Packet) {
			cerr(p)
		})
	}

	Evaluate(n.Block, env, config, func(v value.Value) {
		finish(func(c value.Cont, _ value.ErrCont) { c(v) })
	}, func(p value.Packet) {
		if p.Type == value.PacketThrow && n.Handler != nil {
			handlerEnv := env.Child()
			if n.Handler.Param != nil {
				handlerEnv.Define(n.Handler.Param.Name, p.Value)
			}
			Evaluate(n.Handler.Body, handlerEnv, config, func(v value.Value) {
				finish(func(c value.Cont, _ value.ErrCont) { c(v) })
			}, func(hp value.Packet) {
				finish(func(_ value.Cont, cerr value.ErrCont) { cerr(hp) })
			})
			return
		}
		finish(func(_ value.Cont, cerr value.ErrCont) { cerr(p) })
	})
}

// evalLabeledStatement supplements spec.md's node list (SPEC_FULL.md §10):
// it evaluates Body (already carrying Label on loop nodes so the loop's
// own break/continue matching applies) and additionally converts an
// unconsumed matching break into normal completion, covering the case of
// a label on a non-loop statement.
func evalLabeledStatement(n *ast.LabeledStatement, env value.Scope, config value.EvaluationConfig, c value.Cont, cerr value.ErrCont) {
	Evaluate(n.Body, env, config, c, func(p value.Packet) {
		if p.Type == value.PacketBreak && p.Label == n.Label {
			c(value.Undefined())
			return
		}
		cerr(p)
	})
}
