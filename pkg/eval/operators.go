package eval

import (
	"evalkit/pkg/ast"
	"evalkit/pkg/host"
	"evalkit/pkg/value"
)

// evalBinaryExpression implements spec.md §4.2's BinaryExpression rule:
// evaluate operands left-to-right, then apply the host operator.
func evalBinaryExpression(n *ast.BinaryExpression, env value.Scope, config value.EvaluationConfig, c value.Cont, cerr value.ErrCont) {
	Evaluate(n.Left, env, config, func(left value.Value) {
		Evaluate(n.Right, env, config, func(right value.Value) {
			result, err := host.Binary(n.Operator, left, right)
			if err != nil {
				cerr(value.Packet{Type: value.PacketError, Err: runtimeErr(n, err.Error())})
				return
			}
			c(result)
		}, cerr)
	}, cerr)
}

// evalLogicalExpression implements spec.md §4.2's short-circuiting rule
// for &&, ||, ??: the right operand is not evaluated when the left
// operand already determines the result.
func evalLogicalExpression(n *ast.LogicalExpression, env value.Scope, config value.EvaluationConfig, c value.Cont, cerr value.ErrCont) {
	Evaluate(n.Left, env, config, func(left value.Value) {
		switch n.Operator {
		case "&&":
			if !left.Truthy() {
				c(left)
				return
			}
		case "||":
			if left.Truthy() {
				c(left)
				return
			}
		case "??":
			if !left.IsNullOrUndefined() {
				c(left)
				return
			}
		}
		Evaluate(n.Right, env, config, c, cerr)
	}, cerr)
}

// evalUnaryExpression implements spec.md §4.2's UnaryExpression rule.
func evalUnaryExpression(n *ast.UnaryExpression, env value.Scope, config value.EvaluationConfig, c value.Cont, cerr value.ErrCont) {
	Evaluate(n.Argument, env, config, func(arg value.Value) {
		result, err := host.Unary(n.Operator, arg)
		if err != nil {
			cerr(value.Packet{Type: value.PacketError, Err: runtimeErr(n, err.Error())})
			return
		}
		c(result)
	}, cerr)
}
