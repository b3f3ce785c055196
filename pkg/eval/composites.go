package eval

import (
	"evalkit/pkg/ast"
	"evalkit/pkg/host"
	"evalkit/pkg/value"
)

// evalArrayExpression implements spec.md §4.2's ArrayExpression rule:
// evaluate elements left-to-right, construct a host container.
func evalArrayExpression(n *ast.ArrayExpression, env value.Scope, config value.EvaluationConfig, c value.Cont, cerr value.ErrCont) {
	evalExpressionList(n.Elements, env, config, func(elements []value.Value) {
		c(value.Host(host.NewArray(elements...)))
	}, cerr)
}

// evalObjectExpression implements spec.md §4.2's ObjectExpression rule:
// evaluate properties left-to-right, construct a host container. A
// computed key is evaluated before its value; a plain key is read off the
// Identifier/literal directly.
func evalObjectExpression(n *ast.ObjectExpression, env value.Scope, config value.EvaluationConfig, c value.Cont, cerr value.ErrCont) {
	record := host.NewRecord()
	var step func(i int)
	step = func(i int) {
		if i >= len(n.Properties) {
			c(value.Host(record))
			return
		}
		prop := n.Properties[i]
		bindKey := func(key string) {
			Evaluate(prop.Value, env, config, func(v value.Value) {
				record.Set(key, v)
				step(i + 1)
			}, cerr)
		}
		if prop.Computed {
			Evaluate(prop.Key, env, config, func(keyVal value.Value) {
				bindKey(keyVal.String())
			}, cerr)
			return
		}
		switch k := prop.Key.(type) {
		case *ast.Identifier:
			bindKey(k.Name)
		case *ast.Literal:
			bindKey(k.String)
		default:
			cerr(value.Packet{Type: value.PacketError, Err: notImplemented(prop.Key, "unsupported object property key")})
		}
	}
	step(0)
}
