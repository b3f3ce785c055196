package eval

import (
	"evalkit/pkg/ast"
	"evalkit/pkg/host"
	"evalkit/pkg/value"
)

// evalMemberExpression implements spec.md §4.2's MemberExpression/
// GetProperty rule: evaluate object, then key (if computed), then read on
// the host object.
func evalMemberExpression(n *ast.MemberExpression, env value.Scope, config value.EvaluationConfig, c value.Cont, cerr value.ErrCont) {
	Evaluate(n.Object, env, config, func(obj value.Value) {
		resolveMemberKey(n, env, config, func(key string) {
			v, err := host.GetProperty(obj, key)
			if err != nil {
				cerr(value.Packet{Type: value.PacketError, Err: runtimeErr(n, err.Error())})
				return
			}
			c(v)
		}, cerr)
	}, cerr)
}
