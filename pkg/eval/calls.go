package eval

import (
	"evalkit/pkg/ast"
	"evalkit/pkg/host"
	"evalkit/pkg/value"
)

// evalExpressionList evaluates a slice of nodes left-to-right, collecting
// their values, used by CallExpression arguments and ArrayExpression
// elements (spec.md §4.2: "evaluate elements/properties left-to-right").
func evalExpressionList(nodes []ast.Node, env value.Scope, config value.EvaluationConfig, onDone func([]value.Value), cerr value.ErrCont) {
	results := make([]value.Value, len(nodes))
	var step func(i int)
	step = func(i int) {
		if i >= len(nodes) {
			onDone(results)
			return
		}
		Evaluate(nodes[i], env, config, func(v value.Value) {
			results[i] = v
			step(i + 1)
		}, cerr)
	}
	step(0)
}

// evalCallExpression implements spec.md §4.2's CallExpression rule:
// evaluate callee; if callee is a MetaFunction, invoke via C5; otherwise
// evaluate `this` (from a MemberExpression callee) and args, then
// fn.apply(thisObj, args) at host level.
func evalCallExpression(n *ast.CallExpression, env value.Scope, config value.EvaluationConfig, c value.Cont, cerr value.ErrCont) {
	if member, ok := n.Callee.(*ast.MemberExpression); ok {
		Evaluate(member.Object, env, config, func(thisVal value.Value) {
			resolveMemberKey(member, env, config, func(key string) {
				fn, err := host.GetProperty(thisVal, key)
				if err != nil {
					cerr(value.Packet{Type: value.PacketError, Err: runtimeErr(n, err.Error())})
					return
				}
				evalArgsAndInvoke(n, fn, thisVal, env, config, c, cerr)
			}, cerr)
		}, cerr)
		return
	}
	Evaluate(n.Callee, env, config, func(fn value.Value) {
		evalArgsAndInvoke(n, fn, value.Undefined(), env, config, c, cerr)
	}, cerr)
}

func evalArgsAndInvoke(n *ast.CallExpression, fn value.Value, thisVal value.Value, env value.Scope, config value.EvaluationConfig, c value.Cont, cerr value.ErrCont) {
	evalExpressionList(n.Arguments, env, config, func(args []value.Value) {
		invoke(n, fn, thisVal, args, c, cerr)
	}, cerr)
}

// invoke dispatches a resolved callee to the meta-function bridge (C5) or
// to the host's own Callable protocol, wrapping a host error into an
// ExceptionPacket (spec.md §4.2: "Host exceptions are wrapped into
// ExceptionPackets").
func invoke(node ast.Node, fn value.Value, thisVal value.Value, args []value.Value, c value.Cont, cerr value.ErrCont) {
	if fn.IsMetaFunction() {
		EvaluateMetaFunction(fn.AsMetaFunction(), thisVal, args, c, cerr)
		return
	}
	result, err := host.Call(fn, thisVal, args)
	if err != nil {
		cerr(value.Packet{Type: value.PacketError, Err: runtimeErr(node, err.Error())})
		return
	}
	c(result)
}

// evalNewExpression implements spec.md §4.2's NewExpression rule
// (generalized from CallExpression, per spec.md §3's node list): a
// MetaFunction callee runs its body against a fresh host Record as
// `this`, returning that record unless the body itself returns a host
// object (mirroring the mimicked language's constructor-return rule).
// A host callee is invoked the same way a plain call would be — evalkit's
// host constructors (e.g. RegExp) are stateless factories, not objects
// that mutate a pre-allocated `this`, so no separate host construct
// protocol is needed.
func evalNewExpression(n *ast.NewExpression, env value.Scope, config value.EvaluationConfig, c value.Cont, cerr value.ErrCont) {
	Evaluate(n.Callee, env, config, func(callee value.Value) {
		evalExpressionList(n.Arguments, env, config, func(args []value.Value) {
			if callee.IsMetaFunction() {
				instance := value.Host(host.NewRecord())
				EvaluateMetaFunction(callee.AsMetaFunction(), instance, args, func(result value.Value) {
					if result.IsHost() {
						c(result)
						return
					}
					c(instance)
				}, cerr)
				return
			}
			result, err := host.Call(callee, value.Undefined(), args)
			if err != nil {
				cerr(value.Packet{Type: value.PacketError, Err: runtimeErr(n, err.Error())})
				return
			}
			c(result)
		}, cerr)
	}, cerr)
}
