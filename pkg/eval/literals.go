package eval

import (
	"fmt"

	"evalkit/pkg/ast"
	"evalkit/pkg/value"
)

// evalLiteral implements spec.md §4.2's Literal rule: "calls c(node.value)
// immediately. No errors possible."
func evalLiteral(n *ast.Literal, c value.Cont) {
	switch n.LitKind {
	case ast.LiteralNumber:
		c(value.Number(n.Number))
	case ast.LiteralString:
		c(value.String(n.String))
	case ast.LiteralBool:
		c(value.Bool(n.Bool))
	case ast.LiteralNull:
		c(value.Null())
	default:
		c(value.Undefined())
	}
}

// evalIdentifier implements spec.md §4.2's Identifier rule: getValue, or a
// ReferenceError-shaped packet (carrying its location) if unbound.
func evalIdentifier(n *ast.Identifier, env value.Scope, c value.Cont, cerr value.ErrCont) {
	v, ok := env.Get(n.Name)
	if !ok {
		cerr(value.Packet{
			Type: value.PacketError,
			Err:  runtimeErr(n, fmt.Sprintf("%s is not defined", n.Name)),
		})
		return
	}
	c(v)
}

// evalThisExpression reads `this` from the nearest frame binding it,
// installed by the meta-function bridge (spec.md §4.2, §4.3). Unbound
// `this` (top-level code outside any function) is undefined, not an
// error — there is no enclosing call to have bound it.
func evalThisExpression(env value.Scope, c value.Cont) {
	v, ok := env.Get("this")
	if !ok {
		c(value.Undefined())
		return
	}
	c(v)
}
