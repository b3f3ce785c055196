package eval

import (
	"fmt"

	"evalkit/pkg/ast"
	"evalkit/pkg/errors"
	"evalkit/pkg/host"
	"evalkit/pkg/value"
)

// evalFunctionNode implements spec.md §4.2's FunctionNode rule: construct
// a MetaFunction closing over the current environment; c(metaFn) — or, for
// a FunctionDeclaration, additionally bind it into env under its name.
// Constructing a MetaFunction can never fail, so this evaluator takes no
// error continuation.
func evalFunctionNode(n *ast.FunctionNode, env value.Scope, config value.EvaluationConfig, c value.Cont) {
	fnVal := value.NewMetaFunction(n, env, config)
	if n.NodeKind == ast.FunctionDeclarationKind {
		env.Define(n.Name, fnVal)
	}
	c(fnVal)
}

// EvaluateMetaFunction implements the meta-function bridge's interpreted-
// code invocation path (C5, spec.md §4.3): binds a fresh call frame,
// binds parameters left-to-right, emits a matched enter/exit pair on the
// function's node, and translates a ReturnStatement packet into a plain
// success while anything else (Throw, an unmatched Break/Continue, or a
// host error) propagates to cerr with its location stamped to the
// function node.
func EvaluateMetaFunction(fn *value.MetaFunction, thisValue value.Value, args []value.Value, c value.Cont, cerr value.ErrCont) {
	config := fn.Config.WithDefaults()
	callEnv := fn.Closure.Child()
	callEnv.Define("this", thisValue)
	callEnv.Define("arguments", value.Host(host.NewArray(args...)))

	if err := bindParams(fn.Node, callEnv, args); err != nil {
		config.OnError(err)
		cerr(value.Packet{Type: value.PacketError, Err: err, Location: fn.Node})
		return
	}

	if perr := emit(config, fn.Node, callEnv, value.Undefined(), value.PhaseEnter); perr != nil {
		cerr(value.Packet{Type: value.PacketError, Err: perr, Location: fn.Node})
		return
	}

	var exited bool
	// exit fires the matched exit event at most once (spec.md §4.3 step
	// 5), returning whether the caller should still deliver its outcome —
	// false means the interceptor itself failed and already routed a
	// packet through cerr.
	exit := func(v value.Value) bool {
		if exited {
			return false
		}
		exited = true
		if perr := emit(config, fn.Node, callEnv, v, value.PhaseExit); perr != nil {
			cerr(value.Packet{Type: value.PacketError, Err: perr, Location: fn.Node})
			return false
		}
		return true
	}

	Evaluate(fn.Node.Body, callEnv, config, func(v value.Value) {
		if exit(v) {
			c(v)
		}
	}, func(p value.Packet) {
		if p.Type == value.PacketReturn {
			if exit(p.Value) {
				c(p.Value)
			}
			return
		}
		p = p.WithLocation(fn.Node)
		if exit(p.Value) {
			cerr(p)
		}
	})
}

// bindParams walks metaFn.e.params left-to-right per spec.md §4.3 step 2:
// an Identifier binds the next positional argument (Undefined past the
// end); a RestElement binds the remainder as a host array and stops;
// anything else (destructuring) is an unsupported parameter pattern.
func bindParams(node *ast.FunctionNode, env value.Scope, args []value.Value) *errors.RuntimeError {
	i := 0
	for _, param := range node.Params {
		switch p := param.(type) {
		case *ast.Identifier:
			v := value.Undefined()
			if i < len(args) {
				v = args[i]
			}
			env.Define(p.Name, v)
			i++
		case *ast.RestElement:
			var rest []value.Value
			if i < len(args) {
				rest = args[i:]
			}
			env.Define(p.Argument.Name, value.Host(host.NewArray(rest...)))
			return nil
		default:
			return runtimeErr(node, fmt.Sprintf("unsupported parameter pattern %q", param.Kind()))
		}
	}
	return nil
}

// CreateMetaFunctionWrapper implements C5's host-exposure half
// (spec.md §4.3): a host.Func that drives EvaluateMetaFunction to
// completion and synchronously returns its result, or surfaces the
// escaping ExceptionPacket as a Go error — "the only host throw that
// escapes is from createMetaFunctionWrapper" (spec.md §7). This
// synchronous contract requires fn's body to complete synchronously,
// which holds for every node evaluator in this package (spec.md §4.3,
// §5).
func CreateMetaFunctionWrapper(fn *value.MetaFunction) *host.Func {
	return host.NewFunc(fn.Node.Name, func(this value.Value, args []value.Value) (value.Value, error) {
		var result value.Value
		var thrown *value.Packet
		EvaluateMetaFunction(fn, this, args, func(v value.Value) {
			result = v
		}, func(p value.Packet) {
			thrown = &p
		})
		if thrown != nil {
			return value.Undefined(), &metaFunctionError{packet: *thrown}
		}
		return result, nil
	})
}

// metaFunctionError adapts an escaping ExceptionPacket to a Go error so
// the host.Func shape's ordinary (Value, error) return can carry it.
type metaFunctionError struct {
	packet value.Packet
}

func (e *metaFunctionError) Error() string {
	if e.packet.Err != nil {
		return e.packet.Err.Error()
	}
	return fmt.Sprintf("%s: %s", e.packet.Type, e.packet.Value.String())
}
