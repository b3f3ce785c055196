package eval

import (
	"fmt"

	"evalkit/pkg/ast"
	"evalkit/pkg/host"
	"evalkit/pkg/value"
)

// reference is a resolved assignment target: an Identifier binding or a
// host property slot, reduced to a uniform get/set pair so
// AssignmentExpression and UpdateExpression (spec.md §4.2) share one
// target-resolution path.
type reference struct {
	get func() (value.Value, error)
	set func(value.Value) error
}

// resolveReference evaluates an AssignmentExpression/UpdateExpression
// target's object and key (for a MemberExpression) before handing the
// caller a reference, matching spec.md §4.2's "Target is either an
// Identifier... or a MemberExpression" rule.
func resolveReference(target ast.Node, env value.Scope, config value.EvaluationConfig, onResolved func(reference), cerr value.ErrCont) {
	switch t := target.(type) {
	case *ast.Identifier:
		onResolved(reference{
			get: func() (value.Value, error) {
				v, ok := env.Get(t.Name)
				if !ok {
					return value.Undefined(), fmt.Errorf("%s is not defined", t.Name)
				}
				return v, nil
			},
			set: func(v value.Value) error {
				env.Set(t.Name, v)
				return nil
			},
		})
	case *ast.MemberExpression:
		Evaluate(t.Object, env, config, func(obj value.Value) {
			resolveMemberKey(t, env, config, func(key string) {
				onResolved(reference{
					get: func() (value.Value, error) { return host.GetProperty(obj, key) },
					set: func(v value.Value) error { return host.SetProperty(obj, key, v) },
				})
			}, cerr)
		}, cerr)
	default:
		cerr(value.Packet{Type: value.PacketError, Err: notImplemented(target, fmt.Sprintf("%s is not a valid assignment target", target.Kind()))})
	}
}

// resolveMemberKey reads a MemberExpression's property name, evaluating
// it when computed (`obj[expr]`) or reading the identifier directly
// (`obj.prop`).
func resolveMemberKey(m *ast.MemberExpression, env value.Scope, config value.EvaluationConfig, onKey func(string), cerr value.ErrCont) {
	if m.Computed {
		Evaluate(m.Property, env, config, func(keyVal value.Value) {
			onKey(keyVal.String())
		}, cerr)
		return
	}
	onKey(m.Property.(*ast.Identifier).Name)
}

var compoundOps = map[string]string{
	"+=": "+", "-=": "-", "*=": "*", "/=": "/", "%=": "%",
	"<<=": "<<", ">>=": ">>", ">>>=": ">>>", "&=": "&", "|=": "|", "^=": "^",
}

// evalAssignmentExpression implements spec.md §4.2's AssignmentExpression
// rule: the `=`, `+=`, `-=`, `*=`, `/=`, `%=`, `<<=`, `>>=`, `>>>=`, `&=`,
// `|=`, `^=` operator set; anything else is NotImplementedException.
func evalAssignmentExpression(n *ast.AssignmentExpression, env value.Scope, config value.EvaluationConfig, c value.Cont, cerr value.ErrCont) {
	resolveReference(n.Target, env, config, func(ref reference) {
		Evaluate(n.Value, env, config, func(rhs value.Value) {
			if n.Operator == "=" {
				if err := ref.set(rhs); err != nil {
					cerr(value.Packet{Type: value.PacketError, Err: runtimeErr(n, err.Error())})
					return
				}
				c(rhs)
				return
			}

			op, ok := compoundOps[n.Operator]
			if !ok {
				cerr(value.Packet{Type: value.PacketError, Err: notImplemented(n, fmt.Sprintf("unsupported assignment operator %q", n.Operator))})
				return
			}
			current, err := ref.get()
			if err != nil {
				cerr(value.Packet{Type: value.PacketError, Err: runtimeErr(n, err.Error())})
				return
			}
			result, err := host.Binary(op, current, rhs)
			if err != nil {
				cerr(value.Packet{Type: value.PacketError, Err: runtimeErr(n, err.Error())})
				return
			}
			if err := ref.set(result); err != nil {
				cerr(value.Packet{Type: value.PacketError, Err: runtimeErr(n, err.Error())})
				return
			}
			c(result)
		}, cerr)
	}, cerr)
}

// evalUpdateExpression implements spec.md §4.2's UpdateExpression rule:
// read current value, compute new, assign back via the same rules as
// AssignmentExpression; prefix returns the new value, postfix returns the
// pre-update value (numeric-coerced).
func evalUpdateExpression(n *ast.UpdateExpression, env value.Scope, config value.EvaluationConfig, c value.Cont, cerr value.ErrCont) {
	resolveReference(n.Argument, env, config, func(ref reference) {
		current, err := ref.get()
		if err != nil {
			cerr(value.Packet{Type: value.PacketError, Err: runtimeErr(n, err.Error())})
			return
		}
		oldNum := host.ToNumber(current)
		newNum := oldNum + 1
		if n.Operator == "--" {
			newNum = oldNum - 1
		}
		newVal := value.Number(newNum)
		if err := ref.set(newVal); err != nil {
			cerr(value.Packet{Type: value.PacketError, Err: runtimeErr(n, err.Error())})
			return
		}
		if n.Prefix {
			c(newVal)
			return
		}
		c(value.Number(oldNum))
	}, cerr)
}
