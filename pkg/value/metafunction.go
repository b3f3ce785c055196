package value

import "evalkit/pkg/ast"

// Phase distinguishes the two interceptor events spec.md §4.5 defines.
type Phase string

const (
	PhaseEnter Phase = "enter"
	PhaseExit  Phase = "exit"
)

// EventTag identifies an interceptor event; spec.md calls this the event's
// "tag" and keeps it a small record rather than a bare string so future
// event metadata (e.g. a reentrancy counter) has somewhere to live.
type EventTag struct {
	Phase Phase
}

// Evaluation is the payload passed to the interceptor on every node visit
// (spec.md §4.5). The interceptor must not mutate it; Go gives no way to
// enforce that structurally, so pkg/eval always passes Evaluation by value.
type Evaluation struct {
	ScriptID string
	Node     ast.Node
	Env      Scope
	Value    Value // zero Value on "enter"; the result or packet value on "exit"
	Tag      EventTag
}

// Interceptor observes every node's evaluation at enter and exit
// (spec.md §4.5, C6). The no-op interceptor is DefaultInterceptor.
type Interceptor func(Evaluation)

// DefaultInterceptor is the required-but-defaults-to-no-op interceptor
// spec.md §3 describes for EvaluationConfig.
func DefaultInterceptor(Evaluation) {}

// OnError is the host-side notification hook EvaluationConfig carries for
// internal interpreter errors that abort evaluation outright (spec.md §3:
// "unsupported param pattern"), as opposed to errors that travel through
// the normal ErrCont channel.
type OnError func(err error)

// EvaluationConfig is the record of spec.md §3: an interceptor (required,
// defaulted to a no-op), a scriptId (auto-assigned when empty), and an
// onError hook.
type EvaluationConfig struct {
	Interceptor Interceptor
	ScriptID    string
	OnError     OnError
}

// WithDefaults fills in the required-but-optional fields so callers never
// need to nil-check config.Interceptor before invoking it.
func (c EvaluationConfig) WithDefaults() EvaluationConfig {
	if c.Interceptor == nil {
		c.Interceptor = DefaultInterceptor
	}
	if c.OnError == nil {
		c.OnError = func(error) {}
	}
	return c
}

// Merge shallow-merges override into the receiver: any non-zero field on
// override replaces the receiver's, matching spec.md §4.6's "shallow-
// merges configs" requirement for the evaluation context façade.
func (c EvaluationConfig) Merge(override EvaluationConfig) EvaluationConfig {
	merged := c
	if override.Interceptor != nil {
		merged.Interceptor = override.Interceptor
	}
	if override.ScriptID != "" {
		merged.ScriptID = override.ScriptID
	}
	if override.OnError != nil {
		merged.OnError = override.OnError
	}
	return merged
}

// MetaFunction is an interpreted function value (spec.md §3, §4.3, C5): the
// FunctionNode being closed over, the captured enclosing Scope, and the
// EvaluationConfig snapshot at creation time.
type MetaFunction struct {
	Node    *ast.FunctionNode
	Closure Scope
	Config  EvaluationConfig
}

// NewMetaFunction constructs a MetaFunction and wraps it as a Value in one
// step, mirroring spec.md §4.2's FunctionNode evaluator rule ("construct a
// MetaFunction closing over the current environment; c(metaFn)").
func NewMetaFunction(node *ast.FunctionNode, closure Scope, config EvaluationConfig) Value {
	return FromMetaFunction(&MetaFunction{Node: node, Closure: closure, Config: config})
}
