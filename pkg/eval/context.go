package eval

import (
	"fmt"
	"sync/atomic"

	"evalkit/pkg/ast"
	"evalkit/pkg/errors"
	"evalkit/pkg/host"
	"evalkit/pkg/lexer"
	"evalkit/pkg/parser"
	"evalkit/pkg/source"
	"evalkit/pkg/value"
)

// Source is anything Context.Evaluate accepts (spec.md §2): a pre-parsed
// ast.Node, a string for a Parser to turn into one, or a host function
// value to be reflected — a value.Value wrapping a *host.Func whose
// Source field is non-empty (host.NewReflectableFunc), re-parsed via its
// captured text exactly like the string case.
type Source interface{}

// Parser resolves source text into a parsed AST, matching spec.md §6's
// "external parser, named only by interface" stance — evalkit ships a
// concrete one (pkg/parser, wired through DefaultParser) so the module
// runs standalone, but Context accepts any implementation.
type Parser interface {
	Parse(text string, file *source.SourceFile) (*ast.Program, []errors.EvalKitError)
}

type defaultParser struct{}

func (defaultParser) Parse(text string, file *source.SourceFile) (*ast.Program, []errors.EvalKitError) {
	l := lexer.NewLexer(text)
	p := parser.New(l, file)
	prog := p.ParseProgram()
	return prog, p.Errors()
}

// DefaultParser is the C9 lexer+parser pipeline.
var DefaultParser Parser = defaultParser{}

var scriptCounter int64

// nextScriptID auto-assigns a scriptId as a monotonically increasing
// decimal string (spec.md §3), used by the in-process façade. The CLI's
// persistent REPL session instead stamps each submission with a UUID
// (SPEC_FULL.md §4.9) rather than calling this.
func nextScriptID() string {
	n := atomic.AddInt64(&scriptCounter, 1)
	return fmt.Sprintf("%d", n)
}

// Context is the evaluation context façade (C7, spec.md §4.6): default
// continuations, a root environment, a default config, and a Parser.
type Context struct {
	Root       value.Scope
	Config     value.EvaluationConfig
	Parser     Parser
	DefaultC   value.Cont
	DefaultErr value.ErrCont
}

// NewContext builds a Context over root with config defaults filled in
// and the package's default Parser.
func NewContext(root value.Scope, config value.EvaluationConfig) *Context {
	return &Context{
		Root:       root,
		Config:     config.WithDefaults(),
		Parser:     DefaultParser,
		DefaultC:   func(value.Value) {},
		DefaultErr: func(value.Packet) {},
	}
}

// Evaluate implements C7's public entrypoint (spec.md §4.6): resolves src
// to an AST, evaluates it in env as given (or in the context's root when
// env is nil; a non-nil env is not re-parented under the root, so it sees
// the root's bindings only if it was derived from it), shallow-merges config over the
// context's default, assigns a scriptId if absent, and dispatches via C3.
// A nil c or cerr falls back to the context's own default. It returns
// parse errors (and ok=false) without ever calling c/cerr when src fails
// to parse — a parse failure happens before evaluate starts, so it is not
// an ExceptionPacket (spec.md §7).
func (ctx *Context) Evaluate(src Source, c value.Cont, cerr value.ErrCont, env value.Scope, config value.EvaluationConfig) ([]errors.EvalKitError, bool) {
	node, parseErrs, ok := ctx.resolve(src)
	if !ok {
		return parseErrs, false
	}
	return ctx.evaluateNode(node, c, cerr, env, config)
}

// EvaluateSourceFile is Evaluate's sibling for callers that already hold a
// *source.SourceFile (the CLI's run/repl commands, built via
// source.FromFile/NewReplSource/NewStdinSource) and want parse errors
// attributed to that file's own name rather than resolve's generic "<eval>"
// tag for the plain-string Source case (spec.md §2 names a string as
// anonymous source text; a file or REPL line is not anonymous).
func (ctx *Context) EvaluateSourceFile(file *source.SourceFile, c value.Cont, cerr value.ErrCont, env value.Scope, config value.EvaluationConfig) ([]errors.EvalKitError, bool) {
	prog, errs := ctx.Parser.Parse(file.Content, file)
	if len(errs) > 0 {
		return errs, false
	}
	return ctx.evaluateNode(prog, c, cerr, env, config)
}

func (ctx *Context) evaluateNode(node ast.Node, c value.Cont, cerr value.ErrCont, env value.Scope, config value.EvaluationConfig) ([]errors.EvalKitError, bool) {
	if c == nil {
		c = ctx.DefaultC
	}
	if cerr == nil {
		cerr = ctx.DefaultErr
	}
	if env == nil {
		env = ctx.Root
	}

	merged := ctx.Config.Merge(config)
	if merged.ScriptID == "" {
		merged.ScriptID = nextScriptID()
	}

	Evaluate(node, env, merged, c, cerr)
	return nil, true
}

func (ctx *Context) resolve(src Source) (ast.Node, []errors.EvalKitError, bool) {
	switch s := src.(type) {
	case ast.Node:
		return s, nil, true
	case string:
		return ctx.resolveText(s)
	case value.Value:
		if s.IsHost() {
			if fn, ok := s.AsHost().(*host.Func); ok && fn.Source != "" {
				return ctx.resolveText(fn.Source)
			}
		}
		return nil, []errors.EvalKitError{&errors.RuntimeError{Msg: "unsupported evaluation source: host function has no reflectable source text"}}, false
	default:
		return nil, []errors.EvalKitError{&errors.RuntimeError{Msg: fmt.Sprintf("unsupported evaluation source %T", src)}}, false
	}
}

func (ctx *Context) resolveText(text string) (ast.Node, []errors.EvalKitError, bool) {
	file := source.NewEvalSource(text)
	prog, errs := ctx.Parser.Parse(text, file)
	if len(errs) > 0 {
		return nil, errs, false
	}
	return prog, nil, true
}

// EvalFunctionBody implements spec.md §6's evalFunctionBody: parses fn's
// source text, extracts its FunctionNode body, and evaluates that body in
// a fresh frame — the host-code equivalent of "write a lexically-checked
// interpreter literal". env, when nil, defaults to ctx.Root.
func (ctx *Context) EvalFunctionBody(fnSource string, env value.Scope, c value.Cont, cerr value.ErrCont) {
	if env == nil {
		env = ctx.Root
	}
	file := source.NewEvalSource(fnSource)
	prog, errs := ctx.Parser.Parse(fnSource, file)
	if len(errs) > 0 {
		cerr(value.Packet{Type: value.PacketError, Err: errs[0]})
		return
	}
	var fnNode *ast.FunctionNode
	for _, stmt := range prog.Body {
		if es, ok := stmt.(*ast.ExpressionStatement); ok {
			if fn, ok := es.Expression.(*ast.FunctionNode); ok {
				fnNode = fn
				break
			}
		}
		if fn, ok := stmt.(*ast.FunctionNode); ok {
			fnNode = fn
			break
		}
	}
	if fnNode == nil {
		cerr(value.Packet{Type: value.PacketError, Err: &errors.RuntimeError{Msg: "evalFunctionBody: source is not a single function"}})
		return
	}
	merged := ctx.Config.WithDefaults()
	if merged.ScriptID == "" {
		merged.ScriptID = nextScriptID()
	}
	Evaluate(fnNode.Body, env.Child(), merged, c, cerr)
}

// Promise is the synchronous host-level future evalToPromise (spec.md §6)
// adapts evaluation results into: since evalkit introduces no genuine
// host asynchrony of its own (spec.md §5), a Promise is always already
// settled by the time EvalToPromise returns it (a parse failure rejects it
// with the first parse error's message). State/Value/Reason are plain Go
// fields; host.GetProperty has no case for Promise, so reading them as
// properties from interpreted code yields undefined.
type Promise struct {
	State  string // "fulfilled" or "rejected"
	Value  value.Value
	Reason value.Value
}

func (p *Promise) TypeName() string { return "Promise" }
func (p *Promise) String() string   { return fmt.Sprintf("[object Promise:%s]", p.State) }

// EvalToPromise implements spec.md §6's evalToPromise: "adapter yielding a
// host-level future; resolves on c, rejects on cerr".
func (ctx *Context) EvalToPromise(src Source, env value.Scope) *Promise {
	p := &Promise{State: "pending", Value: value.Undefined()}
	errs, ok := ctx.Evaluate(src, func(v value.Value) {
		p.State = "fulfilled"
		p.Value = v
	}, func(packet value.Packet) {
		p.State = "rejected"
		p.Reason = packet.Value
		if p.Reason.IsUndefined() && packet.Err != nil {
			p.Reason = value.String(packet.Err.Error())
		}
	}, env, value.EvaluationConfig{})
	if !ok {
		p.State = "rejected"
		p.Reason = value.String(errs[0].Error())
	}
	return p
}

var _ value.HostObject = (*Promise)(nil)
