package host

import (
	"github.com/dlclark/regexp2"

	"evalkit/pkg/value"
)

// RegExp wraps github.com/dlclark/regexp2 (the teacher's own dependency,
// carried forward per SPEC_FULL.md §4.7) rather than the standard
// library's regexp: regexp2 supports backreferences and lookaround, which
// the mimicked language's regex literals allow and re2-based stdlib
// regexp cannot express. Constructed by NewExpression when the callee
// identifier resolves to the host RegExp constructor (see pkg/eval's
// NewExpression evaluator).
type RegExp struct {
	Source  string
	Flags   string
	pattern *regexp2.Regexp
}

func NewRegExp(source, flags string) (*RegExp, error) {
	opts := regexp2.None
	if containsFlag(flags, 'i') {
		opts |= regexp2.IgnoreCase
	}
	if containsFlag(flags, 's') {
		opts |= regexp2.Singleline
	}
	if containsFlag(flags, 'm') {
		opts |= regexp2.Multiline
	}
	re, err := regexp2.Compile(source, opts)
	if err != nil {
		return nil, err
	}
	return &RegExp{Source: source, Flags: flags, pattern: re}, nil
}

// NewRegExpConstructor is the host-level `RegExp` global (SPEC_FULL.md
// §4.7, §4.9): NewExpression invokes it the same way a plain call would,
// since it is a stateless factory rather than a `this`-mutating
// constructor.
func NewRegExpConstructor() *Func {
	return NewFunc("RegExp", func(this value.Value, args []value.Value) (value.Value, error) {
		source, flags := "", ""
		if len(args) > 0 {
			source = args[0].String()
		}
		if len(args) > 1 {
			flags = args[1].String()
		}
		re, err := NewRegExp(source, flags)
		if err != nil {
			return value.Undefined(), err
		}
		return value.Host(re), nil
	})
}

func containsFlag(flags string, f rune) bool {
	for _, c := range flags {
		if c == f {
			return true
		}
	}
	return false
}

func (r *RegExp) TypeName() string { return "RegExp" }

func (r *RegExp) String() string {
	return "/" + r.Source + "/" + r.Flags
}

var regexpMethods = map[string]*Func{
	"test": NewFunc("test", regexpTest),
	"exec": NewFunc("exec", regexpExec),
}

func regexpTest(this value.Value, args []value.Value) (value.Value, error) {
	re := this.AsHost().(*RegExp)
	subject := ""
	if len(args) > 0 {
		subject = args[0].String()
	}
	m, err := re.pattern.MatchString(subject)
	if err != nil {
		return value.Bool(false), err
	}
	return value.Bool(m), nil
}

func regexpExec(this value.Value, args []value.Value) (value.Value, error) {
	re := this.AsHost().(*RegExp)
	subject := ""
	if len(args) > 0 {
		subject = args[0].String()
	}
	m, err := re.pattern.FindStringMatch(subject)
	if err != nil {
		return value.Undefined(), err
	}
	if m == nil {
		return value.Null(), nil
	}
	groups := m.Groups()
	elements := make([]value.Value, len(groups))
	for i, g := range groups {
		if len(g.Captures) == 0 {
			elements[i] = value.Undefined()
			continue
		}
		elements[i] = value.String(g.String())
	}
	return value.Host(NewArray(elements...)), nil
}
