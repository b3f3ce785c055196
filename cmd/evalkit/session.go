package main

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"

	"evalkit/pkg/env"
	"evalkit/pkg/errors"
	"evalkit/pkg/eval"
	"evalkit/pkg/host"
	"evalkit/pkg/source"
	"evalkit/pkg/value"
)

// newRootScope builds a fresh root frame with the host globals populated
// (console, Math, JSON, RegExp, parseInt/parseFloat/isNaN — SPEC_FULL.md
// §4.7), the frame every evalkit session's EvaluationContext is rooted at.
func newRootScope() value.Scope {
	root := env.NewRoot()
	host.PopulateGlobals(root)
	return root
}

// traceInterceptor is the logging interceptor --trace installs (SPEC_FULL.md
// §4.8): one structured logrus line per enter/exit event, naming scriptId,
// node kind, and phase.
func traceInterceptor(e value.Evaluation) {
	log.WithFields(log.Fields{
		"scriptId": e.ScriptID,
		"node":     e.Node.Kind(),
		"phase":    e.Tag.Phase,
	}).Info("evaluate")
}

// newConfig builds the EvaluationConfig a run/eval/repl invocation shares,
// wiring traceInterceptor in only when --trace was passed.
func newConfig(scriptID string) value.EvaluationConfig {
	config := value.EvaluationConfig{
		ScriptID: scriptID,
		OnError: func(err error) {
			fmt.Fprintf(os.Stderr, "evalkit: internal error: %v\n", err)
		},
	}
	if traceFlag {
		config.Interceptor = traceInterceptor
	}
	return config
}

// displayOutcome prints a successful evaluation's value to stdout, or a
// formatted ExceptionPacket to stderr (position + caret, grounded on
// pkg/errors.DisplayErrors) — the CLI's equivalent of the teacher's
// Paserati.DisplayResult.
func displayOutcome(source string, v value.Value, packet *value.Packet) bool {
	if packet == nil {
		fmt.Println(v.String())
		return true
	}
	if packet.Err != nil {
		if ke, ok := packet.Err.(errors.EvalKitError); ok {
			errors.DisplayErrors(source, []errors.EvalKitError{ke})
			return false
		}
		fmt.Fprintln(os.Stderr, packet.Err.Error())
		return false
	}
	fmt.Fprintf(os.Stderr, "uncaught %s: %s\n", packet.Type, packet.Value.String())
	return false
}

// evalSource parses and evaluates source synchronously against scope,
// returning the settled value/packet the way runSync does inside pkg/eval's
// loop evaluators — the CLI only ever drives evaluation to one outcome.
func evalSource(ctx *eval.Context, src string, scope value.Scope, config value.EvaluationConfig) (value.Value, *value.Packet, []errors.EvalKitError) {
	var v value.Value
	var p *value.Packet
	parseErrs, ok := ctx.Evaluate(src, func(rv value.Value) { v = rv }, func(rp value.Packet) { p = &rp }, scope, config)
	if !ok {
		return value.Undefined(), nil, parseErrs
	}
	return v, p, nil
}

// evalFile runs a *source.SourceFile through Context.EvaluateSourceFile, the
// file/REPL/stdin-aware sibling of evalSource — used whenever the CLI
// already knows the source's real name (a file path, "<repl>", "<stdin>")
// so a parse error names it instead of resolve's generic "<eval>" tag.
func evalFile(ctx *eval.Context, file *source.SourceFile, scope value.Scope, config value.EvaluationConfig) (value.Value, *value.Packet, []errors.EvalKitError) {
	var v value.Value
	var p *value.Packet
	parseErrs, ok := ctx.EvaluateSourceFile(file, func(rv value.Value) { v = rv }, func(rp value.Packet) { p = &rp }, scope, config)
	if !ok {
		return value.Undefined(), nil, parseErrs
	}
	return v, p, nil
}
