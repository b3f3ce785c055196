package errors

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"

	"evalkit/pkg/source"
)

// captureStderr redirects os.Stderr for fn's duration, grounded on the
// teacher test suite's os.Pipe-swap pattern (tests/loops_test.go).
func captureStderr(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stderr
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe: %v", err)
	}
	os.Stderr = w
	fn()
	w.Close()
	os.Stderr = old

	var buf bytes.Buffer
	_, _ = io.Copy(&buf, r)
	return buf.String()
}

func TestPositionStringNamesItsSource(t *testing.T) {
	file := source.FromFile("/tmp/script.ek", "1;")
	pos := Position{Line: 1, Column: 3, Source: file}
	if got := pos.String(); got != "/tmp/script.ek:1:3" {
		t.Errorf("Position.String() = %q", got)
	}

	anon := Position{Line: 2, Column: 1}
	if got := anon.String(); got != "<unknown>:2:1" {
		t.Errorf("Position.String() with no Source = %q", got)
	}
}

func TestRuntimeErrorSatisfiesEvalKitError(t *testing.T) {
	var _ EvalKitError = (*RuntimeError)(nil)
	var _ EvalKitError = (*SyntaxError)(nil)
}

func TestSyntaxErrorErrorMessage(t *testing.T) {
	err := &SyntaxError{Position: Position{Line: 4, Column: 2}, Msg: "unexpected token"}
	if err.Error() != "Syntax Error at 4:2: unexpected token" {
		t.Errorf("Error() = %q", err.Error())
	}
	if err.Kind() != "Syntax" || err.Message() != "unexpected token" {
		t.Errorf("Kind()/Message() = %q/%q", err.Kind(), err.Message())
	}
}

func TestCausedByWrapsCause(t *testing.T) {
	cause := &RuntimeError{Msg: "inner"}
	outer := (&RuntimeError{Msg: "outer"}).CausedBy(cause)
	if outer.Unwrap() != cause {
		t.Errorf("CausedBy did not wire Unwrap to the given cause")
	}
}

func TestDisplayErrorsPrefixesTheSourceFileName(t *testing.T) {
	src := "let x = 1\nlet y = ;"
	file := source.FromFile("/tmp/broken.ek", src)
	errs := []EvalKitError{
		&SyntaxError{Position: Position{Line: 2, Column: 9, Source: file}, Msg: "unexpected ;"},
	}

	out := captureStderr(t, func() { DisplayErrors(src, errs) })
	if !strings.Contains(out, "/tmp/broken.ek") {
		t.Errorf("DisplayErrors output does not name its source file: %q", out)
	}
	if !strings.Contains(out, "let y = ;") {
		t.Errorf("DisplayErrors output does not echo the offending line: %q", out)
	}
}
