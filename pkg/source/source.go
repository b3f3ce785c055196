package source

import (
	"path/filepath"
	"strings"
)

// SourceFile is the unit every evalkit error position and the CLI's error
// display (pkg/errors.DisplayErrors) point back to: one per `run <file>`
// invocation, per REPL submission (cmd/evalkit/repl.go), or per inline
// `eval`/host-reflected string resolved by Context.resolve
// (pkg/eval/context.go). Content is kept alongside Name/Path so a
// SourceFile is self-sufficient for re-display without a second read of
// the originating file or stdin stream.
type SourceFile struct {
	Name    string // display name ("<eval>", "<repl>", "<stdin>", or a basename)
	Path    string // full path for an on-disk file; empty for eval/REPL/stdin
	Content string
	lines   []string // Lines' cache
}

// NewSourceFile builds a SourceFile from explicit name/path/content; the
// other New*Source helpers below cover the fixed evalkit entrypoints and
// only this one takes an arbitrary name.
func NewSourceFile(name, path, content string) *SourceFile {
	return &SourceFile{Name: name, Path: path, Content: content}
}

// NewEvalSource tags content resolved from Context.Evaluate's plain-string
// Source case (spec.md §2) or a reflected host function's captured text —
// source with no file of its own and no REPL line number to report.
func NewEvalSource(content string) *SourceFile {
	return &SourceFile{Name: "<eval>", Content: content}
}

// NewReplSource tags one line submitted to `evalkit repl` (SPEC_FULL.md
// §4.9); each call gets its own *SourceFile even though the REPL shares one
// root scope across the session, so an error display never confuses one
// submission's source text for another's.
func NewReplSource(content string) *SourceFile {
	return &SourceFile{Name: "<repl>", Content: content}
}

// NewStdinSource tags a script piped into `evalkit run -` (cmd/evalkit's
// stdin convention for running a script that isn't on disk).
func NewStdinSource(content string) *SourceFile {
	return &SourceFile{Name: "<stdin>", Content: content}
}

// FromFile builds a SourceFile for an on-disk script, named after its base
// name but keeping the full path for DisplayPath — `evalkit run` uses this
// so a parse error names the file the user actually typed, rather than
// Context.resolve's generic "<eval>" tag for anonymous source text.
func FromFile(path, content string) *SourceFile {
	return NewSourceFile(filepath.Base(path), path, content)
}

// Lines splits Content on "\n", computed once and cached.
func (sf *SourceFile) Lines() []string {
	if sf.lines == nil {
		sf.lines = strings.Split(sf.Content, "\n")
	}
	return sf.lines
}

// DisplayPath is what an error message should print to name this source:
// the file path when there is one, otherwise the synthetic Name.
func (sf *SourceFile) DisplayPath() string {
	if sf.Path != "" {
		return sf.Path
	}
	return sf.Name
}

// IsFile reports whether this SourceFile backs an actual on-disk path,
// as opposed to REPL/eval/stdin text.
func (sf *SourceFile) IsFile() bool {
	return sf.Path != ""
}

func (sf *SourceFile) String() string {
	return sf.DisplayPath()
}