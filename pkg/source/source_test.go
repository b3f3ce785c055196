package source

import (
	"reflect"
	"testing"
)

func TestLinesSplitsAndCaches(t *testing.T) {
	sf := NewEvalSource("a\nb\nc")
	got := sf.Lines()
	if !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Fatalf("Lines() = %v", got)
	}
	if &sf.Lines()[0] != &got[0] {
		t.Error("Lines() should return the same cached slice on repeated calls")
	}
}

func TestDisplayPathPrefersPathOverName(t *testing.T) {
	sf := FromFile("/tmp/script.ek", "1;")
	if sf.DisplayPath() != "/tmp/script.ek" {
		t.Errorf("DisplayPath() = %q", sf.DisplayPath())
	}
	if !sf.IsFile() {
		t.Error("a source built from a file path should report IsFile() true")
	}

	repl := NewReplSource("1;")
	if repl.DisplayPath() != "<repl>" {
		t.Errorf("DisplayPath() = %q, want <repl>", repl.DisplayPath())
	}
	if repl.IsFile() {
		t.Error("a REPL source should report IsFile() false")
	}
}

func TestFromFileUsesBaseNameAsDisplayName(t *testing.T) {
	sf := FromFile("/a/b/script.ek", "")
	if sf.Name != "script.ek" {
		t.Errorf("Name = %q, want script.ek", sf.Name)
	}
}

func TestNewStdinSourceName(t *testing.T) {
	sf := NewStdinSource("1;")
	if sf.Name != "<stdin>" || sf.IsFile() {
		t.Errorf("unexpected stdin source: %+v", sf)
	}
}
