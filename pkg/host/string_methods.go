package host

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"evalkit/pkg/value"
)

// upperFolder/lowerFolder are shared by toUpperCase/toLowerCase and their
// toLocale* counterparts. evalkit uses golang.org/x/text/cases rather than
// strings.ToUpper/ToLower because the latter only perform a simple
// rune-by-rune map (e.g. German ß stays ß instead of upper-casing to SS).
// Both casers use the undetermined language (language.Und): the toLocale*
// methods ignore any locale argument, and language-specific rules such as
// Turkish dotted/dotless i are not applied — see SPEC_FULL.md §4.7.
var (
	upperFolder = cases.Upper(language.Und)
	lowerFolder = cases.Lower(language.Und)
)

var stringMethods = map[string]*Func{
	"toUpperCase":       NewFunc("toUpperCase", stringCaseFn(upperFolder)),
	"toLocaleUpperCase": NewFunc("toLocaleUpperCase", stringCaseFn(upperFolder)),
	"toLowerCase":       NewFunc("toLowerCase", stringCaseFn(lowerFolder)),
	"toLocaleLowerCase": NewFunc("toLocaleLowerCase", stringCaseFn(lowerFolder)),
	"charAt":            NewFunc("charAt", stringCharAt),
	"indexOf":           NewFunc("indexOf", stringIndexOf),
	"slice":             NewFunc("slice", stringSlice),
	"split":             NewFunc("split", stringSplit),
	"trim":              NewFunc("trim", stringTrim),
	"concat":            NewFunc("concat", stringConcat),
	"includes":          NewFunc("includes", stringIncludes),
}

func stringCaseFn(c cases.Caser) func(value.Value, []value.Value) (value.Value, error) {
	return func(this value.Value, args []value.Value) (value.Value, error) {
		return value.String(c.String(this.AsString())), nil
	}
}

func stringCharAt(this value.Value, args []value.Value) (value.Value, error) {
	runes := []rune(this.AsString())
	idx := 0
	if len(args) > 0 {
		idx = int(args[0].AsNumber())
	}
	if idx < 0 || idx >= len(runes) {
		return value.String(""), nil
	}
	return value.String(string(runes[idx])), nil
}

func stringIndexOf(this value.Value, args []value.Value) (value.Value, error) {
	if len(args) == 0 {
		return value.Number(-1), nil
	}
	idx := strings.Index(this.AsString(), args[0].AsString())
	if idx < 0 {
		return value.Number(-1), nil
	}
	return value.Number(float64(utf8.RuneCountInString(this.AsString()[:idx]))), nil
}

func stringSlice(this value.Value, args []value.Value) (value.Value, error) {
	runes := []rune(this.AsString())
	start, end := 0, len(runes)
	if len(args) > 0 {
		start = clampIndex(int(args[0].AsNumber()), len(runes))
	}
	if len(args) > 1 {
		end = clampIndex(int(args[1].AsNumber()), len(runes))
	}
	if end < start {
		end = start
	}
	return value.String(string(runes[start:end])), nil
}

func clampIndex(i, length int) int {
	if i < 0 {
		i += length
	}
	if i < 0 {
		return 0
	}
	if i > length {
		return length
	}
	return i
}

func stringSplit(this value.Value, args []value.Value) (value.Value, error) {
	sep := ""
	if len(args) > 0 {
		sep = args[0].AsString()
	}
	var parts []string
	if sep == "" {
		for _, r := range this.AsString() {
			parts = append(parts, string(r))
		}
	} else {
		parts = strings.Split(this.AsString(), sep)
	}
	elements := make([]value.Value, len(parts))
	for i, p := range parts {
		elements[i] = value.String(p)
	}
	return value.Host(NewArray(elements...)), nil
}

func stringTrim(this value.Value, args []value.Value) (value.Value, error) {
	return value.String(strings.TrimSpace(this.AsString())), nil
}

func stringConcat(this value.Value, args []value.Value) (value.Value, error) {
	var b strings.Builder
	b.WriteString(this.AsString())
	for _, a := range args {
		b.WriteString(a.String())
	}
	return value.String(b.String()), nil
}

func stringIncludes(this value.Value, args []value.Value) (value.Value, error) {
	if len(args) == 0 {
		return value.Bool(false), nil
	}
	return value.Bool(strings.Contains(this.AsString(), args[0].AsString())), nil
}
