package host

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"evalkit/pkg/value"
)

// PopulateGlobals binds the host's standard objects into scope: console,
// Math, JSON, the RegExp constructor, and the parseInt/parseFloat/isNaN
// free functions (SPEC_FULL.md §4.7). A real embedding calls this once on
// a fresh root frame before handing it to an evaluation context.
func PopulateGlobals(scope value.Scope) {
	scope.Define("console", value.Host(newConsole()))
	scope.Define("Math", value.Host(NewMath()))
	scope.Define("JSON", value.Host(NewJSON()))
	scope.Define("RegExp", value.Host(NewRegExpConstructor()))
	scope.Define("parseInt", value.Host(NewFunc("parseInt", parseIntFn)))
	scope.Define("parseFloat", value.Host(NewFunc("parseFloat", parseFloatFn)))
	scope.Define("isNaN", value.Host(NewFunc("isNaN", isNaNFn)))
}

func newConsole() *Record {
	c := NewRecord()
	c.Set("log", value.Host(NewFunc("log", consoleLog)))
	return c
}

func consoleLog(this value.Value, args []value.Value) (value.Value, error) {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = a.String()
	}
	fmt.Println(strings.Join(parts, " "))
	return value.Undefined(), nil
}

func isDigitInRadix(b byte, radix int) bool {
	var d int
	switch {
	case b >= '0' && b <= '9':
		d = int(b - '0')
	case b >= 'a' && b <= 'z':
		d = int(b-'a') + 10
	case b >= 'A' && b <= 'Z':
		d = int(b-'A') + 10
	default:
		return false
	}
	return d < radix
}

// parseIntFn mirrors the mimicked language's parseInt: leading
// whitespace and sign are skipped, an optional radix (default 10, with a
// "0x" prefix implying 16) governs which digits are accepted, and parsing
// stops at the first non-digit rather than requiring the whole string to
// match.
func parseIntFn(this value.Value, args []value.Value) (value.Value, error) {
	if len(args) == 0 {
		return value.Number(math.NaN()), nil
	}
	s := strings.TrimSpace(args[0].String())
	radix := 0
	if len(args) > 1 && args[1].IsNumber() {
		radix = int(args[1].AsNumber())
	}
	neg := false
	if len(s) > 0 && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		s = s[1:]
	}
	if (radix == 0 || radix == 16) && len(s) > 1 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		s = s[2:]
		radix = 16
	}
	if radix == 0 {
		radix = 10
	}
	end := 0
	for end < len(s) && isDigitInRadix(s[end], radix) {
		end++
	}
	if end == 0 {
		return value.Number(math.NaN()), nil
	}
	n, err := strconv.ParseInt(s[:end], radix, 64)
	if err != nil {
		return value.Number(math.NaN()), nil
	}
	f := float64(n)
	if neg {
		f = -f
	}
	return value.Number(f), nil
}

// parseFloatFn mirrors the mimicked language's parseFloat: parses the
// longest valid floating-point prefix of the string, NaN if there is
// none.
func parseFloatFn(this value.Value, args []value.Value) (value.Value, error) {
	if len(args) == 0 {
		return value.Number(math.NaN()), nil
	}
	s := strings.TrimSpace(args[0].String())
	end, seenDot, seenExp := 0, false, false
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
scan:
	for end < len(s) {
		c := s[end]
		switch {
		case c >= '0' && c <= '9':
			end++
		case c == '.' && !seenDot && !seenExp:
			seenDot = true
			end++
		case (c == 'e' || c == 'E') && !seenExp:
			seenExp = true
			end++
			if end < len(s) && (s[end] == '+' || s[end] == '-') {
				end++
			}
		default:
			break scan
		}
	}
	if end == 0 {
		return value.Number(math.NaN()), nil
	}
	f, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return value.Number(math.NaN()), nil
	}
	return value.Number(f), nil
}

func isNaNFn(this value.Value, args []value.Value) (value.Value, error) {
	if len(args) == 0 {
		return value.Bool(true), nil
	}
	return value.Bool(math.IsNaN(ToNumber(args[0]))), nil
}
