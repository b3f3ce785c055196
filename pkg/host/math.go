package host

import (
	"math"

	"evalkit/pkg/value"
)

// NewMath builds the Math host Record exposed as a global binding by the
// evaluation session (SPEC_FULL.md §4.7). Grounded on the teacher's own
// builtins/math.go, narrowed to the functions/constants spec.md's sample
// programs exercise.
func NewMath() *Record {
	m := NewRecord()
	m.Set("PI", value.Number(math.Pi))
	m.Set("E", value.Number(math.E))
	m.Set("abs", value.Host(NewFunc("abs", math1(math.Abs))))
	m.Set("floor", value.Host(NewFunc("floor", math1(math.Floor))))
	m.Set("ceil", value.Host(NewFunc("ceil", math1(math.Ceil))))
	m.Set("round", value.Host(NewFunc("round", math1(math.Round))))
	m.Set("trunc", value.Host(NewFunc("trunc", math1(math.Trunc))))
	m.Set("sqrt", value.Host(NewFunc("sqrt", math1(math.Sqrt))))
	m.Set("cbrt", value.Host(NewFunc("cbrt", math1(math.Cbrt))))
	m.Set("sign", value.Host(NewFunc("sign", math1(mathSign))))
	m.Set("log", value.Host(NewFunc("log", math1(math.Log))))
	m.Set("max", value.Host(NewFunc("max", mathMax)))
	m.Set("min", value.Host(NewFunc("min", mathMin)))
	m.Set("pow", value.Host(NewFunc("pow", mathPow)))
	m.Set("random", value.Host(NewFunc("random", mathRandom)))
	return m
}

func math1(fn func(float64) float64) func(value.Value, []value.Value) (value.Value, error) {
	return func(this value.Value, args []value.Value) (value.Value, error) {
		if len(args) == 0 {
			return value.Number(math.NaN()), nil
		}
		return value.Number(fn(ToNumber(args[0]))), nil
	}
}

func mathSign(n float64) float64 {
	switch {
	case n > 0:
		return 1
	case n < 0:
		return -1
	default:
		return n
	}
}

func mathMax(this value.Value, args []value.Value) (value.Value, error) {
	if len(args) == 0 {
		return value.Number(math.Inf(-1)), nil
	}
	max := math.Inf(-1)
	for _, a := range args {
		n := ToNumber(a)
		if math.IsNaN(n) {
			return value.Number(math.NaN()), nil
		}
		if n > max {
			max = n
		}
	}
	return value.Number(max), nil
}

func mathMin(this value.Value, args []value.Value) (value.Value, error) {
	if len(args) == 0 {
		return value.Number(math.Inf(1)), nil
	}
	min := math.Inf(1)
	for _, a := range args {
		n := ToNumber(a)
		if math.IsNaN(n) {
			return value.Number(math.NaN()), nil
		}
		if n < min {
			min = n
		}
	}
	return value.Number(min), nil
}

func mathPow(this value.Value, args []value.Value) (value.Value, error) {
	if len(args) < 2 {
		return value.Number(math.NaN()), nil
	}
	return value.Number(math.Pow(ToNumber(args[0]), ToNumber(args[1]))), nil
}

// randomSource backs mathRandom. By default it is math/rand/v2's
// auto-seeded package-level generator, shared by every evaluation session
// in the process and never reseeded per call; the CLI driver (C11)
// replaces it with a seeded source only when --seed is given.
var randomSource func() float64 = defaultRandomSource

func mathRandom(this value.Value, args []value.Value) (value.Value, error) {
	return value.Number(randomSource()), nil
}

// SetRandomSource lets the CLI driver substitute a seeded source for a
// reproducible run; called from cmd/evalkit/root.go's configureRandomSource
// when --seed is passed. evalkit's default uses math/rand/v2 (wired in
// defaultRandomSource, host/random.go).
func SetRandomSource(fn func() float64) {
	randomSource = fn
}
