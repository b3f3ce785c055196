package host

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"evalkit/pkg/value"
)

// Operators implements the primitive-operator half of spec.md §4.2's
// BinaryExpression/LogicalExpression/UnaryExpression/UpdateExpression
// rules: "apply the host operator". Keeping coercion/arithmetic here
// rather than in pkg/eval matches spec.md §6's framing of operator
// application as a host concern, and keeps pkg/eval's evaluators
// themselves free of numeric-coercion detail.

// Binary applies a two-operand operator, other than the short-circuiting
// logical operators (&&, ||, ??), which pkg/eval never calls Binary for.
func Binary(op string, left, right value.Value) (value.Value, error) {
	switch op {
	case "+":
		if left.Tag() == value.TagString || right.Tag() == value.TagString {
			return value.String(left.String() + right.String()), nil
		}
		return value.Number(ToNumber(left) + ToNumber(right)), nil
	case "-":
		return value.Number(ToNumber(left) - ToNumber(right)), nil
	case "*":
		return value.Number(ToNumber(left) * ToNumber(right)), nil
	case "/":
		return value.Number(ToNumber(left) / ToNumber(right)), nil
	case "%":
		return value.Number(math.Mod(ToNumber(left), ToNumber(right))), nil
	case "**":
		return value.Number(math.Pow(ToNumber(left), ToNumber(right))), nil
	case "<":
		return compare(left, right, func(a, b float64) bool { return a < b }, func(a, b string) bool { return a < b }), nil
	case ">":
		return compare(left, right, func(a, b float64) bool { return a > b }, func(a, b string) bool { return a > b }), nil
	case "<=":
		return compare(left, right, func(a, b float64) bool { return a <= b }, func(a, b string) bool { return a <= b }), nil
	case ">=":
		return compare(left, right, func(a, b float64) bool { return a >= b }, func(a, b string) bool { return a >= b }), nil
	case "==":
		return value.Bool(looseEquals(left, right)), nil
	case "!=":
		return value.Bool(!looseEquals(left, right)), nil
	case "===":
		return value.Bool(StrictEquals(left, right)), nil
	case "!==":
		return value.Bool(!StrictEquals(left, right)), nil
	case "&":
		return value.Number(float64(toInt32(left) & toInt32(right))), nil
	case "|":
		return value.Number(float64(toInt32(left) | toInt32(right))), nil
	case "^":
		return value.Number(float64(toInt32(left) ^ toInt32(right))), nil
	case "<<":
		return value.Number(float64(toInt32(left) << (uint32(toInt32(right)) & 31))), nil
	case ">>":
		return value.Number(float64(toInt32(left) >> (uint32(toInt32(right)) & 31))), nil
	case ">>>":
		return value.Number(float64(uint32(toInt32(left)) >> (uint32(toInt32(right)) & 31))), nil
	default:
		return value.Undefined(), fmt.Errorf("unsupported binary operator %q", op)
	}
}

// Unary applies !, -, +, ~, typeof.
func Unary(op string, operand value.Value) (value.Value, error) {
	switch op {
	case "!":
		return value.Bool(!operand.Truthy()), nil
	case "-":
		return value.Number(-ToNumber(operand)), nil
	case "+":
		return value.Number(ToNumber(operand)), nil
	case "~":
		return value.Number(float64(^toInt32(operand))), nil
	case "typeof":
		return value.String(TypeOf(operand)), nil
	default:
		return value.Undefined(), fmt.Errorf("unsupported unary operator %q", op)
	}
}

// TypeOf implements the typeof operator's result strings.
func TypeOf(v value.Value) string {
	switch v.Tag() {
	case value.TagUndefined:
		return "undefined"
	case value.TagNull:
		return "object"
	case value.TagBool:
		return "boolean"
	case value.TagNumber:
		return "number"
	case value.TagString:
		return "string"
	case value.TagMetaFunction:
		return "function"
	case value.TagHost:
		if _, ok := v.AsHost().(value.Callable); ok {
			return "function"
		}
		return "object"
	default:
		return "undefined"
	}
}

func compare(left, right value.Value, numOp func(a, b float64) bool, strOp func(a, b string) bool) value.Value {
	if left.Tag() == value.TagString && right.Tag() == value.TagString {
		return value.Bool(strOp(left.AsString(), right.AsString()))
	}
	return value.Bool(numOp(ToNumber(left), ToNumber(right)))
}

// StrictEquals implements === with no coercion.
func StrictEquals(a, b value.Value) bool {
	if a.Tag() != b.Tag() {
		return false
	}
	switch a.Tag() {
	case value.TagUndefined, value.TagNull:
		return true
	case value.TagBool:
		return a.AsBool() == b.AsBool()
	case value.TagNumber:
		return a.AsNumber() == b.AsNumber()
	case value.TagString:
		return a.AsString() == b.AsString()
	case value.TagHost:
		return a.AsHost() == b.AsHost()
	case value.TagMetaFunction:
		return a.AsMetaFunction() == b.AsMetaFunction()
	default:
		return false
	}
}

func looseEquals(a, b value.Value) bool {
	if a.Tag() == b.Tag() {
		return StrictEquals(a, b)
	}
	if a.IsNullOrUndefined() && b.IsNullOrUndefined() {
		return true
	}
	if a.IsNullOrUndefined() || b.IsNullOrUndefined() {
		return false
	}
	// Remaining cross-type cases coerce through Number, matching the
	// mimicked language's abstract equality for the primitive kinds
	// evalkit supports.
	return ToNumber(a) == ToNumber(b)
}

// ToNumber coerces a Value the way the host's binary arithmetic operators
// do: numbers pass through, booleans become 0/1, strings parse (NaN on
// failure), null becomes 0, undefined becomes NaN.
func ToNumber(v value.Value) float64 {
	switch v.Tag() {
	case value.TagNumber:
		return v.AsNumber()
	case value.TagBool:
		if v.AsBool() {
			return 1
		}
		return 0
	case value.TagString:
		return parseNumber(v.AsString())
	case value.TagNull:
		return 0
	default:
		return math.NaN()
	}
}

func parseNumber(s string) float64 {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return 0
	}
	f, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return math.NaN()
	}
	return f
}

func toInt32(v value.Value) int32 {
	n := ToNumber(v)
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0
	}
	return int32(int64(n))
}
