package ast

import (
	"strconv"
)

// NumberKind tells which field of a Number is populated.
type NumberKind string

const (
	NumberInt   NumberKind = "int"
	NumberFloat NumberKind = "float"
)

// Number is a decoded numeric literal.
type Number struct {
	Kind  NumberKind
	Int   int64   // populated when Kind == NumberInt
	Float float64 // populated when Kind == NumberFloat
}

// IntNumber returns an integer Number.
func IntNumber(v int64) Number { return Number{Kind: NumberInt, Int: v} }

// FloatNumber returns a decimal Number.
func FloatNumber(v float64) Number { return Number{Kind: NumberFloat, Float: v} }

// IsInt reports whether the literal had no decimal point.
func (n Number) IsInt() bool { return n.Kind == NumberInt }

// Float64 returns the value as a float64 regardless of kind.
func (n Number) Float64() float64 {
	if n.IsInt() {
		return float64(n.Int)
	}
	return n.Float
}

// Value returns the number as int64 or float64.
func (n Number) Value() any {
	if n.IsInt() {
		return n.Int
	}
	return n.Float
}

func (n Number) String() string {
	if n.IsInt() {
		return strconv.FormatInt(n.Int, 10)
	}
	return strconv.FormatFloat(n.Float, 'g', -1, 64)
}

// ParseNumber decodes literal text that the lexer already restricted to
// digits with at most one decimal point. Text containing a point decodes as
// a float, anything else as an int. Values that do not fit return the
// strconv range error.
func ParseNumber(raw string) (Number, error) {
	for i := 0; i < len(raw); i++ {
		if raw[i] == '.' {
			f, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return Number{}, err
			}
			return FloatNumber(f), nil
		}
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return Number{}, err
	}
	return IntNumber(v), nil
}
