package interp

import (
	"math"
	"strconv"
	"strings"

	"github.com/metaphox/pas-lang/ast"
)

// Type is a declared or runtime type.
type Type int

const (
	Integer Type = iota + 1
	Real
)

func (t Type) String() string {
	switch t {
	case Integer:
		return "INTEGER"
	case Real:
		return "REAL"
	}
	return "Type(" + strconv.Itoa(int(t)) + ")"
}

// typeOf maps a type_spec keyword to its Type.
func typeOf(tok ast.Token) (Type, bool) {
	switch {
	case tok.IsKeyword(ast.KwInteger):
		return Integer, true
	case tok.IsKeyword(ast.KwReal):
		return Real, true
	}
	return 0, false
}

// Value is a runtime value. Only the field matching Type is meaningful.
type Value struct {
	Type Type
	Int  int64
	Real float64
}

// IntValue returns an Integer value.
func IntValue(i int64) Value { return Value{Type: Integer, Int: i} }

// RealValue returns a Real value.
func RealValue(f float64) Value { return Value{Type: Real, Real: f} }

// AsReal widens the value to float64.
func (v Value) AsReal() float64 {
	if v.Type == Integer {
		return float64(v.Int)
	}
	return v.Real
}

// AsInt narrows the value to int64, truncating a Real toward zero.
// ok is false when the Real is NaN or outside the int64 range.
func (v Value) AsInt() (i int64, ok bool) {
	if v.Type == Integer {
		return v.Int, true
	}
	f := math.Trunc(v.Real)
	if math.IsNaN(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}

// String formats the value; Reals always show a fractional part or exponent.
func (v Value) String() string {
	switch v.Type {
	case Integer:
		return strconv.FormatInt(v.Int, 10)
	case Real:
		s := strconv.FormatFloat(v.Real, 'g', -1, 64)
		if !strings.ContainsAny(s, ".eIN") {
			s += ".0"
		}
		return s
	}
	return "<invalid>"
}
