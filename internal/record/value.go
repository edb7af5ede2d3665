package record

import (
	"fmt"
	"strconv"
	"strings"
)

// DataType is the declared type of a schema column.
type DataType uint8

const (
	TypeInteger DataType = iota
	TypeFloat
	TypeText
	TypeBoolean
)

func (t DataType) String() string {
	switch t {
	case TypeInteger:
		return "INTEGER"
	case TypeFloat:
		return "FLOAT"
	case TypeText:
		return "TEXT"
	case TypeBoolean:
		return "BOOLEAN"
	default:
		return fmt.Sprintf("DataType(%d)", uint8(t))
	}
}

// Kind tags the variant carried by a Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindInteger
	KindFloat
	KindText
	KindBoolean
)

// FloatScale is the fixed-precision multiplier for float values: a FLOAT is
// carried as its value times 1000, truncated to int64. Two floats are equal
// exactly when their scaled integers are equal; native IEEE comparison is
// never used.
const FloatScale = 1000

// Value is a tagged union over {Null, Integer, Float, Text, Boolean}.
// The zero Value is Null. Only the payload field matching Kind is meaningful.
type Value struct {
	Kind Kind
	Int  int64  // KindInteger, and KindFloat (scaled by FloatScale)
	Str  string // KindText
	Bool bool   // KindBoolean
}

func Null() Value               { return Value{Kind: KindNull} }
func Integer(i int64) Value     { return Value{Kind: KindInteger, Int: i} }
func Text(s string) Value       { return Value{Kind: KindText, Str: s} }
func Boolean(b bool) Value      { return Value{Kind: KindBoolean, Bool: b} }
func FloatScaled(i int64) Value { return Value{Kind: KindFloat, Int: i} }

// Float builds a FLOAT value from a native float64, truncating to the fixed
// FloatScale precision.
func Float(f float64) Value {
	return Value{Kind: KindFloat, Int: int64(f * FloatScale)}
}

func (v Value) IsNull() bool { return v.Kind == KindNull }

// MatchesType reports whether v may be stored in a column declared as t.
// Null matches any type; nullability is the schema's concern, not the value's.
func (v Value) MatchesType(t DataType) bool {
	switch v.Kind {
	case KindNull:
		return true
	case KindInteger:
		return t == TypeInteger
	case KindFloat:
		return t == TypeFloat
	case KindText:
		return t == TypeText
	case KindBoolean:
		return t == TypeBoolean
	default:
		return false
	}
}

// kindRank orders variants for cross-kind comparison:
// Null < Integer < Float < Text < Boolean.
func (v Value) kindRank() int { return int(v.Kind) }

// Compare defines the total order used by index keys: first by kind rank,
// then within a kind by payload. Floats compare by their scaled integers.
func (v Value) Compare(o Value) int {
	if r, or := v.kindRank(), o.kindRank(); r != or {
		if r < or {
			return -1
		}
		return 1
	}
	switch v.Kind {
	case KindNull:
		return 0
	case KindInteger, KindFloat:
		switch {
		case v.Int < o.Int:
			return -1
		case v.Int > o.Int:
			return 1
		}
		return 0
	case KindText:
		return strings.Compare(v.Str, o.Str)
	case KindBoolean:
		switch {
		case !v.Bool && o.Bool:
			return -1
		case v.Bool && !o.Bool:
			return 1
		}
		return 0
	default:
		panic(fmt.Sprintf("record: unhandled value kind %d", v.Kind))
	}
}

// Equal is Compare == 0; Null equals Null.
func (v Value) Equal(o Value) bool { return v.Compare(o) == 0 }

// String renders the value for display. Floats are descaled back to decimal
// form; NULL renders as the bare word.
func (v Value) String() string {
	switch v.Kind {
	case KindNull:
		return "NULL"
	case KindInteger:
		return strconv.FormatInt(v.Int, 10)
	case KindFloat:
		whole := v.Int / FloatScale
		frac := v.Int % FloatScale
		if frac < 0 {
			frac = -frac
			if whole == 0 {
				return fmt.Sprintf("-0.%03d", frac)
			}
		}
		return fmt.Sprintf("%d.%03d", whole, frac)
	case KindText:
		return v.Str
	case KindBoolean:
		return strconv.FormatBool(v.Bool)
	default:
		panic(fmt.Sprintf("record: unhandled value kind %d", v.Kind))
	}
}
