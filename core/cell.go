package core

import (
	"strconv"
	"strings"
)

type CellType int

const (
	NullType CellType = iota
	IntType
	FloatType
	TextType
	BoolType
)

func (t CellType) String() string {
	switch t {
	case IntType:
		return "INT"
	case FloatType:
		return "FLOAT"
	case TextType:
		return "TEXT"
	case BoolType:
		return "BOOL"
	default:
		return "NULL"
	}
}

// Cell is a single tagged value. The Type field decides which of the value
// fields is meaningful; a NullType cell carries no value at all.
type Cell struct {
	Type  CellType `json:"type"`
	Int   int64    `json:"int,omitempty"`
	Float float64  `json:"float,omitempty"`
	Text  string   `json:"text,omitempty"`
	Bool  bool     `json:"bool,omitempty"`
}

func NewInt(v int64) Cell {
	return Cell{Type: IntType, Int: v}
}

func NewFloat(v float64) Cell {
	return Cell{Type: FloatType, Float: v}
}

func NewText(v string) Cell {
	return Cell{Type: TextType, Text: v}
}

func NewBool(v bool) Cell {
	return Cell{Type: BoolType, Bool: v}
}

func Null() Cell {
	return Cell{Type: NullType}
}

func (c Cell) IsNull() bool {
	return c.Type == NullType
}

// Numeric reports whether the cell carries an Int or Float value and
// returns it widened to float64.
func (c Cell) Numeric() (float64, bool) {
	switch c.Type {
	case IntType:
		return float64(c.Int), true
	case FloatType:
		return c.Float, true
	default:
		return 0, false
	}
}

func (c Cell) String() string {
	switch c.Type {
	case IntType:
		return strconv.FormatInt(c.Int, 10)
	case FloatType:
		return strconv.FormatFloat(c.Float, 'g', -1, 64)
	case TextType:
		return c.Text
	case BoolType:
		return strconv.FormatBool(c.Bool)
	default:
		return "NULL"
	}
}

// EncodeKey returns the canonical string form of the cell used as an index
// key component. Distinct values must encode to distinct strings within a
// single column's type.
func (c Cell) EncodeKey() string {
	if c.IsNull() {
		return "\x00null"
	}
	return c.String()
}

// Compare orders two cells. Int and Float compare numerically with each
// other, Text compares lexicographically, Bool orders false before true.
// Comparing a NULL or mixing any other tags returns a TypeMismatchError.
func (c Cell) Compare(other Cell) (int, error) {
	if c.IsNull() || other.IsNull() {
		return 0, NewTypeMismatch("cannot compare NULL values")
	}

	if a, ok := c.Numeric(); ok {
		b, ok := other.Numeric()
		if !ok {
			return 0, NewTypeMismatch("cannot compare %s with %s", c.Type, other.Type)
		}
		switch {
		case a < b:
			return -1, nil
		case a > b:
			return 1, nil
		default:
			return 0, nil
		}
	}

	if c.Type != other.Type {
		return 0, NewTypeMismatch("cannot compare %s with %s", c.Type, other.Type)
	}

	switch c.Type {
	case TextType:
		return strings.Compare(c.Text, other.Text), nil
	case BoolType:
		a, b := 0, 0
		if c.Bool {
			a = 1
		}
		if other.Bool {
			b = 1
		}
		return a - b, nil
	default:
		return 0, NewTypeMismatch("cannot compare %s values", c.Type)
	}
}

// Matches reports whether a cell fits a column of the given type. NULL
// cells match any type; the nullable check belongs to the column.
func (c Cell) Matches(t CellType) bool {
	return c.IsNull() || c.Type == t
}
