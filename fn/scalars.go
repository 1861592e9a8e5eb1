package fn

import (
	"strings"

	"github.com/ferrumdb/ferrum/core"
)

// Every built-in scalar returns NULL when any argument is NULL.

func anyNull(args []core.Cell) bool {
	for _, arg := range args {
		if arg.IsNull() {
			return true
		}
	}
	return false
}

// addScalar adds two numeric cells. Two INT inputs stay INT; any FLOAT
// input widens the result to FLOAT.
type addScalar struct{}

func (addScalar) Name() string { return "ADD" }
func (addScalar) Arity() int   { return 2 }

func (s addScalar) Apply(args []core.Cell) (core.Cell, error) {
	if err := checkArity(s, args); err != nil {
		return core.Cell{}, err
	}
	if anyNull(args) {
		return core.Null(), nil
	}

	if args[0].Type == core.IntType && args[1].Type == core.IntType {
		return core.NewInt(args[0].Int + args[1].Int), nil
	}

	a, aok := args[0].Numeric()
	b, bok := args[1].Numeric()
	if !aok || !bok {
		return core.Cell{}, core.NewTypeMismatch("ADD needs numeric arguments, got %s and %s",
			args[0].Type, args[1].Type)
	}
	return core.NewFloat(a + b), nil
}

type upperScalar struct{}

func (upperScalar) Name() string { return "UPPER" }
func (upperScalar) Arity() int   { return 1 }

func (s upperScalar) Apply(args []core.Cell) (core.Cell, error) {
	return applyText(s, args, strings.ToUpper)
}

type lowerScalar struct{}

func (lowerScalar) Name() string { return "LOWER" }
func (lowerScalar) Arity() int   { return 1 }

func (s lowerScalar) Apply(args []core.Cell) (core.Cell, error) {
	return applyText(s, args, strings.ToLower)
}

type trimScalar struct{}

func (trimScalar) Name() string { return "TRIM" }
func (trimScalar) Arity() int   { return 1 }

func (s trimScalar) Apply(args []core.Cell) (core.Cell, error) {
	return applyText(s, args, strings.TrimSpace)
}

func applyText(scalar Scalar, args []core.Cell, transform func(string) string) (core.Cell, error) {
	if err := checkArity(scalar, args); err != nil {
		return core.Cell{}, err
	}
	if anyNull(args) {
		return core.Null(), nil
	}
	if args[0].Type != core.TextType {
		return core.Cell{}, core.NewTypeMismatch("%s needs a TEXT argument, got %s",
			scalar.Name(), args[0].Type)
	}
	return core.NewText(transform(args[0].Text)), nil
}

type lengthScalar struct{}

func (lengthScalar) Name() string { return "LENGTH" }
func (lengthScalar) Arity() int   { return 1 }

func (s lengthScalar) Apply(args []core.Cell) (core.Cell, error) {
	if err := checkArity(s, args); err != nil {
		return core.Cell{}, err
	}
	if anyNull(args) {
		return core.Null(), nil
	}
	if args[0].Type != core.TextType {
		return core.Cell{}, core.NewTypeMismatch("LENGTH needs a TEXT argument, got %s", args[0].Type)
	}
	return core.NewInt(int64(len(args[0].Text))), nil
}

// concatScalar joins the text form of any number of arguments.
type concatScalar struct{}

func (concatScalar) Name() string { return "CONCAT" }
func (concatScalar) Arity() int   { return Variadic }

func (s concatScalar) Apply(args []core.Cell) (core.Cell, error) {
	if anyNull(args) {
		return core.Null(), nil
	}

	var builder strings.Builder
	for _, arg := range args {
		builder.WriteString(arg.String())
	}
	return core.NewText(builder.String()), nil
}
