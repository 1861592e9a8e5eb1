package core

import "fmt"

// SchemaError reports a missing or duplicate database, table, column or index.
type SchemaError struct {
	Msg string
}

func NewSchemaError(format string, args ...any) *SchemaError {
	return &SchemaError{Msg: fmt.Sprintf(format, args...)}
}

func (e *SchemaError) Error() string {
	return e.Msg
}

// TypeMismatchError reports a cell/column type incompatibility.
type TypeMismatchError struct {
	Msg string
}

func NewTypeMismatch(format string, args ...any) *TypeMismatchError {
	return &TypeMismatchError{Msg: fmt.Sprintf(format, args...)}
}

func (e *TypeMismatchError) Error() string {
	return e.Msg
}

// UnknownFunctionError reports a function name absent from the registry.
type UnknownFunctionError struct {
	Name string
}

func (e *UnknownFunctionError) Error() string {
	return fmt.Sprintf("unknown function: %s", e.Name)
}

// ArityMismatchError reports a function call with the wrong argument count.
type ArityMismatchError struct {
	Function string
	Want     int
	Got      int
}

func (e *ArityMismatchError) Error() string {
	return fmt.Sprintf("%s expects %d argument(s), got %d", e.Function, e.Want, e.Got)
}

// GroupingError reports an aggregate projection mixed with per-row
// projections. Without grouping support the combination has no defined
// output shape, so the engine rejects it instead of guessing.
type GroupingError struct {
	Msg string
}

func NewGroupingError(format string, args ...any) *GroupingError {
	return &GroupingError{Msg: fmt.Sprintf(format, args...)}
}

func (e *GroupingError) Error() string {
	return e.Msg
}

// PartialMutationError reports a bulk INSERT/UPDATE/DELETE that halted at
// its first failing row. Rows committed before the failure stay committed;
// Position is the zero-based statement position of the failing row.
type PartialMutationError struct {
	Committed int
	Position  int
	Err       error
}

func (e *PartialMutationError) Error() string {
	return fmt.Sprintf("row %d: %v (%d row(s) committed before failure)", e.Position, e.Err, e.Committed)
}

func (e *PartialMutationError) Unwrap() error {
	return e.Err
}
