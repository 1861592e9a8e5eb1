// Package fn holds the scalar and aggregator functions a projection can
// call, behind a name-keyed registry.
//
// A Scalar maps one input row's argument cells to one output cell, so a
// scalar column has exactly as many values as the projection has rows.
// An Aggregator folds a whole column (or the row count, for COUNT(*))
// into a single cell.
//
// Names resolve case-insensitively: count, Count and COUNT are the same
// function. Resolving a name the registry does not hold returns
// core.UnknownFunctionError, which the executor surfaces unchanged.
//
// Default returns a registry preloaded with the built-ins; callers can
// register their own functions next to them:
//
//	registry := fn.Default()
//	registry.RegisterScalar(myScalar)
package fn
