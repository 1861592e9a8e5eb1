package fn

import (
	"strings"

	"github.com/ferrumdb/ferrum/core"
)

// Scalar computes one output cell from one row's argument cells.
type Scalar interface {
	Name() string

	// Arity is the required argument count, or Variadic.
	Arity() int

	Apply(args []core.Cell) (core.Cell, error)
}

// Aggregator folds a column of cells into a single cell. The rowCount is
// the number of rows the values were drawn from, before any non-null
// filtering the aggregator itself applies.
type Aggregator interface {
	Name() string
	Aggregate(values []core.Cell, rowCount int) (core.Cell, error)
}

// Variadic marks a scalar that accepts any number of arguments.
const Variadic = -1

// Registry resolves function names to implementations. Lookups are
// case-insensitive; registration canonicalizes names to upper case.
type Registry struct {
	scalars     map[string]Scalar
	aggregators map[string]Aggregator
}

func NewRegistry() *Registry {
	return &Registry{
		scalars:     make(map[string]Scalar),
		aggregators: make(map[string]Aggregator),
	}
}

// Default returns a registry holding every built-in function.
func Default() *Registry {
	registry := NewRegistry()

	registry.RegisterScalar(addScalar{})
	registry.RegisterScalar(upperScalar{})
	registry.RegisterScalar(lowerScalar{})
	registry.RegisterScalar(lengthScalar{})
	registry.RegisterScalar(trimScalar{})
	registry.RegisterScalar(concatScalar{})

	registry.RegisterAggregator(countAggregator{})
	registry.RegisterAggregator(minAggregator{})
	registry.RegisterAggregator(maxAggregator{})
	registry.RegisterAggregator(sumAggregator{})
	registry.RegisterAggregator(avgAggregator{})

	return registry
}

func (registry *Registry) RegisterScalar(scalar Scalar) {
	registry.scalars[strings.ToUpper(scalar.Name())] = scalar
}

func (registry *Registry) RegisterAggregator(aggregator Aggregator) {
	registry.aggregators[strings.ToUpper(aggregator.Name())] = aggregator
}

func (registry *Registry) Scalar(name string) (Scalar, error) {
	scalar, exists := registry.scalars[strings.ToUpper(name)]
	if !exists {
		return nil, &core.UnknownFunctionError{Name: name}
	}
	return scalar, nil
}

func (registry *Registry) Aggregator(name string) (Aggregator, error) {
	aggregator, exists := registry.aggregators[strings.ToUpper(name)]
	if !exists {
		return nil, &core.UnknownFunctionError{Name: name}
	}
	return aggregator, nil
}

// IsAggregator reports whether the name resolves to an aggregator. The
// executor uses this to classify projection items before running them.
func (registry *Registry) IsAggregator(name string) bool {
	_, exists := registry.aggregators[strings.ToUpper(name)]
	return exists
}

// checkArity enforces a scalar's declared argument count.
func checkArity(scalar Scalar, args []core.Cell) error {
	if scalar.Arity() == Variadic {
		return nil
	}
	if len(args) != scalar.Arity() {
		return &core.ArityMismatchError{Function: scalar.Name(), Want: scalar.Arity(), Got: len(args)}
	}
	return nil
}
