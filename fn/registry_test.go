package fn

import (
	"errors"
	"testing"

	"github.com/ferrumdb/ferrum/core"
)

func TestResolveIsCaseInsensitive(t *testing.T) {
	registry := Default()

	for _, name := range []string{"add", "Add", "ADD"} {
		if _, err := registry.Scalar(name); err != nil {
			t.Errorf("Scalar(%q) failed: %v", name, err)
		}
	}
	for _, name := range []string{"count", "Count", "COUNT"} {
		if _, err := registry.Aggregator(name); err != nil {
			t.Errorf("Aggregator(%q) failed: %v", name, err)
		}
	}
}

func TestResolveUnknownFunction(t *testing.T) {
	registry := Default()

	_, err := registry.Scalar("NOPE")
	var unknownErr *core.UnknownFunctionError
	if !errors.As(err, &unknownErr) {
		t.Fatalf("expected UnknownFunctionError, got %v", err)
	}
	if unknownErr.Name != "NOPE" {
		t.Errorf("expected original name in error, got %s", unknownErr.Name)
	}

	if _, err := registry.Aggregator("NOPE"); !errors.As(err, &unknownErr) {
		t.Fatalf("expected UnknownFunctionError, got %v", err)
	}
}

func TestIsAggregator(t *testing.T) {
	registry := Default()

	if !registry.IsAggregator("count") {
		t.Error("COUNT should classify as aggregator")
	}
	if registry.IsAggregator("ADD") {
		t.Error("ADD should not classify as aggregator")
	}
}

func TestAddScalar(t *testing.T) {
	registry := Default()
	add, _ := registry.Scalar("ADD")

	got, err := add.Apply([]core.Cell{core.NewInt(30), core.NewInt(50)})
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if got.Type != core.IntType || got.Int != 80 {
		t.Errorf("expected INT 80, got %v", got)
	}

	got, err = add.Apply([]core.Cell{core.NewInt(1), core.NewFloat(0.5)})
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if got.Type != core.FloatType || got.Float != 1.5 {
		t.Errorf("expected FLOAT 1.5, got %v", got)
	}

	got, err = add.Apply([]core.Cell{core.Null(), core.NewInt(1)})
	if err != nil || !got.IsNull() {
		t.Errorf("expected NULL for NULL input, got %v (%v)", got, err)
	}

	var typeErr *core.TypeMismatchError
	if _, err := add.Apply([]core.Cell{core.NewText("x"), core.NewInt(1)}); !errors.As(err, &typeErr) {
		t.Errorf("expected TypeMismatchError, got %v", err)
	}

	var arityErr *core.ArityMismatchError
	if _, err := add.Apply([]core.Cell{core.NewInt(1)}); !errors.As(err, &arityErr) {
		t.Errorf("expected ArityMismatchError, got %v", err)
	}
}

func TestTextScalars(t *testing.T) {
	registry := Default()

	upper, _ := registry.Scalar("UPPER")
	got, err := upper.Apply([]core.Cell{core.NewText("alice")})
	if err != nil || got.Text != "ALICE" {
		t.Errorf("UPPER: got %v (%v)", got, err)
	}

	lower, _ := registry.Scalar("LOWER")
	got, err = lower.Apply([]core.Cell{core.NewText("ALICE")})
	if err != nil || got.Text != "alice" {
		t.Errorf("LOWER: got %v (%v)", got, err)
	}

	trim, _ := registry.Scalar("TRIM")
	got, err = trim.Apply([]core.Cell{core.NewText("  a b  ")})
	if err != nil || got.Text != "a b" {
		t.Errorf("TRIM: got %v (%v)", got, err)
	}

	length, _ := registry.Scalar("LENGTH")
	got, err = length.Apply([]core.Cell{core.NewText("alice")})
	if err != nil || got.Int != 5 {
		t.Errorf("LENGTH: got %v (%v)", got, err)
	}

	var typeErr *core.TypeMismatchError
	if _, err := upper.Apply([]core.Cell{core.NewInt(1)}); !errors.As(err, &typeErr) {
		t.Errorf("expected TypeMismatchError, got %v", err)
	}
}

func TestConcatIsVariadic(t *testing.T) {
	registry := Default()
	concat, _ := registry.Scalar("CONCAT")

	got, err := concat.Apply([]core.Cell{core.NewText("v"), core.NewInt(2), core.NewText("!")})
	if err != nil || got.Text != "v2!" {
		t.Errorf("CONCAT: got %v (%v)", got, err)
	}

	got, err = concat.Apply(nil)
	if err != nil || got.Text != "" {
		t.Errorf("CONCAT of nothing: got %v (%v)", got, err)
	}

	got, err = concat.Apply([]core.Cell{core.NewText("v"), core.Null()})
	if err != nil || !got.IsNull() {
		t.Errorf("CONCAT with NULL: got %v (%v)", got, err)
	}
}

func TestCountAggregator(t *testing.T) {
	registry := Default()
	count, _ := registry.Aggregator("COUNT")

	got, err := count.Aggregate(nil, 4)
	if err != nil || got.Int != 4 {
		t.Errorf("COUNT(*): got %v (%v)", got, err)
	}

	values := []core.Cell{core.NewInt(1), core.Null(), core.NewInt(3)}
	got, err = count.Aggregate(values, 3)
	if err != nil || got.Int != 2 {
		t.Errorf("COUNT(column): got %v (%v)", got, err)
	}
}

func TestMinMaxAggregators(t *testing.T) {
	registry := Default()
	values := []core.Cell{core.NewInt(5), core.Null(), core.NewInt(2), core.NewInt(9)}

	min, _ := registry.Aggregator("MIN")
	got, err := min.Aggregate(values, len(values))
	if err != nil || got.Int != 2 {
		t.Errorf("MIN: got %v (%v)", got, err)
	}

	max, _ := registry.Aggregator("MAX")
	got, err = max.Aggregate(values, len(values))
	if err != nil || got.Int != 9 {
		t.Errorf("MAX: got %v (%v)", got, err)
	}

	got, err = max.Aggregate([]core.Cell{core.Null()}, 1)
	if err != nil || !got.IsNull() {
		t.Errorf("MAX of all-NULL: got %v (%v)", got, err)
	}

	texts := []core.Cell{core.NewText("b"), core.NewText("a")}
	got, err = min.Aggregate(texts, 2)
	if err != nil || got.Text != "a" {
		t.Errorf("MIN over text: got %v (%v)", got, err)
	}

	var typeErr *core.TypeMismatchError
	mixed := []core.Cell{core.NewInt(1), core.NewText("a")}
	if _, err := min.Aggregate(mixed, 2); !errors.As(err, &typeErr) {
		t.Errorf("expected TypeMismatchError for mixed column, got %v", err)
	}
}

func TestSumAndAvgAggregators(t *testing.T) {
	registry := Default()

	sum, _ := registry.Aggregator("SUM")
	got, err := sum.Aggregate([]core.Cell{core.NewInt(1), core.NewInt(2), core.Null()}, 3)
	if err != nil || got.Type != core.IntType || got.Int != 3 {
		t.Errorf("SUM ints: got %v (%v)", got, err)
	}

	got, err = sum.Aggregate([]core.Cell{core.NewInt(1), core.NewFloat(0.5)}, 2)
	if err != nil || got.Type != core.FloatType || got.Float != 1.5 {
		t.Errorf("SUM mixed numerics: got %v (%v)", got, err)
	}

	got, err = sum.Aggregate(nil, 0)
	if err != nil || !got.IsNull() {
		t.Errorf("SUM of nothing: got %v (%v)", got, err)
	}

	avg, _ := registry.Aggregator("AVG")
	got, err = avg.Aggregate([]core.Cell{core.NewInt(2), core.NewInt(4), core.Null()}, 3)
	if err != nil || got.Type != core.FloatType || got.Float != 3 {
		t.Errorf("AVG: got %v (%v)", got, err)
	}

	var typeErr *core.TypeMismatchError
	if _, err := avg.Aggregate([]core.Cell{core.NewText("x")}, 1); !errors.As(err, &typeErr) {
		t.Errorf("expected TypeMismatchError, got %v", err)
	}
}

type doubleScalar struct{}

func (doubleScalar) Name() string { return "double" }
func (doubleScalar) Arity() int   { return 1 }

func (doubleScalar) Apply(args []core.Cell) (core.Cell, error) {
	return core.NewInt(args[0].Int * 2), nil
}

func TestRegisterCustomScalar(t *testing.T) {
	registry := Default()
	registry.RegisterScalar(doubleScalar{})

	scalar, err := registry.Scalar("DOUBLE")
	if err != nil {
		t.Fatalf("custom scalar not resolvable: %v", err)
	}

	got, err := scalar.Apply([]core.Cell{core.NewInt(21)})
	if err != nil || got.Int != 42 {
		t.Errorf("DOUBLE: got %v (%v)", got, err)
	}
}
