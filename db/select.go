package db

import (
	"sort"
	"strings"
	"time"

	"github.com/ferrumdb/ferrum/core"
	"github.com/ferrumdb/ferrum/fn"
	"github.com/ferrumdb/ferrum/ps"
	"github.com/ferrumdb/ferrum/sql"
)

func (engine *Engine) executeSelectStatement(statement sql.SelectStatement) (QueryResult, error) {
	startTime := time.Now()

	table, err := engine.catalog.Table(statement.Database, statement.Table)
	if err != nil {
		return QueryResult{}, err
	}

	matched, scanned, err := matchRows(table, statement.Where)
	if err != nil {
		return QueryResult{}, err
	}

	aggregates := false
	perRow := false
	for _, item := range statement.Items {
		if item.Function != nil && engine.registry.IsAggregator(item.Function.Name) {
			aggregates = true
		} else {
			perRow = true
		}
	}
	if aggregates && perRow {
		return QueryResult{}, core.NewGroupingError(
			"cannot mix aggregate and per-row items without grouping")
	}

	var reader *ps.TableReader
	if aggregates {
		reader, err = engine.aggregateProjection(table, matched, statement.Items)
	} else {
		reader, err = engine.rowProjection(table, matched, statement)
	}
	if err != nil {
		return QueryResult{}, err
	}

	return QueryResult{
		Reader:           reader,
		RecordsRead:      reader.RowCount(),
		ExecutionTimeSec: time.Since(startTime).Seconds(),
		ExecutionOps:     scanned,
	}, nil
}

// aggregateProjection folds the matched rows into a single result row,
// one synthetic column per item. Column arguments resolve against the
// table schema; a wildcard hands the aggregator the bare row count.
func (engine *Engine) aggregateProjection(table *ps.Table, matched []core.Row, items []sql.SelectItem) (*ps.TableReader, error) {
	reader := ps.NewReader()

	for _, item := range items {
		aggregator, err := engine.registry.Aggregator(item.Function.Name)
		if err != nil {
			return nil, err
		}
		if len(item.Function.Args) != 1 {
			return nil, &core.ArityMismatchError{
				Function: item.Function.Name, Want: 1, Got: len(item.Function.Args)}
		}

		arg := item.Function.Args[0]
		var values []core.Cell
		switch {
		case arg.Wildcard:
			values = nil
		case arg.Column != "":
			position, err := table.ColumnIndex(arg.Column)
			if err != nil {
				return nil, err
			}
			values = make([]core.Cell, len(matched))
			for i, row := range matched {
				values[i] = row.Cells[position]
			}
		default:
			values = make([]core.Cell, len(matched))
			for i := range matched {
				values[i] = *arg.Value
			}
		}

		value, err := aggregator.Aggregate(values, len(matched))
		if err != nil {
			return nil, err
		}

		column := core.Column{Name: itemName(item), Type: cellColumnType(value), Nullable: true}
		if err := reader.AddAggregateColumn(column, value); err != nil {
			return nil, err
		}
	}

	return reader, nil
}

// rowProjection orders, slices and projects the matched rows, then
// appends one synthetic column per scalar item. Scalar column arguments
// resolve against the projection, not the table, so an argument column
// must itself be selected.
func (engine *Engine) rowProjection(table *ps.Table, matched []core.Row, statement sql.SelectStatement) (*ps.TableReader, error) {
	if err := orderRows(table, matched, statement.OrderBy); err != nil {
		return nil, err
	}
	matched = sliceRows(matched, statement.Offset, statement.Limit)

	var names []string
	for _, item := range statement.Items {
		if item.Function == nil {
			names = append(names, item.Column)
		}
	}

	// An empty name list projects every column, which also serves as the
	// argument source for scalar-only item lists.
	reader, err := table.Reader(names, matched)
	if err != nil {
		return nil, err
	}

	for _, item := range statement.Items {
		if item.Function == nil {
			continue
		}
		if err := engine.appendScalarColumn(reader, item); err != nil {
			return nil, err
		}
	}

	return reader, nil
}

func (engine *Engine) appendScalarColumn(reader *ps.TableReader, item sql.SelectItem) error {
	scalar, err := engine.registry.Scalar(item.Function.Name)
	if err != nil {
		return err
	}

	// Arity is checked up front so a wrong call fails even when the
	// selection is empty and the scalar never runs.
	if scalar.Arity() != fn.Variadic && len(item.Function.Args) != scalar.Arity() {
		return &core.ArityMismatchError{
			Function: scalar.Name(), Want: scalar.Arity(), Got: len(item.Function.Args)}
	}

	// Resolve column arguments once; cells vary per row.
	positions := make([]int, len(item.Function.Args))
	for i, arg := range item.Function.Args {
		switch {
		case arg.Wildcard:
			return core.NewSchemaError("wildcard not allowed inside scalar %s", item.Function.Name)
		case arg.Column != "":
			position, err := reader.ColumnIndex(arg.Column)
			if err != nil {
				return core.NewSchemaError(
					"column %s is not part of the projection; select it first", arg.Column)
			}
			positions[i] = position
		default:
			positions[i] = -1
		}
	}

	values := make([]core.Cell, reader.RowCount())
	for i := range values {
		args := make([]core.Cell, len(item.Function.Args))
		for j, arg := range item.Function.Args {
			if positions[j] >= 0 {
				args[j] = reader.Cell(i, positions[j])
			} else {
				args[j] = *arg.Value
			}
		}

		value, err := scalar.Apply(args)
		if err != nil {
			return err
		}
		values[i] = value
	}

	column := core.Column{Name: itemName(item), Type: valuesColumnType(values), Nullable: true}
	return reader.AddColumn(column, values)
}

// orderRows sorts in place by the ORDER BY columns, resolved against the
// table schema. NULL sorts before every value ascending, after it
// descending. The sort is stable, so equal keys keep insertion order.
func orderRows(table *ps.Table, rows []core.Row, orderBy []sql.OrderByClause) error {
	if len(orderBy) == 0 {
		return nil
	}

	positions := make([]int, len(orderBy))
	for i, clause := range orderBy {
		position, err := table.ColumnIndex(clause.Column)
		if err != nil {
			return err
		}
		positions[i] = position
	}

	var sortErr error
	sort.SliceStable(rows, func(i, j int) bool {
		for k, clause := range orderBy {
			a := rows[i].Cells[positions[k]]
			b := rows[j].Cells[positions[k]]

			order := 0
			switch {
			case a.IsNull() && b.IsNull():
			case a.IsNull():
				order = -1
			case b.IsNull():
				order = 1
			default:
				var err error
				order, err = a.Compare(b)
				if err != nil && sortErr == nil {
					sortErr = err
				}
			}

			if clause.Descending {
				order = -order
			}
			if order != 0 {
				return order < 0
			}
		}
		return false
	})

	return sortErr
}

// sliceRows applies OFFSET then LIMIT. Zero means unset for both.
func sliceRows(rows []core.Row, offset int, limit int) []core.Row {
	if offset > 0 {
		if offset >= len(rows) {
			return nil
		}
		rows = rows[offset:]
	}
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	return rows
}

// itemName is the output column name: the alias when given, otherwise
// the canonical function name.
func itemName(item sql.SelectItem) string {
	if item.Alias != "" {
		return item.Alias
	}
	return strings.ToUpper(item.Function.Name)
}

func cellColumnType(value core.Cell) core.CellType {
	if value.IsNull() {
		return core.TextType
	}
	return value.Type
}

func valuesColumnType(values []core.Cell) core.CellType {
	for _, value := range values {
		if !value.IsNull() {
			return value.Type
		}
	}
	return core.TextType
}
