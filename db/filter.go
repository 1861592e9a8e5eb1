package db

import (
	"github.com/ferrumdb/ferrum/core"
	"github.com/ferrumdb/ferrum/ps"
	"github.com/ferrumdb/ferrum/sql"
)

// matchRows returns the rows of the table satisfying the WHERE clause,
// in insertion order, plus the number of rows actually scanned. A
// single-column index narrows the scan when the clause allows it.
func matchRows(table *ps.Table, where sql.WhereClause) ([]core.Row, int, error) {
	candidates := candidateRows(table, where)

	scanned := 0
	matched := make([]core.Row, 0, len(candidates))
	for _, row := range candidates {
		scanned++

		ok, err := matchesWhereClause(table, row, where)
		if err != nil {
			return nil, scanned, err
		}
		if ok {
			matched = append(matched, row)
		}
	}
	return matched, scanned, nil
}

// candidateRows narrows the scan through an index when the clause is a
// pure AND conjunction containing a non-negated equality on an indexed
// column. Anything else falls back to a full scan. The remaining
// conditions still run against every candidate.
//
// The index lookup is a membership set only: candidates are emitted by
// walking the table's insertion order, so an accelerated query returns
// rows in exactly the order a full scan would.
func candidateRows(table *ps.Table, where sql.WhereClause) []core.Row {
	for _, op := range where.LogicalOps {
		if op != sql.LogicalAnd {
			return table.Rows()
		}
	}

	for _, condition := range where.Conditions {
		if condition.Operator != sql.EqualsOperator || condition.Negated || condition.Value.IsNull() {
			continue
		}

		index := table.EqualityIndex(condition.Column)
		if index == nil {
			continue
		}

		ids := index.Lookup([]core.Cell{condition.Value})
		members := make(map[core.RowID]bool, len(ids))
		for _, id := range ids {
			members[id] = true
		}

		rows := make([]core.Row, 0, len(ids))
		for _, row := range table.Rows() {
			if members[row.ID] {
				rows = append(rows, row)
			}
		}
		return rows
	}

	return table.Rows()
}

// matchesWhereClause evaluates all conditions in the WHERE clause
func matchesWhereClause(table *ps.Table, row core.Row, where sql.WhereClause) (bool, error) {
	if len(where.Conditions) == 0 {
		return true, nil
	}

	result, err := evaluateCondition(table, row, where.Conditions[0])
	if err != nil {
		return false, err
	}

	for i := 1; i < len(where.Conditions); i++ {
		conditionResult, err := evaluateCondition(table, row, where.Conditions[i])
		if err != nil {
			return false, err
		}

		if i-1 < len(where.LogicalOps) && where.LogicalOps[i-1] == sql.LogicalOr {
			result = result || conditionResult
		} else {
			// Default to AND if no operator specified
			result = result && conditionResult
		}
	}

	return result, nil
}

// evaluateCondition evaluates a single WHERE condition. NULL cells
// satisfy only IS NULL; every comparison against NULL is false.
func evaluateCondition(table *ps.Table, row core.Row, condition sql.WhereCondition) (bool, error) {
	position, err := table.ColumnIndex(condition.Column)
	if err != nil {
		return false, err
	}
	cell := row.Cells[position]

	var result bool

	switch condition.Operator {
	case sql.IsNullOperator:
		result = cell.IsNull()
	case sql.IsNotNullOperator:
		result = !cell.IsNull()
	default:
		if cell.IsNull() || condition.Value.IsNull() {
			result = false
			break
		}

		order, err := cell.Compare(condition.Value)
		if err != nil {
			return false, err
		}

		switch condition.Operator {
		case sql.EqualsOperator:
			result = order == 0
		case sql.NotEqualsOperator:
			result = order != 0
		case sql.LessThanOperator:
			result = order < 0
		case sql.GreaterThanOperator:
			result = order > 0
		case sql.LessThanOrEqualOperator:
			result = order <= 0
		case sql.GreaterThanOrEqualOperator:
			result = order >= 0
		}
	}

	if condition.Negated {
		result = !result
	}

	return result, nil
}
