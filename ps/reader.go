package ps

import (
	"github.com/ferrumdb/ferrum/core"
)

// TableReader is an immutable projection over a set of rows. The
// executor builds one per SELECT: cells are copied out of the table, so
// the result stays valid however the table changes afterwards.
type TableReader struct {
	columns []core.Column
	rows    [][]core.Cell
}

// NewReader returns a reader with no columns and no rows. It is the
// seed for projections built entirely from synthetic columns, such as a
// pure-aggregate SELECT.
func NewReader() *TableReader {
	return &TableReader{}
}

// ListReader builds a single-column reader holding one row per value.
// SHOW statements use it to present catalog listings as query output.
func ListReader(column core.Column, values []core.Cell) *TableReader {
	column.Position = 0
	rows := make([][]core.Cell, len(values))
	for i, value := range values {
		rows[i] = []core.Cell{value}
	}
	return &TableReader{columns: []core.Column{column}, rows: rows}
}

// Reader projects the given rows of this table onto the named columns,
// in the order the names are given. An empty name list selects every
// column in table order. Rows must belong to this table.
func (table *Table) Reader(columns []string, rows []core.Row) (*TableReader, error) {
	if len(columns) == 0 {
		columns = make([]string, len(table.Columns))
		for i, column := range table.Columns {
			columns[i] = column.Name
		}
	}

	positions := make([]int, len(columns))
	projected := make([]core.Column, len(columns))
	for i, name := range columns {
		position, err := table.ColumnIndex(name)
		if err != nil {
			return nil, err
		}
		positions[i] = position

		column := table.Columns[position]
		column.Position = i
		projected[i] = column
	}

	cells := make([][]core.Cell, len(rows))
	for i, row := range rows {
		cells[i] = make([]core.Cell, len(positions))
		for j, position := range positions {
			cells[i][j] = row.Cells[position]
		}
	}

	return &TableReader{columns: projected, rows: cells}, nil
}

func (reader *TableReader) Columns() []core.Column {
	columns := make([]core.Column, len(reader.columns))
	copy(columns, reader.columns)
	return columns
}

func (reader *TableReader) RowCount() int {
	return len(reader.rows)
}

func (reader *TableReader) Rows() [][]core.Cell {
	return reader.rows
}

// Cell returns the cell at the given row and column position.
func (reader *TableReader) Cell(row int, column int) core.Cell {
	return reader.rows[row][column]
}

func (reader *TableReader) ColumnIndex(name string) (int, error) {
	for i, column := range reader.columns {
		if column.Name == name {
			return i, nil
		}
	}
	return 0, core.NewSchemaError("projection has no column %s", name)
}

// AddColumn appends a synthetic column holding one value per existing
// row, in row order. The value count must match the row count exactly.
func (reader *TableReader) AddColumn(column core.Column, values []core.Cell) error {
	if len(values) != len(reader.rows) {
		return core.NewSchemaError("column %s has %d value(s) for %d row(s)",
			column.Name, len(values), len(reader.rows))
	}

	column.Position = len(reader.columns)
	reader.columns = append(reader.columns, column)
	for i := range reader.rows {
		reader.rows[i] = append(reader.rows[i], values[i])
	}
	return nil
}

// AddAggregateColumn appends a single-valued column. On an empty reader
// it materializes the one result row; on a one-row reader it extends
// that row. Aggregate projections never have more than one row.
func (reader *TableReader) AddAggregateColumn(column core.Column, value core.Cell) error {
	if len(reader.rows) == 0 {
		reader.rows = [][]core.Cell{{}}
	}
	if len(reader.rows) != 1 {
		return core.NewGroupingError("aggregate column %s over %d row(s)", column.Name, len(reader.rows))
	}

	column.Position = len(reader.columns)
	reader.columns = append(reader.columns, column)
	reader.rows[0] = append(reader.rows[0], value)
	return nil
}
