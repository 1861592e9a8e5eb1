package ps

import (
	"sort"

	"github.com/ferrumdb/ferrum/core"
)

// Table stores rows in insertion order and maintains the secondary
// indexes defined on it. All mutations validate against the schema
// before touching any state, so a rejected mutation changes nothing.
type Table struct {
	Database string
	Name     string
	Columns  []core.Column

	rows    map[core.RowID]core.Row
	order   []core.RowID
	indexes map[string]*Index
}

func NewTable(database string, name string, columns []core.Column) (*Table, error) {
	if len(columns) == 0 {
		return nil, core.NewSchemaError("table %s.%s must have at least one column", database, name)
	}

	seen := make(map[string]bool, len(columns))
	owned := make([]core.Column, len(columns))
	for i, column := range columns {
		if seen[column.Name] {
			return nil, core.NewSchemaError("table %s.%s declares column %s twice", database, name, column.Name)
		}
		seen[column.Name] = true

		switch column.Type {
		case core.IntType, core.FloatType, core.TextType, core.BoolType:
		default:
			return nil, core.NewSchemaError("column %s has no storable type", column.Name)
		}

		column.Position = i
		owned[i] = column
	}

	return &Table{
		Database: database,
		Name:     name,
		Columns:  owned,
		rows:     make(map[core.RowID]core.Row),
		order:    make([]core.RowID, 0),
		indexes:  make(map[string]*Index),
	}, nil
}

func (table *Table) ColumnIndex(name string) (int, error) {
	for i, column := range table.Columns {
		if column.Name == name {
			return i, nil
		}
	}
	return 0, core.NewSchemaError("table %s.%s has no column %s", table.Database, table.Name, name)
}

func (table *Table) RowCount() int {
	return len(table.order)
}

// Rows returns the rows in insertion order. Callers must not mutate the
// returned cells; they alias table storage until the next mutation.
func (table *Table) Rows() []core.Row {
	rows := make([]core.Row, 0, len(table.order))
	for _, id := range table.order {
		rows = append(rows, table.rows[id])
	}
	return rows
}

func (table *Table) Row(id core.RowID) (core.Row, bool) {
	row, exists := table.rows[id]
	return row, exists
}

func (table *Table) validate(cells []core.Cell) error {
	if len(cells) != len(table.Columns) {
		return core.NewSchemaError("table %s.%s has %d columns but %d value(s) were given",
			table.Database, table.Name, len(table.Columns), len(cells))
	}

	for i, column := range table.Columns {
		if err := column.Validate(cells[i]); err != nil {
			return err
		}
	}
	return nil
}

// Insert validates the cells, assigns a fresh RowID and stores the row.
// A validation or unique-constraint failure leaves the table unchanged.
func (table *Table) Insert(cells []core.Cell) (core.Row, error) {
	owned := make([]core.Cell, len(cells))
	copy(owned, cells)

	row := core.Row{ID: core.NewRowID(), Cells: owned}
	if err := table.InsertRow(row); err != nil {
		return core.Row{}, err
	}
	return row, nil
}

// InsertRow stores a row under its existing RowID. Snapshot restore uses
// this to keep identifiers stable across a round trip.
func (table *Table) InsertRow(row core.Row) error {
	if err := table.validate(row.Cells); err != nil {
		return err
	}

	for _, index := range table.indexes {
		if index.Conflicts(row) {
			return index.Insert(row) // refuses without mutating
		}
	}

	for _, index := range table.indexes {
		if err := index.Insert(row); err != nil {
			return err
		}
	}

	table.rows[row.ID] = row
	table.order = append(table.order, row.ID)
	return nil
}

// Update replaces the named columns of one row. The row keeps its RowID;
// every index is re-pointed from the old values to the new ones.
func (table *Table) Update(id core.RowID, sets map[string]core.Cell) error {
	old, exists := table.rows[id]
	if !exists {
		return core.NewSchemaError("table %s.%s has no row %s", table.Database, table.Name, id)
	}

	cells := make([]core.Cell, len(old.Cells))
	copy(cells, old.Cells)
	for name, value := range sets {
		position, err := table.ColumnIndex(name)
		if err != nil {
			return err
		}
		if err := table.Columns[position].Validate(value); err != nil {
			return err
		}
		cells[position] = value
	}

	updated := core.Row{ID: id, Cells: cells}
	for _, index := range table.indexes {
		if index.Conflicts(updated, id) {
			return index.Insert(updated) // refuses without mutating
		}
	}

	for _, index := range table.indexes {
		index.Remove(old)
		if err := index.Insert(updated); err != nil {
			return err
		}
	}

	table.rows[id] = updated
	return nil
}

func (table *Table) Delete(id core.RowID) error {
	row, exists := table.rows[id]
	if !exists {
		return core.NewSchemaError("table %s.%s has no row %s", table.Database, table.Name, id)
	}

	for _, index := range table.indexes {
		index.Remove(row)
	}

	delete(table.rows, id)
	for i, ordered := range table.order {
		if ordered == id {
			table.order = append(table.order[:i], table.order[i+1:]...)
			break
		}
	}
	return nil
}

// CreateIndex builds an index over the named columns from the current
// rows. A unique violation in existing data aborts the build and the
// index is not registered.
func (table *Table) CreateIndex(name string, columns []string, unique bool) (*Index, error) {
	if _, exists := table.indexes[name]; exists {
		return nil, core.NewSchemaError("index %s already exists on %s.%s", name, table.Database, table.Name)
	}
	if len(columns) == 0 {
		return nil, core.NewSchemaError("index %s must cover at least one column", name)
	}

	positions := make([]int, len(columns))
	for i, column := range columns {
		position, err := table.ColumnIndex(column)
		if err != nil {
			return nil, err
		}
		positions[i] = position
	}

	index := NewIndex(name, columns, positions, unique)
	if err := index.Build(table.Rows()); err != nil {
		return nil, err
	}

	table.indexes[name] = index
	return index, nil
}

func (table *Table) DropIndex(name string) error {
	if _, exists := table.indexes[name]; !exists {
		return core.NewSchemaError("index %s does not exist on %s.%s", name, table.Database, table.Name)
	}

	delete(table.indexes, name)
	return nil
}

func (table *Table) Index(name string) (*Index, bool) {
	index, exists := table.indexes[name]
	return index, exists
}

// EqualityIndex returns an index covering exactly the given column, if
// one exists. The executor uses it to narrow equality predicates.
func (table *Table) EqualityIndex(column string) *Index {
	names := make([]string, 0, len(table.indexes))
	for name := range table.indexes {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		index := table.indexes[name]
		if len(index.Columns) == 1 && index.Columns[0] == column {
			return index
		}
	}
	return nil
}

func (table *Table) ListIndexes() []string {
	names := make([]string, 0, len(table.indexes))
	for name := range table.indexes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
