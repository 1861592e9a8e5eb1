package core

import "github.com/google/uuid"

// RowID is the stable, engine-assigned identifier of a row. It survives
// reordering and is never reused within a table, even after deletion.
type RowID = uuid.UUID

func NewRowID() RowID {
	return uuid.New()
}

// Row is an ordered sequence of cells matching its table's column sequence.
type Row struct {
	ID    RowID  `json:"id"`
	Cells []Cell `json:"cells"`
}

// Clone returns a deep-enough copy; cells are value types so copying the
// slice is sufficient.
func (r Row) Clone() Row {
	cells := make([]Cell, len(r.Cells))
	copy(cells, r.Cells)
	return Row{ID: r.ID, Cells: cells}
}
