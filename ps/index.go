package ps

import (
	"fmt"
	"strings"

	"github.com/ferrumdb/ferrum/core"
)

// keySeparator joins the encoded cells of a composite key. It cannot
// appear in an encoded cell, so distinct value tuples never collide.
const keySeparator = "\x1f"

// Index maps encoded column values to the RowIDs currently holding
// them. The owning table keeps it consistent through every mutation.
type Index struct {
	Name    string
	Columns []string
	Unique  bool

	positions []int
	entries   map[string][]core.RowID
}

func NewIndex(name string, columns []string, positions []int, unique bool) *Index {
	return &Index{
		Name:      name,
		Columns:   columns,
		Unique:    unique,
		positions: positions,
		entries:   make(map[string][]core.RowID),
	}
}

func (index *Index) keyFor(row core.Row) string {
	parts := make([]string, len(index.positions))
	for i, position := range index.positions {
		parts[i] = row.Cells[position].EncodeKey()
	}
	return strings.Join(parts, keySeparator)
}

// Build rebuilds the index from scratch over the given rows. On a unique
// violation the index is left empty and the error names the offending key.
func (index *Index) Build(rows []core.Row) error {
	index.entries = make(map[string][]core.RowID)
	for _, row := range rows {
		if err := index.Insert(row); err != nil {
			index.entries = make(map[string][]core.RowID)
			return err
		}
	}
	return nil
}

func (index *Index) Insert(row core.Row) error {
	key := index.keyFor(row)
	if index.Unique && len(index.entries[key]) > 0 {
		return fmt.Errorf("duplicate value violates unique index %s on (%s)",
			index.Name, strings.Join(index.Columns, ", "))
	}

	index.entries[key] = append(index.entries[key], row.ID)
	return nil
}

// Conflicts reports whether inserting the row would violate a unique
// constraint. Rows listed in ignore (the row being replaced during an
// update) do not count as conflicts.
func (index *Index) Conflicts(row core.Row, ignore ...core.RowID) bool {
	if !index.Unique {
		return false
	}

	for _, id := range index.entries[index.keyFor(row)] {
		ignored := false
		for _, other := range ignore {
			if id == other {
				ignored = true
				break
			}
		}
		if !ignored {
			return true
		}
	}
	return false
}

func (index *Index) Remove(row core.Row) {
	key := index.keyFor(row)
	ids := index.entries[key]
	for i, id := range ids {
		if id == row.ID {
			index.entries[key] = append(ids[:i], ids[i+1:]...)
			break
		}
	}
	if len(index.entries[key]) == 0 {
		delete(index.entries, key)
	}
}

// Lookup returns the RowIDs stored under the given value tuple. The
// tuple must have one cell per indexed column.
func (index *Index) Lookup(values []core.Cell) []core.RowID {
	parts := make([]string, len(values))
	for i, value := range values {
		parts[i] = value.EncodeKey()
	}

	ids := index.entries[strings.Join(parts, keySeparator)]
	out := make([]core.RowID, len(ids))
	copy(out, ids)
	return out
}

// Len returns the number of distinct keys in the index.
func (index *Index) Len() int {
	return len(index.entries)
}
