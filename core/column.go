package core

// Column describes one column of a table schema. Position is the column's
// ordinal within the table, fixed at creation for the table's lifetime.
type Column struct {
	Name      string   `json:"name"`
	Type      CellType `json:"type"`
	Nullable  bool     `json:"nullable"`
	Position  int      `json:"position"`
	MaxLength int      `json:"maxLength,omitempty"` // text columns only; 0 = unlimited
}

// Validate checks a candidate cell against the column definition.
func (col Column) Validate(c Cell) error {
	if c.IsNull() {
		if !col.Nullable {
			return NewTypeMismatch("invalid NULL: column '%s' is not nullable", col.Name)
		}
		return nil
	}

	if !c.Matches(col.Type) {
		return NewTypeMismatch("invalid %s value for column '%s' (%s)", c.Type, col.Name, col.Type)
	}

	if col.Type == TextType && col.MaxLength > 0 && len(c.Text) > col.MaxLength {
		return NewTypeMismatch("invalid value for column '%s': exceeds max length %d", col.Name, col.MaxLength)
	}

	return nil
}
