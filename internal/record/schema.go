package record

type Column struct {
	Name       string
	Type       DataType
	PrimaryKey bool
	Nullable   bool
}

type Schema struct {
	Cols []Column
}

func (s Schema) NumCols() int { return len(s.Cols) }

// ColumnIndex resolves a column name to its position, -1 when absent.
func (s Schema) ColumnIndex(name string) int {
	for i := range s.Cols {
		if s.Cols[i].Name == name {
			return i
		}
	}
	return -1
}

// PrimaryKey returns the position of the primary-key column, ok=false when
// the schema declares none.
func (s Schema) PrimaryKey() (int, bool) {
	for i := range s.Cols {
		if s.Cols[i].PrimaryKey {
			return i, true
		}
	}
	return -1, false
}

// ColumnNames lists the column names in declaration order, the order used for
// display and for resolving SELECT *.
func (s Schema) ColumnNames() []string {
	names := make([]string, len(s.Cols))
	for i := range s.Cols {
		names[i] = s.Cols[i].Name
	}
	return names
}
