package record

// Row is an ordered sequence of values, one per schema column, positionally
// aligned with the owning table's schema.
type Row []Value

// Clone returns an independent copy so callers can hold rows across later
// table mutations without aliasing.
func (r Row) Clone() Row {
	cp := make(Row, len(r))
	copy(cp, r)
	return cp
}
