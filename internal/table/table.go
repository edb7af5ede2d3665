// Package table implements the storage engine's central unit: a schema,
// a page store, and the secondary indexes kept exactly in sync with it.
package table

import (
	"fmt"

	"github.com/gridsql/gridsql/internal/heap"
	"github.com/gridsql/gridsql/internal/index"
	"github.com/gridsql/gridsql/internal/record"
)

// Table owns one schema, one page store, and one index per indexed column.
// Every mutation keeps the indexes exact: after any method returns, the
// key-to-location mapping of each index equals the live rows' contents.
// Methods are not safe for concurrent use; a host that shares a table across
// goroutines must treat each call as a critical section.
type Table struct {
	name    string
	schema  record.Schema
	store   *heap.Store
	indexes map[string]*index.Index
	pk      int // position of the primary-key column, -1 when none
}

// New validates the schema and builds an empty table. A declared primary key
// is indexed from the start.
func New(name string, schema record.Schema) (*Table, error) {
	if schema.NumCols() == 0 {
		return nil, fmt.Errorf("%w: table %q has no columns", ErrSchemaMismatch, name)
	}
	seen := make(map[string]bool, schema.NumCols())
	pk := -1
	for i, col := range schema.Cols {
		if seen[col.Name] {
			return nil, fmt.Errorf("%w: duplicate column %q", ErrSchemaMismatch, col.Name)
		}
		seen[col.Name] = true
		if col.PrimaryKey {
			if pk >= 0 {
				return nil, fmt.Errorf("%w: more than one primary key", ErrSchemaMismatch)
			}
			pk = i
		}
	}

	t := &Table{
		name:    name,
		schema:  schema,
		store:   heap.NewStore(),
		indexes: make(map[string]*index.Index),
		pk:      pk,
	}
	if pk >= 0 {
		col := schema.Cols[pk].Name
		t.indexes[col] = index.New(col)
	}
	return t, nil
}

func (t *Table) Name() string          { return t.name }
func (t *Table) Schema() record.Schema { return t.schema }

// Len is the number of live rows.
func (t *Table) Len() int { return t.store.Len() }

// HasIndex reports whether column is indexed.
func (t *Table) HasIndex(column string) bool {
	_, ok := t.indexes[column]
	return ok
}

// Insert validates values against the schema, enforces primary-key
// uniqueness, then appends the row and registers it in every index.
// Returns the table's new live row count.
func (t *Table) Insert(values record.Row) (int, error) {
	if err := t.checkRow(values); err != nil {
		return t.store.Len(), err
	}
	if t.pk >= 0 {
		key := values[t.pk]
		pkIdx := t.indexes[t.schema.Cols[t.pk].Name]
		if len(pkIdx.Lookup(key)) > 0 {
			return t.store.Len(), fmt.Errorf("%w: duplicate primary key %s", ErrConstraintViolation, key)
		}
	}

	id := t.store.Append(values.Clone())
	for col, ix := range t.indexes {
		ix.Insert(values[t.schema.ColumnIndex(col)], id)
	}
	return t.store.Len(), nil
}

// Select returns the rows matching filter, all live rows when filter is nil.
// A filter on an indexed column goes through the index; anything else is a
// full scan. Rows come back in page order (index path: key lookup order).
func (t *Table) Select(filter *Filter) ([]record.Row, error) {
	ids, err := t.match(filter)
	if err != nil {
		return nil, err
	}
	rows := make([]record.Row, 0, len(ids))
	for _, id := range ids {
		row, err := t.store.Get(id)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row.Clone())
	}
	return rows, nil
}

// Update applies the assignments to every row matching filter, migrating
// index entries for any touched indexed column. The filter is mandatory.
// Rows apply in match order; on a primary-key collision the batch stops,
// rows already applied stay applied, and the partial count is returned with
// the error.
func (t *Table) Update(assigns []Assignment, filter *Filter) (int, error) {
	if filter == nil {
		return 0, ErrMissingFilter
	}
	if len(assigns) == 0 {
		return 0, fmt.Errorf("%w: no assignments", ErrSchemaMismatch)
	}
	positions := make([]int, len(assigns))
	for i, a := range assigns {
		pos := t.schema.ColumnIndex(a.Column)
		if pos < 0 {
			return 0, fmt.Errorf("%w: %q", ErrUnknownColumn, a.Column)
		}
		if err := t.checkValue(pos, a.Value); err != nil {
			return 0, err
		}
		positions[i] = pos
	}

	ids, err := t.match(filter)
	if err != nil {
		return 0, err
	}

	updated := 0
	for _, id := range ids {
		old, err := t.store.Get(id)
		if err != nil {
			return updated, err
		}
		next := old.Clone()
		for i, a := range assigns {
			next[positions[i]] = a.Value
		}

		if t.pk >= 0 && !next[t.pk].Equal(old[t.pk]) {
			pkIdx := t.indexes[t.schema.Cols[t.pk].Name]
			if len(pkIdx.Lookup(next[t.pk])) > 0 {
				return updated, fmt.Errorf("%w: duplicate primary key %s", ErrConstraintViolation, next[t.pk])
			}
		}

		if err := t.store.Replace(id, next); err != nil {
			return updated, err
		}
		for col, ix := range t.indexes {
			pos := t.schema.ColumnIndex(col)
			if next[pos].Equal(old[pos]) {
				continue
			}
			ix.Remove(old[pos], id)
			ix.Insert(next[pos], id)
		}
		updated++
	}
	return updated, nil
}

// Delete removes every row matching filter along with all of its index
// entries. The filter is mandatory.
func (t *Table) Delete(filter *Filter) (int, error) {
	if filter == nil {
		return 0, ErrMissingFilter
	}
	ids, err := t.match(filter)
	if err != nil {
		return 0, err
	}

	deleted := 0
	for _, id := range ids {
		row, err := t.store.Get(id)
		if err != nil {
			return deleted, err
		}
		for col, ix := range t.indexes {
			ix.Remove(row[t.schema.ColumnIndex(col)], id)
		}
		if err := t.store.Delete(id); err != nil {
			return deleted, err
		}
		deleted++
	}
	return deleted, nil
}

// CreateIndex builds a fresh index on column, backfilled from every live row
// in one scan.
func (t *Table) CreateIndex(column string) error {
	pos := t.schema.ColumnIndex(column)
	if pos < 0 {
		return fmt.Errorf("%w: %q", ErrUnknownColumn, column)
	}
	if _, ok := t.indexes[column]; ok {
		return fmt.Errorf("%w: %q on %q", ErrIndexExists, column, t.name)
	}

	ix := index.New(column)
	_ = t.store.Scan(func(id heap.RowID, row record.Row) error {
		ix.Insert(row[pos], id)
		return nil
	})
	t.indexes[column] = ix
	return nil
}

// match resolves filter to the RowIDs of matching live rows, picking the
// access path: index lookup when the filter column is indexed, full scan
// otherwise. A nil filter matches everything.
func (t *Table) match(filter *Filter) ([]heap.RowID, error) {
	if filter == nil {
		var ids []heap.RowID
		_ = t.store.Scan(func(id heap.RowID, _ record.Row) error {
			ids = append(ids, id)
			return nil
		})
		return ids, nil
	}

	pos := t.schema.ColumnIndex(filter.Column)
	if pos < 0 {
		return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, filter.Column)
	}
	if ix, ok := t.indexes[filter.Column]; ok {
		return ix.Lookup(filter.Value), nil
	}

	var ids []heap.RowID
	_ = t.store.Scan(func(id heap.RowID, row record.Row) error {
		if row[pos].Equal(filter.Value) {
			ids = append(ids, id)
		}
		return nil
	})
	return ids, nil
}

// checkRow validates arity and per-column types for a full row.
func (t *Table) checkRow(values record.Row) error {
	if len(values) != t.schema.NumCols() {
		return fmt.Errorf("%w: expected %d values, got %d", ErrSchemaMismatch, t.schema.NumCols(), len(values))
	}
	for i := range values {
		if err := t.checkValue(i, values[i]); err != nil {
			return err
		}
	}
	return nil
}

// checkValue validates one value against the column at pos. Null is allowed
// only in nullable, non-primary-key columns.
func (t *Table) checkValue(pos int, v record.Value) error {
	col := t.schema.Cols[pos]
	if v.IsNull() {
		if col.PrimaryKey || !col.Nullable {
			return fmt.Errorf("%w: column %q is NOT NULL", ErrSchemaMismatch, col.Name)
		}
		return nil
	}
	if !v.MatchesType(col.Type) {
		return fmt.Errorf("%w: column %q expects %s", ErrSchemaMismatch, col.Name, col.Type)
	}
	return nil
}
