// Package index provides the per-column ordered secondary index: a sorted
// map from column value to the row locations holding that value.
package index

import (
	"github.com/google/btree"

	"github.com/gridsql/gridsql/internal/heap"
	"github.com/gridsql/gridsql/internal/record"
)

const btreeDegree = 32

// entry groups every RowID carrying the same key. IDs keep insertion order;
// duplicates across rows are allowed, the table layer enforces primary-key
// uniqueness before inserting.
type entry struct {
	key record.Value
	ids []heap.RowID
}

// Index is an ordered key-to-locations structure for one column, backed by an
// in-memory B-tree keyed by the fixed-precision Value order. All operations
// are O(log n) in the number of distinct keys.
type Index struct {
	column string
	tree   *btree.BTreeG[*entry]
}

func New(column string) *Index {
	return &Index{
		column: column,
		tree: btree.NewG(btreeDegree, func(a, b *entry) bool {
			return a.key.Compare(b.key) < 0
		}),
	}
}

// Column is the indexed column's name.
func (ix *Index) Column() string { return ix.column }

// Len is the number of distinct keys.
func (ix *Index) Len() int { return ix.tree.Len() }

// Insert records that the row at id holds key.
func (ix *Index) Insert(key record.Value, id heap.RowID) {
	if e, ok := ix.tree.Get(&entry{key: key}); ok {
		e.ids = append(e.ids, id)
		return
	}
	ix.tree.ReplaceOrInsert(&entry{key: key, ids: []heap.RowID{id}})
}

// Remove drops the (key, id) pair; the key itself is dropped once its last
// id goes. Removing an absent pair is a no-op.
func (ix *Index) Remove(key record.Value, id heap.RowID) {
	e, ok := ix.tree.Get(&entry{key: key})
	if !ok {
		return
	}
	for i := range e.ids {
		if e.ids[i] == id {
			e.ids = append(e.ids[:i], e.ids[i+1:]...)
			break
		}
	}
	if len(e.ids) == 0 {
		ix.tree.Delete(e)
	}
}

// Lookup returns the locations of every row holding key, empty when absent.
func (ix *Index) Lookup(key record.Value) []heap.RowID {
	e, ok := ix.tree.Get(&entry{key: key})
	if !ok {
		return nil
	}
	out := make([]heap.RowID, len(e.ids))
	copy(out, e.ids)
	return out
}

// Range returns the locations of rows whose key falls in [low, high],
// inclusive on both bounds, in ascending key order.
func (ix *Index) Range(low, high record.Value) []heap.RowID {
	var out []heap.RowID
	ix.tree.AscendGreaterOrEqual(&entry{key: low}, func(e *entry) bool {
		if e.key.Compare(high) > 0 {
			return false
		}
		out = append(out, e.ids...)
		return true
	})
	return out
}
