package index

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gridsql/gridsql/internal/heap"
	"github.com/gridsql/gridsql/internal/record"
)

func rid(page uint32, slot uint16) heap.RowID {
	return heap.RowID{Page: page, Slot: slot}
}

func TestIndex_InsertLookup(t *testing.T) {
	ix := New("name")
	require.Equal(t, "name", ix.Column())

	ix.Insert(record.Text("a"), rid(0, 0))
	ix.Insert(record.Text("b"), rid(0, 1))
	ix.Insert(record.Text("a"), rid(0, 2)) // duplicate key

	require.Equal(t, 2, ix.Len())
	require.Equal(t, []heap.RowID{rid(0, 0), rid(0, 2)}, ix.Lookup(record.Text("a")))
	require.Equal(t, []heap.RowID{rid(0, 1)}, ix.Lookup(record.Text("b")))
	require.Empty(t, ix.Lookup(record.Text("missing")))
}

func TestIndex_RemoveDropsEmptyKey(t *testing.T) {
	ix := New("id")
	ix.Insert(record.Integer(1), rid(0, 0))
	ix.Insert(record.Integer(1), rid(0, 1))

	ix.Remove(record.Integer(1), rid(0, 0))
	require.Equal(t, 1, ix.Len())
	require.Equal(t, []heap.RowID{rid(0, 1)}, ix.Lookup(record.Integer(1)))

	ix.Remove(record.Integer(1), rid(0, 1))
	require.Equal(t, 0, ix.Len())
	require.Empty(t, ix.Lookup(record.Integer(1)))

	// removing an absent pair is a no-op
	ix.Remove(record.Integer(42), rid(9, 9))
	require.Equal(t, 0, ix.Len())
}

func TestIndex_RangeInclusive(t *testing.T) {
	ix := New("id")
	for i := 0; i < 10; i++ {
		ix.Insert(record.Integer(int64(i)), rid(0, uint16(i)))
	}

	got := ix.Range(record.Integer(3), record.Integer(6))
	require.Equal(t, []heap.RowID{rid(0, 3), rid(0, 4), rid(0, 5), rid(0, 6)}, got)

	// bounds beyond the keyspace clamp naturally
	require.Len(t, ix.Range(record.Integer(-5), record.Integer(100)), 10)
	require.Empty(t, ix.Range(record.Integer(50), record.Integer(60)))
}

func TestIndex_FloatKeysUseScaledOrder(t *testing.T) {
	ix := New("price")
	ix.Insert(record.Float(1.5), rid(0, 0))
	ix.Insert(record.Float(0.75), rid(0, 1))
	ix.Insert(record.Float(2.25), rid(0, 2))

	got := ix.Range(record.Float(0.5), record.Float(2.0))
	require.Equal(t, []heap.RowID{rid(0, 1), rid(0, 0)}, got)

	// equal within fixed precision hits the same key
	require.Equal(t, []heap.RowID{rid(0, 0)}, ix.Lookup(record.Float(1.5004)))
}

func TestIndex_LookupReturnsCopy(t *testing.T) {
	ix := New("id")
	ix.Insert(record.Integer(1), rid(0, 0))
	ix.Insert(record.Integer(1), rid(0, 1))

	got := ix.Lookup(record.Integer(1))
	got[0] = rid(9, 9)
	require.Equal(t, []heap.RowID{rid(0, 0), rid(0, 1)}, ix.Lookup(record.Integer(1)))
}
