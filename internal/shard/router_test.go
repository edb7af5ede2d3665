package shard

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gridsql/gridsql/internal/record"
	"github.com/gridsql/gridsql/internal/table"
)

func usersSchema() record.Schema {
	return record.Schema{Cols: []record.Column{
		{Name: "id", Type: record.TypeInteger, PrimaryKey: true},
		{Name: "name", Type: record.TypeText, Nullable: true},
	}}
}

func newTestRouter(t *testing.T, n int) *Router {
	t.Helper()
	r, err := NewRouter(n)
	require.NoError(t, err)
	require.NoError(t, r.CreateTable("users", usersSchema()))
	return r
}

func insertUsers(t *testing.T, r *Router, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		require.NoError(t, r.Insert("users", record.Row{
			record.Integer(int64(i)), record.Text(fmt.Sprintf("u-%d", i)),
		}))
	}
}

func TestNewRouter_RejectsBadCount(t *testing.T) {
	_, err := NewRouter(0)
	require.Error(t, err)
	_, err = NewRouter(-3)
	require.Error(t, err)
}

func TestShardFor_Deterministic(t *testing.T) {
	keys := []record.Value{
		record.Integer(42),
		record.Integer(-42),
		record.Float(3.25),
		record.Text("alice"),
		record.Boolean(true),
		record.Null(),
	}
	for _, n := range []int{1, 2, 4, 7} {
		for _, k := range keys {
			first := shardFor(k, n)
			require.GreaterOrEqual(t, first, 0)
			require.Less(t, first, n)
			for i := 0; i < 100; i++ {
				require.Equal(t, first, shardFor(k, n), "hash must be pure for %s mod %d", k, n)
			}
		}
	}
}

func TestShardFor_EqualValuesHashAlike(t *testing.T) {
	// fixed-precision floats in the same milli-bucket are the same key,
	// so they must land on the same shard
	require.Equal(t, shardFor(record.Float(1.5), 8), shardFor(record.Float(1.5004), 8))
}

func TestRouter_DDLBroadcast(t *testing.T) {
	r := newTestRouter(t, 4)
	require.NoError(t, r.CreateIndex("users", "name"))

	for i, c := range r.shards {
		tbl, err := c.Get("users")
		require.NoError(t, err, "shard %d missing table", i)
		require.True(t, tbl.HasIndex("name"), "shard %d missing index", i)
	}

	// a failing shard fails the broadcast: duplicate index everywhere
	require.ErrorIs(t, r.CreateIndex("users", "name"), table.ErrIndexExists)
	require.ErrorIs(t, r.CreateTable("users", usersSchema()), table.ErrTableExists)
}

func TestRouter_InsertRoutesByKey(t *testing.T) {
	r := newTestRouter(t, 4)
	insertUsers(t, r, 100)

	total := 0
	for i, c := range r.shards {
		tbl, err := c.Get("users")
		require.NoError(t, err)
		total += tbl.Len()

		// every row on this shard must hash here
		_, rows, err := c.Select("users", nil)
		require.NoError(t, err)
		for _, row := range rows {
			require.Equal(t, i, shardFor(row[0], 4), "row %s on wrong shard", row[0])
		}
	}
	require.Equal(t, 100, total)
}

// Scatter-gather completeness: the merged unfiltered select equals the union
// of querying every shard directly.
func TestRouter_ScatterGatherCompleteness(t *testing.T) {
	r := newTestRouter(t, 4)
	insertUsers(t, r, 100)

	_, merged, err := r.Select("users", nil)
	require.NoError(t, err)

	var union []record.Row
	for _, c := range r.shards {
		_, rows, err := c.Select("users", nil)
		require.NoError(t, err)
		union = append(union, rows...)
	}

	require.Len(t, merged, 100)
	require.ElementsMatch(t, union, merged)

	// concatenation is in shard-id order, not globally re-sorted
	require.Equal(t, union, merged)
}

func TestRouter_KeyFilterRoutesToOneShard(t *testing.T) {
	r := newTestRouter(t, 4)
	insertUsers(t, r, 50)

	routedBefore, scatteredBefore, _ := r.Counters()

	_, rows, err := r.Select("users", &table.Filter{Column: "id", Value: record.Integer(7)})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, record.Text("u-7"), rows[0][1])

	routed, scattered, _ := r.Counters()
	require.Equal(t, routedBefore+1, routed)
	require.Equal(t, scatteredBefore, scattered)

	// non-key filter scatter-gathers instead
	_, rows, err = r.Select("users", &table.Filter{Column: "name", Value: record.Text("u-7")})
	require.NoError(t, err)
	require.Len(t, rows, 1)

	_, scatteredAfter, _ := r.Counters()
	require.Equal(t, scattered+1, scatteredAfter)
}

func TestRouter_UpdateAndDelete(t *testing.T) {
	r := newTestRouter(t, 3)
	insertUsers(t, r, 30)

	// routed update
	n, err := r.Update("users",
		[]table.Assignment{{Column: "name", Value: record.Text("renamed")}},
		&table.Filter{Column: "id", Value: record.Integer(5)})
	require.NoError(t, err)
	require.Equal(t, 1, n)

	// scattered update on a non-key column
	n, err = r.Update("users",
		[]table.Assignment{{Column: "name", Value: record.Text("renamed")}},
		&table.Filter{Column: "name", Value: record.Text("u-6")})
	require.NoError(t, err)
	require.Equal(t, 1, n)

	// scattered delete sums counts across shards
	n, err = r.Delete("users", &table.Filter{Column: "name", Value: record.Text("renamed")})
	require.NoError(t, err)
	require.Equal(t, 2, n)

	_, rows, err := r.Select("users", nil)
	require.NoError(t, err)
	require.Len(t, rows, 28)
}

func TestRouter_MissingFilterSurfaces(t *testing.T) {
	r := newTestRouter(t, 3)
	insertUsers(t, r, 3)

	_, err := r.Update("users", []table.Assignment{{Column: "name", Value: record.Text("x")}}, nil)
	require.ErrorIs(t, err, table.ErrMissingFilter)
	_, err = r.Delete("users", nil)
	require.ErrorIs(t, err, table.ErrMissingFilter)

	_, rows, err := r.Select("users", nil)
	require.NoError(t, err)
	require.Len(t, rows, 3, "failed mutations must not change state")
}

func TestRouter_UnknownTable(t *testing.T) {
	r := newTestRouter(t, 2)
	require.ErrorIs(t, r.Insert("ghost", record.Row{record.Integer(1)}), table.ErrUnknownTable)
	_, _, err := r.Select("ghost", nil)
	require.ErrorIs(t, err, table.ErrUnknownTable)
	_, err = r.Stats("ghost")
	require.ErrorIs(t, err, table.ErrUnknownTable)
}

func TestRouter_Stats(t *testing.T) {
	r := newTestRouter(t, 4)
	insertUsers(t, r, 40)

	counts, err := r.Stats("users")
	require.NoError(t, err)
	require.Len(t, counts, 4)

	total := 0
	for _, n := range counts {
		total += n
	}
	require.Equal(t, 40, total)
}

func TestRouter_SingleShardDegenerate(t *testing.T) {
	r := newTestRouter(t, 1)
	insertUsers(t, r, 10)

	_, rows, err := r.Select("users", nil)
	require.NoError(t, err)
	require.Len(t, rows, 10)

	counts, err := r.Stats("users")
	require.NoError(t, err)
	require.Equal(t, []int{10}, counts)
}
