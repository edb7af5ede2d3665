package engine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gridsql/gridsql/internal/record"
	"github.com/gridsql/gridsql/internal/table"
)

func newExec(t *testing.T) *Executor {
	t.Helper()
	return NewExecutor(table.NewCatalog())
}

func createUsers(t *testing.T, e *Executor) {
	t.Helper()
	_, err := e.Execute(CreateTable{
		Name: "t",
		Columns: []record.Column{
			{Name: "id", Type: record.TypeInteger, PrimaryKey: true},
			{Name: "name", Type: record.TypeText, Nullable: true},
		},
	})
	require.NoError(t, err)
}

// The documented end-to-end walk: create, insert, select, index, filtered
// select, delete, and the mandatory-filter rejection at the end.
func TestExecutor_EndToEnd(t *testing.T) {
	e := newExec(t)
	createUsers(t, e)

	for _, row := range []record.Row{
		{record.Integer(1), record.Text("a")},
		{record.Integer(2), record.Text("b")},
	} {
		res, err := e.Execute(Insert{Table: "t", Values: row})
		require.NoError(t, err)
		require.Equal(t, Count{N: 1}, res)
	}

	res, err := e.Execute(Select{Table: "t"})
	require.NoError(t, err)
	rs := res.(RowSet)
	require.Equal(t, []string{"id", "name"}, rs.Columns)
	require.Equal(t, []record.Row{
		{record.Integer(1), record.Text("a")},
		{record.Integer(2), record.Text("b")},
	}, rs.Rows, "rows come back in insertion order")

	_, err = e.Execute(CreateIndex{Table: "t", Column: "name"})
	require.NoError(t, err)

	res, err = e.Execute(Select{Table: "t", Filter: &table.Filter{Column: "name", Value: record.Text("b")}})
	require.NoError(t, err)
	require.Equal(t, []record.Row{{record.Integer(2), record.Text("b")}}, res.(RowSet).Rows)

	res, err = e.Execute(Delete{Table: "t", Filter: &table.Filter{Column: "id", Value: record.Integer(1)}})
	require.NoError(t, err)
	require.Equal(t, Count{N: 1}, res)

	res, err = e.Execute(Select{Table: "t"})
	require.NoError(t, err)
	require.Equal(t, []record.Row{{record.Integer(2), record.Text("b")}}, res.(RowSet).Rows)

	_, err = e.Execute(Delete{Table: "t"})
	require.ErrorIs(t, err, table.ErrMissingFilter)

	res, err = e.Execute(Select{Table: "t"})
	require.NoError(t, err)
	require.Len(t, res.(RowSet).Rows, 1, "failed delete must not change state")
}

func TestExecutor_Projection(t *testing.T) {
	e := newExec(t)
	createUsers(t, e)
	_, err := e.Execute(Insert{Table: "t", Values: record.Row{record.Integer(1), record.Text("a")}})
	require.NoError(t, err)

	res, err := e.Execute(Select{Table: "t", Columns: []string{"name", "id"}})
	require.NoError(t, err)
	rs := res.(RowSet)
	require.Equal(t, []string{"name", "id"}, rs.Columns)
	require.Equal(t, []record.Row{{record.Text("a"), record.Integer(1)}}, rs.Rows)

	_, err = e.Execute(Select{Table: "t", Columns: []string{"ghost"}})
	require.ErrorIs(t, err, table.ErrUnknownColumn)
}

func TestExecutor_StatusMessages(t *testing.T) {
	e := newExec(t)

	res, err := e.Execute(CreateTable{Name: "t", Columns: []record.Column{
		{Name: "id", Type: record.TypeInteger, PrimaryKey: true},
	}})
	require.NoError(t, err)
	require.Equal(t, Status{Message: "table t created"}, res)

	res, err = e.Execute(CreateIndex{Table: "t", Column: "id"})
	require.Error(t, err) // pk auto-index already exists
	require.Nil(t, res)
}

func TestExecutor_Update(t *testing.T) {
	e := newExec(t)
	createUsers(t, e)
	_, err := e.Execute(Insert{Table: "t", Values: record.Row{record.Integer(1), record.Text("a")}})
	require.NoError(t, err)

	res, err := e.Execute(Update{
		Table:   "t",
		Assigns: []table.Assignment{{Column: "name", Value: record.Text("z")}},
		Filter:  &table.Filter{Column: "id", Value: record.Integer(1)},
	})
	require.NoError(t, err)
	require.Equal(t, Count{N: 1}, res)
}

func TestKind_Classification(t *testing.T) {
	e := newExec(t)
	createUsers(t, e)

	cases := []struct {
		name string
		op   Operation
		want ErrorKind
	}{
		{"unknown table", Select{Table: "nope"}, KindUnknownTable},
		{"unknown column", Select{Table: "t", Filter: &table.Filter{Column: "x"}}, KindUnknownColumn},
		{"missing filter", Update{Table: "t", Assigns: []table.Assignment{{Column: "name", Value: record.Text("v")}}}, KindMissingFilter},
		{"schema mismatch", Insert{Table: "t", Values: record.Row{record.Integer(1)}}, KindSchemaMismatch},
		{"duplicate table", CreateTable{Name: "t", Columns: usersColumns()}, KindTableAlreadyExists},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := e.Execute(tc.op)
			require.Error(t, err)
			require.Equal(t, tc.want, Kind(err))
		})
	}

	// duplicate primary key
	_, err := e.Execute(Insert{Table: "t", Values: record.Row{record.Integer(1), record.Text("a")}})
	require.NoError(t, err)
	_, err = e.Execute(Insert{Table: "t", Values: record.Row{record.Integer(1), record.Text("b")}})
	require.Equal(t, KindConstraintViolation, Kind(err))
}

func usersColumns() []record.Column {
	return []record.Column{
		{Name: "id", Type: record.TypeInteger, PrimaryKey: true},
		{Name: "name", Type: record.TypeText, Nullable: true},
	}
}
