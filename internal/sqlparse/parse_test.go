package sqlparse

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gridsql/gridsql/internal/engine"
	"github.com/gridsql/gridsql/internal/record"
	"github.com/gridsql/gridsql/internal/table"
)

func TestParse_CreateTable(t *testing.T) {
	op, err := Parse("CREATE TABLE users (id INTEGER PRIMARY KEY, name TEXT, score FLOAT NOT NULL, ok BOOLEAN);")
	require.NoError(t, err)

	ct := op.(engine.CreateTable)
	require.Equal(t, "users", ct.Name)
	require.Equal(t, []record.Column{
		{Name: "id", Type: record.TypeInteger, PrimaryKey: true, Nullable: false},
		{Name: "name", Type: record.TypeText, Nullable: true},
		{Name: "score", Type: record.TypeFloat, Nullable: false},
		{Name: "ok", Type: record.TypeBoolean, Nullable: true},
	}, ct.Columns)
}

func TestParse_CreateIndex(t *testing.T) {
	op, err := Parse("CREATE INDEX idx_name ON users (name);")
	require.NoError(t, err)
	require.Equal(t, engine.CreateIndex{Table: "users", Column: "name"}, op)

	// index name is optional
	op, err = Parse("create index on users (name);")
	require.NoError(t, err)
	require.Equal(t, engine.CreateIndex{Table: "users", Column: "name"}, op)
}

func TestParse_Insert(t *testing.T) {
	op, err := Parse("INSERT INTO users VALUES (1, 'it''s fine', 2.5, true, NULL);")
	require.NoError(t, err)

	ins := op.(engine.Insert)
	require.Equal(t, "users", ins.Table)
	require.Equal(t, record.Row{
		record.Integer(1),
		record.Text("it's fine"),
		record.Float(2.5),
		record.Boolean(true),
		record.Null(),
	}, ins.Values)
}

func TestParse_Select(t *testing.T) {
	cases := []struct {
		name string
		sql  string
		want engine.Select
	}{
		{
			"star no filter",
			"SELECT * FROM users;",
			engine.Select{Table: "users"},
		},
		{
			"star with filter",
			"SELECT * FROM users WHERE id = 2;",
			engine.Select{Table: "users", Filter: &table.Filter{Column: "id", Value: record.Integer(2)}},
		},
		{
			"projection",
			"SELECT name, id FROM users WHERE name = 'b';",
			engine.Select{
				Table:   "users",
				Columns: []string{"name", "id"},
				Filter:  &table.Filter{Column: "name", Value: record.Text("b")},
			},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			op, err := Parse(tc.sql)
			require.NoError(t, err)
			require.Equal(t, tc.want, op)
		})
	}
}

func TestParse_Update(t *testing.T) {
	op, err := Parse("UPDATE users SET name = 'x', score = -1.25 WHERE id = 3;")
	require.NoError(t, err)

	up := op.(engine.Update)
	require.Equal(t, "users", up.Table)
	require.Equal(t, []table.Assignment{
		{Column: "name", Value: record.Text("x")},
		{Column: "score", Value: record.Float(-1.25)},
	}, up.Assigns)
	require.Equal(t, &table.Filter{Column: "id", Value: record.Integer(3)}, up.Filter)
}

func TestParse_Delete(t *testing.T) {
	op, err := Parse("DELETE FROM users WHERE id = 1;")
	require.NoError(t, err)
	require.Equal(t, engine.Delete{
		Table:  "users",
		Filter: &table.Filter{Column: "id", Value: record.Integer(1)},
	}, op)
}

func TestParse_Errors(t *testing.T) {
	cases := []struct {
		name string
		sql  string
	}{
		{"empty", "   "},
		{"no terminator", "SELECT * FROM users"},
		{"update without where", "UPDATE users SET name = 'x';"},
		{"delete without where", "DELETE FROM users;"},
		{"unknown statement", "DROP TABLE users;"},
		{"unknown type", "CREATE TABLE t (a BLOB);"},
		{"bad literal", "INSERT INTO t VALUES (id);"},
		{"unterminated string", "INSERT INTO t VALUES ('abc);"},
		{"trailing input", "SELECT * FROM users; garbage"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(tc.sql)
			require.Error(t, err)
		})
	}
}

func TestParse_KeywordsCaseInsensitive(t *testing.T) {
	op, err := Parse("select * from users where id = 1;")
	require.NoError(t, err)
	require.IsType(t, engine.Select{}, op)
}
