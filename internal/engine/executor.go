package engine

import (
	"fmt"
	"log/slog"

	"github.com/gridsql/gridsql/internal/record"
	"github.com/gridsql/gridsql/internal/table"
)

// Target is where operations land: a single table.Catalog, or the shard
// router fronting N of them. The executor never cares which.
type Target interface {
	CreateTable(name string, schema record.Schema) error
	CreateIndex(table, column string) error
	Insert(table string, values record.Row) error
	Select(table string, filter *table.Filter) (record.Schema, []record.Row, error)
	Update(table string, assigns []table.Assignment, filter *table.Filter) (int, error)
	Delete(table string, filter *table.Filter) (int, error)
	Names() []string
}

// Executor applies one structured Operation to its target and shapes the
// outcome into a Result. It owns no state beyond the target; access-path
// selection stays inside the table layer.
type Executor struct {
	target Target
}

func NewExecutor(target Target) *Executor {
	return &Executor{target: target}
}

// Tables lists the target's table names, for shell meta commands.
func (e *Executor) Tables() []string { return e.target.Names() }

// Execute dispatches op and returns its result, or a typed error classified
// by Kind.
func (e *Executor) Execute(op Operation) (Result, error) {
	switch op := op.(type) {
	case CreateTable:
		if err := e.target.CreateTable(op.Name, record.Schema{Cols: op.Columns}); err != nil {
			return nil, err
		}
		slog.Debug("table created", "table", op.Name, "columns", len(op.Columns))
		return Status{Message: fmt.Sprintf("table %s created", op.Name)}, nil

	case CreateIndex:
		if err := e.target.CreateIndex(op.Table, op.Column); err != nil {
			return nil, err
		}
		slog.Debug("index created", "table", op.Table, "column", op.Column)
		return Status{Message: fmt.Sprintf("index on %s.%s created", op.Table, op.Column)}, nil

	case Insert:
		if err := e.target.Insert(op.Table, op.Values); err != nil {
			return nil, err
		}
		return Count{N: 1}, nil

	case Select:
		schema, rows, err := e.target.Select(op.Table, op.Filter)
		if err != nil {
			return nil, err
		}
		return project(schema, rows, op.Columns)

	case Update:
		n, err := e.target.Update(op.Table, op.Assigns, op.Filter)
		if err != nil {
			return nil, err
		}
		return Count{N: n}, nil

	case Delete:
		n, err := e.target.Delete(op.Table, op.Filter)
		if err != nil {
			return nil, err
		}
		return Count{N: n}, nil

	default:
		return nil, fmt.Errorf("engine: unsupported operation type %T", op)
	}
}

// project narrows rows to the requested columns. An empty request means
// every column in schema order.
func project(schema record.Schema, rows []record.Row, columns []string) (Result, error) {
	if len(columns) == 0 {
		return RowSet{Columns: schema.ColumnNames(), Rows: rows}, nil
	}

	positions := make([]int, len(columns))
	for i, name := range columns {
		pos := schema.ColumnIndex(name)
		if pos < 0 {
			return nil, fmt.Errorf("%w: %q", table.ErrUnknownColumn, name)
		}
		positions[i] = pos
	}

	out := make([]record.Row, len(rows))
	for i, row := range rows {
		projected := make(record.Row, len(positions))
		for j, pos := range positions {
			projected[j] = row[pos]
		}
		out[i] = projected
	}
	return RowSet{Columns: columns, Rows: out}, nil
}
