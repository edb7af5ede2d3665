// Package engine defines the structured operation and result vocabulary and
// the executor that applies one operation to an execution target.
package engine

import (
	"github.com/gridsql/gridsql/internal/record"
	"github.com/gridsql/gridsql/internal/table"
)

// Operation is the sealed set of structured statements the executor accepts.
// An external SQL translator produces these; the core never sees SQL text.
type Operation interface {
	op()
}

type CreateTable struct {
	Name    string
	Columns []record.Column
}

type Insert struct {
	Table  string
	Values record.Row
}

// Select reads rows. Columns is the projection list; empty means every
// column in schema order. Filter is optional.
type Select struct {
	Table   string
	Columns []string
	Filter  *table.Filter
}

type Update struct {
	Table   string
	Assigns []table.Assignment
	Filter  *table.Filter
}

type Delete struct {
	Table  string
	Filter *table.Filter
}

type CreateIndex struct {
	Table  string
	Column string
}

func (CreateTable) op() {}
func (Insert) op()      {}
func (Select) op()      {}
func (Update) op()      {}
func (Delete) op()      {}
func (CreateIndex) op() {}
