package table

import (
	"fmt"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/gridsql/gridsql/internal/record"
)

// Catalog is the set of named tables an executor runs against. One catalog
// is one shard's (or the single node's) whole universe of tables.
type Catalog struct {
	tables map[string]*Table
}

func NewCatalog() *Catalog {
	return &Catalog{tables: make(map[string]*Table)}
}

// CreateTable validates the schema and registers a fresh empty table.
func (c *Catalog) CreateTable(name string, schema record.Schema) error {
	if _, ok := c.tables[name]; ok {
		return fmt.Errorf("%w: %q", ErrTableExists, name)
	}
	t, err := New(name, schema)
	if err != nil {
		return err
	}
	c.tables[name] = t
	return nil
}

// Get resolves a table by name.
func (c *Catalog) Get(name string) (*Table, error) {
	t, ok := c.tables[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTable, name)
	}
	return t, nil
}

// Names lists the catalog's table names, sorted.
func (c *Catalog) Names() []string {
	names := maps.Keys(c.tables)
	slices.Sort(names)
	return names
}

// The methods below dispatch one operation to the named table; together with
// CreateTable and Names they make Catalog the single-node execution target.

func (c *Catalog) CreateIndex(tableName, column string) error {
	t, err := c.Get(tableName)
	if err != nil {
		return err
	}
	return t.CreateIndex(column)
}

func (c *Catalog) Insert(tableName string, values record.Row) error {
	t, err := c.Get(tableName)
	if err != nil {
		return err
	}
	_, err = t.Insert(values)
	return err
}

func (c *Catalog) Select(tableName string, filter *Filter) (record.Schema, []record.Row, error) {
	t, err := c.Get(tableName)
	if err != nil {
		return record.Schema{}, nil, err
	}
	rows, err := t.Select(filter)
	return t.Schema(), rows, err
}

func (c *Catalog) Update(tableName string, assigns []Assignment, filter *Filter) (int, error) {
	t, err := c.Get(tableName)
	if err != nil {
		return 0, err
	}
	return t.Update(assigns, filter)
}

func (c *Catalog) Delete(tableName string, filter *Filter) (int, error) {
	t, err := c.Get(tableName)
	if err != nil {
		return 0, err
	}
	return t.Delete(filter)
}
