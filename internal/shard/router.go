// Package shard distributes tables across N independent catalogs by hashing
// a per-table shard key, scatter-gathering operations the key cannot route.
package shard

import (
	"fmt"

	"github.com/sourcegraph/conc"
	"go.uber.org/atomic"
	"go.uber.org/multierr"

	"github.com/gridsql/gridsql/internal/record"
	"github.com/gridsql/gridsql/internal/table"
)

// shardKey is the column a table routes on: its primary key when declared,
// the first column otherwise.
type shardKey struct {
	column string
	pos    int
}

// Router owns N catalogs holding disjoint hash-partitioned slices of every
// table. DDL broadcasts to all shards so schemas stay identical; key-bound
// operations go to exactly one shard; everything else scatter-gathers.
// N is fixed for the process lifetime.
type Router struct {
	shards []*table.Catalog
	keys   map[string]shardKey

	routed    atomic.Int64
	scattered atomic.Int64
	broadcast atomic.Int64
}

func NewRouter(n int) (*Router, error) {
	if n < 1 {
		return nil, fmt.Errorf("shard: shard count must be >= 1, got %d", n)
	}
	shards := make([]*table.Catalog, n)
	for i := range shards {
		shards[i] = table.NewCatalog()
	}
	return &Router{
		shards: shards,
		keys:   make(map[string]shardKey),
	}, nil
}

// ShardCount is N.
func (r *Router) ShardCount() int { return len(r.shards) }

// Names lists table names; shard 0 is authoritative since DDL broadcasts.
func (r *Router) Names() []string { return r.shards[0].Names() }

// CreateTable broadcasts the DDL to every shard and records the table's
// shard key.
func (r *Router) CreateTable(name string, schema record.Schema) error {
	if err := r.everyShard(func(c *table.Catalog) error {
		return c.CreateTable(name, schema)
	}); err != nil {
		return err
	}
	pos, ok := schema.PrimaryKey()
	if !ok {
		pos = 0
	}
	r.keys[name] = shardKey{column: schema.Cols[pos].Name, pos: pos}
	return nil
}

// CreateIndex broadcasts to every shard.
func (r *Router) CreateIndex(tableName, column string) error {
	return r.everyShard(func(c *table.Catalog) error {
		return c.CreateIndex(tableName, column)
	})
}

// Insert routes the row by its shard-key value.
func (r *Router) Insert(tableName string, values record.Row) error {
	key, ok := r.keys[tableName]
	if !ok {
		return fmt.Errorf("%w: %q", table.ErrUnknownTable, tableName)
	}
	if key.pos >= len(values) {
		// Short row; let the shard's arity check produce the real error.
		return r.shards[0].Insert(tableName, values)
	}
	r.routed.Inc()
	return r.shards[shardFor(values[key.pos], len(r.shards))].Insert(tableName, values)
}

// Select routes when the filter hits the shard key, scatter-gathers
// otherwise. Gathered rows concatenate in shard-id order with no re-sort.
func (r *Router) Select(tableName string, filter *table.Filter) (record.Schema, []record.Row, error) {
	if shard, ok := r.route(tableName, filter); ok {
		r.routed.Inc()
		return shard.Select(tableName, filter)
	}
	r.scattered.Inc()

	schemas := make([]record.Schema, len(r.shards))
	rowsByShard := make([][]record.Row, len(r.shards))
	errs := make([]error, len(r.shards))

	var wg conc.WaitGroup
	for i := range r.shards {
		wg.Go(func() {
			schemas[i], rowsByShard[i], errs[i] = r.shards[i].Select(tableName, filter)
		})
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return record.Schema{}, nil, err
		}
	}
	var rows []record.Row
	for _, part := range rowsByShard {
		rows = append(rows, part...)
	}
	return schemas[0], rows, nil
}

// Update routes on a shard-key filter, else scatter-gathers and sums counts.
func (r *Router) Update(tableName string, assigns []table.Assignment, filter *table.Filter) (int, error) {
	return r.mutate(tableName, filter, func(c *table.Catalog) (int, error) {
		return c.Update(tableName, assigns, filter)
	})
}

// Delete routes on a shard-key filter, else scatter-gathers and sums counts.
func (r *Router) Delete(tableName string, filter *table.Filter) (int, error) {
	return r.mutate(tableName, filter, func(c *table.Catalog) (int, error) {
		return c.Delete(tableName, filter)
	})
}

// Stats reports per-shard live row counts for one table, in shard-id order.
func (r *Router) Stats(tableName string) ([]int, error) {
	counts := make([]int, len(r.shards))
	for i, c := range r.shards {
		t, err := c.Get(tableName)
		if err != nil {
			return nil, err
		}
		counts[i] = t.Len()
	}
	return counts, nil
}

// Counters reports how many operations were routed to a single shard,
// scatter-gathered, and broadcast, for shell diagnostics.
func (r *Router) Counters() (routed, scattered, broadcast int64) {
	return r.routed.Load(), r.scattered.Load(), r.broadcast.Load()
}

// route resolves a filtered operation to a single shard when the filter's
// column is the table's shard key.
func (r *Router) route(tableName string, filter *table.Filter) (*table.Catalog, bool) {
	key, ok := r.keys[tableName]
	if !ok || filter == nil || filter.Column != key.column {
		return nil, false
	}
	return r.shards[shardFor(filter.Value, len(r.shards))], true
}

// mutate runs one count-returning mutation either routed or scattered.
// A failing shard fails the whole operation; rows other shards already
// applied stay applied, consistent with the table layer's own partial-apply
// policy.
func (r *Router) mutate(tableName string, filter *table.Filter, fn func(*table.Catalog) (int, error)) (int, error) {
	if shard, ok := r.route(tableName, filter); ok {
		r.routed.Inc()
		return fn(shard)
	}
	r.scattered.Inc()

	counts := make([]int, len(r.shards))
	errs := make([]error, len(r.shards))

	var wg conc.WaitGroup
	for i := range r.shards {
		wg.Go(func() {
			counts[i], errs[i] = fn(r.shards[i])
		})
	}
	wg.Wait()

	total := 0
	for i := range r.shards {
		total += counts[i]
	}
	for _, err := range errs {
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// everyShard broadcasts one DDL action to all shards concurrently; every
// shard must succeed, failures merge into one error.
func (r *Router) everyShard(fn func(*table.Catalog) error) error {
	r.broadcast.Inc()
	errs := make([]error, len(r.shards))

	var wg conc.WaitGroup
	for i := range r.shards {
		wg.Go(func() {
			errs[i] = fn(r.shards[i])
		})
	}
	wg.Wait()

	return multierr.Combine(errs...)
}
