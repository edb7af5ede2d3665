package heap

import "github.com/gridsql/gridsql/internal/record"

// PageCapacity is the fixed number of row slots per page.
const PageCapacity = 100

// page is an append-only slot array. Deleted slots are tombstoned, never
// reused, so a RowID handed out once is never re-bound to another row.
type page struct {
	rows []record.Row
	dead []bool
}

func newPage() *page {
	return &page{
		rows: make([]record.Row, 0, PageCapacity),
		dead: make([]bool, 0, PageCapacity),
	}
}

func (p *page) full() bool { return len(p.rows) >= PageCapacity }

// append stores row in the next free slot and returns the slot index.
// Callers must check full() first.
func (p *page) append(row record.Row) uint16 {
	p.rows = append(p.rows, row)
	p.dead = append(p.dead, false)
	return uint16(len(p.rows) - 1)
}

// live reports whether slot holds a non-tombstoned row.
func (p *page) live(slot uint16) bool {
	return int(slot) < len(p.rows) && !p.dead[slot]
}
