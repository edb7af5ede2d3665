package heap

import (
	"errors"

	"github.com/gridsql/gridsql/internal/record"
)

// ErrNotFound reports a RowID that is out of range or tombstoned.
var ErrNotFound = errors.New("heap: row not found")

// Store is an in-memory arena of fixed-capacity pages. Appends always go to
// the last page; a new page opens when it fills. Pages are never merged and
// deleted slots are never reused, so RowIDs stay unambiguous for the life of
// the store.
type Store struct {
	pages []*page
	live  int
}

func NewStore() *Store {
	return &Store{pages: []*page{newPage()}}
}

// Append stores row in the current page, opening a fresh page when the
// current one is full. O(1) amortized.
func (s *Store) Append(row record.Row) RowID {
	last := s.pages[len(s.pages)-1]
	if last.full() {
		last = newPage()
		s.pages = append(s.pages, last)
	}
	slot := last.append(row)
	s.live++
	return RowID{Page: uint32(len(s.pages) - 1), Slot: slot}
}

// Get returns the live row at id, or ErrNotFound.
func (s *Store) Get(id RowID) (record.Row, error) {
	p, err := s.page(id)
	if err != nil {
		return nil, err
	}
	return p.rows[id.Slot], nil
}

// Replace overwrites the live row at id in place.
func (s *Store) Replace(id RowID, row record.Row) error {
	p, err := s.page(id)
	if err != nil {
		return err
	}
	p.rows[id.Slot] = row
	return nil
}

// Delete tombstones the slot at id. The RowID becomes permanently invalid.
func (s *Store) Delete(id RowID) error {
	p, err := s.page(id)
	if err != nil {
		return err
	}
	p.dead[id.Slot] = true
	p.rows[id.Slot] = nil
	s.live--
	return nil
}

// Scan visits every live row in page-then-slot order. Each call walks the
// store from the start, independent of any prior scan. A non-nil error from
// fn stops the walk and is returned as-is.
func (s *Store) Scan(fn func(RowID, record.Row) error) error {
	for pi, p := range s.pages {
		for si := range p.rows {
			if p.dead[si] {
				continue
			}
			id := RowID{Page: uint32(pi), Slot: uint16(si)}
			if err := fn(id, p.rows[si]); err != nil {
				return err
			}
		}
	}
	return nil
}

// Len is the number of live rows.
func (s *Store) Len() int { return s.live }

func (s *Store) page(id RowID) (*page, error) {
	if int(id.Page) >= len(s.pages) {
		return nil, ErrNotFound
	}
	p := s.pages[id.Page]
	if !p.live(id.Slot) {
		return nil, ErrNotFound
	}
	return p, nil
}
