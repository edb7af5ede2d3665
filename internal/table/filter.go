package table

import "github.com/gridsql/gridsql/internal/record"

// Filter is an equality predicate on one column. A nil *Filter means "match
// every row".
type Filter struct {
	Column string
	Value  record.Value
}

// Assignment sets one column to a new value during UPDATE.
type Assignment struct {
	Column string
	Value  record.Value
}
