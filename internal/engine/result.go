package engine

import (
	"errors"

	"github.com/gridsql/gridsql/internal/heap"
	"github.com/gridsql/gridsql/internal/record"
	"github.com/gridsql/gridsql/internal/table"
)

// Result is the sealed set of values an operation can produce.
type Result interface {
	result()
}

// RowSet is a projected set of rows with its column names in output order.
type RowSet struct {
	Columns []string
	Rows    []record.Row
}

// Count is the number of rows an INSERT/UPDATE/DELETE affected.
type Count struct {
	N int
}

// Status reports a DDL outcome.
type Status struct {
	Message string
}

func (RowSet) result() {}
func (Count) result()  {}
func (Status) result() {}

// ErrorKind is the wire/display classification of a failure.
type ErrorKind string

const (
	KindSchemaMismatch      ErrorKind = "SchemaMismatch"
	KindConstraintViolation ErrorKind = "ConstraintViolation"
	KindUnknownTable        ErrorKind = "UnknownTable"
	KindUnknownColumn       ErrorKind = "UnknownColumn"
	KindMissingFilter       ErrorKind = "MissingFilter"
	KindIndexAlreadyExists  ErrorKind = "IndexAlreadyExists"
	KindTableAlreadyExists  ErrorKind = "TableAlreadyExists"
	KindNotFound            ErrorKind = "NotFound"
	KindInternal            ErrorKind = "Internal"
)

// Kind classifies err onto the error-kind vocabulary. Unrecognized errors
// fall through to Internal.
func Kind(err error) ErrorKind {
	switch {
	case errors.Is(err, table.ErrSchemaMismatch):
		return KindSchemaMismatch
	case errors.Is(err, table.ErrConstraintViolation):
		return KindConstraintViolation
	case errors.Is(err, table.ErrUnknownTable):
		return KindUnknownTable
	case errors.Is(err, table.ErrUnknownColumn):
		return KindUnknownColumn
	case errors.Is(err, table.ErrMissingFilter):
		return KindMissingFilter
	case errors.Is(err, table.ErrIndexExists):
		return KindIndexAlreadyExists
	case errors.Is(err, table.ErrTableExists):
		return KindTableAlreadyExists
	case errors.Is(err, heap.ErrNotFound):
		return KindNotFound
	default:
		return KindInternal
	}
}
