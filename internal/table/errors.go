package table

import "errors"

// Sentinel errors for every failure mode the storage core can report.
// Callers classify with errors.Is; the engine layer maps them onto the wire
// error kinds.
var (
	ErrSchemaMismatch      = errors.New("table: schema mismatch")
	ErrConstraintViolation = errors.New("table: constraint violation")
	ErrUnknownTable        = errors.New("table: unknown table")
	ErrUnknownColumn       = errors.New("table: unknown column")
	ErrMissingFilter       = errors.New("table: missing filter")
	ErrIndexExists         = errors.New("table: index already exists")
	ErrTableExists         = errors.New("table: table already exists")
)
