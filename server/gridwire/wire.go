// Package gridwire is the TCP wire protocol: length-prefixed JSON frames
// carrying one SQL statement per request and one structured result per
// response.
package gridwire

import (
	"fmt"

	"github.com/gridsql/gridsql/internal/engine"
	"github.com/gridsql/gridsql/internal/record"
)

// ExecuteRequest is a single SQL command request.
type ExecuteRequest struct {
	ID  uint64 `json:"id"`
	SQL string `json:"sql"`
}

// ExecuteResponse is the response for a request ID. Exactly one of Result
// and Error is set.
type ExecuteResponse struct {
	ID     uint64  `json:"id"`
	Result *Result `json:"result,omitempty"`
	Error  *Error  `json:"error,omitempty"`
}

// Result is the wire shape of an engine result.
type Result struct {
	Kind    string       `json:"kind"` // "rows", "count" or "status"
	Columns []string     `json:"columns,omitempty"`
	Rows    []record.Row `json:"rows,omitempty"`
	Count   int          `json:"count,omitempty"`
	Message string       `json:"message,omitempty"`
}

// Error carries a typed failure across the wire.
type Error struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// EncodeResult flattens an engine result for the wire.
func EncodeResult(res engine.Result) *Result {
	switch res := res.(type) {
	case engine.RowSet:
		return &Result{Kind: "rows", Columns: res.Columns, Rows: res.Rows}
	case engine.Count:
		return &Result{Kind: "count", Count: res.N}
	case engine.Status:
		return &Result{Kind: "status", Message: res.Message}
	default:
		return &Result{Kind: "status", Message: fmt.Sprintf("%v", res)}
	}
}

// EncodeError classifies err for the wire.
func EncodeError(err error) *Error {
	return &Error{Kind: string(engine.Kind(err)), Message: err.Error()}
}

// Engine rebuilds the engine result a wire Result was encoded from.
func (r *Result) Engine() (engine.Result, error) {
	switch r.Kind {
	case "rows":
		return engine.RowSet{Columns: r.Columns, Rows: r.Rows}, nil
	case "count":
		return engine.Count{N: r.Count}, nil
	case "status":
		return engine.Status{Message: r.Message}, nil
	default:
		return nil, fmt.Errorf("gridwire: unknown result kind %q", r.Kind)
	}
}
