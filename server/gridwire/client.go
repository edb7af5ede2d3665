package gridwire

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gridsql/gridsql/internal/engine"
)

// Client is a simple synchronous client. Send/recv are locked, so Exec may
// be called concurrently but calls serialize.
type Client struct {
	conn net.Conn
	mu   sync.Mutex
	id   atomic.Uint64

	// optional per-request timeout (0 = no timeout)
	rwTimeout time.Duration
}

func Dial(addr string, timeout time.Duration) (*Client, error) {
	d := net.Dialer{Timeout: timeout}
	c, err := d.Dial("tcp", addr)
	if err != nil {
		return nil, err
	}
	return &Client{conn: c}, nil
}

// SetRWTimeout sets a per-Exec read/write deadline, so a dead server cannot
// hang the client forever.
func (c *Client) SetRWTimeout(d time.Duration) {
	if c == nil {
		return
	}
	c.rwTimeout = d
}

func (c *Client) Close() error {
	if c == nil || c.conn == nil {
		return nil
	}
	return c.conn.Close()
}

func (c *Client) Exec(sql string) (engine.Result, error) {
	return c.ExecContext(context.Background(), sql)
}

func (c *Client) ExecContext(ctx context.Context, sql string) (engine.Result, error) {
	if c == nil || c.conn == nil {
		return nil, fmt.Errorf("gridwire: nil client")
	}

	reqID := c.id.Add(1)

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.applyDeadline(ctx); err != nil {
		return nil, err
	}
	defer func() {
		// clear deadline after request so an idle connection doesn't expire
		_ = c.conn.SetDeadline(time.Time{})
	}()

	req := ExecuteRequest{ID: reqID, SQL: sql}
	if err := WriteFrame(c.conn, req); err != nil {
		return nil, err
	}

	var resp ExecuteResponse
	if err := ReadFrame(c.conn, &resp); err != nil {
		return nil, err
	}

	if resp.ID != reqID {
		return nil, fmt.Errorf("gridwire: response id mismatch: got=%d want=%d", resp.ID, reqID)
	}
	if resp.Error != nil {
		return nil, errors.New(resp.Error.Kind + ": " + resp.Error.Message)
	}
	if resp.Result == nil {
		return nil, fmt.Errorf("gridwire: response carries neither result nor error")
	}
	return resp.Result.Engine()
}

func (c *Client) applyDeadline(ctx context.Context) error {
	// prefer the context deadline; fall back to rwTimeout
	if dl, ok := ctx.Deadline(); ok {
		return c.conn.SetDeadline(dl)
	}
	if c.rwTimeout > 0 {
		return c.conn.SetDeadline(time.Now().Add(c.rwTimeout))
	}
	return nil
}
