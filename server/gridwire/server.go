package gridwire

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/gridsql/gridsql/internal/engine"
	"github.com/gridsql/gridsql/internal/shard"
	"github.com/gridsql/gridsql/internal/sqlparse"
	"github.com/gridsql/gridsql/internal/table"
)

type ServerConfig struct {
	Addr   string
	Shards int
}

// Server fronts one shared in-memory engine over TCP. Statements from all
// connections serialize through mu: the engine treats each operation as a
// whole-table critical section and has no internal locking.
type Server struct {
	mu   sync.Mutex
	exec *engine.Executor
}

func NewServer(shards int) (*Server, error) {
	var target engine.Target
	if shards > 1 {
		router, err := shard.NewRouter(shards)
		if err != nil {
			return nil, err
		}
		target = router
	} else {
		target = table.NewCatalog()
	}
	return &Server{exec: engine.NewExecutor(target)}, nil
}

// Run listens on sc.Addr until SIGINT/SIGTERM.
func Run(sc ServerConfig) error {
	srv, err := NewServer(sc.Shards)
	if err != nil {
		return err
	}

	ln, err := net.Listen("tcp", sc.Addr)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	defer func() { _ = ln.Close() }()

	slog.Info("gridsql tcp server listening", "addr", sc.Addr, "shards", sc.Shards)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		_ = ln.Close()
	}()

	for {
		conn, err := ln.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				return nil
			default:
			}
			slog.Error("accept failed", "err", err)
			continue
		}
		go srv.handleConn(ctx, conn)
	}
}

func (s *Server) handleConn(ctx context.Context, conn net.Conn) {
	defer func() { _ = conn.Close() }()

	connID := uuid.NewString()
	log := slog.With("conn", connID, "remote", conn.RemoteAddr().String())
	log.Info("connection opened")
	defer log.Info("connection closed")

	_ = conn.SetDeadline(time.Time{})

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		var req ExecuteRequest
		if err := ReadFrame(conn, &req); err != nil {
			// client closed or bad frame
			return
		}

		res, err := s.execute(req.SQL)
		if err != nil {
			log.Debug("statement failed", "id", req.ID, "err", err)
			_ = WriteFrame(conn, ExecuteResponse{
				ID:    req.ID,
				Error: EncodeError(err),
			})
			continue
		}

		_ = WriteFrame(conn, ExecuteResponse{
			ID:     req.ID,
			Result: EncodeResult(res),
		})
	}
}

// execute parses and runs one statement under the engine lock.
func (s *Server) execute(sql string) (engine.Result, error) {
	op, err := sqlparse.Parse(sql)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.exec.Execute(op)
}
