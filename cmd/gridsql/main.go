// Command gridsql is the embedded interactive shell: an in-process engine,
// optionally sharded, driven from a readline REPL or a one-shot -execute.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/gridsql/gridsql/internal/config"
	"github.com/gridsql/gridsql/internal/engine"
	"github.com/gridsql/gridsql/internal/repl"
	"github.com/gridsql/gridsql/internal/shard"
	"github.com/gridsql/gridsql/internal/sqlparse"
	"github.com/gridsql/gridsql/internal/table"
)

func main() {
	var (
		cfgPath  = flag.String("config", "", "yaml config file (optional)")
		shards   = flag.Int("shards", 0, "shard count (overrides config; 1 = unsharded)")
		execute  = flag.String("execute", "", "execute one SQL statement and exit (must end with ';')")
		histPath = flag.String("history", repl.DefaultHistoryPath(), "history file path")
	)
	flag.Parse()

	cfg := config.Default()
	if *cfgPath != "" {
		c, err := config.Load(*cfgPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "config: %v\n", err)
			os.Exit(1)
		}
		cfg = c
	}
	if *shards > 0 {
		cfg.Shards = *shards
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.LogLevel(),
	})))

	var (
		target engine.Target
		router *shard.Router
	)
	if cfg.Shards > 1 {
		r, err := shard.NewRouter(cfg.Shards)
		if err != nil {
			fmt.Fprintf(os.Stderr, "shard: %v\n", err)
			os.Exit(1)
		}
		target, router = r, r
	} else {
		target = table.NewCatalog()
	}
	exec := engine.NewExecutor(target)

	run := func(sql string) (engine.Result, error) {
		op, err := sqlparse.Parse(sql)
		if err != nil {
			return nil, err
		}
		return exec.Execute(op)
	}

	// one-shot mode
	if strings.TrimSpace(*execute) != "" {
		res, err := run(*execute)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		repl.Print(res)
		return
	}

	if cfg.Shards > 1 {
		fmt.Printf("gridsql (sharded, %d shards)\n", cfg.Shards)
	} else {
		fmt.Println("gridsql")
	}

	rc := repl.Config{
		HistoryPath: *histPath,
		Exec:        run,
		Tables:      exec.Tables,
	}
	if router != nil {
		rc.ShardStats = router.Stats
	}
	if err := repl.Run(rc); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}
