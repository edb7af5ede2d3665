// Command gridsql-server exposes one shared engine over the gridwire TCP
// protocol.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/gridsql/gridsql/internal/config"
	"github.com/gridsql/gridsql/server/gridwire"
)

func main() {
	var (
		cfgPath = flag.String("config", "", "yaml config file (optional)")
		addr    = flag.String("addr", "", "listen address (overrides config)")
		shards  = flag.Int("shards", 0, "shard count (overrides config; 1 = unsharded)")
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
	if *addr != "" {
		cfg.Server.Addr = *addr
	}
	if *shards > 0 {
		cfg.Shards = *shards
	}

	level := cfg.LogLevel()
	if cfg.Server.Debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})))

	if err := gridwire.Run(gridwire.ServerConfig{
		Addr:   cfg.Server.Addr,
		Shards: cfg.Shards,
	}); err != nil {
		slog.Error("server exited", "err", err)
		os.Exit(1)
	}
}
