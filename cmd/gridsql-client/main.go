// Command gridsql-client is the remote shell: it speaks gridwire to a
// gridsql-server and reuses the shared REPL for everything else.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gridsql/gridsql/internal/repl"
	"github.com/gridsql/gridsql/server/gridwire"
)

func main() {
	var (
		addr       = flag.String("addr", "127.0.0.1:8866", "server address")
		timeout    = flag.Duration("timeout", 3*time.Second, "dial timeout")
		rwTimeout  = flag.Duration("rw-timeout", 0, "per-request read/write timeout (0 = none)")
		histPath   = flag.String("history", repl.DefaultHistoryPath(), "history file path")
		oneShotSQL = flag.String("c", "", "execute one SQL and exit (must end with ';')")
	)
	flag.Parse()

	cli, err := gridwire.Dial(*addr, *timeout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "dial: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = cli.Close() }()
	cli.SetRWTimeout(*rwTimeout)

	if strings.TrimSpace(*oneShotSQL) != "" {
		res, err := cli.Exec(*oneShotSQL)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		repl.Print(res)
		return
	}

	fmt.Printf("connected to %s\n", *addr)

	if err := repl.Run(repl.Config{
		HistoryPath: *histPath,
		Exec:        cli.Exec,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}
