// Package repl is the interactive shell shared by the embedded binary and
// the remote client: readline input, multiline accumulation until ';', meta
// commands, and result rendering.
package repl

import (
	"fmt"
	"strings"

	"github.com/chzyer/readline"

	"github.com/gridsql/gridsql/internal/engine"
)

// Config wires a shell session to its backend. Tables and ShardStats are
// optional; when nil the matching meta commands report as unavailable.
type Config struct {
	Prompt      string
	HistoryPath string
	HistoryMax  int

	Exec       func(sql string) (engine.Result, error)
	Tables     func() []string
	ShardStats func(table string) ([]int, error)
}

// Run drives the shell until \q or EOF.
func Run(cfg Config) error {
	if cfg.Prompt == "" {
		cfg.Prompt = "gridsql> "
	}
	if cfg.HistoryMax == 0 {
		cfg.HistoryMax = 2000
	}

	h := NewHistory(cfg.HistoryPath)
	_ = h.Load(cfg.HistoryMax)

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          cfg.Prompt,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return fmt.Errorf("readline: %w", err)
	}
	defer func() { _ = rl.Close() }()

	// preload history into readline so arrow-up works immediately
	for _, line := range h.lines {
		_ = rl.SaveHistory(line)
	}

	fmt.Println("type \\help for help")

	var buf strings.Builder
	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			// Ctrl+C clears the current buffer
			if buf.Len() > 0 {
				buf.Reset()
				rl.SetPrompt(cfg.Prompt)
				continue
			}
			fmt.Println("^C")
			continue
		}
		if err != nil {
			// EOF
			fmt.Println()
			return nil
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if isMetaCommand(line) {
			if quit := runMeta(cfg, h, line); quit {
				return nil
			}
			continue
		}

		if buf.Len() > 0 {
			buf.WriteByte(' ')
		}
		buf.WriteString(line)

		if !statementComplete(buf.String()) {
			rl.SetPrompt("...> ")
			continue
		}

		stmt := strings.TrimSpace(buf.String())
		buf.Reset()
		rl.SetPrompt(cfg.Prompt)

		_ = h.Append(stmt)
		_ = rl.SaveHistory(compactOneLine(stmt))

		res, err := cfg.Exec(stmt)
		if err != nil {
			fmt.Printf("error: %v\n", err)
			continue
		}
		Print(res)
	}
}

func isMetaCommand(line string) bool {
	line = strings.TrimSpace(line)
	return strings.HasPrefix(line, "\\") ||
		line == "quit" || line == "exit"
}

// runMeta handles one meta command, reporting whether the shell should quit.
func runMeta(cfg Config, h *History, line string) bool {
	fields := strings.Fields(line)
	switch fields[0] {
	case "\\q", "quit", "exit":
		return true

	case "\\help":
		fmt.Println(`meta commands:
  \q | quit | exit       quit
  \tables                list tables
  \shards <table>        per-shard row counts
  \history               print history
  \help                  show help

sql:
  end statement with ';' (parser requires it)
  multiline is supported (shell will wait until ';')`)

	case "\\history":
		h.Print(50)

	case "\\tables":
		if cfg.Tables == nil {
			fmt.Println("\\tables is not available in this session")
			break
		}
		for _, name := range cfg.Tables() {
			fmt.Println(name)
		}

	case "\\shards":
		if cfg.ShardStats == nil {
			fmt.Println("sharding is not enabled in this session")
			break
		}
		if len(fields) != 2 {
			fmt.Println("usage: \\shards <table>")
			break
		}
		counts, err := cfg.ShardStats(fields[1])
		if err != nil {
			fmt.Printf("error: %v\n", err)
			break
		}
		for i, n := range counts {
			fmt.Printf("shard %d: %d rows\n", i, n)
		}

	default:
		fmt.Printf("unknown command: %s\n", line)
	}
	return false
}

// statementComplete checks for a terminating ';' outside single quotes.
func statementComplete(buf string) bool {
	inQuote := false
	for _, r := range buf {
		if r == '\'' {
			inQuote = !inQuote
			continue
		}
		if r == ';' && !inQuote {
			return true
		}
	}
	return false
}
