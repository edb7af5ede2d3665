package repl

import (
	"fmt"
	"strings"

	"github.com/gridsql/gridsql/internal/engine"
)

// Print renders a result the way psql would: DDL status lines, affected-row
// counts, or an aligned column table with a row-count footer.
func Print(res engine.Result) {
	switch res := res.(type) {
	case engine.Status:
		fmt.Println(res.Message)
	case engine.Count:
		fmt.Printf("OK (%d affected)\n", res.N)
	case engine.RowSet:
		printRowSet(res)
	default:
		fmt.Printf("%v\n", res)
	}
}

func printRowSet(rs engine.RowSet) {
	cols := rs.Columns

	// render every cell up front so widths are known
	cells := make([][]string, len(rs.Rows))
	widths := make([]int, len(cols))
	for i, c := range cols {
		widths[i] = len(c)
	}
	for ri, row := range rs.Rows {
		out := make([]string, len(cols))
		for i := range cols {
			if i < len(row) {
				out[i] = row[i].String()
			} else {
				out[i] = "NULL"
			}
			if len(out[i]) > widths[i] {
				widths[i] = len(out[i])
			}
		}
		cells[ri] = out
	}

	printRow := func(values []string) {
		for i := range cols {
			if i > 0 {
				fmt.Print(" | ")
			}
			fmt.Print(padRight(values[i], widths[i]))
		}
		fmt.Println()
	}

	printRow(cols)
	for i := range cols {
		if i > 0 {
			fmt.Print("-+-")
		}
		fmt.Print(strings.Repeat("-", widths[i]))
	}
	fmt.Println()
	for _, row := range cells {
		printRow(row)
	}

	fmt.Printf("(%d rows)\n", len(rs.Rows))
}

func padRight(s string, w int) string {
	if len(s) >= w {
		return s
	}
	return s + strings.Repeat(" ", w-len(s))
}
