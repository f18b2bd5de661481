package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// cellWidth caps free-text columns.
const cellWidth = 60

func newTable(w io.Writer, header ...interface{}) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	if len(header) > 0 {
		t.AppendHeader(table.Row(header))
	}
	return t
}

// wrapColumns soft-wraps the given 1-based columns at cellWidth.
func wrapColumns(t table.Writer, cols ...int) {
	configs := make([]table.ColumnConfig, 0, len(cols))
	for _, n := range cols {
		configs = append(configs, table.ColumnConfig{
			Number:           n,
			WidthMax:         cellWidth,
			WidthMaxEnforcer: text.WrapSoft,
		})
	}
	t.SetColumnConfigs(configs)
}

func humanBytes(n int64) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MiB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KiB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}

func shortDuration(d time.Duration) string {
	return d.Round(time.Millisecond).String()
}

func joinLines(lines []string) string {
	return strings.Join(lines, "\n")
}
