package db

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ferrumdb/ferrum/ps"
)

type ResultType int

const (
	QueryResultType ResultType = iota
	CommitResultType
)

type Result interface {
	Type() ResultType
	Display()
}

type QueryResult struct {
	Reader           *ps.TableReader
	RecordsRead      int
	ExecutionTimeSec float64
	ExecutionOps     int
}

type CommitResult struct {
	DatabasesCreated int
	DatabasesDeleted int
	TablesCreated    int
	TablesDeleted    int
	IndexesCreated   int
	IndexesDeleted   int
	RecordsWritten   int
	RecordsDeleted   int
	ExecutionTimeSec float64
	ExecutionOps     int
}

func (result QueryResult) Type() ResultType {
	return QueryResultType
}

func (result CommitResult) Type() ResultType {
	return CommitResultType
}

// formatDuration formats a duration in human-readable form
func formatDuration(secs float64) string {
	if secs < 0.001 {
		return "<1ms"
	} else if secs < 0.01 {
		return fmt.Sprintf("%dms", int(secs*1000))
	} else if secs < 1 {
		ms := secs * 1000
		if ms < 10 {
			return fmt.Sprintf("%.1fms", ms)
		}
		return fmt.Sprintf("%dms", int(ms))
	} else if secs < 60 {
		if secs < 10 {
			return fmt.Sprintf("%.1fs", secs)
		}
		return fmt.Sprintf("%ds", int(secs))
	} else {
		mins := int(secs / 60)
		remainSecs := int(secs) % 60
		if remainSecs == 0 {
			return fmt.Sprintf("%dm", mins)
		}
		return fmt.Sprintf("%dm%ds", mins, remainSecs)
	}
}

func (result QueryResult) ExecutionTime() string {
	return formatDuration(result.ExecutionTimeSec)
}

func (result CommitResult) ExecutionTime() string {
	return formatDuration(result.ExecutionTimeSec)
}

func throughput(secs float64, ops int) string {
	if secs <= 0 || ops <= 0 {
		return ""
	}

	rate := float64(ops) / secs
	if rate >= 1000000 {
		return fmt.Sprintf(", %.1fM ops/s", rate/1000000)
	} else if rate >= 1000 {
		return fmt.Sprintf(", %.1fK ops/s", rate/1000)
	}
	return fmt.Sprintf(", %.0f ops/s", rate)
}

func (result QueryResult) Display() {
	if result.Reader != nil && result.Reader.RowCount() > 0 {
		renderReader(os.Stdout, result.Reader)
	}

	fmt.Printf("%d rows (%s%s)\n", result.RecordsRead, result.ExecutionTime(),
		throughput(result.ExecutionTimeSec, result.ExecutionOps))
}

func (result CommitResult) Display() {
	var parts []string

	if result.DatabasesCreated > 0 {
		parts = append(parts, fmt.Sprintf("%d database(s) created", result.DatabasesCreated))
	}
	if result.DatabasesDeleted > 0 {
		parts = append(parts, fmt.Sprintf("%d database(s) deleted", result.DatabasesDeleted))
	}
	if result.TablesCreated > 0 {
		parts = append(parts, fmt.Sprintf("%d table(s) created", result.TablesCreated))
	}
	if result.TablesDeleted > 0 {
		parts = append(parts, fmt.Sprintf("%d table(s) deleted", result.TablesDeleted))
	}
	if result.IndexesCreated > 0 {
		parts = append(parts, fmt.Sprintf("%d index(es) created", result.IndexesCreated))
	}
	if result.IndexesDeleted > 0 {
		parts = append(parts, fmt.Sprintf("%d index(es) deleted", result.IndexesDeleted))
	}
	if result.RecordsWritten > 0 {
		parts = append(parts, fmt.Sprintf("%d record(s) written", result.RecordsWritten))
	}
	if result.RecordsDeleted > 0 {
		parts = append(parts, fmt.Sprintf("%d record(s) deleted", result.RecordsDeleted))
	}

	suffix := throughput(result.ExecutionTimeSec, result.ExecutionOps)
	if len(parts) == 0 {
		fmt.Printf("OK (%s%s)\n", result.ExecutionTime(), suffix)
	} else {
		fmt.Printf("%s (%s%s)\n", strings.Join(parts, ", "), result.ExecutionTime(), suffix)
	}
}

// renderReader prints the reader as an ASCII table, one header row plus
// one line per data row.
func renderReader(w io.Writer, reader *ps.TableReader) {
	columns := reader.Columns()
	headers := make([]string, len(columns))
	widths := make([]int, len(columns))
	for i, column := range columns {
		headers[i] = column.Name
		widths[i] = len(column.Name)
	}

	lines := make([][]string, reader.RowCount())
	for i := 0; i < reader.RowCount(); i++ {
		lines[i] = make([]string, len(columns))
		for j := range columns {
			text := reader.Cell(i, j).String()
			lines[i][j] = text
			if len(text) > widths[j] {
				widths[j] = len(text)
			}
		}
	}

	parts := make([]string, len(widths))
	for i, width := range widths {
		parts[i] = strings.Repeat("-", width+2)
	}
	separator := "+" + strings.Join(parts, "+") + "+"

	fmt.Fprintln(w, separator)
	fmt.Fprintln(w, formatLine(headers, widths))
	fmt.Fprintln(w, separator)
	for _, line := range lines {
		fmt.Fprintln(w, formatLine(line, widths))
	}
	fmt.Fprintln(w, separator)
}

func formatLine(cells []string, widths []int) string {
	parts := make([]string, len(widths))
	for i, width := range widths {
		parts[i] = " " + cells[i] + strings.Repeat(" ", width-len(cells[i])+1)
	}
	return "|" + strings.Join(parts, "|") + "|"
}
