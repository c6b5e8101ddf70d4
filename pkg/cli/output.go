package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"datasync-console/internal/domain"
)

func validateOutputFormat(output string) error {
	if output != "" && output != "table" && output != "json" {
		return fmt.Errorf("unsupported output format %q: use 'table' or 'json'", output)
	}
	return nil
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printTable(w io.Writer, header []string, rows [][]string) {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)
	table.AppendBulk(rows)
	table.Render()
}

// printResult renders a query result set as a table followed by its row count.
func printResult(w io.Writer, res *domain.QueryResult) {
	if res == nil || len(res.Columns) == 0 {
		_, _ = fmt.Fprintln(w, domain.RowCountLabel(0))
		return
	}
	rows := make([][]string, 0, len(res.Rows))
	for _, row := range res.Rows {
		rec := make([]string, len(res.Columns))
		for i, col := range res.Columns {
			rec[i] = domain.FormatCell(row[col])
		}
		rows = append(rows, rec)
	}
	printTable(w, res.Columns, rows)
	_, _ = fmt.Fprintln(w, domain.RowCountLabel(res.RowCount))
}

var (
	successColor = color.New(color.FgGreen)
	failColor    = color.New(color.FgRed)
	mutedColor   = color.New(color.Faint)
)

func disableColor() { color.NoColor = true }

func printSuccess(w io.Writer, format string, args ...interface{}) {
	_, _ = successColor.Fprintf(w, format+"\n", args...)
}

func printFailure(w io.Writer, format string, args ...interface{}) {
	_, _ = failColor.Fprintf(w, format+"\n", args...)
}

func printMuted(w io.Writer, format string, args ...interface{}) {
	_, _ = mutedColor.Fprintf(w, format+"\n", args...)
}

// isInteractive reports whether stdin is a terminal.
func isInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// commandContext bounds a command by the --timeout flag.
func (s *session) commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}
