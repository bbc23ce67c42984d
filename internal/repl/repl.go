package repl

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"

	"github.com/leengari/labdb/internal/domain/data"
	"github.com/leengari/labdb/internal/engine"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#8B5CF6"))
	messageStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981"))
	errorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#EF4444"))
)

const usage = `Commands:
  tables
  insert <table> <field> <field> ...
  select <table> [args...]
  join <left> <right> <left_attr> <right_attr>
  multijoin <t1> <t2> <t3> <a1> <a2> <b1> <b2>
  aggregate <table> <avg|max|min|count> <column>
  help
  exit | \q`

// Result is the outcome of one command
type Result struct {
	Message string
	Columns []string
	Rows    []data.Record
}

// Start reads commands from in until EOF or exit and prints results to out
func Start(db *engine.Database, in io.Reader, out io.Writer) {
	scanner := bufio.NewScanner(in)
	fmt.Fprintln(out, titleStyle.Render("Welcome to labdb"))
	fmt.Fprintln(out, "Type 'help' for commands, 'exit' or '\\q' to quit.")

	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			return
		}
		line := strings.TrimSpace(scanner.Text())

		if line == "" {
			continue
		}

		if line == "exit" || line == "\\q" {
			return
		}

		result, err := Execute(db, line)
		if err != nil {
			fmt.Fprintln(out, errorStyle.Render("Error: "+err.Error()))
			continue
		}

		PrintResult(out, result)
	}
}

// Execute runs a single command line against db
func Execute(db *engine.Database, line string) (*Result, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return &Result{}, nil
	}
	cmd, args := strings.ToLower(fields[0]), fields[1:]

	switch cmd {
	case "help":
		return &Result{Message: usage}, nil

	case "tables", "ls":
		names := db.Tables()
		return &Result{Message: "Tables: " + strings.Join(names, ", ")}, nil

	case "insert":
		if len(args) < 2 {
			return nil, fmt.Errorf("usage: insert <table> <field> ...")
		}
		if err := db.Insert(args[0], strings.Join(args[1:], " ")); err != nil {
			return nil, err
		}
		return &Result{Message: fmt.Sprintf("1 record inserted into %s", args[0])}, nil

	case "select":
		if len(args) < 1 {
			return nil, fmt.Errorf("usage: select <table> [args...]")
		}
		rows, err := db.SelectArgs(args[0], args[1:]...)
		if err != nil {
			return nil, err
		}
		return rowsResult(rows), nil

	case "join":
		if len(args) != 4 {
			return nil, fmt.Errorf("usage: join <left> <right> <left_attr> <right_attr>")
		}
		rows, err := db.Join(args[0], args[1], args[2], args[3])
		if err != nil {
			return nil, err
		}
		return rowsResult(rows), nil

	case "multijoin":
		if len(args) != 7 {
			return nil, fmt.Errorf("usage: multijoin <t1> <t2> <t3> <a1> <a2> <b1> <b2>")
		}
		rows, err := db.MultiJoin(args[0], args[1], args[2], args[3:5], args[5:7])
		if err != nil {
			return nil, err
		}
		return rowsResult(rows), nil

	case "aggregate":
		if len(args) != 3 {
			return nil, fmt.Errorf("usage: aggregate <table> <method> <column>")
		}
		v, err := db.Aggregate(args[0], args[1], args[2])
		if err != nil {
			return nil, err
		}
		return &Result{Message: fmt.Sprintf("%s(%s) = %g", args[1], args[2], v)}, nil
	}

	return nil, fmt.Errorf("unknown command %q, type 'help'", cmd)
}

// rowsResult collects the column order from the records, first seen first
func rowsResult(rows []data.Record) *Result {
	res := &Result{Rows: rows}
	seen := make(map[string]bool)
	for _, r := range rows {
		for _, name := range r.Names() {
			if !seen[name] {
				seen[name] = true
				res.Columns = append(res.Columns, name)
			}
		}
	}
	res.Message = fmt.Sprintf("(%d rows)", len(rows))
	return res
}

func PrintResult(w io.Writer, res *Result) {
	if len(res.Columns) > 0 {
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

		fmt.Fprintln(tw, strings.Join(res.Columns, "\t"))

		sep := make([]string, len(res.Columns))
		for i := range sep {
			sep[i] = "---"
		}
		fmt.Fprintln(tw, strings.Join(sep, "\t"))

		for _, row := range res.Rows {
			cells := make([]string, len(res.Columns))
			for i, col := range res.Columns {
				val, ok := row.Raw(col)
				if !ok {
					val = "NULL"
				}
				cells[i] = val
			}
			fmt.Fprintln(tw, strings.Join(cells, "\t"))
		}
		tw.Flush()
	}

	if res.Message != "" {
		fmt.Fprintln(w, messageStyle.Render(res.Message))
	}
}
