package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	style "github.com/goliatone/go-style"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	headerStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
	hitStyle     = cellStyle.Foreground(lipgloss.Color("10"))
	missingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// resolveOutput is the --json shape of the resolve command.
type resolveOutput struct {
	Node  string      `json:"node"`
	Name  string      `json:"name"`
	Value string      `json:"value,omitempty"`
	Found bool        `json:"found"`
	Trace style.Trace `json:"trace"`
}

// evalOutput is the --json shape of the eval command.
type evalOutput struct {
	Node   string `json:"node"`
	Input  string `json:"input"`
	Output string `json:"output"`
}

func writeJSON(w io.Writer, value any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(value)
}

func renderResolve(w io.Writer, out resolveOutput, asJSON bool) error {
	if asJSON {
		return writeJSON(w, out)
	}
	title := titleStyle.Render(fmt.Sprintf("%s on %s", out.Name, out.Node))
	result := missingStyle.Render("not found")
	if out.Found {
		result = out.Value
	}
	_, err := fmt.Fprintf(w, "%s = %s\n%s\n", title, result, traceTable(out.Trace))
	return err
}

func traceTable(trace style.Trace) string {
	hitRow := -1
	rows := make([][]string, 0, len(trace.Steps))
	for i, step := range trace.Steps {
		mark := ""
		if step.Found {
			mark = "✓"
			hitRow = i
		}
		rows = append(rows, []string{strconv.Itoa(step.Depth), step.Owner, step.Key, step.Value, mark})
	}
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers("DEPTH", "OWNER", "KEY", "VALUE", "").
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			switch row {
			case table.HeaderRow:
				return headerStyle
			case hitRow:
				return hitStyle
			default:
				return cellStyle
			}
		}).
		Render()
}

func renderEval(w io.Writer, out evalOutput, asJSON bool) error {
	if asJSON {
		return writeJSON(w, out)
	}
	_, err := fmt.Fprintf(w, "%s %s\n", titleStyle.Render(out.Node+":"), out.Output)
	return err
}

func renderChanges(w io.Writer, names []string, changes map[string][]style.PropertyChange, asJSON bool) error {
	if asJSON {
		return writeJSON(w, changes)
	}
	rows := [][]string{}
	for _, name := range names {
		for _, change := range changes[name] {
			rows = append(rows, []string{name, change.Name, formatValue(change.Old), formatValue(change.New)})
		}
	}
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, "no property changes")
		return err
	}
	rendered := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("NODE", "PROPERTY", "OLD", "NEW").
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Render()
	_, err := fmt.Fprintln(w, rendered)
	return err
}

func formatValue(value any) string {
	if value == nil {
		return "-"
	}
	return fmt.Sprint(value)
}
