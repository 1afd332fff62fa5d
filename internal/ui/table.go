package ui

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"aptlite/internal/history"
	"aptlite/pkg/manager"
	"aptlite/pkg/manager/detector"
)

// Table wraps tabwriter for consistent styling.
type Table struct {
	writer  *tabwriter.Writer
	headers []string
}

// NewTable creates a new table that writes to Out.
func NewTable(header []string) *Table {
	return NewTableWriter(Out, header)
}

// NewTableWriter creates a new table that writes to a specific writer.
func NewTableWriter(w io.Writer, header []string) *Table {
	t := &Table{
		writer:  tabwriter.NewWriter(w, 0, 0, 2, ' ', 0),
		headers: header,
	}
	if len(header) > 0 {
		row := make([]string, len(header))
		for i, h := range header {
			row[i] = Bold(strings.ToUpper(h))
		}
		fmt.Fprintln(t.writer, strings.Join(row, "\t"))
	}
	return t
}

// AddRow adds a row to the table.
func (t *Table) AddRow(row ...string) {
	fmt.Fprintln(t.writer, strings.Join(row, "\t"))
}

// Render flushes the table.
func (t *Table) Render() {
	t.writer.Flush()
}

// PrintSearchResults prints search results in apt-cache order.
func PrintSearchResults(packages []manager.Package) {
	if len(packages) == 0 {
		MutedMsg("No packages found")
		return
	}

	HeaderMsg("Found %d packages", len(packages))

	table := NewTable([]string{"name", "description"})
	for _, pkg := range packages {
		table.AddRow(PackageName.Sprint(pkg.Name), truncate(pkg.Description, 70))
	}
	table.Render()
}

// PrintPackageInfo prints the description shown for a package.
func PrintPackageInfo(name, description string) {
	HeaderMsg("Package Information")

	printField("Name", name)
	if description == "" {
		description = Muted.Sprint("(no description)")
	}
	printField("Description", description)
}

// PrintHistory prints history entries, newest first.
func PrintHistory(entries []history.Entry) {
	if len(entries) == 0 {
		MutedMsg("No history recorded")
		return
	}

	table := NewTable([]string{"time", "operation", "packages", "status", "lines"})
	for _, e := range entries {
		status := Success.Sprint(SymbolSuccess)
		if !e.Success {
			status = Error.Sprint(SymbolError + " exit " + strconv.Itoa(e.ExitCode))
		}

		pkgs := strings.Join(e.Packages, " ")
		if pkgs == "" {
			pkgs = "-"
		}

		table.AddRow(e.FormatTime(), string(e.Operation), truncate(pkgs, 40), status, strconv.Itoa(e.Lines))
	}
	table.Render()
}

// PrintSystemInfo prints the detected system and the apt front-end in use.
func PrintSystemInfo(info *detector.SystemInfo, backend string) {
	HeaderMsg("System Information")

	printField("Operating System", info.PrettyName)
	printField("Architecture", info.Arch)

	if info.Distribution != "" {
		printField("Distribution", info.Distribution)
	}
	if len(info.DistroFamily) > 0 {
		printField("Family", strings.Join(info.DistroFamily, " "))
	}
	if backend != "" {
		printField("Package Tool", backend)
	}
}

// printField prints a single field with formatting.
func printField(label, value string) {
	fmt.Fprintf(Out, "  %s: %s\n", Label.Sprint(label), value)
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
