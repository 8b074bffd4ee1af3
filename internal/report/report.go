// Package report renders a workspace scan for people and for machines.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/santoshdahal12/licensegate/internal/models"
)

var (
	passColor  = color.New(color.FgGreen).SprintFunc()
	warnColor  = color.New(color.FgYellow).SprintFunc()
	errorColor = color.New(color.FgRed, color.Bold).SprintFunc()
)

func colorVerdict(v models.Verdict) string {
	switch v {
	case models.VerdictPass:
		return passColor("pass")
	case models.VerdictWarn:
		return warnColor("warn")
	default:
		return errorColor("error")
	}
}

// Options controls the terminal rendering.
type Options struct {
	// Verbose includes passing dependencies in the tables.
	Verbose bool
	// Quiet reduces the output to the summary line.
	Quiet bool
}

// WriteTerminal renders the report as per-project tables plus a summary
// line. By default only warn and error dependencies are tabulated; the
// summary always reflects every dependency.
func WriteTerminal(w io.Writer, report *models.WorkspaceReport, opts Options) {
	if !opts.Quiet {
		for _, project := range report.Projects {
			writeProject(w, project, opts.Verbose)
		}
	}
	writeSummary(w, report)
}

func writeProject(w io.Writer, project models.ProjectScan, verbose bool) {
	fmt.Fprintf(w, "\n%s (%s)\n", project.Name, project.Path)
	if len(project.Dependencies) == 0 {
		fmt.Fprintln(w, "  no dependencies found")
		return
	}

	rows := make([]models.Dependency, 0, len(project.Dependencies))
	for _, dep := range project.Dependencies {
		if !verbose && dep.Verdict == models.VerdictPass {
			continue
		}
		rows = append(rows, dep)
	}
	if len(rows) == 0 {
		fmt.Fprintf(w, "  all %d dependencies pass\n", len(project.Dependencies))
		return
	}

	// Worst verdicts first, then by name for a stable layout.
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Verdict.Rank() != rows[j].Verdict.Rank() {
			return rows[i].Verdict.Rank() > rows[j].Verdict.Rank()
		}
		return rows[i].Name < rows[j].Name
	})

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Dependency", "Version", "Ecosystem", "License", "Risk", "Verdict"})
	table.SetBorder(false)
	table.SetAutoWrapText(false)
	for _, dep := range rows {
		table.Append([]string{
			dep.Name,
			dep.Version,
			dep.Ecosystem.String(),
			dep.LicenseCanonical,
			dep.Risk.String(),
			colorVerdict(dep.Verdict),
		})
	}
	table.Render()
}

func writeSummary(w io.Writer, report *models.WorkspaceReport) {
	t := report.Totals
	fmt.Fprintf(w, "\n%d projects, %d dependencies: %s, %s, %s\n",
		len(report.Projects),
		t.Sum(),
		passColor(fmt.Sprintf("%d pass", t.Pass)),
		warnColor(fmt.Sprintf("%d warn", t.Warn)),
		errorColor(fmt.Sprintf("%d error", t.Error)))
}

// WriteJSON encodes the full report.
func WriteJSON(w io.Writer, report *models.WorkspaceReport, pretty bool) error {
	encoder := json.NewEncoder(w)
	if pretty {
		encoder.SetIndent("", "  ")
	}
	return encoder.Encode(report)
}
