package output

import (
	"encoding/json"
	"fmt"
	"io"

	"sigs.k8s.io/yaml"
)

// ReportEntry is one component line of a generation report.
type ReportEntry struct {
	Component     string `json:"component"`
	Status        string `json:"status"`
	BuildFile     string `json:"buildFile,omitempty"`
	DefaultTarget string `json:"defaultTarget,omitempty"`
	ReportTarget  string `json:"reportTarget,omitempty"`
	Message       string `json:"message,omitempty"`
}

// Report is the printable outcome of a generation run. The output package
// does not import the build package; commands convert results into reports.
type Report struct {
	Components    []ReportEntry `json:"components"`
	AggregateFile string        `json:"aggregateFile,omitempty"`
}

// Count returns the number of entries with the given status.
func (r *Report) Count(status string) int {
	n := 0
	for _, e := range r.Components {
		if e.Status == status {
			n++
		}
	}
	return n
}

// WriteReport writes the report to w in the given format.
func WriteReport(w io.Writer, format Format, report *Report) error {
	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling report to JSON: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case FormatYAML:
		data, err := yaml.Marshal(report)
		if err != nil {
			return fmt.Errorf("marshaling report to YAML: %w", err)
		}
		_, err = w.Write(data)
		return err
	case FormatTable:
		return writeReportTable(w, report)
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}

func writeReportTable(w io.Writer, report *Report) error {
	if len(report.Components) == 0 {
		_, err := fmt.Fprintln(w, StyleDim.Render("no components processed"))
		return err
	}

	t := NewTable("COMPONENT", "STATUS", "BUILD FILE", "REPORT TARGET").StatusColumn(1)
	for _, e := range report.Components {
		detail := e.BuildFile
		if detail == "" {
			detail = e.Message
		}
		t.Row(e.Component, e.Status, detail, e.ReportTarget)
	}

	if err := t.Fprint(w); err != nil {
		return err
	}

	summary := fmt.Sprintf("%d generated, %d skipped, %d failed",
		report.Count(StatusGenerated), report.Count(StatusSkipped), report.Count(StatusFailed))
	if report.AggregateFile != "" {
		summary += "; aggregate " + StyleNoun.Render(report.AggregateFile)
	}
	_, err := fmt.Fprintln(w, FormatCheckmark(StyleSummary.Render(summary)))
	return err
}
