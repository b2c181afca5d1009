package cmdutil

import (
	"strings"

	"github.com/weigo/NWDI-Cobertura-Plugin/internal/build"
	"github.com/weigo/NWDI-Cobertura-Plugin/internal/core/component"
	"github.com/weigo/NWDI-Cobertura-Plugin/internal/output"
)

// skipMessage explains a component rejected by the eligibility filter.
const skipMessage = "no sources or no JUnit archive"

// NewReport lists every component with its outcome in registry order.
// Components after a fail-fast stop are left out.
func NewReport(components []*component.Component, result *build.Result, aggregateFile string) *output.Report {
	generated := make(map[string]string, result.Len())
	for _, e := range result.Entries {
		generated[e.Component.Key()] = e.Path
	}
	diagnostics := make(map[string]build.Diagnostic, len(result.Diagnostics))
	for _, d := range result.Diagnostics {
		diagnostics[d.Component] = d
	}
	skipped := make(map[string]bool, len(result.Skipped))
	for _, c := range result.Skipped {
		skipped[c.Key()] = true
	}

	report := &output.Report{AggregateFile: aggregateFile}
	for _, c := range components {
		key := c.Key()
		entry := output.ReportEntry{Component: key}

		if path, ok := generated[key]; ok {
			names := build.NamesFor(c)
			entry.Status = output.StatusGenerated
			entry.BuildFile = path
			entry.DefaultTarget = names.DefaultTarget
			entry.ReportTarget = names.ReportTarget
		} else if d, ok := diagnostics[key]; ok {
			entry.Status = output.StatusSkipped
			entry.Message = d.Message
			if d.Failed() {
				entry.Status = output.StatusFailed
				entry.Message = d.Err.Error()
			}
		} else if skipped[key] {
			entry.Status = output.StatusSkipped
			entry.Message = skipMessage
		} else {
			continue
		}

		report.Components = append(report.Components, entry)
	}

	return report
}

// WrittenFiles maps the files written by a run, relative to the workspace,
// to the component they belong to.
func WrittenFiles(workspace string, result *build.Result, aggregateFile string) map[string]string {
	files := make(map[string]string, result.Len()+1)
	prefix := strings.TrimSuffix(workspace, "/") + "/"
	for _, e := range result.Entries {
		files[strings.TrimPrefix(e.Path, prefix)] = e.Component.Key()
	}
	if aggregateFile != "" {
		files[strings.TrimPrefix(aggregateFile, prefix)] = build.AggregateTarget
	}
	return files
}
