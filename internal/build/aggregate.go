package build

import (
	"github.com/weigo/NWDI-Cobertura-Plugin/internal/templates"
)

// AggregateFileName is the name of the master build file written to the
// workspace root.
const AggregateFileName = "cobertura-build-all.xml"

// AggregateTarget is the default target of the master build file.
const AggregateTarget = "run-all-tests"

// AggregateReportTarget runs every component report target.
const AggregateReportTarget = "cobertura-report-all"

// MasterContext is the data the master template is rendered with.
type MasterContext struct {
	DefaultTarget string
	ReportTarget  string
	BuildFiles    []string
	Reports       []ReportCall
}

// ReportCall invokes the report target of one descriptor.
type ReportCall struct {
	BuildFile string
	Target    string
}

// Aggregator writes the master build file calling all generated descriptors.
type Aggregator struct {
	writer *Writer
	path   string
}

// NewAggregator creates an aggregator writing to <workspace>/cobertura-build-all.xml.
func NewAggregator(writer *Writer, workspace string) *Aggregator {
	return &Aggregator{
		writer: writer,
		path:   workspace + "/" + AggregateFileName,
	}
}

// Path returns the master build file path.
func (a *Aggregator) Path() string {
	return a.path
}

// NewMasterContext builds the master context from result, in generation order.
func NewMasterContext(result *Result) *MasterContext {
	ctx := &MasterContext{
		DefaultTarget: AggregateTarget,
		ReportTarget:  AggregateReportTarget,
		BuildFiles:    result.Paths(),
		Reports:       make([]ReportCall, 0, result.Len()),
	}
	for _, e := range result.Entries {
		ctx.Reports = append(ctx.Reports, ReportCall{
			BuildFile: e.Path,
			Target:    NamesFor(e.Component).ReportTarget,
		})
	}
	return ctx
}

// Aggregate writes the master build file and returns its path. Descriptors
// already written are never touched.
func (a *Aggregator) Aggregate(result *Result) (string, error) {
	if err := a.writer.write("", a.path, templates.Master, NewMasterContext(result)); err != nil {
		return "", err
	}
	return a.path, nil
}
