package output

import (
	"fmt"
	"strings"

	"github.com/driftscan/driftscan/pkg/types"
	"github.com/fatih/color"
)

// SummaryFormatter renders a human-readable change summary, grouped by
// action, with optional per-diff detail.
type SummaryFormatter struct {
	opts Options
}

func (f *SummaryFormatter) Format(report *types.DriftReport) ([]byte, error) {
	green, red, yellow := f.colors()
	var sb strings.Builder

	sb.WriteString("Drift Report\n")
	sb.WriteString("============\n\n")
	sb.WriteString(fmt.Sprintf("Resources unchanged: %d\n", report.Summary.Unchanged))
	sb.WriteString(fmt.Sprintf("Changes detected:    %d\n", report.Summary.Changed()))

	created := report.RecordsByAction(types.ActionCreated)
	if len(created) > 0 {
		sb.WriteString(fmt.Sprintf("\nCreated (%d):\n", len(created)))
		for _, rec := range created {
			sb.WriteString(green(fmt.Sprintf("  + %s\n", rec.Address)))
		}
	}

	deleted := report.RecordsByAction(types.ActionDeleted)
	if len(deleted) > 0 {
		sb.WriteString(fmt.Sprintf("\nDeleted (%d):\n", len(deleted)))
		for _, rec := range deleted {
			sb.WriteString(red(fmt.Sprintf("  - %s\n", rec.Address)))
		}
	}

	modified := report.RecordsByAction(types.ActionModified)
	if len(modified) > 0 {
		sb.WriteString(fmt.Sprintf("\nModified (%d):\n", len(modified)))
		for _, rec := range modified {
			sb.WriteString(yellow(fmt.Sprintf("  ~ %s\n", rec.Address)))
			for _, d := range rec.Diffs {
				f.writeDiff(&sb, d)
			}
		}
	}

	if !report.HasDrift() {
		sb.WriteString("\nNo drift detected\n")
	}
	return []byte(sb.String()), nil
}

func (f *SummaryFormatter) writeDiff(sb *strings.Builder, d types.AtomicDiff) {
	sb.WriteString(fmt.Sprintf("      %s: %s\n", d.Kind, d.Path))
	if !f.opts.Detailed {
		return
	}
	if d.Kind.CarriesOld() {
		sb.WriteString(fmt.Sprintf("        old: %v\n", renderValue(d.Old)))
	}
	if d.Kind.CarriesNew() {
		sb.WriteString(fmt.Sprintf("        new: %v\n", renderValue(d.New)))
	}
}

func (f *SummaryFormatter) colors() (func(a ...interface{}) string, func(a ...interface{}) string, func(a ...interface{}) string) {
	if f.opts.NoColor {
		return fmt.Sprint, fmt.Sprint, fmt.Sprint
	}
	return color.New(color.FgGreen).SprintFunc(),
		color.New(color.FgRed).SprintFunc(),
		color.New(color.FgYellow).SprintFunc()
}

func renderValue(v types.Value) string {
	if v == nil {
		return "null"
	}
	return fmt.Sprintf("%v", v)
}
