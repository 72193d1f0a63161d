package output

import (
	"fmt"
	"strings"

	"github.com/driftscan/driftscan/pkg/types"
)

// UnixFormatter emits a git-diff-like rendering: silent when nothing changed,
// one hunk per changed resource otherwise.
type UnixFormatter struct{}

func (f *UnixFormatter) Format(report *types.DriftReport) ([]byte, error) {
	if !report.HasDrift() {
		return []byte{}, nil
	}

	var sb strings.Builder
	for _, rec := range report.Records {
		switch rec.Action {
		case types.ActionCreated:
			sb.WriteString(fmt.Sprintf("+++ %s\n", rec.Address))
		case types.ActionDeleted:
			sb.WriteString(fmt.Sprintf("--- %s\n", rec.Address))
		case types.ActionModified:
			sb.WriteString(fmt.Sprintf("--- %s\n", rec.Address))
			sb.WriteString(fmt.Sprintf("+++ %s\n", rec.Address))
			for _, d := range rec.Diffs {
				sb.WriteString(fmt.Sprintf("@@ %s @@\n", d.Path))
				if d.Kind.CarriesOld() {
					sb.WriteString(fmt.Sprintf("-%s\n", renderValue(d.Old)))
				}
				if d.Kind.CarriesNew() {
					sb.WriteString(fmt.Sprintf("+%s\n", renderValue(d.New)))
				}
			}
		}
	}
	sb.WriteString(fmt.Sprintf("%d created, %d deleted, %d modified\n",
		report.Summary.Created, report.Summary.Deleted, report.Summary.Modified))
	return []byte(sb.String()), nil
}
