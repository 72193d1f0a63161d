package output

import (
	"encoding/json"

	"github.com/driftscan/driftscan/internal/cost"
	"github.com/driftscan/driftscan/pkg/types"
)

// JSONFormatter emits the report's canonical JSON form.
type JSONFormatter struct{}

func (f *JSONFormatter) Format(report *types.DriftReport) ([]byte, error) {
	return json.MarshalIndent(report, "", "  ")
}

// FormatCostReport formats a cost overlay as JSON.
func (f *JSONFormatter) FormatCostReport(report *cost.Report) ([]byte, error) {
	return json.MarshalIndent(report, "", "  ")
}
