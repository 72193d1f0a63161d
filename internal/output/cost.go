package output

import (
	"fmt"
	"strings"

	"github.com/driftscan/driftscan/internal/cost"
)

// FormatCostSummary renders a cost overlay for the console, matching the
// summary formatter's look.
func FormatCostSummary(report *cost.Report) string {
	var sb strings.Builder
	sb.WriteString("Cost Impact (monthly)\n")
	sb.WriteString("=====================\n\n")
	sb.WriteString(fmt.Sprintf("  Old configuration: $%.2f\n", report.OldMonthly))
	sb.WriteString(fmt.Sprintf("  New configuration: $%.2f\n", report.NewMonthly))
	sb.WriteString(fmt.Sprintf("  Change:            $%+.2f\n", report.Delta))
	if report.OldMonthly > 0 {
		sb.WriteString(fmt.Sprintf("  Percent change:    %+.2f%%\n", report.Delta/report.OldMonthly*100))
	}

	var changed []cost.ResourceDelta
	for _, res := range report.Resources {
		if res.Delta != 0 {
			changed = append(changed, res)
		}
	}
	if len(changed) > 0 {
		sb.WriteString("\nResource cost changes:\n")
		for _, res := range changed {
			switch {
			case res.Old == 0 && res.New > 0:
				sb.WriteString(fmt.Sprintf("  + %s: $%.2f/month (new)\n", res.Address, res.New))
			case res.Old > 0 && res.New == 0:
				sb.WriteString(fmt.Sprintf("  - %s: $%.2f/month (removed)\n", res.Address, res.Old))
			default:
				sb.WriteString(fmt.Sprintf("  ~ %s: $%.2f -> $%.2f (%+.2f)\n", res.Address, res.Old, res.New, res.Delta))
			}
		}
	}
	return sb.String()
}
