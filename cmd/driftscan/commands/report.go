package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/driftscan/driftscan/internal/config"
	"github.com/driftscan/driftscan/internal/extractor"
	"github.com/driftscan/driftscan/internal/logger"
	"github.com/driftscan/driftscan/internal/output"
	"github.com/driftscan/driftscan/pkg/types"
)

// addReportFlags registers the output flags shared by compare and plan.
func addReportFlags(cmd *cobra.Command) {
	cmd.Flags().String("format", "", "output format (summary, unix, json, yaml)")
	cmd.Flags().StringP("output", "o", "", "write the report to a file instead of stdout")
	cmd.Flags().Bool("detailed", false, "expand each change with old and new values")
	cmd.Flags().BoolP("quiet", "q", false, "suppress output, exit status only")
	cmd.Flags().Bool("no-color", false, "disable colored output")
	cmd.Flags().Bool("creates", false, "show only created resources")
	cmd.Flags().Bool("updates", false, "show only modified resources")
	cmd.Flags().Bool("deletes", false, "show only deleted resources")
}

// emitReport applies action filters, renders the report and sets the process
// exit code. The drift verdict always reflects the unfiltered report.
func emitReport(cmd *cobra.Command, cfg *config.Config, report *types.DriftReport) error {
	if report.HasDrift() {
		exitCode = 1
	}

	if quiet, _ := cmd.Flags().GetBool("quiet"); quiet {
		return nil
	}

	var actions []types.Action
	if on, _ := cmd.Flags().GetBool("creates"); on {
		actions = append(actions, types.ActionCreated)
	}
	if on, _ := cmd.Flags().GetBool("updates"); on {
		actions = append(actions, types.ActionModified)
	}
	if on, _ := cmd.Flags().GetBool("deletes"); on {
		actions = append(actions, types.ActionDeleted)
	}
	shown := report.Filter(actions...)

	format, _ := cmd.Flags().GetString("format")
	if format == "" {
		format = cfg.Output.Format
	}
	detailed, _ := cmd.Flags().GetBool("detailed")
	noColor, _ := cmd.Flags().GetBool("no-color")

	formatter, err := output.New(format, output.Options{
		Detailed: detailed,
		NoColor:  noColor || cfg.Output.NoColor,
	})
	if err != nil {
		return err
	}
	data, err := formatter.Format(shown)
	if err != nil {
		return fmt.Errorf("failed to format report: %w", err)
	}

	if dest, _ := cmd.Flags().GetString("output"); dest != "" && dest != "-" {
		if err := os.WriteFile(dest, data, 0o644); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		return nil
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func warnUnresolved(log logger.Logger, source string, unresolved []extractor.Unresolved) {
	for _, u := range unresolved {
		log.WithFields(map[string]interface{}{
			"source":  source,
			"address": u.Address,
		}).Warn("unresolvable descriptor: " + u.Reason)
	}
}
