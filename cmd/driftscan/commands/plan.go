package commands

import (
	"github.com/spf13/cobra"

	"github.com/driftscan/driftscan/internal/differ"
	"github.com/driftscan/driftscan/internal/extractor"
)

func newPlanCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan <plan-file>",
		Short: "Classify a proposed change set",
		Long: `Classify every change descriptor in a plan file. Each descriptor carries an
explicit before/after pair; a null before means creation, a null after means
deletion.

Plan diffs are order-sensitive: a plan states the exact intended layout, so
element positions matter.`,
		Example: `  # Classify a plan
  driftscan plan plan.json

  # Machine-readable, full detail
  driftscan plan plan.json --format json

  # Only what would be destroyed
  driftscan plan plan.json --deletes`,
		Args: cobra.ExactArgs(1),
		RunE: runPlan,
	}

	addReportFlags(cmd)
	cmd.Flags().Bool("lenient", false, "collect unresolvable descriptors instead of failing")
	return cmd
}

func runPlan(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}

	strict := cfg.Extract.Strict
	if lenient, _ := cmd.Flags().GetBool("lenient"); lenient {
		strict = false
	}

	result, err := extractor.New(strict).ExtractPlanFile(args[0])
	if err != nil {
		return err
	}
	warnUnresolved(log, args[0], result.Unresolved)

	classifier := differ.NewClassifier(
		differ.WithWorkers(cfg.Workers.WorkerCount()),
		differ.WithParallelThreshold(cfg.Workers.Threshold),
	)
	report, err := classifier.ClassifyPlan(result.Changes)
	if err != nil {
		return err
	}
	return emitReport(cmd, cfg, report)
}
