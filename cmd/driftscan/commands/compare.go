package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/driftscan/driftscan/internal/cost"
	"github.com/driftscan/driftscan/internal/differ"
	drifterrors "github.com/driftscan/driftscan/internal/errors"
	"github.com/driftscan/driftscan/internal/extractor"
	"github.com/driftscan/driftscan/internal/output"
)

func newCompareCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare <old-state> <new-state>",
		Short: "Detect drift between two state snapshots",
		Long: `Compare two state snapshot files and report every resource that was
created, deleted or modified between them.

Collections inside a resource are compared order-insensitively by default, so
reordering a list of tags or rules is not drift.`,
		Example: `  # Compare two snapshots
  driftscan compare old.tfstate new.tfstate

  # Show each changed attribute with old and new values
  driftscan compare old.tfstate new.tfstate --detailed

  # Only additions and deletions, as JSON
  driftscan compare old.tfstate new.tfstate --creates --deletes --format json

  # Overlay monthly cost deltas (requires infracost)
  driftscan compare old.tfstate new.tfstate --costs --old-dir ./envs/prod-v1 --new-dir ./envs/prod-v2

  # Scripting: exit code 1 means drift
  driftscan compare old.tfstate new.tfstate --quiet || echo "drift!"`,
		Args: cobra.ExactArgs(2),
		RunE: runCompare,
	}

	addReportFlags(cmd)
	cmd.Flags().Bool("lenient", false, "collect unresolvable descriptors instead of failing")
	cmd.Flags().Bool("order-sensitive", false, "report sequence mismatches index by index")
	cmd.Flags().Bool("costs", false, "overlay monthly cost deltas")
	cmd.Flags().String("old-dir", "", "priced configuration directory for the old state (with --costs)")
	cmd.Flags().String("new-dir", "", "priced configuration directory for the new state (with --costs)")
	return cmd
}

func runCompare(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}

	strict := cfg.Extract.Strict
	if lenient, _ := cmd.Flags().GetBool("lenient"); lenient {
		strict = false
	}
	orderSensitive := cfg.Diff.OrderSensitive
	if flagged, _ := cmd.Flags().GetBool("order-sensitive"); flagged {
		orderSensitive = true
	}

	ext := extractor.New(strict)
	oldResult, err := ext.ExtractStateFile(args[0])
	if err != nil {
		return err
	}
	newResult, err := ext.ExtractStateFile(args[1])
	if err != nil {
		return err
	}
	warnUnresolved(log, args[0], oldResult.Unresolved)
	warnUnresolved(log, args[1], newResult.Unresolved)

	classifier := differ.NewClassifier(
		differ.WithWorkers(cfg.Workers.WorkerCount()),
		differ.WithParallelThreshold(cfg.Workers.Threshold),
		differ.WithOrderSensitiveSnapshots(orderSensitive),
	)
	report, err := classifier.ClassifySnapshots(oldResult.Resources, newResult.Resources)
	if err != nil {
		return err
	}

	if err := emitReport(cmd, cfg, report); err != nil {
		return err
	}

	if costsEnabled, _ := cmd.Flags().GetBool("costs"); costsEnabled {
		oldDir, _ := cmd.Flags().GetString("old-dir")
		newDir, _ := cmd.Flags().GetString("new-dir")
		if oldDir == "" || newDir == "" {
			return fmt.Errorf("--costs requires both --old-dir and --new-dir")
		}

		provider := cost.NewInfracostProvider(cfg.Cost.Binary, cfg.Cost.Timeout, log)
		costReport, err := cost.Analyze(context.Background(), provider, report, oldDir, newDir)
		if err != nil {
			// A missing or failing estimator degrades the overlay only; the
			// drift report above already stands on its own.
			if drifterrors.IsType(err, drifterrors.ErrorTypeProviderUnavailable) {
				log.Error("cost overlay skipped", err)
				return nil
			}
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout())
		fmt.Fprint(cmd.OutOrStdout(), output.FormatCostSummary(costReport))
	}
	return nil
}
