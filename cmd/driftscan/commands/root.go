package commands

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/driftscan/driftscan/internal/config"
	"github.com/driftscan/driftscan/internal/logger"
)

var (
	cfgFile string
	verbose bool

	// exitCode is the git-diff-style process exit code: 0 means no drift,
	// 1 means drift detected. Errors exit with 2 from main.
	exitCode int
)

// Execute runs the CLI and returns the process exit code.
func Execute() (int, error) {
	exitCode = 0
	if err := NewRootCommand().Execute(); err != nil {
		return 2, err
	}
	return exitCode, nil
}

// NewRootCommand builds the driftscan command tree.
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "driftscan",
		Short: "Detect drift between infrastructure snapshots and plans",
		Long: `driftscan compares two versions of an infrastructure-resource graph and
reports every difference as a precise, addressable change.

Compare two state snapshots, or classify a proposed plan, and optionally
overlay monthly cost deltas from an external estimator.

Exit codes: 0 = no drift, 1 = drift detected, 2 = error.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ./driftscan.yaml)")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	cmd.AddCommand(newCompareCommand())
	cmd.AddCommand(newPlanCommand())
	cmd.AddCommand(newVersionCommand())
	return cmd
}

func setup() (*config.Config, logger.Logger, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger.NewWithOptions(os.Stderr, verbose), nil
}
