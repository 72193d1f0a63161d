// Package output renders drift and cost reports for the console and for
// machine consumption.
package output

import (
	"fmt"

	"github.com/driftscan/driftscan/pkg/types"
)

// Formatter renders a drift report to bytes.
type Formatter interface {
	Format(report *types.DriftReport) ([]byte, error)
}

// Options tweak human-readable formatters.
type Options struct {
	// Detailed expands every modified resource's atomic differences.
	Detailed bool
	// NoColor disables ANSI colors.
	NoColor bool
}

// New returns the formatter for a format name.
func New(format string, opts Options) (Formatter, error) {
	switch format {
	case "json":
		return &JSONFormatter{}, nil
	case "yaml":
		return &YAMLFormatter{}, nil
	case "summary", "":
		return &SummaryFormatter{opts: opts}, nil
	case "unix":
		return &UnixFormatter{}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q (supported: summary, unix, json, yaml)", format)
	}
}
