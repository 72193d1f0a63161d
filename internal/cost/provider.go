// Package cost overlays monthly cost estimates from an external provider on
// top of a drift report. The overlay is strictly additive: provider failures
// never invalidate the drift computation.
package cost

import "context"

// Provider estimates monthly costs for a priced configuration directory.
type Provider interface {
	// TotalMonthlyCost returns the total estimated monthly cost.
	TotalMonthlyCost(ctx context.Context, dir string) (float64, error)
	// ResourceMonthlyCosts returns per-resource monthly costs keyed by
	// resource address ("type.name").
	ResourceMonthlyCosts(ctx context.Context, dir string) (map[string]float64, error)
}
