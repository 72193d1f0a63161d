package cost

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/driftscan/driftscan/pkg/types"
)

// Report carries the dollar deltas for one drift comparison.
type Report struct {
	OldMonthly float64         `json:"old_monthly"`
	NewMonthly float64         `json:"new_monthly"`
	Delta      float64         `json:"delta"`
	Resources  []ResourceDelta `json:"resources"`
}

// ResourceDelta is the per-address monthly cost change. Action is taken from
// the drift report when the address appears there.
type ResourceDelta struct {
	Address string       `json:"address"`
	Action  types.Action `json:"action,omitempty"`
	Old     float64      `json:"old"`
	New     float64      `json:"new"`
	Delta   float64      `json:"delta"`
}

// Analyze prices the old and new configurations and joins the results with
// the drift report by address. The two directories must be distinct: pricing
// the same directory twice always yields a zero delta and means the caller
// forgot to supply the second configuration.
func Analyze(ctx context.Context, provider Provider, drift *types.DriftReport, oldDir, newDir string) (*Report, error) {
	if sameDir(oldDir, newDir) {
		return nil, fmt.Errorf("old and new cost directories are the same (%s); cost deltas need two distinct priced configurations", oldDir)
	}

	oldTotal, err := provider.TotalMonthlyCost(ctx, oldDir)
	if err != nil {
		return nil, err
	}
	newTotal, err := provider.TotalMonthlyCost(ctx, newDir)
	if err != nil {
		return nil, err
	}
	oldCosts, err := provider.ResourceMonthlyCosts(ctx, oldDir)
	if err != nil {
		return nil, err
	}
	newCosts, err := provider.ResourceMonthlyCosts(ctx, newDir)
	if err != nil {
		return nil, err
	}

	return Overlay(drift, oldTotal, newTotal, oldCosts, newCosts), nil
}

// Overlay joins priced totals and per-resource costs with a drift report.
// Pure address-set arithmetic; addresses priced on either side appear once,
// ordered ascending.
func Overlay(drift *types.DriftReport, oldTotal, newTotal float64, oldCosts, newCosts map[string]float64) *Report {
	actions := make(map[string]types.Action, len(drift.Records))
	for _, rec := range drift.Records {
		actions[rec.Address] = rec.Action
	}

	addrs := make([]string, 0, len(oldCosts)+len(newCosts))
	for addr := range oldCosts {
		addrs = append(addrs, addr)
	}
	for addr := range newCosts {
		if _, ok := oldCosts[addr]; !ok {
			addrs = append(addrs, addr)
		}
	}
	sort.Strings(addrs)

	report := &Report{
		OldMonthly: oldTotal,
		NewMonthly: newTotal,
		Delta:      newTotal - oldTotal,
	}
	for _, addr := range addrs {
		oldCost := oldCosts[addr]
		newCost := newCosts[addr]
		report.Resources = append(report.Resources, ResourceDelta{
			Address: addr,
			Action:  actions[addr],
			Old:     oldCost,
			New:     newCost,
			Delta:   newCost - oldCost,
		})
	}
	return report
}

func sameDir(a, b string) bool {
	aa, errA := filepath.Abs(a)
	bb, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return aa == bb
}
