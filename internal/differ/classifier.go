package differ

import (
	"runtime"
	"sort"

	drifterrors "github.com/driftscan/driftscan/internal/errors"
	"github.com/driftscan/driftscan/pkg/types"
)

// Classifier assigns each resource address one change action, delegating to
// the diff engine for modified resources. Classification is total: every
// address in the union of the inputs yields exactly one record.
type Classifier struct {
	engine *Engine

	// workers and parallelThreshold control the concurrent path; classification
	// per address is independent, so large inputs fan out over a worker pool.
	workers           int
	parallelThreshold int

	// orderSensitiveSnapshots switches snapshot diffs to index-by-index
	// sequence reporting. Off by default so reordered collections inside a
	// resource do not register as drift.
	orderSensitiveSnapshots bool
}

// ClassifierOption configures a Classifier.
type ClassifierOption func(*Classifier)

// WithWorkers sets the worker count for parallel classification.
func WithWorkers(n int) ClassifierOption {
	return func(c *Classifier) {
		if n > 0 {
			c.workers = n
		}
	}
}

// WithParallelThreshold sets the address count above which classification
// runs on the worker pool.
func WithParallelThreshold(n int) ClassifierOption {
	return func(c *Classifier) {
		if n > 0 {
			c.parallelThreshold = n
		}
	}
}

// WithOrderSensitiveSnapshots makes snapshot diffs report sequence
// mismatches index by index.
func WithOrderSensitiveSnapshots(enabled bool) ClassifierOption {
	return func(c *Classifier) {
		c.orderSensitiveSnapshots = enabled
	}
}

// NewClassifier creates a classifier with defaults sized to the host.
func NewClassifier(opts ...ClassifierOption) *Classifier {
	c := &Classifier{
		engine:            NewEngine(),
		workers:           runtime.NumCPU(),
		parallelThreshold: 200,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ClassifySnapshots compares two full resource maps (drift between two
// snapshots). Diffs for modified resources are computed order-insensitively,
// so reordered collections inside a resource do not register as drift.
func (c *Classifier) ClassifySnapshots(old, new types.ResourceMap) (*types.DriftReport, error) {
	addrs := unionAddresses(old, new)

	var records []types.ChangeRecord
	if len(addrs) >= c.parallelThreshold && c.workers > 1 {
		records = c.classifyParallel(addrs, old, new)
	} else {
		records = make([]types.ChangeRecord, len(addrs))
		for i, addr := range addrs {
			before, hasBefore := old[addr]
			after, hasAfter := new[addr]
			records[i] = c.classifyAddress(addr, before, hasBefore, after, hasAfter, c.orderSensitiveSnapshots)
		}
	}

	return types.NewDriftReport(records), nil
}

// ClassifyPlan classifies plan-style before/after pairs, one per address.
// Diffs are computed order-sensitively since a plan states an exact intended
// layout. A duplicate address is a data-integrity fault.
func (c *Classifier) ClassifyPlan(changes []types.ChangePair) (*types.DriftReport, error) {
	seen := make(map[string]bool, len(changes))
	records := make([]types.ChangeRecord, len(changes))
	for i, ch := range changes {
		if seen[ch.Address] {
			return nil, drifterrors.AddressCollision(ch.Address)
		}
		seen[ch.Address] = true
		records[i] = c.classifyAddress(ch.Address, ch.Before, ch.Before != nil, ch.After, ch.After != nil, true)
	}
	return types.NewDriftReport(records), nil
}

// classifyAddress produces the single record for one address. It is pure and
// touches no shared state, which is what makes the parallel path safe.
func (c *Classifier) classifyAddress(addr string, before types.Value, hasBefore bool, after types.Value, hasAfter bool, orderSensitive bool) types.ChangeRecord {
	switch {
	case !hasBefore && hasAfter:
		return types.ChangeRecord{
			Address: addr,
			Action:  types.ActionCreated,
			After:   after,
		}
	case hasBefore && !hasAfter:
		return types.ChangeRecord{
			Address: addr,
			Action:  types.ActionDeleted,
			Before:  before,
		}
	case types.Equal(before, after):
		return types.ChangeRecord{
			Address: addr,
			Action:  types.ActionUnchanged,
			Before:  before,
			After:   after,
		}
	default:
		diffs := c.engine.Diff(before, after, orderSensitive)
		if len(diffs) == 0 {
			// Unequal only by sequence ordering in order-insensitive mode.
			// Reordering is not drift, so the record stays unchanged.
			return types.ChangeRecord{
				Address: addr,
				Action:  types.ActionUnchanged,
				Before:  before,
				After:   after,
			}
		}
		return types.ChangeRecord{
			Address: addr,
			Action:  types.ActionModified,
			Before:  before,
			After:   after,
			Diffs:   diffs,
		}
	}
}

func unionAddresses(old, new types.ResourceMap) []string {
	addrs := make([]string, 0, len(old)+len(new))
	for addr := range old {
		addrs = append(addrs, addr)
	}
	for addr := range new {
		if _, ok := old[addr]; !ok {
			addrs = append(addrs, addr)
		}
	}
	sort.Strings(addrs)
	return addrs
}
