// Package extractor normalizes raw state and plan documents into
// address-keyed resource maps and before/after pairs.
package extractor

import (
	"fmt"
	"os"

	"github.com/driftscan/driftscan/pkg/types"
)

// Extractor turns parsed documents into resource maps. The strict flag
// decides what happens to a descriptor whose address cannot be computed:
// strict extraction fails, lenient extraction collects it separately under a
// synthetic address that can never collide with a real one.
type Extractor struct {
	strict bool
}

// New creates an extractor. Strict is the default policy; missing identifying
// fields abort extraction rather than silently merging resources.
func New(strict bool) *Extractor {
	return &Extractor{strict: strict}
}

// Unresolved describes a descriptor that could not be given a real address.
// Only produced by lenient extraction; never part of the resource map.
type Unresolved struct {
	// Address is the synthetic address, e.g. "unresolved[0]". Real addresses
	// always contain a dot separator, so these cannot shadow a resource.
	Address string      `json:"address"`
	Reason  string      `json:"reason"`
	Value   types.Value `json:"value"`
}

// StateResult is the outcome of snapshot-mode extraction.
type StateResult struct {
	Resources  types.ResourceMap
	Unresolved []Unresolved
}

// PlanResult is the outcome of plan-mode extraction.
type PlanResult struct {
	Changes    []types.ChangePair
	Unresolved []Unresolved
}

func syntheticAddress(n int) string {
	return fmt.Sprintf("unresolved[%d]", n)
}

// readFile loads a document from disk. Kept here so both modes share the
// error wording.
func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}
