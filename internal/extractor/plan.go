package extractor

import (
	"encoding/json"
	"fmt"

	drifterrors "github.com/driftscan/driftscan/internal/errors"
	"github.com/driftscan/driftscan/pkg/types"
)

// planDocument mirrors the plan document shape: a top-level list of change
// descriptors, each carrying an explicit address and a before/after pair.
type planDocument struct {
	ResourceChanges []planChange
}

type planChange struct {
	Address string `json:"address"`
	Change  struct {
		Before interface{} `json:"before"`
		After  interface{} `json:"after"`
	} `json:"change"`
}

// ExtractPlanFile reads and extracts a plan document from disk.
func (e *Extractor) ExtractPlanFile(path string) (*PlanResult, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	return e.ExtractPlan(data)
}

// ExtractPlan yields one before/after pair per address. A null before denotes
// pure creation, a null after pure deletion. Pairs keep the document order;
// classification re-sorts by address.
func (e *Extractor) ExtractPlan(data []byte) (*PlanResult, error) {
	doc, err := parsePlanDocument(data)
	if err != nil {
		return nil, err
	}

	result := &PlanResult{}
	seen := make(map[string]bool, len(doc.ResourceChanges))
	for i, ch := range doc.ResourceChanges {
		if ch.Address == "" {
			if e.strict {
				return nil, drifterrors.AddressUnresolved(
					"change descriptor at index %d has no address", i)
			}
			result.Unresolved = append(result.Unresolved, Unresolved{
				Address: syntheticAddress(len(result.Unresolved)),
				Reason:  fmt.Sprintf("change descriptor at index %d has no address", i),
				Value: map[string]interface{}{
					"before": ch.Change.Before,
					"after":  ch.Change.After,
				},
			})
			continue
		}
		if seen[ch.Address] {
			return nil, drifterrors.AddressCollision(ch.Address)
		}
		seen[ch.Address] = true
		result.Changes = append(result.Changes, types.ChangePair{
			Address: ch.Address,
			Before:  ch.Change.Before,
			After:   ch.Change.After,
		})
	}
	return result, nil
}

func parsePlanDocument(data []byte) (*planDocument, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, drifterrors.InputMalformed("document is not a JSON object").WithCause(err)
	}
	raw, ok := probe["resource_changes"]
	if !ok {
		return nil, drifterrors.InputMalformed("document has no top-level %q key", "resource_changes")
	}
	var changes []planChange
	if err := json.Unmarshal(raw, &changes); err != nil {
		return nil, drifterrors.InputMalformed("%q must be a list of change descriptors", "resource_changes").WithCause(err)
	}
	return &planDocument{ResourceChanges: changes}, nil
}
