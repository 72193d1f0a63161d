package extractor

import (
	"encoding/json"
	"fmt"

	drifterrors "github.com/driftscan/driftscan/internal/errors"
	"github.com/driftscan/driftscan/pkg/types"
)

// stateDocument mirrors the snapshot document shape: a top-level list of
// resource descriptors, each holding one instance per deployed copy.
type stateDocument struct {
	Resources []stateResource
}

type stateResource struct {
	Type      string          `json:"type"`
	Name      string          `json:"name"`
	Instances []stateInstance `json:"instances"`
}

type stateInstance struct {
	Attributes map[string]interface{} `json:"attributes"`
	Private    map[string]interface{} `json:"private,omitempty"`
}

// ExtractStateFile reads and extracts a snapshot document from disk.
func (e *Extractor) ExtractStateFile(path string) (*StateResult, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	return e.ExtractState(data)
}

// ExtractState normalizes a snapshot document into an address-keyed resource
// map. The first instance of a descriptor takes the bare "type.name" address;
// later instances take "type.name[index]" with their 0-based position.
func (e *Extractor) ExtractState(data []byte) (*StateResult, error) {
	doc, err := parseStateDocument(data)
	if err != nil {
		return nil, err
	}

	result := &StateResult{Resources: make(types.ResourceMap)}
	for i, res := range doc.Resources {
		if res.Type == "" || res.Name == "" {
			if e.strict {
				return nil, drifterrors.AddressUnresolved(
					"resource descriptor at index %d is missing its type or name", i)
			}
			result.Unresolved = append(result.Unresolved, Unresolved{
				Address: syntheticAddress(len(result.Unresolved)),
				Reason:  fmt.Sprintf("descriptor at index %d is missing its type or name", i),
				Value:   descriptorValue(res),
			})
			continue
		}

		for j, inst := range res.Instances {
			addr := res.Type + "." + res.Name
			if j > 0 {
				addr = fmt.Sprintf("%s[%d]", addr, j)
			}
			if _, exists := result.Resources[addr]; exists {
				return nil, drifterrors.AddressCollision(addr)
			}
			result.Resources[addr] = instanceValue(inst)
		}
	}
	return result, nil
}

// parseStateDocument validates the top-level shape before committing to the
// typed decode, so a missing key and a wrong value kind report distinctly.
func parseStateDocument(data []byte) (*stateDocument, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, drifterrors.InputMalformed("document is not a JSON object").WithCause(err)
	}
	raw, ok := probe["resources"]
	if !ok {
		return nil, drifterrors.InputMalformed("document has no top-level %q key", "resources")
	}
	var resources []stateResource
	if err := json.Unmarshal(raw, &resources); err != nil {
		return nil, drifterrors.InputMalformed("%q must be a list of resource descriptors", "resources").WithCause(err)
	}
	return &stateDocument{Resources: resources}, nil
}

// instanceValue keeps the instance's nested attributes as the address's value.
// A nil attribute map decodes to an explicit null value.
func instanceValue(inst stateInstance) types.Value {
	if inst.Attributes == nil {
		return nil
	}
	return map[string]interface{}(inst.Attributes)
}

// descriptorValue preserves what was present on an unresolvable descriptor so
// it can still be reported.
func descriptorValue(res stateResource) types.Value {
	out := map[string]interface{}{}
	if res.Type != "" {
		out["type"] = res.Type
	}
	if res.Name != "" {
		out["name"] = res.Name
	}
	if len(res.Instances) > 0 {
		instances := make([]interface{}, 0, len(res.Instances))
		for _, inst := range res.Instances {
			instances = append(instances, instanceValue(inst))
		}
		out["instances"] = instances
	}
	return out
}
