package output

import (
	"encoding/json"

	"github.com/driftscan/driftscan/pkg/types"
	"gopkg.in/yaml.v3"
)

// YAMLFormatter renders the report as YAML. It round-trips through the JSON
// encoding so the presence rules for before/after and old/new carry over.
type YAMLFormatter struct{}

func (f *YAMLFormatter) Format(report *types.DriftReport) ([]byte, error) {
	data, err := json.Marshal(report)
	if err != nil {
		return nil, err
	}
	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return yaml.Marshal(doc)
}
