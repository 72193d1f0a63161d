package extractor

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	drifterrors "github.com/driftscan/driftscan/internal/errors"
)

func TestExtractState_Addressing(t *testing.T) {
	doc := []byte(`{
		"resources": [
			{
				"type": "aws_instance",
				"name": "web",
				"instances": [
					{"attributes": {"instance_type": "t2.micro"}},
					{"attributes": {"instance_type": "t2.small"}},
					{"attributes": {"instance_type": "t2.large"}}
				]
			},
			{
				"type": "aws_s3_bucket",
				"name": "logs",
				"instances": [{"attributes": {"bucket": "logs"}}]
			}
		]
	}`)

	result, err := New(true).ExtractState(doc)
	require.NoError(t, err)
	require.Len(t, result.Resources, 4)
	assert.Empty(t, result.Unresolved)

	// first instance unindexed, later ones positional
	web := result.Resources["aws_instance.web"].(map[string]interface{})
	assert.Equal(t, "t2.micro", web["instance_type"])
	web1 := result.Resources["aws_instance.web[1]"].(map[string]interface{})
	assert.Equal(t, "t2.small", web1["instance_type"])
	web2 := result.Resources["aws_instance.web[2]"].(map[string]interface{})
	assert.Equal(t, "t2.large", web2["instance_type"])

	bucket := result.Resources["aws_s3_bucket.logs"].(map[string]interface{})
	assert.Equal(t, "logs", bucket["bucket"])
}

func TestExtractState_DuplicateAddress(t *testing.T) {
	doc := []byte(`{
		"resources": [
			{"type": "aws_instance", "name": "web", "instances": [{"attributes": {}}]},
			{"type": "aws_instance", "name": "web", "instances": [{"attributes": {}}]}
		]
	}`)

	_, err := New(true).ExtractState(doc)
	require.Error(t, err)
	assert.True(t, drifterrors.IsType(err, drifterrors.ErrorTypeAddressCollision))

	// lenient mode does not soften collisions either
	_, err = New(false).ExtractState(doc)
	require.Error(t, err)
	assert.True(t, drifterrors.IsType(err, drifterrors.ErrorTypeAddressCollision))
}

func TestExtractState_MissingIdentity_Strict(t *testing.T) {
	doc := []byte(`{
		"resources": [
			{"name": "web", "instances": [{"attributes": {}}]}
		]
	}`)

	_, err := New(true).ExtractState(doc)
	require.Error(t, err)
	assert.True(t, drifterrors.IsType(err, drifterrors.ErrorTypeAddressUnresolved))
}

func TestExtractState_MissingIdentity_Lenient(t *testing.T) {
	doc := []byte(`{
		"resources": [
			{"name": "web", "instances": [{"attributes": {"a": 1}}]},
			{"type": "aws_instance", "instances": [{"attributes": {}}]},
			{"type": "aws_instance", "name": "ok", "instances": [{"attributes": {}}]}
		]
	}`)

	result, err := New(false).ExtractState(doc)
	require.NoError(t, err)

	// unresolvable descriptors never enter the resource map
	require.Len(t, result.Resources, 1)
	_, ok := result.Resources["aws_instance.ok"]
	assert.True(t, ok)

	require.Len(t, result.Unresolved, 2)
	assert.Equal(t, "unresolved[0]", result.Unresolved[0].Address)
	assert.Equal(t, "unresolved[1]", result.Unresolved[1].Address)
	assert.Contains(t, result.Unresolved[0].Reason, "index 0")
}

func TestExtractState_Malformed(t *testing.T) {
	cases := []struct {
		name string
		doc  string
	}{
		{"not json", `{`},
		{"not an object", `[1,2,3]`},
		{"missing resources key", `{"version": 4}`},
		{"resources wrong kind", `{"resources": {"a": 1}}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(true).ExtractState([]byte(tc.doc))
			require.Error(t, err)
			assert.True(t, drifterrors.IsType(err, drifterrors.ErrorTypeInputMalformed))
		})
	}
}

func TestExtractState_NullAttributes(t *testing.T) {
	doc := []byte(`{
		"resources": [
			{"type": "aws_instance", "name": "bare", "instances": [{}]}
		]
	}`)

	result, err := New(true).ExtractState(doc)
	require.NoError(t, err)
	val, ok := result.Resources["aws_instance.bare"]
	require.True(t, ok)
	assert.Nil(t, val)
}

func TestExtractPlan(t *testing.T) {
	doc := []byte(`{
		"resource_changes": [
			{"address": "aws_security_group.new", "change": {"before": null, "after": {"id": "sg-1"}}},
			{"address": "aws_security_group.old", "change": {"before": {"id": "sg-2"}, "after": null}},
			{"address": "aws_security_group.same", "change": {"before": {"id": "sg-3"}, "after": {"id": "sg-3"}}}
		]
	}`)

	result, err := New(true).ExtractPlan(doc)
	require.NoError(t, err)
	require.Len(t, result.Changes, 3)

	assert.Equal(t, "aws_security_group.new", result.Changes[0].Address)
	assert.Nil(t, result.Changes[0].Before)
	assert.NotNil(t, result.Changes[0].After)

	assert.NotNil(t, result.Changes[1].Before)
	assert.Nil(t, result.Changes[1].After)
}

func TestExtractPlan_DuplicateAddress(t *testing.T) {
	doc := []byte(`{
		"resource_changes": [
			{"address": "aws_instance.web", "change": {"before": null, "after": {}}},
			{"address": "aws_instance.web", "change": {"before": {}, "after": null}}
		]
	}`)

	_, err := New(true).ExtractPlan(doc)
	require.Error(t, err)
	assert.True(t, drifterrors.IsType(err, drifterrors.ErrorTypeAddressCollision))
}

func TestExtractPlan_MissingAddress(t *testing.T) {
	doc := []byte(`{
		"resource_changes": [
			{"change": {"before": null, "after": {"id": "sg-1"}}}
		]
	}`)

	_, err := New(true).ExtractPlan(doc)
	require.Error(t, err)
	assert.True(t, drifterrors.IsType(err, drifterrors.ErrorTypeAddressUnresolved))

	result, err := New(false).ExtractPlan(doc)
	require.NoError(t, err)
	assert.Empty(t, result.Changes)
	require.Len(t, result.Unresolved, 1)
	assert.Equal(t, "unresolved[0]", result.Unresolved[0].Address)
}

func TestExtractPlan_Malformed(t *testing.T) {
	_, err := New(true).ExtractPlan([]byte(`{"wrong": []}`))
	require.Error(t, err)
	assert.True(t, drifterrors.IsType(err, drifterrors.ErrorTypeInputMalformed))
}

func TestExtractStateFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "state.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"resources": []}`), 0o644))

	result, err := New(true).ExtractStateFile(path)
	require.NoError(t, err)
	assert.Empty(t, result.Resources)

	_, err = New(true).ExtractStateFile(filepath.Join(dir, "missing.json"))
	require.Error(t, err)
}
