package differ

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/driftscan/driftscan/pkg/types"
)

func TestEngine_Diff_Reflexive(t *testing.T) {
	engine := NewEngine()

	values := []types.Value{
		nil,
		"hello",
		42.0,
		true,
		[]interface{}{"a", "b", 1.0},
		map[string]interface{}{
			"tags":    map[string]interface{}{"Env": "dev"},
			"ingress": []interface{}{map[string]interface{}{"port": 443.0}},
			"null":    nil,
		},
	}

	for _, v := range values {
		assert.Empty(t, engine.Diff(v, v, true))
		assert.Empty(t, engine.Diff(v, v, false))
	}
}

func TestEngine_Diff_ScalarAntisymmetry(t *testing.T) {
	engine := NewEngine()

	forward := engine.Diff("t2.micro", "t2.large", false)
	backward := engine.Diff("t2.large", "t2.micro", false)

	require.Len(t, forward, 1)
	require.Len(t, backward, 1)
	assert.Equal(t, types.DiffValueChanged, forward[0].Kind)
	assert.Equal(t, forward[0].Old, backward[0].New)
	assert.Equal(t, forward[0].New, backward[0].Old)
}

func TestEngine_Diff_NestedObjects(t *testing.T) {
	engine := NewEngine()

	old := map[string]interface{}{
		"tags": map[string]interface{}{"Env": "dev"},
	}
	new := map[string]interface{}{
		"tags": map[string]interface{}{"Env": "prod", "Owner": "team"},
	}

	diffs := engine.Diff(old, new, false)
	require.Len(t, diffs, 2)

	assert.Equal(t, types.DiffValueChanged, diffs[0].Kind)
	assert.Equal(t, "tags.Env", diffs[0].Path.String())
	assert.Equal(t, "dev", diffs[0].Old)
	assert.Equal(t, "prod", diffs[0].New)

	assert.Equal(t, types.DiffKeyAdded, diffs[1].Kind)
	assert.Equal(t, "tags.Owner", diffs[1].Path.String())
	assert.Equal(t, "team", diffs[1].New)
}

func TestEngine_Diff_KeyRemoved(t *testing.T) {
	engine := NewEngine()

	diffs := engine.Diff(
		map[string]interface{}{"a": 1.0, "b": 2.0},
		map[string]interface{}{"a": 1.0},
		false,
	)
	require.Len(t, diffs, 1)
	assert.Equal(t, types.DiffKeyRemoved, diffs[0].Kind)
	assert.Equal(t, "b", diffs[0].Path.String())
	assert.Equal(t, 2.0, diffs[0].Old)
}

func TestEngine_Diff_TypeChanged(t *testing.T) {
	engine := NewEngine()

	cases := []struct {
		name     string
		old, new types.Value
	}{
		{"object vs sequence", map[string]interface{}{"a": 1.0}, []interface{}{1.0}},
		{"scalar vs null", "x", nil},
		{"sequence vs scalar", []interface{}{}, "x"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			diffs := engine.Diff(tc.old, tc.new, false)
			require.Len(t, diffs, 1)
			assert.Equal(t, types.DiffTypeChanged, diffs[0].Kind)
			assert.Equal(t, tc.old, diffs[0].Old)
			assert.Equal(t, tc.new, diffs[0].New)
		})
	}
}

func TestEngine_Diff_OrderSensitiveSequences(t *testing.T) {
	engine := NewEngine()

	old := []interface{}{"a", "b", "c"}
	new := []interface{}{"a", "x"}

	diffs := engine.Diff(old, new, true)
	require.Len(t, diffs, 2)

	assert.Equal(t, types.DiffValueChanged, diffs[0].Kind)
	assert.Equal(t, "[1]", diffs[0].Path.String())
	assert.Equal(t, "b", diffs[0].Old)
	assert.Equal(t, "x", diffs[0].New)

	assert.Equal(t, types.DiffItemRemoved, diffs[1].Kind)
	assert.Equal(t, "[2]", diffs[1].Path.String())
	assert.Equal(t, "c", diffs[1].Old)
}

func TestEngine_Diff_OrderSensitiveTrailingAdds(t *testing.T) {
	engine := NewEngine()

	diffs := engine.Diff([]interface{}{"a"}, []interface{}{"a", "b", "c"}, true)
	require.Len(t, diffs, 2)
	assert.Equal(t, types.DiffItemAdded, diffs[0].Kind)
	assert.Equal(t, "[1]", diffs[0].Path.String())
	assert.Equal(t, types.DiffItemAdded, diffs[1].Kind)
	assert.Equal(t, "[2]", diffs[1].Path.String())
}

func TestEngine_Diff_PermutationInvariance(t *testing.T) {
	engine := NewEngine()

	seq := []interface{}{
		map[string]interface{}{"port": 80.0},
		map[string]interface{}{"port": 443.0},
		"x",
		"x",
		1.0,
	}
	permuted := []interface{}{
		"x",
		1.0,
		map[string]interface{}{"port": 443.0},
		"x",
		map[string]interface{}{"port": 80.0},
	}

	assert.Empty(t, engine.Diff(seq, permuted, false))

	// the same permutation is a wall of diffs when order matters
	assert.NotEmpty(t, engine.Diff(seq, permuted, true))
}

func TestEngine_Diff_MultisetAddsAndRemoves(t *testing.T) {
	engine := NewEngine()

	old := []interface{}{"a", "b", "b"}
	new := []interface{}{"b", "c"}

	diffs := engine.Diff(old, new, false)
	require.Len(t, diffs, 3)

	// removals precede additions, each canonically ordered
	assert.Equal(t, types.DiffItemRemoved, diffs[0].Kind)
	assert.Equal(t, "a", diffs[0].Old)
	assert.Equal(t, types.DiffItemRemoved, diffs[1].Kind)
	assert.Equal(t, "b", diffs[1].Old)
	assert.Equal(t, types.DiffItemAdded, diffs[2].Kind)
	assert.Equal(t, "c", diffs[2].New)

	// multiset entries point at the sequence itself
	assert.Equal(t, ".", diffs[0].Path.String())
}

func TestEngine_Diff_NumericEqualityByValue(t *testing.T) {
	engine := NewEngine()

	assert.Empty(t, engine.Diff(3, 3.0, false))
	assert.Empty(t, engine.Diff(int64(7), 7.0, true))

	diffs := engine.Diff(3, 4.0, false)
	require.Len(t, diffs, 1)
	assert.Equal(t, types.DiffValueChanged, diffs[0].Kind)
}

func TestEngine_Diff_DeterministicOrdering(t *testing.T) {
	engine := NewEngine()

	old := map[string]interface{}{
		"z": 1.0, "a": 1.0, "m": map[string]interface{}{"y": 1.0, "b": 1.0},
	}
	new := map[string]interface{}{
		"z": 2.0, "a": 2.0, "m": map[string]interface{}{"y": 2.0, "b": 2.0},
	}

	first := engine.Diff(old, new, false)
	require.Len(t, first, 4)
	assert.Equal(t, "a", first[0].Path.String())
	assert.Equal(t, "m.b", first[1].Path.String())
	assert.Equal(t, "m.y", first[2].Path.String())
	assert.Equal(t, "z", first[3].Path.String())

	for i := 0; i < 20; i++ {
		assert.Equal(t, first, engine.Diff(old, new, false))
	}
}

func TestEngine_Diff_DeepNestedPath(t *testing.T) {
	engine := NewEngine()

	old := map[string]interface{}{
		"ingress": []interface{}{
			map[string]interface{}{"port": 80.0},
		},
	}
	new := map[string]interface{}{
		"ingress": []interface{}{
			map[string]interface{}{"port": 8080.0},
		},
	}

	diffs := engine.Diff(old, new, true)
	require.Len(t, diffs, 1)
	assert.Equal(t, "ingress[0].port", diffs[0].Path.String())
	assert.Equal(t, 80.0, diffs[0].Old)
	assert.Equal(t, 8080.0, diffs[0].New)
}

func TestEngine_Diff_NullValues(t *testing.T) {
	engine := NewEngine()

	assert.Empty(t, engine.Diff(nil, nil, false))

	diffs := engine.Diff(
		map[string]interface{}{"a": nil},
		map[string]interface{}{"a": "set"},
		false,
	)
	require.Len(t, diffs, 1)
	assert.Equal(t, types.DiffTypeChanged, diffs[0].Kind)
	assert.Equal(t, "a", diffs[0].Path.String())
}
