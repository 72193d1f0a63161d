package differ

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/driftscan/driftscan/pkg/types"
)

// Engine performs recursive structural diffs over nested JSON-compatible
// values. It is stateless; a single Engine is safe for concurrent use.
type Engine struct{}

// NewEngine creates a diff engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Diff compares two values and returns their atomic differences, ordered
// lexicographically by path. Equal inputs yield an empty result.
//
// orderSensitive controls how sequence mismatches are reported: index-by-index
// when true, as a multiset when false. Equality itself is always strict and
// order-sensitive, so identical subtrees short-circuit in either mode.
func (e *Engine) Diff(old, new types.Value, orderSensitive bool) []types.AtomicDiff {
	var diffs []types.AtomicDiff
	e.walk(types.Path{}, old, new, orderSensitive, &diffs)
	return diffs
}

// walk descends both values in lockstep, appending differences in depth-first
// order over sorted keys and ascending indexes. That traversal emits paths in
// lexicographic order without a final sort.
func (e *Engine) walk(path types.Path, old, new types.Value, orderSensitive bool, out *[]types.AtomicDiff) {
	if types.Equal(old, new) {
		return
	}

	oldKind, newKind := types.KindOf(old), types.KindOf(new)
	if oldKind != newKind {
		*out = append(*out, types.AtomicDiff{
			Path: path,
			Kind: types.DiffTypeChanged,
			Old:  old,
			New:  new,
		})
		return
	}

	switch oldKind {
	case types.KindObject:
		e.walkObjects(path, old.(map[string]interface{}), new.(map[string]interface{}), orderSensitive, out)
	case types.KindSequence:
		if orderSensitive {
			e.walkSequences(path, old.([]interface{}), new.([]interface{}), out)
		} else {
			e.walkMultisets(path, old.([]interface{}), new.([]interface{}), out)
		}
	default:
		// scalars of the same kind that are not equal
		*out = append(*out, types.AtomicDiff{
			Path: path,
			Kind: types.DiffValueChanged,
			Old:  old,
			New:  new,
		})
	}
}

func (e *Engine) walkObjects(path types.Path, old, new map[string]interface{}, orderSensitive bool, out *[]types.AtomicDiff) {
	keys := make([]string, 0, len(old)+len(new))
	for k := range old {
		keys = append(keys, k)
	}
	for k := range new {
		if _, ok := old[k]; !ok {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	for _, k := range keys {
		oldVal, inOld := old[k]
		newVal, inNew := new[k]
		switch {
		case inOld && !inNew:
			*out = append(*out, types.AtomicDiff{
				Path: path.Child(k),
				Kind: types.DiffKeyRemoved,
				Old:  oldVal,
			})
		case !inOld && inNew:
			*out = append(*out, types.AtomicDiff{
				Path: path.Child(k),
				Kind: types.DiffKeyAdded,
				New:  newVal,
			})
		default:
			e.walk(path.Child(k), oldVal, newVal, orderSensitive, out)
		}
	}
}

// walkSequences compares index by index. Shared indexes recurse; trailing
// extras are reported as removed or added items at their index path.
func (e *Engine) walkSequences(path types.Path, old, new []interface{}, out *[]types.AtomicDiff) {
	shared := len(old)
	if len(new) < shared {
		shared = len(new)
	}
	for i := 0; i < shared; i++ {
		e.walk(path.Element(i), old[i], new[i], true, out)
	}
	for i := shared; i < len(old); i++ {
		*out = append(*out, types.AtomicDiff{
			Path: path.Element(i),
			Kind: types.DiffItemRemoved,
			Old:  old[i],
		})
	}
	for i := shared; i < len(new); i++ {
		*out = append(*out, types.AtomicDiff{
			Path: path.Element(i),
			Kind: types.DiffItemAdded,
			New:  new[i],
		})
	}
}

// walkMultisets treats both sequences as multisets: equal-count matching
// elements cancel out, leftovers become removed/added items at the sequence's
// own path. Per-element paths are given up so that reordering alone never
// produces a difference. Entries are ordered by their canonical encoding to
// keep output byte-stable across runs.
func (e *Engine) walkMultisets(path types.Path, old, new []interface{}, out *[]types.AtomicDiff) {
	matched := make([]bool, len(new))
	var removed []types.Value
	for _, oldVal := range old {
		found := false
		for j, newVal := range new {
			if !matched[j] && types.Equal(oldVal, newVal) {
				matched[j] = true
				found = true
				break
			}
		}
		if !found {
			removed = append(removed, oldVal)
		}
	}
	var added []types.Value
	for j, newVal := range new {
		if !matched[j] {
			added = append(added, newVal)
		}
	}

	sortCanonical(removed)
	sortCanonical(added)

	for _, v := range removed {
		*out = append(*out, types.AtomicDiff{
			Path: path,
			Kind: types.DiffItemRemoved,
			Old:  v,
		})
	}
	for _, v := range added {
		*out = append(*out, types.AtomicDiff{
			Path: path,
			Kind: types.DiffItemAdded,
			New:  v,
		})
	}
}

// sortCanonical orders values by their JSON encoding. encoding/json emits
// object keys sorted, so equal values always encode identically.
func sortCanonical(values []types.Value) {
	sort.SliceStable(values, func(i, j int) bool {
		return canonicalKey(values[i]) < canonicalKey(values[j])
	})
}

func canonicalKey(v types.Value) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(data)
}
