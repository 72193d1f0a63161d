package types

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Step is one element of a Path: either an object key or a sequence index.
type Step struct {
	Key     string
	Index   int
	Indexed bool
}

// Field creates a key step.
func Field(key string) Step {
	return Step{Key: key}
}

// Item creates an index step.
func Item(i int) Step {
	return Step{Index: i, Indexed: true}
}

// MarshalJSON encodes a key step as a JSON string and an index step as a
// JSON number, so a Path serializes as a mixed array like ["ingress",0,"port"].
func (s Step) MarshalJSON() ([]byte, error) {
	if s.Indexed {
		return json.Marshal(s.Index)
	}
	return json.Marshal(s.Key)
}

// UnmarshalJSON decodes the mixed string/number array form.
func (s *Step) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch v := raw.(type) {
	case string:
		*s = Field(v)
		return nil
	case float64:
		*s = Item(int(v))
		return nil
	default:
		return fmt.Errorf("path step must be a string or an integer, got %T", raw)
	}
}

// Path locates a value inside a nested structure, outermost step first.
type Path []Step

// Child returns a new path extended by an object key. The receiver is never
// mutated; sibling subtrees share the prefix during recursion.
func (p Path) Child(key string) Path {
	next := make(Path, len(p), len(p)+1)
	copy(next, p)
	return append(next, Field(key))
}

// Element returns a new path extended by a sequence index.
func (p Path) Element(i int) Path {
	next := make(Path, len(p), len(p)+1)
	copy(next, p)
	return append(next, Item(i))
}

// String renders the path in the dotted/bracketed form used in reports,
// e.g. "tags.Env" or "ingress[0].port". The empty path renders as ".".
func (p Path) String() string {
	if len(p) == 0 {
		return "."
	}
	var sb strings.Builder
	for i, step := range p {
		if step.Indexed {
			sb.WriteString("[")
			sb.WriteString(strconv.Itoa(step.Index))
			sb.WriteString("]")
			continue
		}
		if i > 0 {
			sb.WriteString(".")
		}
		sb.WriteString(step.Key)
	}
	return sb.String()
}

// Compare orders paths lexicographically, step by step; a path orders before
// any of its extensions.
func (p Path) Compare(o Path) int {
	for i := 0; i < len(p) && i < len(o); i++ {
		a, b := p[i], o[i]
		if a.Indexed != b.Indexed {
			if a.Indexed {
				return 1
			}
			return -1
		}
		if a.Indexed {
			if a.Index != b.Index {
				if a.Index < b.Index {
					return -1
				}
				return 1
			}
			continue
		}
		if a.Key != b.Key {
			if a.Key < b.Key {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(p) < len(o):
		return -1
	case len(p) > len(o):
		return 1
	default:
		return 0
	}
}
