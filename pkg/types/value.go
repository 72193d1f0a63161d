package types

import (
	"encoding/json"
	"sort"
)

// Value is any JSON-compatible nested value: a map[string]interface{} object,
// a []interface{} sequence, a scalar (string, number, bool) or nil.
type Value = interface{}

// ResourceMap keys resource addresses to their attribute values. It is built
// once per document snapshot and treated as read-only afterward.
type ResourceMap map[string]Value

// Addresses returns the map's addresses in ascending order.
func (m ResourceMap) Addresses() []string {
	addrs := make([]string, 0, len(m))
	for addr := range m {
		addrs = append(addrs, addr)
	}
	sort.Strings(addrs)
	return addrs
}

// Kind identifies the fundamental shape of a Value.
type Kind int

const (
	KindNull Kind = iota
	KindScalar
	KindObject
	KindSequence
)

// String returns a human-readable kind name.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindObject:
		return "object"
	case KindSequence:
		return "sequence"
	default:
		return "scalar"
	}
}

// KindOf classifies a decoded JSON value into one of the four fundamental kinds.
func KindOf(v Value) Kind {
	switch v.(type) {
	case nil:
		return KindNull
	case map[string]interface{}:
		return KindObject
	case []interface{}:
		return KindSequence
	default:
		return KindScalar
	}
}

// Equal reports structural deep equality between two values. Sequences are
// compared order-sensitively and numbers by value, not representation.
func Equal(a, b Value) bool {
	ak, bk := KindOf(a), KindOf(b)
	if ak != bk {
		return false
	}
	switch ak {
	case KindNull:
		return true
	case KindObject:
		ao := a.(map[string]interface{})
		bo := b.(map[string]interface{})
		if len(ao) != len(bo) {
			return false
		}
		for k, av := range ao {
			bv, ok := bo[k]
			if !ok || !Equal(av, bv) {
				return false
			}
		}
		return true
	case KindSequence:
		as := a.([]interface{})
		bs := b.([]interface{})
		if len(as) != len(bs) {
			return false
		}
		for i := range as {
			if !Equal(as[i], bs[i]) {
				return false
			}
		}
		return true
	default:
		return scalarEqual(a, b)
	}
}

func scalarEqual(a, b Value) bool {
	af, aNum := numericValue(a)
	bf, bNum := numericValue(b)
	if aNum || bNum {
		return aNum && bNum && af == bf
	}
	return a == b
}

// numericValue converts the numeric representations produced by JSON decoding
// and by Go literals in tests to a comparable float64.
func numericValue(v Value) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
