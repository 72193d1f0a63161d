package types

import (
	"encoding/json"
	"fmt"
)

// DiffKind tags one atomic difference between two nested values.
type DiffKind string

const (
	// DiffValueChanged indicates a scalar at the path changed value.
	DiffValueChanged DiffKind = "value_changed"
	// DiffKeyAdded indicates an object key exists only in the new value.
	DiffKeyAdded DiffKind = "key_added"
	// DiffKeyRemoved indicates an object key exists only in the old value.
	DiffKeyRemoved DiffKind = "key_removed"
	// DiffItemAdded indicates a sequence element exists only in the new value.
	DiffItemAdded DiffKind = "item_added"
	// DiffItemRemoved indicates a sequence element exists only in the old value.
	DiffItemRemoved DiffKind = "item_removed"
	// DiffTypeChanged indicates the fundamental kind differs between old and new.
	DiffTypeChanged DiffKind = "type_changed"
)

// IsValid checks if the DiffKind is one of the defined tags.
func (k DiffKind) IsValid() bool {
	switch k {
	case DiffValueChanged, DiffKeyAdded, DiffKeyRemoved, DiffItemAdded, DiffItemRemoved, DiffTypeChanged:
		return true
	default:
		return false
	}
}

// CarriesOld reports whether this kind of difference carries an old value.
func (k DiffKind) CarriesOld() bool {
	switch k {
	case DiffValueChanged, DiffTypeChanged, DiffKeyRemoved, DiffItemRemoved:
		return true
	default:
		return false
	}
}

// CarriesNew reports whether this kind of difference carries a new value.
func (k DiffKind) CarriesNew() bool {
	switch k {
	case DiffValueChanged, DiffTypeChanged, DiffKeyAdded, DiffItemAdded:
		return true
	default:
		return false
	}
}

// AtomicDiff is one minimal, path-located discrepancy between two values.
// Old is meaningful only when Kind.CarriesOld(), New only when Kind.CarriesNew();
// the JSON encoding omits the absent side entirely, keeping "absent" distinct
// from an explicit null.
type AtomicDiff struct {
	Path Path     `json:"path"`
	Kind DiffKind `json:"kind"`
	Old  Value    `json:"old,omitempty"`
	New  Value    `json:"new,omitempty"`
}

// MarshalJSON emits old/new depending on the kind, so a changed null value
// still serializes as "old": null rather than disappearing.
func (d AtomicDiff) MarshalJSON() ([]byte, error) {
	out := struct {
		Path Path             `json:"path"`
		Kind DiffKind         `json:"kind"`
		Old  *json.RawMessage `json:"old,omitempty"`
		New  *json.RawMessage `json:"new,omitempty"`
	}{Path: d.Path, Kind: d.Kind}

	if d.Kind.CarriesOld() {
		raw, err := json.Marshal(d.Old)
		if err != nil {
			return nil, fmt.Errorf("encoding old value at %s: %w", d.Path, err)
		}
		msg := json.RawMessage(raw)
		out.Old = &msg
	}
	if d.Kind.CarriesNew() {
		raw, err := json.Marshal(d.New)
		if err != nil {
			return nil, fmt.Errorf("encoding new value at %s: %w", d.Path, err)
		}
		msg := json.RawMessage(raw)
		out.New = &msg
	}
	return json.Marshal(out)
}

// Validate checks the difference is internally consistent.
func (d AtomicDiff) Validate() error {
	if !d.Kind.IsValid() {
		return fmt.Errorf("invalid diff kind: %s", d.Kind)
	}
	if !d.Kind.CarriesOld() && d.Old != nil {
		return fmt.Errorf("%s at %s must not carry an old value", d.Kind, d.Path)
	}
	if !d.Kind.CarriesNew() && d.New != nil {
		return fmt.Errorf("%s at %s must not carry a new value", d.Kind, d.Path)
	}
	return nil
}
