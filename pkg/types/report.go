package types

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"
)

// Action classifies what happened to a resource between two documents.
type Action string

const (
	// ActionCreated indicates the resource exists only in the new document.
	ActionCreated Action = "created"
	// ActionDeleted indicates the resource exists only in the old document.
	ActionDeleted Action = "deleted"
	// ActionModified indicates the resource exists in both and differs.
	ActionModified Action = "modified"
	// ActionUnchanged indicates the resource exists in both and is deep-equal.
	ActionUnchanged Action = "unchanged"
)

// IsValid checks if the Action is one of the defined tags.
func (a Action) IsValid() bool {
	switch a {
	case ActionCreated, ActionDeleted, ActionModified, ActionUnchanged:
		return true
	default:
		return false
	}
}

// String returns the string representation of the Action.
func (a Action) String() string {
	return string(a)
}

// ChangePair is one address's proposed transition taken from a plan document.
// A nil Before denotes pure creation, a nil After pure deletion.
type ChangePair struct {
	Address string `json:"address"`
	Before  Value  `json:"before"`
	After   Value  `json:"after"`
}

// ChangeRecord is the classified outcome for a single address. Before is
// meaningful unless the action is created, After unless deleted; the JSON
// encoding omits the absent side.
type ChangeRecord struct {
	Address string       `json:"address"`
	Action  Action       `json:"action"`
	Before  Value        `json:"before,omitempty"`
	After   Value        `json:"after,omitempty"`
	Diffs   []AtomicDiff `json:"diffs,omitempty"`
}

// MarshalJSON emits before/after depending on the action, preserving explicit
// nulls for resources whose attributes decoded to null.
func (r ChangeRecord) MarshalJSON() ([]byte, error) {
	out := struct {
		Address string           `json:"address"`
		Action  Action           `json:"action"`
		Before  *json.RawMessage `json:"before,omitempty"`
		After   *json.RawMessage `json:"after,omitempty"`
		Diffs   []AtomicDiff     `json:"diffs,omitempty"`
	}{Address: r.Address, Action: r.Action, Diffs: r.Diffs}

	if r.Action != ActionCreated {
		raw, err := json.Marshal(r.Before)
		if err != nil {
			return nil, fmt.Errorf("encoding before value of %s: %w", r.Address, err)
		}
		msg := json.RawMessage(raw)
		out.Before = &msg
	}
	if r.Action != ActionDeleted {
		raw, err := json.Marshal(r.After)
		if err != nil {
			return nil, fmt.Errorf("encoding after value of %s: %w", r.Address, err)
		}
		msg := json.RawMessage(raw)
		out.After = &msg
	}
	return json.Marshal(out)
}

// Validate checks the record against the classification invariants.
func (r *ChangeRecord) Validate() error {
	if r.Address == "" {
		return fmt.Errorf("change record address cannot be empty")
	}
	if !r.Action.IsValid() {
		return fmt.Errorf("invalid action for %s: %s", r.Address, r.Action)
	}
	switch r.Action {
	case ActionCreated, ActionDeleted:
		if len(r.Diffs) != 0 {
			return fmt.Errorf("%s record for %s must not carry diffs", r.Action, r.Address)
		}
	case ActionUnchanged:
		// before/after may differ by sequence order only under
		// order-insensitive classification, so deep equality is not asserted
		if len(r.Diffs) != 0 {
			return fmt.Errorf("unchanged record for %s must not carry diffs", r.Address)
		}
	case ActionModified:
		if len(r.Diffs) == 0 {
			return fmt.Errorf("modified record for %s must carry diffs", r.Address)
		}
		if Equal(r.Before, r.After) {
			return fmt.Errorf("modified record for %s has equal before/after", r.Address)
		}
	}
	for i, d := range r.Diffs {
		if err := d.Validate(); err != nil {
			return fmt.Errorf("invalid diff at index %d for %s: %w", i, r.Address, err)
		}
	}
	return nil
}

// Summary provides counts of records by action.
type Summary struct {
	Created   int `json:"created"`
	Deleted   int `json:"deleted"`
	Modified  int `json:"modified"`
	Unchanged int `json:"unchanged"`
	Total     int `json:"total"`
}

// Changed returns the number of records representing drift.
func (s Summary) Changed() int {
	return s.Created + s.Deleted + s.Modified
}

// DriftReport is the complete classified comparison of two documents:
// one record per address in the union of both inputs, sorted by address.
type DriftReport struct {
	Timestamp time.Time      `json:"timestamp"`
	Summary   Summary        `json:"summary"`
	Records   []ChangeRecord `json:"records"`
}

// NewDriftReport assembles a report from classified records, sorting them by
// address and computing the summary.
func NewDriftReport(records []ChangeRecord) *DriftReport {
	sort.Slice(records, func(i, j int) bool {
		return records[i].Address < records[j].Address
	})
	return &DriftReport{
		Timestamp: time.Now().UTC(),
		Summary:   Summarize(records),
		Records:   records,
	}
}

// Summarize counts records by action.
func Summarize(records []ChangeRecord) Summary {
	var s Summary
	for _, r := range records {
		switch r.Action {
		case ActionCreated:
			s.Created++
		case ActionDeleted:
			s.Deleted++
		case ActionModified:
			s.Modified++
		case ActionUnchanged:
			s.Unchanged++
		}
	}
	s.Total = len(records)
	return s
}

// HasDrift returns true if any resource was created, deleted or modified.
func (r *DriftReport) HasDrift() bool {
	return r.Summary.Changed() > 0
}

// RecordsByAction returns the records carrying a specific action.
func (r *DriftReport) RecordsByAction(action Action) []ChangeRecord {
	var out []ChangeRecord
	for _, rec := range r.Records {
		if rec.Action == action {
			out = append(out, rec)
		}
	}
	return out
}

// Filter returns a report restricted to the given actions, with the summary
// recomputed. An empty action list returns the report unchanged.
func (r *DriftReport) Filter(actions ...Action) *DriftReport {
	if len(actions) == 0 {
		return r
	}
	keep := make(map[Action]bool, len(actions))
	for _, a := range actions {
		keep[a] = true
	}
	var records []ChangeRecord
	for _, rec := range r.Records {
		if keep[rec.Action] {
			records = append(records, rec)
		}
	}
	return &DriftReport{
		Timestamp: r.Timestamp,
		Summary:   Summarize(records),
		Records:   records,
	}
}

// Validate checks the report and every record in it.
func (r *DriftReport) Validate() error {
	seen := make(map[string]bool, len(r.Records))
	for i := range r.Records {
		rec := &r.Records[i]
		if err := rec.Validate(); err != nil {
			return err
		}
		if seen[rec.Address] {
			return fmt.Errorf("duplicate record for address %s", rec.Address)
		}
		seen[rec.Address] = true
		if i > 0 && r.Records[i-1].Address > rec.Address {
			return fmt.Errorf("records out of order at %s", rec.Address)
		}
	}
	return nil
}
