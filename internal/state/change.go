package state

import (
	"fmt"
	"time"
)

// ChangeType identifies what a scenario change does to the state.
type ChangeType string

const (
	ChangeAdd        ChangeType = "add"
	ChangeRemove     ChangeType = "remove"
	ChangeModify     ChangeType = "modify"
	ChangeReschedule ChangeType = "reschedule"
	ChangeDelegate   ChangeType = "delegate"
	ChangeSplit      ChangeType = "split"
	ChangeMerge      ChangeType = "merge"
	ChangeAutomate   ChangeType = "automate"
)

// ChangeTarget identifies what kind of item a change operates on.
type ChangeTarget string

const (
	TargetEvent      ChangeTarget = "event"
	TargetTask       ChangeTarget = "task"
	TargetTimeBudget ChangeTarget = "time_budget"
	TargetPriority   ChangeTarget = "priority"
	TargetDuration   ChangeTarget = "duration"
	TargetDeadline   ChangeTarget = "deadline"
)

// AddPayload carries the new item for an add change. Exactly one of
// Event/Task is set, matching the change target.
type AddPayload struct {
	Event *Event `json:"event,omitempty"`
	Task  *Task  `json:"task,omitempty"`
}

// RemovePayload identifies the item to drop.
type RemovePayload struct {
	ItemID string `json:"item_id"`
}

// ModifyPayload sets a single named field on the target item.
type ModifyPayload struct {
	ItemID string `json:"item_id"`
	Field  string `json:"field"`
	Value  string `json:"value"`
}

// ReschedulePayload moves an event to a new start, preserving its duration.
// For a task it moves the due date.
type ReschedulePayload struct {
	ItemID  string    `json:"item_id"`
	NewTime time.Time `json:"new_time"`
}

// DelegatePayload hands an item to someone else.
type DelegatePayload struct {
	ItemID   string `json:"item_id"`
	Assignee string `json:"assignee"`
}

// SplitPayload breaks one task into several equal parts.
type SplitPayload struct {
	ItemID string `json:"item_id"`
	Parts  int    `json:"parts"`
}

// MergePayload collapses several tasks into one.
type MergePayload struct {
	ItemIDs []string `json:"item_ids"`
	Title   string   `json:"title"`
}

// AutomatePayload attaches a recurrence/template marker to an item.
type AutomatePayload struct {
	ItemID     string `json:"item_id"`
	Recurrence string `json:"recurrence"`
}

// ChangeImpact records what a single change did to the quick metrics,
// attached to the change after simulation.
type ChangeImpact struct {
	Applied           bool    `json:"applied"`
	HoursDelta        float64 `json:"hours_delta"`
	ProductivityDelta float64 `json:"productivity_delta"`
	StressDelta       float64 `json:"stress_delta"`
}

// ScenarioChange is a tagged union over ChangeType: exactly one payload
// variant is populated, matching Type. Changes are immutable once a
// simulation has consumed them, except for ActualImpact which the engine
// attaches post-run.
type ScenarioChange struct {
	ID     string       `json:"id"`
	Type   ChangeType   `json:"type"`
	Target ChangeTarget `json:"target"`

	Add        *AddPayload        `json:"add,omitempty"`
	Remove     *RemovePayload     `json:"remove,omitempty"`
	Modify     *ModifyPayload     `json:"modify,omitempty"`
	Reschedule *ReschedulePayload `json:"reschedule,omitempty"`
	Delegate   *DelegatePayload   `json:"delegate,omitempty"`
	Split      *SplitPayload      `json:"split,omitempty"`
	Merge      *MergePayload      `json:"merge,omitempty"`
	Automate   *AutomatePayload   `json:"automate,omitempty"`

	ActualImpact *ChangeImpact `json:"actual_impact,omitempty"`
}

// Validate checks that exactly one payload variant is populated and that it
// matches the change type. A mismatch is a ValidationError surfaced to the
// caller; it never silently no-ops.
func (c ScenarioChange) Validate() error {
	populated := 0
	if c.Add != nil {
		populated++
	}
	if c.Remove != nil {
		populated++
	}
	if c.Modify != nil {
		populated++
	}
	if c.Reschedule != nil {
		populated++
	}
	if c.Delegate != nil {
		populated++
	}
	if c.Split != nil {
		populated++
	}
	if c.Merge != nil {
		populated++
	}
	if c.Automate != nil {
		populated++
	}
	if populated != 1 {
		return fmt.Errorf("%w: change %s has %d payloads, want exactly 1", ErrValidation, c.ID, populated)
	}

	ok := false
	switch c.Type {
	case ChangeAdd:
		ok = c.Add != nil && (c.Add.Event != nil) != (c.Add.Task != nil)
	case ChangeRemove:
		ok = c.Remove != nil && c.Remove.ItemID != ""
	case ChangeModify:
		ok = c.Modify != nil && c.Modify.ItemID != "" && c.Modify.Field != ""
	case ChangeReschedule:
		ok = c.Reschedule != nil && c.Reschedule.ItemID != "" && !c.Reschedule.NewTime.IsZero()
	case ChangeDelegate:
		ok = c.Delegate != nil && c.Delegate.ItemID != "" && c.Delegate.Assignee != ""
	case ChangeSplit:
		ok = c.Split != nil && c.Split.ItemID != "" && c.Split.Parts >= 2
	case ChangeMerge:
		ok = c.Merge != nil && len(c.Merge.ItemIDs) >= 2
	case ChangeAutomate:
		ok = c.Automate != nil && c.Automate.ItemID != ""
	default:
		return fmt.Errorf("%w: unknown change type %q", ErrValidation, c.Type)
	}
	if !ok {
		return fmt.Errorf("%w: payload does not match change type %q", ErrValidation, c.Type)
	}
	return nil
}
