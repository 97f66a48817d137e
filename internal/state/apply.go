package state

import (
	"fmt"
	"strconv"
)

// Apply applies one scenario change to a state, returning the resulting
// state. The input is never mutated: Apply clones first and works on the
// copy. The boolean reports whether the change actually took effect; a
// change referencing a non-existent item id is a no-op (false, nil error)
// so one stale reference cannot fail a whole simulation.
//
// Apply only transforms the raw events/tasks/budgets; derived fields
// (metrics, conflicts, risks, distribution) are the caller's job to
// recompute afterwards.
func Apply(s SystemState, c ScenarioChange) (SystemState, bool, error) {
	if err := c.Validate(); err != nil {
		return s, false, err
	}

	out := Clone(s)
	var applied bool

	switch c.Type {
	case ChangeAdd:
		applied = applyAdd(&out, c.Add)
	case ChangeRemove:
		applied = applyRemove(&out, c.Remove.ItemID)
	case ChangeModify:
		applied = applyModify(&out, c.Modify)
	case ChangeReschedule:
		applied = applyReschedule(&out, c.Reschedule)
	case ChangeDelegate:
		applied = applyDelegate(&out, c.Delegate)
	case ChangeSplit:
		applied = applySplit(&out, c.Split)
	case ChangeMerge:
		applied = applyMerge(&out, c.Merge)
	case ChangeAutomate:
		applied = applyAutomate(&out, c.Automate)
	default:
		return s, false, fmt.Errorf("%w: unknown change type %q", ErrValidation, c.Type)
	}

	return out, applied, nil
}

func applyAdd(s *SystemState, p *AddPayload) bool {
	if p.Event != nil {
		s.Events = append(s.Events, *p.Event)
		return true
	}
	s.Tasks = append(s.Tasks, *p.Task)
	return true
}

func applyRemove(s *SystemState, id string) bool {
	if i := s.FindEvent(id); i >= 0 {
		s.Events = append(s.Events[:i], s.Events[i+1:]...)
		return true
	}
	if i := s.FindTask(id); i >= 0 {
		s.Tasks = append(s.Tasks[:i], s.Tasks[i+1:]...)
		return true
	}
	return false
}

func applyModify(s *SystemState, p *ModifyPayload) bool {
	if i := s.FindEvent(p.ItemID); i >= 0 {
		return modifyEvent(&s.Events[i], p.Field, p.Value)
	}
	if i := s.FindTask(p.ItemID); i >= 0 {
		return modifyTask(&s.Tasks[i], p.Field, p.Value)
	}
	return false
}

func modifyEvent(e *Event, field, value string) bool {
	switch field {
	case "title":
		e.Title = value
	case "priority":
		e.Priority = Priority(value)
	case "category":
		e.Category = Category(value)
	case "location":
		e.Location = value
	default:
		return false
	}
	return true
}

func modifyTask(t *Task, field, value string) bool {
	switch field {
	case "title":
		t.Title = value
	case "priority":
		t.Priority = Priority(value)
	case "status":
		t.Status = TaskStatus(value)
	case "estimated_minutes":
		m, err := strconv.Atoi(value)
		if err != nil || m < 0 {
			return false
		}
		t.EstimatedMinutes = m
	default:
		return false
	}
	return true
}

func applyReschedule(s *SystemState, p *ReschedulePayload) bool {
	if i := s.FindEvent(p.ItemID); i >= 0 {
		// Duration is preserved: the event moves, it does not stretch.
		d := s.Events[i].Duration()
		s.Events[i].StartTime = p.NewTime
		s.Events[i].EndTime = p.NewTime.Add(d)
		return true
	}
	if i := s.FindTask(p.ItemID); i >= 0 {
		due := p.NewTime
		s.Tasks[i].DueDate = &due
		return true
	}
	return false
}

func applyDelegate(s *SystemState, p *DelegatePayload) bool {
	if i := s.FindEvent(p.ItemID); i >= 0 {
		s.Events[i].Delegate = p.Assignee
		return true
	}
	if i := s.FindTask(p.ItemID); i >= 0 {
		s.Tasks[i].Delegate = p.Assignee
		return true
	}
	return false
}

// applySplit replaces one task with Parts smaller tasks of equal estimate.
func applySplit(s *SystemState, p *SplitPayload) bool {
	i := s.FindTask(p.ItemID)
	if i < 0 {
		return false
	}

	orig := s.Tasks[i]
	parts := make([]Task, p.Parts)
	per := orig.EstimatedMinutes / p.Parts
	for n := 0; n < p.Parts; n++ {
		part := orig
		part.ID = fmt.Sprintf("%s-part%d", orig.ID, n+1)
		part.Title = fmt.Sprintf("%s (%d/%d)", orig.Title, n+1, p.Parts)
		part.EstimatedMinutes = per
		parts[n] = part
	}
	// Remainder minutes land on the first part so the total is preserved.
	parts[0].EstimatedMinutes += orig.EstimatedMinutes - per*p.Parts

	s.Tasks = append(s.Tasks[:i], append(parts, s.Tasks[i+1:]...)...)
	return true
}

// applyMerge collapses the named tasks into a single one carrying the summed
// estimate, the earliest due date and the highest priority. Applies only if
// at least two of the referenced tasks exist.
func applyMerge(s *SystemState, p *MergePayload) bool {
	var found []int
	for _, id := range p.ItemIDs {
		if i := s.FindTask(id); i >= 0 {
			found = append(found, i)
		}
	}
	if len(found) < 2 {
		return false
	}

	merged := s.Tasks[found[0]]
	merged.ID = fmt.Sprintf("%s-merged", merged.ID)
	if p.Title != "" {
		merged.Title = p.Title
	}
	for _, i := range found[1:] {
		t := s.Tasks[i]
		merged.EstimatedMinutes += t.EstimatedMinutes
		merged.Priority = merged.Priority.Higher(t.Priority)
		if t.DueDate != nil && (merged.DueDate == nil || t.DueDate.Before(*merged.DueDate)) {
			due := *t.DueDate
			merged.DueDate = &due
		}
	}

	remove := make(map[int]bool, len(found))
	for _, i := range found {
		remove[i] = true
	}
	kept := s.Tasks[:0]
	for i := range s.Tasks {
		if !remove[i] {
			kept = append(kept, s.Tasks[i])
		}
	}
	s.Tasks = append(kept, merged)
	return true
}

func applyAutomate(s *SystemState, p *AutomatePayload) bool {
	if i := s.FindEvent(p.ItemID); i >= 0 {
		s.Events[i].Recurrence = p.Recurrence
		return true
	}
	if i := s.FindTask(p.ItemID); i >= 0 {
		s.Tasks[i].Recurrence = p.Recurrence
		return true
	}
	return false
}
