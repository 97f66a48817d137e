package analysis

import (
	"fmt"
	"sort"

	"github.com/google/uuid"

	"whatif/internal/state"
)

// DetectConflicts scans every unordered pair of events for time overlaps.
// Two half-open intervals [start1,end1) and [start2,end2) overlap iff
// start1 < end2 && start2 < end1; touching endpoints (end1 == start2) are
// NOT a conflict. Delegated events no longer occupy the owner's time and
// are skipped.
func DetectConflicts(s state.SystemState) []state.Conflict {
	events := ownedEventsByStart(s)

	conflicts := make([]state.Conflict, 0)
	for i := 0; i < len(events); i++ {
		for j := i + 1; j < len(events); j++ {
			if c, ok := overlapConflict(events[i], events[j]); ok {
				conflicts = append(conflicts, c)
			}
		}
	}
	return conflicts
}

// DetectConflictsQuick sorts events by start time and compares each event
// only to its immediate successor. O(n log n), but it can miss non-adjacent
// overlaps when three or more events interleave. Callers opt into this
// tradeoff via the quick simulation mode; it is a documented approximation,
// not a bug to fix.
func DetectConflictsQuick(s state.SystemState) []state.Conflict {
	events := ownedEventsByStart(s)

	conflicts := make([]state.Conflict, 0)
	for i := 0; i+1 < len(events); i++ {
		if c, ok := overlapConflict(events[i], events[i+1]); ok {
			conflicts = append(conflicts, c)
		}
	}
	return conflicts
}

func ownedEventsByStart(s state.SystemState) []state.Event {
	events := make([]state.Event, 0, len(s.Events))
	for _, e := range s.Events {
		if !e.Delegated() {
			events = append(events, e)
		}
	}
	sort.Slice(events, func(i, j int) bool {
		return events[i].StartTime.Before(events[j].StartTime)
	})
	return events
}

// overlapConflict builds a time conflict for an overlapping pair. The pair
// identity is order-independent: a is always the earlier-starting event, so
// detecting (A,B) and (B,A) yields the same record, never a duplicate.
func overlapConflict(a, b state.Event) (state.Conflict, bool) {
	if !a.StartTime.Before(b.EndTime) || !b.StartTime.Before(a.EndTime) {
		return state.Conflict{}, false
	}

	sev := severityFor(a.Priority.Higher(b.Priority))
	return state.Conflict{
		ID:       uuid.NewString(),
		Type:     state.ConflictTime,
		Severity: sev,
		Items:    []string{a.ID, b.ID},
		Description: fmt.Sprintf("%q (%s-%s) overlaps %q (%s-%s)",
			a.Title, a.StartTime.Format("15:04"), a.EndTime.Format("15:04"),
			b.Title, b.StartTime.Format("15:04"), b.EndTime.Format("15:04")),
		SuggestedResolution: fmt.Sprintf("Reschedule %q to start at %s", b.Title, a.EndTime.Format("15:04")),
	}, true
}

// severityFor derives conflict severity from the higher of the two event
// priorities.
func severityFor(p state.Priority) state.Severity {
	switch p {
	case state.PriorityUrgent:
		return state.SeverityCritical
	case state.PriorityHigh:
		return state.SeverityHigh
	case state.PriorityMedium:
		return state.SeverityMedium
	default:
		return state.SeverityLow
	}
}
