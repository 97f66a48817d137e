package analysis

import (
	"testing"
	"time"

	"whatif/internal/state"
)

var testNow = time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)

func TestComputeMetrics_Bounds(t *testing.T) {
	due := at(7, 0) // already overdue at testNow
	s := state.SystemState{
		Events: []state.Event{
			evt("a", at(9, 0), at(12, 0), state.PriorityHigh),
			evt("b", at(11, 0), at(13, 0), state.PriorityHigh),
			evt("c", at(13, 15), at(14, 0), state.PriorityLow),
		},
		Tasks: []state.Task{
			{ID: "t1", Status: state.TaskPending, DueDate: &due},
			{ID: "t2", Status: state.TaskCompleted},
		},
	}
	s.Conflicts = DetectConflicts(s)
	m := ComputeMetrics(s, testNow)

	for name, v := range map[string]float64{
		"productivity": m.ProductivityScore,
		"balance":      m.WorkLifeBalance,
		"completion":   m.CompletionRate,
		"energy":       m.EnergyBalance,
	} {
		if v < 0 || v > 100 {
			t.Errorf("%s = %v, out of [0,100]", name, v)
		}
	}
	if m.StressLevel < 0 || m.StressLevel > 10 {
		t.Errorf("stress = %v, out of [0,10]", m.StressLevel)
	}
	if m.FragmentationIndex < 0 || m.FragmentationIndex > 1 {
		t.Errorf("fragmentation = %v, out of [0,1]", m.FragmentationIndex)
	}
	if m.TotalScheduledHours+m.TotalFreeHours != 24 {
		t.Errorf("scheduled %v + free %v != 24", m.TotalScheduledHours, m.TotalFreeHours)
	}
	if m.CompletionRate != 50 {
		t.Errorf("completion rate = %v, want 50", m.CompletionRate)
	}
}

func TestComputeMetrics_ConflictsNeverHelpProductivity(t *testing.T) {
	clean := state.SystemState{Events: []state.Event{
		evt("a", at(9, 0), at(11, 0), state.PriorityMedium),
		evt("b", at(12, 0), at(14, 0), state.PriorityMedium),
	}}
	clean.Conflicts = DetectConflicts(clean)

	dirty := state.SystemState{Events: []state.Event{
		evt("a", at(9, 0), at(11, 0), state.PriorityMedium),
		evt("b", at(10, 0), at(12, 0), state.PriorityMedium),
	}}
	dirty.Conflicts = DetectConflicts(dirty)

	cm := ComputeMetrics(clean, testNow)
	dm := ComputeMetrics(dirty, testNow)
	if dm.ProductivityScore > cm.ProductivityScore {
		t.Errorf("conflicted schedule scored higher: %v > %v", dm.ProductivityScore, cm.ProductivityScore)
	}
	if dm.StressLevel < cm.StressLevel {
		t.Errorf("conflicted schedule is less stressful: %v < %v", dm.StressLevel, cm.StressLevel)
	}
}

func TestComputeMetrics_DelegatedEventsFreeTime(t *testing.T) {
	own := state.SystemState{Events: []state.Event{
		evt("a", at(9, 0), at(12, 0), state.PriorityMedium),
	}}
	handed := state.SystemState{Events: []state.Event{
		evt("a", at(9, 0), at(12, 0), state.PriorityMedium),
	}}
	handed.Events[0].Delegate = "sam"

	if got := ComputeMetrics(handed, testNow).TotalScheduledHours; got != 0 {
		t.Errorf("delegated event still counted as scheduled: %v hours", got)
	}
	if got := ComputeMetrics(own, testNow).TotalScheduledHours; got != 3 {
		t.Errorf("owned event hours = %v, want 3", got)
	}
}

func TestFragmentation_ShortGapsOnly(t *testing.T) {
	s := state.SystemState{Events: []state.Event{
		evt("a", at(9, 0), at(10, 0), state.PriorityLow),
		evt("b", at(10, 15), at(11, 0), state.PriorityLow),  // 15m gap: fragment
		evt("c", at(13, 0), at(14, 0), state.PriorityLow),   // 2h gap: fine
		evt("d", at(14, 0), at(15, 0), state.PriorityLow),   // 0m gap: contiguous, fine
	}}
	got := fragmentation(s)
	want := 1.0 / 4.0
	if got != want {
		t.Errorf("fragmentation = %v, want %v", got, want)
	}
}

func TestWorkLifeBalance(t *testing.T) {
	balanced := state.SystemState{Events: []state.Event{
		evt("work", at(9, 0), at(13, 0), state.PriorityMedium),
		{ID: "run", Title: "run", StartTime: at(17, 0), EndTime: at(21, 0), Category: state.CategoryHealth, Priority: state.PriorityLow},
	}}
	if got := workLifeBalance(balanced); got != 100 {
		t.Errorf("50/50 split = %v, want 100", got)
	}

	allWork := state.SystemState{Events: []state.Event{
		evt("work", at(9, 0), at(17, 0), state.PriorityMedium),
	}}
	if got := workLifeBalance(allWork); got != 0 {
		t.Errorf("all-work schedule = %v, want 0", got)
	}

	if got := workLifeBalance(state.SystemState{}); got != 100 {
		t.Errorf("empty schedule = %v, want 100", got)
	}
}

func TestComputeDistribution_SharesSumToOne(t *testing.T) {
	s := state.SystemState{Events: []state.Event{
		evt("work", at(9, 0), at(12, 0), state.PriorityMedium),
		{ID: "gym", Title: "gym", StartTime: at(18, 0), EndTime: at(19, 0), Category: state.CategoryHealth, Priority: state.PriorityLow},
	}}
	d := ComputeDistribution(s)

	if d.HoursByCategory[state.CategoryWork] != 3 {
		t.Errorf("work hours = %v, want 3", d.HoursByCategory[state.CategoryWork])
	}
	sum := 0.0
	for _, share := range d.ShareByCategory {
		sum += share
	}
	if sum < 0.999 || sum > 1.001 {
		t.Errorf("shares sum to %v, want 1", sum)
	}
}
