package analysis

import (
	"sort"
	"time"

	"whatif/internal/state"
)

// Metric formulas below are deliberate heuristics: simple, monotone and
// bounded. More conflicts never increase the productivity score; more rest
// never lowers the energy balance. The horizon is a single day (24h).
const (
	focusBlockMinHours = 1.5 // shorter blocks are fragmented, not focus
	fragmentGapMinutes = 30.0
	dayHours           = 24.0
)

// ComputeMetrics derives SystemMetrics from a state. It reads the state's
// Conflicts slice for the conflict penalty and stress contribution, so
// conflict detection must run before it.
func ComputeMetrics(s state.SystemState, now time.Time) state.SystemMetrics {
	var m state.SystemMetrics

	scheduled := 0.0
	focus := 0.0
	for _, e := range s.Events {
		if e.Delegated() {
			continue
		}
		h := e.Duration().Hours()
		scheduled += h
		if (e.Category == state.CategoryWork || e.Category == state.CategoryLearning) && h >= focusBlockMinHours {
			focus += h
		}
	}
	m.TotalScheduledHours = scheduled
	m.TotalFreeHours = dayHours - scheduled

	total, completed, overdue := taskCounts(s.Tasks, now)
	if total > 0 {
		m.CompletionRate = float64(completed) / float64(total) * 100
	}

	conflicts := len(s.Conflicts)
	m.FragmentationIndex = fragmentation(s)
	m.ProductivityScore = productivity(m.CompletionRate, focus, conflicts)
	m.WorkLifeBalance = workLifeBalance(s)
	m.StressLevel = stress(total-completed, conflicts, overdue, scheduled, m.FragmentationIndex)
	m.EnergyBalance = energy(s, m.StressLevel)

	return m
}

// ComputeDistribution breaks owned scheduled hours down by category.
func ComputeDistribution(s state.SystemState) state.TimeDistribution {
	d := state.TimeDistribution{
		HoursByCategory: make(map[state.Category]float64),
		ShareByCategory: make(map[state.Category]float64),
	}

	total := 0.0
	for _, e := range s.Events {
		if e.Delegated() {
			continue
		}
		h := e.Duration().Hours()
		d.HoursByCategory[e.Category] += h
		total += h
	}
	if total > 0 {
		for cat, h := range d.HoursByCategory {
			d.ShareByCategory[cat] = h / total
		}
	}
	return d
}

func taskCounts(tasks []state.Task, now time.Time) (total, completed, overdue int) {
	for _, t := range tasks {
		total++
		if t.Status == state.TaskCompleted {
			completed++
			continue
		}
		if t.DueDate != nil && t.DueDate.Before(now) {
			overdue++
		}
	}
	return total, completed, overdue
}

// productivity combines completion rate, focus time and a conflict penalty.
// Four hours of focus saturate the focus component.
func productivity(completionRate, focusHours float64, conflicts int) float64 {
	focusScore := clamp(focusHours/4.0*100, 0, 100)
	penalty := clamp(100-5*float64(conflicts), 0, 100)
	return clamp(0.4*completionRate+0.3*focusScore+0.3*penalty, 0, 100)
}

// fragmentation is the fraction of inter-event gaps under 30 minutes,
// relative to total event count. It measures schedule choppiness.
func fragmentation(s state.SystemState) float64 {
	events := make([]state.Event, 0, len(s.Events))
	for _, e := range s.Events {
		if !e.Delegated() {
			events = append(events, e)
		}
	}
	if len(events) < 2 {
		return 0
	}
	sort.Slice(events, func(i, j int) bool {
		return events[i].StartTime.Before(events[j].StartTime)
	})

	short := 0
	for i := 0; i+1 < len(events); i++ {
		gap := events[i+1].StartTime.Sub(events[i].EndTime).Minutes()
		if gap > 0 && gap < fragmentGapMinutes {
			short++
		}
	}
	return float64(short) / float64(len(events))
}

// workLifeBalance scores the share of personal/health/social/rest hours
// against everything scheduled; a 50% share maps to a full score.
func workLifeBalance(s state.SystemState) float64 {
	var work, life float64
	for _, e := range s.Events {
		if e.Delegated() {
			continue
		}
		h := e.Duration().Hours()
		switch e.Category {
		case state.CategoryWork, state.CategoryLearning:
			work += h
		default:
			life += h
		}
	}
	if work+life == 0 {
		return 100
	}
	ratio := life / (work + life)
	return clamp(ratio/0.5*100, 0, 100)
}

// stress is additive over load signals, clamped to the 0-10 scale.
func stress(openTasks, conflicts, overdue int, scheduledHours, fragmentationIdx float64) float64 {
	level := float64(openTasks) * 0.2
	level += float64(conflicts) * 1.0
	level += float64(overdue) * 1.5
	if scheduledHours > 10 {
		level += 2.0
	}
	level += fragmentationIdx * 2.0
	return clamp(level, 0, 10)
}

// energy rewards rest/health hours and penalizes stress.
func energy(s state.SystemState, stressLevel float64) float64 {
	rest := 0.0
	for _, e := range s.Events {
		if e.Delegated() {
			continue
		}
		if e.Category == state.CategoryRest || e.Category == state.CategoryHealth {
			rest += e.Duration().Hours()
		}
	}
	return clamp(50+rest*10-stressLevel*5, 0, 100)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
