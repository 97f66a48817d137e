package analysis

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"whatif/internal/state"
)

// AssessRisks evaluates three independent, composable rules against a state.
// Each rule produces at most one risk; multiple risks may co-occur. The
// state's Metrics must already be computed (overload and health read them).
func AssessRisks(s state.SystemState, maxDailyHours float64, now time.Time) []state.Risk {
	risks := make([]state.Risk, 0, 3)

	if r, ok := deadlineRisk(s, now); ok {
		risks = append(risks, r)
	}
	if r, ok := overloadRisk(s, maxDailyHours); ok {
		risks = append(risks, r)
	}
	if r, ok := healthRisk(s); ok {
		risks = append(risks, r)
	}
	return risks
}

func deadlineRisk(s state.SystemState, now time.Time) (state.Risk, bool) {
	overdue := 0
	for _, t := range s.Tasks {
		if t.Status != state.TaskCompleted && t.DueDate != nil && t.DueDate.Before(now) {
			overdue++
		}
	}
	if overdue == 0 {
		return state.Risk{}, false
	}
	return newRisk(state.RiskDeadline, 0.8, 8,
		fmt.Sprintf("%d task(s) are past their due date and not completed", overdue),
		"Reschedule or delegate the overdue tasks"), true
}

func overloadRisk(s state.SystemState, maxDailyHours float64) (state.Risk, bool) {
	if s.Metrics.TotalScheduledHours <= maxDailyHours {
		return state.Risk{}, false
	}
	return newRisk(state.RiskOverload, 0.9, 7,
		fmt.Sprintf("%.1f scheduled hours exceed the daily maximum of %.1f", s.Metrics.TotalScheduledHours, maxDailyHours),
		"Remove or delegate low-priority events"), true
}

func healthRisk(s state.SystemState) (state.Risk, bool) {
	if s.Metrics.StressLevel <= 7 {
		return state.Risk{}, false
	}
	return newRisk(state.RiskHealth, 0.7, 9,
		fmt.Sprintf("Stress level %.1f/10 is in the unhealthy range", s.Metrics.StressLevel),
		"Add recovery time and reduce parallel commitments"), true
}

func newRisk(cat state.RiskCategory, probability, impact float64, description, mitigation string) state.Risk {
	return state.Risk{
		ID:          uuid.NewString(),
		Category:    cat,
		Probability: probability,
		Impact:      impact,
		Score:       probability * impact,
		Description: description,
		Mitigation:  mitigation,
	}
}
