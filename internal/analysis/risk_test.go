package analysis

import (
	"testing"

	"whatif/internal/state"
)

const maxDaily = 10.0

func riskByCategory(risks []state.Risk, cat state.RiskCategory) *state.Risk {
	for i := range risks {
		if risks[i].Category == cat {
			return &risks[i]
		}
	}
	return nil
}

func TestAssessRisks_CalmStateHasNone(t *testing.T) {
	s := state.SystemState{
		Events: []state.Event{evt("a", at(9, 0), at(11, 0), state.PriorityMedium)},
		Tasks:  []state.Task{{ID: "t1", Status: state.TaskCompleted}},
	}
	s.Metrics = ComputeMetrics(s, testNow)

	if risks := AssessRisks(s, maxDaily, testNow); len(risks) != 0 {
		t.Errorf("expected no risks, got %v", risks)
	}
}

func TestAssessRisks_Deadline(t *testing.T) {
	due := at(7, 0)
	s := state.SystemState{
		Tasks: []state.Task{{ID: "t1", Status: state.TaskPending, DueDate: &due}},
	}
	s.Metrics = ComputeMetrics(s, testNow)

	risks := AssessRisks(s, maxDaily, testNow)
	r := riskByCategory(risks, state.RiskDeadline)
	if r == nil {
		t.Fatalf("no deadline risk for an overdue task: %v", risks)
	}
	if r.Probability != 0.8 || r.Impact != 8 {
		t.Errorf("deadline risk p=%v i=%v, want 0.8/8", r.Probability, r.Impact)
	}
	if r.Score != r.Probability*r.Impact {
		t.Errorf("score %v != probability*impact %v", r.Score, r.Probability*r.Impact)
	}
}

func TestAssessRisks_CompletedOverdueTaskIsNotARisk(t *testing.T) {
	due := at(7, 0)
	s := state.SystemState{
		Tasks: []state.Task{{ID: "t1", Status: state.TaskCompleted, DueDate: &due}},
	}
	s.Metrics = ComputeMetrics(s, testNow)

	if r := riskByCategory(AssessRisks(s, maxDaily, testNow), state.RiskDeadline); r != nil {
		t.Errorf("completed task raised a deadline risk: %+v", r)
	}
}

func TestAssessRisks_Overload(t *testing.T) {
	s := state.SystemState{Events: []state.Event{
		evt("marathon", at(8, 0), at(19, 0), state.PriorityHigh), // 11h > maxDaily
	}}
	s.Metrics = ComputeMetrics(s, testNow)

	r := riskByCategory(AssessRisks(s, maxDaily, testNow), state.RiskOverload)
	if r == nil {
		t.Fatalf("no overload risk for an 11h day")
	}
	if r.Probability != 0.9 || r.Impact != 7 {
		t.Errorf("overload risk p=%v i=%v, want 0.9/7", r.Probability, r.Impact)
	}
}

func TestAssessRisks_Health(t *testing.T) {
	s := state.SystemState{}
	s.Metrics.StressLevel = 8.5

	r := riskByCategory(AssessRisks(s, maxDaily, testNow), state.RiskHealth)
	if r == nil {
		t.Fatalf("no health risk at stress 8.5")
	}
	if r.Probability != 0.7 || r.Impact != 9 {
		t.Errorf("health risk p=%v i=%v, want 0.7/9", r.Probability, r.Impact)
	}
}

func TestAssessRisks_CoOccur(t *testing.T) {
	due := at(7, 0)
	s := state.SystemState{
		Events: []state.Event{evt("marathon", at(8, 0), at(19, 0), state.PriorityHigh)},
		Tasks:  []state.Task{{ID: "t1", Status: state.TaskPending, DueDate: &due}},
	}
	s.Metrics.StressLevel = 9
	s.Metrics.TotalScheduledHours = 11

	risks := AssessRisks(s, maxDaily, testNow)
	if len(risks) != 3 {
		t.Errorf("expected all three rules to fire, got %d: %v", len(risks), risks)
	}
}
