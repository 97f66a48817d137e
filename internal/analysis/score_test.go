package analysis

import (
	"testing"

	"whatif/internal/state"
)

func TestScoreScenario_NeutralBaseline(t *testing.T) {
	// A simulated state identical to a clean baseline: no conflicts, no
	// risks, no stress, perfect completion.
	var s state.SystemState
	s.Metrics.CompletionRate = 100
	s.Metrics.WorkLifeBalance = 80

	score := ScoreScenario(s, s, state.ImpactAnalysis{})

	if score.Efficiency != 50 {
		t.Errorf("efficiency = %v, want the 50 anchor", score.Efficiency)
	}
	if score.Balance != 50 {
		t.Errorf("balance = %v, want the 50 anchor", score.Balance)
	}
	if score.Feasibility != 100 {
		t.Errorf("feasibility = %v, want 100", score.Feasibility)
	}
	if score.Sustainability != 100 {
		t.Errorf("sustainability = %v, want 100", score.Sustainability)
	}
	if score.GoalAlignment != 100 {
		t.Errorf("goal alignment = %v, want 100", score.GoalAlignment)
	}

	// 50*0.3 + 50*0.2 + 100*0.2 + 100*0.15 + 100*0.15 = 75
	if score.Overall != 75 {
		t.Errorf("overall = %v, want 75", score.Overall)
	}
	if score.Improvement != 25 {
		t.Errorf("improvement = %v, want 25", score.Improvement)
	}
	if score.Grade != "C" {
		t.Errorf("grade = %q, want C", score.Grade)
	}
}

func TestScoreScenario_PenalizesConflictsAndRisks(t *testing.T) {
	var baseline, simulated state.SystemState
	simulated.Conflicts = []state.Conflict{{ID: "c1"}, {ID: "c2"}}
	simulated.Risks = []state.Risk{{ID: "r1"}}

	score := ScoreScenario(baseline, simulated, state.ImpactAnalysis{})
	// 100 - 10*2 - 5*1
	if score.Feasibility != 75 {
		t.Errorf("feasibility = %v, want 75", score.Feasibility)
	}
}

func TestScoreScenario_SubScoresStayInRange(t *testing.T) {
	var baseline, simulated state.SystemState
	baseline.Metrics.WorkLifeBalance = 100
	simulated.Metrics.StressLevel = 10
	for i := 0; i < 20; i++ {
		simulated.Conflicts = append(simulated.Conflicts, state.Conflict{})
	}
	impact := state.ImpactAnalysis{}
	impact.Productivity.NetChange = -90

	score := ScoreScenario(baseline, simulated, impact)
	for name, v := range map[string]float64{
		"efficiency":     score.Efficiency,
		"balance":        score.Balance,
		"feasibility":    score.Feasibility,
		"sustainability": score.Sustainability,
		"goal_alignment": score.GoalAlignment,
		"overall":        score.Overall,
	} {
		if v < 0 || v > 100 {
			t.Errorf("%s = %v, out of [0,100]", name, v)
		}
	}
	if score.Grade != "F" {
		t.Errorf("grade = %q, want F for a collapsed scenario", score.Grade)
	}
}

func TestGradeFor_Thresholds(t *testing.T) {
	cases := []struct {
		overall float64
		want    string
	}{
		{95, "A"}, {90, "A"},
		{89.9, "B"}, {80, "B"},
		{79.9, "C"}, {70, "C"},
		{69.9, "D"}, {60, "D"},
		{59.9, "F"}, {0, "F"},
	}
	for _, tc := range cases {
		if got := gradeFor(tc.overall); got != tc.want {
			t.Errorf("gradeFor(%v) = %q, want %q", tc.overall, got, tc.want)
		}
	}
}
