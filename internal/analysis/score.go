package analysis

import "whatif/internal/state"

// Fixed weights for the overall score. The baseline is assumed to sit at 50;
// Improvement is measured against that anchor.
const (
	weightEfficiency     = 0.30
	weightBalance        = 0.20
	weightFeasibility    = 0.20
	weightSustainability = 0.15
	weightGoalAlignment  = 0.15
)

// ScoreScenario converts a simulated state plus its impact into the five
// sub-scores and the weighted overall grade. Efficiency and balance are
// deltas against the baseline anchored at 50; feasibility, sustainability
// and goal alignment are absolute reads of the simulated state. All
// sub-scores are clamped to [0,100].
func ScoreScenario(baseline, simulated state.SystemState, impact state.ImpactAnalysis) state.ScenarioScore {
	score := state.ScenarioScore{
		Efficiency:     clamp(50+impact.Productivity.NetChange, 0, 100),
		Balance:        clamp(50+simulated.Metrics.WorkLifeBalance-baseline.Metrics.WorkLifeBalance, 0, 100),
		Feasibility:    clamp(100-10*float64(len(simulated.Conflicts))-5*float64(len(simulated.Risks)), 0, 100),
		Sustainability: clamp(100-10*simulated.Metrics.StressLevel, 0, 100),
		GoalAlignment:  clamp(simulated.Metrics.CompletionRate, 0, 100),
	}

	score.Overall = score.Efficiency*weightEfficiency +
		score.Balance*weightBalance +
		score.Feasibility*weightFeasibility +
		score.Sustainability*weightSustainability +
		score.GoalAlignment*weightGoalAlignment
	score.Improvement = score.Overall - 50
	score.Grade = gradeFor(score.Overall)
	return score
}

func gradeFor(overall float64) string {
	switch {
	case overall >= 90:
		return "A"
	case overall >= 80:
		return "B"
	case overall >= 70:
		return "C"
	case overall >= 60:
		return "D"
	default:
		return "F"
	}
}
