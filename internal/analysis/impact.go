package analysis

import (
	"fmt"
	"sort"
	"strings"

	"whatif/internal/state"
)

// AnalyzeImpact diffs baseline vs. simulated state into the five impact
// dimensions plus an overall assessment. Everything is derived from the two
// states; nothing is carried over between runs.
func AnalyzeImpact(baseline, simulated state.SystemState) state.ImpactAnalysis {
	var a state.ImpactAnalysis

	a.Time = state.TimeImpact{
		BaselineHours:  baseline.Metrics.TotalScheduledHours,
		SimulatedHours: simulated.Metrics.TotalScheduledHours,
		NetChange:      simulated.Metrics.TotalScheduledHours - baseline.Metrics.TotalScheduledHours,
	}
	if a.Time.NetChange < 0 {
		a.Time.FreedHours = -a.Time.NetChange
	}

	resolved, introduced := diffConflicts(baseline.Conflicts, simulated.Conflicts)
	a.Conflicts = state.ConflictImpact{
		BaselineCount:       len(baseline.Conflicts),
		SimulatedCount:      len(simulated.Conflicts),
		NetChange:           len(simulated.Conflicts) - len(baseline.Conflicts),
		ResolvedConflicts:   resolved,
		IntroducedConflicts: introduced,
	}

	a.Productivity = state.ProductivityImpact{
		BaselineScore:  baseline.Metrics.ProductivityScore,
		SimulatedScore: simulated.Metrics.ProductivityScore,
		NetChange:      simulated.Metrics.ProductivityScore - baseline.Metrics.ProductivityScore,
	}
	if baseline.Metrics.ProductivityScore > 0 {
		a.Productivity.PercentChange = a.Productivity.NetChange / baseline.Metrics.ProductivityScore * 100
	}

	a.Stress = state.StressImpact{
		BaselineLevel:  baseline.Metrics.StressLevel,
		SimulatedLevel: simulated.Metrics.StressLevel,
		NetChange:      simulated.Metrics.StressLevel - baseline.Metrics.StressLevel,
	}

	a.Goals = state.GoalImpact{
		BaselineCompletionRate:  baseline.Metrics.CompletionRate,
		SimulatedCompletionRate: simulated.Metrics.CompletionRate,
		NetChange:               simulated.Metrics.CompletionRate - baseline.Metrics.CompletionRate,
	}

	a.Overall = assess(a)
	return a
}

// assess folds the dimensions into a composite impact score anchored at the
// baseline 50, then buckets it into the 5-point recommendation scale.
func assess(a state.ImpactAnalysis) state.OverallAssessment {
	score := 50.0
	score += -a.Time.NetChange * 2 // saved hours push up, added hours push down
	score += float64(a.Conflicts.ResolvedConflicts-a.Conflicts.IntroducedConflicts) * 5
	score += a.Productivity.PercentChange * 0.5
	score += -a.Stress.NetChange * 3
	score = clamp(score, 0, 100)

	var rec state.Recommendation
	switch {
	case score > 80:
		rec = state.StronglyRecommend
	case score > 60:
		rec = state.Recommend
	case score > 40:
		rec = state.Neutral
	case score > 20:
		rec = state.NotRecommend
	default:
		rec = state.StronglyAgainst
	}

	return state.OverallAssessment{
		Recommendation: rec,
		Confidence:     minF(95, 50+score/2),
		Reasoning:      reasoning(a, score),
		ImpactScore:    score,
	}
}

func reasoning(a state.ImpactAnalysis, score float64) string {
	var parts []string
	if a.Time.FreedHours > 0 {
		parts = append(parts, fmt.Sprintf("frees %.1fh", a.Time.FreedHours))
	} else if a.Time.NetChange > 0 {
		parts = append(parts, fmt.Sprintf("adds %.1fh of scheduled time", a.Time.NetChange))
	}
	if a.Conflicts.ResolvedConflicts > 0 {
		parts = append(parts, fmt.Sprintf("resolves %d conflict(s)", a.Conflicts.ResolvedConflicts))
	}
	if a.Conflicts.IntroducedConflicts > 0 {
		parts = append(parts, fmt.Sprintf("introduces %d new conflict(s)", a.Conflicts.IntroducedConflicts))
	}
	if a.Stress.NetChange < 0 {
		parts = append(parts, fmt.Sprintf("lowers stress by %.1f", -a.Stress.NetChange))
	} else if a.Stress.NetChange > 0 {
		parts = append(parts, fmt.Sprintf("raises stress by %.1f", a.Stress.NetChange))
	}
	if len(parts) == 0 {
		parts = append(parts, "changes have negligible measurable effect")
	}
	return fmt.Sprintf("Scenario %s (impact score %.0f)", strings.Join(parts, ", "), score)
}

// diffConflicts matches conflicts across the two states by their
// order-independent item-pair identity, since conflict ids are regenerated
// on every detection pass.
func diffConflicts(baseline, simulated []state.Conflict) (resolved, introduced int) {
	base := make(map[string]bool, len(baseline))
	for _, c := range baseline {
		base[pairKey(c.Items)] = true
	}
	sim := make(map[string]bool, len(simulated))
	for _, c := range simulated {
		sim[pairKey(c.Items)] = true
	}

	for key := range base {
		if !sim[key] {
			resolved++
		}
	}
	for key := range sim {
		if !base[key] {
			introduced++
		}
	}
	return resolved, introduced
}

func pairKey(items []string) string {
	sorted := make([]string, len(items))
	copy(sorted, items)
	sort.Strings(sorted)
	return strings.Join(sorted, "|")
}

func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
