package simulation

import (
	"fmt"

	"whatif/internal/state"
)

// buildRecommendations turns the impact analysis and simulated state into
// short, human-readable follow-ups shown next to the scenario.
func buildRecommendations(impact state.ImpactAnalysis, simulated state.SystemState) []string {
	recs := make([]string, 0, 4)

	switch impact.Overall.Recommendation {
	case state.StronglyRecommend, state.Recommend:
		recs = append(recs, "This scenario improves your schedule; consider applying it")
	case state.NotRecommend, state.StronglyAgainst:
		recs = append(recs, "This scenario makes your schedule worse; revisit the changes before applying")
	}

	if impact.Conflicts.IntroducedConflicts > 0 {
		recs = append(recs, fmt.Sprintf("Resolve the %d new conflict(s) before applying", impact.Conflicts.IntroducedConflicts))
	}
	for _, r := range simulated.Risks {
		if r.Mitigation != "" {
			recs = append(recs, r.Mitigation)
		}
	}
	if impact.Time.FreedHours >= 1 {
		recs = append(recs, fmt.Sprintf("Use the freed %.1fh for focus work or recovery", impact.Time.FreedHours))
	}

	return recs
}
