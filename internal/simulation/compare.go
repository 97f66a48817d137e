package simulation

import (
	"fmt"
	"sort"

	"whatif/internal/state"
)

// Comparison dimensions are fixed: name, weight, and how the dimension maps
// onto a scenario's score fields.
var comparisonDimensions = []struct {
	Name   string
	Weight float64
	Value  func(state.ScenarioScore) float64
}{
	{"efficiency", 0.30, func(s state.ScenarioScore) float64 { return s.Efficiency }},
	{"balance", 0.20, func(s state.ScenarioScore) float64 { return s.Balance }},
	{"feasibility", 0.20, func(s state.ScenarioScore) float64 { return s.Feasibility }},
	{"stress_management", 0.15, func(s state.ScenarioScore) float64 { return s.Sustainability }},
	{"goal_achievement", 0.15, func(s state.ScenarioScore) float64 { return s.GoalAlignment }},
}

// DimensionResult holds one criterion row of the comparison.
type DimensionResult struct {
	Name     string             `json:"name"`
	Weight   float64            `json:"weight"`
	Scores   map[string]float64 `json:"scores"` // scenario id -> raw score
	WinnerID string             `json:"winner_id"`
}

// DecisionMatrix is the auditable criteria x alternatives breakdown.
type DecisionMatrix struct {
	Criteria     []string    `json:"criteria"`
	Weights      []float64   `json:"weights"`
	Alternatives []string    `json:"alternatives"` // scenario ids, input order
	Raw          [][]float64 `json:"raw"`          // [criterion][alternative]
	Weighted     [][]float64 `json:"weighted"`
	Ranking      []string    `json:"ranking"` // scenario ids, best first
}

// ScenarioComparison ranks N simulated scenarios against each other.
type ScenarioComparison struct {
	Dimensions []DimensionResult  `json:"dimensions"`
	Totals     map[string]float64 `json:"totals"` // scenario id -> weighted sum
	WinnerID   string             `json:"winner_id"`
	Matrix     DecisionMatrix     `json:"matrix"`
}

// Compare ranks already-simulated scenarios via a weighted multi-criteria
// decision matrix. It requires at least two simulated scenarios and returns
// ErrComparisonPrecondition otherwise.
func Compare(scenarios []*state.WhatIfScenario) (*ScenarioComparison, error) {
	if len(scenarios) < 2 {
		return nil, fmt.Errorf("%w: got %d", state.ErrComparisonPrecondition, len(scenarios))
	}
	for _, s := range scenarios {
		if s.Score == nil || (s.Status != state.StatusSimulated && s.Status != state.StatusApplied) {
			return nil, fmt.Errorf("%w: scenario %q has not been simulated", state.ErrComparisonPrecondition, s.Name)
		}
	}

	cmp := &ScenarioComparison{
		Totals: make(map[string]float64, len(scenarios)),
		Matrix: DecisionMatrix{
			Alternatives: make([]string, len(scenarios)),
		},
	}
	for i, s := range scenarios {
		cmp.Matrix.Alternatives[i] = s.ID
	}

	for _, dim := range comparisonDimensions {
		res := DimensionResult{
			Name:   dim.Name,
			Weight: dim.Weight,
			Scores: make(map[string]float64, len(scenarios)),
		}

		raw := make([]float64, len(scenarios))
		weighted := make([]float64, len(scenarios))
		best := -1.0
		for i, s := range scenarios {
			v := dim.Value(*s.Score)
			raw[i] = v
			weighted[i] = v * dim.Weight
			res.Scores[s.ID] = v
			cmp.Totals[s.ID] += weighted[i]
			if v > best {
				best = v
				res.WinnerID = s.ID
			}
		}

		cmp.Dimensions = append(cmp.Dimensions, res)
		cmp.Matrix.Criteria = append(cmp.Matrix.Criteria, dim.Name)
		cmp.Matrix.Weights = append(cmp.Matrix.Weights, dim.Weight)
		cmp.Matrix.Raw = append(cmp.Matrix.Raw, raw)
		cmp.Matrix.Weighted = append(cmp.Matrix.Weighted, weighted)
	}

	ranking := make([]string, len(scenarios))
	copy(ranking, cmp.Matrix.Alternatives)
	sort.SliceStable(ranking, func(i, j int) bool {
		return cmp.Totals[ranking[i]] > cmp.Totals[ranking[j]]
	})
	cmp.Matrix.Ranking = ranking
	cmp.WinnerID = ranking[0]

	return cmp, nil
}
