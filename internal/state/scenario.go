package state

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ScenarioStatus tracks the scenario lifecycle:
// draft -(run)-> simulated -(apply)-> applied. Archived is terminal and
// reached only by explicit user action.
type ScenarioStatus string

const (
	StatusDraft     ScenarioStatus = "draft"
	StatusSimulated ScenarioStatus = "simulated"
	StatusApplied   ScenarioStatus = "applied"
	StatusArchived  ScenarioStatus = "archived"
)

// ImpactAnalysis is the diff between baseline and simulated state, with a
// qualitative recommendation. Purely derived; recomputed wholesale each run.
type ImpactAnalysis struct {
	Time         TimeImpact         `json:"time"`
	Conflicts    ConflictImpact     `json:"conflicts"`
	Productivity ProductivityImpact `json:"productivity"`
	Stress       StressImpact       `json:"stress"`
	Goals        GoalImpact         `json:"goals"`
	Overall      OverallAssessment  `json:"overall"`
}

type TimeImpact struct {
	BaselineHours  float64 `json:"baseline_hours"`
	SimulatedHours float64 `json:"simulated_hours"`
	NetChange      float64 `json:"net_change"`
	FreedHours     float64 `json:"freed_hours"`
}

type ConflictImpact struct {
	BaselineCount       int `json:"baseline_count"`
	SimulatedCount      int `json:"simulated_count"`
	NetChange           int `json:"net_change"`
	ResolvedConflicts   int `json:"resolved_conflicts"`
	IntroducedConflicts int `json:"introduced_conflicts"`
}

type ProductivityImpact struct {
	BaselineScore  float64 `json:"baseline_score"`
	SimulatedScore float64 `json:"simulated_score"`
	NetChange      float64 `json:"net_change"`
	PercentChange  float64 `json:"percent_change"`
}

type StressImpact struct {
	BaselineLevel  float64 `json:"baseline_level"`
	SimulatedLevel float64 `json:"simulated_level"`
	NetChange      float64 `json:"net_change"`
}

type GoalImpact struct {
	BaselineCompletionRate  float64 `json:"baseline_completion_rate"`
	SimulatedCompletionRate float64 `json:"simulated_completion_rate"`
	NetChange               float64 `json:"net_change"`
}

// Recommendation is the 5-point qualitative verdict of an impact analysis.
type Recommendation string

const (
	StronglyRecommend Recommendation = "strongly_recommend"
	Recommend         Recommendation = "recommend"
	Neutral           Recommendation = "neutral"
	NotRecommend      Recommendation = "not_recommend"
	StronglyAgainst   Recommendation = "strongly_against"
)

type OverallAssessment struct {
	Recommendation Recommendation `json:"recommendation"`
	Confidence     float64        `json:"confidence"` // [0,100]
	Reasoning      string         `json:"reasoning"`
	ImpactScore    float64        `json:"impact_score"`
}

// ScenarioScore rates a simulated scenario 0-100 on five dimensions plus a
// weighted overall and a letter grade.
type ScenarioScore struct {
	Efficiency     float64 `json:"efficiency"`
	Balance        float64 `json:"balance"`
	Feasibility    float64 `json:"feasibility"`
	Sustainability float64 `json:"sustainability"`
	GoalAlignment  float64 `json:"goal_alignment"`
	Overall        float64 `json:"overall"`
	Improvement    float64 `json:"improvement"`
	Grade          string  `json:"grade"`
}

// WhatIfScenario is the aggregate root of a what-if experiment: an immutable
// baseline snapshot, an append-only change list, and the simulated outcome.
type WhatIfScenario struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	Description     string           `json:"description,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
	Baseline        SystemState      `json:"baseline"`
	Changes         []ScenarioChange `json:"changes"`
	Simulated       *SystemState     `json:"simulated,omitempty"`
	Impact          *ImpactAnalysis  `json:"impact,omitempty"`
	Recommendations []string         `json:"recommendations,omitempty"`
	Score           *ScenarioScore   `json:"score,omitempty"`
	Status          ScenarioStatus   `json:"status"`
	AppliedAt       *time.Time       `json:"applied_at,omitempty"`
}

// NewScenario captures a baseline snapshot into a fresh draft scenario.
// The baseline is deep-copied so later mutation of the caller's state can
// never leak into the scenario.
func NewScenario(name, description string, baseline SystemState) *WhatIfScenario {
	return &WhatIfScenario{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
		CreatedAt:   time.Now(),
		Baseline:    Clone(baseline),
		Changes:     make([]ScenarioChange, 0),
		Status:      StatusDraft,
	}
}

// AddChange appends a change to the scenario. Adding to a simulated scenario
// resets it to draft (the previous simulation no longer describes the change
// list). Applied and archived scenarios are frozen.
func (s *WhatIfScenario) AddChange(c ScenarioChange) error {
	if s.Status == StatusApplied || s.Status == StatusArchived {
		return fmt.Errorf("%w: cannot add change to %s scenario", ErrValidation, s.Status)
	}
	if err := c.Validate(); err != nil {
		return err
	}
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	s.Changes = append(s.Changes, c)
	if s.Status == StatusSimulated {
		s.Status = StatusDraft
	}
	return nil
}

// MarkApplied transitions a simulated scenario to applied.
func (s *WhatIfScenario) MarkApplied(at time.Time) error {
	if s.Status != StatusSimulated {
		return fmt.Errorf("%w: can only apply a simulated scenario, status is %s", ErrValidation, s.Status)
	}
	s.Status = StatusApplied
	s.AppliedAt = &at
	return nil
}
