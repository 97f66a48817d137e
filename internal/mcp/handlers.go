package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"whatif/internal/simulation"
	"whatif/internal/state"
	"whatif/internal/visuals"
)

func (s *Server) handleCreateScenario(args json.RawMessage) (string, error) {
	var in struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Baseline    struct {
			Events  []state.Event      `json:"events"`
			Tasks   []state.Task       `json:"tasks"`
			Budgets []state.TimeBudget `json:"budgets"`
		} `json:"baseline"`
	}
	if err := json.Unmarshal(args, &in); err != nil {
		return "", fmt.Errorf("invalid arguments: %w", err)
	}
	if in.Name == "" {
		return "", fmt.Errorf("%w: scenario name is required", state.ErrValidation)
	}

	baseline := state.SystemState{
		Events:  in.Baseline.Events,
		Tasks:   in.Baseline.Tasks,
		Budgets: in.Baseline.Budgets,
	}
	scn := state.NewScenario(in.Name, in.Description, baseline)
	s.repo.Put(scn)

	log.Info().Str("scenario", scn.ID).Str("name", scn.Name).
		Int("events", len(baseline.Events)).Int("tasks", len(baseline.Tasks)).
		Msg("Scenario created")

	return formatResult(map[string]interface{}{
		"scenario_id": scn.ID,
		"name":        scn.Name,
		"status":      scn.Status,
		"events":      len(baseline.Events),
		"tasks":       len(baseline.Tasks),
	}), nil
}

func (s *Server) handleAddChange(args json.RawMessage) (string, error) {
	var in struct {
		ScenarioID string               `json:"scenario_id"`
		Change     state.ScenarioChange `json:"change"`
	}
	if err := json.Unmarshal(args, &in); err != nil {
		return "", fmt.Errorf("invalid arguments: %w", err)
	}

	scn, ok := s.repo.Get(in.ScenarioID)
	if !ok {
		return "", fmt.Errorf("%w: scenario %s", state.ErrNotFound, in.ScenarioID)
	}
	if err := scn.AddChange(in.Change); err != nil {
		return "", err
	}

	return formatResult(map[string]interface{}{
		"scenario_id": scn.ID,
		"changes":     len(scn.Changes),
		"status":      scn.Status,
	}), nil
}

func (s *Server) handleRunSimulation(args json.RawMessage) (string, error) {
	var in struct {
		ScenarioID string `json:"scenario_id"`
		Mode       string `json:"mode"`
	}
	if err := json.Unmarshal(args, &in); err != nil {
		return "", fmt.Errorf("invalid arguments: %w", err)
	}

	scn, ok := s.repo.Get(in.ScenarioID)
	if !ok {
		return "", fmt.Errorf("%w: scenario %s", state.ErrNotFound, in.ScenarioID)
	}

	result, err := s.engine.Run(context.Background(), scn, simulation.ParseMode(in.Mode))
	if err != nil {
		// Surface the failure result rather than a bare error string.
		return formatResult(result), nil
	}

	if err := s.repo.Save(s.cfg.CacheDir); err != nil {
		log.Warn().Err(err).Msg("Failed to persist scenario cache after simulation")
	}

	out := formatResult(map[string]interface{}{
		"result":          result,
		"impact":          scn.Impact,
		"score":           scn.Score,
		"recommendations": scn.Recommendations,
	})

	if s.cfg.EnableMermaidCharts {
		charts := []string{
			visuals.GenerateTimelineChart(result.Visualization),
			visuals.GenerateMetricsChart(result.Visualization),
			visuals.GenerateDistributionChart(result.Visualization),
		}
		for _, chart := range charts {
			if chart != "" {
				out += "\n\n" + chart
			}
		}
	}
	return out, nil
}

func (s *Server) handleCompareScenarios(args json.RawMessage) (string, error) {
	var in struct {
		ScenarioIDs []string `json:"scenario_ids"`
	}
	if err := json.Unmarshal(args, &in); err != nil {
		return "", fmt.Errorf("invalid arguments: %w", err)
	}

	scenarios := make([]*state.WhatIfScenario, 0, len(in.ScenarioIDs))
	var missing []string
	for _, id := range in.ScenarioIDs {
		if scn, ok := s.repo.Get(id); ok {
			scenarios = append(scenarios, scn)
		} else {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		return "", fmt.Errorf("%w: scenario(s) %s", state.ErrNotFound, strings.Join(missing, ", "))
	}

	cmp, err := simulation.Compare(scenarios)
	if err != nil {
		return "", err
	}
	return formatResult(cmp), nil
}

func (s *Server) handleListScenarios() (string, error) {
	type row struct {
		ID      string               `json:"id"`
		Name    string               `json:"name"`
		Status  state.ScenarioStatus `json:"status"`
		Changes int                  `json:"changes"`
		Overall *float64             `json:"overall,omitempty"`
		Grade   string               `json:"grade,omitempty"`
	}

	rows := make([]row, 0)
	for _, scn := range s.repo.List() {
		r := row{ID: scn.ID, Name: scn.Name, Status: scn.Status, Changes: len(scn.Changes)}
		if scn.Score != nil {
			overall := scn.Score.Overall
			r.Overall = &overall
			r.Grade = scn.Score.Grade
		}
		rows = append(rows, r)
	}
	return formatResult(rows), nil
}

func (s *Server) handleGetScenario(args json.RawMessage) (string, error) {
	var in struct {
		ScenarioID string `json:"scenario_id"`
	}
	if err := json.Unmarshal(args, &in); err != nil {
		return "", fmt.Errorf("invalid arguments: %w", err)
	}

	scn, ok := s.repo.Get(in.ScenarioID)
	if !ok {
		return "", fmt.Errorf("%w: scenario %s", state.ErrNotFound, in.ScenarioID)
	}
	return formatResult(scn), nil
}

func (s *Server) handleSetActiveScenario(args json.RawMessage) (string, error) {
	var in struct {
		ScenarioID string `json:"scenario_id"`
	}
	if err := json.Unmarshal(args, &in); err != nil {
		return "", fmt.Errorf("invalid arguments: %w", err)
	}

	if err := s.repo.SetActive(in.ScenarioID); err != nil {
		return "", err
	}
	return formatResult(map[string]interface{}{"active_scenario_id": in.ScenarioID}), nil
}
