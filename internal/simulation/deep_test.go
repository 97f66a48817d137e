package simulation

import (
	"context"
	"errors"
	"testing"

	"whatif/internal/state"
)

type stubProvider struct {
	changes []state.ScenarioChange
	err     error
}

func (p stubProvider) Suggest(context.Context, *state.WhatIfScenario, state.SystemState) ([]state.ScenarioChange, error) {
	return p.changes, p.err
}

func TestRun_DeepAppliesSuggestions(t *testing.T) {
	suggester := stubProvider{changes: []state.ScenarioChange{{
		ID: "sug1", Type: state.ChangeRemove, Target: state.TargetEvent,
		Remove: &state.RemovePayload{ItemID: "review"},
	}}}

	scn := state.NewScenario("deep", "", conflictedBaseline())
	result, err := testEngine(WithProvider(suggester)).Run(context.Background(), scn, ModeDeep)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !result.Success {
		t.Fatalf("deep run failed: %v", result.Errors)
	}

	if scn.Simulated.FindEvent("review") != -1 {
		t.Errorf("provider suggestion was not applied")
	}
	if len(scn.Simulated.Conflicts) != 0 {
		t.Errorf("suggestion left %d conflict(s)", len(scn.Simulated.Conflicts))
	}
}

func TestRun_DeepDegradesOnProviderError(t *testing.T) {
	suggester := stubProvider{err: errors.New("assistant offline")}

	scn := state.NewScenario("deep", "", conflictedBaseline())
	result, err := testEngine(WithProvider(suggester)).Run(context.Background(), scn, ModeDeep)
	if err != nil {
		t.Fatalf("provider failure must degrade, not fail the run: %v", err)
	}
	if !result.Success {
		t.Fatalf("degraded run reported failure: %v", result.Errors)
	}
	if len(result.Warnings) == 0 {
		t.Errorf("no degrade warning recorded")
	}
	if scn.Status != state.StatusSimulated {
		t.Errorf("status = %q, want simulated", scn.Status)
	}
}

func TestRun_DeepSkipsInapplicableSuggestions(t *testing.T) {
	suggester := stubProvider{changes: []state.ScenarioChange{{
		ID: "sug1", Type: state.ChangeRemove, Target: state.TargetEvent,
		Remove: &state.RemovePayload{ItemID: "no-such-event"},
	}}}

	scn := state.NewScenario("deep", "", conflictedBaseline())
	result, err := testEngine(WithProvider(suggester)).Run(context.Background(), scn, ModeDeep)
	if err != nil || !result.Success {
		t.Fatalf("Run: success=%v err=%v", result.Success, err)
	}
	if len(result.Warnings) == 0 {
		t.Errorf("inapplicable suggestion produced no warning")
	}
	if len(scn.Simulated.Events) != 2 {
		t.Errorf("inapplicable suggestion changed the schedule")
	}
}
