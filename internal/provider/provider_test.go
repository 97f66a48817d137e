package provider

import (
	"context"
	"errors"
	"testing"
	"time"

	"whatif/internal/state"
)

type stubProvider struct {
	changes []state.ScenarioChange
	err     error
	delay   time.Duration
}

func (p stubProvider) Suggest(ctx context.Context, _ *state.WhatIfScenario, _ state.SystemState) ([]state.ScenarioChange, error) {
	if p.delay > 0 {
		select {
		case <-time.After(p.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return p.changes, p.err
}

func TestSuggestWithTimeout_PassesThrough(t *testing.T) {
	want := []state.ScenarioChange{{
		ID: "c1", Type: state.ChangeRemove, Target: state.TargetEvent,
		Remove: &state.RemovePayload{ItemID: "e1"},
	}}
	scn := &state.WhatIfScenario{ID: "s1"}

	got, err := SuggestWithTimeout(context.Background(), stubProvider{changes: want}, scn, state.SystemState{}, time.Second)
	if err != nil {
		t.Fatalf("SuggestWithTimeout: %v", err)
	}
	if len(got) != 1 || got[0].ID != "c1" {
		t.Errorf("suggestions = %v, want %v", got, want)
	}
}

func TestSuggestWithTimeout_SlowProviderTimesOut(t *testing.T) {
	scn := &state.WhatIfScenario{ID: "s1"}
	slow := stubProvider{delay: time.Second}

	_, err := SuggestWithTimeout(context.Background(), slow, scn, state.SystemState{}, 10*time.Millisecond)
	if !errors.Is(err, state.ErrProviderTimeout) {
		t.Errorf("got %v, want ErrProviderTimeout", err)
	}
}

func TestSuggestWithTimeout_ProviderErrorPassesThrough(t *testing.T) {
	scn := &state.WhatIfScenario{ID: "s1"}
	boom := errors.New("upstream unavailable")

	_, err := SuggestWithTimeout(context.Background(), stubProvider{err: boom}, scn, state.SystemState{}, time.Second)
	if !errors.Is(err, boom) {
		t.Errorf("got %v, want the provider's own error", err)
	}
	if errors.Is(err, state.ErrProviderTimeout) {
		t.Errorf("non-timeout error mapped to ErrProviderTimeout")
	}
}

func TestNoop(t *testing.T) {
	changes, err := Noop{}.Suggest(context.Background(), nil, state.SystemState{})
	if err != nil || changes != nil {
		t.Errorf("Noop returned %v, %v", changes, err)
	}
}
