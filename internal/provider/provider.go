// Package provider defines the optional suggestion provider consumed by deep
// simulations. Providers are best-effort collaborators: they run behind an
// explicit timeout and the engine degrades to standard results when they
// fail or run out of budget.
package provider

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"whatif/internal/state"
)

// SuggestionProvider proposes additional scenario changes for a state, e.g.
// an AI assistant looking at the simulated schedule.
type SuggestionProvider interface {
	Suggest(ctx context.Context, scenario *state.WhatIfScenario, s state.SystemState) ([]state.ScenarioChange, error)
}

// Noop is the default provider; it never suggests anything.
type Noop struct{}

func (Noop) Suggest(context.Context, *state.WhatIfScenario, state.SystemState) ([]state.ScenarioChange, error) {
	return nil, nil
}

// SuggestWithTimeout runs the provider under a deadline. A timeout is
// reported as state.ErrProviderTimeout; any other provider error is passed
// through. Callers treat both as a degrade signal, not a failure.
func SuggestWithTimeout(ctx context.Context, p SuggestionProvider, scenario *state.WhatIfScenario, s state.SystemState, timeout time.Duration) ([]state.ScenarioChange, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type outcome struct {
		changes []state.ScenarioChange
		err     error
	}
	done := make(chan outcome, 1)
	go func() {
		changes, err := p.Suggest(ctx, scenario, s)
		done <- outcome{changes, err}
	}()

	select {
	case out := <-done:
		if out.err != nil && errors.Is(out.err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: %v", state.ErrProviderTimeout, out.err)
		}
		return out.changes, out.err
	case <-ctx.Done():
		log.Warn().Str("scenario", scenario.ID).Dur("timeout", timeout).Msg("Suggestion provider exceeded its budget")
		return nil, fmt.Errorf("%w after %s", state.ErrProviderTimeout, timeout)
	}
}
