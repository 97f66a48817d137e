package simulation

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"whatif/internal/analysis"
	"whatif/internal/provider"
	"whatif/internal/state"
	"whatif/internal/visuals"
)

// Mode selects the simulation fidelity.
type Mode string

const (
	// ModeQuick uses cheaper approximations (adjacent-pair conflict scan).
	ModeQuick Mode = "quick"
	// ModeStandard runs the full algorithms once.
	ModeStandard Mode = "standard"
	// ModeDeep additionally queries the suggestion provider and applies its
	// changes in a second convergence pass.
	ModeDeep Mode = "deep"
	// ModeMonteCarlo repeats the run with randomized duration perturbations
	// and averages the metrics across trials.
	ModeMonteCarlo Mode = "monte_carlo"
)

// ParseMode maps a wire string to a Mode, defaulting to standard.
func ParseMode(s string) Mode {
	switch Mode(s) {
	case ModeQuick, ModeStandard, ModeDeep, ModeMonteCarlo:
		return Mode(s)
	default:
		return ModeStandard
	}
}

// LogEntry is one line of the simulation log trail.
type LogEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"`
	Message   string    `json:"message"`
}

// Result is the outcome of one engine run: success flag, log trail,
// warnings, errors, timing and chart payloads. Scenario outcome data
// (simulated state, impact, score) lives on the scenario itself.
type Result struct {
	ScenarioID    string        `json:"scenario_id"`
	Mode          Mode          `json:"mode"`
	Success       bool          `json:"success"`
	Errors        []string      `json:"errors,omitempty"`
	Warnings      []string      `json:"warnings,omitempty"`
	Logs          []LogEntry    `json:"logs"`
	ExecutionMs   int64         `json:"execution_ms"`
	Visualization *visuals.Data `json:"visualization,omitempty"`
}

func (r *Result) logf(level, format string, args ...any) {
	r.Logs = append(r.Logs, LogEntry{
		Timestamp: time.Now(),
		Level:     level,
		Message:   fmt.Sprintf(format, args...),
	})
}

func (r *Result) warnf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	r.Warnings = append(r.Warnings, msg)
	r.logf("warn", "%s", msg)
}

// Engine orchestrates cloning, change application, detection, metrics,
// impact and scoring per simulation mode. Engines hold no per-run state;
// concurrent runs on different scenarios are safe as long as one scenario
// is not shared across concurrent Run calls.
type Engine struct {
	maxDailyHours     float64
	trials            int
	suggestionTimeout time.Duration
	provider          provider.SuggestionProvider
	seed              int64
	now               func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithProvider sets the deep-mode suggestion provider.
func WithProvider(p provider.SuggestionProvider) Option {
	return func(e *Engine) { e.provider = p }
}

// WithSeed fixes the Monte-Carlo random seed for reproducible runs.
// Zero (the default) seeds from system entropy.
func WithSeed(seed int64) Option {
	return func(e *Engine) { e.seed = seed }
}

// WithTrials sets the Monte-Carlo trial count.
func WithTrials(n int) Option {
	return func(e *Engine) { e.trials = n }
}

// WithMaxDailyHours sets the overload threshold used by the risk assessor.
func WithMaxDailyHours(h float64) Option {
	return func(e *Engine) { e.maxDailyHours = h }
}

// WithSuggestionTimeout bounds the deep-mode provider call.
func WithSuggestionTimeout(d time.Duration) Option {
	return func(e *Engine) { e.suggestionTimeout = d }
}

// WithClock overrides the engine clock, for tests.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// NewEngine builds an engine with explicit dependencies; there are no hidden
// process-wide singletons.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		maxDailyHours:     10,
		trials:            100,
		suggestionTimeout: 5 * time.Second,
		provider:          provider.Noop{},
		now:               time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run simulates the scenario in the given mode. On success the scenario is
// updated in place (simulated state, per-change impacts, impact analysis,
// recommendations, score, status=simulated). On failure the scenario is left
// exactly as it was before the call, including its previous simulated state,
// and the error is mirrored into the returned result.
func (e *Engine) Run(ctx context.Context, scn *state.WhatIfScenario, mode Mode) (*Result, error) {
	started := time.Now()
	result := &Result{ScenarioID: scn.ID, Mode: mode}
	result.logf("info", "Simulation started: scenario %q, mode %s, %d change(s)", scn.Name, mode, len(scn.Changes))

	// Validate everything up front so a malformed change can never leave a
	// half-applied result behind.
	for _, c := range scn.Changes {
		if err := c.Validate(); err != nil {
			return e.fail(result, started, err)
		}
	}

	working := state.Clone(scn.Baseline)
	impacts := make([]state.ChangeImpact, len(scn.Changes))

	// Changes apply in list order; order matters and is never re-sorted.
	for i, c := range scn.Changes {
		before := e.quickMetrics(working)

		next, applied, err := state.Apply(working, c)
		if err != nil {
			return e.fail(result, started, err)
		}
		working = next

		if !applied {
			result.warnf("Change %s (%s %s) references a missing item; skipped", c.ID, c.Type, c.Target)
			impacts[i] = state.ChangeImpact{Applied: false}
			continue
		}

		after := e.quickMetrics(working)
		impacts[i] = state.ChangeImpact{
			Applied:           true,
			HoursDelta:        after.TotalScheduledHours - before.TotalScheduledHours,
			ProductivityDelta: after.ProductivityScore - before.ProductivityScore,
			StressDelta:       after.StressLevel - before.StressLevel,
		}
		result.logf("debug", "Applied change %s (%s %s)", c.ID, c.Type, c.Target)
	}

	if mode == ModeDeep {
		working = e.convergeSuggestions(ctx, scn, working, result)
	}

	e.derive(&working, mode)

	if mode == ModeMonteCarlo {
		metrics, err := e.runMonteCarlo(ctx, scn.Baseline, scn.Changes, result)
		if err != nil {
			return e.fail(result, started, err)
		}
		working.Metrics = metrics
		// Risks depend on the averaged metrics; reassess against them.
		working.Risks = analysis.AssessRisks(working, e.maxDailyHours, e.now())
	}

	// The baseline snapshot carries no derived fields; derive a copy with the
	// same fidelity as the working state so the diff compares like with like.
	baseline := state.Clone(scn.Baseline)
	e.derive(&baseline, mode)

	impact := analysis.AnalyzeImpact(baseline, working)
	score := analysis.ScoreScenario(baseline, working, impact)

	// Commit point: everything below mutates the scenario and cannot fail.
	for i := range scn.Changes {
		imp := impacts[i]
		scn.Changes[i].ActualImpact = &imp
	}
	scn.Simulated = &working
	scn.Impact = &impact
	scn.Score = &score
	scn.Recommendations = buildRecommendations(impact, working)
	scn.Status = state.StatusSimulated

	result.Success = true
	result.Visualization = visuals.Build(baseline, working)
	result.ExecutionMs = time.Since(started).Milliseconds()
	result.logf("info", "Simulation finished: score %.1f (%s), %d conflict(s), %d risk(s)",
		score.Overall, score.Grade, len(working.Conflicts), len(working.Risks))

	log.Info().
		Str("scenario", scn.ID).
		Str("mode", string(mode)).
		Float64("score", score.Overall).
		Int64("ms", result.ExecutionMs).
		Msg("Simulation run complete")

	return result, nil
}

func (e *Engine) fail(result *Result, started time.Time, err error) (*Result, error) {
	result.Success = false
	result.Errors = append(result.Errors, err.Error())
	result.ExecutionMs = time.Since(started).Milliseconds()
	result.logf("error", "Simulation aborted: %v", err)
	log.Error().Err(err).Str("scenario", result.ScenarioID).Msg("Simulation failed")
	return result, err
}

// derive recomputes all derived fields of a state in dependency order:
// conflicts feed metrics, metrics feed risks.
func (e *Engine) derive(s *state.SystemState, mode Mode) {
	if mode == ModeQuick {
		s.Conflicts = analysis.DetectConflictsQuick(*s)
	} else {
		s.Conflicts = analysis.DetectConflicts(*s)
	}
	s.Distribution = analysis.ComputeDistribution(*s)
	s.Metrics = analysis.ComputeMetrics(*s, e.now())
	s.Risks = analysis.AssessRisks(*s, e.maxDailyHours, e.now())
	s.Timestamp = e.now()
}

// quickMetrics is the cheap per-change recompute used for actualImpact
// attribution: adjacent-pair conflicts only, no risk pass.
func (e *Engine) quickMetrics(s state.SystemState) state.SystemMetrics {
	s.Conflicts = analysis.DetectConflictsQuick(s)
	return analysis.ComputeMetrics(s, e.now())
}

// convergeSuggestions asks the provider for follow-up changes and applies
// them in a second pass. The provider is best-effort: timeouts and errors
// degrade the run to standard-mode results instead of failing it.
func (e *Engine) convergeSuggestions(ctx context.Context, scn *state.WhatIfScenario, working state.SystemState, result *Result) state.SystemState {
	suggested, err := provider.SuggestWithTimeout(ctx, e.provider, scn, working, e.suggestionTimeout)
	if err != nil {
		result.warnf("Suggestion provider unavailable, degrading to standard results: %v", err)
		return working
	}

	for _, c := range suggested {
		if err := c.Validate(); err != nil {
			result.warnf("Discarding malformed provider suggestion: %v", err)
			continue
		}
		next, applied, err := state.Apply(working, c)
		if err != nil || !applied {
			result.warnf("Provider suggestion %s not applicable; skipped", c.ID)
			continue
		}
		working = next
		result.logf("info", "Applied provider suggestion %s (%s %s)", c.ID, c.Type, c.Target)
	}
	return working
}
