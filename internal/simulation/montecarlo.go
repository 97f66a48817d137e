package simulation

import (
	"context"
	"math/rand"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"whatif/internal/analysis"
	"whatif/internal/state"
)

// perturbationRange scales each event duration by a uniform factor in
// [1-perturbationRange, 1+perturbationRange].
const perturbationRange = 0.20

// runMonteCarlo executes N independent trials, each on its own clone of the
// baseline with randomly perturbed event durations, and averages the
// resulting metrics. Trials only read the immutable baseline, so they run
// concurrently; aggregation waits for all of them. Each trial derives its
// RNG from the base seed plus the trial index, which keeps runs reproducible
// for a fixed seed regardless of scheduling order.
func (e *Engine) runMonteCarlo(ctx context.Context, baseline state.SystemState, changes []state.ScenarioChange, result *Result) (state.SystemMetrics, error) {
	trials := e.trials
	if trials <= 0 {
		trials = 100
	}

	seed := e.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	// Each trial writes into its own slot; the sum happens in index order
	// after the barrier. Summing as trials complete would make the float
	// rounding depend on scheduling.
	results := make([]state.SystemMetrics, trials)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i := 0; i < trials; i++ {
		i := i
		g.Go(func() error {
			// Cooperative cancellation between trials.
			if err := ctx.Err(); err != nil {
				return err
			}

			rng := rand.New(rand.NewSource(seed + int64(i)))
			m, err := e.runTrial(baseline, changes, rng)
			if err != nil {
				return err
			}
			results[i] = m
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return state.SystemMetrics{}, err
	}

	var sum state.SystemMetrics
	for _, m := range results {
		addMetrics(&sum, m)
	}

	result.logf("info", "Monte Carlo aggregation over %d trial(s), seed %d", trials, seed)
	return scaleMetrics(sum, 1/float64(trials)), nil
}

// runTrial perturbs the baseline, applies the changes and recomputes the
// metrics for one randomized draw.
func (e *Engine) runTrial(baseline state.SystemState, changes []state.ScenarioChange, rng *rand.Rand) (state.SystemMetrics, error) {
	s := state.Clone(baseline)
	perturbDurations(&s, rng)

	for _, c := range changes {
		next, _, err := state.Apply(s, c)
		if err != nil {
			return state.SystemMetrics{}, err
		}
		s = next
	}

	s.Conflicts = analysis.DetectConflicts(s)
	return analysis.ComputeMetrics(s, e.now()), nil
}

// perturbDurations stretches or shrinks every event by up to +/-20%,
// anchored at the start time.
func perturbDurations(s *state.SystemState, rng *rand.Rand) {
	for i := range s.Events {
		factor := 1 - perturbationRange + 2*perturbationRange*rng.Float64()
		d := time.Duration(float64(s.Events[i].Duration()) * factor)
		s.Events[i].EndTime = s.Events[i].StartTime.Add(d)
	}
}

func addMetrics(sum *state.SystemMetrics, m state.SystemMetrics) {
	sum.TotalScheduledHours += m.TotalScheduledHours
	sum.TotalFreeHours += m.TotalFreeHours
	sum.CompletionRate += m.CompletionRate
	sum.ProductivityScore += m.ProductivityScore
	sum.FragmentationIndex += m.FragmentationIndex
	sum.WorkLifeBalance += m.WorkLifeBalance
	sum.StressLevel += m.StressLevel
	sum.EnergyBalance += m.EnergyBalance
}

func scaleMetrics(m state.SystemMetrics, f float64) state.SystemMetrics {
	m.TotalScheduledHours *= f
	m.TotalFreeHours *= f
	m.CompletionRate *= f
	m.ProductivityScore *= f
	m.FragmentationIndex *= f
	m.WorkLifeBalance *= f
	m.StressLevel *= f
	m.EnergyBalance *= f
	return m
}
