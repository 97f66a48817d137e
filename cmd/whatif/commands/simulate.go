package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/browser"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"whatif/internal/provider"
	"whatif/internal/simulation"
	"whatif/internal/state"
	"whatif/internal/visuals"
)

var (
	simMode    string
	simSeed    int64
	simTrials  int
	openReport bool
)

// scenarioFile is the on-disk shape consumed by `whatif simulate`.
type scenarioFile struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	Baseline    state.SystemState      `json:"baseline"`
	Changes     []state.ScenarioChange `json:"changes"`
}

var simulateCmd = &cobra.Command{
	Use:   "simulate <scenario.json>",
	Short: "Run a one-shot simulation of a scenario file and print the result",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read scenario file: %w", err)
		}

		var sf scenarioFile
		if err := json.Unmarshal(data, &sf); err != nil {
			return fmt.Errorf("failed to parse scenario file: %w", err)
		}

		scn := state.NewScenario(sf.Name, sf.Description, sf.Baseline)
		for _, c := range sf.Changes {
			if err := scn.AddChange(c); err != nil {
				return err
			}
		}

		opts := []simulation.Option{
			simulation.WithMaxDailyHours(cfg.MaxDailyHours),
			simulation.WithSuggestionTimeout(cfg.SuggestionTimeout),
			simulation.WithProvider(provider.Noop{}),
		}
		if simTrials > 0 {
			opts = append(opts, simulation.WithTrials(simTrials))
		} else {
			opts = append(opts, simulation.WithTrials(cfg.MonteCarloTrials))
		}
		if simSeed != 0 {
			opts = append(opts, simulation.WithSeed(simSeed))
		}
		engine := simulation.NewEngine(opts...)

		result, err := engine.Run(context.Background(), scn, simulation.ParseMode(simMode))
		if err != nil {
			out, _ := json.MarshalIndent(result, "", "  ")
			fmt.Println(string(out))
			return err
		}

		out, _ := json.MarshalIndent(map[string]interface{}{
			"result":          result,
			"impact":          scn.Impact,
			"score":           scn.Score,
			"recommendations": scn.Recommendations,
		}, "", "  ")
		fmt.Println(string(out))

		if openReport {
			if err := writeAndOpenReport(scn, result); err != nil {
				log.Warn().Err(err).Msg("Failed to open HTML report")
			}
		}
		return nil
	},
}

func writeAndOpenReport(scn *state.WhatIfScenario, result *simulation.Result) error {
	path := filepath.Join(cfg.CacheDir, fmt.Sprintf("report-%s.html", scn.ID))
	if err := visuals.WriteHTMLReport(path, scn, result.Visualization); err != nil {
		return err
	}
	log.Info().Str("path", path).Msg("HTML report written")
	return browser.OpenFile(path)
}

func init() {
	simulateCmd.Flags().StringVarP(&simMode, "mode", "m", "standard", "simulation mode: quick, standard, deep, monte_carlo")
	simulateCmd.Flags().Int64Var(&simSeed, "seed", 0, "Monte-Carlo seed (0 = system entropy)")
	simulateCmd.Flags().IntVar(&simTrials, "trials", 0, "Monte-Carlo trial count (0 = configured default)")
	simulateCmd.Flags().BoolVar(&openReport, "report", false, "write an HTML report and open it in the browser")
	rootCmd.AddCommand(simulateCmd)
}
