package commands

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"whatif/internal/config"
	"whatif/internal/logging"
	"whatif/internal/mcp"
	"whatif/internal/provider"
	"whatif/internal/scenario"
)

var (
	// Version, Commit, and BuildDate are set at build time via ldflags.
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"

	verbose bool
	cfg     *config.AppConfig
)

var rootCmd = &cobra.Command{
	Use:   "whatif",
	Short: "whatif is a decision-simulation MCP server for personal schedules",
	Long: `A what-if simulator for personal productivity: capture a snapshot of your
schedule, tasks and time budgets, apply hypothetical changes, and get conflict
detection, risk assessment, impact analysis and multi-dimensional scoring -
including a Monte-Carlo mode for robustness under uncertainty.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Init(verbose)

		var err error
		cfg, err = config.Load()
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to load configuration")
		}

		log.Info().
			Str("version", Version).
			Str("commit", Commit).
			Str("buildDate", BuildDate).
			Msg("whatif starting")
	},
	Run: func(cmd *cobra.Command, args []string) {
		log.Info().Msg("MCP Server starting Stdio loop")
		server := mcp.NewServer(cfg, scenario.NewRepository(), provider.Noop{})
		if err := server.Serve(); err != nil {
			log.Fatal().Err(err).Msg("MCP server terminated")
		}
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}
