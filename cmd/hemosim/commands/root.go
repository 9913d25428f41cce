package commands

import (
	"hemosim/internal/config"
	"hemosim/internal/logging"
	"hemosim/internal/mcp"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
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
	Use:   "hemosim",
	Short: "hemosim is a Monte-Carlo blood-usage simulator and MCP server",
	Long: `A blood-bank demand forecaster that samples empirical frequency distributions
(one per blood type: A, B, AB, O) and aggregates independent simulated periods.
Without a subcommand it serves the simulator over MCP stdio.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Init(verbose)

		// Load configuration
		var err error
		cfg, err = config.Load()
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to load configuration")
		}

		log.Info().
			Str("version", Version).
			Str("commit", Commit).
			Str("buildDate", BuildDate).
			Msg("hemosim starting")
	},
	Run: func(cmd *cobra.Command, args []string) {
		server := mcp.NewServer(cfg)
		if err := server.Start(); err != nil {
			log.Fatal().Err(err).Msg("MCP server failed")
		}
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}
