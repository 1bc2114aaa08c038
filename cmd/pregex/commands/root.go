// Package commands wires the pregex CLI's cobra command tree: a
// persistent pre-run that initializes logging and configuration, and
// one subcommand per engine operation. Grounded in the retrieved
// mcs-mcp repo's cmd/mcs-mcp/commands/root.go, since the teacher's own
// cmd/cli is a bare REPL rather than a cobra tree.
package commands

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/ritamzico/pregex/internal/config"
	"github.com/ritamzico/pregex/internal/logging"
)

var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"

	verbose  bool
	noColor  bool
	cacheDir string

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "pregex",
	Short: "pregex is a probabilistic regular expression engine",
	Long: `pregex extends classical regular expressions with distribution-annotated
quantifiers and character classes, reporting a match likelihood in [0,1]
instead of a yes/no decision.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		var err error
		cfg, err = config.Load()
		if err != nil {
			log.Fatal().Err(err).Msg("failed to load configuration")
		}

		if err := logging.Init(cfg.LogDir, verbose || cfg.Verbose, noColor); err != nil {
			log.Fatal().Err(err).Msg("failed to initialize logging")
		}

		if cacheDir == "" {
			cacheDir = cfg.CacheDir
		}

		log.Info().
			Str("version", Version).
			Str("commit", Commit).
			Str("buildDate", BuildDate).
			Msg("pregex starting")
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose (debug) logging")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colorized output")
	rootCmd.PersistentFlags().StringVar(&cacheDir, "cache-dir", "", "override the NFA disk-cache directory")

	rootCmd.AddCommand(compileCmd, matchCmd, batchCmd, watchCmd)
}
