// Package logging configures pregex's global zerolog logger: a
// colorized console writer when attached to a real terminal, and a
// size-rotated file sink always, following the dual-sink setup used by
// the retrieved mcs-mcp repo's internal/logging package.
package logging

import (
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Init installs the global logger. verbose raises the level to Debug
// (one line per compiled NFA, per-token simulation steps);
// otherwise the engine logs at Info and above. noColor forces the
// console sink to plain text regardless of terminal detection, for
// piped or redirected CLI output.
func Init(logDir string, verbose, noColor bool) error {
	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	isTerminal := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	console := zerolog.ConsoleWriter{
		Out:     os.Stdout,
		NoColor: noColor || !isTerminal,
	}

	file := &lumberjack.Logger{
		Filename:   filepath.Join(logDir, "pregex.log"),
		MaxSize:    16,
		MaxBackups: 32,
		MaxAge:     365,
		Compress:   true,
	}

	multi := zerolog.MultiLevelWriter(console, file)
	log.Logger = zerolog.New(multi).With().Timestamp().Logger()
	return nil
}
