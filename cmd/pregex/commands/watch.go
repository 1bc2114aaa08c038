package commands

import (
	"fmt"
	"os"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/ritamzico/pregex"
)

var watchCmd = &cobra.Command{
	Use:   "watch <pattern-file>",
	Short: "Recompile a pattern file whenever it changes on disk",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]

		compileAndReport := func() {
			source, err := os.ReadFile(path)
			if err != nil {
				log.Error().Err(err).Str("path", path).Msg("failed to read pattern file")
				return
			}
			nfa, err := pregex.Compile(string(source), cacheDir)
			if err != nil {
				log.Error().Err(err).Str("path", path).Msg("recompile failed")
				return
			}
			fmt.Printf("recompiled %s into %d NFA states\n", path, nfa.StateCount())
		}

		compileAndReport()

		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			return err
		}
		defer watcher.Close()

		if err := watcher.Add(path); err != nil {
			return err
		}

		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return nil
				}
				if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
					compileAndReport()
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return nil
				}
				log.Error().Err(err).Msg("watcher error")
			}
		}
	},
}
