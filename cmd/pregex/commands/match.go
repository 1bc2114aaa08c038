package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ritamzico/pregex"
)

var matchTrace bool

var matchCmd = &cobra.Command{
	Use:   "match <pattern> <input>",
	Short: "Match a pattern against a single input and report its likelihood",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		pattern, input := args[0], args[1]

		nfa, err := pregex.Compile(pattern, cacheDir)
		if err != nil {
			return err
		}

		p, rendered, err := pregex.MatchLikelihood(nfa, input, matchTrace)
		if err != nil {
			return err
		}

		if matchTrace {
			fmt.Print(rendered)
		}

		if p == nil {
			fmt.Printf("%q vs %q: no match\n", input, pattern)
			return nil
		}
		fmt.Printf("%q vs %q: %.6f\n", input, pattern, *p)
		return nil
	},
}

func init() {
	matchCmd.Flags().BoolVar(&matchTrace, "trace", false, "print a per-step active-state table")
}
