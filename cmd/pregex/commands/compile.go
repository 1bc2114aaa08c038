package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ritamzico/pregex"
)

var compileCmd = &cobra.Command{
	Use:   "compile <pattern>",
	Short: "Compile a pattern and report its NFA state count",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		nfa, err := pregex.Compile(args[0], cacheDir)
		if err != nil {
			return err
		}
		fmt.Printf("compiled %q into %d NFA states\n", args[0], nfa.StateCount())
		return nil
	},
}
