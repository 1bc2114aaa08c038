package commands

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ritamzico/pregex"
)

var batchCmd = &cobra.Command{
	Use:   "batch <pattern> [file]",
	Short: "Match a pattern against many newline-delimited inputs concurrently",
	Long:  "Reads inputs one per line from file, or from stdin when file is omitted, and matches them concurrently via an errgroup fan-out.",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		pattern := args[0]

		in := os.Stdin
		if len(args) == 2 {
			f, err := os.Open(args[1])
			if err != nil {
				return err
			}
			defer f.Close()
			in = f
		}

		var inputs []string
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			inputs = append(inputs, scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			return err
		}

		nfa, err := pregex.Compile(pattern, cacheDir)
		if err != nil {
			return err
		}

		result, err := pregex.Batch(context.Background(), nfa, inputs)
		if err != nil {
			return err
		}

		fmt.Println(result.String())
		return nil
	},
}
