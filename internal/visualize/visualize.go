// Package visualize renders a simulator.Trace as a per-step table of
// active states, their AST kind and current weight (visit counts are
// not shown) — with bright/dim ANSI highlighting when the caller asks
// for color, following the teacher's convention of a self-rendering String() per
// result type (see internal/result) rather than a templating library.
package visualize

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/ritamzico/pregex/internal/compiler"
	"github.com/ritamzico/pregex/internal/simulator"
)

const (
	colorBright = "\x1b[1m"
	colorDim    = "\x1b[2m"
	colorReset  = "\x1b[0m"
)

// Render formats steps (as produced by simulator.Trace) into a
// human-readable, ordered-by-state-index table, one block per token
// consumed. Color is applied only when color is true; the pregex facade
// always passes false, so `match --trace` output is uncolored.
func Render(nfa compiler.NFA, steps []simulator.StepSnapshot, color bool) string {
	var b strings.Builder
	for i, step := range steps {
		fmt.Fprintf(&b, "step %d: %s\n", i, describeToken(step.Token))

		indices := make([]int, 0, len(step.States))
		for idx := range step.States {
			indices = append(indices, idx)
		}
		sort.Ints(indices)

		for _, idx := range indices {
			weight := step.States[idx]
			kind := nfa[idx].Kind
			line := fmt.Sprintf("  [%3d] %-14s weight=%.6f", idx, kind.String(), weight)
			if color {
				line = colorize(line, weight)
			}
			fmt.Fprintln(&b, line)
		}
	}
	return b.String()
}

// UseColor reports whether the given file descriptor is a real
// terminal — bright/dim weight highlighting is only useful there.
func UseColor(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func colorize(line string, weight float64) string {
	switch {
	case weight >= 0.999:
		return colorBright + line + colorReset
	case weight <= 0.001:
		return colorDim + line + colorReset
	default:
		return line
	}
}

func describeToken(t simulator.Token) string {
	switch t.Kind {
	case simulator.TokenStart:
		return "<start>"
	case simulator.TokenTerminal:
		return "<terminal>"
	default:
		return fmt.Sprintf("%q", t.Char)
	}
}
