// Package compiler performs Thompson-style construction of a parsed
// AST into a flat, indexed NFA: an arena of states linked by integer
// out-edges rather than owning pointers, so the result is cheap to
// clone and safe to share across concurrent matches.
package compiler

import (
	"github.com/ritamzico/pregex/internal/ast"
	"github.com/ritamzico/pregex/internal/dist"
)

// None is the sentinel for an absent out-edge — Go's idiomatic stand-in
// for the design's Option<usize>.
const None = -1

// State is one node of the compiled NFA. Only the fields relevant to
// Kind are populated.
type State struct {
	Kind ast.Kind
	Out0 int
	Out1 int

	Dist *dist.DistLink // Quantifier / ExactQuantifier / Classified

	Char  rune           // Literal
	Class *ast.ClassSpec // Class / Classified
}

// NFA is the compiled, ordered state list. Index 0 is always a Start
// or AnchorStart; the last index is always a Terminal. Edges are
// indices into this same slice.
type NFA []State

// TerminalIndex returns the index of the trailing Terminal state.
func (n NFA) TerminalIndex() int {
	return len(n) - 1
}
