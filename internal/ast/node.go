// Package ast folds a parsed grammar.Pattern into the typed AST the
// compiler consumes: a closed set of node kinds, each carrying the
// "length" (slot count) it contributes to the compiled NFA, and the
// distribution links attached to quantifiers and classes. The compiler
// appends states as it walks the tree and does not read Length.
package ast

import "github.com/ritamzico/pregex/internal/dist"

type Kind int

const (
	KindLiteral Kind = iota
	KindDot
	KindClass
	KindClassified
	KindConcatenation
	KindAlternation
	KindQuantified
	KindQuantifier
	KindExactQuantifier
	KindAnchorStart
	KindAnchorEnd
	KindTerminal
	KindStart
	KindSplit
)

func (k Kind) String() string {
	switch k {
	case KindLiteral:
		return "Literal"
	case KindDot:
		return "Dot"
	case KindClass:
		return "Class"
	case KindClassified:
		return "Classified"
	case KindConcatenation:
		return "Concatenation"
	case KindAlternation:
		return "Alternation"
	case KindQuantified:
		return "Quantified"
	case KindQuantifier:
		return "Quantifier"
	case KindExactQuantifier:
		return "ExactQuantifier"
	case KindAnchorStart:
		return "AnchorStart"
	case KindAnchorEnd:
		return "AnchorEnd"
	case KindTerminal:
		return "Terminal"
	case KindStart:
		return "Start"
	case KindSplit:
		return "Split"
	default:
		return "Unknown"
	}
}

// ClassSpec is the character set behind a Class or Classified node:
// an ordered, possibly-duplicated sequence of member characters and
// whether membership is negated.
type ClassSpec struct {
	Negated bool
	Chars   []rune
}

// IndexOf returns the zero-based position of c within the class's
// character list, or -1 if c is not a member.
func (c ClassSpec) IndexOf(r rune) int {
	for i, m := range c.Chars {
		if m == r {
			return i
		}
	}
	return -1
}

// Matches reports whether r satisfies this class under its negation
// sense: membership for a normal class, non-membership for a negated
// one.
func (c ClassSpec) Matches(r rune) bool {
	in := c.IndexOf(r) >= 0
	if c.Negated {
		return !in
	}
	return in
}

// Node is a single AST node. Only the fields relevant to Kind are
// populated; this mirrors the flat tagged-union shape used throughout
// the engine (see dist.Distribution) rather than a Go interface
// hierarchy — the node kinds are a closed set and never need open
// polymorphism.
type Node struct {
	Kind   Kind
	Length uint64

	// KindLiteral
	Char rune

	// KindClass / KindClassified
	Class *ClassSpec

	// KindClassified / KindQuantified: the attached distribution, if any.
	Dist *dist.DistLink

	// KindConcatenation / KindAlternation
	Left  *Node
	Right *Node

	// KindQuantified
	Quantifier *Node // Kind == KindQuantifier or KindExactQuantifier
	Operand    *Node

	// KindQuantifier
	Op string // "?", "*", or "+"

	// KindExactQuantifier
	N uint64
}
