package compiler

import (
	"github.com/rs/zerolog/log"

	"github.com/ritamzico/pregex/internal/ast"
)

// dangling marks an out-edge slot (0 or 1) on a pushed state that has
// not yet been wired to its destination.
type dangling struct {
	idx  int
	slot int
}

// frag is a Thompson fragment under construction: its entry state index
// and the dangling exits still needing a patch target.
type frag struct {
	entry int
	exits []dangling
}

type builder struct {
	states []State
}

func (b *builder) push(s State) int {
	b.states = append(b.states, s)
	return len(b.states) - 1
}

func (b *builder) patch(exits []dangling, target int) {
	for _, d := range exits {
		if d.slot == 0 {
			b.states[d.idx].Out0 = target
		} else {
			b.states[d.idx].Out1 = target
		}
	}
}

// Compile walks a top-level AST node list — as produced by
// internal/ast.Build: an optional AnchorStart, the body, an optional
// AnchorEnd, and a trailing Terminal — and produces a flat NFA.
func Compile(nodes []*ast.Node) (NFA, error) {
	if len(nodes) == 0 {
		return nil, InvariantError{Kind: "EmptyProgram", Message: "no top-level AST nodes"}
	}

	b := &builder{}

	first := 0
	var pending []dangling

	if nodes[0].Kind == ast.KindAnchorStart {
		f, err := b.compileNode(nodes[0])
		if err != nil {
			return nil, err
		}
		pending = f.exits
		first = 1
	} else {
		startIdx := b.push(State{Kind: ast.KindStart, Out0: None, Out1: None})
		pending = []dangling{{startIdx, 0}}
	}

	for _, n := range nodes[first:] {
		f, err := b.compileNode(n)
		if err != nil {
			return nil, err
		}
		b.patch(pending, f.entry)
		pending = f.exits
	}

	if len(pending) != 0 {
		return nil, InvariantError{Kind: "DanglingExit", Message: "program did not end in a Terminal node"}
	}

	log.Debug().Int("states", len(b.states)).Msg("compiled nfa")
	return NFA(b.states), nil
}

func (b *builder) compileNode(n *ast.Node) (frag, error) {
	switch n.Kind {
	case ast.KindLiteral:
		idx := b.push(State{Kind: ast.KindLiteral, Out0: None, Out1: None, Char: n.Char})
		return frag{idx, []dangling{{idx, 0}}}, nil

	case ast.KindDot:
		idx := b.push(State{Kind: ast.KindDot, Out0: None, Out1: None})
		return frag{idx, []dangling{{idx, 0}}}, nil

	case ast.KindClass, ast.KindClassified:
		idx := b.push(State{Kind: n.Kind, Out0: None, Out1: None, Class: n.Class, Dist: n.Dist})
		return frag{idx, []dangling{{idx, 0}}}, nil

	case ast.KindConcatenation:
		return b.compileConcatenation(n)

	case ast.KindAlternation:
		return b.compileAlternation(n)

	case ast.KindQuantified:
		return b.compileQuantified(n)

	case ast.KindAnchorStart:
		idx := b.push(State{Kind: ast.KindAnchorStart, Out0: None, Out1: None})
		return frag{idx, []dangling{{idx, 0}}}, nil

	case ast.KindAnchorEnd:
		idx := b.push(State{Kind: ast.KindAnchorEnd, Out0: None, Out1: None})
		return frag{idx, []dangling{{idx, 0}}}, nil

	case ast.KindTerminal:
		idx := b.push(State{Kind: ast.KindTerminal, Out0: None, Out1: None})
		return frag{idx, nil}, nil

	default:
		return frag{}, InvariantError{
			Kind:    "UnhandledKind",
			Message: "cannot compile AST kind " + n.Kind.String(),
		}
	}
}

func (b *builder) compileConcatenation(n *ast.Node) (frag, error) {
	left, err := b.compileNode(n.Left)
	if err != nil {
		return frag{}, err
	}
	right, err := b.compileNode(n.Right)
	if err != nil {
		return frag{}, err
	}
	b.patch(left.exits, right.entry)
	return frag{left.entry, right.exits}, nil
}

func (b *builder) compileAlternation(n *ast.Node) (frag, error) {
	left, err := b.compileNode(n.Left)
	if err != nil {
		return frag{}, err
	}
	right, err := b.compileNode(n.Right)
	if err != nil {
		return frag{}, err
	}
	splitIdx := b.push(State{Kind: ast.KindSplit, Out0: left.entry, Out1: right.entry})
	exits := make([]dangling, 0, len(left.exits)+len(right.exits))
	exits = append(exits, left.exits...)
	exits = append(exits, right.exits...)
	return frag{splitIdx, exits}, nil
}

// compileQuantified wires the quantifier state as the fragment's entry
// point so its distribution is consulted on every traversal. A `?`
// leaves the operand's exits dangling alongside the quantifier's own
// skip edge; `*`/`+`/`{n}` loop the operand's exits back to the
// quantifier state instead.
func (b *builder) compileQuantified(n *ast.Node) (frag, error) {
	operand, err := b.compileNode(n.Operand)
	if err != nil {
		return frag{}, err
	}

	qIdx := b.push(State{
		Kind: n.Quantifier.Kind,
		Out0: operand.entry,
		Out1: None,
		Dist: n.Dist,
	})

	if n.Quantifier.Kind == ast.KindQuantifier && n.Quantifier.Op == "?" {
		exits := make([]dangling, 0, len(operand.exits)+1)
		exits = append(exits, operand.exits...)
		exits = append(exits, dangling{qIdx, 1})
		return frag{qIdx, exits}, nil
	}

	b.patch(operand.exits, qIdx)
	return frag{qIdx, []dangling{{qIdx, 1}}}, nil
}
