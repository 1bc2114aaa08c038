// Package simulator steps a weighted active-state set through a compiled
// NFA, one input token at a time, and reports the Viterbi-max likelihood
// of the full input matching the pattern.
package simulator

import (
	"github.com/rs/zerolog/log"

	"github.com/ritamzico/pregex/internal/ast"
	"github.com/ritamzico/pregex/internal/compiler"
	"github.com/ritamzico/pregex/internal/dist"
)

// transition is one (target state, weight) pair produced by evaluating
// a state against a token.
type transition struct {
	target int
	p      float64
}

// MatchLikelihood lifts input to the token stream [Start, Literal(s[0]),
// …, Literal(s[n-1]), Terminal] and steps an active state-weight set
// through nfa one token at a time. ok is false if the Terminal state
// never carries positive weight once the stream is exhausted — the
// probabilistic analogue of "no match".
func MatchLikelihood(nfa compiler.NFA, input string) (p float64, ok bool) {
	tokens := tokenize(input)
	counts := make(map[int]uint64)
	states := make(map[int]float64)

	// Initialization: a direct (non-epsilon) evaluation of index 0
	// against the synthetic Start token seeds the active set. counts
	// stays empty through this step — it only starts accumulating once
	// real stepping begins below.
	merge(states, evaluate(nfa, 0, tokens[0], 1.0, false, counts))

	// Index 0 is never the target of any other state's out-edge — it's
	// the fixed entry point — so its own self-transition (Start's
	// "otherwise" rule always re-emits itself) has no further role once
	// it has contributed its epsilon-closure to the seed above. Left in
	// place, it would re-fire its full recursive reseed on every later
	// step regardless of the token being consumed.
	delete(states, 0)

	for _, tok := range tokens[1:] {
		// Visit counts advance before this step's states are resolved:
		// a quantifier re-entered by the nth repetition's loop-back must
		// see n itself when it decides the exit weight, not n-1.
		for idx, weight := range states {
			if weight > 0 {
				counts[idx]++
			}
		}
		next := make(map[int]float64, len(states))
		for idx, weight := range states {
			merge(next, evaluate(nfa, idx, tok, weight, false, counts))
		}
		states = next
		log.Debug().Interface("token", tok).Int("active", len(states)).Msg("simulator step")
	}

	terminal := nfa.TerminalIndex()
	weight, present := states[terminal]
	if !present || weight <= 0 {
		return 0, false
	}
	return weight, true
}

// merge folds a batch of transitions into dst, keeping the maximum
// weight on any repeated target (Viterbi max-merge — weights are never
// summed).
func merge(dst map[int]float64, transitions []transition) {
	for _, t := range transitions {
		if cur, seen := dst[t.target]; !seen || t.p > cur {
			dst[t.target] = t.p
		}
	}
}

// evaluate dispatches a single state against a token, following the
// per-Kind rules below. isEpsilon distinguishes a zero-width
// (epsilon-closure) visit from a direct attempt to consume tok. No
// visited set bounds the recursion: the NFA's structure (every loop
// passes through a Quantifier state, which is a no-op on direct
// evaluation) keeps it finite.
func evaluate(nfa compiler.NFA, idx int, tok Token, p float64, isEpsilon bool, counts map[int]uint64) []transition {
	if idx == compiler.None {
		return nil
	}
	s := nfa[idx]

	switch s.Kind {
	case ast.KindTerminal:
		return []transition{{idx, p}}

	case ast.KindStart:
		if isEpsilon {
			return []transition{{idx, 1.0}}
		}
		out := []transition{{idx, 1.0}}
		out = append(out, evaluate(nfa, s.Out0, tok, 1.0, true, counts)...)
		out = append(out, evaluate(nfa, s.Out1, tok, 1.0, true, counts)...)
		return out

	case ast.KindAnchorStart:
		var out []transition
		if isEpsilon {
			out = append(out, transition{idx, p})
		}
		if tok.Kind == TokenStart {
			out = append(out, evaluate(nfa, s.Out0, tok, p, true, counts)...)
		}
		return out

	case ast.KindAnchorEnd:
		var out []transition
		if isEpsilon {
			out = append(out, transition{idx, p})
		}
		if tok.Kind == TokenTerminal && s.Out0 != compiler.None {
			out = append(out, transition{s.Out0, p})
		}
		return out

	case ast.KindSplit:
		var out []transition
		out = append(out, evaluate(nfa, s.Out0, tok, p, true, counts)...)
		out = append(out, evaluate(nfa, s.Out1, tok, p, true, counts)...)
		return out

	case ast.KindQuantifier, ast.KindExactQuantifier:
		if !isEpsilon {
			return nil
		}
		n := counts[idx]
		_, p1 := s.Dist.Dist.Evaluate(n)
		out := []transition{{idx, p}}
		out = append(out, evaluate(nfa, s.Out0, tok, p, true, counts)...)
		out = append(out, evaluate(nfa, s.Out1, tok, p*p1, true, counts)...)
		return out

	case ast.KindLiteral:
		if isEpsilon {
			return []transition{{idx, p}}
		}
		if tok.Kind == TokenLiteral && tok.Char == s.Char {
			return evaluate(nfa, s.Out0, tok, p, true, counts)
		}
		return nil

	case ast.KindDot:
		if isEpsilon {
			return []transition{{idx, p}}
		}
		if tok.Kind == TokenLiteral {
			return evaluate(nfa, s.Out0, tok, p, true, counts)
		}
		return nil

	case ast.KindClass, ast.KindClassified:
		if isEpsilon {
			return []transition{{idx, p}}
		}
		if tok.Kind != TokenLiteral {
			return nil
		}
		weight := p * classExitWeight(s, tok.Char)
		return evaluate(nfa, s.Out0, tok, weight, true, counts)

	default:
		return nil
	}
}

// classExitWeight computes the p1 mass a Class/Classified state assigns
// to character c: plain set membership (respecting negation) when no
// distribution is attached, or the attached Indexed distribution
// evaluated at the position convention its Kind calls for. A character
// absent from the class carries zero mass under Geometric/Binomial/
// Bernoulli — those PMFs have no reserved "unmatched" slot the way
// Zipf/Categorical's index-0 remainder does.
func classExitWeight(s compiler.State, c rune) float64 {
	idxInClass := s.Class.IndexOf(c)

	if s.Dist == nil {
		if s.Class.Matches(c) {
			return 1
		}
		return 0
	}

	d := s.Dist.Dist
	switch d.Kind {
	case dist.KindZipf, dist.KindCategorical:
		x := uint64(0)
		if idxInClass >= 0 {
			x = uint64(idxInClass + 1)
		}
		_, p1 := d.Evaluate(x)
		return p1

	case dist.KindConstant:
		_, p1 := d.Evaluate(0)
		return p1

	default: // Geometric, Binomial, Bernoulli
		if idxInClass < 0 {
			return 0
		}
		_, p1 := d.Evaluate(uint64(idxInClass))
		return p1
	}
}
