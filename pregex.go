// Package pregex is the public facade over the probabilistic regex
// engine: compile a pattern once, then match or batch-match it against
// inputs. It mirrors the teacher pgraph package's facade shape — type
// aliases over the internal packages plus a handful of thin wrapper
// functions — adapted from a graph-query engine to a pattern-matching
// one.
package pregex

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/ritamzico/pregex/internal/ast"
	"github.com/ritamzico/pregex/internal/compiler"
	"github.com/ritamzico/pregex/internal/matchresult"
	"github.com/ritamzico/pregex/internal/nfacache"
	"github.com/ritamzico/pregex/internal/simulator"
	"github.com/ritamzico/pregex/internal/visualize"
)

type (
	MatchResult = matchresult.MatchResult
	BatchResult = matchresult.BatchResult
)

// NFA is a compiled pattern, ready to match any number of inputs
// concurrently: it is read-only once built, so independent goroutines
// in Batch each need only their own active-state map.
type NFA struct {
	source string
	states compiler.NFA
}

// StateCount reports the number of states in the compiled NFA.
func (n *NFA) StateCount() int {
	return len(n.states)
}

// Compile parses and compiles a pattern source into an NFA. If
// cacheDir is non-empty, a previously cached compilation for the exact
// same source is reused; a cache miss or a corrupt entry falls through
// to recompiling from scratch (nfacache.CacheError is never fatal
// here).
func Compile(source string, cacheDir string) (nfa *NFA, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = compiler.InvariantError{Kind: "Panic", Message: fmt.Sprintf("%v", r)}
			nfa = nil
		}
	}()

	if cacheDir != "" {
		if states, ok, cacheErr := nfacache.Load(cacheDir, source); cacheErr == nil && ok {
			return &NFA{source: source, states: states}, nil
		}
	}

	nodes, err := ast.Build(source)
	if err != nil {
		return nil, err
	}
	states, err := compiler.Compile(nodes)
	if err != nil {
		return nil, err
	}

	if cacheDir != "" {
		_ = nfacache.Store(cacheDir, source, states)
	}

	return &NFA{source: source, states: states}, nil
}

// MatchLikelihood returns the Viterbi-max likelihood of input matching
// nfa's pattern, or nil if the pattern never reaches Terminal with
// positive weight. When trace is true, a rendered per-step table is
// returned alongside (empty otherwise).
func MatchLikelihood(nfa *NFA, input string, trace bool) (likelihood *float64, rendered string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = simulator.InvariantError{Kind: "Panic", Message: fmt.Sprintf("%v", r)}
			likelihood = nil
		}
	}()

	if trace {
		steps, p, ok := simulator.Trace(nfa.states, input)
		rendered = visualize.Render(nfa.states, steps, false)
		if !ok {
			return nil, rendered, nil
		}
		return &p, rendered, nil
	}

	p, ok := simulator.MatchLikelihood(nfa.states, input)
	if !ok {
		return nil, "", nil
	}
	return &p, "", nil
}

// Batch matches nfa against every input concurrently, one goroutine
// per input via errgroup, and returns results positional with inputs.
// Each goroutine holds its own active-state and visit-count maps —
// the compiled NFA itself is the only shared, read-only state.
func Batch(ctx context.Context, nfa *NFA, inputs []string) (BatchResult, error) {
	results := make([]MatchResult, len(inputs))

	g, _ := errgroup.WithContext(ctx)
	for i, input := range inputs {
		i, input := i, input
		g.Go(func() error {
			p, ok := simulator.MatchLikelihood(nfa.states, input)
			results[i] = MatchResult{
				Pattern:    nfa.source,
				Input:      input,
				Matched:    ok,
				Likelihood: p,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return BatchResult{}, err
	}

	return BatchResult{Results: results}, nil
}
