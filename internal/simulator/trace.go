package simulator

import "github.com/ritamzico/pregex/internal/compiler"

// StepSnapshot records one token of the simulation: the token consumed
// and the resulting active state-weight set, copied so later mutation
// of the live map can't alias into the trace.
type StepSnapshot struct {
	Token  Token
	States map[int]float64
}

// Trace runs the same stepping algorithm as MatchLikelihood but records
// a StepSnapshot after every token, for internal/visualize's per-step
// rendering. likelihood/ok mirror MatchLikelihood's return values.
func Trace(nfa compiler.NFA, input string) (steps []StepSnapshot, likelihood float64, ok bool) {
	tokens := tokenize(input)
	counts := make(map[int]uint64)
	states := make(map[int]float64)

	merge(states, evaluate(nfa, 0, tokens[0], 1.0, false, counts))
	delete(states, 0)
	steps = append(steps, StepSnapshot{Token: tokens[0], States: cloneWeights(states)})

	for _, tok := range tokens[1:] {
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
		steps = append(steps, StepSnapshot{Token: tok, States: cloneWeights(states)})
	}

	terminal := nfa.TerminalIndex()
	weight, present := states[terminal]
	if !present || weight <= 0 {
		return steps, 0, false
	}
	return steps, weight, true
}

func cloneWeights(m map[int]float64) map[int]float64 {
	cp := make(map[int]float64, len(m))
	for k, v := range m {
		cp[k] = v
	}
	return cp
}
