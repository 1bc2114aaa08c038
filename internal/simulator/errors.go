package simulator

import "fmt"

// InvariantError reports a panic raised while simulating, as recovered
// and wrapped by the pregex facade's MatchLikelihood. This package does
// not return it itself: evaluate yields no transitions for a state kind
// it has no rule for.
type InvariantError struct {
	Kind    string
	Message string
}

func (e InvariantError) Error() string {
	return fmt.Sprintf("simulator invariant violation (%v): %v", e.Kind, e.Message)
}
