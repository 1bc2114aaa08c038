package compiler

import "fmt"

// InvariantError reports an AST shape the compiler has no fragment
// rule for. A well-formed AST — anything internal/ast.Build produces —
// must never trigger this; it exists to fail loudly rather than emit a
// silently-broken NFA.
type InvariantError struct {
	Kind    string
	Message string
}

func (e InvariantError) Error() string {
	return fmt.Sprintf("compiler invariant violation (%v): %v", e.Kind, e.Message)
}
