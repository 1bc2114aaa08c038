package ast

import "fmt"

// UnknownDistributionError reports a distribution name outside the
// recognized set (Const, Geo, Bin, Ber, Zipf, Cat), or a recognized
// distribution attached somewhere its construction rules don't cover
// (e.g. Cat on a quantifier).
type UnknownDistributionError struct {
	Name string
}

func (e UnknownDistributionError) Error() string {
	return fmt.Sprintf("unknown distribution: %v", e.Name)
}

// BuildError reports a parse tree the builder cannot turn into an AST:
// an empty alternation branch or group, or a Cat clause given
// positional rather than named arguments.
type BuildError struct {
	Kind    string
	Message string
}

func (e BuildError) Error() string {
	return fmt.Sprintf("ast build error (%v): %v", e.Kind, e.Message)
}
