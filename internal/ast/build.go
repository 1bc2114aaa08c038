package ast

import (
	"strings"

	"github.com/ritamzico/pregex/internal/dist"
	"github.com/ritamzico/pregex/internal/grammar"
)

// unboundedCount stands in for the "no upper bound" n_max of a `*`/`+`
// quantifier's implicit Constant range, and for Geometric's unused
// n_max. Geometric's Evaluate never reads NMax, so the sentinel only
// matters for the Constant-range check on `*`/`+` without a clause.
const unboundedCount = ^uint64(0)

// Build parses source and folds the result into a top-level AST node
// list: an optional AnchorStart, the body, an optional AnchorEnd, and
// a trailing Terminal node. This list is exactly what the compiler's
// fragment algebra walks (see internal/compiler).
func Build(source string) ([]*Node, error) {
	p, err := grammar.Parse(source)
	if err != nil {
		return nil, err
	}

	var nodes []*Node
	if p.AnchorStart {
		nodes = append(nodes, &Node{Kind: KindAnchorStart, Length: 0})
	}

	body, err := buildAlternation(p.Body)
	if err != nil {
		return nil, err
	}
	nodes = append(nodes, body)

	if p.AnchorEnd {
		nodes = append(nodes, &Node{Kind: KindAnchorEnd, Length: 1})
	}
	nodes = append(nodes, &Node{Kind: KindTerminal, Length: 0})

	return nodes, nil
}

func buildAlternation(a *grammar.Alternation) (*Node, error) {
	if len(a.Concats) == 0 {
		return nil, BuildError{Kind: "EmptyAlternation", Message: "alternation has no branches"}
	}

	result, err := buildConcatenation(a.Concats[0])
	if err != nil {
		return nil, err
	}

	for _, c := range a.Concats[1:] {
		next, err := buildConcatenation(c)
		if err != nil {
			return nil, err
		}
		result = &Node{
			Kind:   KindAlternation,
			Left:   result,
			Right:  next,
			Length: result.Length + next.Length + 1, // +1 for the compiled Split state
		}
	}
	return result, nil
}

func buildConcatenation(c *grammar.Concatenation) (*Node, error) {
	if len(c.Terms) == 0 {
		return nil, BuildError{Kind: "EmptyConcatenation", Message: "empty group or pattern body"}
	}

	nodes := make([]*Node, 0, len(c.Terms))
	for _, t := range c.Terms {
		n, err := buildTerm(t)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	return concatNodes(nodes), nil
}

func concatNodes(nodes []*Node) *Node {
	result := nodes[0]
	for _, n := range nodes[1:] {
		result = &Node{
			Kind:   KindConcatenation,
			Left:   result,
			Right:  n,
			Length: result.Length + n.Length,
		}
	}
	return result
}

// buildTerm expands the term's atom into one or more Literal nodes
// (a Text/Ident atom lexes a whole contiguous run of ordinary
// characters as one token, but each character is independently
// quantifiable), then applies the term's quantifier, if any, to only
// the last of those nodes — matching classical regex precedence
// ("abc*" quantifies just "c").
func buildTerm(t *grammar.Term) (*Node, error) {
	atoms, err := buildAtomRun(t.Atom)
	if err != nil {
		return nil, err
	}
	if t.Quant != nil {
		last := atoms[len(atoms)-1]
		quantified, err := buildQuantified(t.Quant, last)
		if err != nil {
			return nil, err
		}
		atoms[len(atoms)-1] = quantified
	}
	return concatNodes(atoms), nil
}

func buildAtomRun(a *grammar.Atom) ([]*Node, error) {
	switch {
	case a.Group != nil:
		n, err := buildAlternation(a.Group.Alt)
		if err != nil {
			return nil, err
		}
		return []*Node{n}, nil

	case a.Class != nil:
		n, err := buildClassAtom(a.Class)
		if err != nil {
			return nil, err
		}
		return []*Node{n}, nil

	case a.Esc != "":
		return []*Node{buildEscapeAtom(a.Esc)}, nil

	case a.Dot:
		return []*Node{{Kind: KindDot, Length: 1}}, nil

	default:
		return literalRun(a.Text), nil
	}
}

func literalRun(text string) []*Node {
	runes := []rune(text)
	nodes := make([]*Node, len(runes))
	for i, r := range runes {
		nodes[i] = &Node{Kind: KindLiteral, Char: r, Length: 1}
	}
	return nodes
}

func buildEscapeAtom(esc string) *Node {
	if isShortClassEscape(esc) {
		return &Node{Kind: KindClass, Class: &ClassSpec{Chars: expandEscape(esc)}, Length: 1}
	}
	runes := []rune(esc)
	return &Node{Kind: KindLiteral, Char: runes[len(runes)-1], Length: 1}
}

func buildClassAtom(c *grammar.ClassAtom) (*Node, error) {
	spec := &ClassSpec{Negated: c.Negated, Chars: buildClassChars(c.Items)}

	if c.Dist == nil {
		return &Node{Kind: KindClass, Class: spec, Length: 1}, nil
	}

	link, err := buildClassDistLink(c.Dist, spec)
	if err != nil {
		return nil, err
	}
	return &Node{Kind: KindClassified, Class: spec, Dist: link, Length: 1}, nil
}

func buildClassChars(items []*grammar.ClassItem) []rune {
	var chars []rune
	for _, it := range items {
		switch {
		case it.Posix != "":
			chars = append(chars, expandPosix(it.Posix)...)
		case it.Esc != "":
			chars = append(chars, expandEscape(it.Esc)...)
		default:
			chars = append(chars, []rune(it.Chars)...)
		}
	}
	return chars
}

// quantifierParams derives (n_min, n_max, bin_support, is_exact,
// literal_n) for a quantifier. Brace quantifiers carry an explicit
// literal count, which is also the Binomial/Zipf "support" per the
// construction rules in §4.2/§4.3 of the engine's design. Symbol
// quantifiers have no literal count; their Binomial/Zipf support is a
// fixed small count instead: 1 for `?` (its n_max), and the n_min of
// `*` (0) and `+` (1), since there is no finite bound to draw on for
// `*`/`+` and no scenario in the engine's test corpus exercises that
// combination.
func quantifierParams(q *grammar.Quantifier) (nMin, nMax, binSupport uint64, isExact bool, literalN uint64, clause *grammar.DistClause) {
	if q.Brace != nil {
		n := q.Brace.N
		return n, n, n, true, n, q.Brace.Dist
	}
	switch q.Symbol.Op {
	case "?":
		return 0, 1, 1, false, 0, q.Symbol.Dist
	case "*":
		return 0, unboundedCount, 0, false, 0, q.Symbol.Dist
	case "+":
		return 1, unboundedCount, 1, false, 0, q.Symbol.Dist
	default:
		return 0, 0, 0, false, 0, q.Symbol.Dist
	}
}

func buildQuantified(q *grammar.Quantifier, operand *Node) (*Node, error) {
	nMin, nMax, binSupport, isExact, literalN, clause := quantifierParams(q)

	var quantNode *Node
	if isExact {
		quantNode = &Node{Kind: KindExactQuantifier, N: literalN, Length: 1}
	} else {
		quantNode = &Node{Kind: KindQuantifier, Op: q.Symbol.Op, Length: 1}
	}

	link, err := buildQuantifierDistLink(clause, isExact, literalN, nMin, nMax, binSupport)
	if err != nil {
		return nil, err
	}

	return &Node{
		Kind:       KindQuantified,
		Quantifier: quantNode,
		Operand:    operand,
		Dist:       link,
		Length:     quantNode.Length + operand.Length,
	}, nil
}

// splitArgs partitions a distribution's argument list into positional
// values (in left-to-right order) and named values keyed by a
// one-character string, using "." for the remainder key.
func splitArgs(args []*grammar.DistArg) (positional []float64, named map[string]float64) {
	named = make(map[string]float64)
	for _, a := range args {
		if a.Key == nil {
			positional = append(positional, float64(a.Value))
			continue
		}
		key := "."
		if !a.Key.Remainder {
			key = a.Key.Char
		}
		named[key] = float64(a.Value)
	}
	return positional, named
}

func positionalOrDefault(positional []float64, idx int, def float64) float64 {
	if idx < len(positional) {
		return positional[idx]
	}
	return def
}

// buildQuantifierDistLink constructs the Counted distribution attached
// to a Quantified node, per the kind-aware default table: an absent
// clause yields ExactlyTimes for `{n}` or a classical always-match
// Constant(n_min, n_max, 1.0) for `?`/`*`/`+`.
func buildQuantifierDistLink(clause *grammar.DistClause, isExact bool, literalN, nMin, nMax, binSupport uint64) (*dist.DistLink, error) {
	if clause == nil {
		var d dist.Distribution
		var err error
		if isExact {
			d = dist.NewExactlyTimes(literalN)
		} else {
			d, err = dist.NewConstant(nMin, nMax, 1.0)
		}
		if err != nil {
			return nil, err
		}
		return &dist.DistLink{Kind: dist.LinkCounted, Dist: d}, nil
	}

	name := strings.ToLower(clause.Name)
	positional, _ := splitArgs(clause.Args)

	var d dist.Distribution
	var err error
	switch name {
	case "geo":
		p := positionalOrDefault(positional, 0, 0.5)
		d, err = dist.NewGeometric(nMin, unboundedCount, p)
	case "const":
		p := positionalOrDefault(positional, 0, 1.0)
		d, err = dist.NewConstant(nMin, nMax, p)
	case "bin":
		p := positionalOrDefault(positional, 0, 1.0)
		d, err = dist.NewBinomial(0, binSupport, p)
	case "ber":
		p := positionalOrDefault(positional, 0, 1.0)
		d, err = dist.NewBernoulli(0, 2, p)
	case "zipf":
		s := positionalOrDefault(positional, 0, 1.0)
		d, err = dist.NewZipf(0, binSupport, s)
	case "cat":
		return nil, UnknownDistributionError{Name: "Cat is only valid on character classes"}
	default:
		return nil, UnknownDistributionError{Name: clause.Name}
	}
	if err != nil {
		return nil, err
	}
	return &dist.DistLink{Kind: dist.LinkCounted, Dist: d}, nil
}

// buildClassDistLink constructs the Indexed distribution attached to a
// Classified node's class spec.
func buildClassDistLink(clause *grammar.DistClause, spec *ClassSpec) (*dist.DistLink, error) {
	name := strings.ToLower(clause.Name)

	if name == "cat" {
		d, err := buildCategorical(spec, clause)
		if err != nil {
			return nil, err
		}
		return &dist.DistLink{Kind: dist.LinkIndexed, Dist: d}, nil
	}

	positional, _ := splitArgs(clause.Args)

	var d dist.Distribution
	var err error
	switch name {
	case "zipf":
		s := positionalOrDefault(positional, 0, 1.0)
		d, err = dist.NewZipf(0, uint64(len(spec.Chars)), s)
	case "geo":
		p := positionalOrDefault(positional, 0, 0.5)
		d, err = dist.NewGeometric(0, uint64(len(spec.Chars)), p)
	case "bin":
		p := positionalOrDefault(positional, 0, 1.0)
		support := uint64(0)
		if len(spec.Chars) > 0 {
			support = uint64(len(spec.Chars) - 1)
		}
		d, err = dist.NewBinomial(0, support, p)
	case "ber":
		p := positionalOrDefault(positional, 0, 1.0)
		d, err = dist.NewBernoulli(0, 2, p)
	case "const":
		p := positionalOrDefault(positional, 0, 1.0)
		d, err = dist.NewConstant(0, 0, p)
	default:
		return nil, UnknownDistributionError{Name: clause.Name}
	}
	if err != nil {
		return nil, err
	}
	return &dist.DistLink{Kind: dist.LinkIndexed, Dist: d}, nil
}

// buildCategorical implements the weight-vector construction of §4.3:
// partition named args into per-character weights and a remainder
// weight, spread the rest evenly over unweighted members, and lay out
// index 0 as the remainder slot followed by per-character masses in
// class order. The result is never renormalized.
func buildCategorical(spec *ClassSpec, clause *grammar.DistClause) (dist.Distribution, error) {
	positional, named := splitArgs(clause.Args)
	if len(positional) > 0 {
		return dist.Distribution{}, BuildError{
			Kind:    "InvalidCategoricalArgs",
			Message: "Cat requires named arguments (c=w or .=w)",
		}
	}

	explicit := make(map[rune]float64, len(named))
	for k, w := range named {
		if k == "." {
			continue
		}
		explicit[[]rune(k)[0]] = w
	}

	explicitSum := 0.0
	for _, w := range explicit {
		explicitSum += w
	}

	wRest, hasRest := named["."]
	if !hasRest {
		wRest = maxFloat(0, 1-explicitSum)
	}

	var implicitChars []rune
	for _, c := range spec.Chars {
		if _, ok := explicit[c]; !ok {
			implicitChars = append(implicitChars, c)
		}
	}
	implicitWeight := 0.0
	if len(implicitChars) > 0 {
		implicitWeight = maxFloat(0, 1-explicitSum-wRest) / float64(len(implicitChars))
	}

	probs := make([]float64, len(spec.Chars)+1)
	probs[0] = wRest
	for i, c := range spec.Chars {
		if w, ok := explicit[c]; ok {
			probs[i+1] = w
		} else {
			probs[i+1] = implicitWeight
		}
	}

	return dist.NewCategorical(probs), nil
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
