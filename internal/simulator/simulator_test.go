package simulator

import (
	"math"
	"testing"

	"github.com/ritamzico/pregex/internal/ast"
	"github.com/ritamzico/pregex/internal/compiler"
)

func compile(t *testing.T, pattern string) compiler.NFA {
	t.Helper()
	nodes, err := ast.Build(pattern)
	if err != nil {
		t.Fatalf("ast.Build(%q): %v", pattern, err)
	}
	nfa, err := compiler.Compile(nodes)
	if err != nil {
		t.Fatalf("compiler.Compile(%q): %v", pattern, err)
	}
	return nfa
}

func almostEqual(t *testing.T, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestMatchLikelihoodPlainLiteralsMatchFully(t *testing.T) {
	nfa := compile(t, "abc")
	p, ok := MatchLikelihood(nfa, "abc")
	if !ok {
		t.Fatal("expected a match")
	}
	almostEqual(t, p, 1.0)
}

func TestMatchLikelihoodPlainLiteralsRejectMismatch(t *testing.T) {
	nfa := compile(t, "abc")
	if _, ok := MatchLikelihood(nfa, "abd"); ok {
		t.Fatal("expected no match")
	}
}

func TestMatchLikelihoodRejectsWrongLength(t *testing.T) {
	nfa := compile(t, "^abc$")
	if _, ok := MatchLikelihood(nfa, "ab"); ok {
		t.Fatal("expected no match for a short input under anchors")
	}
	if _, ok := MatchLikelihood(nfa, "abcd"); ok {
		t.Fatal("expected no match for a long input under anchors")
	}
}

func TestMatchLikelihoodAlternation(t *testing.T) {
	nfa := compile(t, "^a|b$")
	p, ok := MatchLikelihood(nfa, "a")
	if !ok {
		t.Fatal("expected 'a' to match a|b")
	}
	almostEqual(t, p, 1.0)
}

func TestMatchLikelihoodStarWithoutDistributionIsClassical(t *testing.T) {
	// Property: an undecorated quantifier reduces to classical Some(1.0)/None.
	nfa := compile(t, "^a*$")
	p, ok := MatchLikelihood(nfa, "aaa")
	if !ok {
		t.Fatal("expected 'aaa' to match a*")
	}
	almostEqual(t, p, 1.0)

	p, ok = MatchLikelihood(nfa, "")
	if !ok {
		t.Fatal("expected empty input to match a* (zero repetitions)")
	}
	almostEqual(t, p, 1.0)

	if _, ok := MatchLikelihood(nfa, "aab"); ok {
		t.Fatal("expected no match when a non-'a' character appears")
	}
}

func TestMatchLikelihoodExactGeometricQuantifier(t *testing.T) {
	// ^a{5~Geo(0.5)}$ against "aaaaa": Geo(0.5) evaluated at n=5 with
	// n_min=5 gives pmf(k=1)=0.5.
	nfa := compile(t, "^a{5~Geo(0.5)}$")
	p, ok := MatchLikelihood(nfa, "aaaaa")
	if !ok {
		t.Fatal("expected a match")
	}
	almostEqual(t, p, 0.5)
}

func TestMatchLikelihoodGeometricQuantifierBelowFloorNeverExits(t *testing.T) {
	// Geo attaches n_min=5 as a hard floor (Evaluate returns p1=0 below
	// it), so fewer than 5 repetitions can never reach the exit branch.
	nfa := compile(t, "^a{5~Geo(0.5)}$")
	if _, ok := MatchLikelihood(nfa, "aaaa"); ok {
		t.Fatal("expected no match for only 4 repetitions, below Geo's n_min floor")
	}
}

func TestMatchLikelihoodGeometricQuantifierDecaysPastFloor(t *testing.T) {
	// Geo has no upper bound: a 6th repetition still exits, just with
	// the next step of geometric decay (pmf(k=2)=0.25).
	nfa := compile(t, "^a{5~Geo(0.5)}$")
	p, ok := MatchLikelihood(nfa, "aaaaaa")
	if !ok {
		t.Fatal("expected a match for 6 repetitions past Geo's floor")
	}
	almostEqual(t, p, 0.25)
}

func TestMatchLikelihoodClassifiedGeometric(t *testing.T) {
	// ^[abc~Geo(0.5)]$ matching "b": position x=1, n_min=0 -> pmf(k=2)=0.25.
	nfa := compile(t, "^[abc~Geo(0.5)]$")
	p, ok := MatchLikelihood(nfa, "b")
	if !ok {
		t.Fatal("expected a match")
	}
	almostEqual(t, p, 0.25)
}

func TestMatchLikelihoodClassifiedRejectsNonMember(t *testing.T) {
	nfa := compile(t, "^[abc~Geo(0.5)]$")
	if _, ok := MatchLikelihood(nfa, "z"); ok {
		t.Fatal("expected no match for a character outside the class")
	}
}

func TestMatchLikelihoodCategoricalClass(t *testing.T) {
	// ^[a~Cat(a=0.7,.=0.1)]$ matching "a": explicit weight 0.7.
	nfa := compile(t, "^[a~Cat(a=0.7,.=0.1)]$")
	p, ok := MatchLikelihood(nfa, "a")
	if !ok {
		t.Fatal("expected a match")
	}
	almostEqual(t, p, 0.7)
}

func TestTraceAgreesWithMatchLikelihood(t *testing.T) {
	nfa := compile(t, "^a{5~Geo(0.5)}$")
	steps, likelihood, ok := Trace(nfa, "aaaaa")
	if !ok {
		t.Fatal("expected a match")
	}
	almostEqual(t, likelihood, 0.5)
	if len(steps) != 7 { // Start + 5 literals + Terminal
		t.Fatalf("expected 7 step snapshots, got %d", len(steps))
	}
	wantLikelihood, wantOK := MatchLikelihood(nfa, "aaaaa")
	if wantOK != ok || wantLikelihood != likelihood {
		t.Fatalf("Trace (%v,%v) disagrees with MatchLikelihood (%v,%v)", likelihood, ok, wantLikelihood, wantOK)
	}
}

func TestMatchLikelihoodDotMatchesAnyCharacter(t *testing.T) {
	nfa := compile(t, "^a.c$")
	p, ok := MatchLikelihood(nfa, "abc")
	if !ok {
		t.Fatal("expected a match")
	}
	almostEqual(t, p, 1.0)

	if _, ok := MatchLikelihood(nfa, "ac"); ok {
		t.Fatal("expected no match when the dot position is skipped entirely")
	}
}
