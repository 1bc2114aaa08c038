package pregex

import (
	"context"
	"math"
	"testing"
)

func almostEqual(t *testing.T, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestCompileAndMatchLikelihood(t *testing.T) {
	nfa, err := Compile("^a{5~Geo(0.5)}$", "")
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	p, _, err := MatchLikelihood(nfa, "aaaaa", false)
	if err != nil {
		t.Fatalf("MatchLikelihood: %v", err)
	}
	if p == nil {
		t.Fatal("expected a match")
	}
	almostEqual(t, *p, 0.5)
}

func TestMatchLikelihoodNoMatchReturnsNil(t *testing.T) {
	nfa, err := Compile("^abc$", "")
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	p, _, err := MatchLikelihood(nfa, "xyz", false)
	if err != nil {
		t.Fatalf("MatchLikelihood: %v", err)
	}
	if p != nil {
		t.Fatalf("expected no match, got %v", *p)
	}
}

func TestCompileRoundTripsThroughCache(t *testing.T) {
	dir := t.TempDir()

	first, err := Compile("^a{5~Geo(0.5)}$", dir)
	if err != nil {
		t.Fatalf("Compile (cold): %v", err)
	}
	second, err := Compile("^a{5~Geo(0.5)}$", dir)
	if err != nil {
		t.Fatalf("Compile (warm): %v", err)
	}

	p1, _, _ := MatchLikelihood(first, "aaaaa", false)
	p2, _, _ := MatchLikelihood(second, "aaaaa", false)
	if p1 == nil || p2 == nil {
		t.Fatal("expected both to match")
	}
	almostEqual(t, *p1, *p2)
}

func TestBatchAgreesWithMatchLikelihood(t *testing.T) {
	nfa, err := Compile("^a{5~Geo(0.5)}$", "")
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	inputs := []string{"aaaaa", "aaaa", "aaaaaa", "b"}
	batch, err := Batch(context.Background(), nfa, inputs)
	if err != nil {
		t.Fatalf("Batch: %v", err)
	}
	if len(batch.Results) != len(inputs) {
		t.Fatalf("expected %d results, got %d", len(inputs), len(batch.Results))
	}

	for i, input := range inputs {
		want, _, err := MatchLikelihood(nfa, input, false)
		if err != nil {
			t.Fatalf("MatchLikelihood(%q): %v", input, err)
		}
		got := batch.Results[i]
		if (want == nil) != !got.Matched {
			t.Fatalf("input %q: Batch matched=%v, single match=%v", input, got.Matched, want != nil)
		}
		if want != nil {
			almostEqual(t, got.Likelihood, *want)
		}
	}
}
