package visualize

import (
	"strings"
	"testing"

	"github.com/ritamzico/pregex/internal/ast"
	"github.com/ritamzico/pregex/internal/compiler"
	"github.com/ritamzico/pregex/internal/simulator"
)

func TestRenderIncludesOneBlockPerStep(t *testing.T) {
	nodes, err := ast.Build("^ab$")
	if err != nil {
		t.Fatalf("ast.Build: %v", err)
	}
	nfa, err := compiler.Compile(nodes)
	if err != nil {
		t.Fatalf("compiler.Compile: %v", err)
	}

	steps, likelihood, ok := simulator.Trace(nfa, "ab")
	if !ok || likelihood != 1.0 {
		t.Fatalf("expected a full match, got (%v, %v)", likelihood, ok)
	}

	out := Render(nfa, steps, false)
	if strings.Count(out, "step ") != len(steps) {
		t.Fatalf("expected %d step headers, got output:\n%s", len(steps), out)
	}
	if strings.Contains(out, "\x1b[") {
		t.Fatal("expected no ANSI color codes when color=false")
	}
}

func TestRenderAppliesColorWhenRequested(t *testing.T) {
	nodes, err := ast.Build("^a$")
	if err != nil {
		t.Fatalf("ast.Build: %v", err)
	}
	nfa, err := compiler.Compile(nodes)
	if err != nil {
		t.Fatalf("compiler.Compile: %v", err)
	}

	steps, _, _ := simulator.Trace(nfa, "a")
	out := Render(nfa, steps, true)
	if !strings.Contains(out, "\x1b[") {
		t.Fatal("expected ANSI color codes when color=true")
	}
}
