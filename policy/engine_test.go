package policy

import (
	"context"
	"strings"
	"testing"
)

func TestDefaultPolicyAllows(t *testing.T) {
	ctx := context.Background()
	engine, err := NewEngine(ctx, DefaultPolicy)
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}

	decision, err := engine.Evaluate(ctx, map[string]interface{}{
		"partida_id": "s1",
		"accion":     "I open the door",
	})
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if decision != DecisionAllow {
		t.Fatalf("expected allow, got %q", decision)
	}
}

func TestDefaultPolicyBlocksOversizedAction(t *testing.T) {
	ctx := context.Background()
	engine, err := NewEngine(ctx, DefaultPolicy)
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}

	decision, err := engine.Evaluate(ctx, map[string]interface{}{
		"partida_id": "s1",
		"accion":     strings.Repeat("a", 2001),
	})
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if decision != DecisionBlock {
		t.Fatalf("expected block, got %q", decision)
	}
}
