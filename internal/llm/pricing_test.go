package llm

import (
	"math"
	"testing"
)

func TestLookupCost(t *testing.T) {
	if c := LookupCost("claude-3-haiku-20240307"); c == nil || c.InputPerMTok != 0.25 {
		t.Fatalf("unexpected cost %+v", c)
	}
	if c := LookupCost("anthropic/claude-3-haiku"); c == nil || c.OutputPerMTok != 1.25 {
		t.Fatalf("vendor-prefixed lookup failed: %+v", c)
	}
	if c := LookupCost("someone/unknown-model"); c != nil {
		t.Fatalf("expected nil for unknown model, got %+v", c)
	}
}

func TestModelCost_Cost(t *testing.T) {
	c := ModelCost{InputPerMTok: 0.25, OutputPerMTok: 1.25}
	got := c.Cost(1_000_000, 2_000_000)
	if math.Abs(got-2.75) > 1e-9 {
		t.Fatalf("Cost = %f, want 2.75", got)
	}
}
