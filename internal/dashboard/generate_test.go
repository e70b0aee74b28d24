package dashboard

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/aviniti/estimate-engine/internal/estimate"
)

type callerFunc func(ctx context.Context, system, task string) (string, error)

func (f callerFunc) Complete(ctx context.Context, system, task string) (string, error) {
	return f(ctx, system, task)
}

var testInput = Input{
	AppOverview:  "A tool-sharing marketplace for neighborhoods.",
	FeatureNames: []string{"UI/UX Design", "Deployment (iOS)"},
	TotalCost:    12000,
	MinTotalDays: 20,
	MaxTotalDays: 30,
	IdeaText:     "neighbors rent out power tools to each other",
}

func TestGenerateUsesModelOutput(t *testing.T) {
	reply := `{
		"successPotentialScores": {"innovation": 9, "marketViability": 6, "monetization": 5, "technicalFeasibility": 8},
		"strategicAnalysis": {"strengths": "Local network effects make each new neighborhood more valuable.", "challenges": "Trust between strangers must be earned through deposits and reviews.", "recommendedMonetization": "Transaction fee per rental"},
		"costBreakdown": {"UI/UX Design": 2400, "Core Development": 5400, "Quality Assurance": 1800, "Infrastructure & Deployment": 1200, "Project Management": 1200},
		"timelinePhases": [{"phase": "Discovery", "duration": "Weeks 1-2", "description": "Research"}],
		"marketComparison": "Comparable to existing rental marketplaces."
	}`
	gen := NewGenerator(callerFunc(func(ctx context.Context, system, task string) (string, error) {
		if !strings.Contains(task, "$12000") {
			t.Fatalf("prompt missing total cost: %s", task)
		}
		return reply, nil
	}), nil)

	d := gen.Generate(context.Background(), testInput)
	if d.SuccessPotentialScores.Innovation != 9 {
		t.Fatalf("scores = %+v", d.SuccessPotentialScores)
	}
	if d.StrategicAnalysis.RecommendedMonetization != "Transaction fee per rental" {
		t.Fatalf("analysis = %+v", d.StrategicAnalysis)
	}
	if !strings.HasPrefix(d.StrategicAnalysis.Strengths, "Local network effects") {
		t.Fatalf("strengths = %q", d.StrategicAnalysis.Strengths)
	}
	if d.CostBreakdown["Core Development"] != 5400 {
		t.Fatalf("breakdown = %+v", d.CostBreakdown)
	}
	if len(d.TimelinePhases) != 1 || d.TimelinePhases[0].Phase != "Discovery" {
		t.Fatalf("phases = %+v", d.TimelinePhases)
	}
}

func TestGenerateFallsBackOnCallFailure(t *testing.T) {
	gen := NewGenerator(callerFunc(func(ctx context.Context, system, task string) (string, error) {
		return "", fmt.Errorf("status code: 500")
	}), nil)
	d := gen.Generate(context.Background(), testInput)
	if d.SuccessPotentialScores.Innovation != 7 {
		t.Fatalf("expected fallback scores, got %+v", d.SuccessPotentialScores)
	}
	if d.CostBreakdown["Core Development"] != 5400 {
		t.Fatalf("expected fallback breakdown for $12,000, got %+v", d.CostBreakdown)
	}
}

func TestGenerateFallsBackOnGarbageReply(t *testing.T) {
	gen := NewGenerator(callerFunc(func(ctx context.Context, system, task string) (string, error) {
		return "I would rather talk about the weather.", nil
	}), nil)
	d := gen.Generate(context.Background(), testInput)
	if len(d.CostBreakdown) != 5 || len(d.TimelinePhases) != 3 {
		t.Fatalf("fallback incomplete: %+v", d)
	}
}

func TestGenerateGapFillsMissingSections(t *testing.T) {
	// Scores present but out of range; breakdown and phases absent.
	reply := `{
		"successPotentialScores": {"innovation": 11, "marketViability": 6, "monetization": 0, "technicalFeasibility": 8},
		"strategicAnalysis": {"strengths": "", "challenges": "The market is crowded and differentiation will be hard.", "recommendedMonetization": ""}
	}`
	gen := NewGenerator(callerFunc(func(ctx context.Context, system, task string) (string, error) {
		return reply, nil
	}), nil)
	d := gen.Generate(context.Background(), testInput)

	if d.SuccessPotentialScores.Innovation != 7 || d.SuccessPotentialScores.Monetization != 7 {
		t.Fatalf("out-of-range scores not replaced: %+v", d.SuccessPotentialScores)
	}
	if d.SuccessPotentialScores.MarketViability != 6 {
		t.Fatalf("valid score overwritten: %+v", d.SuccessPotentialScores)
	}
	if d.StrategicAnalysis.Strengths == "" {
		t.Fatal("empty strengths not gap-filled")
	}
	if d.StrategicAnalysis.Challenges != "The market is crowded and differentiation will be hard." {
		t.Fatalf("model challenges dropped: %+v", d.StrategicAnalysis)
	}
	if d.StrategicAnalysis.RecommendedMonetization == "" {
		t.Fatal("empty monetization not gap-filled")
	}
	if len(d.CostBreakdown) != 5 {
		t.Fatalf("missing breakdown not gap-filled: %+v", d.CostBreakdown)
	}
	if len(d.TimelinePhases) != 3 {
		t.Fatalf("missing phases not gap-filled: %+v", d.TimelinePhases)
	}
}

func TestGenerateNilCallerUsesFallback(t *testing.T) {
	var caller estimate.LLMCaller
	gen := NewGenerator(caller, nil)
	d := gen.Generate(context.Background(), testInput)
	if len(d.CostBreakdown) != 5 {
		t.Fatalf("fallback incomplete: %+v", d)
	}
}
