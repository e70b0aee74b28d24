package dashboard

import "testing"

func TestSplitCostCanonicalExample(t *testing.T) {
	got := SplitCost(12000)
	want := map[string]int{
		"UI/UX Design":                2400,
		"Core Development":            5400,
		"Quality Assurance":           1800,
		"Infrastructure & Deployment": 1200,
		"Project Management":          1200,
	}
	for category, amount := range want {
		if got[category] != amount {
			t.Fatalf("%s = %d, want %d", category, got[category], amount)
		}
	}
}

func TestSplitCostSumsWithinTolerance(t *testing.T) {
	// Per-category rounding may drift from the total by a few dollars.
	for _, total := range []int{0, 1, 999, 4550, 7777, 12000, 123456} {
		sum := 0
		for _, v := range SplitCost(total) {
			sum += v
		}
		diff := sum - total
		if diff < -5 || diff > 5 {
			t.Fatalf("total %d: breakdown sums to %d", total, sum)
		}
	}
}

func TestGenerateFallbackScores(t *testing.T) {
	d := GenerateFallback(Input{TotalCost: 5000, MinTotalDays: 20})
	want := Scores{Innovation: 7, MarketViability: 8, Monetization: 7, TechnicalFeasibility: 8}
	if d.SuccessPotentialScores != want {
		t.Fatalf("scores = %+v", d.SuccessPotentialScores)
	}
}

func TestGenerateFallbackTimeline(t *testing.T) {
	d := GenerateFallback(Input{MinTotalDays: 20})
	if len(d.TimelinePhases) != 3 {
		t.Fatalf("phases = %d", len(d.TimelinePhases))
	}
	if d.TimelinePhases[0].Duration != "Weeks 1-2" {
		t.Fatalf("discovery duration = %q", d.TimelinePhases[0].Duration)
	}
	// ceil(20/7)+2 = 5
	if d.TimelinePhases[1].Duration != "Weeks 3-5" {
		t.Fatalf("core duration = %q", d.TimelinePhases[1].Duration)
	}
	if d.TimelinePhases[2].Duration != "Final 1-2 weeks" {
		t.Fatalf("launch duration = %q", d.TimelinePhases[2].Duration)
	}
}

func TestGenerateFallbackIsComplete(t *testing.T) {
	d := GenerateFallback(Input{TotalCost: 9000, MinTotalDays: 15})
	if len(d.CostBreakdown) != 5 {
		t.Fatalf("breakdown categories = %d", len(d.CostBreakdown))
	}
	if d.StrategicAnalysis.Strengths == "" || d.StrategicAnalysis.Challenges == "" {
		t.Fatal("strategic analysis incomplete")
	}
	if d.StrategicAnalysis.RecommendedMonetization == "" {
		t.Fatal("missing monetization recommendation")
	}
	if d.MarketComparison == "" || d.ComplexityAnalysis == "" {
		t.Fatal("missing narrative sections")
	}
}
