package estimate

import (
	"strings"
	"testing"
)

func TestGenerateMockAnalysisIsValid(t *testing.T) {
	res := GenerateMockAnalysis("A loyalty card wallet for small coffee shops with stamp tracking.", nil)
	if err := ValidateResult(res); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(res.AppOverview, MockOverviewPrefix) {
		t.Fatalf("overview not labeled as sample: %q", res.AppOverview)
	}
}

func TestGenerateMockAnalysisDefaultPlatforms(t *testing.T) {
	res := GenerateMockAnalysis("some idea", nil)
	names := featureNames(res.EssentialFeatures)
	for _, want := range []string{"Deployment (iOS)", "Deployment (Android)"} {
		if !names[want] {
			t.Fatalf("missing default platform feature %q in %v", want, res.EssentialFeatures)
		}
	}
	if names["Deployment (Web)"] {
		t.Fatal("web deployment present without being requested")
	}
}

func TestGenerateMockAnalysisRequestedPlatforms(t *testing.T) {
	res := GenerateMockAnalysis("some idea", []string{"web", "smarttv"})
	names := featureNames(res.EssentialFeatures)
	if !names["Deployment (Web)"] {
		t.Fatal("missing requested web deployment")
	}
	if !names["Deployment (smarttv)"] {
		t.Fatal("missing generic deployment for unknown platform")
	}
	if names["Deployment (iOS)"] {
		t.Fatal("default platform leaked into explicit request")
	}
	for _, f := range res.EssentialFeatures {
		if f.Name == "Deployment (smarttv)" && f.CostEstimate != "$200" {
			t.Fatalf("unknown platform cost = %q, want $200", f.CostEstimate)
		}
	}
}

func TestGenerateMockAnalysisEnhancements(t *testing.T) {
	res := GenerateMockAnalysis("idea", nil)
	want := map[string]string{
		"Push Notifications":    "$550",
		"Analytics Integration": "$800",
		"Offline Mode":          "$850",
		"In-App Purchases":      "$1,000",
	}
	if len(res.EnhancementFeatures) != len(want) {
		t.Fatalf("got %d enhancements", len(res.EnhancementFeatures))
	}
	for _, f := range res.EnhancementFeatures {
		cost, ok := want[f.Name]
		if !ok {
			t.Fatalf("unexpected enhancement %q", f.Name)
		}
		if f.CostEstimate != cost {
			t.Fatalf("%s cost = %q, want %q", f.Name, f.CostEstimate, cost)
		}
		if f.Selected {
			t.Fatalf("%s selected by default", f.Name)
		}
	}
}

func featureNames(features []Feature) map[string]bool {
	out := make(map[string]bool, len(features))
	for _, f := range features {
		out[f.Name] = true
	}
	return out
}
