package estimate

import (
	"strings"
	"testing"
)

func TestArabicMode(t *testing.T) {
	for _, tc := range []struct {
		name  string
		input PromptInput
		want  bool
	}{
		{"explicit arabic", PromptInput{Language: "ar", Description: "delivery app"}, true},
		{"explicit english wins over script", PromptInput{Language: "en", Description: "تطبيق توصيل"}, false},
		{"detected from script", PromptInput{Description: "تطبيق توصيل طعام للمطاعم المحلية"}, true},
		{"plain english", PromptInput{Description: "a food delivery app for local restaurants"}, false},
		{"mixed script defaults to arabic", PromptInput{Description: "app for توصيل"}, true},
	} {
		if got := ArabicMode(tc.input); got != tc.want {
			t.Fatalf("%s: ArabicMode = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestBuildAnalysisPromptEmbedsPricingAndRules(t *testing.T) {
	system, task := BuildAnalysisPrompt(PromptInput{
		Description: "A marketplace app where neighbors rent out power tools to each other.",
		Platforms:   []string{"ios", "web"},
	})
	if !strings.Contains(system, "FEATURE PRICING SCHEDULE") {
		t.Fatal("system turn missing pricing schedule")
	}
	if !strings.Contains(task, "Respond entirely in English.") {
		t.Fatal("missing language directive")
	}
	if !strings.Contains(task, "power tools") {
		t.Fatal("task turn missing the idea text")
	}
	if !strings.Contains(task, "4-6 essential features and 3-5 enhancement features") {
		t.Fatal("missing feature count rule")
	}
	if !strings.Contains(task, "Deployment (iOS), Deployment (Web)") {
		t.Fatal("missing requested platform rule")
	}
	if !strings.Contains(task, "\"UI/UX Design\" must always appear") {
		t.Fatal("missing mandatory design rule")
	}
	if !strings.Contains(task, "only valid JSON") {
		t.Fatal("missing JSON-only directive")
	}
}

func TestBuildAnalysisPromptDefaultsPlatforms(t *testing.T) {
	_, task := BuildAnalysisPrompt(PromptInput{Description: "fitness tracker"})
	if !strings.Contains(task, "Deployment (iOS), Deployment (Android)") {
		t.Fatal("expected default ios+android platforms")
	}
}

func TestBuildAnalysisPromptArabicDirective(t *testing.T) {
	_, task := BuildAnalysisPrompt(PromptInput{Description: "تطبيق توصيل طعام"})
	if !strings.Contains(task, "Respond entirely in Arabic.") {
		t.Fatal("expected Arabic directive")
	}
}
