package estimate

import (
	"errors"
	"strings"
	"testing"
	"unicode/utf8"
)

const validAnalysisJSON = `{
	"appOverview": "A neighborhood tool-sharing marketplace.",
	"essentialFeatures": [
		{"name": "UI/UX Design", "description": "Full design", "purpose": "Design", "costEstimate": "$500", "timeEstimate": "10 days"},
		{"name": "Deployment (iOS)", "description": "App Store launch", "purpose": "Launch", "costEstimate": "$450", "timeEstimate": "14 days"}
	],
	"enhancementFeatures": [
		{"name": "Push Notifications", "description": "Alerts", "purpose": "Engagement", "costEstimate": "$550", "timeEstimate": "4 days"}
	]
}`

func TestExtractAnalysisPlainJSON(t *testing.T) {
	out, err := ExtractAnalysis(validAnalysisJSON)
	if err != nil {
		t.Fatal(err)
	}
	if out.AppOverview == "" || len(out.EssentialFeatures) != 2 || len(out.EnhancementFeatures) != 1 {
		t.Fatalf("unexpected extraction: %+v", out)
	}
}

func TestExtractAnalysisInsideProseAndFences(t *testing.T) {
	raw := "```json\n" + validAnalysisJSON + "\n```"
	if _, err := ExtractAnalysis(raw); err != nil {
		t.Fatalf("fenced: %v", err)
	}
	raw = "Here is the analysis you asked for:\n" + validAnalysisJSON
	if _, err := ExtractAnalysis(raw); err != nil {
		t.Fatalf("prose prefix: %v", err)
	}
}

func TestExtractAnalysisRepairsTrailingComma(t *testing.T) {
	broken := strings.Replace(validAnalysisJSON, `"timeEstimate": "4 days"}`, `"timeEstimate": "4 days",}`, 1)
	if _, err := ExtractAnalysis(broken); err != nil {
		t.Fatalf("expected repair pass to recover, got %v", err)
	}
}

func TestExtractAnalysisAllOrNothing(t *testing.T) {
	for _, tc := range []struct {
		name string
		raw  string
	}{
		{"no json at all", "I cannot produce an estimate for this idea."},
		{"missing appOverview", `{"essentialFeatures":[{"name":"X"}],"enhancementFeatures":[]}`},
		{"empty essentialFeatures", `{"appOverview":"ok","essentialFeatures":[],"enhancementFeatures":[]}`},
		{"missing enhancementFeatures", `{"appOverview":"ok","essentialFeatures":[{"name":"X"}]}`},
		{"feature with empty name", `{"appOverview":"ok","essentialFeatures":[{"name":""}],"enhancementFeatures":[]}`},
	} {
		out, err := ExtractAnalysis(tc.raw)
		if err == nil {
			t.Fatalf("%s: expected rejection", tc.name)
		}
		var malformed *MalformedResponseError
		if !errors.As(err, &malformed) {
			t.Fatalf("%s: expected MalformedResponseError, got %T", tc.name, err)
		}
		// Never a partial result alongside the error.
		if out.AppOverview != "" || out.EssentialFeatures != nil || out.EnhancementFeatures != nil {
			t.Fatalf("%s: partial result leaked: %+v", tc.name, out)
		}
	}
}

func TestMalformedResponseSnippetBounded(t *testing.T) {
	_, err := ExtractAnalysis(strings.Repeat("x", 2000))
	var malformed *MalformedResponseError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected MalformedResponseError, got %v", err)
	}
	if n := utf8.RuneCountInString(malformed.Raw); n > 500 {
		t.Fatalf("snippet too long: %d runes", n)
	}
}

func TestMalformedResponseSnippetValidUTF8(t *testing.T) {
	_, err := ExtractAnalysis(strings.Repeat("تطبيق ", 200))
	var malformed *MalformedResponseError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected MalformedResponseError, got %v", err)
	}
	if !utf8.ValidString(malformed.Raw) {
		t.Fatalf("snippet is not valid UTF-8: %q", malformed.Raw)
	}
	if n := utf8.RuneCountInString(malformed.Raw); n > 500 {
		t.Fatalf("snippet too long: %d runes", n)
	}
}

func TestStripCodeFences(t *testing.T) {
	in := "```json\n{\"a\":1}\n```"
	if got := stripCodeFences(in); got != "{\"a\":1}" {
		t.Fatalf("unexpected: %q", got)
	}
	if got := stripCodeFences("{\"a\":1}"); got != "{\"a\":1}" {
		t.Fatalf("unfenced input changed: %q", got)
	}
}
