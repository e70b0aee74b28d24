package pricing

import (
	"strings"
	"testing"
)

func TestFormatCost(t *testing.T) {
	for _, tc := range []struct {
		amount int
		want   string
	}{
		{0, "$0"},
		{450, "$450"},
		{1000, "$1,000"},
		{12000, "$12,000"},
		{1234567, "$1,234,567"},
		{-350, "-$350"},
	} {
		if got := FormatCost(tc.amount); got != tc.want {
			t.Fatalf("FormatCost(%d) = %q, want %q", tc.amount, got, tc.want)
		}
	}
}

func TestFormatDays(t *testing.T) {
	if got := FormatDays(1); got != "1 day" {
		t.Fatalf("got %q", got)
	}
	if got := FormatDays(7); got != "7 days" {
		t.Fatalf("got %q", got)
	}
}

func TestParseCost(t *testing.T) {
	for _, tc := range []struct {
		display string
		want    int
	}{
		{"$450", 450},
		{"$1,000", 1000},
		{"$450-$600", 450},
		{"roughly $2,500 total", 2500},
		{"free", 0},
		{"", 0},
	} {
		if got := ParseCost(tc.display); got != tc.want {
			t.Fatalf("ParseCost(%q) = %d, want %d", tc.display, got, tc.want)
		}
	}
}

func TestParseDayRange(t *testing.T) {
	for _, tc := range []struct {
		display  string
		min, max int
	}{
		{"7 days", 7, 7},
		{"2-3 days", 2, 3},
		{"1 day", 1, 1},
		{"unknown", 1, 2},
		{"", 1, 2},
	} {
		min, max := ParseDayRange(tc.display)
		if min != tc.min || max != tc.max {
			t.Fatalf("ParseDayRange(%q) = %d,%d want %d,%d", tc.display, min, max, tc.min, tc.max)
		}
	}
}

func TestLookupCaseInsensitive(t *testing.T) {
	e, ok := Lookup("ui/ux design")
	if !ok {
		t.Fatal("expected catalog hit")
	}
	if e.Cost != 500 || e.Days != 10 {
		t.Fatalf("unexpected entry %+v", e)
	}
	if _, ok := Lookup("Quantum Teleportation"); ok {
		t.Fatal("expected miss for unknown feature")
	}
}

func TestPlatformFor(t *testing.T) {
	if p := PlatformFor("IOS"); p.FeatureName != "Deployment (iOS)" || p.Cost != 450 {
		t.Fatalf("unexpected ios platform %+v", p)
	}
	if p := PlatformFor("android"); p.Cost != 350 {
		t.Fatalf("unexpected android platform %+v", p)
	}
	p := PlatformFor("smartwatch")
	if p.FeatureName != "Deployment (smartwatch)" {
		t.Fatalf("unexpected fallback name %q", p.FeatureName)
	}
	if p.Cost != 200 {
		t.Fatalf("unknown platform cost = %d, want 200", p.Cost)
	}
}

func TestPromptBlockListsEveryEntry(t *testing.T) {
	block := PromptBlock()
	if !strings.HasPrefix(block, "FEATURE PRICING SCHEDULE") {
		t.Fatalf("missing header: %q", block[:40])
	}
	for _, e := range Catalog {
		if !strings.Contains(block, e.Name) {
			t.Fatalf("prompt block missing %q", e.Name)
		}
	}
	if !strings.Contains(block, "- In-App Purchases: $1,000, 10 days") {
		t.Fatal("expected formatted cost and duration in prompt block")
	}
}
