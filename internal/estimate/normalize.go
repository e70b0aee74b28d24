package estimate

import (
	"fmt"
	"math"
	"strings"
	"unicode"

	"github.com/google/uuid"

	"github.com/aviniti/estimate-engine/internal/pricing"
)

// NormalizeAnalysis converts extracted model output into the canonical
// AnalysisResult: fresh unique ids, default selection state by list, and
// cost/time coerced to non-empty display strings. No deduplication: two
// features with identical names stay distinct entities.
func NormalizeAnalysis(raw rawAnalysis) AnalysisResult {
	return AnalysisResult{
		AppOverview:         strings.TrimSpace(raw.AppOverview),
		EssentialFeatures:   normalizeFeatures(raw.EssentialFeatures, true),
		EnhancementFeatures: normalizeFeatures(raw.EnhancementFeatures, false),
	}
}

func normalizeFeatures(raw []rawFeature, essential bool) []Feature {
	out := make([]Feature, 0, len(raw))
	for _, f := range raw {
		entry, known := pricing.Lookup(f.Name)
		cost := coerceCost(f.CostEstimate)
		if cost == "" && known {
			cost = pricing.FormatCost(entry.Cost)
		}
		if cost == "" {
			cost = pricing.FormatCost(300)
		}
		duration := coerceDuration(f.TimeEstimate)
		if duration == "" && known {
			duration = pricing.FormatDays(entry.Days)
		}
		if duration == "" {
			duration = pricing.FormatDays(3)
		}
		out = append(out, Feature{
			ID:           uuid.NewString(),
			Name:         strings.TrimSpace(f.Name),
			Description:  strings.TrimSpace(f.Description),
			Purpose:      strings.TrimSpace(f.Purpose),
			CostEstimate: cost,
			TimeEstimate: duration,
			Selected:     essential,
		})
	}
	return out
}

// coerceCost turns whatever the model put in costEstimate into a
// dollar-formatted display string, or "" when nothing usable is present.
func coerceCost(v any) string {
	switch t := v.(type) {
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return ""
		}
		if strings.ContainsAny(s, "0123456789") && !strings.Contains(s, "$") {
			return pricing.FormatCost(pricing.ParseCost(s))
		}
		return s
	case float64:
		return pricing.FormatCost(int(math.Round(t)))
	case int:
		return pricing.FormatCost(t)
	default:
		return ""
	}
}

// coerceDuration turns a model-supplied time estimate into a duration string.
func coerceDuration(v any) string {
	switch t := v.(type) {
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return ""
		}
		if !containsLetter(s) && strings.ContainsAny(s, "0123456789") {
			// Bare numeric string, e.g. "7" or "2-3".
			return s + " days"
		}
		return s
	case float64:
		return pricing.FormatDays(int(math.Round(t)))
	case int:
		return pricing.FormatDays(t)
	default:
		return ""
	}
}

// containsLetter reports whether s holds any letter in any script. Arabic
// replies carry unit words like "أيام" that a plain ASCII check misses.
func containsLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

// ValidateResult enforces the creation-time invariants on a canonical
// result. The fallback generator's output is required to pass this too.
func ValidateResult(res AnalysisResult) error {
	if strings.TrimSpace(res.AppOverview) == "" {
		return fmt.Errorf("appOverview is empty")
	}
	if len(res.EssentialFeatures) == 0 {
		return fmt.Errorf("essentialFeatures is empty")
	}
	seen := map[string]bool{}
	check := func(list []Feature, wantSelected bool, label string) error {
		for _, f := range list {
			if f.ID == "" || seen[f.ID] {
				return fmt.Errorf("%s: duplicate or empty feature id %q", label, f.ID)
			}
			seen[f.ID] = true
			if strings.TrimSpace(f.CostEstimate) == "" || strings.TrimSpace(f.TimeEstimate) == "" {
				return fmt.Errorf("%s %q: empty cost or time estimate", label, f.Name)
			}
			if f.Selected != wantSelected {
				return fmt.Errorf("%s %q: selected=%v at creation", label, f.Name, f.Selected)
			}
		}
		return nil
	}
	if err := check(res.EssentialFeatures, true, "essential"); err != nil {
		return err
	}
	return check(res.EnhancementFeatures, false, "enhancement")
}
