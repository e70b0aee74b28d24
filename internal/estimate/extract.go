package estimate

import (
	"encoding/json"
	"strings"
	"unicode/utf8"

	"github.com/kaptinlin/jsonrepair"
)

// ExtractJSON locates a JSON object inside free-form model text and decodes
// it into out. The model is not guaranteed to return only JSON, so this
// strips code fences, then takes the greedy span from the first '{' to the
// last '}'. That is a heuristic, not a parser: text whose prose contains a
// stray closing brace after the object will fail. On a parse failure one
// repair pass is attempted before giving up.
func ExtractJSON(raw string, out any) error {
	trimmed := stripCodeFences(raw)
	start := strings.IndexByte(trimmed, '{')
	end := strings.LastIndexByte(trimmed, '}')
	if start == -1 || end <= start {
		return &MalformedResponseError{Reason: "no JSON object found", Raw: snippet(raw)}
	}
	span := trimmed[start : end+1]

	if err := json.Unmarshal([]byte(span), out); err == nil {
		return nil
	}
	repaired, err := jsonrepair.JSONRepair(span)
	if err != nil {
		return &MalformedResponseError{Reason: "JSON parse failed and repair failed: " + err.Error(), Raw: snippet(raw)}
	}
	if err := json.Unmarshal([]byte(repaired), out); err != nil {
		return &MalformedResponseError{Reason: "JSON parse failed after repair: " + err.Error(), Raw: snippet(raw)}
	}
	return nil
}

// ExtractAnalysis parses and validates a model reply for the feature
// analysis. Validation is all-or-nothing: either every required top-level
// key is present and well-formed, or the whole response is rejected with a
// *MalformedResponseError. A partially-populated result is never returned.
func ExtractAnalysis(raw string) (rawAnalysis, error) {
	var out rawAnalysis
	if err := ExtractJSON(raw, &out); err != nil {
		return rawAnalysis{}, err
	}
	if strings.TrimSpace(out.AppOverview) == "" {
		return rawAnalysis{}, &MalformedResponseError{Reason: "missing required key appOverview", Raw: snippet(raw)}
	}
	if len(out.EssentialFeatures) == 0 {
		return rawAnalysis{}, &MalformedResponseError{Reason: "missing required key essentialFeatures", Raw: snippet(raw)}
	}
	if out.EnhancementFeatures == nil {
		return rawAnalysis{}, &MalformedResponseError{Reason: "missing required key enhancementFeatures", Raw: snippet(raw)}
	}
	for _, f := range append(append([]rawFeature{}, out.EssentialFeatures...), out.EnhancementFeatures...) {
		if strings.TrimSpace(f.Name) == "" {
			return rawAnalysis{}, &MalformedResponseError{Reason: "feature with empty name", Raw: snippet(raw)}
		}
	}
	return out, nil
}

func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		parts := strings.SplitN(s, "\n", 2)
		if len(parts) == 2 {
			s = parts[1]
		}
		s = strings.TrimPrefix(s, "json")
		s = strings.TrimSpace(strings.TrimSuffix(s, "```"))
	}
	return s
}

// snippet bounds the raw text carried in error messages. Cuts at a rune
// boundary so multi-byte replies stay valid UTF-8.
func snippet(raw string) string {
	const max = 500
	raw = strings.TrimSpace(raw)
	if utf8.RuneCountInString(raw) <= max {
		return raw
	}
	runes := []rune(raw)
	return string(runes[:max])
}
