package dashboard

import (
	"fmt"
	"math"
)

// Cost-category shares of the total, in percent. Rounded per category, so the
// sum can drift from the total by a few dollars.
var costShares = []struct {
	Category string
	Percent  float64
}{
	{"UI/UX Design", 20},
	{"Core Development", 45},
	{"Quality Assurance", 15},
	{"Infrastructure & Deployment", 10},
	{"Project Management", 10},
}

// GenerateFallback builds the deterministic dashboard used when model
// generation fails. Every field is populated so the caller never has to
// handle a partial dashboard.
func GenerateFallback(in Input) Dashboard {
	return Dashboard{
		SuccessPotentialScores: Scores{
			Innovation:           7,
			MarketViability:      8,
			Monetization:         7,
			TechnicalFeasibility: 8,
		},
		StrategicAnalysis: StrategicAnalysis{
			Strengths: "The idea has a clear core value proposition and a well-scoped initial feature set. " +
				"Every selected component maps to established delivery patterns, which keeps execution risk low.",
			Challenges: "The app marketplace is competitive, so differentiation will matter from day one. " +
				"User acquisition costs in the early stages are the main commercial risk to plan for.",
			RecommendedMonetization: "Freemium with premium feature tier",
		},
		CostBreakdown:  SplitCost(in.TotalCost),
		TimelinePhases: fallbackPhases(in.MinTotalDays),
		MarketComparison: "Comparable apps in this category typically launch with a similar feature scope " +
			"and expand after validating user demand.",
		ComplexityAnalysis: "Moderate complexity. The selected features use well-understood patterns with " +
			"no research-stage components.",
	}
}

// SplitCost distributes total across the fixed cost categories by share,
// rounding each category independently.
func SplitCost(total int) map[string]int {
	out := make(map[string]int, len(costShares))
	for _, s := range costShares {
		out[s.Category] = int(math.Round(float64(total) * s.Percent / 100))
	}
	return out
}

func fallbackPhases(minDays int) []TimelinePhase {
	if minDays < 1 {
		minDays = 1
	}
	coreEnd := int(math.Ceil(float64(minDays)/7)) + 2
	return []TimelinePhase{
		{
			Phase:       "Discovery & Design",
			Duration:    "Weeks 1-2",
			Description: "Requirements workshops, information architecture, and high-fidelity designs.",
		},
		{
			Phase:       "Core Development",
			Duration:    fmt.Sprintf("Weeks 3-%d", coreEnd),
			Description: "Implementation of the selected features with weekly progress builds.",
		},
		{
			Phase:       "Testing & Launch",
			Duration:    "Final 1-2 weeks",
			Description: "Quality assurance, store submission, and production rollout.",
		},
	}
}
