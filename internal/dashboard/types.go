// Package dashboard produces the executive summary attached to a finished
// estimate: opportunity scores, strategic analysis, a cost breakdown that
// reconciles with the estimate total, and a delivery timeline. Generation is
// best-effort with a deterministic fallback; callers always get a complete
// dashboard.
package dashboard

// Scores rates the opportunity on a 1-10 scale per dimension.
type Scores struct {
	Innovation           int `json:"innovation"`
	MarketViability      int `json:"marketViability"`
	Monetization         int `json:"monetization"`
	TechnicalFeasibility int `json:"technicalFeasibility"`
}

// StrategicAnalysis carries short narrative paragraphs, not lists; the
// presentation layer renders each field as a single block of prose.
type StrategicAnalysis struct {
	Strengths               string `json:"strengths"`
	Challenges              string `json:"challenges"`
	RecommendedMonetization string `json:"recommendedMonetization"`
}

type TimelinePhase struct {
	Phase       string `json:"phase"`
	Duration    string `json:"duration"`
	Description string `json:"description"`
}

// Dashboard is the executive view. CostBreakdown values are dollar amounts
// that sum to the selected-feature total (small rounding drift allowed).
type Dashboard struct {
	SuccessPotentialScores Scores            `json:"successPotentialScores"`
	StrategicAnalysis      StrategicAnalysis `json:"strategicAnalysis"`
	CostBreakdown          map[string]int    `json:"costBreakdown"`
	TimelinePhases         []TimelinePhase   `json:"timelinePhases"`
	MarketComparison       string            `json:"marketComparison,omitempty"`
	ComplexityAnalysis     string            `json:"complexityAnalysis,omitempty"`
}

// Input is what the generator knows about the finished estimate.
type Input struct {
	AppOverview  string
	FeatureNames []string
	TotalCost    int
	MinTotalDays int
	MaxTotalDays int
	Language     string
	IdeaText     string
}
