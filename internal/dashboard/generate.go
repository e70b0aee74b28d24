package dashboard

import (
	"context"
	"log"

	"github.com/aviniti/estimate-engine/internal/estimate"
)

// Generator produces dashboards from the model with the deterministic
// fallback underneath. Generate never returns an error: any failure or gap
// in the model output is patched from the fallback.
type Generator struct {
	caller estimate.LLMCaller
	logger *log.Logger
}

func NewGenerator(caller estimate.LLMCaller, logger *log.Logger) *Generator {
	if logger == nil {
		logger = log.Default()
	}
	return &Generator{caller: caller, logger: logger}
}

// rawDashboard uses pointers so absent sections are distinguishable from
// zero-valued ones.
type rawDashboard struct {
	SuccessPotentialScores *Scores            `json:"successPotentialScores"`
	StrategicAnalysis      *StrategicAnalysis `json:"strategicAnalysis"`
	CostBreakdown          map[string]int     `json:"costBreakdown"`
	TimelinePhases         []TimelinePhase    `json:"timelinePhases"`
	MarketComparison       string             `json:"marketComparison"`
	ComplexityAnalysis     string             `json:"complexityAnalysis"`
}

func (g *Generator) Generate(ctx context.Context, in Input) Dashboard {
	fallback := GenerateFallback(in)
	if g.caller == nil {
		return fallback
	}

	system, task := buildDashboardPrompt(in)
	reply, err := g.caller.Complete(ctx, system, task)
	if err != nil {
		g.logger.Printf("dashboard generation failed, using fallback: %v", err)
		return fallback
	}

	var raw rawDashboard
	if err := estimate.ExtractJSON(reply, &raw); err != nil {
		g.logger.Printf("dashboard response unparseable, using fallback: %v", err)
		return fallback
	}
	return mergeWithFallback(raw, fallback)
}

// mergeWithFallback fills each missing or invalid section from the fallback
// so every numeric field is always present and in range.
func mergeWithFallback(raw rawDashboard, fallback Dashboard) Dashboard {
	out := fallback

	if raw.SuccessPotentialScores != nil {
		out.SuccessPotentialScores = clampScores(*raw.SuccessPotentialScores, fallback.SuccessPotentialScores)
	}
	if raw.StrategicAnalysis != nil {
		sa := *raw.StrategicAnalysis
		if sa.Strengths == "" {
			sa.Strengths = fallback.StrategicAnalysis.Strengths
		}
		if sa.Challenges == "" {
			sa.Challenges = fallback.StrategicAnalysis.Challenges
		}
		if sa.RecommendedMonetization == "" {
			sa.RecommendedMonetization = fallback.StrategicAnalysis.RecommendedMonetization
		}
		out.StrategicAnalysis = sa
	}
	if validBreakdown(raw.CostBreakdown) {
		out.CostBreakdown = raw.CostBreakdown
	}
	if validPhases(raw.TimelinePhases) {
		out.TimelinePhases = raw.TimelinePhases
	}
	if raw.MarketComparison != "" {
		out.MarketComparison = raw.MarketComparison
	}
	if raw.ComplexityAnalysis != "" {
		out.ComplexityAnalysis = raw.ComplexityAnalysis
	}
	return out
}

func clampScores(s, fallback Scores) Scores {
	pick := func(v, def int) int {
		if v < 1 || v > 10 {
			return def
		}
		return v
	}
	return Scores{
		Innovation:           pick(s.Innovation, fallback.Innovation),
		MarketViability:      pick(s.MarketViability, fallback.MarketViability),
		Monetization:         pick(s.Monetization, fallback.Monetization),
		TechnicalFeasibility: pick(s.TechnicalFeasibility, fallback.TechnicalFeasibility),
	}
}

func validBreakdown(b map[string]int) bool {
	if len(b) == 0 {
		return false
	}
	for _, v := range b {
		if v < 0 {
			return false
		}
	}
	return true
}

func validPhases(phases []TimelinePhase) bool {
	if len(phases) == 0 {
		return false
	}
	for _, p := range phases {
		if p.Phase == "" || p.Duration == "" {
			return false
		}
	}
	return true
}
