// Package report assembles the client-facing estimate document from a
// finished analysis: the feature table with totals, the optional executive
// dashboard, and rendered markdown/HTML/PDF forms.
package report

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/aviniti/estimate-engine/internal/dashboard"
	"github.com/aviniti/estimate-engine/internal/estimate"
	"github.com/aviniti/estimate-engine/internal/pricing"
)

// parallelizationFactor discounts summed per-feature durations for work
// streams that run concurrently.
const parallelizationFactor = 0.7

// Data is the document contract handed to renderers and returned to API
// clients.
type Data struct {
	AppOverview      string             `json:"appOverview"`
	SelectedFeatures []estimate.Feature `json:"selectedFeatures"`
	TotalCost        string             `json:"totalCost"`
	TotalTime        string             `json:"totalTime"`

	SuccessPotentialScores *dashboard.Scores            `json:"successPotentialScores,omitempty"`
	StrategicAnalysis      *dashboard.StrategicAnalysis `json:"strategicAnalysis,omitempty"`
	CostBreakdown          map[string]int               `json:"costBreakdown,omitempty"`
	TimelinePhases         []dashboard.TimelinePhase    `json:"timelinePhases,omitempty"`
}

// Totals sums the selected features. Cost is exact; the day range applies the
// parallelization discount and rounds up.
func Totals(features []estimate.Feature) (cost, minDays, maxDays int) {
	for _, f := range features {
		cost += pricing.ParseCost(f.CostEstimate)
		lo, hi := pricing.ParseDayRange(f.TimeEstimate)
		minDays += lo
		maxDays += hi
	}
	minDays = int(math.Ceil(float64(minDays) * parallelizationFactor))
	maxDays = int(math.Ceil(float64(maxDays) * parallelizationFactor))
	if minDays < 1 {
		minDays = 1
	}
	if maxDays < minDays {
		maxDays = minDays
	}
	return cost, minDays, maxDays
}

// Build assembles the document from selected features, attaching the
// dashboard sections when present.
func Build(overview string, features []estimate.Feature, dash *dashboard.Dashboard) Data {
	selected := make([]estimate.Feature, 0, len(features))
	for _, f := range features {
		if f.Selected {
			selected = append(selected, f)
		}
	}
	cost, minDays, maxDays := Totals(selected)

	d := Data{
		AppOverview:      overview,
		SelectedFeatures: selected,
		TotalCost:        pricing.FormatCost(cost),
		TotalTime:        fmt.Sprintf("%d-%d days", minDays, maxDays),
	}
	if dash != nil {
		scores := dash.SuccessPotentialScores
		analysis := dash.StrategicAnalysis
		d.SuccessPotentialScores = &scores
		d.StrategicAnalysis = &analysis
		d.CostBreakdown = dash.CostBreakdown
		d.TimelinePhases = dash.TimelinePhases
	}
	return d
}

// Markdown renders the document as a GFM report.
func Markdown(d Data) string {
	var b strings.Builder
	b.WriteString("# App Development Estimate\n\n")
	b.WriteString("## Overview\n\n")
	b.WriteString(strings.TrimSpace(d.AppOverview))
	b.WriteString("\n\n## Selected Features\n\n")
	b.WriteString("| Feature | Purpose | Cost | Time |\n")
	b.WriteString("| --- | --- | --- | --- |\n")
	for _, f := range d.SelectedFeatures {
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n",
			mdCell(f.Name), mdCell(f.Purpose), mdCell(f.CostEstimate), mdCell(f.TimeEstimate))
	}
	fmt.Fprintf(&b, "\n**Total cost:** %s  \n**Estimated time:** %s\n", d.TotalCost, d.TotalTime)

	if d.SuccessPotentialScores != nil {
		s := d.SuccessPotentialScores
		b.WriteString("\n## Success Potential\n\n")
		fmt.Fprintf(&b, "- Innovation: %d/10\n", s.Innovation)
		fmt.Fprintf(&b, "- Market viability: %d/10\n", s.MarketViability)
		fmt.Fprintf(&b, "- Monetization: %d/10\n", s.Monetization)
		fmt.Fprintf(&b, "- Technical feasibility: %d/10\n", s.TechnicalFeasibility)
	}
	if d.StrategicAnalysis != nil {
		sa := d.StrategicAnalysis
		b.WriteString("\n## Strategic Analysis\n\n")
		fmt.Fprintf(&b, "**Strengths**\n\n%s\n", sa.Strengths)
		fmt.Fprintf(&b, "\n**Challenges**\n\n%s\n", sa.Challenges)
		if sa.RecommendedMonetization != "" {
			fmt.Fprintf(&b, "\n**Recommended monetization:** %s\n", sa.RecommendedMonetization)
		}
	}
	if len(d.CostBreakdown) > 0 {
		b.WriteString("\n## Cost Breakdown\n\n")
		b.WriteString("| Category | Amount |\n")
		b.WriteString("| --- | --- |\n")
		for _, category := range breakdownOrder(d.CostBreakdown) {
			fmt.Fprintf(&b, "| %s | %s |\n", mdCell(category), pricing.FormatCost(d.CostBreakdown[category]))
		}
	}
	if len(d.TimelinePhases) > 0 {
		b.WriteString("\n## Timeline\n\n")
		for _, p := range d.TimelinePhases {
			fmt.Fprintf(&b, "- **%s** (%s): %s\n", p.Phase, p.Duration, p.Description)
		}
	}
	return b.String()
}

// breakdownOrder yields categories in the canonical presentation order, then
// any extras alphabetically.
func breakdownOrder(breakdown map[string]int) []string {
	canonical := []string{
		"UI/UX Design",
		"Core Development",
		"Quality Assurance",
		"Infrastructure & Deployment",
		"Project Management",
	}
	out := make([]string, 0, len(breakdown))
	seen := make(map[string]bool, len(breakdown))
	for _, c := range canonical {
		if _, ok := breakdown[c]; ok {
			out = append(out, c)
			seen[c] = true
		}
	}
	extras := make([]string, 0)
	for c := range breakdown {
		if !seen[c] {
			extras = append(extras, c)
		}
	}
	sort.Strings(extras)
	return append(out, extras...)
}

func mdCell(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), "|", "\\|")
}
