package dashboard

import (
	"fmt"
	"strings"

	"github.com/aviniti/estimate-engine/internal/estimate"
)

const dashboardSchemaPrompt = `Required JSON schema:
{
  "successPotentialScores": {
    "innovation": "integer 1-10",
    "marketViability": "integer 1-10",
    "monetization": "integer 1-10",
    "technicalFeasibility": "integer 1-10"
  },
  "strategicAnalysis": {
    "strengths": "2-3 sentences highlighting key competitive advantages",
    "challenges": "2-3 sentences identifying main risks and mitigation strategies",
    "recommendedMonetization": "string"
  },
  "costBreakdown": {
    "UI/UX Design": "integer dollars",
    "Core Development": "integer dollars",
    "Quality Assurance": "integer dollars",
    "Infrastructure & Deployment": "integer dollars",
    "Project Management": "integer dollars"
  },
  "timelinePhases": [
    {
      "phase": "string",
      "duration": "string (e.g. \"Weeks 1-2\")",
      "description": "string"
    }
  ],
  "marketComparison": "string (optional)",
  "complexityAnalysis": "string (optional)"
}`

// buildDashboardPrompt seeds the executive-analysis turn. The cost breakdown
// must reconcile with the already-committed estimate total, so the total and
// feature list are stated as fixed facts, not inputs to re-estimate.
func buildDashboardPrompt(in Input) (system, task string) {
	system = `You are a senior product strategist at a software development agency preparing an executive briefing for a client's app estimate.
The feature scope and total cost below are already agreed with the client. Never revise them; your cost breakdown must sum to the stated total.`

	language := "English"
	if estimate.ArabicMode(estimate.PromptInput{Description: in.IdeaText, Language: in.Language}) {
		language = "Arabic"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Respond entirely in %s.\n\n", language)
	fmt.Fprintf(&b, "App overview:\n%s\n\n", strings.TrimSpace(in.AppOverview))
	fmt.Fprintf(&b, "Selected features: %s\n", strings.Join(in.FeatureNames, ", "))
	fmt.Fprintf(&b, "Agreed total cost: $%d\n", in.TotalCost)
	fmt.Fprintf(&b, "Estimated build time: %d-%d working days\n\n", in.MinTotalDays, in.MaxTotalDays)
	b.WriteString("Produce the executive dashboard:\n")
	b.WriteString("1. Score the opportunity 1-10 on innovation, market viability, monetization potential, and technical feasibility.\n")
	b.WriteString("2. Write 2-3 sentences each on the strengths and challenges specific to this idea, and recommend a monetization model.\n")
	fmt.Fprintf(&b, "3. Break the $%d total into the five cost categories named in the schema; the values must sum to exactly $%d.\n", in.TotalCost, in.TotalCost)
	b.WriteString("4. Lay out delivery phases with week-range durations consistent with the estimated build time.\n\n")
	b.WriteString(dashboardSchemaPrompt)
	b.WriteString("\n\nRespond with only valid JSON matching the schema. Do not include any text before or after the JSON object.")
	return system, b.String()
}
