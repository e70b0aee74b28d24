package estimate

import (
	"fmt"
	"strings"

	"github.com/aviniti/estimate-engine/internal/pricing"
)

const analysisSchemaPrompt = `Required JSON schema:
{
  "appOverview": "string (4-6 sentence narrative of the app idea)",
  "essentialFeatures": [
    {
      "name": "string",
      "description": "string",
      "purpose": "string (one or two words, e.g. Security, Engagement)",
      "costEstimate": "string, dollar-formatted (e.g. \"$450\")",
      "timeEstimate": "string, duration (e.g. \"7 days\")"
    }
  ],
  "enhancementFeatures": [ same shape as essentialFeatures ]
}`

// PromptInput is everything the prompt builder needs for one analysis turn.
type PromptInput struct {
	Description string
	Platforms   []string
	// Language is "en" or "ar"; empty triggers detection from Description.
	Language string
}

// ArabicMode reports whether the output language directive should be Arabic.
// When no explicit language is set, any Arabic-range codepoint in the input
// switches the directive to Arabic. Known limitation: mixed-script input
// defaults to Arabic if a single Arabic character is present.
func ArabicMode(input PromptInput) bool {
	switch strings.ToLower(strings.TrimSpace(input.Language)) {
	case "ar":
		return true
	case "en":
		return false
	}
	for _, r := range input.Description {
		if r >= 0x0600 && r <= 0x06FF {
			return true
		}
	}
	return false
}

// BuildAnalysisPrompt constructs the two-part conversation seed: a system
// turn carrying the full pricing catalog as grounding context, and a task
// turn with the language directive, counts, mandatory-inclusion rules, and
// the exact JSON schema the reply must conform to.
func BuildAnalysisPrompt(input PromptInput) (system, task string) {
	system = `You are an expert in mobile and web app development cost estimation for a software development agency.
You ground every cost and time estimate in the agency's fixed pricing schedule below. When a feature matches a schedule entry, use its exact cost and timeline. For features not in the schedule, estimate conservatively and consistently with comparable entries.

` + pricing.PromptBlock()

	language := "English"
	if ArabicMode(input) {
		language = "Arabic"
	}

	platforms := input.Platforms
	if len(platforms) == 0 {
		platforms = []string{"ios", "android"}
	}
	platformNames := make([]string, 0, len(platforms))
	for _, p := range platforms {
		platformNames = append(platformNames, pricing.PlatformFor(p).FeatureName)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Respond entirely in %s.\n\n", language)
	b.WriteString("Analyze the following specific app idea. Your analysis must be about this exact idea, not a generic template answer.\n\n")
	fmt.Fprintf(&b, "App idea:\n%s\n\n", strings.TrimSpace(input.Description))
	fmt.Fprintf(&b, "Rules:\n")
	fmt.Fprintf(&b, "1. Provide %d-%d essential features and %d-%d enhancement features.\n",
		essentialMin, essentialMax, enhancementMin, enhancementMax)
	b.WriteString("2. \"UI/UX Design\" must always appear in the essential features.\n")
	fmt.Fprintf(&b, "3. Every requested deployment target must appear as an essential feature: %s.\n",
		strings.Join(platformNames, ", "))
	b.WriteString("4. Include the authentication methods applicable to this idea as essential features.\n")
	b.WriteString("5. Enhancement features are optional add-ons that add clear value; describe the value each one adds.\n")
	b.WriteString("6. costEstimate and timeEstimate must be strings in the exact display format shown in the schema, never bare numbers.\n\n")
	b.WriteString(analysisSchemaPrompt)
	b.WriteString("\n\nRespond with only valid JSON matching the schema. Do not include any text before or after the JSON object.")
	return system, b.String()
}
