package estimate

import (
	"fmt"
	"strings"

	"github.com/aviniti/estimate-engine/internal/pricing"
)

// MockOverviewPrefix labels fallback output so callers and testers can tell
// synthetic data from model output.
const MockOverviewPrefix = "[Sample estimate] "

// GenerateMockAnalysis produces a structurally valid estimate without any
// network I/O. It never fails: it is the guaranteed terminal success path
// when the model or gateway is unavailable or misconfigured, and doubles as
// a development convenience. Deployment features are built from the
// requested platform list, defaulting to iOS and Android.
func GenerateMockAnalysis(description string, platforms []string) AnalysisResult {
	if len(platforms) == 0 {
		platforms = []string{"ios", "android"}
	}

	essential := []rawFeature{
		{
			Name:         "UI/UX Design",
			Description:  "Comprehensive application design with user research and wireframes",
			Purpose:      "Design",
			CostEstimate: "$500",
			TimeEstimate: "10 days",
		},
		{
			Name:         "Authentication (Email)",
			Description:  "Secure user authentication using email and password",
			Purpose:      "Security",
			CostEstimate: "$200",
			TimeEstimate: "1 day",
		},
		{
			Name:         "Authentication (Social Media)",
			Description:  "Login using social media accounts",
			Purpose:      "User Experience",
			CostEstimate: "$200",
			TimeEstimate: "1 day",
		},
	}
	for _, p := range platforms {
		platform := pricing.PlatformFor(p)
		essential = append(essential, rawFeature{
			Name:         platform.FeatureName,
			Description:  platform.Description,
			Purpose:      "Launch",
			CostEstimate: pricing.FormatCost(platform.Cost),
			TimeEstimate: "14 days",
		})
	}
	essential = append(essential, rawFeature{
		Name:         "User Profiles & Personalization",
		Description:  "Customizable user profiles with preferences",
		Purpose:      "User Experience",
		CostEstimate: "$250",
		TimeEstimate: "2 days",
	})

	enhancement := []rawFeature{
		{
			Name:         "Push Notifications",
			Description:  "Real-time alerts and notifications for users",
			Purpose:      "Engagement",
			CostEstimate: "$550",
			TimeEstimate: "4 days",
		},
		{
			Name:         "Analytics Integration",
			Description:  "Track user behavior and app performance",
			Purpose:      "Insights",
			CostEstimate: "$800",
			TimeEstimate: "7 days",
		},
		{
			Name:         "Offline Mode",
			Description:  "Basic functionality when offline",
			Purpose:      "User Experience",
			CostEstimate: "$850",
			TimeEstimate: "7 days",
		},
		{
			Name:         "In-App Purchases",
			Description:  "Monetization through premium features",
			Purpose:      "Revenue",
			CostEstimate: "$1,000",
			TimeEstimate: "10 days",
		},
	}

	overview := strings.TrimSpace(description)
	if overview == "" {
		overview = "A mobile application concept."
	}
	raw := rawAnalysis{
		AppOverview:         fmt.Sprintf("%s%s", MockOverviewPrefix, overview),
		EssentialFeatures:   essential,
		EnhancementFeatures: enhancement,
	}
	return NormalizeAnalysis(raw)
}
