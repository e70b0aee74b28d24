package pricing

import (
	"fmt"
	"strconv"
	"strings"
)

// Entry is one grounding row of the fixed pricing table. Costs are USD,
// timelines are business days.
type Entry struct {
	Name     string
	Category string
	Cost     int
	Days     int
}

// Catalog is the agency's fixed feature pricing table. It is injected verbatim
// into every model prompt so cost and time estimates stay anchored to known
// values instead of whatever the model invents.
var Catalog = []Entry{
	// Design
	{Name: "UI/UX Design", Category: "Design", Cost: 500, Days: 10},
	{Name: "Brand Identity & Style Guide", Category: "Design", Cost: 350, Days: 5},

	// Authentication & Security
	{Name: "Authentication (Email)", Category: "Security", Cost: 200, Days: 1},
	{Name: "Authentication (Social Media)", Category: "Security", Cost: 200, Days: 1},
	{Name: "Authentication (Phone/OTP)", Category: "Security", Cost: 500, Days: 3},
	{Name: "Two-Factor Authentication", Category: "Security", Cost: 600, Days: 4},
	{Name: "Biometric Login", Category: "Security", Cost: 450, Days: 3},

	// User Experience
	{Name: "User Profiles & Personalization", Category: "User Experience", Cost: 250, Days: 2},
	{Name: "Search & Filtering", Category: "User Experience", Cost: 400, Days: 3},
	{Name: "Multi-Language Support", Category: "User Experience", Cost: 500, Days: 4},
	{Name: "Offline Mode", Category: "User Experience", Cost: 850, Days: 7},

	// Engagement
	{Name: "Push Notifications", Category: "Engagement", Cost: 550, Days: 4},
	{Name: "In-App Messaging / Chat", Category: "Engagement", Cost: 900, Days: 7},
	{Name: "Ratings & Reviews", Category: "Engagement", Cost: 350, Days: 3},

	// Commerce & Monetization
	{Name: "Payment Gateway Integration", Category: "Monetization", Cost: 750, Days: 5},
	{Name: "In-App Purchases", Category: "Monetization", Cost: 1000, Days: 10},
	{Name: "Subscription Management", Category: "Monetization", Cost: 900, Days: 7},

	// Data & Insights
	{Name: "Analytics Integration", Category: "Analytics", Cost: 800, Days: 7},
	{Name: "Admin Dashboard", Category: "Analytics", Cost: 1200, Days: 10},
	{Name: "Reporting & Export", Category: "Analytics", Cost: 600, Days: 5},

	// Backend
	{Name: "Cloud Backend & API", Category: "Backend", Cost: 1500, Days: 14},
	{Name: "Real-Time Sync", Category: "Backend", Cost: 800, Days: 6},
	{Name: "File Storage & Media Upload", Category: "Backend", Cost: 450, Days: 3},
	{Name: "Geolocation & Maps", Category: "Backend", Cost: 700, Days: 5},

	// Deployment
	{Name: "Deployment (iOS)", Category: "Deployment", Cost: 450, Days: 14},
	{Name: "Deployment (Android)", Category: "Deployment", Cost: 350, Days: 14},
	{Name: "Deployment (Web)", Category: "Deployment", Cost: 300, Days: 14},
}

// Platform describes a deployment target the user can request.
type Platform struct {
	ID          string
	FeatureName string
	Description string
	Cost        int
}

var Platforms = map[string]Platform{
	"ios": {
		ID:          "ios",
		FeatureName: "Deployment (iOS)",
		Description: "App Store submission and deployment process for iOS",
		Cost:        450,
	},
	"android": {
		ID:          "android",
		FeatureName: "Deployment (Android)",
		Description: "Google Play store submission and deployment process",
		Cost:        350,
	},
	"web": {
		ID:          "web",
		FeatureName: "Deployment (Web)",
		Description: "Web hosting and deployment process",
		Cost:        300,
	},
}

// PlatformFor resolves a platform id, falling back to a generic deployment
// entry for ids the catalog does not know.
func PlatformFor(id string) Platform {
	if p, ok := Platforms[strings.ToLower(strings.TrimSpace(id))]; ok {
		return p
	}
	return Platform{
		ID:          id,
		FeatureName: fmt.Sprintf("Deployment (%s)", id),
		Description: fmt.Sprintf("Deployment for %s platform", id),
		Cost:        200,
	}
}

// Lookup finds a catalog entry by feature name, case-insensitively.
func Lookup(name string) (Entry, bool) {
	needle := strings.ToLower(strings.TrimSpace(name))
	for _, e := range Catalog {
		if strings.ToLower(e.Name) == needle {
			return e, true
		}
	}
	return Entry{}, false
}

// PromptBlock renders the catalog as the grounding block embedded in model
// prompts, grouped by category in catalog order.
func PromptBlock() string {
	var b strings.Builder
	b.WriteString("FEATURE PRICING SCHEDULE (fixed, use these values when a feature matches):\n")
	last := ""
	for _, e := range Catalog {
		if e.Category != last {
			fmt.Fprintf(&b, "\n%s:\n", e.Category)
			last = e.Category
		}
		fmt.Fprintf(&b, "- %s: %s, %s\n", e.Name, FormatCost(e.Cost), FormatDays(e.Days))
	}
	return b.String()
}

// FormatCost renders a dollar amount the way the presentation layer expects,
// e.g. 1000 -> "$1,000".
func FormatCost(amount int) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	digits := strconv.Itoa(amount)
	var parts []string
	for len(digits) > 3 {
		parts = append([]string{digits[len(digits)-3:]}, parts...)
		digits = digits[:len(digits)-3]
	}
	parts = append([]string{digits}, parts...)
	return sign + "$" + strings.Join(parts, ",")
}

// FormatDays renders a day count as a duration string, e.g. 7 -> "7 days".
func FormatDays(days int) string {
	if days == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", days)
}

// ParseCost extracts the leading dollar amount from a display string such as
// "$1,000" or "$450-$600". Returns 0 when no digits are present.
func ParseCost(display string) int {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r >= '0' && r <= '9', r == '-':
			return r
		default:
			return -1
		}
	}, display)
	first := strings.SplitN(strings.TrimPrefix(cleaned, "-"), "-", 2)[0]
	v, err := strconv.Atoi(first)
	if err != nil {
		return 0
	}
	return v
}

// ParseDayRange extracts a min/max day pair from strings like "7 days" or
// "2-3 days". Unparseable input defaults to a 1-2 day range.
func ParseDayRange(display string) (min, max int) {
	num := ""
	var nums []int
	flush := func() {
		if num != "" {
			v, _ := strconv.Atoi(num)
			nums = append(nums, v)
			num = ""
		}
	}
	for _, r := range display {
		if r >= '0' && r <= '9' {
			num += string(r)
		} else {
			flush()
		}
	}
	flush()
	switch len(nums) {
	case 0:
		return 1, 2
	case 1:
		return nums[0], nums[0]
	default:
		return nums[0], nums[1]
	}
}
