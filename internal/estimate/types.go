package estimate

import "time"

const (
	// MinDescriptionChars is the smallest idea description worth analyzing.
	MinDescriptionChars = 50
	// MaxDescriptionChars bounds prompt size; longer input is truncated.
	MaxDescriptionChars = 20000

	essentialMin   = 4
	essentialMax   = 6
	enhancementMin = 3
	enhancementMax = 5
)

// Feature is the canonical estimate line item consumed by the presentation
// layer. CostEstimate and TimeEstimate are display strings ("$450", "7 days"),
// never raw numbers; formatting happens here, not downstream.
type Feature struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	Purpose      string `json:"purpose"`
	CostEstimate string `json:"costEstimate"`
	TimeEstimate string `json:"timeEstimate"`
	Selected     bool   `json:"selected"`
}

// AnalysisResult is one successful model round-trip. Immutable after creation
// except for the caller toggling Selected on individual features.
type AnalysisResult struct {
	AppOverview         string    `json:"appOverview"`
	EssentialFeatures   []Feature `json:"essentialFeatures"`
	EnhancementFeatures []Feature `json:"enhancementFeatures"`
}

// Step is the orchestrator's processing phase.
type Step string

const (
	StepTranscribing Step = "transcribing"
	StepAnalyzing    Step = "analyzing"
	StepComplete     Step = "complete"
	StepError        Step = "error"
)

// ProcessingState is the state snapshot emitted to progress observers.
// Progress is monotonic non-decreasing within a single run. TimeRemaining is
// an advisory countdown for UI only.
type ProcessingState struct {
	Step          Step   `json:"step"`
	Message       string `json:"message"`
	Progress      int    `json:"progress"`
	RetryCount    int    `json:"retryCount"`
	TimeRemaining int    `json:"timeRemaining,omitempty"`
}

type UserDetails struct {
	FullName     string `json:"fullName"`
	PhoneNumber  string `json:"phoneNumber"`
	CompanyName  string `json:"companyName"`
	EmailAddress string `json:"emailAddress"`
}

type IdeaDetails struct {
	Description     string `json:"description"`
	AudioURL        string `json:"audioUrl,omitempty"`
	TranscribedText string `json:"transcribedText,omitempty"`
}

type QuestionnaireAnswers struct {
	TargetAudience          []string `json:"targetAudience,omitempty"`
	PlatformType            string   `json:"platformType,omitempty"`
	DevelopmentTimeline     string   `json:"developmentTimeline,omitempty"`
	Budget                  string   `json:"budget,omitempty"`
	KeyFeatures             []string `json:"keyFeatures,omitempty"`
	MonetizationStrategy    []string `json:"monetizationStrategy,omitempty"`
	CompetitorNames         string   `json:"competitorNames,omitempty"`
	SecurityRequirements    []string `json:"securityRequirements,omitempty"`
	ScalabilityNeeds        string   `json:"scalabilityNeeds,omitempty"`
	IntegrationRequirements []string `json:"integrationRequirements,omitempty"`
}

// Request is one user session attempt handed to the orchestrator.
type Request struct {
	SessionKey           string               `json:"sessionKey"`
	UserDetails          UserDetails          `json:"userDetails"`
	IdeaDetails          IdeaDetails          `json:"ideaDetails"`
	QuestionnaireAnswers QuestionnaireAnswers `json:"questionnaireAnswers"`
	SelectedPlatforms    []string             `json:"selectedPlatforms,omitempty"`
	// Language forces the output language ("en" or "ar"). Empty means detect
	// from the idea text.
	Language string `json:"language,omitempty"`
}

// Checkpoint is the snapshot written to the session store after a successful
// analysis, consumed by the next pipeline stage without re-sending user data.
type Checkpoint struct {
	Request Request        `json:"request"`
	Result  AnalysisResult `json:"result"`
	SavedAt time.Time      `json:"savedAt"`
}

// rawFeature is a feature as the model emits it, before normalization. Cost
// and time may arrive as strings or bare numbers.
type rawFeature struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	Purpose      string `json:"purpose"`
	CostEstimate any    `json:"costEstimate"`
	TimeEstimate any    `json:"timeEstimate"`
}

// rawAnalysis is the extracted model payload prior to validation and
// normalization.
type rawAnalysis struct {
	AppOverview         string       `json:"appOverview"`
	EssentialFeatures   []rawFeature `json:"essentialFeatures"`
	EnhancementFeatures []rawFeature `json:"enhancementFeatures"`
}
