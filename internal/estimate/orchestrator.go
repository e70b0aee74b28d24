package estimate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync/atomic"
	"time"
	"unicode/utf8"

	"github.com/aviniti/estimate-engine/internal/session"
)

// Transcriber converts a recorded idea into text. A transcription failure is
// terminal for the run: the analysis step is never attempted on a partial
// idea.
type Transcriber interface {
	Transcribe(ctx context.Context, req Request) (string, error)
}

// Analyzer produces a canonical analysis for a validated request. The
// orchestrator's built-in analyzer drives the model in-process; a remote
// implementation calls a deployed analysis endpoint instead. Errors are
// classified and retried on the same budget either way.
type Analyzer interface {
	Analyze(ctx context.Context, req Request) (AnalysisResult, error)
}

// ProgressFn observes state transitions. Called synchronously from the run
// goroutine, so it must not block.
type ProgressFn func(ProcessingState)

// Orchestrator drives one idea through transcription, analysis, and
// checkpointing. A single Orchestrator runs at most one analysis at a time;
// Run reports ErrBusy if a run is already in flight.
type Orchestrator struct {
	caller      LLMCaller
	analyzer    Analyzer
	transcriber Transcriber
	store       session.Store
	policy      RetryPolicy
	progress    ProgressFn
	logger      *log.Logger

	running      atomic.Bool
	lastProgress int
}

// ErrBusy is returned when Run is called while a prior run is still active.
var ErrBusy = &ValidationError{Reason: "an analysis is already in progress"}

// NewOrchestrator wires an orchestrator with the default retry policy.
// transcriber may be nil when audio input is not supported; store may be nil
// to disable checkpointing; progress may be nil.
func NewOrchestrator(caller LLMCaller, transcriber Transcriber, store session.Store, progress ProgressFn, logger *log.Logger) *Orchestrator {
	if logger == nil {
		logger = log.Default()
	}
	return &Orchestrator{
		caller:      caller,
		transcriber: transcriber,
		store:       store,
		policy:      DefaultRetryPolicy(),
		progress:    progress,
		logger:      logger,
	}
}

// SetRetryPolicy overrides the retry policy. Must be called before Run.
func (o *Orchestrator) SetRetryPolicy(p RetryPolicy) { o.policy = p }

// SetAnalyzer routes the analyze step through a, typically a deployed
// analysis endpoint, instead of the in-process model call. Must be called
// before Run.
func (o *Orchestrator) SetAnalyzer(a Analyzer) { o.analyzer = a }

// emit clamps Progress so observers never see it move backwards, even on the
// error path.
func (o *Orchestrator) emit(state ProcessingState) {
	if state.Progress < o.lastProgress {
		state.Progress = o.lastProgress
	} else {
		o.lastProgress = state.Progress
	}
	if o.progress != nil {
		o.progress(state)
	}
}

// Run executes the full pipeline for one request and returns the normalized
// analysis. On retry exhaustion the error is an *AnalysisError whose Retries
// field equals the number of retries performed.
func (o *Orchestrator) Run(ctx context.Context, req Request) (AnalysisResult, error) {
	if !o.running.CompareAndSwap(false, true) {
		return AnalysisResult{}, ErrBusy
	}
	defer o.running.Store(false)
	o.lastProgress = 0

	// A completed checkpoint for this session short-circuits the run: the
	// caller already paid for this analysis once.
	if cached, ok := o.loadCheckpoint(ctx, req.SessionKey); ok {
		o.emit(ProcessingState{Step: StepComplete, Message: "Analysis complete", Progress: 100})
		return cached, nil
	}

	description, err := o.resolveDescription(ctx, &req)
	if err != nil {
		o.emit(ProcessingState{Step: StepError, Message: err.Error(), Progress: 0})
		return AnalysisResult{}, err
	}

	if err := validateDescription(description); err != nil {
		o.emit(ProcessingState{Step: StepError, Message: err.Error(), Progress: 0})
		return AnalysisResult{}, err
	}
	description = truncateDescription(description)

	o.emit(ProcessingState{Step: StepAnalyzing, Message: "Analyzing your app idea...", Progress: 50, TimeRemaining: 30})

	var result AnalysisResult
	attempt := func(ctx context.Context) error {
		analyzed, err := o.analyze(ctx, req, description)
		if err != nil {
			return err
		}
		if err := ValidateResult(analyzed); err != nil {
			return &MalformedResponseError{Reason: err.Error()}
		}
		result = analyzed
		return nil
	}

	retries, err := o.policy.Run(ctx, attempt, func(retry int) {
		o.emit(ProcessingState{
			Step:       StepAnalyzing,
			Message:    fmt.Sprintf("Retrying analysis (Attempt %d/%d)", retry+1, o.policy.MaxRetries+1),
			Progress:   50,
			RetryCount: retry,
		})
	})
	if err != nil {
		final := wrapAnalysisFailure(err, retries)
		o.emit(ProcessingState{Step: StepError, Message: final.Error(), Progress: 50, RetryCount: retries})
		return AnalysisResult{}, final
	}

	o.saveCheckpoint(ctx, req, result)
	o.emit(ProcessingState{Step: StepComplete, Message: "Analysis complete", Progress: 100, RetryCount: retries})
	return result, nil
}

// analyze runs one attempt of the analyze step: the configured Analyzer when
// one is set, otherwise prompt, model call, extraction, and normalization
// in-process.
func (o *Orchestrator) analyze(ctx context.Context, req Request, description string) (AnalysisResult, error) {
	if o.analyzer != nil {
		req.IdeaDetails.Description = description
		return o.analyzer.Analyze(ctx, req)
	}
	system, task := BuildAnalysisPrompt(PromptInput{
		Description: description,
		Platforms:   req.SelectedPlatforms,
		Language:    req.Language,
	})
	raw, err := o.caller.Complete(ctx, system, task)
	if err != nil {
		return AnalysisResult{}, err
	}
	parsed, err := ExtractAnalysis(raw)
	if err != nil {
		return AnalysisResult{}, err
	}
	return NormalizeAnalysis(parsed), nil
}

// resolveDescription returns the text to analyze, transcribing recorded audio
// first when no transcript is present.
func (o *Orchestrator) resolveDescription(ctx context.Context, req *Request) (string, error) {
	idea := &req.IdeaDetails
	if idea.TranscribedText != "" {
		return idea.TranscribedText, nil
	}
	if idea.AudioURL != "" {
		if o.transcriber == nil {
			return "", &TranscriptionError{Err: fmt.Errorf("no transcriber configured")}
		}
		o.emit(ProcessingState{Step: StepTranscribing, Message: "Transcribing your recording...", Progress: 25})
		text, err := o.transcriber.Transcribe(ctx, *req)
		if err != nil {
			var te *TranscriptionError
			if errors.As(err, &te) {
				return "", te
			}
			return "", &TranscriptionError{Err: err}
		}
		idea.TranscribedText = text
		return text, nil
	}
	return idea.Description, nil
}

func validateDescription(description string) error {
	trimmed := strings.TrimSpace(description)
	if utf8.RuneCountInString(trimmed) < MinDescriptionChars {
		return &ValidationError{
			Reason: fmt.Sprintf("idea description must be at least %d characters", MinDescriptionChars),
		}
	}
	return nil
}

// truncateDescription bounds prompt size. Cuts at a rune boundary.
func truncateDescription(description string) string {
	if utf8.RuneCountInString(description) <= MaxDescriptionChars {
		return description
	}
	runes := []rune(description)
	return string(runes[:MaxDescriptionChars])
}

// wrapAnalysisFailure folds the last attempt error into the terminal error
// type, lifting structured detail out of upstream error bodies.
func wrapAnalysisFailure(err error, retries int) error {
	var val *ValidationError
	var cfg *ConfigError
	if errors.As(err, &val) || errors.As(err, &cfg) {
		return err
	}
	details := ""
	var up *UpstreamError
	if errors.As(err, &up) {
		details = up.Details
	}
	return &AnalysisError{Cause: err, Retries: retries, Details: details}
}

func (o *Orchestrator) loadCheckpoint(ctx context.Context, key string) (AnalysisResult, bool) {
	if o.store == nil || key == "" {
		return AnalysisResult{}, false
	}
	payload, found, err := o.store.Get(ctx, key)
	if err != nil {
		o.logger.Printf("session store read failed for %q: %v", key, err)
		return AnalysisResult{}, false
	}
	if !found {
		return AnalysisResult{}, false
	}
	var cp Checkpoint
	if err := json.Unmarshal(payload, &cp); err != nil {
		o.logger.Printf("discarding unreadable checkpoint for %q: %v", key, err)
		return AnalysisResult{}, false
	}
	if err := ValidateResult(cp.Result); err != nil {
		o.logger.Printf("discarding invalid checkpoint for %q: %v", key, err)
		return AnalysisResult{}, false
	}
	return cp.Result, true
}

// saveCheckpoint is best-effort: a storage failure is logged, never surfaced,
// because the analysis itself succeeded.
func (o *Orchestrator) saveCheckpoint(ctx context.Context, req Request, result AnalysisResult) {
	if o.store == nil || req.SessionKey == "" {
		return
	}
	cp := Checkpoint{Request: req, Result: result, SavedAt: time.Now().UTC()}
	payload, err := json.Marshal(cp)
	if err != nil {
		o.logger.Printf("checkpoint marshal failed for %q: %v", req.SessionKey, err)
		return
	}
	if err := o.store.Set(ctx, req.SessionKey, payload); err != nil {
		o.logger.Printf("checkpoint write failed for %q: %v", req.SessionKey, err)
	}
}
