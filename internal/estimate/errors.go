package estimate

import (
	"fmt"
	"strings"
)

// ConfigError reports a missing or invalid configuration value, such as an
// absent API credential. It is fatal and never retried.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string { return "configuration error: " + e.Reason }

// TransportError wraps a network-level failure talking to the model. The
// orchestrator retries these.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string { return "model transport failure: " + e.Err.Error() }
func (e *TransportError) Unwrap() error { return e.Err }

// MalformedResponseError reports model output that could not be parsed into
// the required shape. Validation is all-or-nothing: a response missing any
// required key is rejected whole. Retried on the same budget as transport
// errors.
type MalformedResponseError struct {
	Reason string
	Raw    string
}

func (e *MalformedResponseError) Error() string {
	return "malformed model response: " + e.Reason
}

// TranscriptionError reports a failed audio transcription. Fatal for the
// attempt, never retried, and surfaced with a message distinct from analysis
// failures.
type TranscriptionError struct {
	Err error
}

func (e *TranscriptionError) Error() string {
	return "failed to process audio recording: " + e.Err.Error()
}
func (e *TranscriptionError) Unwrap() error { return e.Err }

// ValidationError rejects a request before any model call is made. Fatal and
// never retried.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return "invalid request: " + e.Reason }

// AnalysisError is the terminal failure after the retry budget is exhausted.
// Cause is the last error seen; Retries is the number of retries actually
// attempted. Details carries any structured fields from an upstream error
// body so diagnostics survive the error translation.
type AnalysisError struct {
	Cause   error
	Retries int
	Details string
}

func (e *AnalysisError) Error() string {
	parts := []string{fmt.Sprintf("analysis failed after %d retries: %v", e.Retries, e.Cause)}
	if strings.TrimSpace(e.Details) != "" {
		parts = append(parts, e.Details)
	}
	return strings.Join(parts, "\n")
}

func (e *AnalysisError) Unwrap() error { return e.Cause }

// UpstreamError is a non-2xx response from a deployed analysis endpoint with
// a parseable error body. Folded into AnalysisError by the orchestrator like
// any other transient failure; callers only see the embedded fields.
type UpstreamError struct {
	Status    int
	Message   string
	Details   string
	ErrorType string
}

func (e *UpstreamError) Error() string {
	parts := []string{e.Message, e.Details, fmt.Sprintf("Status: %d", e.Status)}
	if e.ErrorType != "" {
		parts = append(parts, "Error Type: "+e.ErrorType)
	}
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, "\n")
}
