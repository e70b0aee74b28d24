package estimate

import (
	"context"
	"errors"
	"time"
)

// Outcome tags one attempt of a retryable operation.
type Outcome int

const (
	OutcomeOK Outcome = iota
	OutcomeRetryable
	OutcomeFatal
)

// ClassifyFailure maps an attempt error onto the retry taxonomy.
// Configuration and transcription errors are fatal; transport failures,
// malformed responses, and upstream error bodies share one retry budget.
func ClassifyFailure(err error) Outcome {
	if err == nil {
		return OutcomeOK
	}
	var cfg *ConfigError
	if errors.As(err, &cfg) {
		return OutcomeFatal
	}
	var tr *TranscriptionError
	if errors.As(err, &tr) {
		return OutcomeFatal
	}
	var val *ValidationError
	if errors.As(err, &val) {
		return OutcomeFatal
	}
	var transport *TransportError
	if errors.As(err, &transport) {
		// 4xx responses other than rate limiting will not improve on retry.
		if classifyTransportError(transport.Err) == failureClient {
			return OutcomeFatal
		}
		return OutcomeRetryable
	}
	var malformed *MalformedResponseError
	var upstream *UpstreamError
	if errors.As(err, &malformed) || errors.As(err, &upstream) {
		return OutcomeRetryable
	}
	// Unknown errors are treated as transient: the analyze step is retried
	// whole regardless of which sub-step failed.
	return OutcomeRetryable
}

// RetryPolicy bounds retries of the analyze step. MaxRetries counts retries
// after the first attempt; Backoff yields the delay before retry n (1-based).
type RetryPolicy struct {
	MaxRetries int
	Backoff    func(retry int) time.Duration
}

// DefaultRetryPolicy mirrors the production configuration: up to 3 retries
// with a fixed 2 second delay between attempts.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxRetries: 3,
		Backoff:    func(int) time.Duration { return 2 * time.Second },
	}
}

// Run executes fn until it succeeds, fails fatally, or the retry budget is
// exhausted. Attempts are strictly sequential: a later attempt always
// observes the retry count incremented by the prior one, reported through
// onRetry before each re-attempt. Returns the number of retries performed
// and the last error.
func (p RetryPolicy) Run(ctx context.Context, fn func(ctx context.Context) error, onRetry func(retry int)) (int, error) {
	retries := 0
	for {
		err := fn(ctx)
		switch ClassifyFailure(err) {
		case OutcomeOK:
			return retries, nil
		case OutcomeFatal:
			return retries, err
		}
		if retries >= p.MaxRetries {
			return retries, err
		}
		retries++
		if onRetry != nil {
			onRetry(retries)
		}
		delay := 2 * time.Second
		if p.Backoff != nil {
			delay = p.Backoff(retries)
		}
		select {
		case <-ctx.Done():
			return retries, ctx.Err()
		case <-time.After(delay):
		}
	}
}
