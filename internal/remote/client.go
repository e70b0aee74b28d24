// Package remote calls a deployed analysis endpoint instead of running the
// model in-process. Used when estimation is split across services: the
// orchestrator retries this client on the same budget as local model calls.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/aviniti/estimate-engine/internal/estimate"
)

// Client posts analysis requests to an estimate server. Implements
// estimate.Analyzer.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			// The server drives its own retry loop, so one remote attempt
			// can span several model calls plus backoff.
			Timeout: 3 * time.Minute,
		},
	}
}

type analyzeReply struct {
	SessionKey string                  `json:"sessionKey"`
	Result     estimate.AnalysisResult `json:"result"`
}

type errorBody struct {
	Error     string `json:"error"`
	Details   string `json:"details"`
	ErrorType string `json:"errorType"`
}

// Analyze submits the request and decodes the canonical result. A non-2xx
// status with a parseable error body becomes an *estimate.UpstreamError so
// the endpoint's details survive into the terminal analysis error; everything
// else is a transport failure.
func (c *Client) Analyze(ctx context.Context, req estimate.Request) (estimate.AnalysisResult, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return estimate.AnalysisResult{}, &estimate.ValidationError{Reason: "unencodable analysis request"}
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/analyze", bytes.NewReader(payload))
	if err != nil {
		return estimate.AnalysisResult{}, &estimate.TransportError{Err: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return estimate.AnalysisResult{}, &estimate.TransportError{Err: err}
	}
	defer resp.Body.Close()
	blob, err := io.ReadAll(resp.Body)
	if err != nil {
		return estimate.AnalysisResult{}, &estimate.TransportError{Err: err}
	}

	if resp.StatusCode >= 300 {
		var body errorBody
		if json.Unmarshal(blob, &body) == nil && body.Error != "" {
			return estimate.AnalysisResult{}, &estimate.UpstreamError{
				Status:    resp.StatusCode,
				Message:   body.Error,
				Details:   body.Details,
				ErrorType: body.ErrorType,
			}
		}
		return estimate.AnalysisResult{}, &estimate.TransportError{
			Err: fmt.Errorf("analysis endpoint status code: %d", resp.StatusCode),
		}
	}

	var reply analyzeReply
	if err := json.Unmarshal(blob, &reply); err != nil {
		return estimate.AnalysisResult{}, &estimate.MalformedResponseError{
			Reason: "undecodable analysis response: " + err.Error(),
		}
	}
	return reply.Result, nil
}

var _ estimate.Analyzer = (*Client)(nil)
