// Package transcribe talks to the speech-to-text service that turns a
// recorded app idea into analyzable text.
package transcribe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/aviniti/estimate-engine/internal/estimate"
)

// Client posts recordings to the transcription endpoint. Implements
// estimate.Transcriber.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// Transcribe fetches the recording referenced by the request and submits it
// for transcription. Any failure is wrapped as a transcription error so the
// orchestrator treats it as terminal rather than retrying analysis on a
// missing idea.
func (c *Client) Transcribe(ctx context.Context, req estimate.Request) (string, error) {
	audioURL := req.IdeaDetails.AudioURL
	if audioURL == "" {
		return "", &estimate.TranscriptionError{Err: fmt.Errorf("no audio recording attached")}
	}
	audio, err := c.fetchAudio(ctx, audioURL)
	if err != nil {
		return "", &estimate.TranscriptionError{Err: err}
	}
	text, err := c.submit(ctx, audio, req)
	if err != nil {
		return "", &estimate.TranscriptionError{Err: err}
	}
	return text, nil
}

func (c *Client) fetchAudio(ctx context.Context, audioURL string) ([]byte, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, audioURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("fetch recording: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("fetch recording: status=%d", resp.StatusCode)
	}
	blob, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read recording: %w", err)
	}
	if len(blob) == 0 {
		return nil, fmt.Errorf("recording at %s is empty", audioURL)
	}
	return blob, nil
}

// submit sends the recording plus request context as a multipart form. The
// service uses the user and questionnaire fields to bias decoding toward
// domain vocabulary.
func (c *Client) submit(ctx context.Context, audio []byte, req estimate.Request) (string, error) {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)

	part, err := w.CreateFormFile("audio", "recording.webm")
	if err != nil {
		return "", err
	}
	if _, err := part.Write(audio); err != nil {
		return "", err
	}
	if err := writeJSONField(w, "userDetails", req.UserDetails); err != nil {
		return "", err
	}
	if err := writeJSONField(w, "ideaDetails", req.IdeaDetails); err != nil {
		return "", err
	}
	if err := writeJSONField(w, "questionnaireAnswers", req.QuestionnaireAnswers); err != nil {
		return "", err
	}
	if err := w.Close(); err != nil {
		return "", err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/transcribe", &body)
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("transcription request: %w", err)
	}
	defer resp.Body.Close()
	blob, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("transcription failed status=%d body=%s", resp.StatusCode, string(blob))
	}

	var out struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(blob, &out); err != nil {
		return "", fmt.Errorf("decode transcription response: %w", err)
	}
	if strings.TrimSpace(out.Text) == "" {
		return "", fmt.Errorf("transcription returned no text")
	}
	return out.Text, nil
}

func writeJSONField(w *multipart.Writer, name string, v any) error {
	blob, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return w.WriteField(name, string(blob))
}

var _ estimate.Transcriber = (*Client)(nil)
