// Package generation sends extracted résumé text and a job description to
// the remote cover letter service.
package generation

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"coverletter/internal/async"
	"coverletter/internal/shared/metrics"
	"coverletter/internal/shared/telemetry"
)

// Path is the endpoint path appended to the configured base URL.
const Path = "/generate-cover-letter"

const maxResponseBytes = 4 << 20

// Client generates a cover letter from résumé text and a job description.
type Client interface {
	Generate(ctx context.Context, cvText, jobDescription string) (string, error)
}

// Request is the wire body of a generation call.
type Request struct {
	CVText         string `json:"cv_text"`
	JobDescription string `json:"job_description"`
}

// HTTPClient implements Client with a single JSON POST per call. It never retries.
type HTTPClient struct {
	endpoint   string
	httpClient *http.Client
}

// NewHTTPClient constructs a client for baseURL. A zero timeout leaves the
// request bounded only by ctx.
func NewHTTPClient(baseURL string, timeout time.Duration) (*HTTPClient, error) {
	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	u, err := url.Parse(base)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid generation base url %q", baseURL)
	}
	return &HTTPClient{
		endpoint:   base + Path,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// Endpoint returns the full URL requests are sent to.
func (c *HTTPClient) Endpoint() string {
	return c.endpoint
}

// Generate posts the request and returns the cover_letter field of the response.
func (c *HTTPClient) Generate(ctx context.Context, cvText, jobDescription string) (string, error) {
	start := time.Now()
	metrics.IncGenerationStarted()

	letter, err := c.generateOnce(ctx, Request{CVText: cvText, JobDescription: jobDescription})
	metrics.ObserveGenerationDurationMs(metrics.SinceMillis(start))

	fields := map[string]any{
		"endpoint":    c.endpoint,
		"cv_chars":    len(cvText),
		"jd_chars":    len(jobDescription),
		"duration_ms": metrics.SinceMillis(start),
	}
	if err != nil {
		metrics.IncGenerationFailed()
		fields["err"] = err
		telemetry.Error("generation.failed", fields)
		return "", err
	}
	metrics.IncGenerationCompleted()
	fields["letter_chars"] = len(letter)
	telemetry.Info("generation.complete", fields)
	return letter, nil
}

func (c *HTTPClient) generateOnce(ctx context.Context, reqBody Request) (string, error) {
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || strings.Contains(err.Error(), "Client.Timeout") {
			return "", &TransportError{Err: fmt.Errorf("generation request timeout: %w", err)}
		}
		return "", &TransportError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", &TransportError{Err: fmt.Errorf("read response: %w", err)}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &TransportError{Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}
	return decodeResponse(body)
}

// GenerateAsync runs client.Generate on a new goroutine.
func GenerateAsync(ctx context.Context, client Client, cvText, jobDescription string) *async.Future[string] {
	return async.Go(func() (string, error) {
		return client.Generate(ctx, cvText, jobDescription)
	})
}

// ErrNotConfigured is returned by the placeholder client.
var ErrNotConfigured = errors.New("generation endpoint not configured")

// PlaceholderClient is used when no endpoint is configured.
type PlaceholderClient struct{}

// Generate returns ErrNotConfigured.
func (PlaceholderClient) Generate(ctx context.Context, cvText, jobDescription string) (string, error) {
	_ = ctx
	_ = cvText
	_ = jobDescription
	return "", ErrNotConfigured
}

var _ Client = (*HTTPClient)(nil)
