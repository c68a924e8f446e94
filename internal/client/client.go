package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"curriculum-backend/internal/curriculum"
	"curriculum-backend/internal/shared/telemetry"
)

const (
	recommendPath   = "/recommend"
	defaultTimeout  = 10 * time.Second
	maxResponseSize = 1 << 20
)

// Client calls a remote POST /recommend endpoint. It makes exactly one attempt per call.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New builds a client for baseURL (e.g. "http://127.0.0.1:5000"). A zero timeout uses 10s.
func New(baseURL string, timeout time.Duration) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("endpoint is required")
	}
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		return nil, fmt.Errorf("endpoint %q must be an http(s) URL", baseURL)
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

type recommendRequest struct {
	Semester string `json:"semester"`
}

type recommendResponse struct {
	Semester json.RawMessage              `json:"semester"`
	Error    *string                      `json:"error"`
	Results  *[]curriculum.Recommendation `json:"results"`
}

// Recommend sends the semester exactly as entered and classifies the reply.
// Validation is left to the server.
func (c *Client) Recommend(ctx context.Context, semester string) Outcome {
	body, err := json.Marshal(recommendRequest{Semester: semester})
	if err != nil {
		return connectionFailure(err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+recommendPath, bytes.NewReader(body))
	if err != nil {
		return connectionFailure(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return connectionFailure(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return connectionFailure(err)
	}
	return decodeOutcome(semester, raw)
}

func decodeOutcome(semester string, raw []byte) Outcome {
	var payload recommendResponse
	if err := json.Unmarshal(raw, &payload); err != nil {
		return connectionFailure(fmt.Errorf("decode response: %w", err))
	}
	if payload.Error != nil && strings.TrimSpace(*payload.Error) != "" {
		return Failure{Kind: FailureServer, Message: *payload.Error}
	}
	if payload.Results == nil {
		return connectionFailure(fmt.Errorf("response has neither error nor results"))
	}
	return Success{Semester: echoedSemester(payload.Semester, semester), Recommendations: *payload.Results}
}

// echoedSemester reads the semester the server echoed, number or string,
// falling back to the value that was sent.
func echoedSemester(raw json.RawMessage, sent string) int {
	if len(raw) > 0 {
		var v any
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.UseNumber()
		if err := dec.Decode(&v); err == nil {
			if n, err := curriculum.ParseSemester(v); err == nil {
				return n
			}
		}
	}
	n, _ := curriculum.ParseSemester(sent)
	return n
}

func connectionFailure(err error) Failure {
	telemetry.Warn("client.connection_failed", map[string]any{"error": err})
	return Failure{Kind: FailureConnection, Message: ConnectionErrorMessage, Cause: err}
}
