package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/gomcpgo/logo_image_ai/pkg/types"
)

const (
	// DefaultBaseURL is the public Replicate API
	DefaultBaseURL = "https://api.replicate.com/v1"

	maxLoggedBody = 1000
)

// ReplicateClient handles communication with the Replicate API
type ReplicateClient struct {
	apiToken     string
	baseURL      string
	pollInterval time.Duration
	httpClient   *http.Client
	log          zerolog.Logger
}

// NewReplicateClient creates a new Replicate API client. An empty baseURL
// selects DefaultBaseURL.
func NewReplicateClient(apiToken, baseURL string, pollInterval time.Duration, log zerolog.Logger) *ReplicateClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if pollInterval <= 0 {
		pollInterval = 2 * time.Second
	}
	return &ReplicateClient{
		apiToken:     apiToken,
		baseURL:      strings.TrimRight(baseURL, "/"),
		pollInterval: pollInterval,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		log: log.With().Str("component", "replicate").Logger(),
	}
}

// CreatePrediction creates a new prediction on Replicate
func (c *ReplicateClient) CreatePrediction(ctx context.Context, model string, input map[string]interface{}) (*types.Prediction, error) {
	var url string
	req := types.PredictionRequest{Input: input}

	// "owner/name:hash" pins a version; anything else runs the model's latest
	if strings.Contains(model, ":") {
		req.Version = model
		url = fmt.Sprintf("%s/predictions", c.baseURL)
	} else {
		url = fmt.Sprintf("%s/models/%s/predictions", c.baseURL, model)
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	c.log.Debug().
		Str("url", url).
		Str("model", model).
		Str("body", truncate(body)).
		Msg("Creating prediction")

	respBody, status, err := c.do(ctx, http.MethodPost, url, body)
	if err != nil {
		return nil, err
	}

	c.log.Debug().Int("status", status).Str("body", truncate(respBody)).Msg("Create prediction response")

	if status == http.StatusPaymentRequired {
		var errorResp map[string]interface{}
		if err := json.Unmarshal(respBody, &errorResp); err == nil {
			if detail, ok := errorResp["detail"].(string); ok {
				return nil, fmt.Errorf("billing issue: %s", detail)
			}
		}
		return nil, fmt.Errorf("billing issue (status 402): %s", string(respBody))
	}

	if status != http.StatusCreated && status != http.StatusOK {
		return nil, fmt.Errorf("API error (status %d): %s", status, string(respBody))
	}

	var prediction types.Prediction
	if err := json.Unmarshal(respBody, &prediction); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return &prediction, nil
}

// GetPrediction gets the status of a prediction
func (c *ReplicateClient) GetPrediction(ctx context.Context, predictionID string) (*types.Prediction, error) {
	respBody, status, err := c.do(ctx, http.MethodGet, fmt.Sprintf("%s/predictions/%s", c.baseURL, predictionID), nil)
	if err != nil {
		return nil, err
	}

	if status != http.StatusOK {
		return nil, fmt.Errorf("API error (status %d): %s", status, string(respBody))
	}

	var prediction types.Prediction
	if err := json.Unmarshal(respBody, &prediction); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return &prediction, nil
}

// WaitForCompletion waits for a prediction to complete or timeout
func (c *ReplicateClient) WaitForCompletion(ctx context.Context, predictionID string, timeout time.Duration) (*types.Prediction, error) {
	deadline := time.Now().Add(timeout)
	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	pollCount := 0

	for {
		select {
		case <-ctx.Done():
			c.log.Debug().Str("prediction_id", predictionID).Msg("Wait cancelled by context")
			return nil, ctx.Err()
		case <-ticker.C:
			pollCount++
			if time.Now().After(deadline) {
				c.log.Debug().Int("polls", pollCount).Msg("Wait timed out")
				prediction, _ := c.GetPrediction(ctx, predictionID)
				return prediction, fmt.Errorf("operation timed out after %v: %w", timeout, context.DeadlineExceeded)
			}

			prediction, err := c.GetPrediction(ctx, predictionID)
			if err != nil {
				return nil, err
			}

			c.log.Debug().
				Str("prediction_id", predictionID).
				Int("poll", pollCount).
				Str("status", prediction.Status).
				Msg("Polled prediction")

			switch prediction.Status {
			case types.StatusSucceeded:
				return prediction, nil
			case types.StatusFailed:
				return prediction, errors.New(PredictionErrorMessage(prediction))
			case types.StatusCanceled:
				return prediction, errors.New("prediction was canceled")
			}
		}
	}
}

// CancelPrediction cancels a running prediction
func (c *ReplicateClient) CancelPrediction(ctx context.Context, predictionID string) error {
	body, status, err := c.do(ctx, http.MethodPost, fmt.Sprintf("%s/predictions/%s/cancel", c.baseURL, predictionID), nil)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return fmt.Errorf("failed to cancel prediction (status %d): %s", status, string(body))
	}
	return nil
}

// PredictionErrorMessage extracts a readable message from a failed prediction.
// Replicate reports errors either as a string or as an object with "message".
func PredictionErrorMessage(p *types.Prediction) string {
	msg := "prediction failed"
	switch e := p.Error.(type) {
	case string:
		if e != "" {
			msg = e
		}
	case map[string]interface{}:
		if m, ok := e["message"]; ok {
			msg = fmt.Sprintf("%v", m)
		}
	}
	return msg
}

func (c *ReplicateClient) do(ctx context.Context, method, url string, body []byte) ([]byte, int, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.apiToken))
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("failed to read response: %w", err)
	}
	return respBody, resp.StatusCode, nil
}

// truncate keeps large bodies such as base64 images out of the logs
func truncate(body []byte) string {
	if len(body) > maxLoggedBody {
		return fmt.Sprintf("[%d bytes - too large to log]", len(body))
	}
	return string(body)
}
