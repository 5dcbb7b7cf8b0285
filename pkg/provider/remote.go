package provider

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

	"github.com/gomcpgo/logo_image_ai/pkg/types"
)

// RemotePath is the provider route on a remote deployment
const RemotePath = "/api/ai/generate-image"

// RemoteAdapter forwards to another service that exposes the provider route
type RemoteAdapter struct {
	baseURL    string
	httpClient *http.Client
}

// NewRemoteAdapter creates an adapter for the service at baseURL
func NewRemoteAdapter(baseURL string, timeout time.Duration) *RemoteAdapter {
	return &RemoteAdapter{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (a *RemoteAdapter) Name() string { return "remote" }

func (a *RemoteAdapter) Generate(ctx context.Context, req types.GenerationRequest) (*types.ProviderResult, error) {
	if err := ValidateRequest(req); err != nil {
		return nil, err
	}

	body, err := json.Marshal(req.WithDefaults())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+RemotePath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := a.httpClient.Do(httpReq)
	if err != nil {
		return nil, types.NewUpstreamFailure(fmt.Sprintf("failed to send request: %v", err), err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, types.NewUpstreamFailure(fmt.Sprintf("failed to read response: %v", err), err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, remoteError(resp.StatusCode, respBody)
	}

	var result types.ProviderResult
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, types.NewUpstreamFailure(fmt.Sprintf("failed to unmarshal response: %v", err), err)
	}
	return &result, nil
}

// remoteError turns a non-2xx reply into a GenerationError carrying the
// remote {error} message, or an empty message when the body has none.
func remoteError(status int, body []byte) error {
	var envelope types.ErrorResponse
	_ = json.Unmarshal(body, &envelope)

	kind := types.KindUpstreamFailure
	if status >= 400 && status < 500 {
		kind = types.KindInvalidInput
	}
	return &types.GenerationError{
		Kind:       kind,
		Message:    envelope.Error,
		HTTPStatus: status,
		Cause:      errors.New(http.StatusText(status)),
	}
}
