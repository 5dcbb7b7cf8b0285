package client

import (
	"context"
	"time"

	"github.com/gomcpgo/logo_image_ai/pkg/types"
)

// Client defines the interface for interacting with the Replicate API
type Client interface {
	// CreatePrediction starts a prediction for the given model
	CreatePrediction(ctx context.Context, model string, input map[string]interface{}) (*types.Prediction, error)

	GetPrediction(ctx context.Context, predictionID string) (*types.Prediction, error)

	// WaitForCompletion polls until the prediction finishes, ctx ends, or timeout elapses
	WaitForCompletion(ctx context.Context, predictionID string, timeout time.Duration) (*types.Prediction, error)

	CancelPrediction(ctx context.Context, predictionID string) error
}

var (
	_ Client = (*ReplicateClient)(nil)
	_ Client = (*MockClient)(nil)
)
