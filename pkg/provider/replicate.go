package provider

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/gomcpgo/logo_image_ai/pkg/client"
	"github.com/gomcpgo/logo_image_ai/pkg/types"
)

const cancelTimeout = 5 * time.Second

// ReplicateAdapter generates images through Replicate predictions
type ReplicateAdapter struct {
	client  client.Client
	modelID string
	timeout time.Duration
	log     zerolog.Logger
}

// NewReplicateAdapter creates an adapter for the given model alias or ID.
// timeout bounds how long a single prediction may run.
func NewReplicateAdapter(c client.Client, model string, timeout time.Duration, log zerolog.Logger) *ReplicateAdapter {
	return &ReplicateAdapter{
		client:  c,
		modelID: GetModelFromAlias(model),
		timeout: timeout,
		log:     log.With().Str("component", "replicate_adapter").Logger(),
	}
}

func (a *ReplicateAdapter) Name() string { return "replicate" }

func (a *ReplicateAdapter) Generate(ctx context.Context, req types.GenerationRequest) (*types.ProviderResult, error) {
	if err := ValidateRequest(req); err != nil {
		return nil, err
	}
	req = req.WithDefaults()

	input := buildInputParams(req.Prompt, req.AspectRatio, req.NegativePrompt, a.modelID)

	a.log.Debug().Str("model", a.modelID).Interface("input", input).Msg("Creating prediction")

	prediction, err := a.client.CreatePrediction(ctx, a.modelID, input)
	if err != nil {
		return nil, types.NewUpstreamFailure(fmt.Sprintf("failed to create prediction: %v", err), err)
	}

	result, err := a.client.WaitForCompletion(ctx, prediction.ID, a.timeout)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			a.cancel(prediction.ID)
		}
		return nil, types.NewUpstreamFailure(err.Error(), err)
	}

	url := extractOutputURL(result.Output)
	if url == "" {
		return nil, types.NewUpstreamFailure("No output URL in result", nil)
	}

	return &types.ProviderResult{ImageURL: url, Success: true}, nil
}

// cancel stops an abandoned prediction so it does not keep billing
func (a *ReplicateAdapter) cancel(predictionID string) {
	ctx, cancel := context.WithTimeout(context.Background(), cancelTimeout)
	defer cancel()

	if err := a.client.CancelPrediction(ctx, predictionID); err != nil {
		a.log.Warn().Err(err).Str("prediction_id", predictionID).Msg("Failed to cancel prediction")
	}
}
