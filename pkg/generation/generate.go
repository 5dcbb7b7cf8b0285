// Package generation implements the validation gateway: the only stage that
// checks prompt structure before a request reaches a provider.
package generation

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"

	"github.com/gomcpgo/logo_image_ai/pkg/metrics"
	"github.com/gomcpgo/logo_image_ai/pkg/observability"
	"github.com/gomcpgo/logo_image_ai/pkg/provider"
	"github.com/gomcpgo/logo_image_ai/pkg/types"
)

const (
	failurePrefix       = "Image generation failed: "
	unknownErrorMessage = "Unknown error occurred"
)

var errEmptyResult = errors.New("provider returned no result")

// Gateway validates requests and forwards them to a provider adapter
type Gateway struct {
	validator Validator
	adapter   provider.Adapter
	timeout   time.Duration
	log       zerolog.Logger
	now       func() time.Time
}

// NewGateway creates a gateway. timeout bounds each provider call.
func NewGateway(validator Validator, adapter provider.Adapter, timeout time.Duration, log zerolog.Logger) *Gateway {
	return &Gateway{
		validator: validator,
		adapter:   adapter,
		timeout:   timeout,
		log:       log.With().Str("component", "gateway").Logger(),
		now:       time.Now,
	}
}

// GenerateImage validates req, calls the provider and wraps the result
func (g *Gateway) GenerateImage(ctx context.Context, req types.GenerationRequest) (result *types.GenerationResult, err error) {
	start := time.Now()
	ctx, span := observability.StartStageSpan(ctx, "gateway.GenerateImage",
		attribute.Int("request.prompt_length", utf8.RuneCountInString(req.Prompt)),
	)
	defer func() {
		metrics.ObserveStage(metrics.StageGateway, start, err)
		observability.RecordError(span, err)
		span.End()
	}()

	req = req.WithDefaults()

	if err := g.validator.Validate(req); err != nil {
		g.log.Warn().Err(err).Int("prompt_length", utf8.RuneCountInString(req.Prompt)).Msg("Rejected generation request")
		return nil, err
	}

	callCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	res, err := g.adapter.Generate(callCtx, req)
	if err == nil && res == nil {
		err = errEmptyResult
	}
	if err != nil {
		underlying := upstreamMessage(err)
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(callCtx.Err(), context.DeadlineExceeded) {
			underlying = fmt.Sprintf("request timed out after %v", g.timeout)
		}
		g.log.Error().Err(err).Str("provider", g.adapter.Name()).Msg("Provider call failed")
		return nil, types.NewUpstreamFailure(failurePrefix+underlying, err)
	}

	g.log.Debug().Str("provider", g.adapter.Name()).Dur("latency", time.Since(start)).Msg("Image generated")

	return &types.GenerationResult{
		Success:     true,
		ImageURL:    res.ImageURL,
		GeneratedAt: g.now().UTC(),
	}, nil
}

// upstreamMessage picks the readable message a provider failure carries
func upstreamMessage(err error) string {
	msg := err.Error()
	if genErr, ok := types.AsGenerationError(err); ok {
		msg = genErr.Message
	}
	if msg == "" {
		return unknownErrorMessage
	}
	return msg
}
