// Package provider is the boundary to the image synthesis backend. Every
// implementation accepts the same request shape and returns the same
// {imageUrl, success} envelope.
package provider

import (
	"context"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"

	"github.com/gomcpgo/logo_image_ai/pkg/metrics"
	"github.com/gomcpgo/logo_image_ai/pkg/observability"
	"github.com/gomcpgo/logo_image_ai/pkg/types"
)

// MsgPromptRequired is returned when a request reaches a provider without a prompt
const MsgPromptRequired = "Prompt is required"

// Adapter generates one image for a request
type Adapter interface {
	Name() string
	Generate(ctx context.Context, req types.GenerationRequest) (*types.ProviderResult, error)
}

// ValidateRequest applies the provider-level check shared by every adapter
func ValidateRequest(req types.GenerationRequest) error {
	if req.Prompt == "" {
		return types.NewInvalidInput(MsgPromptRequired)
	}
	return nil
}

type instrumented struct {
	next Adapter
	log  zerolog.Logger
}

// Instrument wraps an adapter with tracing, metrics and logging
func Instrument(next Adapter, log zerolog.Logger) Adapter {
	return &instrumented{
		next: next,
		log:  log.With().Str("component", "provider").Str("provider", next.Name()).Logger(),
	}
}

func (a *instrumented) Name() string {
	return a.next.Name()
}

func (a *instrumented) Generate(ctx context.Context, req types.GenerationRequest) (*types.ProviderResult, error) {
	start := time.Now()
	ctx, span := observability.StartStageSpan(ctx, "provider.Generate",
		attribute.String("provider.name", a.next.Name()),
		attribute.String("request.aspect_ratio", req.AspectRatio),
		attribute.Int("request.prompt_length", utf8.RuneCountInString(req.Prompt)),
	)
	defer span.End()

	result, err := a.next.Generate(ctx, req)
	metrics.ObserveStage(metrics.StageProvider, start, err)
	observability.RecordError(span, err)

	switch {
	case err == nil:
		a.log.Debug().Dur("latency", time.Since(start)).Bool("has_image", result != nil && result.ImageURL != "").Msg("Image generated")
	case types.IsInvalidInput(err):
		a.log.Warn().Err(err).Msg("Rejected provider request")
	default:
		a.log.Error().Err(err).Dur("latency", time.Since(start)).Msg("Image generation failed")
	}
	return result, err
}
