// Package relay is the entry point the UI calls. It fixes the rendering
// parameters for logos and reduces the gateway's answer to an image URL.
package relay

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
	"github.com/gomcpgo/logo_image_ai/pkg/types"
)

const (
	// LogoAspectRatio is sent with every logo request
	LogoAspectRatio = "1:1"

	// LogoNegativePrompt steers providers away from photographic or busy output
	LogoNegativePrompt = "blurry, low quality, distorted, text, watermark, realistic photo, cluttered, busy, too many details"

	fallbackMessage = "Failed to generate image"
)

// ImageGenerator is the validation gateway as seen by the relay
type ImageGenerator interface {
	GenerateImage(ctx context.Context, req types.GenerationRequest) (*types.GenerationResult, error)
}

// Relay forwards logo prompts to the gateway
type Relay struct {
	generator ImageGenerator
	timeout   time.Duration
	log       zerolog.Logger
}

// New creates a relay. timeout bounds each gateway call.
func New(generator ImageGenerator, timeout time.Duration, log zerolog.Logger) *Relay {
	return &Relay{
		generator: generator,
		timeout:   timeout,
		log:       log.With().Str("component", "relay").Logger(),
	}
}

// GenerateLogo requests a square logo for prompt. The prompt is not checked
// here; every failure is reported as an upstream failure.
func (r *Relay) GenerateLogo(ctx context.Context, prompt string) (result *types.LogoResult, err error) {
	start := time.Now()
	ctx, span := observability.StartStageSpan(ctx, "relay.GenerateLogo",
		attribute.Int("request.prompt_length", utf8.RuneCountInString(prompt)),
	)
	defer func() {
		metrics.ObserveStage(metrics.StageRelay, start, err)
		observability.RecordError(span, err)
		span.End()
	}()

	callCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	res, err := r.generator.GenerateImage(callCtx, types.GenerationRequest{
		Prompt:         prompt,
		AspectRatio:    LogoAspectRatio,
		NegativePrompt: LogoNegativePrompt,
	})
	if err == nil && res == nil {
		err = errors.New(fallbackMessage)
	}
	if err != nil {
		msg := gatewayMessage(err)
		if errors.Is(callCtx.Err(), context.DeadlineExceeded) && !hasGenerationError(err) {
			msg = fmt.Sprintf("request timed out after %v", r.timeout)
		}
		r.log.Error().Err(err).Msg("Logo generation failed")
		return nil, types.NewUpstreamFailure(msg, err)
	}

	r.log.Debug().Dur("latency", time.Since(start)).Msg("Logo generated")
	return &types.LogoResult{ImageURL: res.ImageURL}, nil
}

func gatewayMessage(err error) string {
	msg := err.Error()
	if genErr, ok := types.AsGenerationError(err); ok {
		msg = genErr.Message
	}
	if msg == "" {
		return fallbackMessage
	}
	return msg
}

func hasGenerationError(err error) bool {
	_, ok := types.AsGenerationError(err)
	return ok
}
