package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/gomcpgo/logo_image_ai/pkg/metrics"
	"github.com/gomcpgo/logo_image_ai/pkg/prompt"
	"github.com/gomcpgo/logo_image_ai/pkg/provider"
	"github.com/gomcpgo/logo_image_ai/pkg/relay"
	"github.com/gomcpgo/logo_image_ai/pkg/responses"
	"github.com/gomcpgo/logo_image_ai/pkg/types"
)

// msgProviderFailed stands in for a provider failure that carries no message
const msgProviderFailed = "Failed to generate image"

// LogoGenerator is the relay entry point
type LogoGenerator interface {
	GenerateLogo(ctx context.Context, prompt string) (*types.LogoResult, error)
}

// LogoHandler exposes each chain stage over HTTP
type LogoHandler struct {
	relay    LogoGenerator
	gateway  relay.ImageGenerator
	provider provider.Adapter
	log      zerolog.Logger
}

// NewLogoHandler creates a handler for the three stages
func NewLogoHandler(r LogoGenerator, gateway relay.ImageGenerator, p provider.Adapter, log zerolog.Logger) *LogoHandler {
	return &LogoHandler{
		relay:    r,
		gateway:  gateway,
		provider: p,
		log:      log.With().Str("component", "handler").Logger(),
	}
}

// ComposeLogoResponse is returned by the compose-and-generate route
type ComposeLogoResponse struct {
	ImageURL string             `json:"imageUrl"`
	Prompt   string             `json:"prompt"`
	Style    prompt.StylePreset `json:"style"`
}

// GenerateLogo handles POST /api/generate-logo. Every failure is a 500.
func (h *LogoHandler) GenerateLogo(c *gin.Context) {
	body, err := decodeObject(c)
	if err != nil {
		h.log.Warn().Err(err).Msg("Unreadable logo request")
		responses.WriteErrorStatus(c, http.StatusInternalServerError, responses.MsgInvalidBody)
		return
	}

	result, err := h.relay.GenerateLogo(c.Request.Context(), stringField(body, "prompt"))
	if err != nil {
		responses.WriteErrorStatus(c, http.StatusInternalServerError, responses.ErrorMessage(err))
		return
	}
	responses.WriteJSON(c, result)
}

// GenerateImage handles POST /api/generate-image
func (h *LogoHandler) GenerateImage(c *gin.Context) {
	body, err := decodeObject(c)
	if err != nil {
		responses.WriteError(c, types.NewInvalidInput(responses.MsgInvalidBody))
		return
	}

	result, err := h.gateway.GenerateImage(c.Request.Context(), generationRequest(body))
	if err != nil {
		responses.WriteError(c, err)
		return
	}
	responses.WriteJSON(c, result)
}

// ProviderGenerate handles POST /api/ai/generate-image
func (h *LogoHandler) ProviderGenerate(c *gin.Context) {
	body, err := decodeObject(c)
	if err != nil {
		responses.WriteError(c, types.NewInvalidInput(responses.MsgInvalidBody))
		return
	}

	result, err := h.provider.Generate(c.Request.Context(), generationRequest(body).WithDefaults())
	if err != nil {
		msg := responses.ErrorMessage(err)
		if msg == "" {
			msg = msgProviderFailed
		}
		responses.WriteErrorStatus(c, types.StatusOf(err), msg)
		return
	}
	responses.WriteJSON(c, result)
}

// ListStyles handles GET /api/styles
func (h *LogoHandler) ListStyles(c *gin.Context) {
	responses.WriteJSON(c, prompt.Styles())
}

// ComposeLogo handles POST /api/compose-logo: compose a prompt from
// {description, style} and run it through the relay.
func (h *LogoHandler) ComposeLogo(c *gin.Context) {
	body, err := decodeObject(c)
	if err != nil {
		responses.WriteError(c, types.NewInvalidInput(responses.MsgInvalidBody))
		return
	}

	style, err := prompt.ParseStyle(stringField(body, "style"))
	if err != nil {
		responses.WriteError(c, types.NewInvalidInput(err.Error()))
		return
	}

	start := time.Now()
	composed, err := prompt.Compose(stringField(body, "description"), style)
	if err != nil {
		invalid := types.NewInvalidInput(err.Error())
		metrics.ObserveStage(metrics.StageComposer, start, invalid)
		responses.WriteError(c, invalid)
		return
	}
	metrics.ObserveStage(metrics.StageComposer, start, nil)

	result, err := h.relay.GenerateLogo(c.Request.Context(), composed)
	if err != nil {
		responses.WriteErrorStatus(c, http.StatusInternalServerError, responses.ErrorMessage(err))
		return
	}

	responses.WriteJSON(c, ComposeLogoResponse{
		ImageURL: result.ImageURL,
		Prompt:   composed,
		Style:    style,
	})
}
