package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/gomcpgo/logo_image_ai/pkg/client"
	"github.com/gomcpgo/logo_image_ai/pkg/config"
	"github.com/gomcpgo/logo_image_ai/pkg/generation"
	"github.com/gomcpgo/logo_image_ai/pkg/handler"
	"github.com/gomcpgo/logo_image_ai/pkg/provider"
	"github.com/gomcpgo/logo_image_ai/pkg/relay"
)

// chain holds the wired stages
type chain struct {
	provider provider.Adapter
	gateway  *generation.Gateway
	relay    *relay.Relay
}

// buildAdapter selects the provider adapter named by cfg.Provider
func buildAdapter(ctx context.Context, cfg *config.Config, log zerolog.Logger) (provider.Adapter, error) {
	switch cfg.Provider {
	case config.ProviderStub, "":
		return provider.NewStubAdapter(), nil
	case config.ProviderReplicate:
		c := client.NewReplicateClient(cfg.ReplicateAPIToken, cfg.ReplicateBaseURL, cfg.Timeouts.PollInterval, log)
		return provider.NewReplicateAdapter(c, cfg.ReplicateModel, cfg.Timeouts.Provider, log), nil
	case config.ProviderGemini:
		gc, err := provider.NewGeminiClient(ctx, cfg.GeminiAPIKey)
		if err != nil {
			return nil, err
		}
		return provider.NewGeminiAdapter(gc.Models, cfg.GeminiModel), nil
	case config.ProviderRemote:
		return provider.NewRemoteAdapter(cfg.ProviderURL, cfg.Timeouts.Provider), nil
	default:
		return nil, fmt.Errorf("unknown provider %q", cfg.Provider)
	}
}

// buildChain wires provider, gateway and relay in-process
func buildChain(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*chain, error) {
	adapter, err := buildAdapter(ctx, cfg, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create provider: %w", err)
	}
	adapter = provider.Instrument(adapter, log)

	gateway := generation.NewGateway(generation.NewPromptValidator(), adapter, cfg.Timeouts.Provider, log)
	return &chain{
		provider: adapter,
		gateway:  gateway,
		relay:    relay.New(gateway, cfg.Timeouts.Relay, log),
	}, nil
}

// newServer exposes the chain over HTTP
func newServer(cfg *config.Config, log zerolog.Logger, c *chain) *handler.Server {
	h := handler.NewLogoHandler(c.relay, c.gateway, c.provider, log)
	return handler.NewServer(cfg, log, h)
}
