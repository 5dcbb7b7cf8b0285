package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/gomcpgo/logo_image_ai/pkg/config"
	"github.com/gomcpgo/logo_image_ai/pkg/logger"
	"github.com/gomcpgo/logo_image_ai/pkg/metrics"
	"github.com/gomcpgo/logo_image_ai/pkg/observability"
	"github.com/gomcpgo/logo_image_ai/pkg/prompt"
	"github.com/gomcpgo/logo_image_ai/pkg/types"
)

// Version information (set by build script)
var (
	Version   = "1.0.0"
	BuildTime = "unknown"
)

func main() {
	var (
		versionFlag bool
		listStyles  bool
		describe    string
		style       string
	)

	flag.BoolVar(&versionFlag, "version", false, "Show version information")
	flag.BoolVar(&listStyles, "styles", false, "List available logo styles")
	flag.StringVar(&describe, "describe", "", "Generate a logo for this description and print the result (e.g., -describe \"Coffee shop\")")
	flag.StringVar(&style, "style", string(prompt.DefaultStyle), "Logo style used with -describe")
	flag.Parse()

	if versionFlag {
		fmt.Printf("Logo Image AI\n")
		fmt.Printf("Version: %s\n", Version)
		fmt.Printf("Build Time: %s\n", BuildTime)
		return
	}

	if listStyles {
		printStyles()
		return
	}

	loadEnvFiles()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if describe != "" {
		if err := runDescribe(ctx, cfg, log, describe, style); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	shutdownTelemetry, err := observability.Setup(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("initialize observability")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := shutdownTelemetry(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown telemetry")
		}
	}()

	c, err := buildChain(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("build generation chain")
	}

	log.Info().
		Str("provider", c.provider.Name()).
		Dur("relay_timeout", cfg.Timeouts.Relay).
		Dur("provider_timeout", cfg.Timeouts.Provider).
		Msg("Starting logo image service")

	if err := newServer(cfg, log, c).Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("server stopped with error")
	}

	log.Info().Msg("server exited cleanly")
}

// runDescribe composes a prompt and runs it through the in-process chain
func runDescribe(ctx context.Context, cfg *config.Config, log zerolog.Logger, description, styleName string) error {
	style, err := prompt.ParseStyle(styleName)
	if err != nil {
		return err
	}
	start := time.Now()
	composed, err := prompt.Compose(description, style)
	if err != nil {
		metrics.ObserveStage(metrics.StageComposer, start, types.NewInvalidInput(err.Error()))
		return err
	}
	metrics.ObserveStage(metrics.StageComposer, start, nil)

	c, err := buildChain(ctx, cfg, log)
	if err != nil {
		return err
	}

	fmt.Printf("Provider: %s\n", c.provider.Name())
	fmt.Printf("Prompt: %s\n\n", composed)

	result, err := c.relay.GenerateLogo(ctx, composed)
	if err != nil {
		return err
	}

	out, _ := json.MarshalIndent(result, "", "  ")
	fmt.Println(string(out))
	return nil
}

func printStyles() {
	fmt.Println("Available logo styles:")
	for _, s := range prompt.Styles() {
		marker := ""
		if s.Name == prompt.DefaultStyle {
			marker = " (default)"
		}
		fmt.Printf("  %-11s %s%s\n", s.Name, s.Description, marker)
	}
}

func loadEnvFiles() {
	paths := []string{".env", "../.env"}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Overload(path); err != nil {
				fmt.Fprintf(os.Stderr, "warning: failed to load %s: %v\n", path, err)
			}
		}
	}
}
