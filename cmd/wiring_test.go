package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gomcpgo/logo_image_ai/pkg/config"
)

func TestBuildAdapter(t *testing.T) {
	tests := []struct {
		provider string
		mutate   func(c *config.Config)
		wantName string
		wantErr  bool
	}{
		{provider: config.ProviderStub, wantName: "stub"},
		{provider: config.ProviderRemote, wantName: "remote"},
		{provider: config.ProviderReplicate, mutate: func(c *config.Config) { c.ReplicateAPIToken = "r8_x" }, wantName: "replicate"},
		{provider: "dalle", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.provider, func(t *testing.T) {
			cfg := config.Default()
			cfg.Provider = tt.provider
			if tt.mutate != nil {
				tt.mutate(cfg)
			}

			adapter, err := buildAdapter(context.Background(), cfg, zerolog.Nop())
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, adapter.Name())
		})
	}
}

func TestNewServer_ServesChain(t *testing.T) {
	cfg := config.Default()
	cfg.Timeouts = config.TestTimeouts()

	c, err := buildChain(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/generate-logo", strings.NewReader(`{"prompt":"Tech startup"}`))
	w := httptest.NewRecorder()
	newServer(cfg, zerolog.Nop(), c).Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"imageUrl":""}`, w.Body.String())
}
