package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gomcpgo/logo_image_ai/pkg/config"
	"github.com/gomcpgo/logo_image_ai/pkg/generation"
	"github.com/gomcpgo/logo_image_ai/pkg/provider"
	"github.com/gomcpgo/logo_image_ai/pkg/relay"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// newTestServer wires the full in-process chain on top of adapter
func newTestServer(t *testing.T, adapter provider.Adapter) http.Handler {
	t.Helper()
	cfg := config.Default()
	cfg.Timeouts = config.TestTimeouts()
	log := zerolog.Nop()

	instrumented := provider.Instrument(adapter, log)
	gateway := generation.NewGateway(generation.NewPromptValidator(), instrumented, cfg.Timeouts.Provider, log)
	r := relay.New(gateway, cfg.Timeouts.Relay, log)

	return NewServer(cfg, log, NewLogoHandler(r, gateway, instrumented, log)).Handler()
}

func doRequest(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestGenerateLogo_EmptyPromptIs500(t *testing.T) {
	h := newTestServer(t, provider.NewStubAdapter())

	w := doRequest(t, h, http.MethodPost, "/api/generate-logo", `{"prompt":""}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, decode(t, w)["error"], "Prompt is required")
}

func TestGenerateLogo_StubSuccess(t *testing.T) {
	h := newTestServer(t, provider.NewStubAdapter())

	w := doRequest(t, h, http.MethodPost, "/api/generate-logo", `{"prompt":"Tech startup logo","aspect_ratio":"16:9"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"imageUrl":""}`, w.Body.String())
}

func TestGenerateLogo_MalformedBody(t *testing.T) {
	h := newTestServer(t, provider.NewStubAdapter())

	w := doRequest(t, h, http.MethodPost, "/api/generate-logo", `{not json`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Invalid request body", decode(t, w)["error"])
}

func TestGenerateImage_Validation(t *testing.T) {
	h := newTestServer(t, provider.NewStubAdapter())

	tests := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{"missing prompt", `{}`, "Prompt is required and must be a non-empty string"},
		{"whitespace prompt", `{"prompt":"   "}`, "Prompt is required and must be a non-empty string"},
		{"non-string prompt", `{"prompt":42}`, "Prompt is required and must be a non-empty string"},
		{"too long", `{"prompt":"` + strings.Repeat("A", 2001) + `"}`, "Prompt must be less than 2000 characters"},
		{"malformed", `[1,2`, "Invalid request body"},
		{"array body", `["prompt"]`, "Invalid request body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(t, h, http.MethodPost, "/api/generate-image", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tt.wantMsg, decode(t, w)["error"])
		})
	}
}

func TestGenerateImage_Success(t *testing.T) {
	h := newTestServer(t, provider.NewStubAdapter())

	w := doRequest(t, h, http.MethodPost, "/api/generate-image", `{"prompt":"Coffee shop"}`)
	require.Equal(t, http.StatusOK, w.Code)

	out := decode(t, w)
	assert.Equal(t, true, out["success"])
	assert.Equal(t, "", out["imageUrl"])
	generatedAt, err := time.Parse(time.RFC3339Nano, out["generatedAt"].(string))
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), generatedAt, time.Minute)
}

func TestGenerateImage_UpstreamFailure(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"boom"}`))
	}))
	defer backend.Close()

	h := newTestServer(t, provider.NewRemoteAdapter(backend.URL, time.Second))

	w := doRequest(t, h, http.MethodPost, "/api/generate-image", `{"prompt":"Coffee shop"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Image generation failed: boom", decode(t, w)["error"])

	w = doRequest(t, h, http.MethodPost, "/api/generate-logo", `{"prompt":"Coffee shop"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Image generation failed: boom", decode(t, w)["error"])
}

func TestGenerateImage_FieldSpellings(t *testing.T) {
	var received map[string]string
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		_, _ = w.Write([]byte(`{"imageUrl":"https://cdn/x.png","success":true}`))
	}))
	defer backend.Close()

	h := newTestServer(t, provider.NewRemoteAdapter(backend.URL, time.Second))

	tests := []struct {
		name         string
		body         string
		wantAspect   string
		wantNegative string
	}{
		{"snake case", `{"prompt":"p","aspect_ratio":"16:9","negative_prompt":"text"}`, "16:9", "text"},
		{"camel case", `{"prompt":"p","aspectRatio":"4:3","negativePrompt":"blur"}`, "4:3", "blur"},
		{"snake wins", `{"prompt":"p","aspect_ratio":"9:16","aspectRatio":"4:3"}`, "9:16", ""},
		{"defaults", `{"prompt":"p"}`, "1:1", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(t, h, http.MethodPost, "/api/generate-image", tt.body)
			require.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.wantAspect, received["aspect_ratio"])
			assert.Equal(t, tt.wantNegative, received["negative_prompt"])
		})
	}
}

func TestProviderGenerate(t *testing.T) {
	h := newTestServer(t, provider.NewStubAdapter())

	w := doRequest(t, h, http.MethodPost, "/api/ai/generate-image", `{"prompt":"Tech startup"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"imageUrl":"","success":true}`, w.Body.String())

	w = doRequest(t, h, http.MethodPost, "/api/ai/generate-image", `{"aspect_ratio":"1:1"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Prompt is required"}`, w.Body.String())

	w = doRequest(t, h, http.MethodPost, "/api/ai/generate-image", `nope`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProviderGenerate_RemoteFailureWithoutMessage(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer backend.Close()

	h := newTestServer(t, provider.NewRemoteAdapter(backend.URL, time.Second))

	w := doRequest(t, h, http.MethodPost, "/api/ai/generate-image", `{"prompt":"Coffee shop"}`)
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, "Failed to generate image", decode(t, w)["error"])

	w = doRequest(t, h, http.MethodPost, "/api/generate-image", `{"prompt":"Coffee shop"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Image generation failed: Unknown error occurred", decode(t, w)["error"])
}

func TestListStyles(t *testing.T) {
	h := newTestServer(t, provider.NewStubAdapter())

	w := doRequest(t, h, http.MethodGet, "/api/styles", "")
	require.Equal(t, http.StatusOK, w.Code)

	var styles []map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &styles))
	require.Len(t, styles, 5)
	assert.Equal(t, "modern", styles[0]["name"])
	assert.Equal(t, "sleek, contemporary, professional logo design with clean lines", styles[0]["description"])
}

func TestComposeLogo(t *testing.T) {
	h := newTestServer(t, provider.NewStubAdapter())

	t.Run("tech startup modern", func(t *testing.T) {
		w := doRequest(t, h, http.MethodPost, "/api/compose-logo", `{"description":"Tech startup","style":"modern"}`)
		require.Equal(t, http.StatusOK, w.Code)

		out := decode(t, w)
		assert.Equal(t, "", out["imageUrl"])
		assert.Equal(t, "modern", out["style"])
		assert.Contains(t, out["prompt"], "Tech startup")
		assert.Contains(t, out["prompt"], "sleek, contemporary, professional logo design with clean lines")
	})

	t.Run("blank description", func(t *testing.T) {
		w := doRequest(t, h, http.MethodPost, "/api/compose-logo", `{"description":"  ","style":"modern"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Please enter a description for your logo", decode(t, w)["error"])
	})

	t.Run("unknown style", func(t *testing.T) {
		w := doRequest(t, h, http.MethodPost, "/api/compose-logo", `{"description":"Bakery","style":"baroque"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("default style", func(t *testing.T) {
		w := doRequest(t, h, http.MethodPost, "/api/compose-logo", `{"description":"Bakery"}`)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "modern", decode(t, w)["style"])
	})
}

func TestRequestID(t *testing.T) {
	h := newTestServer(t, provider.NewStubAdapter())

	w := doRequest(t, h, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, w.Header().Get(RequestIDHeader), 36)

	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
	assert.JSONEq(t, `{"status":"ready","provider":"stub"}`, rec.Body.String())
}

func TestMetricsEndpoint(t *testing.T) {
	h := newTestServer(t, provider.NewStubAdapter())

	doRequest(t, h, http.MethodPost, "/api/generate-logo", `{"prompt":"x"}`)
	w := doRequest(t, h, http.MethodGet, "/metrics", "")

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "logo_image_ai_stage_requests_total")
	assert.Contains(t, body, "logo_image_ai_http_requests_total")
}

func TestMetricsEndpoint_ComposerStage(t *testing.T) {
	h := newTestServer(t, provider.NewStubAdapter())

	doRequest(t, h, http.MethodPost, "/api/compose-logo", `{"description":"Bakery","style":"modern"}`)
	doRequest(t, h, http.MethodPost, "/api/compose-logo", `{"description":" ","style":"modern"}`)
	w := doRequest(t, h, http.MethodGet, "/metrics", "")

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `logo_image_ai_stage_requests_total{outcome="success",stage="composer"}`)
	assert.Contains(t, body, `logo_image_ai_stage_requests_total{outcome="invalid_input",stage="composer"}`)
	assert.Contains(t, body, `logo_image_ai_stage_duration_seconds_count{stage="composer"}`)
}

func TestGenerateImage_RepeatedRequestsSameShape(t *testing.T) {
	h := newTestServer(t, provider.NewStubAdapter())

	keys := func(w *httptest.ResponseRecorder) []string {
		out := decode(t, w)
		var ks []string
		for k := range out {
			ks = append(ks, k)
		}
		return ks
	}

	first := doRequest(t, h, http.MethodPost, "/api/generate-image", `{"prompt":"same"}`)
	second := doRequest(t, h, http.MethodPost, "/api/generate-image", `{"prompt":"same"}`)
	assert.Equal(t, first.Code, second.Code)
	assert.ElementsMatch(t, keys(first), keys(second))
	assert.True(t, bytes.Contains(second.Body.Bytes(), []byte(`"success":true`)))
}
