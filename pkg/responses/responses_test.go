package responses

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/gomcpgo/logo_image_ai/pkg/types"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestWriteError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{"invalid input", types.NewInvalidInput("Prompt is required"), http.StatusBadRequest, `{"error":"Prompt is required"}`},
		{"upstream", types.NewUpstreamFailure("Image generation failed: boom", nil), http.StatusInternalServerError, `{"error":"Image generation failed: boom"}`},
		{"plain", errors.New("oops"), http.StatusInternalServerError, `{"error":"oops"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			WriteError(c, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.JSONEq(t, tt.wantBody, w.Body.String())
		})
	}
}
