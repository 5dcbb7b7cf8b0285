// Package responses writes the JSON envelopes shared by every route.
package responses

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gomcpgo/logo_image_ai/pkg/types"
)

// MsgInvalidBody is returned when a request body is not a JSON object
const MsgInvalidBody = "Invalid request body"

// WriteJSON writes a 200 response
func WriteJSON(c *gin.Context, body interface{}) {
	c.JSON(http.StatusOK, body)
}

// WriteError writes {error} with the status carried by err
func WriteError(c *gin.Context, err error) {
	WriteErrorStatus(c, types.StatusOf(err), ErrorMessage(err))
}

// WriteErrorStatus writes {error} with an explicit status
func WriteErrorStatus(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, types.ErrorResponse{Error: message})
}

// ErrorMessage returns the user-facing message for err
func ErrorMessage(err error) string {
	if genErr, ok := types.AsGenerationError(err); ok {
		return genErr.Message
	}
	return err.Error()
}
