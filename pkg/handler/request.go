package handler

import (
	"encoding/json"
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/gomcpgo/logo_image_ai/pkg/types"
)

var errInvalidBody = errors.New("request body must be a JSON object")

// decodeObject reads the body as a JSON object. A null body decodes to an
// empty object.
func decodeObject(c *gin.Context) (map[string]interface{}, error) {
	raw, err := c.GetRawData()
	if err != nil {
		return nil, err
	}
	var body map[string]interface{}
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, errInvalidBody
	}
	if body == nil {
		body = map[string]interface{}{}
	}
	return body, nil
}

// stringField returns the first key holding a string. Values of any other
// JSON type count as absent.
func stringField(body map[string]interface{}, keys ...string) string {
	for _, key := range keys {
		if s, ok := body[key].(string); ok {
			return s
		}
	}
	return ""
}

// generationRequest maps a decoded body onto a request, accepting both
// snake_case and camelCase option names.
func generationRequest(body map[string]interface{}) types.GenerationRequest {
	return types.GenerationRequest{
		Prompt:         stringField(body, "prompt"),
		AspectRatio:    stringField(body, "aspect_ratio", "aspectRatio"),
		NegativePrompt: stringField(body, "negative_prompt", "negativePrompt"),
	}
}
