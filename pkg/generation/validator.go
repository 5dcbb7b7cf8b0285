package generation

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/gomcpgo/logo_image_ai/pkg/types"
)

// MsgPromptRequired is returned for a missing, non-string or blank prompt
const MsgPromptRequired = "Prompt is required and must be a non-empty string"

// Validator checks a request before it is forwarded to a provider
type Validator interface {
	Validate(req types.GenerationRequest) error
}

// PromptValidator enforces the prompt presence and length rules
type PromptValidator struct {
	MaxLength int
}

// NewPromptValidator creates a validator with the standard prompt limit
func NewPromptValidator() *PromptValidator {
	return &PromptValidator{MaxLength: types.MaxPromptLength}
}

// Validate returns the first rule the request breaks. Length is counted in
// characters, not bytes, and untrimmed.
func (v *PromptValidator) Validate(req types.GenerationRequest) error {
	if strings.TrimSpace(req.Prompt) == "" {
		return types.NewInvalidInput(MsgPromptRequired)
	}
	if utf8.RuneCountInString(req.Prompt) > v.MaxLength {
		return types.NewInvalidInput(fmt.Sprintf("Prompt must be less than %d characters", v.MaxLength))
	}
	return nil
}
