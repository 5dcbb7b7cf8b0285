// Package prompt expands a short logo description into a full generation prompt.
package prompt

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyDescription is returned for empty or whitespace-only descriptions.
// The message is shown to the user as-is.
var ErrEmptyDescription = errors.New("Please enter a description for your logo")

const renderingSuffix = "vector art style, centered composition, white background, high quality, crisp details, suitable for branding"

// Compose builds the prompt sent to the relay. It performs no I/O.
func Compose(description string, style StylePreset) (string, error) {
	if strings.TrimSpace(description) == "" {
		return "", ErrEmptyDescription
	}
	if !style.Valid() {
		return "", fmt.Errorf("unknown logo style %q", style)
	}

	return fmt.Sprintf("Professional logo design for \"%s\", %s, %s",
		description, style.Description(), renderingSuffix), nil
}
