package prompt

import (
	"fmt"
	"strings"
)

// StylePreset is one of the fixed logo styles offered to users
type StylePreset string

const (
	StyleModern     StylePreset = "modern"
	StyleMinimalist StylePreset = "minimalist"
	StyleAbstract   StylePreset = "abstract"
	StyleGeometric  StylePreset = "geometric"
	StyleGradient   StylePreset = "gradient"

	DefaultStyle = StyleModern
)

// StyleInfo describes a preset for listing
type StyleInfo struct {
	Name        StylePreset `json:"name"`
	Description string      `json:"description"`
}

var styleOrder = []StylePreset{
	StyleModern,
	StyleMinimalist,
	StyleAbstract,
	StyleGeometric,
	StyleGradient,
}

var styleDescriptions = map[StylePreset]string{
	StyleModern:     "sleek, contemporary, professional logo design with clean lines",
	StyleMinimalist: "minimalist, simple, elegant logo with negative space",
	StyleAbstract:   "abstract, artistic, creative logo with flowing shapes",
	StyleGeometric:  "geometric, angular, structured logo with precise shapes",
	StyleGradient:   "vibrant gradient, colorful, dynamic logo with smooth color transitions",
}

// Description returns the phrase the composer appends for this preset
func (s StylePreset) Description() string {
	return styleDescriptions[s]
}

// Valid reports whether s is one of the known presets
func (s StylePreset) Valid() bool {
	_, ok := styleDescriptions[s]
	return ok
}

// ParseStyle resolves a preset by name. An empty name selects DefaultStyle.
func ParseStyle(name string) (StylePreset, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return DefaultStyle, nil
	}
	style := StylePreset(name)
	if !style.Valid() {
		return "", fmt.Errorf("unknown logo style %q (available: %s)", name, strings.Join(StyleNames(), ", "))
	}
	return style, nil
}

// Styles lists every preset in display order
func Styles() []StyleInfo {
	infos := make([]StyleInfo, 0, len(styleOrder))
	for _, s := range styleOrder {
		infos = append(infos, StyleInfo{Name: s, Description: s.Description()})
	}
	return infos
}

// StyleNames lists preset names in display order
func StyleNames() []string {
	names := make([]string, 0, len(styleOrder))
	for _, s := range styleOrder {
		names = append(names, string(s))
	}
	return names
}
