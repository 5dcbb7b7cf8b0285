package types

import (
	"time"
)

// Request defaults and limits shared by every stage
const (
	DefaultAspectRatio = "1:1"
	MaxPromptLength    = 2000
)

// Prediction statuses from Replicate
const (
	StatusStarting   = "starting"
	StatusProcessing = "processing"
	StatusSucceeded  = "succeeded"
	StatusFailed     = "failed"
	StatusCanceled   = "canceled"
)

// GenerationRequest is the request handed from the gateway to a provider adapter
type GenerationRequest struct {
	Prompt         string `json:"prompt"`
	AspectRatio    string `json:"aspect_ratio"`
	NegativePrompt string `json:"negative_prompt"`
}

// WithDefaults fills in the documented defaults for optional fields
func (r GenerationRequest) WithDefaults() GenerationRequest {
	if r.AspectRatio == "" {
		r.AspectRatio = DefaultAspectRatio
	}
	return r
}

// ProviderResult is the success envelope of the provider adapter
type ProviderResult struct {
	ImageURL string `json:"imageUrl"`
	Success  bool   `json:"success"`
}

// GenerationResult is the success envelope of the validation gateway
type GenerationResult struct {
	Success     bool      `json:"success"`
	ImageURL    string    `json:"imageUrl"`
	GeneratedAt time.Time `json:"generatedAt"`
}

// LogoResult is the success envelope of the relay entry point
type LogoResult struct {
	ImageURL string `json:"imageUrl"`
}

// ErrorResponse is the failure envelope every stage returns
type ErrorResponse struct {
	Error string `json:"error"`
}

// PredictionRequest is the body of a Replicate create-prediction call
type PredictionRequest struct {
	Version string                 `json:"version,omitempty"`
	Input   map[string]interface{} `json:"input"`
}

// Prediction is the subset of a Replicate prediction the adapter reads
type Prediction struct {
	ID        string      `json:"id"`
	Status    string      `json:"status"`
	Output    interface{} `json:"output"`
	Error     interface{} `json:"error"`
	CreatedAt string      `json:"created_at"`
}

// Finished reports whether the prediction reached a terminal status
func (p *Prediction) Finished() bool {
	switch p.Status {
	case StatusSucceeded, StatusFailed, StatusCanceled:
		return true
	}
	return false
}
