package provider

import (
	"context"

	"github.com/gomcpgo/logo_image_ai/pkg/types"
)

// StubAdapter returns a well-formed result with an empty image URL. It is the
// default until a real backend is configured.
type StubAdapter struct{}

// NewStubAdapter creates the stub provider
func NewStubAdapter() *StubAdapter {
	return &StubAdapter{}
}

func (s *StubAdapter) Name() string { return "stub" }

func (s *StubAdapter) Generate(ctx context.Context, req types.GenerationRequest) (*types.ProviderResult, error) {
	if err := ValidateRequest(req); err != nil {
		return nil, err
	}
	return &types.ProviderResult{ImageURL: "", Success: true}, nil
}
