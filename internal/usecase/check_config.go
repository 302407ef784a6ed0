package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/git-relnotes/internal/domain"
)

// CheckConfigInput contains the parameters for validating a configuration.
type CheckConfigInput struct {
	Path string // Document path, empty = default locations
}

// CheckConfigOutput contains the compiled configuration.
type CheckConfigOutput struct {
	Rules  *domain.Rules
	Origin string // Where the configuration came from
}

// CheckConfig loads and validates the release configuration without running the pipeline.
type CheckConfig struct {
	configs domain.ConfigLoader
}

// NewCheckConfig creates a new CheckConfig use case.
func NewCheckConfig(configs domain.ConfigLoader) *CheckConfig {
	return &CheckConfig{configs: configs}
}

// Execute loads and compiles the configuration.
func (uc *CheckConfig) Execute(ctx context.Context, in CheckConfigInput) (*CheckConfigOutput, error) {
	cfg, origin, err := uc.configs.Load(ctx, in.Path)
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	rules, err := cfg.Compile()
	if err != nil {
		return nil, err
	}
	return &CheckConfigOutput{Rules: rules, Origin: origin}, nil
}
