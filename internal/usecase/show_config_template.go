// Package usecase contains the application use cases.
package usecase

import (
	"context"
)

// ShowConfigTemplateInput contains the input for the ShowConfigTemplate use case.
type ShowConfigTemplateInput struct{}

// ShowConfigTemplateOutput contains the output of the ShowConfigTemplate use case.
type ShowConfigTemplateOutput struct {
	Template string // Built-in configuration document
}

// ShowConfigTemplate returns the built-in release configuration.
type ShowConfigTemplate struct {
	configs templateProvider
}

type templateProvider interface {
	DefaultTemplate() string
}

// NewShowConfigTemplate creates a new ShowConfigTemplate use case.
func NewShowConfigTemplate(configs templateProvider) *ShowConfigTemplate {
	return &ShowConfigTemplate{configs: configs}
}

// Execute returns the built-in configuration document.
func (uc *ShowConfigTemplate) Execute(_ context.Context, _ ShowConfigTemplateInput) (*ShowConfigTemplateOutput, error) {
	return &ShowConfigTemplateOutput{Template: uc.configs.DefaultTemplate()}, nil
}
