package repository

import (
	promptdomain "email-agent-backend/internal/prompt/domain"
)

// PromptRepository defines the interface for prompt config persistence
type PromptRepository interface {
	// FindActive returns the single live config record, or nil when none exists
	FindActive() (*promptdomain.PromptConfig, error)

	// Create inserts a config record, assigning an ID when absent
	Create(config *promptdomain.PromptConfig) error

	// UpdateFields applies a partial update to the record with the given ID
	UpdateFields(id string, fields map[string]interface{}) error

	// DeleteAll removes every config record
	DeleteAll() error
}
