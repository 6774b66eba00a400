package repository

import (
	emaildomain "email-agent-backend/internal/email/domain"
)

// EmailRepository defines the interface for email persistence
type EmailRepository interface {
	// Create inserts a single email, assigning an ID when absent
	Create(email *emaildomain.Email) error

	// CreateBatch inserts multiple emails in one call
	CreateBatch(emails []*emaildomain.Email) error

	// FindAll returns every stored email, oldest first
	FindAll() ([]*emaildomain.Email, error)

	// FindByID returns the email with the given ID, or nil when no record
	// matches. A malformed ID is indistinguishable from an absent one.
	FindByID(id string) (*emaildomain.Email, error)

	// FindByStatus returns emails in the given status, oldest first
	FindByStatus(status emaildomain.EmailStatus) ([]*emaildomain.Email, error)

	// UpdateFields applies a partial update to one email by ID
	UpdateFields(id string, fields map[string]interface{}) error

	// DeleteAll removes every email
	DeleteAll() error
}
