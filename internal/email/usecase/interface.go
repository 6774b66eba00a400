package usecase

import (
	emaildomain "email-agent-backend/internal/email/domain"
)

// DashboardMetrics aggregates simple productivity numbers over the inbox.
type DashboardMetrics struct {
	EmailsProcessed   int `json:"emails_processed"`
	TimeSavedMinutes  int `json:"time_saved_minutes"`
	AutoRepliesSent   int `json:"auto_replies_sent"`
	ProductivityScore int `json:"productivity_score"`
}

// EmailUsecase defines the interface for email use cases
type EmailUsecase interface {
	GetEmails() ([]*emaildomain.Email, error)

	// GetEmailByID returns nil when no record matches; a malformed ID is
	// treated the same as an absent one.
	GetEmailByID(id string) (*emaildomain.Email, error)

	GetProcessedEmails() ([]*emaildomain.Email, error)

	// LoadMockEmails clears the store and seeds it from the mock inbox
	// file, assigning fresh IDs and empty AI-derived fields.
	LoadMockEmails() ([]*emaildomain.Email, error)

	// ImportFromIMAP pulls recent messages from the configured IMAP
	// mailbox into the store. Fails when IMAP is not configured.
	ImportFromIMAP() ([]*emaildomain.Email, error)

	ClearEmails() error

	// SearchEmails ranks emails against the query with fuzzy matching.
	SearchEmails(query string, limit int) ([]*emaildomain.Email, error)

	GetDashboardMetrics() (*DashboardMetrics, error)
}
