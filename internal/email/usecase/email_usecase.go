package usecase

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"sort"
	"time"

	emaildomain "email-agent-backend/internal/email/domain"
	"email-agent-backend/internal/email/repository"
	"email-agent-backend/pkg/config"
	"email-agent-backend/pkg/fuzzy"
	"email-agent-backend/pkg/imap"
)

// ErrIMAPNotConfigured is returned by ImportFromIMAP when no IMAP address
// is set.
var ErrIMAPNotConfigured = errors.New("imap import not configured")

type emailUsecase struct {
	emailRepo repository.EmailRepository
	cfg       *config.Config
}

// NewEmailUsecase creates a new instance of emailUsecase
func NewEmailUsecase(emailRepo repository.EmailRepository, cfg *config.Config) EmailUsecase {
	return &emailUsecase{
		emailRepo: emailRepo,
		cfg:       cfg,
	}
}

func (u *emailUsecase) GetEmails() ([]*emaildomain.Email, error) {
	return u.emailRepo.FindAll()
}

func (u *emailUsecase) GetEmailByID(id string) (*emaildomain.Email, error) {
	return u.emailRepo.FindByID(id)
}

func (u *emailUsecase) GetProcessedEmails() ([]*emaildomain.Email, error) {
	return u.emailRepo.FindByStatus(emaildomain.StatusProcessed)
}

// mockEmail mirrors one entry of the mock inbox file.
type mockEmail struct {
	Sender    string    `json:"sender"`
	Subject   string    `json:"subject"`
	Body      string    `json:"body"`
	Timestamp time.Time `json:"timestamp"`
	Status    string    `json:"status"`
}

func (u *emailUsecase) LoadMockEmails() ([]*emaildomain.Email, error) {
	raw, err := os.ReadFile(u.cfg.MockInboxPath)
	if err != nil {
		return nil, fmt.Errorf("read mock inbox %s: %w", u.cfg.MockInboxPath, err)
	}

	var mocks []mockEmail
	if err := json.Unmarshal(raw, &mocks); err != nil {
		return nil, fmt.Errorf("parse mock inbox: %w", err)
	}

	// Seeding replaces whatever is in the store
	if err := u.emailRepo.DeleteAll(); err != nil {
		return nil, fmt.Errorf("clear emails: %w", err)
	}

	emails := make([]*emaildomain.Email, 0, len(mocks))
	for _, m := range mocks {
		status := emaildomain.EmailStatus(m.Status)
		if status == "" {
			status = emaildomain.StatusUnread
		}
		emails = append(emails, &emaildomain.Email{
			Sender:      m.Sender,
			Subject:     m.Subject,
			Body:        m.Body,
			Timestamp:   m.Timestamp,
			Status:      status,
			ActionItems: []string{},
			Tags:        []string{},
			Metadata:    map[string]interface{}{},
		})
	}

	if err := u.emailRepo.CreateBatch(emails); err != nil {
		return nil, fmt.Errorf("insert mock emails: %w", err)
	}

	log.Printf("[Email] Loaded %d mock emails", len(emails))
	return emails, nil
}

func (u *emailUsecase) ImportFromIMAP() ([]*emaildomain.Email, error) {
	if u.cfg.IMAPAddress == "" {
		return nil, ErrIMAPNotConfigured
	}

	messages, err := imap.FetchRecent(imap.Config{
		Address:    u.cfg.IMAPAddress,
		Username:   u.cfg.IMAPUsername,
		Password:   u.cfg.IMAPPassword,
		Mailbox:    u.cfg.IMAPMailbox,
		FetchLimit: u.cfg.IMAPFetchLimit,
	})
	if err != nil {
		return nil, fmt.Errorf("imap import: %w", err)
	}

	emails := make([]*emaildomain.Email, 0, len(messages))
	for _, m := range messages {
		emails = append(emails, &emaildomain.Email{
			Sender:      m.Sender,
			Subject:     m.Subject,
			Body:        m.Body,
			Timestamp:   m.Date,
			Status:      emaildomain.StatusUnread,
			ActionItems: []string{},
			Tags:        []string{},
			Metadata:    map[string]interface{}{"source": "imap"},
		})
	}

	if err := u.emailRepo.CreateBatch(emails); err != nil {
		return nil, fmt.Errorf("insert imported emails: %w", err)
	}

	log.Printf("[Email] Imported %d emails from %s", len(emails), u.cfg.IMAPMailbox)
	return emails, nil
}

func (u *emailUsecase) ClearEmails() error {
	return u.emailRepo.DeleteAll()
}

func (u *emailUsecase) SearchEmails(query string, limit int) ([]*emaildomain.Email, error) {
	emails, err := u.emailRepo.FindAll()
	if err != nil {
		return nil, err
	}

	type scored struct {
		email *emaildomain.Email
		score float64
	}

	var matches []scored
	for _, email := range emails {
		if !fuzzy.MatchEmail(query, email.Subject, email.Sender, email.Body) {
			continue
		}
		score := fuzzy.CalculateRelevanceScore(query, email.Subject, email.Sender, email.Body)
		matches = append(matches, scored{email: email, score: score})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].score > matches[j].score
	})

	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}

	result := make([]*emaildomain.Email, len(matches))
	for i, m := range matches {
		result[i] = m.email
	}
	return result, nil
}

func (u *emailUsecase) GetDashboardMetrics() (*DashboardMetrics, error) {
	emails, err := u.emailRepo.FindAll()
	if err != nil {
		return nil, err
	}

	processed := 0
	autoReplies := 0
	for _, email := range emails {
		if email.Status == emaildomain.StatusProcessed {
			processed++
		}
		if email.Metadata != nil {
			if reply, ok := email.Metadata["auto_reply_generated"].(string); ok && reply != "" {
				autoReplies++
			}
		}
	}

	score := processed * 20
	if score > 100 {
		score = 100
	}

	return &DashboardMetrics{
		EmailsProcessed:   processed,
		TimeSavedMinutes:  processed * 5, // rough estimate: 5 minutes per email
		AutoRepliesSent:   autoReplies,
		ProductivityScore: score,
	}, nil
}
