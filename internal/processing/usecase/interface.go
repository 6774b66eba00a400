package usecase

import (
	"context"
	"time"

	emaildomain "email-agent-backend/internal/email/domain"
	"email-agent-backend/internal/email/repository"
	promptusecase "email-agent-backend/internal/prompt/usecase"
	"email-agent-backend/pkg/ai"
)

// DraftResult is a generated email draft plus suggested next steps.
type DraftResult struct {
	Body               string   `json:"body"`
	SuggestedFollowUps []string `json:"suggested_follow_ups"`
}

// ProcessingUsecase bundles the AI-backed email operations. Every operation
// returns a result plus a flag telling whether the AI path produced it;
// AI failures never surface as errors, they select a deterministic fallback.
type ProcessingUsecase interface {
	// ProcessSingleEmail runs the full pipeline on one email and persists
	// the outcome. It is terminal: the email ends up processed even when
	// an internal step fails.
	ProcessSingleEmail(ctx context.Context, email *emaildomain.Email) (*emaildomain.Email, error)

	// ProcessEmailBatch processes the given emails sequentially, skipping
	// ones already processed, with a fixed delay between items. Returns
	// the emails actually processed, in order.
	ProcessEmailBatch(ctx context.Context, emails []*emaildomain.Email) []*emaildomain.Email

	// ExtractActionItems pulls action items out of an email body.
	ExtractActionItems(ctx context.Context, body, instruction string) ([]string, bool)

	// GenerateSummary builds a structured summary for an email.
	GenerateSummary(ctx context.Context, email *emaildomain.Email) (*emaildomain.SummaryResult, bool)

	// SummaryForEmail returns the cached summary or generates and caches one.
	SummaryForEmail(ctx context.Context, email *emaildomain.Email) (*emaildomain.SummaryResult, error)

	// GenerateAutoReply drafts an acknowledgment reply for an email body.
	GenerateAutoReply(ctx context.Context, body, instruction string) (string, bool)

	// DraftEmail composes a new email from free-form context.
	DraftEmail(ctx context.Context, draftContext, recipient, subject string) (*DraftResult, bool)

	// RewriteEmail rewrites text in the named tone.
	RewriteEmail(ctx context.Context, emailText, tone string) (string, bool)
}

type processingUsecase struct {
	emailRepo repository.EmailRepository
	promptUc  promptusecase.PromptUsecase
	client    ai.TextClient
	delay     time.Duration
	now       func() time.Time
}

// NewProcessingUsecase wires the pipeline. client may be nil when no AI
// backend is configured; every operation then takes its fallback path.
func NewProcessingUsecase(
	emailRepo repository.EmailRepository,
	promptUc promptusecase.PromptUsecase,
	client ai.TextClient,
	delay time.Duration,
) ProcessingUsecase {
	return &processingUsecase{
		emailRepo: emailRepo,
		promptUc:  promptUc,
		client:    client,
		delay:     delay,
		now:       time.Now,
	}
}
