package usecase

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	emaildomain "email-agent-backend/internal/email/domain"
)

// sentinelActionItem marks an email that failed processing. Writing it and
// flipping the status keeps a poison email from being reprocessed forever,
// at the cost of discarding partial results.
const sentinelActionItem = "Error processing email"

// ProcessSingleEmail runs extraction, auto-reply drafting, priority and tag
// derivation for one email and persists the outcome in a single update.
func (u *processingUsecase) ProcessSingleEmail(ctx context.Context, email *emaildomain.Email) (*emaildomain.Email, error) {
	updated, err := u.processEmail(ctx, email)
	if err == nil {
		return updated, nil
	}

	log.Printf("[Pipeline] Error processing email %s: %v", email.ID, err)

	// Mark as processed even if failed, to avoid reprocessing
	fallbackErr := u.emailRepo.UpdateFields(email.ID, map[string]interface{}{
		"status":       emaildomain.StatusProcessed,
		"processed_at": u.now(),
		"action_items": []string{sentinelActionItem},
	})
	if fallbackErr != nil {
		return email, fmt.Errorf("mark email %s failed: %w", email.ID, fallbackErr)
	}
	return email, nil
}

func (u *processingUsecase) processEmail(ctx context.Context, email *emaildomain.Email) (*emaildomain.Email, error) {
	prompts, err := u.promptUc.GetPrompts()
	if err != nil {
		return nil, err
	}

	actionItems, _ := u.ExtractActionItems(ctx, email.Body, prompts.ActionItems)

	// The draft is stored in metadata for later use; nothing is sent.
	autoReply, _ := u.GenerateAutoReply(ctx, email.Body, prompts.AutoReply)

	priority := emaildomain.PriorityLow
	lower := strings.ToLower(email.Body)
	if containsAny(lower, []string{"urgent", "asap", "immediately"}) {
		priority = emaildomain.PriorityHigh
	} else if len(actionItems) > 0 {
		priority = emaildomain.PriorityMedium
	}

	tags := []string{}
	if containsAny(lower, []string{"meeting", "schedule", "calendar"}) {
		tags = append(tags, "meeting")
	}
	if containsAny(lower, []string{"project", "timeline", "deadline"}) {
		tags = append(tags, "project")
	}
	if len(actionItems) > 0 {
		tags = append(tags, "action-required")
	}

	fields := map[string]interface{}{
		"status":       emaildomain.StatusProcessed,
		"processed_at": u.now(),
		"action_items": actionItems,
		"priority":     priority,
		"tags":         tags,
		"metadata": map[string]interface{}{
			"auto_reply_generated": autoReply,
			"processed_with_prompts": map[string]interface{}{
				"action_items_prompt": truncatePrompt(prompts.ActionItems),
				"auto_reply_prompt":   truncatePrompt(prompts.AutoReply),
			},
		},
	}

	if err := u.emailRepo.UpdateFields(email.ID, fields); err != nil {
		return nil, err
	}

	updated, err := u.emailRepo.FindByID(email.ID)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, fmt.Errorf("email %s vanished during processing", email.ID)
	}
	return updated, nil
}

// ProcessEmailBatch processes emails strictly in order with a fixed pause
// between items, skipping ones already processed. There is deliberately no
// concurrent fan-out; the pause is a courtesy to the AI backend's rate
// limits.
func (u *processingUsecase) ProcessEmailBatch(ctx context.Context, emails []*emaildomain.Email) []*emaildomain.Email {
	var processed []*emaildomain.Email

	for i, email := range emails {
		if email.Status != emaildomain.StatusProcessed {
			result, err := u.ProcessSingleEmail(ctx, email)
			if err != nil {
				log.Printf("[Pipeline] Batch item %d (%s) failed: %v", i, email.ID, err)
				continue
			}
			processed = append(processed, result)
		}

		if u.delay > 0 {
			time.Sleep(u.delay)
		}
	}

	log.Printf("[Pipeline] Batch finished: %d of %d emails processed", len(processed), len(emails))
	return processed
}

// truncatePrompt keeps the first 100 characters of an instruction for the
// metadata audit trail. Counted in runes so a multi-byte instruction is
// never cut mid-character.
func truncatePrompt(prompt string) string {
	runes := []rune(prompt)
	if len(runes) <= 100 {
		return prompt + "..."
	}
	return string(runes[:100]) + "..."
}
