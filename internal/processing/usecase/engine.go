package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	emaildomain "email-agent-backend/internal/email/domain"
	"email-agent-backend/pkg/ai"
)

// Fixed fallback replies, kept distinct so logs show which path fired.
const (
	fallbackReplyNoClient = "Thank you for your email. I have received it and will review it shortly."
	fallbackReplyOnError  = "Thank you for your email. I will review it and respond as soon as possible."
)

// generate calls the AI backend, treating a missing client as unavailability.
func (u *processingUsecase) generate(ctx context.Context, prompt string, opts ai.GenerateOptions) (string, error) {
	if u.client == nil {
		return "", ai.ErrUnavailable
	}
	text, err := u.client.Generate(ctx, prompt, opts)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

// ExtractActionItems asks the model for a JSON array of action items and
// falls back to line extraction, then to keyword rules, as the response
// degrades.
func (u *processingUsecase) ExtractActionItems(ctx context.Context, body, instruction string) ([]string, bool) {
	prompt := fmt.Sprintf(`%s

EMAIL CONTENT:
%s

IMPORTANT: Return ONLY a valid JSON array of action items.
Example: ["Review Q4 report by Friday", "Schedule team meeting for next week", "Update project documentation"]

RESPONSE FORMAT:
["action item 1", "action item 2", "action item 3"]`, instruction, body)

	text, err := u.generate(ctx, prompt, ai.GenerateOptions{Temperature: 0.3, TopP: 0.8, MaxTokens: 500})
	if err != nil {
		log.Printf("[Engine] Action item extraction failed: %v, using keyword rules", err)
		return keywordActionItems(body), false
	}

	cleaned := stripCodeFences(text)

	var items []string
	if err := json.Unmarshal([]byte(cleaned), &items); err == nil && len(items) > 0 {
		return items, true
	}

	// Not a well-formed non-empty JSON array; salvage lines that look like items
	return extractFromLines(cleaned), true
}

// extractFromLines pulls plausible action items from free-text model output.
func extractFromLines(text string) []string {
	var items []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		// Skip lines that are clearly not action items
		lower := strings.ToLower(line)
		if strings.Contains(lower, "json") || strings.Contains(lower, "array") ||
			strings.Contains(lower, "example") || strings.Contains(lower, "format") {
			continue
		}

		clean := strings.TrimSpace(strings.TrimLeft(line, "-•* "))
		if len(clean) > 10 {
			items = append(items, clean)
		}
		if len(items) == 5 {
			break
		}
	}
	return items
}

// keywordActionItems is the deterministic extraction used when the AI backend
// is unreachable. Fixed keyword groups map to fixed phrases, capped at 3.
func keywordActionItems(body string) []string {
	lower := strings.ToLower(body)
	var items []string

	rules := []struct {
		keywords []string
		item     string
	}{
		{[]string{"review", "check", "look at"}, "Review the document"},
		{[]string{"schedule", "meeting", "call"}, "Schedule a meeting"},
		{[]string{"update", "progress", "status"}, "Provide updates"},
		{[]string{"deadline", "friday", "end of day"}, "Meet the deadline"},
		{[]string{"feedback", "comments", "suggestions"}, "Provide feedback"},
	}

	for _, rule := range rules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				items = append(items, rule.item)
				break
			}
		}
	}

	if len(items) == 0 {
		items = []string{
			"Review the email content",
			"Identify key action items",
			"Set appropriate deadlines",
		}
	}

	if len(items) > 3 {
		items = items[:3]
	}
	return items
}

// GenerateSummary produces a structured summary for an email. The AI reply
// is expected as a JSON object; free-text replies go through a section
// parser, and AI failure selects the rule-based summary.
func (u *processingUsecase) GenerateSummary(ctx context.Context, email *emaildomain.Email) (*emaildomain.SummaryResult, bool) {
	prompt := fmt.Sprintf(`Analyze the following email and return ONLY a JSON object with exactly these fields:
{"summary": "one or two sentence summary", "key_points": ["..."], "action_items": ["..."], "sentiment": "positive|negative|neutral|urgent", "tags": ["..."]}

FROM: %s
SUBJECT: %s

BODY:
%s`, email.Sender, email.Subject, email.Body)

	text, err := u.generate(ctx, prompt, ai.GenerateOptions{Temperature: 0.3, TopP: 0.8, MaxTokens: 600})
	if err != nil {
		log.Printf("[Engine] Summary generation failed for %s: %v, using rule-based summary", email.ID, err)
		return ruleBasedSummary(email), false
	}

	cleaned := stripCodeFences(text)

	var result emaildomain.SummaryResult
	if err := json.Unmarshal([]byte(cleaned), &result); err == nil && result.Summary != "" {
		return &result, true
	}

	return parseSummarySections(cleaned), true
}

// parseSummarySections recovers a summary from a free-text model reply by
// recognizing section headers and accumulating bullet lines beneath them.
func parseSummarySections(text string) *emaildomain.SummaryResult {
	result := &emaildomain.SummaryResult{Sentiment: emaildomain.SentimentNeutral}

	section := ""
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lower := strings.ToLower(line)

		switch {
		case strings.Contains(lower, "summary:"):
			section = "summary"
			if rest := afterColon(line); rest != "" {
				result.Summary = rest
			}
			continue
		case strings.Contains(lower, "key points:"):
			section = "key_points"
			continue
		case strings.Contains(lower, "action items:"):
			section = "action_items"
			continue
		case strings.Contains(lower, "sentiment:"):
			section = ""
			if rest := afterColon(line); rest != "" {
				result.Sentiment = strings.ToLower(rest)
			}
			continue
		case strings.Contains(lower, "categories:"), strings.Contains(lower, "tags:"):
			section = "tags"
			continue
		}

		isBullet := strings.HasPrefix(line, "-") || strings.HasPrefix(line, "•")
		item := strings.TrimSpace(strings.TrimLeft(line, "-•* "))

		switch section {
		case "summary":
			if !isBullet && result.Summary == "" {
				result.Summary = line
			}
		case "key_points":
			if isBullet && len(result.KeyPoints) < 5 {
				result.KeyPoints = append(result.KeyPoints, item)
			}
		case "action_items":
			if isBullet && len(result.ActionItems) < 3 {
				result.ActionItems = append(result.ActionItems, item)
			}
		case "tags":
			if isBullet {
				result.Tags = append(result.Tags, item)
			}
		}
	}

	return result
}

func afterColon(line string) string {
	if idx := strings.Index(line, ":"); idx >= 0 {
		return strings.TrimSpace(line[idx+1:])
	}
	return ""
}

var (
	urgentWords   = []string{"urgent", "asap", "immediately", "critical", "emergency"}
	positiveWords = []string{"thank", "great", "good", "appreciate", "excellent", "congrat"}
	negativeWords = []string{"problem", "issue", "concern", "complaint", "error", "failed"}
	actionVerbs   = []string{"please", "need", "required", "should", "must", "action"}
)

// ruleBasedSummary is the deterministic summary used when the AI backend is
// unreachable: keyword sentiment, first 20 words of the body, two fixed key
// points and up to two action-verb sentences.
func ruleBasedSummary(email *emaildomain.Email) *emaildomain.SummaryResult {
	lower := strings.ToLower(email.Body)

	sentiment := emaildomain.SentimentNeutral
	switch {
	case containsAny(lower, urgentWords):
		sentiment = emaildomain.SentimentUrgent
	case containsAny(lower, positiveWords):
		sentiment = emaildomain.SentimentPositive
	case containsAny(lower, negativeWords):
		sentiment = emaildomain.SentimentNegative
	}

	words := strings.Fields(email.Body)
	summary := email.Body
	if len(words) > 20 {
		summary = strings.Join(words[:20], " ") + "..."
	}

	var actionItems []string
	for _, sentence := range strings.Split(email.Body, ".") {
		sentence = strings.TrimSpace(sentence)
		if sentence == "" {
			continue
		}
		if containsAny(strings.ToLower(sentence), actionVerbs) {
			actionItems = append(actionItems, sentence)
		}
		if len(actionItems) == 2 {
			break
		}
	}

	tags := []string{}
	if email.Priority != "" {
		tags = append(tags, email.Priority)
	}
	tags = append(tags, "email")

	return &emaildomain.SummaryResult{
		Summary: summary,
		KeyPoints: []string{
			"Email from " + email.Sender,
			"Subject: " + email.Subject,
		},
		ActionItems: actionItems,
		Sentiment:   sentiment,
		Tags:        tags,
	}
}

func containsAny(text string, words []string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}

// SummaryForEmail returns the summary cached on the email, or generates one
// and caches it on the record.
func (u *processingUsecase) SummaryForEmail(ctx context.Context, email *emaildomain.Email) (*emaildomain.SummaryResult, error) {
	if email.Summary != nil {
		return email.Summary, nil
	}

	summary, _ := u.GenerateSummary(ctx, email)
	email.Summary = summary
	email.AISummary = summary.Summary

	if err := u.emailRepo.UpdateFields(email.ID, map[string]interface{}{
		"summary":    summary,
		"ai_summary": summary.Summary,
	}); err != nil {
		return nil, fmt.Errorf("cache summary for %s: %w", email.ID, err)
	}
	return summary, nil
}

// GenerateAutoReply drafts an acknowledgment for an incoming email body.
func (u *processingUsecase) GenerateAutoReply(ctx context.Context, body, instruction string) (string, bool) {
	if u.client == nil {
		return fallbackReplyNoClient, false
	}

	prompt := fmt.Sprintf(`%s

ORIGINAL EMAIL:
%s

Generate a professional, concise auto-reply that acknowledges receipt and sets appropriate expectations.
Keep it under 100 words.`, instruction, body)

	reply, err := u.generate(ctx, prompt, ai.GenerateOptions{Temperature: 0.2, TopP: 0.7, MaxTokens: 200})
	if err != nil {
		log.Printf("[Engine] Auto-reply generation failed: %v", err)
		return fallbackReplyOnError, false
	}
	return reply, true
}

// Follow-up suggestions attached to AI-generated drafts.
var draftFollowUps = []string{
	"Schedule a follow-up meeting",
	"Share additional documents if needed",
	"Confirm receipt and understanding",
}

// DraftEmail composes a fresh email from free-form context.
func (u *processingUsecase) DraftEmail(ctx context.Context, draftContext, recipient, subject string) (*DraftResult, bool) {
	prompt := fmt.Sprintf(`Draft a professional email with the following details:

RECIPIENT: %s
SUBJECT: %s
CONTEXT/KEY POINTS: %s

Please generate a complete, professional email with appropriate greeting, body content, and closing.
Make it clear, concise, and actionable.`, recipient, subject, draftContext)

	body, err := u.generate(ctx, prompt, ai.GenerateOptions{Temperature: 0.4, TopP: 0.8, MaxTokens: 800})
	if err != nil {
		log.Printf("[Engine] Draft generation failed: %v, using template draft", err)
		return templateDraft(draftContext, recipient, subject), false
	}

	return &DraftResult{Body: body, SuggestedFollowUps: draftFollowUps}, true
}

// templateDraft is the deterministic draft used when the AI backend is
// unreachable.
func templateDraft(draftContext, recipient, subject string) *DraftResult {
	name := "Recipient"
	if idx := strings.Index(recipient, "@"); idx > 0 {
		local := recipient[:idx]
		name = strings.ToUpper(local[:1]) + local[1:]
	}

	contextLine := "I appreciate you reaching out."
	if draftContext != "" {
		contextLine = strings.ToLower(draftContext)
	}

	body := fmt.Sprintf(`Dear %s,

I hope this email finds you well.

Regarding your message about "%s", %s

Thank you for bringing this to my attention. I will review the details and follow up accordingly.

Best regards,
[Your Name]`, name, subject, contextLine)

	return &DraftResult{
		Body: body,
		SuggestedFollowUps: []string{
			"Schedule a discussion to review details",
			"Provide additional information as needed",
			"Coordinate next steps with relevant parties",
		},
	}
}

// stripCodeFences removes markdown code-fence artifacts from a model reply.
func stripCodeFences(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")
	return strings.TrimSpace(text)
}
