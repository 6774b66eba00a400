package usecase

import (
	"context"
	"strings"
	"testing"

	emaildomain "email-agent-backend/internal/email/domain"
	"email-agent-backend/pkg/ai"
)

// stubClient returns a canned reply or error for every Generate call.
type stubClient struct {
	reply string
	err   error
}

func (s *stubClient) Generate(ctx context.Context, prompt string, opts ai.GenerateOptions) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

func (s *stubClient) Model() string { return "stub" }

func testEngine(client ai.TextClient) *processingUsecase {
	uc := NewProcessingUsecase(newFakeEmailRepo(), &fakePromptUsecase{}, client, 0)
	return uc.(*processingUsecase)
}

var validItems = map[string]bool{
	"Review the document": true,
	"Schedule a meeting":  true,
	"Provide updates":     true,
	"Meet the deadline":   true,
	"Provide feedback":    true,
}

func TestExtractActionItemsJSONArray(t *testing.T) {
	uc := testEngine(&stubClient{reply: `["Review Q4 report by Friday", "Schedule team meeting"]`})

	items, aiGenerated := uc.ExtractActionItems(context.Background(), "body", "instruction")
	if !aiGenerated {
		t.Error("aiGenerated = false, want true for valid JSON reply")
	}
	if len(items) != 2 || items[0] != "Review Q4 report by Friday" {
		t.Errorf("items = %v, want parsed JSON array", items)
	}
}

func TestExtractActionItemsStripsCodeFences(t *testing.T) {
	uc := testEngine(&stubClient{reply: "```json\n[\"Update the roadmap document\"]\n```"})

	items, aiGenerated := uc.ExtractActionItems(context.Background(), "body", "instruction")
	if !aiGenerated {
		t.Error("aiGenerated = false, want true")
	}
	if len(items) != 1 || items[0] != "Update the roadmap document" {
		t.Errorf("items = %v, want fenced JSON parsed", items)
	}
}

func TestExtractActionItemsLineFallback(t *testing.T) {
	reply := `Here are the action items in the requested format:
- Review the quarterly budget figures
- Schedule the planning session with finance
Some JSON array example text to skip`

	uc := testEngine(&stubClient{reply: reply})

	items, aiGenerated := uc.ExtractActionItems(context.Background(), "body", "instruction")
	if !aiGenerated {
		t.Error("aiGenerated = false, want true for free-text reply")
	}
	if len(items) != 2 {
		t.Fatalf("items = %v, want 2 salvaged lines", items)
	}
	if items[0] != "Review the quarterly budget figures" {
		t.Errorf("items[0] = %q, bullet not stripped", items[0])
	}
	for _, item := range items {
		lower := strings.ToLower(item)
		if strings.Contains(lower, "json") || strings.Contains(lower, "format") {
			t.Errorf("meta line leaked into items: %q", item)
		}
	}
}

func TestExtractActionItemsKeywordFallback(t *testing.T) {
	uc := testEngine(&stubClient{err: ai.ErrRequestFailed})

	body := "Please review the attached report and schedule a call. The deadline is Friday. Send your feedback and status updates."
	items, aiGenerated := uc.ExtractActionItems(context.Background(), body, "instruction")
	if aiGenerated {
		t.Error("aiGenerated = true, want false on AI failure")
	}
	if len(items) == 0 || len(items) > 3 {
		t.Fatalf("fallback returned %d items, want 1..3", len(items))
	}
	for _, item := range items {
		if !validItems[item] {
			t.Errorf("fallback item %q not in the fixed keyword set", item)
		}
	}
}

func TestExtractActionItemsKeywordFallbackNoMatch(t *testing.T) {
	uc := testEngine(nil)

	items, aiGenerated := uc.ExtractActionItems(context.Background(), "Nothing actionable here.", "instruction")
	if aiGenerated {
		t.Error("aiGenerated = true, want false with nil client")
	}
	if len(items) != 3 {
		t.Fatalf("generic fallback returned %d items, want 3", len(items))
	}
	if items[0] != "Review the email content" {
		t.Errorf("items[0] = %q, want generic fallback set", items[0])
	}
}

func TestGenerateSummaryJSONObject(t *testing.T) {
	uc := testEngine(&stubClient{reply: `{"summary": "Budget review requested.", "key_points": ["Q4 numbers"], "action_items": ["Send figures"], "sentiment": "neutral", "tags": ["finance"]}`})

	email := &emaildomain.Email{ID: "e1", Sender: "a@example.com", Subject: "Budget", Body: "Please send the Q4 figures."}
	summary, aiGenerated := uc.GenerateSummary(context.Background(), email)
	if !aiGenerated {
		t.Error("aiGenerated = false, want true for JSON reply")
	}
	if summary.Summary != "Budget review requested." {
		t.Errorf("Summary = %q, want parsed value", summary.Summary)
	}
	if summary.Sentiment != emaildomain.SentimentNeutral {
		t.Errorf("Sentiment = %q, want neutral", summary.Sentiment)
	}
}

func TestGenerateSummarySectionFallback(t *testing.T) {
	reply := `Summary: The sender asks for design feedback.
Key Points:
- Mockups are ready
- Review due Thursday
Action Items:
- Send comments by Thursday
Sentiment: positive
Tags:
- design`

	uc := testEngine(&stubClient{reply: reply})

	email := &emaildomain.Email{ID: "e1", Sender: "a@example.com", Subject: "Mockups", Body: "body"}
	summary, aiGenerated := uc.GenerateSummary(context.Background(), email)
	if !aiGenerated {
		t.Error("aiGenerated = false, want true for free-text reply")
	}
	if summary.Summary != "The sender asks for design feedback." {
		t.Errorf("Summary = %q, section header value not captured", summary.Summary)
	}
	if len(summary.KeyPoints) != 2 {
		t.Errorf("KeyPoints = %v, want 2 bullets", summary.KeyPoints)
	}
	if len(summary.ActionItems) != 1 || summary.ActionItems[0] != "Send comments by Thursday" {
		t.Errorf("ActionItems = %v, want single bullet", summary.ActionItems)
	}
	if summary.Sentiment != emaildomain.SentimentPositive {
		t.Errorf("Sentiment = %q, want positive", summary.Sentiment)
	}
	if len(summary.Tags) != 1 || summary.Tags[0] != "design" {
		t.Errorf("Tags = %v, want [design]", summary.Tags)
	}
}

func TestRuleBasedSummaryProperties(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		sentiment string
	}{
		{"urgent wins", "This is urgent, thank you for the great work", emaildomain.SentimentUrgent},
		{"positive", "Thank you for the excellent work on this", emaildomain.SentimentPositive},
		{"negative", "There is a problem with the latest build", emaildomain.SentimentNegative},
		{"neutral", "The report is attached for reference", emaildomain.SentimentNeutral},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			uc := testEngine(nil)
			email := &emaildomain.Email{ID: "e1", Sender: "a@example.com", Subject: "Subject", Body: tc.body}

			summary, aiGenerated := uc.GenerateSummary(context.Background(), email)
			if aiGenerated {
				t.Error("aiGenerated = true, want false with nil client")
			}
			if summary.Sentiment != tc.sentiment {
				t.Errorf("Sentiment = %q, want %q", summary.Sentiment, tc.sentiment)
			}
			if len(summary.KeyPoints) != 2 {
				t.Fatalf("KeyPoints = %v, want exactly 2", summary.KeyPoints)
			}
			if summary.KeyPoints[0] != "Email from a@example.com" {
				t.Errorf("KeyPoints[0] = %q, want sender line", summary.KeyPoints[0])
			}
			if summary.KeyPoints[1] != "Subject: Subject" {
				t.Errorf("KeyPoints[1] = %q, want subject line", summary.KeyPoints[1])
			}
			if len(summary.ActionItems) > 2 {
				t.Errorf("ActionItems = %v, want at most 2", summary.ActionItems)
			}
		})
	}
}

func TestRuleBasedSummaryTruncatesBody(t *testing.T) {
	words := make([]string, 30)
	for i := range words {
		words[i] = "word"
	}
	uc := testEngine(nil)
	email := &emaildomain.Email{ID: "e1", Sender: "a@example.com", Subject: "S", Body: strings.Join(words, " ")}

	summary, _ := uc.GenerateSummary(context.Background(), email)
	if !strings.HasSuffix(summary.Summary, "...") {
		t.Errorf("Summary = %q, want truncation marker", summary.Summary)
	}
	if got := len(strings.Fields(summary.Summary)); got != 20 {
		t.Errorf("Summary word count = %d, want 20", got)
	}
}

func TestGenerateAutoReplyFallbacks(t *testing.T) {
	noClient := testEngine(nil)
	reply, aiGenerated := noClient.GenerateAutoReply(context.Background(), "body", "instruction")
	if aiGenerated {
		t.Error("aiGenerated = true, want false with nil client")
	}
	if reply != fallbackReplyNoClient {
		t.Errorf("reply = %q, want no-client fallback", reply)
	}

	failing := testEngine(&stubClient{err: ai.ErrRequestFailed})
	reply, aiGenerated = failing.GenerateAutoReply(context.Background(), "body", "instruction")
	if aiGenerated {
		t.Error("aiGenerated = true, want false on backend error")
	}
	if reply != fallbackReplyOnError {
		t.Errorf("reply = %q, want on-error fallback", reply)
	}
}

func TestGenerateAutoReplyAIPath(t *testing.T) {
	uc := testEngine(&stubClient{reply: "Thanks, received your message."})

	reply, aiGenerated := uc.GenerateAutoReply(context.Background(), "body", "instruction")
	if !aiGenerated {
		t.Error("aiGenerated = false, want true")
	}
	if reply != "Thanks, received your message." {
		t.Errorf("reply = %q, want model text", reply)
	}
}

func TestDraftEmailTemplateFallback(t *testing.T) {
	uc := testEngine(nil)

	draft, aiGenerated := uc.DraftEmail(context.Background(), "Project kickoff next steps", "jane.doe@example.com", "Kickoff")
	if aiGenerated {
		t.Error("aiGenerated = true, want false with nil client")
	}
	if !strings.HasPrefix(draft.Body, "Dear Jane.doe,") {
		t.Errorf("draft greeting wrong: %q", strings.SplitN(draft.Body, "\n", 2)[0])
	}
	if !strings.Contains(draft.Body, `"Kickoff"`) {
		t.Error("draft body does not reference subject")
	}
	if !strings.Contains(draft.Body, "project kickoff next steps") {
		t.Error("draft body does not include lowercased context")
	}
	if len(draft.SuggestedFollowUps) != 3 {
		t.Errorf("SuggestedFollowUps = %v, want 3 entries", draft.SuggestedFollowUps)
	}
}

func TestStripCodeFences(t *testing.T) {
	got := stripCodeFences("```json\n[\"a\"]\n```")
	if got != `["a"]` {
		t.Errorf("stripCodeFences = %q, want bare JSON", got)
	}
}
