package dto

import (
	"time"

	emaildomain "email-agent-backend/internal/email/domain"
)

type ProcessEmailsResponse struct {
	Message      string `json:"message"`
	Count        int    `json:"count"`
	ProcessingID string `json:"processing_id"`
}

type RewriteRequest struct {
	Email string `json:"email" binding:"required"`
	Tone  string `json:"tone" binding:"required"`
}

type RewriteResponse struct {
	RewrittenEmail string `json:"rewritten_email"`
	Tone           string `json:"tone"`
	AIGenerated    bool   `json:"ai_generated"`
}

type SummaryResponse struct {
	ID          string    `json:"id"`
	Subject     string    `json:"subject"`
	Sender      string    `json:"sender"`
	Timestamp   time.Time `json:"timestamp"`
	Priority    string    `json:"priority"`
	Summary     string    `json:"summary"`
	Tags        []string  `json:"tags"`
	Sentiment   string    `json:"sentiment"`
	KeyPoints   []string  `json:"key_points"`
	ActionItems []string  `json:"action_items"`
}

type EmailSummaryDetail struct {
	Email   EmailBrief                 `json:"email"`
	Summary *emaildomain.SummaryResult `json:"summary"`
}

type EmailBrief struct {
	ID        string    `json:"id"`
	Subject   string    `json:"subject"`
	Sender    string    `json:"sender"`
	Timestamp time.Time `json:"timestamp"`
	Priority  string    `json:"priority"`
	Body      string    `json:"body"`
}

type GenerateReplyRequest struct {
	EmailContent    string `json:"email_content" binding:"required"`
	CurrentTemplate string `json:"current_template" binding:"required"`
}

type GenerateReplyResponse struct {
	Reply       string `json:"reply"`
	AIGenerated bool   `json:"ai_generated"`
	Message     string `json:"message"`
}

type TestReplyRequest struct {
	TestEmail string `json:"test_email" binding:"required"`
}

type TestReplyResponse struct {
	TestEmail      string    `json:"test_email"`
	GeneratedReply string    `json:"generated_reply"`
	AIGenerated    bool      `json:"ai_generated"`
	Timestamp      time.Time `json:"timestamp"`
}

type DraftRequest struct {
	Recipient string `json:"recipient" binding:"required,email"`
	Subject   string `json:"subject" binding:"required"`
	Context   string `json:"context"`
}

type DraftResponse struct {
	Body               string   `json:"body"`
	SuggestedFollowUps []string `json:"suggested_follow_ups"`
	AIGenerated        bool     `json:"ai_generated"`
}

// Auto-reply settings endpoint payloads. Settings are not persisted; the
// stats shown are fixed demo values.
type AutoReplySettings struct {
	Enabled            bool   `json:"enabled"`
	ResponseTemplate   string `json:"response_template"`
	UseAICustomization bool   `json:"use_ai_customization"`
	WorkingHoursOnly   bool   `json:"working_hours_only"`
}

type AutoReplyStats struct {
	RepliesSent       int     `json:"replies_sent"`
	SuccessRate       float64 `json:"success_rate"`
	AIGeneratedCount  int     `json:"ai_generated_count"`
	TemplateUsedCount int     `json:"template_used_count"`
}

type RecentReply struct {
	EmailID     string `json:"email_id"`
	Subject     string `json:"subject"`
	Recipient   string `json:"recipient"`
	ReplyType   string `json:"reply_type"`
	Timestamp   string `json:"timestamp"`
	Status      string `json:"status"`
	AIGenerated bool   `json:"ai_generated"`
}

type AutoReplyOverview struct {
	Settings      AutoReplySettings `json:"settings"`
	Stats         AutoReplyStats    `json:"stats"`
	RecentReplies []RecentReply     `json:"recent_replies"`
}

type UpdateSettingsResponse struct {
	Message  string            `json:"message"`
	Settings AutoReplySettings `json:"settings"`
}
