package domain

import "time"

// EmailStatus represents the lifecycle state of a stored email
type EmailStatus string

const (
	StatusUnread    EmailStatus = "unread"
	StatusProcessed EmailStatus = "processed"
	StatusDrafted   EmailStatus = "drafted"
	StatusReplied   EmailStatus = "replied"
)

// Priority levels assigned by the processing pipeline
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// Sentiment values a summary may carry
const (
	SentimentPositive = "positive"
	SentimentNegative = "negative"
	SentimentNeutral  = "neutral"
	SentimentUrgent   = "urgent"
)

// Email is a stored email record. The AI-derived fields (ActionItems,
// Priority, Tags, ProcessedAt, Summary) are written together by the
// processing pipeline; an unprocessed email has them empty.
type Email struct {
	ID          string                 `json:"id" gorm:"primaryKey"`
	Sender      string                 `json:"sender" gorm:"not null"`
	Subject     string                 `json:"subject"`
	Body        string                 `json:"body" gorm:"type:text"`
	Timestamp   time.Time              `json:"timestamp"`
	Status      EmailStatus            `json:"status" gorm:"default:unread"`
	ActionItems []string               `json:"action_items" gorm:"serializer:json"`
	ProcessedAt *time.Time             `json:"processed_at,omitempty"`
	AISummary   string                 `json:"ai_summary,omitempty" gorm:"type:text"`
	Priority    string                 `json:"priority,omitempty"`
	Tags        []string               `json:"tags" gorm:"serializer:json"`
	Summary     *SummaryResult         `json:"summary,omitempty" gorm:"serializer:json"`
	Metadata    map[string]interface{} `json:"metadata" gorm:"serializer:json"`
}

// TableName specifies the table name for GORM
func (Email) TableName() string {
	return "emails"
}

// SummaryResult is a structured summary produced per email on demand.
// It is cached on the Email record once generated.
type SummaryResult struct {
	Summary     string   `json:"summary"`
	KeyPoints   []string `json:"key_points"`
	ActionItems []string `json:"action_items"`
	Sentiment   string   `json:"sentiment"`
	Tags        []string `json:"tags"`
}
