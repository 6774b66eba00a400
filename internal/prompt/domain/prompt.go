package domain

import "time"

// Task kinds recognized by the prompt store
const (
	TaskKindActionItems = "action_items"
	TaskKindAutoReply   = "auto_reply"
)

// Built-in default instruction strings
const (
	DefaultActionItemsPrompt = "Extract specific action items, deadlines, and responsibilities from this email. Format as bullet points."
	DefaultAutoReplyPrompt   = "Draft a professional auto-reply acknowledging receipt and indicating when to expect a proper response."
)

// PromptConfig holds the instruction string per task kind. Exactly one
// active record exists per deployment; it is created lazily from defaults.
type PromptConfig struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	ActionItems string    `json:"action_items" gorm:"type:text"`
	AutoReply   string    `json:"auto_reply" gorm:"type:text"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM
func (PromptConfig) TableName() string {
	return "prompts"
}

// DefaultConfig returns a fresh config seeded with the built-in defaults.
func DefaultConfig() *PromptConfig {
	return &PromptConfig{
		ActionItems: DefaultActionItemsPrompt,
		AutoReply:   DefaultAutoReplyPrompt,
	}
}

// ValidTaskKind reports whether kind names a recognized prompt category.
func ValidTaskKind(kind string) bool {
	return kind == TaskKindActionItems || kind == TaskKindAutoReply
}
