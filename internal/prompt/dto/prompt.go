package dto

type PromptUpdateRequest struct {
	PromptType string `json:"prompt_type" binding:"required"`
	Content    string `json:"content" binding:"required"`
}

type PromptUpdateResponse struct {
	Message       string `json:"message"`
	UpdatedPrompt string `json:"updated_prompt"`
}
