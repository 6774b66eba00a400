package usecase

import (
	"errors"
	"fmt"

	promptdomain "email-agent-backend/internal/prompt/domain"
	"email-agent-backend/internal/prompt/repository"
)

// ErrInvalidTaskKind is returned when a prompt update names an unrecognized
// task kind. No mutation happens in that case.
var ErrInvalidTaskKind = errors.New("invalid task kind: must be one of action_items, auto_reply")

// PromptUsecase defines the interface for prompt configuration logic
type PromptUsecase interface {
	// GetPrompts returns the active config, creating it from the built-in
	// defaults when none exists. Absence is not an error.
	GetPrompts() (*promptdomain.PromptConfig, error)

	// UpdatePrompt replaces the instruction string for one task kind and
	// returns the refreshed config.
	UpdatePrompt(taskKind, content string) (*promptdomain.PromptConfig, error)

	// ResetToDefaults deletes the active config and recreates it from the
	// built-in defaults. Destructive and unconditional.
	ResetToDefaults() (*promptdomain.PromptConfig, error)
}

type promptUsecase struct {
	promptRepo repository.PromptRepository
}

// NewPromptUsecase creates a new instance of promptUsecase
func NewPromptUsecase(promptRepo repository.PromptRepository) PromptUsecase {
	return &promptUsecase{promptRepo: promptRepo}
}

func (u *promptUsecase) GetPrompts() (*promptdomain.PromptConfig, error) {
	config, err := u.promptRepo.FindActive()
	if err != nil {
		return nil, fmt.Errorf("load prompt config: %w", err)
	}
	if config != nil {
		return config, nil
	}

	// First access: seed with defaults
	config = promptdomain.DefaultConfig()
	if err := u.promptRepo.Create(config); err != nil {
		return nil, fmt.Errorf("seed default prompts: %w", err)
	}
	return config, nil
}

func (u *promptUsecase) UpdatePrompt(taskKind, content string) (*promptdomain.PromptConfig, error) {
	if !promptdomain.ValidTaskKind(taskKind) {
		return nil, ErrInvalidTaskKind
	}

	current, err := u.GetPrompts()
	if err != nil {
		return nil, err
	}

	// Task kinds map 1:1 onto column names
	if err := u.promptRepo.UpdateFields(current.ID, map[string]interface{}{taskKind: content}); err != nil {
		return nil, fmt.Errorf("update prompt %s: %w", taskKind, err)
	}

	return u.GetPrompts()
}

func (u *promptUsecase) ResetToDefaults() (*promptdomain.PromptConfig, error) {
	if err := u.promptRepo.DeleteAll(); err != nil {
		return nil, fmt.Errorf("reset prompts: %w", err)
	}

	config := promptdomain.DefaultConfig()
	if err := u.promptRepo.Create(config); err != nil {
		return nil, fmt.Errorf("recreate default prompts: %w", err)
	}
	return config, nil
}
