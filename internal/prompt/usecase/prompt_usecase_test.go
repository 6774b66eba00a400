package usecase

import (
	"errors"
	"path/filepath"
	"testing"

	promptdomain "email-agent-backend/internal/prompt/domain"
	promptrepo "email-agent-backend/internal/prompt/repository"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testUsecase(t *testing.T) PromptUsecase {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "prompts_test.db")
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite %q: %v", dbPath, err)
	}
	if err := db.AutoMigrate(&promptdomain.PromptConfig{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return NewPromptUsecase(promptrepo.NewGormPromptRepository(db))
}

func TestGetPromptsSeedsDefaults(t *testing.T) {
	uc := testUsecase(t)

	config, err := uc.GetPrompts()
	if err != nil {
		t.Fatalf("GetPrompts() error: %v", err)
	}
	if config.ActionItems != promptdomain.DefaultActionItemsPrompt {
		t.Errorf("ActionItems = %q, want built-in default", config.ActionItems)
	}
	if config.AutoReply != promptdomain.DefaultAutoReplyPrompt {
		t.Errorf("AutoReply = %q, want built-in default", config.AutoReply)
	}
	if config.ID == "" {
		t.Error("seeded config has empty ID")
	}

	// Second read returns the same record, not a new one
	again, err := uc.GetPrompts()
	if err != nil {
		t.Fatalf("GetPrompts() second call error: %v", err)
	}
	if again.ID != config.ID {
		t.Errorf("second GetPrompts() returned ID %q, want %q", again.ID, config.ID)
	}
}

func TestUpdatePromptOnlyTouchesNamedKind(t *testing.T) {
	uc := testUsecase(t)

	updated, err := uc.UpdatePrompt(promptdomain.TaskKindActionItems, "List every task with its owner.")
	if err != nil {
		t.Fatalf("UpdatePrompt() error: %v", err)
	}
	if updated.ActionItems != "List every task with its owner." {
		t.Errorf("ActionItems = %q, want updated content", updated.ActionItems)
	}
	if updated.AutoReply != promptdomain.DefaultAutoReplyPrompt {
		t.Errorf("AutoReply = %q, want untouched default", updated.AutoReply)
	}
}

func TestUpdatePromptInvalidKind(t *testing.T) {
	uc := testUsecase(t)

	before, err := uc.GetPrompts()
	if err != nil {
		t.Fatalf("GetPrompts() error: %v", err)
	}

	_, err = uc.UpdatePrompt("summarize", "anything")
	if !errors.Is(err, ErrInvalidTaskKind) {
		t.Fatalf("UpdatePrompt(summarize) error = %v, want ErrInvalidTaskKind", err)
	}

	after, err := uc.GetPrompts()
	if err != nil {
		t.Fatalf("GetPrompts() error: %v", err)
	}
	if after.ActionItems != before.ActionItems || after.AutoReply != before.AutoReply {
		t.Error("invalid update mutated the stored config")
	}
}

func TestResetToDefaults(t *testing.T) {
	uc := testUsecase(t)

	if _, err := uc.UpdatePrompt(promptdomain.TaskKindAutoReply, "Custom reply instruction."); err != nil {
		t.Fatalf("UpdatePrompt() error: %v", err)
	}

	config, err := uc.ResetToDefaults()
	if err != nil {
		t.Fatalf("ResetToDefaults() error: %v", err)
	}
	if config.AutoReply != promptdomain.DefaultAutoReplyPrompt {
		t.Errorf("AutoReply after reset = %q, want built-in default", config.AutoReply)
	}
	if config.ActionItems != promptdomain.DefaultActionItemsPrompt {
		t.Errorf("ActionItems after reset = %q, want built-in default", config.ActionItems)
	}
}
