package repository

import (
	"path/filepath"
	"testing"
	"time"

	emaildomain "email-agent-backend/internal/email/domain"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testRepo(t *testing.T) EmailRepository {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "emails_test.db")
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite %q: %v", dbPath, err)
	}
	if err := db.AutoMigrate(&emaildomain.Email{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return NewGormEmailRepository(db)
}

func testEmail(sender, subject, body string, ts time.Time) *emaildomain.Email {
	return &emaildomain.Email{
		Sender:      sender,
		Subject:     subject,
		Body:        body,
		Timestamp:   ts,
		Status:      emaildomain.StatusUnread,
		ActionItems: []string{},
		Tags:        []string{},
		Metadata:    map[string]interface{}{},
	}
}

func TestCreateAssignsID(t *testing.T) {
	repo := testRepo(t)

	email := testEmail("a@example.com", "Hello", "Body", time.Now())
	if err := repo.Create(email); err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if email.ID == "" {
		t.Error("Create() left ID empty, want generated uuid")
	}
}

func TestFindByIDMissing(t *testing.T) {
	repo := testRepo(t)

	got, err := repo.FindByID("does-not-exist")
	if err != nil {
		t.Fatalf("FindByID() error: %v", err)
	}
	if got != nil {
		t.Errorf("FindByID() = %+v, want nil for missing id", got)
	}
}

func TestFindAllOrderedByTimestamp(t *testing.T) {
	repo := testRepo(t)

	base := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	newer := testEmail("b@example.com", "Newer", "Body", base.Add(2*time.Hour))
	older := testEmail("a@example.com", "Older", "Body", base)

	// Insert newest first to prove ordering comes from the query
	if err := repo.CreateBatch([]*emaildomain.Email{newer, older}); err != nil {
		t.Fatalf("CreateBatch() error: %v", err)
	}

	emails, err := repo.FindAll()
	if err != nil {
		t.Fatalf("FindAll() error: %v", err)
	}
	if len(emails) != 2 {
		t.Fatalf("FindAll() returned %d emails, want 2", len(emails))
	}
	if emails[0].Subject != "Older" || emails[1].Subject != "Newer" {
		t.Errorf("FindAll() order = [%s, %s], want [Older, Newer]", emails[0].Subject, emails[1].Subject)
	}
}

func TestFindByStatus(t *testing.T) {
	repo := testRepo(t)

	unread := testEmail("a@example.com", "Unread", "Body", time.Now())
	done := testEmail("b@example.com", "Done", "Body", time.Now())
	done.Status = emaildomain.StatusProcessed

	if err := repo.CreateBatch([]*emaildomain.Email{unread, done}); err != nil {
		t.Fatalf("CreateBatch() error: %v", err)
	}

	processed, err := repo.FindByStatus(emaildomain.StatusProcessed)
	if err != nil {
		t.Fatalf("FindByStatus() error: %v", err)
	}
	if len(processed) != 1 {
		t.Fatalf("FindByStatus(processed) returned %d emails, want 1", len(processed))
	}
	if processed[0].Subject != "Done" {
		t.Errorf("FindByStatus(processed)[0].Subject = %q, want Done", processed[0].Subject)
	}
}

func TestUpdateFieldsPartial(t *testing.T) {
	repo := testRepo(t)

	email := testEmail("a@example.com", "Subject", "Body", time.Now())
	if err := repo.Create(email); err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	now := time.Date(2024, 1, 16, 9, 0, 0, 0, time.UTC)
	err := repo.UpdateFields(email.ID, map[string]interface{}{
		"status":       emaildomain.StatusProcessed,
		"processed_at": now,
		"action_items": []string{"Review the document"},
		"priority":     emaildomain.PriorityHigh,
		"tags":         []string{"project", "action-required"},
	})
	if err != nil {
		t.Fatalf("UpdateFields() error: %v", err)
	}

	got, err := repo.FindByID(email.ID)
	if err != nil {
		t.Fatalf("FindByID() error: %v", err)
	}
	if got == nil {
		t.Fatal("FindByID() returned nil after update")
	}
	if got.Status != emaildomain.StatusProcessed {
		t.Errorf("Status = %q, want processed", got.Status)
	}
	if got.ProcessedAt == nil || !got.ProcessedAt.Equal(now) {
		t.Errorf("ProcessedAt = %v, want %v", got.ProcessedAt, now)
	}
	if len(got.ActionItems) != 1 || got.ActionItems[0] != "Review the document" {
		t.Errorf("ActionItems = %v, want [Review the document]", got.ActionItems)
	}
	if len(got.Tags) != 2 {
		t.Errorf("Tags = %v, want 2 entries", got.Tags)
	}
	// Untouched fields survive a partial update
	if got.Subject != "Subject" || got.Body != "Body" {
		t.Errorf("Subject/Body changed by partial update: %q / %q", got.Subject, got.Body)
	}
}

func TestUpdateFieldsMetadata(t *testing.T) {
	repo := testRepo(t)

	email := testEmail("a@example.com", "Subject", "Please review this", time.Now())
	if err := repo.Create(email); err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	// The full field map the processing pipeline persists in one update
	err := repo.UpdateFields(email.ID, map[string]interface{}{
		"status":       emaildomain.StatusProcessed,
		"processed_at": time.Now(),
		"action_items": []string{"Review the document"},
		"priority":     emaildomain.PriorityMedium,
		"tags":         []string{"action-required"},
		"metadata": map[string]interface{}{
			"auto_reply_generated": "Thank you for your email.",
			"processed_with_prompts": map[string]interface{}{
				"action_items_prompt": "Extract specific action items...",
				"auto_reply_prompt":   "Draft a professional auto-reply...",
			},
		},
	})
	if err != nil {
		t.Fatalf("UpdateFields() error: %v", err)
	}

	got, err := repo.FindByID(email.ID)
	if err != nil {
		t.Fatalf("FindByID() error: %v", err)
	}
	if got.Metadata == nil {
		t.Fatal("metadata not persisted")
	}
	if got.Metadata["auto_reply_generated"] != "Thank you for your email." {
		t.Errorf("auto_reply_generated = %v, want stored reply", got.Metadata["auto_reply_generated"])
	}
	audit, ok := got.Metadata["processed_with_prompts"].(map[string]interface{})
	if !ok {
		t.Fatalf("processed_with_prompts = %v, want nested map", got.Metadata["processed_with_prompts"])
	}
	if audit["action_items_prompt"] == "" {
		t.Error("nested audit entry lost in round trip")
	}
}

func TestUpdateFieldsSummary(t *testing.T) {
	repo := testRepo(t)

	email := testEmail("a@example.com", "Subject", "Body", time.Now())
	if err := repo.Create(email); err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	summary := &emaildomain.SummaryResult{
		Summary:   "Short summary",
		KeyPoints: []string{"Email from a@example.com", "Subject: Subject"},
		Sentiment: emaildomain.SentimentNeutral,
		Tags:      []string{"email"},
	}
	err := repo.UpdateFields(email.ID, map[string]interface{}{
		"summary":    summary,
		"ai_summary": summary.Summary,
	})
	if err != nil {
		t.Fatalf("UpdateFields() error: %v", err)
	}

	got, err := repo.FindByID(email.ID)
	if err != nil {
		t.Fatalf("FindByID() error: %v", err)
	}
	if got.Summary == nil {
		t.Fatal("Summary not persisted")
	}
	if got.Summary.Summary != "Short summary" {
		t.Errorf("Summary.Summary = %q, want Short summary", got.Summary.Summary)
	}
	if got.AISummary != "Short summary" {
		t.Errorf("AISummary = %q, want Short summary", got.AISummary)
	}
	if len(got.Summary.KeyPoints) != 2 {
		t.Errorf("Summary.KeyPoints = %v, want 2 entries", got.Summary.KeyPoints)
	}
}

func TestDeleteAll(t *testing.T) {
	repo := testRepo(t)

	emails := []*emaildomain.Email{
		testEmail("a@example.com", "One", "Body", time.Now()),
		testEmail("b@example.com", "Two", "Body", time.Now()),
	}
	if err := repo.CreateBatch(emails); err != nil {
		t.Fatalf("CreateBatch() error: %v", err)
	}

	if err := repo.DeleteAll(); err != nil {
		t.Fatalf("DeleteAll() error: %v", err)
	}

	remaining, err := repo.FindAll()
	if err != nil {
		t.Fatalf("FindAll() error: %v", err)
	}
	if len(remaining) != 0 {
		t.Errorf("FindAll() after DeleteAll returned %d emails, want 0", len(remaining))
	}
}

func TestCreateBatchEmpty(t *testing.T) {
	repo := testRepo(t)

	if err := repo.CreateBatch(nil); err != nil {
		t.Errorf("CreateBatch(nil) error: %v, want nil", err)
	}
}
