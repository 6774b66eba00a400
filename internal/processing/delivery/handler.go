package delivery

import (
	"context"
	"log"
	"net/http"
	"time"

	emaildomain "email-agent-backend/internal/email/domain"
	emailusecase "email-agent-backend/internal/email/usecase"
	processingdto "email-agent-backend/internal/processing/dto"
	"email-agent-backend/internal/processing/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ProcessingHandler struct {
	processingUsecase usecase.ProcessingUsecase
	emailUsecase      emailusecase.EmailUsecase
}

func NewProcessingHandler(processingUsecase usecase.ProcessingUsecase, emailUsecase emailusecase.EmailUsecase) *ProcessingHandler {
	return &ProcessingHandler{
		processingUsecase: processingUsecase,
		emailUsecase:      emailUsecase,
	}
}

// POST /api/emails/process
//
// Kicks off batch processing of all unprocessed emails in the background
// and returns immediately. There is no status polling; callers observe
// progress through the email list.
func (h *ProcessingHandler) ProcessEmails(c *gin.Context) {
	emails, err := h.emailUsecase.GetEmails()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var unprocessed []*emaildomain.Email
	for _, email := range emails {
		if email.Status != emaildomain.StatusProcessed {
			unprocessed = append(unprocessed, email)
		}
	}

	if len(unprocessed) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no unprocessed emails found"})
		return
	}

	sessionID := uuid.New().String()
	go func() {
		// Detached from the request context: the batch outlives the request
		h.processingUsecase.ProcessEmailBatch(context.Background(), unprocessed)
		log.Printf("[Processing] Session %s finished", sessionID)
	}()

	c.JSON(http.StatusOK, processingdto.ProcessEmailsResponse{
		Message:      "Email processing started in background",
		Count:        len(unprocessed),
		ProcessingID: sessionID,
	})
}

// POST /api/rewrite-email
func (h *ProcessingHandler) RewriteEmail(c *gin.Context) {
	var req processingdto.RewriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rewritten, aiGenerated := h.processingUsecase.RewriteEmail(c.Request.Context(), req.Email, req.Tone)

	c.JSON(http.StatusOK, processingdto.RewriteResponse{
		RewrittenEmail: rewritten,
		Tone:           req.Tone,
		AIGenerated:    aiGenerated,
	})
}

// GET /api/summaries
func (h *ProcessingHandler) GetSummaries(c *gin.Context) {
	emails, err := h.emailUsecase.GetProcessedEmails()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	summaries := make([]processingdto.SummaryResponse, 0, len(emails))
	for _, email := range emails {
		summary, err := h.processingUsecase.SummaryForEmail(c.Request.Context(), email)
		if err != nil {
			log.Printf("[Processing] Summary for %s failed: %v", email.ID, err)
			continue
		}

		summaries = append(summaries, processingdto.SummaryResponse{
			ID:          email.ID,
			Subject:     email.Subject,
			Sender:      email.Sender,
			Timestamp:   email.Timestamp,
			Priority:    email.Priority,
			Summary:     summary.Summary,
			Tags:        summary.Tags,
			Sentiment:   summary.Sentiment,
			KeyPoints:   summary.KeyPoints,
			ActionItems: summary.ActionItems,
		})
	}

	c.JSON(http.StatusOK, summaries)
}

// GET /api/summaries/:id
func (h *ProcessingHandler) GetSummaryByID(c *gin.Context) {
	id := c.Param("id")
	email, err := h.emailUsecase.GetEmailByID(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if email == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "email not found"})
		return
	}

	summary, err := h.processingUsecase.SummaryForEmail(c.Request.Context(), email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate email summary"})
		return
	}

	c.JSON(http.StatusOK, processingdto.EmailSummaryDetail{
		Email: processingdto.EmailBrief{
			ID:        email.ID,
			Subject:   email.Subject,
			Sender:    email.Sender,
			Timestamp: email.Timestamp,
			Priority:  email.Priority,
			Body:      email.Body,
		},
		Summary: summary,
	})
}

// POST /api/autoreply/generate
func (h *ProcessingHandler) GenerateAutoReply(c *gin.Context) {
	var req processingdto.GenerateReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reply, aiGenerated := h.processingUsecase.GenerateAutoReply(c.Request.Context(), req.EmailContent, req.CurrentTemplate)

	message := "Using default template due to AI service unavailability"
	if aiGenerated {
		message = "AI-generated reply created successfully"
	} else {
		// The caller's own template is a better fallback than the fixed one
		reply = req.CurrentTemplate
	}

	c.JSON(http.StatusOK, processingdto.GenerateReplyResponse{
		Reply:       reply,
		AIGenerated: aiGenerated,
		Message:     message,
	})
}

// Default template used for test previews.
const defaultReplyTemplate = "Thank you for your email. I've received your message and will respond within 24 hours. For urgent matters, please contact our support team directly."

// POST /api/autoreply/test
func (h *ProcessingHandler) TestAutoReply(c *gin.Context) {
	var req processingdto.TestReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reply, aiGenerated := h.processingUsecase.GenerateAutoReply(c.Request.Context(), req.TestEmail, defaultReplyTemplate)
	if !aiGenerated {
		reply = defaultReplyTemplate
	}

	c.JSON(http.StatusOK, processingdto.TestReplyResponse{
		TestEmail:      req.TestEmail,
		GeneratedReply: reply,
		AIGenerated:    aiGenerated,
		Timestamp:      time.Now(),
	})
}

// GET /api/autoreply
func (h *ProcessingHandler) GetAutoReplyOverview(c *gin.Context) {
	c.JSON(http.StatusOK, processingdto.AutoReplyOverview{
		Settings: processingdto.AutoReplySettings{
			Enabled:            true,
			ResponseTemplate:   defaultReplyTemplate,
			UseAICustomization: true,
			WorkingHoursOnly:   false,
		},
		// Fixed demo figures; real counters would come from a reply log
		Stats: processingdto.AutoReplyStats{
			RepliesSent:       89,
			SuccessRate:       0.96,
			AIGeneratedCount:  67,
			TemplateUsedCount: 22,
		},
		RecentReplies: []processingdto.RecentReply{
			{EmailID: "1", Subject: "Meeting Request", Recipient: "john@example.com", ReplyType: "Meeting Request", Timestamp: "2024-01-15T10:30:00Z", Status: "success", AIGenerated: true},
			{EmailID: "2", Subject: "Support Inquiry", Recipient: "sarah@example.com", ReplyType: "Support Inquiry", Timestamp: "2024-01-15T09:15:00Z", Status: "success", AIGenerated: false},
			{EmailID: "3", Subject: "Newsletter Subscription", Recipient: "mike@example.com", ReplyType: "Newsletter Subscription", Timestamp: "2024-01-14T16:45:00Z", Status: "success", AIGenerated: true},
		},
	})
}

// POST /api/autoreply/settings
//
// Settings are not persisted; the update is acknowledged and echoed back.
func (h *ProcessingHandler) UpdateAutoReplySettings(c *gin.Context) {
	var settings processingdto.AutoReplySettings
	if err := c.ShouldBindJSON(&settings); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	log.Printf("[Processing] Auto-reply settings updated: enabled=%v, ai_customization=%v", settings.Enabled, settings.UseAICustomization)

	c.JSON(http.StatusOK, processingdto.UpdateSettingsResponse{
		Message:  "Auto-reply settings updated successfully",
		Settings: settings,
	})
}

// POST /api/drafts
func (h *ProcessingHandler) DraftEmail(c *gin.Context) {
	var req processingdto.DraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	draft, aiGenerated := h.processingUsecase.DraftEmail(c.Request.Context(), req.Context, req.Recipient, req.Subject)

	c.JSON(http.StatusOK, processingdto.DraftResponse{
		Body:               draft.Body,
		SuggestedFollowUps: draft.SuggestedFollowUps,
		AIGenerated:        aiGenerated,
	})
}

