package delivery

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	emaildomain "email-agent-backend/internal/email/domain"
	emaildto "email-agent-backend/internal/email/dto"
	"email-agent-backend/internal/email/usecase"

	"github.com/gin-gonic/gin"
)

type EmailHandler struct {
	emailUsecase usecase.EmailUsecase
}

func NewEmailHandler(emailUsecase usecase.EmailUsecase) *EmailHandler {
	return &EmailHandler{
		emailUsecase: emailUsecase,
	}
}

// GET /api/emails
func (h *EmailHandler) GetEmails(c *gin.Context) {
	emails, err := h.emailUsecase.GetEmails()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	processed := 0
	for _, email := range emails {
		if email.Status == emaildomain.StatusProcessed {
			processed++
		}
	}

	c.JSON(http.StatusOK, emaildto.EmailListResponse{
		Emails:         emails,
		Total:          len(emails),
		ProcessedCount: processed,
	})
}

// GET /api/emails/:id
func (h *EmailHandler) GetEmailByID(c *gin.Context) {
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

	c.JSON(http.StatusOK, email)
}

// GET /api/emails/processed
func (h *EmailHandler) GetProcessedEmails(c *gin.Context) {
	emails, err := h.emailUsecase.GetProcessedEmails()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, emails)
}

// POST /api/emails/load-mock
func (h *EmailHandler) LoadMockEmails(c *gin.Context) {
	emails, err := h.emailUsecase.LoadMockEmails()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, emaildto.LoadMockResponse{
		Message: fmt.Sprintf("Loaded %d mock emails", len(emails)),
		Count:   len(emails),
	})
}

// POST /api/emails/import-imap
func (h *EmailHandler) ImportFromIMAP(c *gin.Context) {
	emails, err := h.emailUsecase.ImportFromIMAP()
	if err != nil {
		if errors.Is(err, usecase.ErrIMAPNotConfigured) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, emaildto.LoadMockResponse{
		Message: fmt.Sprintf("Imported %d emails", len(emails)),
		Count:   len(emails),
	})
}

// DELETE /api/emails
func (h *EmailHandler) ClearEmails(c *gin.Context) {
	if err := h.emailUsecase.ClearEmails(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "All emails cleared"})
}

// GET /api/emails/search?q=...&limit=...
func (h *EmailHandler) SearchEmails(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter 'q' is required"})
		return
	}

	limit := 20
	if limitStr := c.Query("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	emails, err := h.emailUsecase.SearchEmails(query, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, emaildto.SearchResponse{
		Emails: emails,
		Query:  query,
		Total:  len(emails),
	})
}

// GET /api/dashboard/metrics
func (h *EmailHandler) GetDashboardMetrics(c *gin.Context) {
	metrics, err := h.emailUsecase.GetDashboardMetrics()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, metrics)
}
