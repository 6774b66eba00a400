package api

import (
	"net/http"

	emailDelivery "email-agent-backend/internal/email/delivery"
	processingDelivery "email-agent-backend/internal/processing/delivery"
	promptDelivery "email-agent-backend/internal/prompt/delivery"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, emailHandler *emailDelivery.EmailHandler, promptHandler *promptDelivery.PromptHandler, processingHandler *processingDelivery.ProcessingHandler) {
	api := r.Group("/api")
	{
		// Health check
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		// Email routes
		emails := api.Group("/emails")
		{
			emails.GET("", emailHandler.GetEmails)
			emails.GET("/processed", emailHandler.GetProcessedEmails)
			emails.GET("/search", emailHandler.SearchEmails)
			emails.GET("/:id", emailHandler.GetEmailByID)
			emails.POST("/load-mock", emailHandler.LoadMockEmails)
			emails.POST("/import-imap", emailHandler.ImportFromIMAP)
			emails.POST("/process", processingHandler.ProcessEmails)
			emails.DELETE("", emailHandler.ClearEmails)
		}

		// Prompt configuration routes
		prompts := api.Group("/prompts")
		{
			prompts.GET("", promptHandler.GetPrompts)
			prompts.PUT("", promptHandler.UpdatePrompt)
			prompts.POST("/reset", promptHandler.ResetPrompts)
		}

		// AI text routes
		api.POST("/rewrite-email", processingHandler.RewriteEmail)
		api.GET("/summaries", processingHandler.GetSummaries)
		api.GET("/summaries/:id", processingHandler.GetSummaryByID)
		api.POST("/drafts", processingHandler.DraftEmail)

		// Auto-reply routes
		autoreply := api.Group("/autoreply")
		{
			autoreply.GET("", processingHandler.GetAutoReplyOverview)
			autoreply.POST("/generate", processingHandler.GenerateAutoReply)
			autoreply.POST("/test", processingHandler.TestAutoReply)
			autoreply.POST("/settings", processingHandler.UpdateAutoReplySettings)
		}

		// Dashboard routes
		api.GET("/dashboard/metrics", emailHandler.GetDashboardMetrics)
	}
}
