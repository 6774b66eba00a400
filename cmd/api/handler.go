package api

import (
	emailDelivery "email-agent-backend/internal/email/delivery"
	emailUsecasePkg "email-agent-backend/internal/email/usecase"
	processingDelivery "email-agent-backend/internal/processing/delivery"
	processingUsecasePkg "email-agent-backend/internal/processing/usecase"
	promptDelivery "email-agent-backend/internal/prompt/delivery"
	promptUsecasePkg "email-agent-backend/internal/prompt/usecase"
	"email-agent-backend/pkg/config"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	emailHandler      *emailDelivery.EmailHandler
	promptHandler     *promptDelivery.PromptHandler
	processingHandler *processingDelivery.ProcessingHandler
	config            *config.Config
}

func NewHandler(emailUc emailUsecasePkg.EmailUsecase, promptUc promptUsecasePkg.PromptUsecase, processingUc processingUsecasePkg.ProcessingUsecase, cfg *config.Config) *Handler {
	return &Handler{
		emailHandler:      emailDelivery.NewEmailHandler(emailUc),
		promptHandler:     promptDelivery.NewPromptHandler(promptUc),
		processingHandler: processingDelivery.NewProcessingHandler(processingUc, emailUc),
		config:            cfg,
	}
}

func (h *Handler) Start(addr string) error {
	r := gin.Default()
	gin.SetMode(gin.ReleaseMode)

	// CORS middleware
	r.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		} else {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	SetupRoutes(r, h.emailHandler, h.promptHandler, h.processingHandler)

	return r.Run(addr)
}
