package delivery

import (
	"errors"
	"net/http"

	promptdto "email-agent-backend/internal/prompt/dto"
	"email-agent-backend/internal/prompt/usecase"

	"github.com/gin-gonic/gin"
)

type PromptHandler struct {
	promptUsecase usecase.PromptUsecase
}

func NewPromptHandler(promptUsecase usecase.PromptUsecase) *PromptHandler {
	return &PromptHandler{
		promptUsecase: promptUsecase,
	}
}

// GET /api/prompts
func (h *PromptHandler) GetPrompts(c *gin.Context) {
	config, err := h.promptUsecase.GetPrompts()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, config)
}

// PUT /api/prompts
func (h *PromptHandler) UpdatePrompt(c *gin.Context) {
	var req promptdto.PromptUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	_, err := h.promptUsecase.UpdatePrompt(req.PromptType, req.Content)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidTaskKind) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, promptdto.PromptUpdateResponse{
		Message:       "Prompt updated successfully",
		UpdatedPrompt: req.Content,
	})
}

// POST /api/prompts/reset
func (h *PromptHandler) ResetPrompts(c *gin.Context) {
	config, err := h.promptUsecase.ResetToDefaults()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, config)
}
