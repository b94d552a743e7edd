package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type chatRequest struct {
	Message string `json:"message"`
}

// GetChat returns the conversation transcript.
func (h *KitchenHandler) GetChat(c *gin.Context) {
	c.JSON(http.StatusOK, h.kitchen.Transcript())
}

// PostChat sends a message to the assistant and returns its reply.
func (h *KitchenHandler) PostChat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	reply, err := h.kitchen.SendChat(c.Request.Context(), req.Message)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, reply)
}

// StartNotificationSession opens a new alert session and runs an expiry check right away.
func (h *KitchenHandler) StartNotificationSession(c *gin.Context) {
	if h.notifier == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "notifications are disabled"})
		return
	}
	session := h.notifier.StartSession()
	alerted, err := h.notifier.CheckExpiring(c.Request.Context(), h.kitchen.Inventory())
	if err != nil {
		h.logger.Warn("expiry check failed", zap.Error(err))
	}
	c.JSON(http.StatusCreated, gin.H{"session": session, "alerted": alerted})
}
