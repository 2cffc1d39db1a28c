package chat

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"zenvor/internal/pkg/response"
)

// Handler serves the chat widget over server-sent events.
type Handler struct {
	service *Service
	log     *zap.Logger
}

func NewHandler(service *Service, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{service: service, log: log.Named("chat")}
}

// Stream handles POST /api/v1/chat
// @Summary Stream a chat reply
// @Tags Chat
// @Accept json
// @Produce text/event-stream
// @Param request body Request true "Conversation"
// @Router /chat [post]
func (h *Handler) Stream(c *gin.Context) {
	var req Request
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON body")
		return
	}

	started := false
	begin := func() {
		if started {
			return
		}
		started = true
		c.Header("Content-Type", "text/event-stream")
		c.Header("Cache-Control", "no-cache")
		c.Header("Connection", "keep-alive")
		c.Header("X-Accel-Buffering", "no")
		c.Status(http.StatusOK)
	}

	err := h.service.Reply(c.Request.Context(), req.Messages, func(delta string) error {
		begin()
		c.SSEvent("delta", gin.H{"text": delta})
		c.Writer.Flush()
		return nil
	})

	switch {
	case errors.Is(err, ErrEmptyConversation):
		response.Error(c, http.StatusUnprocessableEntity, "EMPTY_CONVERSATION", "No messages to send")
	case err != nil && !started:
		h.log.Error("chat request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process request"})
	case err != nil:
		h.log.Warn("chat stream interrupted", zap.Error(err))
		c.SSEvent("error", gin.H{"message": "Stream interrupted"})
		c.Writer.Flush()
	default:
		begin()
		c.SSEvent("done", gin.H{})
		c.Writer.Flush()
	}
}
