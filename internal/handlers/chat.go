// internal/handlers/chat.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/javajoker/marketflow-backend/internal/services"
)

// The chat endpoint answers with bare {"error"} / {"reply"} objects, not the
// API envelope; the chat widget depends on that shape.
const (
	chatMessageRequired = "message is required"
	chatKeyMissing      = "OPENAI_API_KEY is not set on the server."
	chatUpstreamFailed  = "Failed to get response from OpenAI."
	chatBodyTooLarge    = "Request body too large."
)

type ChatHandler struct {
	chatService  *services.ChatService
	maxBodyBytes int64
}

func NewChatHandler(chatService *services.ChatService, maxBodyBytes int64) *ChatHandler {
	return &ChatHandler{
		chatService:  chatService,
		maxBodyBytes: maxBodyBytes,
	}
}

// POST /api/chat
func (h *ChatHandler) Chat(c *gin.Context) {
	if h.maxBodyBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBodyBytes)
	}

	var body struct {
		Message interface{} `json:"message"`
		System  interface{} `json:"system"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": chatBodyTooLarge})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": chatMessageRequired})
		return
	}

	// A non-string message counts as missing
	message, _ := body.Message.(string)
	system, _ := body.System.(string)

	reply, err := h.chatService.Reply(c.Request.Context(), services.ChatRequest{
		Message: message,
		System:  system,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMessageRequired):
			c.JSON(http.StatusBadRequest, gin.H{"error": chatMessageRequired})
		case errors.Is(err, services.ErrChatNotConfigured):
			c.JSON(http.StatusInternalServerError, gin.H{"error": chatKeyMissing})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": chatUpstreamFailed})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"reply": reply})
}

// GET /healthz
func Health(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}
