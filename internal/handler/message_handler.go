package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"floral-studio/internal/dto"
	"floral-studio/internal/response"
	"floral-studio/internal/service"
)

type MessageHandler struct {
	messageService service.MessageService
}

func NewMessageHandler(messageService service.MessageService) *MessageHandler {
	return &MessageHandler{messageService: messageService}
}

// SendMessage handles POST /messages
func (h *MessageHandler) SendMessage(c *gin.Context) {
	var req dto.SendMessageRequest
	if !bindJSON(c, &req) {
		return
	}

	message, err := h.messageService.Send(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusCreated, message)
}

// GetConversation handles GET /messages/with/:userId
func (h *MessageHandler) GetConversation(c *gin.Context) {
	userID, ok := parseIDParam(c, "userId")
	if !ok {
		return
	}

	messages, err := h.messageService.Conversation(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, messages)
}

// GetDesignMessages handles GET /messages/design/:designId
func (h *MessageHandler) GetDesignMessages(c *gin.Context) {
	designID, ok := parseIDParam(c, "designId")
	if !ok {
		return
	}

	messages, err := h.messageService.ForDesign(c.Request.Context(), designID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, messages)
}

// MarkRead handles POST /messages/:id/read
func (h *MessageHandler) MarkRead(c *gin.Context) {
	messageID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	applied, err := h.messageService.MarkRead(c.Request.Context(), messageID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, dto.ApplyResponse{Applied: applied})
}

// GetUnreadCount handles GET /messages/unread
func (h *MessageHandler) GetUnreadCount(c *gin.Context) {
	count, err := h.messageService.UnreadCount(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, dto.UnreadCountResponse{Unread: count})
}
