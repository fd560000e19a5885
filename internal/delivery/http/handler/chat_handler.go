package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gamermatch/gamermatch-backend/internal/usecase/chat"
)

type ChatHandler struct {
	chatUseCase *chat.UseCase
}

func NewChatHandler(chatUseCase *chat.UseCase) *ChatHandler {
	return &ChatHandler{
		chatUseCase: chatUseCase,
	}
}

type SendMessageRequest struct {
	Content string `json:"content" binding:"required"`
}

// SendMessage posts a message into a match conversation
// @Summary Send message
// @Tags chat
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param match_id path string true "Match ID"
// @Param request body SendMessageRequest true "Message"
// @Success 201 {object} domain.Message
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Router /matches/{match_id}/messages [post]
func (h *ChatHandler) SendMessage(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	msg, err := h.chatUseCase.SendMessage(c.Request.Context(), c.Param("match_id"), userID, req.Content)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, msg)
}

// GetMessages returns a page of messages, newest first
// @Summary List messages
// @Tags chat
// @Security BearerAuth
// @Produce json
// @Param match_id path string true "Match ID"
// @Param before query string false "RFC3339 cursor, messages strictly older"
// @Param limit query int false "Page size (default 50, max 200)"
// @Success 200 {array} domain.Message
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /matches/{match_id}/messages [get]
func (h *ChatHandler) GetMessages(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var before *time.Time
	if s := c.Query("before"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid before cursor"})
			return
		}
		before = &t
	}

	messages, err := h.chatUseCase.GetMessages(c.Request.Context(), c.Param("match_id"), userID, before, queryInt(c, "limit", 0))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

// MarkRead marks all messages from the other member as read
// @Summary Mark conversation read
// @Tags chat
// @Security BearerAuth
// @Produce json
// @Param match_id path string true "Match ID"
// @Success 200 {object} SuccessResponse
// @Failure 403 {object} ErrorResponse
// @Router /matches/{match_id}/read [post]
func (h *ChatHandler) MarkRead(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.chatUseCase.MarkRead(c.Request.Context(), c.Param("match_id"), userID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "marked read"})
}

// GetChatList returns the caller's conversations ordered by recent activity
// @Summary Chat list
// @Tags chat
// @Security BearerAuth
// @Produce json
// @Success 200 {array} chat.ChatPreview
// @Router /chats [get]
func (h *ChatHandler) GetChatList(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	chats, err := h.chatUseCase.GetChatList(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"chats": chats})
}
