package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gamermatch/gamermatch-backend/internal/usecase/moderation"
)

type ModerationHandler struct {
	moderationUseCase *moderation.UseCase
}

func NewModerationHandler(moderationUseCase *moderation.UseCase) *ModerationHandler {
	return &ModerationHandler{
		moderationUseCase: moderationUseCase,
	}
}

type BlockRequest struct {
	BlockedID string `json:"blocked_id" binding:"required"`
}

// BlockUser blocks another user
// @Summary Block user
// @Description Blocks the user and deactivates any match between the pair
// @Tags moderation
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body BlockRequest true "Target"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Router /blocks [post]
func (h *ModerationHandler) BlockUser(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req BlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	if err := h.moderationUseCase.BlockUser(c.Request.Context(), userID, req.BlockedID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "user blocked"})
}

// UnblockUser removes a block
// @Summary Unblock user
// @Tags moderation
// @Security BearerAuth
// @Produce json
// @Param user_id path string true "Blocked user ID"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Router /blocks/{user_id} [delete]
func (h *ModerationHandler) UnblockUser(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.moderationUseCase.UnblockUser(c.Request.Context(), userID, c.Param("user_id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "user unblocked"})
}

// GetBlockedUsers lists the caller's blocks
// @Summary List blocked users
// @Tags moderation
// @Security BearerAuth
// @Produce json
// @Success 200 {array} moderation.BlockedUser
// @Router /blocks [get]
func (h *ModerationHandler) GetBlockedUsers(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	blocked, err := h.moderationUseCase.GetBlockedUsers(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"blocked": blocked})
}

// ReportUser files a report against another user
// @Summary Report user
// @Tags moderation
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body moderation.ReportRequest true "Report"
// @Success 201 {object} domain.Report
// @Failure 400 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Router /reports [post]
func (h *ModerationHandler) ReportUser(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req moderation.ReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	report, err := h.moderationUseCase.ReportUser(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, report)
}
