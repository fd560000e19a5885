package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gamermatch/gamermatch-backend/internal/usecase/gdpr"
)

type GDPRHandler struct {
	gdprUseCase *gdpr.UseCase
}

func NewGDPRHandler(gdprUseCase *gdpr.UseCase) *GDPRHandler {
	return &GDPRHandler{
		gdprUseCase: gdprUseCase,
	}
}

// ExportData returns everything stored about the caller
// @Summary Export my data
// @Tags gdpr
// @Security BearerAuth
// @Produce json
// @Success 200 {object} gdpr.UserDataExport
// @Router /gdpr/export [get]
func (h *GDPRHandler) ExportData(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	export, err := h.gdprUseCase.ExportData(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, export)
}

// RequestDeletion schedules account deletion after the grace period
// @Summary Request account deletion
// @Description Deactivates the profile immediately, purges data after 30 days
// @Tags gdpr
// @Security BearerAuth
// @Produce json
// @Success 202 {object} domain.DeletionRequest
// @Failure 409 {object} ErrorResponse
// @Router /gdpr/deletion [post]
func (h *GDPRHandler) RequestDeletion(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	req, err := h.gdprUseCase.RequestDeletion(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, req)
}

// CancelDeletion withdraws a pending deletion request
// @Summary Cancel account deletion
// @Tags gdpr
// @Security BearerAuth
// @Produce json
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Router /gdpr/deletion [delete]
func (h *GDPRHandler) CancelDeletion(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.gdprUseCase.CancelDeletion(c.Request.Context(), userID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "deletion cancelled"})
}

// GetDeletionStatus reports whether a deletion request is pending
// @Summary Deletion status
// @Tags gdpr
// @Security BearerAuth
// @Produce json
// @Success 200 {object} gdpr.DeletionStatus
// @Router /gdpr/deletion [get]
func (h *GDPRHandler) GetDeletionStatus(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	status, err := h.gdprUseCase.GetDeletionStatus(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, status)
}
