package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gamermatch/gamermatch-backend/internal/usecase/admin"
)

type AdminHandler struct {
	adminUseCase *admin.UseCase
}

func NewAdminHandler(adminUseCase *admin.UseCase) *AdminHandler {
	return &AdminHandler{
		adminUseCase: adminUseCase,
	}
}

// GetStats returns moderation dashboard counters
// @Summary Admin stats
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Success 200 {object} domain.AdminStats
// @Router /admin/stats [get]
func (h *AdminHandler) GetStats(c *gin.Context) {
	stats, err := h.adminUseCase.GetStats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// GetPendingReports lists unresolved reports with both profiles attached
// @Summary Pending reports
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Param limit query int false "Page size (default 50)"
// @Param offset query int false "Page offset"
// @Success 200 {array} admin.PendingReport
// @Router /admin/reports [get]
func (h *AdminHandler) GetPendingReports(c *gin.Context) {
	limit := queryInt(c, "limit", 50)
	if limit < 1 || limit > 200 {
		limit = 50
	}
	offset := queryInt(c, "offset", 0)
	if offset < 0 {
		offset = 0
	}

	reports, err := h.adminUseCase.GetPendingReports(c.Request.Context(), limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"reports": reports})
}

// ResolveReport resolves or dismisses a pending report
// @Summary Resolve report
// @Tags admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param report_id path string true "Report ID"
// @Param request body admin.ResolveReportRequest true "Resolution"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /admin/reports/{report_id} [put]
func (h *AdminHandler) ResolveReport(c *gin.Context) {
	adminID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req admin.ResolveReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	if err := h.adminUseCase.ResolveReport(c.Request.Context(), adminID, c.Param("report_id"), &req); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "report resolved"})
}

// BanUser bans an account and deactivates its matches
// @Summary Ban user
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Param user_id path string true "User ID"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Router /admin/users/{user_id}/ban [post]
func (h *AdminHandler) BanUser(c *gin.Context) {
	adminID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.adminUseCase.BanUser(c.Request.Context(), adminID, c.Param("user_id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "user banned"})
}

// UnbanUser lifts a ban
// @Summary Unban user
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Param user_id path string true "User ID"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Router /admin/users/{user_id}/ban [delete]
func (h *AdminHandler) UnbanUser(c *gin.Context) {
	adminID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.adminUseCase.UnbanUser(c.Request.Context(), adminID, c.Param("user_id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "user unbanned"})
}
