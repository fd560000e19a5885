package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gamermatch/gamermatch-backend/internal/domain"
)

// ErrorResponse represents error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// SuccessResponse represents success response
type SuccessResponse struct {
	Message string `json:"message"`
}

// respondError maps domain errors to HTTP status codes. Unknown errors
// become 500 with a generic message so internals never leak to clients.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := "internal server error"

	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		status, message = http.StatusUnauthorized, "invalid credentials"
	case errors.Is(err, domain.ErrUnauthorized),
		errors.Is(err, domain.ErrSessionNotFound):
		status, message = http.StatusUnauthorized, "unauthorized"
	case errors.Is(err, domain.ErrEmailTaken):
		status, message = http.StatusConflict, "email already registered"
	case errors.Is(err, domain.ErrDuplicateSwipe):
		status, message = http.StatusConflict, "already swiped on this user"
	case errors.Is(err, domain.ErrAlreadyBlocked):
		status, message = http.StatusConflict, "user already blocked"
	case errors.Is(err, domain.ErrProfileAlreadyExists):
		status, message = http.StatusConflict, "profile already exists"
	case errors.Is(err, domain.ErrDeletionPending):
		status, message = http.StatusConflict, "deletion request already pending"
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrProfileNotFound),
		errors.Is(err, domain.ErrMatchNotFound),
		errors.Is(err, domain.ErrBlockNotFound),
		errors.Is(err, domain.ErrReportNotFound),
		errors.Is(err, domain.ErrDeletionNotFound):
		status, message = http.StatusNotFound, err.Error()
	case errors.Is(err, domain.ErrNotMatchMember):
		status, message = http.StatusForbidden, "not a member of this match"
	case errors.Is(err, domain.ErrProfileNotEligible):
		status, message = http.StatusForbidden, "profile not eligible"
	case errors.Is(err, domain.ErrRateLimited):
		status, message = http.StatusTooManyRequests, "rate limit exceeded"
	case errors.Is(err, domain.ErrInvalidFilter),
		errors.Is(err, domain.ErrCannotSwipeSelf),
		errors.Is(err, domain.ErrCannotBlockSelf),
		errors.Is(err, domain.ErrCannotReportSelf),
		errors.Is(err, domain.ErrInvalidCategory),
		errors.Is(err, domain.ErrMessageEmpty),
		errors.Is(err, domain.ErrMessageTooLong),
		errors.Is(err, domain.ErrInvalidInput):
		status, message = http.StatusBadRequest, err.Error()
	}

	c.JSON(status, ErrorResponse{Error: message})
}

// currentUserID reads the authenticated user id set by the auth middleware.
func currentUserID(c *gin.Context) (string, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return "", false
	}
	userID, ok := v.(string)
	if !ok || userID == "" {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return "", false
	}
	return userID, true
}
