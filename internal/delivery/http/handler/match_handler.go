package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gamermatch/gamermatch-backend/internal/usecase/match"
)

type MatchHandler struct {
	matchUseCase *match.UseCase
}

func NewMatchHandler(matchUseCase *match.UseCase) *MatchHandler {
	return &MatchHandler{
		matchUseCase: matchUseCase,
	}
}

// GetMatches lists the caller's active matches
// @Summary List matches
// @Tags match
// @Security BearerAuth
// @Produce json
// @Success 200 {array} match.MatchResponse
// @Router /matches [get]
func (h *MatchHandler) GetMatches(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	matches, err := h.matchUseCase.GetMatches(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"matches": matches})
}

// Unmatch deactivates a match
// @Summary Unmatch
// @Description Deactivates the match for both members, chat history is retained
// @Tags match
// @Security BearerAuth
// @Produce json
// @Param match_id path string true "Match ID"
// @Success 200 {object} SuccessResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /matches/{match_id} [delete]
func (h *MatchHandler) Unmatch(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.matchUseCase.Unmatch(c.Request.Context(), c.Param("match_id"), userID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "unmatched"})
}

// Icebreakers suggests opening lines for a match
// @Summary Icebreaker suggestions
// @Description Generated from the two profiles' shared games and genres
// @Tags match
// @Security BearerAuth
// @Produce json
// @Param match_id path string true "Match ID"
// @Success 200 {object} map[string][]string
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /matches/{match_id}/icebreakers [get]
func (h *MatchHandler) Icebreakers(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	suggestions, err := h.matchUseCase.SuggestIcebreakers(c.Request.Context(), c.Param("match_id"), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"icebreakers": suggestions})
}
