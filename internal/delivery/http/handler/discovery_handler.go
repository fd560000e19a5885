package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/gamermatch/gamermatch-backend/internal/domain"
	"github.com/gamermatch/gamermatch-backend/internal/usecase/discovery"
)

type DiscoveryHandler struct {
	discoveryUseCase *discovery.UseCase
}

func NewDiscoveryHandler(discoveryUseCase *discovery.UseCase) *DiscoveryHandler {
	return &DiscoveryHandler{
		discoveryUseCase: discoveryUseCase,
	}
}

// GetCandidates returns the ranked discovery feed
// @Summary Discovery feed
// @Description Ranked candidates by compatibility score, filtered by optional query params
// @Tags discovery
// @Security BearerAuth
// @Produce json
// @Param platform query []string false "Platform filter"
// @Param genre query []string false "Genre filter"
// @Param playstyle query string false "Playstyle filter"
// @Param voice_chat query bool false "Voice chat filter"
// @Param region query []string false "Region filter"
// @Param limit query int false "Page size (default 20, max 50)"
// @Param offset query int false "Page offset"
// @Success 200 {array} discovery.Candidate
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /discovery [get]
func (h *DiscoveryHandler) GetCandidates(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	filters := &discovery.Filters{
		Platforms: c.QueryArray("platform"),
		Genres:    c.QueryArray("genre"),
		Regions:   c.QueryArray("region"),
	}
	if s := c.Query("playstyle"); s != "" {
		ps := domain.Playstyle(s)
		filters.Playstyle = &ps
	}
	if s := c.Query("voice_chat"); s != "" {
		v, err := strconv.ParseBool(s)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid voice_chat value"})
			return
		}
		filters.VoiceChat = &v
	}

	limit := queryInt(c, "limit", domain.DiscoveryPageSize)
	if limit < 1 || limit > 50 {
		limit = domain.DiscoveryPageSize
	}
	offset := queryInt(c, "offset", 0)
	if offset < 0 {
		offset = 0
	}

	candidates, err := h.discoveryUseCase.GetCandidates(c.Request.Context(), userID, filters, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"candidates": candidates,
		"limit":      limit,
		"offset":     offset,
	})
}

func queryInt(c *gin.Context, name string, fallback int) int {
	s := c.Query(name)
	if s == "" {
		return fallback
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return v
}
