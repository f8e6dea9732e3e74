package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/gdugdh24/roommate-match-backend/internal/domain"
	"github.com/gdugdh24/roommate-match-backend/internal/usecase/matching"
)

type MatchHandler struct {
	matchingUseCase *matching.MatchingUseCase
}

func NewMatchHandler(matchingUseCase *matching.MatchingUseCase) *MatchHandler {
	return &MatchHandler{
		matchingUseCase: matchingUseCase,
	}
}

// MatchesResponse wraps a ranked result list.
type MatchesResponse struct {
	Results []domain.CompatibilityResult `json:"results"`
	Count   int                          `json:"count"`
}

// GetRoommateMatches handles GET /matches/roommates
// @Summary Rank other seekers against my profile
// @Tags matches
// @Security BearerAuth
// @Produce json
// @Param limit query int false "Maximum number of results, 0 for all"
// @Param min_score query int false "Only return results scoring above this"
// @Success 200 {object} MatchesResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /matches/roommates [get]
func (h *MatchHandler) GetRoommateMatches(c *gin.Context) {
	h.serve(c, h.matchingUseCase.RoommateMatches)
}

// GetPropertyMatches handles GET /matches/properties
// @Summary Rank listings against my profile
// @Tags matches
// @Security BearerAuth
// @Produce json
// @Param limit query int false "Maximum number of results, 0 for all"
// @Param min_score query int false "Only return results scoring above this"
// @Success 200 {object} MatchesResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /matches/properties [get]
func (h *MatchHandler) GetPropertyMatches(c *gin.Context) {
	h.serve(c, h.matchingUseCase.PropertyMatches)
}

type rankFunc func(ctx context.Context, userID string, opts matching.Options) ([]domain.CompatibilityResult, error)

func (h *MatchHandler) serve(c *gin.Context, rank rankFunc) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	opts, err := parseOptions(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	results, err := rank(c.Request.Context(), userID, opts)
	if err != nil {
		writeError(c, err, "failed to rank matches")
		return
	}

	c.JSON(http.StatusOK, MatchesResponse{Results: results, Count: len(results)})
}

func parseOptions(c *gin.Context) (matching.Options, error) {
	var opts matching.Options
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return opts, errInvalidQuery("limit")
		}
		opts.Limit = limit
	}
	if raw := c.Query("min_score"); raw != "" {
		minScore, err := strconv.Atoi(raw)
		if err != nil {
			return opts, errInvalidQuery("min_score")
		}
		opts.MinScore = &minScore
	}
	return opts, nil
}

type errInvalidQuery string

func (e errInvalidQuery) Error() string {
	return "invalid " + string(e) + " query parameter"
}
