package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gdugdh24/roommate-match-backend/internal/usecase/profile"
)

type ProfileHandler struct {
	profileUseCase *profile.ProfileUseCase
}

func NewProfileHandler(profileUseCase *profile.ProfileUseCase) *ProfileHandler {
	return &ProfileHandler{
		profileUseCase: profileUseCase,
	}
}

// GetMyProfile handles GET /profile/me
// @Summary Get my profile
// @Tags profile
// @Security BearerAuth
// @Produce json
// @Success 200 {object} domain.Profile
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /profile/me [get]
func (h *ProfileHandler) GetMyProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	p, err := h.profileUseCase.FetchProfile(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err, "failed to get profile")
		return
	}

	c.JSON(http.StatusOK, p)
}

// SaveMyProfile handles PUT /profile/me
// @Summary Create or update my profile
// @Description The first save creates the profile, later saves update it in place.
// @Tags profile
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body profile.SaveProfileRequest true "Profile form"
// @Success 200 {object} domain.Profile
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /profile/me [put]
func (h *ProfileHandler) SaveMyProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	var req profile.SaveProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body: " + err.Error()})
		return
	}

	saved, err := h.profileUseCase.SaveProfile(c.Request.Context(), userID, &req)
	if err != nil {
		writeError(c, err, "failed to save profile")
		return
	}

	c.JSON(http.StatusOK, saved)
}

// GetProfileByUserID handles GET /profile/:user_id
// @Summary Get another user's profile
// @Description Contact and personal fields are only shown when the owner made them visible.
// @Tags profile
// @Security BearerAuth
// @Produce json
// @Param user_id path string true "User ID"
// @Success 200 {object} domain.Profile
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /profile/{user_id} [get]
func (h *ProfileHandler) GetProfileByUserID(c *gin.Context) {
	currentID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	targetID := c.Param("user_id")
	if targetID == currentID {
		h.GetMyProfile(c)
		return
	}

	p, err := h.profileUseCase.GetPublicProfile(c.Request.Context(), targetID)
	if err != nil {
		writeError(c, err, "failed to get profile")
		return
	}

	c.JSON(http.StatusOK, p)
}
