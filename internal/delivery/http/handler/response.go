package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gdugdh24/roommate-match-backend/internal/delivery/http/middleware"
	"github.com/gdugdh24/roommate-match-backend/internal/domain"
)

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Error string `json:"error"`
}

// writeError maps domain errors to HTTP statuses. fallback is the message for
// unexpected errors, which are never echoed to the client.
func writeError(c *gin.Context, err error, fallback string) {
	_ = c.Error(err)
	switch {
	case errors.Is(err, domain.ErrProfileNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "profile not found"})
	case errors.Is(err, domain.ErrValidationFailed),
		errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrInvalidProfile):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrLockNotAcquired):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "profile is being updated, retry shortly"})
	case errors.Is(err, domain.ErrStoreUnavailable):
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "profile store unavailable"})
	default:
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: fallback})
	}
}

func currentUserID(c *gin.Context) (string, bool) {
	v, ok := c.Get(middleware.ContextUserID)
	if !ok {
		return "", false
	}
	userID, ok := v.(string)
	return userID, ok && userID != ""
}
