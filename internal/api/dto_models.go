package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"assistix-backend-go/internal/core"
	"assistix-backend-go/internal/models"
)

// ErrorResponse is a generic structure for returning errors via API.
type ErrorResponse struct {
	Error   string `json:"error"`             // A high-level error message or code
	Details string `json:"details,omitempty"` // More specific details about the error, if available
}

// SuccessResponse is a generic structure for simple success messages.
type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// InitializeProfileResponse is returned by POST /users/initialize.
type InitializeProfileResponse struct {
	User            *models.User `json:"user"`
	Created         bool         `json:"created"`
	NeedsOnboarding bool         `json:"needsOnboarding"`
}

// PhotoUploadResponse is returned by POST /users/me/photo.
type PhotoUploadResponse struct {
	PhotoURL string `json:"photoURL"`
}

// PitchStatusResponse is returned by GET /requests/:requestId/pitches/mine.
type PitchStatusResponse struct {
	Pitched bool `json:"pitched"`
}

// respondServiceError maps core sentinel errors onto HTTP status codes and
// writes the error response. Unrecognized errors become a 500 with details.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, core.ErrUserNotFound),
		errors.Is(err, core.ErrRequestNotFound),
		errors.Is(err, core.ErrPitchNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, core.ErrForbiddenAccess):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: err.Error()})
	case errors.Is(err, core.ErrDuplicatePitch),
		errors.Is(err, core.ErrOwnRequestPitch),
		errors.Is(err, core.ErrInvalidTransition):
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	case errors.Is(err, core.ErrInvalidCity),
		errors.Is(err, core.ErrInvalidCategory),
		errors.Is(err, core.ErrNoCity):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error", Details: err.Error()})
	}
}

// currentUserID pulls the authenticated UID from the Gin context, populated
// by the auth middleware. Writes the error response itself on failure.
func currentUserID(c *gin.Context) (string, bool) {
	rawUserID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication error: User ID not found in context"})
		return "", false
	}
	uid, ok := rawUserID.(string)
	if !ok || uid == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid user ID format in context"})
		return "", false
	}
	return uid, true
}
