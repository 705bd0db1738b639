package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"assistix-backend-go/internal/core"
	"assistix-backend-go/internal/models"
)

// UserHandler handles profile related API endpoints.
type UserHandler struct {
	userService    core.UserService
	storageService core.StorageService
	logger         *zap.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(us core.UserService, ss core.StorageService, logger *zap.Logger) *UserHandler {
	return &UserHandler{userService: us, storageService: ss, logger: logger}
}

// InitializeUserProfile handles POST /api/v1/users/initialize.
// Clients call it after any Firebase sign-in (password, redirect, linked) so
// the backend profile exists before the app renders. Safe to call repeatedly.
func (h *UserHandler) InitializeUserProfile(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		return
	}

	// Claims are populated by the auth middleware; email may be absent for
	// some provider configurations and the profile tolerates that.
	email := c.GetString("userEmail")
	displayName := c.GetString("userDisplayName")
	photoURL := c.GetString("userPhotoURL")

	user, created, err := h.userService.GetOrCreate(c.Request.Context(), uid, email, displayName, photoURL)
	if err != nil {
		h.logger.Error("Failed to initialize user profile", zap.String("uid", uid), zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to initialize user profile", Details: err.Error()})
		return
	}

	resp := InitializeProfileResponse{
		User:            user,
		Created:         created,
		NeedsOnboarding: created || user.NeedsOnboarding(),
	}
	if created {
		c.JSON(http.StatusCreated, resp)
	} else {
		c.JSON(http.StatusOK, resp)
	}
}

// GetCurrentUserProfile handles GET /api/v1/users/me.
func (h *UserHandler) GetCurrentUserProfile(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		return
	}
	user, err := h.userService.GetByID(c.Request.Context(), uid)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// UpdateCurrentUserProfile handles PATCH /api/v1/users/me.
func (h *UserHandler) UpdateCurrentUserProfile(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		return
	}
	var payload models.UpdateProfilePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body", Details: err.Error()})
		return
	}
	user, err := h.userService.UpdateProfile(c.Request.Context(), uid, payload)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// UploadProfilePhoto handles POST /api/v1/users/me/photo. Expects a
// multipart form with the image under the "photo" field. The object lands at
// the fixed per-user key and its public URL is written back to the profile.
func (h *UserHandler) UploadProfilePhoto(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Missing 'photo' form file", Details: err.Error()})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Failed to open uploaded file", Details: err.Error()})
		return
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/jpeg"
	}

	url, err := h.storageService.UploadProfileImage(c.Request.Context(), uid, file, contentType)
	if err != nil {
		h.logger.Error("Profile image upload failed", zap.String("uid", uid), zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to upload profile image", Details: err.Error()})
		return
	}
	if err := h.userService.SetPhotoURL(c.Request.Context(), uid, url); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, PhotoUploadResponse{PhotoURL: url})
}

// LinkPassword handles POST /api/v1/users/me/password, adding a password
// credential to an OAuth-only account.
func (h *UserHandler) LinkPassword(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		return
	}
	var payload models.LinkPasswordPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body", Details: err.Error()})
		return
	}
	if err := h.userService.LinkPassword(c.Request.Context(), uid, payload.Password); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Password linked"})
}

// GetPublicProfile handles GET /api/v1/profiles/:uid, the display subset of
// another user's profile.
func (h *UserHandler) GetPublicProfile(c *gin.Context) {
	uid := c.Param("uid")
	user, err := h.userService.GetByID(c.Request.Context(), uid)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, user.Public())
}
