package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"assistix-backend-go/internal/core"
	"assistix-backend-go/internal/models"
)

// PitchHandler handles pitch API endpoints.
type PitchHandler struct {
	pitchService core.PitchService
	logger       *zap.Logger
}

// NewPitchHandler creates a new PitchHandler.
func NewPitchHandler(ps core.PitchService, logger *zap.Logger) *PitchHandler {
	return &PitchHandler{pitchService: ps, logger: logger}
}

// SubmitPitch handles POST /api/v1/requests/:requestId/pitches.
func (h *PitchHandler) SubmitPitch(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		return
	}
	var payload models.CreatePitchPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body", Details: err.Error()})
		return
	}
	pitch, err := h.pitchService.Submit(c.Request.Context(), uid, c.Param("requestId"), payload)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, pitch)
}

// ListPitchesForRequest handles GET /api/v1/requests/:requestId/pitches.
func (h *PitchHandler) ListPitchesForRequest(c *gin.Context) {
	pitches, err := h.pitchService.ListForRequest(c.Request.Context(), c.Param("requestId"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, pitches)
}

// WatchPitchesForRequest handles GET /api/v1/watch/requests/:requestId/pitches.
func (h *PitchHandler) WatchPitchesForRequest(c *gin.Context) {
	if _, ok := currentUserID(c); !ok {
		return
	}
	updates, errs := h.pitchService.WatchForRequest(c.Request.Context(), c.Param("requestId"))
	streamUpdates(c, updates, errs)
}

// GetMyPitchStatus handles GET /api/v1/requests/:requestId/pitches/mine. It
// tells the client whether the caller already pitched for the request, so the
// pitch form can be disabled without a round trip to the full list.
func (h *PitchHandler) GetMyPitchStatus(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		return
	}
	pitched, err := h.pitchService.HasPitched(c.Request.Context(), c.Param("requestId"), uid)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, PitchStatusResponse{Pitched: pitched})
}

// ListMyPitches handles GET /api/v1/users/me/pitches.
func (h *PitchHandler) ListMyPitches(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		return
	}
	pitches, err := h.pitchService.ListByHelper(c.Request.Context(), uid)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, pitches)
}

// WatchMyPitches handles GET /api/v1/watch/me/pitches.
func (h *PitchHandler) WatchMyPitches(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		return
	}
	updates, errs := h.pitchService.WatchByHelper(c.Request.Context(), uid)
	streamUpdates(c, updates, errs)
}

// WithdrawPitch handles DELETE /api/v1/pitches/:pitchId.
func (h *PitchHandler) WithdrawPitch(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		return
	}
	if err := h.pitchService.Withdraw(c.Request.Context(), uid, c.Param("pitchId")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Pitch withdrawn"})
}
