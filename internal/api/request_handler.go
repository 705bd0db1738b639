package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"assistix-backend-go/internal/core"
	"assistix-backend-go/internal/models"
)

// RequestHandler handles help-request API endpoints.
type RequestHandler struct {
	requestService core.RequestService
	userService    core.UserService
	logger         *zap.Logger
}

// NewRequestHandler creates a new RequestHandler.
func NewRequestHandler(rs core.RequestService, us core.UserService, logger *zap.Logger) *RequestHandler {
	return &RequestHandler{requestService: rs, userService: us, logger: logger}
}

// CreateRequest handles POST /api/v1/requests.
func (h *RequestHandler) CreateRequest(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		return
	}
	var payload models.CreateRequestPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body", Details: err.Error()})
		return
	}
	request, err := h.requestService.Create(c.Request.Context(), uid, payload)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, request)
}

// ListRequests handles GET /api/v1/requests. The city defaults to the
// caller's active city; q/category/status are applied in memory after the
// city-scoped query returns.
func (h *RequestHandler) ListRequests(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		return
	}
	city, filter, ok := h.resolveListParams(c, uid)
	if !ok {
		return
	}
	requests, err := h.requestService.ListByCity(c.Request.Context(), city, filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, requests)
}

// WatchRequests handles GET /api/v1/watch/requests, the SSE variant of
// ListRequests. Every Firestore push re-emits the filtered list.
func (h *RequestHandler) WatchRequests(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		return
	}
	city, filter, ok := h.resolveListParams(c, uid)
	if !ok {
		return
	}
	updates, errs := h.requestService.WatchByCity(c.Request.Context(), city, filter)
	streamUpdates(c, updates, errs)
}

// GetRequest handles GET /api/v1/requests/:requestId.
func (h *RequestHandler) GetRequest(c *gin.Context) {
	request, err := h.requestService.GetByID(c.Request.Context(), c.Param("requestId"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, request)
}

// CompleteRequest handles POST /api/v1/requests/:requestId/complete.
func (h *RequestHandler) CompleteRequest(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		return
	}
	// An empty body is fine; helperId is optional.
	var payload models.CompleteRequestPayload
	if err := c.ShouldBindJSON(&payload); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body", Details: err.Error()})
		return
	}
	request, err := h.requestService.Complete(c.Request.Context(), uid, c.Param("requestId"), payload.HelperID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, request)
}

// DeleteRequest handles DELETE /api/v1/requests/:requestId. Deleting a
// request also removes its pitches.
func (h *RequestHandler) DeleteRequest(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		return
	}
	if err := h.requestService.Delete(c.Request.Context(), uid, c.Param("requestId")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Request deleted"})
}

// ListMyRequests handles GET /api/v1/users/me/requests.
func (h *RequestHandler) ListMyRequests(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		return
	}
	requests, err := h.requestService.ListByOwner(c.Request.Context(), uid)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, requests)
}

// WatchMyRequests handles GET /api/v1/watch/me/requests.
func (h *RequestHandler) WatchMyRequests(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		return
	}
	updates, errs := h.requestService.WatchByOwner(c.Request.Context(), uid)
	streamUpdates(c, updates, errs)
}

// resolveListParams pulls the city and in-memory filter from the query
// string, falling back to the caller's active city. Writes the error
// response itself on failure.
func (h *RequestHandler) resolveListParams(c *gin.Context, uid string) (string, models.RequestFilter, bool) {
	filter := models.RequestFilter{
		Search:   c.Query("q"),
		Category: c.Query("category"),
		Status:   models.RequestStatus(c.Query("status")),
	}
	if filter.Status != "" && !models.IsValidStatus(filter.Status) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Unknown status filter: " + string(filter.Status)})
		return "", filter, false
	}

	city := c.Query("city")
	if city == "" {
		user, err := h.userService.GetByID(c.Request.Context(), uid)
		if err != nil {
			respondServiceError(c, err)
			return "", filter, false
		}
		city = user.ActiveCity
	}
	if city == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: core.ErrNoCity.Error()})
		return "", filter, false
	}
	return city, filter, true
}
