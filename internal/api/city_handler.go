package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"assistix-backend-go/internal/models"
)

// ListCities handles GET /api/v1/cities. The launch-city roster is static,
// so no auth and no datastore round trip.
func ListCities(c *gin.Context) {
	c.JSON(http.StatusOK, models.ActiveCities)
}
