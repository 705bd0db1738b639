package api

import (
	"net/http"

	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"assistix-backend-go/internal/core"
	"assistix-backend-go/internal/middleware"
)

// RouterConfig bundles the dependencies needed to wire up the API routes.
type RouterConfig struct {
	UserService    core.UserService
	RequestService core.RequestService
	PitchService   core.PitchService
	StorageService core.StorageService
	FirebaseAuth   *auth.Client
	Logger         *zap.Logger
}

// SetupRoutes registers all API routes on the engine. Everything except the
// health probe and the city roster sits behind Firebase authentication. The
// watch group carries the SSE variants of the list endpoints; keeping it
// separate avoids wildcard conflicts with the :requestId routes.
func SetupRoutes(router *gin.Engine, cfg RouterConfig) {
	userHandler := NewUserHandler(cfg.UserService, cfg.StorageService, cfg.Logger)
	requestHandler := NewRequestHandler(cfg.RequestService, cfg.UserService, cfg.Logger)
	pitchHandler := NewPitchHandler(cfg.PitchService, cfg.Logger)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")
	v1.GET("/cities", ListCities)

	authed := v1.Group("")
	authed.Use(middleware.AuthMiddleware(cfg.FirebaseAuth))
	{
		users := authed.Group("/users")
		{
			users.POST("/initialize", userHandler.InitializeUserProfile)
			users.GET("/me", userHandler.GetCurrentUserProfile)
			users.PATCH("/me", userHandler.UpdateCurrentUserProfile)
			users.POST("/me/photo", userHandler.UploadProfilePhoto)
			users.POST("/me/password", userHandler.LinkPassword)
			users.GET("/me/requests", requestHandler.ListMyRequests)
			users.GET("/me/pitches", pitchHandler.ListMyPitches)
		}

		authed.GET("/profiles/:uid", userHandler.GetPublicProfile)

		requests := authed.Group("/requests")
		{
			requests.POST("", requestHandler.CreateRequest)
			requests.GET("", requestHandler.ListRequests)
			requests.GET("/:requestId", requestHandler.GetRequest)
			requests.POST("/:requestId/complete", requestHandler.CompleteRequest)
			requests.DELETE("/:requestId", requestHandler.DeleteRequest)
			requests.POST("/:requestId/pitches", pitchHandler.SubmitPitch)
			requests.GET("/:requestId/pitches", pitchHandler.ListPitchesForRequest)
			requests.GET("/:requestId/pitches/mine", pitchHandler.GetMyPitchStatus)
		}

		authed.DELETE("/pitches/:pitchId", pitchHandler.WithdrawPitch)

		watch := authed.Group("/watch")
		{
			watch.GET("/requests", requestHandler.WatchRequests)
			watch.GET("/requests/:requestId/pitches", pitchHandler.WatchPitchesForRequest)
			watch.GET("/me/requests", requestHandler.WatchMyRequests)
			watch.GET("/me/pitches", pitchHandler.WatchMyPitches)
		}
	}
}
