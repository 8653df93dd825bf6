// Package server assembles the HTTP router.
package server

import (
	"fmt"
	"net/http"
	"time"

	"levelup/backend/internal/auth"
	"levelup/backend/internal/handler"
	"levelup/backend/internal/hub"
	"levelup/backend/internal/store"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// NewRouter wires every route of the API onto a new gin engine.
func NewRouter(db *gorm.DB, secret []byte, eventHub *hub.Hub) *gin.Engine {
	handler.RegisterValidators()

	s := store.New(db)
	h := handler.New(s, eventHub, secret)

	router := gin.New()
	router.Use(handler.RequestID(), gin.LoggerWithFormatter(logFormatter), gin.Recovery())

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	router.POST("/register", h.RegisterUser)
	router.POST("/login", h.LoginUser)

	// Everything below knows its caller when a token is sent.
	api := router.Group("")
	api.Use(auth.IdentityMiddleware(s, secret))
	{
		gameTypeRoutes := api.Group("/gametypes")
		{
			gameTypeRoutes.GET("", h.ListGameTypes)
			gameTypeRoutes.GET("/:id", h.GetGameType)
		}

		gameRoutes := api.Group("/games")
		{
			gameRoutes.GET("", h.ListGames)
			gameRoutes.GET("/:id", h.GetGame)
			gameRoutes.POST("", auth.RequireUser(), h.CreateGame)
			gameRoutes.PUT("/:id", auth.RequireUser(), h.UpdateGame)
		}

		eventRoutes := api.Group("/events")
		{
			eventRoutes.GET("", h.ListEvents)
			eventRoutes.GET("/:id", h.GetEvent)
			eventRoutes.GET("/:id/stream", h.StreamEvent)
			eventRoutes.POST("", auth.RequireUser(), h.CreateEvent)
			eventRoutes.PUT("/:id", auth.RequireUser(), h.UpdateEvent)
			eventRoutes.POST("/:id/signup", auth.RequireUser(), h.JoinEvent)
			eventRoutes.DELETE("/:id/signup", auth.RequireUser(), h.LeaveEvent)
		}
	}

	return router
}

func logFormatter(param gin.LogFormatterParams) string {
	requestID, _ := param.Keys[handler.RequestIDKey].(string)
	return fmt.Sprintf("[GIN] %s | %3d | %13v | %15s | %-7s %#v | %s %s\n",
		param.TimeStamp.Format(time.RFC3339),
		param.StatusCode,
		param.Latency,
		param.ClientIP,
		param.Method,
		param.Path,
		requestID,
		param.ErrorMessage,
	)
}
