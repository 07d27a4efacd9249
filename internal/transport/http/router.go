package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/iamasit07/connect4-engine/internal/config"
	"github.com/iamasit07/connect4-engine/internal/service/game"
	"github.com/iamasit07/connect4-engine/internal/transport/http/middleware"
)

// NewRouter wires the REST routes. Extra handlers (the WebSocket endpoint)
// are mounted by the caller.
func NewRouter(cfg *config.Config, sm *game.SessionManager) *gin.Engine {
	gameHandler := NewGameHandler(sm, cfg)
	watchHandler := NewWatchHandler(sm)

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(middleware.CORSMiddleware(cfg))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api/games")
	{
		api.GET("", watchHandler.GetLiveGames)
		api.POST("", gameHandler.CreateGame)
		api.GET("/:id", gameHandler.GetGame)
		api.POST("/:id/moves", gameHandler.MakeMove)
		api.DELETE("/:id", gameHandler.DeleteGame)
	}

	return router
}
