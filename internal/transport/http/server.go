package http

import (
	stdhttp "net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/mkravtsov/chatroom/internal/config"
	"github.com/mkravtsov/chatroom/internal/core"
)

// NewServer builds the HTTP server hosting the WebSocket endpoint and the
// read-only API routes.
func NewServer(room *core.Room, cfg config.Config, logger *zerolog.Logger) *stdhttp.Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	api := NewAPIHandlers(room, logger)
	ws := NewWSHandler(room, cfg.SendBuffer, logger)

	router.GET("/health", api.Health)
	router.GET("/api/members", api.Members)
	router.GET("/ws", ws.Serve)

	return &stdhttp.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}
}
