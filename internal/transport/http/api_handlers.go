package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/mkravtsov/chatroom/internal/core"
)

// APIHandlers provides the read-only HTTP endpoints next to the WebSocket.
type APIHandlers struct {
	room *core.Room
	log  *zerolog.Logger
}

// NewAPIHandlers creates a new API handlers instance.
func NewAPIHandlers(room *core.Room, logger *zerolog.Logger) *APIHandlers {
	return &APIHandlers{room: room, log: logger}
}

// MembersResponse is the body of GET /api/members.
type MembersResponse struct {
	Members []string `json:"members"`
	Count   int      `json:"count"`
}

// Health handles liveness probes.
// GET /health
func (h *APIHandlers) Health(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

// Members returns a snapshot of the current member names, oldest first.
// GET /api/members
func (h *APIHandlers) Members(c *gin.Context) {
	names := h.room.List()
	c.JSON(http.StatusOK, MembersResponse{Members: names, Count: len(names)})
}
