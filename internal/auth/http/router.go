package http

import (
	"github.com/gin-gonic/gin"

	"github.com/sfarfano/registro-horas/internal/auth/middleware"
	"github.com/sfarfano/registro-horas/internal/session"
)

// Register attaches auth routes to the given router group.
func (h *Handler) Register(rg *gin.RouterGroup, sessions *session.Store) {
	rg.POST("/login", h.login)
	rg.POST("/logout", middleware.WithSession(sessions), h.logout)
}
