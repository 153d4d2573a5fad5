package http

import (
	"github.com/sfarfano/registro-horas/internal/auth"
	"github.com/sfarfano/registro-horas/internal/auth/service"
	"github.com/sfarfano/registro-horas/internal/session"
)

// Handler bundles the dependencies for login/logout endpoints.
type Handler struct {
	auth     *service.AuthService
	sessions *session.Store
	limiter  *auth.LoginLimiter
}

func New(authSvc *service.AuthService, sessions *session.Store, limiter *auth.LoginLimiter) *Handler {
	return &Handler{auth: authSvc, sessions: sessions, limiter: limiter}
}
