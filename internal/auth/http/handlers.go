package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/sfarfano/registro-horas/internal/auth/middleware"
	"github.com/sfarfano/registro-horas/internal/auth/service"
)

type loginReq struct {
	Person string `json:"person"`
	PIN    string `json:"pin"`
}

func (h *Handler) login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Person) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	name := strings.TrimSpace(req.Person)
	if h.limiter != nil && !h.limiter.Allow(name) {
		c.JSON(http.StatusTooManyRequests, gin.H{"ok": false, "error": "too many login attempts"})
		return
	}

	id, err := h.auth.Authenticate(c.Request.Context(), name, req.PIN)
	if err != nil {
		if errors.Is(err, service.ErrBadCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "invalid name or PIN"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	sess, err := h.sessions.Create(c.Request.Context(), id.Name, id.Admin)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":     true,
		"token":  sess.Token,
		"person": sess.Person,
		"admin":  sess.Admin,
	})
}

func (h *Handler) logout(c *gin.Context) {
	token := c.GetString(middleware.CtxToken)
	if err := h.sessions.Delete(c.Request.Context(), token); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
