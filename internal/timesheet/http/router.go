package http

import "github.com/gin-gonic/gin"

// Register attaches time entry routes to the given router group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("", h.create)
	rg.GET("", h.list)
	rg.PATCH("/:id", h.update)
	rg.DELETE("/:id", h.delete)
}
