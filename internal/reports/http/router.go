package http

import "github.com/gin-gonic/gin"

// Register attaches report routes to the given (admin-gated) group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/summary", h.summary)
	rg.GET("/cost-centers", h.costCenters)
	rg.GET("/persons", h.persons)
	rg.POST("/payroll", h.payroll)
	rg.POST("/export", h.export)
}
