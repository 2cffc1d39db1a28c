package demo

import "github.com/gin-gonic/gin"

// RegisterPublicRoutes registers public demo request routes
func RegisterPublicRoutes(r *gin.RouterGroup, handler *Handler) {
	r.POST("/demo-requests/submit", handler.Submit)
}

// RegisterAdminRoutes registers admin demo request routes
func RegisterAdminRoutes(r *gin.RouterGroup, handler *Handler) {
	requests := r.Group("/demo-requests")
	{
		requests.GET("", handler.List)
		requests.GET("/stats", handler.Stats)
		requests.GET("/:id", handler.Get)
		requests.PATCH("/:id/status", handler.UpdateStatus)
	}
}
