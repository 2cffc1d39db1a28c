package lead

import "github.com/gin-gonic/gin"

// RegisterPublicRoutes registers public lead routes
func RegisterPublicRoutes(r *gin.RouterGroup, handler *Handler) {
	r.POST("/leads/submit", handler.Submit)
}

// RegisterAdminRoutes registers admin lead routes
func RegisterAdminRoutes(r *gin.RouterGroup, handler *Handler) {
	leads := r.Group("/leads")
	{
		leads.GET("", handler.List)
		leads.GET("/stats", handler.Stats)
		leads.GET("/:id", handler.Get)
		leads.PATCH("/:id/status", handler.UpdateStatus)
	}
}
