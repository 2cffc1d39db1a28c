package chat

import "github.com/gin-gonic/gin"

// RegisterRoutes registers the public chat widget routes
func RegisterRoutes(r *gin.RouterGroup, handler *Handler, ws *WSHandler) {
	r.POST("/chat", handler.Stream)
	r.GET("/chat/ws", ws.HandleWebSocket)
}
