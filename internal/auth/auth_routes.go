package auth

import (
	"go-erp/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts /auth. authMW validates the caller's token.
func RegisterRoutes(r *gin.RouterGroup, handler *Handler, authMW gin.HandlerFunc) {
	auth := r.Group("/auth")
	{
		auth.GET("/me", authMW, middleware.RateLimitByUser(2, 5), handler.Me)
		auth.POST("/change-password", authMW, middleware.RateLimitByUser(0.1, 3), handler.ChangePassword)
		auth.POST("/logout", middleware.RateLimitByIP(2, 5), handler.Logout)
	}
}
