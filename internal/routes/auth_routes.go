package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/civicfix/internal/auth"
	"github.com/civicfix/internal/handlers"
)

// SetupAuthRoutes 设置认证相关路由
func SetupAuthRoutes(router *gin.RouterGroup, authHandler *handlers.AuthHandler) {
	apiV1 := router.Group("/v1") // 创建 /api/v1 路由组
	{
		// 公共认证路由组 (注册和登录)
		publicAuthGroup := apiV1.Group("/auth")
		{
			// POST /api/v1/auth/register
			publicAuthGroup.POST("/register", authHandler.Register)
			// POST /api/v1/auth/login
			publicAuthGroup.POST("/login", authHandler.Login)
		}

		// 受保护的认证路由组 (登出和个人资料)
		protectedAuthGroup := apiV1.Group("/auth")
		protectedAuthGroup.Use(auth.JWTMiddleware()) // 应用JWT中间件到这个组
		{
			// POST /api/v1/auth/logout
			protectedAuthGroup.POST("/logout", authHandler.LogoutHandler)
			// GET /api/v1/auth/profile
			protectedAuthGroup.GET("/profile", authHandler.Profile)
		}
	}
}
