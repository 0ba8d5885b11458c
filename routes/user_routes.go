package routes

import (
	"nextjs_to_go/controllers"
	"nextjs_to_go/middleware"

	"github.com/gin-gonic/gin"
)

// InitUserRoutes 初始化用户相关路由
func InitUserRoutes(router *gin.Engine) {
	// 初始化用户控制器
	userController := &controllers.UserController{}

	userGroup := router.Group("/user/")
	{
		// 开放路由
		userGroup.POST("register", userController.Register)
		userGroup.POST("login", userController.Login)
		userGroup.POST("send_code", userController.SendVerificationCode)

		// 需要登录的路由
		authGroup := userGroup.Group("", middleware.JWTAuthMiddleware())
		{
			authGroup.POST("profile", userController.Profile)
			authGroup.POST("update_profile", userController.UpdateProfile)
		}
	}
}
