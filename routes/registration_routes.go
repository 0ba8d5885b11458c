package routes

import (
	"nextjs_to_go/controllers"
	"nextjs_to_go/middleware"

	"github.com/gin-gonic/gin"
)

// InitRegistrationRoutes 初始化活动报名相关路由
func InitRegistrationRoutes(router *gin.Engine) {
	// 初始化活动报名控制器
	registrationController := &controllers.RegistrationController{}
	exportController := &controllers.ExportController{}

	registrationGroup := router.Group("/registration/", middleware.JWTAuthMiddleware())
	{
		// 卖家路由
		sellerGroup := registrationGroup.Group("", middleware.RequireRole("seller", "admin"))
		{
			sellerGroup.POST("register", registrationController.Register)
			sellerGroup.POST("update", registrationController.Update)
			sellerGroup.POST("remove", registrationController.Remove)
			sellerGroup.POST("available_stock", registrationController.AvailableStock)
		}

		// 查询路由
		registrationGroup.POST("list", registrationController.List)

		// 管理员审核与导出路由
		adminGroup := registrationGroup.Group("", middleware.RequireRole("admin"))
		{
			adminGroup.POST("review", registrationController.Review)
			adminGroup.POST("export", exportController.ExportRegistrations)
		}
	}
}
