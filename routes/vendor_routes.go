package routes

import (
	"nextjs_to_go/controllers"
	"nextjs_to_go/middleware"

	"github.com/gin-gonic/gin"
)

// InitVendorRoutes 初始化商家相关路由
func InitVendorRoutes(router *gin.Engine) {
	// 初始化商家控制器
	vendorController := &controllers.VendorController{}

	vendorGroup := router.Group("/vendor/", middleware.JWTAuthMiddleware())
	{
		vendorGroup.POST("create", vendorController.CreateVendor)
		vendorGroup.POST("detail", vendorController.VendorDetail)
		vendorGroup.POST("list", vendorController.ListVendors)
	}
}
