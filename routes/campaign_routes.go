package routes

import (
	"nextjs_to_go/controllers"
	"nextjs_to_go/middleware"

	"github.com/gin-gonic/gin"
)

// InitCampaignRoutes 初始化促销活动相关路由
func InitCampaignRoutes(router *gin.Engine) {
	// 初始化促销活动控制器
	campaignController := &controllers.CampaignController{}

	campaignGroup := router.Group("/campaign/")
	{
		// 浏览类路由
		campaignGroup.POST("list", campaignController.ListCampaigns)
		campaignGroup.POST("detail", campaignController.CampaignDetail)

		// 管理员管理路由
		adminGroup := campaignGroup.Group("", middleware.JWTAuthMiddleware(), middleware.RequireRole("admin"))
		{
			adminGroup.POST("create", campaignController.CreateCampaign)
			adminGroup.POST("update", campaignController.UpdateCampaign)
		}
	}
}
