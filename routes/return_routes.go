package routes

import (
	"nextjs_to_go/controllers"
	"nextjs_to_go/middleware"

	"github.com/gin-gonic/gin"
)

// InitReturnRoutes 初始化退换货相关路由
func InitReturnRoutes(router *gin.Engine) {
	// 初始化退换货控制器
	returnController := &controllers.ReturnController{}
	exportController := &controllers.ExportController{}

	returnGroup := router.Group("/return/", middleware.JWTAuthMiddleware())
	{
		// 买家路由
		returnGroup.POST("create", returnController.CreateReturn)
		returnGroup.POST("cancel", returnController.CancelReturn)
		returnGroup.POST("confirm_exchange", returnController.ConfirmExchangeReceived)
		returnGroup.POST("status", returnController.GetReturnStatus)
		returnGroup.POST("effective_order_status", returnController.GetEffectiveOrderStatus)

		// 卖家处理路由
		sellerGroup := returnGroup.Group("", middleware.RequireRole("seller", "admin"))
		{
			sellerGroup.POST("transition", returnController.TransitionReturn)
			sellerGroup.POST("list", returnController.ListReturns)
			sellerGroup.POST("export", exportController.ExportReturns)
		}
	}
}
