package routes

import (
	"nextjs_to_go/controllers"
	"nextjs_to_go/middleware"

	"github.com/gin-gonic/gin"
)

// InitOrderRoutes 初始化订单相关路由
func InitOrderRoutes(router *gin.Engine) {
	// 初始化订单控制器
	orderController := &controllers.OrderController{}

	orderGroup := router.Group("/order/", middleware.JWTAuthMiddleware())
	{
		orderGroup.POST("create", orderController.CreateOrder)
		orderGroup.POST("list", orderController.OrderList)
		orderGroup.POST("detail", orderController.OrderDetail)

		// 卖家/管理员登记送达
		sellerGroup := orderGroup.Group("", middleware.RequireRole("seller", "admin"))
		{
			sellerGroup.POST("mark_delivered", orderController.MarkDelivered)
		}
	}
}
