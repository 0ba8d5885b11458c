package routes

import (
	"nextjs_to_go/controllers"
	"nextjs_to_go/middleware"

	"github.com/gin-gonic/gin"
)

// InitCartRoutes 初始化购物车相关路由
func InitCartRoutes(router *gin.Engine) {
	// 初始化购物车控制器
	cartController := &controllers.CartController{}

	cartGroup := router.Group("/cart/", middleware.JWTAuthMiddleware())
	{
		cartGroup.POST("add", cartController.AddItem)
		cartGroup.POST("update", cartController.UpdateItem)
		cartGroup.POST("remove", cartController.RemoveItem)
		cartGroup.POST("get", cartController.GetCart)
	}
}
