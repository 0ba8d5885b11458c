package routes

import (
	"nextjs_to_go/controllers"
	"nextjs_to_go/middleware"

	"github.com/gin-gonic/gin"
)

// InitProductRoutes 初始化商品相关路由
func InitProductRoutes(router *gin.Engine) {
	// 初始化商品控制器
	productController := &controllers.ProductController{}

	productGroup := router.Group("/product/")
	{
		// 浏览类路由
		productGroup.POST("list", productController.ListProducts)
		productGroup.POST("detail", productController.ProductDetail)

		// 卖家管理路由
		sellerGroup := productGroup.Group("", middleware.JWTAuthMiddleware(), middleware.RequireRole("seller", "admin"))
		{
			sellerGroup.POST("create", productController.CreateProduct)
			sellerGroup.POST("create_variant", productController.CreateVariant)
			sellerGroup.POST("update_stock", productController.UpdateStock)
		}
	}
}
