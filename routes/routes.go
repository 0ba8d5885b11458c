package routes

import (
	"nextjs_to_go/controllers"

	"github.com/gin-gonic/gin"
)

// InitRoutes 初始化路由配置
func InitRoutes(router *gin.Engine) {
	// 初始化控制器
	accessTokenController := &controllers.AccessTokenController{}
	userController := &controllers.UserController{}

	// JWT 令牌刷新路由
	router.POST("api/token/refresh/", userController.TokenRefresh)

	// Access Token 相关路由
	router.POST("access_token/get_token", accessTokenController.GetToken)

	// 初始化用户相关路由
	InitUserRoutes(router)

	// 初始化商家相关路由
	InitVendorRoutes(router)

	// 初始化商品相关路由
	InitProductRoutes(router)

	// 初始化购物车相关路由
	InitCartRoutes(router)

	// 初始化订单相关路由
	InitOrderRoutes(router)

	// 初始化退换货相关路由
	InitReturnRoutes(router)

	// 初始化促销活动相关路由
	InitCampaignRoutes(router)

	// 初始化活动报名相关路由
	InitRegistrationRoutes(router)

	// 测试路由
	router.GET("api/test/", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "Server is running"})
	})

	// 健康检查路由
	router.GET("api/health/", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// 404 路由
	router.NoRoute(func(c *gin.Context) {
		c.JSON(404, gin.H{"error": "页面不存在"})
	})

	// 405 路由
	router.NoMethod(func(c *gin.Context) {
		c.JSON(405, gin.H{"error": "请求方法不允许"})
	})
}
