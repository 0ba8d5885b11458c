package controllers

import (
	"log"
	"net/http"
	"time"

	"nextjs_to_go/db"
	"nextjs_to_go/models"
	"nextjs_to_go/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CartController 购物车控制器

type CartController struct{}

// loadOrCreateCart 查找买家购物车，不存在时创建
func loadOrCreateCart(userID int) (*models.Cart, error) {
	var cart models.Cart
	err := db.DB.Where("user_id = ?", userID).First(&cart).Error
	if err == nil {
		if cart.CartItems == nil {
			cart.CartItems = make(models.CartItemsMap)
		}
		return &cart, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	cart = models.Cart{
		UserID:    userID,
		CartItems: make(models.CartItemsMap),
	}
	if err := db.DB.Create(&cart).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}

// AddItem 加入购物车，同商品同规格累加数量
func (cc *CartController) AddItem(c *gin.Context) {
	var requestData struct {
		UserID    int   `json:"user_id" binding:"required"`
		ProductID uint  `json:"product_id" binding:"required"`
		VariantID *uint `json:"variant_id"`
		Quantity  int   `json:"quantity" binding:"required,min=1"`
	}

	if err := c.ShouldBindJSON(&requestData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "请求数据无效: " + err.Error()})
		return
	}

	// 确认商品存在且在售
	var product models.Product
	if err := db.DB.First(&product, requestData.ProductID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "商品不存在"})
		return
	}
	if requestData.VariantID != nil {
		var variant models.ProductVariant
		if err := db.DB.Where("id = ? AND product_id = ?", *requestData.VariantID, requestData.ProductID).First(&variant).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "商品规格不存在"})
			return
		}
	}

	cart, err := loadOrCreateCart(requestData.UserID)
	if err != nil {
		log.Printf("读取购物车失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "读取购物车失败: " + err.Error()})
		return
	}

	key := models.CartItemKey(requestData.ProductID, requestData.VariantID)
	if existing, ok := cart.CartItems[key]; ok {
		existing.Quantity += requestData.Quantity
		cart.CartItems[key] = existing
	} else {
		cart.CartItems[key] = models.CartItemJSON{
			ProductID: requestData.ProductID,
			VariantID: requestData.VariantID,
			Quantity:  requestData.Quantity,
			AddedTime: utils.FormatDateTime(time.Now()),
		}
	}

	if err := db.DB.Model(cart).Update("cart_items", cart.CartItems).Error; err != nil {
		log.Printf("保存购物车失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "保存购物车失败: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "已加入购物车",
		"data":    cart.CartItems,
	})
}

// UpdateItem 修改购物车项数量，数量为0时移除
func (cc *CartController) UpdateItem(c *gin.Context) {
	var requestData struct {
		UserID    int   `json:"user_id" binding:"required"`
		ProductID uint  `json:"product_id" binding:"required"`
		VariantID *uint `json:"variant_id"`
		Quantity  int   `json:"quantity" binding:"min=0"`
	}

	if err := c.ShouldBindJSON(&requestData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "请求数据无效: " + err.Error()})
		return
	}

	cart, err := loadOrCreateCart(requestData.UserID)
	if err != nil {
		log.Printf("读取购物车失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "读取购物车失败: " + err.Error()})
		return
	}

	key := models.CartItemKey(requestData.ProductID, requestData.VariantID)
	item, ok := cart.CartItems[key]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "购物车中不存在该商品"})
		return
	}

	if requestData.Quantity == 0 {
		delete(cart.CartItems, key)
	} else {
		item.Quantity = requestData.Quantity
		cart.CartItems[key] = item
	}

	if err := db.DB.Model(cart).Update("cart_items", cart.CartItems).Error; err != nil {
		log.Printf("保存购物车失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "保存购物车失败: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "购物车已更新",
		"data":    cart.CartItems,
	})
}

// RemoveItem 移除购物车项
func (cc *CartController) RemoveItem(c *gin.Context) {
	var requestData struct {
		UserID    int   `json:"user_id" binding:"required"`
		ProductID uint  `json:"product_id" binding:"required"`
		VariantID *uint `json:"variant_id"`
	}

	if err := c.ShouldBindJSON(&requestData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "请求数据无效: " + err.Error()})
		return
	}

	cart, err := loadOrCreateCart(requestData.UserID)
	if err != nil {
		log.Printf("读取购物车失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "读取购物车失败: " + err.Error()})
		return
	}

	key := models.CartItemKey(requestData.ProductID, requestData.VariantID)
	if _, ok := cart.CartItems[key]; !ok {
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "购物车中不存在该商品"})
		return
	}
	delete(cart.CartItems, key)

	if err := db.DB.Model(cart).Update("cart_items", cart.CartItems).Error; err != nil {
		log.Printf("保存购物车失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "保存购物车失败: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "商品已移除",
		"data":    cart.CartItems,
	})
}

// GetCart 查询购物车内容
func (cc *CartController) GetCart(c *gin.Context) {
	var queryData struct {
		UserID int `json:"user_id" binding:"required"`
	}

	if err := c.ShouldBindJSON(&queryData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "请求体格式错误"})
		return
	}

	cart, err := loadOrCreateCart(queryData.UserID)
	if err != nil {
		log.Printf("读取购物车失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "读取购物车失败: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data": gin.H{
			"cart_id":    cart.CartID,
			"user_id":    cart.UserID,
			"cart_items": cart.CartItems,
			"total":      len(cart.CartItems),
		},
	})
}
