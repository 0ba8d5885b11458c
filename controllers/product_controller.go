package controllers

import (
	"log"
	"net/http"

	"nextjs_to_go/db"
	"nextjs_to_go/models"

	"github.com/gin-gonic/gin"
)

// ProductController 商品控制器

type ProductController struct{}

// CreateProduct 卖家新增商品
func (pc *ProductController) CreateProduct(c *gin.Context) {
	var requestData struct {
		VendorID    uint    `json:"vendor_id" binding:"required"`
		Name        string  `json:"name" binding:"required"`
		Description string  `json:"description"`
		Price       float64 `json:"price" binding:"required,gt=0"`
		Stock       int     `json:"stock" binding:"min=0"`
		ImageURL    string  `json:"image_url"`
	}

	if err := c.ShouldBindJSON(&requestData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "请求数据无效: " + err.Error()})
		return
	}

	product := models.Product{
		VendorID:    requestData.VendorID,
		Name:        requestData.Name,
		Description: requestData.Description,
		Price:       requestData.Price,
		Stock:       requestData.Stock,
		ImageURL:    requestData.ImageURL,
		Status:      "on_sale",
	}

	if err := db.DB.Create(&product).Error; err != nil {
		log.Printf("创建商品失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "创建商品失败: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "商品创建成功",
		"data":    product,
	})
}

// CreateVariant 新增商品规格
func (pc *ProductController) CreateVariant(c *gin.Context) {
	var requestData struct {
		ProductID uint    `json:"product_id" binding:"required"`
		Name      string  `json:"name" binding:"required"`
		SKU       string  `json:"sku" binding:"required"`
		Price     float64 `json:"price" binding:"required,gt=0"`
		Stock     int     `json:"stock" binding:"min=0"`
	}

	if err := c.ShouldBindJSON(&requestData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "请求数据无效: " + err.Error()})
		return
	}

	// 确认商品存在
	var product models.Product
	if err := db.DB.First(&product, requestData.ProductID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "商品不存在"})
		return
	}

	variant := models.ProductVariant{
		ProductID: requestData.ProductID,
		Name:      requestData.Name,
		SKU:       requestData.SKU,
		Price:     requestData.Price,
		Stock:     requestData.Stock,
	}

	if err := db.DB.Create(&variant).Error; err != nil {
		log.Printf("创建商品规格失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "创建商品规格失败: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "商品规格创建成功",
		"data":    variant,
	})
}

// ListProducts 查询商品列表
func (pc *ProductController) ListProducts(c *gin.Context) {
	var queryData struct {
		VendorID uint `json:"vendor_id"`
		Page     int  `json:"page" binding:"required,min=1"`
		PageSize int  `json:"page_size" binding:"required,min=1,max=50"`
	}

	if err := c.ShouldBindJSON(&queryData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "请求体格式错误"})
		return
	}

	query := db.DB.Model(&models.Product{})
	if queryData.VendorID > 0 {
		query = query.Where("vendor_id = ?", queryData.VendorID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		log.Printf("获取商品总数失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "查询商品总数失败: " + err.Error()})
		return
	}

	offset := (queryData.Page - 1) * queryData.PageSize
	var products []models.Product
	if err := query.Offset(offset).Limit(queryData.PageSize).Order("created_at DESC").Find(&products).Error; err != nil {
		log.Printf("查询商品列表失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "查询商品列表失败: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "success",
		"data":      products,
		"page":      queryData.Page,
		"page_size": queryData.PageSize,
		"total":     total,
	})
}

// ProductDetail 查询商品详情，含全部规格
func (pc *ProductController) ProductDetail(c *gin.Context) {
	var queryData struct {
		ProductID uint `json:"product_id" binding:"required"`
	}

	if err := c.ShouldBindJSON(&queryData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "请求体格式错误"})
		return
	}

	var product models.Product
	if err := db.DB.First(&product, queryData.ProductID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "商品不存在"})
		return
	}

	var variants []models.ProductVariant
	if err := db.DB.Where("product_id = ?", product.ID).Find(&variants).Error; err != nil {
		log.Printf("查询商品规格失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "查询商品规格失败: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data": gin.H{
			"product":  product,
			"variants": variants,
		},
	})
}

// UpdateStock 调整商品或规格库存
func (pc *ProductController) UpdateStock(c *gin.Context) {
	var requestData struct {
		ProductID uint  `json:"product_id" binding:"required"`
		VariantID *uint `json:"variant_id"`
		Stock     int   `json:"stock" binding:"min=0"`
	}

	if err := c.ShouldBindJSON(&requestData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "请求数据无效: " + err.Error()})
		return
	}

	if requestData.VariantID == nil {
		result := db.DB.Model(&models.Product{}).Where("id = ?", requestData.ProductID).Update("stock", requestData.Stock)
		if result.Error != nil || result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "商品不存在"})
			return
		}
	} else {
		result := db.DB.Model(&models.ProductVariant{}).Where("id = ? AND product_id = ?", *requestData.VariantID, requestData.ProductID).Update("stock", requestData.Stock)
		if result.Error != nil || result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "商品规格不存在"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "库存更新成功",
	})
}
