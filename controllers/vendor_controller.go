package controllers

import (
	"log"
	"net/http"

	"nextjs_to_go/db"
	"nextjs_to_go/models"
	"nextjs_to_go/utils"

	"github.com/gin-gonic/gin"
)

// VendorController 商家控制器

type VendorController struct{}

// CreateVendor 开通商家店铺
func (vc *VendorController) CreateVendor(c *gin.Context) {
	var requestData struct {
		UserID       int    `json:"user_id" binding:"required"`
		ShopName     string `json:"shop_name" binding:"required"`
		ContactPhone string `json:"contact_phone"`
	}

	if err := c.ShouldBindJSON(&requestData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "请求数据无效: " + err.Error()})
		return
	}

	if requestData.ContactPhone != "" && !utils.IsValidPhone(requestData.ContactPhone) {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "联系电话格式错误"})
		return
	}

	var user models.User
	if err := db.DB.First(&user, requestData.UserID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "用户不存在"})
		return
	}

	// 一个用户只能开通一家店铺
	var count int64
	db.DB.Model(&models.Vendor{}).Where("user_id = ?", requestData.UserID).Count(&count)
	if count > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "该用户已开通店铺"})
		return
	}

	vendor := models.Vendor{
		UserID:       requestData.UserID,
		ShopName:     requestData.ShopName,
		ContactPhone: requestData.ContactPhone,
		Status:       "active",
	}

	if err := db.DB.Create(&vendor).Error; err != nil {
		log.Printf("开通店铺失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "开通店铺失败: " + err.Error()})
		return
	}

	// 用户角色升级为卖家并关联店铺
	db.DB.Model(&user).Updates(map[string]interface{}{
		"role":      models.RoleSeller,
		"vendor_id": vendor.ID,
	})

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "店铺开通成功",
		"data":    vendor,
	})
}

// VendorDetail 查询商家信息
func (vc *VendorController) VendorDetail(c *gin.Context) {
	var queryData struct {
		VendorID uint `json:"vendor_id" binding:"required"`
	}

	if err := c.ShouldBindJSON(&queryData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "请求体格式错误"})
		return
	}

	var vendor models.Vendor
	if err := db.DB.First(&vendor, queryData.VendorID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "店铺不存在"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   vendor,
	})
}

// ListVendors 查询商家列表
func (vc *VendorController) ListVendors(c *gin.Context) {
	var queryData struct {
		Page     int `json:"page" binding:"required,min=1"`
		PageSize int `json:"page_size" binding:"required,min=1,max=50"`
	}

	if err := c.ShouldBindJSON(&queryData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "请求体格式错误"})
		return
	}

	var total int64
	if err := db.DB.Model(&models.Vendor{}).Count(&total).Error; err != nil {
		log.Printf("获取商家总数失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "查询商家总数失败: " + err.Error()})
		return
	}

	offset := (queryData.Page - 1) * queryData.PageSize
	var vendors []models.Vendor
	if err := db.DB.Offset(offset).Limit(queryData.PageSize).Order("created_at DESC").Find(&vendors).Error; err != nil {
		log.Printf("查询商家列表失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "查询商家列表失败: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "success",
		"data":      vendors,
		"page":      queryData.Page,
		"page_size": queryData.PageSize,
		"total":     total,
	})
}
