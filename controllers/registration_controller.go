package controllers

import (
	"errors"
	"log"
	"net/http"

	"nextjs_to_go/db"
	"nextjs_to_go/service/campaign"
	"nextjs_to_go/service/msg"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// RegistrationController 活动商品报名控制器

type RegistrationController struct{}

// registrationEngine 报名引擎实例
func registrationEngine() *campaign.Engine {
	return campaign.NewEngine(db.DB, db.RDB)
}

// writeRegistrationError 将引擎错误转换为HTTP响应
func writeRegistrationError(c *gin.Context, err error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  "error",
			"message": "记录不存在",
		})
		return
	}

	kind := campaign.ErrorKind(err)
	if kind == "" {
		log.Printf("活动报名操作失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "活动报名操作失败: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusBadRequest, gin.H{
		"status":     "error",
		"error_kind": kind,
		"message":    err.Error(),
	})
}

// Register 卖家报名商品进活动
func (rc *RegistrationController) Register(c *gin.Context) {
	// 绑定请求参数
	var requestData struct {
		CampaignID uint  `json:"campaign_id" binding:"required"`
		VendorID   uint  `json:"vendor_id" binding:"required"`
		ProductID  uint  `json:"product_id" binding:"required"`
		VariantID  *uint `json:"variant_id"`
		Quantity   int   `json:"quantity" binding:"required"`
	}

	if err := c.ShouldBindJSON(&requestData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "请求数据无效: " + msg.TranslateBindError(err),
		})
		return
	}

	reg, err := registrationEngine().RegisterProduct(
		c.Request.Context(),
		requestData.CampaignID,
		requestData.VendorID,
		requestData.ProductID,
		requestData.VariantID,
		requestData.Quantity,
	)
	if err != nil {
		writeRegistrationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "商品报名成功，等待审核",
		"data":    reg,
	})
}

// Update 修改报名数量或规格
func (rc *RegistrationController) Update(c *gin.Context) {
	var requestData struct {
		RegistrationID uint  `json:"registration_id" binding:"required"`
		Quantity       int   `json:"quantity" binding:"required"`
		VariantID      *uint `json:"variant_id"`
	}

	if err := c.ShouldBindJSON(&requestData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "请求数据无效: " + msg.TranslateBindError(err),
		})
		return
	}

	reg, err := registrationEngine().UpdateRegistration(
		c.Request.Context(),
		requestData.RegistrationID,
		requestData.Quantity,
		requestData.VariantID,
	)
	if err != nil {
		writeRegistrationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "报名修改成功",
		"data":    reg,
	})
}

// Remove 卖家撤回报名
func (rc *RegistrationController) Remove(c *gin.Context) {
	var requestData struct {
		RegistrationID uint `json:"registration_id" binding:"required"`
	}

	if err := c.ShouldBindJSON(&requestData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "请求数据无效: " + msg.TranslateBindError(err),
		})
		return
	}

	if err := registrationEngine().RemoveRegistration(requestData.RegistrationID); err != nil {
		writeRegistrationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "报名已撤回",
		"data":    gin.H{"registration_id": requestData.RegistrationID},
	})
}

// Review 管理员审核报名
func (rc *RegistrationController) Review(c *gin.Context) {
	var requestData struct {
		RegistrationID  uint   `json:"registration_id" binding:"required"`
		Decision        string `json:"decision" binding:"required,oneof=approve reject"`
		ReviewerID      int    `json:"reviewer_id" binding:"required"`
		RejectionReason string `json:"rejection_reason"`
	}

	if err := c.ShouldBindJSON(&requestData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "请求数据无效: " + msg.TranslateBindError(err),
		})
		return
	}

	reg, err := registrationEngine().ReviewRegistration(
		requestData.RegistrationID,
		requestData.Decision,
		requestData.ReviewerID,
		requestData.RejectionReason,
	)
	if err != nil {
		writeRegistrationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "审核完成",
		"data":    reg,
	})
}

// List 查询活动下的报名列表
func (rc *RegistrationController) List(c *gin.Context) {
	var queryData struct {
		CampaignID uint `json:"campaign_id" binding:"required"`
		VendorID   uint `json:"vendor_id"`
	}

	if err := c.ShouldBindJSON(&queryData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "请求体格式错误",
		})
		return
	}

	regs, err := registrationEngine().ListRegistrations(queryData.CampaignID, queryData.VendorID)
	if err != nil {
		log.Printf("查询报名列表失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "查询报名列表失败: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   regs,
		"total":  len(regs),
	})
}

// AvailableStock 查询商品规格当前可报名的数量
func (rc *RegistrationController) AvailableStock(c *gin.Context) {
	var queryData struct {
		ProductID uint  `json:"product_id" binding:"required"`
		VariantID *uint `json:"variant_id"`
	}

	if err := c.ShouldBindJSON(&queryData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "请求体格式错误",
		})
		return
	}

	available, err := registrationEngine().ComputeAvailableStock(queryData.ProductID, queryData.VariantID)
	if err != nil {
		writeRegistrationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data": gin.H{
			"product_id":      queryData.ProductID,
			"variant_id":      queryData.VariantID,
			"available_stock": available,
		},
	})
}
