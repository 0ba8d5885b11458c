package controllers

import (
	"log"
	"net/http"
	"time"

	"nextjs_to_go/db"
	"nextjs_to_go/models"
	"nextjs_to_go/service/msg"
	"nextjs_to_go/utils"

	"github.com/gin-gonic/gin"
)

// CampaignController 促销活动控制器

type CampaignController struct{}

// CreateCampaignRequest 创建活动请求结构体
type CreateCampaignRequest struct {
	Name          string  `json:"name" binding:"required"`
	Type          string  `json:"type" binding:"required,oneof=percentage fixed"`
	DiscountValue float64 `json:"discount_value" binding:"required,gt=0"`
	StartDate     string  `json:"start_date" binding:"required"`
	EndDate       string  `json:"end_date" binding:"required"`
	CampaignType  string  `json:"campaign_type" binding:"omitempty,oneof=regular flash_sale"`
}

// UpdateCampaignRequest 更新活动请求结构体
type UpdateCampaignRequest struct {
	ID            uint    `json:"id" binding:"required"`
	Name          string  `json:"name"`
	Type          string  `json:"type" binding:"omitempty,oneof=percentage fixed"`
	DiscountValue float64 `json:"discount_value"`
	StartDate     string  `json:"start_date"`
	EndDate       string  `json:"end_date"`
	Status        string  `json:"status" binding:"omitempty,oneof=draft upcoming active ended"`
}

// CreateCampaign 管理员新增促销活动
func (cc *CampaignController) CreateCampaign(c *gin.Context) {
	var request CreateCampaignRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "请求参数错误: " + msg.TranslateBindError(err)})
		return
	}

	// 解析活动开始时间
	startDate, err := utils.ParseDateTime(request.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "活动开始时间格式错误，应为YYYY-MM-DD HH:MM:SS"})
		return
	}

	// 解析活动结束时间
	endDate, err := utils.ParseDateTime(request.EndDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "活动结束时间格式错误，应为YYYY-MM-DD HH:MM:SS"})
		return
	}

	if !endDate.After(startDate) {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "活动结束时间必须晚于开始时间"})
		return
	}

	campaignType := request.CampaignType
	if campaignType == "" {
		campaignType = models.CampaignTypeRegular
	}

	// 创建活动记录，新建活动一律从草稿开始
	camp := models.Campaign{
		Name:          request.Name,
		Type:          request.Type,
		DiscountValue: request.DiscountValue,
		StartDate:     startDate,
		EndDate:       endDate,
		Status:        models.CampaignStatusDraft,
		CampaignType:  campaignType,
	}

	if err := db.DB.Create(&camp).Error; err != nil {
		log.Printf("创建促销活动失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "创建促销活动失败: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "促销活动创建成功",
		"data":    camp,
	})
}

// UpdateCampaign 管理员更新促销活动
func (cc *CampaignController) UpdateCampaign(c *gin.Context) {
	var request UpdateCampaignRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "请求参数错误: " + msg.TranslateBindError(err)})
		return
	}

	var camp models.Campaign
	if err := db.DB.First(&camp, request.ID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "促销活动不存在"})
		return
	}

	if request.Name != "" {
		camp.Name = request.Name
	}
	if request.Type != "" {
		camp.Type = request.Type
	}
	if request.DiscountValue > 0 {
		camp.DiscountValue = request.DiscountValue
	}
	if request.StartDate != "" {
		startDate, err := utils.ParseDateTime(request.StartDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "活动开始时间格式错误，应为YYYY-MM-DD HH:MM:SS"})
			return
		}
		camp.StartDate = startDate
	}
	if request.EndDate != "" {
		endDate, err := utils.ParseDateTime(request.EndDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "活动结束时间格式错误，应为YYYY-MM-DD HH:MM:SS"})
			return
		}
		camp.EndDate = endDate
	}
	if request.Status != "" {
		camp.Status = request.Status
	}

	if !camp.EndDate.After(camp.StartDate) {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "活动结束时间必须晚于开始时间"})
		return
	}

	if err := db.DB.Save(&camp).Error; err != nil {
		log.Printf("更新促销活动失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "更新促销活动失败: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "促销活动更新成功",
		"data":    camp,
	})
}

// ListCampaigns 查询促销活动列表
func (cc *CampaignController) ListCampaigns(c *gin.Context) {
	var queryData struct {
		Status       string `json:"status" binding:"omitempty,oneof=draft upcoming active ended"`
		CampaignType string `json:"campaign_type" binding:"omitempty,oneof=regular flash_sale"`
	}

	if err := c.ShouldBindJSON(&queryData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "请求体格式错误"})
		return
	}

	query := db.DB.Model(&models.Campaign{})
	if queryData.CampaignType != "" {
		query = query.Where("campaign_type = ?", queryData.CampaignType)
	}

	var campaigns []models.Campaign
	if err := query.Order("start_date DESC").Find(&campaigns).Error; err != nil {
		log.Printf("查询促销活动列表失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "查询促销活动列表失败: " + err.Error()})
		return
	}

	// 按时间窗口推算展示状态后再做状态过滤
	now := time.Now()
	result := make([]map[string]interface{}, 0, len(campaigns))
	for _, camp := range campaigns {
		effective := camp.EffectiveStatus(now)
		if queryData.Status != "" && effective != queryData.Status {
			continue
		}
		result = append(result, map[string]interface{}{
			"id":             camp.ID,
			"name":           camp.Name,
			"type":           camp.Type,
			"discount_value": camp.DiscountValue,
			"start_date":     utils.FormatDateTime(camp.StartDate),
			"end_date":       utils.FormatDateTime(camp.EndDate),
			"status":         effective,
			"campaign_type":  camp.CampaignType,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   result,
		"total":  len(result),
	})
}

// CampaignDetail 查询单个促销活动
func (cc *CampaignController) CampaignDetail(c *gin.Context) {
	var queryData struct {
		ID uint `json:"id" binding:"required"`
	}

	if err := c.ShouldBindJSON(&queryData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "请求体格式错误"})
		return
	}

	var camp models.Campaign
	if err := db.DB.First(&camp, queryData.ID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "促销活动不存在"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data": gin.H{
			"id":               camp.ID,
			"name":             camp.Name,
			"type":             camp.Type,
			"discount_value":   camp.DiscountValue,
			"start_date":       utils.FormatDateTime(camp.StartDate),
			"end_date":         utils.FormatDateTime(camp.EndDate),
			"status":           camp.Status,
			"effective_status": camp.EffectiveStatus(time.Now()),
			"campaign_type":    camp.CampaignType,
		},
	})
}
