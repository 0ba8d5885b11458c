package controllers

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"nextjs_to_go/db"
	"nextjs_to_go/models"
	"nextjs_to_go/utils"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// ExportController 后台数据导出控制器

type ExportController struct{}

// ExportReturns 导出退换货申请到Excel
func (ec *ExportController) ExportReturns(c *gin.Context) {
	var queryData struct {
		VendorID uint   `json:"vendor_id"`
		Status   string `json:"status"`
	}

	// 请求体可为空，为空时导出全部
	if err := c.ShouldBindJSON(&queryData); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "请求数据无效: " + err.Error()})
		return
	}

	query := db.DB.Model(&models.ReturnRequest{})
	if queryData.VendorID > 0 {
		query = query.Where("order_id IN (?)",
			db.DB.Model(&models.Order{}).Select("id").Where("vendor_id = ?", queryData.VendorID))
	}
	if queryData.Status != "" {
		query = query.Where("status = ?", queryData.Status)
	}

	var requests []models.ReturnRequest
	if err := query.Order("requested_at DESC").Find(&requests).Error; err != nil {
		log.Printf("查询退换货申请失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "查询退换货申请失败: " + err.Error()})
		return
	}

	// 创建Excel文件
	f := excelize.NewFile()

	// 设置工作表名称
	sheetName := "退换货申请"
	f.SetSheetName("Sheet1", sheetName)

	// 设置表头
	header := []string{"序号", "申请ID", "订单ID", "买家ID", "商品ID", "类型", "原因", "数量", "退款金额", "状态", "申请时间", "完成时间"}
	for i, h := range header {
		cell := fmt.Sprintf("%s%d", string(rune('A'+i)), 1)
		f.SetCellValue(sheetName, cell, h)
	}

	// 填充数据
	for i, rr := range requests {
		row := i + 2
		completedAt := ""
		if rr.CompletedAt != nil {
			completedAt = utils.FormatDateTime(*rr.CompletedAt)
		}

		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), i+1)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), rr.ID)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), rr.OrderID)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), rr.UserID)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), rr.ProductID)
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), rr.ReturnType)
		f.SetCellValue(sheetName, fmt.Sprintf("G%d", row), rr.Reason)
		f.SetCellValue(sheetName, fmt.Sprintf("H%d", row), rr.Quantity)
		f.SetCellValue(sheetName, fmt.Sprintf("I%d", row), rr.RefundAmount)
		f.SetCellValue(sheetName, fmt.Sprintf("J%d", row), rr.Status)
		f.SetCellValue(sheetName, fmt.Sprintf("K%d", row), utils.FormatDateTime(rr.RequestedAt))
		f.SetCellValue(sheetName, fmt.Sprintf("L%d", row), completedAt)
	}

	// 设置响应头
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=returns_%s.xlsx", time.Now().Format("20060102_150405")))

	// 导出文件
	if err := f.Write(c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "导出失败"})
		return
	}
}

// ExportRegistrations 导出活动报名记录到Excel
func (ec *ExportController) ExportRegistrations(c *gin.Context) {
	var queryData struct {
		CampaignID uint `json:"campaign_id" binding:"required"`
	}

	if err := c.ShouldBindJSON(&queryData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "请求数据无效: " + err.Error()})
		return
	}

	var regs []models.CampaignProductRegistration
	if err := db.DB.Where("campaign_id = ?", queryData.CampaignID).Order("registered_at ASC").Find(&regs).Error; err != nil {
		log.Printf("查询活动报名失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "查询活动报名失败: " + err.Error()})
		return
	}

	f := excelize.NewFile()

	sheetName := "活动报名"
	f.SetSheetName("Sheet1", sheetName)

	header := []string{"序号", "报名ID", "商家ID", "商品ID", "规格ID", "报名数量", "已售数量", "状态", "驳回原因", "报名时间"}
	for i, h := range header {
		cell := fmt.Sprintf("%s%d", string(rune('A'+i)), 1)
		f.SetCellValue(sheetName, cell, h)
	}

	for i, reg := range regs {
		row := i + 2
		variantID := ""
		if reg.VariantID != nil {
			variantID = fmt.Sprintf("%d", *reg.VariantID)
		}

		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), i+1)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), reg.ID)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), reg.VendorID)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), reg.ProductID)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), variantID)
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), reg.Quantity)
		f.SetCellValue(sheetName, fmt.Sprintf("G%d", row), reg.PurchasedQuantity)
		f.SetCellValue(sheetName, fmt.Sprintf("H%d", row), reg.Status)
		f.SetCellValue(sheetName, fmt.Sprintf("I%d", row), reg.RejectionReason)
		f.SetCellValue(sheetName, fmt.Sprintf("J%d", row), utils.FormatDateTime(reg.RegisteredAt))
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=registrations_%d_%s.xlsx", queryData.CampaignID, time.Now().Format("20060102_150405")))

	if err := f.Write(c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "导出失败"})
		return
	}
}
