package controllers

import (
	"errors"
	"log"
	"net/http"

	"nextjs_to_go/config"
	"nextjs_to_go/db"
	"nextjs_to_go/models"
	"nextjs_to_go/notify"
	"nextjs_to_go/service/msg"
	"nextjs_to_go/service/returns"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ReturnController 退换货控制器

type ReturnController struct{}

// returnEngine 退换货引擎实例，延迟到首次请求时创建，确保db.DB已初始化
func returnEngine() *returns.Engine {
	return returns.NewEngine(db.DB)
}

// writeReturnError 将引擎错误转换为HTTP响应
func writeReturnError(c *gin.Context, err error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  "error",
			"message": "退换货申请不存在",
		})
		return
	}

	kind := returns.ErrorKind(err)
	if kind == "" {
		log.Printf("退换货操作失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "退换货操作失败: " + err.Error(),
		})
		return
	}

	// 终态冲突用409区分，便于前端提示"请刷新后重试"
	httpStatus := http.StatusBadRequest
	if kind == returns.KindTerminalStateViolation {
		httpStatus = http.StatusConflict
	}
	c.JSON(httpStatus, gin.H{
		"status":     "error",
		"error_kind": kind,
		"message":    err.Error(),
	})
}

// CreateReturn 买家创建退换货申请
func (rc *ReturnController) CreateReturn(c *gin.Context) {
	// 绑定请求参数
	var requestData struct {
		OrderItemID       uint     `json:"order_item_id" binding:"required"`
		UserID            int      `json:"user_id" binding:"required"`
		ReturnType        string   `json:"return_type" binding:"required,oneof=return exchange"`
		Reason            string   `json:"reason" binding:"required,oneof=defective wrong_item not_as_described changed_mind damaged missing_items size_issue other"`
		Description       string   `json:"description"`
		Images            []string `json:"images"`
		Quantity          int      `json:"quantity" binding:"required"`
		ExchangeVariantID *uint    `json:"exchange_variant_id"`
	}

	if err := c.ShouldBindJSON(&requestData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "请求数据无效: " + msg.TranslateBindError(err),
		})
		return
	}

	rr, err := returnEngine().CreateReturn(returns.CreateParams{
		OrderItemID:       requestData.OrderItemID,
		UserID:            requestData.UserID,
		ReturnType:        requestData.ReturnType,
		Reason:            requestData.Reason,
		Description:       requestData.Description,
		Images:            requestData.Images,
		Quantity:          requestData.Quantity,
		ExchangeVariantID: requestData.ExchangeVariantID,
	})
	if err != nil {
		writeReturnError(c, err)
		return
	}

	// 通知卖家有新的退换货申请，失败不影响主流程
	go notifyVendorOfReturn(rr)

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "退换货申请创建成功",
		"data":    rr,
	})
}

// notifyVendorOfReturn 查出卖家联系电话并发送短信提醒
func notifyVendorOfReturn(rr *models.ReturnRequest) {
	var order models.Order
	if err := db.DB.First(&order, rr.OrderID).Error; err != nil {
		log.Printf("查询订单失败，跳过退换货提醒: %v", err)
		return
	}
	var vendor models.Vendor
	if err := db.DB.First(&vendor, order.VendorID).Error; err != nil {
		log.Printf("查询卖家失败，跳过退换货提醒: %v", err)
		return
	}
	notify.SendReturnAlert(config.LoadConfig(), vendor.ContactPhone, rr.ID)
}

// TransitionReturn 卖家推进退换货状态
func (rc *ReturnController) TransitionReturn(c *gin.Context) {
	// 绑定请求参数，每个动作对应一组附加字段
	var requestData struct {
		ReturnID        uint   `json:"return_id" binding:"required"`
		Action          string `json:"action" binding:"required,oneof=approve reject mark_shipped mark_received mark_restocked confirm_refund mark_completed"`
		TrackingNumber  string `json:"tracking_number"`
		TrackingURL     string `json:"tracking_url"`
		SellerNotes     string `json:"seller_notes"`
		RejectionReason string `json:"rejection_reason"`
	}

	if err := c.ShouldBindJSON(&requestData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "请求数据无效: " + msg.TranslateBindError(err),
		})
		return
	}

	rr, err := returnEngine().Transition(requestData.ReturnID, requestData.Action, returns.TransitionParams{
		TrackingNumber:  requestData.TrackingNumber,
		TrackingURL:     requestData.TrackingURL,
		SellerNotes:     requestData.SellerNotes,
		RejectionReason: requestData.RejectionReason,
	})
	if err != nil {
		writeReturnError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "状态更新成功",
		"data":    rr,
	})
}

// ConfirmExchangeReceived 买家确认收到换货
func (rc *ReturnController) ConfirmExchangeReceived(c *gin.Context) {
	var requestData struct {
		ReturnID uint `json:"return_id" binding:"required"`
		UserID   int  `json:"user_id" binding:"required"`
	}

	if err := c.ShouldBindJSON(&requestData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "请求数据无效: " + msg.TranslateBindError(err),
		})
		return
	}

	rr, err := returnEngine().ConfirmExchangeReceived(requestData.ReturnID, requestData.UserID)
	if err != nil {
		if errors.Is(err, returns.ErrNotRequester) {
			c.JSON(http.StatusForbidden, gin.H{
				"status":  "error",
				"message": err.Error(),
			})
			return
		}
		writeReturnError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "换货确认收货成功",
		"data":    rr,
	})
}

// CancelReturn 买家撤销退换货申请
func (rc *ReturnController) CancelReturn(c *gin.Context) {
	var requestData struct {
		ReturnID uint `json:"return_id" binding:"required"`
		UserID   int  `json:"user_id" binding:"required"`
	}

	if err := c.ShouldBindJSON(&requestData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "请求数据无效: " + msg.TranslateBindError(err),
		})
		return
	}

	rr, err := returnEngine().CancelReturn(requestData.ReturnID, requestData.UserID)
	if err != nil {
		if errors.Is(err, returns.ErrNotRequester) {
			c.JSON(http.StatusForbidden, gin.H{
				"status":  "error",
				"message": err.Error(),
			})
			return
		}
		writeReturnError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "退换货申请已撤销",
		"data":    rr,
	})
}

// GetReturnStatus 查询退换货进度
func (rc *ReturnController) GetReturnStatus(c *gin.Context) {
	var requestData struct {
		ReturnID uint `json:"return_id" binding:"required"`
	}

	if err := c.ShouldBindJSON(&requestData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "请求数据无效: " + msg.TranslateBindError(err),
		})
		return
	}

	view, err := returnEngine().GetReturnStatus(requestData.ReturnID)
	if err != nil {
		writeReturnError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   view,
	})
}

// ListReturns 卖家侧退换货列表
func (rc *ReturnController) ListReturns(c *gin.Context) {
	var queryData struct {
		VendorID uint   `json:"vendor_id"`
		Status   string `json:"status"`
		Page     int    `json:"page" binding:"required,min=1"`
		PageSize int    `json:"page_size" binding:"required,min=1,max=50"`
	}

	if err := c.ShouldBindJSON(&queryData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "请求体格式错误",
		})
		return
	}

	requests, total, err := returnEngine().ListReturns(queryData.VendorID, queryData.Status, queryData.Page, queryData.PageSize)
	if err != nil {
		log.Printf("查询退换货列表失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "查询退换货列表失败: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "success",
		"data":      requests,
		"page":      queryData.Page,
		"page_size": queryData.PageSize,
		"total":     total,
	})
}

// GetEffectiveOrderStatus 查询订单的有效展示状态
// 有活跃退换货申请时覆盖订单自身状态，前端不再自行推导
func (rc *ReturnController) GetEffectiveOrderStatus(c *gin.Context) {
	var requestData struct {
		OrderID uint `json:"order_id" binding:"required"`
	}

	if err := c.ShouldBindJSON(&requestData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "请求数据无效: " + msg.TranslateBindError(err),
		})
		return
	}

	status, err := returnEngine().GetEffectiveOrderStatus(requestData.OrderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"status":  "error",
				"message": "订单不存在",
			})
			return
		}
		log.Printf("查询订单有效状态失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "查询订单有效状态失败: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   gin.H{"order_id": requestData.OrderID, "effective_status": status},
	})
}
