package controllers

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"nextjs_to_go/db"
	"nextjs_to_go/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// OrderController 订单控制器

type OrderController struct{}

// generateOrderNo 生成订单号：时间戳+用户ID
func generateOrderNo(userID int) string {
	return fmt.Sprintf("%s%06d", time.Now().Format("20060102150405"), userID%1000000)
}

// CreateOrder 买家下单
// 扣减库存、活动价计算和报名已售数量累加在同一事务内完成
func (oc *OrderController) CreateOrder(c *gin.Context) {
	var requestData struct {
		UserID        int    `json:"user_id" binding:"required"`
		VendorID      uint   `json:"vendor_id" binding:"required"`
		PaymentMethod string `json:"payment_method" binding:"required,oneof=cod bank_transfer e_wallet"`
		Items         []struct {
			ProductID uint  `json:"product_id" binding:"required"`
			VariantID *uint `json:"variant_id"`
			Quantity  int   `json:"quantity" binding:"required,min=1"`
		} `json:"items" binding:"required,min=1"`
	}

	if err := c.ShouldBindJSON(&requestData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "请求数据无效: " + err.Error()})
		return
	}

	var order models.Order
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		order = models.Order{
			OrderNo:       generateOrderNo(requestData.UserID),
			UserID:        requestData.UserID,
			VendorID:      requestData.VendorID,
			Status:        models.OrderStatusPending,
			PaymentStatus: models.PaymentStatusUnpaid,
			PaymentMethod: requestData.PaymentMethod,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		total := 0.0
		for _, item := range requestData.Items {
			// 锁定商品/规格行后扣减库存
			var name string
			var price float64
			if item.VariantID == nil {
				var product models.Product
				if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&product, item.ProductID).Error; err != nil {
					return err
				}
				if product.Stock < item.Quantity {
					return fmt.Errorf("商品 %s 库存不足", product.Name)
				}
				if err := tx.Model(&models.Product{}).Where("id = ?", product.ID).
					UpdateColumn("stock", gorm.Expr("stock - ?", item.Quantity)).Error; err != nil {
					return err
				}
				name = product.Name
				price = product.Price
			} else {
				var variant models.ProductVariant
				if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&variant, *item.VariantID).Error; err != nil {
					return err
				}
				if variant.Stock < item.Quantity {
					return fmt.Errorf("商品规格 %s 库存不足", variant.Name)
				}
				if err := tx.Model(&models.ProductVariant{}).Where("id = ?", variant.ID).
					UpdateColumn("stock", gorm.Expr("stock - ?", item.Quantity)).Error; err != nil {
					return err
				}
				var product models.Product
				if err := tx.First(&product, variant.ProductID).Error; err != nil {
					return err
				}
				name = product.Name + " " + variant.Name
				price = variant.Price
			}

			// 命中进行中活动的已审核报名时按活动价结算
			price = applyCampaignPrice(tx, item.ProductID, item.VariantID, item.Quantity, price)

			orderItem := models.OrderItem{
				OrderID:     order.ID,
				ProductID:   item.ProductID,
				VariantID:   item.VariantID,
				ProductName: name,
				Quantity:    item.Quantity,
				Price:       price,
			}
			if err := tx.Create(&orderItem).Error; err != nil {
				return err
			}
			total += price * float64(item.Quantity)
		}

		return tx.Model(&models.Order{}).Where("id = ?", order.ID).Update("total_amount", total).Error
	})
	if err != nil {
		log.Printf("创建订单失败: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "创建订单失败: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "订单创建成功",
		"data":    gin.H{"order_id": order.ID, "order_no": order.OrderNo},
	})
}

// applyCampaignPrice 查找商品命中的活动报名并计算活动价
// 未命中或报名额度已售完时返回原价
func applyCampaignPrice(tx *gorm.DB, productID uint, variantID *uint, quantity int, price float64) float64 {
	query := tx.Where("product_id = ?", productID).
		Where("status = ?", models.RegistrationStatusApproved)
	if variantID == nil {
		query = query.Where("variant_id IS NULL")
	} else {
		query = query.Where("variant_id = ?", *variantID)
	}

	var regs []models.CampaignProductRegistration
	if err := query.Find(&regs).Error; err != nil {
		log.Printf("查询活动报名失败: %v", err)
		return price
	}

	now := time.Now()
	for _, reg := range regs {
		if reg.PurchasedQuantity+quantity > reg.Quantity {
			// 报名额度不足，该报名不再提供活动价
			continue
		}
		var camp models.Campaign
		if err := tx.First(&camp, reg.CampaignID).Error; err != nil {
			continue
		}
		if camp.EffectiveStatus(now) != models.CampaignStatusActive {
			continue
		}

		// 累加报名的已售数量
		if err := tx.Model(&models.CampaignProductRegistration{}).Where("id = ?", reg.ID).
			UpdateColumn("purchased_quantity", gorm.Expr("purchased_quantity + ?", quantity)).Error; err != nil {
			log.Printf("累加活动已售数量失败: %v", err)
			return price
		}

		if camp.Type == models.CampaignDiscountPercentage {
			discounted := price * (1 - camp.DiscountValue/100)
			if discounted < 0 {
				discounted = 0
			}
			return discounted
		}
		discounted := price - camp.DiscountValue
		if discounted < 0 {
			discounted = 0
		}
		return discounted
	}
	return price
}

// OrderList 查询订单列表
func (oc *OrderController) OrderList(c *gin.Context) {
	// 绑定请求参数
	var queryData struct {
		UserID   int    `json:"user_id"`
		VendorID uint   `json:"vendor_id"`
		Status   string `json:"status"`
		Page     int    `json:"page" binding:"required,min=1"`
		PageSize int    `json:"page_size" binding:"required,min=1,max=50"`
	}

	if err := c.ShouldBindJSON(&queryData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "请求体格式错误"})
		return
	}

	// 构建查询
	query := db.DB.Model(&models.Order{})
	if queryData.UserID > 0 {
		query = query.Where("user_id = ?", queryData.UserID)
	}
	if queryData.VendorID > 0 {
		query = query.Where("vendor_id = ?", queryData.VendorID)
	}

	// 应用状态过滤
	validStatuses := []string{"pending", "processing", "shipped", "delivered", "canceled", "returned"}
	if queryData.Status != "" {
		statusValid := false
		for _, validStatus := range validStatuses {
			if validStatus == queryData.Status {
				statusValid = true
				break
			}
		}
		if !statusValid {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "订单状态无效"})
			return
		}
		query = query.Where("status = ?", queryData.Status)
	}

	// 计算偏移量
	offset := (queryData.Page - 1) * queryData.PageSize

	// 执行分页查询
	var total int64
	if err := query.Count(&total).Error; err != nil {
		log.Printf("获取订单总数失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "查询订单总数失败: " + err.Error()})
		return
	}

	var orders []models.Order
	if err := query.Offset(offset).Limit(queryData.PageSize).Order("order_time DESC").Find(&orders).Error; err != nil {
		log.Printf("查询订单列表失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "查询订单列表失败: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "success",
		"data":      orders,
		"page":      queryData.Page,
		"page_size": queryData.PageSize,
		"total":     total,
	})
}

// OrderDetail 查询订单详情，含行项目和有效展示状态
func (oc *OrderController) OrderDetail(c *gin.Context) {
	var queryData struct {
		OrderID uint `json:"order_id" binding:"required"`
	}

	if err := c.ShouldBindJSON(&queryData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "请求体格式错误"})
		return
	}

	var order models.Order
	if err := db.DB.First(&order, queryData.OrderID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "订单不存在"})
		return
	}

	var items []models.OrderItem
	if err := db.DB.Where("order_id = ?", order.ID).Find(&items).Error; err != nil {
		log.Printf("查询订单行项目失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "查询订单行项目失败: " + err.Error()})
		return
	}

	// 有效展示状态由退换货引擎统一推导
	effectiveStatus, err := returnEngine().GetEffectiveOrderStatus(order.ID)
	if err != nil {
		effectiveStatus = order.Status
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data": gin.H{
			"order":            order,
			"items":            items,
			"effective_status": effectiveStatus,
		},
	})
}

// MarkDelivered 登记订单送达，退换货申请窗口从此刻开始计算
func (oc *OrderController) MarkDelivered(c *gin.Context) {
	var requestData struct {
		OrderID uint `json:"order_id" binding:"required"`
	}

	if err := c.ShouldBindJSON(&requestData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "请求数据无效: " + err.Error()})
		return
	}

	var order models.Order
	if err := db.DB.First(&order, requestData.OrderID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "订单不存在"})
		return
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":       models.OrderStatusDelivered,
		"delivered_at": now,
	}
	if err := db.DB.Model(&order).Updates(updates).Error; err != nil {
		log.Printf("更新订单送达状态失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "更新订单送达状态失败: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "订单已登记送达",
		"data":    gin.H{"order_id": order.ID, "delivered_at": now},
	})
}
