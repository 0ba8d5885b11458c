package returns

import (
	"fmt"
	"time"

	"nextjs_to_go/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ReturnWindowDays 退换货申请窗口：订单送达后3天内
const ReturnWindowDays = 3

// Engine 退换货生命周期引擎
// 所有状态迁移都在数据库事务内完成，并对申请记录加行锁，
// 保证同一条申请上的并发操作串行执行
type Engine struct {
	db *gorm.DB
}

// NewEngine 创建退换货引擎
func NewEngine(gdb *gorm.DB) *Engine {
	return &Engine{db: gdb}
}

// CreateParams 创建退换货申请的参数
type CreateParams struct {
	OrderItemID       uint
	UserID            int
	ReturnType        string
	Reason            string
	Description       string
	Images            []string
	Quantity          int
	ExchangeVariantID *uint
}

// TransitionParams 状态迁移的附加数据
type TransitionParams struct {
	TrackingNumber  string
	TrackingURL     string
	SellerNotes     string
	RejectionReason string
}

// StatusView 状态查询结果
type StatusView struct {
	Request        *models.ReturnRequest `json:"request"`
	Steps          []Step                `json:"steps"`
	AllowedActions []string              `json:"allowed_actions"`
}

// CreateReturn 买家创建退换货申请
// 数量、申请窗口、重复申请的校验即使前端已做过也在此重新校验
func (e *Engine) CreateReturn(p CreateParams) (*models.ReturnRequest, error) {
	if p.Quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	if p.ReturnType != models.ReturnTypeReturn && p.ReturnType != models.ReturnTypeExchange {
		return nil, fmt.Errorf("未知的退换货类型: %s", p.ReturnType)
	}

	var rr models.ReturnRequest
	err := e.db.Transaction(func(tx *gorm.DB) error {
		// 锁住订单行项目，防止并发创建时重复扣减可退数量
		var item models.OrderItem
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&item, p.OrderItemID).Error; err != nil {
			return err
		}

		var order models.Order
		if err := tx.First(&order, item.OrderID).Error; err != nil {
			return err
		}

		// 申请窗口校验：未送达的订单一律不可申请
		if order.DeliveredAt == nil {
			return ErrReturnWindowExpired
		}
		deadline := order.DeliveredAt.AddDate(0, 0, ReturnWindowDays)
		if time.Now().After(deadline) {
			return ErrReturnWindowExpired
		}

		if p.Quantity > item.ReturnableQuantity() {
			return ErrInvalidQuantity
		}

		// 同一行项目同时只允许一条活跃申请
		var activeCount int64
		if err := tx.Model(&models.ReturnRequest{}).
			Where("order_item_id = ?", p.OrderItemID).
			Where("status IN ?", NonTerminalStatuses).
			Count(&activeCount).Error; err != nil {
			return err
		}
		if activeCount > 0 {
			return ErrDuplicateActiveRequest
		}

		rr = models.ReturnRequest{
			OrderID:           order.ID,
			OrderItemID:       item.ID,
			UserID:            p.UserID,
			ProductID:         item.ProductID,
			VariantID:         item.VariantID,
			ReturnType:        p.ReturnType,
			Reason:            p.Reason,
			ExchangeVariantID: p.ExchangeVariantID,
			Description:       p.Description,
			Images:            models.ImageList(p.Images),
			Quantity:          p.Quantity,
			RefundAmount:      item.Price * float64(p.Quantity), // 创建后不可变
			Status:            StatusPending,
		}
		return tx.Create(&rr).Error
	})
	if err != nil {
		return nil, err
	}
	return &rr, nil
}

// Transition 卖家推进退换货状态
// 状态变更、时间戳和订单侧的联动在同一事务内提交，失败则全部回滚
func (e *Engine) Transition(returnID uint, action string, p TransitionParams) (*models.ReturnRequest, error) {
	if _, ok := transitionTable[action]; !ok {
		return nil, fmt.Errorf("未知的操作: %s", action)
	}

	var rr models.ReturnRequest
	err := e.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&rr, returnID).Error; err != nil {
			return err
		}

		if IsTerminal(rr.Status) {
			return ErrTerminalState
		}
		if !canTransition(action, rr.Status) {
			return &InvalidTransitionError{Action: action, From: rr.Status}
		}

		now := time.Now()
		switch action {
		case ActionApprove:
			if rr.ApprovedAt == nil {
				rr.ApprovedAt = &now
			}
			// 退货流程同意后订单状态联动为已退货
			if rr.ReturnType == models.ReturnTypeReturn {
				if err := tx.Model(&models.Order{}).Where("id = ?", rr.OrderID).
					Update("status", models.OrderStatusReturned).Error; err != nil {
					return err
				}
			}

		case ActionReject:
			if p.RejectionReason == "" {
				return ErrRejectReasonRequired
			}
			rr.RejectionReason = p.RejectionReason

		case ActionMarkShipped:
			if p.TrackingNumber == "" {
				return ErrTrackingRequired
			}
			rr.TrackingNumber = p.TrackingNumber
			rr.TrackingURL = p.TrackingURL
			if rr.ShippedAt == nil {
				rr.ShippedAt = &now
			}

		case ActionMarkReceived:
			if rr.ReceivedAt == nil {
				rr.ReceivedAt = &now
			}

		case ActionMarkRestocked:
			if rr.RestockedAt == nil {
				rr.RestockedAt = &now
			}

		case ActionConfirmRefund:
			if rr.ReturnType != models.ReturnTypeReturn {
				return &InvalidTransitionError{Action: action, From: rr.Status}
			}
			if rr.RefundConfirmedAt != nil {
				return &InvalidTransitionError{Action: action, From: rr.Status}
			}
			refunded, err := e.orderRefunded(tx, &rr)
			if err != nil {
				return err
			}
			if refunded {
				return &InvalidTransitionError{Action: action, From: rr.Status}
			}
			rr.RefundConfirmedAt = &now
			// 订单支付状态联动为已退款
			if err := tx.Model(&models.Order{}).Where("id = ?", rr.OrderID).
				Update("payment_status", models.PaymentStatusRefunded).Error; err != nil {
				return err
			}

		case ActionMarkCompleted:
			refundDone := rr.RefundConfirmedAt != nil
			if rr.ReturnType == models.ReturnTypeReturn && !refundDone {
				refunded, err := e.orderRefunded(tx, &rr)
				if err != nil {
					return err
				}
				refundDone = refunded
			}
			if !completionAllowed(&rr, refundDone) {
				return &InvalidTransitionError{Action: action, From: rr.Status}
			}
			rr.CompletedAt = &now
			if err := e.consumeReturnableQuantity(tx, &rr); err != nil {
				return err
			}
		}

		if p.SellerNotes != "" {
			rr.SellerNotes = p.SellerNotes
		}

		rr.Status = transitionTable[action].To
		return tx.Save(&rr).Error
	})
	if err != nil {
		return nil, err
	}
	return &rr, nil
}

// ConfirmExchangeReceived 买家确认收到换货，换货流程从已发货直接完结
func (e *Engine) ConfirmExchangeReceived(returnID uint, userID int) (*models.ReturnRequest, error) {
	var rr models.ReturnRequest
	err := e.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&rr, returnID).Error; err != nil {
			return err
		}

		if IsTerminal(rr.Status) {
			return ErrTerminalState
		}
		if rr.UserID != userID {
			return ErrNotRequester
		}
		if rr.ReturnType != models.ReturnTypeExchange || rr.Status != StatusShipped {
			return &InvalidTransitionError{Action: ActionConfirmExchange, From: rr.Status}
		}

		now := time.Now()
		rr.Status = StatusCompleted
		rr.CompletedAt = &now
		if err := e.consumeReturnableQuantity(tx, &rr); err != nil {
			return err
		}
		return tx.Save(&rr).Error
	})
	if err != nil {
		return nil, err
	}
	return &rr, nil
}

// CancelReturn 买家撤销申请，仅在待处理状态允许
func (e *Engine) CancelReturn(returnID uint, userID int) (*models.ReturnRequest, error) {
	var rr models.ReturnRequest
	err := e.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&rr, returnID).Error; err != nil {
			return err
		}

		if IsTerminal(rr.Status) {
			return ErrTerminalState
		}
		if rr.UserID != userID {
			return ErrNotRequester
		}
		if rr.Status != StatusPending {
			return &InvalidTransitionError{Action: ActionCancel, From: rr.Status}
		}

		rr.Status = StatusCancelled
		return tx.Save(&rr).Error
	})
	if err != nil {
		return nil, err
	}
	return &rr, nil
}

// GetReturnStatus 查询退换货申请的进度视图
func (e *Engine) GetReturnStatus(returnID uint) (*StatusView, error) {
	var rr models.ReturnRequest
	if err := e.db.First(&rr, returnID).Error; err != nil {
		return nil, err
	}

	orderRefunded := false
	var order models.Order
	if err := e.db.First(&order, rr.OrderID).Error; err == nil {
		orderRefunded = order.PaymentStatus == models.PaymentStatusRefunded
	}

	return &StatusView{
		Request:        &rr,
		Steps:          ComputeSteps(rr.ReturnType, rr.Status),
		AllowedActions: AllowedActions(&rr, orderRefunded),
	}, nil
}

// HasActiveRequest 行项目是否存在活跃的退换货申请，供创建界面提前拦截
func (e *Engine) HasActiveRequest(orderItemID uint) (bool, error) {
	var count int64
	err := e.db.Model(&models.ReturnRequest{}).
		Where("order_item_id = ?", orderItemID).
		Where("status IN ?", NonTerminalStatuses).
		Count(&count).Error
	return count > 0, err
}

// GetEffectiveOrderStatus 计算订单的有效展示状态
// 存在活跃退换货申请时覆盖订单自身状态，服务端与前端共用这一处推导
func (e *Engine) GetEffectiveOrderStatus(orderID uint) (string, error) {
	var order models.Order
	if err := e.db.First(&order, orderID).Error; err != nil {
		return "", err
	}

	var active []models.ReturnRequest
	if err := e.db.Where("order_id = ?", orderID).
		Where("status IN ?", NonTerminalStatuses).
		Find(&active).Error; err != nil {
		return "", err
	}

	for _, rr := range active {
		if rr.ReturnType == models.ReturnTypeReturn {
			return "returning", nil
		}
	}
	if len(active) > 0 {
		return "exchanging", nil
	}
	return order.Status, nil
}

// ListReturns 卖家侧退换货申请列表
func (e *Engine) ListReturns(vendorID uint, status string, page, pageSize int) ([]models.ReturnRequest, int64, error) {
	query := e.db.Model(&models.ReturnRequest{})
	if vendorID > 0 {
		orderIDs := e.db.Model(&models.Order{}).Select("id").Where("vendor_id = ?", vendorID)
		query = query.Where("order_id IN (?)", orderIDs)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var requests []models.ReturnRequest
	offset := (page - 1) * pageSize
	if err := query.Offset(offset).Limit(pageSize).Order("requested_at DESC").Find(&requests).Error; err != nil {
		return nil, 0, err
	}
	return requests, total, nil
}

// orderRefunded 查询关联订单是否已退款
func (e *Engine) orderRefunded(tx *gorm.DB, rr *models.ReturnRequest) (bool, error) {
	var order models.Order
	if err := tx.First(&order, rr.OrderID).Error; err != nil {
		return false, err
	}
	return order.PaymentStatus == models.PaymentStatusRefunded, nil
}

// consumeReturnableQuantity 完结时扣减行项目的可退数量
func (e *Engine) consumeReturnableQuantity(tx *gorm.DB, rr *models.ReturnRequest) error {
	return tx.Model(&models.OrderItem{}).Where("id = ?", rr.OrderItemID).
		UpdateColumn("returned_quantity", gorm.Expr("returned_quantity + ?", rr.Quantity)).Error
}
