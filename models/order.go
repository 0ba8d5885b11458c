package models

import (
	"time"
)

// 订单状态常量
const (
	OrderStatusPending    = "pending"    // 待付款
	OrderStatusProcessing = "processing" // 处理中
	OrderStatusShipped    = "shipped"    // 已发货
	OrderStatusDelivered  = "delivered"  // 已送达
	OrderStatusCanceled   = "canceled"   // 已取消
	OrderStatusReturned   = "returned"   // 已退货
)

// 订单支付状态常量
const (
	PaymentStatusUnpaid   = "unpaid"   // 未支付
	PaymentStatusPaid     = "paid"     // 已支付
	PaymentStatusRefunded = "refunded" // 已退款
)

// Order 订单模型
type Order struct {
	ID            uint       `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	OrderNo       string     `gorm:"column:order_no;size:30;not null;uniqueIndex" json:"order_no"` // 订单号
	UserID        int        `gorm:"column:user_id;not null;index" json:"user_id"`
	VendorID      uint       `gorm:"column:vendor_id;not null;index" json:"vendor_id"`
	Status        string     `gorm:"column:status;size:20;not null;default:'pending'" json:"status"`
	PaymentStatus string     `gorm:"column:payment_status;size:20;not null;default:'unpaid'" json:"payment_status"`
	PaymentMethod string     `gorm:"column:payment_method;size:30" json:"payment_method"` // 支付方式：cod(货到付款), bank_transfer(转账), e_wallet(电子钱包)
	TotalAmount   float64    `gorm:"column:total_amount;not null" json:"total_amount"`
	DeliveredAt   *time.Time `gorm:"column:delivered_at;null" json:"delivered_at"` // 送达时间，退换货窗口从此计算
	OrderTime     time.Time  `gorm:"column:order_time;autoCreateTime" json:"order_time"`
	UpdatedAt     time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// TableName 设置表名
func (Order) TableName() string {
	return "order_data"
}

// OrderItem 订单行项目模型
type OrderItem struct {
	ID               uint    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	OrderID          uint    `gorm:"column:order_id;not null;index" json:"order_id"`
	ProductID        uint    `gorm:"column:product_id;not null" json:"product_id"`
	VariantID        *uint   `gorm:"column:variant_id;null" json:"variant_id"`
	ProductName      string  `gorm:"column:product_name;size:200;not null" json:"product_name"` // 下单时商品名称快照
	Quantity         int     `gorm:"column:quantity;not null" json:"quantity"`
	Price            float64 `gorm:"column:price;not null" json:"price"` // 下单时单价快照
	ReturnedQuantity int     `gorm:"column:returned_quantity;not null;default:0" json:"returned_quantity"`
}

// TableName 设置表名
func (OrderItem) TableName() string {
	return "order_item_data"
}

// ReturnableQuantity 行项目剩余可退数量
func (oi *OrderItem) ReturnableQuantity() int {
	return oi.Quantity - oi.ReturnedQuantity
}
