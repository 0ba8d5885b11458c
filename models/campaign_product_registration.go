package models

import (
	"time"
)

// 活动商品报名状态常量
const (
	RegistrationStatusPending  = "pending"  // 待审核
	RegistrationStatusApproved = "approved" // 已通过
	RegistrationStatusRejected = "rejected" // 已驳回
)

// RegistrationActiveStatuses 占用库存的报名状态（待审核和已通过都计入占用）
var RegistrationActiveStatuses = []string{RegistrationStatusPending, RegistrationStatusApproved}

// CampaignProductRegistration 活动商品报名模型
// 卖家将商品（或规格）按数量报入活动，待管理员审核
type CampaignProductRegistration struct {
	ID                uint       `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	CampaignID        uint       `gorm:"column:campaign_id;not null;index" json:"campaign_id"`
	VendorID          uint       `gorm:"column:vendor_id;not null;index" json:"vendor_id"`
	ProductID         uint       `gorm:"column:product_id;not null;index" json:"product_id"`
	VariantID         *uint      `gorm:"column:variant_id;null" json:"variant_id"` // NULL表示整个商品不分规格
	Quantity          int        `gorm:"column:quantity;not null" json:"quantity"` // 报名占用的件数
	PurchasedQuantity int        `gorm:"column:purchased_quantity;not null;default:0" json:"purchased_quantity"` // 已售件数，由订单子系统累加，此处只读
	Status            string     `gorm:"column:status;size:20;not null;default:'pending'" json:"status"`
	RejectionReason   string     `gorm:"column:rejection_reason;type:text" json:"rejection_reason"`
	ReviewerID        *int       `gorm:"column:reviewer_id;null" json:"reviewer_id"`
	RegisteredAt      time.Time  `gorm:"column:registered_at;autoCreateTime" json:"registered_at"`
	ApprovedAt        *time.Time `gorm:"column:approved_at;null" json:"approved_at"`
}

// TableName 设置表名
func (CampaignProductRegistration) TableName() string {
	return "campaign_product_registration_data"
}

// IsDecided 报名是否已被审核过
func (r *CampaignProductRegistration) IsDecided() bool {
	return r.Status != RegistrationStatusPending
}
