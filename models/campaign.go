package models

import (
	"time"
)

// 活动状态常量
const (
	CampaignStatusDraft    = "draft"    // 草稿
	CampaignStatusUpcoming = "upcoming" // 未开始
	CampaignStatusActive   = "active"   // 进行中
	CampaignStatusEnded    = "ended"    // 已结束
)

// 活动折扣类型常量
const (
	CampaignDiscountPercentage = "percentage" // 百分比折扣
	CampaignDiscountFixed      = "fixed"      // 固定金额折扣
)

// 活动种类常量
const (
	CampaignTypeRegular   = "regular"    // 常规促销
	CampaignTypeFlashSale = "flash_sale" // 限时抢购
)

// Campaign 促销活动模型
type Campaign struct {
	ID            uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name          string    `gorm:"column:name;size:200;not null" json:"name"`
	Type          string    `gorm:"column:type;size:20;not null" json:"type"` // percentage(百分比), fixed(固定金额)
	DiscountValue float64   `gorm:"column:discount_value;not null" json:"discount_value"`
	StartDate     time.Time `gorm:"column:start_date;type:datetime;not null" json:"start_date"` // 活动开始时间
	EndDate       time.Time `gorm:"column:end_date;type:datetime;not null" json:"end_date"`     // 活动结束时间
	Status        string    `gorm:"column:status;size:20;not null;default:'draft'" json:"status"`
	CampaignType  string    `gorm:"column:campaign_type;size:20;not null;default:'regular'" json:"campaign_type"` // regular(常规), flash_sale(限时抢购)
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// TableName 设置表名
func (Campaign) TableName() string {
	return "campaign_data"
}

// EffectiveStatus 按时间窗口推算展示状态
// 草稿状态由管理员显式发布，不随时间自动变化；其余状态以当前时间为准
func (c *Campaign) EffectiveStatus(now time.Time) string {
	if c.Status == CampaignStatusDraft {
		return CampaignStatusDraft
	}
	if now.Before(c.StartDate) {
		return CampaignStatusUpcoming
	}
	if now.After(c.EndDate) {
		return CampaignStatusEnded
	}
	return CampaignStatusActive
}
