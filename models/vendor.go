package models

import (
	"time"
)

// Vendor 卖家店铺模型
type Vendor struct {
	ID              uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	UserID          int       `gorm:"column:user_id;not null;index" json:"user_id"` // 店主用户ID
	ShopName        string    `gorm:"column:shop_name;size:100;not null" json:"shop_name"`
	ShopDescription string    `gorm:"column:shop_description;type:text" json:"shop_description"`
	ContactPhone    string    `gorm:"column:contact_phone;size:15" json:"contact_phone"`
	Status          string    `gorm:"column:status;size:20;not null;default:'active'" json:"status"` // active(正常), suspended(封禁)
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// TableName 设置表名
func (Vendor) TableName() string {
	return "vendor_data"
}
