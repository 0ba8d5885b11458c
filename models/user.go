package models

import (
	"time"
)

// 用户角色常量
const (
	RoleBuyer  = "buyer"  // 买家
	RoleSeller = "seller" // 卖家
	RoleAdmin  = "admin"  // 管理员
)

// User 用户模型
type User struct {
	ID           int       `gorm:"column:user_id;primaryKey;autoIncrement" json:"user_id"`
	Username     string    `gorm:"column:username;size:50;not null;uniqueIndex" json:"username"`
	PasswordHash string    `gorm:"column:password_hash;size:100;not null" json:"-"`
	Mobile       string    `gorm:"column:mobile;size:15;index" json:"mobile"`
	Email        string    `gorm:"column:email;size:100" json:"email"`
	Role         string    `gorm:"column:role;size:10;not null;default:'buyer'" json:"role"` // buyer(买家), seller(卖家), admin(管理员)
	VendorID     *uint     `gorm:"column:vendor_id;null" json:"vendor_id"`                   // 卖家用户关联的店铺ID
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// TableName 设置表名
func (User) TableName() string {
	return "user_data"
}
