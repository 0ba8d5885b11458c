package models

import (
	"time"
)

// AccessToken 接口调用令牌模型，供前端应用接入校验
type AccessToken struct {
	ID          uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	AccessToken string    `gorm:"column:access_token;size:64;not null;uniqueIndex" json:"access_token"`
	IPAddress   string    `gorm:"column:ip_address;size:45" json:"ip_address"`
	Description string    `gorm:"column:description;size:255" json:"description"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

// TableName 设置表名
func (AccessToken) TableName() string {
	return "access_token_data"
}
