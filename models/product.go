package models

import (
	"time"
)

// Product 商品模型
type Product struct {
	ID          uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	VendorID    uint      `gorm:"column:vendor_id;not null;index" json:"vendor_id"`
	Name        string    `gorm:"column:name;size:200;not null" json:"name"`
	Description string    `gorm:"column:description;type:text" json:"description"`
	Price       float64   `gorm:"column:price;not null" json:"price"`
	Stock       int       `gorm:"column:stock;not null;default:0" json:"stock"` // 无规格商品的库存
	ImageURL    string    `gorm:"column:image_url;size:255" json:"image_url"`
	Status      string    `gorm:"column:status;size:20;not null;default:'on_sale'" json:"status"` // on_sale(在售), off_sale(下架)
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// TableName 设置表名
func (Product) TableName() string {
	return "product_data"
}

// ProductVariant 商品规格模型，例如颜色/尺码组合
type ProductVariant struct {
	ID        uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	ProductID uint      `gorm:"column:product_id;not null;index" json:"product_id"`
	Name      string    `gorm:"column:name;size:100;not null" json:"name"` // 规格名称，如 "红色/L"
	SKU       string    `gorm:"column:sku;size:50;uniqueIndex" json:"sku"`
	Price     float64   `gorm:"column:price;not null" json:"price"`
	Stock     int       `gorm:"column:stock;not null;default:0" json:"stock"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// TableName 设置表名
func (ProductVariant) TableName() string {
	return "product_variant_data"
}

// VariantKey 规格ID的统一取值，NULL规格一律按0处理
// 所有需要比较规格的地方都经过此函数，避免NULL处理出现分叉
func VariantKey(variantID *uint) uint {
	if variantID == nil {
		return 0
	}
	return *variantID
}

// SameVariant 判断两个规格ID是否指向同一规格（都为NULL视为相同）
func SameVariant(a, b *uint) bool {
	return VariantKey(a) == VariantKey(b)
}
