package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// 退换货类型常量
const (
	ReturnTypeReturn   = "return"   // 退货退款
	ReturnTypeExchange = "exchange" // 换货
)

// 退换货原因常量
const (
	ReturnReasonDefective      = "defective"        // 商品有瑕疵
	ReturnReasonWrongItem      = "wrong_item"       // 发错商品
	ReturnReasonNotAsDescribed = "not_as_described" // 与描述不符
	ReturnReasonChangedMind    = "changed_mind"     // 买家不想要了
	ReturnReasonDamaged        = "damaged"          // 运输途中损坏
	ReturnReasonMissingItems   = "missing_items"    // 缺件少件
	ReturnReasonSizeIssue      = "size_issue"       // 尺码问题
	ReturnReasonOther          = "other"            // 其他原因
)

// ReturnReasons 所有合法的退换货原因
var ReturnReasons = []string{
	ReturnReasonDefective,
	ReturnReasonWrongItem,
	ReturnReasonNotAsDescribed,
	ReturnReasonChangedMind,
	ReturnReasonDamaged,
	ReturnReasonMissingItems,
	ReturnReasonSizeIssue,
	ReturnReasonOther,
}

// ImageList 凭证图片URL列表，JSON数组格式存储
type ImageList []string

// Scan 实现sql.Scanner接口，用于从数据库读取JSON数据
func (l *ImageList) Scan(value interface{}) error {
	if value == nil {
		*l = ImageList{}
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("类型断言失败：无法将数据库值转换为[]byte")
	}

	var result ImageList
	if err := json.Unmarshal(bytes, &result); err != nil {
		return err
	}

	*l = result
	return nil
}

// Value 实现driver.Valuer接口，用于将数据序列化为JSON存储到数据库
func (l ImageList) Value() (driver.Value, error) {
	if len(l) == 0 {
		// 空列表存储为空JSON数组
		return "[]", nil
	}

	bytes, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}

	return string(bytes), nil
}

// ReturnRequest 退换货申请模型
// 由买家发起，卖家推进状态，终态后不再变更，永不删除
type ReturnRequest struct {
	ID                uint       `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	OrderID           uint       `gorm:"column:order_id;not null;index" json:"order_id"`
	OrderItemID       uint       `gorm:"column:order_item_id;not null;index" json:"order_item_id"`
	UserID            int        `gorm:"column:user_id;not null;index" json:"user_id"` // 申请买家
	ProductID         uint       `gorm:"column:product_id;not null" json:"product_id"`
	VariantID         *uint      `gorm:"column:variant_id;null" json:"variant_id"`
	ReturnType        string     `gorm:"column:return_type;size:20;not null" json:"return_type"` // return(退货), exchange(换货)
	Reason            string     `gorm:"column:reason;size:30;not null" json:"reason"`
	ExchangeVariantID *uint      `gorm:"column:exchange_variant_id;null" json:"exchange_variant_id"` // 换货目标规格，仅换货时使用
	Description       string     `gorm:"column:description;type:text" json:"description"`
	Images            ImageList  `gorm:"column:images;type:json" json:"images"`
	Quantity          int        `gorm:"column:quantity;not null" json:"quantity"`
	RefundAmount      float64    `gorm:"column:refund_amount;not null" json:"refund_amount"` // 创建时按单价×数量计算，之后不可变
	Status            string     `gorm:"column:status;size:20;not null;default:'pending'" json:"status"`
	SellerNotes       string     `gorm:"column:seller_notes;type:text" json:"seller_notes"`
	RejectionReason   string     `gorm:"column:rejection_reason;type:text" json:"rejection_reason"`
	TrackingNumber    string     `gorm:"column:tracking_number;size:50" json:"tracking_number"`
	TrackingURL       string     `gorm:"column:tracking_url;size:255" json:"tracking_url"`
	RequestedAt       time.Time  `gorm:"column:requested_at;autoCreateTime" json:"requested_at"`
	ApprovedAt        *time.Time `gorm:"column:approved_at;null" json:"approved_at"`
	RefundConfirmedAt *time.Time `gorm:"column:refund_confirmed_at;null" json:"refund_confirmed_at"`
	ShippedAt         *time.Time `gorm:"column:shipped_at;null" json:"shipped_at"`
	ReceivedAt        *time.Time `gorm:"column:received_at;null" json:"received_at"`
	RestockedAt       *time.Time `gorm:"column:restocked_at;null" json:"restocked_at"`
	CompletedAt       *time.Time `gorm:"column:completed_at;null" json:"completed_at"`
}

// TableName 设置表名
func (ReturnRequest) TableName() string {
	return "return_request_data"
}
