package campaign

import (
	"errors"
	"fmt"
)

// 错误类型标识，供调用方映射为用户提示
const (
	KindInvalidQuantity        = "InvalidQuantity"
	KindCampaignNotRegistrable = "CampaignNotRegistrable"
	KindAlreadyRegistered      = "AlreadyRegistered"
	KindCampaignConflict       = "CampaignConflict"
	KindInsufficientStock      = "InsufficientStock"
	KindAlreadyReviewed        = "AlreadyReviewed"
)

// 校验失败的哨兵错误
var (
	ErrInvalidQuantity        = errors.New("报名数量必须为正整数")
	ErrCampaignNotRegistrable = errors.New("活动当前状态不接受商品报名")
	ErrAlreadyRegistered      = errors.New("该商品已报名此活动")
	ErrAlreadyReviewed        = errors.New("该报名已审核过，不能重复审核")
	ErrRejectReasonRequired   = errors.New("驳回报名必须填写驳回原因")
)

// ConflictError 与其他活动的时间窗口冲突
type ConflictError struct {
	CampaignID   uint
	CampaignName string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("该商品已报名时间重叠的活动「%s」(ID=%d)", e.CampaignName, e.CampaignID)
}

// InsufficientStockError 报名数量超出可用库存
type InsufficientStockError struct {
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("可用库存不足，当前可报名数量为 %d", e.Available)
}

// ErrorKind 将错误归类为错误类型标识，未识别的错误返回空字符串
func ErrorKind(err error) string {
	var conflictErr *ConflictError
	var stockErr *InsufficientStockError
	switch {
	case errors.Is(err, ErrInvalidQuantity):
		return KindInvalidQuantity
	case errors.Is(err, ErrCampaignNotRegistrable):
		return KindCampaignNotRegistrable
	case errors.Is(err, ErrAlreadyRegistered):
		return KindAlreadyRegistered
	case errors.Is(err, ErrAlreadyReviewed):
		return KindAlreadyReviewed
	case errors.As(err, &conflictErr):
		return KindCampaignConflict
	case errors.As(err, &stockErr):
		return KindInsufficientStock
	default:
		return ""
	}
}
