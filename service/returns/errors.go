package returns

import (
	"errors"
	"fmt"
)

// 错误类型标识，供调用方映射为用户提示
const (
	KindInvalidQuantity        = "InvalidQuantity"
	KindInvalidTransition      = "InvalidTransition"
	KindTerminalStateViolation = "TerminalStateViolation"
	KindDuplicateActiveRequest = "DuplicateActiveRequest"
	KindReturnWindowExpired    = "ReturnWindowExpired"
)

// 校验失败的哨兵错误
var (
	ErrInvalidQuantity        = errors.New("申请数量无效")
	ErrDuplicateActiveRequest = errors.New("该订单商品已存在未完结的退换货申请")
	ErrReturnWindowExpired    = errors.New("已超出退换货申请期限")
	ErrTerminalState          = errors.New("退换货申请已进入终态，不能再操作")
	ErrTrackingRequired       = errors.New("发货操作必须填写物流单号")
	ErrRejectReasonRequired   = errors.New("驳回申请必须填写驳回原因")
	ErrNotRequester           = errors.New("只有申请人本人可以执行此操作")
)

// InvalidTransitionError 当前状态不允许执行请求的动作
type InvalidTransitionError struct {
	Action string
	From   string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("当前状态 %s 不允许执行 %s 操作", e.From, e.Action)
}

// ErrorKind 将错误归类为错误类型标识，未识别的错误返回空字符串
func ErrorKind(err error) string {
	var transitionErr *InvalidTransitionError
	switch {
	case errors.Is(err, ErrInvalidQuantity):
		return KindInvalidQuantity
	case errors.Is(err, ErrDuplicateActiveRequest):
		return KindDuplicateActiveRequest
	case errors.Is(err, ErrReturnWindowExpired):
		return KindReturnWindowExpired
	case errors.Is(err, ErrTerminalState):
		return KindTerminalStateViolation
	case errors.Is(err, ErrTrackingRequired), errors.Is(err, ErrRejectReasonRequired):
		return KindInvalidTransition
	case errors.As(err, &transitionErr):
		return KindInvalidTransition
	default:
		return ""
	}
}
