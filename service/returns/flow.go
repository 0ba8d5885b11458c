package returns

import (
	"nextjs_to_go/models"
)

// 退换货状态常量
const (
	StatusPending         = "pending"          // 待卖家处理
	StatusApproved        = "approved"         // 卖家已同意
	StatusRefundConfirmed = "refund_confirmed" // 已确认退款
	StatusShipped         = "shipped"          // 买家已寄回/换货已发出
	StatusReceived        = "received"         // 卖家已签收
	StatusRestocked       = "restocked"        // 已重新入库
	StatusCompleted       = "completed"        // 已完成
	StatusRejected        = "rejected"         // 已驳回
	StatusCancelled       = "cancelled"        // 买家已撤销
)

// 卖家/买家可执行的动作常量
const (
	ActionApprove         = "approve"          // 同意申请
	ActionReject          = "reject"           // 驳回申请
	ActionMarkShipped     = "mark_shipped"     // 登记寄回物流
	ActionMarkReceived    = "mark_received"    // 签收
	ActionMarkRestocked   = "mark_restocked"   // 重新入库
	ActionConfirmRefund   = "confirm_refund"   // 确认退款
	ActionMarkCompleted   = "mark_completed"   // 完结
	ActionConfirmExchange = "confirm_exchange" // 买家确认收到换货
	ActionCancel          = "cancel"           // 买家撤销申请
)

// SellerActions 卖家侧允许提交的动作
var SellerActions = []string{
	ActionApprove,
	ActionReject,
	ActionMarkShipped,
	ActionMarkReceived,
	ActionMarkRestocked,
	ActionConfirmRefund,
	ActionMarkCompleted,
}

// transitionRule 单条状态迁移规则
type transitionRule struct {
	From []string // 允许发起的当前状态
	To   string   // 迁移后的状态
}

// transitionTable 显式状态迁移表
// 执行迁移和渲染进度的代码共用这一张表，保证两边不会各写一份走样
var transitionTable = map[string]transitionRule{
	ActionApprove:       {From: []string{StatusPending}, To: StatusApproved},
	ActionReject:        {From: []string{StatusPending}, To: StatusRejected},
	ActionCancel:        {From: []string{StatusPending}, To: StatusCancelled},
	ActionMarkShipped:   {From: []string{StatusApproved, StatusRefundConfirmed}, To: StatusShipped},
	ActionMarkReceived:  {From: []string{StatusShipped}, To: StatusReceived},
	ActionMarkRestocked: {From: []string{StatusReceived}, To: StatusRestocked},
	// 确认退款与物流子链解耦，同意之后、完结之前的任意节点都可以确认
	ActionConfirmRefund: {From: []string{StatusApproved, StatusShipped, StatusReceived, StatusRestocked}, To: StatusRefundConfirmed},
	// 完结要求已入库；退货流程还要求退款已确认，该守卫在引擎中校验
	ActionMarkCompleted:   {From: []string{StatusRestocked, StatusRefundConfirmed}, To: StatusCompleted},
	ActionConfirmExchange: {From: []string{StatusShipped}, To: StatusCompleted},
}

// refundFlowSteps 退货流程的完整步骤序列
var refundFlowSteps = []string{
	StatusPending,
	StatusApproved,
	StatusRefundConfirmed,
	StatusShipped,
	StatusReceived,
	StatusRestocked,
	StatusCompleted,
}

// exchangeFlowSteps 换货流程不含退款确认步骤
var exchangeFlowSteps = []string{
	StatusPending,
	StatusApproved,
	StatusShipped,
	StatusReceived,
	StatusRestocked,
	StatusCompleted,
}

// legacyStatusMap 历史数据状态兼容表
// 旧系统遗留的状态映射到当前流程中最接近的步骤
var legacyStatusMap = map[string]string{
	"in_transit": StatusShipped,
	"processing": StatusApproved,
	"refunded":   StatusRefundConfirmed,
	"canceled":   StatusCancelled,
}

// terminalStatuses 终态集合，进入后记录不再变更
var terminalStatuses = map[string]bool{
	StatusRejected:  true,
	StatusCancelled: true,
	StatusCompleted: true,
}

// IsTerminal 判断状态是否为终态
func IsTerminal(status string) bool {
	return terminalStatuses[status]
}

// NonTerminalStatuses 活跃（非终态）状态集合，用于"同一行项目仅一条活跃申请"的查询
var NonTerminalStatuses = []string{
	StatusPending,
	StatusApproved,
	StatusRefundConfirmed,
	StatusShipped,
	StatusReceived,
	StatusRestocked,
}

// FlowSteps 按退换货类型返回流程步骤序列
func FlowSteps(returnType string) []string {
	if returnType == models.ReturnTypeExchange {
		return exchangeFlowSteps
	}
	return refundFlowSteps
}

// NormalizeStatus 将任意状态归一到指定流程内的步骤
// 未知状态一律按pending处理，绝不向前跳步
func NormalizeStatus(returnType, status string) string {
	if mapped, ok := legacyStatusMap[status]; ok {
		status = mapped
	}
	for _, step := range FlowSteps(returnType) {
		if step == status {
			return status
		}
	}
	return StatusPending
}

// Step 进度展示用的单个步骤
type Step struct {
	Name      string `json:"name"`
	Completed bool   `json:"completed"`
	Current   bool   `json:"current"`
}

// ComputeSteps 计算进度条步骤列表
// 当前步骤及之前的步骤标记为已完成
func ComputeSteps(returnType, status string) []Step {
	flow := FlowSteps(returnType)
	normalized := NormalizeStatus(returnType, status)

	currentIndex := 0
	for i, step := range flow {
		if step == normalized {
			currentIndex = i
			break
		}
	}

	steps := make([]Step, 0, len(flow))
	for i, name := range flow {
		steps = append(steps, Step{
			Name:      name,
			Completed: i <= currentIndex,
			Current:   i == currentIndex,
		})
	}
	return steps
}

// canTransition 检查动作在当前状态下是否允许发起
func canTransition(action, status string) bool {
	rule, ok := transitionTable[action]
	if !ok {
		return false
	}
	for _, from := range rule.From {
		if from == status {
			return true
		}
	}
	return false
}

// AllowedActions 返回当前记录下卖家可执行的动作列表，供界面渲染操作按钮
func AllowedActions(rr *models.ReturnRequest, orderRefunded bool) []string {
	if IsTerminal(rr.Status) {
		return nil
	}

	refundDone := rr.RefundConfirmedAt != nil || orderRefunded
	actions := make([]string, 0, 3)
	for _, action := range SellerActions {
		if !canTransition(action, rr.Status) {
			continue
		}
		switch action {
		case ActionConfirmRefund:
			// 只有退货流程且尚未退款时才提供该操作
			if rr.ReturnType != models.ReturnTypeReturn || refundDone {
				continue
			}
		case ActionMarkCompleted:
			if !completionAllowed(rr, refundDone) {
				continue
			}
		}
		actions = append(actions, action)
	}
	return actions
}

// completionAllowed 完结守卫
// 已入库即可完结；退货流程额外要求退款已确认。
// 在入库之后才确认退款的记录停留在refund_confirmed，此时凭入库时间放行。
func completionAllowed(rr *models.ReturnRequest, refundDone bool) bool {
	switch rr.Status {
	case StatusRestocked:
		return rr.ReturnType == models.ReturnTypeExchange || refundDone
	case StatusRefundConfirmed:
		return rr.RestockedAt != nil
	default:
		return false
	}
}
