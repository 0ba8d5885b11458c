package returns

import (
	"fmt"
	"testing"
	"time"

	"nextjs_to_go/models"
)

// TestIsTerminal 终态判断
func TestIsTerminal(t *testing.T) {
	terminals := []string{StatusRejected, StatusCancelled, StatusCompleted}
	for _, status := range terminals {
		if !IsTerminal(status) {
			t.Errorf("%s 应当是终态", status)
		}
	}

	actives := []string{StatusPending, StatusApproved, StatusRefundConfirmed, StatusShipped, StatusReceived, StatusRestocked}
	for _, status := range actives {
		if IsTerminal(status) {
			t.Errorf("%s 不应当是终态", status)
		}
	}
}

// TestCanTransition 状态迁移表
func TestCanTransition(t *testing.T) {
	cases := []struct {
		action string
		from   string
		want   bool
	}{
		{ActionApprove, StatusPending, true},
		{ActionApprove, StatusApproved, false},
		{ActionReject, StatusPending, true},
		{ActionReject, StatusShipped, false},
		{ActionCancel, StatusPending, true},
		{ActionCancel, StatusApproved, false},
		{ActionMarkShipped, StatusApproved, true},
		{ActionMarkShipped, StatusRefundConfirmed, true},
		{ActionMarkShipped, StatusPending, false},
		{ActionMarkReceived, StatusShipped, true},
		{ActionMarkReceived, StatusApproved, false},
		{ActionMarkRestocked, StatusReceived, true},
		{ActionMarkRestocked, StatusShipped, false},
		{ActionConfirmRefund, StatusApproved, true},
		{ActionConfirmRefund, StatusShipped, true},
		{ActionConfirmRefund, StatusReceived, true},
		{ActionConfirmRefund, StatusRestocked, true},
		{ActionConfirmRefund, StatusPending, false},
		{ActionMarkCompleted, StatusRestocked, true},
		{ActionMarkCompleted, StatusRefundConfirmed, true},
		{ActionMarkCompleted, StatusReceived, false},
		{ActionConfirmExchange, StatusShipped, true},
		{ActionConfirmExchange, StatusRestocked, false},
		{"unknown_action", StatusPending, false},
	}

	for _, tc := range cases {
		got := canTransition(tc.action, tc.from)
		if got != tc.want {
			t.Errorf("canTransition(%s, %s) = %v, 期望 %v", tc.action, tc.from, got, tc.want)
		}
	}
}

// TestNormalizeStatus 历史状态兼容与未知状态兜底
func TestNormalizeStatus(t *testing.T) {
	cases := []struct {
		returnType string
		status     string
		want       string
	}{
		// 历史状态映射
		{models.ReturnTypeReturn, "in_transit", StatusShipped},
		{models.ReturnTypeReturn, "processing", StatusApproved},
		{models.ReturnTypeReturn, "refunded", StatusRefundConfirmed},
		// 流程内状态原样返回
		{models.ReturnTypeReturn, StatusRestocked, StatusRestocked},
		{models.ReturnTypeExchange, StatusShipped, StatusShipped},
		// 未知状态一律回到pending
		{models.ReturnTypeReturn, "garbage", StatusPending},
		{models.ReturnTypeReturn, "", StatusPending},
		// 换货流程没有退款确认步骤，映射不进流程时同样回到pending
		{models.ReturnTypeExchange, "refunded", StatusPending},
	}

	for _, tc := range cases {
		got := NormalizeStatus(tc.returnType, tc.status)
		if got != tc.want {
			t.Errorf("NormalizeStatus(%s, %s) = %s, 期望 %s", tc.returnType, tc.status, got, tc.want)
		}
	}
}

// TestFlowSteps 两种流程的步骤序列
func TestFlowSteps(t *testing.T) {
	refund := FlowSteps(models.ReturnTypeReturn)
	if len(refund) != 7 {
		t.Fatalf("退货流程应有7个步骤，实际 %d", len(refund))
	}
	if refund[2] != StatusRefundConfirmed {
		t.Errorf("退货流程第3步应为 %s，实际 %s", StatusRefundConfirmed, refund[2])
	}

	exchange := FlowSteps(models.ReturnTypeExchange)
	if len(exchange) != 6 {
		t.Fatalf("换货流程应有6个步骤，实际 %d", len(exchange))
	}
	for _, step := range exchange {
		if step == StatusRefundConfirmed {
			t.Errorf("换货流程不应包含 %s 步骤", StatusRefundConfirmed)
		}
	}
}

// TestComputeSteps 进度条计算
func TestComputeSteps(t *testing.T) {
	// 待处理状态只有第一步完成
	steps := ComputeSteps(models.ReturnTypeReturn, StatusPending)
	if !steps[0].Current || !steps[0].Completed {
		t.Errorf("pending 状态第一步应为当前且已完成")
	}
	for i := 1; i < len(steps); i++ {
		if steps[i].Completed || steps[i].Current {
			t.Errorf("pending 状态第 %d 步不应完成", i+1)
		}
	}

	// 历史状态in_transit落在shipped步骤
	steps = ComputeSteps(models.ReturnTypeReturn, "in_transit")
	fmt.Printf("in_transit 进度: %+v\n", steps)
	currentIdx := -1
	for i, step := range steps {
		if step.Current {
			currentIdx = i
		}
	}
	if currentIdx < 0 || steps[currentIdx].Name != StatusShipped {
		t.Errorf("in_transit 应落在 %s 步骤", StatusShipped)
	}
	// 当前步骤之前的都已完成
	for i := 0; i <= currentIdx; i++ {
		if !steps[i].Completed {
			t.Errorf("第 %d 步应标记为已完成", i+1)
		}
	}

	// 未知状态兜底到第一步，绝不向前跳
	steps = ComputeSteps(models.ReturnTypeReturn, "no_such_status")
	if !steps[0].Current {
		t.Errorf("未知状态应落回第一步")
	}
}

// TestAllowedActions 卖家可执行动作的推导
func TestAllowedActions(t *testing.T) {
	now := time.Now()

	// 终态没有任何动作
	done := &models.ReturnRequest{Status: StatusCompleted, ReturnType: models.ReturnTypeReturn}
	if actions := AllowedActions(done, false); len(actions) != 0 {
		t.Errorf("终态不应有可执行动作，实际 %v", actions)
	}

	// 待处理：同意、驳回
	pending := &models.ReturnRequest{Status: StatusPending, ReturnType: models.ReturnTypeReturn}
	assertActions(t, AllowedActions(pending, false), []string{ActionApprove, ActionReject})

	// 已同意的退货：登记物流、确认退款
	approved := &models.ReturnRequest{Status: StatusApproved, ReturnType: models.ReturnTypeReturn}
	assertActions(t, AllowedActions(approved, false), []string{ActionMarkShipped, ActionConfirmRefund})

	// 已同意的换货：只有登记物流
	approvedExchange := &models.ReturnRequest{Status: StatusApproved, ReturnType: models.ReturnTypeExchange}
	assertActions(t, AllowedActions(approvedExchange, false), []string{ActionMarkShipped})

	// 已退款后不再提供确认退款
	approvedRefunded := &models.ReturnRequest{Status: StatusApproved, ReturnType: models.ReturnTypeReturn, RefundConfirmedAt: &now}
	assertActions(t, AllowedActions(approvedRefunded, false), []string{ActionMarkShipped})

	// 已入库但未退款的退货不能完结
	restocked := &models.ReturnRequest{Status: StatusRestocked, ReturnType: models.ReturnTypeReturn, RestockedAt: &now}
	assertActions(t, AllowedActions(restocked, false), []string{ActionConfirmRefund})

	// 已入库且已退款的退货可以完结
	restockedRefunded := &models.ReturnRequest{Status: StatusRestocked, ReturnType: models.ReturnTypeReturn, RestockedAt: &now, RefundConfirmedAt: &now}
	assertActions(t, AllowedActions(restockedRefunded, false), []string{ActionMarkCompleted})

	// 订单侧已退款同样视为退款完成
	restockedOrderRefunded := &models.ReturnRequest{Status: StatusRestocked, ReturnType: models.ReturnTypeReturn, RestockedAt: &now}
	assertActions(t, AllowedActions(restockedOrderRefunded, true), []string{ActionMarkCompleted})

	// 入库之后才确认退款的记录停在refund_confirmed，凭入库时间放行完结
	lateRefund := &models.ReturnRequest{Status: StatusRefundConfirmed, ReturnType: models.ReturnTypeReturn, RestockedAt: &now, RefundConfirmedAt: &now}
	assertActions(t, AllowedActions(lateRefund, false), []string{ActionMarkShipped, ActionMarkCompleted})

	// 换货已入库直接可完结
	restockedExchange := &models.ReturnRequest{Status: StatusRestocked, ReturnType: models.ReturnTypeExchange, RestockedAt: &now}
	assertActions(t, AllowedActions(restockedExchange, false), []string{ActionMarkCompleted})
}

// assertActions 比较动作列表是否一致（忽略顺序差异，实际实现按固定顺序返回）
func assertActions(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Errorf("动作列表 = %v, 期望 %v", got, want)
		return
	}
	wantSet := make(map[string]bool, len(want))
	for _, a := range want {
		wantSet[a] = true
	}
	for _, a := range got {
		if !wantSet[a] {
			t.Errorf("动作列表 = %v, 期望 %v", got, want)
			return
		}
	}
}
