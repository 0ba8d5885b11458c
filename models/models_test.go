package models

import (
	"testing"
	"time"
)

// TestVariantKey 无规格按0处理
func TestVariantKey(t *testing.T) {
	if VariantKey(nil) != 0 {
		t.Error("nil规格的键应为0")
	}
	v := uint(7)
	if VariantKey(&v) != 7 {
		t.Error("有规格时应返回规格ID")
	}
}

// TestSameVariant NULL规格与具体规格的比较
func TestSameVariant(t *testing.T) {
	a, b := uint(1), uint(2)
	cases := []struct {
		x, y *uint
		want bool
	}{
		{nil, nil, true},
		{&a, &a, true},
		{&a, &b, false},
		{nil, &a, false},
		{&a, nil, false},
	}
	for _, tc := range cases {
		if got := SameVariant(tc.x, tc.y); got != tc.want {
			t.Errorf("SameVariant(%v, %v) = %v, 期望 %v", tc.x, tc.y, got, tc.want)
		}
	}
}

// TestReturnableQuantity 可退数量 = 购买数量 - 已退数量
func TestReturnableQuantity(t *testing.T) {
	item := OrderItem{Quantity: 5, ReturnedQuantity: 2}
	if item.ReturnableQuantity() != 3 {
		t.Errorf("可退数量应为3，实际 %d", item.ReturnableQuantity())
	}

	exhausted := OrderItem{Quantity: 2, ReturnedQuantity: 2}
	if exhausted.ReturnableQuantity() != 0 {
		t.Errorf("已退完的行项目可退数量应为0，实际 %d", exhausted.ReturnableQuantity())
	}
}

// TestCampaignEffectiveStatus 活动展示状态按时间窗口推算
func TestCampaignEffectiveStatus(t *testing.T) {
	start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)

	// 草稿不随时间变化
	draft := &Campaign{Status: CampaignStatusDraft, StartDate: start, EndDate: end}
	if got := draft.EffectiveStatus(start.Add(24 * time.Hour)); got != CampaignStatusDraft {
		t.Errorf("草稿活动展示状态应为draft，实际 %s", got)
	}

	published := &Campaign{Status: CampaignStatusUpcoming, StartDate: start, EndDate: end}
	if got := published.EffectiveStatus(start.Add(-time.Hour)); got != CampaignStatusUpcoming {
		t.Errorf("开始前应为upcoming，实际 %s", got)
	}
	if got := published.EffectiveStatus(start.Add(time.Hour)); got != CampaignStatusActive {
		t.Errorf("窗口内应为active，实际 %s", got)
	}
	if got := published.EffectiveStatus(end.Add(time.Hour)); got != CampaignStatusEnded {
		t.Errorf("结束后应为ended，实际 %s", got)
	}
}

// TestCartItemKey 购物车键按商品和规格生成
func TestCartItemKey(t *testing.T) {
	if CartItemKey(3, nil) != "3:0" {
		t.Errorf("无规格的键应为3:0，实际 %s", CartItemKey(3, nil))
	}
	v := uint(8)
	if CartItemKey(3, &v) != "3:8" {
		t.Errorf("有规格的键应为3:8，实际 %s", CartItemKey(3, &v))
	}
}
