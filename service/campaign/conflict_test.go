package campaign

import (
	"testing"
	"time"

	"nextjs_to_go/models"
)

// day 构造测试用的日期
func day(d int) time.Time {
	return time.Date(2026, 9, d, 0, 0, 0, 0, time.UTC)
}

// TestWindowsOverlap 时间窗口重叠判断（闭区间）
func TestWindowsOverlap(t *testing.T) {
	cases := []struct {
		name                       string
		aStart, aEnd, bStart, bEnd time.Time
		want                       bool
	}{
		{"完全分离", day(1), day(5), day(10), day(15), false},
		{"完全分离（顺序相反）", day(10), day(15), day(1), day(5), false},
		{"部分重叠", day(1), day(10), day(5), day(15), true},
		{"完全包含", day(1), day(30), day(10), day(15), true},
		{"被完全包含", day(10), day(15), day(1), day(30), true},
		{"完全相同", day(1), day(10), day(1), day(10), true},
		// 边界相接视为重叠
		{"尾首相接", day(1), day(10), day(10), day(20), true},
		{"首尾相接", day(10), day(20), day(1), day(10), true},
		{"相差一天", day(1), day(9), day(10), day(20), false},
	}

	for _, tc := range cases {
		got := WindowsOverlap(tc.aStart, tc.aEnd, tc.bStart, tc.bEnd)
		if got != tc.want {
			t.Errorf("%s: WindowsOverlap = %v, 期望 %v", tc.name, got, tc.want)
		}
	}
}

// TestCampaignsOverlap 活动窗口重叠判断
func TestCampaignsOverlap(t *testing.T) {
	a := &models.Campaign{Name: "秋季大促", StartDate: day(1), EndDate: day(10)}
	b := &models.Campaign{Name: "限时抢购", StartDate: day(8), EndDate: day(12)}
	c := &models.Campaign{Name: "国庆专场", StartDate: day(20), EndDate: day(25)}

	if !CampaignsOverlap(a, b) {
		t.Error("a 与 b 窗口重叠，应返回 true")
	}
	if CampaignsOverlap(a, c) {
		t.Error("a 与 c 窗口不重叠，应返回 false")
	}
}
