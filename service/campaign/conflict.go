package campaign

import (
	"time"

	"nextjs_to_go/models"
)

// WindowsOverlap 判断两个活动时间窗口是否重叠（闭区间，边界相接视为重叠）
func WindowsOverlap(aStart, aEnd, bStart, bEnd time.Time) bool {
	return !aStart.After(bEnd) && !aEnd.Before(bStart)
}

// CampaignsOverlap 判断两个活动的时间窗口是否重叠
func CampaignsOverlap(a, b *models.Campaign) bool {
	return WindowsOverlap(a.StartDate, a.EndDate, b.StartDate, b.EndDate)
}
