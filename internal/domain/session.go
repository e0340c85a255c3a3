package domain

import "time"

// Session 表示某个活动在某个教室、某个时间段的一次具体开展，
// 由生成器根据志愿统计自动产生，生成之后不再修改（重新生成时整体替换）
type Session struct {
	ID         int64     `json:"id"`
	ActivityID int64     `json:"activityID"`
	RoomID     int64     `json:"roomID"`
	TimeslotID int64     `json:"timeslotID"`
	Capacity   int       `json:"capacity"` // min(教室容量, 活动容量上限)，生成时固定
	CreatedAt  time.Time `json:"createdAt"`
	Version    int32     `json:"-"`
}
