package domain

import "time"

// Timeslot 的时间使用 "15:04:05" 格式的字符串表示，
// 冲突检查只依赖 (开始时间, 结束时间) 的字符串相等性
type Timeslot struct {
	ID        int64     `json:"id"`
	Label     string    `json:"label"` // 例如 "上午第 1 节"
	StartTime string    `json:"startTime"`
	EndTime   string    `json:"endTime"`
	Group     GroupKey  `json:"group"`
	CreatedAt time.Time `json:"createdAt"`
	Version   int32     `json:"-"`
}
