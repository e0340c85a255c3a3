package domain

import "time"

type ActivityCategory string

const (
	CategoryHeadlineTalk ActivityCategory = "HEADLINE_TALK"
	CategoryPanel        ActivityCategory = "PANEL"
	CategoryMicroTalk    ActivityCategory = "MICRO_TALK"
)

type Activity struct {
	ID          int64            `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Category    ActivityCategory `json:"category"`
	Group       GroupKey         `json:"group"`
	MaxCapacity int              `json:"maxCapacity"`
	CreatedAt   time.Time        `json:"createdAt"`
	Version     int32            `json:"-"`
}
