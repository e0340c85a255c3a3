package utils

import (
	"fmt"
	"time"

	"github.com/fesup-dev/forum-planner/backend/internal/domain"
)

func ValidateTimeslotTime(timeslot *domain.Timeslot) error {
	startTime, err := time.Parse("15:04:05", timeslot.StartTime)
	if err != nil {
		return fmt.Errorf("时间段的开始时间格式错误")
	}
	endTime, err := time.Parse("15:04:05", timeslot.EndTime)
	if err != nil {
		return fmt.Errorf("时间段的结束时间格式错误")
	}
	if !endTime.After(startTime) {
		return fmt.Errorf("时间段的结束时间必须晚于开始时间")
	}
	return nil
}

// ValidatePreferenceSubmission 校验一个参与者提交的整套志愿：
// 数量不超过 5 条，志愿序在 1..5 之间且互不重复，活动互不重复，
// 且每个活动都属于该参与者所在的分组
func ValidatePreferenceSubmission(participant *domain.Participant, preferences []*domain.Preference, activitiesByID map[int64]*domain.Activity) error {
	if len(preferences) == 0 {
		return fmt.Errorf("至少需要提交一条志愿")
	}
	if len(preferences) > domain.MaxPreferenceRank {
		return fmt.Errorf("志愿数量不能超过 %d 条", domain.MaxPreferenceRank)
	}

	seenRanks := make(map[int]bool, len(preferences))
	seenActivities := make(map[int64]bool, len(preferences))

	for _, pref := range preferences {
		if pref.Rank < domain.MinPreferenceRank || pref.Rank > domain.MaxPreferenceRank {
			return fmt.Errorf("志愿序 %d 不在 %d 到 %d 之间", pref.Rank, domain.MinPreferenceRank, domain.MaxPreferenceRank)
		}
		if seenRanks[pref.Rank] {
			return fmt.Errorf("志愿序 %d 出现了多次", pref.Rank)
		}
		seenRanks[pref.Rank] = true

		if seenActivities[pref.ActivityID] {
			return fmt.Errorf("活动 %d 被填报了多次", pref.ActivityID)
		}
		seenActivities[pref.ActivityID] = true

		activity, ok := activitiesByID[pref.ActivityID]
		if !ok {
			return fmt.Errorf("活动 %d 不存在", pref.ActivityID)
		}
		if activity.Group != participant.Group {
			return fmt.Errorf("活动 %d 不属于该参与者所在的分组", pref.ActivityID)
		}
	}

	return nil
}
