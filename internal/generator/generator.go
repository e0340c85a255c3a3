package generator

import (
	"log/slog"
	"math"
	"sort"

	"github.com/fesup-dev/forum-planner/backend/internal/domain"
)

// Catalog 是生成场次所需要的全部目录数据
type Catalog struct {
	Activities []*domain.Activity
	Rooms      []*domain.Room
	Timeslots  []*domain.Timeslot
}

// Shortfall 记录某个活动因为教室/时间段耗尽而没能生成的场次数量
type Shortfall struct {
	ActivityID int64           `json:"activityID"`
	Group      domain.GroupKey `json:"group"`
	Missing    int             `json:"missing"`
}

type Summary struct {
	TotalCreated int                     `json:"totalCreated"`
	PerGroup     map[domain.GroupKey]int `json:"perGroup"`
	Shortfalls   []Shortfall             `json:"shortfalls"`
}

// activityDemand 是某个半天内单个活动的志愿统计
type activityDemand struct {
	activity  *domain.Activity
	total     int // 全部志愿数
	mandatory int // 1、2 志愿数
}

/**
 * Plan 根据志愿统计生成场次：
 *  1. 按参与者的半天分组志愿，再在组内按活动聚合
 *  2. 组内按志愿总数从多到少处理活动（数量相同时按活动 ID 升序，保证确定性）
 *  3. 需要的场次数 = ceil(1、2 志愿数 / 活动容量)，若 3-5 志愿超出一个容量再加一场，
 *     然后按活动类别抬高到保底场次数，最后不超过 maxPerActivity
 *  4. 用轮转游标给每个场次挑一个没用过的 (时间段, 教室)，优先容量足够的教室；
 *     组合耗尽时放弃该活动剩余的场次并记入 Shortfalls（不中断整体生成）
 */
func Plan(catalog *Catalog, participants []*domain.Participant, preferences []*domain.Preference, maxPerActivity int) ([]*domain.Session, *Summary) {
	summary := &Summary{
		PerGroup:   make(map[domain.GroupKey]int),
		Shortfalls: []Shortfall{},
	}

	groupOf := make(map[int64]domain.GroupKey, len(participants))
	for _, p := range participants {
		groupOf[p.ID] = p.Group
	}

	activityByID := make(map[int64]*domain.Activity, len(catalog.Activities))
	for _, a := range catalog.Activities {
		activityByID[a.ID] = a
	}

	// 按 (半天, 活动) 聚合志愿
	demandByGroup := make(map[domain.GroupKey]map[int64]*activityDemand)
	for _, pref := range preferences {
		group, ok := groupOf[pref.ParticipantID]
		if !ok {
			continue
		}
		activity, ok := activityByID[pref.ActivityID]
		if !ok {
			continue
		}

		if _, exists := demandByGroup[group]; !exists {
			demandByGroup[group] = make(map[int64]*activityDemand)
		}
		if _, exists := demandByGroup[group][activity.ID]; !exists {
			demandByGroup[group][activity.ID] = &activityDemand{activity: activity}
		}

		demand := demandByGroup[group][activity.ID]
		demand.total++
		if pref.IsMandatory() {
			demand.mandatory++
		}
	}

	// 按组名排序遍历，保证多次生成的处理顺序一致
	groups := make([]domain.GroupKey, 0, len(demandByGroup))
	for group := range demandByGroup {
		groups = append(groups, group)
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i] < groups[j] })

	sessions := []*domain.Session{}

	for _, group := range groups {
		timeslots := []*domain.Timeslot{}
		for _, ts := range catalog.Timeslots {
			if ts.Group == group {
				timeslots = append(timeslots, ts)
			}
		}
		rooms := catalog.Rooms

		// 按志愿总数降序排列活动，数量相同时按活动 ID 升序
		demands := make([]*activityDemand, 0, len(demandByGroup[group]))
		for _, d := range demandByGroup[group] {
			demands = append(demands, d)
		}
		sort.Slice(demands, func(i, j int) bool {
			if demands[i].total != demands[j].total {
				return demands[i].total > demands[j].total
			}
			return demands[i].activity.ID < demands[j].activity.ID
		})

		// 本组内已经占用的 (时间段, 教室) 组合
		used := make(map[[2]int64]bool)
		slotCursor, roomCursor := 0, 0
		createdForGroup := 0

		for _, demand := range demands {
			activity := demand.activity
			capacity := activity.MaxCapacity
			if capacity <= 0 {
				slog.Warn("活动容量非法，跳过", "activityID", activity.ID, "capacity", capacity)
				continue
			}

			required := int(math.Ceil(float64(demand.mandatory) / float64(capacity)))
			if demand.total-demand.mandatory > capacity {
				required++
			}
			if floor := minimumSessions(activity.Category, demand.total); required < floor {
				required = floor
			}
			if required > maxPerActivity {
				required = maxPerActivity
			}
			if required == 0 {
				continue
			}

			if len(rooms) == 0 || len(timeslots) == 0 {
				slog.Warn("该半天没有可用的教室或时间段", "group", group, "activityID", activity.ID)
				summary.Shortfalls = append(summary.Shortfalls, Shortfall{
					ActivityID: activity.ID,
					Group:      group,
					Missing:    required,
				})
				continue
			}

			// 容量足够的教室优先
			preferred := []*domain.Room{}
			for _, room := range rooms {
				if room.Capacity >= capacity {
					preferred = append(preferred, room)
				}
			}
			candidates := preferred
			if len(candidates) == 0 {
				candidates = rooms
			}

			for i := 0; i < required; i++ {
				created := false

				for attempts := 0; attempts < len(timeslots)*len(rooms); attempts++ {
					ts := timeslots[slotCursor%len(timeslots)]
					room := candidates[roomCursor%len(candidates)]
					key := [2]int64{ts.ID, room.ID}

					if !used[key] {
						sessions = append(sessions, &domain.Session{
							ActivityID: activity.ID,
							RoomID:     room.ID,
							TimeslotID: ts.ID,
							Capacity:   min(room.Capacity, capacity),
						})
						used[key] = true
						createdForGroup++
						created = true
					}

					slotCursor++
					if slotCursor%len(timeslots) == 0 {
						roomCursor++
					}
					if created {
						break
					}
				}

				if !created {
					// 组合耗尽，放弃这个活动剩下的场次，继续处理下一个活动
					slog.Warn("无法为活动生成更多场次（时间段/教室组合耗尽）",
						"group", group, "activityID", activity.ID, "missing", required-i)
					summary.Shortfalls = append(summary.Shortfalls, Shortfall{
						ActivityID: activity.ID,
						Group:      group,
						Missing:    required - i,
					})
					break
				}
			}
		}

		summary.PerGroup[group] = createdForGroup
		summary.TotalCreated += createdForGroup
	}

	return sessions, summary
}

// minimumSessions 返回按活动类别的保底场次数：
// 只要有志愿，主题演讲至少 1 场；圆桌讨论至少 5 个志愿才保底 1 场；
// 微型演讲至少 3 个志愿才保底 1 场
func minimumSessions(category domain.ActivityCategory, total int) int {
	if total == 0 {
		return 0
	}

	switch category {
	case domain.CategoryHeadlineTalk:
		return 1
	case domain.CategoryPanel:
		if total >= 5 {
			return 1
		}
		return 0
	case domain.CategoryMicroTalk:
		if total >= 3 {
			return 1
		}
		return 0
	default:
		return 0
	}
}
