package solver

import (
	"fmt"

	"github.com/fesup-dev/forum-planner/backend/internal/domain"
)

const (
	// 同一 (活动, 分组) 下最多允许出现参与者的不同场次数
	maxDistinctSessionsPerActivityGroup = 5

	unmetMandatoryPenaltyUnit = 1000
	metOptionalRewardUnit     = 100
)

// Evaluator 在构造时把场次、时间段和志愿预先索引好，
// 之后 Evaluate 对任意解做全量打分，不依赖任何可变状态
type Evaluator struct {
	problem *Problem

	sessionCapacity []int
	sessionActivity []int64
	sessionGroup    []domain.GroupKey
	sessionTimeKey  []string

	// 参与者下标 -> 该参与者的全部志愿
	prefsByParticipant [][]*domain.Preference
}

type activityGroupKey struct {
	activityID int64
	group      domain.GroupKey
}

// NewEvaluator 校验场次引用的完整性并建立打分索引。
// 引用了不存在时间段的场次属于数据配置错误，在这里同步暴露，而不是等到搜索中途
func NewEvaluator(problem *Problem) (*Evaluator, error) {
	timeslotsByID := make(map[int64]*domain.Timeslot, len(problem.Timeslots))
	for _, t := range problem.Timeslots {
		timeslotsByID[t.ID] = t
	}

	participantIndexByID := make(map[int64]int, len(problem.Participants))
	for i, p := range problem.Participants {
		participantIndexByID[p.ID] = i
	}

	e := &Evaluator{
		problem:            problem,
		sessionCapacity:    make([]int, len(problem.Sessions)),
		sessionActivity:    make([]int64, len(problem.Sessions)),
		sessionGroup:       make([]domain.GroupKey, len(problem.Sessions)),
		sessionTimeKey:     make([]string, len(problem.Sessions)),
		prefsByParticipant: make([][]*domain.Preference, len(problem.Participants)),
	}

	for i, session := range problem.Sessions {
		timeslot, ok := timeslotsByID[session.TimeslotID]
		if !ok {
			return nil, fmt.Errorf("场次 %d 引用了不存在的时间段 %d", session.ID, session.TimeslotID)
		}

		e.sessionCapacity[i] = session.Capacity
		e.sessionActivity[i] = session.ActivityID
		e.sessionGroup[i] = timeslot.Group
		e.sessionTimeKey[i] = timeslot.StartTime + "/" + timeslot.EndTime
	}

	for _, pref := range problem.Preferences {
		pi, ok := participantIndexByID[pref.ParticipantID]
		if !ok {
			// 志愿指向不在本次求解范围内的参与者，直接忽略
			continue
		}
		e.prefsByParticipant[pi] = append(e.prefsByParticipant[pi], pref)
	}

	return e, nil
}

// Evaluate 对一个完整解打分。硬分惩罚不可行的解，软分衡量志愿满足程度，
// 两者互不折算，比较时硬分绝对优先
func (e *Evaluator) Evaluate(sol *Solution) domain.Score {
	hard, soft := 0, 0

	occupancy := make([]int, len(e.problem.Sessions))

	for pi := range e.problem.Participants {
		base := pi * domain.SlotsPerParticipant

		for si := 0; si < domain.SlotsPerParticipant; si++ {
			v := sol.Slots[base+si]
			if v == Unassigned {
				continue
			}

			occupancy[v]++

			// 同一参与者被排进起止时间完全相同的两个场次，按冲突对计罚
			for sj := si + 1; sj < domain.SlotsPerParticipant; sj++ {
				w := sol.Slots[base+sj]
				if w != Unassigned && e.sessionTimeKey[v] == e.sessionTimeKey[w] {
					hard--
				}
			}
		}
	}

	for i, count := range occupancy {
		if count > e.sessionCapacity[i] {
			hard -= count - e.sessionCapacity[i]
		}
	}

	// 同一 (活动, 分组) 实际被使用的不同场次数超出上限时，超出几个罚几分
	usedSessions := make(map[activityGroupKey]int)
	for i, count := range occupancy {
		if count > 0 {
			usedSessions[activityGroupKey{e.sessionActivity[i], e.sessionGroup[i]}]++
		}
	}
	for _, n := range usedSessions {
		if n > maxDistinctSessionsPerActivityGroup {
			hard -= n - maxDistinctSessionsPerActivityGroup
		}
	}

	for pi := range e.problem.Participants {
		prefs := e.prefsByParticipant[pi]
		if len(prefs) == 0 {
			continue
		}

		base := pi * domain.SlotsPerParticipant
		assignedActivities := make(map[int64]bool, domain.SlotsPerParticipant)
		for si := 0; si < domain.SlotsPerParticipant; si++ {
			if v := sol.Slots[base+si]; v != Unassigned {
				assignedActivities[e.sessionActivity[v]] = true
			}
		}

		for _, pref := range prefs {
			assigned := assignedActivities[pref.ActivityID]
			if pref.IsMandatory() {
				if !assigned {
					soft -= unmetMandatoryPenaltyUnit * (domain.MandatoryRankCeiling + 1 - pref.Rank)
				}
			} else if assigned {
				soft += metOptionalRewardUnit * (6 - pref.Rank)
			}
		}
	}

	return domain.Score{Hard: hard, Soft: soft}
}
