package solver

import (
	"github.com/fesup-dev/forum-planner/backend/internal/domain"
)

// 槽位未分配时的取值
const Unassigned = -1

// Problem 是一次求解的输入快照：目录数据和志愿在求解期间都是只读的事实，
// 只有槽位的取值会被搜索过程修改
type Problem struct {
	Participants []*domain.Participant
	Activities   []*domain.Activity
	Rooms        []*domain.Room
	Timeslots    []*domain.Timeslot
	Sessions     []*domain.Session
	Preferences  []*domain.Preference
}

// Solution 把每个参与者的 4 个槽位平铺成一个数组：
// Slots[参与者下标*SlotsPerParticipant + 槽位序号] = 场次下标 或 Unassigned
type Solution struct {
	Slots []int
}

func newSolution(participantCount int) *Solution {
	slots := make([]int, participantCount*domain.SlotsPerParticipant)
	for i := range slots {
		slots[i] = Unassigned
	}
	return &Solution{Slots: slots}
}

func (s *Solution) Clone() *Solution {
	slots := make([]int, len(s.Slots))
	copy(slots, s.Slots)
	return &Solution{Slots: slots}
}

// Assignments 把解转换回领域对象，包含未分配的槽位（SessionID 为 nil）
func (p *Problem) Assignments(sol *Solution) []*domain.Assignment {
	assignments := make([]*domain.Assignment, 0, len(sol.Slots))

	for pi, participant := range p.Participants {
		for si := 0; si < domain.SlotsPerParticipant; si++ {
			a := &domain.Assignment{
				ParticipantID: participant.ID,
				SlotIndex:     si,
			}

			if v := sol.Slots[pi*domain.SlotsPerParticipant+si]; v != Unassigned {
				sessionID := p.Sessions[v].ID
				a.SessionID = &sessionID
			}

			assignments = append(assignments, a)
		}
	}

	return assignments
}
