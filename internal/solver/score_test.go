package solver

import (
	"testing"

	"github.com/fesup-dev/forum-planner/backend/internal/domain"
)

func testParticipants(n int) []*domain.Participant {
	participants := make([]*domain.Participant, n)
	for i := range participants {
		participants[i] = &domain.Participant{
			ID:    int64(i + 1),
			Group: domain.GroupDay1Morning,
		}
	}
	return participants
}

func testTimeslots(n int) []*domain.Timeslot {
	timeslots := make([]*domain.Timeslot, n)
	for i := range timeslots {
		timeslots[i] = &domain.Timeslot{
			ID:        int64(i + 1),
			StartTime: []string{"09:00:00", "10:00:00", "11:00:00", "12:00:00"}[i%4],
			EndTime:   []string{"09:45:00", "10:45:00", "11:45:00", "12:45:00"}[i%4],
			Group:     domain.GroupDay1Morning,
		}
	}
	return timeslots
}

// assign 把参与者 pi 的槽位 slot 指向场次下标 session
func assign(sol *Solution, pi, slot, session int) {
	sol.Slots[pi*domain.SlotsPerParticipant+slot] = session
}

func TestEvaluateEmptySolution(t *testing.T) {
	problem := &Problem{
		Participants: testParticipants(2),
		Timeslots:    testTimeslots(1),
		Sessions: []*domain.Session{
			{ID: 1, ActivityID: 1, TimeslotID: 1, Capacity: 10},
		},
		Preferences: []*domain.Preference{
			{ParticipantID: 1, ActivityID: 1, Rank: 1},
			{ParticipantID: 2, ActivityID: 1, Rank: 1},
		},
	}

	e, err := NewEvaluator(problem)
	if err != nil {
		t.Fatalf("NewEvaluator: %v", err)
	}

	score := e.Evaluate(newSolution(len(problem.Participants)))

	if score.Hard != 0 {
		t.Errorf("empty solution must be feasible, got hard %d", score.Hard)
	}
	// 两个未满足的 1 志愿，每个 -2000
	if score.Soft != -4000 {
		t.Errorf("expected soft -4000, got %d", score.Soft)
	}
}

func TestEvaluateCapacityOverage(t *testing.T) {
	problem := &Problem{
		Participants: testParticipants(3),
		Timeslots:    testTimeslots(1),
		Sessions: []*domain.Session{
			{ID: 1, ActivityID: 1, TimeslotID: 1, Capacity: 1},
		},
	}

	e, err := NewEvaluator(problem)
	if err != nil {
		t.Fatalf("NewEvaluator: %v", err)
	}

	sol := newSolution(3)
	assign(sol, 0, 0, 0)
	assign(sol, 1, 0, 0)
	assign(sol, 2, 0, 0)

	score := e.Evaluate(sol)

	// 3 人挤在容量 1 的场次里，超出 2 人
	if score.Hard != -2 {
		t.Errorf("expected hard -2, got %d", score.Hard)
	}
}

func TestEvaluateDoubleBooking(t *testing.T) {
	timeslots := []*domain.Timeslot{
		{ID: 1, StartTime: "09:00:00", EndTime: "09:45:00", Group: domain.GroupDay1Morning},
		{ID: 2, StartTime: "09:00:00", EndTime: "09:45:00", Group: domain.GroupDay1Morning},
		{ID: 3, StartTime: "10:00:00", EndTime: "10:45:00", Group: domain.GroupDay1Morning},
	}
	problem := &Problem{
		Participants: testParticipants(1),
		Timeslots:    timeslots,
		Sessions: []*domain.Session{
			{ID: 1, ActivityID: 1, TimeslotID: 1, Capacity: 10},
			{ID: 2, ActivityID: 2, TimeslotID: 2, Capacity: 10},
			{ID: 3, ActivityID: 3, TimeslotID: 3, Capacity: 10},
		},
	}

	e, err := NewEvaluator(problem)
	if err != nil {
		t.Fatalf("NewEvaluator: %v", err)
	}

	sol := newSolution(1)
	assign(sol, 0, 0, 0)
	assign(sol, 0, 1, 1) // 和场次 1 起止时间完全相同
	assign(sol, 0, 2, 2) // 不同时间，不算冲突

	score := e.Evaluate(sol)

	if score.Hard != -1 {
		t.Errorf("expected hard -1 for one conflicting pair, got %d", score.Hard)
	}
}

func TestEvaluateRepetitionCeiling(t *testing.T) {
	sessions := make([]*domain.Session, 6)
	for i := range sessions {
		sessions[i] = &domain.Session{
			ID:         int64(i + 1),
			ActivityID: 1,
			TimeslotID: int64(i%4 + 1),
			Capacity:   10,
		}
	}

	problem := &Problem{
		Participants: testParticipants(6),
		Timeslots:    testTimeslots(4),
		Sessions:     sessions,
	}

	e, err := NewEvaluator(problem)
	if err != nil {
		t.Fatalf("NewEvaluator: %v", err)
	}

	// 同一个活动在同一个半天实际用到 6 个不同场次，超出上限 1 个
	sol := newSolution(6)
	for i := 0; i < 6; i++ {
		assign(sol, i, 0, i)
	}

	score := e.Evaluate(sol)

	if score.Hard != -1 {
		t.Errorf("expected hard -1 for one excess session, got %d", score.Hard)
	}
}

func TestEvaluatePreferenceScoring(t *testing.T) {
	problem := &Problem{
		Participants: testParticipants(2),
		Timeslots:    testTimeslots(2),
		Sessions: []*domain.Session{
			{ID: 1, ActivityID: 1, TimeslotID: 1, Capacity: 10},
			{ID: 2, ActivityID: 2, TimeslotID: 2, Capacity: 10},
		},
		Preferences: []*domain.Preference{
			{ParticipantID: 1, ActivityID: 1, Rank: 3}, // 满足 => +300
			{ParticipantID: 1, ActivityID: 2, Rank: 5}, // 满足 => +100
			{ParticipantID: 2, ActivityID: 1, Rank: 2}, // 未满足 => -1000
			{ParticipantID: 2, ActivityID: 2, Rank: 4}, // 未满足 => 0
		},
	}

	e, err := NewEvaluator(problem)
	if err != nil {
		t.Fatalf("NewEvaluator: %v", err)
	}

	sol := newSolution(2)
	assign(sol, 0, 0, 0)
	assign(sol, 0, 1, 1)

	score := e.Evaluate(sol)

	if score.Hard != 0 {
		t.Errorf("expected feasible solution, got hard %d", score.Hard)
	}
	if score.Soft != 300+100-1000 {
		t.Errorf("expected soft -600, got %d", score.Soft)
	}
}

func TestEvaluateContestedSeatOptimum(t *testing.T) {
	// 两个人抢一个只有 1 个座位的场次：最优解是只排一个人，
	// 硬分 0，另一个人的 1 志愿未满足带来 -2000 软分
	problem := &Problem{
		Participants: testParticipants(2),
		Timeslots:    testTimeslots(1),
		Sessions: []*domain.Session{
			{ID: 1, ActivityID: 1, TimeslotID: 1, Capacity: 1},
		},
		Preferences: []*domain.Preference{
			{ParticipantID: 1, ActivityID: 1, Rank: 1},
			{ParticipantID: 2, ActivityID: 1, Rank: 1},
		},
	}

	e, err := NewEvaluator(problem)
	if err != nil {
		t.Fatalf("NewEvaluator: %v", err)
	}

	sol := newSolution(2)
	assign(sol, 0, 0, 0)

	score := e.Evaluate(sol)

	want := domain.Score{Hard: 0, Soft: -2000}
	if score != want {
		t.Errorf("expected %v, got %v", want, score)
	}

	// 两个人都排进去反而更差：硬分被破坏
	both := newSolution(2)
	assign(both, 0, 0, 0)
	assign(both, 1, 0, 0)
	if got := e.Evaluate(both); !got.Less(score) {
		t.Errorf("overfull solution %v should be worse than %v", got, score)
	}
}

func TestNewEvaluatorRejectsDanglingTimeslot(t *testing.T) {
	problem := &Problem{
		Participants: testParticipants(1),
		Timeslots:    testTimeslots(1),
		Sessions: []*domain.Session{
			{ID: 1, ActivityID: 1, TimeslotID: 99, Capacity: 10},
		},
	}

	if _, err := NewEvaluator(problem); err == nil {
		t.Fatal("expected error for session referencing unknown timeslot")
	}
}
