package solver

import (
	"math/rand"
	"testing"
	"time"

	"github.com/fesup-dev/forum-planner/backend/internal/domain"
)

func testParams(budget time.Duration) *Parameters {
	return &Parameters{
		TimeBudget:     budget,
		Patience:       1 << 30,
		TempHigh:       2000,
		TempLow:        0.5,
		UnassignChance: 0.1,
	}
}

func TestSearchFindsFeasibleImprovement(t *testing.T) {
	// 4 个参与者、2 个互不冲突的场次，每人一个 1 志愿：
	// 存在硬分 0 的解，搜索至少要在不破坏可行性的前提下满足一部分志愿
	problem := &Problem{
		Participants: testParticipants(4),
		Timeslots:    testTimeslots(2),
		Sessions: []*domain.Session{
			{ID: 1, ActivityID: 1, TimeslotID: 1, Capacity: 2},
			{ID: 2, ActivityID: 2, TimeslotID: 2, Capacity: 2},
		},
		Preferences: []*domain.Preference{
			{ParticipantID: 1, ActivityID: 1, Rank: 1},
			{ParticipantID: 2, ActivityID: 1, Rank: 1},
			{ParticipantID: 3, ActivityID: 2, Rank: 1},
			{ParticipantID: 4, ActivityID: 2, Rank: 1},
		},
	}

	e, err := NewEvaluator(problem)
	if err != nil {
		t.Fatalf("NewEvaluator: %v", err)
	}

	rng := rand.New(rand.NewSource(42))
	_, score := e.Search(testParams(200*time.Millisecond), rng)

	if score.Hard != 0 {
		t.Errorf("expected feasible best solution, got hard %d", score.Hard)
	}

	// 空解的软分是 -8000，搜索必须有所改进
	if score.Soft <= -8000 {
		t.Errorf("expected soft score above -8000, got %d", score.Soft)
	}
}

func TestSearchBestNeverInfeasible(t *testing.T) {
	// 单场次容量 1、多个参与者：无论搜索怎么走，最优解的硬分不能为负
	problem := &Problem{
		Participants: testParticipants(5),
		Timeslots:    testTimeslots(1),
		Sessions: []*domain.Session{
			{ID: 1, ActivityID: 1, TimeslotID: 1, Capacity: 1},
		},
		Preferences: []*domain.Preference{
			{ParticipantID: 1, ActivityID: 1, Rank: 1},
			{ParticipantID: 2, ActivityID: 1, Rank: 1},
			{ParticipantID: 3, ActivityID: 1, Rank: 1},
		},
	}

	e, err := NewEvaluator(problem)
	if err != nil {
		t.Fatalf("NewEvaluator: %v", err)
	}

	rng := rand.New(rand.NewSource(7))
	sol, score := e.Search(testParams(100*time.Millisecond), rng)

	if !score.Feasible() {
		t.Errorf("best score must stay feasible, got %v", score)
	}
	if got := e.Evaluate(sol); got != score {
		t.Errorf("returned score %v does not match re-evaluation %v", score, got)
	}
}

func TestSearchPatienceStopsEarly(t *testing.T) {
	problem := &Problem{
		Participants: testParticipants(2),
		Timeslots:    testTimeslots(1),
		Sessions: []*domain.Session{
			{ID: 1, ActivityID: 1, TimeslotID: 1, Capacity: 2},
		},
	}

	e, err := NewEvaluator(problem)
	if err != nil {
		t.Fatalf("NewEvaluator: %v", err)
	}

	params := testParams(time.Hour)
	params.Patience = 100

	start := time.Now()
	rng := rand.New(rand.NewSource(1))
	e.Search(params, rng)

	if time.Since(start) > 5*time.Second {
		t.Fatal("search did not stop after patience was exhausted")
	}
}

func TestSearchHandlesEmptyProblem(t *testing.T) {
	problem := &Problem{}

	e, err := NewEvaluator(problem)
	if err != nil {
		t.Fatalf("NewEvaluator: %v", err)
	}

	rng := rand.New(rand.NewSource(1))
	sol, score := e.Search(testParams(50*time.Millisecond), rng)

	if len(sol.Slots) != 0 {
		t.Errorf("expected empty solution, got %d slots", len(sol.Slots))
	}
	if score != (domain.Score{}) {
		t.Errorf("expected zero score, got %v", score)
	}
}
