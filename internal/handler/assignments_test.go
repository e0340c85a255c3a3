package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fesup-dev/forum-planner/backend/internal/config"
	"github.com/fesup-dev/forum-planner/backend/internal/domain"
	"github.com/fesup-dev/forum-planner/backend/internal/solver"
)

func testSolveConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Solver.TimeBudget = 1
	// 耐心设小一点，让运行尽快收敛结束
	cfg.Solver.Patience = 1000
	cfg.Solver.TempHigh = 2000
	cfg.Solver.TempLow = 0.5
	cfg.Solver.UnassignChance = 0.1
	return cfg
}

func testSolveProblem() *solver.Problem {
	return &solver.Problem{
		Participants: []*domain.Participant{
			{ID: 1, Group: domain.GroupDay1Morning},
			{ID: 2, Group: domain.GroupDay1Morning},
		},
		Timeslots: []*domain.Timeslot{
			{ID: 1, StartTime: "09:00:00", EndTime: "09:45:00", Group: domain.GroupDay1Morning},
		},
		Sessions: []*domain.Session{
			{ID: 1, ActivityID: 1, TimeslotID: 1, Capacity: 2},
		},
		Preferences: []*domain.Preference{
			{ParticipantID: 1, ActivityID: 1, Rank: 1},
			{ParticipantID: 2, ActivityID: 1, Rank: 1},
		},
	}
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) *Response {
	t.Helper()
	var resp Response
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return &resp
}

// 即便持久化失败，求解结果接口也必须返回完整的分配列表，
// 不能让客户端退回去读库里过期的数据
func TestGetSolveResultIncludesAssignments(t *testing.T) {
	cfg := testSolveConfig()
	driver := solver.NewDriver(cfg, nil, nil, func(*solver.Result) error {
		return errors.New("数据库不可用")
	})

	h, err := NewHandler(cfg, nil, nil, nil, driver)
	if err != nil {
		t.Fatalf("NewHandler: %v", err)
	}

	// 尚未启动过任何运行时应返回业务失败信封
	rec := httptest.NewRecorder()
	h.GetSolveResult(rec, httptest.NewRequest(http.MethodGet, "/assignments/solve/result", nil))
	if resp := decodeResponse(t, rec); resp.Success {
		t.Error("expected failure envelope before any run")
	}

	problem := testSolveProblem()
	runID, err := driver.Start(problem)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}

	deadline := time.Now().Add(10 * time.Second)
	for driver.Running() {
		if time.Now().After(deadline) {
			t.Fatal("solve run did not complete in time")
		}
		time.Sleep(10 * time.Millisecond)
	}

	rec = httptest.NewRecorder()
	h.GetSolveResult(rec, httptest.NewRequest(http.MethodGet, "/assignments/solve/result", nil))
	resp := decodeResponse(t, rec)
	if !resp.Success {
		t.Fatalf("expected success envelope, got message %q", resp.Message)
	}

	data, ok := resp.Data.(map[string]any)
	if !ok {
		t.Fatalf("expected object payload, got %T", resp.Data)
	}
	if data["runID"] != runID {
		t.Errorf("expected runID %s, got %v", runID, data["runID"])
	}

	assignments, ok := data["assignments"].([]any)
	if !ok {
		t.Fatalf("expected assignments list in payload, got %T", data["assignments"])
	}
	if want := len(problem.Participants) * domain.SlotsPerParticipant; len(assignments) != want {
		t.Errorf("expected %d assignments (including empty slots), got %d", want, len(assignments))
	}
}
