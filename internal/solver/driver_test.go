package solver

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/fesup-dev/forum-planner/backend/internal/config"
	"github.com/fesup-dev/forum-planner/backend/internal/domain"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Solver.TimeBudget = 1
	// 耐心设得足够大，保证运行持续整个时间预算，方便断言运行中的状态
	cfg.Solver.Patience = 1 << 30
	cfg.Solver.TempHigh = 2000
	cfg.Solver.TempLow = 0.5
	cfg.Solver.UnassignChance = 0.1
	return cfg
}

func testProblem() *Problem {
	return &Problem{
		Participants: testParticipants(2),
		Timeslots:    testTimeslots(1),
		Sessions: []*domain.Session{
			{ID: 1, ActivityID: 1, TimeslotID: 1, Capacity: 2},
		},
		Preferences: []*domain.Preference{
			{ParticipantID: 1, ActivityID: 1, Rank: 1},
			{ParticipantID: 2, ActivityID: 1, Rank: 1},
		},
	}
}

func waitForCompletion(t *testing.T, d *Driver) {
	t.Helper()
	deadline := time.Now().Add(10 * time.Second)
	for d.Running() {
		if time.Now().After(deadline) {
			t.Fatal("solve run did not complete in time")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestDriverStartValidatesInput(t *testing.T) {
	d := NewDriver(testConfig(), nil, nil, func(*Result) error { return nil })

	if _, err := d.Start(&Problem{Participants: testParticipants(1)}); !errors.Is(err, domain.ErrNoSessions) {
		t.Errorf("expected ErrNoSessions, got %v", err)
	}

	problem := testProblem()
	problem.Participants = nil
	if _, err := d.Start(problem); !errors.Is(err, domain.ErrNoParticipants) {
		t.Errorf("expected ErrNoParticipants, got %v", err)
	}

	dangling := testProblem()
	dangling.Sessions[0].TimeslotID = 99
	if _, err := d.Start(dangling); err == nil {
		t.Error("expected error for session referencing unknown timeslot")
	}
}

func TestDriverRunCompletesAndPersists(t *testing.T) {
	var mu sync.Mutex
	var persisted *Result

	d := NewDriver(testConfig(), nil, nil, func(result *Result) error {
		mu.Lock()
		defer mu.Unlock()
		persisted = result
		return nil
	})

	problem := testProblem()
	runID, err := d.Start(problem)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}

	waitForCompletion(t, d)

	result, err := d.Result()
	if err != nil {
		t.Fatalf("Result: %v", err)
	}

	if result.RunID != runID {
		t.Errorf("expected runID %s, got %s", runID, result.RunID)
	}
	if !result.Score.Feasible() {
		t.Errorf("expected feasible score, got %v", result.Score)
	}
	if want := len(problem.Participants) * domain.SlotsPerParticipant; len(result.Assignments) != want {
		t.Errorf("expected %d assignments (including empty slots), got %d", want, len(result.Assignments))
	}

	mu.Lock()
	defer mu.Unlock()
	if persisted != result {
		t.Error("persisted result does not match the one returned by Result")
	}
}

func TestDriverRejectsConcurrentRuns(t *testing.T) {
	d := NewDriver(testConfig(), nil, nil, func(*Result) error { return nil })

	if _, err := d.Start(testProblem()); err != nil {
		t.Fatalf("Start: %v", err)
	}

	if _, err := d.Start(testProblem()); !errors.Is(err, domain.ErrSolveAlreadyRunning) {
		t.Errorf("expected ErrSolveAlreadyRunning, got %v", err)
	}

	waitForCompletion(t, d)

	// 上一次运行结束后可以再次启动
	if _, err := d.Start(testProblem()); err != nil {
		t.Errorf("expected restart to succeed, got %v", err)
	}
	waitForCompletion(t, d)
}

// 没有 Redis 时互斥完全依赖进程内状态，这里用并发调用验证检查和登记是原子的
func TestDriverStartSerializesConcurrentCalls(t *testing.T) {
	d := NewDriver(testConfig(), nil, nil, func(*Result) error { return nil })

	const callers = 8
	var wg sync.WaitGroup
	errs := make(chan error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := d.Start(testProblem())
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	started := 0
	for err := range errs {
		switch {
		case err == nil:
			started++
		case errors.Is(err, domain.ErrSolveAlreadyRunning):
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}
	if started != 1 {
		t.Errorf("expected exactly one Start call to succeed, got %d", started)
	}

	waitForCompletion(t, d)
}

func TestDriverResultLifecycle(t *testing.T) {
	d := NewDriver(testConfig(), nil, nil, func(*Result) error { return nil })

	if _, err := d.Result(); !errors.Is(err, domain.ErrNoSolveRun) {
		t.Errorf("expected ErrNoSolveRun before any run, got %v", err)
	}

	if _, err := d.Start(testProblem()); err != nil {
		t.Fatalf("Start: %v", err)
	}

	if _, err := d.Result(); !errors.Is(err, domain.ErrSolveStillRunning) {
		t.Errorf("expected ErrSolveStillRunning during run, got %v", err)
	}

	waitForCompletion(t, d)

	if _, err := d.Result(); err != nil {
		t.Errorf("expected result after completion, got %v", err)
	}
}

func TestDriverPersistFailureKeepsResult(t *testing.T) {
	d := NewDriver(testConfig(), nil, nil, func(*Result) error {
		return errors.New("数据库不可用")
	})

	if _, err := d.Start(testProblem()); err != nil {
		t.Fatalf("Start: %v", err)
	}

	waitForCompletion(t, d)

	// 持久化失败不影响通过接口查询本次结果
	if _, err := d.Result(); err != nil {
		t.Errorf("expected result despite persist failure, got %v", err)
	}
}
