package solver

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	"github.com/fesup-dev/forum-planner/backend/internal/config"
	"github.com/fesup-dev/forum-planner/backend/internal/domain"
)

const solveLockKey = "solver:running"

// Result 是一次完成的求解运行的产物
type Result struct {
	RunID       string
	Score       domain.Score
	Assignments []*domain.Assignment
	Duration    time.Duration
}

// PersistFunc 在求解成功后被调用，把结果写入存储
type PersistFunc func(result *Result) error

type run struct {
	id        string
	done      chan struct{}
	completed bool
	result    *Result
	err       error
}

// Driver 负责求解运行的生命周期：启动、并发互斥、结果保存和通知。
// 同一时刻只有最新一次运行是"当前运行"，被新运行取代的旧运行完成后直接丢弃结果
type Driver struct {
	cfg         *config.Config
	redisClient *redis.Client
	mailChannel *amqp.Channel
	persist     PersistFunc

	mu        sync.Mutex
	runs      map[string]*run
	currentID string
}

func NewDriver(cfg *config.Config, redisClient *redis.Client, mailChannel *amqp.Channel, persist PersistFunc) *Driver {
	return &Driver{
		cfg:         cfg,
		redisClient: redisClient,
		mailChannel: mailChannel,
		persist:     persist,
		runs:        make(map[string]*run),
	}
}

// Start 校验输入、抢占分布式锁并在后台启动求解，立刻返回运行 ID
func (d *Driver) Start(problem *Problem) (string, error) {
	if len(problem.Sessions) == 0 {
		return "", domain.ErrNoSessions
	}
	if len(problem.Participants) == 0 {
		return "", domain.ErrNoParticipants
	}

	evaluator, err := NewEvaluator(problem)
	if err != nil {
		return "", err
	}

	runID := uuid.NewString()

	if err := d.acquireLock(runID); err != nil {
		return "", err
	}

	r, err := d.register(runID)
	if err != nil {
		d.releaseLock(runID)
		return "", err
	}

	params := &Parameters{
		TimeBudget:     time.Duration(d.cfg.Solver.TimeBudget) * time.Second,
		Patience:       d.cfg.Solver.Patience,
		TempHigh:       d.cfg.Solver.TempHigh,
		TempLow:        d.cfg.Solver.TempLow,
		UnassignChance: d.cfg.Solver.UnassignChance,
	}

	go d.solve(r, problem, evaluator, params)

	return runID, nil
}

// Running 报告当前是否有尚未完成的运行
func (d *Driver) Running() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.currentID == "" {
		return false
	}

	r, ok := d.runs[d.currentID]
	return ok && !r.completed
}

// Result 返回当前运行的结果。运行仍在进行或从未启动过都是错误
func (d *Driver) Result() (*Result, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.currentID == "" {
		return nil, domain.ErrNoSolveRun
	}

	r, ok := d.runs[d.currentID]
	if !ok {
		return nil, domain.ErrNoSolveRun
	}
	if !r.completed {
		return nil, domain.ErrSolveStillRunning
	}
	if r.result == nil {
		return nil, r.err
	}

	return r.result, nil
}

func (d *Driver) solve(r *run, problem *Problem, evaluator *Evaluator, params *Parameters) {
	defer func() {
		if p := recover(); p != nil {
			slog.Error("求解过程中发生 panic，本次运行已中止", "runID", r.id, "panic", p)
			d.mu.Lock()
			r.err = fmt.Errorf("求解过程中发生 panic: %v", p)
			d.mu.Unlock()
		}

		d.releaseLock(r.id)

		d.mu.Lock()
		r.completed = true
		d.mu.Unlock()
		close(r.done)
	}()

	slog.Info("开始求解", "runID", r.id,
		"participants", len(problem.Participants),
		"sessions", len(problem.Sessions),
		"timeBudget", params.TimeBudget)

	start := time.Now()
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	solution, score := evaluator.Search(params, rng)

	result := &Result{
		RunID:       r.id,
		Score:       score,
		Assignments: problem.Assignments(solution),
		Duration:    time.Since(start),
	}

	d.mu.Lock()
	superseded := d.currentID != r.id
	if !superseded {
		r.result = result
	}
	d.mu.Unlock()

	if superseded {
		slog.Info("运行已被新的运行取代，结果丢弃", "runID", r.id)
		return
	}

	slog.Info("求解完成", "runID", r.id, "score", score.String(), "duration", result.Duration)

	if err := d.persist(result); err != nil {
		// 持久化失败时库里保留的仍是上一次的结果，本次结果只能通过接口查询
		slog.Error("保存求解结果失败", "runID", r.id, "error", err)
	}

	d.publishReport(result)
}

// register 在同一个临界区里完成"是否已有运行"的检查和新运行的登记，
// 没有配置 Redis 时并发的 Start 调用完全靠这里互斥
func (d *Driver) register(runID string) (*run, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.currentID != "" {
		if prev, ok := d.runs[d.currentID]; ok && !prev.completed {
			return nil, domain.ErrSolveAlreadyRunning
		}
	}

	// 旧的运行记录不再可查询，连同已完成的结果一起清掉
	for id := range d.runs {
		delete(d.runs, id)
	}

	r := &run{id: runID, done: make(chan struct{})}
	d.runs[runID] = r
	d.currentID = runID

	return r, nil
}

// acquireLock 用 Redis 锁挡住跨进程的并发求解请求。
// 没有配置 Redis 时互斥完全由 register 里的本进程状态承担
func (d *Driver) acquireLock(runID string) error {
	if d.redisClient == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	ttl := time.Duration(d.cfg.Solver.TimeBudget)*time.Second + 30*time.Second
	ok, err := d.redisClient.SetNX(ctx, solveLockKey, runID, ttl).Result()
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrSolveAlreadyRunning
	}

	return nil
}

func (d *Driver) releaseLock(runID string) {
	if d.redisClient == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// 只释放自己持有的锁，避免误删后继运行刚抢到的锁
	holder, err := d.redisClient.Get(ctx, solveLockKey).Result()
	if err != nil || holder != runID {
		return
	}

	if err := d.redisClient.Del(ctx, solveLockKey).Err(); err != nil {
		slog.Error("释放求解锁失败", "runID", runID, "error", err)
	}
}

// publishReport 把结果摘要投递到邮件队列，通知初始管理员
func (d *Driver) publishReport(result *Result) {
	if d.mailChannel == nil {
		return
	}

	assigned := 0
	for _, a := range result.Assignments {
		if a.SessionID != nil {
			assigned++
		}
	}

	message := domain.MailMessage{
		Type: "solve_report",
		To:   d.cfg.InitialAdmin.Email,
		Data: domain.SolveReportMailData{
			RunID:         result.RunID,
			HardScore:     result.Score.Hard,
			SoftScore:     result.Score.Soft,
			AssignedCount: assigned,
			Duration:      result.Duration.String(),
		},
	}

	body, err := json.Marshal(message)
	if err != nil {
		slog.Error("序列化求解报告邮件失败", "runID", result.RunID, "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(d.cfg.RabbitMQ.PublishTimeout)*time.Second)
	defer cancel()

	if err := d.mailChannel.PublishWithContext(
		ctx,
		"",
		"email_queue",
		true,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	); err != nil {
		slog.Error("投递求解报告邮件失败", "runID", result.RunID, "error", err)
	}
}
