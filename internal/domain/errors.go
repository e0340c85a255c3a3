package domain

import "errors"

// 求解前输入校验失败的错误，必须在搜索开始之前同步返回给调用者
var (
	ErrNoSessions     = errors.New("还没有生成任何场次，请先生成场次")
	ErrNoParticipants = errors.New("数据库中没有任何参与者")

	ErrSolveAlreadyRunning = errors.New("已有求解任务正在运行")
	ErrSolveStillRunning   = errors.New("求解任务仍在运行中")
	ErrNoSolveRun          = errors.New("还没有任何已完成的求解任务")
)
