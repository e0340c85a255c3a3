package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/fesup-dev/forum-planner/backend/internal/domain"
	"github.com/fesup-dev/forum-planner/backend/internal/solver"
)

func (h *Handler) GetAllAssignments(w http.ResponseWriter, r *http.Request) {
	assignments, err := h.repository.GetAllAssignments()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取分配列表成功", assignments)
}

func (h *Handler) GetAssignment(w http.ResponseWriter, r *http.Request) {
	assignment := r.Context().Value(AssignmentInfoCtx).(*domain.Assignment)
	h.successResponse(w, r, "获取分配信息成功", assignment)
}

// StartSolve 把当前数据库中的目录、场次和志愿做成一次只读快照并在后台开始求解。
// 求解期间对目录数据的修改不会影响本次运行
func (h *Handler) StartSolve(w http.ResponseWriter, r *http.Request) {
	participants, err := h.repository.GetAllParticipants()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	activities, err := h.repository.GetAllActivities()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	rooms, err := h.repository.GetAllRooms()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	timeslots, err := h.repository.GetAllTimeslots()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	sessions, err := h.repository.GetAllSessions()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	preferences, err := h.repository.GetAllPreferences()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	problem := &solver.Problem{
		Participants: participants,
		Activities:   activities,
		Rooms:        rooms,
		Timeslots:    timeslots,
		Sessions:     sessions,
		Preferences:  preferences,
	}

	runID, err := h.driver.Start(problem)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNoSessions),
			errors.Is(err, domain.ErrNoParticipants),
			errors.Is(err, domain.ErrSolveAlreadyRunning):
			h.errorResponse(w, r, err.Error())
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "求解任务已启动", map[string]any{
		"runID": runID,
	})
}

func (h *Handler) GetSolveStatus(w http.ResponseWriter, r *http.Request) {
	assignmentCount, err := h.repository.CountAssignments()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	sessionCount, err := h.repository.CountSessions()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取求解状态成功", map[string]any{
		"running":        h.driver.Running(),
		"hasPriorResult": assignmentCount > 0,
		"sessionCount":   sessionCount,
	})
}

func (h *Handler) GetSolveResult(w http.ResponseWriter, r *http.Request) {
	result, err := h.driver.Result()
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrSolveStillRunning),
			errors.Is(err, domain.ErrNoSolveRun):
			h.errorResponse(w, r, err.Error())
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	assigned := 0
	for _, a := range result.Assignments {
		if a.SessionID != nil {
			assigned++
		}
	}

	// 持久化可能失败，完整的分配列表直接从求解结果返回，
	// 不依赖 GET /assignments 读到的库里数据
	h.successResponse(w, r, "获取求解结果成功", map[string]any{
		"runID":         result.RunID,
		"score":         result.Score,
		"assignedCount": assigned,
		"assignments":   result.Assignments,
		"duration":      result.Duration.String(),
	})
}

// OverrideAssignmentSession 是给组织者兜底用的强制改写接口：
// 不做任何约束校验，改完之后的分配方案可能不再可行
func (h *Handler) OverrideAssignmentSession(w http.ResponseWriter, r *http.Request) {
	assignment := r.Context().Value(AssignmentInfoCtx).(*domain.Assignment)

	var req struct {
		SessionID int64 `json:"sessionID" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := h.repository.OverrideAssignmentSession(assignment, req.SessionID); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "改写分配失败，请重试")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "改写分配成功", assignment)
}

func (h *Handler) PurgeAssignments(w http.ResponseWriter, r *http.Request) {
	if h.driver.Running() {
		h.errorResponse(w, r, domain.ErrSolveAlreadyRunning.Error())
		return
	}

	removed, err := h.repository.DeleteAllAssignments()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "清空分配成功", map[string]any{
		"removed": removed,
	})
}
