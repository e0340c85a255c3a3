package handler

import (
	"net/http"

	"github.com/fesup-dev/forum-planner/backend/internal/domain"
	"github.com/fesup-dev/forum-planner/backend/internal/generator"
)

func (h *Handler) GetAllSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.repository.GetAllSessions()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取场次列表成功", sessions)
}

// GenerateSessions 根据志愿统计重新生成全部场次。
// 已有的场次（连同基于它们的分配）会被整体替换
func (h *Handler) GenerateSessions(w http.ResponseWriter, r *http.Request) {
	if h.driver.Running() {
		h.errorResponse(w, r, domain.ErrSolveAlreadyRunning.Error())
		return
	}

	participantCount, err := h.repository.CountParticipants()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if participantCount == 0 {
		h.errorResponse(w, r, "尚未登记任何参与者，无法生成场次")
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
	participants, err := h.repository.GetAllParticipants()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	preferences, err := h.repository.GetAllPreferences()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	catalog := &generator.Catalog{
		Activities: activities,
		Rooms:      rooms,
		Timeslots:  timeslots,
	}

	sessions, summary := generator.Plan(catalog, participants, preferences, h.config.Generator.MaxSessionsPerActivity)

	previousRemoved, err := h.repository.ReplaceAllSessions(sessions)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "场次生成成功", map[string]any{
		"sessionsCreated": summary.TotalCreated,
		"perGroup":        summary.PerGroup,
		"shortfalls":      summary.Shortfalls,
		"previousRemoved": previousRemoved,
	})
}
