package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/fesup-dev/forum-planner/backend/internal/domain"
	"github.com/fesup-dev/forum-planner/backend/internal/utils"
)

func (h *Handler) GetAllTimeslots(w http.ResponseWriter, r *http.Request) {
	timeslots, err := h.repository.GetAllTimeslots()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取时间段列表成功", timeslots)
}

func (h *Handler) CreateTimeslot(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Label     string `json:"label" validate:"required"`
		StartTime string `json:"startTime" validate:"required"`
		EndTime   string `json:"endTime" validate:"required"`
		Group     string `json:"group" validate:"required,oneof=DAY1_MORNING DAY1_AFTERNOON DAY2_MORNING DAY2_AFTERNOON"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	timeslot := &domain.Timeslot{
		Label:     req.Label,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Group:     domain.GroupKey(req.Group),
	}

	if err := utils.ValidateTimeslotTime(timeslot); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := h.repository.CreateTimeslot(timeslot); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "时间段创建成功", timeslot)
}

func (h *Handler) GetTimeslot(w http.ResponseWriter, r *http.Request) {
	timeslot := r.Context().Value(TimeslotInfoCtx).(*domain.Timeslot)
	h.successResponse(w, r, "获取时间段信息成功", timeslot)
}

func (h *Handler) UpdateTimeslot(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Label     *string `json:"label"`
		StartTime *string `json:"startTime"`
		EndTime   *string `json:"endTime"`
		Group     *string `json:"group" validate:"omitempty,oneof=DAY1_MORNING DAY1_AFTERNOON DAY2_MORNING DAY2_AFTERNOON"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	timeslot := r.Context().Value(TimeslotInfoCtx).(*domain.Timeslot)

	if req.Label != nil {
		timeslot.Label = *req.Label
	}
	if req.StartTime != nil {
		timeslot.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		timeslot.EndTime = *req.EndTime
	}
	if req.Group != nil {
		timeslot.Group = domain.GroupKey(*req.Group)
	}

	if err := utils.ValidateTimeslotTime(timeslot); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := h.repository.UpdateTimeslot(timeslot); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "更新时间段信息失败，请重试")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "更新时间段信息成功", timeslot)
}

func (h *Handler) DeleteTimeslot(w http.ResponseWriter, r *http.Request) {
	timeslot := r.Context().Value(TimeslotInfoCtx).(*domain.Timeslot)

	if err := h.repository.DeleteTimeslot(timeslot.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "删除时间段成功", nil)
}
