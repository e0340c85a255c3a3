package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/fesup-dev/forum-planner/backend/internal/domain"
)

func (h *Handler) GetAllActivities(w http.ResponseWriter, r *http.Request) {
	activities, err := h.repository.GetAllActivities()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取活动列表成功", activities)
}

func (h *Handler) CreateActivity(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title       string `json:"title" validate:"required"`
		Description string `json:"description"`
		Category    string `json:"category" validate:"required,oneof=HEADLINE_TALK PANEL MICRO_TALK"`
		Group       string `json:"group" validate:"required,oneof=DAY1_MORNING DAY1_AFTERNOON DAY2_MORNING DAY2_AFTERNOON"`
		MaxCapacity int    `json:"maxCapacity" validate:"required,min=1"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	activity := &domain.Activity{
		Title:       req.Title,
		Description: req.Description,
		Category:    domain.ActivityCategory(req.Category),
		Group:       domain.GroupKey(req.Group),
		MaxCapacity: req.MaxCapacity,
	}

	if err := h.repository.CreateActivity(activity); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "活动创建成功", activity)
}

func (h *Handler) GetActivity(w http.ResponseWriter, r *http.Request) {
	activity := r.Context().Value(ActivityInfoCtx).(*domain.Activity)
	h.successResponse(w, r, "获取活动信息成功", activity)
}

func (h *Handler) UpdateActivity(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
		Category    *string `json:"category" validate:"omitempty,oneof=HEADLINE_TALK PANEL MICRO_TALK"`
		Group       *string `json:"group" validate:"omitempty,oneof=DAY1_MORNING DAY1_AFTERNOON DAY2_MORNING DAY2_AFTERNOON"`
		MaxCapacity *int    `json:"maxCapacity" validate:"omitempty,min=1"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	activity := r.Context().Value(ActivityInfoCtx).(*domain.Activity)

	if req.Title != nil {
		activity.Title = *req.Title
	}
	if req.Description != nil {
		activity.Description = *req.Description
	}
	if req.Category != nil {
		activity.Category = domain.ActivityCategory(*req.Category)
	}
	if req.Group != nil {
		activity.Group = domain.GroupKey(*req.Group)
	}
	if req.MaxCapacity != nil {
		activity.MaxCapacity = *req.MaxCapacity
	}

	if err := h.repository.UpdateActivity(activity); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "更新活动信息失败，请重试")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "更新活动信息成功", activity)
}

func (h *Handler) DeleteActivity(w http.ResponseWriter, r *http.Request) {
	activity := r.Context().Value(ActivityInfoCtx).(*domain.Activity)

	if err := h.repository.DeleteActivity(activity.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "删除活动成功", nil)
}
