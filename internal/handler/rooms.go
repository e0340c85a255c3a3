package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/fesup-dev/forum-planner/backend/internal/domain"
)

func (h *Handler) GetAllRooms(w http.ResponseWriter, r *http.Request) {
	rooms, err := h.repository.GetAllRooms()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取教室列表成功", rooms)
}

func (h *Handler) CreateRoom(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name" validate:"required"`
		Capacity int    `json:"capacity" validate:"required,min=1"`
		Building string `json:"building"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	room := &domain.Room{
		Name:     req.Name,
		Capacity: req.Capacity,
		Building: req.Building,
	}

	if err := h.repository.CreateRoom(room); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "教室创建成功", room)
}

func (h *Handler) GetRoom(w http.ResponseWriter, r *http.Request) {
	room := r.Context().Value(RoomInfoCtx).(*domain.Room)
	h.successResponse(w, r, "获取教室信息成功", room)
}

func (h *Handler) UpdateRoom(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     *string `json:"name"`
		Capacity *int    `json:"capacity" validate:"omitempty,min=1"`
		Building *string `json:"building"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	room := r.Context().Value(RoomInfoCtx).(*domain.Room)

	if req.Name != nil {
		room.Name = *req.Name
	}
	if req.Capacity != nil {
		room.Capacity = *req.Capacity
	}
	if req.Building != nil {
		room.Building = *req.Building
	}

	if err := h.repository.UpdateRoom(room); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "更新教室信息失败，请重试")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "更新教室信息成功", room)
}

func (h *Handler) DeleteRoom(w http.ResponseWriter, r *http.Request) {
	room := r.Context().Value(RoomInfoCtx).(*domain.Room)

	if err := h.repository.DeleteRoom(room.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "删除教室成功", nil)
}
