package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/fesup-dev/forum-planner/backend/internal/domain"
	"github.com/fesup-dev/forum-planner/backend/internal/utils"
)

func (h *Handler) GetAllParticipants(w http.ResponseWriter, r *http.Request) {
	participants, err := h.repository.GetAllParticipants()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取参与者列表成功", participants)
}

func (h *Handler) CreateParticipant(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ExternalID string `json:"externalID" validate:"required"`
		FullName   string `json:"fullName" validate:"required"`
		SchoolName string `json:"schoolName" validate:"required"`
		Group      string `json:"group" validate:"required,oneof=DAY1_MORNING DAY1_AFTERNOON DAY2_MORNING DAY2_AFTERNOON"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	participant := &domain.Participant{
		ExternalID: req.ExternalID,
		FullName:   req.FullName,
		SchoolName: req.SchoolName,
		Group:      domain.GroupKey(req.Group),
	}

	if err := h.repository.CreateParticipant(participant); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch {
			case pgErr.ConstraintName == "participants_external_id_key":
				h.badRequest(w, r, errors.New("该学籍号已登记"))
			default:
				h.internalServerError(w, r, err)
			}
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "参与者创建成功", participant)
}

func (h *Handler) GetParticipant(w http.ResponseWriter, r *http.Request) {
	participant := r.Context().Value(ParticipantInfoCtx).(*domain.Participant)
	h.successResponse(w, r, "获取参与者信息成功", participant)
}

func (h *Handler) UpdateParticipant(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FullName   *string `json:"fullName"`
		SchoolName *string `json:"schoolName"`
		Group      *string `json:"group" validate:"omitempty,oneof=DAY1_MORNING DAY1_AFTERNOON DAY2_MORNING DAY2_AFTERNOON"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	participant := r.Context().Value(ParticipantInfoCtx).(*domain.Participant)

	if req.FullName != nil {
		participant.FullName = *req.FullName
	}
	if req.SchoolName != nil {
		participant.SchoolName = *req.SchoolName
	}
	if req.Group != nil {
		// 换半天后原来的志愿不再有意义，要求重新提交
		if domain.GroupKey(*req.Group) != participant.Group && participant.PrefsSubmitted {
			h.errorResponse(w, r, "该参与者已提交志愿，不能直接更换半天分组")
			return
		}
		participant.Group = domain.GroupKey(*req.Group)
	}

	if err := h.repository.UpdateParticipant(participant); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "更新参与者信息失败，请重试")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "更新参与者信息成功", participant)
}

func (h *Handler) DeleteParticipant(w http.ResponseWriter, r *http.Request) {
	participant := r.Context().Value(ParticipantInfoCtx).(*domain.Participant)

	if err := h.repository.DeleteParticipant(participant.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "删除参与者成功", nil)
}

func (h *Handler) GetParticipantPreferences(w http.ResponseWriter, r *http.Request) {
	participant := r.Context().Value(ParticipantInfoCtx).(*domain.Participant)

	preferences, err := h.repository.GetPreferencesByParticipantID(participant.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取志愿成功", preferences)
}

func (h *Handler) SubmitParticipantPreferences(w http.ResponseWriter, r *http.Request) {
	participant := r.Context().Value(ParticipantInfoCtx).(*domain.Participant)

	if participant.PrefsSubmitted {
		h.errorResponse(w, r, "该参与者已提交过志愿")
		return
	}

	var req struct {
		Preferences []struct {
			ActivityID int64 `json:"activityID" validate:"required"`
			Rank       int   `json:"rank" validate:"required,min=1,max=5"`
		} `json:"preferences" validate:"required,dive"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	preferences := make([]*domain.Preference, len(req.Preferences))
	for i, p := range req.Preferences {
		preferences[i] = &domain.Preference{
			ParticipantID: participant.ID,
			ActivityID:    p.ActivityID,
			Rank:          p.Rank,
		}
	}

	activities, err := h.repository.GetAllActivities()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	activitiesByID := make(map[int64]*domain.Activity, len(activities))
	for _, a := range activities {
		activitiesByID[a.ID] = a
	}

	if err := utils.ValidatePreferenceSubmission(participant, preferences, activitiesByID); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := h.repository.ReplaceParticipantPreferences(participant, preferences); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "志愿提交成功", preferences)
}
