package utils

import (
	"testing"

	"github.com/fesup-dev/forum-planner/backend/internal/domain"
)

func TestValidateTimeslotTime(t *testing.T) {
	tests := []struct {
		name      string
		startTime string
		endTime   string
		wantErr   bool
	}{
		{"valid", "09:00:00", "09:45:00", false},
		{"end before start", "10:00:00", "09:00:00", true},
		{"zero length", "09:00:00", "09:00:00", true},
		{"bad start format", "9am", "09:45:00", true},
		{"bad end format", "09:00:00", "late", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			timeslot := &domain.Timeslot{
				StartTime: tt.startTime,
				EndTime:   tt.endTime,
			}
			err := ValidateTimeslotTime(timeslot)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateTimeslotTime() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidatePreferenceSubmission(t *testing.T) {
	participant := &domain.Participant{ID: 1, Group: domain.GroupDay1Morning}
	activities := map[int64]*domain.Activity{
		1: {ID: 1, Group: domain.GroupDay1Morning},
		2: {ID: 2, Group: domain.GroupDay1Morning},
		3: {ID: 3, Group: domain.GroupDay2Afternoon},
	}

	pref := func(activityID int64, rank int) *domain.Preference {
		return &domain.Preference{ParticipantID: 1, ActivityID: activityID, Rank: rank}
	}

	tests := []struct {
		name        string
		preferences []*domain.Preference
		wantErr     bool
	}{
		{"valid two preferences", []*domain.Preference{pref(1, 1), pref(2, 2)}, false},
		{"empty", []*domain.Preference{}, true},
		{"rank out of range", []*domain.Preference{pref(1, 6)}, true},
		{"rank zero", []*domain.Preference{pref(1, 0)}, true},
		{"duplicate rank", []*domain.Preference{pref(1, 1), pref(2, 1)}, true},
		{"duplicate activity", []*domain.Preference{pref(1, 1), pref(1, 2)}, true},
		{"unknown activity", []*domain.Preference{pref(99, 1)}, true},
		{"activity in other group", []*domain.Preference{pref(3, 1)}, true},
		{
			"too many preferences",
			[]*domain.Preference{pref(1, 1), pref(2, 2), pref(3, 3), pref(1, 4), pref(2, 5), pref(3, 1)},
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePreferenceSubmission(participant, tt.preferences, activities)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePreferenceSubmission() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
