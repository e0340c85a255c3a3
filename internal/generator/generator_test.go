package generator

import (
	"reflect"
	"testing"

	"github.com/fesup-dev/forum-planner/backend/internal/domain"
)

func makeParticipants(n int, group domain.GroupKey) []*domain.Participant {
	participants := make([]*domain.Participant, n)
	for i := range participants {
		participants[i] = &domain.Participant{
			ID:    int64(i + 1),
			Group: group,
		}
	}
	return participants
}

func makePreferences(participants []*domain.Participant, activityID int64, rank int) []*domain.Preference {
	preferences := make([]*domain.Preference, len(participants))
	for i, p := range participants {
		preferences[i] = &domain.Preference{
			ParticipantID: p.ID,
			ActivityID:    activityID,
			Rank:          rank,
		}
	}
	return preferences
}

func makeTimeslots(n int, group domain.GroupKey) []*domain.Timeslot {
	timeslots := make([]*domain.Timeslot, n)
	for i := range timeslots {
		timeslots[i] = &domain.Timeslot{
			ID:        int64(i + 1),
			StartTime: "09:00:00",
			EndTime:   "09:45:00",
			Group:     group,
		}
	}
	return timeslots
}

func makeRooms(n int, capacity int) []*domain.Room {
	rooms := make([]*domain.Room, n)
	for i := range rooms {
		rooms[i] = &domain.Room{
			ID:       int64(i + 1),
			Capacity: capacity,
		}
	}
	return rooms
}

func TestPlanMandatoryDemandDrivesSessionCount(t *testing.T) {
	activity := &domain.Activity{
		ID:          1,
		Category:    domain.CategoryHeadlineTalk,
		Group:       domain.GroupDay1Morning,
		MaxCapacity: 10,
	}
	catalog := &Catalog{
		Activities: []*domain.Activity{activity},
		Rooms:      makeRooms(3, 30),
		Timeslots:  makeTimeslots(4, domain.GroupDay1Morning),
	}

	// 12 个 1 志愿，容量 10 => 需要 2 场
	participants := makeParticipants(12, domain.GroupDay1Morning)
	preferences := makePreferences(participants, activity.ID, 1)

	sessions, summary := Plan(catalog, participants, preferences, 5)

	if len(sessions) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(sessions))
	}
	if summary.TotalCreated != 2 {
		t.Errorf("expected TotalCreated 2, got %d", summary.TotalCreated)
	}
	if len(summary.Shortfalls) != 0 {
		t.Errorf("expected no shortfalls, got %v", summary.Shortfalls)
	}
	for _, s := range sessions {
		if s.Capacity != 10 {
			t.Errorf("expected session capacity 10 (activity cap below room cap), got %d", s.Capacity)
		}
	}
}

// 在未触及每活动场次上限时，必须满足的志愿数每增加一个容量，场次数恰好加一
func TestPlanMandatoryDemandMonotonicity(t *testing.T) {
	tests := []struct {
		name         string
		mandatory    int
		wantSessions int
	}{
		{"12 个志愿需要 2 场", 12, 2},
		{"增加一个容量后需要 3 场", 22, 3},
		{"再增加一个容量后需要 4 场", 32, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			activity := &domain.Activity{
				ID:          1,
				Category:    domain.CategoryHeadlineTalk,
				Group:       domain.GroupDay1Morning,
				MaxCapacity: 10,
			}
			catalog := &Catalog{
				Activities: []*domain.Activity{activity},
				Rooms:      makeRooms(3, 30),
				Timeslots:  makeTimeslots(4, domain.GroupDay1Morning),
			}

			participants := makeParticipants(tt.mandatory, domain.GroupDay1Morning)
			preferences := makePreferences(participants, activity.ID, 1)

			sessions, summary := Plan(catalog, participants, preferences, 5)

			if len(sessions) != tt.wantSessions {
				t.Errorf("expected %d sessions, got %d", tt.wantSessions, len(sessions))
			}
			if len(summary.Shortfalls) != 0 {
				t.Errorf("expected no shortfalls, got %v", summary.Shortfalls)
			}
		})
	}
}

func TestPlanOptionalOverflowAddsExtraSession(t *testing.T) {
	activity := &domain.Activity{
		ID:          1,
		Category:    domain.CategoryHeadlineTalk,
		Group:       domain.GroupDay1Morning,
		MaxCapacity: 10,
	}
	catalog := &Catalog{
		Activities: []*domain.Activity{activity},
		Rooms:      makeRooms(3, 30),
		Timeslots:  makeTimeslots(4, domain.GroupDay1Morning),
	}

	// 10 个必须满足的志愿刚好占满一场，11 个加分志愿超出一个容量 => 额外加一场
	participants := makeParticipants(21, domain.GroupDay1Morning)
	preferences := makePreferences(participants[:10], activity.ID, 1)
	preferences = append(preferences, makePreferences(participants[10:], activity.ID, 3)...)

	sessions, _ := Plan(catalog, participants, preferences, 5)

	if len(sessions) != 2 {
		t.Fatalf("expected 2 sessions (1 mandatory + 1 overflow), got %d", len(sessions))
	}
}

func TestPlanCategoryFloors(t *testing.T) {
	tests := []struct {
		name     string
		category domain.ActivityCategory
		total    int
		want     int
	}{
		{"headline talk with any demand", domain.CategoryHeadlineTalk, 1, 1},
		{"panel below threshold", domain.CategoryPanel, 4, 0},
		{"panel at threshold", domain.CategoryPanel, 5, 1},
		{"micro talk below threshold", domain.CategoryMicroTalk, 2, 0},
		{"micro talk at threshold", domain.CategoryMicroTalk, 3, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			activity := &domain.Activity{
				ID:          1,
				Category:    tt.category,
				Group:       domain.GroupDay1Morning,
				MaxCapacity: 30,
			}
			catalog := &Catalog{
				Activities: []*domain.Activity{activity},
				Rooms:      makeRooms(2, 40),
				Timeslots:  makeTimeslots(4, domain.GroupDay1Morning),
			}

			// 全部都是加分志愿，场次数完全由保底规则决定
			participants := makeParticipants(tt.total, domain.GroupDay1Morning)
			preferences := makePreferences(participants, activity.ID, 3)

			sessions, _ := Plan(catalog, participants, preferences, 5)

			if len(sessions) != tt.want {
				t.Errorf("expected %d sessions, got %d", tt.want, len(sessions))
			}
		})
	}
}

func TestPlanCapsSessionsPerActivity(t *testing.T) {
	activity := &domain.Activity{
		ID:          1,
		Category:    domain.CategoryHeadlineTalk,
		Group:       domain.GroupDay1Morning,
		MaxCapacity: 1,
	}
	catalog := &Catalog{
		Activities: []*domain.Activity{activity},
		Rooms:      makeRooms(2, 30),
		Timeslots:  makeTimeslots(4, domain.GroupDay1Morning),
	}

	// 容量 1、12 个 1 志愿本来需要 12 场，上限压到 5 场
	participants := makeParticipants(12, domain.GroupDay1Morning)
	preferences := makePreferences(participants, activity.ID, 1)

	sessions, _ := Plan(catalog, participants, preferences, 5)

	if len(sessions) != 5 {
		t.Fatalf("expected 5 sessions (capped), got %d", len(sessions))
	}
}

func TestPlanUniqueTimeslotRoomPairs(t *testing.T) {
	activities := []*domain.Activity{
		{ID: 1, Category: domain.CategoryHeadlineTalk, Group: domain.GroupDay1Morning, MaxCapacity: 2},
		{ID: 2, Category: domain.CategoryHeadlineTalk, Group: domain.GroupDay1Morning, MaxCapacity: 2},
	}
	catalog := &Catalog{
		Activities: activities,
		Rooms:      makeRooms(3, 30),
		Timeslots:  makeTimeslots(4, domain.GroupDay1Morning),
	}

	participants := makeParticipants(8, domain.GroupDay1Morning)
	preferences := makePreferences(participants[:4], 1, 1)
	preferences = append(preferences, makePreferences(participants[4:], 2, 1)...)

	sessions, _ := Plan(catalog, participants, preferences, 5)

	seen := make(map[[2]int64]bool)
	for _, s := range sessions {
		key := [2]int64{s.TimeslotID, s.RoomID}
		if seen[key] {
			t.Fatalf("duplicate (timeslot, room) pair: %v", key)
		}
		seen[key] = true
	}
}

func TestPlanShortfallWithoutRooms(t *testing.T) {
	activity := &domain.Activity{
		ID:          1,
		Category:    domain.CategoryHeadlineTalk,
		Group:       domain.GroupDay1Morning,
		MaxCapacity: 10,
	}
	catalog := &Catalog{
		Activities: []*domain.Activity{activity},
		Rooms:      nil,
		Timeslots:  makeTimeslots(4, domain.GroupDay1Morning),
	}

	participants := makeParticipants(12, domain.GroupDay1Morning)
	preferences := makePreferences(participants, activity.ID, 1)

	sessions, summary := Plan(catalog, participants, preferences, 5)

	if len(sessions) != 0 {
		t.Fatalf("expected no sessions without rooms, got %d", len(sessions))
	}
	if len(summary.Shortfalls) != 1 {
		t.Fatalf("expected 1 shortfall, got %d", len(summary.Shortfalls))
	}
	if summary.Shortfalls[0].Missing != 2 {
		t.Errorf("expected 2 missing sessions, got %d", summary.Shortfalls[0].Missing)
	}
}

func TestPlanShortfallWhenCombinationsExhausted(t *testing.T) {
	activity := &domain.Activity{
		ID:          1,
		Category:    domain.CategoryHeadlineTalk,
		Group:       domain.GroupDay1Morning,
		MaxCapacity: 1,
	}
	catalog := &Catalog{
		Activities: []*domain.Activity{activity},
		Rooms:      makeRooms(1, 30),
		Timeslots:  makeTimeslots(1, domain.GroupDay1Morning),
	}

	// 需要 2 场，但只有 1 个 (时间段, 教室) 组合
	participants := makeParticipants(2, domain.GroupDay1Morning)
	preferences := makePreferences(participants, activity.ID, 1)

	sessions, summary := Plan(catalog, participants, preferences, 5)

	if len(sessions) != 1 {
		t.Fatalf("expected 1 session, got %d", len(sessions))
	}
	if len(summary.Shortfalls) != 1 || summary.Shortfalls[0].Missing != 1 {
		t.Fatalf("expected shortfall of 1 missing session, got %v", summary.Shortfalls)
	}
}

func TestPlanPrefersRoomsWithEnoughCapacity(t *testing.T) {
	activity := &domain.Activity{
		ID:          1,
		Category:    domain.CategoryHeadlineTalk,
		Group:       domain.GroupDay1Morning,
		MaxCapacity: 20,
	}
	smallRoom := &domain.Room{ID: 1, Capacity: 5}
	bigRoom := &domain.Room{ID: 2, Capacity: 40}
	catalog := &Catalog{
		Activities: []*domain.Activity{activity},
		Rooms:      []*domain.Room{smallRoom, bigRoom},
		Timeslots:  makeTimeslots(4, domain.GroupDay1Morning),
	}

	participants := makeParticipants(10, domain.GroupDay1Morning)
	preferences := makePreferences(participants, activity.ID, 1)

	sessions, _ := Plan(catalog, participants, preferences, 5)

	if len(sessions) != 1 {
		t.Fatalf("expected 1 session, got %d", len(sessions))
	}
	if sessions[0].RoomID != bigRoom.ID {
		t.Errorf("expected session in room %d (enough capacity), got %d", bigRoom.ID, sessions[0].RoomID)
	}
	if sessions[0].Capacity != 20 {
		t.Errorf("expected session capacity 20, got %d", sessions[0].Capacity)
	}
}

func TestPlanDeterministic(t *testing.T) {
	activities := []*domain.Activity{
		{ID: 1, Category: domain.CategoryHeadlineTalk, Group: domain.GroupDay1Morning, MaxCapacity: 3},
		{ID: 2, Category: domain.CategoryHeadlineTalk, Group: domain.GroupDay1Morning, MaxCapacity: 3},
		{ID: 3, Category: domain.CategoryMicroTalk, Group: domain.GroupDay1Morning, MaxCapacity: 3},
	}
	catalog := &Catalog{
		Activities: activities,
		Rooms:      makeRooms(3, 30),
		Timeslots:  makeTimeslots(4, domain.GroupDay1Morning),
	}

	// 活动 1 和活动 2 的志愿数相同，处理顺序必须稳定
	participants := makeParticipants(9, domain.GroupDay1Morning)
	preferences := makePreferences(participants[:3], 1, 1)
	preferences = append(preferences, makePreferences(participants[3:6], 2, 1)...)
	preferences = append(preferences, makePreferences(participants[6:], 3, 1)...)

	first, _ := Plan(catalog, participants, preferences, 5)
	second, _ := Plan(catalog, participants, preferences, 5)

	if !reflect.DeepEqual(first, second) {
		t.Fatal("expected identical output for identical input")
	}
}

func TestPlanSkipsInvalidCapacity(t *testing.T) {
	activity := &domain.Activity{
		ID:          1,
		Category:    domain.CategoryHeadlineTalk,
		Group:       domain.GroupDay1Morning,
		MaxCapacity: 0,
	}
	catalog := &Catalog{
		Activities: []*domain.Activity{activity},
		Rooms:      makeRooms(2, 30),
		Timeslots:  makeTimeslots(4, domain.GroupDay1Morning),
	}

	participants := makeParticipants(5, domain.GroupDay1Morning)
	preferences := makePreferences(participants, activity.ID, 1)

	sessions, _ := Plan(catalog, participants, preferences, 5)

	if len(sessions) != 0 {
		t.Fatalf("expected no sessions for zero-capacity activity, got %d", len(sessions))
	}
}
