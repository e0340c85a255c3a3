package seed

import (
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/fesup-dev/forum-planner/backend/internal/domain"
	"github.com/fesup-dev/forum-planner/backend/internal/repository"
	"github.com/fesup-dev/forum-planner/backend/internal/utils"
)

// 每个半天固定 4 个时间段，和参与者的槽位数量一致
var timeslotTemplates = []struct {
	Label     string
	StartTime string
	EndTime   string
}{
	{"第 1 节", "09:00:00", "09:45:00"},
	{"第 2 节", "10:00:00", "10:45:00"},
	{"第 3 节", "11:00:00", "11:45:00"},
	{"第 4 节", "12:00:00", "12:45:00"},
}

var afternoonTimeslotTemplates = []struct {
	Label     string
	StartTime string
	EndTime   string
}{
	{"第 1 节", "14:00:00", "14:45:00"},
	{"第 2 节", "15:00:00", "15:45:00"},
	{"第 3 节", "16:00:00", "16:45:00"},
	{"第 4 节", "17:00:00", "17:45:00"},
}

var activityTitles = map[domain.ActivityCategory][]string{
	domain.CategoryHeadlineTalk: {"人工智能与未来职业", "医学生涯分享", "航空航天工程入门", "法律职业面面观", "金融行业全景"},
	domain.CategoryPanel:        {"创业者圆桌", "工程师圆桌", "教育工作者圆桌", "媒体人圆桌"},
	domain.CategoryMicroTalk:    {"十分钟了解设计", "十分钟了解编程", "十分钟了解建筑", "十分钟了解心理学", "十分钟了解餐饮业"},
}

// SeedCatalog 插入一组演示用的教室、时间段和活动
func SeedCatalog(repo *repository.Repository, roomCount int) {
	cnt := 0
	for i := 0; i < roomCount; i++ {
		room := &domain.Room{
			Name:     fmt.Sprintf("%d0%d 教室", i/5+1, i%5+1),
			Capacity: []int{20, 25, 30, 40, 60}[rand.Intn(5)],
			Building: []string{"主楼", "科学楼", "图书馆"}[rand.Intn(3)],
		}
		if err := repo.CreateRoom(room); err != nil {
			slog.Error("无法插入教室", "error", err)
			continue
		}
		cnt++
	}
	slog.Info("插入教室成功", "count", cnt)

	cnt = 0
	for _, group := range domain.AllGroupKeys {
		templates := timeslotTemplates
		if group == domain.GroupDay1Afternoon || group == domain.GroupDay2Afternoon {
			templates = afternoonTimeslotTemplates
		}

		for _, t := range templates {
			timeslot := &domain.Timeslot{
				Label:     t.Label,
				StartTime: t.StartTime,
				EndTime:   t.EndTime,
				Group:     group,
			}
			if err := repo.CreateTimeslot(timeslot); err != nil {
				slog.Error("无法插入时间段", "error", err)
				continue
			}
			cnt++
		}
	}
	slog.Info("插入时间段成功", "count", cnt)

	cnt = 0
	for _, group := range domain.AllGroupKeys {
		for category, titles := range activityTitles {
			for _, title := range titles {
				activity := &domain.Activity{
					Title:       title,
					Description: "演示数据：" + title,
					Category:    category,
					Group:       group,
					MaxCapacity: []int{15, 20, 25, 30}[rand.Intn(4)],
				}
				if err := repo.CreateActivity(activity); err != nil {
					slog.Error("无法插入活动", "error", err)
					continue
				}
				cnt++
			}
		}
	}
	slog.Info("插入活动成功", "count", cnt)
}

// SeedParticipants 插入 n 个随机参与者，平均分布到各个半天
func SeedParticipants(repo *repository.Repository, n int) {
	cnt := 0
	for i := 0; i < n; i++ {
		group := domain.AllGroupKeys[i%len(domain.AllGroupKeys)]
		participant := utils.GenerateRandomParticipant(group)
		if err := repo.CreateParticipant(participant); err != nil {
			slog.Error("无法插入参与者", "error", err)
			continue
		}
		cnt++
	}
	slog.Info("插入参与者成功", "count", cnt)
}

// SeedPreferences 为所有还没提交志愿的参与者生成一套随机志愿
func SeedPreferences(repo *repository.Repository) {
	participants, err := repo.GetAllParticipants()
	if err != nil {
		slog.Error("无法获取参与者列表", "error", err)
		return
	}

	activities, err := repo.GetAllActivities()
	if err != nil {
		slog.Error("无法获取活动列表", "error", err)
		return
	}

	activitiesByGroup := make(map[domain.GroupKey][]*domain.Activity)
	for _, a := range activities {
		activitiesByGroup[a.Group] = append(activitiesByGroup[a.Group], a)
	}

	cnt := 0
	for _, participant := range participants {
		if participant.PrefsSubmitted {
			continue
		}

		candidates := activitiesByGroup[participant.Group]
		if len(candidates) == 0 {
			slog.Warn("该半天没有任何活动，跳过", "group", participant.Group)
			continue
		}

		count := rand.Intn(domain.MaxPreferenceRank) + 1
		preferences := utils.GenerateRandomPreferences(participant, candidates, count)

		if err := repo.ReplaceParticipantPreferences(participant, preferences); err != nil {
			slog.Error("无法插入志愿", "error", err, "participantID", participant.ID)
			continue
		}
		cnt++
	}
	slog.Info("插入志愿成功", "count", cnt)
}
