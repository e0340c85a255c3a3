package utils

import (
	"fmt"
	"math/rand"

	"github.com/mozillazg/go-pinyin"
	"golang.org/x/crypto/bcrypt"

	"github.com/fesup-dev/forum-planner/backend/internal/domain"
)

var commonSurnames = []string{
	"王", "李", "张", "刘", "陈", "杨", "赵", "黄", "周", "吴",
	"徐", "孙", "胡", "朱", "高", "林", "何", "郭", "马", "罗",
}
var commonNameCharacters = []string{
	"伟", "强", "芳", "敏", "静", "丽", "刚", "杰", "娟", "勇",
	"艳", "涛", "明", "军", "磊", "洋", "勇", "霞", "飞", "玲",
	"超", "华", "平", "辉", "梅", "鑫", "龙", "鹏", "玉", "斌",
	"庆", "建", "丹", "彬", "凤", "旭", "宁", "乐", "成", "欣",
}

func GenerateRandomChineseName() string {
	surname := commonSurnames[rand.Intn(len(commonSurnames))]
	nameLength := rand.Intn(2) + 1
	name := ""

	for i := 0; i < nameLength; i++ {
		name += commonNameCharacters[rand.Intn(len(commonNameCharacters))]
	}
	return surname + name
}

var digits = "0123456789"

func GenerateUsernameFromChineseName(chineseName string) string {
	pinyinArray := pinyin.LazyConvert(chineseName, nil)
	username := ""

	for _, pinyin := range pinyinArray {
		length := rand.Intn(len(pinyin)) + 1
		username += pinyin[:length]
	}

	digitsLength := rand.Intn(3) + 1
	for i := 0; i < digitsLength; i++ {
		username += string(digits[rand.Intn(len(digits))])
	}

	return username
}

func GenerateRandomUser(password string, emailDomainName string, role domain.Role) (*domain.User, error) {
	fullName := GenerateRandomChineseName()
	username := GenerateUsernameFromChineseName(fullName)
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: string(passwordHash),
		FullName:     fullName,
		Email:        username + "@" + emailDomainName,
		Role:         role,
		IsActive:     true,
	}

	return user, nil
}

func GenerateRandomOTP() string {
	return fmt.Sprintf("%06d", rand.Intn(1000000))
}

var letters = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*")

func GenerateRandomPassword(length int) string {
	random_password := make([]rune, length)
	for i := range random_password {
		random_password[i] = letters[rand.Intn(len(letters))]
	}
	return string(random_password)
}

var upperLetters = []rune("ABCDEFGHIJKLMNOPQRSTUVWXYZ")

// GenerateRandomExternalID 生成一个形如 "120890177FA" 的学籍号：9 位数字加 2 位大写字母
func GenerateRandomExternalID() string {
	external_id := make([]rune, 11)
	for i := range external_id {
		if i < 9 {
			external_id[i] = rune(digits[rand.Intn(len(digits))])
		} else {
			external_id[i] = upperLetters[rand.Intn(len(upperLetters))]
		}
	}
	return string(external_id)
}

var schoolSuffixes = []string{"第一中学", "第二中学", "实验中学", "外国语学校", "高级中学"}

func GenerateRandomParticipant(group domain.GroupKey) *domain.Participant {
	return &domain.Participant{
		ExternalID: GenerateRandomExternalID(),
		FullName:   GenerateRandomChineseName(),
		SchoolName: GenerateRandomChineseName() + schoolSuffixes[rand.Intn(len(schoolSuffixes))],
		Group:      group,
	}
}

// GenerateRandomPreferences 从给定活动中随机挑选若干个，按 1 开始的连续志愿序生成志愿
func GenerateRandomPreferences(participant *domain.Participant, activities []*domain.Activity, count int) []*domain.Preference {
	if count > len(activities) {
		count = len(activities)
	}
	if count > domain.MaxPreferenceRank {
		count = domain.MaxPreferenceRank
	}

	// Fisher-Yates 洗牌后取前 count 个活动
	shuffled := append([]*domain.Activity{}, activities...)
	for i := len(shuffled) - 1; i > 0; i-- {
		j := rand.Intn(i + 1)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}

	preferences := make([]*domain.Preference, count)
	for i := 0; i < count; i++ {
		preferences[i] = &domain.Preference{
			ParticipantID: participant.ID,
			ActivityID:    shuffled[i].ID,
			Rank:          i + 1,
		}
	}

	return preferences
}
