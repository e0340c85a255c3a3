package domain

import "time"

type Participant struct {
	ID             int64     `json:"id"`
	ExternalID     string    `json:"externalID"` // 全国统一学籍号，例如 "120890177FA"
	FullName       string    `json:"fullName"`
	SchoolName     string    `json:"schoolName"`
	Group          GroupKey  `json:"group"`
	PrefsSubmitted bool      `json:"prefsSubmitted"`
	CreatedAt      time.Time `json:"createdAt"`
	Version        int32     `json:"-"`
}
