package domain

// Preference 表示参与者对某个活动的一条志愿，Rank 取值 1..5
// 其中 1、2 志愿视为必须满足（未满足会受到很重的软约束惩罚），
// 3、4、5 志愿视为加分项（满足会获得奖励）
type Preference struct {
	ID            int64 `json:"id"`
	ParticipantID int64 `json:"participantID"`
	ActivityID    int64 `json:"activityID"`
	Rank          int   `json:"rank"`
}

const (
	MinPreferenceRank = 1
	MaxPreferenceRank = 5

	// Rank 小于等于这个值的志愿视为必须满足
	MandatoryRankCeiling = 2
)

func (p *Preference) IsMandatory() bool {
	return p.Rank <= MandatoryRankCeiling
}
