package domain

import "time"

// 每个参与者预先分配的决策槽位数量（其半天最多有 4 个时间段）
const SlotsPerParticipant = 4

// Assignment 是求解器的决策单元：某个参与者的某个槽位指向至多一个 Session，
// SessionID 为 nil 表示这个槽位没有分配。
// 槽位的身份由 (ParticipantID, SlotIndex) 决定，而不是由代理主键决定
type Assignment struct {
	ID            int64     `json:"id"`
	ParticipantID int64     `json:"participantID"`
	SlotIndex     int       `json:"slotIndex"` // 0..3
	SessionID     *int64    `json:"sessionID"`
	CreatedAt     time.Time `json:"createdAt"`
	Version       int32     `json:"-"`
}
