package domain

import "fmt"

// Score 是两级分数：Hard 编码可行性（小于 0 表示存在硬约束违反），
// Soft 编码志愿满足质量。比较时先比 Hard，Hard 相等再比 Soft
type Score struct {
	Hard int `json:"hard"`
	Soft int `json:"soft"`
}

func (s Score) Less(other Score) bool {
	if s.Hard != other.Hard {
		return s.Hard < other.Hard
	}
	return s.Soft < other.Soft
}

func (s Score) Feasible() bool {
	return s.Hard >= 0
}

func (s Score) String() string {
	return fmt.Sprintf("%dhard/%dsoft", s.Hard, s.Soft)
}
