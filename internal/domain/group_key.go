package domain

// GroupKey 表示某个半天的分组（比如第一天上午），
// 参与者、活动、时间段都通过这个键划分到各自的半天中
type GroupKey string

const (
	GroupDay1Morning   GroupKey = "DAY1_MORNING"
	GroupDay1Afternoon GroupKey = "DAY1_AFTERNOON"
	GroupDay2Morning   GroupKey = "DAY2_MORNING"
	GroupDay2Afternoon GroupKey = "DAY2_AFTERNOON"
)

var AllGroupKeys = []GroupKey{
	GroupDay1Morning,
	GroupDay1Afternoon,
	GroupDay2Morning,
	GroupDay2Afternoon,
}
