package handler

type ContextKey string

var (
	RoleCtxKey         ContextKey = "role"
	SubCtxKey          ContextKey = "sub"
	MyInfoCtx          ContextKey = "myInfo"
	UserInfoCtx        ContextKey = "userInfo"
	ParticipantInfoCtx ContextKey = "participantInfo"
	ActivityInfoCtx    ContextKey = "activityInfo"
	RoomInfoCtx        ContextKey = "roomInfo"
	TimeslotInfoCtx    ContextKey = "timeslotInfo"
	AssignmentInfoCtx  ContextKey = "assignmentInfo"
)
