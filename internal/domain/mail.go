package domain

type MailMessage struct {
	Type string `json:"type"`
	To   string `json:"to"`
	Data any    `json:"data"`
}

type CreateUserMailData struct {
	FullName string `json:"fullName"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type ResetPasswordMailData struct {
	FullName   string `json:"fullName"`
	OTP        string `json:"otp"`
	Expiration int    `json:"expiration"`
}

// 求解完成后发给管理员的结果摘要
type SolveReportMailData struct {
	RunID         string `json:"runID"`
	HardScore     int    `json:"hardScore"`
	SoftScore     int    `json:"softScore"`
	AssignedCount int    `json:"assignedCount"`
	Duration      string `json:"duration"`
}
