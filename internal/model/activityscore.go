package model

// 活跃度等级
const (
	ActivityLevelLow     = "LOW"
	ActivityLevelMedium  = "MEDIUM"
	ActivityLevelHigh    = "HIGH"
	ActivityLevelUnknown = "UNKNOWN"
)

// BaseScore 负责人为成员按月录入的基础分，重算时整行成绩被替换而它保留
type BaseScore struct {
	Model
	ClubID       uint    `gorm:"not null;index:idx_base_period,unique" json:"club_id"`
	MembershipID uint    `gorm:"not null;index:idx_base_period,unique" json:"membership_id"`
	Year         int     `gorm:"not null;index:idx_base_period,unique" json:"year"`
	Month        int     `gorm:"not null;index:idx_base_period,unique" json:"month"`
	Score        float64 `gorm:"not null" json:"score"`
	SetBy        string  `gorm:"type:varchar(20);not null" json:"set_by"`
}

// MemberActivityScore 某成员某月在某社团的活跃度成绩
// 每次重算整批替换，不做逐字段修补
type MemberActivityScore struct {
	Model
	MembershipID uint   `gorm:"not null;index:idx_score_period,unique" json:"membership_id"`
	ClubID       uint   `gorm:"not null;index:idx_score_period,unique" json:"club_id"`
	Year         int    `gorm:"not null;index:idx_score_period,unique" json:"year"`
	Month        int    `gorm:"not null;index:idx_score_period,unique" json:"month"`
	UserID       uint   `gorm:"not null" json:"user_id"`
	StudentCode  string `gorm:"type:varchar(20);not null" json:"student_code" excel:"学号"`
	FullName     string `gorm:"type:varchar(50);not null" json:"full_name" excel:"姓名"`
	ClubName     string `gorm:"type:varchar(100);not null" json:"club_name" excel:"社团"`

	TotalEventRegistered  int     `gorm:"not null" json:"total_event_registered" excel:"报名活动数"`
	TotalEventAttended    int     `gorm:"not null" json:"total_event_attended" excel:"出席活动数"`
	EventAttendanceRate   float64 `gorm:"not null" json:"event_attendance_rate" excel:"活动出勤率,percent"`
	TotalClubSessions     int     `gorm:"not null" json:"total_club_sessions" excel:"例会次数"`
	TotalClubPresent      int     `gorm:"not null" json:"total_club_present" excel:"例会出席数"`
	SessionAttendanceRate float64 `gorm:"not null" json:"session_attendance_rate" excel:"例会出勤率,percent"`

	TotalStaffCount     int     `gorm:"not null" json:"total_staff_count" excel:"干事次数"`
	StaffEvaluation     string  `gorm:"type:varchar(10);not null" json:"staff_evaluation" excel:"干事考核"` // 出现最多的考核标签
	AvgStaffPerformance float64 `gorm:"not null" json:"avg_staff_performance" excel:"干事均分"`             // 0~100

	TotalPenaltyPoints int `gorm:"not null" json:"total_penalty_points" excel:"惩罚分"`

	BaseScore         float64 `gorm:"not null" json:"base_score" excel:"基础分"`
	BaseScorePercent  float64 `gorm:"not null" json:"base_score_percent"`
	BaseScorePending  bool    `gorm:"not null" json:"base_score_pending"`     // 负责人尚未录入基础分
	RawScore          float64 `gorm:"not null" json:"raw_score" excel:"综合指标"` // 见 scoring 包
	ActivityLevel     string  `gorm:"type:varchar(10);not null" json:"activity_level" excel:"活跃等级"`
	AppliedMultiplier float64 `gorm:"not null" json:"applied_multiplier" excel:"倍率"`
	FinalScore        float64 `gorm:"not null" json:"final_score" excel:"最终成绩"`
}
