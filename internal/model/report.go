package model

import "gorm.io/datatypes"

// ClubActivitySummary 社团某月汇总，memberOfMonth 引用而不拥有成绩行
type ClubActivitySummary struct {
	Model
	ClubID   uint   `gorm:"not null;index:idx_summary_period,unique" json:"club_id"`
	ClubName string `gorm:"type:varchar(100);not null" json:"club_name"`
	Year     int    `gorm:"not null;index:idx_summary_period,unique" json:"year"`
	Month    int    `gorm:"not null;index:idx_summary_period,unique" json:"month"`

	TotalEventsCompleted int     `gorm:"not null" json:"total_events_completed"`
	MemberCount          int     `gorm:"not null" json:"member_count"`
	FullMembersCount     int     `gorm:"not null" json:"full_members_count"` // 整月在团成员数
	ClubMultiplier       float64 `gorm:"not null" json:"club_multiplier"`

	MemberOfMonthID *uint                `gorm:"" json:"-"`
	MemberOfMonth   *MemberActivityScore `gorm:"foreignKey:MemberOfMonthID;references:ID" json:"member_of_month,omitempty"`

	// Diagnostics 记录重算时被跳过的成员及原因
	Diagnostics datatypes.JSONSlice[string] `gorm:"type:json" json:"diagnostics"`
}

// 社团奖励等级，按 award_score 由低到高
const (
	AwardLevelNone     = "NONE"
	AwardLevelBronze   = "BRONZE"
	AwardLevelSilver   = "SILVER"
	AwardLevelGold     = "GOLD"
	AwardLevelPlatinum = "PLATINUM"
)

// ClubActivityReport 可锁定的月度报告，locked 后除解锁外任何字段不得变更
// （解锁操作产品未定，当前不提供）
type ClubActivityReport struct {
	Model
	ClubID    uint `gorm:"not null;index:idx_report_period,unique" json:"club_id"`
	Year      int  `gorm:"not null;index:idx_report_period,unique" json:"year"`
	Month     int  `gorm:"not null;index:idx_report_period,unique" json:"month"`
	SummaryID uint `gorm:"not null" json:"-"`

	Summary ClubActivitySummary `gorm:"foreignKey:SummaryID;references:ID" json:"summary"`

	AvgFeedback            float64 `gorm:"not null" json:"avg_feedback"`            // 1~5
	AvgCheckinRate         float64 `gorm:"not null" json:"avg_checkin_rate"`        // 0~1
	AvgMemberActivityScore float64 `gorm:"not null" json:"avg_member_activity_score"`
	StaffPerformanceScore  float64 `gorm:"not null" json:"staff_performance_score"` // 0~100

	AwardScore   float64 `gorm:"not null" json:"award_score"`
	AwardLevel   string  `gorm:"type:varchar(10);default:'NONE';not null" json:"award_level"`
	FinalScore   float64 `gorm:"not null" json:"final_score"`
	RewardPoints int     `gorm:"not null" json:"reward_points"`

	Locked   bool   `gorm:"not null;default:false" json:"locked"`
	LockedAt *int64 `gorm:"" json:"locked_at"`
	LockedBy string `gorm:"type:varchar(20)" json:"locked_by"`

	// Version 乐观版本号，每次重算 +1
	Version int `gorm:"not null;default:0" json:"version"`
}
