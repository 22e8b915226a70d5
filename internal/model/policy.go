package model

const (
	PolicyTargetMember = "MEMBER"
	PolicyTargetClub   = "CLUB"

	PolicyConditionPercentage = "PERCENTAGE"
	PolicyConditionAbsolute   = "ABSOLUTE"

	// 默认的活跃度指标类型
	PolicyActivityMonthly = "MONTHLY_ACTIVITY"
)

// MultiplierPolicy 倍率策略：指标落在 [min, max) 区间时套用对应等级与倍率
// 同一 (target_type, activity_type, condition_type) 下激活策略的区间不允许重叠
type MultiplierPolicy struct {
	Model
	TargetType      string  `gorm:"type:varchar(10);not null;index" json:"target_type"`     // MEMBER | CLUB
	LevelEvaluation string  `gorm:"type:varchar(10);not null" json:"level_evaluation"`      // LOW | MEDIUM | HIGH ...
	ActivityType    string  `gorm:"type:varchar(30);not null" json:"activity_type"`
	ConditionType   string  `gorm:"type:varchar(10);not null" json:"condition_type"`        // PERCENTAGE | ABSOLUTE
	MinThreshold    float64 `gorm:"not null" json:"min_threshold"`
	MaxThreshold    float64 `gorm:"not null" json:"max_threshold"`
	Multiplier      float64 `gorm:"not null" json:"multiplier"`
	Active          bool    `gorm:"not null;default:true" json:"active"`
}
