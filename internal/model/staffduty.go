package model

// 干事考核标签，每次值班一条记录
const (
	StaffTagPoor      = "POOR"
	StaffTagFair      = "FAIR"
	StaffTagGood      = "GOOD"
	StaffTagExcellent = "EXCELLENT"
	StaffTagUnknown   = "UNKNOWN" // 无考核记录时的占位
)

// StaffTagValue 固定数值映射：POOR=0 FAIR=1 GOOD=2 EXCELLENT=3
func StaffTagValue(tag string) (int, bool) {
	switch tag {
	case StaffTagPoor:
		return 0, true
	case StaffTagFair:
		return 1, true
	case StaffTagGood:
		return 2, true
	case StaffTagExcellent:
		return 3, true
	default:
		return 0, false
	}
}

type StaffDuty struct {
	Model
	ClubID       uint   `gorm:"not null;index" json:"club_id"`
	MembershipID uint   `gorm:"not null;index" json:"membership_id"`
	EventID      uint   `gorm:"" json:"event_id"`
	Performance  string `gorm:"type:varchar(10);not null" json:"performance"` // POOR|FAIR|GOOD|EXCELLENT
	EvaluatedBy  string `gorm:"type:varchar(20);not null" json:"evaluated_by"`
	EvaluatedAt  int64  `gorm:"not null;index" json:"evaluated_at"`
}

type Penalty struct {
	Model
	ClubID       uint   `gorm:"not null;index" json:"club_id"`
	MembershipID uint   `gorm:"not null;index" json:"membership_id"`
	Points       int    `gorm:"not null" json:"points"`
	Reason       string `gorm:"type:varchar(255);not null" json:"reason"`
	IssuedAt     int64  `gorm:"not null;index" json:"issued_at"`
}

// EventFeedback 活动反馈，1~5 星
type EventFeedback struct {
	Model
	EventID      uint  `gorm:"not null;index" json:"event_id"`
	MembershipID uint  `gorm:"not null" json:"membership_id"`
	Rating       int   `gorm:"not null" json:"rating"`
	Event        Event `gorm:"foreignKey:EventID;references:ID" json:"-"`
}
