package model

const (
	EventStatusPlanned   = "PLANNED"
	EventStatusCompleted = "COMPLETED"
	EventStatusCancelled = "CANCELLED"
)

type Event struct {
	Model
	ClubID   uint   `gorm:"not null;index" json:"club_id"`
	Name     string `gorm:"type:varchar(100);not null" json:"name"`
	Status   string `gorm:"type:varchar(20);default:'PLANNED';not null" json:"status"`
	StartsAt int64  `gorm:"not null;index" json:"starts_at"`
	Club     Club   `gorm:"foreignKey:ClubID;references:ID" json:"-"`
}

// EventRegistration 活动报名记录，checked_in_at 非空即视为已签到
type EventRegistration struct {
	Model
	EventID      uint   `gorm:"not null;index:idx_event_membership,unique" json:"event_id"`
	MembershipID uint   `gorm:"not null;index:idx_event_membership,unique" json:"membership_id"`
	RegisteredAt int64  `gorm:"not null" json:"registered_at"`
	CheckedInAt  *int64 `gorm:"" json:"checked_in_at"`
	Event        Event  `gorm:"foreignKey:EventID;references:ID" json:"-"`
}

// ClubSession 社团例会
type ClubSession struct {
	Model
	ClubID uint  `gorm:"not null;index" json:"club_id"`
	HeldAt int64 `gorm:"not null;index" json:"held_at"`
	Club   Club  `gorm:"foreignKey:ClubID;references:ID" json:"-"`
}

type SessionAttendance struct {
	Model
	SessionID    uint        `gorm:"not null;index:idx_session_membership,unique" json:"session_id"`
	MembershipID uint        `gorm:"not null;index:idx_session_membership,unique" json:"membership_id"`
	Present      bool        `gorm:"not null" json:"present"`
	Session      ClubSession `gorm:"foreignKey:SessionID;references:ID" json:"-"`
}
