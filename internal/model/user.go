package model

type User struct {
	Model
	StudentCode string `gorm:"type:varchar(20);uniqueIndex;not null" json:"student_code"` // 学号
	Password    string `gorm:"type:varchar(255);not null" json:"-"`
	FullName    string `gorm:"type:varchar(50);not null" json:"full_name"`
	RoleID      int    `gorm:"default:0;not null" json:"role_id"` // 0 成员 1 社团负责人 2 校级管理员
	Avatar      string `gorm:"type:varchar(255);" json:"avatar"`
}

type Club struct {
	Model
	Name        string `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	Description string `gorm:"type:varchar(255);" json:"description"`
}

// 成员在社团内的角色
const (
	MembershipRoleMember = "MEMBER"
	MembershipRoleStaff  = "STAFF"
	MembershipRoleLeader = "LEADER"
)

// Membership 用户与社团的时间段关联，left_at 为空表示仍在社团
// 活跃度统计按成员历史查询，退团成员仍会为在团期间计分
type Membership struct {
	Model
	UserID   uint     `gorm:"not null;index:idx_user_club" json:"user_id"`
	ClubID   uint     `gorm:"not null;index:idx_user_club" json:"club_id"`
	Role     string   `gorm:"type:varchar(20);default:'MEMBER'" json:"role"` // MEMBER | STAFF | LEADER
	JoinedAt int64    `gorm:"not null" json:"joined_at"`
	LeftAt   *int64   `gorm:"" json:"left_at"`
	User     User     `gorm:"foreignKey:UserID;references:ID" json:"user"`
	Club     Club     `gorm:"foreignKey:ClubID;references:ID" json:"-"`
}
