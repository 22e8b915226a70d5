package report

import (
	"context"
	"testing"
	"time"

	"club-activity-system/internal/global/database"
	"club-activity-system/internal/global/logger"
	"club-activity-system/internal/global/response"
	"club-activity-system/internal/model"
	"club-activity-system/internal/scoring"
	"club-activity-system/test"
	"club-activity-system/tools"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func init() {
	log = logger.New("Report")
}

var testPeriod = tools.Period{Year: 2025, Month: 1}

func periodTime(day int) int64 {
	return time.Date(2025, 1, day, 12, 0, 0, 0, time.Local).Unix()
}

func ptrInt64(v int64) *int64 { return &v }

// seedClub 造一个两名成员、数据齐全的社团：
//
// 成员一：报名 4 场出席 3 场，例会全勤，干事 EXCELLENT×2 GOOD×1，基础分 80
//   综合指标 = 0.40·75 + 0.24·100 + 0.90·(800/9) = 134 → HIGH ×1.2 → 96
// 成员二：报名 2 场零出席，例会一半，无干事记录，惩罚 3 分，基础分未录
//   综合指标 = 0.24·50 − 2.0·3 = 6 → LOW，基础分待定 → 0
func seedClub(t *testing.T, db *gorm.DB) (clubID uint, m1, m2 model.Membership) {
	club := model.Club{Name: "动漫社"}
	u1 := model.User{StudentCode: "STU001", Password: "x", FullName: "张三"}
	u2 := model.User{StudentCode: "STU002", Password: "x", FullName: "李四"}
	test.MustCreate(t, db, &club, &u1, &u2)

	joined := time.Date(2024, 12, 1, 0, 0, 0, 0, time.Local).Unix()
	m1 = model.Membership{UserID: u1.ID, ClubID: club.ID, Role: model.MembershipRoleMember, JoinedAt: joined}
	m2 = model.Membership{UserID: u2.ID, ClubID: club.ID, Role: model.MembershipRoleMember, JoinedAt: joined}
	test.MustCreate(t, db, &m1, &m2)

	events := make([]model.Event, 4)
	for i := range events {
		status := model.EventStatusCompleted
		if i == 3 {
			status = model.EventStatusPlanned
		}
		events[i] = model.Event{ClubID: club.ID, Name: "活动", Status: status, StartsAt: periodTime(i + 2)}
		test.MustCreate(t, db, &events[i])
	}
	for i, e := range events {
		reg := model.EventRegistration{EventID: e.ID, MembershipID: m1.ID, RegisteredAt: e.StartsAt - 3600}
		if i < 3 {
			reg.CheckedInAt = ptrInt64(e.StartsAt)
		}
		test.MustCreate(t, db, &reg)
	}
	test.MustCreate(t, db,
		&model.EventRegistration{EventID: events[0].ID, MembershipID: m2.ID, RegisteredAt: periodTime(2)},
		&model.EventRegistration{EventID: events[1].ID, MembershipID: m2.ID, RegisteredAt: periodTime(3)},
	)

	s1 := model.ClubSession{ClubID: club.ID, HeldAt: periodTime(8)}
	s2 := model.ClubSession{ClubID: club.ID, HeldAt: periodTime(15)}
	test.MustCreate(t, db, &s1, &s2)
	test.MustCreate(t, db,
		&model.SessionAttendance{SessionID: s1.ID, MembershipID: m1.ID, Present: true},
		&model.SessionAttendance{SessionID: s2.ID, MembershipID: m1.ID, Present: true},
		&model.SessionAttendance{SessionID: s1.ID, MembershipID: m2.ID, Present: true},
		&model.SessionAttendance{SessionID: s2.ID, MembershipID: m2.ID, Present: false},
	)

	for _, tag := range []string{model.StaffTagExcellent, model.StaffTagExcellent, model.StaffTagGood} {
		test.MustCreate(t, db, &model.StaffDuty{
			ClubID: club.ID, MembershipID: m1.ID, Performance: tag,
			EvaluatedBy: "STU999", EvaluatedAt: periodTime(20),
		})
	}
	test.MustCreate(t, db,
		&model.Penalty{ClubID: club.ID, MembershipID: m2.ID, Points: 3, Reason: "无故缺席值班", IssuedAt: periodTime(21)},
		&model.BaseScore{ClubID: club.ID, MembershipID: m1.ID, Year: 2025, Month: 1, Score: 80, SetBy: "LEADER"},
		&model.EventFeedback{EventID: events[0].ID, MembershipID: m1.ID, Rating: 5},
		&model.EventFeedback{EventID: events[0].ID, MembershipID: m2.ID, Rating: 4},
	)

	for _, p := range scoring.DefaultMemberPolicies() {
		policy := p
		test.MustCreate(t, db, &policy)
	}
	test.MustCreate(t, db, &model.MultiplierPolicy{
		TargetType: model.PolicyTargetClub, ActivityType: model.PolicyActivityMonthly,
		ConditionType: model.PolicyConditionAbsolute, LevelEvaluation: "ALL",
		MinThreshold: 0, MaxThreshold: 200, Multiplier: 1.1, Active: true,
	})

	return club.ID, m1, m2
}

func loadScores(t *testing.T, clubID uint) []model.MemberActivityScore {
	var scores []model.MemberActivityScore
	require.NoError(t, database.DB.
		Where("club_id = ? AND year = ? AND month = ?", clubID, testPeriod.Year, testPeriod.Month).
		Order("membership_id ASC").Find(&scores).Error)
	return scores
}

func TestRecalculate(t *testing.T) {
	db := test.SetupDB(t)
	clubID, m1, m2 := seedClub(t, db)

	summary, err := Recalculate(context.Background(), clubID, testPeriod)
	require.NoError(t, err)

	require.Equal(t, 2, summary.MemberCount)
	require.Equal(t, 2, summary.FullMembersCount)
	require.Equal(t, 3, summary.TotalEventsCompleted)
	require.InDelta(t, 1.1, summary.ClubMultiplier, 1e-9)
	require.Empty(t, summary.Diagnostics)

	scores := loadScores(t, clubID)
	require.Len(t, scores, 2)

	s1, s2 := scores[0], scores[1]
	require.Equal(t, m1.ID, s1.MembershipID)
	require.Equal(t, "STU001", s1.StudentCode)
	require.InDelta(t, 0.75, s1.EventAttendanceRate, 1e-9)
	require.InDelta(t, 1.0, s1.SessionAttendanceRate, 1e-9)
	require.Equal(t, model.StaffTagExcellent, s1.StaffEvaluation)
	require.InDelta(t, 134, s1.RawScore, 1e-9)
	require.Equal(t, model.ActivityLevelHigh, s1.ActivityLevel)
	require.InDelta(t, 1.2, s1.AppliedMultiplier, 1e-9)
	require.InDelta(t, 96, s1.FinalScore, 1e-9)
	require.False(t, s1.BaseScorePending)

	require.Equal(t, m2.ID, s2.MembershipID)
	require.InDelta(t, 0, s2.EventAttendanceRate, 1e-9)
	require.InDelta(t, 0.5, s2.SessionAttendanceRate, 1e-9)
	require.Equal(t, model.StaffTagUnknown, s2.StaffEvaluation)
	require.Equal(t, 3, s2.TotalPenaltyPoints)
	require.InDelta(t, 6, s2.RawScore, 1e-9)
	require.Equal(t, model.ActivityLevelLow, s2.ActivityLevel)
	require.True(t, s2.BaseScorePending)
	require.InDelta(t, 0, s2.FinalScore, 1e-9)

	// 基础分待定的成员不参评，月度之星只能是成员一
	require.NotNil(t, summary.MemberOfMonthID)
	require.Equal(t, s1.ID, *summary.MemberOfMonthID)
}

func TestRecalculateIdempotent(t *testing.T) {
	db := test.SetupDB(t)
	clubID, _, _ := seedClub(t, db)
	ctx := context.Background()

	first, err := Recalculate(ctx, clubID, testPeriod)
	require.NoError(t, err)
	firstRows := loadScores(t, clubID)

	second, err := Recalculate(ctx, clubID, testPeriod)
	require.NoError(t, err)
	secondRows := loadScores(t, clubID)

	require.Equal(t, first.MemberCount, second.MemberCount)
	require.Len(t, firstRows, 2)
	require.Len(t, secondRows, 2)

	// 两轮成绩除主键和时间戳外逐字段一致
	for i := range firstRows {
		a, b := firstRows[i], secondRows[i]
		a.Model, b.Model = model.Model{}, model.Model{}
		require.Equal(t, a, b)
	}

	var report model.ClubActivityReport
	require.NoError(t, database.DB.
		Where("club_id = ? AND year = ? AND month = ?", clubID, testPeriod.Year, testPeriod.Month).
		First(&report).Error)
	require.Equal(t, 2, report.Version)
	require.False(t, report.Locked)
}

func TestRecalculateUnknownClub(t *testing.T) {
	test.SetupDB(t)
	_, err := Recalculate(context.Background(), 42, testPeriod)
	require.ErrorIs(t, err, response.ErrNotFound)
}

func TestRecalculateSkipsMissingUser(t *testing.T) {
	db := test.SetupDB(t)
	clubID, _, _ := seedClub(t, db)

	ghost := model.Membership{UserID: 9999, ClubID: clubID, JoinedAt: periodTime(1)}
	test.MustCreate(t, db, &ghost)

	summary, err := Recalculate(context.Background(), clubID, testPeriod)
	require.NoError(t, err)
	require.Equal(t, 2, summary.MemberCount)
	require.Len(t, summary.Diagnostics, 1)
	require.Len(t, loadScores(t, clubID), 2)
}

func TestMemberOfMonthTieBreak(t *testing.T) {
	db := test.SetupDB(t)
	clubID, m1, m2 := seedClub(t, db)

	// 抹平差距：成员二补齐与成员一等额的基础分且指标同档
	test.MustCreate(t, db, &model.BaseScore{
		ClubID: clubID, MembershipID: m2.ID, Year: 2025, Month: 1, Score: 80, SetBy: "LEADER",
	})
	require.NoError(t, db.Where("membership_id = ?", m2.ID).Delete(&model.Penalty{}).Error)
	// 让成员二也落在 HIGH 档，finalScore 与成员一持平
	for _, tag := range []string{model.StaffTagExcellent, model.StaffTagExcellent, model.StaffTagGood} {
		test.MustCreate(t, db, &model.StaffDuty{
			ClubID: clubID, MembershipID: m2.ID, Performance: tag,
			EvaluatedBy: "STU999", EvaluatedAt: periodTime(20),
		})
	}
	var regs []model.EventRegistration
	require.NoError(t, db.Where("membership_id = ?", m2.ID).Find(&regs).Error)
	for i := range regs {
		regs[i].CheckedInAt = ptrInt64(periodTime(5))
		require.NoError(t, db.Save(&regs[i]).Error)
	}

	summary, err := Recalculate(context.Background(), clubID, testPeriod)
	require.NoError(t, err)

	// 两人同为 HIGH ×1.2、基础分 80，finalScore 都是 96
	scores := loadScores(t, clubID)
	require.Len(t, scores, 2)
	require.Equal(t, scores[0].FinalScore, scores[1].FinalScore)

	// 并列时取 membershipID 较小者
	require.NotNil(t, summary.MemberOfMonthID)
	var winner model.MemberActivityScore
	require.NoError(t, db.First(&winner, "id = ?", *summary.MemberOfMonthID).Error)
	require.Equal(t, m1.ID, winner.MembershipID)
}

func TestMemberOfMonthAbsentWhenNoneEligible(t *testing.T) {
	db := test.SetupDB(t)
	clubID, m1, _ := seedClub(t, db)

	// 所有基础分清空后全员待定，月度之星空缺
	require.NoError(t, db.Unscoped().Where("membership_id = ?", m1.ID).Delete(&model.BaseScore{}).Error)

	summary, err := Recalculate(context.Background(), clubID, testPeriod)
	require.NoError(t, err)
	require.Nil(t, summary.MemberOfMonthID)
}

func TestBaseScoreSurvivesRecalculate(t *testing.T) {
	db := test.SetupDB(t)
	clubID, _, m2 := seedClub(t, db)
	ctx := context.Background()

	_, err := Recalculate(ctx, clubID, testPeriod)
	require.NoError(t, err)

	test.MustCreate(t, db, &model.BaseScore{
		ClubID: clubID, MembershipID: m2.ID, Year: 2025, Month: 1, Score: 50, SetBy: "LEADER",
	})
	_, err = Recalculate(ctx, clubID, testPeriod)
	require.NoError(t, err)

	scores := loadScores(t, clubID)
	require.Len(t, scores, 2)
	s2 := scores[1]
	require.False(t, s2.BaseScorePending)
	// LOW ×0.8，基础分 50 → 40
	require.InDelta(t, 40, s2.FinalScore, 1e-9)
}

func TestApprove(t *testing.T) {
	db := test.SetupDB(t)
	clubID, _, _ := seedClub(t, db)
	ctx := context.Background()

	_, err := Recalculate(ctx, clubID, testPeriod)
	require.NoError(t, err)

	report, err := Approve(ctx, clubID, testPeriod, "ADMIN01")
	require.NoError(t, err)

	require.True(t, report.Locked)
	require.NotNil(t, report.LockedAt)
	require.Equal(t, "ADMIN01", report.LockedBy)

	require.InDelta(t, 4.5, report.AvgFeedback, 1e-9)
	require.InDelta(t, 0.5, report.AvgCheckinRate, 1e-9) // 6 报名 3 出席
	require.InDelta(t, 48, report.AvgMemberActivityScore, 1e-9)
	require.InDelta(t, 800.0/9, report.StaffPerformanceScore, 1e-9)
	require.Equal(t, model.AwardLevelSilver, report.AwardLevel)
	require.InDelta(t, report.AwardScore*1.1, report.FinalScore, 0.05+1e-9)
	require.Equal(t, int(report.FinalScore*10), report.RewardPoints)

}

func TestApproveTwice(t *testing.T) {
	db := test.SetupDB(t)
	clubID, _, _ := seedClub(t, db)
	ctx := context.Background()

	_, err := Recalculate(ctx, clubID, testPeriod)
	require.NoError(t, err)
	_, err = Approve(ctx, clubID, testPeriod, "ADMIN01")
	require.NoError(t, err)

	_, err = Approve(ctx, clubID, testPeriod, "ADMIN02")
	require.ErrorIs(t, err, response.ErrAlreadyLocked)
}

func TestApproveBeforeRecalculate(t *testing.T) {
	db := test.SetupDB(t)
	clubID, _, _ := seedClub(t, db)

	_, err := Approve(context.Background(), clubID, testPeriod, "ADMIN01")
	require.ErrorIs(t, err, response.ErrNotCalculated)
}

func TestRecalculateAfterApproveRejected(t *testing.T) {
	db := test.SetupDB(t)
	clubID, _, _ := seedClub(t, db)
	ctx := context.Background()

	_, err := Recalculate(ctx, clubID, testPeriod)
	require.NoError(t, err)
	_, err = Approve(ctx, clubID, testPeriod, "ADMIN01")
	require.NoError(t, err)

	_, err = Recalculate(ctx, clubID, testPeriod)
	require.ErrorIs(t, err, response.ErrReportLocked)

	// 锁定后成绩行保持原样
	require.Len(t, loadScores(t, clubID), 2)
}
