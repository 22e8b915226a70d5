package scoring

import (
	"testing"

	"club-activity-system/config"
	"club-activity-system/internal/model"

	"github.com/stretchr/testify/require"
)

func testWeights() Weights {
	return WeightsFromConfig(config.Scoring{
		WeightEvent:   0.40,
		WeightSession: 0.24,
		WeightStaff:   0.90,
		PenaltyCost:   2.0,
		MaxBaseScore:  100,
	})
}

func TestRateZeroDenominator(t *testing.T) {
	require.Equal(t, 0.0, Rate(0, 0))
	require.Equal(t, 0.0, Rate(5, 0))
	require.Equal(t, 0.5, Rate(1, 2))
}

// 对应 2025 年 1 月 1 号社团 STU001 的样例数据
func TestScoreMemberHighFixture(t *testing.T) {
	att := Attendance{
		TotalEventRegistered: 10,
		TotalEventAttended:   9,
		TotalClubSessions:    8,
		TotalClubPresent:     7,
	}
	staff := StaffStats{TotalStaffCount: 3, StaffEvaluation: model.StaffTagExcellent, AvgStaffPerformance: 95}
	base := 80.0

	r := ScoreMember(att, staff, 0, &base, DefaultMemberPolicies(), testWeights())

	require.InDelta(t, 0.9, r.EventAttendanceRate, 1e-9)
	require.InDelta(t, 0.875, r.SessionAttendanceRate, 1e-9)
	require.InDelta(t, 142.5, r.RawScore, 1e-9)
	require.Equal(t, model.ActivityLevelHigh, r.ActivityLevel)
	require.InDelta(t, 1.2, r.AppliedMultiplier, 1e-9)
	require.InDelta(t, 96.0, r.FinalScore, 1e-9)
	require.False(t, r.BaseScorePending)
	require.InDelta(t, 0.8, r.BaseScorePercent, 1e-9)
}

// 样例 STU003：低出勤 + 惩罚分
func TestScoreMemberLowFixture(t *testing.T) {
	att := Attendance{
		TotalEventRegistered: 10,
		TotalEventAttended:   2,
	}
	staff := StaffStats{TotalStaffCount: 1, StaffEvaluation: model.StaffTagFair, AvgStaffPerformance: 30}

	base := 50.0
	r := ScoreMember(att, staff, 10, &base, DefaultMemberPolicies(), testWeights())

	require.InDelta(t, 0.2, r.EventAttendanceRate, 1e-9)
	require.InDelta(t, 15.0, r.RawScore, 1e-9)
	require.Equal(t, model.ActivityLevelLow, r.ActivityLevel)
	require.InDelta(t, 0.8, r.AppliedMultiplier, 1e-9)
	require.InDelta(t, 40.0, r.FinalScore, 1e-9)
}

// 没有任何可计分记录的成员必须是 UNKNOWN 且得分为 0
func TestScoreMemberNoActivity(t *testing.T) {
	r := ScoreMember(Attendance{}, StaffStats{StaffEvaluation: model.StaffTagUnknown}, 0, nil, DefaultMemberPolicies(), testWeights())

	require.Equal(t, model.ActivityLevelUnknown, r.ActivityLevel)
	require.InDelta(t, 1.0, r.AppliedMultiplier, 1e-9)
	require.Equal(t, 0.0, r.FinalScore)
	require.True(t, r.BaseScorePending)
	require.Equal(t, 0.0, r.EventAttendanceRate)
	require.Equal(t, 0.0, r.SessionAttendanceRate)
}

func TestScoreMemberPenaltyFlooredAtZero(t *testing.T) {
	att := Attendance{TotalEventRegistered: 2, TotalEventAttended: 1}
	r := ScoreMember(att, StaffStats{}, 100, nil, DefaultMemberPolicies(), testWeights())
	require.Equal(t, 0.0, r.RawScore)
	require.GreaterOrEqual(t, r.FinalScore, 0.0)
}

// 固定倍率下 finalScore 随 baseScore 单调不减
func TestFinalScoreMonotonicInBaseScore(t *testing.T) {
	att := Attendance{TotalEventRegistered: 10, TotalEventAttended: 9, TotalClubSessions: 8, TotalClubPresent: 7}
	staff := StaffStats{TotalStaffCount: 1, AvgStaffPerformance: 95}

	prev := -1.0
	for base := 0.0; base <= 100; base += 2.5 {
		b := base
		r := ScoreMember(att, staff, 0, &b, DefaultMemberPolicies(), testWeights())
		require.GreaterOrEqual(t, r.FinalScore, prev, "base=%v", base)
		prev = r.FinalScore
	}
}

func TestMatchPolicyNoMatchGivesUnknown(t *testing.T) {
	att := Attendance{TotalEventRegistered: 1, TotalEventAttended: 1}
	r := ScoreMember(att, StaffStats{}, 0, nil, nil, testWeights())
	require.Equal(t, model.ActivityLevelUnknown, r.ActivityLevel)
	require.InDelta(t, 1.0, r.AppliedMultiplier, 1e-9)
}

func TestMatchPolicyPercentage(t *testing.T) {
	policies := []model.MultiplierPolicy{
		{TargetType: model.PolicyTargetMember, ActivityType: model.PolicyActivityMonthly, ConditionType: model.PolicyConditionPercentage,
			LevelEvaluation: model.ActivityLevelHigh, MinThreshold: 80, MaxThreshold: 101, Multiplier: 1.5, Active: true},
	}
	w := testWeights()
	// 综合指标 142.5 / 上限 154 ≈ 92.5%
	p, ok := MatchPolicy(policies, model.PolicyTargetMember, model.PolicyActivityMonthly, 142.5, w.MaxComposite())
	require.True(t, ok)
	require.Equal(t, model.ActivityLevelHigh, p.LevelEvaluation)

	_, ok = MatchPolicy(policies, model.PolicyTargetMember, model.PolicyActivityMonthly, 100, w.MaxComposite())
	require.False(t, ok)
}

func TestMatchPolicyHalfOpenBoundary(t *testing.T) {
	policies := DefaultMemberPolicies()
	p, ok := MatchPolicy(policies, model.PolicyTargetMember, model.PolicyActivityMonthly, 50, 154)
	require.True(t, ok)
	require.Equal(t, model.ActivityLevelMedium, p.LevelEvaluation)

	p, ok = MatchPolicy(policies, model.PolicyTargetMember, model.PolicyActivityMonthly, 100, 154)
	require.True(t, ok)
	require.Equal(t, model.ActivityLevelHigh, p.LevelEvaluation)
}

func TestOverlaps(t *testing.T) {
	a := &model.MultiplierPolicy{TargetType: model.PolicyTargetMember, ActivityType: model.PolicyActivityMonthly,
		ConditionType: model.PolicyConditionAbsolute, MinThreshold: 0, MaxThreshold: 50, Active: true}
	b := &model.MultiplierPolicy{TargetType: model.PolicyTargetMember, ActivityType: model.PolicyActivityMonthly,
		ConditionType: model.PolicyConditionAbsolute, MinThreshold: 40, MaxThreshold: 60, Active: true}
	adjacent := &model.MultiplierPolicy{TargetType: model.PolicyTargetMember, ActivityType: model.PolicyActivityMonthly,
		ConditionType: model.PolicyConditionAbsolute, MinThreshold: 50, MaxThreshold: 100, Active: true}
	otherTarget := &model.MultiplierPolicy{TargetType: model.PolicyTargetClub, ActivityType: model.PolicyActivityMonthly,
		ConditionType: model.PolicyConditionAbsolute, MinThreshold: 0, MaxThreshold: 100, Active: true}
	inactive := &model.MultiplierPolicy{TargetType: model.PolicyTargetMember, ActivityType: model.PolicyActivityMonthly,
		ConditionType: model.PolicyConditionAbsolute, MinThreshold: 0, MaxThreshold: 100, Active: false}

	require.True(t, Overlaps(a, b))
	require.False(t, Overlaps(a, adjacent)) // 相邻区间合法
	require.False(t, Overlaps(a, otherTarget))
	require.False(t, Overlaps(a, inactive))
}

func TestRound1(t *testing.T) {
	require.Equal(t, 142.5, Round1(142.5))
	require.Equal(t, 96.0, Round1(96.04))
	require.Equal(t, 96.1, Round1(96.06))
}
