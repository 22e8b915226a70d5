package scoring

import (
	"math"

	"club-activity-system/config"
	"club-activity-system/internal/model"
)

// Attendance 出勤聚合结果，分母为 0 合法（新成员），对应比率取 0
type Attendance struct {
	TotalEventRegistered int
	TotalEventAttended   int
	TotalClubSessions    int
	TotalClubPresent     int
}

// StaffStats 干事考核聚合结果
type StaffStats struct {
	TotalStaffCount     int
	StaffEvaluation     string  // 出现最多的标签，计数相同取更高档
	AvgStaffPerformance float64 // 0~100
}

// Weights 综合指标权重，来自配置而非硬编码
type Weights struct {
	Event        float64 // 活动出席率（百分制）权重
	Session      float64 // 例会出席率（百分制）权重
	Staff        float64 // 干事表现分权重
	PenaltyCost  float64 // 每点惩罚分扣除量
	MaxBaseScore float64 // 基础分满分
}

func WeightsFromConfig(cfg config.Scoring) Weights {
	return Weights{
		Event:        cfg.WeightEvent,
		Session:      cfg.WeightSession,
		Staff:        cfg.WeightStaff,
		PenaltyCost:  cfg.PenaltyCost,
		MaxBaseScore: cfg.MaxBaseScore,
	}
}

// MaxComposite 综合指标的理论上限，PERCENTAGE 策略按它归一
func (w Weights) MaxComposite() float64 {
	return (w.Event + w.Session + w.Staff) * 100
}

// Result 单个成员的计算结果
type Result struct {
	EventAttendanceRate   float64
	SessionAttendanceRate float64
	RawScore              float64
	ActivityLevel         string
	AppliedMultiplier     float64
	BaseScore             float64
	BaseScorePercent      float64
	BaseScorePending      bool
	FinalScore            float64
}

// Rate 安全除法，分母为 0 返回 0 而不是错误
func Rate(numerator, denominator int) float64 {
	if denominator <= 0 {
		return 0
	}
	return float64(numerator) / float64(denominator)
}

// Round1 引擎的固定精度：一位小数
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// HasQualifyingActivity 当月是否存在任何可计分的活动记录
// 不存在时等级为 UNKNOWN，这是 UNKNOWN 唯一的来源之一
func (a Attendance) HasQualifyingActivity(staff StaffStats) bool {
	return a.TotalEventRegistered > 0 || a.TotalClubSessions > 0 || staff.TotalStaffCount > 0
}

// ScoreMember 把出勤、干事考核、惩罚分、基础分合成最终成绩
//
// 综合指标 = w_event·活动出席率% + w_session·例会出席率% + w_staff·干事表现分
//          − penaltyCost·惩罚分，向下截断到 0
// 等级与倍率由 MEMBER 策略按区间匹配；无匹配时 UNKNOWN / 1.0
// finalScore = round1(baseScore × multiplier)，不为负
func ScoreMember(att Attendance, staff StaffStats, penaltyPoints int, baseScore *float64, policies []model.MultiplierPolicy, w Weights) Result {
	r := Result{
		EventAttendanceRate:   Rate(att.TotalEventAttended, att.TotalEventRegistered),
		SessionAttendanceRate: Rate(att.TotalClubPresent, att.TotalClubSessions),
		AppliedMultiplier:     1.0,
		ActivityLevel:         model.ActivityLevelUnknown,
	}

	composite := w.Event*r.EventAttendanceRate*100 +
		w.Session*r.SessionAttendanceRate*100 +
		w.Staff*staff.AvgStaffPerformance -
		w.PenaltyCost*float64(penaltyPoints)
	if composite < 0 {
		composite = 0
	}
	r.RawScore = Round1(composite)

	if att.HasQualifyingActivity(staff) {
		if p, ok := MatchPolicy(policies, model.PolicyTargetMember, model.PolicyActivityMonthly, composite, w.MaxComposite()); ok {
			r.ActivityLevel = p.LevelEvaluation
			r.AppliedMultiplier = p.Multiplier
		}
	}

	if baseScore != nil {
		r.BaseScore = *baseScore
	} else {
		// 负责人尚未录入基础分：按 0 计，同时打上待定标记，
		// 月度之星评选会排除待定成员
		r.BaseScorePending = true
	}
	if w.MaxBaseScore > 0 {
		r.BaseScorePercent = r.BaseScore / w.MaxBaseScore
	}

	final := Round1(r.BaseScore * r.AppliedMultiplier)
	if final < 0 {
		final = 0
	}
	r.FinalScore = final
	return r
}

// MatchPolicy 在激活策略中找到包含 metric 的区间，区间按 [min, max) 匹配
// PERCENTAGE 策略把 metric 归一到百分比后再比较
func MatchPolicy(policies []model.MultiplierPolicy, targetType, activityType string, metric, maxMetric float64) (*model.MultiplierPolicy, bool) {
	for i := range policies {
		p := &policies[i]
		if !p.Active || p.TargetType != targetType || p.ActivityType != activityType {
			continue
		}
		v := metric
		if p.ConditionType == model.PolicyConditionPercentage {
			if maxMetric <= 0 {
				continue
			}
			v = metric / maxMetric * 100
		}
		if v >= p.MinThreshold && v < p.MaxThreshold {
			return p, true
		}
	}
	return nil, false
}

// Overlaps 判断两条策略的阈值区间是否冲突
// 只有同目标、同指标、同条件类型且都激活的策略才可能冲突；区间半开，相邻不算重叠
func Overlaps(a, b *model.MultiplierPolicy) bool {
	if !a.Active || !b.Active {
		return false
	}
	if a.TargetType != b.TargetType || a.ActivityType != b.ActivityType || a.ConditionType != b.ConditionType {
		return false
	}
	return a.MinThreshold < b.MaxThreshold && b.MinThreshold < a.MaxThreshold
}

// DefaultMemberPolicies 内置的成员等级策略，建库时作为种子数据
func DefaultMemberPolicies() []model.MultiplierPolicy {
	return []model.MultiplierPolicy{
		{TargetType: model.PolicyTargetMember, ActivityType: model.PolicyActivityMonthly, ConditionType: model.PolicyConditionAbsolute,
			LevelEvaluation: model.ActivityLevelLow, MinThreshold: 0, MaxThreshold: 50, Multiplier: 0.8, Active: true},
		{TargetType: model.PolicyTargetMember, ActivityType: model.PolicyActivityMonthly, ConditionType: model.PolicyConditionAbsolute,
			LevelEvaluation: model.ActivityLevelMedium, MinThreshold: 50, MaxThreshold: 100, Multiplier: 1.0, Active: true},
		{TargetType: model.PolicyTargetMember, ActivityType: model.PolicyActivityMonthly, ConditionType: model.PolicyConditionAbsolute,
			LevelEvaluation: model.ActivityLevelHigh, MinThreshold: 100, MaxThreshold: 200, Multiplier: 1.2, Active: true},
	}
}
