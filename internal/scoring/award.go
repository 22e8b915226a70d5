package scoring

import "club-activity-system/internal/model"

// 社团奖励分的组成权重与等级阈值
const (
	awardWeightFeedback = 0.30
	awardWeightCheckin  = 0.30
	awardWeightActivity = 0.25
	awardWeightStaff    = 0.15

	awardBronzeMin   = 40.0
	awardSilverMin   = 55.0
	awardGoldMin     = 70.0
	awardPlatinumMin = 85.0
)

// ClubAwardInput 审批时已经算好的社团级指标
type ClubAwardInput struct {
	AvgFeedback           float64 // 1~5，无反馈为 0
	AvgCheckinRate        float64 // 0~1
	AvgMemberComposite    float64 // 成员综合指标均值（原始刻度）
	StaffPerformanceScore float64 // 0~100
}

// AwardScore 把四项指标统一到百分制后加权
func AwardScore(in ClubAwardInput, w Weights) float64 {
	feedbackPct := in.AvgFeedback / 5 * 100
	checkinPct := in.AvgCheckinRate * 100
	activityPct := 0.0
	if max := w.MaxComposite(); max > 0 {
		activityPct = in.AvgMemberComposite / max * 100
	}
	score := awardWeightFeedback*feedbackPct +
		awardWeightCheckin*checkinPct +
		awardWeightActivity*activityPct +
		awardWeightStaff*in.StaffPerformanceScore
	if score < 0 {
		score = 0
	}
	return Round1(score)
}

// AwardLevel 按固定阈值把奖励分映射为等级
func AwardLevel(score float64) string {
	switch {
	case score >= awardPlatinumMin:
		return model.AwardLevelPlatinum
	case score >= awardGoldMin:
		return model.AwardLevelGold
	case score >= awardSilverMin:
		return model.AwardLevelSilver
	case score >= awardBronzeMin:
		return model.AwardLevelBronze
	default:
		return model.AwardLevelNone
	}
}
