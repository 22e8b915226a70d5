package report

import (
	"context"
	"time"

	"club-activity-system/config"
	"club-activity-system/internal/global/cache"
	"club-activity-system/internal/global/database"
	"club-activity-system/internal/global/response"
	"club-activity-system/internal/model"
	"club-activity-system/internal/scoring"
	"club-activity-system/tools"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// Approve 审批并锁定某社团某月的报告
//
// 审批与重算抢同一把周期租约，锁定判断在事务内完成：
// 已锁定返回 ErrAlreadyLocked，从未重算过返回 ErrNotCalculated。
// 奖励分、奖励等级与积分在锁定的同一事务内写入
func Approve(ctx context.Context, clubID uint, p tools.Period, approverCode string) (*model.ClubActivityReport, error) {
	unlock, ok := cache.TryLock(ctx, periodLockKey(clubID, p), recalcLockTTL)
	if !ok {
		return nil, response.ErrRecalcBusy
	}
	defer unlock()

	start, end := p.Bounds()
	avgFeedback, err := avgEventFeedback(ctx, clubID, start, end)
	if err != nil {
		return nil, response.ErrDatabase.WithOrigin(err)
	}
	weights := scoring.WeightsFromConfig(config.Get().Scoring)

	var report model.ClubActivityReport
	err = database.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("club_id = ? AND year = ? AND month = ?", clubID, p.Year, p.Month).
			First(&report).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return response.ErrNotCalculated
			}
			return response.ErrDatabase.WithOrigin(err)
		}
		if report.Locked {
			return response.ErrAlreadyLocked
		}

		var summary model.ClubActivitySummary
		if err := tx.Preload("MemberOfMonth").First(&summary, "id = ?", report.SummaryID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return response.ErrNotCalculated
			}
			return response.ErrDatabase.WithOrigin(err)
		}

		var scores []model.MemberActivityScore
		if err := tx.Where("club_id = ? AND year = ? AND month = ?", clubID, p.Year, p.Month).
			Order("membership_id ASC").
			Find(&scores).Error; err != nil {
			return response.ErrDatabase.WithOrigin(err)
		}

		report.AvgFeedback = avgFeedback
		report.AvgCheckinRate = clubCheckinRate(scores)
		report.AvgMemberActivityScore = meanFinalScore(scores)
		report.StaffPerformanceScore = meanStaffPerformance(scores)

		report.AwardScore = scoring.AwardScore(scoring.ClubAwardInput{
			AvgFeedback:           report.AvgFeedback,
			AvgCheckinRate:        report.AvgCheckinRate,
			AvgMemberComposite:    meanRawScore(scores),
			StaffPerformanceScore: report.StaffPerformanceScore,
		}, weights)
		report.AwardLevel = scoring.AwardLevel(report.AwardScore)
		report.FinalScore = scoring.Round1(report.AwardScore * summary.ClubMultiplier)
		report.RewardPoints = int(report.FinalScore * 10)

		now := time.Now().Unix()
		report.Locked = true
		report.LockedAt = &now
		report.LockedBy = approverCode
		report.Summary = summary

		return tx.Omit("Summary").Save(&report).Error
	})
	if err != nil {
		return nil, err
	}

	log.Info("社团月度报告已审批锁定",
		"club_id", clubID,
		"period", p.String(),
		"award_level", report.AwardLevel,
		"reward_points", report.RewardPoints,
		"locked_by", approverCode,
	)

	// 通知尽力而为，失败只记日志，不影响已提交的锁定
	notifyReportLocked(&report)
	return &report, nil
}

// clubCheckinRate 全团活动签到率：总出席 / 总报名
func clubCheckinRate(scores []model.MemberActivityScore) float64 {
	var registered, attended int
	for _, s := range scores {
		registered += s.TotalEventRegistered
		attended += s.TotalEventAttended
	}
	if registered == 0 {
		return 0
	}
	return float64(attended) / float64(registered)
}

func meanFinalScore(scores []model.MemberActivityScore) float64 {
	if len(scores) == 0 {
		return 0
	}
	sum := 0.0
	for _, s := range scores {
		sum += s.FinalScore
	}
	return sum / float64(len(scores))
}

func meanRawScore(scores []model.MemberActivityScore) float64 {
	if len(scores) == 0 {
		return 0
	}
	sum := 0.0
	for _, s := range scores {
		sum += s.RawScore
	}
	return sum / float64(len(scores))
}

// meanStaffPerformance 只对当月有干事记录的成员求均值
func meanStaffPerformance(scores []model.MemberActivityScore) float64 {
	sum, n := 0.0, 0
	for _, s := range scores {
		if s.TotalStaffCount > 0 {
			sum += s.AvgStaffPerformance
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}
