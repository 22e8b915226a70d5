package report

import (
	"context"
	"fmt"
	"time"

	"club-activity-system/config"
	"club-activity-system/internal/global/cache"
	"club-activity-system/internal/global/database"
	"club-activity-system/internal/global/response"
	"club-activity-system/internal/model"
	"club-activity-system/internal/scoring"
	"club-activity-system/tools"

	"github.com/pkg/errors"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// recalcLockTTL 重算租约时长，超过该时长视为持有者已崩溃
const recalcLockTTL = 2 * time.Minute

func periodLockKey(clubID uint, p tools.Period) string {
	return fmt.Sprintf("club-activity:recalc:%d:%s", clubID, p)
}

// Recalculate 重算某社团某月的全部成员成绩并更新汇总
//
// 同一周期的重算必须串行：先抢周期租约，所有成员成绩在内存算完后
// 才进入唯一一个写事务，事务内重查锁定状态，锁定报告拒绝写入。
// 任何聚合失败整体放弃，不留部分状态
func Recalculate(ctx context.Context, clubID uint, p tools.Period) (*model.ClubActivitySummary, error) {
	var club model.Club
	if err := database.DB.WithContext(ctx).First(&club, "id = ?", clubID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.ErrNotFound.WithTips("社团不存在")
		}
		return nil, response.ErrDatabase.WithOrigin(err)
	}

	unlock, ok := cache.TryLock(ctx, periodLockKey(clubID, p), recalcLockTTL)
	if !ok {
		return nil, response.ErrRecalcBusy
	}
	defer unlock()

	// 提前拒绝已锁定的报告，省掉无谓的聚合；事务内还会再查一次
	locked, err := isReportLocked(ctx, clubID, p)
	if err != nil {
		return nil, response.ErrDatabase.WithOrigin(err)
	}
	if locked {
		return nil, response.ErrReportLocked
	}

	policies, err := loadActivePolicies(ctx)
	if err != nil {
		return nil, response.ErrDatabase.WithOrigin(err)
	}
	weights := scoring.WeightsFromConfig(config.Get().Scoring)

	start, end := p.Bounds()
	memberships, err := listPeriodMemberships(ctx, clubID, start, end)
	if err != nil {
		return nil, response.ErrDatabase.WithOrigin(err)
	}

	// 第一阶段：全部在内存中计算
	scores := make([]model.MemberActivityScore, 0, len(memberships))
	var diagnostics []string
	for _, m := range memberships {
		if m.User.ID == 0 {
			// 用户记录缺失只跳过该成员并记入诊断，不让整个社团重算失败
			diagnostics = append(diagnostics, fmt.Sprintf("membership %d: 用户记录缺失，已跳过", m.ID))
			continue
		}

		att, err := computeAttendance(ctx, clubID, m.ID, start, end)
		if err != nil {
			return nil, response.ErrDatabase.WithOrigin(err)
		}
		staff, err := computeStaffStats(ctx, clubID, m.ID, start, end)
		if err != nil {
			return nil, response.ErrDatabase.WithOrigin(err)
		}
		penalty, err := sumPenaltyPoints(ctx, clubID, m.ID, start, end)
		if err != nil {
			return nil, response.ErrDatabase.WithOrigin(err)
		}
		base, err := loadBaseScore(ctx, clubID, m.ID, p.Year, p.Month)
		if err != nil {
			return nil, response.ErrDatabase.WithOrigin(err)
		}

		r := scoring.ScoreMember(att, staff, penalty, base, policies, weights)
		scores = append(scores, model.MemberActivityScore{
			MembershipID: m.ID,
			ClubID:       clubID,
			Year:         p.Year,
			Month:        p.Month,
			UserID:       m.User.ID,
			StudentCode:  m.User.StudentCode,
			FullName:     m.User.FullName,
			ClubName:     club.Name,

			TotalEventRegistered:  att.TotalEventRegistered,
			TotalEventAttended:    att.TotalEventAttended,
			EventAttendanceRate:   r.EventAttendanceRate,
			TotalClubSessions:     att.TotalClubSessions,
			TotalClubPresent:      att.TotalClubPresent,
			SessionAttendanceRate: r.SessionAttendanceRate,

			TotalStaffCount:     staff.TotalStaffCount,
			StaffEvaluation:     staff.StaffEvaluation,
			AvgStaffPerformance: staff.AvgStaffPerformance,

			TotalPenaltyPoints: penalty,

			BaseScore:         r.BaseScore,
			BaseScorePercent:  r.BaseScorePercent,
			BaseScorePending:  r.BaseScorePending,
			RawScore:          r.RawScore,
			ActivityLevel:     r.ActivityLevel,
			AppliedMultiplier: r.AppliedMultiplier,
			FinalScore:        r.FinalScore,
		})
	}

	totalEvents, err := countCompletedEvents(ctx, clubID, start, end)
	if err != nil {
		return nil, response.ErrDatabase.WithOrigin(err)
	}

	summary := buildSummary(club, p, scores, memberships, totalEvents, weights, policies, start, end)
	summary.Diagnostics = datatypes.JSONSlice[string](diagnostics)

	// 第二阶段：唯一的写事务
	var saved model.ClubActivitySummary
	err = database.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 周期租约是唯一的串行点，事务内只需重查锁定状态
		var reports []model.ClubActivityReport
		if err := tx.Where("club_id = ? AND year = ? AND month = ?", clubID, p.Year, p.Month).
			Limit(1).Find(&reports).Error; err != nil {
			return response.ErrDatabase.WithOrigin(err)
		}
		if len(reports) > 0 && reports[0].Locked {
			return response.ErrReportLocked
		}

		// 整批替换上一轮成绩，旧行只被取代不被修补
		if err := tx.Unscoped().
			Where("club_id = ? AND year = ? AND month = ?", clubID, p.Year, p.Month).
			Delete(&model.MemberActivityScore{}).Error; err != nil {
			return response.ErrDatabase.WithOrigin(err)
		}
		if len(scores) > 0 {
			if err := tx.Create(&scores).Error; err != nil {
				return response.ErrDatabase.WithOrigin(err)
			}
		}

		if err := upsertSummary(tx, &summary, scores); err != nil {
			return response.ErrDatabase.WithOrigin(err)
		}

		if len(reports) > 0 {
			report := reports[0]
			report.SummaryID = summary.ID
			report.Version++
			if err := tx.Omit("Summary").Save(&report).Error; err != nil {
				return response.ErrDatabase.WithOrigin(err)
			}
		} else {
			report := model.ClubActivityReport{
				ClubID:     clubID,
				Year:       p.Year,
				Month:      p.Month,
				SummaryID:  summary.ID,
				AwardLevel: model.AwardLevelNone,
				Version:    1,
			}
			if err := tx.Omit("Summary").Create(&report).Error; err != nil {
				return response.ErrDatabase.WithOrigin(err)
			}
		}

		saved = summary
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info("社团月度成绩重算完成",
		"club_id", clubID,
		"period", p.String(),
		"member_count", len(scores),
		"skipped", len(diagnostics),
	)
	return &saved, nil
}

// buildSummary 汇总社团级统计并评选月度之星
func buildSummary(club model.Club, p tools.Period, scores []model.MemberActivityScore, memberships []model.Membership, totalEvents int, weights scoring.Weights, policies []model.MultiplierPolicy, start, end int64) model.ClubActivitySummary {
	summary := model.ClubActivitySummary{
		ClubID:               club.ID,
		ClubName:             club.Name,
		Year:                 p.Year,
		Month:                p.Month,
		TotalEventsCompleted: totalEvents,
		MemberCount:          len(scores),
		ClubMultiplier:       1.0,
	}

	for _, m := range memberships {
		if m.JoinedAt <= start && (m.LeftAt == nil || *m.LeftAt >= end) {
			summary.FullMembersCount++
		}
	}

	// 社团倍率：CLUB 策略按成员综合指标均值匹配
	if len(scores) > 0 {
		sum := 0.0
		for _, s := range scores {
			sum += s.RawScore
		}
		avgComposite := sum / float64(len(scores))
		if cp, ok := scoring.MatchPolicy(policies, model.PolicyTargetClub, model.PolicyActivityMonthly, avgComposite, weights.MaxComposite()); ok {
			summary.ClubMultiplier = cp.Multiplier
		}
	}

	return summary
}

// pickMemberOfMonth 在可参评成员中取 finalScore 最大者，并列取 membershipID 较小者
// 可参评：当月有出勤或干事记录，且基础分已录入
func pickMemberOfMonth(scores []model.MemberActivityScore) *model.MemberActivityScore {
	var winner *model.MemberActivityScore
	for i := range scores {
		s := &scores[i]
		hasActivity := s.TotalEventRegistered > 0 || s.TotalClubSessions > 0 || s.TotalStaffCount > 0
		if !hasActivity || s.BaseScorePending {
			continue
		}
		if winner == nil ||
			s.FinalScore > winner.FinalScore ||
			(s.FinalScore == winner.FinalScore && s.MembershipID < winner.MembershipID) {
			winner = s
		}
	}
	return winner
}

// upsertSummary 在写事务内更新或创建汇总行，月度之星引用新一批成绩行
func upsertSummary(tx *gorm.DB, summary *model.ClubActivitySummary, scores []model.MemberActivityScore) error {
	if winner := pickMemberOfMonth(scores); winner != nil {
		summary.MemberOfMonthID = &winner.ID
		summary.MemberOfMonth = winner
	}

	var existing []model.ClubActivitySummary
	if err := tx.Where("club_id = ? AND year = ? AND month = ?", summary.ClubID, summary.Year, summary.Month).
		Limit(1).Find(&existing).Error; err != nil {
		return err
	}
	if len(existing) > 0 {
		summary.ID = existing[0].ID
		summary.CreatedAt = existing[0].CreatedAt
	}
	return tx.Omit("MemberOfMonth").Save(summary).Error
}

// isReportLocked 查询报告锁定状态，报告不存在视为未锁定
func isReportLocked(ctx context.Context, clubID uint, p tools.Period) (bool, error) {
	var reports []model.ClubActivityReport
	err := database.DB.WithContext(ctx).
		Where("club_id = ? AND year = ? AND month = ?", clubID, p.Year, p.Month).
		Limit(1).Find(&reports).Error
	if err != nil {
		return false, err
	}
	return len(reports) > 0 && reports[0].Locked, nil
}
