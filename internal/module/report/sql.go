package report

import (
	"context"

	"club-activity-system/internal/global/database"
	"club-activity-system/internal/model"
	"club-activity-system/internal/scoring"
)

// 本文件是出勤与干事考核两个聚合器：
// 所有查询都限定在 [月初, 下月初) 区间，并按成员历史而非当前在团状态取数，
// 退团成员仍会为在团期间计分

// listPeriodMemberships 取出统计周期内与社团有过交集的成员
func listPeriodMemberships(ctx context.Context, clubID uint, start, end int64) ([]model.Membership, error) {
	var memberships []model.Membership
	err := database.DB.WithContext(ctx).
		Model(&model.Membership{}).
		Preload("User").
		Where("club_id = ? AND joined_at < ? AND (left_at IS NULL OR left_at >= ?)", clubID, end, start).
		Order("id ASC").
		Find(&memberships).Error
	return memberships, err
}

// computeAttendance 出勤聚合器：活动报名/签到按活动开始时间归期，例会按举行时间归期
// 分母为 0（新成员）是合法结果，不是错误
func computeAttendance(ctx context.Context, clubID, membershipID uint, start, end int64) (scoring.Attendance, error) {
	var att scoring.Attendance
	db := database.DB.WithContext(ctx)

	var registered, attended int64
	if err := db.Model(&model.EventRegistration{}).
		Joins("JOIN event ON event.id = event_registration.event_id").
		Where("event_registration.membership_id = ? AND event.club_id = ? AND event.starts_at >= ? AND event.starts_at < ?",
			membershipID, clubID, start, end).
		Count(&registered).Error; err != nil {
		return att, err
	}
	if err := db.Model(&model.EventRegistration{}).
		Joins("JOIN event ON event.id = event_registration.event_id").
		Where("event_registration.membership_id = ? AND event.club_id = ? AND event.starts_at >= ? AND event.starts_at < ? AND event_registration.checked_in_at IS NOT NULL",
			membershipID, clubID, start, end).
		Count(&attended).Error; err != nil {
		return att, err
	}

	var sessions, present int64
	if err := db.Model(&model.ClubSession{}).
		Where("club_id = ? AND held_at >= ? AND held_at < ?", clubID, start, end).
		Count(&sessions).Error; err != nil {
		return att, err
	}
	if err := db.Model(&model.SessionAttendance{}).
		Joins("JOIN club_session ON club_session.id = session_attendance.session_id").
		Where("session_attendance.membership_id = ? AND session_attendance.present = ? AND club_session.club_id = ? AND club_session.held_at >= ? AND club_session.held_at < ?",
			membershipID, true, clubID, start, end).
		Count(&present).Error; err != nil {
		return att, err
	}

	att.TotalEventRegistered = int(registered)
	att.TotalEventAttended = int(attended)
	att.TotalClubSessions = int(sessions)
	att.TotalClubPresent = int(present)
	return att, nil
}

// computeStaffStats 干事考核聚合器
func computeStaffStats(ctx context.Context, clubID, membershipID uint, start, end int64) (scoring.StaffStats, error) {
	var tags []string
	err := database.DB.WithContext(ctx).
		Model(&model.StaffDuty{}).
		Where("club_id = ? AND membership_id = ? AND evaluated_at >= ? AND evaluated_at < ?",
			clubID, membershipID, start, end).
		Pluck("performance", &tags).Error
	if err != nil {
		return scoring.StaffStats{}, err
	}
	return scoring.ReduceStaff(tags), nil
}

// sumPenaltyPoints 周期内惩罚分合计
func sumPenaltyPoints(ctx context.Context, clubID, membershipID uint, start, end int64) (int, error) {
	var total *int
	err := database.DB.WithContext(ctx).
		Model(&model.Penalty{}).
		Select("SUM(points)").
		Where("club_id = ? AND membership_id = ? AND issued_at >= ? AND issued_at < ?",
			clubID, membershipID, start, end).
		Scan(&total).Error
	if err != nil || total == nil {
		return 0, err
	}
	return *total, nil
}

// loadBaseScore 负责人录入的基础分，未录入返回 nil
func loadBaseScore(ctx context.Context, clubID, membershipID uint, year, month int) (*float64, error) {
	var rows []model.BaseScore
	err := database.DB.WithContext(ctx).
		Where("club_id = ? AND membership_id = ? AND year = ? AND month = ?", clubID, membershipID, year, month).
		Limit(1).Find(&rows).Error
	if err != nil || len(rows) == 0 {
		return nil, err
	}
	return &rows[0].Score, nil
}

// countCompletedEvents 周期内已完结活动数
func countCompletedEvents(ctx context.Context, clubID uint, start, end int64) (int, error) {
	var count int64
	err := database.DB.WithContext(ctx).
		Model(&model.Event{}).
		Where("club_id = ? AND status = ? AND starts_at >= ? AND starts_at < ?",
			clubID, model.EventStatusCompleted, start, end).
		Count(&count).Error
	return int(count), err
}

// avgEventFeedback 周期内活动反馈均分（1~5），无反馈返回 0
func avgEventFeedback(ctx context.Context, clubID uint, start, end int64) (float64, error) {
	var avg *float64
	err := database.DB.WithContext(ctx).
		Model(&model.EventFeedback{}).
		Select("AVG(event_feedback.rating)").
		Joins("JOIN event ON event.id = event_feedback.event_id").
		Where("event.club_id = ? AND event.starts_at >= ? AND event.starts_at < ?", clubID, start, end).
		Scan(&avg).Error
	if err != nil || avg == nil {
		return 0, err
	}
	return *avg, nil
}

// loadActivePolicies 激活的倍率策略
func loadActivePolicies(ctx context.Context) ([]model.MultiplierPolicy, error) {
	var policies []model.MultiplierPolicy
	err := database.DB.WithContext(ctx).
		Where("active = ?", true).
		Order("target_type, min_threshold").
		Find(&policies).Error
	return policies, err
}
