package report

import (
	"fmt"

	"club-activity-system/config"
	"club-activity-system/internal/global/httpclient"
	"club-activity-system/internal/model"
)

type reportLockedEvent struct {
	Event        string  `json:"event"`
	ClubID       uint    `json:"club_id"`
	Period       string  `json:"period"`
	AwardLevel   string  `json:"award_level"`
	AwardScore   float64 `json:"award_score"`
	FinalScore   float64 `json:"final_score"`
	RewardPoints int     `json:"reward_points"`
	LockedBy     string  `json:"locked_by"`
}

// notifyReportLocked 报告锁定后向配置的回调地址推送事件，未配置则跳过
func notifyReportLocked(r *model.ClubActivityReport) {
	url := config.Get().Webhook.ReportLockedURL
	if url == "" {
		return
	}

	resp, err := httpclient.Client.R().
		SetBody(reportLockedEvent{
			Event:        "report.locked",
			ClubID:       r.ClubID,
			Period:       fmt.Sprintf("%04d-%02d", r.Year, r.Month),
			AwardLevel:   r.AwardLevel,
			AwardScore:   r.AwardScore,
			FinalScore:   r.FinalScore,
			RewardPoints: r.RewardPoints,
			LockedBy:     r.LockedBy,
		}).
		Post(url)
	if err != nil {
		log.Error("报告锁定通知发送失败", "club_id", r.ClubID, "err", err)
		return
	}
	if resp.IsError() {
		log.Warn("报告锁定通知被拒绝", "club_id", r.ClubID, "status", resp.StatusCode())
	}
}
