package activity

import (
	"strconv"

	"club-activity-system/config"
	gctx "club-activity-system/internal/global/context"
	"club-activity-system/internal/global/database"
	"club-activity-system/internal/global/response"
	"club-activity-system/internal/model"
	"club-activity-system/internal/module/report"
	"club-activity-system/tools"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm/clause"
)

func parseClubID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("club_id"), 10, 32)
	if err != nil || id == 0 {
		response.Fail(c, response.ErrInvalidRequest.WithTips("社团 ID 无效"))
		return 0, false
	}
	return uint(id), true
}

func parsePeriod(c *gin.Context) (tools.Period, bool) {
	p, err := tools.ParsePeriod(c.Query("year"), c.Query("month"))
	if err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return p, false
	}
	return p, true
}

// requireLeadership 负责人只能操作自己负责的社团，校级管理员不受限
func requireLeadership(c *gin.Context, clubID uint) bool {
	payload, ok := gctx.GetUserPayload(c)
	if !ok {
		response.Fail(c, response.ErrUnauthorized)
		return false
	}
	if payload.RoleID >= 2 {
		return true
	}

	var count int64
	err := database.DB.WithContext(c.Request.Context()).
		Model(&model.Membership{}).
		Where("user_id = ? AND club_id = ? AND role = ? AND left_at IS NULL",
			payload.UserID, clubID, model.MembershipRoleLeader).
		Count(&count).Error
	if err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return false
	}
	if count == 0 {
		response.Fail(c, response.ErrForbidden.WithTips("只能操作本人负责的社团"))
		return false
	}
	return true
}

// ListClubScores 负责人查看本社团某月全部成员成绩
func ListClubScores(c *gin.Context) {
	clubID, ok := parseClubID(c)
	if !ok {
		return
	}
	p, ok := parsePeriod(c)
	if !ok {
		return
	}
	if !requireLeadership(c, clubID) {
		return
	}

	var scores []model.MemberActivityScore
	if err := database.DB.WithContext(c.Request.Context()).
		Where("club_id = ? AND year = ? AND month = ?", clubID, p.Year, p.Month).
		Order("membership_id ASC").
		Find(&scores).Error; err != nil {
		log.Error("查询成员成绩失败", "error", err, "club_id", clubID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	response.Success(c, scores)
}

// GetMyScore 成员查看自己某月在某社团的成绩
func GetMyScore(c *gin.Context) {
	clubID, ok := parseClubID(c)
	if !ok {
		return
	}
	p, ok := parsePeriod(c)
	if !ok {
		return
	}
	payload, ok := gctx.GetUserPayload(c)
	if !ok {
		response.Fail(c, response.ErrUnauthorized)
		return
	}

	var scores []model.MemberActivityScore
	err := database.DB.WithContext(c.Request.Context()).
		Where("club_id = ? AND user_id = ? AND year = ? AND month = ?",
			clubID, payload.UserID, p.Year, p.Month).
		Limit(1).Find(&scores).Error
	if err != nil {
		log.Error("查询个人成绩失败", "error", err, "user_id", payload.UserID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	if len(scores) == 0 {
		response.Fail(c, response.ErrNotFound.WithTips("该周期尚无成绩"))
		return
	}
	response.Success(c, scores[0])
}

// ListAllScores 校级管理员跨社团分页查询某月成绩
func ListAllScores(c *gin.Context) {
	p, ok := parsePeriod(c)
	if !ok {
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	db := database.DB.WithContext(c.Request.Context()).
		Model(&model.MemberActivityScore{}).
		Where("year = ? AND month = ?", p.Year, p.Month)

	var total int64
	if err := db.Count(&total).Error; err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	var scores []model.MemberActivityScore
	if err := db.Order("final_score DESC, membership_id ASC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&scores).Error; err != nil {
		log.Error("查询全校成绩失败", "error", err)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	response.Success(c, map[string]interface{}{
		"total":     total,
		"page":      page,
		"page_size": pageSize,
		"list":      scores,
	})
}

// SetBaseScoreReq 录入基础分请求
type SetBaseScoreReq struct {
	MembershipID uint     `json:"membership_id" binding:"required"`
	Score        *float64 `json:"score" binding:"required"`
}

// SetBaseScore 负责人按月录入成员基础分
//
// 报告锁定后该周期的基础分不再可改。录入不触发重算，
// 新基础分在下一次重算时生效
func SetBaseScore(c *gin.Context) {
	clubID, ok := parseClubID(c)
	if !ok {
		return
	}
	p, ok := parsePeriod(c)
	if !ok {
		return
	}
	if !requireLeadership(c, clubID) {
		return
	}

	var req SetBaseScoreReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}
	maxBase := config.Get().Scoring.MaxBaseScore
	if *req.Score < 0 || *req.Score > maxBase {
		response.Fail(c, response.ErrInvalidRequest.WithTips("基础分超出允许范围"))
		return
	}

	ctx := c.Request.Context()
	var count int64
	if err := database.DB.WithContext(ctx).
		Model(&model.Membership{}).
		Where("id = ? AND club_id = ?", req.MembershipID, clubID).
		Count(&count).Error; err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	if count == 0 {
		response.Fail(c, response.ErrNotFound.WithTips("成员不存在"))
		return
	}

	var reports []model.ClubActivityReport
	if err := database.DB.WithContext(ctx).
		Where("club_id = ? AND year = ? AND month = ?", clubID, p.Year, p.Month).
		Limit(1).Find(&reports).Error; err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	if len(reports) > 0 && reports[0].Locked {
		response.Fail(c, response.ErrReportLocked)
		return
	}

	payload, _ := gctx.GetUserPayload(c)
	base := model.BaseScore{
		ClubID:       clubID,
		MembershipID: req.MembershipID,
		Year:         p.Year,
		Month:        p.Month,
		Score:        *req.Score,
		SetBy:        payload.StudentCode,
	}
	err := database.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "club_id"}, {Name: "membership_id"}, {Name: "year"}, {Name: "month"}},
			DoUpdates: clause.AssignmentColumns([]string{"score", "set_by", "updated_at"}),
		}).
		Create(&base).Error
	if err != nil {
		log.Error("录入基础分失败", "error", err, "club_id", clubID, "membership_id", req.MembershipID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	log.Info("基础分已录入",
		"club_id", clubID,
		"membership_id", req.MembershipID,
		"period", p.String(),
		"score", *req.Score,
		"set_by", payload.StudentCode,
	)
	response.Success(c, base)
}

// Calculate 触发某社团某月的重算
func Calculate(c *gin.Context) {
	clubID, ok := parseClubID(c)
	if !ok {
		return
	}
	p, ok := parsePeriod(c)
	if !ok {
		return
	}
	if !requireLeadership(c, clubID) {
		return
	}

	summary, err := report.Recalculate(c.Request.Context(), clubID, p)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, summary)
}
